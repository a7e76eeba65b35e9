package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Role - идентификатор ведомства (или супер-админа), от имени которого действует оператор
type Role string

const (
	RoleSuperAdmin Role = "SA"
	RolePNP        Role = "PNP"
	RoleBFP        Role = "BFP"
	RoleMDRRMO     Role = "MDRRMO"
)

// AgencyRoles - все реагирующие ведомства (без супер-админа)
var AgencyRoles = []Role{RolePNP, RoleBFP, RoleMDRRMO}

// ParseRole разбирает роль без учета регистра
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	switch r {
	case RoleSuperAdmin, RolePNP, RoleBFP, RoleMDRRMO:
		return r, nil
	}
	return "", fmt.Errorf("unknown role %q: %w", s, ErrInvalidInput)
}

func (r Role) IsSuperAdmin() bool {
	return r == RoleSuperAdmin
}

// IsAgency сообщает, является ли роль одним из реагирующих ведомств
func (r Role) IsAgency() bool {
	for _, a := range AgencyRoles {
		if a == r {
			return true
		}
	}
	return false
}

// Department возвращает полное название ведомства для печатных форм
func (r Role) Department() string {
	switch r {
	case RolePNP:
		return "Philippine National Police (PNP)"
	case RoleBFP:
		return "Bureau of Fire Protection (BFP)"
	case RoleMDRRMO:
		return "Municipal Disaster Risk Reduction and Management Office (MDRRMO)"
	}
	return "Unknown Department"
}

// Flags - набор ведомств, ответственных за сообщение
type Flags []Role

// NormalizeFlags приводит сырые значения к каноническому виду:
// верхний регистр, без пробелов, без пустых значений и дубликатов
func NormalizeFlags(raw []string) Flags {
	flags := make(Flags, 0, len(raw))
	seen := make(map[Role]struct{}, len(raw))
	for _, v := range raw {
		r := Role(strings.ToUpper(strings.TrimSpace(v)))
		if r == "" {
			continue
		}
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		flags = append(flags, r)
	}
	return flags
}

// Contains проверяет принадлежность роли набору (а не равенство)
func (f Flags) Contains(r Role) bool {
	for _, v := range f {
		if v == r {
			return true
		}
	}
	return false
}

func (f Flags) Strings() []string {
	out := make([]string, len(f))
	for i, v := range f {
		out[i] = string(v)
	}
	return out
}

// UnmarshalJSON принимает как массив, так и одиночную строку:
// в исходных данных flag иногда хранится скаляром
func (f *Flags) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*f = NormalizeFlags(list)
		return nil
	}
	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return fmt.Errorf("flag must be a string or a list of strings: %w", ErrInvalidInput)
	}
	*f = NormalizeFlags([]string{single})
	return nil
}
