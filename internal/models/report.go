package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ReportStatus - состояние сообщения об инциденте
type ReportStatus string

const (
	StatusBefore  ReportStatus = "Before"
	StatusDuring  ReportStatus = "During"
	StatusAfter   ReportStatus = "After"
	StatusInvalid ReportStatus = "Invalid"
)

// ReportStatuses - все допустимые состояния в порядке жизненного цикла
var ReportStatuses = []ReportStatus{StatusBefore, StatusDuring, StatusAfter, StatusInvalid}

// ParseReportStatus разбирает статус, в том числе старые названия из прежних версий консоли:
// Pending -> Before, Responding -> During, Rescued -> After
func ParseReportStatus(s string) (ReportStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "before", "pending", "new":
		return StatusBefore, nil
	case "during", "responding":
		return StatusDuring, nil
	case "after", "rescued", "resolved":
		return StatusAfter, nil
	case "invalid":
		return StatusInvalid, nil
	}
	return "", fmt.Errorf("unknown report status %q: %w", s, ErrInvalidInput)
}

type Report struct {
	ID           uuid.UUID    `json:"id"`
	Flags        Flags        `json:"flag"`
	Status       ReportStatus `json:"status"`
	Latitude     *float64     `json:"latitude,omitempty"`
	Longitude    *float64     `json:"longitude,omitempty"`
	Timestamp    *time.Time   `json:"timestamp,omitempty"`
	WhoInvolved  string       `json:"whoInvolved"`
	PeopleCount  int          `json:"peopleCount"`
	Details      string       `json:"details"`
	Notes        string       `json:"notes"`
	Place        string       `json:"place,omitempty"`
	Media        []string     `json:"media,omitempty"`
	PhoneNumber  string       `json:"phone_number,omitempty"`
	AccidentType []string     `json:"accident_type,omitempty"`
	Version      int          `json:"version"`
	NotifiedAt   *time.Time   `json:"notified_at,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// HasLocation сообщает, есть ли у сообщения координаты
func (r *Report) HasLocation() bool {
	return r.Latitude != nil && r.Longitude != nil
}

// CoordinateKey - ключ кэша населенных пунктов вида "lat,lng"
func CoordinateKey(lat, lng float64) string {
	return strconv.FormatFloat(lat, 'f', -1, 64) + "," + strconv.FormatFloat(lng, 'f', -1, 64)
}

// StatusChange - запись журнала смены статуса
type StatusChange struct {
	ReportID   uuid.UUID    `json:"report_id"`
	FromStatus ReportStatus `json:"from_status"`
	ToStatus   ReportStatus `json:"to_status"`
	ChangedBy  string       `json:"changed_by"`
	ChangedAt  time.Time    `json:"changed_at"`
}

// BlockedNumber - номер телефона, заблокированный по ложному сообщению
type BlockedNumber struct {
	ID          uuid.UUID `json:"id"`
	ReportID    uuid.UUID `json:"report_id"`
	PhoneNumber string    `json:"phone_number"`
	BlockedBy   Role      `json:"blocked_by"`
	Timestamp   time.Time `json:"timestamp"`
}

// UnknownLocality - значение place, когда населенный пункт определить не удалось
const UnknownLocality = "Unknown"
