package models

import (
	"time"

	"github.com/google/uuid"
)

// Admin - учетная запись оператора консоли. Логин уникален в пределах роли.
type Admin struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Session - явный контекст аутентифицированного оператора,
// передается в каждый сервис вместо глобального состояния
type Session struct {
	AdminID   uuid.UUID `json:"admin_id"`
	Username  string    `json:"username"`
	Role      Role      `json:"role"`
	TokenID   string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
}
