package v1

import (
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/resqalert/internal/models"
)

// LoginRequest DTO для входа оператора
// @Description DTO для входа оператора
type LoginRequest struct {
	Role     string `json:"role" validate:"required"`
	Username string `json:"username" validate:"required,max=64"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse DTO с токеном сессии
// @Description DTO с токеном сессии
type LoginResponse struct {
	Token     string    `json:"token"`
	Role      string    `json:"role"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expires_at"`
}

// UpdateAccountRequest DTO для смены логина и/или пароля
// @Description DTO для смены логина и/или пароля
type UpdateAccountRequest struct {
	Username string `json:"username,omitempty" validate:"omitempty,min=3,max=64"`
	Password string `json:"password,omitempty" validate:"omitempty,min=8,max=72"`
}

// IngestReportRequest DTO сообщения из мобильного приложения
// @Description DTO сообщения из мобильного приложения. flag принимает строку или массив строк.
type IngestReportRequest struct {
	Flag         models.Flags `json:"flag" swaggertype:"array,string" validate:"required,min=1"`
	Status       string       `json:"status,omitempty"`
	Latitude     *float64     `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude    *float64     `json:"longitude,omitempty" validate:"omitempty,longitude"`
	Timestamp    *time.Time   `json:"timestamp,omitempty"`
	WhoInvolved  string       `json:"whoInvolved,omitempty" validate:"max=500"`
	PeopleCount  int          `json:"peopleCount,omitempty" validate:"gte=0"`
	Details      string       `json:"details,omitempty" validate:"max=5000"`
	Notes        string       `json:"notes,omitempty" validate:"max=5000"`
	Media        []string     `json:"media,omitempty" validate:"dive,url"`
	PhoneNumber  string       `json:"phone_number,omitempty" validate:"max=32"`
	AccidentType []string     `json:"accident_type,omitempty"`
}

// ReportResponse DTO для ответа с сообщением
// @Description DTO для ответа с сообщением об инциденте
type ReportResponse struct {
	ID           uuid.UUID  `json:"id"`
	Flag         []string   `json:"flag"`
	Status       string     `json:"status"`
	Latitude     *float64   `json:"latitude,omitempty"`
	Longitude    *float64   `json:"longitude,omitempty"`
	Timestamp    *time.Time `json:"timestamp,omitempty"`
	WhoInvolved  string     `json:"whoInvolved"`
	PeopleCount  int        `json:"peopleCount"`
	Details      string     `json:"details"`
	Notes        string     `json:"notes"`
	Place        string     `json:"place,omitempty"`
	Media        []string   `json:"media,omitempty"`
	PhoneNumber  string     `json:"phone_number,omitempty"`
	AccidentType []string   `json:"accident_type,omitempty"`
	Version      int        `json:"version"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// UpdateStatusRequest DTO для смены статуса сообщения.
// version > 0 включает проверку версии, 0 - последняя запись побеждает.
// @Description DTO для смены статуса сообщения
type UpdateStatusRequest struct {
	Status  string `json:"status" validate:"required"`
	Version int    `json:"version,omitempty" validate:"gte=0"`
}

// StatusChangeResponse DTO записи журнала статусов
// @Description DTO записи журнала статусов
type StatusChangeResponse struct {
	FromStatus string    `json:"from_status"`
	ToStatus   string    `json:"to_status"`
	ChangedBy  string    `json:"changed_by"`
	ChangedAt  time.Time `json:"changed_at"`
}

// BlockedNumberResponse DTO заблокированного номера
// @Description DTO заблокированного номера
type BlockedNumberResponse struct {
	ID          uuid.UUID `json:"id"`
	ReportID    uuid.UUID `json:"report_id"`
	PhoneNumber string    `json:"phone_number"`
	BlockedBy   string    `json:"blocked_by"`
	Timestamp   time.Time `json:"timestamp"`
}

// CreateHandoffRequest DTO запроса на передачу инцидента другому ведомству
// @Description DTO запроса на передачу инцидента
type CreateHandoffRequest struct {
	IncidentID string `json:"incident_id" validate:"required,uuid"`
	ToRole     string `json:"to_role" validate:"required"`
}

// ApproveHandoffRequest DTO подробностей одобрения
// @Description DTO подробностей одобрения; пустые поля заполняются значениями по умолчанию
type ApproveHandoffRequest struct {
	WhoInvolved string `json:"whoInvolved,omitempty" validate:"max=500"`
	PeopleCount int    `json:"peopleCount,omitempty" validate:"gte=0"`
	Details     string `json:"details,omitempty" validate:"max=5000"`
	Notes       string `json:"notes,omitempty" validate:"max=5000"`
}

// RequestDetailResponse DTO подробностей одобрения
// @Description DTO подробностей одобрения
type RequestDetailResponse struct {
	ID          uuid.UUID `json:"id"`
	RequestID   uuid.UUID `json:"request_id"`
	IncidentID  uuid.UUID `json:"incident_id"`
	FromRole    string    `json:"from_role"`
	ToRole      string    `json:"to_role"`
	Status      string    `json:"status"`
	WhoInvolved string    `json:"whoInvolved"`
	PeopleCount int       `json:"peopleCount"`
	Details     string    `json:"details"`
	Notes       string    `json:"notes"`
	Timestamp   time.Time `json:"timestamp"`
}

// HandoffResponse DTO запроса на передачу вместе с последними подробностями
// @Description DTO запроса на передачу
type HandoffResponse struct {
	ID         uuid.UUID              `json:"id"`
	IncidentID uuid.UUID              `json:"incident_id"`
	FromRole   string                 `json:"from_role"`
	ToRole     string                 `json:"to_role"`
	Status     string                 `json:"status"`
	Timestamp  time.Time              `json:"timestamp"`
	Approval   *RequestDetailResponse `json:"approval,omitempty"`
}

// CreateFeedbackRequest DTO отзыва ведомства
// @Description DTO отзыва ведомства
type CreateFeedbackRequest struct {
	Message string `json:"message" validate:"required,max=2000"`
}

// UpdateFeedbackStatusRequest DTO смены статуса отзыва
// @Description DTO смены статуса отзыва
type UpdateFeedbackStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// FeedbackResponse DTO отзыва
// @Description DTO отзыва
type FeedbackResponse struct {
	ID          uuid.UUID `json:"id"`
	Ticket      string    `json:"ticket"`
	Message     string    `json:"message"`
	SubmittedBy string    `json:"submitted_by"`
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
}

// FeedbackListResponse DTO страницы отзывов
// @Description DTO страницы отзывов
type FeedbackListResponse struct {
	Items    []*FeedbackResponse `json:"items"`
	Total    int                 `json:"total"`
	Page     int                 `json:"page"`
	PageSize int                 `json:"page_size"`
}
