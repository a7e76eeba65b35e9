package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// RequestStatus - состояние запроса на передачу инцидента другому ведомству
type RequestStatus string

const (
	RequestPending  RequestStatus = "Pending"
	RequestDuring   RequestStatus = "During"
	RequestApproved RequestStatus = "Approved"
	RequestDeclined RequestStatus = "Declined"
)

func ParseRequestStatus(s string) (RequestStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending", "before":
		return RequestPending, nil
	case "during":
		return RequestDuring, nil
	case "approved":
		return RequestApproved, nil
	case "declined":
		return RequestDeclined, nil
	}
	return "", fmt.Errorf("unknown request status %q: %w", s, ErrInvalidInput)
}

// IsTerminal - Approved и Declined больше не меняются
func (s RequestStatus) IsTerminal() bool {
	return s == RequestApproved || s == RequestDeclined
}

// HandoffRequest - просьба одного ведомства к другому взять инцидент в работу.
// Approval заполняется при чтении последней по времени записью RequestDetail
// с тем же incident_id.
type HandoffRequest struct {
	ID         uuid.UUID      `json:"id"`
	IncidentID uuid.UUID      `json:"incident_id"`
	FromRole   Role           `json:"from_role"`
	ToRole     Role           `json:"to_role"`
	Status     RequestStatus  `json:"status"`
	Timestamp  time.Time      `json:"timestamp"`
	Approval   *RequestDetail `json:"approval,omitempty"`
}

// Involves сообщает, участвует ли роль в запросе с любой стороны
func (r *HandoffRequest) Involves(role Role) bool {
	return r.FromRole == role || r.ToRole == role
}

// RequestDetail - подробности инцидента, заполняемые при одобрении запроса
type RequestDetail struct {
	ID          uuid.UUID     `json:"id"`
	RequestID   uuid.UUID     `json:"request_id"`
	IncidentID  uuid.UUID     `json:"incident_id"`
	FromRole    Role          `json:"from_role"`
	ToRole      Role          `json:"to_role"`
	Status      RequestStatus `json:"status"`
	WhoInvolved string        `json:"whoInvolved"`
	PeopleCount int           `json:"peopleCount"`
	Details     string        `json:"details"`
	Notes       string        `json:"notes"`
	Timestamp   time.Time     `json:"timestamp"`
}

// ApprovalInput - данные, которые оператор вводит при одобрении
type ApprovalInput struct {
	WhoInvolved string
	PeopleCount int
	Details     string
	Notes       string
}
