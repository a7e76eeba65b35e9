package service

//go:generate mockgen -source=request.go -destination=mocks/request_mock.go -package=mocks

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/resqalert/internal/models"
	"github.com/sirupsen/logrus"
)

const (
	defaultWhoInvolved = "N/A"
	defaultDetails     = "No additional details provided."
	defaultNotes       = "No notes provided."
)

// RequestRepository определяет контракт для хранилища запросов на передачу инцидентов
type RequestRepository interface {
	Create(ctx context.Context, request *models.HandoffRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.HandoffRequest, error)
	// ListByRole возвращает запросы, где роль - отправитель или получатель.
	// Пустая роль означает все запросы.
	ListByRole(ctx context.Context, role models.Role) ([]*models.HandoffRequest, error)
	ListDetails(ctx context.Context, incidentIDs []uuid.UUID) ([]*models.RequestDetail, error)
	// UpdateStatus меняет статус, только если текущий входит в from, иначе ErrConflict
	UpdateStatus(ctx context.Context, id uuid.UUID, from []models.RequestStatus, to models.RequestStatus) (*models.HandoffRequest, error)
	// Approve в одной транзакции переводит запрос в Approved и сохраняет detail
	Approve(ctx context.Context, id uuid.UUID, detail *models.RequestDetail) error
}

// RequestService определяет контракт процесса передачи инцидента между ведомствами
type RequestService interface {
	CreateRequest(ctx context.Context, session models.Session, incidentID uuid.UUID, toRole models.Role) (*models.HandoffRequest, error)
	ListRequests(ctx context.Context, session models.Session) ([]*models.HandoffRequest, error)
	GetRequest(ctx context.Context, session models.Session, id uuid.UUID) (*models.HandoffRequest, error)
	Acknowledge(ctx context.Context, session models.Session, id uuid.UUID) (*models.HandoffRequest, error)
	Approve(ctx context.Context, session models.Session, id uuid.UUID, input models.ApprovalInput) (*models.RequestDetail, error)
	Decline(ctx context.Context, session models.Session, id uuid.UUID) (*models.HandoffRequest, error)
}

type requestService struct {
	repo    RequestRepository
	reports ReportRepository
	logger  *logrus.Logger
	now     func() time.Time
}

func NewRequestService(repo RequestRepository, reports ReportRepository, logger *logrus.Logger) RequestService {
	return &requestService{
		repo:    repo,
		reports: reports,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// CreateRequest создает запрос от роли сессии к toRole. Получатель должен быть
// в наборе flag сообщения: нельзя просить ведомство заняться инцидентом,
// к которому оно не относится.
func (s *requestService) CreateRequest(ctx context.Context, session models.Session, incidentID uuid.UUID, toRole models.Role) (*models.HandoffRequest, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "request",
		"method":      "CreateRequest",
		"incident_id": incidentID,
		"from_role":   session.Role,
		"to_role":     toRole,
	})
	log.Info("Attempting to create a handoff request")

	report, err := s.reports.GetByID(ctx, incidentID)
	if err != nil {
		log.WithError(err).Warn("Attempted to request a non-existent incident")
		return nil, fmt.Errorf("service: incident with id %s not found for request: %w", incidentID, err)
	}
	if !canView(report, session.Role) {
		return nil, fmt.Errorf("service: incident %s: %w", incidentID, models.ErrNotFound)
	}
	if toRole == session.Role {
		return nil, fmt.Errorf("service: agency cannot request itself: %w", models.ErrInvalidInput)
	}
	if !report.Flags.Contains(toRole) {
		log.Warn("Target agency is not flagged on the incident")
		return nil, fmt.Errorf("service: %s is not flagged on incident %s: %w", toRole, incidentID, models.ErrForbidden)
	}

	request := &models.HandoffRequest{
		IncidentID: incidentID,
		FromRole:   session.Role,
		ToRole:     toRole,
		Status:     models.RequestPending,
		Timestamp:  s.now(),
	}
	if err := s.repo.Create(ctx, request); err != nil {
		log.WithError(err).Error("Failed to create handoff request in repository")
		return nil, fmt.Errorf("service: could not create request: %w", err)
	}

	log.WithField("request_id", request.ID).Info("Handoff request created successfully")
	return request, nil
}

// ListRequests возвращает запросы, где роль сессии - отправитель или получатель,
// вместе с последними подробностями одобрения
func (s *requestService) ListRequests(ctx context.Context, session models.Session) ([]*models.HandoffRequest, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "request",
		"method":  "ListRequests",
		"role":    session.Role,
	})

	role := session.Role
	if role.IsSuperAdmin() {
		role = ""
	}
	requests, err := s.repo.ListByRole(ctx, role)
	if err != nil {
		log.WithError(err).Error("Failed to list handoff requests from repository")
		return nil, fmt.Errorf("service: could not list requests: %w", err)
	}

	if err := s.attachDetails(ctx, requests); err != nil {
		// Без подробностей список все равно полезен
		log.WithError(err).Warn("Failed to load request details")
	}

	sort.SliceStable(requests, func(i, j int) bool {
		return requests[i].Timestamp.After(requests[j].Timestamp)
	})

	log.WithField("count", len(requests)).Info("Handoff requests listed successfully")
	return requests, nil
}

func (s *requestService) GetRequest(ctx context.Context, session models.Session, id uuid.UUID) (*models.HandoffRequest, error) {
	request, err := s.visibleRequest(ctx, session, id)
	if err != nil {
		return nil, err
	}
	if err := s.attachDetails(ctx, []*models.HandoffRequest{request}); err != nil {
		s.logger.WithError(err).WithField("request_id", id).Warn("Failed to load request details")
	}
	return request, nil
}

// Acknowledge - получатель подтвердил, что занимается запросом (Pending -> During)
func (s *requestService) Acknowledge(ctx context.Context, session models.Session, id uuid.UUID) (*models.HandoffRequest, error) {
	return s.transition(ctx, session, id, "Acknowledge",
		[]models.RequestStatus{models.RequestPending}, models.RequestDuring)
}

// Approve одобряет запрос и сохраняет подробности. Смена статуса и запись
// подробностей происходят атомарно.
func (s *requestService) Approve(ctx context.Context, session models.Session, id uuid.UUID, input models.ApprovalInput) (*models.RequestDetail, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":    "request",
		"method":     "Approve",
		"request_id": id,
		"role":       session.Role,
	})
	log.Info("Attempting to approve handoff request")

	request, err := s.actionableRequest(ctx, session, id)
	if err != nil {
		log.WithError(err).Warn("Handoff request cannot be approved")
		return nil, err
	}

	detail := &models.RequestDetail{
		RequestID:   request.ID,
		IncidentID:  request.IncidentID,
		FromRole:    request.FromRole,
		ToRole:      request.ToRole,
		Status:      models.RequestApproved,
		WhoInvolved: orDefault(input.WhoInvolved, defaultWhoInvolved),
		PeopleCount: max(input.PeopleCount, 0),
		Details:     orDefault(input.Details, defaultDetails),
		Notes:       orDefault(input.Notes, defaultNotes),
		Timestamp:   s.now(),
	}
	if err := s.repo.Approve(ctx, id, detail); err != nil {
		log.WithError(err).Error("Failed to approve handoff request in repository")
		return nil, fmt.Errorf("service: could not approve request: %w", err)
	}

	log.WithField("detail_id", detail.ID).Info("Handoff request approved successfully")
	return detail, nil
}

// Decline отклоняет запрос; Declined - конечное состояние
func (s *requestService) Decline(ctx context.Context, session models.Session, id uuid.UUID) (*models.HandoffRequest, error) {
	return s.transition(ctx, session, id, "Decline",
		[]models.RequestStatus{models.RequestPending, models.RequestDuring}, models.RequestDeclined)
}

func (s *requestService) transition(ctx context.Context, session models.Session, id uuid.UUID, method string, from []models.RequestStatus, to models.RequestStatus) (*models.HandoffRequest, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":    "request",
		"method":     method,
		"request_id": id,
		"role":       session.Role,
	})
	log.Infof("Attempting to move handoff request to %s", to)

	if _, err := s.actionableRequest(ctx, session, id); err != nil {
		log.WithError(err).Warn("Handoff request cannot be changed")
		return nil, err
	}

	updated, err := s.repo.UpdateStatus(ctx, id, from, to)
	if err != nil {
		log.WithError(err).Error("Failed to update handoff request status in repository")
		return nil, fmt.Errorf("service: could not update request status: %w", err)
	}

	log.Info("Handoff request status updated successfully")
	return updated, nil
}

// actionableRequest - запрос, который роль сессии может одобрить, отклонить
// или взять в работу: это получатель запроса или SA, и запрос еще не закрыт
func (s *requestService) actionableRequest(ctx context.Context, session models.Session, id uuid.UUID) (*models.HandoffRequest, error) {
	request, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service: request with id %s not found: %w", id, err)
	}
	if !session.Role.IsSuperAdmin() && request.ToRole != session.Role {
		return nil, fmt.Errorf("service: only %s can act on request %s: %w", request.ToRole, id, models.ErrForbidden)
	}
	if request.Status.IsTerminal() {
		return nil, fmt.Errorf("service: request %s is already %s: %w", id, request.Status, models.ErrConflict)
	}
	return request, nil
}

func (s *requestService) visibleRequest(ctx context.Context, session models.Session, id uuid.UUID) (*models.HandoffRequest, error) {
	request, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service: could not get request: %w", err)
	}
	if !session.Role.IsSuperAdmin() && !request.Involves(session.Role) {
		return nil, fmt.Errorf("service: request %s: %w", id, models.ErrNotFound)
	}
	return request, nil
}

func (s *requestService) attachDetails(ctx context.Context, requests []*models.HandoffRequest) error {
	if len(requests) == 0 {
		return nil
	}
	seen := make(map[uuid.UUID]struct{}, len(requests))
	ids := make([]uuid.UUID, 0, len(requests))
	for _, r := range requests {
		if _, ok := seen[r.IncidentID]; ok {
			continue
		}
		seen[r.IncidentID] = struct{}{}
		ids = append(ids, r.IncidentID)
	}

	details, err := s.repo.ListDetails(ctx, ids)
	if err != nil {
		return err
	}
	MergeLatestDetails(requests, details)
	return nil
}

func orDefault(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}
