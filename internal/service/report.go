package service

//go:generate mockgen -source=report.go -destination=mocks/report_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/resqalert/internal/models"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// ReportRepository определяет контракт для работы с хранилищем сообщений
type ReportRepository interface {
	Create(ctx context.Context, report *models.Report) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Report, error)
	List(ctx context.Context) ([]*models.Report, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.ReportStatus, expectedVersion int, changedBy string) (*models.Report, error)
	ListStatusHistory(ctx context.Context, id uuid.UUID) ([]*models.StatusChange, error)
	UpdatePlace(ctx context.Context, id uuid.UUID, place string) error
	ListUnnotified(ctx context.Context, limit int) ([]*models.Report, error)
	MarkNotified(ctx context.Context, id uuid.UUID) error
	BlockNumber(ctx context.Context, blocked *models.BlockedNumber) error
	ListBlocked(ctx context.Context) ([]*models.BlockedNumber, error)
	CountBlocked(ctx context.Context) (int, error)
	GetReportFromCache(ctx context.Context, id uuid.UUID) (*models.Report, error)
	SetReportCache(ctx context.Context, report *models.Report) error
	InvalidateReportCache(ctx context.Context, id uuid.UUID) error
}

// LocalityResolver определяет населенный пункт по координатам. Никогда не возвращает ошибку.
type LocalityResolver interface {
	ResolveLocality(ctx context.Context, lat, lng float64) string
}

// ReportService определяет контракт бизнес-логики работы с сообщениями об инцидентах
type ReportService interface {
	IngestReport(ctx context.Context, report *models.Report) error
	ListReports(ctx context.Context, session models.Session) ([]*models.Report, error)
	GetReport(ctx context.Context, session models.Session, id uuid.UUID) (*models.Report, error)
	SetStatus(ctx context.Context, session models.Session, id uuid.UUID, status models.ReportStatus, expectedVersion int) (*models.Report, error)
	StatusHistory(ctx context.Context, session models.Session, id uuid.UUID) ([]*models.StatusChange, error)
	BlockReporter(ctx context.Context, session models.Session, id uuid.UUID) (*models.BlockedNumber, error)
	ListBlocked(ctx context.Context, session models.Session) ([]*models.BlockedNumber, error)
}

type reportService struct {
	repo        ReportRepository
	resolver    LocalityResolver
	logger      *logrus.Logger
	concurrency int
}

func NewReportService(repo ReportRepository, resolver LocalityResolver, logger *logrus.Logger, concurrency int) ReportService {
	if concurrency < 1 {
		concurrency = 1
	}
	return &reportService{
		repo:        repo,
		resolver:    resolver,
		logger:      logger,
		concurrency: concurrency,
	}
}

// IngestReport принимает новое сообщение от мобильного приложения
func (s *reportService) IngestReport(ctx context.Context, report *models.Report) error {
	log := s.logger.WithFields(logrus.Fields{
		"service": "report",
		"method":  "IngestReport",
	})

	if len(report.Flags) == 0 {
		return fmt.Errorf("service: report must be flagged for at least one agency: %w", models.ErrInvalidInput)
	}
	for _, f := range report.Flags {
		if !f.IsAgency() {
			return fmt.Errorf("service: unknown agency %q in flag: %w", f, models.ErrInvalidInput)
		}
	}
	if report.Status == "" {
		report.Status = models.StatusBefore
	}

	if err := s.repo.Create(ctx, report); err != nil {
		log.WithError(err).Error("Failed to create report in repository")
		return fmt.Errorf("service: could not create report: %w", err)
	}

	log.WithField("report_id", report.ID).Info("Report ingested successfully")
	return nil
}

// ListReports возвращает сообщения, видимые роли сессии, с определенными населенными пунктами
func (s *reportService) ListReports(ctx context.Context, session models.Session) ([]*models.Report, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "report",
		"method":  "ListReports",
		"role":    session.Role,
	})

	all, err := s.repo.List(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to list reports from repository")
		return nil, fmt.Errorf("service: could not list reports: %w", err)
	}

	visible := VisibleReports(all, session.Role)
	s.enrichLocalities(ctx, visible)

	log.WithField("count", len(visible)).Info("Reports listed successfully")
	return visible, nil
}

// GetReport возвращает сообщение, если оно видимо роли сессии
func (s *reportService) GetReport(ctx context.Context, session models.Session, id uuid.UUID) (*models.Report, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":   "report",
		"method":    "GetReport",
		"report_id": id,
		"role":      session.Role,
	})

	report, err := s.fetch(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Failed to get report")
		return nil, fmt.Errorf("service: could not get report: %w", err)
	}
	if !canView(report, session.Role) {
		log.Warn("Report is not visible to role")
		return nil, fmt.Errorf("service: report %s: %w", id, models.ErrNotFound)
	}

	s.enrichLocalities(ctx, []*models.Report{report})
	return report, nil
}

// SetStatus сохраняет новый статус. Граф переходов не проверяется: любая роль,
// видящая сообщение, может выставить любой статус. Локальная копия меняется
// только после успешной записи в хранилище.
func (s *reportService) SetStatus(ctx context.Context, session models.Session, id uuid.UUID, status models.ReportStatus, expectedVersion int) (*models.Report, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":   "report",
		"method":    "SetStatus",
		"report_id": id,
		"status":    status,
		"role":      session.Role,
	})
	log.Info("Attempting to set report status")

	report, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Attempted to set status of a non-existent report")
		return nil, fmt.Errorf("service: report with id %s not found for status update: %w", id, err)
	}
	if !canView(report, session.Role) {
		return nil, fmt.Errorf("service: report %s: %w", id, models.ErrNotFound)
	}

	updated, err := s.repo.UpdateStatus(ctx, id, status, expectedVersion, changedBy(session))
	if err != nil {
		log.WithError(err).Error("Failed to update report status in repository")
		return nil, fmt.Errorf("service: could not update report status: %w", err)
	}

	// Новая версия вытесняет старую из кэша
	if err := s.repo.SetReportCache(ctx, updated); err != nil {
		log.WithError(err).Warn("Failed to refresh report cache")
	}

	log.WithField("version", updated.Version).Info("Report status updated successfully")
	return updated, nil
}

// StatusHistory возвращает журнал смены статусов видимого роли сообщения
func (s *reportService) StatusHistory(ctx context.Context, session models.Session, id uuid.UUID) ([]*models.StatusChange, error) {
	report, err := s.fetch(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service: could not get report: %w", err)
	}
	if !canView(report, session.Role) {
		return nil, fmt.Errorf("service: report %s: %w", id, models.ErrNotFound)
	}

	changes, err := s.repo.ListStatusHistory(ctx, id)
	if err != nil {
		s.logger.WithError(err).WithField("report_id", id).Error("Failed to list status history")
		return nil, fmt.Errorf("service: could not list status history: %w", err)
	}
	return changes, nil
}

// BlockReporter заносит номер автора сообщения в список заблокированных
func (s *reportService) BlockReporter(ctx context.Context, session models.Session, id uuid.UUID) (*models.BlockedNumber, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":   "report",
		"method":    "BlockReporter",
		"report_id": id,
		"role":      session.Role,
	})

	report, err := s.fetch(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Attempted to block reporter of a non-existent report")
		return nil, fmt.Errorf("service: could not get report: %w", err)
	}
	if !canView(report, session.Role) {
		return nil, fmt.Errorf("service: report %s: %w", id, models.ErrNotFound)
	}
	if report.PhoneNumber == "" {
		return nil, fmt.Errorf("service: report %s has no phone number: %w", id, models.ErrInvalidInput)
	}

	blocked := &models.BlockedNumber{
		ReportID:    report.ID,
		PhoneNumber: report.PhoneNumber,
		BlockedBy:   session.Role,
		Timestamp:   time.Now().UTC(),
	}
	if err := s.repo.BlockNumber(ctx, blocked); err != nil {
		log.WithError(err).Error("Failed to block number in repository")
		return nil, fmt.Errorf("service: could not block number: %w", err)
	}

	log.Info("Reporter number blocked")
	return blocked, nil
}

func (s *reportService) ListBlocked(ctx context.Context, session models.Session) ([]*models.BlockedNumber, error) {
	if !session.Role.IsSuperAdmin() {
		return nil, fmt.Errorf("service: blocked numbers are visible to super admin only: %w", models.ErrForbidden)
	}
	blocked, err := s.repo.ListBlocked(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: could not list blocked numbers: %w", err)
	}
	return blocked, nil
}

// fetch читает сообщение сначала из кэша, затем из БД
func (s *reportService) fetch(ctx context.Context, id uuid.UUID) (*models.Report, error) {
	cached, err := s.repo.GetReportFromCache(ctx, id)
	if err != nil {
		s.logger.WithError(err).WithField("report_id", id).Warn("Failed to read report cache")
	}
	if cached != nil {
		return cached, nil
	}

	report, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SetReportCache(ctx, report); err != nil {
		s.logger.WithError(err).WithField("report_id", id).Warn("Failed to cache report")
	}
	return report, nil
}

// enrichLocalities определяет населенные пункты для сообщений без place.
// Число одновременных запросов ограничено; если вызывающий ушел (ctx отменен),
// результаты отбрасываются.
func (s *reportService) enrichLocalities(ctx context.Context, reports []*models.Report) {
	if s.resolver == nil {
		return
	}

	places := make([]string, len(reports))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, r := range reports {
		if r.Place != "" || !r.HasLocation() {
			continue
		}
		lat, lng := *r.Latitude, *r.Longitude
		g.Go(func() error {
			places[i] = s.resolver.ResolveLocality(gctx, lat, lng)
			return nil
		})
	}
	_ = g.Wait()

	if ctx.Err() != nil {
		return
	}

	for i, place := range places {
		if place == "" {
			continue
		}
		reports[i].Place = place
		if place == models.UnknownLocality {
			continue
		}
		if err := s.repo.UpdatePlace(ctx, reports[i].ID, place); err != nil {
			s.logger.WithError(err).WithField("report_id", reports[i].ID).Warn("Failed to persist resolved place")
			continue
		}
		if err := s.repo.InvalidateReportCache(ctx, reports[i].ID); err != nil {
			s.logger.WithError(err).WithField("report_id", reports[i].ID).Warn("Failed to invalidate report cache")
		}
	}
}

func changedBy(session models.Session) string {
	if session.Username == "" {
		return string(session.Role)
	}
	return fmt.Sprintf("%s/%s", session.Role, session.Username)
}
