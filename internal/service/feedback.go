package service

//go:generate mockgen -source=feedback.go -destination=mocks/feedback_mock.go -package=mocks

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shenikar/resqalert/internal/models"
	"github.com/sirupsen/logrus"
)

const minFeedbackLength = 10

// FeedbackRepository определяет контракт хранилища отзывов
type FeedbackRepository interface {
	Create(ctx context.Context, feedback *models.Feedback) error
	List(ctx context.Context, page, pageSize int) ([]*models.Feedback, int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.FeedbackStatus) error
	// NextTicketSequence возвращает следующий порядковый номер обращения за день (с 1)
	NextTicketSequence(ctx context.Context, day string) (int64, error)
}

type FeedbackService interface {
	Submit(ctx context.Context, session models.Session, message string) (*models.Feedback, error)
	List(ctx context.Context, session models.Session, page, pageSize int) ([]*models.Feedback, int, error)
	UpdateStatus(ctx context.Context, session models.Session, id uuid.UUID, status models.FeedbackStatus) error
}

type feedbackService struct {
	repo   FeedbackRepository
	logger *logrus.Logger
	now    func() time.Time
}

func NewFeedbackService(repo FeedbackRepository, logger *logrus.Logger) FeedbackService {
	return &feedbackService{
		repo:   repo,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Submit сохраняет отзыв ведомства и выдает номер обращения вида #YYYYMMDD001
func (s *feedbackService) Submit(ctx context.Context, session models.Session, message string) (*models.Feedback, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "feedback",
		"method":  "Submit",
		"role":    session.Role,
	})

	if !session.Role.IsAgency() {
		return nil, fmt.Errorf("service: only agencies can submit feedback: %w", models.ErrForbidden)
	}
	message = strings.TrimSpace(message)
	if utf8.RuneCountInString(message) < minFeedbackLength {
		return nil, fmt.Errorf("service: feedback must be at least %d characters: %w", minFeedbackLength, models.ErrInvalidInput)
	}

	now := s.now()
	day := now.Format("20060102")
	seq, err := s.repo.NextTicketSequence(ctx, day)
	if err != nil {
		log.WithError(err).Error("Failed to allocate feedback ticket")
		return nil, fmt.Errorf("service: could not allocate ticket: %w", err)
	}

	feedback := &models.Feedback{
		Ticket:      fmt.Sprintf("#%s%03d", day, seq),
		Message:     message,
		SubmittedBy: session.Role,
		Status:      models.FeedbackUnresolved,
		Timestamp:   now,
	}
	if err := s.repo.Create(ctx, feedback); err != nil {
		log.WithError(err).Error("Failed to create feedback in repository")
		return nil, fmt.Errorf("service: could not create feedback: %w", err)
	}

	log.WithField("ticket", feedback.Ticket).Info("Feedback submitted successfully")
	return feedback, nil
}

// List возвращает страницу отзывов (новые первыми) и общее количество
func (s *feedbackService) List(ctx context.Context, session models.Session, page, pageSize int) ([]*models.Feedback, int, error) {
	if !session.Role.IsSuperAdmin() {
		return nil, 0, fmt.Errorf("service: feedback is visible to super admin only: %w", models.ErrForbidden)
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	items, total, err := s.repo.List(ctx, page, pageSize)
	if err != nil {
		s.logger.WithError(err).Error("Failed to list feedback from repository")
		return nil, 0, fmt.Errorf("service: could not list feedback: %w", err)
	}
	return items, total, nil
}

func (s *feedbackService) UpdateStatus(ctx context.Context, session models.Session, id uuid.UUID, status models.FeedbackStatus) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "feedback",
		"method":      "UpdateStatus",
		"feedback_id": id,
		"status":      status,
	})

	if !session.Role.IsSuperAdmin() {
		return fmt.Errorf("service: feedback is managed by super admin only: %w", models.ErrForbidden)
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		log.WithError(err).Error("Failed to update feedback status in repository")
		return fmt.Errorf("service: could not update feedback status: %w", err)
	}

	log.Info("Feedback status updated successfully")
	return nil
}
