package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Scanner - периодическая задача поиска новых сообщений
type Scanner interface {
	Scan(ctx context.Context) (int, error)
}

// Scheduler запускает фоновые задачи по расписанию cron
type Scheduler struct {
	cron    *cron.Cron
	scanner Scanner
	spec    string
	timeout time.Duration
	logger  *logrus.Logger
}

func NewScheduler(scanner Scanner, spec string, timeout time.Duration, logger *logrus.Logger) *Scheduler {
	return &Scheduler{
		cron:    cron.New(cron.WithLocation(time.UTC)),
		scanner: scanner,
		spec:    spec,
		timeout: timeout,
		logger:  logger,
	}
}

// Start регистрирует задачи и запускает планировщик
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.scanNewReports); err != nil {
		return err
	}
	s.cron.Start()
	s.logger.WithField("spec", s.spec).Info("Scheduler started")
	return nil
}

// Stop останавливает планировщик и ждет завершения запущенных задач
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
		s.logger.Info("Scheduler stopped")
	case <-ctx.Done():
		s.logger.Warn("Scheduler stop timed out")
	}
}

func (s *Scheduler) scanNewReports() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if _, err := s.scanner.Scan(ctx); err != nil {
		s.logger.WithError(err).Error("New report scan failed")
	}
}
