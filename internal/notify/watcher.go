package notify

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shenikar/resqalert/internal/models"
	"github.com/sirupsen/logrus"
)

// ReportSource - сообщения, о которых еще не отправлено оповещение
type ReportSource interface {
	ListUnnotified(ctx context.Context, limit int) ([]*models.Report, error)
	MarkNotified(ctx context.Context, id uuid.UUID) error
}

// Watcher находит новые сообщения и ставит оповещения о них в очередь
type Watcher struct {
	reports   ReportSource
	publisher Publisher
	logger    *logrus.Logger
	batchSize int
}

func NewWatcher(reports ReportSource, publisher Publisher, logger *logrus.Logger, batchSize int) *Watcher {
	if batchSize < 1 {
		batchSize = 50
	}
	return &Watcher{
		reports:   reports,
		publisher: publisher,
		logger:    logger,
		batchSize: batchSize,
	}
}

// Scan обрабатывает одну пачку новых сообщений и возвращает число поставленных
// в очередь оповещений. Сообщение помечается оповещенным только после публикации.
func (w *Watcher) Scan(ctx context.Context) (int, error) {
	reports, err := w.reports.ListUnnotified(ctx, w.batchSize)
	if err != nil {
		return 0, fmt.Errorf("notify: could not list new reports: %w", err)
	}

	queued := 0
	for _, r := range reports {
		log := w.logger.WithField("report_id", r.ID)
		if err := w.publisher.Publish(ctx, NewReportNotification(r)); err != nil {
			log.WithError(err).Error("Failed to publish notification")
			continue
		}
		if err := w.reports.MarkNotified(ctx, r.ID); err != nil {
			log.WithError(err).Error("Failed to mark report notified")
			continue
		}
		queued++
	}

	if queued > 0 {
		w.logger.WithField("count", queued).Info("New report notifications queued")
	}
	return queued, nil
}
