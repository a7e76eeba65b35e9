package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/resqalert/internal/models"
	"github.com/shenikar/resqalert/internal/service"
)

// Счетчик номеров обращений живет чуть дольше суток, за которые он ведется
const ticketCounterTTL = 48 * time.Hour

type FeedbackRepository struct {
	db          *pgxpool.Pool
	redisClient *redis.Client
}

func NewFeedbackRepository(db *pgxpool.Pool, redisClient *redis.Client) service.FeedbackRepository {
	return &FeedbackRepository{
		db:          db,
		redisClient: redisClient,
	}
}

func (r *FeedbackRepository) Create(ctx context.Context, feedback *models.Feedback) error {
	query := `
		INSERT INTO feedbacks (ticket, message, submitted_by, status, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id;
	`
	err := r.db.QueryRow(ctx, query,
		feedback.Ticket,
		feedback.Message,
		string(feedback.SubmittedBy),
		string(feedback.Status),
		feedback.Timestamp,
	).Scan(&feedback.ID)
	if err != nil {
		return fmt.Errorf("failed to create feedback: %w", err)
	}
	return nil
}

// List возвращает страницу отзывов (новые первыми) и общее количество
func (r *FeedbackRepository) List(ctx context.Context, page, pageSize int) ([]*models.Feedback, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM feedbacks;`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count feedback: %w", err)
	}

	offset := (page - 1) * pageSize
	query := `
		SELECT id, ticket, message, submitted_by, status, created_at
		FROM feedbacks
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.db.Query(ctx, query, pageSize, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list feedback: %w", err)
	}
	defer rows.Close()

	items := make([]*models.Feedback, 0)
	for rows.Next() {
		f := &models.Feedback{}
		var submittedBy, status string
		if err := rows.Scan(&f.ID, &f.Ticket, &f.Message, &submittedBy, &status, &f.Timestamp); err != nil {
			return nil, 0, fmt.Errorf("failed to scan feedback row: %w", err)
		}
		f.SubmittedBy = models.Role(submittedBy)
		f.Status = models.FeedbackStatus(status)
		items = append(items, f)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error list iteration: %w", err)
	}
	return items, total, nil
}

func (r *FeedbackRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.FeedbackStatus) error {
	cmdTag, err := r.db.Exec(ctx, `UPDATE feedbacks SET status = $1 WHERE id = $2;`, string(status), id)
	if err != nil {
		return fmt.Errorf("failed to update feedback status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("feedback with id %s not found for update: %w", id, models.ErrNotFound)
	}
	return nil
}

// NextTicketSequence атомарно выдает следующий номер обращения за день
func (r *FeedbackRepository) NextTicketSequence(ctx context.Context, day string) (int64, error) {
	return nextDailySequence(ctx, r.redisClient, day)
}

func nextDailySequence(ctx context.Context, client *redis.Client, day string) (int64, error) {
	key := fmt.Sprintf("feedback:ticket:%s", day)
	seq, err := client.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to increment ticket counter: %w", err)
	}
	if seq == 1 {
		if err := client.Expire(ctx, key, ticketCounterTTL).Err(); err != nil {
			return 0, fmt.Errorf("failed to set ticket counter ttl: %w", err)
		}
	}
	return seq, nil
}
