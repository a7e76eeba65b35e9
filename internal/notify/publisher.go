package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/resqalert/internal/models"
)

const (
	notificationQueueKey = "sms_notifications"
)

// ReportNotification - SMS-оповещение ведомств о новом сообщении
type ReportNotification struct {
	ReportID  uuid.UUID  `json:"report_id"`
	Agencies  []string   `json:"agencies"`
	Message   string     `json:"message"`
	Latitude  *float64   `json:"latitude,omitempty"`
	Longitude *float64   `json:"longitude,omitempty"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

// NewReportNotification собирает текст оповещения по сообщению
func NewReportNotification(report *models.Report) ReportNotification {
	var b strings.Builder
	fmt.Fprintf(&b, "ResqAlert: new incident report for %s", strings.Join(report.Flags.Strings(), ", "))
	if len(report.AccidentType) > 0 {
		fmt.Fprintf(&b, " (%s)", strings.Join(report.AccidentType, ", "))
	}
	if report.Place != "" {
		fmt.Fprintf(&b, " at %s", report.Place)
	} else if report.HasLocation() {
		fmt.Fprintf(&b, " at %s", models.CoordinateKey(*report.Latitude, *report.Longitude))
	}
	if d := strings.TrimSpace(report.Details); d != "" {
		fmt.Fprintf(&b, ": %s", d)
	}

	return ReportNotification{
		ReportID:  report.ID,
		Agencies:  report.Flags.Strings(),
		Message:   b.String(),
		Latitude:  report.Latitude,
		Longitude: report.Longitude,
		Timestamp: report.Timestamp,
	}
}

// Publisher - интерфейс для постановки оповещений в очередь
type Publisher interface {
	Publish(ctx context.Context, notification ReportNotification) error
}

// RedisPublisher - реализация Publisher, использующая список Redis как очередь
type RedisPublisher struct {
	redisClient *redis.Client
}

func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{
		redisClient: client,
	}
}

// Publish кладет оповещение в левую часть очереди, воркер забирает справа
func (p *RedisPublisher) Publish(ctx context.Context, notification ReportNotification) error {
	payload, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	if err := p.redisClient.LPush(ctx, notificationQueueKey, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish notification to Redis: %w", err)
	}
	return nil
}
