package notify

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	signatureHeader = "X-ResqAlert-Signature"
	popTimeout      = 5 * time.Second
	errorBackoff    = time.Second
)

// Worker забирает оповещения из очереди и отправляет их в SMS-шлюз.
// Неудачная доставка только логируется, повторов нет.
type Worker struct {
	redisClient *redis.Client
	logger      *logrus.Logger
	gatewayURL  string
	secret      string
	httpClient  *http.Client
}

func NewWorker(redisClient *redis.Client, logger *logrus.Logger, gatewayURL, secret string, timeout time.Duration) *Worker {
	return &Worker{
		redisClient: redisClient,
		logger:      logger,
		gatewayURL:  gatewayURL,
		secret:      secret,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Start запускает горутину обработки очереди; она завершается вместе с ctx
func (w *Worker) Start(ctx context.Context) {
	w.logger.Info("Starting SMS notification worker...")
	go func() {
		for {
			select {
			case <-ctx.Done():
				w.logger.Info("Stopping SMS notification worker.")
				return
			default:
				result, err := w.redisClient.BRPop(ctx, popTimeout, notificationQueueKey).Result()
				if err != nil {
					if errors.Is(err, redis.Nil) || errors.Is(err, context.Canceled) {
						continue
					}
					w.logger.WithError(err).Error("Failed to pop notification from Redis")
					time.Sleep(errorBackoff)
					continue
				}

				// result[0] - ключ, result[1] - значение
				w.process(ctx, result[1])
			}
		}
	}()
}

func (w *Worker) process(ctx context.Context, payload string) {
	var notification ReportNotification
	if err := json.Unmarshal([]byte(payload), &notification); err != nil {
		w.logger.WithError(err).Error("Failed to unmarshal notification from Redis")
		return
	}

	log := w.logger.WithField("report_id", notification.ReportID)
	if w.gatewayURL == "" {
		log.Warn("SMS gateway URL is not configured. Skipping notification.")
		return
	}

	if err := w.deliver(ctx, payload); err != nil {
		log.WithError(err).Error("Failed to deliver SMS notification")
		return
	}
	log.Info("SMS notification delivered.")
}

func (w *Worker) deliver(ctx context.Context, payload string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.gatewayURL, bytes.NewBufferString(payload))
	if err != nil {
		return fmt.Errorf("failed to create gateway request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if w.secret != "" {
		req.Header.Set(signatureHeader, Sign(payload, w.secret))
	}

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("gateway responded with status %d", resp.StatusCode)
	}
	return nil
}

// Sign возвращает HMAC-SHA256 подпись данных в hex
func Sign(data, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}
