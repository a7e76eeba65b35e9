package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

const (
	connectAttempts = 5
	retryDelay      = 2 * time.Second
)

// NewPostgresDB создает пул соединений PostgreSQL. База в docker-compose
// поднимается не сразу, поэтому ping повторяется несколько раз.
func NewPostgresDB(ctx context.Context, dsn string, log *logrus.Logger) (*pgxpool.Pool, error) {
	cfgPool, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("ошибка при разборе конфигурации postgres: %w", err)
	}
	cfgPool.MaxConnIdleTime = 5 * time.Minute
	cfgPool.HealthCheckPeriod = time.Minute

	dbpool, err := pgxpool.NewWithConfig(ctx, cfgPool)
	if err != nil {
		return nil, fmt.Errorf("не удалось создать пул соединений: %w", err)
	}

	for attempt := 1; ; attempt++ {
		err = dbpool.Ping(ctx)
		if err == nil {
			return dbpool, nil
		}
		if attempt == connectAttempts {
			break
		}
		log.WithError(err).WithField("attempt", attempt).Warn("PostgreSQL is not ready, retrying")
		select {
		case <-ctx.Done():
			dbpool.Close()
			return nil, ctx.Err()
		case <-time.After(retryDelay):
		}
	}

	dbpool.Close()
	return nil, fmt.Errorf("не удалось выполнить ping к postgres: %w", err)
}
