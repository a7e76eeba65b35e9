package scheduler

import (
	"bytes"
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingScanner struct {
	calls atomic.Int32
}

func (s *countingScanner) Scan(ctx context.Context) (int, error) {
	s.calls.Add(1)
	return 0, nil
}

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})
	return logger
}

func TestScheduler_RunsScan(t *testing.T) {
	scanner := &countingScanner{}
	s := NewScheduler(scanner, "@every 1s", time.Second, newTestLogger())
	require.NoError(t, s.Start())
	defer s.Stop(context.Background())

	assert.Eventually(t, func() bool { return scanner.calls.Load() > 0 }, 3*time.Second, 50*time.Millisecond)
}

func TestScheduler_InvalidSpec(t *testing.T) {
	s := NewScheduler(&countingScanner{}, "not a spec", time.Second, newTestLogger())
	assert.Error(t, s.Start())
}
