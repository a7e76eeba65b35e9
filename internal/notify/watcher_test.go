package notify_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shenikar/resqalert/internal/models"
	"github.com/shenikar/resqalert/internal/notify"
	"github.com/shenikar/resqalert/internal/notify/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestWatcher(t *testing.T) (*notify.Watcher, *mocks.MockReportSource, *mocks.MockPublisher) {
	ctrl := gomock.NewController(t)
	source := mocks.NewMockReportSource(ctrl)
	publisher := mocks.NewMockPublisher(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	return notify.NewWatcher(source, publisher, logger, 10), source, publisher
}

func TestWatcher_Scan(t *testing.T) {
	watcher, source, publisher := newTestWatcher(t)
	ctx := context.Background()
	first := &models.Report{ID: uuid.New(), Flags: models.Flags{models.RolePNP}, Details: "Theft"}
	second := &models.Report{ID: uuid.New(), Flags: models.Flags{models.RoleBFP}, Details: "Fire"}

	source.EXPECT().ListUnnotified(ctx, 10).Return([]*models.Report{first, second}, nil)
	gomock.InOrder(
		publisher.EXPECT().Publish(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, n notify.ReportNotification) error {
				assert.Equal(t, first.ID, n.ReportID)
				assert.Equal(t, []string{"PNP"}, n.Agencies)
				return nil
			}),
		source.EXPECT().MarkNotified(ctx, first.ID).Return(nil),
		publisher.EXPECT().Publish(ctx, gomock.Any()).Return(errors.New("redis down")),
	)

	queued, err := watcher.Scan(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, queued)
}

func TestWatcher_ScanListError(t *testing.T) {
	watcher, source, _ := newTestWatcher(t)
	ctx := context.Background()

	source.EXPECT().ListUnnotified(ctx, 10).Return(nil, errors.New("db down"))

	_, err := watcher.Scan(ctx)
	assert.Error(t, err)
}

func TestNewReportNotification(t *testing.T) {
	lat, lng := 15.5, 120.6
	report := &models.Report{
		ID:           uuid.New(),
		Flags:        models.Flags{models.RolePNP, models.RoleMDRRMO},
		AccidentType: []string{"Flood"},
		Latitude:     &lat,
		Longitude:    &lng,
		Details:      " Rising water near the bridge ",
	}

	n := notify.NewReportNotification(report)
	assert.Equal(t, "ResqAlert: new incident report for PNP, MDRRMO (Flood) at 15.5,120.6: Rising water near the bridge", n.Message)

	report.Place = "Brgy. Matatalaib"
	n = notify.NewReportNotification(report)
	assert.Contains(t, n.Message, "at Brgy. Matatalaib")
}
