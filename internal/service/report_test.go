package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/resqalert/internal/models"
	"github.com/shenikar/resqalert/internal/service/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах
	return logger
}

// newTestReportService создает сервис сообщений с моками хранилища и геокодера
func newTestReportService(t *testing.T) (*reportService, *mocks.MockReportRepository, *mocks.MockLocalityResolver) {
	ctrl := gomock.NewController(t)
	repoMock := mocks.NewMockReportRepository(ctrl)
	resolverMock := mocks.NewMockLocalityResolver(ctrl)

	svc := NewReportService(repoMock, resolverMock, newTestLogger(), 2)
	return svc.(*reportService), repoMock, resolverMock
}

func ptr[T any](v T) *T {
	return &v
}

func TestIngestReport_DefaultsStatus(t *testing.T) {
	svc, repoMock, _ := newTestReportService(t)
	ctx := context.Background()
	report := &models.Report{Flags: models.Flags{models.RolePNP}, Details: "Robbery"}

	repoMock.EXPECT().Create(ctx, report).Return(nil).Times(1)

	require.NoError(t, svc.IngestReport(ctx, report))
	assert.Equal(t, models.StatusBefore, report.Status)
}

func TestIngestReport_InvalidFlags(t *testing.T) {
	svc, _, _ := newTestReportService(t)

	err := svc.IngestReport(context.Background(), &models.Report{})
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	err = svc.IngestReport(context.Background(), &models.Report{Flags: models.Flags{"EMS"}})
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestListReports_FiltersByRoleAndResolvesPlaces(t *testing.T) {
	// Подготовка
	svc, repoMock, resolverMock := newTestReportService(t)
	ctx := context.Background()
	now := time.Now()

	pnpOnly := &models.Report{ID: uuid.New(), Flags: models.Flags{models.RolePNP},
		Latitude: ptr(15.1), Longitude: ptr(120.1), Timestamp: ptr(now.Add(-time.Hour))}
	bfpOnly := &models.Report{ID: uuid.New(), Flags: models.Flags{models.RoleBFP}, Timestamp: ptr(now)}
	shared := &models.Report{ID: uuid.New(), Flags: models.Flags{models.RoleBFP, models.RolePNP},
		Latitude: ptr(15.2), Longitude: ptr(120.2), Place: "Brgy. Known", Timestamp: ptr(now)}
	unknown := &models.Report{ID: uuid.New(), Flags: models.Flags{models.RolePNP},
		Latitude: ptr(0.0), Longitude: ptr(0.0)}

	// Ожидания
	repoMock.EXPECT().List(ctx).Return([]*models.Report{pnpOnly, bfpOnly, shared, unknown}, nil)
	resolverMock.EXPECT().ResolveLocality(gomock.Any(), 15.1, 120.1).Return("Brgy. San Roque")
	resolverMock.EXPECT().ResolveLocality(gomock.Any(), 0.0, 0.0).Return(models.UnknownLocality)
	repoMock.EXPECT().UpdatePlace(ctx, pnpOnly.ID, "Brgy. San Roque").Return(nil)
	repoMock.EXPECT().InvalidateReportCache(ctx, pnpOnly.ID).Return(nil)

	// Действие
	reports, err := svc.ListReports(ctx, models.Session{Role: models.RolePNP})

	// Проверки
	require.NoError(t, err)
	require.Len(t, reports, 3)
	assert.Equal(t, shared.ID, reports[0].ID)
	assert.Equal(t, pnpOnly.ID, reports[1].ID)
	assert.Equal(t, unknown.ID, reports[2].ID)
	assert.Equal(t, "Brgy. San Roque", reports[1].Place)
	assert.Equal(t, models.UnknownLocality, reports[2].Place)
}

func TestListReports_SuperAdminSeesAll(t *testing.T) {
	svc, repoMock, _ := newTestReportService(t)
	ctx := context.Background()
	all := []*models.Report{
		{ID: uuid.New(), Flags: models.Flags{models.RolePNP}},
		{ID: uuid.New(), Flags: models.Flags{models.RoleMDRRMO}},
	}

	repoMock.EXPECT().List(ctx).Return(all, nil)

	reports, err := svc.ListReports(ctx, models.Session{Role: models.RoleSuperAdmin})
	require.NoError(t, err)
	assert.Len(t, reports, 2)
}

func TestListReports_CancelledCallerDiscardsPlaces(t *testing.T) {
	svc, repoMock, resolverMock := newTestReportService(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report := &models.Report{ID: uuid.New(), Flags: models.Flags{models.RoleBFP}, Latitude: ptr(1.0), Longitude: ptr(2.0)}
	repoMock.EXPECT().List(ctx).Return([]*models.Report{report}, nil)
	resolverMock.EXPECT().ResolveLocality(gomock.Any(), 1.0, 2.0).Return("Late Place").AnyTimes()

	reports, err := svc.ListReports(ctx, models.Session{Role: models.RoleBFP})
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Empty(t, reports[0].Place)
}

func TestListReports_RepositoryError(t *testing.T) {
	svc, repoMock, _ := newTestReportService(t)
	ctx := context.Background()

	repoMock.EXPECT().List(ctx).Return(nil, errors.New("db down"))

	_, err := svc.ListReports(ctx, models.Session{Role: models.RolePNP})
	assert.Error(t, err)
}

func TestGetReport_FromDBAndCached(t *testing.T) {
	svc, repoMock, _ := newTestReportService(t)
	ctx := context.Background()
	report := &models.Report{ID: uuid.New(), Flags: models.Flags{models.RoleMDRRMO}, Place: "Capas"}

	repoMock.EXPECT().GetReportFromCache(ctx, report.ID).Return(nil, nil)
	repoMock.EXPECT().GetByID(ctx, report.ID).Return(report, nil)
	repoMock.EXPECT().SetReportCache(ctx, report).Return(nil)

	got, err := svc.GetReport(ctx, models.Session{Role: models.RoleMDRRMO}, report.ID)
	require.NoError(t, err)
	assert.Equal(t, report, got)
}

func TestGetReport_NotVisible(t *testing.T) {
	svc, repoMock, _ := newTestReportService(t)
	ctx := context.Background()
	report := &models.Report{ID: uuid.New(), Flags: models.Flags{models.RolePNP}}

	repoMock.EXPECT().GetReportFromCache(ctx, report.ID).Return(report, nil)

	_, err := svc.GetReport(ctx, models.Session{Role: models.RoleBFP}, report.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestSetStatus_Success(t *testing.T) {
	// Подготовка
	svc, repoMock, _ := newTestReportService(t)
	ctx := context.Background()
	id := uuid.New()
	session := models.Session{Role: models.RolePNP, Username: "desk1"}
	current := &models.Report{ID: id, Flags: models.Flags{models.RolePNP}, Status: models.StatusBefore, Version: 1}
	updated := &models.Report{ID: id, Flags: models.Flags{models.RolePNP}, Status: models.StatusAfter, Version: 2}

	// Ожидания
	gomock.InOrder(
		repoMock.EXPECT().GetByID(ctx, id).Return(current, nil),
		repoMock.EXPECT().UpdateStatus(ctx, id, models.StatusAfter, 1, "PNP/desk1").Return(updated, nil),
		repoMock.EXPECT().SetReportCache(ctx, updated).Return(nil),
	)

	// Действие
	got, err := svc.SetStatus(ctx, session, id, models.StatusAfter, 1)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, models.StatusAfter, got.Status)
	assert.Equal(t, 2, got.Version)
}

func TestSetStatus_AnyTransitionAllowed(t *testing.T) {
	svc, repoMock, _ := newTestReportService(t)
	ctx := context.Background()
	id := uuid.New()
	current := &models.Report{ID: id, Flags: models.Flags{models.RoleBFP}, Status: models.StatusAfter}

	repoMock.EXPECT().GetByID(ctx, id).Return(current, nil)
	repoMock.EXPECT().UpdateStatus(ctx, id, models.StatusBefore, 0, "BFP").
		Return(&models.Report{ID: id, Status: models.StatusBefore}, nil)
	repoMock.EXPECT().SetReportCache(ctx, gomock.Any()).Return(nil)

	got, err := svc.SetStatus(ctx, models.Session{Role: models.RoleBFP}, id, models.StatusBefore, 0)
	require.NoError(t, err)
	assert.Equal(t, models.StatusBefore, got.Status)
}

func TestSetStatus_WriteFailureLeavesNoChange(t *testing.T) {
	svc, repoMock, _ := newTestReportService(t)
	ctx := context.Background()
	id := uuid.New()
	current := &models.Report{ID: id, Flags: models.Flags{models.RolePNP}, Status: models.StatusBefore, Version: 4}

	repoMock.EXPECT().GetByID(ctx, id).Return(current, nil)
	repoMock.EXPECT().UpdateStatus(ctx, id, models.StatusDuring, 3, gomock.Any()).
		Return(nil, fmt.Errorf("version mismatch: %w", models.ErrConflict))

	_, err := svc.SetStatus(ctx, models.Session{Role: models.RolePNP}, id, models.StatusDuring, 3)
	assert.ErrorIs(t, err, models.ErrConflict)
	assert.Equal(t, models.StatusBefore, current.Status)
}

func TestSetStatus_NotVisible(t *testing.T) {
	svc, repoMock, _ := newTestReportService(t)
	ctx := context.Background()
	id := uuid.New()

	repoMock.EXPECT().GetByID(ctx, id).Return(&models.Report{ID: id, Flags: models.Flags{models.RolePNP}}, nil)

	_, err := svc.SetStatus(ctx, models.Session{Role: models.RoleMDRRMO}, id, models.StatusDuring, 0)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestStatusHistory(t *testing.T) {
	svc, repoMock, _ := newTestReportService(t)
	ctx := context.Background()
	id := uuid.New()
	changes := []*models.StatusChange{
		{ReportID: id, FromStatus: models.StatusBefore, ToStatus: models.StatusDuring, ChangedBy: "PNP/desk1"},
	}

	repoMock.EXPECT().GetReportFromCache(ctx, id).Return(&models.Report{ID: id, Flags: models.Flags{models.RolePNP}}, nil)
	repoMock.EXPECT().ListStatusHistory(ctx, id).Return(changes, nil)

	got, err := svc.StatusHistory(ctx, models.Session{Role: models.RolePNP}, id)
	require.NoError(t, err)
	assert.Equal(t, changes, got)
}

func TestBlockReporter(t *testing.T) {
	svc, repoMock, _ := newTestReportService(t)
	ctx := context.Background()
	report := &models.Report{ID: uuid.New(), Flags: models.Flags{models.RolePNP}, PhoneNumber: "+639171234567"}

	repoMock.EXPECT().GetReportFromCache(ctx, report.ID).Return(report, nil)
	repoMock.EXPECT().BlockNumber(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, b *models.BlockedNumber) error {
			assert.Equal(t, "+639171234567", b.PhoneNumber)
			assert.Equal(t, models.RolePNP, b.BlockedBy)
			b.ID = uuid.New()
			return nil
		})

	blocked, err := svc.BlockReporter(ctx, models.Session{Role: models.RolePNP}, report.ID)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, blocked.ID)
}

func TestBlockReporter_NoPhone(t *testing.T) {
	svc, repoMock, _ := newTestReportService(t)
	ctx := context.Background()
	report := &models.Report{ID: uuid.New(), Flags: models.Flags{models.RolePNP}}

	repoMock.EXPECT().GetReportFromCache(ctx, report.ID).Return(report, nil)

	_, err := svc.BlockReporter(ctx, models.Session{Role: models.RolePNP}, report.ID)
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestListBlocked_SuperAdminOnly(t *testing.T) {
	svc, repoMock, _ := newTestReportService(t)
	ctx := context.Background()

	_, err := svc.ListBlocked(ctx, models.Session{Role: models.RoleBFP})
	assert.ErrorIs(t, err, models.ErrForbidden)

	repoMock.EXPECT().ListBlocked(ctx).Return([]*models.BlockedNumber{{PhoneNumber: "123"}}, nil)
	blocked, err := svc.ListBlocked(ctx, models.Session{Role: models.RoleSuperAdmin})
	require.NoError(t, err)
	assert.Len(t, blocked, 1)
}
