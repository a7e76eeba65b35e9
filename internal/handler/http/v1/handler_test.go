package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/shenikar/resqalert/internal/auth"
	"github.com/shenikar/resqalert/internal/config"
	"github.com/shenikar/resqalert/internal/models"
	"github.com/shenikar/resqalert/internal/service/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type testMocks struct {
	auth      *mocks.MockAuthService
	reports   *mocks.MockReportService
	requests  *mocks.MockRequestService
	feedback  *mocks.MockFeedbackService
	dashboard *mocks.MockDashboardService
}

var (
	saSession  = models.Session{AdminID: uuid.New(), Username: "admin", Role: models.RoleSuperAdmin, TokenID: "sa-token"}
	pnpSession = models.Session{AdminID: uuid.New(), Username: "pnp", Role: models.RolePNP, TokenID: "pnp-token"}
)

// newTestHandler создает Handler с мокированными сервисами и настоящим RBAC
func newTestHandler(t *testing.T) (*Handler, *testMocks, *gin.Engine) {
	ctrl := gomock.NewController(t)
	m := &testMocks{
		auth:      mocks.NewMockAuthService(ctrl),
		reports:   mocks.NewMockReportService(ctrl),
		requests:  mocks.NewMockRequestService(ctrl),
		feedback:  mocks.NewMockFeedbackService(ctrl),
		dashboard: mocks.NewMockDashboardService(ctrl),
	}

	// Токен в тестах - это просто роль оператора
	m.auth.EXPECT().Authenticate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, token string) (models.Session, error) {
			switch token {
			case "sa":
				return saSession, nil
			case "pnp":
				return pnpSession, nil
			}
			return models.Session{}, fmt.Errorf("bad token: %w", models.ErrUnauthorized)
		}).AnyTimes()

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	cfg := &config.Config{
		APIKeys:               []string{"test-api-key"},
		FeedbackPageSize:      10,
		DashboardPushInterval: 20 * time.Millisecond,
	}

	rbac, err := auth.NewRBAC()
	require.NoError(t, err)

	handler := NewHandler(Services{
		Auth:      m.auth,
		Reports:   m.reports,
		Requests:  m.requests,
		Feedback:  m.feedback,
		Dashboard: m.dashboard,
	}, rbac, logger, cfg)

	// Настройка Gin роутера для тестов
	gin.SetMode(gin.TestMode)
	router := gin.New()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	return handler, m, router
}

// makeRequest - вспомогательная функция для выполнения HTTP-запросов
func makeRequest(router *gin.Engine, method, url string, body io.Reader, headers ...map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, h := range headers {
		for key, value := range h {
			req.Header.Set(key, value)
		}
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

func jsonBody(t *testing.T, v any) io.Reader {
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func TestHealthCheck(t *testing.T) {
	_, _, router := newTestHandler(t)

	w := makeRequest(router, "GET", "/api/v1/system/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestLogin_Success(t *testing.T) {
	_, m, router := newTestHandler(t)
	expires := time.Now().Add(time.Hour).UTC().Truncate(time.Second)

	m.auth.EXPECT().
		Login(gomock.Any(), models.RolePNP, "officer", "secret-password").
		Return("jwt-token", models.Session{Username: "officer", Role: models.RolePNP, ExpiresAt: expires}, nil).
		Times(1)

	w := makeRequest(router, "POST", "/api/v1/auth/login", jsonBody(t, LoginRequest{
		Role:     "pnp",
		Username: "officer",
		Password: "secret-password",
	}))

	assert.Equal(t, http.StatusOK, w.Code)
	var resp LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "jwt-token", resp.Token)
	assert.Equal(t, "PNP", resp.Role)
	assert.True(t, expires.Equal(resp.ExpiresAt))
}

func TestLogin_UnknownRole(t *testing.T) {
	_, m, router := newTestHandler(t)
	m.auth.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, "POST", "/api/v1/auth/login", jsonBody(t, LoginRequest{
		Role:     "coast-guard",
		Username: "officer",
		Password: "secret",
	}))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	_, m, router := newTestHandler(t)
	m.auth.EXPECT().
		Login(gomock.Any(), models.RoleBFP, "officer", "wrong").
		Return("", models.Session{}, fmt.Errorf("service: invalid credentials: %w", models.ErrUnauthorized))

	w := makeRequest(router, "POST", "/api/v1/auth/login", jsonBody(t, LoginRequest{
		Role:     "BFP",
		Username: "officer",
		Password: "wrong",
	}))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogout(t *testing.T) {
	_, m, router := newTestHandler(t)
	m.auth.EXPECT().Logout(gomock.Any(), pnpSession).Return(nil).Times(1)

	w := makeRequest(router, "POST", "/api/v1/auth/logout", nil, bearer("pnp"))

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestUpdateAccount_UsernameTaken(t *testing.T) {
	_, m, router := newTestHandler(t)
	m.auth.EXPECT().
		UpdateAccount(gomock.Any(), pnpSession, "taken", "").
		Return(fmt.Errorf("repository: username taken: %w", models.ErrConflict))

	w := makeRequest(router, "PATCH", "/api/v1/auth/account", jsonBody(t, UpdateAccountRequest{Username: "taken"}), bearer("pnp"))

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestUpdateAccount_PasswordTooLong(t *testing.T) {
	_, m, router := newTestHandler(t)
	m.auth.EXPECT().UpdateAccount(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, "PATCH", "/api/v1/auth/account",
		jsonBody(t, UpdateAccountRequest{Password: strings.Repeat("p", 73)}), bearer("pnp"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSessionMiddleware_RejectsMissingAndBadTokens(t *testing.T) {
	_, m, router := newTestHandler(t)
	m.reports.EXPECT().ListReports(gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, "GET", "/api/v1/reports", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = makeRequest(router, "GET", "/api/v1/reports", nil, bearer("forged"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestIngestReport_Success(t *testing.T) {
	_, m, router := newTestHandler(t)
	reportID := uuid.New()

	m.reports.EXPECT().
		IngestReport(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, r *models.Report) error {
			assert.Equal(t, models.Flags{models.RoleBFP}, r.Flags)
			assert.Equal(t, "+639171234567", r.PhoneNumber)
			r.ID = reportID
			r.Status = models.StatusBefore
			return nil
		}).Times(1)

	// flag приходит одиночной строкой
	body := `{"flag":"bfp","latitude":15.4876,"longitude":120.5966,"details":"House fire","phone_number":"+639171234567"}`
	w := makeRequest(router, "POST", "/api/v1/ingest/reports", strings.NewReader(body), map[string]string{"X-API-Key": "test-api-key"})

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp ReportResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, reportID, resp.ID)
	assert.Equal(t, []string{"BFP"}, resp.Flag)
	assert.Equal(t, "Before", resp.Status)
}

func TestIngestReport_Unauthorized(t *testing.T) {
	_, m, router := newTestHandler(t)
	m.reports.EXPECT().IngestReport(gomock.Any(), gomock.Any()).Times(0)

	body := `{"flag":["PNP"]}`
	w := makeRequest(router, "POST", "/api/v1/ingest/reports", strings.NewReader(body))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = makeRequest(router, "POST", "/api/v1/ingest/reports", strings.NewReader(body), map[string]string{"X-API-Key": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid API key")
}

func TestIngestReport_ValidationError(t *testing.T) {
	_, m, router := newTestHandler(t)
	m.reports.EXPECT().IngestReport(gomock.Any(), gomock.Any()).Times(0)

	// Нет ни одного ведомства и широта вне диапазона
	body := `{"flag":[],"latitude":123.0,"longitude":120.0}`
	w := makeRequest(router, "POST", "/api/v1/ingest/reports", strings.NewReader(body), map[string]string{"X-API-Key": "test-api-key"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListReports_Success(t *testing.T) {
	_, m, router := newTestHandler(t)
	ts := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	reports := []*models.Report{
		{ID: uuid.New(), Flags: models.Flags{models.RolePNP}, Status: models.StatusDuring, Timestamp: &ts, Place: "San Fernando"},
	}
	m.reports.EXPECT().ListReports(gomock.Any(), pnpSession).Return(reports, nil).Times(1)

	w := makeRequest(router, "GET", "/api/v1/reports", nil, bearer("pnp"))

	assert.Equal(t, http.StatusOK, w.Code)
	var resp []ReportResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "San Fernando", resp[0].Place)
	assert.Equal(t, "During", resp[0].Status)
}

func TestGetReport_InvalidID(t *testing.T) {
	_, m, router := newTestHandler(t)
	m.reports.EXPECT().GetReport(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, "GET", "/api/v1/reports/not-a-uuid", nil, bearer("pnp"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid report ID")
}

func TestGetReport_NotFound(t *testing.T) {
	_, m, router := newTestHandler(t)
	id := uuid.New()
	m.reports.EXPECT().GetReport(gomock.Any(), pnpSession, id).
		Return(nil, fmt.Errorf("service: report %s: %w", id, models.ErrNotFound))

	w := makeRequest(router, "GET", "/api/v1/reports/"+id.String(), nil, bearer("pnp"))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateReportStatus(t *testing.T) {
	id := uuid.New()

	t.Run("success with alias", func(t *testing.T) {
		_, m, router := newTestHandler(t)
		m.reports.EXPECT().
			SetStatus(gomock.Any(), pnpSession, id, models.StatusAfter, 3).
			Return(&models.Report{ID: id, Status: models.StatusAfter, Version: 4}, nil)

		w := makeRequest(router, "PATCH", "/api/v1/reports/"+id.String()+"/status",
			jsonBody(t, UpdateStatusRequest{Status: "after", Version: 3}), bearer("pnp"))

		assert.Equal(t, http.StatusOK, w.Code)
		var resp ReportResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 4, resp.Version)
	})

	t.Run("stale version", func(t *testing.T) {
		_, m, router := newTestHandler(t)
		m.reports.EXPECT().
			SetStatus(gomock.Any(), pnpSession, id, models.StatusDuring, 1).
			Return(nil, fmt.Errorf("repository: version mismatch: %w", models.ErrConflict))

		w := makeRequest(router, "PATCH", "/api/v1/reports/"+id.String()+"/status",
			jsonBody(t, UpdateStatusRequest{Status: "During", Version: 1}), bearer("pnp"))

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("unknown status", func(t *testing.T) {
		_, m, router := newTestHandler(t)
		m.reports.EXPECT().SetStatus(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		w := makeRequest(router, "PATCH", "/api/v1/reports/"+id.String()+"/status",
			jsonBody(t, UpdateStatusRequest{Status: "Archived"}), bearer("pnp"))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestReportHistory(t *testing.T) {
	_, m, router := newTestHandler(t)
	id := uuid.New()
	changedAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	m.reports.EXPECT().StatusHistory(gomock.Any(), saSession, id).Return([]*models.StatusChange{
		{ReportID: id, FromStatus: models.StatusBefore, ToStatus: models.StatusDuring, ChangedBy: "admin", ChangedAt: changedAt},
	}, nil)

	w := makeRequest(router, "GET", "/api/v1/reports/"+id.String()+"/history", nil, bearer("sa"))

	assert.Equal(t, http.StatusOK, w.Code)
	var resp []StatusChangeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "Before", resp[0].FromStatus)
	assert.Equal(t, "During", resp[0].ToStatus)
}

func TestBlockReporter(t *testing.T) {
	_, m, router := newTestHandler(t)
	id := uuid.New()
	m.reports.EXPECT().BlockReporter(gomock.Any(), pnpSession, id).Return(&models.BlockedNumber{
		ID:          uuid.New(),
		ReportID:    id,
		PhoneNumber: "+639171234567",
		BlockedBy:   models.RolePNP,
	}, nil)

	w := makeRequest(router, "POST", "/api/v1/reports/"+id.String()+"/block", nil, bearer("pnp"))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "+639171234567")
}

func TestListBlocked_SuperAdminOnly(t *testing.T) {
	_, m, router := newTestHandler(t)
	m.reports.EXPECT().ListBlocked(gomock.Any(), saSession).Return([]*models.BlockedNumber{}, nil).Times(1)

	w := makeRequest(router, "GET", "/api/v1/blocked-numbers", nil, bearer("pnp"))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = makeRequest(router, "GET", "/api/v1/blocked-numbers", nil, bearer("sa"))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestReportPDF(t *testing.T) {
	_, m, router := newTestHandler(t)
	id := uuid.New()
	m.reports.EXPECT().GetReport(gomock.Any(), pnpSession, id).Return(&models.Report{
		ID:      id,
		Flags:   models.Flags{models.RolePNP},
		Status:  models.StatusBefore,
		Details: "Robbery at the market",
	}, nil)

	w := makeRequest(router, "GET", "/api/v1/reports/"+id.String()+"/pdf", nil, bearer("pnp"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "report-"+id.String()+".pdf")
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))
}

func TestCreateRequest(t *testing.T) {
	incidentID := uuid.New()

	t.Run("success", func(t *testing.T) {
		_, m, router := newTestHandler(t)
		m.requests.EXPECT().
			CreateRequest(gomock.Any(), pnpSession, incidentID, models.RoleBFP).
			Return(&models.HandoffRequest{
				ID:         uuid.New(),
				IncidentID: incidentID,
				FromRole:   models.RolePNP,
				ToRole:     models.RoleBFP,
				Status:     models.RequestPending,
			}, nil)

		w := makeRequest(router, "POST", "/api/v1/requests",
			jsonBody(t, CreateHandoffRequest{IncidentID: incidentID.String(), ToRole: "bfp"}), bearer("pnp"))

		assert.Equal(t, http.StatusCreated, w.Code)
		var resp HandoffResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Pending", resp.Status)
		assert.Nil(t, resp.Approval)
	})

	t.Run("target not flagged", func(t *testing.T) {
		_, m, router := newTestHandler(t)
		m.requests.EXPECT().
			CreateRequest(gomock.Any(), pnpSession, incidentID, models.RoleMDRRMO).
			Return(nil, fmt.Errorf("service: not flagged: %w", models.ErrForbidden))

		w := makeRequest(router, "POST", "/api/v1/requests",
			jsonBody(t, CreateHandoffRequest{IncidentID: incidentID.String(), ToRole: "MDRRMO"}), bearer("pnp"))

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("bad incident id", func(t *testing.T) {
		_, m, router := newTestHandler(t)
		m.requests.EXPECT().CreateRequest(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		w := makeRequest(router, "POST", "/api/v1/requests",
			jsonBody(t, CreateHandoffRequest{IncidentID: "123", ToRole: "BFP"}), bearer("pnp"))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestApproveRequest(t *testing.T) {
	id := uuid.New()

	t.Run("empty body uses defaults", func(t *testing.T) {
		_, m, router := newTestHandler(t)
		m.requests.EXPECT().
			Approve(gomock.Any(), pnpSession, id, models.ApprovalInput{}).
			Return(&models.RequestDetail{
				ID:          uuid.New(),
				RequestID:   id,
				Status:      models.RequestApproved,
				WhoInvolved: "N/A",
			}, nil)

		w := makeRequest(router, "POST", "/api/v1/requests/"+id.String()+"/approve", nil, bearer("pnp"))

		assert.Equal(t, http.StatusOK, w.Code)
		var resp RequestDetailResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Approved", resp.Status)
		assert.Equal(t, "N/A", resp.WhoInvolved)
	})

	t.Run("already closed", func(t *testing.T) {
		_, m, router := newTestHandler(t)
		m.requests.EXPECT().
			Approve(gomock.Any(), pnpSession, id, models.ApprovalInput{PeopleCount: 2, Details: "Two injured"}).
			Return(nil, fmt.Errorf("service: request is already Declined: %w", models.ErrConflict))

		w := makeRequest(router, "POST", "/api/v1/requests/"+id.String()+"/approve",
			jsonBody(t, ApproveHandoffRequest{PeopleCount: 2, Details: "Two injured"}), bearer("pnp"))

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestAcknowledgeAndDeclineRequest(t *testing.T) {
	_, m, router := newTestHandler(t)
	id := uuid.New()
	m.requests.EXPECT().Acknowledge(gomock.Any(), pnpSession, id).
		Return(&models.HandoffRequest{ID: id, Status: models.RequestDuring}, nil)
	m.requests.EXPECT().Decline(gomock.Any(), pnpSession, id).
		Return(nil, fmt.Errorf("service: only BFP can act: %w", models.ErrForbidden))

	w := makeRequest(router, "PATCH", "/api/v1/requests/"+id.String()+"/acknowledge", nil, bearer("pnp"))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"During"`)

	w = makeRequest(router, "PATCH", "/api/v1/requests/"+id.String()+"/decline", nil, bearer("pnp"))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequestPDF(t *testing.T) {
	id := uuid.New()

	t.Run("not approved", func(t *testing.T) {
		_, m, router := newTestHandler(t)
		m.requests.EXPECT().GetRequest(gomock.Any(), pnpSession, id).
			Return(&models.HandoffRequest{ID: id, Status: models.RequestPending}, nil)

		w := makeRequest(router, "GET", "/api/v1/requests/"+id.String()+"/pdf", nil, bearer("pnp"))

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("approved", func(t *testing.T) {
		_, m, router := newTestHandler(t)
		m.requests.EXPECT().GetRequest(gomock.Any(), pnpSession, id).
			Return(&models.HandoffRequest{
				ID:       id,
				FromRole: models.RoleBFP,
				ToRole:   models.RolePNP,
				Status:   models.RequestApproved,
				Approval: &models.RequestDetail{Status: models.RequestApproved, PeopleCount: 3},
			}, nil)

		w := makeRequest(router, "GET", "/api/v1/requests/"+id.String()+"/pdf", nil, bearer("pnp"))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	})
}

func TestCreateFeedback(t *testing.T) {
	_, m, router := newTestHandler(t)
	m.feedback.EXPECT().Submit(gomock.Any(), pnpSession, "The map is slow to load").
		Return(&models.Feedback{
			ID:          uuid.New(),
			Ticket:      "#20250301001",
			Message:     "The map is slow to load",
			SubmittedBy: models.RolePNP,
			Status:      models.FeedbackUnresolved,
		}, nil)

	w := makeRequest(router, "POST", "/api/v1/feedbacks",
		jsonBody(t, CreateFeedbackRequest{Message: "The map is slow to load"}), bearer("pnp"))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "#20250301001")
}

func TestListFeedback(t *testing.T) {
	_, m, router := newTestHandler(t)
	m.feedback.EXPECT().List(gomock.Any(), saSession, 2, 10).
		Return([]*models.Feedback{{ID: uuid.New(), Ticket: "#20250301011"}}, 11, nil).
		Times(1)

	// Агентства не видят отзывы
	w := makeRequest(router, "GET", "/api/v1/feedbacks", nil, bearer("pnp"))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = makeRequest(router, "GET", "/api/v1/feedbacks?page=2", nil, bearer("sa"))
	assert.Equal(t, http.StatusOK, w.Code)
	var resp FeedbackListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 11, resp.Total)
	assert.Equal(t, 2, resp.Page)
	assert.Equal(t, 10, resp.PageSize)
	require.Len(t, resp.Items, 1)
}

func TestUpdateFeedbackStatus(t *testing.T) {
	_, m, router := newTestHandler(t)
	id := uuid.New()
	m.feedback.EXPECT().UpdateStatus(gomock.Any(), saSession, id, models.FeedbackResolved).Return(nil).Times(1)

	w := makeRequest(router, "PATCH", "/api/v1/feedbacks/"+id.String()+"/status",
		jsonBody(t, UpdateFeedbackStatusRequest{Status: "Resolved"}), bearer("pnp"))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = makeRequest(router, "PATCH", "/api/v1/feedbacks/"+id.String()+"/status",
		jsonBody(t, UpdateFeedbackStatusRequest{Status: "Resolved"}), bearer("sa"))
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestGetDashboard(t *testing.T) {
	_, m, router := newTestHandler(t)
	m.dashboard.EXPECT().Stats(gomock.Any(), pnpSession).Return(&models.DashboardStats{
		TotalReports: 2,
		ByAgency:     map[models.Role]int{models.RolePNP: 2},
	}, nil)

	w := makeRequest(router, "GET", "/api/v1/dashboard", nil, bearer("pnp"))

	assert.Equal(t, http.StatusOK, w.Code)
	var resp models.DashboardStats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.TotalReports)
	assert.Equal(t, 2, resp.ByAgency[models.RolePNP])
}

func TestGetDashboard_ServiceError(t *testing.T) {
	_, m, router := newTestHandler(t)
	m.dashboard.EXPECT().Stats(gomock.Any(), saSession).Return(nil, fmt.Errorf("db down"))

	w := makeRequest(router, "GET", "/api/v1/dashboard", nil, bearer("sa"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "internal server error")
}

func TestStreamDashboard(t *testing.T) {
	_, m, router := newTestHandler(t)
	m.dashboard.EXPECT().Stats(gomock.Any(), saSession).
		Return(&models.DashboardStats{TotalReports: 5}, nil).
		MinTimes(2)

	server := httptest.NewServer(router)
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/v1/dashboard/stream?access_token=sa"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	assert.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)

	// Первое сообщение приходит сразу, второе - по таймеру
	for i := 0; i < 2; i++ {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		var stats models.DashboardStats
		require.NoError(t, conn.ReadJSON(&stats))
		assert.Equal(t, 5, stats.TotalReports)
	}
}

func TestStreamDashboard_Unauthorized(t *testing.T) {
	_, _, router := newTestHandler(t)
	server := httptest.NewServer(router)
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/v1/dashboard/stream"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
