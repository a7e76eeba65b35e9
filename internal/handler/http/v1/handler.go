package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/shenikar/resqalert/internal/config"
	"github.com/shenikar/resqalert/internal/models"
	"github.com/shenikar/resqalert/internal/service"
	"github.com/sirupsen/logrus"
)

const sessionKey = "session"

// Authorizer проверяет права роли на ресурс
type Authorizer interface {
	Allowed(role models.Role, obj, act string) bool
}

// Services - набор сервисов, которые обслуживает HTTP-слой
type Services struct {
	Auth      service.AuthService
	Reports   service.ReportService
	Requests  service.RequestService
	Feedback  service.FeedbackService
	Dashboard service.DashboardService
}

type Handler struct {
	services   Services
	authorizer Authorizer
	logger     *logrus.Logger
	validate   *validator.Validate
	cfg        *config.Config
	upgrader   websocket.Upgrader
}

func NewHandler(services Services, authorizer Authorizer, logger *logrus.Logger, cfg *config.Config) *Handler {
	return &Handler{
		services:   services,
		authorizer: authorizer,
		logger:     logger,
		validate:   validator.New(),
		cfg:        cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// respondError переводит доменную ошибку в HTTP-статус.
// Всё, что не является доменной ошибкой, отдается как 500 без подробностей.
func (h *Handler) respondError(c *gin.Context, log *logrus.Entry, err error) {
	var status int
	switch {
	case errors.Is(err, models.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, models.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, models.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, models.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, models.ErrConflict):
		status = http.StatusConflict
	default:
		log.WithError(err).Error("Request failed")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	log.WithError(err).Warn("Request rejected")
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}

// bindAndValidate разбирает JSON-тело и проверяет теги validate
func (h *Handler) bindAndValidate(c *gin.Context, log *logrus.Entry, input any) bool {
	if err := c.ShouldBindJSON(input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return false
	}
	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

func parseID(c *gin.Context, what string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + what + " ID"})
		return uuid.Nil, false
	}
	return id, true
}

// currentSession достает сессию, положенную SessionMiddleware
func currentSession(c *gin.Context) models.Session {
	if v, ok := c.Get(sessionKey); ok {
		if session, ok := v.(models.Session); ok {
			return session
		}
	}
	return models.Session{}
}

func pdfAttachment(c *gin.Context, filename string, data []byte) {
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}

// @Summary Get application health status
// @Description Get health status of the application
// @Tags System
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string "Status OK"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
