package v1

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shenikar/resqalert/internal/export"
)

const defaultPushInterval = 10 * time.Second

// @Summary Get dashboard statistics
// @Description Totals per agency and status, monthly counts and heatmap points over reports visible to the role
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.DashboardStats
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /dashboard [get]
func (h *Handler) getDashboard(c *gin.Context) {
	log := h.logger.WithField("method", "getDashboard")

	stats, err := h.services.Dashboard.Stats(c.Request.Context(), currentSession(c))
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// @Summary Export dashboard as PDF
// @Tags Dashboard
// @Produce application/pdf
// @Security BearerAuth
// @Success 200 {file} file
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /dashboard/pdf [get]
func (h *Handler) dashboardPDF(c *gin.Context) {
	log := h.logger.WithField("method", "dashboardPDF")
	session := currentSession(c)

	stats, err := h.services.Dashboard.Stats(c.Request.Context(), session)
	if err != nil {
		h.respondError(c, log, err)
		return
	}

	var buf bytes.Buffer
	if err := export.Dashboard(&buf, stats, session.Role); err != nil {
		h.respondError(c, log, err)
		return
	}
	pdfAttachment(c, "dashboard-"+stats.GeneratedAt.Format("20060102")+".pdf", buf.Bytes())
}

// @Summary Stream dashboard statistics
// @Description Websocket that pushes dashboard statistics right away and then on every interval. Pass the token as access_token.
// @Tags Dashboard
// @Security BearerAuth
// @Param access_token query string false "Bearer token for clients that cannot set headers"
// @Success 101 "Switching Protocols"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /dashboard/stream [get]
func (h *Handler) streamDashboard(c *gin.Context) {
	log := h.logger.WithField("method", "streamDashboard")
	session := currentSession(c)

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.WithError(err).Warn("Failed to upgrade connection")
		return
	}
	defer conn.Close()

	// Клиент ничего не присылает, но читать нужно, чтобы заметить закрытие
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	interval := h.cfg.DashboardPushInterval
	if interval <= 0 {
		interval = defaultPushInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	ctx := c.Request.Context()
	push := func() bool {
		stats, err := h.services.Dashboard.Stats(ctx, session)
		if err != nil {
			log.WithError(err).Error("Failed to compute dashboard stats")
			return true
		}
		if err := conn.WriteJSON(stats); err != nil {
			log.WithError(err).Debug("Dashboard client went away")
			return false
		}
		return true
	}

	log.WithField("role", session.Role).Info("Dashboard stream opened")
	if !push() {
		return
	}
	for {
		select {
		case <-closed:
			log.WithField("role", session.Role).Info("Dashboard stream closed")
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !push() {
				return
			}
		}
	}
}
