package v1

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shenikar/resqalert/internal/export"
	"github.com/shenikar/resqalert/internal/models"
)

// @Summary Ingest an incident report
// @Description Accept a new incident report from the mobile app. Requires API key.
// @Tags Reports
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param report body IngestReportRequest true "Incident report"
// @Success 201 {object} ReportResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /ingest/reports [post]
func (h *Handler) ingestReport(c *gin.Context) {
	var input IngestReportRequest
	log := h.logger.WithField("method", "ingestReport")
	if !h.bindAndValidate(c, log, &input) {
		return
	}

	model := DTOToReportModel(input)
	if err := h.services.Reports.IngestReport(c.Request.Context(), model); err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, ModelToReportResponse(model))
}

// @Summary List incident reports
// @Description List reports visible to the current role, newest first, with resolved localities
// @Tags Reports
// @Produce json
// @Security BearerAuth
// @Success 200 {array} ReportResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /reports [get]
func (h *Handler) listReports(c *gin.Context) {
	log := h.logger.WithField("method", "listReports")

	reports, err := h.services.Reports.ListReports(c.Request.Context(), currentSession(c))
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelsToReportResponses(reports))
}

// @Summary Get report by ID
// @Tags Reports
// @Produce json
// @Security BearerAuth
// @Param id path string true "Report ID"
// @Success 200 {object} ReportResponse
// @Failure 400 {object} map[string]string "Invalid report ID"
// @Failure 404 {object} map[string]string "Report not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /reports/{id} [get]
func (h *Handler) getReport(c *gin.Context) {
	id, ok := parseID(c, "report")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "getReport").WithField("id", id)

	report, err := h.services.Reports.GetReport(c.Request.Context(), currentSession(c), id)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToReportResponse(report))
}

// @Summary Change report status
// @Description Set the report status (Before, During, After, Invalid). Pass version to reject stale writes.
// @Tags Reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Report ID"
// @Param status body UpdateStatusRequest true "New status"
// @Success 200 {object} ReportResponse
// @Failure 400 {object} map[string]string "Invalid report ID or status"
// @Failure 404 {object} map[string]string "Report not found"
// @Failure 409 {object} map[string]string "Report was changed by someone else"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /reports/{id}/status [patch]
func (h *Handler) updateReportStatus(c *gin.Context) {
	id, ok := parseID(c, "report")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "updateReportStatus").WithField("id", id)

	var input UpdateStatusRequest
	if !h.bindAndValidate(c, log, &input) {
		return
	}
	status, err := models.ParseReportStatus(input.Status)
	if err != nil {
		h.respondError(c, log, err)
		return
	}

	report, err := h.services.Reports.SetStatus(c.Request.Context(), currentSession(c), id, status, input.Version)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToReportResponse(report))
}

// @Summary Get report status history
// @Tags Reports
// @Produce json
// @Security BearerAuth
// @Param id path string true "Report ID"
// @Success 200 {array} StatusChangeResponse
// @Failure 400 {object} map[string]string "Invalid report ID"
// @Failure 404 {object} map[string]string "Report not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /reports/{id}/history [get]
func (h *Handler) reportHistory(c *gin.Context) {
	id, ok := parseID(c, "report")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "reportHistory").WithField("id", id)

	changes, err := h.services.Reports.StatusHistory(c.Request.Context(), currentSession(c), id)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelsToStatusChangeResponses(changes))
}

// @Summary Block the reporter's phone number
// @Description Add the phone number of a fake report to the blocklist
// @Tags Reports
// @Produce json
// @Security BearerAuth
// @Param id path string true "Report ID"
// @Success 201 {object} BlockedNumberResponse
// @Failure 400 {object} map[string]string "Invalid report ID or report has no phone number"
// @Failure 404 {object} map[string]string "Report not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /reports/{id}/block [post]
func (h *Handler) blockReporter(c *gin.Context) {
	id, ok := parseID(c, "report")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "blockReporter").WithField("id", id)

	blocked, err := h.services.Reports.BlockReporter(c.Request.Context(), currentSession(c), id)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, ModelToBlockedNumberResponse(blocked))
}

// @Summary Export report as PDF
// @Tags Reports
// @Produce application/pdf
// @Security BearerAuth
// @Param id path string true "Report ID"
// @Success 200 {file} file
// @Failure 400 {object} map[string]string "Invalid report ID"
// @Failure 404 {object} map[string]string "Report not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /reports/{id}/pdf [get]
func (h *Handler) reportPDF(c *gin.Context) {
	id, ok := parseID(c, "report")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "reportPDF").WithField("id", id)
	session := currentSession(c)

	report, err := h.services.Reports.GetReport(c.Request.Context(), session, id)
	if err != nil {
		h.respondError(c, log, err)
		return
	}

	var buf bytes.Buffer
	if err := export.Report(&buf, report, session.Role); err != nil {
		h.respondError(c, log, err)
		return
	}
	pdfAttachment(c, "report-"+id.String()+".pdf", buf.Bytes())
}

// @Summary List blocked phone numbers
// @Tags Reports
// @Produce json
// @Security BearerAuth
// @Success 200 {array} BlockedNumberResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /blocked-numbers [get]
func (h *Handler) listBlocked(c *gin.Context) {
	log := h.logger.WithField("method", "listBlocked")

	blocked, err := h.services.Reports.ListBlocked(c.Request.Context(), currentSession(c))
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelsToBlockedNumberResponses(blocked))
}
