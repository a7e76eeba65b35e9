package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shenikar/resqalert/internal/models"
)

// @Summary Submit feedback
// @Description Submit feedback about the console as an agency. A ticket number is assigned.
// @Tags Feedback
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param feedback body CreateFeedbackRequest true "Feedback message"
// @Success 201 {object} FeedbackResponse
// @Failure 400 {object} map[string]string "Message too short"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /feedbacks [post]
func (h *Handler) createFeedback(c *gin.Context) {
	var input CreateFeedbackRequest
	log := h.logger.WithField("method", "createFeedback")
	if !h.bindAndValidate(c, log, &input) {
		return
	}

	feedback, err := h.services.Feedback.Submit(c.Request.Context(), currentSession(c), input.Message)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, ModelToFeedbackResponse(feedback))
}

// @Summary List feedback
// @Description Get a paginated list of feedback, newest first. Super admin only.
// @Tags Feedback
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Number of items per page" default(10)
// @Success 200 {object} FeedbackListResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /feedbacks [get]
func (h *Handler) listFeedback(c *gin.Context) {
	log := h.logger.WithField("method", "listFeedback")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", strconv.Itoa(h.cfg.FeedbackPageSize)))

	items, total, err := h.services.Feedback.List(c.Request.Context(), currentSession(c), page, pageSize)
	if err != nil {
		h.respondError(c, log, err)
		return
	}

	c.JSON(http.StatusOK, FeedbackListResponse{
		Items:    ModelsToFeedbackResponses(items),
		Total:    total,
		Page:     max(page, 1),
		PageSize: pageSize,
	})
}

// @Summary Change feedback status
// @Description Mark feedback as Resolved or Unresolved. Super admin only.
// @Tags Feedback
// @Accept json
// @Security BearerAuth
// @Param id path string true "Feedback ID"
// @Param status body UpdateFeedbackStatusRequest true "New status"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid feedback ID or status"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Feedback not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /feedbacks/{id}/status [patch]
func (h *Handler) updateFeedbackStatus(c *gin.Context) {
	id, ok := parseID(c, "feedback")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "updateFeedbackStatus").WithField("id", id)

	var input UpdateFeedbackStatusRequest
	if !h.bindAndValidate(c, log, &input) {
		return
	}
	status, err := models.ParseFeedbackStatus(input.Status)
	if err != nil {
		h.respondError(c, log, err)
		return
	}

	if err := h.services.Feedback.UpdateStatus(c.Request.Context(), currentSession(c), id, status); err != nil {
		h.respondError(c, log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
