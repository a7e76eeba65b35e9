package v1

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shenikar/resqalert/internal/export"
	"github.com/shenikar/resqalert/internal/models"
)

// @Summary Create a handoff request
// @Description Ask another agency flagged on the incident to take it over
// @Tags Requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateHandoffRequest true "Handoff request"
// @Success 201 {object} HandoffResponse
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 403 {object} map[string]string "Target agency is not flagged on the incident"
// @Failure 404 {object} map[string]string "Incident not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /requests [post]
func (h *Handler) createRequest(c *gin.Context) {
	var input CreateHandoffRequest
	log := h.logger.WithField("method", "createRequest")
	if !h.bindAndValidate(c, log, &input) {
		return
	}

	toRole, err := models.ParseRole(input.ToRole)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	incidentID := uuid.MustParse(input.IncidentID)

	request, err := h.services.Requests.CreateRequest(c.Request.Context(), currentSession(c), incidentID, toRole)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, ModelToHandoffResponse(request))
}

// @Summary List handoff requests
// @Description List requests sent or received by the current role, newest first
// @Tags Requests
// @Produce json
// @Security BearerAuth
// @Success 200 {array} HandoffResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /requests [get]
func (h *Handler) listRequests(c *gin.Context) {
	log := h.logger.WithField("method", "listRequests")

	requests, err := h.services.Requests.ListRequests(c.Request.Context(), currentSession(c))
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelsToHandoffResponses(requests))
}

// @Summary Get handoff request by ID
// @Tags Requests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 200 {object} HandoffResponse
// @Failure 400 {object} map[string]string "Invalid request ID"
// @Failure 404 {object} map[string]string "Request not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /requests/{id} [get]
func (h *Handler) getRequest(c *gin.Context) {
	id, ok := parseID(c, "request")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "getRequest").WithField("id", id)

	request, err := h.services.Requests.GetRequest(c.Request.Context(), currentSession(c), id)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToHandoffResponse(request))
}

// @Summary Acknowledge a handoff request
// @Description Move a pending request to During
// @Tags Requests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 200 {object} HandoffResponse
// @Failure 403 {object} map[string]string "Only the receiving agency can act"
// @Failure 409 {object} map[string]string "Request is already closed"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /requests/{id}/acknowledge [patch]
func (h *Handler) acknowledgeRequest(c *gin.Context) {
	id, ok := parseID(c, "request")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "acknowledgeRequest").WithField("id", id)

	request, err := h.services.Requests.Acknowledge(c.Request.Context(), currentSession(c), id)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToHandoffResponse(request))
}

// @Summary Approve a handoff request
// @Description Approve the request and record incident details. Empty fields get default values.
// @Tags Requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Param details body ApproveHandoffRequest false "Approval details"
// @Success 200 {object} RequestDetailResponse
// @Failure 403 {object} map[string]string "Only the receiving agency can act"
// @Failure 409 {object} map[string]string "Request is already closed"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /requests/{id}/approve [post]
func (h *Handler) approveRequest(c *gin.Context) {
	id, ok := parseID(c, "request")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "approveRequest").WithField("id", id)

	var input ApproveHandoffRequest
	if err := c.ShouldBindJSON(&input); err != nil && !errors.Is(err, io.EOF) {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	detail, err := h.services.Requests.Approve(c.Request.Context(), currentSession(c), id, DTOToApprovalInput(input))
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToRequestDetailResponse(detail))
}

// @Summary Decline a handoff request
// @Tags Requests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 200 {object} HandoffResponse
// @Failure 403 {object} map[string]string "Only the receiving agency can act"
// @Failure 409 {object} map[string]string "Request is already closed"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /requests/{id}/decline [patch]
func (h *Handler) declineRequest(c *gin.Context) {
	id, ok := parseID(c, "request")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "declineRequest").WithField("id", id)

	request, err := h.services.Requests.Decline(c.Request.Context(), currentSession(c), id)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToHandoffResponse(request))
}

// @Summary Export approved handoff request as PDF
// @Tags Requests
// @Produce application/pdf
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 200 {file} file
// @Failure 404 {object} map[string]string "Request not found"
// @Failure 409 {object} map[string]string "Request is not approved"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /requests/{id}/pdf [get]
func (h *Handler) requestPDF(c *gin.Context) {
	id, ok := parseID(c, "request")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "requestPDF").WithField("id", id)
	session := currentSession(c)

	request, err := h.services.Requests.GetRequest(c.Request.Context(), session, id)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	if request.Status != models.RequestApproved {
		c.JSON(http.StatusConflict, gin.H{"error": "only approved requests can be exported"})
		return
	}

	var buf bytes.Buffer
	if err := export.Request(&buf, request, session.Role); err != nil {
		h.respondError(c, log, err)
		return
	}
	pdfAttachment(c, "request-"+id.String()+".pdf", buf.Bytes())
}
