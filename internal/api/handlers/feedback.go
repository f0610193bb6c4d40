// backend/internal/api/handlers/feedback.go
package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/growthhub-io/growthhub/backend/internal/apperrors"
	"github.com/growthhub-io/growthhub/backend/internal/auth"
	"github.com/growthhub-io/growthhub/backend/internal/models"
	"github.com/growthhub-io/growthhub/backend/internal/services"
	"github.com/growthhub-io/growthhub/backend/pkg/utils"
	"github.com/sirupsen/logrus"
)

const defaultDashboardWindow = 30 * 24 * time.Hour

type FeedbackHandler struct {
	feedback  *services.FeedbackService
	analytics *services.AnalyticsService
	logger    *logrus.Logger
}

func NewFeedbackHandler(
	feedback *services.FeedbackService,
	analytics *services.AnalyticsService,
	logger *logrus.Logger,
) *FeedbackHandler {
	return &FeedbackHandler{
		feedback:  feedback,
		analytics: analytics,
		logger:    logger,
	}
}

// HandleSubmitFeedback processes a feedback submission
func (h *FeedbackHandler) HandleSubmitFeedback(c *gin.Context) {
	var req models.SubmitFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "validation_error", "invalid request body: "+err.Error())
		return
	}

	user := auth.CurrentUser(c)
	if user == nil {
		utils.ErrorResponse(c, http.StatusUnauthorized, "unauthorized", "authentication required")
		return
	}

	if req.SessionID == "" {
		// Basic fingerprint fallback so anonymous widget embeds still group
		req.SessionID = utils.GenerateSessionID(c.ClientIP() + c.GetHeader("User-Agent"))
	}

	record, err := h.feedback.SubmitFeedback(c.Request.Context(), user, &req, c.GetHeader("User-Agent"))
	if err != nil {
		h.respondError(c, err, "Failed to submit feedback")
		return
	}

	go h.analytics.InvalidateCache(context.Background())

	utils.DataResponse(c, http.StatusCreated, record)
}

// HandleSubmitNPS processes an NPS survey response
func (h *FeedbackHandler) HandleSubmitNPS(c *gin.Context) {
	var req models.SubmitNPSRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "validation_error", "invalid request body: "+err.Error())
		return
	}

	user := auth.CurrentUser(c)
	if user == nil {
		utils.ErrorResponse(c, http.StatusUnauthorized, "unauthorized", "authentication required")
		return
	}

	record, err := h.feedback.SubmitNPS(c.Request.Context(), user, &req)
	if err != nil {
		h.respondError(c, err, "Failed to submit NPS response")
		return
	}

	go h.analytics.InvalidateCache(context.Background())

	utils.DataResponse(c, http.StatusCreated, record)
}

// HandleDashboard serves the aggregated analytics view. The range defaults
// to the last 30 days when no dates are given.
func (h *FeedbackHandler) HandleDashboard(c *gin.Context) {
	now := time.Now().UTC()
	from := now.Add(-defaultDashboardWindow)
	to := now

	var err error
	if raw := c.Query("start_date"); raw != "" {
		if from, err = parseDate(raw); err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "validation_error", "start_date must be an ISO date (2006-01-02)")
			return
		}
	}
	if raw := c.Query("end_date"); raw != "" {
		if to, err = parseDate(raw); err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "validation_error", "end_date must be an ISO date (2006-01-02)")
			return
		}
		// Make the end date inclusive
		to = to.Add(24*time.Hour - time.Nanosecond)
	}

	includeRecords := c.Query("include_records") == "true"

	dashboard, err := h.analytics.Dashboard(c.Request.Context(), from, to, includeRecords)
	if err != nil {
		h.respondError(c, err, "Failed to compute dashboard")
		return
	}

	utils.DataResponse(c, http.StatusOK, dashboard)
}

// HandleTrends serves the daily trend buckets. Both dates are required.
func (h *FeedbackHandler) HandleTrends(c *gin.Context) {
	startRaw := c.Query("start_date")
	endRaw := c.Query("end_date")
	if startRaw == "" || endRaw == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "validation_error", "start_date and end_date are required")
		return
	}

	from, err := parseDate(startRaw)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "validation_error", "start_date must be an ISO date (2006-01-02)")
		return
	}
	to, err := parseDate(endRaw)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "validation_error", "end_date must be an ISO date (2006-01-02)")
		return
	}

	report, err := h.analytics.Trends(c.Request.Context(), from, to)
	if err != nil {
		h.respondError(c, err, "Failed to fetch trends")
		return
	}

	utils.DataResponse(c, http.StatusOK, report)
}

// HandleUpdateStatus moves a feedback record through the workflow.
// Admin-gated by the router.
func (h *FeedbackHandler) HandleUpdateStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "validation_error", "id must be a positive integer")
		return
	}

	var req models.StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "validation_error", "invalid request body: "+err.Error())
		return
	}

	if err := h.feedback.UpdateStatus(c.Request.Context(), uint(id), req.Status); err != nil {
		h.respondError(c, err, "Failed to update feedback status")
		return
	}

	utils.DataResponse(c, http.StatusOK, gin.H{
		"id":     id,
		"status": req.Status,
	})
}

func (h *FeedbackHandler) respondError(c *gin.Context, err error, logMessage string) {
	status, code := apperrors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		h.logger.WithError(err).Error(logMessage)
		utils.ErrorResponse(c, status, code, "unexpected error")
		return
	}
	utils.ErrorResponse(c, status, code, err.Error())
}

func parseDate(value string) (time.Time, error) {
	return time.Parse("2006-01-02", value)
}
