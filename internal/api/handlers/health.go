package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/growthhub-io/growthhub/backend/internal/health"
	"github.com/growthhub-io/growthhub/backend/internal/models"
	"github.com/growthhub-io/growthhub/backend/pkg/utils"
	"github.com/sirupsen/logrus"
)

type HealthHandler struct {
	checker *health.Checker
	logger  *logrus.Logger
}

func NewHealthHandler(checker *health.Checker, logger *logrus.Logger) *HealthHandler {
	return &HealthHandler{
		checker: checker,
		logger:  logger,
	}
}

// HandleHealth reports dependency health. Returns 503 when postgres is
// unreachable so load balancers rotate the instance out.
func (h *HealthHandler) HandleHealth(c *gin.Context) {
	overall := h.checker.CheckAll(c.Request.Context())

	services := make(map[string]string, len(overall.Services))
	for _, s := range overall.Services {
		services[s.Name] = s.Status
	}

	response := models.HealthResponse{
		Status:    overall.Status,
		Service:   "growthhub-feedback-api",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Services:  services,
	}

	status := http.StatusOK
	if overall.Status == "unhealthy" {
		status = http.StatusServiceUnavailable
	}

	utils.DataResponse(c, status, response)
}
