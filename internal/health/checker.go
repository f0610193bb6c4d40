package health

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/growthhub-io/growthhub/backend/internal/database"
	"github.com/growthhub-io/growthhub/backend/internal/models"
	"github.com/sirupsen/logrus"
)

// Checker probes the service's dependencies and persists the results so
// health history survives restarts.
type Checker struct {
	dbManager    *database.Manager
	healthRepo   models.SystemHealthRepository
	logger       *logrus.Logger
	sentimentURL string
	httpClient   *http.Client
}

func NewChecker(dbManager *database.Manager, healthRepo models.SystemHealthRepository, logger *logrus.Logger, sentimentURL string) *Checker {
	return &Checker{
		dbManager:    dbManager,
		healthRepo:   healthRepo,
		logger:       logger,
		sentimentURL: sentimentURL,
		httpClient:   &http.Client{Timeout: 5 * time.Second},
	}
}

// ServiceHealth represents the health status of a single dependency
type ServiceHealth struct {
	Name         string `json:"name"`
	Status       string `json:"status"`
	ResponseTime int    `json:"response_time_ms"`
	Error        string `json:"error,omitempty"`
	LastChecked  string `json:"last_checked"`
}

// OverallHealth represents the overall system health
type OverallHealth struct {
	Status   string          `json:"status"`
	Services []ServiceHealth `json:"services"`
}

// CheckAll probes every dependency. The service is unhealthy when postgres
// is down and degraded when any optional dependency fails.
func (hc *Checker) CheckAll(ctx context.Context) OverallHealth {
	checks := []func(ctx context.Context) ServiceHealth{
		hc.checkDatabase,
		hc.checkRedis,
	}
	if hc.sentimentURL != "" {
		checks = append(checks, hc.checkSentimentAPI)
	}

	overall := OverallHealth{Status: "healthy"}
	for _, check := range checks {
		result := check(ctx)
		overall.Services = append(overall.Services, result)

		if err := hc.healthRepo.UpdateServiceHealth(result.Name, result.Status, result.ResponseTime, result.Error); err != nil {
			hc.logger.WithError(err).WithField("service", result.Name).
				Warn("Failed to persist health check result")
		}

		if result.Status != "healthy" {
			if result.Name == "postgres" {
				overall.Status = "unhealthy"
			} else if overall.Status == "healthy" {
				overall.Status = "degraded"
			}
		}
	}

	return overall
}

func (hc *Checker) checkDatabase(ctx context.Context) ServiceHealth {
	start := time.Now()
	err := hc.dbManager.PingDatabase()
	return hc.result("postgres", start, err)
}

func (hc *Checker) checkRedis(ctx context.Context) ServiceHealth {
	start := time.Now()
	err := hc.dbManager.PingRedis()
	return hc.result("redis", start, err)
}

func (hc *Checker) checkSentimentAPI(ctx context.Context) ServiceHealth {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, hc.sentimentURL+"/health", nil)
	if err != nil {
		return hc.result("sentiment_api", start, err)
	}

	resp, err := hc.httpClient.Do(req)
	if err != nil {
		return hc.result("sentiment_api", start, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		err = fmt.Errorf("sentiment API returned status %d", resp.StatusCode)
	}
	return hc.result("sentiment_api", start, err)
}

func (hc *Checker) result(name string, start time.Time, err error) ServiceHealth {
	health := ServiceHealth{
		Name:         name,
		Status:       "healthy",
		ResponseTime: int(time.Since(start).Milliseconds()),
		LastChecked:  time.Now().UTC().Format(time.RFC3339),
	}
	if err != nil {
		health.Status = "unhealthy"
		health.Error = err.Error()
	}
	return health
}
