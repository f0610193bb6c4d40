package services

import (
	"context"
	"fmt"
	"time"

	"github.com/growthhub-io/growthhub/backend/internal/analytics"
	"github.com/growthhub-io/growthhub/backend/internal/database"
	"github.com/growthhub-io/growthhub/backend/internal/models"
	"github.com/growthhub-io/growthhub/backend/internal/repository"
	"github.com/growthhub-io/growthhub/backend/pkg/utils"
	"github.com/sirupsen/logrus"
)

const dashboardCacheTTL = 5 * time.Minute

// Dashboard is the full analytics payload served to clients. Overview's
// nps_score field carries the aggregator's placeholder; the NPS block holds
// the computed summary.
type Dashboard struct {
	Overview    analytics.OverviewMetrics       `json:"overview"`
	Categories  []analytics.CategoryRollup      `json:"categories"`
	Sentiment   analytics.SentimentDistribution `json:"sentiment"`
	NPS         analytics.NPSSummary            `json:"nps"`
	Themes      []string                        `json:"common_themes"`
	ActionItems []analytics.ActionItem          `json:"action_items"`
	Records     []models.FeedbackRecord         `json:"records,omitempty"`
}

type TrendsReport struct {
	StartDate string                       `json:"start_date"`
	EndDate   string                       `json:"end_date"`
	Buckets   []models.FeedbackTrendRecord `json:"buckets"`
}

type AnalyticsService struct {
	repos  *repository.RepositoryManager
	cache  *database.Cache // nil disables caching
	logger *logrus.Logger
}

func NewAnalyticsService(
	repos *repository.RepositoryManager,
	cache *database.Cache,
	logger *logrus.Logger,
) *AnalyticsService {
	return &AnalyticsService{
		repos:  repos,
		cache:  cache,
		logger: logger,
	}
}

// Dashboard fetches the records in range, runs the aggregator over them,
// and returns the composed payload. Results are cached per requested range
// for a short window.
func (s *AnalyticsService) Dashboard(ctx context.Context, from, to time.Time, includeRecords bool) (*Dashboard, error) {
	cacheKey := fmt.Sprintf(database.DashboardKey, utils.MD5Hash(fmt.Sprintf(
		"%s:%s:%t", from.Format("2006-01-02"), to.Format("2006-01-02"), includeRecords)))

	if s.cache != nil {
		cached := &Dashboard{}
		if err := s.cache.GetCachedAnalytics(ctx, cacheKey, cached); err == nil {
			s.logger.Debug("Dashboard served from cache")
			return cached, nil
		}
	}

	feedback, err := s.repos.Feedback.GetByDateRange(from, to)
	if err != nil {
		return nil, fmt.Errorf("fetch feedback: %w", err)
	}
	nps, err := s.repos.NPS.GetByDateRange(from, to)
	if err != nil {
		return nil, fmt.Errorf("fetch nps responses: %w", err)
	}

	dashboard := &Dashboard{
		Overview:    analytics.ComputeOverview(feedback),
		Categories:  analytics.ComputeCategoryRollup(feedback),
		Sentiment:   analytics.ComputeSentimentDistribution(feedback),
		NPS:         analytics.SummarizeNPS(nps),
		Themes:      analytics.ExtractCommonThemes(feedback),
		ActionItems: analytics.GenerateActionItems(feedback),
	}
	if includeRecords {
		dashboard.Records = feedback
	}

	if s.cache != nil {
		if err := s.cache.CacheAnalytics(ctx, cacheKey, dashboard, dashboardCacheTTL); err != nil {
			s.logger.WithError(err).Warn("Failed to cache dashboard")
		}
	}

	s.logger.WithFields(logrus.Fields{
		"feedback_count": len(feedback),
		"nps_count":      len(nps),
	}).Debug("Dashboard computed")

	return dashboard, nil
}

// Trends returns the additive daily buckets for the requested range.
func (s *AnalyticsService) Trends(ctx context.Context, from, to time.Time) (*TrendsReport, error) {
	cacheKey := fmt.Sprintf(database.TrendsKey, utils.MD5Hash(fmt.Sprintf(
		"%s:%s", from.Format("2006-01-02"), to.Format("2006-01-02"))))

	if s.cache != nil {
		cached := &TrendsReport{}
		if err := s.cache.GetCachedAnalytics(ctx, cacheKey, cached); err == nil {
			return cached, nil
		}
	}

	buckets, err := s.repos.Trend.GetByDateRange(from, to)
	if err != nil {
		return nil, fmt.Errorf("fetch trends: %w", err)
	}

	report := &TrendsReport{
		StartDate: from.Format("2006-01-02"),
		EndDate:   to.Format("2006-01-02"),
		Buckets:   buckets,
	}

	if s.cache != nil {
		if err := s.cache.CacheAnalytics(ctx, cacheKey, report, dashboardCacheTTL); err != nil {
			s.logger.WithError(err).Warn("Failed to cache trends report")
		}
	}

	return report, nil
}

// InvalidateCache drops cached analytics views after a submission.
func (s *AnalyticsService) InvalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateAnalytics(ctx); err != nil {
		s.logger.WithError(err).Warn("Failed to invalidate analytics cache")
	}
}
