package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/growthhub-io/growthhub/backend/internal/analytics"
	"github.com/growthhub-io/growthhub/backend/internal/apperrors"
	"github.com/growthhub-io/growthhub/backend/internal/models"
	"github.com/growthhub-io/growthhub/backend/internal/repository"
	"github.com/growthhub-io/growthhub/backend/internal/sentiment"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Confidence stored on the companion sentiment row when the score comes
// from the local lexicon estimate rather than the external analyzer.
const lexiconConfidence = 0.75

type FeedbackService struct {
	repos     *repository.RepositoryManager
	sentiment *sentiment.Service // nil when the API is not configured
	logger    *logrus.Logger
}

func NewFeedbackService(
	repos *repository.RepositoryManager,
	sentimentService *sentiment.Service,
	logger *logrus.Logger,
) *FeedbackService {
	return &FeedbackService{
		repos:     repos,
		sentiment: sentimentService,
		logger:    logger,
	}
}

// SubmitFeedback validates the submission, derives priority, tags, and a
// sentiment score from the message, persists the record with its companion
// sentiment row, and merges the daily trend bucket. Derived fields are
// computed once here and never recomputed.
func (s *FeedbackService) SubmitFeedback(
	ctx context.Context,
	user *models.User,
	req *models.SubmitFeedbackRequest,
	userAgent string,
) (*models.FeedbackRecord, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, apperrors.NewValidation("message", "must not be empty")
	}
	if !models.ValidFeedbackType(req.FeedbackType) {
		return nil, apperrors.NewValidation("feedback_type", fmt.Sprintf("unknown type %q", req.FeedbackType))
	}
	if req.Rating != nil && (*req.Rating < 1 || *req.Rating > 5) {
		return nil, apperrors.NewValidation("rating", "must be between 1 and 5")
	}

	score, confidence, emotions, keyPhrases := s.scoreMessage(ctx, message)

	record := &models.FeedbackRecord{
		UserID:         user.ID,
		FeedbackType:   req.FeedbackType,
		Rating:         req.Rating,
		SentimentScore: &score,
		Category:       strings.TrimSpace(req.Category),
		Subcategory:    strings.TrimSpace(req.Subcategory),
		Message:        message,
		FeatureName:    req.FeatureName,
		PageURL:        req.PageURL,
		UserAgent:      userAgent,
		SessionID:      req.SessionID,
		Priority:       analytics.ClassifyPriority(message, req.FeedbackType),
		Tags:           analytics.ExtractTags(message),
		Status:         models.StatusNew,
	}

	if err := s.repos.Feedback.Create(record); err != nil {
		return nil, fmt.Errorf("create feedback: %w", err)
	}

	companion := &models.SentimentAnalysisRecord{
		FeedbackID: record.ID,
		Score:      score,
		Confidence: confidence,
		Emotions:   emotions,
		KeyPhrases: keyPhrases,
	}
	if err := s.repos.Sentiment.Create(companion); err != nil {
		s.logger.WithError(err).WithField("feedback_id", record.ID).
			Warn("Failed to store sentiment companion record")
	}

	s.bumpTrend(record.FeedbackType, record.Category)

	s.logger.WithFields(logrus.Fields{
		"feedback_id":   record.ID,
		"feedback_type": record.FeedbackType,
		"priority":      record.Priority,
		"tags":          record.Tags,
	}).Info("Feedback recorded")

	return record, nil
}

// SubmitNPS validates the 0-10 score and persists the response with its
// derived segment and usage age.
func (s *FeedbackService) SubmitNPS(
	ctx context.Context,
	user *models.User,
	req *models.SubmitNPSRequest,
) (*models.NPSRecord, error) {
	if req.Score == nil {
		return nil, apperrors.NewValidation("score", "is required")
	}
	score := *req.Score
	if score < 0 || score > 10 {
		return nil, apperrors.NewValidation("score", "must be between 0 and 10")
	}

	record := &models.NPSRecord{
		UserID:           user.ID,
		Score:            score,
		Reason:           strings.TrimSpace(req.Reason),
		UserSegment:      segmentForPlan(user.Plan),
		ProductUsageDays: int(time.Since(user.CreatedAt).Hours() / 24),
	}

	if err := s.repos.NPS.Create(record); err != nil {
		return nil, fmt.Errorf("create nps response: %w", err)
	}

	s.bumpTrend(models.FeedbackTypeNPS, "")

	s.logger.WithFields(logrus.Fields{
		"nps_id":  record.ID,
		"score":   record.Score,
		"segment": record.UserSegment,
	}).Info("NPS response recorded")

	return record, nil
}

// UpdateStatus moves a feedback record through the workflow. Handlers gate
// this behind the admin role.
func (s *FeedbackService) UpdateStatus(ctx context.Context, id uint, status string) error {
	if !models.ValidStatus(status) {
		return apperrors.NewValidation("status", fmt.Sprintf("unknown status %q", status))
	}

	if err := s.repos.Feedback.UpdateStatus(id, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NewNotFound("feedback record")
		}
		return fmt.Errorf("update status: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"feedback_id": id,
		"status":      status,
	}).Info("Feedback status updated")

	return nil
}

// scoreMessage asks the external analyzer when configured and falls back to
// the lexicon estimate on any failure.
func (s *FeedbackService) scoreMessage(ctx context.Context, message string) (float64, float64, models.StringArray, models.StringArray) {
	if s.sentiment != nil {
		res, err := s.sentiment.ScoreMessage(ctx, message)
		if err == nil {
			return res.Score, res.Confidence, models.StringArray(res.Emotions), models.StringArray(res.KeyPhrases)
		}
		s.logger.WithError(err).Warn("Sentiment API unavailable, using lexicon estimate")
	}

	return analytics.EstimateSentiment(message), lexiconConfidence, models.StringArray{}, models.StringArray{}
}

func (s *FeedbackService) bumpTrend(feedbackType, category string) {
	if category == "" {
		category = analytics.DefaultCategory
	}
	if err := s.repos.Trend.IncrementBucket(time.Now().UTC(), feedbackType, category); err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"feedback_type": feedbackType,
			"category":      category,
		}).Warn("Failed to merge trend bucket")
	}
}

func segmentForPlan(plan string) string {
	switch plan {
	case models.PlanPro:
		return "pro"
	case models.PlanBusiness:
		return "business"
	default:
		return "free"
	}
}
