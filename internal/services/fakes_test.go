package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/growthhub-io/growthhub/backend/internal/models"
	"github.com/growthhub-io/growthhub/backend/internal/repository"
	"gorm.io/gorm"
)

// In-memory repository fakes backing the service tests.

type fakeUserRepo struct {
	users map[string]*models.User
}

func (f *fakeUserRepo) Create(user *models.User) error {
	if f.users == nil {
		f.users = make(map[string]*models.User)
	}
	user.ID = uint(len(f.users) + 1)
	f.users[user.APIToken] = user
	return nil
}

func (f *fakeUserRepo) GetByID(id uint) (*models.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetByToken(token string) (*models.User, error) {
	if u, ok := f.users[token]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeFeedbackRepo struct {
	records   []*models.FeedbackRecord
	createErr error
}

func (f *fakeFeedbackRepo) Create(record *models.FeedbackRecord) error {
	if f.createErr != nil {
		return f.createErr
	}
	record.ID = uint(len(f.records) + 1)
	record.CreatedAt = time.Now().UTC()
	f.records = append(f.records, record)
	return nil
}

func (f *fakeFeedbackRepo) GetByID(id uint) (*models.FeedbackRecord, error) {
	for _, r := range f.records {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeFeedbackRepo) GetByDateRange(from, to time.Time) ([]models.FeedbackRecord, error) {
	out := make([]models.FeedbackRecord, 0)
	for _, r := range f.records {
		if !r.CreatedAt.Before(from) && !r.CreatedAt.After(to) {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeFeedbackRepo) GetRecent(limit int) ([]models.FeedbackRecord, error) {
	out := make([]models.FeedbackRecord, 0, limit)
	for i := len(f.records) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, *f.records[i])
	}
	return out, nil
}

func (f *fakeFeedbackRepo) UpdateStatus(id uint, status string) error {
	for _, r := range f.records {
		if r.ID == id {
			r.Status = status
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type fakeNPSRepo struct {
	records []*models.NPSRecord
}

func (f *fakeNPSRepo) Create(record *models.NPSRecord) error {
	record.ID = uint(len(f.records) + 1)
	record.CreatedAt = time.Now().UTC()
	f.records = append(f.records, record)
	return nil
}

func (f *fakeNPSRepo) GetByDateRange(from, to time.Time) ([]models.NPSRecord, error) {
	out := make([]models.NPSRecord, 0)
	for _, r := range f.records {
		if !r.CreatedAt.Before(from) && !r.CreatedAt.After(to) {
			out = append(out, *r)
		}
	}
	return out, nil
}

type fakeSentimentRepo struct {
	records []*models.SentimentAnalysisRecord
}

func (f *fakeSentimentRepo) Create(record *models.SentimentAnalysisRecord) error {
	f.records = append(f.records, record)
	return nil
}

func (f *fakeSentimentRepo) GetByFeedbackID(feedbackID uint) (*models.SentimentAnalysisRecord, error) {
	for _, r := range f.records {
		if r.FeedbackID == feedbackID {
			return r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeTrendRepo struct {
	buckets map[string]int
}

func (f *fakeTrendRepo) IncrementBucket(date time.Time, feedbackType, category string) error {
	if f.buckets == nil {
		f.buckets = make(map[string]int)
	}
	key := fmt.Sprintf("%s|%s|%s", date.Format("2006-01-02"), feedbackType, category)
	f.buckets[key]++
	return nil
}

func (f *fakeTrendRepo) GetByDateRange(from, to time.Time) ([]models.FeedbackTrendRecord, error) {
	out := make([]models.FeedbackTrendRecord, 0, len(f.buckets))
	for key, count := range f.buckets {
		parts := strings.SplitN(key, "|", 3)
		date, _ := time.Parse("2006-01-02", parts[0])
		feedbackType, category := parts[1], parts[2]
		if date.Before(from) || date.After(to) {
			continue
		}
		out = append(out, models.FeedbackTrendRecord{
			Date:         date,
			FeedbackType: feedbackType,
			Category:     category,
			Count:        count,
		})
	}
	return out, nil
}

type fakeHealthRepo struct {
	statuses map[string]string
}

func (f *fakeHealthRepo) UpdateServiceHealth(serviceName, status string, responseTime int, errorMsg string) error {
	if f.statuses == nil {
		f.statuses = make(map[string]string)
	}
	f.statuses[serviceName] = status
	return nil
}

func (f *fakeHealthRepo) GetServiceHealth(serviceName string) (*models.SystemHealth, error) {
	status, ok := f.statuses[serviceName]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &models.SystemHealth{ServiceName: serviceName, Status: status}, nil
}

func (f *fakeHealthRepo) GetAllServicesHealth() ([]models.SystemHealth, error) {
	out := make([]models.SystemHealth, 0, len(f.statuses))
	for name, status := range f.statuses {
		out = append(out, models.SystemHealth{ServiceName: name, Status: status})
	}
	return out, nil
}

func newFakeRepos() (*repository.RepositoryManager, *fakeFeedbackRepo, *fakeNPSRepo, *fakeSentimentRepo, *fakeTrendRepo) {
	feedback := &fakeFeedbackRepo{}
	nps := &fakeNPSRepo{}
	sentimentRepo := &fakeSentimentRepo{}
	trend := &fakeTrendRepo{}

	repos := &repository.RepositoryManager{
		User:         &fakeUserRepo{},
		Feedback:     feedback,
		NPS:          nps,
		Sentiment:    sentimentRepo,
		Trend:        trend,
		SystemHealth: &fakeHealthRepo{},
	}
	return repos, feedback, nps, sentimentRepo, trend
}
