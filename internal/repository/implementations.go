package repository

import (
	"time"

	"github.com/growthhub-io/growthhub/backend/internal/models"
	"gorm.io/gorm"
)

// UserRepositoryImpl implements UserRepository
type UserRepositoryImpl struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) models.UserRepository {
	return &UserRepositoryImpl{db: db}
}

func (r *UserRepositoryImpl) Create(user *models.User) error {
	return r.db.Create(user).Error
}

func (r *UserRepositoryImpl) GetByID(id uint) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) GetByToken(token string) (*models.User, error) {
	var user models.User
	err := r.db.Where("api_token = ?", token).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FeedbackRepositoryImpl implements FeedbackRepository
type FeedbackRepositoryImpl struct {
	db *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) models.FeedbackRepository {
	return &FeedbackRepositoryImpl{db: db}
}

func (r *FeedbackRepositoryImpl) Create(record *models.FeedbackRecord) error {
	return r.db.Create(record).Error
}

func (r *FeedbackRepositoryImpl) GetByID(id uint) (*models.FeedbackRecord, error) {
	var record models.FeedbackRecord
	err := r.db.Preload("Sentiment").First(&record, id).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *FeedbackRepositoryImpl) GetByDateRange(from, to time.Time) ([]models.FeedbackRecord, error) {
	var records []models.FeedbackRecord
	err := r.db.Where("created_at BETWEEN ? AND ?", from, to).
		Order("created_at DESC").
		Find(&records).Error
	return records, err
}

func (r *FeedbackRepositoryImpl) GetRecent(limit int) ([]models.FeedbackRecord, error) {
	var records []models.FeedbackRecord
	err := r.db.Order("created_at DESC").
		Limit(limit).
		Find(&records).Error
	return records, err
}

func (r *FeedbackRepositoryImpl) UpdateStatus(id uint, status string) error {
	tx := r.db.Model(&models.FeedbackRecord{}).
		Where("id = ?", id).
		Update("status", status)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// NPSRepositoryImpl implements NPSRepository
type NPSRepositoryImpl struct {
	db *gorm.DB
}

func NewNPSRepository(db *gorm.DB) models.NPSRepository {
	return &NPSRepositoryImpl{db: db}
}

func (r *NPSRepositoryImpl) Create(record *models.NPSRecord) error {
	return r.db.Create(record).Error
}

func (r *NPSRepositoryImpl) GetByDateRange(from, to time.Time) ([]models.NPSRecord, error) {
	var records []models.NPSRecord
	err := r.db.Where("created_at BETWEEN ? AND ?", from, to).
		Order("created_at DESC").
		Find(&records).Error
	return records, err
}

// SentimentRepositoryImpl implements SentimentRepository
type SentimentRepositoryImpl struct {
	db *gorm.DB
}

func NewSentimentRepository(db *gorm.DB) models.SentimentRepository {
	return &SentimentRepositoryImpl{db: db}
}

func (r *SentimentRepositoryImpl) Create(record *models.SentimentAnalysisRecord) error {
	return r.db.Create(record).Error
}

func (r *SentimentRepositoryImpl) GetByFeedbackID(feedbackID uint) (*models.SentimentAnalysisRecord, error) {
	var record models.SentimentAnalysisRecord
	err := r.db.Where("feedback_id = ?", feedbackID).First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// FeedbackTrendRepositoryImpl implements FeedbackTrendRepository
type FeedbackTrendRepositoryImpl struct {
	db *gorm.DB
}

func NewFeedbackTrendRepository(db *gorm.DB) models.FeedbackTrendRepository {
	return &FeedbackTrendRepositoryImpl{db: db}
}

// IncrementBucket merges a submission into its daily bucket. Concurrent
// submissions on the same key are reconciled by the upsert; the counter is
// additive only.
func (r *FeedbackTrendRepositoryImpl) IncrementBucket(date time.Time, feedbackType, category string) error {
	return r.db.Exec(`
		INSERT INTO feedback_trends (date, feedback_type, category, count, created_at, updated_at)
		VALUES (?, ?, ?, 1, NOW(), NOW())
		ON CONFLICT (date, feedback_type, category)
		DO UPDATE SET
			count = feedback_trends.count + 1,
			updated_at = NOW()
	`, date.Format("2006-01-02"), feedbackType, category).Error
}

func (r *FeedbackTrendRepositoryImpl) GetByDateRange(from, to time.Time) ([]models.FeedbackTrendRecord, error) {
	var records []models.FeedbackTrendRecord
	err := r.db.Where("date BETWEEN ? AND ?", from.Format("2006-01-02"), to.Format("2006-01-02")).
		Order("date").
		Find(&records).Error
	return records, err
}

// SystemHealthRepositoryImpl implements SystemHealthRepository
type SystemHealthRepositoryImpl struct {
	db *gorm.DB
}

func NewSystemHealthRepository(db *gorm.DB) models.SystemHealthRepository {
	return &SystemHealthRepositoryImpl{db: db}
}

func (r *SystemHealthRepositoryImpl) UpdateServiceHealth(serviceName, status string, responseTime int, errorMsg string) error {
	return r.db.Exec(`
		INSERT INTO system_health (service_name, status, response_time_ms, error_message, checked_at)
		VALUES (?, ?, ?, ?, NOW())
	`, serviceName, status, responseTime, errorMsg).Error
}

func (r *SystemHealthRepositoryImpl) GetServiceHealth(serviceName string) (*models.SystemHealth, error) {
	var health models.SystemHealth
	err := r.db.Where("service_name = ?", serviceName).
		Order("checked_at DESC").
		First(&health).Error
	if err != nil {
		return nil, err
	}
	return &health, nil
}

func (r *SystemHealthRepositoryImpl) GetAllServicesHealth() ([]models.SystemHealth, error) {
	var health []models.SystemHealth
	err := r.db.Raw(`
		SELECT DISTINCT ON (service_name) *
		FROM system_health
		ORDER BY service_name, checked_at DESC
	`).Scan(&health).Error
	return health, err
}

// RepositoryManager bundles all repositories
type RepositoryManager struct {
	User         models.UserRepository
	Feedback     models.FeedbackRepository
	NPS          models.NPSRepository
	Sentiment    models.SentimentRepository
	Trend        models.FeedbackTrendRepository
	SystemHealth models.SystemHealthRepository
}

func NewRepositoryManager(db *gorm.DB) *RepositoryManager {
	return &RepositoryManager{
		User:         NewUserRepository(db),
		Feedback:     NewFeedbackRepository(db),
		NPS:          NewNPSRepository(db),
		Sentiment:    NewSentimentRepository(db),
		Trend:        NewFeedbackTrendRepository(db),
		SystemHealth: NewSystemHealthRepository(db),
	}
}
