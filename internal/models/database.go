package models

// GORM models

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Feedback types accepted on submission.
const (
	FeedbackTypeGeneral         = "general"
	FeedbackTypeNPS             = "nps"
	FeedbackTypeFeatureSpecific = "feature_specific"
	FeedbackTypeBugReport       = "bug_report"
	FeedbackTypeImprovement     = "improvement_suggestion"
)

// Priorities derived once from the message text at creation time.
const (
	PriorityLow      = "low"
	PriorityMedium   = "medium"
	PriorityHigh     = "high"
	PriorityCritical = "critical"
)

// Workflow statuses. Only admins move a record past "new".
const (
	StatusNew       = "new"
	StatusInReview  = "in_review"
	StatusPlanned   = "planned"
	StatusResolved  = "resolved"
	StatusDismissed = "dismissed"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

const (
	PlanFree     = "free"
	PlanPro      = "pro"
	PlanBusiness = "business"
)

func ValidFeedbackType(t string) bool {
	switch t {
	case FeedbackTypeGeneral, FeedbackTypeNPS, FeedbackTypeFeatureSpecific,
		FeedbackTypeBugReport, FeedbackTypeImprovement:
		return true
	}
	return false
}

func ValidStatus(s string) bool {
	switch s {
	case StatusNew, StatusInReview, StatusPlanned, StatusResolved, StatusDismissed:
		return true
	}
	return false
}

// StringArray for PostgreSQL array support
type StringArray []string

func (s StringArray) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "{}", nil
	}
	return fmt.Sprintf("{%s}", strings.Join(s, ",")), nil
}

func (s *StringArray) Scan(value interface{}) error {
	if value == nil {
		*s = StringArray{}
		return nil
	}

	switch v := value.(type) {
	case string:
		if v == "{}" {
			*s = StringArray{}
			return nil
		}
		v = strings.Trim(v, "{}")
		if v == "" {
			*s = StringArray{}
			return nil
		}
		*s = StringArray(strings.Split(v, ","))
	case []byte:
		return s.Scan(string(v))
	default:
		return fmt.Errorf("cannot scan %T into StringArray", value)
	}
	return nil
}

// Base model with common fields
type BaseModel struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// User represents an authenticated account. API tokens are issued out of
// band (the seeder prints them for local setups).
type User struct {
	BaseModel
	Email    string `json:"email" gorm:"unique;not null"`
	Role     string `json:"role" gorm:"default:'user';check:role IN ('user','admin')"`
	Plan     string `json:"plan" gorm:"default:'free';check:plan IN ('free','pro','business')"`
	APIToken string `json:"-" gorm:"uniqueIndex;not null"`
}

// FeedbackRecord represents one user submission. Priority and tags are
// computed from the message at creation and never recomputed; message edits
// are not supported.
type FeedbackRecord struct {
	BaseModel
	UserID         uint        `json:"user_id" gorm:"index;not null"`
	FeedbackType   string      `json:"feedback_type" gorm:"not null;check:feedback_type IN ('general','nps','feature_specific','bug_report','improvement_suggestion')"`
	Rating         *int        `json:"rating"`
	SentimentScore *float64    `json:"sentiment_score"`
	Category       string      `json:"category"`
	Subcategory    string      `json:"subcategory"`
	Message        string      `json:"message" gorm:"type:text;not null"`
	FeatureName    string      `json:"feature_name"`
	PageURL        string      `json:"page_url"`
	UserAgent      string      `json:"user_agent"`
	SessionID      string      `json:"session_id"`
	Priority       string      `json:"priority" gorm:"default:'low';check:priority IN ('low','medium','high','critical')"`
	Tags           StringArray `json:"tags" gorm:"type:text[]"`
	Status         string      `json:"status" gorm:"default:'new'"`

	// Associations
	User      User                     `json:"-" gorm:"foreignKey:UserID"`
	Sentiment *SentimentAnalysisRecord `json:"sentiment,omitempty" gorm:"foreignKey:FeedbackID"`
}

// NPSRecord holds one 0-10 survey response. UserSegment and
// ProductUsageDays are derived once at submission time and not kept in
// sync afterward.
type NPSRecord struct {
	BaseModel
	UserID           uint   `json:"user_id" gorm:"index;not null"`
	Score            int    `json:"score" gorm:"not null;check:score >= 0 AND score <= 10"`
	Reason           string `json:"reason" gorm:"type:text"`
	UserSegment      string `json:"user_segment"`
	ProductUsageDays int    `json:"product_usage_days"`
}

// SentimentAnalysisRecord is the one-to-one companion of a FeedbackRecord
// when a sentiment score exists. Emotions and KeyPhrases are stored but not
// populated by any analysis step yet.
type SentimentAnalysisRecord struct {
	BaseModel
	FeedbackID uint        `json:"feedback_id" gorm:"uniqueIndex;not null"`
	Score      float64     `json:"score"`
	Confidence float64     `json:"confidence"`
	Emotions   StringArray `json:"emotions" gorm:"type:text[]"`
	KeyPhrases StringArray `json:"key_phrases" gorm:"type:text[]"`
}

// FeedbackTrendRecord is a daily aggregate bucket merged additively on every
// submission. There is no decrement path; deleting feedback does not correct
// the counter.
type FeedbackTrendRecord struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Date         time.Time `json:"date" gorm:"type:date;uniqueIndex:idx_trend_bucket;not null"`
	FeedbackType string    `json:"feedback_type" gorm:"uniqueIndex:idx_trend_bucket;not null"`
	Category     string    `json:"category" gorm:"uniqueIndex:idx_trend_bucket"`
	Count        int       `json:"count" gorm:"default:0"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SystemHealth represents service health monitoring
type SystemHealth struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	ServiceName    string    `json:"service_name" gorm:"not null"`
	Status         string    `json:"status" gorm:"not null;check:status IN ('healthy','degraded','unhealthy')"`
	ResponseTimeMs int       `json:"response_time_ms"`
	ErrorMessage   string    `json:"error_message"`
	CheckedAt      time.Time `json:"checked_at" gorm:"default:NOW()"`
}

// Database interfaces for repository pattern
type UserRepository interface {
	Create(user *User) error
	GetByID(id uint) (*User, error)
	GetByToken(token string) (*User, error)
}

type FeedbackRepository interface {
	Create(record *FeedbackRecord) error
	GetByID(id uint) (*FeedbackRecord, error)
	GetByDateRange(from, to time.Time) ([]FeedbackRecord, error)
	GetRecent(limit int) ([]FeedbackRecord, error)
	UpdateStatus(id uint, status string) error
}

type NPSRepository interface {
	Create(record *NPSRecord) error
	GetByDateRange(from, to time.Time) ([]NPSRecord, error)
}

type SentimentRepository interface {
	Create(record *SentimentAnalysisRecord) error
	GetByFeedbackID(feedbackID uint) (*SentimentAnalysisRecord, error)
}

type FeedbackTrendRepository interface {
	IncrementBucket(date time.Time, feedbackType, category string) error
	GetByDateRange(from, to time.Time) ([]FeedbackTrendRecord, error)
}

type SystemHealthRepository interface {
	UpdateServiceHealth(serviceName, status string, responseTime int, errorMsg string) error
	GetServiceHealth(serviceName string) (*SystemHealth, error)
	GetAllServicesHealth() ([]SystemHealth, error)
}

// TableName methods for custom table names
func (User) TableName() string                    { return "users" }
func (FeedbackRecord) TableName() string          { return "feedback_records" }
func (NPSRecord) TableName() string               { return "nps_records" }
func (SentimentAnalysisRecord) TableName() string { return "sentiment_analysis" }
func (FeedbackTrendRecord) TableName() string     { return "feedback_trends" }
func (SystemHealth) TableName() string            { return "system_health" }

// Model validation methods
func (f *FeedbackRecord) Validate() error {
	if strings.TrimSpace(f.Message) == "" {
		return fmt.Errorf("message is required")
	}
	if !ValidFeedbackType(f.FeedbackType) {
		return fmt.Errorf("invalid feedback type: %s", f.FeedbackType)
	}
	if f.Rating != nil && (*f.Rating < 1 || *f.Rating > 5) {
		return fmt.Errorf("rating must be between 1 and 5")
	}
	if f.SentimentScore != nil && (*f.SentimentScore < -1.0 || *f.SentimentScore > 1.0) {
		return fmt.Errorf("sentiment score must be between -1.0 and 1.0")
	}
	return nil
}

func (n *NPSRecord) Validate() error {
	if n.Score < 0 || n.Score > 10 {
		return fmt.Errorf("score must be between 0 and 10")
	}
	if n.UserID == 0 {
		return fmt.Errorf("user ID is required")
	}
	return nil
}

func (u *User) Validate() error {
	if u.Email == "" {
		return fmt.Errorf("email is required")
	}
	if u.APIToken == "" {
		return fmt.Errorf("API token is required")
	}
	return nil
}

// GORM hooks
func (f *FeedbackRecord) BeforeCreate(tx *gorm.DB) error {
	return f.Validate()
}

func (n *NPSRecord) BeforeCreate(tx *gorm.DB) error {
	return n.Validate()
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	return u.Validate()
}
