// backend/cmd/seed/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/growthhub-io/growthhub/backend/internal/config"
	"github.com/growthhub-io/growthhub/backend/internal/database"
	"github.com/growthhub-io/growthhub/backend/internal/models"
	"github.com/growthhub-io/growthhub/backend/internal/repository"
	"github.com/growthhub-io/growthhub/backend/internal/services"
	"github.com/growthhub-io/growthhub/backend/pkg/utils"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// DemoUserConfig represents one demo account to provision
type DemoUserConfig struct {
	Email string
	Role  string
	Plan  string
}

// SampleFeedback represents one canned feedback submission
type SampleFeedback struct {
	Type    string
	Message string
	Rating  int
	AgeDays int
}

// DemoSeeder provisions demo accounts and sample submissions
type DemoSeeder struct {
	db          *gorm.DB
	repoManager *repository.RepositoryManager
	feedback    *services.FeedbackService
	logger      *logrus.Logger
	errors      []error
}

var (
	DemoUsers = []DemoUserConfig{
		{Email: "admin@growthhub.local", Role: models.RoleAdmin, Plan: models.PlanBusiness},
		{Email: "maya@growthhub.local", Role: models.RoleUser, Plan: models.PlanPro},
		{Email: "dev@growthhub.local", Role: models.RoleUser, Plan: models.PlanFree},
	}

	SampleSubmissions = []SampleFeedback{
		{Type: models.FeedbackTypeBugReport, Message: "The dashboard keeps crashing when I open the analytics tab", Rating: 1, AgeDays: 2},
		{Type: models.FeedbackTypeBugReport, Message: "Export button broken, cannot download my report", Rating: 2, AgeDays: 5},
		{Type: models.FeedbackTypeFeatureSpecific, Message: "Love the new chart colors, the design is great", Rating: 5, AgeDays: 1},
		{Type: models.FeedbackTypeImprovement, Message: "It would be nice to have a dark theme for the dashboard", Rating: 4, AgeDays: 8},
		{Type: models.FeedbackTypeImprovement, Message: "The search filter should support saved queries", Rating: 4, AgeDays: 12},
		{Type: models.FeedbackTypeGeneral, Message: "Urgent: the integration stopped syncing, this is important for us", Rating: 2, AgeDays: 3},
		{Type: models.FeedbackTypeGeneral, Message: "Great product overall, very helpful insights", Rating: 5, AgeDays: 20},
		{Type: models.FeedbackTypeGeneral, Message: "The menu layout is confusing and the buttons feel slow", Rating: 2, AgeDays: 15},
	}

	SampleNPSScores = []int{10, 9, 8, 7, 6, 3, 9}

	// Command line flags
	dryRun  = flag.Bool("dry-run", false, "Print what would be seeded without writing")
	count   = flag.Int("count", 1, "Number of passes over the sample submissions")
	verbose = flag.Bool("verbose", false, "Enable verbose logging")
)

func main() {
	flag.Parse()

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found: %v", err)
	}

	// Initialize logger
	logger := utils.GetLogger()
	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	logger.Info("Starting demo data seeder...")

	if *dryRun {
		for _, u := range DemoUsers {
			logger.WithFields(logrus.Fields{"email": u.Email, "role": u.Role, "plan": u.Plan}).Info("DRY RUN: Would create user")
		}
		logger.WithFields(logrus.Fields{
			"feedback": len(SampleSubmissions) * *count,
			"nps":      len(SampleNPSScores) * *count,
		}).Info("DRY RUN: Would submit samples")
		return
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	dbConfig := &database.Config{
		DatabaseURL: cfg.Database.URL,
		RedisURL:    cfg.Redis.URL,
		LogLevel:    os.Getenv("LOG_LEVEL"),
	}

	dbManager, err := database.NewManager(dbConfig, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize database manager")
	}
	defer dbManager.Close()

	if err := dbManager.Migrate(); err != nil {
		logger.WithError(err).Fatal("Database migration failed")
	}

	repoManager := repository.NewRepositoryManager(dbManager.DB)
	feedbackService := services.NewFeedbackService(repoManager, nil, logger)

	seeder := NewDemoSeeder(dbManager.DB, repoManager, feedbackService, logger)

	ctx := context.Background()
	if err := seeder.Seed(ctx); err != nil {
		logger.WithError(err).Fatal("Seeding failed")
	}

	logger.Info("Demo data seeding completed successfully!")
}

func NewDemoSeeder(db *gorm.DB, repoManager *repository.RepositoryManager, feedback *services.FeedbackService, logger *logrus.Logger) *DemoSeeder {
	return &DemoSeeder{
		db:          db,
		repoManager: repoManager,
		feedback:    feedback,
		logger:      logger,
		errors:      make([]error, 0),
	}
}

func (ds *DemoSeeder) Seed(ctx context.Context) error {
	users, err := ds.seedUsers()
	if err != nil {
		return err
	}

	for pass := 0; pass < *count; pass++ {
		ds.seedFeedback(ctx, users, pass)
		ds.seedNPS(ctx, users)
	}

	ds.logger.WithFields(logrus.Fields{
		"users":  len(users),
		"errors": len(ds.errors),
	}).Info("Seeding completed")

	if len(ds.errors) > 0 {
		ds.logger.Warn("Some samples failed:")
		for _, err := range ds.errors {
			ds.logger.WithError(err).Warn("Seeding error")
		}
	}

	return nil
}

// seedUsers provisions the demo accounts, reusing existing rows on rerun,
// and prints the API tokens so local clients can authenticate.
func (ds *DemoSeeder) seedUsers() ([]*models.User, error) {
	users := make([]*models.User, 0, len(DemoUsers))

	for _, cfg := range DemoUsers {
		user := &models.User{
			Email:    cfg.Email,
			Role:     cfg.Role,
			Plan:     cfg.Plan,
			APIToken: utils.GenerateRandomID(32),
		}

		if err := ds.db.Where("email = ?", cfg.Email).FirstOrCreate(user).Error; err != nil {
			return nil, fmt.Errorf("create user %s: %w", cfg.Email, err)
		}

		ds.logger.WithFields(logrus.Fields{
			"email": user.Email,
			"role":  user.Role,
		}).Info("User ready")

		fmt.Printf("%s\ttoken=%s\n", user.Email, user.APIToken)
		users = append(users, user)
	}

	return users, nil
}

func (ds *DemoSeeder) seedFeedback(ctx context.Context, users []*models.User, pass int) {
	for i, sample := range SampleSubmissions {
		user := users[(i+pass)%len(users)]

		req := &models.SubmitFeedbackRequest{
			FeedbackType: sample.Type,
			Message:      sample.Message,
			Rating:       intPtr(sample.Rating),
			SessionID:    utils.GenerateRandomID(16),
		}

		record, err := ds.feedback.SubmitFeedback(ctx, user, req, "growthhub-seeder/1.0")
		if err != nil {
			ds.errors = append(ds.errors, fmt.Errorf("feedback %q: %w", sample.Message, err))
			continue
		}

		// Spread records across the window so trend buckets are non-trivial
		if sample.AgeDays > 0 {
			ds.backdate(record, sample.AgeDays)
		}

		ds.logger.WithFields(logrus.Fields{
			"feedback_id": record.ID,
			"priority":    record.Priority,
			"progress":    fmt.Sprintf("%d/%d", i+1, len(SampleSubmissions)),
		}).Debug("Feedback seeded")
	}
}

func (ds *DemoSeeder) seedNPS(ctx context.Context, users []*models.User) {
	for i, score := range SampleNPSScores {
		user := users[i%len(users)]

		req := &models.SubmitNPSRequest{
			Score:  intPtr(score),
			Reason: npsReason(score),
		}

		if _, err := ds.feedback.SubmitNPS(ctx, user, req); err != nil {
			ds.errors = append(ds.errors, fmt.Errorf("nps score %d: %w", score, err))
		}
	}
}

func (ds *DemoSeeder) backdate(record *models.FeedbackRecord, days int) {
	createdAt := time.Now().UTC().AddDate(0, 0, -days).Add(-time.Duration(rand.Intn(6)) * time.Hour)
	if err := ds.db.Model(record).Update("created_at", createdAt).Error; err != nil {
		ds.logger.WithError(err).WithField("feedback_id", record.ID).Warn("Failed to backdate record")
	}
}

func npsReason(score int) string {
	switch {
	case score >= 9:
		return "Would absolutely recommend it"
	case score >= 7:
		return "Does the job, some rough edges"
	default:
		return "Too many issues lately"
	}
}

func intPtr(v int) *int {
	return &v
}
