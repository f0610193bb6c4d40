// backend/cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/growthhub-io/growthhub/backend/internal/api/handlers"
	"github.com/growthhub-io/growthhub/backend/internal/auth"
	"github.com/growthhub-io/growthhub/backend/internal/config"
	"github.com/growthhub-io/growthhub/backend/internal/database"
	"github.com/growthhub-io/growthhub/backend/internal/health"
	"github.com/growthhub-io/growthhub/backend/internal/middleware"
	"github.com/growthhub-io/growthhub/backend/internal/repository"
	"github.com/growthhub-io/growthhub/backend/internal/sentiment"
	"github.com/growthhub-io/growthhub/backend/internal/services"
	"github.com/growthhub-io/growthhub/backend/pkg/utils"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found: %v", err)
	}

	// Initialize logger
	logger := utils.GetLogger()

	logger.Info("Starting GrowthHub feedback API...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	// Initialize database and cache connections
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
	cache := database.NewCache(dbManager.Redis, logger)

	// Sentiment API is optional; without it the lexicon estimate is used
	var sentimentService *sentiment.Service
	if cfg.SentimentEnabled() {
		client := sentiment.NewClient(cfg.Sentiment.BaseURL, cfg.Sentiment.APIKey, logger)
		sentimentService = sentiment.NewService(client, logger)
		logger.Info("Sentiment API configured")
	} else {
		logger.Info("Sentiment API not configured, using lexicon scoring")
	}

	feedbackService := services.NewFeedbackService(repoManager, sentimentService, logger)
	analyticsService := services.NewAnalyticsService(repoManager, cache, logger)
	checker := health.NewChecker(dbManager, repoManager.SystemHealth, logger, cfg.Sentiment.BaseURL)

	authMiddleware := auth.NewMiddleware(repoManager.User, logger)
	feedbackHandler := handlers.NewFeedbackHandler(feedbackService, analyticsService, logger)
	healthHandler := handlers.NewHealthHandler(checker, logger)

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.SecurityHeaders())

	limiter := middleware.NewRateLimiter(cfg.Server.RateLimit)
	router.Use(limiter.RateLimit())

	router.NoRoute(func(c *gin.Context) {
		utils.ErrorResponse(c, http.StatusNotFound, "not_found", "route not found")
	})

	router.GET("/health", healthHandler.HandleHealth)

	api := router.Group("/api", authMiddleware.RequireUser())
	{
		api.POST("/feedback", feedbackHandler.HandleSubmitFeedback)
		api.POST("/nps", feedbackHandler.HandleSubmitNPS)
		api.GET("/analytics/dashboard", feedbackHandler.HandleDashboard)
		api.GET("/analytics/trends", feedbackHandler.HandleTrends)

		admin := api.Group("", authMiddleware.RequireAdmin())
		admin.PATCH("/feedback/:id/status", feedbackHandler.HandleUpdateStatus)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("Server failed")
		}
	}()

	logger.WithField("port", cfg.Server.Port).Info("GrowthHub feedback API listening")

	// Graceful shutdown on SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Forced shutdown")
	}

	logger.Info("Server stopped")
}
