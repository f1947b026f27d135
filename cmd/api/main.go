package main

import (
	"context"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/jobsentry/jobsentry/internal/auth"
	"github.com/jobsentry/jobsentry/internal/cache"
	"github.com/jobsentry/jobsentry/internal/config"
	"github.com/jobsentry/jobsentry/internal/database"
	"github.com/jobsentry/jobsentry/internal/handlers"
	"github.com/jobsentry/jobsentry/internal/scheduler"
	"github.com/jobsentry/jobsentry/internal/scraper"
	"github.com/jobsentry/jobsentry/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	log.Println("Database connection established")

	ctx := context.Background()

	seen, err := cache.New(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	if seen == nil {
		log.Println("REDIS_URL not set — seen-cache disabled, dedup falls through to postgres")
	}

	// Gmail is optional at startup: without credentials the dispatcher still
	// records notifications, just with email_sent=false.
	var gmailService *gmail.Service
	if httpClient := auth.GetGmailClient(cfg.GmailCredentialsFile, cfg.GmailTokenFile); httpClient != nil {
		gmailService, err = gmail.NewService(ctx, option.WithHTTPClient(httpClient))
		if err != nil {
			log.Printf("gmail service init failed: %v — email delivery disabled", err)
		} else {
			log.Println("Gmail service connected")
		}
	}

	extractor := scraper.NewExtractor(
		cfg.Scraper.WindowSize,
		cfg.Scraper.MaxCandidates,
		cfg.Scraper.URLRadius,
		cfg.Scraper.Stoplist,
	)
	fetcher := scraper.NewHTTPFetcher(cfg.FetchTimeout)
	dispatcher := services.NewDispatcher(services.NewGmailMailer(gmailService))
	scrapeService := services.NewScrapeService(
		services.NewGormStore(db), fetcher, extractor, dispatcher, seen, cfg.ScrapeTimeout,
	)

	companyHandler := handlers.NewCompanyHandler(services.NewCompanyService(db))
	keywordHandler := handlers.NewKeywordHandler(services.NewKeywordService(db))
	jobHandler := handlers.NewJobHandler(services.NewJobService(db))
	notificationHandler := handlers.NewNotificationHandler(services.NewNotificationService(db))
	scrapeHandler := handlers.NewScrapeHandler(scrapeService)

	sched := scheduler.New(scrapeService, cfg.ScrapeIntervalHours)
	if err := sched.Start(ctx); err != nil {
		log.Fatalf("scheduler: %v", err)
	}
	defer sched.Stop()

	r := gin.Default()
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	api := r.Group("/api/v1")
	{
		api.GET("/health", handlers.HealthCheck)

		authed := api.Group("", auth.Middleware(cfg.JWTSecret, db))
		{
			authed.GET("/companies", companyHandler.List)
			authed.POST("/companies", companyHandler.Create)
			authed.DELETE("/companies/:id", companyHandler.Delete)

			authed.GET("/keywords", keywordHandler.List)
			authed.POST("/keywords", keywordHandler.Create)
			authed.DELETE("/keywords/:id", keywordHandler.Delete)

			authed.GET("/jobs", jobHandler.List)
			authed.PATCH("/jobs/:id/status", jobHandler.UpdateStatus)
			authed.POST("/jobs/:id/seen", jobHandler.MarkSeen)

			authed.GET("/notifications", notificationHandler.List)

			authed.POST("/scrape", scrapeHandler.Trigger)
		}
	}

	log.Printf("Server starting on port %s...", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}
