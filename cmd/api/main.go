package main

import (
	"fmt"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-co-op/gocron"
	"github.com/joho/godotenv"
	"github.com/smarterpicks/backend/internal/cache"
	"github.com/smarterpicks/backend/internal/config"
	"github.com/smarterpicks/backend/internal/database"
	"github.com/smarterpicks/backend/internal/database/migrations"
	"github.com/smarterpicks/backend/internal/jobs"
	"github.com/smarterpicks/backend/internal/routes"
	"github.com/smarterpicks/backend/internal/services/amazon"
	"github.com/smarterpicks/backend/internal/services/catalog"
	"github.com/smarterpicks/backend/internal/storage"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// Initialize configuration
	cfg := config.LoadConfig()

	// Setup database connection
	db, err := database.InitDB(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := migrations.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Setup attachment store
	store, err := storage.NewR2Store(cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to connect to attachment store: %v", err)
	}

	// Redis is optional; the catalog falls back to the database without it
	cacheClient, err := cache.New(cfg.Redis)
	if err != nil {
		log.Printf("Warning: redis unavailable, product caching disabled: %v", err)
		cacheClient = nil
	}

	// Schedule the Amazon catalog refresh
	amazonClient := amazon.NewClient(cfg.Amazon)
	refreshJob := jobs.NewCatalogRefreshJob(catalog.NewService(db, cacheClient), amazonClient)
	scheduler := gocron.NewScheduler(time.UTC)
	if err := refreshJob.Schedule(scheduler, cfg.Amazon.RefreshHours); err != nil {
		log.Printf("Warning: failed to schedule catalog refresh: %v", err)
	}
	scheduler.StartAsync()

	// Initialize router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	// Configure CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendURL, cfg.AdminURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	// Register routes
	routes.RegisterRoutes(router, db, store, cacheClient)

	// Start server
	fmt.Printf("SmarterPicks API server running on port %s\n", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
