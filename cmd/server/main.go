package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"hotelsearch/internal/config"
	"hotelsearch/internal/facet"
	"hotelsearch/internal/handler"
	"hotelsearch/internal/repository"
	"hotelsearch/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	log.Printf("Hotel Search Facets")
	log.Printf("Version: %s", Version)
	log.Printf("Build Time: %s", BuildTime)
	log.Printf("Git Commit: %s", GitCommit)
	log.Println("")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	// Initialize database connection (optional - sessions run in memory)
	var repo *repository.PostgresRepository
	if cfg.PostgreSQL.Enabled {
		repo, err = repository.NewPostgresRepository(
			cfg.GetPostgreSQLDSN(),
			cfg.PostgreSQL.MaxConnections,
			cfg.PostgreSQL.MaxIdleConnections,
		)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer repo.Close()

		if err := repo.EnsureSchema(context.Background()); err != nil {
			log.Fatalf("Failed to ensure schema: %v", err)
		}
		log.Println("✅ Connected to PostgreSQL database")
	} else {
		log.Println("⚠️  PostgreSQL is disabled - snapshots and filter analytics will not persist")
		log.Println("   Set DATABASE_URL or PG_HOST to enable persistence")
	}

	// Load facet label dictionary
	labels := facet.DefaultLabels()
	if cfg.Facets.LabelsPath != "" {
		labels, err = facet.LoadLabels(cfg.Facets.LabelsPath)
		if err != nil {
			log.Fatalf("Failed to load facet labels: %v", err)
		}
		log.Printf("✅ Loaded facet label overrides from %s", cfg.Facets.LabelsPath)
	}

	// Initialize services
	builder := facet.NewBuilder(labels)
	searchService := service.NewSearchService(repo, builder, cfg.Session.TTL)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	searchService.StartJanitor(ctx, cfg.Session.SweepInterval)

	log.Println("✅ Services initialized")

	// Initialize handlers
	sessionHandler := handler.NewSessionHandler(searchService, cfg.Session.MaxListings)
	sliderHandler := handler.NewSliderHandler(searchService)
	snapshotHandler := handler.NewSnapshotHandler(searchService)

	// Setup Gin router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Server.AllowedOrigins}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization"}
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":     "healthy",
			"service":    "hotel-search-facets",
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	// Version endpoint
	router.GET("/version", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	// API routes
	apiV1 := router.Group("/api/v1")
	{
		apiV1.POST("/sessions", sessionHandler.Create)
		apiV1.GET("/sessions/:id/facets", sessionHandler.Facets)
		apiV1.GET("/sessions/:id/results", sessionHandler.Results)
		apiV1.POST("/sessions/:id/toggle", sessionHandler.Toggle)
		apiV1.POST("/sessions/:id/clear", sessionHandler.Clear)
		apiV1.POST("/sessions/:id/slider", sliderHandler.Event)
		apiV1.DELETE("/sessions/:id", sessionHandler.Delete)

		apiV1.POST("/snapshots", snapshotHandler.Create)
	}

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("🚀 Starting server on %s", addr)
	log.Printf("📝 API base: http://localhost:%d/api/v1", cfg.Server.Port)

	go func() {
		if err := router.Run(addr); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	log.Println("✅ Server stopped")
}
