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
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"io.pairapps.ouryear/internal/ai"
	"io.pairapps.ouryear/internal/colors"
	"io.pairapps.ouryear/internal/config"
	"io.pairapps.ouryear/internal/db"
	"io.pairapps.ouryear/internal/enrich"
	firebaseutil "io.pairapps.ouryear/internal/firebase"
	"io.pairapps.ouryear/internal/handlers"
	"io.pairapps.ouryear/internal/middleware"
	"io.pairapps.ouryear/internal/storage"
	"io.pairapps.ouryear/internal/store"
	"io.pairapps.ouryear/internal/tmdb"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := config.Load()

	zapLogger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()
	logger := zapLogger.Sugar()

	// Initialize Firebase (object storage)
	firebaseApp, err := firebaseutil.InitFirebase(cfg)
	if err != nil {
		logger.Fatalf("Failed to initialize Firebase: %v", err)
	}

	// Initialize PostgreSQL
	postgresDB, err := db.InitPostgres(cfg)
	if err != nil {
		logger.Fatalf("Failed to initialize PostgreSQL: %v", err)
	}
	defer postgresDB.Close()

	// Initialize Redis
	redisClient, err := db.InitRedis(cfg)
	if err != nil {
		logger.Fatalf("Failed to initialize Redis: %v", err)
	}
	defer redisClient.Close()

	// Shared HTTP client for outbound image and catalog traffic
	httpClient := &http.Client{Timeout: cfg.CallTimeout}

	// Initialize collaborators
	uploader, err := storage.NewUploader(firebaseApp, cfg)
	if err != nil {
		logger.Fatalf("Failed to initialize uploader: %v", err)
	}

	generator, err := ai.NewGenerator(context.Background(), cfg)
	if err != nil {
		logger.Fatalf("Failed to initialize AI generator: %v", err)
	}

	resolver := tmdb.NewClient(cfg, httpClient, redisClient)
	extractor := colors.NewExtractor(httpClient)
	reportStore := store.New(postgresDB)

	pipeline := enrich.NewPipeline(resolver, extractor, generator, uploader,
		reportStore, httpClient, logger, cfg.EnrichConcurrency, cfg.CallTimeout)

	// Initialize Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.RequestLoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	// Add CORS middleware for the report front-end
	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", cfg.AppURL)
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, X-Request-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Initialize handlers
	reportHandler := handlers.NewReportHandler(cfg, pipeline, reportStore,
		redisClient, resolver, generator, uploader, httpClient, logger)

	// Define routes
	v1 := router.Group("/api/v1")
	{
		v1.POST("/submit", reportHandler.Submit)
		v1.POST("/fetch-poster", reportHandler.FetchPoster)
		v1.POST("/generate-city-image", reportHandler.GenerateCityImage)
		v1.POST("/generate-summary", reportHandler.GenerateSummary)
		v1.POST("/generate-tags", reportHandler.GenerateTags)
		v1.POST("/upload-image", reportHandler.UploadImage)
		v1.GET("/report/:shareCode", reportHandler.GetReport)
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		logger.Infof("Server starting on port %s...", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	// Give a 5 second timeout for graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited")
}
