package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	_ "github.com/linguistlexicon/lexicon-service/docs"
	"github.com/linguistlexicon/lexicon-service/internal/config"
	"github.com/linguistlexicon/lexicon-service/internal/handlers"
	"github.com/linguistlexicon/lexicon-service/internal/logger"
	"github.com/linguistlexicon/lexicon-service/internal/middlewares"
	"github.com/linguistlexicon/lexicon-service/internal/repositories"
	"github.com/linguistlexicon/lexicon-service/internal/services"
	"github.com/linguistlexicon/lexicon-service/internal/storage"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

const maxRequestSize = 10 * 1024 * 1024 // 10MB, large enough for bulk imports

// @title Linguist Lexicon API
// @version 1.0
// @description API for tracking personal vocabulary entries

// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
// @description API key for the browser-extension capture endpoint
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v\n", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v\n", err)
	}
	defer logger.Sync()

	logger.Logger.Info("Starting Linguist Lexicon Service")

	// Initialize storage and load the dataset
	fileStore := storage.NewJSONFile(cfg.Storage.DataPath)

	entryRepo := repositories.NewEntryRepository(fileStore)
	if err := entryRepo.Load(context.Background()); err != nil {
		// A corrupt dataset must not be silently replaced with an empty one
		logger.Logger.Fatal("Failed to load lexicon file", zap.Error(err), zap.String("path", cfg.Storage.DataPath))
	}

	// Initialize services
	entryService := services.NewEntryService(entryRepo)
	transferService := services.NewTransferService(entryRepo)

	// Initialize handlers
	entriesHandler := handlers.NewEntriesHandler(entryService, logger.Logger)
	transferHandler := handlers.NewTransferHandler(transferService, logger.Logger)
	captureHandler := handlers.NewCaptureHandler(entryService, logger.Logger)

	if cfg.APIKey == "" {
		logger.Logger.Warn("API_KEY is not set, the capture endpoint will reject all requests")
	}
	apiKeyMw := middlewares.APIKeyMiddleware(cfg.APIKey)

	// Setup router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(middlewares.RequestIDMiddleware)
	r.Use(middlewares.LoggerMiddleware(logger.Logger))
	r.Use(middlewares.RecoveryMiddleware(logger.Logger))
	r.Use(middlewares.CORSMiddleware(cfg.CORS.AllowedOrigins))
	r.Use(httprate.LimitByIP(100, time.Minute))
	r.Use(middlewares.RequestSizeLimitMiddleware(maxRequestSize))

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://localhost:%d/swagger/doc.json", cfg.Server.Port)),
	))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Scope router to /api/v1
	r.Route("/api/v1", func(r chi.Router) {
		entriesHandler.RegisterRoutes(r)
		transferHandler.RegisterRoutes(r)

		// Capture endpoint requires the extension's API key
		r.Group(func(r chi.Router) {
			r.Use(apiKeyMw)
			captureHandler.RegisterRoutes(r)
		})
	})

	// Start server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Logger.Info("Server starting", zap.Int("port", cfg.Server.Port), zap.String("data_path", cfg.Storage.DataPath))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Logger.Info("Server exited")
}
