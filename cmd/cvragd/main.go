package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/tessnimetteib/cv-generator-project2/internal/api"
	"github.com/tessnimetteib/cv-generator-project2/internal/api/handlers"
	"github.com/tessnimetteib/cv-generator-project2/internal/cache"
	"github.com/tessnimetteib/cv-generator-project2/internal/embedding"
	"github.com/tessnimetteib/cv-generator-project2/internal/rank"
	"github.com/tessnimetteib/cv-generator-project2/internal/repository"
	"github.com/tessnimetteib/cv-generator-project2/internal/service"
	"github.com/tessnimetteib/cv-generator-project2/pkg/config"
	"github.com/tessnimetteib/cv-generator-project2/pkg/logger"
	"github.com/tessnimetteib/cv-generator-project2/pkg/postgres"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting CV knowledge retrieval service")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Initialize repositories
	knowledgeRepo := repository.NewKnowledgeRepository(db, appLogger)
	feedbackRepo := repository.NewFeedbackRepository(db, appLogger)

	// Result cache backend
	var resultCache cache.ResultCache
	switch cfg.Cache.Backend {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer client.Close()
		resultCache = cache.NewRedisCache(client, cfg.Cache.TTL, appLogger)
		appLogger.Info("Using Redis result cache", zap.String("addr", cfg.Redis.Addr))
	default:
		resultCache = cache.NewMemoryCache(cfg.Cache.Capacity, cfg.Cache.TTL)
		appLogger.Info("Using in-memory result cache",
			zap.Int("capacity", cfg.Cache.Capacity),
			zap.Duration("ttl", cfg.Cache.TTL),
		)
	}

	// Initialize services
	embedder := embedding.NewClient(&cfg.Embedding, appLogger)

	feedbackService := service.NewFeedbackService(feedbackRepo, &cfg.Feedback, appLogger)
	feedbackService.Start(ctx)

	reranker := rank.NewQualityReranker(
		cfg.RAG.RerankAlpha, cfg.RAG.RerankBeta, cfg.RAG.RerankGamma,
		cfg.RAG.RerankWindow, feedbackService,
	)

	ragService := service.NewRAGService(knowledgeRepo, embedder, reranker, resultCache, &cfg.RAG, appLogger)
	validationService := service.NewValidationService(embedder, &cfg.Validation, appLogger)

	// Initialize handlers
	ragHandler := handlers.NewRAGHandler(ragService, validationService, appLogger)
	feedbackHandler := handlers.NewFeedbackHandler(feedbackService, appLogger)

	// Setup router
	app := api.SetupRouter(ragHandler, feedbackHandler, ragService)

	// Start server
	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	cancel()
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
