package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/kailas-cloud/homechef/internal/config"
	"github.com/kailas-cloud/homechef/internal/db"
	"github.com/kailas-cloud/homechef/internal/db/memory"
	dbRedis "github.com/kailas-cloud/homechef/internal/db/redis"
	"github.com/kailas-cloud/homechef/internal/loader"
	logpkg "github.com/kailas-cloud/homechef/internal/logger"
	"github.com/kailas-cloud/homechef/internal/metrics"
	budgetrepo "github.com/kailas-cloud/homechef/internal/repository/budget"
	"github.com/kailas-cloud/homechef/internal/repository/embcache"
	chiTransport "github.com/kailas-cloud/homechef/internal/transport/chi"
	openaiTransport "github.com/kailas-cloud/homechef/internal/transport/openai"
	budgetuc "github.com/kailas-cloud/homechef/internal/usecase/budget"
	embeddinguc "github.com/kailas-cloud/homechef/internal/usecase/embedding"
	generationuc "github.com/kailas-cloud/homechef/internal/usecase/generation"
	healthuc "github.com/kailas-cloud/homechef/internal/usecase/health"
	raguc "github.com/kailas-cloud/homechef/internal/usecase/rag"
	sessionuc "github.com/kailas-cloud/homechef/internal/usecase/session"
	usageuc "github.com/kailas-cloud/homechef/internal/usecase/usage"
	visionuc "github.com/kailas-cloud/homechef/internal/usecase/vision"
	"github.com/kailas-cloud/homechef/internal/version"
)

func main() {
	// .env is optional; real deployments inject variables directly.
	_ = godotenv.Load()

	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting Home Chef API server",
		zap.String("version", version.String()),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("cache_driver", cfg.Cache.Driver),
		zap.String("chat_model", cfg.Model.ChatModel),
		zap.String("embedding_model", cfg.Model.EmbeddingModel),
	)

	ctx := context.Background()

	store, err := newStore(ctx, cfg.Cache)
	if err != nil {
		logger.Fatal("Cache store not available", zap.Error(err))
	}
	defer store.Close()
	logger.Info("Cache store ready", zap.String("driver", cfg.Cache.Driver))

	// Registered explicitly (no init()) so tests control their own registries.
	metrics.RegisterEmbeddingMetrics()
	metrics.RegisterGenerationMetrics()
	metrics.RegisterSessionMetrics()

	// One tracker is shared by both model decorators and the usage report.
	// Zero limits mean unlimited; counters are kept either way.
	budgetCfg := cfg.Model.Budget
	tracker := budgetuc.NewTracker(
		cfg.Model.Provider,
		budgetCfg.DailyTokenLimit,
		budgetCfg.MonthlyTokenLimit,
		budgetuc.ParseAction(budgetCfg.Action),
		logger,
	).WithStore(ctx, budgetrepo.New(store, budgetrepo.DefaultRetention))

	modelCfg := &openaiTransport.Config{
		APIKey:         cfg.Model.APIKey,
		BaseURL:        cfg.Model.BaseURL,
		EmbeddingModel: cfg.Model.EmbeddingModel,
		ChatModel:      cfg.Model.ChatModel,
		Dimensions:     cfg.Model.Dimensions,
		Provider:       cfg.Model.Provider,
		Timeout:        time.Duration(cfg.Model.RequestTimeoutS) * time.Second,
		Logger:         logger,
	}

	// Embedder chain: OpenAI-compatible -> Cached -> Instrumented (budget + metrics).
	cached := embcache.New(
		openaiTransport.NewEmbedder(modelCfg),
		store,
		cfg.Model.EmbeddingModel,
		time.Duration(cfg.Cache.TTLHours)*time.Hour,
		metrics.EmbeddingCacheTotal,
		logger,
	)
	embedder := embeddinguc.NewInstrumentedEmbedder(
		cached, cfg.Model.Provider, cfg.Model.EmbeddingModel, tracker, logger,
		embeddinguc.WithBatchSize(cfg.RAG.EmbedBatchSize),
	)

	baseGenerator := openaiTransport.NewGenerator(modelCfg)
	generator := generationuc.NewInstrumentedGenerator(
		baseGenerator, cfg.Model.Provider, cfg.Model.ChatModel, tracker, logger,
	)
	logger.Info("Model clients created",
		zap.String("provider", cfg.Model.Provider),
		zap.String("base_url", cfg.Model.BaseURL),
		zap.Int("embed_batch_size", cfg.RAG.EmbedBatchSize),
	)

	// Use cases
	ragSvc := raguc.New(
		loader.NewPDF(),
		embeddinguc.NewService(embedder),
		generator,
		cfg.RAG.ChunkSize,
		cfg.RAG.TopK,
		logger,
	)
	sessions := sessionuc.New(
		sessionuc.Config{
			IdleTTL:         time.Duration(cfg.Sessions.IdleTTLMinutes) * time.Minute,
			CleanupInterval: time.Duration(cfg.Sessions.CleanupIntervalMins) * time.Minute,
		},
		generator,
		visionuc.New(generator),
		ragSvc,
		logger,
	)
	usageSvc := usageuc.New(tracker)
	healthSvc := healthuc.New(store, cached, baseGenerator)

	server := chiTransport.NewServer(sessions, usageSvc, healthSvc, cfg.HTTP.MaxUploadBytes, logger)

	r := chi.NewRouter()
	r.Use(chiTransport.JSONRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(chiTransport.WideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		chiTransport.WriteError(w, http.StatusNotFound, chiTransport.CodeBadRequest, "route not found")
	})
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadTimeout:       time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully", zap.Int("sessions_dropped", sessions.Len()))
}

// newStore opens the KV store selected by cache.driver and waits until it answers.
func newStore(ctx context.Context, cfg config.CacheConfig) (db.Store, error) {
	var store db.Store
	switch cfg.Driver {
	case "memory":
		store = memory.NewStore(10 * time.Minute)
	case "redis":
		rs, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Addrs,
			Password: cfg.Password,
		})
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		store = rs
	default:
		return nil, fmt.Errorf("unknown cache driver %q", cfg.Driver)
	}

	if err := store.WaitForReady(ctx, time.Duration(cfg.ReadinessTimeout)*time.Second); err != nil {
		store.Close()
		return nil, fmt.Errorf("wait for ready: %w", err)
	}
	return store, nil
}
