package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/commute-emissions/internal/config"
	"github.com/commute-emissions/internal/domain"
	"github.com/commute-emissions/internal/infrastructure/googlemaps"
	"github.com/commute-emissions/internal/pkg/logger"
	"github.com/commute-emissions/internal/pkg/tracing"
	"github.com/commute-emissions/internal/repository/cache"
	redisRepo "github.com/commute-emissions/internal/repository/redis"
	"github.com/commute-emissions/internal/usecase"
	"github.com/commute-emissions/internal/worker"
	"github.com/commute-emissions/internal/worker/estimation"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if !cfg.Worker.Enabled {
		fmt.Println("Worker is disabled in configuration. Set WORKER_ENABLED=true to enable.")
		os.Exit(0)
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Emission Estimation Worker")
	log.Info("Configuration loaded",
		zap.String("consumer_group", cfg.Worker.ConsumerGroup),
		zap.Int("max_retries", cfg.Worker.MaxRetries),
		zap.Int("batch_size", cfg.Worker.BatchSize),
		zap.String("cache_backend", cfg.Cache.Backend))

	if err := cfg.RequireMapsKey(); err != nil {
		log.Fatal("Google Maps API key missing", zap.Error(err))
	}

	shutdownTracing, err := tracing.Init(context.Background(), cfg.Tracing, cfg.Server.Env)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}

	// 3. Connect to Redis, streams always need it
	redisClient, err := cache.NewRedis(cfg, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	// 4. Initialize repositories
	model, err := domain.ModelByName(cfg.Emission.Model)
	if err != nil {
		log.Fatal("Invalid emission model", zap.Error(err))
	}
	classifier := domain.DefaultClassifier()
	if cfg.Emission.CommuterAsTrain {
		classifier = domain.CommuterAsTrainClassifier()
	}

	routeRepo, err := cache.WrapRouteRepository(googlemaps.NewClient(&cfg.Maps, log), &cfg.Cache, redisClient, log)
	if err != nil {
		log.Fatal("Failed to initialize measurement cache", zap.Error(err))
	}
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log)

	// 5. Initialize use cases
	estimationUC := usecase.NewEstimationUseCase(routeRepo, model, classifier, log)

	// 6. Initialize workers
	estimationWorker := estimation.NewEstimationWorker(
		streamRepo,
		estimationUC,
		cfg.Worker.ConsumerGroup,
		cfg.Worker.BatchSize,
		cfg.Worker.MaxRetries,
		log,
	)

	workerManager := worker.NewWorkerManager(worker.DefaultShutdownTimeout, log)
	workerManager.Register(estimationWorker)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := workerManager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	// 7. Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Info("Received shutdown signal")

	// Stop сначала, чтобы текущий batch успел опубликовать результаты
	if err := workerManager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}
	cancel()

	flushCtx, flushCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer flushCancel()
	if err := shutdownTracing(flushCtx); err != nil {
		log.Error("Failed to flush traces", zap.Error(err))
	}

	log.Info("Worker shutdown complete")
}
