package main

// @title Commute Emissions API
// @version 1.0.0
// @description Сервис оценки расстояния, времени в пути и выбросов CO2 на человека между двумя адресами.
// @description
// @description Основные возможности:
// @description - Расчёт для автомобиля, carpool, велосипеда, общественного транспорта и пешком
// @description - Сравнение всех видов транспорта с экономией относительно автомобиля
// @description - Версионируемая модель выбросов (v1 плоская, v2 по типу двигателя и размеру)

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/commute-emissions/docs"
	"github.com/commute-emissions/internal/config"
	httpDelivery "github.com/commute-emissions/internal/delivery/http"
	"github.com/commute-emissions/internal/delivery/http/handler"
	"github.com/commute-emissions/internal/domain"
	"github.com/commute-emissions/internal/infrastructure/googlemaps"
	"github.com/commute-emissions/internal/pkg/logger"
	"github.com/commute-emissions/internal/pkg/tracing"
	"github.com/commute-emissions/internal/repository/cache"
	"github.com/commute-emissions/internal/usecase"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Commute Emissions API")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("cache_backend", cfg.Cache.Backend),
		zap.String("emission_model", cfg.Emission.Model),
	)

	if err := cfg.RequireMapsKey(); err != nil {
		log.Fatal("Google Maps API key missing", zap.Error(err))
	}

	// 3. Tracing
	shutdownTracing, err := tracing.Init(context.Background(), cfg.Tracing, cfg.Server.Env)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}

	// 4. Connect to Redis, only the redis cache backend needs it
	var redisClient *cache.Redis
	var health httpDelivery.HealthChecker
	if cfg.Cache.Backend == config.CacheBackendRedis {
		redisClient, err = cache.NewRedis(cfg, log)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		health = redisClient
	}

	// 5. Emission model and transit classification
	model, err := domain.ModelByName(cfg.Emission.Model)
	if err != nil {
		log.Fatal("Invalid emission model", zap.Error(err))
	}
	classifier := domain.DefaultClassifier()
	if cfg.Emission.CommuterAsTrain {
		classifier = domain.CommuterAsTrainClassifier()
	}

	// 6. Initialize repositories
	routeRepo, err := cache.WrapRouteRepository(googlemaps.NewClient(&cfg.Maps, log), &cfg.Cache, redisClient, log)
	if err != nil {
		log.Fatal("Failed to initialize measurement cache", zap.Error(err))
	}

	// 7. Initialize use cases and handlers
	estimationUC := usecase.NewEstimationUseCase(routeRepo, model, classifier, log)
	routeHandler := handler.NewRouteHandler(estimationUC, log)

	// 8. Initialize HTTP Server
	server := httpDelivery.NewServer(cfg, log, routeHandler, health)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("model", model.Version),
	)

	// 9. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis", zap.Error(err))
		}
	}

	if err := shutdownTracing(ctx); err != nil {
		log.Error("Failed to flush traces", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
