package main

// @title Parking Microservice API
// @version 1.0.0
// @description Microservice for discovering and booking parking. Provides nearby parking search ranked by distance, stateful search sessions with geolocation fallback, lot registration for managers, bookings with peak pricing, and a manager dashboard.

// @contact.name API Support
// @contact.email support@parking-microservice.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/parking-microservice/docs/swagger"
	"github.com/parking-microservice/internal/config"
	httpDelivery "github.com/parking-microservice/internal/delivery/http"
	"github.com/parking-microservice/internal/delivery/http/handler"
	"github.com/parking-microservice/internal/infrastructure/geocoding"
	"github.com/parking-microservice/internal/observability"
	"github.com/parking-microservice/internal/pkg/logger"
	"github.com/parking-microservice/internal/repository/cache"
	"github.com/parking-microservice/internal/repository/postgres"
	"github.com/parking-microservice/internal/usecase"
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

	log.Info("Starting Parking Microservice")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
	)

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	// 5. Health checks
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Health(ctx); err != nil {
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}
	if err := redisClient.Health(ctx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}

	log.Info("All connections healthy")

	// 6. Initialize repositories
	lotRepo := postgres.NewLotRepository(db)
	bookingRepo := postgres.NewBookingRepository(db)
	cacheRepo := cache.NewCacheRepository(redisClient)
	geocodingClient := geocoding.NewGeocodingClient(&cfg.Geocoding, log)

	log.Info("Repositories initialized")

	// 7. Initialize use cases
	directoryUC := usecase.NewDirectoryUseCase(
		lotRepo,
		geocodingClient,
		cacheRepo,
		log,
		cfg.Cache.SearchCacheTTL,
		cfg.Directory,
	)

	searchUC := usecase.NewSearchUseCase(
		directoryUC,
		geocodingClient,
		log,
		cfg.Search,
	)

	bookingUC := usecase.NewBookingUseCase(
		bookingRepo,
		lotRepo,
		log,
	)

	statsUC := usecase.NewStatsUseCase(
		lotRepo,
		bookingRepo,
		log,
	)

	log.Info("Use cases initialized")

	// 8. Initialize HTTP handlers
	searchHandler := handler.NewSearchHandler(searchUC, log)
	lotHandler := handler.NewLotHandler(directoryUC, log)
	bookingHandler := handler.NewBookingHandler(bookingUC, log)
	statsHandler := handler.NewStatsHandler(statsUC, log)

	log.Info("HTTP handlers initialized")

	// 9. Initialize HTTP server
	server := httpDelivery.NewServer(
		cfg,
		log,
		searchHandler,
		lotHandler,
		bookingHandler,
		statsHandler,
		db,
		redisClient,
	)

	log.Info("HTTP server initialized")

	// 10. Start metrics listener
	if cfg.Metrics.Enabled {
		go func() {
			log.Info("Starting metrics listener", zap.Int("port", cfg.Metrics.Port))
			if err := observability.Serve(cfg.Metrics.Port); err != nil {
				log.Error("Metrics listener failed", zap.Error(err))
			}
		}()
	}

	// 11. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 12. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
