package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/parking-microservice/internal/config"
	"github.com/parking-microservice/internal/pkg/logger"
	"github.com/parking-microservice/internal/repository/cache"
	"github.com/parking-microservice/internal/repository/postgres"
	redisRepo "github.com/parking-microservice/internal/repository/redis"
	"github.com/parking-microservice/internal/usecase"
	"github.com/parking-microservice/internal/worker"
	"github.com/parking-microservice/internal/worker/availability"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Check if worker is enabled
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

	log.Info("Starting Parking Availability Worker")
	log.Info("Configuration loaded",
		zap.String("consumer_group", cfg.Worker.ConsumerGroup),
		zap.String("stream", cfg.Worker.Stream),
		zap.Bool("simulate_drift", cfg.Worker.SimulateDrift))

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

	// 5. Initialize repositories
	lotRepo := postgres.NewLotRepository(db)
	bookingRepo := postgres.NewBookingRepository(db)
	cacheRepo := cache.NewCacheRepository(redisClient)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log)

	// 6. Initialize use cases
	bookingUC := usecase.NewBookingUseCase(bookingRepo, lotRepo, log)

	// 7. Initialize workers
	availabilityWorker := availability.NewAvailabilityWorker(
		streamRepo,
		lotRepo,
		cacheRepo,
		cfg.Worker,
		log,
	)

	// 8. Create worker manager and register workers
	workerManager := worker.NewWorkerManager(log)
	workerManager.Register(availabilityWorker)

	if cfg.Worker.SimulateDrift {
		driftWorker := availability.NewDriftWorker(streamRepo, lotRepo, cfg.Worker, log)
		workerManager.Register(driftWorker)
	}

	// 9. Schedule booking completion
	scheduler := cron.New()
	_, err = scheduler.AddFunc(cfg.Worker.CompletionCron, func() {
		if _, err := bookingUC.CompleteExpired(context.Background()); err != nil {
			log.Error("Booking completion run failed", zap.Error(err))
		}
	})
	if err != nil {
		log.Fatal("Failed to schedule booking completion", zap.Error(err))
	}
	scheduler.Start()
	log.Info("Booking completion scheduled", zap.String("cron", cfg.Worker.CompletionCron))

	// 10. Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start workers
	if err := workerManager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Info("Received shutdown signal")

	// Stop the scheduler and workers
	cronCtx := scheduler.Stop()
	<-cronCtx.Done()

	cancel()

	if err := workerManager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}

	log.Info("Worker shutdown complete")
}
