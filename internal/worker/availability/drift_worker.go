package availability

import (
	"context"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/parking-microservice/internal/config"
	"github.com/parking-microservice/internal/domain"
	"github.com/parking-microservice/internal/domain/repository"
	"github.com/parking-microservice/internal/worker"
)

// DriftWorker simulates cars entering and leaving: every interval it
// publishes a random +/-1 availability delta per lot. Intended for demo
// deployments without real sensors; enabled by WORKER_SIMULATE_DRIFT.
type DriftWorker struct {
	*worker.BaseWorker
	streamRepo repository.StreamRepository
	lotRepo    repository.LotRepository
	stream     string
	interval   time.Duration
}

func NewDriftWorker(
	streamRepo repository.StreamRepository,
	lotRepo repository.LotRepository,
	cfg config.WorkerConfig,
	logger *zap.Logger,
) *DriftWorker {
	return &DriftWorker{
		BaseWorker: worker.NewBaseWorker("availability-drift", cfg.ConsumerGroup, logger),
		streamRepo: streamRepo,
		lotRepo:    lotRepo,
		stream:     cfg.Stream,
		interval:   cfg.DriftInterval,
	}
}

func (w *DriftWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting DriftWorker",
		zap.String("stream", w.stream),
		zap.Duration("interval", w.interval))

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		case <-ticker.C:
			w.publishDrift(ctx)
		}
	}
}

func (w *DriftWorker) publishDrift(ctx context.Context) {
	logger := w.Logger()

	lots, err := w.lotRepo.List(ctx)
	if err != nil {
		logger.Error("Failed to list lots for drift", zap.Error(err))
		return
	}

	now := time.Now().UTC()
	published := 0
	for _, lot := range lots {
		delta := 1
		if rand.Intn(2) == 0 {
			delta = -1
		}

		event := domain.AvailabilityEvent{
			LotID:      lot.ID,
			Delta:      delta,
			ReportedAt: now,
		}
		if err := w.streamRepo.PublishAvailability(ctx, w.stream, event); err != nil {
			logger.Error("Failed to publish drift event",
				zap.String("lot_id", lot.ID), zap.Error(err))
			continue
		}
		published++
	}

	logger.Debug("Drift events published", zap.Int("count", published))
}
