package availability

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/parking-microservice/internal/config"
	"github.com/parking-microservice/internal/domain"
	"github.com/parking-microservice/internal/domain/repository"
	"github.com/parking-microservice/internal/observability"
	"github.com/parking-microservice/internal/worker"
)

// AvailabilityWorker applies availability events from the stream to the lot
// store, holding the 0 <= available <= total invariant in the database.
type AvailabilityWorker struct {
	*worker.BaseWorker
	streamRepo   repository.StreamRepository
	lotRepo      repository.LotRepository
	cacheRepo    repository.CacheRepository
	stream       string
	consumerName string
}

func NewAvailabilityWorker(
	streamRepo repository.StreamRepository,
	lotRepo repository.LotRepository,
	cacheRepo repository.CacheRepository,
	cfg config.WorkerConfig,
	logger *zap.Logger,
) *AvailabilityWorker {
	hostname, _ := os.Hostname()
	consumerName := fmt.Sprintf("%s-%d", hostname, os.Getpid())

	return &AvailabilityWorker{
		BaseWorker:   worker.NewBaseWorker("availability", cfg.ConsumerGroup, logger),
		streamRepo:   streamRepo,
		lotRepo:      lotRepo,
		cacheRepo:    cacheRepo,
		stream:       cfg.Stream,
		consumerName: consumerName,
	}
}

func (w *AvailabilityWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting AvailabilityWorker",
		zap.String("stream", w.stream),
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.consumerName))

	if err := w.streamRepo.CreateConsumerGroup(ctx, w.stream, w.ConsumerGroup()); err != nil {
		logger.Error("Failed to create consumer group", zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	msgChan, err := w.streamRepo.ConsumeStream(ctx, w.stream, w.ConsumerGroup(), w.consumerName)
	if err != nil {
		return fmt.Errorf("failed to start stream consumer: %w", err)
	}

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		case msg, ok := <-msgChan:
			if !ok {
				logger.Info("Stream channel closed")
				return nil
			}
			w.handleMessage(ctx, msg)
		}
	}
}

func (w *AvailabilityWorker) handleMessage(ctx context.Context, msg domain.StreamMessage) {
	logger := w.Logger()

	var event domain.AvailabilityEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		logger.Warn("Failed to parse availability event, skipping",
			zap.String("message_id", msg.ID),
			zap.Error(err))
		// Ack the broken message so it does not wedge the group.
		_ = w.streamRepo.AckMessage(ctx, w.stream, w.ConsumerGroup(), msg.ID)
		return
	}

	lot, err := w.lotRepo.ApplyAvailabilityDelta(ctx, event.LotID, event.Delta)
	if err != nil {
		logger.Error("Failed to apply availability delta",
			zap.String("lot_id", event.LotID),
			zap.Int("delta", event.Delta),
			zap.Error(err))
		// Leave the message pending so it gets redelivered.
		return
	}

	if err := w.cacheRepo.InvalidateNearbyLots(ctx); err != nil {
		logger.Warn("Failed to invalidate nearby cache", zap.Error(err))
	}

	if err := w.streamRepo.AckMessage(ctx, w.stream, w.ConsumerGroup(), msg.ID); err != nil {
		logger.Error("Failed to ack message", zap.String("message_id", msg.ID), zap.Error(err))
		return
	}

	observability.AvailabilityEventsTotal.Inc()
	logger.Debug("Availability delta applied",
		zap.String("lot_id", lot.ID),
		zap.Int("delta", event.Delta),
		zap.Int("available_spots", lot.AvailableSpots))
}
