package repository

import (
	"context"

	"github.com/parking-microservice/internal/domain"
)

// StreamRepository defines the availability event stream.
type StreamRepository interface {
	// CreateConsumerGroup creates the consumer group for a stream,
	// creating the stream itself if needed.
	CreateConsumerGroup(ctx context.Context, stream, group string) error

	// ConsumeStream delivers messages for a consumer-group member until the
	// context is cancelled.
	ConsumeStream(ctx context.Context, stream, group, consumer string) (<-chan domain.StreamMessage, error)

	// AckMessage acknowledges a processed message.
	AckMessage(ctx context.Context, stream, group, messageID string) error

	// PublishAvailability appends an availability event to the stream.
	PublishAvailability(ctx context.Context, stream string, event domain.AvailabilityEvent) error
}
