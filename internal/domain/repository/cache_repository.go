package repository

import (
	"context"
	"time"

	"github.com/parking-microservice/internal/domain"
)

// CacheRepository defines the result cache.
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)

	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	Delete(ctx context.Context, key string) error

	Exists(ctx context.Context, key string) (bool, error)

	// GetNearbyLots returns cached place-search results for a center/radius
	// cell, or nil on a miss.
	GetNearbyLots(ctx context.Context, center domain.Coordinate, radiusKm float64, keyword string) ([]domain.ParkingLot, error)

	// SetNearbyLots caches place-search results for a center/radius cell.
	SetNearbyLots(ctx context.Context, center domain.Coordinate, radiusKm float64, keyword string, lots []domain.ParkingLot, ttl time.Duration) error

	// InvalidateNearbyLots drops all cached place-search cells. Called when
	// availability changes make cached occupancy stale.
	InvalidateNearbyLots(ctx context.Context) error
}
