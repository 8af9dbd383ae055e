package repository

import (
	"context"

	"github.com/parking-microservice/internal/domain"
)

// LotRepository defines access to the parking-lot directory store.
type LotRepository interface {
	// List returns every known lot (driver case, unfiltered).
	List(ctx context.Context) ([]domain.ParkingLot, error)

	// ListByManager returns lots owned by one manager (dashboard case).
	ListByManager(ctx context.Context, managerID string) ([]domain.ParkingLot, error)

	// GetByID returns a single lot.
	GetByID(ctx context.Context, id string) (*domain.ParkingLot, error)

	// Create persists a newly registered lot.
	Create(ctx context.Context, lot *domain.ParkingLot) error

	// ApplyAvailabilityDelta adjusts free spots by delta, clamped into
	// [0, total_spots], and returns the updated lot.
	ApplyAvailabilityDelta(ctx context.Context, id string, delta int) (*domain.ParkingLot, error)
}
