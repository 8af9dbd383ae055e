package repository

import (
	"context"
	"time"

	"github.com/parking-microservice/internal/domain"
)

// BookingRepository defines access to the bookings store.
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error

	GetByID(ctx context.Context, id string) (*domain.Booking, error)

	UpdateStatus(ctx context.Context, id, status string) error

	// ListByLot returns bookings for one lot, newest first.
	ListByLot(ctx context.Context, lotID string) ([]domain.Booking, error)

	// ListByManager returns bookings across all lots owned by a manager.
	ListByManager(ctx context.Context, managerID string) ([]domain.Booking, error)

	// CountActiveOverlapping counts active bookings of a lot whose
	// [start, end) window intersects the given one.
	CountActiveOverlapping(ctx context.Context, lotID string, start, end time.Time) (int, error)

	// CompleteExpired marks active bookings whose end time has passed as
	// completed and returns how many were updated.
	CompleteExpired(ctx context.Context, now time.Time) (int64, error)
}
