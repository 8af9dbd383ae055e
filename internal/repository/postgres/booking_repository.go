package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/parking-microservice/internal/domain"
	"github.com/parking-microservice/internal/domain/repository"
	"github.com/parking-microservice/internal/pkg/errors"
)

const bookingColumns = `
	id, lot_id, user_id, start_time, duration_hours, end_time,
	price_paid, status, created_at, updated_at
`

type bookingRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewBookingRepository(db *DB) repository.BookingRepository {
	return &bookingRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *bookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	query := `
		INSERT INTO bookings (
			id, lot_id, user_id, start_time, duration_hours, end_time,
			price_paid, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.ExecContext(ctx, query,
		booking.ID, booking.LotID, booking.UserID,
		booking.StartTime, booking.DurationHours, booking.EndTime,
		booking.PricePaid, booking.Status, booking.CreatedAt, booking.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create booking", zap.String("id", booking.ID), zap.Error(err))
		return errors.ErrDatabaseError
	}

	return nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	var booking domain.Booking
	err := r.db.GetContext(ctx, &booking, query, id)
	if err == sql.ErrNoRows {
		return nil, errors.ErrBookingNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get booking", zap.String("id", id), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return &booking, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id, status string) error {
	query := `UPDATE bookings SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		r.logger.Error("Failed to update booking status",
			zap.String("id", id), zap.String("status", status), zap.Error(err))
		return errors.ErrDatabaseError
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return errors.ErrDatabaseError
	}
	if affected == 0 {
		return errors.ErrBookingNotFound
	}

	return nil
}

func (r *bookingRepository) ListByLot(ctx context.Context, lotID string) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE lot_id = $1 ORDER BY start_time DESC`

	bookings := make([]domain.Booking, 0)
	if err := r.db.SelectContext(ctx, &bookings, query, lotID); err != nil {
		r.logger.Error("Failed to list lot bookings", zap.String("lot_id", lotID), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return bookings, nil
}

func (r *bookingRepository) ListByManager(ctx context.Context, managerID string) ([]domain.Booking, error) {
	query := `
		SELECT b.id, b.lot_id, b.user_id, b.start_time, b.duration_hours,
		       b.end_time, b.price_paid, b.status, b.created_at, b.updated_at
		FROM bookings b
		JOIN parking_lots l ON l.id = b.lot_id
		WHERE l.manager_id = $1
		ORDER BY b.start_time DESC
	`

	bookings := make([]domain.Booking, 0)
	if err := r.db.SelectContext(ctx, &bookings, query, managerID); err != nil {
		r.logger.Error("Failed to list manager bookings",
			zap.String("manager_id", managerID), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return bookings, nil
}

// CountActiveOverlapping counts active bookings whose [start_time, end_time)
// window intersects [start, end).
func (r *bookingRepository) CountActiveOverlapping(ctx context.Context, lotID string, start, end time.Time) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM bookings
		WHERE lot_id = $1
		  AND status = 'active'
		  AND start_time < $3
		  AND end_time > $2
	`

	var count int
	if err := r.db.GetContext(ctx, &count, query, lotID, start, end); err != nil {
		r.logger.Error("Failed to count overlapping bookings",
			zap.String("lot_id", lotID), zap.Error(err))
		return 0, errors.ErrDatabaseError
	}

	return count, nil
}

// CompleteExpired moves active bookings past their end time to completed.
func (r *bookingRepository) CompleteExpired(ctx context.Context, now time.Time) (int64, error) {
	query := `
		UPDATE bookings
		SET status = 'completed', updated_at = NOW()
		WHERE status = 'active' AND end_time <= $1
	`

	result, err := r.db.ExecContext(ctx, query, now)
	if err != nil {
		r.logger.Error("Failed to complete expired bookings", zap.Error(err))
		return 0, errors.ErrDatabaseError
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, errors.ErrDatabaseError
	}

	return affected, nil
}
