package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/parking-microservice/internal/domain"
	"github.com/parking-microservice/internal/domain/repository"
	"github.com/parking-microservice/internal/pkg/errors"
)

const lotColumns = `
	id, name, address, lat, lon, place_id, rating,
	total_spots, available_spots, hourly_rate, photo_urls,
	manager_id, occupancy_known, created_at, updated_at
`

type lotRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewLotRepository(db *DB) repository.LotRepository {
	return &lotRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *lotRepository) List(ctx context.Context) ([]domain.ParkingLot, error) {
	query := `SELECT ` + lotColumns + ` FROM parking_lots ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list parking lots", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	return r.scanLots(rows)
}

func (r *lotRepository) ListByManager(ctx context.Context, managerID string) ([]domain.ParkingLot, error) {
	query := `SELECT ` + lotColumns + ` FROM parking_lots WHERE manager_id = $1 ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query, managerID)
	if err != nil {
		r.logger.Error("Failed to list manager lots",
			zap.String("manager_id", managerID), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	return r.scanLots(rows)
}

func (r *lotRepository) GetByID(ctx context.Context, id string) (*domain.ParkingLot, error) {
	query := `SELECT ` + lotColumns + ` FROM parking_lots WHERE id = $1`

	lot, err := scanLot(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.ErrLotNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get parking lot", zap.String("id", id), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return lot, nil
}

func (r *lotRepository) Create(ctx context.Context, lot *domain.ParkingLot) error {
	query := `
		INSERT INTO parking_lots (
			id, name, address, lat, lon, place_id, rating,
			total_spots, available_spots, hourly_rate, photo_urls,
			manager_id, occupancy_known, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW()
		)
	`

	_, err := r.db.ExecContext(ctx, query,
		lot.ID, lot.Name, lot.Address, lot.Lat, lot.Lon,
		lot.PlaceID, lot.Rating, lot.TotalSpots, lot.AvailableSpots,
		lot.HourlyRate, pq.Array(lot.PhotoURLs), lot.ManagerID, lot.OccupancyKnown,
	)
	if err != nil {
		r.logger.Error("Failed to create parking lot", zap.String("id", lot.ID), zap.Error(err))
		return errors.ErrDatabaseError
	}

	return nil
}

// ApplyAvailabilityDelta moves available_spots by delta, clamped to
// [0, total_spots] in a single statement so concurrent deltas stay consistent.
func (r *lotRepository) ApplyAvailabilityDelta(ctx context.Context, id string, delta int) (*domain.ParkingLot, error) {
	query := `
		UPDATE parking_lots
		SET available_spots = GREATEST(0, LEAST(total_spots, available_spots + $2)),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING ` + lotColumns

	lot, err := scanLot(r.db.QueryRowContext(ctx, query, id, delta))
	if err == sql.ErrNoRows {
		return nil, errors.ErrLotNotFound
	}
	if err != nil {
		r.logger.Error("Failed to apply availability delta",
			zap.String("id", id), zap.Int("delta", delta), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return lot, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanLot(row rowScanner) (*domain.ParkingLot, error) {
	var lot domain.ParkingLot
	var photoURLs pq.StringArray

	err := row.Scan(
		&lot.ID, &lot.Name, &lot.Address, &lot.Lat, &lot.Lon,
		&lot.PlaceID, &lot.Rating, &lot.TotalSpots, &lot.AvailableSpots,
		&lot.HourlyRate, &photoURLs, &lot.ManagerID, &lot.OccupancyKnown,
		&lot.CreatedAt, &lot.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	lot.PhotoURLs = photoURLs
	return &lot, nil
}

func (r *lotRepository) scanLots(rows *sql.Rows) ([]domain.ParkingLot, error) {
	lots := make([]domain.ParkingLot, 0)
	for rows.Next() {
		lot, err := scanLot(rows)
		if err != nil {
			r.logger.Error("Failed to scan parking lot", zap.Error(err))
			continue
		}
		lots = append(lots, *lot)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error("Row iteration failed", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return lots, nil
}
