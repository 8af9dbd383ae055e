package testhelpers

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/parking-microservice/internal/domain/repository"
	"github.com/parking-microservice/internal/repository/postgres"
)

// NewDBForTest creates a postgres.DB with test database and logger
func NewDBForTest(db *sqlx.DB, logger *zap.Logger) *postgres.DB {
	return postgres.NewDBForTest(db, logger)
}

// NewLotRepositoryForTest creates a lot repository with test database and logger
func NewLotRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.LotRepository {
	pgDB := NewDBForTest(db, logger)
	return postgres.NewLotRepository(pgDB)
}

// NewBookingRepositoryForTest creates a booking repository with test database and logger
func NewBookingRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.BookingRepository {
	pgDB := NewDBForTest(db, logger)
	return postgres.NewBookingRepository(pgDB)
}
