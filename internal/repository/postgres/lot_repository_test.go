package postgres_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/parking-microservice/internal/domain"
	"github.com/parking-microservice/internal/domain/repository"
	"github.com/parking-microservice/internal/pkg/errors"
	"github.com/parking-microservice/internal/repository/postgres/testhelpers"
)

// LotRepositorySuite tests the lot repository with a real database
type LotRepositorySuite struct {
	suite.Suite
	testDB *testhelpers.TestDB
	repo   repository.LotRepository
	ctx    context.Context
}

func (s *LotRepositorySuite) SetupSuite() {
	s.testDB = testhelpers.SetupTestDB(s.T())

	err := testhelpers.ApplyMigrations(s.testDB.DB.DB, "../../../migrations")
	s.Require().NoError(err, "Failed to apply migrations")

	s.repo = testhelpers.NewLotRepositoryForTest(s.testDB.DB, s.testDB.Logger)
}

func (s *LotRepositorySuite) TearDownSuite() {
	if s.testDB != nil {
		s.testDB.Close()
	}
}

func (s *LotRepositorySuite) SetupTest() {
	s.ctx = context.Background()
	s.Require().NoError(s.testDB.Cleanup(s.ctx))
}

func (s *LotRepositorySuite) newLot(name, managerID string, total, available int) *domain.ParkingLot {
	return &domain.ParkingLot{
		ID:      uuid.NewString(),
		Name:    name,
		Address: "Connaught Place, New Delhi",
		Coordinate: domain.Coordinate{
			Lat: 28.6324,
			Lon: 77.2187,
		},
		Rating:         4.5,
		TotalSpots:     total,
		AvailableSpots: available,
		HourlyRate:     50,
		PhotoURLs:      []string{"https://example.com/lot.jpg"},
		ManagerID:      managerID,
		OccupancyKnown: true,
	}
}

func (s *LotRepositorySuite) TestCreateAndGetByID() {
	lot := s.newLot("Central Plaza Parking", "mgr-1", 120, 45)
	s.Require().NoError(s.repo.Create(s.ctx, lot))

	got, err := s.repo.GetByID(s.ctx, lot.ID)
	s.Require().NoError(err)
	s.Equal(lot.ID, got.ID)
	s.Equal("Central Plaza Parking", got.Name)
	s.Equal(28.6324, got.Lat)
	s.Equal(77.2187, got.Lon)
	s.Equal(120, got.TotalSpots)
	s.Equal(45, got.AvailableSpots)
	s.Equal(50.0, got.HourlyRate)
	s.Equal([]string{"https://example.com/lot.jpg"}, got.PhotoURLs)
	s.Equal("mgr-1", got.ManagerID)
	s.True(got.OccupancyKnown)
	s.False(got.CreatedAt.IsZero())
}

func (s *LotRepositorySuite) TestGetByID_NotFound() {
	_, err := s.repo.GetByID(s.ctx, uuid.NewString())
	s.Equal(errors.ErrLotNotFound, err)
}

func (s *LotRepositorySuite) TestList() {
	s.Require().NoError(s.repo.Create(s.ctx, s.newLot("Lot A", "mgr-1", 50, 10)))
	s.Require().NoError(s.repo.Create(s.ctx, s.newLot("Lot B", "mgr-2", 80, 20)))

	lots, err := s.repo.List(s.ctx)
	s.Require().NoError(err)
	s.Len(lots, 2)

	names := []string{lots[0].Name, lots[1].Name}
	s.ElementsMatch([]string{"Lot A", "Lot B"}, names)
}

func (s *LotRepositorySuite) TestListByManager() {
	s.Require().NoError(s.repo.Create(s.ctx, s.newLot("Lot A", "mgr-1", 50, 10)))
	s.Require().NoError(s.repo.Create(s.ctx, s.newLot("Lot B", "mgr-1", 80, 20)))
	s.Require().NoError(s.repo.Create(s.ctx, s.newLot("Lot C", "mgr-2", 60, 15)))

	lots, err := s.repo.ListByManager(s.ctx, "mgr-1")
	s.Require().NoError(err)
	s.Len(lots, 2)
	for _, lot := range lots {
		s.Equal("mgr-1", lot.ManagerID)
	}
}

func (s *LotRepositorySuite) TestApplyAvailabilityDelta() {
	lot := s.newLot("Lot A", "mgr-1", 10, 5)
	s.Require().NoError(s.repo.Create(s.ctx, lot))

	updated, err := s.repo.ApplyAvailabilityDelta(s.ctx, lot.ID, -2)
	s.Require().NoError(err)
	s.Equal(3, updated.AvailableSpots)

	updated, err = s.repo.ApplyAvailabilityDelta(s.ctx, lot.ID, 1)
	s.Require().NoError(err)
	s.Equal(4, updated.AvailableSpots)
}

func (s *LotRepositorySuite) TestApplyAvailabilityDelta_ClampsAtZero() {
	lot := s.newLot("Lot A", "mgr-1", 10, 2)
	s.Require().NoError(s.repo.Create(s.ctx, lot))

	updated, err := s.repo.ApplyAvailabilityDelta(s.ctx, lot.ID, -100)
	s.Require().NoError(err)
	s.Equal(0, updated.AvailableSpots)
}

func (s *LotRepositorySuite) TestApplyAvailabilityDelta_ClampsAtTotal() {
	lot := s.newLot("Lot A", "mgr-1", 10, 8)
	s.Require().NoError(s.repo.Create(s.ctx, lot))

	updated, err := s.repo.ApplyAvailabilityDelta(s.ctx, lot.ID, 100)
	s.Require().NoError(err)
	s.Equal(10, updated.AvailableSpots)
}

func (s *LotRepositorySuite) TestApplyAvailabilityDelta_NotFound() {
	_, err := s.repo.ApplyAvailabilityDelta(s.ctx, uuid.NewString(), 1)
	s.Equal(errors.ErrLotNotFound, err)
}

func TestLotRepositorySuite(t *testing.T) {
	suite.Run(t, new(LotRepositorySuite))
}
