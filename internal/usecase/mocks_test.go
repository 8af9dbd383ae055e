package usecase_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/parking-microservice/internal/domain"
)

// MockLotRepository is a mock of LotRepository
type MockLotRepository struct {
	mock.Mock
}

func (m *MockLotRepository) List(ctx context.Context) ([]domain.ParkingLot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ParkingLot), args.Error(1)
}

func (m *MockLotRepository) ListByManager(ctx context.Context, managerID string) ([]domain.ParkingLot, error) {
	args := m.Called(ctx, managerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ParkingLot), args.Error(1)
}

func (m *MockLotRepository) GetByID(ctx context.Context, id string) (*domain.ParkingLot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ParkingLot), args.Error(1)
}

func (m *MockLotRepository) Create(ctx context.Context, lot *domain.ParkingLot) error {
	args := m.Called(ctx, lot)
	return args.Error(0)
}

func (m *MockLotRepository) ApplyAvailabilityDelta(ctx context.Context, id string, delta int) (*domain.ParkingLot, error) {
	args := m.Called(ctx, id, delta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ParkingLot), args.Error(1)
}

// MockBookingRepository is a mock of BookingRepository
type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, id, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockBookingRepository) ListByLot(ctx context.Context, lotID string) ([]domain.Booking, error) {
	args := m.Called(ctx, lotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByManager(ctx context.Context, managerID string) ([]domain.Booking, error) {
	args := m.Called(ctx, managerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) CountActiveOverlapping(ctx context.Context, lotID string, start, end time.Time) (int, error) {
	args := m.Called(ctx, lotID, start, end)
	return args.Int(0), args.Error(1)
}

func (m *MockBookingRepository) CompleteExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

// MockCacheRepository is a mock of CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockCacheRepository) GetNearbyLots(ctx context.Context, center domain.Coordinate, radiusKm float64, keyword string) ([]domain.ParkingLot, error) {
	args := m.Called(ctx, center, radiusKm, keyword)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ParkingLot), args.Error(1)
}

func (m *MockCacheRepository) SetNearbyLots(ctx context.Context, center domain.Coordinate, radiusKm float64, keyword string, lots []domain.ParkingLot, ttl time.Duration) error {
	args := m.Called(ctx, center, radiusKm, keyword, lots, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) InvalidateNearbyLots(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockGeocodingRepository is a mock of GeocodingRepository
type MockGeocodingRepository struct {
	mock.Mock
}

func (m *MockGeocodingRepository) Resolve(ctx context.Context, query string) (*domain.Coordinate, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Coordinate), args.Error(1)
}

func (m *MockGeocodingRepository) NearbySearch(ctx context.Context, center domain.Coordinate, radiusKm float64, keyword string) ([]domain.RawPlaceRecord, error) {
	args := m.Called(ctx, center, radiusKm, keyword)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RawPlaceRecord), args.Error(1)
}
