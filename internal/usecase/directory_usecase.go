package usecase

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/parking-microservice/internal/config"
	"github.com/parking-microservice/internal/domain"
	"github.com/parking-microservice/internal/domain/repository"
	"github.com/parking-microservice/internal/pkg/errors"
	"github.com/parking-microservice/internal/usecase/dto"
)

// Normalization defaults applied to place-search records. Capacity,
// availability and rate are bounded placeholders, not real occupancy; they
// are generated only when DIRECTORY_PLACEHOLDER_OCCUPANCY is on.
const (
	defaultPlaceRating     = 4.0
	placeholderCapacityMin = 50
	placeholderCapacityMax = 200
	placeholderFreeMax     = 50
	placeholderRateMin     = 40
	placeholderRateMax     = 120
)

// DirectoryUseCase supplies candidate lots: from the store when it has any,
// otherwise from external place search normalized into the ParkingLot shape.
// It also owns the manager-facing lot registration flow.
type DirectoryUseCase struct {
	lotRepo       repository.LotRepository
	geocodingRepo repository.GeocodingRepository
	cacheRepo     repository.CacheRepository
	logger        *zap.Logger
	cacheTTL      time.Duration
	cfg           config.DirectoryConfig
}

func NewDirectoryUseCase(
	lotRepo repository.LotRepository,
	geocodingRepo repository.GeocodingRepository,
	cacheRepo repository.CacheRepository,
	logger *zap.Logger,
	cacheTTL time.Duration,
	cfg config.DirectoryConfig,
) *DirectoryUseCase {
	return &DirectoryUseCase{
		lotRepo:       lotRepo,
		geocodingRepo: geocodingRepo,
		cacheRepo:     cacheRepo,
		logger:        logger,
		cacheTTL:      cacheTTL,
		cfg:           cfg,
	}
}

// List returns the full directory (driver case).
func (uc *DirectoryUseCase) List(ctx context.Context) ([]domain.ParkingLot, error) {
	lots, err := uc.lotRepo.List(ctx)
	if err != nil {
		uc.logger.Error("Failed to list lots", zap.Error(err))
		return nil, err
	}
	return lots, nil
}

// ListByManager returns one manager's lots (dashboard case).
func (uc *DirectoryUseCase) ListByManager(ctx context.Context, managerID string) ([]domain.ParkingLot, error) {
	lots, err := uc.lotRepo.ListByManager(ctx, managerID)
	if err != nil {
		uc.logger.Error("Failed to list manager lots",
			zap.String("manager_id", managerID), zap.Error(err))
		return nil, err
	}
	return lots, nil
}

func (uc *DirectoryUseCase) GetByID(ctx context.Context, id string) (*domain.ParkingLot, error) {
	return uc.lotRepo.GetByID(ctx, id)
}

// Candidates returns the candidate set for a nearby search. Upstream
// failures are logged and yield an empty set for the cycle, never an error:
// the search engine treats them as DirectoryEmpty.
func (uc *DirectoryUseCase) Candidates(ctx context.Context, center domain.Coordinate, radiusKm float64) []domain.ParkingLot {
	lots, err := uc.lotRepo.List(ctx)
	if err != nil {
		uc.logger.Error("Directory fetch failed, treating candidates as empty", zap.Error(err))
		return nil
	}
	if len(lots) > 0 {
		return lots
	}

	// Empty store: synthesize candidates from external place search,
	// cached per center/radius cell.
	cached, err := uc.cacheRepo.GetNearbyLots(ctx, center, radiusKm, uc.cfg.PlaceKeyword)
	if err != nil {
		uc.logger.Warn("Nearby cache read failed", zap.Error(err))
	}
	if cached != nil {
		return cached
	}

	records, err := uc.geocodingRepo.NearbySearch(ctx, center, radiusKm, uc.cfg.PlaceKeyword)
	if err != nil {
		uc.logger.Error("Place search failed, treating candidates as empty", zap.Error(err))
		return nil
	}

	lots = uc.NormalizePlaces(records)

	if err := uc.cacheRepo.SetNearbyLots(ctx, center, radiusKm, uc.cfg.PlaceKeyword, lots, uc.cacheTTL); err != nil {
		uc.logger.Warn("Nearby cache write failed", zap.Error(err))
	}

	return lots
}

// NormalizePlaces converts raw place records into ParkingLots. Records
// without geometry are dropped. Missing ratings default to 4.0. Occupancy
// fields are either bounded placeholders (prototype parity) or left zero
// with OccupancyKnown=false.
func (uc *DirectoryUseCase) NormalizePlaces(records []domain.RawPlaceRecord) []domain.ParkingLot {
	lots := make([]domain.ParkingLot, 0, len(records))
	for _, rec := range records {
		if rec.Location == nil {
			uc.logger.Debug("Dropping place record without geometry",
				zap.String("place_id", rec.PlaceID))
			continue
		}

		lot := domain.ParkingLot{
			ID:         rec.PlaceID,
			Name:       rec.Name,
			Address:    rec.Vicinity,
			Coordinate: *rec.Location,
			PlaceID:    rec.PlaceID,
			Rating:     defaultPlaceRating,
		}
		if rec.Rating != nil {
			lot.Rating = *rec.Rating
		}
		if rec.PhotoURL != "" {
			lot.PhotoURLs = []string{rec.PhotoURL}
		}

		if uc.cfg.PlaceholderOccupancy {
			lot.TotalSpots = placeholderCapacityMin +
				rand.Intn(placeholderCapacityMax-placeholderCapacityMin+1)
			lot.AvailableSpots = rand.Intn(placeholderFreeMax + 1)
			if lot.AvailableSpots > lot.TotalSpots {
				lot.AvailableSpots = lot.TotalSpots
			}
			lot.HourlyRate = float64(placeholderRateMin +
				rand.Intn(placeholderRateMax-placeholderRateMin+1))
			lot.OccupancyKnown = true
		}

		lots = append(lots, lot)
	}
	return lots
}

// Register geocodes the address and creates the lot. All spots start free.
func (uc *DirectoryUseCase) Register(ctx context.Context, req dto.CreateLotRequest, managerID string) (*domain.ParkingLot, error) {
	location, err := uc.geocodingRepo.Resolve(ctx, req.Address)
	if err != nil {
		uc.logger.Warn("Lot registration geocode failed",
			zap.String("address", req.Address), zap.Error(err))
		return nil, errors.ErrResolutionFailed.WithDetails(map[string]interface{}{
			"query": req.Address,
		})
	}

	lot := &domain.ParkingLot{
		ID:             uuid.NewString(),
		Name:           req.Name,
		Address:        req.Address,
		Coordinate:     *location,
		Rating:         registrationRating(),
		TotalSpots:     req.TotalSpots,
		AvailableSpots: req.TotalSpots,
		HourlyRate:     req.HourlyRate,
		ManagerID:      managerID,
		OccupancyKnown: true,
	}
	lot.PhotoURLs = []string{
		fmt.Sprintf("https://picsum.photos/seed/%s/400/300", lot.ID),
	}

	if err := uc.lotRepo.Create(ctx, lot); err != nil {
		uc.logger.Error("Failed to create lot", zap.Error(err))
		return nil, err
	}

	uc.logger.Info("Parking lot registered",
		zap.String("lot_id", lot.ID),
		zap.String("manager_id", managerID),
		zap.Int("total_spots", lot.TotalSpots))

	return lot, nil
}

// registrationRating seeds a new lot's rating in the 3.5-4.8 band, one
// decimal, until real ratings exist for it.
func registrationRating() float64 {
	r := 3.5 + rand.Float64()*(4.8-3.5)
	return float64(int(r*10+0.5)) / 10
}
