package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/parking-microservice/internal/config"
	"github.com/parking-microservice/internal/domain"
	"github.com/parking-microservice/internal/pkg/errors"
	"github.com/parking-microservice/internal/usecase"
	"github.com/parking-microservice/internal/usecase/dto"
)

// Connaught Place, the default search center.
var testCenter = domain.Coordinate{Lat: 28.6139, Lon: 77.2090}

// Delhi test lots. Distances from Connaught Place: p1 ~2.3km, p4 ~2.4km,
// p2 ~9.6km, p5 ~12.4km, p3 ~17.7km.
func delhiLots() []domain.ParkingLot {
	return []domain.ParkingLot{
		{
			ID:   "p1",
			Name: "Central Plaza Parking",
			Coordinate: domain.Coordinate{
				Lat: 28.6324, Lon: 77.2187,
			},
			Rating: 4.7, TotalSpots: 150, AvailableSpots: 23, HourlyRate: 60,
			OccupancyKnown: true,
		},
		{
			ID:   "p2",
			Name: "Select Citywalk Mall Parking",
			Coordinate: domain.Coordinate{
				Lat: 28.5284, Lon: 77.2191,
			},
			Rating: 4.5, TotalSpots: 500, AvailableSpots: 120, HourlyRate: 80,
			OccupancyKnown: true,
		},
		{
			ID:   "p3",
			Name: "Metropolis Tower Parking",
			Coordinate: domain.Coordinate{
				Lat: 28.4947, Lon: 77.0886,
			},
			Rating: 4.2, TotalSpots: 200, AvailableSpots: 8, HourlyRate: 70,
			OccupancyKnown: true,
		},
		{
			ID:   "p4",
			Name: "Khan Market Street Parking",
			Coordinate: domain.Coordinate{
				Lat: 28.6002, Lon: 77.2274,
			},
			Rating: 3.8, TotalSpots: 50, AvailableSpots: 1, HourlyRate: 40,
			OccupancyKnown: true,
		},
		{
			ID:   "p5",
			Name: "Airport T3 Parking",
			Coordinate: domain.Coordinate{
				Lat: 28.5562, Lon: 77.1000,
			},
			Rating: 4.4, TotalSpots: 1000, AvailableSpots: 350, HourlyRate: 120,
			OccupancyKnown: true,
		},
	}
}

func testSearchConfig() config.SearchConfig {
	return config.SearchConfig{
		RadiusKm:         5.0,
		DefaultCenterLat: testCenter.Lat,
		DefaultCenterLon: testCenter.Lon,
		GeolocationWait:  5 * time.Second,
	}
}

func newSearchUseCase(t *testing.T, lots []domain.ParkingLot, cfg config.SearchConfig) (*usecase.SearchUseCase, *MockGeocodingRepository) {
	t.Helper()

	lotRepo := new(MockLotRepository)
	lotRepo.On("List", mock.Anything).Return(lots, nil)

	geocodingRepo := new(MockGeocodingRepository)

	directory := usecase.NewDirectoryUseCase(
		lotRepo,
		geocodingRepo,
		new(MockCacheRepository),
		zap.NewNop(),
		time.Minute,
		config.DirectoryConfig{PlaceKeyword: "parking"},
	)

	return usecase.NewSearchUseCase(directory, geocodingRepo, zap.NewNop(), cfg), geocodingRepo
}

func resultIDs(results []domain.ParkingLot) []string {
	ids := make([]string, 0, len(results))
	for _, lot := range results {
		ids = append(ids, lot.ID)
	}
	return ids
}

func TestRankByDistance(t *testing.T) {
	t.Run("filters to radius and orders nearest first", func(t *testing.T) {
		results := usecase.RankByDistance(testCenter, delhiLots(), 5.0)

		require.Len(t, results, 2)
		assert.Equal(t, []string{"p1", "p4"}, resultIDs(results))

		require.NotNil(t, results[0].DistanceKm)
		require.NotNil(t, results[1].DistanceKm)
		assert.InDelta(t, 2.26, *results[0].DistanceKm, 0.1)
		assert.InDelta(t, 2.35, *results[1].DistanceKm, 0.1)
	})

	t.Run("wide radius keeps everything ordered by distance", func(t *testing.T) {
		results := usecase.RankByDistance(testCenter, delhiLots(), 50.0)

		require.Len(t, results, 5)
		assert.Equal(t, []string{"p1", "p4", "p2", "p5", "p3"}, resultIDs(results))

		for i := 1; i < len(results); i++ {
			assert.LessOrEqual(t, *results[i-1].DistanceKm, *results[i].DistanceKm)
		}
	})

	t.Run("every result is within the radius", func(t *testing.T) {
		results := usecase.RankByDistance(testCenter, delhiLots(), 10.0)

		require.NotEmpty(t, results)
		for _, lot := range results {
			assert.LessOrEqual(t, *lot.DistanceKm, 10.0)
		}
	})

	t.Run("no candidates in range yields empty slice", func(t *testing.T) {
		results := usecase.RankByDistance(testCenter, delhiLots(), 0.5)
		assert.Empty(t, results)
	})

	t.Run("empty candidate set yields empty slice", func(t *testing.T) {
		results := usecase.RankByDistance(testCenter, nil, 5.0)
		assert.Empty(t, results)
	})

	t.Run("does not mutate input", func(t *testing.T) {
		candidates := delhiLots()
		usecase.RankByDistance(testCenter, candidates, 5.0)

		for _, lot := range candidates {
			assert.Nil(t, lot.DistanceKm)
		}
	})

	t.Run("equidistant lots keep input order", func(t *testing.T) {
		same := domain.Coordinate{Lat: 28.6200, Lon: 77.2100}
		candidates := []domain.ParkingLot{
			{ID: "a", Coordinate: same},
			{ID: "b", Coordinate: same},
			{ID: "c", Coordinate: same},
		}

		results := usecase.RankByDistance(testCenter, candidates, 5.0)
		assert.Equal(t, []string{"a", "b", "c"}, resultIDs(results))
	})
}

func TestReduce(t *testing.T) {
	baseState := func() domain.SearchState {
		return domain.SearchState{
			RadiusKm:   5.0,
			Status:     domain.SearchIdle,
			Candidates: delhiLots(),
		}
	}

	t.Run("nearby trigger moves to resolving and clears results", func(t *testing.T) {
		state := baseState()
		state.Results = delhiLots()

		next := usecase.Reduce(state, domain.NearbyTriggered{})

		assert.Equal(t, domain.SearchResolving, next.Status)
		assert.Equal(t, state.Token+1, next.Token)
		assert.Empty(t, next.Results)
		assert.Empty(t, next.Query)
	})

	t.Run("geolocation fix produces ranked results", func(t *testing.T) {
		state := usecase.Reduce(baseState(), domain.NearbyTriggered{})
		next := usecase.Reduce(state, domain.GeolocationUpdated{Position: testCenter})

		assert.Equal(t, domain.SearchReady, next.Status)
		require.NotNil(t, next.Center)
		assert.Equal(t, testCenter, *next.Center)
		assert.Equal(t, []string{"p1", "p4"}, resultIDs(next.Results))
	})

	t.Run("geolocation failure falls back to the default center", func(t *testing.T) {
		state := usecase.Reduce(baseState(), domain.NearbyTriggered{})
		next := usecase.Reduce(state, domain.GeolocationFailed{
			Reason:   "timeout",
			Fallback: testCenter,
		})

		assert.Equal(t, domain.SearchReady, next.Status)
		require.NotNil(t, next.Center)
		assert.Equal(t, testCenter, *next.Center)
		assert.Contains(t, next.StatusMessage, "location unavailable")
		assert.Equal(t, []string{"p1", "p4"}, resultIDs(next.Results))
	})

	t.Run("late geolocation failure after a fix is ignored", func(t *testing.T) {
		state := usecase.Reduce(baseState(), domain.NearbyTriggered{})
		state = usecase.Reduce(state, domain.GeolocationUpdated{Position: testCenter})

		next := usecase.Reduce(state, domain.GeolocationFailed{
			Reason:   "timeout",
			Fallback: domain.Coordinate{Lat: 0, Lon: 0},
		})

		assert.Equal(t, state, next)
		assert.Equal(t, testCenter, *next.Center)
	})

	t.Run("query resolution with the current token applies", func(t *testing.T) {
		state := baseState()
		state.Token = 7

		next := usecase.Reduce(state, domain.QueryResolved{
			Query:    "connaught place",
			Location: testCenter,
			Token:    7,
		})

		assert.Equal(t, domain.SearchReady, next.Status)
		assert.Equal(t, "connaught place", next.Query)
		assert.Equal(t, []string{"p1", "p4"}, resultIDs(next.Results))
	})

	t.Run("stale query resolution is dropped", func(t *testing.T) {
		state := baseState()
		state.Token = 7

		next := usecase.Reduce(state, domain.QueryResolved{
			Query:    "old query",
			Location: domain.Coordinate{Lat: 12.97, Lon: 77.59},
			Token:    6,
		})

		assert.Equal(t, state, next)
		assert.Nil(t, next.Center)
	})

	t.Run("stale query failure is dropped", func(t *testing.T) {
		state := baseState()
		state.Token = 3
		state.Status = domain.SearchResolving

		next := usecase.Reduce(state, domain.QueryFailed{
			Query: "old query", Reason: "not found", Token: 2,
		})

		assert.Equal(t, domain.SearchResolving, next.Status)
	})

	t.Run("query failure clears results", func(t *testing.T) {
		state := baseState()
		state.Token = 3
		state.Results = delhiLots()

		next := usecase.Reduce(state, domain.QueryFailed{
			Query: "nowhere", Reason: "not found", Token: 3,
		})

		assert.Equal(t, domain.SearchFailed, next.Status)
		assert.Contains(t, next.StatusMessage, "nowhere")
		assert.Empty(t, next.Results)
	})

	t.Run("no results within radius ends Empty with a message", func(t *testing.T) {
		state := baseState()
		state.Candidates = nil

		next := usecase.Reduce(state, domain.GeolocationUpdated{Position: testCenter})

		assert.Equal(t, domain.SearchEmpty, next.Status)
		assert.Contains(t, next.StatusMessage, "no parking found near")
	})

	t.Run("candidates without a center never search", func(t *testing.T) {
		next := usecase.Reduce(domain.SearchState{
			RadiusKm: 5.0,
			Status:   domain.SearchIdle,
		}, domain.CandidatesUpdated{Candidates: delhiLots()})

		assert.Equal(t, domain.SearchIdle, next.Status)
		assert.Empty(t, next.Results)
	})

	t.Run("candidate refresh recomputes against the held center", func(t *testing.T) {
		state := usecase.Reduce(baseState(), domain.GeolocationUpdated{Position: testCenter})
		require.Equal(t, domain.SearchReady, state.Status)

		next := usecase.Reduce(state, domain.CandidatesUpdated{Candidates: nil})

		assert.Equal(t, domain.SearchEmpty, next.Status)
		assert.Empty(t, next.Results)
	})
}

func TestSearchUseCase_NearbySearch(t *testing.T) {
	ctx := context.Background()

	t.Run("explicit coordinates", func(t *testing.T) {
		uc, _ := newSearchUseCase(t, delhiLots(), testSearchConfig())

		lat, lon := testCenter.Lat, testCenter.Lon
		resp, err := uc.NearbySearch(ctx, dto.NearbySearchRequest{Lat: &lat, Lon: &lon})

		require.NoError(t, err)
		assert.Equal(t, string(domain.SearchReady), resp.Status)
		require.Len(t, resp.Results, 2)
		assert.Equal(t, "p1", resp.Results[0].ID)
		assert.Equal(t, "p4", resp.Results[1].ID)
		assert.Equal(t, 2, resp.Total)
	})

	t.Run("coordinates win over query", func(t *testing.T) {
		uc, geocodingRepo := newSearchUseCase(t, delhiLots(), testSearchConfig())

		lat, lon := testCenter.Lat, testCenter.Lon
		_, err := uc.NearbySearch(ctx, dto.NearbySearchRequest{
			Lat: &lat, Lon: &lon, Query: "somewhere else",
		})

		require.NoError(t, err)
		geocodingRepo.AssertNotCalled(t, "Resolve")
	})

	t.Run("query is resolved to a center", func(t *testing.T) {
		uc, geocodingRepo := newSearchUseCase(t, delhiLots(), testSearchConfig())
		geocodingRepo.On("Resolve", mock.Anything, "connaught place").
			Return(&testCenter, nil)

		resp, err := uc.NearbySearch(ctx, dto.NearbySearchRequest{Query: "connaught place"})

		require.NoError(t, err)
		assert.Equal(t, testCenter, resp.Center)
		assert.Len(t, resp.Results, 2)
		geocodingRepo.AssertExpectations(t)
	})

	t.Run("unresolvable query", func(t *testing.T) {
		uc, geocodingRepo := newSearchUseCase(t, delhiLots(), testSearchConfig())
		geocodingRepo.On("Resolve", mock.Anything, "nowhere").
			Return(nil, assert.AnError)

		_, err := uc.NearbySearch(ctx, dto.NearbySearchRequest{Query: "nowhere"})

		require.Error(t, err)
		appErr, ok := err.(*errors.AppError)
		require.True(t, ok)
		assert.Equal(t, errors.ErrResolutionFailed.Code, appErr.Code)
	})

	t.Run("invalid coordinates", func(t *testing.T) {
		uc, _ := newSearchUseCase(t, delhiLots(), testSearchConfig())

		lat, lon := 95.0, 77.0
		_, err := uc.NearbySearch(ctx, dto.NearbySearchRequest{Lat: &lat, Lon: &lon})

		assert.Equal(t, errors.ErrInvalidCoordinates, err)
	})

	t.Run("neither coordinates nor query", func(t *testing.T) {
		uc, _ := newSearchUseCase(t, delhiLots(), testSearchConfig())

		_, err := uc.NearbySearch(ctx, dto.NearbySearchRequest{})

		require.Error(t, err)
		appErr, ok := err.(*errors.AppError)
		require.True(t, ok)
		assert.Equal(t, errors.ErrInvalidRequest.Code, appErr.Code)
	})

	t.Run("nothing in range reports empty", func(t *testing.T) {
		uc, _ := newSearchUseCase(t, delhiLots(), testSearchConfig())

		// Mumbai, far from every Delhi lot.
		lat, lon := 19.0760, 72.8777
		resp, err := uc.NearbySearch(ctx, dto.NearbySearchRequest{Lat: &lat, Lon: &lon})

		require.NoError(t, err)
		assert.Equal(t, string(domain.SearchEmpty), resp.Status)
		assert.Empty(t, resp.Results)
	})
}

func TestSearchUseCase_Sessions(t *testing.T) {
	ctx := context.Background()

	t.Run("create starts idle with preloaded candidates", func(t *testing.T) {
		uc, _ := newSearchUseCase(t, delhiLots(), testSearchConfig())

		resp := uc.CreateSession(ctx)

		assert.NotEmpty(t, resp.SessionID)
		assert.Equal(t, domain.SearchIdle, resp.Status)
		assert.Empty(t, resp.Results)
	})

	t.Run("geolocation event yields ranked results", func(t *testing.T) {
		uc, _ := newSearchUseCase(t, delhiLots(), testSearchConfig())
		session := uc.CreateSession(ctx)

		lat, lon := testCenter.Lat, testCenter.Lon
		resp, err := uc.ApplyEvent(ctx, session.SessionID, dto.SessionEventRequest{
			Type: dto.EventGeolocation, Lat: &lat, Lon: &lon,
		})

		require.NoError(t, err)
		assert.Equal(t, domain.SearchReady, resp.Status)
		require.Len(t, resp.Results, 2)
		assert.Equal(t, "p1", resp.Results[0].ID)
	})

	t.Run("query event answers resolving then settles", func(t *testing.T) {
		uc, geocodingRepo := newSearchUseCase(t, delhiLots(), testSearchConfig())
		geocodingRepo.On("Resolve", mock.Anything, "khan market").
			Return(&domain.Coordinate{Lat: 28.6002, Lon: 77.2274}, nil)

		session := uc.CreateSession(ctx)

		resp, err := uc.ApplyEvent(ctx, session.SessionID, dto.SessionEventRequest{
			Type: dto.EventQuery, Query: "khan market",
		})
		require.NoError(t, err)
		assert.Equal(t, domain.SearchResolving, resp.Status)

		require.Eventually(t, func() bool {
			current, err := uc.GetSession(session.SessionID)
			return err == nil && current.Status == domain.SearchReady
		}, 2*time.Second, 10*time.Millisecond)

		current, err := uc.GetSession(session.SessionID)
		require.NoError(t, err)
		assert.Equal(t, "khan market", current.Query)
		assert.NotEmpty(t, current.Results)
	})

	t.Run("failed query settles to failed", func(t *testing.T) {
		uc, geocodingRepo := newSearchUseCase(t, delhiLots(), testSearchConfig())
		geocodingRepo.On("Resolve", mock.Anything, "nowhere").
			Return(nil, assert.AnError)

		session := uc.CreateSession(ctx)

		_, err := uc.ApplyEvent(ctx, session.SessionID, dto.SessionEventRequest{
			Type: dto.EventQuery, Query: "nowhere",
		})
		require.NoError(t, err)

		require.Eventually(t, func() bool {
			current, err := uc.GetSession(session.SessionID)
			return err == nil && current.Status == domain.SearchFailed
		}, 2*time.Second, 10*time.Millisecond)
	})

	t.Run("geolocation wait expires into the default center", func(t *testing.T) {
		cfg := testSearchConfig()
		cfg.GeolocationWait = 30 * time.Millisecond
		uc, _ := newSearchUseCase(t, delhiLots(), cfg)

		session := uc.CreateSession(ctx)

		resp, err := uc.ApplyEvent(ctx, session.SessionID, dto.SessionEventRequest{
			Type: dto.EventNearby,
		})
		require.NoError(t, err)
		assert.Equal(t, domain.SearchResolving, resp.Status)

		require.Eventually(t, func() bool {
			current, err := uc.GetSession(session.SessionID)
			return err == nil && current.Status == domain.SearchReady
		}, 2*time.Second, 10*time.Millisecond)

		current, err := uc.GetSession(session.SessionID)
		require.NoError(t, err)
		require.NotNil(t, current.Center)
		assert.Equal(t, testCenter, *current.Center)
		assert.Contains(t, current.StatusMessage, "location unavailable")
	})

	t.Run("fix before the wait expires keeps the device position", func(t *testing.T) {
		cfg := testSearchConfig()
		cfg.GeolocationWait = 50 * time.Millisecond
		uc, _ := newSearchUseCase(t, delhiLots(), cfg)

		session := uc.CreateSession(ctx)

		_, err := uc.ApplyEvent(ctx, session.SessionID, dto.SessionEventRequest{
			Type: dto.EventNearby,
		})
		require.NoError(t, err)

		lat, lon := 28.6002, 77.2274
		_, err = uc.ApplyEvent(ctx, session.SessionID, dto.SessionEventRequest{
			Type: dto.EventGeolocation, Lat: &lat, Lon: &lon,
		})
		require.NoError(t, err)

		time.Sleep(150 * time.Millisecond)

		current, err := uc.GetSession(session.SessionID)
		require.NoError(t, err)
		assert.Equal(t, domain.SearchReady, current.Status)
		require.NotNil(t, current.Center)
		assert.Equal(t, domain.Coordinate{Lat: lat, Lon: lon}, *current.Center)
		assert.Empty(t, current.StatusMessage)
	})

	t.Run("close releases the session", func(t *testing.T) {
		uc, _ := newSearchUseCase(t, delhiLots(), testSearchConfig())
		session := uc.CreateSession(ctx)

		require.NoError(t, uc.CloseSession(session.SessionID))

		_, err := uc.GetSession(session.SessionID)
		assert.Equal(t, errors.ErrSessionNotFound, err)

		assert.Equal(t, errors.ErrSessionNotFound, uc.CloseSession(session.SessionID))
	})

	t.Run("unknown session", func(t *testing.T) {
		uc, _ := newSearchUseCase(t, delhiLots(), testSearchConfig())

		_, err := uc.GetSession("missing")
		assert.Equal(t, errors.ErrSessionNotFound, err)
	})
}
