package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/parking-microservice/internal/config"
	"github.com/parking-microservice/internal/domain"
	"github.com/parking-microservice/internal/domain/repository"
	"github.com/parking-microservice/internal/observability"
	"github.com/parking-microservice/internal/pkg/errors"
	"github.com/parking-microservice/internal/pkg/utils"
	"github.com/parking-microservice/internal/usecase/dto"
)

// RankByDistance is the nearby-search core: computes haversine distance to
// center for every candidate, keeps those within radiusKm, sorts ascending
// by distance and annotates each survivor. Ties keep input order. Pure and
// deterministic; the input slice is not mutated.
func RankByDistance(center domain.Coordinate, candidates []domain.ParkingLot, radiusKm float64) []domain.ParkingLot {
	results := make([]domain.ParkingLot, 0, len(candidates))
	for _, lot := range candidates {
		d := utils.HaversineDistance(center.Lat, center.Lon, lot.Lat, lot.Lon)
		if d > radiusKm {
			continue
		}
		dist := d
		lot.DistanceKm = &dist
		results = append(results, lot)
	}
	sort.SliceStable(results, func(i, j int) bool {
		return *results[i].DistanceKm < *results[j].DistanceKm
	})
	return results
}

// Reduce is the search state machine: one pure transition per event.
// Results are recomputed from (center, candidates, radius) on every relevant
// change, so a failure can never leave stale results behind.
func Reduce(state domain.SearchState, ev domain.SearchEvent) domain.SearchState {
	switch e := ev.(type) {
	case domain.NearbyTriggered:
		// Supersedes any in-flight resolution.
		state.Token++
		state.Status = domain.SearchResolving
		state.StatusMessage = "locating you"
		state.Query = ""
		state.Results = nil
		return state

	case domain.GeolocationUpdated:
		state.Token++
		center := e.Position
		state.Center = &center
		state.StatusMessage = ""
		return recompute(state)

	case domain.GeolocationFailed:
		// Only meaningful while a fix is awaited; a late timeout after a
		// successful fix or resolution is ignored.
		if state.Status != domain.SearchResolving {
			return state
		}
		state.Token++
		center := e.Fallback
		state.Center = &center
		state.StatusMessage = fmt.Sprintf("location unavailable (%s), showing results near the default area", e.Reason)
		return recompute(state)

	case domain.QueryResolved:
		if e.Token != state.Token {
			return state // stale resolution, a newer trigger won
		}
		center := e.Location
		state.Center = &center
		state.Query = e.Query
		state.StatusMessage = ""
		return recompute(state)

	case domain.QueryFailed:
		if e.Token != state.Token {
			return state
		}
		state.Status = domain.SearchFailed
		state.StatusMessage = fmt.Sprintf("could not find %q: %s", e.Query, e.Reason)
		state.Results = nil
		return state

	case domain.CandidatesUpdated:
		state.Candidates = e.Candidates
		if state.Center == nil {
			// Never search without a center.
			return state
		}
		return recompute(state)
	}

	return state
}

func recompute(state domain.SearchState) domain.SearchState {
	if state.Center == nil {
		return state
	}
	state.Status = domain.SearchSearching
	state.Results = RankByDistance(*state.Center, state.Candidates, state.RadiusKm)
	if len(state.Results) == 0 {
		state.Status = domain.SearchEmpty
		near := state.Query
		if near == "" {
			near = fmt.Sprintf("%.4f, %.4f", state.Center.Lat, state.Center.Lon)
		}
		state.StatusMessage = fmt.Sprintf("no parking found near %s", near)
	} else {
		state.Status = domain.SearchReady
	}
	return state
}

// SearchSession owns one view's SearchState. Event application is
// serialized; the fallback timer implements the bounded geolocation wait.
type SearchSession struct {
	id            string
	mu            sync.Mutex
	state         domain.SearchState
	fallbackTimer *time.Timer
	wait          time.Duration
	defaultCenter domain.Coordinate
}

// Apply runs one event through the reducer, managing the fallback timer on
// the way in.
func (s *SearchSession) Apply(ev domain.SearchEvent) domain.SearchState {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch ev.(type) {
	case domain.NearbyTriggered:
		s.armFallbackLocked()
	case domain.GeolocationUpdated, domain.QueryResolved:
		s.disarmFallbackLocked()
	}

	s.state = Reduce(s.state, ev)
	return s.state
}

// StartQuery moves the session to Resolving and issues the token the
// eventual QueryResolved/QueryFailed must carry.
func (s *SearchSession) StartQuery(query string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.disarmFallbackLocked()
	s.state.Token++
	s.state.Status = domain.SearchResolving
	s.state.Query = query
	s.state.StatusMessage = ""
	return s.state.Token
}

func (s *SearchSession) Snapshot() domain.SearchState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *SearchSession) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.disarmFallbackLocked()
}

func (s *SearchSession) armFallbackLocked() {
	s.disarmFallbackLocked()
	s.fallbackTimer = time.AfterFunc(s.wait, func() {
		s.Apply(domain.GeolocationFailed{
			Reason:   "timeout",
			Fallback: s.defaultCenter,
		})
	})
}

func (s *SearchSession) disarmFallbackLocked() {
	if s.fallbackTimer != nil {
		s.fallbackTimer.Stop()
		s.fallbackTimer = nil
	}
}

// SearchUseCase runs one-shot nearby searches and manages long-lived search
// sessions.
type SearchUseCase struct {
	directory     *DirectoryUseCase
	geocodingRepo repository.GeocodingRepository
	logger        *zap.Logger
	cfg           config.SearchConfig

	mu       sync.RWMutex
	sessions map[string]*SearchSession
}

func NewSearchUseCase(
	directory *DirectoryUseCase,
	geocodingRepo repository.GeocodingRepository,
	logger *zap.Logger,
	cfg config.SearchConfig,
) *SearchUseCase {
	return &SearchUseCase{
		directory:     directory,
		geocodingRepo: geocodingRepo,
		logger:        logger,
		cfg:           cfg,
		sessions:      make(map[string]*SearchSession),
	}
}

func (uc *SearchUseCase) DefaultCenter() domain.Coordinate {
	return domain.Coordinate{Lat: uc.cfg.DefaultCenterLat, Lon: uc.cfg.DefaultCenterLon}
}

// Resolve geocodes a free-text query.
func (uc *SearchUseCase) Resolve(ctx context.Context, req dto.ResolveRequest) (*dto.ResolveResponse, error) {
	location, err := uc.geocodingRepo.Resolve(ctx, req.Query)
	if err != nil {
		observability.GeocodeFailuresTotal.Inc()
		uc.logger.Warn("Geocode failed", zap.String("query", req.Query), zap.Error(err))
		return nil, errors.ErrResolutionFailed.WithDetails(map[string]interface{}{
			"query": req.Query,
		})
	}
	return &dto.ResolveResponse{Query: req.Query, Location: *location}, nil
}

// NearbySearch is the one-shot pipeline: establish a center (explicit
// coordinates win over a query), pull candidates from the directory, rank.
func (uc *SearchUseCase) NearbySearch(ctx context.Context, req dto.NearbySearchRequest) (*dto.NearbySearchResponse, error) {
	var center domain.Coordinate

	switch {
	case req.Lat != nil && req.Lon != nil:
		if !utils.ValidateCoordinates(*req.Lat, *req.Lon) {
			return nil, errors.ErrInvalidCoordinates
		}
		center = domain.Coordinate{Lat: *req.Lat, Lon: *req.Lon}
	case req.Query != "":
		resolved, err := uc.Resolve(ctx, dto.ResolveRequest{Query: req.Query})
		if err != nil {
			return nil, err
		}
		center = resolved.Location
	default:
		return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"reason": "either lat/lon or query is required",
		})
	}

	candidates := uc.directory.Candidates(ctx, center, uc.cfg.RadiusKm)
	results := RankByDistance(center, candidates, uc.cfg.RadiusKm)

	observability.SearchesTotal.Inc()
	observability.SearchResultsSize.Observe(float64(len(results)))

	status := domain.SearchReady
	if len(results) == 0 {
		status = domain.SearchEmpty
	}

	uc.logger.Debug("Nearby search completed",
		zap.Float64("lat", center.Lat),
		zap.Float64("lon", center.Lon),
		zap.Int("candidates", len(candidates)),
		zap.Int("results", len(results)))

	return &dto.NearbySearchResponse{
		Center:   center,
		RadiusKm: uc.cfg.RadiusKm,
		Results:  dto.ConvertLots(results),
		Total:    len(results),
		Status:   string(status),
	}, nil
}

// CreateSession opens a search session preloaded with the current candidate
// directory.
func (uc *SearchUseCase) CreateSession(ctx context.Context) *dto.SessionResponse {
	session := &SearchSession{
		id: uuid.NewString(),
		state: domain.SearchState{
			RadiusKm: uc.cfg.RadiusKm,
			Status:   domain.SearchIdle,
		},
		wait:          uc.cfg.GeolocationWait,
		defaultCenter: uc.DefaultCenter(),
	}

	candidates := uc.directory.Candidates(ctx, uc.DefaultCenter(), uc.cfg.RadiusKm)
	session.Apply(domain.CandidatesUpdated{Candidates: candidates})

	uc.mu.Lock()
	uc.sessions[session.id] = session
	uc.mu.Unlock()

	observability.ActiveSessions.Inc()
	uc.logger.Info("Search session created", zap.String("session_id", session.id))

	return sessionResponse(session.id, session.Snapshot())
}

// ApplyEvent feeds one client event into a session. Query events resolve
// asynchronously; the session answers immediately in Resolving state and
// the resolution is applied later under its token.
func (uc *SearchUseCase) ApplyEvent(ctx context.Context, sessionID string, req dto.SessionEventRequest) (*dto.SessionResponse, error) {
	session, err := uc.session(sessionID)
	if err != nil {
		return nil, err
	}

	switch req.Type {
	case dto.EventGeolocation:
		if req.Lat == nil || req.Lon == nil || !utils.ValidateCoordinates(*req.Lat, *req.Lon) {
			return nil, errors.ErrInvalidCoordinates
		}
		state := session.Apply(domain.GeolocationUpdated{
			Position: domain.Coordinate{Lat: *req.Lat, Lon: *req.Lon},
		})
		uc.observeSearch(state)
		return sessionResponse(sessionID, state), nil

	case dto.EventGeolocationFailed:
		reason := req.Reason
		if reason == "" {
			reason = "unavailable"
		}
		state := session.Apply(domain.GeolocationFailed{
			Reason:   reason,
			Fallback: uc.DefaultCenter(),
		})
		uc.observeSearch(state)
		return sessionResponse(sessionID, state), nil

	case dto.EventQuery:
		if req.Query == "" {
			return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
				"reason": "query is required",
			})
		}
		token := session.StartQuery(req.Query)
		go uc.resolveForSession(session, req.Query, token)
		return sessionResponse(sessionID, session.Snapshot()), nil

	case dto.EventNearby:
		state := session.Apply(domain.NearbyTriggered{})
		return sessionResponse(sessionID, state), nil

	case dto.EventCandidates:
		snapshot := session.Snapshot()
		center := uc.DefaultCenter()
		if snapshot.Center != nil {
			center = *snapshot.Center
		}
		candidates := uc.directory.Candidates(ctx, center, uc.cfg.RadiusKm)
		state := session.Apply(domain.CandidatesUpdated{Candidates: candidates})
		return sessionResponse(sessionID, state), nil
	}

	return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
		"reason": "unknown event type",
		"type":   req.Type,
	})
}

func (uc *SearchUseCase) GetSession(sessionID string) (*dto.SessionResponse, error) {
	session, err := uc.session(sessionID)
	if err != nil {
		return nil, err
	}
	return sessionResponse(sessionID, session.Snapshot()), nil
}

// CloseSession tears a session down, releasing its fallback timer.
func (uc *SearchUseCase) CloseSession(sessionID string) error {
	uc.mu.Lock()
	session, ok := uc.sessions[sessionID]
	if ok {
		delete(uc.sessions, sessionID)
	}
	uc.mu.Unlock()

	if !ok {
		return errors.ErrSessionNotFound
	}

	session.close()
	observability.ActiveSessions.Dec()
	uc.logger.Info("Search session closed", zap.String("session_id", sessionID))
	return nil
}

func (uc *SearchUseCase) session(sessionID string) (*SearchSession, error) {
	uc.mu.RLock()
	session, ok := uc.sessions[sessionID]
	uc.mu.RUnlock()
	if !ok {
		return nil, errors.ErrSessionNotFound
	}
	return session, nil
}

// resolveForSession runs the geocode off the request path. The captured
// token makes stale resolutions harmless: if the session moved on, the
// reducer drops the event.
func (uc *SearchUseCase) resolveForSession(session *SearchSession, query string, token uint64) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	location, err := uc.geocodingRepo.Resolve(ctx, query)
	if err != nil {
		observability.GeocodeFailuresTotal.Inc()
		session.Apply(domain.QueryFailed{
			Query:  query,
			Reason: "not found",
			Token:  token,
		})
		return
	}

	state := session.Apply(domain.QueryResolved{
		Query:    query,
		Location: *location,
		Token:    token,
	})
	uc.observeSearch(state)
}

func (uc *SearchUseCase) observeSearch(state domain.SearchState) {
	if state.Status == domain.SearchReady || state.Status == domain.SearchEmpty {
		observability.SearchesTotal.Inc()
		observability.SearchResultsSize.Observe(float64(len(state.Results)))
	}
}

func sessionResponse(id string, state domain.SearchState) *dto.SessionResponse {
	return &dto.SessionResponse{
		SessionID:     id,
		Status:        state.Status,
		StatusMessage: state.StatusMessage,
		Center:        state.Center,
		RadiusKm:      state.RadiusKm,
		Query:         state.Query,
		Results:       dto.ConvertLots(state.Results),
		Total:         len(state.Results),
	}
}
