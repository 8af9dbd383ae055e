package geocoding

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/parking-microservice/internal/config"
	"github.com/parking-microservice/internal/domain"
	"github.com/parking-microservice/internal/domain/repository"
)

// geocodeResponse is the Mapbox Geocoding v5 feature collection shape.
type geocodeResponse struct {
	Features []feature `json:"features"`
}

type feature struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	PlaceName string    `json:"place_name"`
	Center    []float64 `json:"center"` // [lon, lat]
}

type client struct {
	httpClient  *http.Client
	baseURL     string
	accessToken string
	logger      *zap.Logger
}

// NewGeocodingClient creates a Mapbox Geocoding API client.
func NewGeocodingClient(cfg *config.GeocodingConfig, logger *zap.Logger) repository.GeocodingRepository {
	return &client{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeout) * time.Second,
		},
		baseURL:     cfg.BaseURL,
		accessToken: cfg.AccessToken,
		logger:      logger,
	}
}

// Resolve forward-geocodes a free-text query to one coordinate.
func (c *client) Resolve(ctx context.Context, query string) (*domain.Coordinate, error) {
	if query == "" {
		return nil, fmt.Errorf("query cannot be empty")
	}

	reqURL := fmt.Sprintf("%s/geocoding/v5/mapbox.places/%s.json?access_token=%s&limit=1",
		c.baseURL,
		url.PathEscape(query),
		c.accessToken,
	)

	resp, err := c.get(ctx, reqURL)
	if err != nil {
		return nil, err
	}

	if len(resp.Features) == 0 {
		c.logger.Debug("Geocode returned no features", zap.String("query", query))
		return nil, fmt.Errorf("no results for query: %s", query)
	}

	coord, err := centerToCoordinate(resp.Features[0].Center)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("Geocode resolved",
		zap.String("query", query),
		zap.Float64("lat", coord.Lat),
		zap.Float64("lon", coord.Lon))

	return coord, nil
}

// NearbySearch finds places matching the keyword around a center. Features
// without a usable center are returned without geometry so the caller can
// drop them.
func (c *client) NearbySearch(ctx context.Context, center domain.Coordinate, radiusKm float64, keyword string) ([]domain.RawPlaceRecord, error) {
	if keyword == "" {
		return nil, fmt.Errorf("keyword cannot be empty")
	}

	reqURL := fmt.Sprintf("%s/geocoding/v5/mapbox.places/%s.json?access_token=%s&proximity=%f,%f&types=poi&limit=10",
		c.baseURL,
		url.PathEscape(keyword),
		c.accessToken,
		center.Lon,
		center.Lat,
	)

	resp, err := c.get(ctx, reqURL)
	if err != nil {
		return nil, err
	}

	records := make([]domain.RawPlaceRecord, 0, len(resp.Features))
	for _, f := range resp.Features {
		record := domain.RawPlaceRecord{
			PlaceID:  f.ID,
			Name:     f.Text,
			Vicinity: f.PlaceName,
		}
		if coord, err := centerToCoordinate(f.Center); err == nil {
			record.Location = coord
		}
		records = append(records, record)
	}

	c.logger.Debug("Place search completed",
		zap.String("keyword", keyword),
		zap.Float64("lat", center.Lat),
		zap.Float64("lon", center.Lon),
		zap.Int("results", len(records)))

	return records, nil
}

func (c *client) get(ctx context.Context, reqURL string) (*geocodeResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		c.logger.Error("Failed to create request", zap.Error(err))
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Failed to execute request", zap.Error(err))
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("Geocoding API returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return nil, fmt.Errorf("geocoding API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		c.logger.Error("Failed to decode response", zap.Error(err))
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &decoded, nil
}

func centerToCoordinate(center []float64) (*domain.Coordinate, error) {
	if len(center) < 2 {
		return nil, fmt.Errorf("feature center is malformed")
	}
	// Mapbox orders centers lon first.
	return &domain.Coordinate{Lat: center[1], Lon: center[0]}, nil
}
