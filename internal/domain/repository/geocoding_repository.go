package repository

import (
	"context"

	"github.com/parking-microservice/internal/domain"
)

// GeocodingRepository is the port to the external geocoding / place-search
// capability. Implementations must treat any non-OK upstream status as an
// error.
type GeocodingRepository interface {
	// Resolve geocodes a free-text place query into a coordinate.
	Resolve(ctx context.Context, query string) (*domain.Coordinate, error)

	// NearbySearch returns raw place records matching keyword around a
	// center. Records may lack geometry; callers drop those.
	NearbySearch(ctx context.Context, center domain.Coordinate, radiusKm float64, keyword string) ([]domain.RawPlaceRecord, error)
}
