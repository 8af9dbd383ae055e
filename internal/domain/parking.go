package domain

import "time"

// Occupancy status labels shown to drivers. A lot with no free spots is
// "Full"; at most 20% free (but nonzero) is "Few Spots"; otherwise
// "Available". Lots without real occupancy data report "Unknown".
const (
	OccupancyFull      = "Full"
	OccupancyFewSpots  = "Few Spots"
	OccupancyAvailable = "Available"
	OccupancyUnknown   = "Unknown"
)

// ParkingLot represents one parking facility.
type ParkingLot struct {
	ID         string `json:"id" db:"id"`
	Name       string `json:"name" db:"name"`
	Address    string `json:"address" db:"address"`
	Coordinate
	PlaceID        string   `json:"place_id,omitempty" db:"place_id"`
	Rating         float64  `json:"rating" db:"rating"`
	TotalSpots     int      `json:"total_spots" db:"total_spots"`
	AvailableSpots int      `json:"available_spots" db:"available_spots"`
	HourlyRate     float64  `json:"hourly_rate" db:"hourly_rate"`
	PhotoURLs      []string `json:"photo_urls,omitempty" db:"-"`
	ManagerID      string   `json:"manager_id,omitempty" db:"manager_id"`

	// OccupancyKnown is false for lots synthesized from place search
	// without placeholder occupancy generation.
	OccupancyKnown bool `json:"occupancy_known" db:"occupancy_known"`

	// DistanceKm is a per-search annotation, never persisted.
	DistanceKm *float64 `json:"distance_km,omitempty" db:"-"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// OccupancyStatus maps available/total spots to a driver-facing label.
func (l *ParkingLot) OccupancyStatus() string {
	if !l.OccupancyKnown || l.TotalSpots <= 0 {
		return OccupancyUnknown
	}
	if l.AvailableSpots == 0 {
		return OccupancyFull
	}
	if float64(l.AvailableSpots)/float64(l.TotalSpots) <= 0.2 {
		return OccupancyFewSpots
	}
	return OccupancyAvailable
}

// ClampAvailability applies an availability delta while holding the
// 0 <= available <= total invariant.
func (l *ParkingLot) ClampAvailability(delta int) {
	next := l.AvailableSpots + delta
	if next < 0 {
		next = 0
	}
	if next > l.TotalSpots {
		next = l.TotalSpots
	}
	l.AvailableSpots = next
}

// RawPlaceRecord is one result of an external place search, before
// normalization into a ParkingLot. Geometry may be missing, in which case the
// record is dropped.
type RawPlaceRecord struct {
	PlaceID  string      `json:"place_id"`
	Name     string      `json:"name"`
	Vicinity string      `json:"vicinity"`
	Location *Coordinate `json:"location,omitempty"`
	Rating   *float64    `json:"rating,omitempty"`
	PhotoURL string      `json:"photo_url,omitempty"`
}
