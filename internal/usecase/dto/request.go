package dto

import "time"

// ResolveRequest geocodes a free-text place query.
type ResolveRequest struct {
	Query string `json:"query" validate:"required,min=2"`
}

// NearbySearchRequest anchors a one-shot nearby search. Exactly one of
// (Lat, Lon) or Query must be provided; when both are present the explicit
// coordinates win.
type NearbySearchRequest struct {
	Lat   *float64 `json:"lat" validate:"omitempty,min=-90,max=90"`
	Lon   *float64 `json:"lon" validate:"omitempty,min=-180,max=180"`
	Query string   `json:"query" validate:"omitempty,min=2"`
}

// Session event types accepted by the search-session endpoint.
const (
	EventGeolocation       = "geolocation"
	EventGeolocationFailed = "geolocation_failed"
	EventQuery             = "query"
	EventNearby            = "nearby"
	EventCandidates        = "candidates"
)

// SessionEventRequest feeds one event into a search session.
type SessionEventRequest struct {
	Type   string   `json:"type" validate:"required,oneof=geolocation geolocation_failed query nearby candidates"`
	Lat    *float64 `json:"lat" validate:"omitempty,min=-90,max=90"`
	Lon    *float64 `json:"lon" validate:"omitempty,min=-180,max=180"`
	Query  string   `json:"query" validate:"omitempty,min=2"`
	Reason string   `json:"reason"`
}

// CreateLotRequest registers a new lot; the address is geocoded server-side.
type CreateLotRequest struct {
	Name       string  `json:"name" validate:"required,min=3"`
	Address    string  `json:"address" validate:"required,min=10"`
	TotalSpots int     `json:"total_spots" validate:"required,gt=0"`
	HourlyRate float64 `json:"hourly_rate" validate:"required,gt=0"`
}

// QuoteRequest prices a prospective booking without persisting anything.
type QuoteRequest struct {
	LotID         string    `json:"lot_id" validate:"required,uuid4"`
	StartTime     time.Time `json:"start_time" validate:"required"`
	DurationHours int       `json:"duration_hours" validate:"required,min=1,max=24"`
}

// CreateBookingRequest confirms a booking.
type CreateBookingRequest struct {
	LotID         string    `json:"lot_id" validate:"required,uuid4"`
	UserID        string    `json:"user_id" validate:"required"`
	StartTime     time.Time `json:"start_time" validate:"required"`
	DurationHours int       `json:"duration_hours" validate:"required,min=1,max=24"`
}
