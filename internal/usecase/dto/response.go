package dto

import (
	"github.com/parking-microservice/internal/domain"
)

// LotResult is a ParkingLot as presented to drivers: the raw record plus the
// derived occupancy label and, for search results, distance to the center.
type LotResult struct {
	domain.ParkingLot
	Occupancy string `json:"occupancy"`
}

// ConvertLot attaches the derived occupancy label.
func ConvertLot(lot domain.ParkingLot) LotResult {
	return LotResult{
		ParkingLot: lot,
		Occupancy:  lot.OccupancyStatus(),
	}
}

// ConvertLots maps a slice of lots, preserving order.
func ConvertLots(lots []domain.ParkingLot) []LotResult {
	results := make([]LotResult, 0, len(lots))
	for _, lot := range lots {
		results = append(results, ConvertLot(lot))
	}
	return results
}

type ResolveResponse struct {
	Query    string            `json:"query"`
	Location domain.Coordinate `json:"location"`
}

type NearbySearchResponse struct {
	Center   domain.Coordinate `json:"center"`
	RadiusKm float64           `json:"radius_km"`
	Results  []LotResult       `json:"results"`
	Total    int               `json:"total"`
	Status   string            `json:"status"`
}

// SessionResponse is a snapshot of one search session's state.
type SessionResponse struct {
	SessionID     string             `json:"session_id"`
	Status        domain.SearchStatus `json:"status"`
	StatusMessage string             `json:"status_message,omitempty"`
	Center        *domain.Coordinate `json:"center,omitempty"`
	RadiusKm      float64            `json:"radius_km"`
	Query         string             `json:"query,omitempty"`
	Results       []LotResult        `json:"results"`
	Total         int                `json:"total"`
}

type QuoteResponse struct {
	LotID         string  `json:"lot_id"`
	DurationHours int     `json:"duration_hours"`
	HourlyRate    float64 `json:"hourly_rate"`
	Peak          bool    `json:"peak"`
	Price         float64 `json:"price"`
}

type StatsResponse struct {
	domain.DashboardStats
	Lots int `json:"lots"`
}
