package domain

// DashboardStats is the manager dashboard summary over one manager's lots
// and their bookings.
type DashboardStats struct {
	TotalRevenue     float64 `json:"total_revenue"`
	TotalBookings    int     `json:"total_bookings"`
	ActiveBookings   int     `json:"active_bookings"`
	TotalSpots       int     `json:"total_spots"`
	AvailableSpots   int     `json:"available_spots"`
	LiveOccupancyPct float64 `json:"live_occupancy_pct"`
	PeakHours        string  `json:"peak_hours"`
}
