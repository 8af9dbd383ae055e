package domain

import "time"

const (
	BookingStatusActive    = "active"
	BookingStatusCompleted = "completed"
	BookingStatusCancelled = "cancelled"
)

// Booking is a confirmed reservation of one spot for a time window.
type Booking struct {
	ID            string    `json:"id" db:"id"`
	LotID         string    `json:"lot_id" db:"lot_id"`
	UserID        string    `json:"user_id" db:"user_id"`
	StartTime     time.Time `json:"start_time" db:"start_time"`
	DurationHours int       `json:"duration_hours" db:"duration_hours"`
	EndTime       time.Time `json:"end_time" db:"end_time"`
	PricePaid     float64   `json:"price_paid" db:"price_paid"`
	Status        string    `json:"status" db:"status"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}
