package domain

import "time"

// StreamMessage is one raw message read from a Redis Stream.
type StreamMessage struct {
	ID   string
	Data string
}

// AvailabilityEvent reports a change in free spots for one lot. Delta may be
// negative; the consumer clamps the result into [0, total].
type AvailabilityEvent struct {
	LotID      string    `json:"lot_id"`
	Delta      int       `json:"delta"`
	ReportedAt time.Time `json:"reported_at"`
}
