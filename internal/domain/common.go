package domain

// Coordinate is a WGS84 point. Value type, compared by value only.
type Coordinate struct {
	Lat float64 `json:"lat" db:"lat"`
	Lon float64 `json:"lon" db:"lon"`
}
