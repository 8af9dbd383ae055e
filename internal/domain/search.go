package domain

// SearchStatus is the state of a nearby-search session.
type SearchStatus string

const (
	SearchIdle      SearchStatus = "idle"
	SearchResolving SearchStatus = "resolving"
	SearchSearching SearchStatus = "searching"
	SearchReady     SearchStatus = "ready"
	SearchEmpty     SearchStatus = "empty"
	SearchFailed    SearchStatus = "failed"
)

// SearchState is the working state of the nearby-search engine. Results are
// always a pure function of (Center, Candidates, RadiusKm); the engine holds
// no other mutable counters. Token is a monotonic request id used to discard
// stale in-flight resolutions.
type SearchState struct {
	Center        *Coordinate  `json:"center,omitempty"`
	RadiusKm      float64      `json:"radius_km"`
	Candidates    []ParkingLot `json:"-"`
	Results       []ParkingLot `json:"results"`
	Status        SearchStatus `json:"status"`
	StatusMessage string       `json:"status_message,omitempty"`
	Query         string       `json:"query,omitempty"`
	Token         uint64       `json:"-"`
}

// SearchEvent is one input to the search reducer. Exactly one implementation
// per trigger the engine reacts to.
type SearchEvent interface {
	searchEvent()
}

// GeolocationUpdated carries a fresh device position fix.
type GeolocationUpdated struct {
	Position Coordinate
}

// GeolocationFailed signals that the device position could not be acquired
// (denied, timeout, unsupported). The engine falls back to a default center.
type GeolocationFailed struct {
	Reason   string
	Fallback Coordinate
}

// QueryResolved carries the geocoded coordinate for a free-text query.
// Token must match the session's current token or the event is discarded.
type QueryResolved struct {
	Query    string
	Location Coordinate
	Token    uint64
}

// QueryFailed signals that a free-text query could not be geocoded.
type QueryFailed struct {
	Query  string
	Reason string
	Token  uint64
}

// CandidatesUpdated replaces the candidate lot set (directory refresh).
type CandidatesUpdated struct {
	Candidates []ParkingLot
}

// NearbyTriggered is an explicit "find parking near me" action; it marks the
// session as resolving until a position fix or fallback arrives.
type NearbyTriggered struct{}

func (GeolocationUpdated) searchEvent() {}
func (GeolocationFailed) searchEvent()  {}
func (QueryResolved) searchEvent()      {}
func (QueryFailed) searchEvent()        {}
func (CandidatesUpdated) searchEvent()  {}
func (NearbyTriggered) searchEvent()    {}
