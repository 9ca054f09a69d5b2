package model

// CreateSessionRequest starts a filter session over a fetched result set.
// Either an inline listing array or the id of a stored snapshot is given.
type CreateSessionRequest struct {
	Listings   Listings `json:"listings,omitempty"`
	SnapshotID string   `json:"snapshot_id,omitempty"`
}

// SessionResponse is the full controlled-component state for one session.
type SessionResponse struct {
	SessionID string       `json:"session_id"`
	Groups    []FacetGroup `json:"groups"`
	Selection SelectionDTO `json:"selection"`
	Slider    SliderDTO    `json:"slider"`
	Results   Listings     `json:"results"`
	Total     int          `json:"total"`
	Took      int64        `json:"took_ms"`
}

// SelectionDTO is the wire form of the current filter selection.
type SelectionDTO struct {
	PriceMin *float64            `json:"price_min"`
	PriceMax *float64            `json:"price_max"`
	Selected map[string][]string `json:"selected"`
}

// SliderDTO is the wire form of the price slider state.
type SliderDTO struct {
	GlobalMin float64 `json:"global_min"`
	GlobalMax float64 `json:"global_max"`
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
	Active    string  `json:"active,omitempty"`
}

// ToggleRequest flips one facet item on or off.
type ToggleRequest struct {
	Group string `json:"group" binding:"required"`
	ID    string `json:"id" binding:"required"`
}

// ClearRequest clears one group, or the whole selection when Group is empty.
type ClearRequest struct {
	Group string `json:"group"`
}

// SliderEventRequest drives the price slider state machine.
type SliderEventRequest struct {
	Event  string  `json:"event" binding:"required"` // start, move, end, cancel
	Handle string  `json:"handle,omitempty"`         // min or max, for start
	DX     float64 `json:"dx,omitempty"`             // pixel delta since gesture start
	Width  float64 `json:"width,omitempty"`          // measured track width in pixels
}

// CreateSnapshotRequest persists a fetched listing array for later sessions.
type CreateSnapshotRequest struct {
	Query    string   `json:"query"`
	Listings Listings `json:"listings" binding:"required"`
}

// CreateSnapshotResponse returns the stored snapshot id.
type CreateSnapshotResponse struct {
	SnapshotID string `json:"snapshot_id"`
	Count      int    `json:"count"`
}
