package models

// Stop represents a physical location serviced by one or more routes.
// OSMID carries the upstream identifier when the stop came from a topology
// import; it is the idempotence key for re-imports.
type Stop struct {
	ID      int64   `json:"id"`
	OSMID   *int64  `json:"osmId,omitempty"`
	Name    string  `json:"name"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Address *string `json:"address,omitempty"`
}
