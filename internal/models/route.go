package models

// RouteStatus describes whether a route currently exposes a schedule.
// Non-ACTIVE routes return no runs from any query.
type RouteStatus string

const (
	RouteStatusActive      RouteStatus = "ACTIVE"
	RouteStatusSuspended   RouteStatus = "SUSPENDED"
	RouteStatusMaintenance RouteStatus = "MAINTENANCE"
)

// Valid reports whether s is a known route status.
func (s RouteStatus) Valid() bool {
	switch s {
	case RouteStatusActive, RouteStatusSuspended, RouteStatusMaintenance:
		return true
	}
	return false
}

// Route is a bus line: an ordered sequence of stops with cumulative
// travel-time offsets. The ordering lives in route_stops rows owned
// exclusively by the route.
type Route struct {
	ID          int64       `json:"id"`
	OSMID       *int64      `json:"osmId,omitempty"`
	Name        string      `json:"name"`
	Num         string      `json:"num"`
	Description string      `json:"description"`
	Status      RouteStatus `json:"status"`
}

// RouteStop is the ordering relation between a route and a stop.
// StopOrder is 1-based, strictly increasing and contiguous within a route.
type RouteStop struct {
	RouteID   int64
	StopID    int64
	StopOrder int
}

// RouteStopOffset is the cumulative travel time in minutes from the route's
// first stop to the given stop. Read in stop order, offsets are non-decreasing.
type RouteStopOffset struct {
	RouteID           int64
	StopID            int64
	CumulativeMinutes int
}

// RouteDetails is the full route projection returned by the API: the route
// plus its ordered stop ids and their cumulative minute offsets, index-aligned.
type RouteDetails struct {
	ID                                 int64       `json:"id"`
	Name                               string      `json:"name"`
	Num                                string      `json:"num"`
	Description                        string      `json:"description"`
	Status                             RouteStatus `json:"status"`
	RouteStops                         []int64     `json:"routeStops"`
	CumulativeMinutesFromStartForStops []int       `json:"cumulativeMinutesFromStartForStops"`
}
