package models

import "fmt"

// ScheduleType distinguishes recurring weekly runs from runs tied to a single
// calendar date.
type ScheduleType string

const (
	ScheduleTypeRegular ScheduleType = "REGULAR"
	ScheduleTypeSpecial ScheduleType = "SPECIAL"
)

// Valid reports whether t is a known schedule type.
func (t ScheduleType) Valid() bool {
	return t == ScheduleTypeRegular || t == ScheduleTypeSpecial
}

// Run is one scheduled departure of a route. REGULAR runs recur on DayOfWeek
// (ISO 1=Monday..7=Sunday); SPECIAL runs apply only on SpecificDate. Exactly
// one of the two fields is set, matching the schedule type.
type Run struct {
	ID                  int64
	RouteID             int64
	DestinationStopName string
	ScheduleType        ScheduleType
	DayOfWeek           *int
	SpecificDate        *Date
	RunNum              int
	StartTime           TimeOfDay
}

// ValidateSchedule checks the schedule-type pairing invariant. It is enforced
// on every run create or update.
func (r *Run) ValidateSchedule() error {
	switch r.ScheduleType {
	case ScheduleTypeRegular:
		if r.DayOfWeek == nil {
			return fmt.Errorf("dayOfWeek must be set for REGULAR schedule type")
		}
		if r.SpecificDate != nil {
			return fmt.Errorf("specificDate must not be set for REGULAR schedule type")
		}
	case ScheduleTypeSpecial:
		if r.SpecificDate == nil {
			return fmt.Errorf("specificDate must be set for SPECIAL schedule type")
		}
		if r.DayOfWeek != nil {
			return fmt.Errorf("dayOfWeek must not be set for SPECIAL schedule type")
		}
	default:
		return fmt.Errorf("unknown schedule type %q", r.ScheduleType)
	}
	if r.DayOfWeek != nil && (*r.DayOfWeek < 1 || *r.DayOfWeek > 7) {
		return fmt.Errorf("dayOfWeek must be between 1 and 7")
	}
	return nil
}

// StopTimeDetail is one entry of a run's timetable: the stop, its cumulative
// minute offset and the concrete arrival time derived from the run's start.
type StopTimeDetail struct {
	StopID                 int64     `json:"stopId"`
	StopName               string    `json:"stopName"`
	ArrivalMinuteFromStart int       `json:"arrivalMinuteFromStart"`
	ActualArrivalTime      TimeOfDay `json:"actualArrivalTime"`
}

// RunDetails is the run projection returned by the API, denormalized with
// route fields and the computed per-stop timetable.
type RunDetails struct {
	ID                  int64            `json:"id"`
	RouteID             int64            `json:"routeId"`
	RouteNum            string           `json:"routeNum"`
	RouteName           string           `json:"routeName"`
	DestinationStopName string           `json:"destinationStopName"`
	ScheduleType        ScheduleType     `json:"scheduleType"`
	DayOfWeek           *int             `json:"dayOfWeek"`
	SpecificDate        *Date            `json:"specificDate"`
	RunNum              int              `json:"runNum"`
	StartTime           TimeOfDay        `json:"startTime"`
	StopTimes           []StopTimeDetail `json:"stopTimes"`
}
