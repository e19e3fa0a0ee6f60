package restapi

import "citybus.urbantransit.org/internal/models"

type createRouteRequest struct {
	Name                               string  `json:"name" validate:"required"`
	Num                                string  `json:"num" validate:"required"`
	Description                        string  `json:"description"`
	Status                             string  `json:"status" validate:"omitempty,oneof=ACTIVE SUSPENDED MAINTENANCE"`
	RouteStops                         []int64 `json:"routeStops" validate:"required,min=1,dive,gt=0"`
	CumulativeMinutesFromStartForStops []int   `json:"cumulativeMinutesFromStartForStops" validate:"required"`
}

type updateRouteInfoRequest struct {
	ID          int64  `json:"id" validate:"required,gt=0"`
	Name        string `json:"name" validate:"required"`
	Num         string `json:"num" validate:"required"`
	Description string `json:"description"`
}

type updateRouteStopsRequest struct {
	ID                                 int64   `json:"id" validate:"required,gt=0"`
	RouteStops                         []int64 `json:"routeStops" validate:"required,min=1,dive,gt=0"`
	CumulativeMinutesFromStartForStops []int   `json:"cumulativeMinutesFromStartForStops" validate:"required"`
}

type updateRouteOffsetsRequest struct {
	ID                                 int64 `json:"id" validate:"required,gt=0"`
	CumulativeMinutesFromStartForStops []int `json:"cumulativeMinutesFromStartForStops" validate:"required,min=1"`
}

type updateRouteStatusRequest struct {
	ID             int64  `json:"id" validate:"required,gt=0"`
	NewRouteStatus string `json:"newRouteStatus" validate:"required,oneof=ACTIVE SUSPENDED MAINTENANCE"`
}

type stopRequest struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name" validate:"required"`
	Lat     float64 `json:"lat" validate:"min=-90,max=90"`
	Lon     float64 `json:"lon" validate:"min=-180,max=180"`
	Address *string `json:"address"`
}

type createRunRequest struct {
	RouteID      int64             `json:"routeId" validate:"required,gt=0"`
	ScheduleType string            `json:"scheduleType" validate:"required,oneof=REGULAR SPECIAL"`
	DayOfWeek    *int              `json:"dayOfWeek" validate:"omitempty,min=1,max=7"`
	SpecificDate *models.Date      `json:"specificDate"`
	StartTime    *models.TimeOfDay `json:"startTime" validate:"required"`
}
