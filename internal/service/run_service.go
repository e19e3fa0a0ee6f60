package service

import (
	"context"
	"log/slog"

	"citybus.urbantransit.org/internal/logging"
	"citybus.urbantransit.org/internal/models"
	"citybus.urbantransit.org/internal/transitdb"
)

// RunService resolves which runs apply on a given date and manages run
// lifecycle. A special-day row for a date suppresses every REGULAR run on that
// date for all routes; the row's own lifecycle is reference-counted against
// the SPECIAL runs that exist for the date.
type RunService struct {
	store  *transitdb.Client
	logger *slog.Logger
}

func NewRunService(store *transitdb.Client, logger *slog.Logger) *RunService {
	return &RunService{store: store, logger: logger}
}

// CreateRunInput carries an ad-hoc run request. DayOfWeek is set for REGULAR
// runs, SpecificDate for SPECIAL ones.
type CreateRunInput struct {
	RouteID      int64
	ScheduleType models.ScheduleType
	DayOfWeek    *int
	SpecificDate *models.Date
	StartTime    models.TimeOfDay
}

func (s *RunService) GetRunByID(ctx context.Context, id int64) (models.RunDetails, error) {
	run, err := s.store.Queries.GetRun(ctx, id)
	if err != nil {
		return models.RunDetails{}, asNotFound(err, "run", id)
	}
	return buildRunDetails(ctx, s.store.Queries, run)
}

func (s *RunService) GetAllRuns(ctx context.Context) ([]models.RunDetails, error) {
	runs, err := s.store.Queries.ListRuns(ctx)
	if err != nil {
		return nil, err
	}
	return s.detailsForRuns(ctx, runs)
}

// GetAllRunsForRoute returns every run of the route regardless of day.
// Non-ACTIVE routes expose no schedule.
func (s *RunService) GetAllRunsForRoute(ctx context.Context, routeID int64) ([]models.RunDetails, error) {
	route, err := s.store.Queries.GetRoute(ctx, routeID)
	if err != nil {
		return nil, asNotFound(err, "route", routeID)
	}
	if route.Status != models.RouteStatusActive {
		return []models.RunDetails{}, nil
	}

	runs, err := s.store.Queries.ListRunsByRoute(ctx, routeID)
	if err != nil {
		return nil, err
	}
	return s.detailsForRuns(ctx, runs)
}

// GetAllRunsForRouteForDay resolves the runs applying to the route on a
// calendar date: only SPECIAL runs when the date is a special day, otherwise
// the REGULAR runs for the date's weekday.
func (s *RunService) GetAllRunsForRouteForDay(ctx context.Context, routeID int64, day models.Date) ([]models.RunDetails, error) {
	route, err := s.store.Queries.GetRoute(ctx, routeID)
	if err != nil {
		return nil, asNotFound(err, "route", routeID)
	}
	if route.Status != models.RouteStatusActive {
		return []models.RunDetails{}, nil
	}

	runs, err := s.runsForRouteOnDay(ctx, routeID, day)
	if err != nil {
		return nil, err
	}
	return s.detailsForRuns(ctx, runs)
}

// GetAllRunsForStop returns the runs of every ACTIVE route serving the stop,
// all schedule types included. Undated stop queries intentionally ignore the
// special-day override; only day-scoped queries branch on it.
func (s *RunService) GetAllRunsForStop(ctx context.Context, stopID int64) ([]models.RunDetails, error) {
	routes, err := s.activeRoutesServingStop(ctx, stopID)
	if err != nil {
		return nil, err
	}

	var all []models.Run
	for _, route := range routes {
		runs, err := s.store.Queries.ListRunsByRoute(ctx, route.ID)
		if err != nil {
			return nil, err
		}
		all = append(all, runs...)
	}
	return s.detailsForRuns(ctx, all)
}

// GetAllRunsForStopForDay resolves the runs applying on a date across every
// ACTIVE route serving the stop.
func (s *RunService) GetAllRunsForStopForDay(ctx context.Context, stopID int64, day models.Date) ([]models.RunDetails, error) {
	routes, err := s.activeRoutesServingStop(ctx, stopID)
	if err != nil {
		return nil, err
	}

	var all []models.Run
	for _, route := range routes {
		runs, err := s.runsForRouteOnDay(ctx, route.ID, day)
		if err != nil {
			return nil, err
		}
		all = append(all, runs...)
	}
	return s.detailsForRuns(ctx, all)
}

// CreateRun creates one ad-hoc run. The run number is one past the highest
// number ever assigned in the same (route, type, day-or-date) scope, so
// numbers are never reused after deletions. Creating the first SPECIAL run
// for a date also creates the special-day override row.
func (s *RunService) CreateRun(ctx context.Context, input CreateRunInput) (models.RunDetails, error) {
	run := models.Run{
		RouteID:      input.RouteID,
		ScheduleType: input.ScheduleType,
		DayOfWeek:    input.DayOfWeek,
		SpecificDate: input.SpecificDate,
		StartTime:    input.StartTime,
	}
	if err := run.ValidateSchedule(); err != nil {
		return models.RunDetails{}, &ValidationError{Msg: err.Error()}
	}

	var details models.RunDetails
	err := s.store.WithTx(ctx, func(q *transitdb.Queries) error {
		route, err := q.GetRoute(ctx, input.RouteID)
		if err != nil {
			return asNotFound(err, "route", input.RouteID)
		}

		routeStops, err := q.ListRouteStopsOrdered(ctx, route.ID)
		if err != nil {
			return err
		}
		if len(routeStops) == 0 {
			return validationErrorf("route %d has no stops", route.ID)
		}
		lastStop, err := q.GetStop(ctx, routeStops[len(routeStops)-1].StopID)
		if err != nil {
			return err
		}
		run.DestinationStopName = lastStop.Name

		if run.ScheduleType == models.ScheduleTypeSpecial {
			max, err := q.MaxSpecialRunNumInScope(ctx, route.ID, *run.SpecificDate)
			if err != nil {
				return err
			}
			run.RunNum = int(max) + 1

			if err := q.InsertSpecialDay(ctx, *run.SpecificDate); err != nil {
				return err
			}
		} else {
			max, err := q.MaxRegularRunNumInScope(ctx, route.ID, *run.DayOfWeek)
			if err != nil {
				return err
			}
			run.RunNum = int(max) + 1
		}

		run.ID, err = q.CreateRun(ctx, run)
		if err != nil {
			return err
		}

		details, err = buildRunDetails(ctx, q, run)
		return err
	})
	if err != nil {
		return models.RunDetails{}, err
	}

	logging.LogOperation(s.logger, "run_created",
		slog.Int64("run_id", details.ID),
		slog.Int64("route_id", details.RouteID),
		slog.String("schedule_type", string(details.ScheduleType)))
	return details, nil
}

// DeleteRunByID deletes a run. Removing the last SPECIAL run of a date also
// removes the date's special-day row.
func (s *RunService) DeleteRunByID(ctx context.Context, id int64) error {
	return s.store.WithTx(ctx, func(q *transitdb.Queries) error {
		run, err := q.GetRun(ctx, id)
		if err != nil {
			return asNotFound(err, "run", id)
		}

		if err := q.DeleteRun(ctx, id); err != nil {
			return err
		}

		if run.ScheduleType == models.ScheduleTypeSpecial {
			remaining, err := q.CountSpecialRunsForDate(ctx, *run.SpecificDate)
			if err != nil {
				return err
			}
			if remaining == 0 {
				return q.DeleteSpecialDay(ctx, *run.SpecificDate)
			}
		}
		return nil
	})
}

// DeleteAllSpecialRunsForDay bulk-deletes every SPECIAL run for the date and
// unconditionally removes the special-day row.
func (s *RunService) DeleteAllSpecialRunsForDay(ctx context.Context, day models.Date) error {
	return s.store.WithTx(ctx, func(q *transitdb.Queries) error {
		if err := q.DeleteSpecialRunsForDate(ctx, day); err != nil {
			return err
		}
		return q.DeleteSpecialDay(ctx, day)
	})
}

func (s *RunService) runsForRouteOnDay(ctx context.Context, routeID int64, day models.Date) ([]models.Run, error) {
	isSpecial, err := s.store.Queries.SpecialDayExists(ctx, day)
	if err != nil {
		return nil, err
	}
	if isSpecial {
		return s.store.Queries.ListSpecialRunsByRouteAndDate(ctx, routeID, day)
	}
	return s.store.Queries.ListRegularRunsByRouteAndDay(ctx, routeID, day.ISOWeekday())
}

func (s *RunService) activeRoutesServingStop(ctx context.Context, stopID int64) ([]models.Route, error) {
	if _, err := s.store.Queries.GetStop(ctx, stopID); err != nil {
		return nil, asNotFound(err, "stop", stopID)
	}

	routes, err := s.store.Queries.ListRoutesServingStop(ctx, stopID)
	if err != nil {
		return nil, err
	}

	active := routes[:0]
	for _, route := range routes {
		if route.Status == models.RouteStatusActive {
			active = append(active, route)
		}
	}
	return active, nil
}

func (s *RunService) detailsForRuns(ctx context.Context, runs []models.Run) ([]models.RunDetails, error) {
	details := make([]models.RunDetails, 0, len(runs))
	for _, run := range runs {
		d, err := buildRunDetails(ctx, s.store.Queries, run)
		if err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, nil
}

// buildRunDetails denormalizes a run with its route fields and computes the
// per-stop timetable: for each stop in order that has an offset row,
// arrival = startTime + cumulativeMinutes.
func buildRunDetails(ctx context.Context, q *transitdb.Queries, run models.Run) (models.RunDetails, error) {
	route, err := q.GetRoute(ctx, run.RouteID)
	if err != nil {
		return models.RunDetails{}, err
	}

	routeStops, err := q.ListRouteStopsOrdered(ctx, run.RouteID)
	if err != nil {
		return models.RunDetails{}, err
	}
	offsets, err := q.ListOffsetsByRoute(ctx, run.RouteID)
	if err != nil {
		return models.RunDetails{}, err
	}
	offsetByStop := make(map[int64]int, len(offsets))
	for _, offset := range offsets {
		offsetByStop[offset.StopID] = offset.CumulativeMinutes
	}

	stopTimes := make([]models.StopTimeDetail, 0, len(routeStops))
	for _, rs := range routeStops {
		minutes, ok := offsetByStop[rs.StopID]
		if !ok {
			continue
		}
		stop, err := q.GetStop(ctx, rs.StopID)
		if err != nil {
			return models.RunDetails{}, err
		}
		stopTimes = append(stopTimes, models.StopTimeDetail{
			StopID:                 stop.ID,
			StopName:               stop.Name,
			ArrivalMinuteFromStart: minutes,
			ActualArrivalTime:      run.StartTime.AddMinutes(minutes),
		})
	}

	return models.RunDetails{
		ID:                  run.ID,
		RouteID:             route.ID,
		RouteNum:            route.Num,
		RouteName:           route.Name,
		DestinationStopName: run.DestinationStopName,
		ScheduleType:        run.ScheduleType,
		DayOfWeek:           run.DayOfWeek,
		SpecificDate:        run.SpecificDate,
		RunNum:              run.RunNum,
		StartTime:           run.StartTime,
		StopTimes:           stopTimes,
	}, nil
}
