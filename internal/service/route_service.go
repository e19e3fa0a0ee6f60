package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"citybus.urbantransit.org/internal/logging"
	"citybus.urbantransit.org/internal/models"
	"citybus.urbantransit.org/internal/transitdb"
)

// RouteService owns route topology mutations. Every mutation that touches
// ordering or offsets replaces the full row sets inside one transaction, so a
// route is never observable with stops that have no matching offsets.
type RouteService struct {
	store  *transitdb.Client
	logger *slog.Logger
}

func NewRouteService(store *transitdb.Client, logger *slog.Logger) *RouteService {
	return &RouteService{store: store, logger: logger}
}

// CreateRouteInput carries the new route's descriptive fields plus its stop
// sequence and index-aligned cumulative minute offsets.
type CreateRouteInput struct {
	Name              string
	Num               string
	Description       string
	Status            models.RouteStatus
	StopIDs           []int64
	CumulativeMinutes []int
}

func (s *RouteService) CreateRoute(ctx context.Context, input CreateRouteInput) (models.RouteDetails, error) {
	if err := validateTopologyInput(input.StopIDs, input.CumulativeMinutes); err != nil {
		return models.RouteDetails{}, err
	}

	status := input.Status
	if status == "" {
		status = models.RouteStatusActive
	}
	if !status.Valid() {
		return models.RouteDetails{}, validationErrorf("unknown route status %q", status)
	}

	var details models.RouteDetails
	err := s.store.WithTx(ctx, func(q *transitdb.Queries) error {
		if err := resolveStops(ctx, q, input.StopIDs); err != nil {
			return err
		}

		routeID, err := q.CreateRoute(ctx, models.Route{
			Name:        input.Name,
			Num:         input.Num,
			Description: input.Description,
			Status:      status,
		})
		if err != nil {
			return err
		}

		if err := insertTopology(ctx, q, routeID, input.StopIDs, input.CumulativeMinutes); err != nil {
			return err
		}

		route, err := q.GetRoute(ctx, routeID)
		if err != nil {
			return err
		}
		details, err = buildRouteDetails(ctx, q, route)
		return err
	})
	if err != nil {
		return models.RouteDetails{}, err
	}

	logging.LogOperation(s.logger, "route_created",
		slog.Int64("route_id", details.ID),
		slog.Int("stops", len(details.RouteStops)))
	return details, nil
}

// UpdateRouteInfo mutates name, num and description only.
func (s *RouteService) UpdateRouteInfo(ctx context.Context, id int64, name, num, description string) (models.RouteDetails, error) {
	var details models.RouteDetails
	err := s.store.WithTx(ctx, func(q *transitdb.Queries) error {
		if err := q.UpdateRouteInfo(ctx, id, name, num, description); err != nil {
			return asNotFound(err, "route", id)
		}
		route, err := q.GetRoute(ctx, id)
		if err != nil {
			return asNotFound(err, "route", id)
		}
		details, err = buildRouteDetails(ctx, q, route)
		return err
	})
	return details, err
}

// UpdateRouteStops replaces the route's entire stop sequence and offset set.
// Never a partial merge: delete-all then reinsert-all keeps ordering and
// offsets consistent by construction.
func (s *RouteService) UpdateRouteStops(ctx context.Context, id int64, stopIDs []int64, cumulativeMinutes []int) (models.RouteDetails, error) {
	if err := validateTopologyInput(stopIDs, cumulativeMinutes); err != nil {
		return models.RouteDetails{}, err
	}

	var details models.RouteDetails
	err := s.store.WithTx(ctx, func(q *transitdb.Queries) error {
		route, err := q.GetRoute(ctx, id)
		if err != nil {
			return asNotFound(err, "route", id)
		}

		if err := resolveStops(ctx, q, stopIDs); err != nil {
			return err
		}

		if err := q.DeleteRouteOffsets(ctx, id); err != nil {
			return err
		}
		if err := q.DeleteRouteStops(ctx, id); err != nil {
			return err
		}
		if err := insertTopology(ctx, q, id, stopIDs, cumulativeMinutes); err != nil {
			return err
		}

		details, err = buildRouteDetails(ctx, q, route)
		return err
	})
	return details, err
}

// UpdateRouteOffsets replaces only the offsets, preserving the existing
// topology order.
func (s *RouteService) UpdateRouteOffsets(ctx context.Context, id int64, cumulativeMinutes []int) (models.RouteDetails, error) {
	if !nonDecreasing(cumulativeMinutes) {
		return models.RouteDetails{}, validationErrorf("cumulative minutes from start must be in ascending order")
	}

	var details models.RouteDetails
	err := s.store.WithTx(ctx, func(q *transitdb.Queries) error {
		route, err := q.GetRoute(ctx, id)
		if err != nil {
			return asNotFound(err, "route", id)
		}

		routeStops, err := q.ListRouteStopsOrdered(ctx, id)
		if err != nil {
			return err
		}
		if len(routeStops) != len(cumulativeMinutes) {
			return validationErrorf("cumulative minutes list must match the number of stops in the route")
		}

		if err := q.DeleteRouteOffsets(ctx, id); err != nil {
			return err
		}
		for i, rs := range routeStops {
			err := q.InsertOffset(ctx, models.RouteStopOffset{
				RouteID:           id,
				StopID:            rs.StopID,
				CumulativeMinutes: cumulativeMinutes[i],
			})
			if err != nil {
				return err
			}
		}

		details, err = buildRouteDetails(ctx, q, route)
		return err
	})
	return details, err
}

// UpdateRouteStatus is a pure status transition with no topology side effects.
func (s *RouteService) UpdateRouteStatus(ctx context.Context, id int64, status models.RouteStatus) (models.RouteDetails, error) {
	if !status.Valid() {
		return models.RouteDetails{}, validationErrorf("unknown route status %q", status)
	}

	var details models.RouteDetails
	err := s.store.WithTx(ctx, func(q *transitdb.Queries) error {
		if err := q.UpdateRouteStatus(ctx, id, status); err != nil {
			return asNotFound(err, "route", id)
		}
		route, err := q.GetRoute(ctx, id)
		if err != nil {
			return asNotFound(err, "route", id)
		}
		details, err = buildRouteDetails(ctx, q, route)
		return err
	})
	return details, err
}

func (s *RouteService) GetRouteByID(ctx context.Context, id int64) (models.RouteDetails, error) {
	route, err := s.store.Queries.GetRoute(ctx, id)
	if err != nil {
		return models.RouteDetails{}, asNotFound(err, "route", id)
	}
	return buildRouteDetails(ctx, s.store.Queries, route)
}

func (s *RouteService) GetAllRoutes(ctx context.Context) ([]models.RouteDetails, error) {
	routes, err := s.store.Queries.ListRoutes(ctx)
	if err != nil {
		return nil, err
	}

	details := make([]models.RouteDetails, 0, len(routes))
	for _, route := range routes {
		d, err := buildRouteDetails(ctx, s.store.Queries, route)
		if err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, nil
}

// DeleteRoute removes the route's offsets and the route itself; topology rows
// and runs go with it via cascade. This is an administrative cleanup path, so
// it reports success or failure instead of returning an error.
func (s *RouteService) DeleteRoute(ctx context.Context, id int64) bool {
	err := s.store.WithTx(ctx, func(q *transitdb.Queries) error {
		if err := q.DeleteRouteOffsets(ctx, id); err != nil {
			return err
		}
		return q.DeleteRoute(ctx, id)
	})
	if err != nil {
		logging.LogError(s.logger, "route deletion failed", err, slog.Int64("route_id", id))
		return false
	}
	return true
}

func validateTopologyInput(stopIDs []int64, cumulativeMinutes []int) error {
	if len(stopIDs) != len(cumulativeMinutes) {
		return validationErrorf("cumulative minutes list must match the number of stops in the route")
	}
	seen := make(map[int64]struct{}, len(stopIDs))
	for _, id := range stopIDs {
		if _, dup := seen[id]; dup {
			return validationErrorf("stop %d appears more than once in the route", id)
		}
		seen[id] = struct{}{}
	}
	if !nonDecreasing(cumulativeMinutes) {
		return validationErrorf("cumulative minutes from start must be in ascending order")
	}
	for _, m := range cumulativeMinutes {
		if m < 0 {
			return validationErrorf("cumulative minutes from start must be non-negative")
		}
	}
	return nil
}

func nonDecreasing(minutes []int) bool {
	for i := 1; i < len(minutes); i++ {
		if minutes[i-1] > minutes[i] {
			return false
		}
	}
	return true
}

// resolveStops checks that every listed stop exists. An unresolvable id is a
// malformed topology input, not a missing resource, so it surfaces as a
// validation failure.
func resolveStops(ctx context.Context, q *transitdb.Queries, stopIDs []int64) error {
	for _, stopID := range stopIDs {
		if _, err := q.GetStop(ctx, stopID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return validationErrorf("stop %d does not resolve to an existing stop", stopID)
			}
			return err
		}
	}
	return nil
}

func insertTopology(ctx context.Context, q *transitdb.Queries, routeID int64, stopIDs []int64, cumulativeMinutes []int) error {
	for i, stopID := range stopIDs {
		err := q.InsertRouteStop(ctx, models.RouteStop{
			RouteID:   routeID,
			StopID:    stopID,
			StopOrder: i + 1,
		})
		if err != nil {
			return err
		}
	}
	for i, stopID := range stopIDs {
		err := q.InsertOffset(ctx, models.RouteStopOffset{
			RouteID:           routeID,
			StopID:            stopID,
			CumulativeMinutes: cumulativeMinutes[i],
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// buildRouteDetails projects a route with its ordered stop ids and offsets,
// aligned index for index.
func buildRouteDetails(ctx context.Context, q *transitdb.Queries, route models.Route) (models.RouteDetails, error) {
	routeStops, err := q.ListRouteStopsOrdered(ctx, route.ID)
	if err != nil {
		return models.RouteDetails{}, err
	}
	offsets, err := q.ListOffsetsByRoute(ctx, route.ID)
	if err != nil {
		return models.RouteDetails{}, err
	}

	offsetByStop := make(map[int64]int, len(offsets))
	for _, offset := range offsets {
		offsetByStop[offset.StopID] = offset.CumulativeMinutes
	}

	details := models.RouteDetails{
		ID:                                 route.ID,
		Name:                               route.Name,
		Num:                                route.Num,
		Description:                        route.Description,
		Status:                             route.Status,
		RouteStops:                         make([]int64, 0, len(routeStops)),
		CumulativeMinutesFromStartForStops: make([]int, 0, len(routeStops)),
	}
	for _, rs := range routeStops {
		details.RouteStops = append(details.RouteStops, rs.StopID)
		if minutes, ok := offsetByStop[rs.StopID]; ok {
			details.CumulativeMinutesFromStartForStops = append(details.CumulativeMinutesFromStartForStops, minutes)
		}
	}
	return details, nil
}
