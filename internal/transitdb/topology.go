package transitdb

import (
	"context"
	"fmt"

	"citybus.urbantransit.org/internal/models"
)

// InsertRouteStop adds one ordering row for a route's topology.
func (q *Queries) InsertRouteStop(ctx context.Context, rs models.RouteStop) error {
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO route_stops (route_id, stop_id, stop_order) VALUES (?, ?, ?)`,
		rs.RouteID, rs.StopID, rs.StopOrder,
	)
	if err != nil {
		return fmt.Errorf("error inserting route stop: %w", err)
	}
	return nil
}

// ListRouteStopsOrdered returns the route's topology rows in stop order.
func (q *Queries) ListRouteStopsOrdered(ctx context.Context, routeID int64) ([]models.RouteStop, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT route_id, stop_id, stop_order FROM route_stops
		 WHERE route_id = ? ORDER BY stop_order`, routeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck

	var routeStops []models.RouteStop
	for rows.Next() {
		var rs models.RouteStop
		if err := rows.Scan(&rs.RouteID, &rs.StopID, &rs.StopOrder); err != nil {
			return nil, err
		}
		routeStops = append(routeStops, rs)
	}
	return routeStops, rows.Err()
}

// DeleteRouteStops removes all topology rows for a route. Topology is always
// replaced wholesale, never patched.
func (q *Queries) DeleteRouteStops(ctx context.Context, routeID int64) error {
	_, err := q.db.ExecContext(ctx,
		`DELETE FROM route_stops WHERE route_id = ?`, routeID)
	if err != nil {
		return fmt.Errorf("error deleting route stops: %w", err)
	}
	return nil
}

// InsertOffset adds one cumulative-minutes row for a (route, stop) pair.
func (q *Queries) InsertOffset(ctx context.Context, offset models.RouteStopOffset) error {
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO route_stop_offsets (route_id, stop_id, cumulative_minutes) VALUES (?, ?, ?)`,
		offset.RouteID, offset.StopID, offset.CumulativeMinutes,
	)
	if err != nil {
		return fmt.Errorf("error inserting route stop offset: %w", err)
	}
	return nil
}

// UpsertOffset inserts the offset row or updates its minutes if the
// (route, stop) pair already has one. Used by the schedule import, which may
// correct existing offsets.
func (q *Queries) UpsertOffset(ctx context.Context, offset models.RouteStopOffset) error {
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO route_stop_offsets (route_id, stop_id, cumulative_minutes) VALUES (?, ?, ?)
		 ON CONFLICT (route_id, stop_id) DO UPDATE SET cumulative_minutes = excluded.cumulative_minutes`,
		offset.RouteID, offset.StopID, offset.CumulativeMinutes,
	)
	if err != nil {
		return fmt.Errorf("error upserting route stop offset: %w", err)
	}
	return nil
}

// ListOffsetsByRoute returns all offset rows for a route, keyed lookup order
// left to the caller (the service joins them against the ordered topology).
func (q *Queries) ListOffsetsByRoute(ctx context.Context, routeID int64) ([]models.RouteStopOffset, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT route_id, stop_id, cumulative_minutes FROM route_stop_offsets
		 WHERE route_id = ?`, routeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck

	var offsets []models.RouteStopOffset
	for rows.Next() {
		var offset models.RouteStopOffset
		if err := rows.Scan(&offset.RouteID, &offset.StopID, &offset.CumulativeMinutes); err != nil {
			return nil, err
		}
		offsets = append(offsets, offset)
	}
	return offsets, rows.Err()
}

// DeleteRouteOffsets removes all offset rows for a route.
func (q *Queries) DeleteRouteOffsets(ctx context.Context, routeID int64) error {
	_, err := q.db.ExecContext(ctx,
		`DELETE FROM route_stop_offsets WHERE route_id = ?`, routeID)
	if err != nil {
		return fmt.Errorf("error deleting route stop offsets: %w", err)
	}
	return nil
}
