package transitdb

import (
	"context"
	"database/sql"
	"fmt"

	"citybus.urbantransit.org/internal/models"
)

const routeColumns = "id, osm_id, name, num, description, status"

func scanRoute(row interface{ Scan(...any) error }) (models.Route, error) {
	var route models.Route
	var osmID sql.NullInt64
	var status string

	err := row.Scan(&route.ID, &osmID, &route.Name, &route.Num, &route.Description, &status)
	if err != nil {
		return models.Route{}, err
	}

	route.OSMID = int64Ptr(osmID)
	route.Status = models.RouteStatus(status)
	return route, nil
}

// CreateRoute inserts a new route and returns its generated id.
func (q *Queries) CreateRoute(ctx context.Context, route models.Route) (int64, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO routes (osm_id, name, num, description, status) VALUES (?, ?, ?, ?, ?)`,
		nullableInt64(route.OSMID), route.Name, route.Num, route.Description, string(route.Status),
	)
	if err != nil {
		return 0, fmt.Errorf("error inserting route: %w", err)
	}
	return res.LastInsertId()
}

func (q *Queries) GetRoute(ctx context.Context, id int64) (models.Route, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+routeColumns+` FROM routes WHERE id = ?`, id)
	return scanRoute(row)
}

func (q *Queries) GetRouteByOSMID(ctx context.Context, osmID int64) (models.Route, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+routeColumns+` FROM routes WHERE osm_id = ?`, osmID)
	return scanRoute(row)
}

func (q *Queries) ListRoutes(ctx context.Context) ([]models.Route, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+routeColumns+` FROM routes ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck

	return collectRoutes(rows)
}

// ListRoutesServingStop returns every distinct route whose topology contains
// the stop.
func (q *Queries) ListRoutesServingStop(ctx context.Context, stopID int64) ([]models.Route, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT DISTINCT r.id, r.osm_id, r.name, r.num, r.description, r.status
		 FROM routes r
		 JOIN route_stops rs ON rs.route_id = r.id
		 WHERE rs.stop_id = ?
		 ORDER BY r.id`, stopID)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck

	return collectRoutes(rows)
}

func collectRoutes(rows *sql.Rows) ([]models.Route, error) {
	var routes []models.Route
	for rows.Next() {
		route, err := scanRoute(rows)
		if err != nil {
			return nil, err
		}
		routes = append(routes, route)
	}
	return routes, rows.Err()
}

// UpdateRouteInfo mutates name, num and description only; topology and offsets
// are untouched.
func (q *Queries) UpdateRouteInfo(ctx context.Context, id int64, name, num, description string) error {
	res, err := q.db.ExecContext(ctx,
		`UPDATE routes SET name = ?, num = ?, description = ? WHERE id = ?`,
		name, num, description, id,
	)
	if err != nil {
		return fmt.Errorf("error updating route info: %w", err)
	}
	return requireRowAffected(res)
}

func (q *Queries) UpdateRouteStatus(ctx context.Context, id int64, status models.RouteStatus) error {
	res, err := q.db.ExecContext(ctx,
		`UPDATE routes SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return fmt.Errorf("error updating route status: %w", err)
	}
	return requireRowAffected(res)
}

func (q *Queries) DeleteRoute(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, `DELETE FROM routes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("error deleting route: %w", err)
	}
	return requireRowAffected(res)
}

func requireRowAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
