package transitdb

import (
	"context"
	"database/sql"
	"fmt"

	"citybus.urbantransit.org/internal/models"
)

const runColumns = "id, route_id, destination_stop_name, schedule_type, day_of_week, specific_date, run_num, start_time"

func scanRun(row interface{ Scan(...any) error }) (models.Run, error) {
	var run models.Run
	var scheduleType, startTime string
	var dayOfWeek sql.NullInt64
	var specificDate sql.NullString

	err := row.Scan(&run.ID, &run.RouteID, &run.DestinationStopName,
		&scheduleType, &dayOfWeek, &specificDate, &run.RunNum, &startTime)
	if err != nil {
		return models.Run{}, err
	}

	run.ScheduleType = models.ScheduleType(scheduleType)
	if dayOfWeek.Valid {
		day := int(dayOfWeek.Int64)
		run.DayOfWeek = &day
	}
	if specificDate.Valid {
		date, err := models.ParseDate(specificDate.String)
		if err != nil {
			return models.Run{}, fmt.Errorf("error parsing stored run date: %w", err)
		}
		run.SpecificDate = &date
	}
	run.StartTime, err = models.ParseTimeOfDay(startTime)
	if err != nil {
		return models.Run{}, fmt.Errorf("error parsing stored run start time: %w", err)
	}
	return run, nil
}

// CreateRun inserts a run and returns its generated id. Callers validate the
// schedule-type pairing before persisting.
func (q *Queries) CreateRun(ctx context.Context, run models.Run) (int64, error) {
	var dayOfWeek sql.NullInt64
	if run.DayOfWeek != nil {
		dayOfWeek = sql.NullInt64{Int64: int64(*run.DayOfWeek), Valid: true}
	}
	var specificDate sql.NullString
	if run.SpecificDate != nil {
		specificDate = sql.NullString{String: run.SpecificDate.String(), Valid: true}
	}

	res, err := q.db.ExecContext(ctx,
		`INSERT INTO runs (route_id, destination_stop_name, schedule_type, day_of_week, specific_date, run_num, start_time)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.RouteID, run.DestinationStopName, string(run.ScheduleType),
		dayOfWeek, specificDate, run.RunNum, run.StartTime.String(),
	)
	if err != nil {
		return 0, fmt.Errorf("error inserting run: %w", err)
	}
	return res.LastInsertId()
}

func (q *Queries) GetRun(ctx context.Context, id int64) (models.Run, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	return scanRun(row)
}

func (q *Queries) ListRuns(ctx context.Context) ([]models.Run, error) {
	return q.queryRuns(ctx, `SELECT `+runColumns+` FROM runs ORDER BY id`)
}

func (q *Queries) ListRunsByRoute(ctx context.Context, routeID int64) ([]models.Run, error) {
	return q.queryRuns(ctx,
		`SELECT `+runColumns+` FROM runs WHERE route_id = ? ORDER BY id`, routeID)
}

// ListRegularRunsByRouteAndDay returns the route's weekly-pattern runs for an
// ISO weekday, in departure order.
func (q *Queries) ListRegularRunsByRouteAndDay(ctx context.Context, routeID int64, dayOfWeek int) ([]models.Run, error) {
	return q.queryRuns(ctx,
		`SELECT `+runColumns+` FROM runs
		 WHERE route_id = ? AND schedule_type = ? AND day_of_week = ?
		 ORDER BY start_time, run_num`,
		routeID, string(models.ScheduleTypeRegular), dayOfWeek)
}

// ListSpecialRunsByRouteAndDate returns the route's one-off runs for a
// calendar date, in departure order.
func (q *Queries) ListSpecialRunsByRouteAndDate(ctx context.Context, routeID int64, date models.Date) ([]models.Run, error) {
	return q.queryRuns(ctx,
		`SELECT `+runColumns+` FROM runs
		 WHERE route_id = ? AND schedule_type = ? AND specific_date = ?
		 ORDER BY start_time, run_num`,
		routeID, string(models.ScheduleTypeSpecial), date.String())
}

func (q *Queries) ListSpecialRunsByDate(ctx context.Context, date models.Date) ([]models.Run, error) {
	return q.queryRuns(ctx,
		`SELECT `+runColumns+` FROM runs
		 WHERE schedule_type = ? AND specific_date = ? ORDER BY id`,
		string(models.ScheduleTypeSpecial), date.String())
}

func (q *Queries) queryRuns(ctx context.Context, query string, args ...any) ([]models.Run, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck

	var runs []models.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// MaxRegularRunNumInScope returns the highest run number ever assigned in the
// (route, REGULAR, dayOfWeek) numbering scope, 0 when the scope is empty.
// Numbering off the maximum rather than the row count keeps numbers from being
// reused after deletions.
func (q *Queries) MaxRegularRunNumInScope(ctx context.Context, routeID int64, dayOfWeek int) (int64, error) {
	var max int64
	err := q.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(run_num), 0) FROM runs WHERE route_id = ? AND schedule_type = ? AND day_of_week = ?`,
		routeID, string(models.ScheduleTypeRegular), dayOfWeek).Scan(&max)
	return max, err
}

// MaxSpecialRunNumInScope returns the highest run number ever assigned in the
// (route, SPECIAL, specificDate) numbering scope, 0 when the scope is empty.
func (q *Queries) MaxSpecialRunNumInScope(ctx context.Context, routeID int64, date models.Date) (int64, error) {
	var max int64
	err := q.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(run_num), 0) FROM runs WHERE route_id = ? AND schedule_type = ? AND specific_date = ?`,
		routeID, string(models.ScheduleTypeSpecial), date.String()).Scan(&max)
	return max, err
}

// CountSpecialRunsForDate counts SPECIAL runs across all routes for a date,
// driving the special-day reference-counted teardown.
func (q *Queries) CountSpecialRunsForDate(ctx context.Context, date models.Date) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM runs WHERE schedule_type = ? AND specific_date = ?`,
		string(models.ScheduleTypeSpecial), date.String()).Scan(&count)
	return count, err
}

// RouteHasRegularRuns reports whether any REGULAR run exists for the route.
// The schedule import skips run generation entirely when it does.
func (q *Queries) RouteHasRegularRuns(ctx context.Context, routeID int64) (bool, error) {
	var exists bool
	err := q.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM runs WHERE route_id = ? AND schedule_type = ?)`,
		routeID, string(models.ScheduleTypeRegular)).Scan(&exists)
	return exists, err
}

// RegularRunExists reports whether the (route, REGULAR, dayOfWeek, startTime)
// tuple is already present, the natural-key guard for import idempotence.
func (q *Queries) RegularRunExists(ctx context.Context, routeID int64, dayOfWeek int, startTime models.TimeOfDay) (bool, error) {
	var exists bool
	err := q.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM runs
		 WHERE route_id = ? AND schedule_type = ? AND day_of_week = ? AND start_time = ?)`,
		routeID, string(models.ScheduleTypeRegular), dayOfWeek, startTime.String()).Scan(&exists)
	return exists, err
}

func (q *Queries) DeleteRun(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("error deleting run: %w", err)
	}
	return requireRowAffected(res)
}

// DeleteSpecialRunsForDate bulk-deletes every SPECIAL run on the date across
// all routes.
func (q *Queries) DeleteSpecialRunsForDate(ctx context.Context, date models.Date) error {
	_, err := q.db.ExecContext(ctx,
		`DELETE FROM runs WHERE schedule_type = ? AND specific_date = ?`,
		string(models.ScheduleTypeSpecial), date.String())
	if err != nil {
		return fmt.Errorf("error deleting special runs: %w", err)
	}
	return nil
}
