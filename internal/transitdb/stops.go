package transitdb

import (
	"context"
	"database/sql"
	"fmt"

	"citybus.urbantransit.org/internal/models"
)

const stopColumns = "id, osm_id, name, lat, lon, address"

func scanStop(row interface{ Scan(...any) error }) (models.Stop, error) {
	var stop models.Stop
	var osmID sql.NullInt64
	var address sql.NullString

	err := row.Scan(&stop.ID, &osmID, &stop.Name, &stop.Lat, &stop.Lon, &address)
	if err != nil {
		return models.Stop{}, err
	}

	stop.OSMID = int64Ptr(osmID)
	stop.Address = stringPtr(address)
	return stop, nil
}

// CreateStop inserts a new stop and returns its generated id.
func (q *Queries) CreateStop(ctx context.Context, stop models.Stop) (int64, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO stops (osm_id, name, lat, lon, address) VALUES (?, ?, ?, ?, ?)`,
		nullableInt64(stop.OSMID), stop.Name, stop.Lat, stop.Lon, nullableString(stop.Address),
	)
	if err != nil {
		return 0, fmt.Errorf("error inserting stop: %w", err)
	}
	return res.LastInsertId()
}

func (q *Queries) GetStop(ctx context.Context, id int64) (models.Stop, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+stopColumns+` FROM stops WHERE id = ?`, id)
	return scanStop(row)
}

// GetStopByOSMID looks a stop up by its external id, the idempotence key used
// during imports.
func (q *Queries) GetStopByOSMID(ctx context.Context, osmID int64) (models.Stop, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+stopColumns+` FROM stops WHERE osm_id = ?`, osmID)
	return scanStop(row)
}

func (q *Queries) ListStops(ctx context.Context) ([]models.Stop, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+stopColumns+` FROM stops ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck

	var stops []models.Stop
	for rows.Next() {
		stop, err := scanStop(rows)
		if err != nil {
			return nil, err
		}
		stops = append(stops, stop)
	}
	return stops, rows.Err()
}

func (q *Queries) UpdateStop(ctx context.Context, stop models.Stop) error {
	res, err := q.db.ExecContext(ctx,
		`UPDATE stops SET name = ?, lat = ?, lon = ?, address = ? WHERE id = ?`,
		stop.Name, stop.Lat, stop.Lon, nullableString(stop.Address), stop.ID,
	)
	if err != nil {
		return fmt.Errorf("error updating stop: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (q *Queries) DeleteStop(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, `DELETE FROM stops WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("error deleting stop: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// CountRoutesReferencingStop returns how many route topology rows reference
// the stop. Non-zero blocks stop deletion.
func (q *Queries) CountRoutesReferencingStop(ctx context.Context, stopID int64) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM route_stops WHERE stop_id = ?`, stopID).Scan(&count)
	return count, err
}

// CountOffsetsReferencingStop returns how many offset rows reference the stop.
// The schedule import may write an offset for a stop that is not part of the
// route's topology, so deletion has to check both tables.
func (q *Queries) CountOffsetsReferencingStop(ctx context.Context, stopID int64) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM route_stop_offsets WHERE stop_id = ?`, stopID).Scan(&count)
	return count, err
}
