package transitdb

import (
	"context"
	"fmt"

	"citybus.urbantransit.org/internal/models"
)

// SpecialDayExists reports whether the date overrides the weekly pattern.
func (q *Queries) SpecialDayExists(ctx context.Context, date models.Date) (bool, error) {
	var exists bool
	err := q.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM special_days WHERE date = ?)`,
		date.String()).Scan(&exists)
	return exists, err
}

// InsertSpecialDay marks the date as a special day. Inserting an existing date
// is a no-op.
func (q *Queries) InsertSpecialDay(ctx context.Context, date models.Date) error {
	_, err := q.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO special_days (date) VALUES (?)`, date.String())
	if err != nil {
		return fmt.Errorf("error inserting special day: %w", err)
	}
	return nil
}

// DeleteSpecialDay removes the override for the date. Missing rows are not an
// error: teardown paths call this unconditionally.
func (q *Queries) DeleteSpecialDay(ctx context.Context, date models.Date) error {
	_, err := q.db.ExecContext(ctx,
		`DELETE FROM special_days WHERE date = ?`, date.String())
	if err != nil {
		return fmt.Errorf("error deleting special day: %w", err)
	}
	return nil
}
