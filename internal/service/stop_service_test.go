package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"citybus.urbantransit.org/internal/models"
)

func TestStopValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		input StopInput
	}{
		{"empty name", StopInput{Name: "", Lat: 0, Lon: 0}},
		{"latitude too high", StopInput{Name: "A", Lat: 90.1, Lon: 0}},
		{"latitude too low", StopInput{Name: "A", Lat: -90.1, Lon: 0}},
		{"longitude too high", StopInput{Name: "A", Lat: 0, Lon: 180.1}},
		{"longitude too low", StopInput{Name: "A", Lat: 0, Lon: -180.1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.stops.CreateStop(ctx, tt.input)
			var validationErr *ValidationError
			assert.ErrorAs(t, err, &validationErr)
		})
	}
}

func TestUpdateStop(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	stop := env.createStop(t, "Opera")
	address := "1 Place de l'Opera"
	updated, err := env.stops.UpdateStop(ctx, stop.ID, StopInput{
		Name:    "Opera Garnier",
		Lat:     48.871,
		Lon:     2.331,
		Address: &address,
	})
	require.NoError(t, err)
	assert.Equal(t, "Opera Garnier", updated.Name)
	require.NotNil(t, updated.Address)
	assert.Equal(t, address, *updated.Address)

	_, err = env.stops.UpdateStop(ctx, 999, StopInput{Name: "Ghost", Lat: 0, Lon: 0})
	var notFoundErr *NotFoundError
	assert.ErrorAs(t, err, &notFoundErr)
}

func TestDeleteStopGuardedByRouteReferences(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	details := env.createRoute(t)
	referenced := details.RouteStops[0]

	err := env.stops.DeleteStop(ctx, referenced)
	var conflictErr *ConflictError
	require.ErrorAs(t, err, &conflictErr)

	// Still present.
	_, err = env.stops.GetStopByID(ctx, referenced)
	require.NoError(t, err)

	// An unreferenced stop deletes cleanly.
	free := env.createStop(t, "Unused")
	require.NoError(t, env.stops.DeleteStop(ctx, free.ID))

	_, err = env.stops.GetStopByID(ctx, free.ID)
	var notFoundErr *NotFoundError
	assert.ErrorAs(t, err, &notFoundErr)
}

func TestDeleteStopGuardedByOffsetOnlyReference(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	details := env.createRoute(t)

	// A schedule import can write an offset for a stop the topology does not
	// list; that reference alone must block deletion.
	orphan := env.createStop(t, "Depot")
	require.NoError(t, env.store.Queries.UpsertOffset(ctx, models.RouteStopOffset{
		RouteID:           details.ID,
		StopID:            orphan.ID,
		CumulativeMinutes: 40,
	}))

	err := env.stops.DeleteStop(ctx, orphan.ID)
	var conflictErr *ConflictError
	require.ErrorAs(t, err, &conflictErr)

	_, err = env.stops.GetStopByID(ctx, orphan.ID)
	require.NoError(t, err)
}

func TestDeleteStopFreedByRouteDeletion(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	details := env.createRoute(t)
	stopID := details.RouteStops[1]

	require.True(t, env.routes.DeleteRoute(ctx, details.ID))
	require.NoError(t, env.stops.DeleteStop(ctx, stopID))
}
