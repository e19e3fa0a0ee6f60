package transitdb

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"citybus.urbantransit.org/internal/models"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client, err := NewClient(NewConfig(":memory:", logger))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = client.Close()
	})
	return client
}

func seedStop(t *testing.T, client *Client, name string) int64 {
	t.Helper()

	id, err := client.Queries.CreateStop(context.Background(), models.Stop{
		Name: name,
		Lat:  48.85,
		Lon:  2.35,
	})
	require.NoError(t, err)
	return id
}

func seedRoute(t *testing.T, client *Client, name, num string) int64 {
	t.Helper()

	id, err := client.Queries.CreateRoute(context.Background(), models.Route{
		Name:   name,
		Num:    num,
		Status: models.RouteStatusActive,
	})
	require.NoError(t, err)
	return id
}

func TestNewClientAppliesSchema(t *testing.T) {
	client := newTestClient(t)

	stops, err := client.Queries.ListStops(context.Background())
	require.NoError(t, err)
	assert.Empty(t, stops)

	routes, err := client.Queries.ListRoutes(context.Background())
	require.NoError(t, err)
	assert.Empty(t, routes)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	boom := errors.New("boom")
	err := client.WithTx(ctx, func(q *Queries) error {
		if _, err := q.CreateStop(ctx, models.Stop{Name: "Gare Centrale", Lat: 1, Lon: 1}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	stops, err := client.Queries.ListStops(ctx)
	require.NoError(t, err)
	assert.Empty(t, stops)
}

func TestWithTxCommits(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	err := client.WithTx(ctx, func(q *Queries) error {
		_, err := q.CreateStop(ctx, models.Stop{Name: "Gare Centrale", Lat: 1, Lon: 1})
		return err
	})
	require.NoError(t, err)

	stops, err := client.Queries.ListStops(ctx)
	require.NoError(t, err)
	assert.Len(t, stops, 1)
	assert.Equal(t, "Gare Centrale", stops[0].Name)
}

func TestDeletingRouteCascadesTopologyAndRuns(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	stopID := seedStop(t, client, "Opera")
	routeID := seedRoute(t, client, "Crosstown", "12")

	require.NoError(t, client.Queries.InsertRouteStop(ctx, models.RouteStop{
		RouteID: routeID, StopID: stopID, StopOrder: 1,
	}))
	require.NoError(t, client.Queries.InsertOffset(ctx, models.RouteStopOffset{
		RouteID: routeID, StopID: stopID, CumulativeMinutes: 0,
	}))
	day := 3
	_, err := client.Queries.CreateRun(ctx, models.Run{
		RouteID:             routeID,
		DestinationStopName: "Opera",
		ScheduleType:        models.ScheduleTypeRegular,
		DayOfWeek:           &day,
		RunNum:              1,
		StartTime:           models.TimeOfDay(8 * 60),
	})
	require.NoError(t, err)

	require.NoError(t, client.Queries.DeleteRoute(ctx, routeID))

	routeStops, err := client.Queries.ListRouteStopsOrdered(ctx, routeID)
	require.NoError(t, err)
	assert.Empty(t, routeStops)

	offsets, err := client.Queries.ListOffsetsByRoute(ctx, routeID)
	require.NoError(t, err)
	assert.Empty(t, offsets)

	runs, err := client.Queries.ListRunsByRoute(ctx, routeID)
	require.NoError(t, err)
	assert.Empty(t, runs)

	// The stop itself is shared and must survive.
	_, err = client.Queries.GetStop(ctx, stopID)
	require.NoError(t, err)
}
