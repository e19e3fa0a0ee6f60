package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"citybus.urbantransit.org/internal/models"
	"citybus.urbantransit.org/internal/transitdb"
)

type testEnv struct {
	store  *transitdb.Client
	routes *RouteService
	stops  *StopService
	runs   *RunService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := transitdb.NewClient(transitdb.NewConfig(":memory:", logger))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.Close()
	})

	return &testEnv{
		store:  store,
		routes: NewRouteService(store, logger),
		stops:  NewStopService(store, logger),
		runs:   NewRunService(store, logger),
	}
}

func (env *testEnv) createStop(t *testing.T, name string) models.Stop {
	t.Helper()

	stop, err := env.stops.CreateStop(context.Background(), StopInput{
		Name: name,
		Lat:  48.85,
		Lon:  2.35,
	})
	require.NoError(t, err)
	return stop
}

// createRoute seeds a three-stop route with offsets 0, 10 and 25 minutes.
func (env *testEnv) createRoute(t *testing.T) models.RouteDetails {
	t.Helper()

	a := env.createStop(t, "Gare Centrale")
	b := env.createStop(t, "Opera")
	c := env.createStop(t, "Terminus Nord")

	details, err := env.routes.CreateRoute(context.Background(), CreateRouteInput{
		Name:              "Crosstown",
		Num:               "12",
		Description:       "From Gare Centrale to Terminus Nord",
		StopIDs:           []int64{a.ID, b.ID, c.ID},
		CumulativeMinutes: []int{0, 10, 25},
	})
	require.NoError(t, err)
	return details
}

func intPtr(v int) *int { return &v }

func datePtr(year int, month time.Month, day int) *models.Date {
	return &models.Date{Year: year, Month: month, Day: day}
}
