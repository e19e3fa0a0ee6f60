package restapi

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"citybus.urbantransit.org/internal/app"
	"citybus.urbantransit.org/internal/appconf"
	"citybus.urbantransit.org/internal/transitdb"
)

func createTestApi(t *testing.T) (*RestAPI, *httptest.Server) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := transitdb.NewClient(transitdb.NewConfig(":memory:", logger))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.Close()
	})

	cfg := appconf.Default()
	cfg.EnvName = "test"
	cfg.Env = appconf.Test

	api := NewRestAPI(app.NewApplication(cfg, logger, store))
	mux := http.NewServeMux()
	api.SetRoutes(mux)

	server := httptest.NewServer(api.RequestLoggingMiddleware(mux))
	t.Cleanup(server.Close)
	return api, server
}

// doJSON performs a request with an optional JSON body and decodes the JSON
// response into out when out is non-nil.
func doJSON(t *testing.T, server *httptest.Server, method, path string, body any, out any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequest(method, server.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := server.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = resp.Body.Close()
	})

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func createStopViaAPI(t *testing.T, server *httptest.Server, name string) map[string]any {
	t.Helper()

	var stop map[string]any
	resp := doJSON(t, server, http.MethodPost, "/stop", map[string]any{
		"name": name,
		"lat":  48.85,
		"lon":  2.35,
	}, &stop)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return stop
}

// createRouteViaAPI seeds a three-stop route with offsets 0, 10 and 25.
func createRouteViaAPI(t *testing.T, server *httptest.Server) map[string]any {
	t.Helper()

	a := createStopViaAPI(t, server, "Gare Centrale")
	b := createStopViaAPI(t, server, "Opera")
	c := createStopViaAPI(t, server, "Terminus Nord")

	var route map[string]any
	resp := doJSON(t, server, http.MethodPost, "/route", map[string]any{
		"name":                               "Crosstown",
		"num":                                "12",
		"description":                        "From Gare Centrale to Terminus Nord",
		"routeStops":                         []any{a["id"], b["id"], c["id"]},
		"cumulativeMinutesFromStartForStops": []int{0, 10, 25},
	}, &route)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return route
}
