package restapi

import (
	"net/http"

	"citybus.urbantransit.org/internal/metrics"
)

// SetRoutes registers the API surface on the mux.
func (api *RestAPI) SetRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /route", api.createRouteHandler)
	mux.HandleFunc("PUT /route/update/info", api.updateRouteInfoHandler)
	mux.HandleFunc("PUT /route/update/stops", api.updateRouteStopsHandler)
	mux.HandleFunc("PUT /route/update/offsets", api.updateRouteOffsetsHandler)
	mux.HandleFunc("PUT /route/update/status", api.updateRouteStatusHandler)
	mux.HandleFunc("GET /route", api.getAllRoutesHandler)
	mux.HandleFunc("GET /route/{routeId}", api.getRouteHandler)
	mux.HandleFunc("DELETE /route/{routeId}", api.deleteRouteHandler)

	mux.HandleFunc("POST /stop", api.createStopHandler)
	mux.HandleFunc("PUT /stop", api.updateStopHandler)
	mux.HandleFunc("GET /stop", api.getAllStopsHandler)
	mux.HandleFunc("GET /stop/{id}", api.getStopHandler)
	mux.HandleFunc("DELETE /stop/{id}", api.deleteStopHandler)

	mux.HandleFunc("POST /run/create", api.createRunHandler)
	mux.HandleFunc("GET /run", api.getAllRunsHandler)
	mux.HandleFunc("GET /run/{id}", api.getRunHandler)
	mux.HandleFunc("GET /run/route/{routeId}", api.getRunsForRouteHandler)
	mux.HandleFunc("GET /run/route/{routeId}/day/{date}", api.getRunsForRouteForDayHandler)
	mux.HandleFunc("GET /run/stop/{stopId}", api.getRunsForStopHandler)
	mux.HandleFunc("GET /run/stop/{stopId}/day/{date}", api.getRunsForStopForDayHandler)
	mux.HandleFunc("DELETE /run/delete/{id}", api.deleteRunHandler)
	mux.HandleFunc("DELETE /run/delete/special/{date}", api.deleteSpecialRunsForDayHandler)

	mux.HandleFunc("GET /healthz", api.healthHandler)
	mux.Handle("GET /metrics", metrics.Handler())
}
