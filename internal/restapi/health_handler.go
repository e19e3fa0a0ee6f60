package restapi

import "net/http"

type healthStatus struct {
	Status      string `json:"status"`
	Environment string `json:"environment"`
}

// healthHandler pings the database so load balancers see a failing store as
// an unhealthy instance.
func (api *RestAPI) healthHandler(w http.ResponseWriter, r *http.Request) {
	if err := api.Store.DB.PingContext(r.Context()); err != nil {
		api.sendJSON(w, r, http.StatusServiceUnavailable, healthStatus{
			Status:      "unavailable",
			Environment: api.Config.EnvName,
		})
		return
	}
	api.sendJSON(w, r, http.StatusOK, healthStatus{
		Status:      "ok",
		Environment: api.Config.EnvName,
	})
}
