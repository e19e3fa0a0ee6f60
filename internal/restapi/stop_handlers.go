package restapi

import (
	"net/http"

	"citybus.urbantransit.org/internal/service"
)

func (api *RestAPI) createStopHandler(w http.ResponseWriter, r *http.Request) {
	var req stopRequest
	if err := api.decodeAndValidate(r, &req); err != nil {
		api.badRequestResponse(w, r, err.Error())
		return
	}

	stop, err := api.Stops.CreateStop(r.Context(), service.StopInput{
		Name:    req.Name,
		Lat:     req.Lat,
		Lon:     req.Lon,
		Address: req.Address,
	})
	if err != nil {
		api.serviceErrorResponse(w, r, err)
		return
	}
	api.sendJSON(w, r, http.StatusCreated, stop)
}

func (api *RestAPI) updateStopHandler(w http.ResponseWriter, r *http.Request) {
	var req stopRequest
	if err := api.decodeAndValidate(r, &req); err != nil {
		api.badRequestResponse(w, r, err.Error())
		return
	}
	if req.ID <= 0 {
		api.badRequestResponse(w, r, "stop id is required")
		return
	}

	stop, err := api.Stops.UpdateStop(r.Context(), req.ID, service.StopInput{
		Name:    req.Name,
		Lat:     req.Lat,
		Lon:     req.Lon,
		Address: req.Address,
	})
	if err != nil {
		api.serviceErrorResponse(w, r, err)
		return
	}
	api.sendJSON(w, r, http.StatusOK, stop)
}

func (api *RestAPI) getAllStopsHandler(w http.ResponseWriter, r *http.Request) {
	stops, err := api.Stops.GetAllStops(r.Context())
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
	api.sendJSON(w, r, http.StatusOK, stops)
}

func (api *RestAPI) getStopHandler(w http.ResponseWriter, r *http.Request) {
	id, err := extractIDParam(r, "id")
	if err != nil {
		api.badRequestResponse(w, r, err.Error())
		return
	}

	stop, err := api.Stops.GetStopByID(r.Context(), id)
	if err != nil {
		api.serviceErrorResponse(w, r, err)
		return
	}
	api.sendJSON(w, r, http.StatusOK, stop)
}

func (api *RestAPI) deleteStopHandler(w http.ResponseWriter, r *http.Request) {
	id, err := extractIDParam(r, "id")
	if err != nil {
		api.badRequestResponse(w, r, err.Error())
		return
	}

	if err := api.Stops.DeleteStop(r.Context(), id); err != nil {
		api.serviceErrorResponse(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
