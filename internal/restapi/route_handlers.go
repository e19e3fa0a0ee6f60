package restapi

import (
	"net/http"

	"citybus.urbantransit.org/internal/models"
	"citybus.urbantransit.org/internal/service"
)

func (api *RestAPI) createRouteHandler(w http.ResponseWriter, r *http.Request) {
	var req createRouteRequest
	if err := api.decodeAndValidate(r, &req); err != nil {
		api.badRequestResponse(w, r, err.Error())
		return
	}

	details, err := api.Routes.CreateRoute(r.Context(), service.CreateRouteInput{
		Name:              req.Name,
		Num:               req.Num,
		Description:       req.Description,
		Status:            models.RouteStatus(req.Status),
		StopIDs:           req.RouteStops,
		CumulativeMinutes: req.CumulativeMinutesFromStartForStops,
	})
	if err != nil {
		api.serviceErrorResponse(w, r, err)
		return
	}
	api.sendJSON(w, r, http.StatusCreated, details)
}

func (api *RestAPI) updateRouteInfoHandler(w http.ResponseWriter, r *http.Request) {
	var req updateRouteInfoRequest
	if err := api.decodeAndValidate(r, &req); err != nil {
		api.badRequestResponse(w, r, err.Error())
		return
	}

	details, err := api.Routes.UpdateRouteInfo(r.Context(), req.ID, req.Name, req.Num, req.Description)
	if err != nil {
		api.serviceErrorResponse(w, r, err)
		return
	}
	api.sendJSON(w, r, http.StatusOK, details)
}

func (api *RestAPI) updateRouteStopsHandler(w http.ResponseWriter, r *http.Request) {
	var req updateRouteStopsRequest
	if err := api.decodeAndValidate(r, &req); err != nil {
		api.badRequestResponse(w, r, err.Error())
		return
	}

	details, err := api.Routes.UpdateRouteStops(r.Context(), req.ID, req.RouteStops, req.CumulativeMinutesFromStartForStops)
	if err != nil {
		api.serviceErrorResponse(w, r, err)
		return
	}
	api.sendJSON(w, r, http.StatusOK, details)
}

func (api *RestAPI) updateRouteOffsetsHandler(w http.ResponseWriter, r *http.Request) {
	var req updateRouteOffsetsRequest
	if err := api.decodeAndValidate(r, &req); err != nil {
		api.badRequestResponse(w, r, err.Error())
		return
	}

	details, err := api.Routes.UpdateRouteOffsets(r.Context(), req.ID, req.CumulativeMinutesFromStartForStops)
	if err != nil {
		api.serviceErrorResponse(w, r, err)
		return
	}
	api.sendJSON(w, r, http.StatusOK, details)
}

func (api *RestAPI) updateRouteStatusHandler(w http.ResponseWriter, r *http.Request) {
	var req updateRouteStatusRequest
	if err := api.decodeAndValidate(r, &req); err != nil {
		api.badRequestResponse(w, r, err.Error())
		return
	}

	details, err := api.Routes.UpdateRouteStatus(r.Context(), req.ID, models.RouteStatus(req.NewRouteStatus))
	if err != nil {
		api.serviceErrorResponse(w, r, err)
		return
	}
	api.sendJSON(w, r, http.StatusOK, details)
}

func (api *RestAPI) getAllRoutesHandler(w http.ResponseWriter, r *http.Request) {
	details, err := api.Routes.GetAllRoutes(r.Context())
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
	api.sendJSON(w, r, http.StatusOK, details)
}

func (api *RestAPI) getRouteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := extractIDParam(r, "routeId")
	if err != nil {
		api.badRequestResponse(w, r, err.Error())
		return
	}

	details, err := api.Routes.GetRouteByID(r.Context(), id)
	if err != nil {
		api.serviceErrorResponse(w, r, err)
		return
	}
	api.sendJSON(w, r, http.StatusOK, details)
}

// deleteRouteHandler reports the deletion outcome as a JSON boolean rather
// than an error status.
func (api *RestAPI) deleteRouteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := extractIDParam(r, "routeId")
	if err != nil {
		api.badRequestResponse(w, r, err.Error())
		return
	}

	deleted := api.Routes.DeleteRoute(r.Context(), id)
	api.sendJSON(w, r, http.StatusOK, deleted)
}
