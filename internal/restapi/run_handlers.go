package restapi

import (
	"net/http"

	"citybus.urbantransit.org/internal/models"
	"citybus.urbantransit.org/internal/service"
)

func (api *RestAPI) createRunHandler(w http.ResponseWriter, r *http.Request) {
	var req createRunRequest
	if err := api.decodeAndValidate(r, &req); err != nil {
		api.badRequestResponse(w, r, err.Error())
		return
	}

	details, err := api.Runs.CreateRun(r.Context(), service.CreateRunInput{
		RouteID:      req.RouteID,
		ScheduleType: models.ScheduleType(req.ScheduleType),
		DayOfWeek:    req.DayOfWeek,
		SpecificDate: req.SpecificDate,
		StartTime:    *req.StartTime,
	})
	if err != nil {
		api.serviceErrorResponse(w, r, err)
		return
	}
	api.sendJSON(w, r, http.StatusCreated, details)
}

func (api *RestAPI) getAllRunsHandler(w http.ResponseWriter, r *http.Request) {
	details, err := api.Runs.GetAllRuns(r.Context())
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
	api.sendJSON(w, r, http.StatusOK, details)
}

func (api *RestAPI) getRunHandler(w http.ResponseWriter, r *http.Request) {
	id, err := extractIDParam(r, "id")
	if err != nil {
		api.badRequestResponse(w, r, err.Error())
		return
	}

	details, err := api.Runs.GetRunByID(r.Context(), id)
	if err != nil {
		api.serviceErrorResponse(w, r, err)
		return
	}
	api.sendJSON(w, r, http.StatusOK, details)
}

func (api *RestAPI) getRunsForRouteHandler(w http.ResponseWriter, r *http.Request) {
	routeID, err := extractIDParam(r, "routeId")
	if err != nil {
		api.badRequestResponse(w, r, err.Error())
		return
	}

	details, err := api.Runs.GetAllRunsForRoute(r.Context(), routeID)
	if err != nil {
		api.serviceErrorResponse(w, r, err)
		return
	}
	api.sendJSON(w, r, http.StatusOK, details)
}

func (api *RestAPI) getRunsForRouteForDayHandler(w http.ResponseWriter, r *http.Request) {
	routeID, err := extractIDParam(r, "routeId")
	if err != nil {
		api.badRequestResponse(w, r, err.Error())
		return
	}
	day, err := extractDateParam(r, "date")
	if err != nil {
		api.badRequestResponse(w, r, err.Error())
		return
	}

	details, err := api.Runs.GetAllRunsForRouteForDay(r.Context(), routeID, day)
	if err != nil {
		api.serviceErrorResponse(w, r, err)
		return
	}
	api.sendJSON(w, r, http.StatusOK, details)
}

func (api *RestAPI) getRunsForStopHandler(w http.ResponseWriter, r *http.Request) {
	stopID, err := extractIDParam(r, "stopId")
	if err != nil {
		api.badRequestResponse(w, r, err.Error())
		return
	}

	details, err := api.Runs.GetAllRunsForStop(r.Context(), stopID)
	if err != nil {
		api.serviceErrorResponse(w, r, err)
		return
	}
	api.sendJSON(w, r, http.StatusOK, details)
}

func (api *RestAPI) getRunsForStopForDayHandler(w http.ResponseWriter, r *http.Request) {
	stopID, err := extractIDParam(r, "stopId")
	if err != nil {
		api.badRequestResponse(w, r, err.Error())
		return
	}
	day, err := extractDateParam(r, "date")
	if err != nil {
		api.badRequestResponse(w, r, err.Error())
		return
	}

	details, err := api.Runs.GetAllRunsForStopForDay(r.Context(), stopID, day)
	if err != nil {
		api.serviceErrorResponse(w, r, err)
		return
	}
	api.sendJSON(w, r, http.StatusOK, details)
}

func (api *RestAPI) deleteRunHandler(w http.ResponseWriter, r *http.Request) {
	id, err := extractIDParam(r, "id")
	if err != nil {
		api.badRequestResponse(w, r, err.Error())
		return
	}

	if err := api.Runs.DeleteRunByID(r.Context(), id); err != nil {
		api.serviceErrorResponse(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (api *RestAPI) deleteSpecialRunsForDayHandler(w http.ResponseWriter, r *http.Request) {
	day, err := extractDateParam(r, "date")
	if err != nil {
		api.badRequestResponse(w, r, err.Error())
		return
	}

	if err := api.Runs.DeleteAllSpecialRunsForDay(r.Context(), day); err != nil {
		api.serviceErrorResponse(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
