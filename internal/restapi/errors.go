package restapi

import (
	"errors"
	"net/http"

	"citybus.urbantransit.org/internal/logging"
	"citybus.urbantransit.org/internal/service"
)

type errorBody struct {
	Error string `json:"error"`
}

func (api *RestAPI) badRequestResponse(w http.ResponseWriter, r *http.Request, msg string) {
	api.sendJSON(w, r, http.StatusBadRequest, errorBody{Error: msg})
}

func (api *RestAPI) notFoundResponse(w http.ResponseWriter, r *http.Request, msg string) {
	api.sendJSON(w, r, http.StatusNotFound, errorBody{Error: msg})
}

func (api *RestAPI) conflictResponse(w http.ResponseWriter, r *http.Request, msg string) {
	api.sendJSON(w, r, http.StatusConflict, errorBody{Error: msg})
}

func (api *RestAPI) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	logger := logging.FromContext(r.Context())
	logger.Error("internal server error", "error", err, "method", r.Method, "path", r.URL.Path)
	api.sendJSON(w, r, http.StatusInternalServerError, errorBody{Error: "internal server error"})
}

// serviceErrorResponse maps the service error taxonomy onto HTTP statuses:
// validation → 400, unresolved id → 404, referential guard → 409, anything
// else → 500.
func (api *RestAPI) serviceErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		api.badRequestResponse(w, r, validationErr.Msg)
		return
	}
	var notFoundErr *service.NotFoundError
	if errors.As(err, &notFoundErr) {
		api.notFoundResponse(w, r, notFoundErr.Error())
		return
	}
	var conflictErr *service.ConflictError
	if errors.As(err, &conflictErr) {
		api.conflictResponse(w, r, conflictErr.Msg)
		return
	}
	api.serverErrorResponse(w, r, err)
}
