// Package restapi exposes the route, stop and run services over HTTP.
package restapi

import (
	"github.com/go-playground/validator/v10"

	"citybus.urbantransit.org/internal/app"
)

type RestAPI struct {
	*app.Application
	validate *validator.Validate
}

// NewRestAPI creates a new RestAPI instance with an initialized request
// validator.
func NewRestAPI(application *app.Application) *RestAPI {
	return &RestAPI{
		Application: application,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
	}
}
