package app

import (
	"log/slog"

	"citybus.urbantransit.org/internal/appconf"
	"citybus.urbantransit.org/internal/service"
	"citybus.urbantransit.org/internal/transitdb"
)

// Application holds the dependencies for our HTTP handlers, helpers and
// middleware: configuration, the logger, the store client and the three
// domain services built on top of it.
type Application struct {
	Config appconf.Config
	Logger *slog.Logger
	Store  *transitdb.Client
	Routes *service.RouteService
	Stops  *service.StopService
	Runs   *service.RunService
}

// NewApplication wires the services over an initialized store.
func NewApplication(cfg appconf.Config, logger *slog.Logger, store *transitdb.Client) *Application {
	return &Application{
		Config: cfg,
		Logger: logger,
		Store:  store,
		Routes: service.NewRouteService(store, logger),
		Stops:  service.NewStopService(store, logger),
		Runs:   service.NewRunService(store, logger),
	}
}
