package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"citybus.urbantransit.org/internal/app"
	"citybus.urbantransit.org/internal/appconf"
	"citybus.urbantransit.org/internal/importer"
	"citybus.urbantransit.org/internal/logging"
	"citybus.urbantransit.org/internal/restapi"
	"citybus.urbantransit.org/internal/transitdb"
)

func main() {
	// A missing .env file is fine; real deployments set the environment
	// directly.
	_ = godotenv.Load()

	var (
		configPath   = flag.String("config", "", "Path to a YAML config file")
		port         = flag.Int("port", 0, "API server port")
		env          = flag.String("env", "", "Environment (development|test|production)")
		dbPath       = flag.String("db", "", "Path to the SQLite database file")
		osmFile      = flag.String("osm-file", "", "Path to the topology dataset (OSM JSON)")
		scheduleFile = flag.String("schedule-file", "", "Path to the schedule dataset (JSON)")
	)
	flag.Parse()

	cfg, err := appconf.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *port != 0 {
		cfg.Port = *port
	}
	if *env != "" {
		cfg.EnvName = *env
		cfg.Env = appconf.EnvFlagToEnvironment(*env)
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}
	if *osmFile != "" {
		cfg.OSMFile = *osmFile
	}
	if *scheduleFile != "" {
		cfg.ScheduleFile = *scheduleFile
	}

	logger := logging.NewStructuredLogger(os.Stdout, cfg.SlogLevel())

	store, err := transitdb.NewClient(transitdb.NewConfig(cfg.DBPath, logger))
	if err != nil {
		logger.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer store.Close() // nolint:errcheck

	pipeline := importer.New(store, logger)
	if err := pipeline.Run(context.Background(), cfg.OSMFile, cfg.ScheduleFile); err != nil {
		logger.Error("startup import failed", "error", err)
		os.Exit(1)
	}

	application := app.NewApplication(cfg, logger, store)
	api := restapi.NewRestAPI(application)

	mux := http.NewServeMux()
	api.SetRoutes(mux)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      api.RequestLoggingMiddleware(mux),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	logger.Info("starting server", "addr", srv.Addr, "env", cfg.EnvName)
	err = srv.ListenAndServe()
	logger.Error(err.Error())
	os.Exit(1)
}
