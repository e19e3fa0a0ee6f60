// Package importer ingests the external topology and schedule datasets at
// startup, before the service accepts traffic. Both stages are idempotent:
// every creation path is guarded by an existence check on the record's
// natural key, and per-record anomalies are logged and skipped rather than
// aborting the pipeline.
package importer

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"citybus.urbantransit.org/internal/logging"
	"citybus.urbantransit.org/internal/transitdb"
)

// Pipeline runs the two import stages against the store.
type Pipeline struct {
	store  *transitdb.Client
	logger *slog.Logger
}

func New(store *transitdb.Client, logger *slog.Logger) *Pipeline {
	return &Pipeline{store: store, logger: logger}
}

// Run executes the topology stage then the schedule stage. An empty path
// skips that stage.
func (p *Pipeline) Run(ctx context.Context, osmPath, schedulePath string) error {
	if osmPath == "" {
		p.logger.Info("topology import skipped, no dataset configured")
	} else {
		f, err := os.Open(osmPath)
		if err != nil {
			return fmt.Errorf("error opening topology dataset: %w", err)
		}
		stats, err := p.ImportTopology(ctx, f)
		logging.SafeCloseWithLogging(f, p.logger, "topology_dataset")
		if err != nil {
			return fmt.Errorf("topology import failed: %w", err)
		}
		logging.LogOperation(p.logger, "topology_import_finished",
			slog.Int("stops_created", stats.StopsCreated),
			slog.Int("routes_created", stats.RoutesCreated),
			slog.Int("route_stops_created", stats.RouteStopsCreated),
			slog.Int("members_skipped", stats.MembersSkipped))
	}

	if schedulePath == "" {
		p.logger.Info("schedule import skipped, no dataset configured")
		return nil
	}
	f, err := os.Open(schedulePath)
	if err != nil {
		return fmt.Errorf("error opening schedule dataset: %w", err)
	}
	stats, err := p.ImportSchedule(ctx, f)
	logging.SafeCloseWithLogging(f, p.logger, "schedule_dataset")
	if err != nil {
		return fmt.Errorf("schedule import failed: %w", err)
	}
	logging.LogOperation(p.logger, "schedule_import_finished",
		slog.Int("offsets_written", stats.OffsetsWritten),
		slog.Int("runs_created", stats.RunsCreated),
		slog.Int("routes_skipped", stats.RoutesSkipped))
	return nil
}
