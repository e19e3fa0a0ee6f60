package importer

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"citybus.urbantransit.org/internal/metrics"
	"citybus.urbantransit.org/internal/models"
	"citybus.urbantransit.org/internal/transitdb"
)

// scheduleFile maps external route ids to their offset list and run
// generation parameters.
type scheduleFile struct {
	Routes map[string]scheduleRoute `json:"routes"`
}

type scheduleRoute struct {
	Stops            []scheduleStop `json:"stops"`
	OperatingHours   string         `json:"operating_hours"`
	FrequencyMinutes *int           `json:"frequency_minutes"`
	To               string         `json:"to"`
}

type scheduleStop struct {
	ID             int64 `json:"id"`
	ArrivalMinutes *int  `json:"arrival_time_from_start_minutes"`
}

// ScheduleStats summarizes one schedule import.
type ScheduleStats struct {
	OffsetsWritten int
	OffsetsSkipped int
	RunsCreated    int
	RoutesSkipped  int
}

// ImportSchedule upserts cumulative offsets and derives the initial REGULAR
// runs from operating hours and frequency. Unlike the topology stage's stop
// handling, offsets may update existing rows. Run generation is skipped
// entirely for routes that already have REGULAR runs.
func (p *Pipeline) ImportSchedule(ctx context.Context, r io.Reader) (ScheduleStats, error) {
	var file scheduleFile
	if err := json.NewDecoder(r).Decode(&file); err != nil {
		return ScheduleStats{}, fmt.Errorf("error decoding schedule dataset: %w", err)
	}
	if len(file.Routes) == 0 {
		p.logger.Warn("no routes found in schedule dataset")
		return ScheduleStats{}, nil
	}

	var stats ScheduleStats
	err := p.store.WithTx(ctx, func(q *transitdb.Queries) error {
		for key, entry := range file.Routes {
			routeOSMID, err := strconv.ParseInt(key, 10, 64)
			if err != nil {
				p.logger.Warn("skipping schedule route with non-numeric key", slog.String("key", key))
				stats.RoutesSkipped++
				continue
			}

			route, err := q.GetRouteByOSMID(ctx, routeOSMID)
			if errors.Is(err, sql.ErrNoRows) {
				p.logger.Warn("schedule route not present in store, skipping",
					slog.Int64("route_osm_id", routeOSMID))
				stats.RoutesSkipped++
				continue
			}
			if err != nil {
				return err
			}

			if err := p.importOffsets(ctx, q, route, routeOSMID, entry.Stops, &stats); err != nil {
				return err
			}
			if err := p.generateRuns(ctx, q, route, routeOSMID, entry, &stats); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return ScheduleStats{}, err
	}
	return stats, nil
}

func (p *Pipeline) importOffsets(ctx context.Context, q *transitdb.Queries, route models.Route, routeOSMID int64, stops []scheduleStop, stats *ScheduleStats) error {
	for _, entry := range stops {
		if entry.ArrivalMinutes == nil {
			p.logger.Warn("schedule stop missing arrival minutes, skipping offset",
				slog.Int64("route_osm_id", routeOSMID),
				slog.Int64("stop_osm_id", entry.ID))
			stats.OffsetsSkipped++
			metrics.ImportRecordsTotal.WithLabelValues("offset", "skipped").Inc()
			continue
		}

		stop, err := q.GetStopByOSMID(ctx, entry.ID)
		if errors.Is(err, sql.ErrNoRows) {
			p.logger.Warn("schedule stop not present in store, skipping offset",
				slog.Int64("route_osm_id", routeOSMID),
				slog.Int64("stop_osm_id", entry.ID))
			stats.OffsetsSkipped++
			metrics.ImportRecordsTotal.WithLabelValues("offset", "skipped").Inc()
			continue
		}
		if err != nil {
			return err
		}

		err = q.UpsertOffset(ctx, models.RouteStopOffset{
			RouteID:           route.ID,
			StopID:            stop.ID,
			CumulativeMinutes: *entry.ArrivalMinutes,
		})
		if err != nil {
			return err
		}
		stats.OffsetsWritten++
		metrics.ImportRecordsTotal.WithLabelValues("offset", "imported").Inc()
	}
	return nil
}

// generateRuns derives the route's weekly pattern: one REGULAR run at every
// frequency step from the start to the end of the operating window, for each
// of the seven weekdays, numbered 1..N in chronological order.
func (p *Pipeline) generateRuns(ctx context.Context, q *transitdb.Queries, route models.Route, routeOSMID int64, entry scheduleRoute, stats *ScheduleStats) error {
	if entry.OperatingHours == "" || entry.FrequencyMinutes == nil {
		p.logger.Warn("schedule route missing operating hours or frequency, skipping run generation",
			slog.Int64("route_osm_id", routeOSMID))
		stats.RoutesSkipped++
		return nil
	}

	start, end, err := parseOperatingHours(entry.OperatingHours)
	if err != nil {
		p.logger.Warn("could not parse operating hours, skipping run generation",
			slog.Int64("route_osm_id", routeOSMID),
			slog.String("operating_hours", entry.OperatingHours),
			slog.String("error", err.Error()))
		stats.RoutesSkipped++
		return nil
	}
	frequency := *entry.FrequencyMinutes
	if frequency <= 0 {
		p.logger.Warn("non-positive frequency, skipping run generation",
			slog.Int64("route_osm_id", routeOSMID),
			slog.Int("frequency_minutes", frequency))
		stats.RoutesSkipped++
		return nil
	}

	hasRegular, err := q.RouteHasRegularRuns(ctx, route.ID)
	if err != nil {
		return err
	}
	if hasRegular {
		p.logger.Info("route already has regular runs, skipping run generation",
			slog.Int64("route_osm_id", routeOSMID))
		return nil
	}

	for day := 1; day <= 7; day++ {
		runNum := 0
		for minute := int(start); minute <= int(end); minute += frequency {
			runNum++
			startTime := models.TimeOfDay(minute)

			exists, err := q.RegularRunExists(ctx, route.ID, day, startTime)
			if err != nil {
				return err
			}
			if exists {
				continue
			}

			dayOfWeek := day
			_, err = q.CreateRun(ctx, models.Run{
				RouteID:             route.ID,
				DestinationStopName: entry.To,
				ScheduleType:        models.ScheduleTypeRegular,
				DayOfWeek:           &dayOfWeek,
				RunNum:              runNum,
				StartTime:           startTime,
			})
			if err != nil {
				return err
			}
			stats.RunsCreated++
			metrics.ImportRecordsTotal.WithLabelValues("run", "imported").Inc()
		}
	}
	return nil
}

// parseOperatingHours splits "HH:MM-HH:MM" into the window's start and end.
func parseOperatingHours(s string) (models.TimeOfDay, models.TimeOfDay, error) {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("operating hours %q are not in HH:MM-HH:MM form", s)
	}
	start, err := models.ParseTimeOfDay(parts[0])
	if err != nil {
		return 0, 0, err
	}
	end, err := models.ParseTimeOfDay(parts[1])
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}
