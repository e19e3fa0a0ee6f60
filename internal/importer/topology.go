package importer

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"citybus.urbantransit.org/internal/metrics"
	"citybus.urbantransit.org/internal/models"
	"citybus.urbantransit.org/internal/transitdb"
)

// osmElement is one entry of the topology dataset: a node (a candidate stop)
// or a relation (a candidate bus route with ordered member nodes).
type osmElement struct {
	Type    string            `json:"type"`
	ID      int64             `json:"id"`
	Lat     float64           `json:"lat"`
	Lon     float64           `json:"lon"`
	Tags    map[string]string `json:"tags"`
	Members []osmMember       `json:"members"`
}

type osmMember struct {
	Type string `json:"type"`
	Ref  int64  `json:"ref"`
	Role string `json:"role"`
}

type osmFile struct {
	Elements []osmElement `json:"elements"`
}

// TopologyStats summarizes one topology import.
type TopologyStats struct {
	StopsCreated      int
	StopsExisting     int
	RoutesCreated     int
	RoutesExisting    int
	RouteStopsCreated int
	MembersSkipped    int
}

// ImportTopology upserts stops from nodes and creates routes with ordered
// topology rows from bus relations. Existing stops are never overwritten and
// relations already imported (matched by external id) are left untouched.
// No offsets are created here; that is the schedule stage's job.
func (p *Pipeline) ImportTopology(ctx context.Context, r io.Reader) (TopologyStats, error) {
	var file osmFile
	if err := json.NewDecoder(r).Decode(&file); err != nil {
		return TopologyStats{}, fmt.Errorf("error decoding topology dataset: %w", err)
	}
	if len(file.Elements) == 0 {
		p.logger.Warn("no elements found in topology dataset")
		return TopologyStats{}, nil
	}

	var stats TopologyStats
	err := p.store.WithTx(ctx, func(q *transitdb.Queries) error {
		// Stop ids by external id, for resolving relation members.
		stopIDByOSMID := make(map[int64]int64)

		for _, el := range file.Elements {
			if el.Type != "node" {
				continue
			}
			stopID, created, err := p.upsertStop(ctx, q, el)
			if err != nil {
				return err
			}
			stopIDByOSMID[el.ID] = stopID
			if created {
				stats.StopsCreated++
				metrics.ImportRecordsTotal.WithLabelValues("stop", "imported").Inc()
			} else {
				stats.StopsExisting++
				metrics.ImportRecordsTotal.WithLabelValues("stop", "unchanged").Inc()
			}
		}

		for _, el := range file.Elements {
			if el.Type != "relation" || el.Tags["route"] != "bus" {
				continue
			}
			if err := p.importRelation(ctx, q, el, stopIDByOSMID, &stats); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return TopologyStats{}, err
	}
	return stats, nil
}

// upsertStop creates the stop for a node unless one with the same external id
// already exists. Import never overwrites an existing stop.
func (p *Pipeline) upsertStop(ctx context.Context, q *transitdb.Queries, el osmElement) (int64, bool, error) {
	existing, err := q.GetStopByOSMID(ctx, el.ID)
	if err == nil {
		return existing.ID, false, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, false, err
	}

	name := el.Tags["name"]
	if name == "" {
		name = fmt.Sprintf("stop-%d", el.ID)
	}
	osmID := el.ID
	stop := models.Stop{
		OSMID: &osmID,
		Name:  name,
		Lat:   el.Lat,
		Lon:   el.Lon,
	}
	if address := el.Tags["addr:full"]; address != "" {
		stop.Address = &address
	}

	id, err := q.CreateStop(ctx, stop)
	if err != nil {
		return 0, false, err
	}
	return id, true, nil
}

func (p *Pipeline) importRelation(ctx context.Context, q *transitdb.Queries, el osmElement, stopIDByOSMID map[int64]int64, stats *TopologyStats) error {
	_, err := q.GetRouteByOSMID(ctx, el.ID)
	if err == nil {
		stats.RoutesExisting++
		metrics.ImportRecordsTotal.WithLabelValues("route", "unchanged").Inc()
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	name := el.Tags["name"]
	if name == "" {
		name = fmt.Sprintf("route-%d", el.ID)
	}
	num := el.Tags["ref"]
	if num == "" {
		num = el.Tags["name"]
	}
	if num == "" {
		num = "unknown"
	}

	osmID := el.ID
	routeID, err := q.CreateRoute(ctx, models.Route{
		OSMID:       &osmID,
		Name:        name,
		Num:         num,
		Description: descriptionFromTags(el.Tags),
		Status:      models.RouteStatusActive,
	})
	if err != nil {
		return err
	}
	stats.RoutesCreated++
	metrics.ImportRecordsTotal.WithLabelValues("route", "imported").Inc()

	order := 0
	seen := make(map[int64]struct{})
	for _, member := range el.Members {
		if member.Type != "node" {
			continue
		}
		stopID, ok := stopIDByOSMID[member.Ref]
		if !ok {
			p.logger.Warn("relation member node not found among elements, skipping",
				slog.Int64("relation_osm_id", el.ID),
				slog.Int64("member_osm_id", member.Ref))
			stats.MembersSkipped++
			metrics.ImportRecordsTotal.WithLabelValues("route_stop", "skipped").Inc()
			continue
		}
		if _, dup := seen[stopID]; dup {
			// A stop can appear once per route; loop relations list it twice.
			p.logger.Warn("relation member repeats a stop, skipping",
				slog.Int64("relation_osm_id", el.ID),
				slog.Int64("member_osm_id", member.Ref))
			stats.MembersSkipped++
			metrics.ImportRecordsTotal.WithLabelValues("route_stop", "skipped").Inc()
			continue
		}
		seen[stopID] = struct{}{}
		order++
		err := q.InsertRouteStop(ctx, models.RouteStop{
			RouteID:   routeID,
			StopID:    stopID,
			StopOrder: order,
		})
		if err != nil {
			return err
		}
		stats.RouteStopsCreated++
		metrics.ImportRecordsTotal.WithLabelValues("route_stop", "imported").Inc()
	}
	return nil
}

// descriptionFromTags builds "From X to Y" from the relation's from/to tags,
// falling back to its description tag.
func descriptionFromTags(tags map[string]string) string {
	from, to := tags["from"], tags["to"]
	switch {
	case from != "" && to != "":
		return fmt.Sprintf("From %s to %s", from, to)
	case from != "":
		return fmt.Sprintf("From %s", from)
	case to != "":
		return to
	}
	return tags["description"]
}
