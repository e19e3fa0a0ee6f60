package service

import (
	"context"
	"log/slog"

	"citybus.urbantransit.org/internal/models"
	"citybus.urbantransit.org/internal/transitdb"
)

// StopService owns stop CRUD. Stops are shared between routes and never own
// topology rows, so deletion is guarded by a reference check.
type StopService struct {
	store  *transitdb.Client
	logger *slog.Logger
}

func NewStopService(store *transitdb.Client, logger *slog.Logger) *StopService {
	return &StopService{store: store, logger: logger}
}

// StopInput carries the mutable fields of a stop.
type StopInput struct {
	Name    string
	Lat     float64
	Lon     float64
	Address *string
}

func validateStopInput(input StopInput) error {
	if input.Name == "" {
		return validationErrorf("stop name must not be empty")
	}
	if input.Lat < -90 || input.Lat > 90 {
		return validationErrorf("latitude must be between -90 and 90")
	}
	if input.Lon < -180 || input.Lon > 180 {
		return validationErrorf("longitude must be between -180 and 180")
	}
	return nil
}

func (s *StopService) CreateStop(ctx context.Context, input StopInput) (models.Stop, error) {
	if err := validateStopInput(input); err != nil {
		return models.Stop{}, err
	}

	stop := models.Stop{
		Name:    input.Name,
		Lat:     input.Lat,
		Lon:     input.Lon,
		Address: input.Address,
	}
	id, err := s.store.Queries.CreateStop(ctx, stop)
	if err != nil {
		return models.Stop{}, err
	}
	stop.ID = id
	return stop, nil
}

func (s *StopService) UpdateStop(ctx context.Context, id int64, input StopInput) (models.Stop, error) {
	if err := validateStopInput(input); err != nil {
		return models.Stop{}, err
	}

	var updated models.Stop
	err := s.store.WithTx(ctx, func(q *transitdb.Queries) error {
		existing, err := q.GetStop(ctx, id)
		if err != nil {
			return asNotFound(err, "stop", id)
		}

		existing.Name = input.Name
		existing.Lat = input.Lat
		existing.Lon = input.Lon
		existing.Address = input.Address
		if err := q.UpdateStop(ctx, existing); err != nil {
			return asNotFound(err, "stop", id)
		}
		updated = existing
		return nil
	})
	return updated, err
}

func (s *StopService) GetStopByID(ctx context.Context, id int64) (models.Stop, error) {
	stop, err := s.store.Queries.GetStop(ctx, id)
	if err != nil {
		return models.Stop{}, asNotFound(err, "stop", id)
	}
	return stop, nil
}

func (s *StopService) GetAllStops(ctx context.Context) ([]models.Stop, error) {
	return s.store.Queries.ListStops(ctx)
}

// DeleteStop removes a stop unless a route still references it, through its
// topology or through an offset row.
func (s *StopService) DeleteStop(ctx context.Context, id int64) error {
	return s.store.WithTx(ctx, func(q *transitdb.Queries) error {
		if _, err := q.GetStop(ctx, id); err != nil {
			return asNotFound(err, "stop", id)
		}

		refs, err := q.CountRoutesReferencingStop(ctx, id)
		if err != nil {
			return err
		}
		offsetRefs, err := q.CountOffsetsReferencingStop(ctx, id)
		if err != nil {
			return err
		}
		if refs+offsetRefs > 0 {
			return &ConflictError{Msg: "cannot delete stop because it is used by one or more routes"}
		}

		return q.DeleteStop(ctx, id)
	})
}
