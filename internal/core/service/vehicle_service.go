package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/rentaride/client-go/internal/core/ports"
)

var errEmptyVehicleID = errors.New("vehicle id required")

// VehicleService fronts the catalog endpoints for the browsing and admin
// views. The backend owns all catalog rules; this layer bounds inputs and
// keeps the views free of transport concerns.
type VehicleService struct {
	api ports.VehicleAPI
	log zerolog.Logger
}

func NewVehicleService(api ports.VehicleAPI, log zerolog.Logger) *VehicleService {
	return &VehicleService{api: api, log: log}
}

// List returns a catalog page. Page and limit are normalized so the views
// can pass zero values.
func (s *VehicleService) List(ctx context.Context, filter ports.VehicleFilter) ([]ports.Vehicle, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}
	return s.api.ListVehicles(ctx, filter)
}

// Get returns one vehicle by id.
func (s *VehicleService) Get(ctx context.Context, id string) (*ports.Vehicle, error) {
	if id == "" {
		return nil, errEmptyVehicleID
	}
	return s.api.GetVehicle(ctx, id)
}

// Available returns vehicles free for the whole date range.
func (s *VehicleService) Available(ctx context.Context, from, to time.Time) ([]ports.Vehicle, error) {
	if !to.After(from) {
		return nil, errors.New("availability range must end after it starts")
	}
	return s.api.AvailableVehicles(ctx, from, to)
}

// Create adds a vehicle (admin view).
func (s *VehicleService) Create(ctx context.Context, in ports.VehicleInput) (*ports.Vehicle, error) {
	v, err := s.api.CreateVehicle(ctx, in)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("vehicle_id", v.ID).Str("model", v.Make+" "+v.Model).Msg("vehicle created")
	return v, nil
}

// Update replaces a vehicle's listing (admin view).
func (s *VehicleService) Update(ctx context.Context, id string, in ports.VehicleInput) (*ports.Vehicle, error) {
	if id == "" {
		return nil, errEmptyVehicleID
	}
	return s.api.UpdateVehicle(ctx, id, in)
}

// Delete removes a vehicle from the catalog (admin view).
func (s *VehicleService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return errEmptyVehicleID
	}
	return s.api.DeleteVehicle(ctx, id)
}
