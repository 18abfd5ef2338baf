package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"fleet-service/internal/model"
	"fleet-service/internal/repository"
)

// ErrCreateFailed is an insert failure on a table without foreign keys.
var ErrCreateFailed = errors.New("db create failed")

type FleetService struct {
	fleet *repository.FleetRepository
}

func NewFleetService(fleet *repository.FleetRepository) *FleetService {
	return &FleetService{fleet: fleet}
}

func (s *FleetService) ListTrucks(ctx context.Context) ([]model.Truck, error) {
	rows, err := s.fleet.ListTrucks(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: trucks: %w", ErrQueryFailed, err)
	}
	return rows, nil
}

func (s *FleetService) CreateTruck(ctx context.Context, in model.NewTruck) (int64, error) {
	unit := strings.TrimSpace(in.UnitNumber)
	if unit == "" {
		return 0, &InputError{Reason: "unit_number_required"}
	}
	if in.CurrentKm != nil && *in.CurrentKm < 0 {
		return 0, &InputError{Reason: "current_km_must_not_be_negative"}
	}

	id, err := s.fleet.InsertTruck(ctx, model.Truck{
		UnitNumber: unit,
		VIN:        in.VIN,
		Year:       in.Year,
		Make:       in.Make,
		Model:      in.Model,
		Engine:     in.Engine,
		Status:     orDefault(in.Status, model.StatusActive),
		CurrentKm:  valueOrZero(in.CurrentKm),
	})
	if err != nil {
		return 0, fmt.Errorf("%w: truck: %w", ErrCreateFailed, err)
	}
	return id, nil
}

func (s *FleetService) ListTrailers(ctx context.Context) ([]model.Trailer, error) {
	rows, err := s.fleet.ListTrailers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: trailers: %w", ErrQueryFailed, err)
	}
	return rows, nil
}

func (s *FleetService) CreateTrailer(ctx context.Context, in model.NewTrailer) (int64, error) {
	unit := strings.TrimSpace(in.UnitNumber)
	if unit == "" {
		return 0, &InputError{Reason: "unit_number_required"}
	}
	if !slices.Contains(model.TrailerTypes, in.Type) {
		return 0, &InputError{Reason: "type_required_reefer_dry_van_flatbed"}
	}
	if in.CurrentKm != nil && *in.CurrentKm < 0 {
		return 0, &InputError{Reason: "current_km_must_not_be_negative"}
	}

	id, err := s.fleet.InsertTrailer(ctx, model.Trailer{
		UnitNumber: unit,
		VIN:        in.VIN,
		Type:       in.Type,
		Status:     orDefault(in.Status, model.StatusActive),
		CurrentKm:  valueOrZero(in.CurrentKm),
	})
	if err != nil {
		return 0, fmt.Errorf("%w: trailer: %w", ErrCreateFailed, err)
	}
	return id, nil
}

func (s *FleetService) ListDrivers(ctx context.Context) ([]model.Driver, error) {
	rows, err := s.fleet.ListDrivers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: drivers: %w", ErrQueryFailed, err)
	}
	return rows, nil
}

func (s *FleetService) CreateDriver(ctx context.Context, in model.NewDriver) (int64, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return 0, &InputError{Reason: "name_required"}
	}
	if in.PayType != nil && !slices.Contains(model.PayTypes, *in.PayType) {
		return 0, &InputError{Reason: "pay_type_invalid_per_km_percent_salary"}
	}

	id, err := s.fleet.InsertDriver(ctx, model.Driver{
		Name:    name,
		License: in.License,
		Phone:   in.Phone,
		PayType: in.PayType,
		PayRate: in.PayRate,
		Status:  orDefault(in.Status, model.StatusActive),
	})
	if err != nil {
		return 0, fmt.Errorf("%w: driver: %w", ErrCreateFailed, err)
	}
	return id, nil
}

func (s *FleetService) ListLoads(ctx context.Context) ([]model.Load, error) {
	rows, err := s.fleet.ListLoads(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: loads: %w", ErrQueryFailed, err)
	}
	return rows, nil
}

// CreateLoad inserts a load. The referenced truck, trailer and driver must
// exist, otherwise the insert fails with ErrInsertFailed.
func (s *FleetService) CreateLoad(ctx context.Context, in model.NewLoad) (int64, error) {
	reference := strings.TrimSpace(in.Reference)
	if reference == "" {
		return 0, &InputError{Reason: "reference_required"}
	}
	if in.TruckID == nil || in.TrailerID == nil || in.DriverID == nil {
		return 0, &InputError{Reason: "truck_id_trailer_id_driver_id_required"}
	}
	status := orDefault(in.Status, model.StatusPlanned)
	if !slices.Contains(model.LoadStatuses, status) {
		return 0, &InputError{Reason: "status_invalid_planned_in_transit_delivered_cancelled"}
	}

	id, err := s.fleet.InsertLoad(ctx, model.Load{
		Reference:        reference,
		Shipper:          in.Shipper,
		PickupLocation:   in.PickupLocation,
		DeliveryLocation: in.DeliveryLocation,
		PickupDate:       in.PickupDate,
		DeliveryDate:     in.DeliveryDate,
		Commodity:        in.Commodity,
		WeightKg:         in.WeightKg,
		Rate:             in.Rate,
		Currency:         currencyOrDefault(in.Currency),
		DistanceKm:       in.DistanceKm,
		Status:           status,
		TruckID:          *in.TruckID,
		TrailerID:        *in.TrailerID,
		DriverID:         *in.DriverID,
	})
	if err != nil {
		return 0, fmt.Errorf("%w: load: %w", ErrInsertFailed, err)
	}
	return id, nil
}

func orDefault(s, def string) string {
	if s = strings.TrimSpace(s); s == "" {
		return def
	}
	return s
}

func valueOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
