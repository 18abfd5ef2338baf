package repository

import (
	"context"

	"gorm.io/gorm"

	"fleet-service/internal/model"
)

// FleetRepository stores the trucks, trailers, drivers and loads the ledger
// rows reference.
type FleetRepository struct {
	db *gorm.DB
}

func NewFleetRepository(db *gorm.DB) *FleetRepository {
	return &FleetRepository{db: db}
}

func (r *FleetRepository) ListTrucks(ctx context.Context) ([]model.Truck, error) {
	rows := make([]model.Truck, 0)
	err := r.db.WithContext(ctx).
		Raw(`SELECT id, unit_number, vin, year, make, model, engine, status, current_km
			FROM trucks
			ORDER BY id DESC`).
		Scan(&rows).Error
	return rows, err
}

func (r *FleetRepository) InsertTruck(ctx context.Context, t model.Truck) (int64, error) {
	var id int64
	err := r.db.WithContext(ctx).
		Raw(`INSERT INTO trucks (unit_number, vin, year, make, model, engine, status, current_km)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			RETURNING id`,
			t.UnitNumber, t.VIN, t.Year, t.Make, t.Model, t.Engine, t.Status, t.CurrentKm).
		Scan(&id).Error
	return id, err
}

func (r *FleetRepository) ListTrailers(ctx context.Context) ([]model.Trailer, error) {
	rows := make([]model.Trailer, 0)
	err := r.db.WithContext(ctx).
		Raw(`SELECT id, unit_number, vin, type, status, current_km
			FROM trailers
			ORDER BY id DESC`).
		Scan(&rows).Error
	return rows, err
}

func (r *FleetRepository) InsertTrailer(ctx context.Context, t model.Trailer) (int64, error) {
	var id int64
	err := r.db.WithContext(ctx).
		Raw(`INSERT INTO trailers (unit_number, vin, type, status, current_km)
			VALUES (?, ?, ?, ?, ?)
			RETURNING id`,
			t.UnitNumber, t.VIN, t.Type, t.Status, t.CurrentKm).
		Scan(&id).Error
	return id, err
}

func (r *FleetRepository) ListDrivers(ctx context.Context) ([]model.Driver, error) {
	rows := make([]model.Driver, 0)
	err := r.db.WithContext(ctx).
		Raw(`SELECT id, name, license, phone, pay_type, pay_rate, status
			FROM drivers
			ORDER BY id DESC`).
		Scan(&rows).Error
	return rows, err
}

func (r *FleetRepository) InsertDriver(ctx context.Context, d model.Driver) (int64, error) {
	var id int64
	err := r.db.WithContext(ctx).
		Raw(`INSERT INTO drivers (name, license, phone, pay_type, pay_rate, status)
			VALUES (?, ?, ?, ?, ?, ?)
			RETURNING id`,
			d.Name, d.License, d.Phone, d.PayType, d.PayRate, d.Status).
		Scan(&id).Error
	return id, err
}

func (r *FleetRepository) ListLoads(ctx context.Context) ([]model.Load, error) {
	rows := make([]model.Load, 0)
	err := r.db.WithContext(ctx).
		Raw(`SELECT id, reference, shipper, pickup_location, delivery_location, pickup_date, delivery_date,
				commodity, weight_kg, rate, currency, distance_km, status, truck_id, trailer_id, driver_id
			FROM loads
			ORDER BY id DESC`).
		Scan(&rows).Error
	return rows, err
}

func (r *FleetRepository) InsertLoad(ctx context.Context, l model.Load) (int64, error) {
	var id int64
	err := r.db.WithContext(ctx).
		Raw(`INSERT INTO loads (reference, shipper, pickup_location, delivery_location, pickup_date, delivery_date,
				commodity, weight_kg, rate, currency, distance_km, status, truck_id, trailer_id, driver_id)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			RETURNING id`,
			l.Reference, l.Shipper, l.PickupLocation, l.DeliveryLocation, l.PickupDate, l.DeliveryDate,
			l.Commodity, l.WeightKg, l.Rate, l.Currency, l.DistanceKm, l.Status, l.TruckID, l.TrailerID, l.DriverID).
		Scan(&id).Error
	return id, err
}
