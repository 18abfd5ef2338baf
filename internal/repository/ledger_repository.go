package repository

import (
	"context"

	"gorm.io/gorm"

	"fleet-service/internal/model"
)

type LedgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

func (r *LedgerRepository) ListFuelEntries(ctx context.Context) ([]model.FuelEntry, error) {
	rows := make([]model.FuelEntry, 0)
	err := r.db.WithContext(ctx).
		Raw(`SELECT id, truck_id, load_id, driver_id, liters, total_cost, currency, odometer_km, location, fueled_at
			FROM fuel_entries
			ORDER BY id DESC`).
		Scan(&rows).Error
	return rows, err
}

func (r *LedgerRepository) InsertFuelEntry(ctx context.Context, e model.FuelEntry) (int64, error) {
	var id int64
	err := r.db.WithContext(ctx).
		Raw(`INSERT INTO fuel_entries (truck_id, load_id, driver_id, liters, total_cost, currency, odometer_km, location, fueled_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			RETURNING id`,
			e.TruckID, e.LoadID, e.DriverID, e.Liters, e.TotalCost, e.Currency, e.OdometerKm, e.Location, e.FueledAt).
		Scan(&id).Error
	return id, err
}

func (r *LedgerRepository) ListKmLogs(ctx context.Context) ([]model.KmLog, error) {
	rows := make([]model.KmLog, 0)
	err := r.db.WithContext(ctx).
		Raw(`SELECT id, truck_id, load_id, km, odometer_start, odometer_end, logged_at
			FROM km_logs
			ORDER BY id DESC`).
		Scan(&rows).Error
	return rows, err
}

func (r *LedgerRepository) InsertKmLog(ctx context.Context, l model.KmLog) (int64, error) {
	var id int64
	err := r.db.WithContext(ctx).
		Raw(`INSERT INTO km_logs (truck_id, load_id, km, odometer_start, odometer_end, logged_at)
			VALUES (?, ?, ?, ?, ?, ?)
			RETURNING id`,
			l.TruckID, l.LoadID, l.Km, l.OdometerStart, l.OdometerEnd, l.LoggedAt).
		Scan(&id).Error
	return id, err
}

func (r *LedgerRepository) ListDriverPayments(ctx context.Context) ([]model.DriverPayment, error) {
	rows := make([]model.DriverPayment, 0)
	err := r.db.WithContext(ctx).
		Raw(`SELECT id, driver_id, load_id, amount, currency, method, notes, paid_at
			FROM driver_payments
			ORDER BY id DESC`).
		Scan(&rows).Error
	return rows, err
}

func (r *LedgerRepository) InsertDriverPayment(ctx context.Context, p model.DriverPayment) (int64, error) {
	var id int64
	err := r.db.WithContext(ctx).
		Raw(`INSERT INTO driver_payments (driver_id, load_id, amount, currency, method, notes, paid_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			RETURNING id`,
			p.DriverID, p.LoadID, p.Amount, p.Currency, p.Method, p.Notes, p.PaidAt).
		Scan(&id).Error
	return id, err
}
