package db

import (
	"fmt"

	"gorm.io/gorm"
)

// Timestamp columns are TEXT in "YYYY-MM-DD HH:MM:SS" form with the C
// collation, so BETWEEN filters on them compare bytewise.
var migrationStatements = []string{
	`CREATE TABLE IF NOT EXISTS trucks (
		id BIGSERIAL PRIMARY KEY,
		unit_number TEXT NOT NULL,
		vin TEXT,
		year INTEGER,
		make TEXT,
		model TEXT,
		engine TEXT,
		status TEXT DEFAULT 'active',
		current_km DOUBLE PRECISION DEFAULT 0,
		created_at TEXT COLLATE "C" DEFAULT to_char(now() AT TIME ZONE 'UTC', 'YYYY-MM-DD HH24:MI:SS')
	);`,
	`CREATE INDEX IF NOT EXISTS idx_trucks_unit ON trucks (unit_number);`,
	`CREATE TABLE IF NOT EXISTS trailers (
		id BIGSERIAL PRIMARY KEY,
		unit_number TEXT NOT NULL,
		vin TEXT,
		type TEXT NOT NULL,
		status TEXT DEFAULT 'active',
		current_km DOUBLE PRECISION DEFAULT 0,
		created_at TEXT COLLATE "C" DEFAULT to_char(now() AT TIME ZONE 'UTC', 'YYYY-MM-DD HH24:MI:SS')
	);`,
	`CREATE INDEX IF NOT EXISTS idx_trailers_unit ON trailers (unit_number);`,
	`CREATE INDEX IF NOT EXISTS idx_trailers_type ON trailers (type);`,
	`CREATE TABLE IF NOT EXISTS drivers (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		license TEXT,
		phone TEXT,
		pay_type TEXT,
		pay_rate DOUBLE PRECISION,
		status TEXT DEFAULT 'active',
		created_at TEXT COLLATE "C" DEFAULT to_char(now() AT TIME ZONE 'UTC', 'YYYY-MM-DD HH24:MI:SS')
	);`,
	`CREATE INDEX IF NOT EXISTS idx_drivers_name ON drivers (name);`,
	`CREATE INDEX IF NOT EXISTS idx_drivers_license ON drivers (license);`,
	`CREATE TABLE IF NOT EXISTS loads (
		id BIGSERIAL PRIMARY KEY,
		reference TEXT NOT NULL,
		shipper TEXT,
		pickup_location TEXT,
		delivery_location TEXT,
		pickup_date TEXT COLLATE "C",
		delivery_date TEXT COLLATE "C",
		commodity TEXT,
		weight_kg DOUBLE PRECISION,
		rate DOUBLE PRECISION,
		currency TEXT DEFAULT 'USD',
		distance_km DOUBLE PRECISION,
		status TEXT DEFAULT 'planned',
		truck_id BIGINT NOT NULL REFERENCES trucks (id),
		trailer_id BIGINT NOT NULL REFERENCES trailers (id),
		driver_id BIGINT NOT NULL REFERENCES drivers (id),
		created_at TEXT COLLATE "C" DEFAULT to_char(now() AT TIME ZONE 'UTC', 'YYYY-MM-DD HH24:MI:SS')
	);`,
	`CREATE INDEX IF NOT EXISTS idx_loads_ref ON loads (reference);`,
	`CREATE INDEX IF NOT EXISTS idx_loads_status ON loads (status);`,
	`CREATE INDEX IF NOT EXISTS idx_loads_truck ON loads (truck_id);`,
	`CREATE INDEX IF NOT EXISTS idx_loads_trailer ON loads (trailer_id);`,
	`CREATE INDEX IF NOT EXISTS idx_loads_driver ON loads (driver_id);`,
	`CREATE TABLE IF NOT EXISTS fuel_entries (
		id BIGSERIAL PRIMARY KEY,
		truck_id BIGINT NOT NULL REFERENCES trucks (id),
		load_id BIGINT REFERENCES loads (id),
		driver_id BIGINT REFERENCES drivers (id),
		liters DOUBLE PRECISION NOT NULL,
		total_cost DOUBLE PRECISION,
		currency TEXT DEFAULT 'USD',
		odometer_km DOUBLE PRECISION,
		location TEXT,
		fueled_at TEXT COLLATE "C" NOT NULL DEFAULT to_char(now() AT TIME ZONE 'UTC', 'YYYY-MM-DD HH24:MI:SS')
	);`,
	`CREATE INDEX IF NOT EXISTS idx_fuel_truck ON fuel_entries (truck_id);`,
	`CREATE INDEX IF NOT EXISTS idx_fuel_load ON fuel_entries (load_id);`,
	`CREATE INDEX IF NOT EXISTS idx_fuel_driver ON fuel_entries (driver_id);`,
	`CREATE INDEX IF NOT EXISTS idx_fuel_date ON fuel_entries (fueled_at);`,
	`CREATE TABLE IF NOT EXISTS km_logs (
		id BIGSERIAL PRIMARY KEY,
		truck_id BIGINT NOT NULL REFERENCES trucks (id),
		load_id BIGINT REFERENCES loads (id),
		km DOUBLE PRECISION NOT NULL,
		odometer_start DOUBLE PRECISION,
		odometer_end DOUBLE PRECISION,
		logged_at TEXT COLLATE "C" NOT NULL DEFAULT to_char(now() AT TIME ZONE 'UTC', 'YYYY-MM-DD HH24:MI:SS')
	);`,
	`CREATE INDEX IF NOT EXISTS idx_km_truck ON km_logs (truck_id);`,
	`CREATE INDEX IF NOT EXISTS idx_km_load ON km_logs (load_id);`,
	`CREATE INDEX IF NOT EXISTS idx_km_date ON km_logs (logged_at);`,
	`CREATE TABLE IF NOT EXISTS driver_payments (
		id BIGSERIAL PRIMARY KEY,
		driver_id BIGINT NOT NULL REFERENCES drivers (id),
		load_id BIGINT REFERENCES loads (id),
		amount DOUBLE PRECISION NOT NULL,
		currency TEXT DEFAULT 'USD',
		method TEXT,
		notes TEXT,
		paid_at TEXT COLLATE "C" NOT NULL DEFAULT to_char(now() AT TIME ZONE 'UTC', 'YYYY-MM-DD HH24:MI:SS')
	);`,
	`CREATE INDEX IF NOT EXISTS idx_pay_driver ON driver_payments (driver_id);`,
	`CREATE INDEX IF NOT EXISTS idx_pay_load ON driver_payments (load_id);`,
	`CREATE INDEX IF NOT EXISTS idx_pay_date ON driver_payments (paid_at);`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
