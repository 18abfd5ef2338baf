package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"fleet-service/internal/model"
)

func TestInsertLoadBindsForeignKeysLast(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewFleetRepository(db)

	rate := 1800.0
	mock.ExpectQuery(`INSERT INTO loads \(reference, .* truck_id, trailer_id, driver_id\) VALUES \(\$1, .*\$15\) RETURNING id`).
		WithArgs("L-42", nil, nil, nil, nil, nil, nil, nil, rate, "EUR", nil, "planned", int64(1), int64(2), int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(9)))

	id, err := repo.InsertLoad(context.Background(), model.Load{
		Reference: "L-42",
		Rate:      &rate,
		Currency:  "EUR",
		Status:    "planned",
		TruckID:   1,
		TrailerID: 2,
		DriverID:  3,
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if id != 9 {
		t.Fatalf("id = %d, want 9", id)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestListTrucksEmptyIsNotNil(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewFleetRepository(db)

	mock.ExpectQuery(`FROM trucks ORDER BY id DESC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "unit_number", "status", "current_km"}))

	rows, err := repo.ListTrucks(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if rows == nil || len(rows) != 0 {
		t.Fatalf("rows = %#v", rows)
	}
}

func TestListDriversScansOptionalColumns(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewFleetRepository(db)

	mock.ExpectQuery(`FROM drivers`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "license", "phone", "pay_type", "pay_rate", "status"}).
			AddRow(int64(3), "Ana", nil, "555-0100", "per_km", 0.42, "active"))

	rows, err := repo.ListDrivers(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %+v", rows)
	}
	d := rows[0]
	if d.License != nil || d.Phone == nil || *d.Phone != "555-0100" || d.PayRate == nil || *d.PayRate != 0.42 {
		t.Fatalf("driver = %+v", d)
	}
}
