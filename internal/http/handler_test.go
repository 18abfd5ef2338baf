package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"fleet-service/internal/config"
	"fleet-service/internal/repository"
	"fleet-service/internal/service"
)

func newTestRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("gorm open error: %v", err)
	}

	reports := service.NewReportService(repository.NewReportRepository(db), 30, 3650)
	ledger := service.NewLedgerService(repository.NewLedgerRepository(db))
	fleet := service.NewFleetService(repository.NewFleetRepository(db))
	handler := NewHandler(reports, ledger, fleet, zerolog.Nop())

	cfg := &config.Config{Environment: "test"}
	return NewRouter(handler, cfg, zerolog.Nop()), mock
}

func serve(r *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestChartWithDateRange(t *testing.T) {
	r, mock := newTestRouter(t)
	mock.ExpectQuery(`FROM driver_payments WHERE paid_at BETWEEN \$1 AND \$2`).
		WithArgs("2024-01-01 00:00:00", "2024-01-31 23:59:59").
		WillReturnRows(sqlmock.NewRows([]string{"key", "value"}).AddRow(int64(1), 500.0))

	w := serve(r, http.MethodGet, "/charts/pay_by_driver.svg?from=2024-01-01&to=2024-01-31", "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/svg+xml; charset=utf-8" {
		t.Fatalf("content type = %q", ct)
	}
	if got := w.Header().Get("Cache-Control"); got != "no-store" {
		t.Fatalf("Cache-Control = %q", got)
	}
	svg := w.Body.String()
	if strings.Count(svg, `fill="#4C78A8"`) != 1 || !strings.Contains(svg, ">D1<") || !strings.Contains(svg, ">500<") {
		t.Fatalf("unexpected svg: %s", svg)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestChartMalformedDatesRunUnfiltered(t *testing.T) {
	r, mock := newTestRouter(t)
	mock.ExpectQuery(`^SELECT truck_id AS key, SUM\(km\) AS value FROM km_logs GROUP BY truck_id ORDER BY truck_id$`).
		WithoutArgs().
		WillReturnRows(sqlmock.NewRows([]string{"key", "value"}))

	w := serve(r, http.MethodGet, "/charts/km_by_truck.svg?from=2024-1-1&to=garbage", "")

	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), ">No data<") {
		t.Fatalf("status = %d body = %s", w.Code, w.Body.String())
	}
}

func TestChartQueryFailureServesErrorImage(t *testing.T) {
	r, mock := newTestRouter(t)
	mock.ExpectQuery(`FROM fuel_entries`).WillReturnError(errors.New("db down"))

	w := serve(r, http.MethodGet, "/charts/fuel_cost_by_truck.svg", "")

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/svg+xml; charset=utf-8" {
		t.Fatalf("content type = %q", ct)
	}
	if !strings.Contains(w.Body.String(), ">error db<") {
		t.Fatalf("body = %s", w.Body.String())
	}
}

func TestUnsupportedMethodIsNotFound(t *testing.T) {
	r, _ := newTestRouter(t)

	for _, target := range []string{"/charts/km_by_truck.svg", "/dashboard", "/api/stats/summary", "/nope"} {
		w := serve(r, http.MethodPost, target, "")
		if w.Code != http.StatusNotFound || strings.TrimSpace(w.Body.String()) != `{"error":"not_found"}` {
			t.Fatalf("POST %s = %d %s", target, w.Code, w.Body.String())
		}
	}
}

func TestSummaryEmpty(t *testing.T) {
	r, mock := newTestRouter(t)
	mock.ExpectQuery(`FROM fuel_entries`).WillReturnRows(sqlmock.NewRows([]string{"key", "value", "value2"}))
	mock.ExpectQuery(`FROM km_logs`).WillReturnRows(sqlmock.NewRows([]string{"key", "value"}))
	mock.ExpectQuery(`FROM driver_payments`).WillReturnRows(sqlmock.NewRows([]string{"key", "value"}))

	w := serve(r, http.MethodGet, "/api/stats/summary", "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	want := `{"fuel_by_truck":[],"km_by_truck":[],"pay_by_driver":[]}`
	if got := strings.TrimSpace(w.Body.String()); got != want {
		t.Fatalf("body = %s, want %s", got, want)
	}
}

func TestSummaryQueryFailure(t *testing.T) {
	r, mock := newTestRouter(t)
	mock.ExpectQuery(`FROM fuel_entries`).WillReturnError(errors.New("db down"))

	w := serve(r, http.MethodGet, "/api/stats/summary", "")

	if w.Code != http.StatusInternalServerError || strings.TrimSpace(w.Body.String()) != `{"error":"db_query_failed"}` {
		t.Fatalf("got %d %s", w.Code, w.Body.String())
	}
}

func TestDailyUsesDaysParam(t *testing.T) {
	r, mock := newTestRouter(t)
	mock.ExpectQuery(`FROM "?fuel_entries"? WHERE fueled_at >= \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"day", "value", "value2"}).AddRow("2024-01-02", 120.0, 210.5))

	w := serve(r, http.MethodGet, "/api/stats/fuel_daily?days=7", "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var body struct {
		Days int                      `json:"days"`
		Rows []map[string]interface{} `json:"rows"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Days != 7 || len(body.Rows) != 1 || body.Rows[0]["day"] != "2024-01-02" || body.Rows[0]["liters_total"] != 120.0 || body.Rows[0]["cost_total"] != 210.5 {
		t.Fatalf("body = %+v", body)
	}
}

func TestDashboardIsHTML(t *testing.T) {
	r, _ := newTestRouter(t)

	w := serve(r, http.MethodGet, "/dashboard?from=2024-01-01&to=2024-01-31", "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Fatalf("content type = %q", ct)
	}
	if !strings.Contains(w.Body.String(), "/charts/km_by_truck.svg?from=2024-01-01&amp;to=2024-01-31") {
		t.Fatalf("body = %s", w.Body.String())
	}
}

func TestHealth(t *testing.T) {
	r, _ := newTestRouter(t)

	w := serve(r, http.MethodGet, "/health", "")

	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"service":"fleet-service"`) {
		t.Fatalf("got %d %s", w.Code, w.Body.String())
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatalf("missing request id")
	}
}

func TestCreateFuelEntry(t *testing.T) {
	r, mock := newTestRouter(t)
	mock.ExpectQuery(`INSERT INTO fuel_entries`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(42)))

	w := serve(r, http.MethodPost, "/api/fuel_entries", `{"truck_id":1,"liters":50,"total_cost":100,"fueled_at":"2024-01-05"}`)

	if w.Code != http.StatusCreated || strings.TrimSpace(w.Body.String()) != `{"id":42,"ok":true}` {
		t.Fatalf("got %d %s", w.Code, w.Body.String())
	}
}

func TestCreateFuelEntryValidation(t *testing.T) {
	r, _ := newTestRouter(t)

	w := serve(r, http.MethodPost, "/api/fuel_entries", `{"truck_id":1,"liters":-3}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("negative liters: got %d %s", w.Code, w.Body.String())
	}

	w = serve(r, http.MethodPost, "/api/fuel_entries", `{"truck_id":1,"liters":5,"fueled_at":"yesterday"}`)
	if w.Code != http.StatusBadRequest || strings.TrimSpace(w.Body.String()) != `{"error":"invalid_fueled_at"}` {
		t.Fatalf("bad timestamp: got %d %s", w.Code, w.Body.String())
	}
}

func TestCreateDriverPaymentForeignKeyFailure(t *testing.T) {
	r, mock := newTestRouter(t)
	mock.ExpectQuery(`INSERT INTO driver_payments`).WillReturnError(errors.New("violates foreign key constraint"))

	w := serve(r, http.MethodPost, "/api/driver_payments", `{"driver_id":77,"amount":10}`)

	if w.Code != http.StatusInternalServerError || strings.TrimSpace(w.Body.String()) != `{"error":"db_insert_failed_check_foreign_keys"}` {
		t.Fatalf("got %d %s", w.Code, w.Body.String())
	}
}

func TestExportXLSX(t *testing.T) {
	r, mock := newTestRouter(t)
	for i := 0; i < 4; i++ {
		mock.ExpectQuery(`GROUP BY`).WillReturnRows(sqlmock.NewRows([]string{"key", "value"}).AddRow(int64(1), 10.0))
	}

	w := serve(r, http.MethodGet, "/reports/export.xlsx", "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != contentTypeXLSX {
		t.Fatalf("content type = %q", ct)
	}
	if !strings.HasPrefix(w.Body.String(), "PK") {
		t.Fatalf("not a zip container")
	}
}

func TestChartFromOnlyBindsOpenUpperBound(t *testing.T) {
	r, mock := newTestRouter(t)
	mock.ExpectQuery(`FROM driver_payments WHERE paid_at BETWEEN \$1 AND \$2`).
		WithArgs("2024-01-01 00:00:00", "9999-12-31 23:59:59").
		WillReturnRows(sqlmock.NewRows([]string{"key", "value"}).AddRow(int64(1), 500.0).AddRow(int64(2), 300.0))

	w := serve(r, http.MethodGet, "/charts/pay_by_driver.svg?from=2024-01-01", "")

	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), ">D2<") {
		t.Fatalf("got %d %s", w.Code, w.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestChartToOnlyBindsInclusiveEndOfDay(t *testing.T) {
	r, mock := newTestRouter(t)
	mock.ExpectQuery(`FROM driver_payments WHERE paid_at BETWEEN \$1 AND \$2`).
		WithArgs("0000-01-01 00:00:00", "2024-01-31 23:59:59").
		WillReturnRows(sqlmock.NewRows([]string{"key", "value"}).AddRow(int64(1), 500.0))

	w := serve(r, http.MethodGet, "/charts/pay_by_driver.svg?to=2024-01-31", "")

	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), ">D1<") {
		t.Fatalf("got %d %s", w.Code, w.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func preflight(r *gin.Engine, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodOptions, target, nil)
	req.Header.Set("Origin", "https://ops.example.org")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPreflightOnReadOnlyPathsIsNotFound(t *testing.T) {
	r, _ := newTestRouter(t)

	for _, target := range []string{"/charts/km_by_truck.svg", "/dashboard", "/api/stats/summary", "/reports/export.pdf"} {
		w := preflight(r, target)
		if w.Code != http.StatusNotFound {
			t.Fatalf("OPTIONS %s = %d", target, w.Code)
		}
		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
			t.Fatalf("OPTIONS %s allowed origin %q", target, got)
		}
	}
}

func TestPreflightOnRecordPaths(t *testing.T) {
	r, _ := newTestRouter(t)

	w := preflight(r, "/api/trucks")
	if w.Code != http.StatusNoContent || w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("preflight = %d %v", w.Code, w.Header())
	}

	w = serve(r, http.MethodOptions, "/api/trucks", "")
	if w.Code != http.StatusNotFound || strings.TrimSpace(w.Body.String()) != `{"error":"not_found"}` {
		t.Fatalf("plain OPTIONS = %d %s", w.Code, w.Body.String())
	}
}

func TestCreateLedgerRejectsNonPositiveAmounts(t *testing.T) {
	r, _ := newTestRouter(t)

	cases := []struct {
		target, body, reason string
	}{
		{"/api/fuel_entries", `{"truck_id":1,"liters":0}`, "liters_must_be_positive"},
		{"/api/km_logs", `{"truck_id":1,"km":-4}`, "km_must_be_positive"},
		{"/api/driver_payments", `{"driver_id":1}`, "amount_must_be_positive"},
		{"/api/fuel_entries", `{"liters":10}`, "truck_id_required"},
	}
	for _, tc := range cases {
		w := serve(r, http.MethodPost, tc.target, tc.body)
		want := `{"error":"` + tc.reason + `"}`
		if w.Code != http.StatusBadRequest || strings.TrimSpace(w.Body.String()) != want {
			t.Fatalf("POST %s %s = %d %s, want %s", tc.target, tc.body, w.Code, w.Body.String(), want)
		}
	}

	w := serve(r, http.MethodPost, "/api/driver_payments", `{"driver_id":1,"amount":5,"currency":"dollars"}`)
	if w.Code != http.StatusBadRequest || strings.TrimSpace(w.Body.String()) != `{"error":"invalid_body"}` {
		t.Fatalf("bad currency = %d %s", w.Code, w.Body.String())
	}
}

func TestFleetRecordsCreateThenLedgerInsert(t *testing.T) {
	r, mock := newTestRouter(t)
	mock.ExpectQuery(`INSERT INTO trucks`).
		WithArgs("T-100", nil, nil, nil, nil, nil, "active", 0.0).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))
	mock.ExpectQuery(`INSERT INTO fuel_entries`).
		WithArgs(int64(1), nil, nil, 40.0, nil, "USD", nil, nil, "2024-01-05 00:00:00").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	w := serve(r, http.MethodPost, "/api/trucks", `{"unit_number":"T-100"}`)
	if w.Code != http.StatusCreated || strings.TrimSpace(w.Body.String()) != `{"id":1,"ok":true}` {
		t.Fatalf("create truck = %d %s", w.Code, w.Body.String())
	}
	w = serve(r, http.MethodPost, "/api/fuel_entries", `{"truck_id":1,"liters":40,"fueled_at":"2024-01-05"}`)
	if w.Code != http.StatusCreated || strings.TrimSpace(w.Body.String()) != `{"id":7,"ok":true}` {
		t.Fatalf("create fuel entry = %d %s", w.Code, w.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestFleetRecordValidation(t *testing.T) {
	r, _ := newTestRouter(t)

	cases := []struct {
		target, body, reason string
	}{
		{"/api/trucks", `{"unit_number":"  "}`, "unit_number_required"},
		{"/api/trailers", `{"unit_number":"R-1","type":"tanker"}`, "type_required_reefer_dry_van_flatbed"},
		{"/api/drivers", `{"name":"Ana","pay_type":"hourly"}`, "pay_type_invalid_per_km_percent_salary"},
		{"/api/loads", `{"reference":"L-1","truck_id":1,"trailer_id":1}`, "truck_id_trailer_id_driver_id_required"},
		{"/api/loads", `{"reference":"L-1","truck_id":1,"trailer_id":1,"driver_id":1,"status":"lost"}`, "status_invalid_planned_in_transit_delivered_cancelled"},
	}
	for _, tc := range cases {
		w := serve(r, http.MethodPost, tc.target, tc.body)
		want := `{"error":"` + tc.reason + `"}`
		if w.Code != http.StatusBadRequest || strings.TrimSpace(w.Body.String()) != want {
			t.Fatalf("POST %s = %d %s, want %s", tc.target, w.Code, w.Body.String(), want)
		}
	}
}

func TestCreateLoadForeignKeyFailure(t *testing.T) {
	r, mock := newTestRouter(t)
	mock.ExpectQuery(`INSERT INTO loads`).WillReturnError(errors.New("violates foreign key constraint"))

	w := serve(r, http.MethodPost, "/api/loads", `{"reference":"L-9","truck_id":1,"trailer_id":2,"driver_id":3,"rate":1500}`)

	if w.Code != http.StatusInternalServerError || strings.TrimSpace(w.Body.String()) != `{"error":"db_insert_failed_check_foreign_keys"}` {
		t.Fatalf("got %d %s", w.Code, w.Body.String())
	}
}

func TestCreateDriverInsertFailure(t *testing.T) {
	r, mock := newTestRouter(t)
	mock.ExpectQuery(`INSERT INTO drivers`).WillReturnError(errors.New("disk full"))

	w := serve(r, http.MethodPost, "/api/drivers", `{"name":"Ana","pay_type":"per_km","pay_rate":0.5}`)

	if w.Code != http.StatusInternalServerError || strings.TrimSpace(w.Body.String()) != `{"error":"db_insert_failed"}` {
		t.Fatalf("got %d %s", w.Code, w.Body.String())
	}
}

func TestListTrailers(t *testing.T) {
	r, mock := newTestRouter(t)
	mock.ExpectQuery(`FROM trailers`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "unit_number", "vin", "type", "status", "current_km"}).
			AddRow(int64(2), "R-2", nil, "reefer", "active", 1200.0))

	w := serve(r, http.MethodGet, "/api/trailers", "")

	want := `[{"id":2,"unit_number":"R-2","type":"reefer","status":"active","current_km":1200}]`
	if w.Code != http.StatusOK || strings.TrimSpace(w.Body.String()) != want {
		t.Fatalf("got %d %s", w.Code, w.Body.String())
	}
}
