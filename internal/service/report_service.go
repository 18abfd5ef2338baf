package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"fleet-service/internal/model"
	"fleet-service/internal/observability/metrics"
	"fleet-service/internal/repository"
)

var (
	ErrQueryFailed  = errors.New("db query failed")
	ErrInvalidInput = errors.New("invalid input")
)

type ReportService struct {
	reports     *repository.ReportRepository
	defaultDays int
	maxDays     int
	now         func() time.Time
}

func NewReportService(reports *repository.ReportRepository, defaultDays, maxDays int) *ReportService {
	return &ReportService{
		reports:     reports,
		defaultDays: defaultDays,
		maxDays:     maxDays,
		now:         time.Now,
	}
}

// Chart loads the rows of report and wraps them for the renderer.
func (s *ReportService) Chart(ctx context.Context, report model.Report, rng model.DateRange) (model.ChartSpec, error) {
	rows, err := s.metrics(ctx, report, rng)
	if err != nil {
		return model.ChartSpec{}, err
	}
	return model.ChartSpec{
		Title:           report.Title,
		AxisLabelPrefix: report.AxisLabelPrefix,
		Data:            rows,
	}, nil
}

// Export loads every chart report for the same range. Any failure fails the
// whole call.
func (s *ReportService) Export(ctx context.Context, rng model.DateRange) ([]model.ReportTable, error) {
	reports := model.ChartReports()
	tables := make([]model.ReportTable, 0, len(reports))
	for _, report := range reports {
		rows, err := s.metrics(ctx, report, rng)
		if err != nil {
			return nil, err
		}
		tables = append(tables, model.ReportTable{Report: report, Rows: rows})
	}
	return tables, nil
}

func (s *ReportService) Summary(ctx context.Context) (*model.StatsSummary, error) {
	start := time.Now()
	fuel, err := s.reports.FuelTotals(ctx)
	if err = observe("fuel_totals", start, err); err != nil {
		return nil, err
	}
	km, err := s.metrics(ctx, model.ReportKmByTruck, model.DateRange{})
	if err != nil {
		return nil, err
	}
	pay, err := s.metrics(ctx, model.ReportPayByDriver, model.DateRange{})
	if err != nil {
		return nil, err
	}

	summary := &model.StatsSummary{
		FuelByTruck: make([]model.FuelByTruck, 0, len(fuel)),
		KmByTruck:   make([]model.KmByTruck, 0, len(km)),
		PayByDriver: make([]model.PayByDriver, 0, len(pay)),
	}
	for _, row := range fuel {
		summary.FuelByTruck = append(summary.FuelByTruck, model.FuelByTruck{TruckID: row.Key, LitersTotal: row.Value, CostTotal: row.Value2})
	}
	for _, row := range km {
		summary.KmByTruck = append(summary.KmByTruck, model.KmByTruck{TruckID: row.Key, KmTotal: row.Value})
	}
	for _, row := range pay {
		summary.PayByDriver = append(summary.PayByDriver, model.PayByDriver{DriverID: row.Key, PayTotal: row.Value})
	}
	return summary, nil
}

// Daily returns per-day totals over the last days days. Non-positive values
// fall back to the configured default and large ones are capped.
func (s *ReportService) Daily(ctx context.Context, report model.DailyReport, days int) (*model.DailySeries, error) {
	if days <= 0 {
		days = s.defaultDays
	}
	if days > s.maxDays {
		days = s.maxDays
	}
	since := s.now().UTC().AddDate(0, 0, -days).Format(model.TimestampLayout)

	start := time.Now()
	rows, err := s.reports.Daily(ctx, report, since)
	if err = observe(report.Name, start, err); err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []model.DailyPoint{}
	}
	return &model.DailySeries{Report: report, Days: days, Rows: rows}, nil
}

// Profit estimates revenue minus fuel and driver pay, separately for every
// currency seen. Amounts are never converted between currencies.
func (s *ReportService) Profit(ctx context.Context) (*model.ProfitSummary, error) {
	type source struct {
		table  string
		amount string
		apply  func(t *model.CurrencyTotals, v float64)
	}
	sources := []source{
		{"loads", "COALESCE(rate, 0)", func(t *model.CurrencyTotals, v float64) { t.RevenueTotal += v }},
		{"fuel_entries", "COALESCE(total_cost, 0)", func(t *model.CurrencyTotals, v float64) { t.FuelCostTotal += v }},
		{"driver_payments", "COALESCE(amount, 0)", func(t *model.CurrencyTotals, v float64) { t.DriverPayTotal += v }},
	}

	byCurrency := map[string]*model.CurrencyTotals{}
	for _, src := range sources {
		start := time.Now()
		amounts, err := s.reports.CurrencyTotals(ctx, src.table, src.amount)
		if err = observe(src.table+"_by_currency", start, err); err != nil {
			return nil, err
		}
		for _, a := range amounts {
			totals, ok := byCurrency[a.Currency]
			if !ok {
				totals = &model.CurrencyTotals{Currency: a.Currency}
				byCurrency[a.Currency] = totals
			}
			src.apply(totals, a.Total)
		}
	}

	summary := &model.ProfitSummary{Currencies: make([]model.CurrencyTotals, 0, len(byCurrency))}
	for _, totals := range byCurrency {
		totals.Profit = totals.RevenueTotal - totals.FuelCostTotal - totals.DriverPayTotal
		summary.Currencies = append(summary.Currencies, *totals)
	}
	sort.Slice(summary.Currencies, func(i, j int) bool {
		return summary.Currencies[i].Currency < summary.Currencies[j].Currency
	})
	return summary, nil
}

func (s *ReportService) metrics(ctx context.Context, report model.Report, rng model.DateRange) ([]model.MetricRow, error) {
	start := time.Now()
	rows, err := s.reports.Metrics(ctx, report, rng)
	if err = observe(report.Name, start, err); err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []model.MetricRow{}
	}
	return rows, nil
}

// observe records the query and maps a storage error to ErrQueryFailed.
func observe(name string, start time.Time, err error) error {
	metrics.ObserveReportQuery(name, err, time.Since(start))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrQueryFailed, err)
	}
	return nil
}
