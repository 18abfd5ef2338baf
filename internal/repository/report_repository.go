package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"fleet-service/internal/model"
)

// reportQueries holds both SQL texts of a report. The unfiltered text has no
// date predicate at all.
type reportQueries struct {
	all    string
	ranged string
}

type ReportRepository struct {
	db      *gorm.DB
	queries map[string]reportQueries
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	queries := make(map[string]reportQueries)
	for _, report := range model.ChartReports() {
		queries[report.Name] = buildReportQueries(report)
	}
	return &ReportRepository{db: db, queries: queries}
}

func buildReportQueries(report model.Report) reportQueries {
	sel := fmt.Sprintf("SELECT %s AS key, %s AS value FROM %s", report.KeyColumn, report.ValueExpr, report.Table)
	group := fmt.Sprintf(" GROUP BY %s ORDER BY %s", report.KeyColumn, report.KeyColumn)
	return reportQueries{
		all:    sel + group,
		ranged: sel + fmt.Sprintf(" WHERE %s BETWEEN ? AND ?", report.DateColumn) + group,
	}
}

// Metrics returns the grouped sums of a report ordered by key. Keys with no
// matching rows are absent.
func (r *ReportRepository) Metrics(ctx context.Context, report model.Report, rng model.DateRange) ([]model.MetricRow, error) {
	q, ok := r.queries[report.Name]
	if !ok {
		q = buildReportQueries(report)
	}

	rows := make([]model.MetricRow, 0)
	query := r.db.WithContext(ctx)
	if rng.Active {
		query = query.Raw(q.ranged, rng.From, rng.To)
	} else {
		query = query.Raw(q.all)
	}
	if err := query.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("%s: %w", report.Name, err)
	}
	return rows, nil
}

// FuelTotals returns liters and cost per truck. Cost stays NULL when a truck
// never had a cost recorded.
func (r *ReportRepository) FuelTotals(ctx context.Context) ([]model.MetricRow, error) {
	rows := make([]model.MetricRow, 0)
	err := r.db.WithContext(ctx).
		Raw(`SELECT truck_id AS key, SUM(liters) AS value, SUM(total_cost) AS value2
			FROM fuel_entries
			GROUP BY truck_id
			ORDER BY truck_id`).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("fuel totals: %w", err)
	}
	return rows, nil
}

// Daily returns per-day sums for rows stamped at or after since.
func (r *ReportRepository) Daily(ctx context.Context, report model.DailyReport, since string) ([]model.DailyPoint, error) {
	selects := fmt.Sprintf("substr(%s, 1, 10) AS day, %s AS value", report.DateColumn, report.ValueExpr)
	if report.Value2Expr != "" {
		selects += fmt.Sprintf(", %s AS value2", report.Value2Expr)
	}

	rows := make([]model.DailyPoint, 0)
	err := r.db.WithContext(ctx).
		Table(report.Table).
		Select(selects).
		Where(fmt.Sprintf("%s >= ?", report.DateColumn), since).
		Group("day").
		Order("day").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("%s: %w", report.Name, err)
	}
	return rows, nil
}

// CurrencyTotals sums amountExpr over table grouped by currency, with a NULL
// currency counted as USD.
func (r *ReportRepository) CurrencyTotals(ctx context.Context, table, amountExpr string) ([]model.CurrencyAmount, error) {
	rows := make([]model.CurrencyAmount, 0)
	err := r.db.WithContext(ctx).
		Table(table).
		Select(fmt.Sprintf("COALESCE(currency, '%s') AS currency, SUM(%s) AS total", model.DefaultCurrency, amountExpr)).
		Group(fmt.Sprintf("COALESCE(currency, '%s')", model.DefaultCurrency)).
		Order("currency").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("%s currency totals: %w", table, err)
	}
	return rows, nil
}
