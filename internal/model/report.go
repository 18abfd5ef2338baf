package model

import "encoding/json"

// MetricRow is one grouped aggregate. Key is the truck or driver id.
type MetricRow struct {
	Key    int64    `gorm:"column:key" json:"key"`
	Value  float64  `gorm:"column:value" json:"value"`
	Value2 *float64 `gorm:"column:value2" json:"value2,omitempty"`
}

type ChartSpec struct {
	Title           string
	AxisLabelPrefix string
	Data            []MetricRow
}

// Report describes one grouped SUM over a ledger table.
type Report struct {
	Name            string
	Table           string
	KeyColumn       string
	ValueExpr       string
	DateColumn      string
	Title           string
	AxisLabelPrefix string
}

var (
	ReportFuelLitersByTruck = Report{
		Name:            "fuel_liters_by_truck",
		Table:           "fuel_entries",
		KeyColumn:       "truck_id",
		ValueExpr:       "SUM(liters)",
		DateColumn:      "fueled_at",
		Title:           "Fuel: liters per truck",
		AxisLabelPrefix: "T",
	}
	ReportFuelCostByTruck = Report{
		Name:            "fuel_cost_by_truck",
		Table:           "fuel_entries",
		KeyColumn:       "truck_id",
		ValueExpr:       "SUM(COALESCE(total_cost, 0))",
		DateColumn:      "fueled_at",
		Title:           "Fuel: total cost per truck",
		AxisLabelPrefix: "T",
	}
	ReportKmByTruck = Report{
		Name:            "km_by_truck",
		Table:           "km_logs",
		KeyColumn:       "truck_id",
		ValueExpr:       "SUM(km)",
		DateColumn:      "logged_at",
		Title:           "Kilometers per truck",
		AxisLabelPrefix: "T",
	}
	ReportPayByDriver = Report{
		Name:            "pay_by_driver",
		Table:           "driver_payments",
		KeyColumn:       "driver_id",
		ValueExpr:       "SUM(COALESCE(amount, 0))",
		DateColumn:      "paid_at",
		Title:           "Payments per driver",
		AxisLabelPrefix: "D",
	}
)

// ChartReports lists the reports in dashboard order.
func ChartReports() []Report {
	return []Report{ReportFuelLitersByTruck, ReportFuelCostByTruck, ReportKmByTruck, ReportPayByDriver}
}

type FuelByTruck struct {
	TruckID     int64    `json:"truck_id"`
	LitersTotal float64  `json:"liters_total"`
	CostTotal   *float64 `json:"cost_total,omitempty"`
}

type KmByTruck struct {
	TruckID int64   `json:"truck_id"`
	KmTotal float64 `json:"km_total"`
}

type PayByDriver struct {
	DriverID int64   `json:"driver_id"`
	PayTotal float64 `json:"pay_total"`
}

type StatsSummary struct {
	FuelByTruck []FuelByTruck `json:"fuel_by_truck"`
	KmByTruck   []KmByTruck   `json:"km_by_truck"`
	PayByDriver []PayByDriver `json:"pay_by_driver"`
}

// DailyReport describes a per-day series over one ledger table.
type DailyReport struct {
	Name       string
	Table      string
	DateColumn string
	ValueExpr  string
	ValueName  string
	Value2Expr string
	Value2Name string
}

var (
	DailyFuel = DailyReport{
		Name:       "fuel_daily",
		Table:      "fuel_entries",
		DateColumn: "fueled_at",
		ValueExpr:  "SUM(liters)",
		ValueName:  "liters_total",
		Value2Expr: "SUM(COALESCE(total_cost, 0))",
		Value2Name: "cost_total",
	}
	DailyKm = DailyReport{
		Name:       "km_daily",
		Table:      "km_logs",
		DateColumn: "logged_at",
		ValueExpr:  "SUM(km)",
		ValueName:  "km_total",
	}
	DailyPay = DailyReport{
		Name:       "pay_daily",
		Table:      "driver_payments",
		DateColumn: "paid_at",
		ValueExpr:  "SUM(amount)",
		ValueName:  "pay_total",
	}
)

type DailyPoint struct {
	Day    string   `gorm:"column:day"`
	Value  *float64 `gorm:"column:value"`
	Value2 *float64 `gorm:"column:value2"`
}

type DailySeries struct {
	Report DailyReport
	Days   int
	Rows   []DailyPoint
}

// MarshalJSON names the value columns after the report, e.g.
// {"day":"2024-01-01","liters_total":120,"cost_total":210.5}.
func (s DailySeries) MarshalJSON() ([]byte, error) {
	rows := make([]map[string]interface{}, 0, len(s.Rows))
	for _, p := range s.Rows {
		row := map[string]interface{}{"day": p.Day}
		if p.Value != nil {
			row[s.Report.ValueName] = *p.Value
		}
		if s.Report.Value2Name != "" && p.Value2 != nil {
			row[s.Report.Value2Name] = *p.Value2
		}
		rows = append(rows, row)
	}
	return json.Marshal(struct {
		Days int                      `json:"days"`
		Rows []map[string]interface{} `json:"rows"`
	}{Days: s.Days, Rows: rows})
}

const DefaultCurrency = "USD"

type CurrencyTotals struct {
	Currency       string  `json:"currency"`
	RevenueTotal   float64 `json:"revenue_total"`
	FuelCostTotal  float64 `json:"fuel_cost_total"`
	DriverPayTotal float64 `json:"driver_pay_total"`
	Profit         float64 `json:"profit_estimated"`
}

type ProfitSummary struct {
	Currencies []CurrencyTotals `json:"currencies"`
}

// CurrencyAmount is one SUM grouped by currency.
type CurrencyAmount struct {
	Currency string  `gorm:"column:currency"`
	Total    float64 `gorm:"column:total"`
}

// ReportTable pairs a report with its rows, for exports.
type ReportTable struct {
	Report Report
	Rows   []MetricRow
}
