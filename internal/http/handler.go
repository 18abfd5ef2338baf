package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"fleet-service/internal/chart"
	"fleet-service/internal/dashboard"
	"fleet-service/internal/export"
	"fleet-service/internal/model"
	"fleet-service/internal/observability/metrics"
	"fleet-service/internal/service"
)

// Version is reported by /health and may be set at link time.
var Version = "dev"

const (
	serviceName = "fleet-service"

	contentTypeSVG  = "image/svg+xml; charset=utf-8"
	contentTypeHTML = "text/html; charset=utf-8"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypePDF  = "application/pdf"

	exportTitle = "Fleet reports"
)

type Handler struct {
	reports *service.ReportService
	ledger  *service.LedgerService
	fleet   *service.FleetService
	log     zerolog.Logger
}

func NewHandler(reports *service.ReportService, ledger *service.LedgerService, fleet *service.FleetService, log zerolog.Logger) *Handler {
	return &Handler{reports: reports, ledger: ledger, fleet: fleet, log: log}
}

// Register mounts every route. corsMiddleware guards the record endpoints
// only; the chart, dashboard and stats paths stay GET-only.
func (h *Handler) Register(r *gin.Engine, corsMiddleware gin.HandlerFunc) {
	r.GET("/health", h.health)

	charts := r.Group("/charts")
	for _, report := range model.ChartReports() {
		charts.GET("/"+report.Name+".svg", h.chart(report))
	}
	r.GET("/dashboard", h.dashboard)

	reports := r.Group("/reports")
	reports.GET("/export.xlsx", h.exportXLSX)
	reports.GET("/export.pdf", h.exportPDF)

	stats := r.Group("/api/stats")
	stats.GET("/summary", h.summary)
	stats.GET("/fuel_daily", h.daily(model.DailyFuel))
	stats.GET("/km_daily", h.daily(model.DailyKm))
	stats.GET("/pay_daily", h.daily(model.DailyPay))
	stats.GET("/profit_summary", h.profit)

	api := r.Group("/api")
	api.Use(corsMiddleware)
	records := []struct {
		path         string
		list, create gin.HandlerFunc
	}{
		{"/trucks", h.listTrucks, h.createTruck},
		{"/trailers", h.listTrailers, h.createTrailer},
		{"/drivers", h.listDrivers, h.createDriver},
		{"/loads", h.listLoads, h.createLoad},
		{"/fuel_entries", h.listFuelEntries, h.createFuelEntry},
		{"/km_logs", h.listKmLogs, h.createKmLog},
		{"/driver_payments", h.listDriverPayments, h.createDriverPayment},
	}
	for _, rec := range records {
		api.GET(rec.path, rec.list)
		api.POST(rec.path, rec.create)
		// Preflights are answered by corsMiddleware; a plain OPTIONS is unsupported.
		api.OPTIONS(rec.path, notFound)
	}
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, errorResponse("not_found"))
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "service": serviceName, "version": Version})
}

// dateRange reads from/to with the lenient query parser. Malformed dates
// are treated as absent, never as an error.
func dateRange(c *gin.Context) model.DateRange {
	params := ParseParams(c.Request.URL.RawQuery)
	return model.NewDateRange(params.Get("from"), params.Get("to"))
}

func (h *Handler) chart(report model.Report) gin.HandlerFunc {
	return func(c *gin.Context) {
		spec, err := h.reports.Chart(c.Request.Context(), report, dateRange(c))
		if err != nil {
			metrics.ObserveChartRender(report.Name, err)
			h.log.Error().Err(err).Str("chart", report.Name).Msg("chart query failed")
			c.Data(http.StatusInternalServerError, contentTypeSVG, chart.ErrorSVG("error db"))
			return
		}

		body, err := chart.Render(spec)
		metrics.ObserveChartRender(report.Name, err)
		if err != nil {
			h.log.Error().Err(err).Str("chart", report.Name).Msg("chart render failed")
			c.Data(http.StatusInternalServerError, contentTypeSVG, chart.ErrorSVG("error svg"))
			return
		}
		c.Data(http.StatusOK, contentTypeSVG, body)
	}
}

func (h *Handler) dashboard(c *gin.Context) {
	params := ParseParams(c.Request.URL.RawQuery)
	c.Status(http.StatusOK)
	c.Header("Content-Type", contentTypeHTML)
	if err := dashboard.Compose(c.Writer, params.Get("from"), params.Get("to")); err != nil {
		h.log.Error().Err(err).Msg("dashboard render failed")
	}
}

func (h *Handler) summary(c *gin.Context) {
	summary, err := h.reports.Summary(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *Handler) daily(report model.DailyReport) gin.HandlerFunc {
	return func(c *gin.Context) {
		days := ParseParams(c.Request.URL.RawQuery).Int("days", 0)
		series, err := h.reports.Daily(c.Request.Context(), report, days)
		if err != nil {
			h.handleError(c, err)
			return
		}
		c.JSON(http.StatusOK, series)
	}
}

func (h *Handler) profit(c *gin.Context) {
	summary, err := h.reports.Profit(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *Handler) exportXLSX(c *gin.Context) {
	rng := dateRange(c)
	tables, err := h.reports.Export(c.Request.Context(), rng)
	if err != nil {
		h.handleError(c, err)
		return
	}
	data, err := export.BuildReportXLSX(rng, tables)
	if err != nil {
		h.exportFailed(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="fleet-report.xlsx"`)
	c.Data(http.StatusOK, contentTypeXLSX, data)
}

func (h *Handler) exportPDF(c *gin.Context) {
	rng := dateRange(c)
	tables, err := h.reports.Export(c.Request.Context(), rng)
	if err != nil {
		h.handleError(c, err)
		return
	}
	data, err := export.BuildReportPDF(exportTitle, rng, tables)
	if err != nil {
		h.exportFailed(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="fleet-report.pdf"`)
	c.Data(http.StatusOK, contentTypePDF, data)
}

func (h *Handler) exportFailed(c *gin.Context, err error) {
	h.log.Error().Err(err).Msg("export failed")
	c.JSON(http.StatusInternalServerError, errorResponse("export_failed"))
}

func (h *Handler) listFuelEntries(c *gin.Context) {
	rows, err := h.ledger.ListFuelEntries(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *Handler) createFuelEntry(c *gin.Context) {
	var in model.NewFuelEntry
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid_body"))
		return
	}
	id, err := h.ledger.CreateFuelEntry(c.Request.Context(), in)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, createdResponse(id))
}

func (h *Handler) listKmLogs(c *gin.Context) {
	rows, err := h.ledger.ListKmLogs(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *Handler) createKmLog(c *gin.Context) {
	var in model.NewKmLog
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid_body"))
		return
	}
	id, err := h.ledger.CreateKmLog(c.Request.Context(), in)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, createdResponse(id))
}

func (h *Handler) listDriverPayments(c *gin.Context) {
	rows, err := h.ledger.ListDriverPayments(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *Handler) createDriverPayment(c *gin.Context) {
	var in model.NewDriverPayment
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid_body"))
		return
	}
	id, err := h.ledger.CreateDriverPayment(c.Request.Context(), in)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, createdResponse(id))
}

func (h *Handler) listTrucks(c *gin.Context) {
	rows, err := h.fleet.ListTrucks(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *Handler) createTruck(c *gin.Context) {
	var in model.NewTruck
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid_body"))
		return
	}
	id, err := h.fleet.CreateTruck(c.Request.Context(), in)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, createdResponse(id))
}

func (h *Handler) listTrailers(c *gin.Context) {
	rows, err := h.fleet.ListTrailers(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *Handler) createTrailer(c *gin.Context) {
	var in model.NewTrailer
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid_body"))
		return
	}
	id, err := h.fleet.CreateTrailer(c.Request.Context(), in)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, createdResponse(id))
}

func (h *Handler) listDrivers(c *gin.Context) {
	rows, err := h.fleet.ListDrivers(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *Handler) createDriver(c *gin.Context) {
	var in model.NewDriver
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid_body"))
		return
	}
	id, err := h.fleet.CreateDriver(c.Request.Context(), in)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, createdResponse(id))
}

func (h *Handler) listLoads(c *gin.Context) {
	rows, err := h.fleet.ListLoads(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *Handler) createLoad(c *gin.Context) {
	var in model.NewLoad
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid_body"))
		return
	}
	id, err := h.fleet.CreateLoad(c.Request.Context(), in)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, createdResponse(id))
}

func (h *Handler) handleError(c *gin.Context, err error) {
	var inputErr *service.InputError
	switch {
	case errors.As(err, &inputErr):
		c.JSON(http.StatusBadRequest, errorResponse(inputErr.Reason))
	case errors.Is(err, service.ErrInsertFailed):
		h.log.Error().Err(err).Msg("insert failed")
		c.JSON(http.StatusInternalServerError, errorResponse("db_insert_failed_check_foreign_keys"))
	case errors.Is(err, service.ErrCreateFailed):
		h.log.Error().Err(err).Msg("insert failed")
		c.JSON(http.StatusInternalServerError, errorResponse("db_insert_failed"))
	case errors.Is(err, service.ErrQueryFailed):
		h.log.Error().Err(err).Msg("query failed")
		c.JSON(http.StatusInternalServerError, errorResponse("db_query_failed"))
	default:
		h.log.Error().Err(err).Msg("handler error")
		c.JSON(http.StatusInternalServerError, errorResponse("internal_error"))
	}
}

func createdResponse(id int64) gin.H {
	return gin.H{"ok": true, "id": id}
}

func errorResponse(message string) gin.H {
	return gin.H{"error": message}
}
