package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "fleet_"

	resultSuccess = "success"
	resultError   = "error"
)

var (
	registerOnce sync.Once

	reportQueries      *prometheus.CounterVec
	reportQueryLatency *prometheus.HistogramVec
	chartRenders       *prometheus.CounterVec
	httpRequests       *prometheus.CounterVec
)

// Init registers the collectors with the default registry. Safe to call
// more than once.
func Init() {
	registerOnce.Do(func() {
		reportQueries = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "report_queries_total",
				Help: "Total report queries by report and result",
			},
			[]string{"report", "result"},
		)
		reportQueryLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "report_query_latency_seconds",
				Help:    "Report query latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"report", "result"},
		)
		chartRenders = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "chart_renders_total",
				Help: "Total chart renders by chart and result",
			},
			[]string{"chart", "result"},
		)
		httpRequests = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "http_requests_total",
				Help: "Total HTTP requests by method, route and status",
			},
			[]string{"method", "route", "status"},
		)

		prometheus.MustRegister(reportQueries, reportQueryLatency, chartRenders, httpRequests)
	})
}

// ObserveReportQuery records one report query. A no-op before Init.
func ObserveReportQuery(report string, err error, elapsed time.Duration) {
	if reportQueries == nil {
		return
	}
	result := resultLabel(err)
	reportQueries.WithLabelValues(report, result).Inc()
	reportQueryLatency.WithLabelValues(report, result).Observe(elapsed.Seconds())
}

func ObserveChartRender(chart string, err error) {
	if chartRenders == nil {
		return
	}
	chartRenders.WithLabelValues(chart, resultLabel(err)).Inc()
}

func ObserveHTTPRequest(method, route string, status int) {
	if httpRequests == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}

func resultLabel(err error) string {
	if err != nil {
		return resultError
	}
	return resultSuccess
}
