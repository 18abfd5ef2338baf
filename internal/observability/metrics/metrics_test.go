package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveReportQueryCountsByResult(t *testing.T) {
	Init()
	Init()

	before := testutil.ToFloat64(reportQueries.WithLabelValues("km_by_truck", resultError))
	ObserveReportQuery("km_by_truck", errors.New("boom"), 5*time.Millisecond)
	ObserveReportQuery("km_by_truck", nil, 5*time.Millisecond)

	if got := testutil.ToFloat64(reportQueries.WithLabelValues("km_by_truck", resultError)); got != before+1 {
		t.Fatalf("error count = %v, want %v", got, before+1)
	}
	if got := testutil.ToFloat64(reportQueries.WithLabelValues("km_by_truck", resultSuccess)); got < 1 {
		t.Fatalf("success count = %v", got)
	}
}

func TestObserveHTTPRequestUnmatchedRoute(t *testing.T) {
	Init()

	ObserveHTTPRequest("DELETE", "", 404)
	if got := testutil.ToFloat64(httpRequests.WithLabelValues("DELETE", "unmatched", "404")); got < 1 {
		t.Fatalf("unmatched count = %v", got)
	}
}
