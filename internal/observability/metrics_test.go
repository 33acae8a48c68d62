package observability

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
)

func TestRecordObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector, err := NewPipelineCollector(reg)
	if err != nil {
		t.Fatalf("NewPipelineCollector: %v", err)
	}

	collector.RecordObserve(25*time.Millisecond, 32, 32, 20)
	collector.RecordObserve(10*time.Millisecond, 16, 16, 16)

	if got := testutil.ToFloat64(collector.Runs); got != 2 {
		t.Fatalf("observe_runs_total = %v, want 2", got)
	}
	if got := testutil.ToFloat64(collector.SatellitesTotal); got != 48 {
		t.Fatalf("observe_satellites_located_total = %v, want 48", got)
	}
	if got := testutil.ToFloat64(collector.ObservationsKept.WithLabelValues("kept")); got != 36 {
		t.Fatalf("kept observations = %v, want 36", got)
	}
	if got := testutil.ToFloat64(collector.ObservationsKept.WithLabelValues("filtered")); got != 12 {
		t.Fatalf("filtered observations = %v, want 12", got)
	}
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	if count := histogramSampleCount(t, families, "observe_run_duration_seconds"); count != 2 {
		t.Fatalf("observe_run_duration_seconds sample_count = %d, want 2", count)
	}
}

func TestCatalogSizeGauge(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector, err := NewPipelineCollector(reg)
	if err != nil {
		t.Fatalf("NewPipelineCollector: %v", err)
	}

	collector.SetCatalogSize(31)
	if got := testutil.ToFloat64(collector.CatalogSize); got != 31 {
		t.Fatalf("satellite_catalog_size = %v, want 31", got)
	}
}

func TestDuplicateRegistrationReusesCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewPipelineCollector(reg)
	if err != nil {
		t.Fatalf("first NewPipelineCollector: %v", err)
	}
	second, err := NewPipelineCollector(reg)
	if err != nil {
		t.Fatalf("second NewPipelineCollector: %v", err)
	}

	first.RecordObserve(time.Millisecond, 1, 1, 1)
	second.RecordObserve(time.Millisecond, 1, 1, 1)
	if got := testutil.ToFloat64(first.Runs); got != 2 {
		t.Fatalf("shared runs counter = %v, want 2", got)
	}
}

func TestHandlerServesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector, err := NewPipelineCollector(reg)
	if err != nil {
		t.Fatalf("NewPipelineCollector: %v", err)
	}
	collector.RecordObserve(time.Millisecond, 4, 4, 3)

	srv := httptest.NewServer(collector.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("GET /metrics: %v", err)
	}
	defer resp.Body.Close()

	body := make([]byte, 1<<16)
	n, _ := resp.Body.Read(body)
	text := string(body[:n])
	if !strings.Contains(text, "observe_runs_total") {
		t.Fatalf("metrics output missing observe_runs_total:\n%s", text)
	}
}

func histogramSampleCount(t *testing.T, families []*dto.MetricFamily, name string) uint64 {
	t.Helper()
	for _, f := range families {
		if f.GetName() != name {
			continue
		}
		for _, m := range f.GetMetric() {
			if h := m.GetHistogram(); h != nil {
				return h.GetSampleCount()
			}
		}
	}
	t.Fatalf("histogram %s not found", name)
	return 0
}
