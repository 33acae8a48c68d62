// Package observability wires Prometheus metrics and OpenTelemetry tracing
// around the observation pipeline.
package observability

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PipelineCollector bundles Prometheus metrics for the observation pipeline.
// It satisfies core.MetricsRecorder so a Config can carry it into Observe.
type PipelineCollector struct {
	gatherer prometheus.Gatherer

	Runs             prometheus.Counter
	RunDuration      prometheus.Histogram
	SatellitesTotal  prometheus.Counter
	ObservationsKept *prometheus.CounterVec
	CatalogSize      prometheus.Gauge
}

// NewPipelineCollector registers pipeline metrics against the provided
// registerer, defaulting to the global Prometheus registry when nil.
func NewPipelineCollector(reg prometheus.Registerer) (*PipelineCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	runs, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "observe_runs_total",
		Help: "Total number of completed observation pipeline runs.",
	}), "observe_runs_total")
	if err != nil {
		return nil, err
	}

	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "observe_run_duration_seconds",
		Help:    "Wall-clock duration of observation pipeline runs.",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
	})
	duration, err = registerHistogram(reg, duration, "observe_run_duration_seconds")
	if err != nil {
		return nil, err
	}

	satellites, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "observe_satellites_located_total",
		Help: "Cumulative number of satellite positions resolved across runs.",
	}), "observe_satellites_located_total")
	if err != nil {
		return nil, err
	}

	kept := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "observe_observations_total",
		Help: "Sight lines produced by the pipeline, labeled by filter outcome.",
	}, []string{"outcome"})
	kept, err = registerCounterVec(reg, kept, "observe_observations_total")
	if err != nil {
		return nil, err
	}

	catalog, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "satellite_catalog_size",
		Help: "Number of satellites in the loaded TLE catalog.",
	}), "satellite_catalog_size")
	if err != nil {
		return nil, err
	}

	return &PipelineCollector{
		gatherer:         gatherer,
		Runs:             runs,
		RunDuration:      duration,
		SatellitesTotal:  satellites,
		ObservationsKept: kept,
		CatalogSize:      catalog,
	}, nil
}

// RecordObserve satisfies core.MetricsRecorder: it is driven by Observe at
// the end of every run.
func (c *PipelineCollector) RecordObserve(duration time.Duration, located, built, kept int) {
	if c == nil {
		return
	}
	if c.Runs != nil {
		c.Runs.Inc()
	}
	if c.RunDuration != nil {
		c.RunDuration.Observe(duration.Seconds())
	}
	if c.SatellitesTotal != nil {
		c.SatellitesTotal.Add(float64(located))
	}
	if c.ObservationsKept != nil {
		c.ObservationsKept.WithLabelValues("kept").Add(float64(kept))
		c.ObservationsKept.WithLabelValues("filtered").Add(float64(built - kept))
	}
}

// SetCatalogSize records the number of satellites available to the pipeline.
func (c *PipelineCollector) SetCatalogSize(n int) {
	if c == nil || c.CatalogSize == nil {
		return
	}
	c.CatalogSize.Set(float64(n))
}

// Handler exposes a ready-to-use /metrics handler.
func (c *PipelineCollector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func registerCounter(reg prometheus.Registerer, counter prometheus.Counter, name string) (prometheus.Counter, error) {
	if err := reg.Register(counter); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return counter, nil
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogram(reg prometheus.Registerer, histogram prometheus.Histogram, name string) (prometheus.Histogram, error) {
	if err := reg.Register(histogram); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Histogram); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return histogram, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}
