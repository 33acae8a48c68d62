// Package core implements the observation pipeline: reprojection of receiver
// positions, sight-line ray construction towards visible satellites, and
// elevation-angle filtering.
package core

import (
	"time"

	"github.com/signalsfoundry/gnssmapper/model"
)

// Config carries every tunable the pipeline needs. It replaces process-wide
// constants so the core functions stay free of hidden state.
type Config struct {
	// SupportedConstellations is the set of recognised constellation
	// prefix letters.
	SupportedConstellations map[string]bool

	// MinimumElevation and MaximumElevation are the default inclusive
	// elevation filter bounds, in degrees.
	MinimumElevation float64
	MaximumElevation float64

	// RayLength is the truncation distance for sight lines, in units of
	// the satellite storage frame (metres for EPSG:4978).
	RayLength float64

	// EPSGSatellites is the frame observation geometry is stored in.
	// EPSGWGS84Cart and EPSGWGS84 are the geocentric Cartesian and
	// geographic frames used by the elevation computation.
	EPSGSatellites model.CRS
	EPSGWGS84Cart  model.CRS
	EPSGWGS84      model.CRS

	// Metrics, when non-nil, receives pipeline counters after each run.
	Metrics MetricsRecorder
}

// MetricsRecorder receives a summary of one Observe run. The observability
// package's PipelineCollector satisfies it.
type MetricsRecorder interface {
	RecordObserve(duration time.Duration, located, built, kept int)
}

// DefaultConfig returns the standard pipeline configuration. The elevation
// ceiling defaults to 85 degrees, below the filter's 90 degree maximum:
// near-zenith geometry carries little mapping information and sits where
// asin is least numerically stable. Callers wanting the full range set
// MaximumElevation to 90.
func DefaultConfig() Config {
	return Config{
		SupportedConstellations: map[string]bool{
			"G": true, // GPS
			"R": true, // GLONASS
			"C": true, // BeiDou
			"E": true, // Galileo
			"J": true, // QZSS
		},
		MinimumElevation: 0,
		MaximumElevation: 85,
		RayLength:        1000,
		EPSGSatellites:   model.CRSWGS84Cartesian,
		EPSGWGS84Cart:    model.CRSWGS84Cartesian,
		EPSGWGS84:        model.CRSWGS84Geographic,
	}
}
