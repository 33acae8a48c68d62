package model

import (
	"time"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/signalsfoundry/gnssmapper/gnsstime"
)

// SatellitePosition is the location of a named satellite at a GPS instant,
// in the ECEF satellite storage frame (metres).
type SatellitePosition struct {
	SVID    SVID
	GPSTime gnsstime.GTime
	ECEF    r3.Vec
}

// Observation is a truncated sight line from a receiver towards a satellite,
// tagged with the epoch time, the satellite svid, and the receiver's signal
// features for that epoch.
type Observation struct {
	Ray     LineString
	Time    time.Time
	SVID    SVID
	Signals map[string]float64
}
