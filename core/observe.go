package core

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/signalsfoundry/gnssmapper/gnsstime"
	"github.com/signalsfoundry/gnssmapper/model"
)

// SatelliteService resolves which satellites exist at given GPS instants and
// where they are. The satdata package provides a TLE/SGP4-backed
// implementation.
type SatelliteService interface {
	// NameSatellites returns, for each GPS instant, the svids of every
	// satellite known at that instant. The outer slice is aligned with
	// the input.
	NameSatellites(ctx context.Context, times []gnsstime.GTime) ([][]model.SVID, error)

	// LocateSatellites returns the ECEF position of each (svid, time)
	// pair. Both input slices have equal length and are paired by index.
	LocateSatellites(ctx context.Context, svids []model.SVID, times []gnsstime.GTime) ([]model.SatellitePosition, error)
}

// Observe generates the observation set for a collection of receiver points:
// one truncated sight-line feature per (receiver epoch, visible satellite)
// pair surviving the elevation filter. Satellites from every constellation in
// the supplied set are included, not only the measured ones; when no
// constellations are supplied the set is inferred from the svids present in
// the input.
func Observe(ctx context.Context, cfg Config, svc SatelliteService, points []model.ReceiverPoint, constellations ...string) ([]model.Observation, error) {
	start := time.Now()

	if err := CheckReceiverPoints(points); err != nil {
		return nil, err
	}

	wanted := make(map[string]bool, len(constellations))
	for _, c := range constellations {
		wanted[c] = true
	}
	if err := CheckConstellations(wanted, cfg.SupportedConstellations); err != nil {
		return nil, err
	}
	if len(wanted) == 0 {
		for _, p := range points {
			if p.SVID != "" {
				wanted[p.SVID.Constellation()] = true
			}
		}
		if len(wanted) == 0 {
			return nil, fmt.Errorf("%w: constellations cannot be inferred from receiverpoints and must be supplied", ErrConfig)
		}
	}

	// Resolve the satellites visible at each distinct epoch.
	sats, err := getSatellites(ctx, svc, points, wanted)
	if err != nil {
		return nil, err
	}
	located := 0
	for _, at := range sats {
		located += len(at)
	}

	// Convert receiver positions into the satellite storage frame and
	// pair every epoch with every satellite located at it.
	var (
		receivers []r3.Vec
		targets   []r3.Vec
		times     []time.Time
		svids     []model.SVID
		signals   []map[string]float64
	)
	for _, p := range points {
		recv, err := PointToCRS3D(p.Position, cfg.EPSGSatellites)
		if err != nil {
			return nil, err
		}
		gps := gnsstime.UTCToGPS(p.Time)
		at := sats[gps]
		for _, svid := range sortedSVIDs(at) {
			receivers = append(receivers, recv.Vec)
			targets = append(targets, at[svid])
			times = append(times, p.Time)
			svids = append(svids, svid)
			signals = append(signals, p.Signals)
		}
	}

	rays, err := Rays(cfg, receivers, targets)
	if err != nil {
		return nil, err
	}

	obs := make([]model.Observation, len(rays))
	for i := range rays {
		obs[i] = model.Observation{
			Ray:     rays[i],
			Time:    times[i],
			SVID:    svids[i],
			Signals: signals[i],
		}
	}
	if err := CheckObservations(cfg, obs); err != nil {
		return nil, err
	}

	kept, err := FilterElevation(cfg, obs, cfg.MinimumElevation, cfg.MaximumElevation)
	if err != nil {
		return nil, err
	}

	if cfg.Metrics != nil {
		cfg.Metrics.RecordObserve(time.Since(start), located, len(obs), len(kept))
	}
	return kept, nil
}

// getSatellites locates every satellite in the wanted constellations at each
// distinct receiver epoch. The result maps GPS time to svid to ECEF position.
func getSatellites(ctx context.Context, svc SatelliteService, points []model.ReceiverPoint, wanted map[string]bool) (map[gnsstime.GTime]map[model.SVID]r3.Vec, error) {
	var epochs []gnsstime.GTime
	seen := make(map[gnsstime.GTime]bool)
	for _, p := range points {
		gps := gnsstime.UTCToGPS(p.Time)
		if !seen[gps] {
			seen[gps] = true
			epochs = append(epochs, gps)
		}
	}

	names, err := svc.NameSatellites(ctx, epochs)
	if err != nil {
		return nil, fmt.Errorf("naming satellites: %w", err)
	}
	if len(names) != len(epochs) {
		return nil, fmt.Errorf("%w: satellite service returned %d name sets for %d epochs", ErrShape, len(names), len(epochs))
	}

	var (
		locSVIDs []model.SVID
		locTimes []gnsstime.GTime
	)
	for i, perEpoch := range names {
		for _, svid := range perEpoch {
			if wanted[svid.Constellation()] {
				locSVIDs = append(locSVIDs, svid)
				locTimes = append(locTimes, epochs[i])
			}
		}
	}

	positions, err := svc.LocateSatellites(ctx, locSVIDs, locTimes)
	if err != nil {
		return nil, fmt.Errorf("locating satellites: %w", err)
	}

	sats := make(map[gnsstime.GTime]map[model.SVID]r3.Vec, len(epochs))
	for _, pos := range positions {
		at := sats[pos.GPSTime]
		if at == nil {
			at = make(map[model.SVID]r3.Vec)
			sats[pos.GPSTime] = at
		}
		at[pos.SVID] = pos.ECEF
	}
	return sats, nil
}

// FilterElevation returns the observations whose elevation angle lies within
// the inclusive bounds [lb, ub] degrees. Bounds must satisfy
// 0 <= lb <= ub <= 90. Surviving rows are returned unmodified.
func FilterElevation(cfg Config, obs []model.Observation, lb, ub float64) ([]model.Observation, error) {
	if !(0 <= lb && lb <= ub && ub <= 90) {
		return nil, fmt.Errorf("%w: elevation bounds [%v, %v] must satisfy 0 <= lb <= ub <= 90", ErrConfig, lb, ub)
	}

	rays := make([]model.LineString, len(obs))
	for i, o := range obs {
		rays[i] = o.Ray
	}
	elev, err := Elevations(cfg, rays)
	if err != nil {
		return nil, err
	}

	kept := make([]model.Observation, 0, len(obs))
	for i, o := range obs {
		if lb <= elev[i] && elev[i] <= ub {
			kept = append(kept, o)
		}
	}
	return kept, nil
}

func sortedSVIDs(at map[model.SVID]r3.Vec) []model.SVID {
	svids := maps.Keys(at)
	slices.Sort(svids)
	return svids
}
