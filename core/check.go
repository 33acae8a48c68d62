package core

import (
	"errors"
	"fmt"

	"github.com/signalsfoundry/gnssmapper/model"
)

// Sentinel errors for the two failure classes the pipeline can report.
// Shape errors mean an input or output collection violates its contract;
// config errors mean the caller supplied unusable parameters.
var (
	ErrShape  = errors.New("shape contract violated")
	ErrConfig = errors.New("invalid configuration")
)

// CheckCRS validates that a CRS is one the pipeline can transform.
func CheckCRS(crs model.CRS) error {
	switch crs {
	case model.CRSWGS84Cartesian, model.CRSWGS84Geographic:
		return nil
	case "":
		return fmt.Errorf("%w: missing CRS", ErrShape)
	default:
		return fmt.Errorf("%w: unrecognised CRS %q", ErrShape, crs)
	}
}

// CheckReceiverPoints validates the receiverpoints contract: every point has
// a known CRS, a non-zero UTC time, and a well-formed svid when one is set.
func CheckReceiverPoints(points []model.ReceiverPoint) error {
	if len(points) == 0 {
		return fmt.Errorf("%w: empty receiverpoints collection", ErrShape)
	}
	for i, p := range points {
		if err := CheckCRS(p.Position.CRS); err != nil {
			return fmt.Errorf("receiverpoint %d: %w", i, err)
		}
		if p.Time.IsZero() {
			return fmt.Errorf("%w: receiverpoint %d has no time", ErrShape, i)
		}
		if p.SVID != "" && !p.SVID.WellFormed() {
			return fmt.Errorf("%w: receiverpoint %d has malformed svid %q", ErrShape, i, p.SVID)
		}
	}
	return nil
}

// CheckConstellations validates that every requested constellation prefix is
// in the supported set.
func CheckConstellations(requested map[string]bool, supported map[string]bool) error {
	for c := range requested {
		if !supported[c] {
			return fmt.Errorf("%w: unsupported constellation %q", ErrConfig, c)
		}
	}
	return nil
}

// CheckRays validates the rays contract: two-point 3D lines in a known CRS.
func CheckRays(rays []model.LineString) error {
	for i, l := range rays {
		if len(l.Coords) != 2 {
			return fmt.Errorf("%w: ray %d has %d coordinates, want 2", ErrShape, i, len(l.Coords))
		}
		if err := CheckCRS(l.CRS); err != nil {
			return fmt.Errorf("ray %d: %w", i, err)
		}
	}
	return nil
}

// CheckObservations validates the observations contract before filtering.
func CheckObservations(cfg Config, obs []model.Observation) error {
	for i, o := range obs {
		if len(o.Ray.Coords) != 2 {
			return fmt.Errorf("%w: observation %d ray has %d coordinates, want 2", ErrShape, i, len(o.Ray.Coords))
		}
		if o.Ray.CRS != cfg.EPSGSatellites {
			return fmt.Errorf("%w: observation %d ray in CRS %q, want %q", ErrShape, i, o.Ray.CRS, cfg.EPSGSatellites)
		}
		if o.Time.IsZero() {
			return fmt.Errorf("%w: observation %d has no time", ErrShape, i)
		}
		if !o.SVID.WellFormed() {
			return fmt.Errorf("%w: observation %d has malformed svid %q", ErrShape, i, o.SVID)
		}
	}
	return nil
}
