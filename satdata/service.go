package satdata

import (
	"context"
	"fmt"

	satellite "github.com/joshuaferrara/go-satellite"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/signalsfoundry/gnssmapper/gnsstime"
	"github.com/signalsfoundry/gnssmapper/model"
)

const kmToM = 1000.0

// NameSatellites returns the svids of every catalogued satellite for each
// GPS instant. The catalog does not model launch or decommission dates, so
// the set is the same at every instant; above-horizon selection happens in
// the elevation filter downstream.
func (c *Catalog) NameSatellites(ctx context.Context, times []gnsstime.GTime) ([][]model.SVID, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	svids := c.SVIDs()
	out := make([][]model.SVID, len(times))
	for i := range times {
		out[i] = svids
	}
	return out, nil
}

// LocateSatellites propagates each (svid, time) pair with SGP4 and returns
// ECEF positions in metres. The inputs are paired by index and must have
// equal length.
func (c *Catalog) LocateSatellites(ctx context.Context, svids []model.SVID, times []gnsstime.GTime) ([]model.SatellitePosition, error) {
	if len(svids) != len(times) {
		return nil, fmt.Errorf("%d svids vs %d times", len(svids), len(times))
	}

	out := make([]model.SatellitePosition, len(svids))
	for i := range svids {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		c.mu.RLock()
		rec, ok := c.sats[svids[i]]
		c.mu.RUnlock()
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrSatelliteNotFound, svids[i])
		}

		out[i] = model.SatellitePosition{
			SVID:    svids[i],
			GPSTime: times[i],
			ECEF:    propagateECEF(rec.sat, times[i]),
		}
	}
	return out, nil
}

// propagateECEF runs SGP4 for the given GPS instant and rotates the ECI
// result into the Earth-fixed frame. The propagator works on whole seconds;
// sub-second parts of the instant are truncated.
func propagateECEF(sat satellite.Satellite, t gnsstime.GTime) r3.Vec {
	utc := gnsstime.GPSToUTC(t)
	year, month, day := utc.Date()
	hour, min, sec := utc.Clock()

	posECI, _ := satellite.Propagate(sat, year, int(month), day, hour, min, sec)
	jd := satellite.JDay(year, int(month), day, hour, min, sec)
	gmst := satellite.ThetaG_JD(jd)
	posECEF := satellite.ECIToECEF(posECI, gmst)

	return r3.Vec{
		X: posECEF.X * kmToM,
		Y: posECEF.Y * kmToM,
		Z: posECEF.Z * kmToM,
	}
}
