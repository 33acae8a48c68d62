package core

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/signalsfoundry/gnssmapper/model"
)

// Elevations returns, for each two-point sight line, the elevation angle in
// degrees of the far endpoint above the local horizontal plane at the near
// endpoint. Output range is [-90, 90].
//
// A zero-length line has no defined direction; its elevation is NaN, which
// no inclusive bounds check accepts.
func Elevations(cfg Config, rays []model.LineString) ([]float64, error) {
	if err := CheckRays(rays); err != nil {
		return nil, err
	}

	out := make([]float64, len(rays))
	for i, ray := range rays {
		ecef, err := ToCRS3D(ray, cfg.EPSGWGS84Cart)
		if err != nil {
			return nil, err
		}
		lla, err := ToCRS3D(ray, cfg.EPSGWGS84)
		if err != nil {
			return nil, err
		}

		// Unit vector from receiver towards satellite.
		delta := r3.Unit(r3.Sub(ecef.Coords[1], ecef.Coords[0]))

		// Spherical-normal up vector at the receiver's latitude/longitude.
		lat := lla.Coords[0].X * math.Pi / 180
		lon := lla.Coords[0].Y * math.Pi / 180
		up := r3.Vec{
			X: math.Cos(lon) * math.Cos(lat),
			Y: math.Sin(lon) * math.Cos(lat),
			Z: math.Sin(lat),
		}

		out[i] = math.Asin(r3.Dot(delta, up)) * 180 / math.Pi
	}
	return out, nil
}
