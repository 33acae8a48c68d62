package core

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/signalsfoundry/gnssmapper/model"
)

// WGS-84 ellipsoid parameters.
const (
	wgs84A  = 6378137.0             // semi-major axis (metres)
	wgs84F  = 1.0 / 298.257223563   // flattening
	wgs84E2 = wgs84F * (2 - wgs84F) // first eccentricity squared
)

// ToCRS3D reprojects a line into the target CRS coordinate by coordinate.
// The Z value is always carried through the transform; there is no 2D fast
// path. Source and target CRS must both be recognised.
func ToCRS3D(l model.LineString, target model.CRS) (model.LineString, error) {
	if err := CheckCRS(l.CRS); err != nil {
		return model.LineString{}, err
	}
	if err := CheckCRS(target); err != nil {
		return model.LineString{}, err
	}
	out := model.LineString{Coords: make([]r3.Vec, len(l.Coords)), CRS: target}
	for i, c := range l.Coords {
		out.Coords[i] = transformCoord(c, l.CRS, target)
	}
	return out, nil
}

// PointToCRS3D reprojects a single point into the target CRS.
func PointToCRS3D(p model.Point, target model.CRS) (model.Point, error) {
	if err := CheckCRS(p.CRS); err != nil {
		return model.Point{}, err
	}
	if err := CheckCRS(target); err != nil {
		return model.Point{}, err
	}
	return model.Point{Vec: transformCoord(p.Vec, p.CRS, target), CRS: target}, nil
}

func transformCoord(v r3.Vec, from, to model.CRS) r3.Vec {
	if from == to {
		return v
	}
	switch {
	case from == model.CRSWGS84Geographic && to == model.CRSWGS84Cartesian:
		return geodeticToECEF(v)
	case from == model.CRSWGS84Cartesian && to == model.CRSWGS84Geographic:
		return ecefToGeodetic(v)
	}
	return v
}

// geodeticToECEF converts (lat deg, lon deg, height m) to ECEF metres.
func geodeticToECEF(v r3.Vec) r3.Vec {
	lat := v.X * math.Pi / 180
	lon := v.Y * math.Pi / 180
	h := v.Z

	sinLat := math.Sin(lat)
	cosLat := math.Cos(lat)

	// Radius of curvature in the prime vertical.
	n := wgs84A / math.Sqrt(1-wgs84E2*sinLat*sinLat)

	return r3.Vec{
		X: (n + h) * cosLat * math.Cos(lon),
		Y: (n + h) * cosLat * math.Sin(lon),
		Z: (n*(1-wgs84E2) + h) * sinLat,
	}
}

// ecefToGeodetic converts ECEF metres to (lat deg, lon deg, height m) using
// the iterative Bowring method, which converges in a handful of iterations
// for any point between the geocentre and GNSS orbit radius.
func ecefToGeodetic(v r3.Vec) r3.Vec {
	lon := math.Atan2(v.Y, v.X)
	p := math.Hypot(v.X, v.Y)

	lat := math.Atan2(v.Z, p*(1-wgs84E2))
	for i := 0; i < 5; i++ {
		sinLat := math.Sin(lat)
		n := wgs84A / math.Sqrt(1-wgs84E2*sinLat*sinLat)
		lat = math.Atan2(v.Z+wgs84E2*n*sinLat, p)
	}

	sinLat := math.Sin(lat)
	cosLat := math.Cos(lat)
	n := wgs84A / math.Sqrt(1-wgs84E2*sinLat*sinLat)

	var h float64
	if math.Abs(cosLat) > 1e-10 {
		h = p/cosLat - n
	} else {
		h = math.Abs(v.Z)/math.Abs(sinLat) - n*(1-wgs84E2)
	}

	return r3.Vec{
		X: lat * 180 / math.Pi,
		Y: lon * 180 / math.Pi,
		Z: h,
	}
}
