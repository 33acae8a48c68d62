package model

import "gonum.org/v1/gonum/spatial/r3"

// CRS identifies a coordinate reference system by EPSG code.
type CRS string

const (
	// CRSWGS84Cartesian is the WGS-84 geocentric Cartesian frame (ECEF metres).
	CRSWGS84Cartesian CRS = "EPSG:4978"
	// CRSWGS84Geographic is the WGS-84 geographic 3D frame. Coordinates are
	// stored as X=latitude (degrees), Y=longitude (degrees), Z=ellipsoidal
	// height (metres), following the EPSG axis order.
	CRSWGS84Geographic CRS = "EPSG:4979"
)

// Point is a 3D position tagged with the CRS its coordinates are expressed in.
type Point struct {
	Vec r3.Vec
	CRS CRS
}

// LineString is a 3D polyline tagged with a CRS. Sight-line rays are always
// two-point lines.
type LineString struct {
	Coords []r3.Vec
	CRS    CRS
}

// NewLine returns the two-point line from a to b.
func NewLine(a, b r3.Vec, crs CRS) LineString {
	return LineString{Coords: []r3.Vec{a, b}, CRS: crs}
}

// Length returns the total length of the line in CRS units.
func (l LineString) Length() float64 {
	var total float64
	for i := 1; i < len(l.Coords); i++ {
		total += r3.Norm(r3.Sub(l.Coords[i], l.Coords[i-1]))
	}
	return total
}

// Interpolate returns the point at distance d along the line, measured from
// the first coordinate. Distances beyond either end clamp to the nearest
// endpoint.
func (l LineString) Interpolate(d float64) r3.Vec {
	if len(l.Coords) == 0 {
		return r3.Vec{}
	}
	if d <= 0 {
		return l.Coords[0]
	}
	remaining := d
	for i := 1; i < len(l.Coords); i++ {
		seg := r3.Sub(l.Coords[i], l.Coords[i-1])
		segLen := r3.Norm(seg)
		if remaining <= segLen && segLen > 0 {
			return r3.Add(l.Coords[i-1], r3.Scale(remaining/segLen, seg))
		}
		remaining -= segLen
	}
	return l.Coords[len(l.Coords)-1]
}
