package core

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/signalsfoundry/gnssmapper/model"
)

// Polar radius of the WGS-84 ellipsoid.
const wgs84B = 6356752.314245179

func elevationOf(t *testing.T, receiver, satellite r3.Vec) float64 {
	t.Helper()
	ray := model.NewLine(receiver, satellite, model.CRSWGS84Cartesian)
	elev, err := Elevations(DefaultConfig(), []model.LineString{ray})
	if err != nil {
		t.Fatalf("Elevations: %v", err)
	}
	return elev[0]
}

func TestElevationZenithAtPole(t *testing.T) {
	// Satellite along the polar axis, straight above a north pole receiver.
	got := elevationOf(t,
		r3.Vec{X: 0, Y: 0, Z: wgs84B},
		r3.Vec{X: 0, Y: 0, Z: 26000000})
	if math.Abs(got-90) > 1e-6 {
		t.Fatalf("zenith elevation = %v, want 90", got)
	}
}

func TestElevationHorizonAtPole(t *testing.T) {
	// Sight line orthogonal to the polar axis lies in the local horizon.
	got := elevationOf(t,
		r3.Vec{X: 0, Y: 0, Z: wgs84B},
		r3.Vec{X: 5000000, Y: 0, Z: wgs84B})
	if math.Abs(got) > 1e-6 {
		t.Fatalf("horizon elevation = %v, want 0", got)
	}
}

func TestElevationBelowHorizon(t *testing.T) {
	// Satellite on the far side of the Earth from an equatorial receiver.
	got := elevationOf(t,
		r3.Vec{X: wgs84A, Y: 0, Z: 0},
		r3.Vec{X: -26000000, Y: 0, Z: 0})
	if math.Abs(got+90) > 1e-6 {
		t.Fatalf("antipodal elevation = %v, want -90", got)
	}
}

func TestElevationMidAngle(t *testing.T) {
	// Equatorial receiver, sight line at 45 degrees to the local up vector.
	got := elevationOf(t,
		r3.Vec{X: wgs84A, Y: 0, Z: 0},
		r3.Vec{X: wgs84A + 10000000, Y: 0, Z: 10000000})
	if math.Abs(got-45) > 1e-6 {
		t.Fatalf("elevation = %v, want 45", got)
	}
}

func TestElevationDegenerateRayIsNaN(t *testing.T) {
	// Receiver and satellite coincident: the direction is undefined and the
	// elevation is NaN, which no inclusive bounds filter keeps.
	p := r3.Vec{X: wgs84A, Y: 0, Z: 0}
	if got := elevationOf(t, p, p); !math.IsNaN(got) {
		t.Fatalf("degenerate elevation = %v, want NaN", got)
	}
}

func TestElevationRejectsNonRays(t *testing.T) {
	three := model.LineString{
		Coords: []r3.Vec{{}, {X: 1}, {X: 2}},
		CRS:    model.CRSWGS84Cartesian,
	}
	if _, err := Elevations(DefaultConfig(), []model.LineString{three}); err == nil {
		t.Fatal("expected shape error for a three-point line")
	}
}
