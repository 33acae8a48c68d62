package core

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/signalsfoundry/gnssmapper/model"
)

func TestGeodeticToECEFKnownPoint(t *testing.T) {
	// Equator at the prime meridian sits on the semi-major axis.
	p, err := PointToCRS3D(model.Point{
		Vec: r3.Vec{X: 0, Y: 0, Z: 0},
		CRS: model.CRSWGS84Geographic,
	}, model.CRSWGS84Cartesian)
	if err != nil {
		t.Fatalf("PointToCRS3D: %v", err)
	}
	want := r3.Vec{X: 6378137, Y: 0, Z: 0}
	if math.Abs(p.Vec.X-want.X) > 1e-6 || math.Abs(p.Vec.Y) > 1e-6 || math.Abs(p.Vec.Z) > 1e-6 {
		t.Fatalf("equator point = %+v, want %+v", p.Vec, want)
	}
}

func TestRoundTripPreservesZ(t *testing.T) {
	// Geographic -> geocentric -> geographic must return the original
	// coordinates, including the height.
	orig := model.LineString{
		Coords: []r3.Vec{
			{X: 51.5074, Y: -0.1278, Z: 123.456},
			{X: -33.8688, Y: 151.2093, Z: 87.9},
		},
		CRS: model.CRSWGS84Geographic,
	}

	ecef, err := ToCRS3D(orig, model.CRSWGS84Cartesian)
	if err != nil {
		t.Fatalf("forward transform: %v", err)
	}
	back, err := ToCRS3D(ecef, model.CRSWGS84Geographic)
	if err != nil {
		t.Fatalf("inverse transform: %v", err)
	}

	for i := range orig.Coords {
		if math.Abs(back.Coords[i].X-orig.Coords[i].X) > 1e-9 {
			t.Errorf("coord %d latitude = %v, want %v", i, back.Coords[i].X, orig.Coords[i].X)
		}
		if math.Abs(back.Coords[i].Y-orig.Coords[i].Y) > 1e-9 {
			t.Errorf("coord %d longitude = %v, want %v", i, back.Coords[i].Y, orig.Coords[i].Y)
		}
		if math.Abs(back.Coords[i].Z-orig.Coords[i].Z) > 1e-3 {
			t.Errorf("coord %d height = %v, want %v (Z dropped or mangled)", i, back.Coords[i].Z, orig.Coords[i].Z)
		}
	}
}

func TestSameCRSIsIdentity(t *testing.T) {
	l := model.NewLine(r3.Vec{X: 1, Y: 2, Z: 3}, r3.Vec{X: 4, Y: 5, Z: 6}, model.CRSWGS84Cartesian)
	out, err := ToCRS3D(l, model.CRSWGS84Cartesian)
	if err != nil {
		t.Fatalf("ToCRS3D: %v", err)
	}
	if out.Coords[0] != l.Coords[0] || out.Coords[1] != l.Coords[1] {
		t.Fatalf("identity transform altered coordinates: %+v", out.Coords)
	}
}

func TestUnknownCRSRejected(t *testing.T) {
	l := model.NewLine(r3.Vec{}, r3.Vec{X: 1}, "EPSG:27700")
	if _, err := ToCRS3D(l, model.CRSWGS84Cartesian); !errors.Is(err, ErrShape) {
		t.Fatalf("unknown source CRS error = %v, want ErrShape", err)
	}
	l.CRS = model.CRSWGS84Cartesian
	if _, err := ToCRS3D(l, "EPSG:3857"); !errors.Is(err, ErrShape) {
		t.Fatalf("unknown target CRS error = %v, want ErrShape", err)
	}
	if _, err := PointToCRS3D(model.Point{CRS: ""}, model.CRSWGS84Cartesian); !errors.Is(err, ErrShape) {
		t.Fatalf("missing CRS error = %v, want ErrShape", err)
	}
}
