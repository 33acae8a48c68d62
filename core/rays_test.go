package core

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestRaysTruncateToConfiguredLength(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RayLength = 1000

	receiver := r3.Vec{X: wgs84A, Y: 0, Z: 0}
	satellite := r3.Vec{X: wgs84A + 15000000, Y: 8000000, Z: 12000000}

	rays, err := Rays(cfg, []r3.Vec{receiver}, []r3.Vec{satellite})
	if err != nil {
		t.Fatalf("Rays: %v", err)
	}
	if got := rays[0].Length(); math.Abs(got-1000) > 1e-6 {
		t.Fatalf("truncated ray length = %v, want 1000", got)
	}

	// Direction must match the original sight line.
	full := r3.Unit(r3.Sub(satellite, receiver))
	short := r3.Unit(r3.Sub(rays[0].Coords[1], rays[0].Coords[0]))
	if math.Abs(full.X-short.X) > 1e-9 || math.Abs(full.Y-short.Y) > 1e-9 || math.Abs(full.Z-short.Z) > 1e-9 {
		t.Fatalf("truncated direction %+v differs from original %+v", short, full)
	}

	if rays[0].Coords[0] != receiver {
		t.Fatalf("ray start %+v moved from receiver %+v", rays[0].Coords[0], receiver)
	}
}

func TestRaysShorterThanTruncationClampToSatellite(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RayLength = 1000

	receiver := r3.Vec{}
	satellite := r3.Vec{X: 400, Y: 0, Z: 0}

	rays, err := Rays(cfg, []r3.Vec{receiver}, []r3.Vec{satellite})
	if err != nil {
		t.Fatalf("Rays: %v", err)
	}
	if rays[0].Coords[1] != satellite {
		t.Fatalf("short ray endpoint = %+v, want original satellite %+v", rays[0].Coords[1], satellite)
	}
}

func TestRaysLengthMismatch(t *testing.T) {
	_, err := Rays(DefaultConfig(), []r3.Vec{{}}, nil)
	if !errors.Is(err, ErrShape) {
		t.Fatalf("mismatched input error = %v, want ErrShape", err)
	}
}
