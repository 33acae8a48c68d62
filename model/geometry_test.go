package model

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestLineStringLength(t *testing.T) {
	l := NewLine(r3.Vec{}, r3.Vec{X: 3, Y: 4}, CRSWGS84Cartesian)
	if got := l.Length(); math.Abs(got-5) > 1e-12 {
		t.Fatalf("length = %v, want 5", got)
	}
}

func TestInterpolateAlongLine(t *testing.T) {
	l := NewLine(r3.Vec{}, r3.Vec{X: 10}, CRSWGS84Cartesian)

	if got := l.Interpolate(4); got != (r3.Vec{X: 4}) {
		t.Errorf("Interpolate(4) = %+v, want {4 0 0}", got)
	}
	// Beyond the far end clamps to the last coordinate.
	if got := l.Interpolate(25); got != (r3.Vec{X: 10}) {
		t.Errorf("Interpolate(25) = %+v, want {10 0 0}", got)
	}
	// Negative distance clamps to the start.
	if got := l.Interpolate(-1); got != (r3.Vec{}) {
		t.Errorf("Interpolate(-1) = %+v, want {0 0 0}", got)
	}
}

func TestSVIDShape(t *testing.T) {
	cases := []struct {
		svid SVID
		ok   bool
	}{
		{"G01", true},
		{"R24", true},
		{"E05", true},
		{"g01", false},
		{"G1", false},
		{"G123", false},
		{"GPS", false},
		{"", false},
	}
	for _, c := range cases {
		if got := c.svid.WellFormed(); got != c.ok {
			t.Errorf("WellFormed(%q) = %v, want %v", c.svid, got, c.ok)
		}
	}

	if got := SVID("G12").Constellation(); got != "G" {
		t.Errorf("Constellation(G12) = %q, want G", got)
	}
	if got := SVID("").Constellation(); got != "" {
		t.Errorf("Constellation of empty svid = %q, want empty", got)
	}
}
