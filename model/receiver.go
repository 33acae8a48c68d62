package model

import "time"

// SVID is a satellite vehicle identifier such as "G01" or "R12". The first
// byte names the constellation (G=GPS, R=GLONASS, C=BeiDou, E=Galileo,
// J=QZSS).
type SVID string

// Constellation returns the single-letter constellation prefix, or "" for an
// empty svid.
func (s SVID) Constellation() string {
	if s == "" {
		return ""
	}
	return string(s[0])
}

// WellFormed reports whether the svid matches the letter-plus-two-digits
// shape. It does not check the prefix against any supported set.
func (s SVID) WellFormed() bool {
	if len(s) != 3 {
		return false
	}
	if s[0] < 'A' || s[0] > 'Z' {
		return false
	}
	return s[1] >= '0' && s[1] <= '9' && s[2] >= '0' && s[2] <= '9'
}

// ReceiverPoint is one receiver observation epoch: a 3D position, the UTC
// time it was recorded, an optional measured svid, and any signal features
// (e.g. carrier-to-noise density) carried through to the output.
type ReceiverPoint struct {
	Position Point
	Time     time.Time
	SVID     SVID // optional
	Signals  map[string]float64
}
