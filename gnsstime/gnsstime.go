// Package gnsstime converts between UTC and the GPS time scale.
//
// GPS time is a continuous atomic time scale counted from the GPS epoch
// (1980-01-06 00:00:00 UTC) and does not observe leap seconds, so it runs
// ahead of UTC by the accumulated leap-second offset (18 s since 2017-01-01).
package gnsstime

import (
	"math"
	"time"
)

// secondsPerWeek is the length of a GPS week.
const secondsPerWeek = 7 * 24 * 3600

// gpsEpoch is the start of the GPS time scale.
var gpsEpoch = time.Date(1980, 1, 6, 0, 0, 0, 0, time.UTC)

// leapStep is a UTC instant at which the GPS-UTC offset changed, together
// with the offset in effect from that instant on.
type leapStep struct {
	at     time.Time
	offset int
}

// leapSeconds lists the GPS-UTC offset history since the GPS epoch,
// most recent first.
var leapSeconds = []leapStep{
	{time.Date(2017, 1, 1, 0, 0, 0, 0, time.UTC), 18},
	{time.Date(2015, 7, 1, 0, 0, 0, 0, time.UTC), 17},
	{time.Date(2012, 7, 1, 0, 0, 0, 0, time.UTC), 16},
	{time.Date(2009, 1, 1, 0, 0, 0, 0, time.UTC), 15},
	{time.Date(2006, 1, 1, 0, 0, 0, 0, time.UTC), 14},
	{time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC), 13},
	{time.Date(1997, 7, 1, 0, 0, 0, 0, time.UTC), 12},
	{time.Date(1996, 1, 1, 0, 0, 0, 0, time.UTC), 11},
	{time.Date(1994, 7, 1, 0, 0, 0, 0, time.UTC), 10},
	{time.Date(1993, 7, 1, 0, 0, 0, 0, time.UTC), 9},
	{time.Date(1992, 7, 1, 0, 0, 0, 0, time.UTC), 8},
	{time.Date(1991, 1, 1, 0, 0, 0, 0, time.UTC), 7},
	{time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC), 6},
	{time.Date(1988, 1, 1, 0, 0, 0, 0, time.UTC), 5},
	{time.Date(1985, 7, 1, 0, 0, 0, 0, time.UTC), 4},
	{time.Date(1983, 7, 1, 0, 0, 0, 0, time.UTC), 3},
	{time.Date(1982, 7, 1, 0, 0, 0, 0, time.UTC), 2},
	{time.Date(1981, 7, 1, 0, 0, 0, 0, time.UTC), 1},
}

// LeapSeconds returns the GPS-UTC offset in effect at the given UTC instant.
func LeapSeconds(utc time.Time) int {
	for _, step := range leapSeconds {
		if !utc.Before(step.at) {
			return step.offset
		}
	}
	return 0
}

// GTime is an instant on the GPS time scale, expressed as a GPS week number
// and seconds into that week.
type GTime struct {
	Week int
	Sec  float64
}

// UTCToGPS converts a UTC instant to GPS time.
func UTCToGPS(utc time.Time) GTime {
	utc = utc.UTC()
	elapsed := utc.Unix() - gpsEpoch.Unix() + int64(LeapSeconds(utc))
	return GTime{
		Week: int(elapsed / secondsPerWeek),
		Sec:  float64(elapsed%secondsPerWeek) + float64(utc.Nanosecond())/1e9,
	}
}

// GPSToUTC converts a GPS instant back to UTC.
func GPSToUTC(g GTime) time.Time {
	whole := int64(math.Trunc(g.Sec))
	nanos := int64(math.Round((g.Sec - float64(whole)) * 1e9))
	t := gpsEpoch.Add(time.Duration(int64(g.Week)*secondsPerWeek+whole) * time.Second).
		Add(time.Duration(nanos) * time.Nanosecond)

	// The offset table is keyed by UTC, so look it up with the uncorrected
	// instant first and re-check after subtracting. A single retry settles
	// any lookup that straddles a leap step.
	offset := LeapSeconds(t)
	utc := t.Add(-time.Duration(offset) * time.Second)
	if again := LeapSeconds(utc); again != offset {
		utc = t.Add(-time.Duration(again) * time.Second)
	}
	return utc
}

// Before reports whether g is earlier than other.
func (g GTime) Before(other GTime) bool {
	if g.Week != other.Week {
		return g.Week < other.Week
	}
	return g.Sec < other.Sec
}
