package core

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/signalsfoundry/gnssmapper/model"
)

// Rays builds a truncated sight line for every (receiver, satellite)
// coordinate pair, both expressed in the satellite storage frame. The line
// starts at the receiver and points at the satellite, cut off at
// cfg.RayLength to keep downstream projected-CRS operations in a sane
// numeric range. When the satellite is nearer than cfg.RayLength the line
// ends at the satellite itself.
func Rays(cfg Config, receivers, satellites []r3.Vec) ([]model.LineString, error) {
	if len(receivers) != len(satellites) {
		return nil, fmt.Errorf("%w: %d receivers vs %d satellites", ErrShape, len(receivers), len(satellites))
	}
	rays := make([]model.LineString, len(receivers))
	for i := range receivers {
		full := model.NewLine(receivers[i], satellites[i], cfg.EPSGSatellites)
		short := full.Interpolate(cfg.RayLength)
		rays[i] = model.NewLine(receivers[i], short, cfg.EPSGSatellites)
	}
	return rays, nil
}
