package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/signalsfoundry/gnssmapper/model"
)

// readPoints parses receiver points from CSV. Required columns: time
// (RFC 3339), x, y, z. Optional columns: svid, plus any number of numeric
// signal columns (e.g. cn0) carried through to the output features.
func readPoints(r io.Reader, crs model.CRS) ([]model.ReceiverPoint, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"time", "x", "y", "z"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("CSV is missing required column %q", required)
		}
	}

	var points []model.ReceiverPoint
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV line %d: %w", line, err)
		}

		tm, err := time.Parse(time.RFC3339, record[col["time"]])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid time: %w", line, err)
		}

		var vec r3.Vec
		for _, axis := range []struct {
			name string
			dst  *float64
		}{{"x", &vec.X}, {"y", &vec.Y}, {"z", &vec.Z}} {
			val, err := strconv.ParseFloat(record[col[axis.name]], 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid %s: %w", line, axis.name, err)
			}
			*axis.dst = val
		}

		p := model.ReceiverPoint{
			Position: model.Point{Vec: vec, CRS: crs},
			Time:     tm.UTC(),
		}
		if i, ok := col["svid"]; ok && record[i] != "" {
			p.SVID = model.SVID(record[i])
		}
		for name, i := range col {
			switch name {
			case "time", "x", "y", "z", "svid":
				continue
			}
			if record[i] == "" {
				continue
			}
			val, err := strconv.ParseFloat(record[i], 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid %s: %w", line, name, err)
			}
			if p.Signals == nil {
				p.Signals = make(map[string]float64)
			}
			p.Signals[name] = val
		}
		points = append(points, p)
	}
	return points, nil
}

// GeoJSON output shapes. The coordinates are 3D and expressed in the
// satellite storage frame, recorded in the legacy top-level crs member.
type featureCollection struct {
	Type     string    `json:"type"`
	CRS      namedCRS  `json:"crs"`
	Features []feature `json:"features"`
}

type namedCRS struct {
	Type       string            `json:"type"`
	Properties map[string]string `json:"properties"`
}

type feature struct {
	Type       string         `json:"type"`
	Geometry   lineGeometry   `json:"geometry"`
	Properties map[string]any `json:"properties"`
}

type lineGeometry struct {
	Type        string       `json:"type"`
	Coordinates [][3]float64 `json:"coordinates"`
}

// writeGeoJSON encodes observations as a GeoJSON FeatureCollection of
// 3D LineString features.
func writeGeoJSON(w io.Writer, crs model.CRS, obs []model.Observation) error {
	fc := featureCollection{
		Type: "FeatureCollection",
		CRS: namedCRS{
			Type:       "name",
			Properties: map[string]string{"name": string(crs)},
		},
		Features: make([]feature, len(obs)),
	}
	for i, o := range obs {
		coords := make([][3]float64, len(o.Ray.Coords))
		for j, c := range o.Ray.Coords {
			coords[j] = [3]float64{c.X, c.Y, c.Z}
		}
		props := map[string]any{
			"time": o.Time.UTC().Format(time.RFC3339Nano),
			"svid": string(o.SVID),
		}
		for name, val := range o.Signals {
			props[name] = val
		}
		fc.Features[i] = feature{
			Type:       "Feature",
			Geometry:   lineGeometry{Type: "LineString", Coordinates: coords},
			Properties: props,
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(fc)
}
