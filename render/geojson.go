// SPDX-License-Identifier: MIT

package render

import (
	"encoding/json"
	"io"

	"github.com/katalvlaran/gridflow/core"
)

// FeatureCollection is a GeoJSON document.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
	// Skipped counts nodes and branches left out for lack of coordinates.
	Skipped int `json:"-"`
}

// Feature is one GeoJSON feature.
type Feature struct {
	Type       string         `json:"type"`
	Geometry   Geometry       `json:"geometry"`
	Properties map[string]any `json:"properties"`
}

// Geometry is a Point ([lon, lat]) or a LineString ([[lon, lat], ...]).
type Geometry struct {
	Type        string `json:"type"`
	Coordinates any    `json:"coordinates"`
}

// Feature kinds in the "kind" property.
const (
	KindNode = "node"
	KindLine = "line"
	KindLink = "link"
)

// GeoJSON converts m to a FeatureCollection: nodes as Points, lines and
// links as two-point LineStrings. A node at (0, 0) has no known location;
// it and every branch touching it are skipped.
func GeoJSON(m *core.Model) *FeatureCollection {
	fc := &FeatureCollection{Type: "FeatureCollection", Features: []Feature{}}
	located := make(map[core.ID][2]float64)

	for _, n := range m.Nodes() {
		if n.Lat == 0 && n.Lon == 0 {
			fc.Skipped++
			continue
		}
		located[n.ID] = [2]float64{n.Lon, n.Lat}
		fc.Features = append(fc.Features, Feature{
			Type:     "Feature",
			Geometry: Geometry{Type: "Point", Coordinates: located[n.ID]},
			Properties: map[string]any{
				"kind":          KindNode,
				"id":            n.ID,
				"name":          n.Name,
				"class":         n.Class.String(),
				"rated_voltage": n.RatedVoltage,
				"peak_load_kw":  n.PeakLoadKW,
			},
		})
	}

	branch := func(from, to core.ID, props map[string]any) {
		a, okA := located[from]
		b, okB := located[to]
		if !okA || !okB {
			fc.Skipped++
			return
		}
		fc.Features = append(fc.Features, Feature{
			Type:       "Feature",
			Geometry:   Geometry{Type: "LineString", Coordinates: [][2]float64{a, b}},
			Properties: props,
		})
	}
	for _, l := range m.Lines() {
		branch(l.From, l.To, map[string]any{
			"kind":          KindLine,
			"id":            l.ID,
			"name":          l.Name,
			"from":          l.From,
			"to":            l.To,
			"length_km":     l.LengthKm,
			"voltage_level": string(l.Level),
		})
	}
	for _, k := range m.Links() {
		branch(k.From, k.To, map[string]any{
			"kind":        KindLink,
			"id":          k.ID,
			"name":        k.Name,
			"from":        k.From,
			"to":          k.To,
			"distance_km": k.DistanceKm,
		})
	}
	return fc
}

// WriteGeoJSON writes fc as indented JSON.
func WriteGeoJSON(w io.Writer, fc *FeatureCollection) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(fc)
}
