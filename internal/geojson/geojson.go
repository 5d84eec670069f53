package geojson

import "encoding/json"

// Geometry is the geometry member of a GeoJSON object. Coordinates are kept
// raw because their nesting depth depends on Type.
type Geometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

// Feature is a GeoJSON feature with its free-form properties bag.
type Feature struct {
	Type       string         `json:"type"`
	Properties map[string]any `json:"properties"`
	Geometry   *Geometry      `json:"geometry"`
}

// Document is any of the GeoJSON shapes a day file may hold: a
// FeatureCollection, a single Feature, or a bare geometry.
type Document struct {
	Type        string          `json:"type"`
	Features    []Feature       `json:"features,omitempty"`
	Properties  map[string]any  `json:"properties,omitempty"`
	Geometry    *Geometry       `json:"geometry,omitempty"`
	Coordinates json.RawMessage `json:"coordinates,omitempty"`
}

func Decode(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Track returns the flat coordinate sequence of a geometry: LineString
// coordinates as-is, MultiLineString members concatenated in listed order.
// Member boundaries are not preserved, so the jump between the end of one
// member and the start of the next is measured like any other leg.
// Unsupported geometry kinds yield nil rather than an error.
func (g *Geometry) Track() [][]float64 {
	if g == nil {
		return nil
	}
	switch g.Type {
	case "LineString":
		var coords [][]float64
		if err := json.Unmarshal(g.Coordinates, &coords); err != nil {
			return nil
		}
		return coords
	case "MultiLineString":
		var lines [][][]float64
		if err := json.Unmarshal(g.Coordinates, &lines); err != nil {
			return nil
		}
		var coords [][]float64
		for _, line := range lines {
			coords = append(coords, line...)
		}
		return coords
	default:
		return nil
	}
}

// Track returns the document's coordinate sequence. For a FeatureCollection
// it is the track of the first feature that yields a non-empty one; features
// with unsupported or empty geometry are skipped, never merged. An empty
// result is the uniform "nothing here" signal for any unusable input.
func (d *Document) Track() [][]float64 {
	if d == nil {
		return nil
	}
	switch d.Type {
	case "FeatureCollection":
		for _, f := range d.Features {
			if coords := f.Geometry.Track(); len(coords) > 0 {
				return coords
			}
		}
		return nil
	case "Feature":
		return d.Geometry.Track()
	default:
		g := Geometry{Type: d.Type, Coordinates: d.Coordinates}
		return g.Track()
	}
}

// FirstProperties returns the properties of the document's first feature,
// where trip authors embed day labels and hand-measured stats.
func (d *Document) FirstProperties() map[string]any {
	if d == nil {
		return nil
	}
	switch d.Type {
	case "FeatureCollection":
		if len(d.Features) > 0 {
			return d.Features[0].Properties
		}
		return nil
	case "Feature":
		return d.Properties
	default:
		return nil
	}
}
