package common

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// GeoKind is the shape of a georeference.
type GeoKind string

const (
	GeoArea    GeoKind = "area"
	GeoPoint   GeoKind = "point"
	GeoPolygon GeoKind = "polygon"
)

// Coordinate is a WGS84 position. It is encoded as a [lat, lng] pair.
type Coordinate struct {
	Lat float64
	Lng float64
}

func (c Coordinate) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{c.Lat, c.Lng})
}

func (c *Coordinate) UnmarshalJSON(data []byte) error {
	var pair []float64
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("coordinate must be a [lat, lng] pair: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("coordinate must have exactly 2 components, got %d", len(pair))
	}
	c.Lat, c.Lng = pair[0], pair[1]
	return nil
}

func (c Coordinate) validate() error {
	if math.IsNaN(c.Lat) || math.IsNaN(c.Lng) {
		return fmt.Errorf("coordinate is not a number")
	}
	if c.Lat < -90 || c.Lat > 90 {
		return fmt.Errorf("latitude %v out of range", c.Lat)
	}
	if c.Lng < -180 || c.Lng > 180 {
		return fmt.Errorf("longitude %v out of range", c.Lng)
	}
	return nil
}

// Georeference anchors a document in space. A nil *Georeference on a document
// means the whole municipality.
type Georeference struct {
	Type    GeoKind
	Name    string
	Point   Coordinate
	Polygon []Coordinate
}

// Validate checks the shape and the coordinate ranges.
func (g Georeference) Validate() error {
	fail := func(format string, args ...any) error {
		return ValidationError{Field: "georeference", Message: fmt.Sprintf(format, args...)}
	}

	switch g.Type {
	case GeoArea:
		if strings.TrimSpace(g.Name) == "" {
			return fail("an area reference needs a name")
		}
	case GeoPoint:
		if err := g.Point.validate(); err != nil {
			return fail("%v", err)
		}
	case GeoPolygon:
		for i, c := range g.Polygon {
			if err := c.validate(); err != nil {
				return fail("vertex %d: %v", i, err)
			}
		}
		if n := distinctVertices(g.Polygon); n < 3 {
			return fail("a polygon needs at least 3 distinct vertices, got %d", n)
		}
	default:
		return fail("unknown type %q, expected area, point or polygon", g.Type)
	}
	return nil
}

func distinctVertices(ring []Coordinate) int {
	seen := make(map[Coordinate]struct{}, len(ring))
	for _, c := range ring {
		seen[c] = struct{}{}
	}
	return len(seen)
}

type georeferenceJSON struct {
	Type        GeoKind         `json:"type"`
	Name        string          `json:"name,omitempty"`
	Coordinates json.RawMessage `json:"coordinates,omitempty"`
}

func (g Georeference) MarshalJSON() ([]byte, error) {
	out := georeferenceJSON{Type: g.Type, Name: g.Name}
	var err error
	switch g.Type {
	case GeoPoint:
		out.Coordinates, err = json.Marshal(g.Point)
	case GeoPolygon:
		out.Coordinates, err = json.Marshal(g.Polygon)
	}
	if err != nil {
		return nil, err
	}
	return json.Marshal(out)
}

func (g *Georeference) UnmarshalJSON(data []byte) error {
	var in georeferenceJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return ValidationError{Field: "georeference", Message: err.Error()}
	}
	out := Georeference{Type: GeoKind(strings.ToLower(string(in.Type))), Name: in.Name}
	switch out.Type {
	case GeoPoint:
		if err := json.Unmarshal(in.Coordinates, &out.Point); err != nil {
			return ValidationError{Field: "georeference", Message: err.Error()}
		}
	case GeoPolygon:
		if err := json.Unmarshal(in.Coordinates, &out.Polygon); err != nil {
			return ValidationError{Field: "georeference", Message: err.Error()}
		}
	}
	*g = out
	return nil
}
