// Package geojson serializes domain feature collections as GeoJSON documents.
//
// Two encodings are supported. The raw encoding keeps coordinates as the text
// found in the source CSV, e.g. "coordinates":["-122.41","37.77"], which is
// what the downstream gist map viewer was fed historically. The numeric
// encoding parses coordinates and emits RFC 7946 numbers with a bounding box.
// go-geom builds the point geometries and bounds; the feature envelope is
// encoded here so both encodings share integer ids and unescaped text.
package geojson

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/couchcryptid/incident-viz/internal/domain"
	"github.com/twpayne/go-geom"
	geomjson "github.com/twpayne/go-geom/encoding/geojson"
)

type featureCollection struct {
	Type     string    `json:"type"`
	Features []feature `json:"features"`
}

type feature struct {
	Type       string     `json:"type"`
	ID         int        `json:"id"`
	Properties properties `json:"properties"`
	Geometry   point      `json:"geometry"`
}

type properties struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
}

type numericCollection struct {
	Type     string           `json:"type"`
	BBox     []float64        `json:"bbox,omitempty"` // [minX, minY, maxX, maxY]
	Features []numericFeature `json:"features"`
}

type numericFeature struct {
	Type       string             `json:"type"`
	ID         int                `json:"id"`
	Properties properties         `json:"properties"`
	Geometry   *geomjson.Geometry `json:"geometry"`
}

type point struct {
	Type        string    `json:"type"`
	Coordinates [2]string `json:"coordinates"` // [X, Y] as source text
}

// MarshalFeature encodes a single feature with raw text coordinates.
func MarshalFeature(f domain.GeoFeature) ([]byte, error) {
	return marshal(toFeature(f))
}

// MarshalRaw encodes fc with raw text coordinates. Output is deterministic for
// a given collection.
func MarshalRaw(fc domain.FeatureCollection) ([]byte, error) {
	out := featureCollection{
		Type:     "FeatureCollection",
		Features: make([]feature, 0, fc.Len()),
	}
	for _, f := range fc.Features {
		out.Features = append(out.Features, toFeature(f))
	}
	return marshal(out)
}

// MarshalNumeric encodes fc with numeric coordinates and a collection bounding
// box. A coordinate that does not parse as a float fails with
// domain.ErrInvalidCoordinate. Feature ids stay integer row indexes.
func MarshalNumeric(fc domain.FeatureCollection) ([]byte, error) {
	out := numericCollection{
		Type:     "FeatureCollection",
		Features: make([]numericFeature, 0, fc.Len()),
	}
	bounds := geom.NewBounds(geom.XY)

	for _, f := range fc.Features {
		pt, err := numericPoint(f)
		if err != nil {
			return nil, err
		}
		bounds.Extend(pt)
		geometry, err := geomjson.Encode(pt)
		if err != nil {
			return nil, fmt.Errorf("feature %d: encode geometry: %w", f.ID, err)
		}
		nf := numericFeature{Type: "Feature", ID: f.ID, Geometry: geometry}
		nf.Properties = toFeature(f).Properties
		out.Features = append(out.Features, nf)
	}
	if fc.Len() > 0 {
		out.BBox = []float64{bounds.Min(0), bounds.Min(1), bounds.Max(0), bounds.Max(1)}
	}
	return marshal(out)
}

func toFeature(f domain.GeoFeature) feature {
	return feature{
		Type: "Feature",
		ID:   f.ID,
		Properties: properties{
			Title:       f.Properties.Title,
			Description: f.Properties.Description,
			Date:        f.Properties.Date,
		},
		Geometry: point{
			Type:        "Point",
			Coordinates: [2]string{f.Point.X, f.Point.Y},
		},
	}
}

func numericPoint(f domain.GeoFeature) (*geom.Point, error) {
	x, err := parseCoordinate(f.Point.X)
	if err != nil {
		return nil, fmt.Errorf("feature %d: X %q: %w", f.ID, f.Point.X, err)
	}
	y, err := parseCoordinate(f.Point.Y)
	if err != nil {
		return nil, fmt.Errorf("feature %d: Y %q: %w", f.ID, f.Point.Y, err)
	}
	return geom.NewPointFlat(geom.XY, []float64{x, y}), nil
}

func parseCoordinate(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, domain.ErrInvalidCoordinate
	}
	return v, nil
}

// marshal encodes v without HTML escaping so descriptions such as
// "THEFT & FRAUD" survive unchanged.
func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("encode feature collection: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
