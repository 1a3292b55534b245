package domain

import "fmt"

// degenerateCoordinate is the export's sentinel for an unknown coordinate.
const degenerateCoordinate = "0"

// GeoProperties is the descriptive part of a feature.
type GeoProperties struct {
	Title       string
	Description string
	Date        string
}

// Point is an X/Y (longitude/latitude) pair kept as source text.
type Point struct {
	X string
	Y string
}

// GeoFeature is one mappable incident.
type GeoFeature struct {
	ID         int // row index in the unfiltered Dataset
	Properties GeoProperties
	Point      Point
}

// FeatureCollection is the ordered set of features exported from one Dataset.
type FeatureCollection struct {
	Features []GeoFeature
}

// Len returns the number of features.
func (fc FeatureCollection) Len() int {
	return len(fc.Features)
}

// IsDegenerate reports whether either coordinate is the "0" sentinel.
func IsDegenerate(x, y string) bool {
	return x == degenerateCoordinate || y == degenerateCoordinate
}

// ToFeatureCollection maps every record with usable coordinates to a point
// feature. Records with a "0" coordinate are skipped without renumbering the
// rest. X and Y must be present on every record; Category, Descript and Date
// only on records that produce a feature.
func ToFeatureCollection(ds Dataset) (FeatureCollection, error) {
	features := make([]GeoFeature, 0, len(ds.Records))
	for i, rec := range ds.Records {
		f, ok, err := toFeature(i, rec)
		if err != nil {
			return FeatureCollection{}, fmt.Errorf("export features: record %d: %w", i, err)
		}
		if ok {
			features = append(features, f)
		}
	}
	return FeatureCollection{Features: features}, nil
}

func toFeature(index int, rec Record) (GeoFeature, bool, error) {
	x, err := rec.Get(FieldX)
	if err != nil {
		return GeoFeature{}, false, err
	}
	y, err := rec.Get(FieldY)
	if err != nil {
		return GeoFeature{}, false, err
	}
	if IsDegenerate(x, y) {
		return GeoFeature{}, false, nil
	}

	var props GeoProperties
	if props.Title, err = rec.Get(FieldCategory); err != nil {
		return GeoFeature{}, false, err
	}
	if props.Description, err = rec.Get(FieldDescript); err != nil {
		return GeoFeature{}, false, err
	}
	if props.Date, err = rec.Get(FieldDate); err != nil {
		return GeoFeature{}, false, err
	}

	return GeoFeature{
		ID:         index,
		Properties: props,
		Point:      Point{X: x, Y: y},
	}, true, nil
}
