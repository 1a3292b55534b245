// Command validate checks a GeoJSON export against the CSV it was built from.
// It verifies the feature count, cross-references every feature with its
// source row, confirms no degenerate coordinate slipped through, and checks
// that every row carries a known weekday.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -csv sample_sfpd_incident_all.csv \
//	  -geojson file_sf.geojson
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/couchcryptid/incident-viz/internal/domain"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

// document is the subset of a GeoJSON FeatureCollection that validate reads.
// ID and coordinates stay raw so both text and numeric encodings decode.
type document struct {
	Type     string `json:"type"`
	Features []struct {
		ID         json.RawMessage   `json:"id"`
		Properties map[string]string `json:"properties"`
		Geometry   struct {
			Type        string            `json:"type"`
			Coordinates []json.RawMessage `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

func main() {
	csvPath := flag.String("csv", "", "path to the source incident CSV")
	geoPath := flag.String("geojson", "", "path to the exported GeoJSON")
	delimiter := flag.String("delimiter", ",", "CSV field delimiter")
	flag.Parse()

	if *csvPath == "" || *geoPath == "" || len([]rune(*delimiter)) != 1 {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*csvPath, *geoPath, []rune(*delimiter)[0]); code != 0 {
		os.Exit(code)
	}
}

func run(csvPath, geoPath string, delimiter rune) int {
	fmt.Println("=== Incident Export Validation ===")
	fmt.Println()

	ds, err := domain.ParseFile(csvPath, delimiter)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load CSV: %v\n", err)
		return 1
	}

	doc, err := loadDocument(geoPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load GeoJSON: %v\n", err)
		return 1
	}

	phases := validate(ds, doc)

	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Records: %d CSV rows, %d GeoJSON features\n", ds.Len(), len(doc.Features))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

func validate(ds domain.Dataset, doc document) []*phase {
	return []*phase{
		validateCounts(ds, doc),
		validateCrossRef(ds, doc),
		validateCoordinates(doc),
		validateWeekdays(ds),
	}
}

func loadDocument(path string) (document, error) {
	var doc document
	data, err := os.ReadFile(path)
	if err != nil {
		return doc, err
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return doc, err
	}
	return doc, nil
}

// ── Phase 1: Counts ──

func validateCounts(ds domain.Dataset, doc document) *phase {
	p := &phase{name: "Phase 1: Feature Count (GeoJSON vs CSV)"}

	if doc.Type != "FeatureCollection" {
		p.errorf("document type: expected FeatureCollection, got %q", doc.Type)
	}

	eligible := 0
	for i, rec := range ds.Records {
		x, errX := rec.Get(domain.FieldX)
		y, errY := rec.Get(domain.FieldY)
		if errX != nil || errY != nil {
			p.errorf("CSV row %d: missing coordinate column", i)
			continue
		}
		if !domain.IsDegenerate(x, y) {
			eligible++
		}
	}
	if eligible != len(doc.Features) {
		p.errorf("feature count: expected %d eligible rows, got %d features", eligible, len(doc.Features))
	}
	return p
}

// ── Phase 2: Cross-reference ──
// Each feature id is the index of its source row.

func validateCrossRef(ds domain.Dataset, doc document) *phase {
	p := &phase{name: "Phase 2: Cross-Reference (id → CSV row)"}

	last := -1
	for i, f := range doc.Features {
		id, err := strconv.Atoi(unquote(f.ID))
		if err != nil {
			p.errorf("feature %d: id %s is not an integer", i, string(f.ID))
			continue
		}
		if id <= last {
			p.errorf("feature %d: id %d out of order (previous %d)", i, id, last)
		}
		last = id
		if id < 0 || id >= ds.Len() {
			p.errorf("feature %d: id %d outside CSV range [0,%d)", i, id, ds.Len())
			continue
		}

		rec := ds.Records[id]
		compareField(p, id, "title", f.Properties["title"], rec[domain.FieldCategory])
		compareField(p, id, "description", f.Properties["description"], rec[domain.FieldDescript])
		compareField(p, id, "date", f.Properties["date"], rec[domain.FieldDate])

		if len(f.Geometry.Coordinates) != 2 {
			p.errorf("feature %d: expected 2 coordinates, got %d", id, len(f.Geometry.Coordinates))
			continue
		}
		compareCoordinate(p, id, "X", unquote(f.Geometry.Coordinates[0]), rec[domain.FieldX])
		compareCoordinate(p, id, "Y", unquote(f.Geometry.Coordinates[1]), rec[domain.FieldY])
	}
	return p
}

func compareField(p *phase, id int, name, got, want string) {
	if got != want {
		p.errorf("feature %d: %s=%q, CSV=%q", id, name, got, want)
	}
}

// compareCoordinate accepts the source text verbatim or, for numeric
// exports, the same value as a number.
func compareCoordinate(p *phase, id int, axis, got, want string) {
	if got == want {
		return
	}
	g, errG := strconv.ParseFloat(got, 64)
	w, errW := strconv.ParseFloat(strings.TrimSpace(want), 64)
	if errG != nil || errW != nil || g != w {
		p.errorf("feature %d: %s=%s, CSV=%q", id, axis, got, want)
	}
}

// ── Phase 3: Coordinates ──

func validateCoordinates(doc document) *phase {
	p := &phase{name: "Phase 3: Coordinates (no degenerate points)"}

	for i, f := range doc.Features {
		if f.Geometry.Type != "Point" {
			p.errorf("feature %d: geometry type %q, expected Point", i, f.Geometry.Type)
		}
		if len(f.Geometry.Coordinates) != 2 {
			continue
		}
		x, y := unquote(f.Geometry.Coordinates[0]), unquote(f.Geometry.Coordinates[1])
		if domain.IsDegenerate(x, y) {
			p.errorf("feature %d: degenerate coordinate (%s, %s)", i, x, y)
		}
	}
	return p
}

// ── Phase 4: Weekdays ──

func validateWeekdays(ds domain.Dataset) *phase {
	p := &phase{name: "Phase 4: Weekdays (chart totals)"}

	counts, err := domain.CountBy(ds, domain.FieldDayOfWeek, domain.Weekdays...)
	if err != nil {
		p.errorf("%v", err)
		return p
	}
	known := 0
	for _, d := range domain.Weekdays {
		known += counts.Count(d)
	}
	if known != ds.Len() {
		p.errorf("weekday totals: %d of %d rows have a known weekday; labels seen: %v", known, ds.Len(), counts.Labels())
	}
	return p
}

// unquote returns a JSON string's content, or the raw token for numbers.
func unquote(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
