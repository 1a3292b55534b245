// Command genmock writes a deterministic SFPD-style incident CSV for local
// runs and tests. The same -seed always produces the same file. Every
// -zero-every'th row gets a "0" coordinate so the GeoJSON filter has
// something to drop.
//
// Usage:
//
//	go run ./cmd/genmock -out data/mock/incidents.csv -rows 500 -seed 2003
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

var header = []string{
	"IncidntNum", "Category", "Descript", "DayOfWeek", "Date", "Time",
	"PdDistrict", "Resolution", "Location", "X", "Y",
}

var baseDate = time.Date(2003, time.January, 1, 0, 0, 0, 0, time.UTC)

type offense struct {
	category string
	descript []string
}

var offenses = []offense{
	{"LARCENY/THEFT", []string{"GRAND THEFT FROM LOCKED AUTO", "PETTY THEFT SHOPLIFTING", "PETTY THEFT FROM LOCKED AUTO"}},
	{"OTHER OFFENSES", []string{"DRIVERS LICENSE SUSPENDED OR REVOKED", "TRAFFIC VIOLATION"}},
	{"ASSAULT", []string{"BATTERY", "THREATS AGAINST LIFE"}},
	{"VANDALISM", []string{"MALICIOUS MISCHIEF, VANDALISM OF VEHICLES"}},
	{"WARRANTS", []string{"WARRANT ARREST"}},
	{"FRAUD", []string{"FORGERY, CREDIT CARD"}},
	{"VEHICLE THEFT", []string{"STOLEN AUTOMOBILE"}},
	{"BURGLARY", []string{"BURGLARY OF RESIDENCE, FORCIBLE ENTRY"}},
}

var districts = []string{"BAYVIEW", "CENTRAL", "INGLESIDE", "MISSION", "NORTHERN", "PARK", "RICHMOND", "SOUTHERN", "TARAVAL", "TENDERLOIN"}

var resolutions = []string{"NONE", "NONE", "NONE", "ARREST, BOOKED", "ARREST, CITED"}

var streets = []string{"MISSION ST", "MARKET ST", "HAYES ST", "POWELL ST", "25TH AV", "3RD ST", "GEARY BL"}

// San Francisco bounding box.
const (
	minX, maxX = -122.513642, -122.365565
	minY, maxY = 37.708131, 37.810980
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "", "output path for the generated CSV")
	rows := flag.Int("rows", 1000, "number of incident rows")
	seed := flag.Uint64("seed", 2003, "random seed")
	zeroEvery := flag.Int("zero-every", 25, "write a zero coordinate on every Nth row (0 disables)")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}
	if *rows < 0 {
		return fmt.Errorf("-rows must not be negative")
	}

	records := generate(*rows, *seed, *zeroEvery)
	if err := writeCSV(*out, records); err != nil {
		return fmt.Errorf("writing %s: %w", *out, err)
	}
	log.Printf("wrote %d incidents to %s", len(records)-1, *out)
	return nil
}

// generate returns the header followed by n incident rows.
func generate(n int, seed uint64, zeroEvery int) [][]string {
	rng := rand.New(rand.NewPCG(seed, seed^0x5f5f))
	records := make([][]string, 0, n+1)
	records = append(records, header)

	for i := range n {
		o := offenses[rng.IntN(len(offenses))]
		day := baseDate.Add(time.Duration(rng.IntN(365*24*60)) * time.Minute)

		x := strconv.FormatFloat(minX+rng.Float64()*(maxX-minX), 'f', 12, 64)
		y := strconv.FormatFloat(minY+rng.Float64()*(maxY-minY), 'f', 13, 64)
		if zeroEvery > 0 && (i+1)%zeroEvery == 0 {
			// Alternate between both axes and a single axis being unknown.
			if i%2 == 0 {
				x, y = "0", "0"
			} else {
				y = "0"
			}
		}

		records = append(records, []string{
			fmt.Sprintf("%09d", 30000000+i),
			o.category,
			o.descript[rng.IntN(len(o.descript))],
			day.Weekday().String(),
			day.Format("01/02/2006"),
			day.Format("15:04"),
			districts[rng.IntN(len(districts))],
			resolutions[rng.IntN(len(resolutions))],
			fmt.Sprintf("%d Block of %s", rng.IntN(40)*100, streets[rng.IntN(len(streets))]),
			x,
			y,
		})
	}
	return records
}

func writeCSV(path string, records [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(records); err != nil {
		return err
	}
	return f.Close()
}
