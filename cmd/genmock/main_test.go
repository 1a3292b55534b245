package main

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/couchcryptid/incident-viz/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_Deterministic(t *testing.T) {
	assert.Equal(t, generate(50, 7, 10), generate(50, 7, 10))
	assert.NotEqual(t, generate(50, 7, 10), generate(50, 8, 10))
}

func TestGenerate_DayOfWeekMatchesDate(t *testing.T) {
	records := generate(200, 2003, 0)
	require.Len(t, records, 201)

	for _, row := range records[1:] {
		d, err := time.Parse("01/02/2006", row[4])
		require.NoError(t, err)
		assert.Equal(t, d.Weekday().String(), row[3])
	}
}

func TestGenerate_RoundTripsThroughParser(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mock", "incidents.csv")
	require.NoError(t, writeCSV(path, generate(100, 1, 10)))

	ds, err := domain.ParseFile(path, ',')
	require.NoError(t, err)
	assert.Equal(t, 100, ds.Len())
	assert.Equal(t, header, ds.Header)

	fc, err := domain.ToFeatureCollection(ds)
	require.NoError(t, err)
	assert.Equal(t, 90, fc.Len(), "every 10th row carries a zero coordinate")
}
