package geojson

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/couchcryptid/incident-viz/internal/domain"
)

// Writer writes feature collections to disk.
// It implements pipeline.FeatureWriter.
type Writer struct {
	numeric bool
	logger  *slog.Logger
}

// NewWriter creates a Writer. When numeric is true coordinates are written as
// numbers with a bounding box; otherwise they keep their source text.
func NewWriter(numeric bool, logger *slog.Logger) *Writer {
	return &Writer{numeric: numeric, logger: logger}
}

// WriteCollection encodes fc and writes it to path, replacing any previous
// content. The encoding happens before the file is touched, so an encoding
// failure leaves an existing file intact.
func (w *Writer) WriteCollection(path string, fc domain.FeatureCollection) error {
	var (
		data []byte
		err  error
	)
	if w.numeric {
		data, err = MarshalNumeric(fc)
	} else {
		data, err = MarshalRaw(fc)
	}
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create geojson directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec // output is meant to be shared
		return fmt.Errorf("write geojson %s: %w", path, err)
	}
	w.logger.Debug("geojson written", "path", path, "bytes", len(data), "numeric", w.numeric)
	return nil
}
