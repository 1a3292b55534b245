package domain

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"unicode/utf8"
)

const utf8BOM = "\ufeff"

// ParseFile opens path and parses it with Parse. The file is closed on every
// return path. A missing file yields ErrNotFound; any read or syntax failure
// yields ErrDecode and no partial Dataset.
func ParseFile(path string, delimiter rune) (Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Dataset{}, fmt.Errorf("open %s: %w", path, ErrNotFound)
		}
		return Dataset{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	ds, err := Parse(f, delimiter)
	if err != nil {
		return Dataset{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return ds, nil
}

// Parse reads delimited text from r. The first row is the header; every
// following row becomes a Record by pairing header names with values
// positionally up to the shorter of the two.
func Parse(r io.Reader, delimiter rune) (Dataset, error) {
	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1 // row width is allowed to differ from the header
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return Dataset{}, fmt.Errorf("%w: missing header row", ErrDecode)
	}
	if err != nil {
		return Dataset{}, fmt.Errorf("%w: read header: %w", ErrDecode, err)
	}
	if err := checkUTF8(header, 1); err != nil {
		return Dataset{}, err
	}
	header[0] = strings.TrimPrefix(header[0], utf8BOM)

	var records []Record
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Dataset{}, fmt.Errorf("%w: %w", ErrDecode, err)
		}
		line, _ := reader.FieldPos(0)
		if err := checkUTF8(row, line); err != nil {
			return Dataset{}, err
		}
		records = append(records, zipRecord(header, row))
	}

	return Dataset{Header: header, Records: records}, nil
}

// zipRecord pairs header names with row values up to the shorter sequence.
func zipRecord(header, row []string) Record {
	n := min(len(header), len(row))
	rec := make(Record, n)
	for i := 0; i < n; i++ {
		rec[header[i]] = row[i]
	}
	return rec
}

func checkUTF8(fields []string, line int) error {
	for i, v := range fields {
		if !utf8.ValidString(v) {
			return fmt.Errorf("%w: line %d, field %d: invalid UTF-8", ErrDecode, line, i+1)
		}
	}
	return nil
}
