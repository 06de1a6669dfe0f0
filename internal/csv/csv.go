// Package csv wraps encoding/csv with the cleanup needed for real-world
// roster exports: UTF-8 BOM stripping, header artifacts, and rows whose
// column count does not match the header.
package csv

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// bomUTF8 is the UTF-8 byte order mark some exporters (notably Excel)
// prepend to CSV files.
var bomUTF8 = []byte{0xEF, 0xBB, 0xBF}

// ReadRecords reads a CSV file into a cleaned header slice and one
// field-name -> value map per data row.
//
// Rows shorter than the header are padded with empty values; longer rows
// are truncated. An empty file yields a nil header and no rows, which the
// caller reports as a header mismatch rather than an I/O failure.
func ReadRecords(path string) ([]string, []map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	data = bytes.TrimPrefix(data, bomUTF8)

	r := csv.NewReader(bytes.NewReader(data))
	// Mismatched column counts are handled below rather than rejected.
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("reading header: %w", err)
	}
	for i, h := range header {
		header[i] = CleanHeader(h)
	}

	var records []map[string]string
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("reading row %d: %w", len(records)+2, err)
		}

		if len(row) < len(header) {
			padded := make([]string, len(header))
			copy(padded, row)
			row = padded
		}

		rec := make(map[string]string, len(header))
		for i, h := range header {
			rec[h] = row[i]
		}
		records = append(records, rec)
	}

	return header, records, nil
}

// WriteRecords writes records to path using the given header order.
// Fields absent from a record are written as empty values.
func WriteRecords(path string, header []string, records []map[string]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	row := make([]string, len(header))
	for _, rec := range records {
		for i, h := range header {
			row[i] = rec[h]
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}

// CleanHeader normalizes a header cell: surrounding whitespace and stray
// BOM runes are removed. Field names keep their case; header comparison
// is case-sensitive.
func CleanHeader(h string) string {
	h = strings.TrimPrefix(h, "\uFEFF")
	return strings.TrimSpace(h)
}
