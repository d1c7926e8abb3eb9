// Package replay feeds recorded event datasets to the detector. The input
// is CSV with one interaction per row: source, destination, time. Numeric
// node columns are used as keys directly; anything non-numeric is hashed
// through internal/keys so named hosts work too.
package replay

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"MidasFlow/internal/keys"
	"MidasFlow/internal/model"
)

// Reader parses an event CSV stream.
type Reader struct {
	csv    *csv.Reader
	closer io.Closer
}

// NewReader wraps an open CSV stream.
func NewReader(r io.Reader) *Reader {
	c := csv.NewReader(r)
	c.FieldsPerRecord = 3
	c.TrimLeadingSpace = true
	return &Reader{csv: c}
}

// Open opens an event CSV file.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open event file: %w", err)
	}
	r := NewReader(f)
	r.closer = f
	return r, nil
}

// ReadEvents parses every row and sends the events to out in file order.
// The channel is left open for the caller to close. Returns on the first
// malformed row.
func (r *Reader) ReadEvents(out chan<- model.Event) error {
	now := time.Now()
	for {
		record, err := r.csv.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read event row: %w", err)
		}

		tick, err := strconv.ParseUint(record[2], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid time %q: %w", record[2], err)
		}

		out <- model.Event{
			Source:   nodeKey(record[0]),
			Dest:     nodeKey(record[1]),
			Tick:     tick,
			Observed: now,
		}
	}
}

// Close closes the underlying file, if this reader owns one.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}

func nodeKey(field string) uint64 {
	if id, err := strconv.ParseUint(field, 10, 64); err == nil {
		return id
	}
	return keys.FromString(field)
}
