// Package ingest decodes spreadsheet and delimited-text files into the
// rows-of-cells table abstraction. Decoding stops at cell values;
// every semantic decision about the table happens downstream.
package ingest

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mkravets/payout-lens/internal/model"
)

// DefaultMaxRows is the size guard applied when the caller does not
// set one. Oversized reports are rejected here, never chunked.
const DefaultMaxRows = 50000

// ErrTooLarge is returned when a report exceeds the row guard.
var ErrTooLarge = errors.New("report too large")

// ErrUnsupportedFormat is returned for file extensions the loader does
// not understand.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// Options configures the loaders.
type Options struct {
	// MaxRows caps how many rows a report may carry. Zero means
	// DefaultMaxRows.
	MaxRows int
}

func (o Options) maxRows() int {
	if o.MaxRows > 0 {
		return o.MaxRows
	}
	return DefaultMaxRows
}

// Load decodes a report file by extension: .xlsx for spreadsheets,
// .csv/.tsv/.txt for delimited text.
func Load(path string, opts Options) (*model.Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return LoadXLSX(path, opts)
	case ".csv", ".tsv", ".txt":
		return LoadCSV(path, opts)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}
