package ingest

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/mkravets/payout-lens/internal/model"
)

// LoadXLSX decodes the first sheet of an xlsx workbook.
func LoadXLSX(path string, opts Options) (*model.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	return tableFromWorkbook(f, opts)
}

// FromXLSX decodes the first sheet of an xlsx workbook read from r.
func FromXLSX(r io.Reader, opts Options) (*model.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	return tableFromWorkbook(f, opts)
}

func tableFromWorkbook(f *excelize.File, opts Options) (*model.Table, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	// Raw cell values keep locale formatting intact for the numeric
	// normalizer instead of excelize's display rendering.
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}

	if len(rows) > opts.maxRows() {
		return nil, fmt.Errorf("%w: %d rows exceeds limit of %d", ErrTooLarge, len(rows), opts.maxRows())
	}

	return &model.Table{Rows: rows}, nil
}
