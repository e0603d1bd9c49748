package ingest

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mkravets/payout-lens/internal/model"
)

// LoadCSV decodes a delimited-text report, sniffing the delimiter
// from the first non-empty line.
func LoadCSV(path string, opts Options) (*model.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return FromCSV(f, opts)
}

// FromCSV decodes delimited text read from r.
func FromCSV(r io.Reader, opts Options) (*model.Table, error) {
	buffered := bufio.NewReader(r)

	delimiter, err := sniffDelimiter(buffered)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(buffered)
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read delimited row: %w", err)
		}
		rows = append(rows, record)
		if len(rows) > opts.maxRows() {
			return nil, fmt.Errorf("%w: more than %d rows", ErrTooLarge, opts.maxRows())
		}
	}

	return &model.Table{Rows: rows}, nil
}

// sniffDelimiter peeks at the stream and picks the most frequent of
// semicolon, comma and tab on the first non-empty line.
func sniffDelimiter(r *bufio.Reader) (rune, error) {
	peek, err := r.Peek(4096)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return 0, fmt.Errorf("peek delimited file: %w", err)
	}

	for _, line := range bytes.Split(peek, []byte("\n")) {
		text := strings.TrimSpace(string(line))
		if text == "" {
			continue
		}

		best, bestCount := ',', 0
		for _, candidate := range []rune{';', ',', '\t'} {
			if count := strings.Count(text, string(candidate)); count > bestCount {
				best, bestCount = candidate, count
			}
		}
		return best, nil
	}

	return ',', nil
}
