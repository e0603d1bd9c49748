package ingest

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func workbookBytes(t *testing.T, rows [][]string) *bytes.Reader {
	t.Helper()

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return bytes.NewReader(buf.Bytes())
}

func TestFromXLSX(t *testing.T) {
	src := [][]string{
		{"Артикул", "Количество", "Сумма"},
		{"A-100", "2", "1500"},
		{"B-200", "1", "-300"},
	}

	table, err := FromXLSX(workbookBytes(t, src), Options{})
	require.NoError(t, err)
	require.Equal(t, 3, table.RowCount())
	assert.Equal(t, "Артикул", table.Cell(0, 0))
	assert.Equal(t, "-300", table.Cell(2, 2))
}

func TestFromXLSXRowCap(t *testing.T) {
	var src [][]string
	for i := 0; i < 8; i++ {
		src = append(src, []string{fmt.Sprintf("row %d", i)})
	}

	_, err := FromXLSX(workbookBytes(t, src), Options{MaxRows: 5})
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestFromXLSXRejectsGarbage(t *testing.T) {
	_, err := FromXLSX(bytes.NewReader([]byte("not a zip archive")), Options{})
	assert.Error(t, err)
}
