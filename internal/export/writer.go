package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// WriteCSV serializes the dataset as RFC 4180 CSV, with quoting and
// escaping handled by the encoding/csv writer.
func WriteCSV(w io.Writer, ds Dataset) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ds.Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, row := range ds.Rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX serializes the dataset as a single-sheet spreadsheet.
func WriteXLSX(w io.Writer, ds Dataset) error {
	f := excelize.NewFile()
	defer f.Close() //nolint:errcheck

	const sheet = "Sheet1"
	header := make([]any, len(ds.Columns))
	for i, col := range ds.Columns {
		header[i] = col
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, row := range ds.Rows {
		cells := make([]any, len(row))
		for j, cell := range row {
			cells[j] = cell
		}
		axis, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, axis, &cells); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	return f.Write(w)
}
