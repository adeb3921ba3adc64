// Package sheet reads worksheets out of an xlsx workbook as raw cell text.
package sheet

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrSheetNotFound is returned when a workbook has no sheet with the requested name
var ErrSheetNotFound = errors.New("sheet not found")

// Row is one non-blank worksheet row. Number is the 1-based row number in the sheet.
type Row struct {
	Number int
	Cells  []string
}

// Cell returns the trimmed text at index i and whether it holds a value.
// Cells past the end of the row are absent, not empty strings.
func (r Row) Cell(i int) (string, bool) {
	if i < 0 || i >= len(r.Cells) {
		return "", false
	}
	v := strings.TrimSpace(r.Cells[i])
	return v, v != ""
}

// IsBlank reports whether every cell in the row is empty
func (r Row) IsBlank() bool {
	for i := range r.Cells {
		if _, ok := r.Cell(i); ok {
			return false
		}
	}
	return true
}

// Workbook is an xlsx document loaded fully into memory
type Workbook struct {
	file       *excelize.File
	dateSystem DateSystem
}

// Open reads a whole workbook from r
func Open(r io.Reader) (*Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}

	wb := &Workbook{file: f, dateSystem: Date1900}

	props, err := f.GetWorkbookProps()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to read workbook properties: %w", err)
	}
	if props.Date1904 != nil && *props.Date1904 {
		wb.dateSystem = Date1904
	}

	return wb, nil
}

// DateSystem returns the epoch date serials in this workbook count from
func (w *Workbook) DateSystem() DateSystem {
	return w.dateSystem
}

// SheetNames lists the worksheets in workbook order
func (w *Workbook) SheetNames() []string {
	return w.file.GetSheetList()
}

// HasSheet reports whether a worksheet with the given name exists
func (w *Workbook) HasSheet(name string) bool {
	idx, err := w.file.GetSheetIndex(name)
	return err == nil && idx >= 0
}

// Rows returns the data rows of a sheet: the header row is dropped and rows
// without any cell value are skipped. Values are raw, so dates stay serials.
func (w *Workbook) Rows(name string) ([]Row, error) {
	if !w.HasSheet(name) {
		return nil, fmt.Errorf("%w: %s", ErrSheetNotFound, name)
	}

	raw, err := w.file.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", name, err)
	}

	rows := make([]Row, 0, len(raw))
	for i, cells := range raw {
		if i == 0 {
			continue
		}
		row := Row{Number: i + 1, Cells: cells}
		if row.IsBlank() {
			continue
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// Close releases the temporary files excelize may hold
func (w *Workbook) Close() error {
	return w.file.Close()
}
