// Package report renders the outcomes of an upload batch as CSV or XLSX.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"uploadbroker/internal/uploader"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

const sheetName = "Outcomes"

// columns defines the header row.
var columns = []string{"Filename", "Key", "Status", "Error"}

const (
	StatusUploaded = "uploaded"
	StatusFailed   = "failed"
)

// Writer wraps csv.Writer for exporting outcomes as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteOutcomes writes one row per outcome.
func (w *Writer) WriteOutcomes(outcomes []uploader.Outcome) error {
	for _, o := range outcomes {
		if err := w.csv.Write(outcomeToRow(o)); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// WriteCSV writes a complete CSV report, BOM included.
func WriteCSV(out io.Writer, outcomes []uploader.Outcome) error {
	if _, err := out.Write(BOM); err != nil {
		return err
	}
	w := NewWriter(out)
	if err := w.WriteHeader(); err != nil {
		return err
	}
	if err := w.WriteOutcomes(outcomes); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

// WriteXLSX writes a single-sheet workbook.
func WriteXLSX(out io.Writer, outcomes []uploader.Outcome) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	header := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}
	if err := f.SetRowStyle(sheetName, 1, 1, bold); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}

	for i, o := range outcomes {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := outcomeToRow(o)
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	if err := f.SetColWidth(sheetName, "A", "B", 40); err != nil {
		return err
	}
	if err := f.SetColWidth(sheetName, "D", "D", 80); err != nil {
		return err
	}
	return f.Write(out)
}

// WriteFile picks the format from the extension of path (.csv or .xlsx).
func WriteFile(path string, outcomes []uploader.Outcome) (err error) {
	var write func(io.Writer, []uploader.Outcome) error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		write = WriteCSV
	case ".xlsx":
		write = WriteXLSX
	default:
		return fmt.Errorf("unsupported report format %q: use .csv or .xlsx", filepath.Ext(path))
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return write(f, outcomes)
}

func outcomeToRow(o uploader.Outcome) []string {
	status := StatusUploaded
	if !o.OK() {
		status = StatusFailed
	}
	return []string{sanitizeCell(o.Filename), sanitizeCell(o.Key), status, sanitizeCell(o.Error)}
}

// sanitizeCell stops spreadsheet apps from evaluating user-chosen names as
// formulas.
func sanitizeCell(v string) string {
	if v != "" && strings.ContainsRune("=+-@", rune(v[0])) {
		return "'" + v
	}
	return v
}
