// Package export renders the chart reports as downloadable spreadsheets and
// PDF documents.
package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"fleet-service/internal/model"
)

// rangeLabel describes the filter the tables were computed with.
func rangeLabel(rng model.DateRange) string {
	if !rng.Active {
		return "all records"
	}
	return rng.From + " .. " + rng.To
}

func keyLabel(report model.Report, key int64) string {
	return fmt.Sprintf("%s%d", report.AxisLabelPrefix, key)
}

// sheetWriter sets cells on one sheet and keeps the first failure.
type sheetWriter struct {
	f     *excelize.File
	sheet string
	err   error
}

func (w *sheetWriter) set(cell string, value interface{}) {
	if w.err != nil {
		return
	}
	if err := w.f.SetCellValue(w.sheet, cell, value); err != nil {
		w.err = fmt.Errorf("set %s!%s: %w", w.sheet, cell, err)
	}
}

// BuildReportXLSX writes one sheet per report, named after the report.
func BuildReportXLSX(rng model.DateRange, tables []model.ReportTable) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if len(tables) == 0 {
		if err := f.SetCellValue("Sheet1", "A1", "No data"); err != nil {
			return nil, err
		}
	}
	for i, table := range tables {
		sheet := table.Report.Name
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return nil, fmt.Errorf("sheet %q: %w", sheet, err)
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return nil, fmt.Errorf("sheet %q: %w", sheet, err)
		}

		w := &sheetWriter{f: f, sheet: sheet}
		w.set("A1", table.Report.Title)
		w.set("A2", "Range")
		w.set("B2", rangeLabel(rng))
		w.set("A4", "Key")
		w.set("B4", "Value")
		for j, row := range table.Rows {
			line := j + 5
			w.set(fmt.Sprintf("A%d", line), keyLabel(table.Report, row.Key))
			w.set(fmt.Sprintf("B%d", line), row.Value)
		}
		if w.err != nil {
			return nil, w.err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildReportPDF renders every report as a two-column table on one document.
func BuildReportPDF(title string, rng model.DateRange, tables []model.ReportTable) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, title)
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, "Range: "+rangeLabel(rng))
	pdf.Ln(8)

	for _, table := range tables {
		pdf.SetFont("Arial", "B", 11)
		pdf.Cell(0, 7, table.Report.Title)
		pdf.Ln(8)

		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(40, 6, "Key", "1", 0, "C", false, 0, "")
		pdf.CellFormat(60, 6, "Value", "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
		pdf.SetFont("Arial", "", 10)
		if len(table.Rows) == 0 {
			pdf.CellFormat(100, 6, "No data", "1", 0, "C", false, 0, "")
			pdf.Ln(-1)
		}
		for _, row := range table.Rows {
			pdf.CellFormat(40, 6, keyLabel(table.Report, row.Key), "1", 0, "C", false, 0, "")
			pdf.CellFormat(60, 6, fmt.Sprintf("%.2f", row.Value), "1", 0, "R", false, 0, "")
			pdf.Ln(-1)
		}
		pdf.Ln(6)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
