package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
)

// colWidths in mm for an A4 landscape table; must align with Header.
var colWidths = []float64{24, 60, 22, 22, 32, 26, 26}

// PDF renders rows into a landscape A4 timesheet with a title line, a
// generation timestamp and a repeating-style header row.  Returns the
// file bytes ready to serve.
func PDF(rows []Row, generatedAt time.Time) ([]byte, error) {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, "Timesheet Export", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 6, "Generated at "+generatedAt.UTC().Format("2006-01-02 15:04 MST"), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	writeHeader := func() {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetFillColor(221, 221, 221)
		for i, h := range Header {
			pdf.CellFormat(colWidths[i], 8, h, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
	}
	writeHeader()

	pdf.SetFont("Helvetica", "", 9)
	for _, r := range rows {
		// Repeat the header after a page break.
		if pdf.GetY() > 180 {
			pdf.AddPage()
			writeHeader()
			pdf.SetFont("Helvetica", "", 9)
		}
		for i, v := range r.Columns() {
			pdf.CellFormat(colWidths[i], 7, v, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
