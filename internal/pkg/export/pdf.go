package export

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
)

// Section is a titled table on the profile sheet.
type Section struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// Sheet is a printable record. Fields are label/value pairs printed under
// the title.
type Sheet struct {
	Title    string
	Fields   [][2]string
	Sections []Section
}

// WritePDF renders the sheet as an A4 portrait document.
func WritePDF(w io.Writer, s Sheet) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(s.Title, true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, tr(s.Title))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	for _, f := range s.Fields {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(50, 7, tr(f[0]), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 7, tr(f[1]), "", 1, "L", false, 0, "")
	}

	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	usable := pageWidth - left - right

	for _, sec := range s.Sections {
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "B", 13)
		pdf.Cell(0, 8, tr(sec.Title))
		pdf.Ln(9)

		if len(sec.Headers) == 0 {
			continue
		}
		colWidth := usable / float64(len(sec.Headers))

		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetFillColor(235, 235, 235)
		for _, h := range sec.Headers {
			pdf.CellFormat(colWidth, 7, tr(h), "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Helvetica", "", 10)
		if len(sec.Rows) == 0 {
			pdf.CellFormat(usable, 7, "No records", "1", 1, "C", false, 0, "")
			continue
		}
		for _, row := range sec.Rows {
			for i := range sec.Headers {
				v := ""
				if i < len(row) {
					v = row[i]
				}
				pdf.CellFormat(colWidth, 7, tr(v), "1", 0, "L", false, 0, "")
			}
			pdf.Ln(-1)
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}
