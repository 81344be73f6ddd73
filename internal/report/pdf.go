package report

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"drefacil/internal/dre"
)

// WritePDF renders the statement as a single-page A4 PDF.
func WritePDF(w io.Writer, s dre.Statement) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, tr(periodTitle(s)), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	for _, ln := range statementLines(s) {
		style := ""
		if ln.Subtotal {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 10)
		pdf.CellFormat(120, 7, tr(ln.Label), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 7, ln.Value.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "I", 10)
	for _, m := range marginRows(s) {
		pdf.CellFormat(120, 7, tr(m[0]), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 7, m[1], "", 1, "R", false, 0, "")
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}
