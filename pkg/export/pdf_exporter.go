package export

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"github.com/jung-kurt/gofpdf"
)

const (
	pageWidth   = 297.0
	pageMargin  = 10.0
	minColWidth = 14.0
)

// PDFExporter renders datasets as a landscape A4 table.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Render lays out the title, the notes and a striped table body.
func (e *PDFExporter) Render(data Dataset) ([]byte, error) {
	if err := data.validate(); err != nil {
		return nil, err
	}
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(pageMargin, 12, pageMargin)
	pdf.SetAutoPageBreak(true, 12)
	pdf.AddPage()

	if data.Title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, data.Title, "", 1, "L", false, 0, "")
	}
	if len(data.Notes) > 0 {
		pdf.SetFont("Arial", "", 9)
		for _, note := range data.Notes {
			pdf.CellFormat(40, 5, note[0], "", 0, "L", false, 0, "")
			pdf.CellFormat(0, 5, note[1], "", 1, "L", false, 0, "")
		}
		pdf.Ln(3)
	}

	widths := columnWidths(data)
	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(220, 224, 232)
	for i, header := range data.Headers {
		pdf.CellFormat(widths[i], 7, header, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	pdf.SetFillColor(245, 246, 250)
	for r, row := range data.Rows {
		for i, value := range row {
			pdf.CellFormat(widths[i], 6, value, "1", 0, "", r%2 == 1, 0, "")
		}
		pdf.Ln(-1)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// columnWidths shares the printable width in proportion to the longest cell of each column.
func columnWidths(data Dataset) []float64 {
	longest := make([]int, len(data.Headers))
	for i, header := range data.Headers {
		longest[i] = utf8.RuneCountInString(header)
	}
	for _, row := range data.Rows {
		for i, value := range row {
			longest[i] = max(longest[i], utf8.RuneCountInString(value))
		}
	}

	total := 0
	for _, n := range longest {
		total += max(n, 1)
	}
	printable := pageWidth - 2*pageMargin
	widths := make([]float64, len(longest))
	for i, n := range longest {
		widths[i] = max(minColWidth, printable*float64(max(n, 1))/float64(total))
	}

	sum := 0.0
	for _, w := range widths {
		sum += w
	}
	if sum > printable {
		for i := range widths {
			widths[i] *= printable / sum
		}
	}
	return widths
}
