// Package pdf renders reports as PDF documents.
package pdf

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/example/visa/internal/ports/secondary"
)

// Layout in millimetres and points.
const (
	margin      = 10.0
	titleSize   = 12.0
	fontSize    = 6.0
	rowHeight   = 5.0
	cellPadding = 1.0
	ellipsis    = "..."
)

// ReportRenderer implements secondary.ReportRenderer with fpdf.
type ReportRenderer struct {
	pageSize string
}

// NewReportRenderer creates a renderer for landscape A4 pages.
func NewReportRenderer() *ReportRenderer {
	return &ReportRenderer{pageSize: "A4"}
}

// Extension returns ".pdf".
func (r *ReportRenderer) Extension() string {
	return ".pdf"
}

// Render lays the report out as a gridded table. The header row is
// repeated at the top of every page and cell text is cut to fit.
func (r *ReportRenderer) Render(ctx context.Context, w io.Writer, report secondary.Report) error {
	if len(report.Headers) == 0 {
		return fmt.Errorf("report has no columns")
	}

	doc := fpdf.New("L", "mm", r.pageSize, "")
	doc.SetMargins(margin, margin, margin)
	doc.SetAutoPageBreak(false, margin)
	doc.SetTitle(report.Title, true)
	doc.SetCreator("visa", true)
	tr := doc.UnicodeTranslatorFromDescriptor("")

	doc.SetFont("Helvetica", "", fontSize)
	widths := columnWidths(doc, tr, report)

	_, pageHeight := doc.GetPageSize()
	bottom := pageHeight - margin

	doc.AddPage()
	doc.SetFont("Helvetica", "B", titleSize)
	doc.CellFormat(0, 8, tr(report.Title), "", 1, "L", false, 0, "")
	doc.Ln(2)
	drawHeader(doc, tr, report.Headers, widths)

	doc.SetFont("Helvetica", "", fontSize)
	doc.SetTextColor(0, 0, 0)
	for i, row := range report.Rows {
		if i%50 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		if doc.GetY()+rowHeight > bottom {
			doc.AddPage()
			drawHeader(doc, tr, report.Headers, widths)
			doc.SetFont("Helvetica", "", fontSize)
			doc.SetTextColor(0, 0, 0)
		}
		for c, width := range widths {
			text := ""
			if c < len(row) {
				text = fit(doc, tr(row[c]), width-2*cellPadding)
			}
			doc.CellFormat(width, rowHeight, text, "1", 0, "L", false, 0, "")
		}
		doc.Ln(-1)
	}

	if err := doc.Error(); err != nil {
		return fmt.Errorf("failed to lay out report: %w", err)
	}
	if err := doc.Output(w); err != nil {
		return fmt.Errorf("failed to write pdf: %w", err)
	}
	return nil
}

func drawHeader(doc *fpdf.Fpdf, tr func(string) string, headers []string, widths []float64) {
	doc.SetFont("Helvetica", "B", fontSize)
	doc.SetFillColor(128, 128, 128)
	doc.SetTextColor(255, 255, 255)
	for i, h := range headers {
		doc.CellFormat(widths[i], rowHeight, fit(doc, tr(h), widths[i]-2*cellPadding), "1", 0, "C", true, 0, "")
	}
	doc.Ln(-1)
}

// columnWidths sizes columns by their widest content, scaled to the printable width.
// Content is measured in the regular font; headers in bold.
func columnWidths(doc *fpdf.Fpdf, tr func(string) string, report secondary.Report) []float64 {
	pageWidth, _ := doc.GetPageSize()
	left, _, right, _ := doc.GetMargins()
	available := pageWidth - left - right

	widths := make([]float64, len(report.Headers))
	for _, row := range report.Rows {
		for i := range widths {
			if i < len(row) {
				widths[i] = max(widths[i], doc.GetStringWidth(tr(row[i])))
			}
		}
	}
	doc.SetFont("Helvetica", "B", fontSize)
	for i, h := range report.Headers {
		widths[i] = max(widths[i], doc.GetStringWidth(tr(h)))
	}
	doc.SetFont("Helvetica", "", fontSize)

	total := 0.0
	for i := range widths {
		widths[i] += 2 * cellPadding
		total += widths[i]
	}
	if total == 0 {
		return widths
	}
	scale := available / total
	for i := range widths {
		widths[i] *= scale
	}
	return widths
}

// fit shortens text with an ellipsis until it fits in width.
// Text is cp1252 after translation, so each byte is one glyph.
func fit(doc *fpdf.Fpdf, text string, width float64) string {
	if doc.GetStringWidth(text) <= width {
		return text
	}
	for cut := len(text) - 1; cut > 0; cut-- {
		if doc.GetStringWidth(text[:cut]+ellipsis) <= width {
			return strings.TrimRight(text[:cut], " ") + ellipsis
		}
	}
	return ""
}

// Ensure ReportRenderer implements the interface
var _ secondary.ReportRenderer = (*ReportRenderer)(nil)
