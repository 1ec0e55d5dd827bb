package report

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"gopkg.in/yaml.v3"
)

// Supported export formats.
const (
	FormatPDF  = "pdf"
	FormatCSV  = "csv"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ErrUnknownFormat is returned by Export for unsupported formats.
var ErrUnknownFormat = errors.New("unknown report format")

// Formats lists the supported export formats.
func Formats() []string {
	return []string{FormatPDF, FormatCSV, FormatJSON, FormatYAML}
}

// Export writes s to w in the given format.
func Export(w io.Writer, s Summary, format string) error {
	switch strings.ToLower(format) {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	case FormatYAML, "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return err
		}
		return enc.Close()
	case FormatCSV:
		return writeCSV(w, s)
	case FormatPDF:
		return writePDF(w, s)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func writeCSV(w io.Writer, s Summary) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"status", "count"}); err != nil {
		return err
	}
	for _, c := range s.Counts {
		if err := cw.Write([]string{c.Status, strconv.Itoa(c.Count)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// PDF layout, in millimetres.
const (
	pdfStatusWidth = 45.0
	pdfCountWidth  = 20.0
	pdfBarWidth    = 115.0
	pdfRowHeight   = 8.0
)

// writePDF renders a table with one horizontal bar per status.
func writePDF(w io.Writer, s Summary) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(s.Title, false)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, s.Title)
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Source: %s", s.Source))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Generated: %s", s.GeneratedAt.Format(time.RFC3339)))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Tasks fetched: %d, included: %d", s.Fetched, s.Included))
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 11)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(pdfStatusWidth, pdfRowHeight, "Status", "1", 0, "L", true, 0, "")
	pdf.CellFormat(pdfCountWidth, pdfRowHeight, "Count", "1", 0, "R", true, 0, "")
	pdf.CellFormat(pdfBarWidth, pdfRowHeight, "", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	if len(s.Counts) == 0 {
		pdf.CellFormat(pdfStatusWidth+pdfCountWidth+pdfBarWidth, pdfRowHeight,
			"No tasks with a status and a valid due date.", "1", 1, "L", false, 0, "")
	}

	maxCount := s.Max()
	for _, c := range s.Counts {
		x, y := pdf.GetX(), pdf.GetY()
		pdf.CellFormat(pdfStatusWidth, pdfRowHeight, c.Status, "1", 0, "L", false, 0, "")
		pdf.CellFormat(pdfCountWidth, pdfRowHeight, strconv.Itoa(c.Count), "1", 0, "R", false, 0, "")
		pdf.CellFormat(pdfBarWidth, pdfRowHeight, "", "1", 1, "L", false, 0, "")

		if maxCount > 0 {
			barLen := (pdfBarWidth - 4) * float64(c.Count) / float64(maxCount)
			r, g, b := statusColor(c.Status)
			pdf.SetFillColor(r, g, b)
			pdf.Rect(x+pdfStatusWidth+pdfCountWidth+2, y+1.5, barLen, pdfRowHeight-3, "F")
		}
	}

	if err := pdf.Error(); err != nil {
		return err
	}
	return pdf.Output(w)
}

func statusColor(status string) (int, int, int) {
	switch status {
	case "pending":
		return 240, 173, 78
	case "in-progress":
		return 91, 192, 222
	case "completed":
		return 92, 184, 92
	default:
		return 160, 160, 160
	}
}
