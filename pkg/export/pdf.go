package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/rehmanpranto/TutorTrack/internal/models"
)

// PDFRenderer renders a monthly report into a paginated PDF document.
type PDFRenderer struct{}

// NewPDFRenderer constructs the renderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// ContentType returns the MIME type of the rendered document.
func (r *PDFRenderer) ContentType() string { return "application/pdf" }

// Extension returns the download filename extension.
func (r *PDFRenderer) Extension() string { return "pdf" }

// Render produces the PDF bytes for a monthly report.
func (r *PDFRenderer) Render(report models.MonthlyReport) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, "Attendance Report", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(0, 8, fmt.Sprintf("%s - %s %d", report.StudentName, time.Month(report.Month), report.Year), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 10)
	summary := fmt.Sprintf("Sessions: %d    Present: %d    Absent: %d",
		report.TotalSessions, report.TotalPresent, report.TotalAbsent)
	pdf.CellFormat(0, 8, summary, "", 1, "L", false, 0, "")
	pdf.Ln(2)

	headers := []string{"Date", "Status", "Topic", "Time"}
	widths := []float64{35, 25, 85, 45}
	pdf.SetFont("Arial", "B", 10)
	for i, header := range headers {
		pdf.CellFormat(widths[i], 8, header, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, sess := range report.Sessions {
		pdf.CellFormat(widths[0], 7, sess.Date, "1", 0, "", false, 0, "")
		pdf.CellFormat(widths[1], 7, string(sess.Status), "1", 0, "", false, 0, "")
		pdf.CellFormat(widths[2], 7, deref(sess.Topic), "1", 0, "", false, 0, "")
		pdf.CellFormat(widths[3], 7, timeRange(sess.StartTime, sess.EndTime), "1", 0, "", false, 0, "")
		pdf.Ln(-1)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func timeRange(start, end *string) string {
	if start == nil && end == nil {
		return ""
	}
	return fmt.Sprintf("%s - %s", deref(start), deref(end))
}
