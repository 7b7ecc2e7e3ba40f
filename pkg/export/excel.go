package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/rehmanpranto/TutorTrack/internal/models"
)

// ExcelRenderer renders a monthly report into an .xlsx workbook.
type ExcelRenderer struct{}

// NewExcelRenderer constructs the renderer.
func NewExcelRenderer() *ExcelRenderer {
	return &ExcelRenderer{}
}

// ContentType returns the MIME type of the rendered workbook.
func (r *ExcelRenderer) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Extension returns the download filename extension.
func (r *ExcelRenderer) Extension() string { return "xlsx" }

// Render produces the workbook bytes for a monthly report.
func (r *ExcelRenderer) Render(report models.MonthlyReport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Report"
	f.SetSheetName(f.GetSheetName(0), sheet)

	rows := [][]interface{}{
		{"Attendance Report"},
		{"Student", report.StudentName},
		{"Month", fmt.Sprintf("%s %d", time.Month(report.Month), report.Year)},
		{"Total Sessions", report.TotalSessions},
		{"Total Present", report.TotalPresent},
		{"Total Absent", report.TotalAbsent},
		{},
		{"Date", "Status", "Topic", "Start", "End"},
	}
	for _, sess := range report.Sessions {
		rows = append(rows, []interface{}{
			sess.Date, string(sess.Status), deref(sess.Topic), deref(sess.StartTime), deref(sess.EndTime),
		})
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, fmt.Errorf("excel cell name: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write excel row: %w", err)
		}
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("render excel: %w", err)
	}
	return buf.Bytes(), nil
}
