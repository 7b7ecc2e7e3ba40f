package models

// ReportSession is one attendance row as it appears in a monthly report.
type ReportSession struct {
	Date      string           `db:"attendance_date" json:"attendance_date"`
	Status    AttendanceStatus `db:"status" json:"status"`
	Topic     *string          `db:"topic" json:"topic,omitempty"`
	StartTime *string          `db:"start_time" json:"start_time,omitempty"`
	EndTime   *string          `db:"end_time" json:"end_time,omitempty"`
}

// MonthlyReport is the structured report consumed by the PDF and Excel
// renderers.
type MonthlyReport struct {
	StudentName   string          `json:"studentName"`
	Month         int             `json:"month"`
	Year          int             `json:"year"`
	Sessions      []ReportSession `json:"sessions"`
	TotalPresent  int             `json:"totalPresent"`
	TotalAbsent   int             `json:"totalAbsent"`
	TotalSessions int             `json:"totalSessions"`
}
