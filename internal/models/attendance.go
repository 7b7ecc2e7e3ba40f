package models

import "time"

// MonthlyPresentCap is the policy limit of Present days per student per
// calendar month.
const MonthlyPresentCap = 16

// AttendanceStatus is the two-value status enumeration, constrained at the
// store level by a CHECK constraint.
type AttendanceStatus string

const (
	StatusPresent AttendanceStatus = "Present"
	StatusAbsent  AttendanceStatus = "Absent"
)

// Valid returns true when the status is a supported value.
func (s AttendanceStatus) Valid() bool {
	return s == StatusPresent || s == StatusAbsent
}

// AttendanceRecord is a single attendance row. Date is the calendar date
// rendered as a plain YYYY-MM-DD string (no time component, no zone);
// start/end times are optional HH:MM[:SS] time-of-day strings.
type AttendanceRecord struct {
	ID        int64            `db:"id" json:"id"`
	StudentID int64            `db:"student_id" json:"student_id"`
	Date      string           `db:"attendance_date" json:"attendance_date"`
	Status    AttendanceStatus `db:"status" json:"status"`
	Topic     *string          `db:"topic" json:"topic,omitempty"`
	StartTime *string          `db:"start_time" json:"start_time,omitempty"`
	EndTime   *string          `db:"end_time" json:"end_time,omitempty"`
	CreatedAt time.Time        `db:"created_at" json:"created_at"`
}

// UpsertAttendanceRequest creates or overwrites the record for a date.
type UpsertAttendanceRequest struct {
	Date      string           `json:"date" validate:"required,datetime=2006-01-02"`
	Status    AttendanceStatus `json:"status" validate:"required,oneof=Present Absent"`
	Topic     *string          `json:"topic" validate:"omitempty,max=255"`
	StartTime *string          `json:"startTime" validate:"omitempty,datetime=15:04"`
	EndTime   *string          `json:"endTime" validate:"omitempty,datetime=15:04"`
}

// UpdateAttendanceRequest overwrites the mutable fields of a row by id.
type UpdateAttendanceRequest struct {
	ID        int64            `json:"id" validate:"required,gt=0"`
	Status    AttendanceStatus `json:"status" validate:"required,oneof=Present Absent"`
	Topic     *string          `json:"topic" validate:"omitempty,max=255"`
	StartTime *string          `json:"startTime" validate:"omitempty,datetime=15:04"`
	EndTime   *string          `json:"endTime" validate:"omitempty,datetime=15:04"`
}

// MonthFilter scopes a listing to one calendar month.
type MonthFilter struct {
	Month int
	Year  int
}

// AttendanceList is the GET /attendance response body. PresentCount covers
// the filtered month when a filter was supplied, otherwise the current
// real-world month.
type AttendanceList struct {
	Records      []AttendanceRecord `json:"records"`
	PresentCount int                `json:"presentCount"`
	TotalRecords int                `json:"totalRecords"`
}
