package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/rehmanpranto/TutorTrack/internal/models"
)

// ErrCapExceeded signals that a write would push a month past its Present
// cap. The surrounding transaction is rolled back, leaving the store
// unchanged.
var ErrCapExceeded = errors.New("monthly present cap reached")

const attendanceColumns = `id, student_id, attendance_date::text AS attendance_date, status, topic,
start_time::text AS start_time, end_time::text AS end_time, created_at`

// AttendanceRepository handles persistence for attendance records.
type AttendanceRepository struct {
	db *sqlx.DB
}

// NewAttendanceRepository constructs the repository.
func NewAttendanceRepository(db *sqlx.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// List returns the student's records ordered by date descending, optionally
// restricted to one calendar month via the month/year view.
func (r *AttendanceRepository) List(ctx context.Context, studentID int64, filter *models.MonthFilter) ([]models.AttendanceRecord, error) {
	rows := []models.AttendanceRecord{}
	if filter != nil {
		query := fmt.Sprintf(`SELECT %s FROM attendance_with_month_year
WHERE student_id = $1 AND month = $2 AND year = $3
ORDER BY attendance_date DESC`, attendanceColumns)
		if err := r.db.SelectContext(ctx, &rows, query, studentID, filter.Month, filter.Year); err != nil {
			return nil, fmt.Errorf("list attendance for month: %w", err)
		}
		return rows, nil
	}

	query := fmt.Sprintf(`SELECT %s FROM attendance WHERE student_id = $1 ORDER BY attendance_date DESC`, attendanceColumns)
	if err := r.db.SelectContext(ctx, &rows, query, studentID); err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	return rows, nil
}

// CountPresent returns the number of Present rows for a student and
// calendar month.
func (r *AttendanceRepository) CountPresent(ctx context.Context, studentID int64, month, year int) (int, error) {
	const query = `SELECT COUNT(*) FROM attendance_with_month_year
WHERE student_id = $1 AND status = 'Present' AND month = $2 AND year = $3`
	var count int
	if err := r.db.GetContext(ctx, &count, query, studentID, month, year); err != nil {
		return 0, fmt.Errorf("count present: %w", err)
	}
	return count, nil
}

// UpsertByDate inserts the record or overwrites the existing row sharing
// (student_id, attendance_date). When the resulting status is Present the
// month's cap is re-checked first, excluding the row for this exact date so
// editing an already-Present day does not count itself. Check and write run
// in one serializable transaction to keep the cap race-free.
func (r *AttendanceRepository) UpsertByDate(ctx context.Context, studentID int64, req models.UpsertAttendanceRequest, capLimit int) (*models.AttendanceRecord, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("parse attendance date: %w", err)
	}

	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return nil, fmt.Errorf("begin upsert attendance: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if req.Status == models.StatusPresent {
		if err := checkCap(ctx, tx, studentID, int(date.Month()), date.Year(), req.Date, capLimit); err != nil {
			return nil, err
		}
	}

	query := fmt.Sprintf(`INSERT INTO attendance (student_id, attendance_date, status, topic, start_time, end_time)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (student_id, attendance_date)
DO UPDATE SET status = EXCLUDED.status, topic = EXCLUDED.topic,
    start_time = EXCLUDED.start_time, end_time = EXCLUDED.end_time
RETURNING %s`, attendanceColumns)

	var stored models.AttendanceRecord
	if err := tx.GetContext(ctx, &stored, query, studentID, req.Date, req.Status, req.Topic, req.StartTime, req.EndTime); err != nil {
		return nil, fmt.Errorf("upsert attendance: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit upsert attendance: %w", err)
	}
	committed = true
	return &stored, nil
}

// UpdateByID overwrites the mutable fields of the row with the given id.
// Returns sql.ErrNoRows when the id is unknown. A transition into Present
// re-checks the cap for the existing row's month, same exclusion rule as
// the date-keyed path.
func (r *AttendanceRepository) UpdateByID(ctx context.Context, req models.UpdateAttendanceRequest, capLimit int) (*models.AttendanceRecord, error) {
	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return nil, fmt.Errorf("begin update attendance: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var existing struct {
		StudentID int64  `db:"student_id"`
		Date      string `db:"attendance_date"`
	}
	if err := tx.GetContext(ctx, &existing,
		`SELECT student_id, attendance_date::text AS attendance_date FROM attendance WHERE id = $1`, req.ID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find attendance by id: %w", err)
	}

	if req.Status == models.StatusPresent {
		date, err := time.Parse("2006-01-02", existing.Date)
		if err != nil {
			return nil, fmt.Errorf("parse stored attendance date: %w", err)
		}
		if err := checkCap(ctx, tx, existing.StudentID, int(date.Month()), date.Year(), existing.Date, capLimit); err != nil {
			return nil, err
		}
	}

	query := fmt.Sprintf(`UPDATE attendance
SET status = $1, topic = $2, start_time = $3, end_time = $4
WHERE id = $5
RETURNING %s`, attendanceColumns)

	var stored models.AttendanceRecord
	if err := tx.GetContext(ctx, &stored, query, req.Status, req.Topic, req.StartTime, req.EndTime, req.ID); err != nil {
		return nil, fmt.Errorf("update attendance: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit update attendance: %w", err)
	}
	committed = true
	return &stored, nil
}

// Delete physically removes the row with the given id. Returns
// sql.ErrNoRows when no row matched.
func (r *AttendanceRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM attendance WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete attendance: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete attendance rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// MonthSessions returns one month's rows ordered by date ascending for
// report aggregation.
func (r *AttendanceRepository) MonthSessions(ctx context.Context, studentID int64, month, year int) ([]models.ReportSession, error) {
	const query = `SELECT attendance_date::text AS attendance_date, status, topic,
start_time::text AS start_time, end_time::text AS end_time
FROM attendance_with_month_year
WHERE student_id = $1 AND month = $2 AND year = $3
ORDER BY attendance_date`
	rows := []models.ReportSession{}
	if err := r.db.SelectContext(ctx, &rows, query, studentID, month, year); err != nil {
		return nil, fmt.Errorf("month sessions: %w", err)
	}
	return rows, nil
}

// checkCap counts the month's Present rows excluding the date being written
// and fails with ErrCapExceeded at the limit.
func checkCap(ctx context.Context, tx *sqlx.Tx, studentID int64, month, year int, excludeDate string, capLimit int) error {
	const query = `SELECT COUNT(*) FROM attendance
WHERE student_id = $1 AND status = 'Present'
AND EXTRACT(MONTH FROM attendance_date) = $2
AND EXTRACT(YEAR FROM attendance_date) = $3
AND attendance_date <> $4::date`
	var count int
	if err := tx.GetContext(ctx, &count, query, studentID, month, year, excludeDate); err != nil {
		return fmt.Errorf("count present in month: %w", err)
	}
	if count >= capLimit {
		return ErrCapExceeded
	}
	return nil
}
