package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/rehmanpranto/TutorTrack/internal/models"
	"github.com/rehmanpranto/TutorTrack/internal/repository"
	appErrors "github.com/rehmanpranto/TutorTrack/pkg/errors"
)

type attendanceStore interface {
	List(ctx context.Context, studentID int64, filter *models.MonthFilter) ([]models.AttendanceRecord, error)
	CountPresent(ctx context.Context, studentID int64, month, year int) (int, error)
	UpsertByDate(ctx context.Context, studentID int64, req models.UpsertAttendanceRequest, capLimit int) (*models.AttendanceRecord, error)
	UpdateByID(ctx context.Context, req models.UpdateAttendanceRequest, capLimit int) (*models.AttendanceRecord, error)
	Delete(ctx context.Context, id int64) error
}

type tenantResolver interface {
	Resolve(ctx context.Context) (int64, error)
	Invalidate()
}

// AttendanceService enforces the monthly Present cap and upsert-by-date
// semantics over the attendance store.
type AttendanceService struct {
	repo      attendanceStore
	students  tenantResolver
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewAttendanceService constructs the service.
func NewAttendanceService(repo attendanceStore, students tenantResolver, validate *validator.Validate, logger *zap.Logger) *AttendanceService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttendanceService{repo: repo, students: students, validator: validate, logger: logger, now: time.Now}
}

// List returns the student's records, optionally restricted to one month.
// PresentCount covers the filtered set when a filter is supplied, otherwise
// the current real-world month: the dashboard widget always wants "this
// month's" count unless the caller asks about a specific one.
func (s *AttendanceService) List(ctx context.Context, filter *models.MonthFilter) (*models.AttendanceList, error) {
	if filter != nil {
		if filter.Month < 1 || filter.Month > 12 || filter.Year < 1 {
			return nil, appErrors.Clone(appErrors.ErrValidation, "month must be 1-12 and year positive")
		}
	}

	studentID, err := s.students.Resolve(ctx)
	if err != nil {
		return nil, err
	}

	records, err := s.repo.List(ctx, studentID, filter)
	if err != nil {
		s.logger.Error("failed to list attendance", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch attendance")
	}

	presentCount := 0
	if filter != nil {
		for _, rec := range records {
			if rec.Status == models.StatusPresent {
				presentCount++
			}
		}
	} else {
		now := s.now()
		presentCount, err = s.repo.CountPresent(ctx, studentID, int(now.Month()), now.Year())
		if err != nil {
			s.logger.Error("failed to count present days", zap.Error(err))
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch attendance")
		}
	}

	return &models.AttendanceList{
		Records:      records,
		PresentCount: presentCount,
		TotalRecords: len(records),
	}, nil
}

// Upsert creates or overwrites the record for the request's date, subject
// to the monthly Present cap.
func (s *AttendanceService) Upsert(ctx context.Context, req models.UpsertAttendanceRequest) (*models.AttendanceRecord, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid attendance payload")
	}

	studentID, err := s.students.Resolve(ctx)
	if err != nil {
		return nil, err
	}

	record, err := s.repo.UpsertByDate(ctx, studentID, req, models.MonthlyPresentCap)
	if err != nil && isForeignKeyViolation(err) {
		// The cached student id went stale (row deleted externally).
		s.students.Invalidate()
		studentID, err = s.students.Resolve(ctx)
		if err != nil {
			return nil, err
		}
		record, err = s.repo.UpsertByDate(ctx, studentID, req, models.MonthlyPresentCap)
	}
	if err != nil {
		return nil, s.writeError(err, "failed to save attendance")
	}
	return record, nil
}

// BulkUpsert applies a batch of date-keyed writes in order, stopping at
// the first failure. Each write goes through the same validation and cap
// rules as a single upsert. Returns the number of records applied.
func (s *AttendanceService) BulkUpsert(ctx context.Context, reqs []models.UpsertAttendanceRequest) (int, error) {
	for i, req := range reqs {
		if _, err := s.Upsert(ctx, req); err != nil {
			return i, err
		}
	}
	return len(reqs), nil
}

// Update overwrites the mutable fields of the row with the given id. A
// transition into Present re-checks the cap for that row's month.
func (s *AttendanceService) Update(ctx context.Context, req models.UpdateAttendanceRequest) (*models.AttendanceRecord, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid attendance payload")
	}

	record, err := s.repo.UpdateByID(ctx, req, models.MonthlyPresentCap)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "attendance record not found")
		}
		return nil, s.writeError(err, "failed to update attendance")
	}
	return record, nil
}

// Delete physically removes a record by id.
func (s *AttendanceService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return appErrors.Clone(appErrors.ErrValidation, "id is required")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "attendance record not found")
		}
		s.logger.Error("failed to delete attendance", zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete attendance")
	}
	return nil
}

func (s *AttendanceService) writeError(err error, message string) error {
	if errors.Is(err, repository.ErrCapExceeded) {
		return appErrors.ErrMonthlyCapExceeded
	}
	s.logger.Error(message, zap.Error(err))
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, message)
}

func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23503"
}
