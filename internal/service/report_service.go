package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/rehmanpranto/TutorTrack/internal/models"
	appErrors "github.com/rehmanpranto/TutorTrack/pkg/errors"
)

type sessionStore interface {
	MonthSessions(ctx context.Context, studentID int64, month, year int) ([]models.ReportSession, error)
}

type studentNamer interface {
	Name(ctx context.Context, id int64) (string, error)
}

// ReportService aggregates one month of attendance into the structured
// report consumed by the PDF and Excel renderers.
type ReportService struct {
	sessions sessionStore
	students studentNamer
	resolver tenantResolver
	logger   *zap.Logger
}

// NewReportService constructs the service.
func NewReportService(sessions sessionStore, students studentNamer, resolver tenantResolver, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{sessions: sessions, students: students, resolver: resolver, logger: logger}
}

// BuildMonthly validates the month/year inputs before any store access,
// then computes the summary totals for that month.
func (s *ReportService) BuildMonthly(ctx context.Context, month, year int) (*models.MonthlyReport, error) {
	if month < 1 || month > 12 || year < 1 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "month and year are required")
	}

	studentID, err := s.resolver.Resolve(ctx)
	if err != nil {
		return nil, err
	}

	sessions, err := s.sessions.MonthSessions(ctx, studentID, month, year)
	if err != nil {
		s.logger.Error("failed to fetch report sessions", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to generate report")
	}

	name, err := s.students.Name(ctx, studentID)
	if err != nil {
		s.logger.Warn("failed to fetch student name", zap.Error(err))
		name = "Student"
	}

	report := &models.MonthlyReport{
		StudentName: name,
		Month:       month,
		Year:        year,
		Sessions:    sessions,
	}
	for _, sess := range sessions {
		if sess.Status == models.StatusPresent {
			report.TotalPresent++
		} else {
			report.TotalAbsent++
		}
	}
	report.TotalSessions = report.TotalPresent + report.TotalAbsent

	return report, nil
}
