package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rehmanpranto/TutorTrack/internal/models"
	appErrors "github.com/rehmanpranto/TutorTrack/pkg/errors"
)

type fakeSessionStore struct {
	sessions []models.ReportSession
	err      error
}

func (f *fakeSessionStore) MonthSessions(ctx context.Context, studentID int64, month, year int) ([]models.ReportSession, error) {
	return f.sessions, f.err
}

type fakeStudentNamer struct {
	name string
	err  error
}

func (f *fakeStudentNamer) Name(ctx context.Context, id int64) (string, error) {
	return f.name, f.err
}

func TestBuildMonthlyTotals(t *testing.T) {
	store := &fakeSessionStore{sessions: []models.ReportSession{
		{Date: "2025-08-03", Status: models.StatusPresent},
		{Date: "2025-08-05", Status: models.StatusAbsent},
		{Date: "2025-08-10", Status: models.StatusPresent, Topic: topicPtr("Geometry")},
		{Date: "2025-08-12", Status: models.StatusPresent},
		{Date: "2025-08-17", Status: models.StatusAbsent},
	}}
	svc := NewReportService(store, &fakeStudentNamer{name: "Pranto"}, &fakeResolver{id: 1}, nil)

	report, err := svc.BuildMonthly(context.Background(), 8, 2025)
	require.NoError(t, err)
	assert.Equal(t, "Pranto", report.StudentName)
	assert.Equal(t, 3, report.TotalPresent)
	assert.Equal(t, 2, report.TotalAbsent)
	assert.Equal(t, 5, report.TotalSessions)
	assert.Len(t, report.Sessions, 5)
}

func TestBuildMonthlyEmptyMonth(t *testing.T) {
	svc := NewReportService(&fakeSessionStore{}, &fakeStudentNamer{name: "Pranto"}, &fakeResolver{id: 1}, nil)

	report, err := svc.BuildMonthly(context.Background(), 2, 2026)
	require.NoError(t, err)
	assert.Zero(t, report.TotalSessions)
	assert.Empty(t, report.Sessions)
}

func TestBuildMonthlyRejectsBadMonth(t *testing.T) {
	svc := NewReportService(&fakeSessionStore{}, &fakeStudentNamer{}, &fakeResolver{id: 1}, nil)

	_, err := svc.BuildMonthly(context.Background(), 0, 2025)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestBuildMonthlyFallsBackToDefaultName(t *testing.T) {
	svc := NewReportService(&fakeSessionStore{}, &fakeStudentNamer{err: errors.New("gone")}, &fakeResolver{id: 1}, nil)

	report, err := svc.BuildMonthly(context.Background(), 8, 2025)
	require.NoError(t, err)
	assert.Equal(t, "Student", report.StudentName)
}
