package service

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rehmanpranto/TutorTrack/internal/models"
	"github.com/rehmanpranto/TutorTrack/internal/repository"
	appErrors "github.com/rehmanpranto/TutorTrack/pkg/errors"
)

type fakeAttendanceStore struct {
	records      []models.AttendanceRecord
	listErr      error
	presentCount int
	countedMonth int
	countedYear  int

	upsertResult *models.AttendanceRecord
	upsertErrs   []error
	upsertCalls  int

	updateResult *models.AttendanceRecord
	updateErr    error

	deleteErr error
}

func (f *fakeAttendanceStore) List(ctx context.Context, studentID int64, filter *models.MonthFilter) ([]models.AttendanceRecord, error) {
	return f.records, f.listErr
}

func (f *fakeAttendanceStore) CountPresent(ctx context.Context, studentID int64, month, year int) (int, error) {
	f.countedMonth = month
	f.countedYear = year
	return f.presentCount, nil
}

func (f *fakeAttendanceStore) UpsertByDate(ctx context.Context, studentID int64, req models.UpsertAttendanceRequest, capLimit int) (*models.AttendanceRecord, error) {
	call := f.upsertCalls
	f.upsertCalls++
	if call < len(f.upsertErrs) && f.upsertErrs[call] != nil {
		return nil, f.upsertErrs[call]
	}
	return f.upsertResult, nil
}

func (f *fakeAttendanceStore) UpdateByID(ctx context.Context, req models.UpdateAttendanceRequest, capLimit int) (*models.AttendanceRecord, error) {
	return f.updateResult, f.updateErr
}

func (f *fakeAttendanceStore) Delete(ctx context.Context, id int64) error {
	return f.deleteErr
}

type fakeResolver struct {
	id          int64
	err         error
	invalidated bool
}

func (f *fakeResolver) Resolve(ctx context.Context) (int64, error) { return f.id, f.err }
func (f *fakeResolver) Invalidate()                                { f.invalidated = true }

func topicPtr(s string) *string { return &s }

func TestUpsertRejectsInvalidDate(t *testing.T) {
	svc := NewAttendanceService(&fakeAttendanceStore{}, &fakeResolver{id: 1}, nil, nil)

	_, err := svc.Upsert(context.Background(), models.UpsertAttendanceRequest{
		Date:   "03-08-2025",
		Status: models.StatusPresent,
	})
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestUpsertRejectsUnknownStatus(t *testing.T) {
	svc := NewAttendanceService(&fakeAttendanceStore{}, &fakeResolver{id: 1}, nil, nil)

	_, err := svc.Upsert(context.Background(), models.UpsertAttendanceRequest{
		Date:   "2025-08-03",
		Status: "Late",
	})
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestUpsertMapsCapError(t *testing.T) {
	store := &fakeAttendanceStore{upsertErrs: []error{repository.ErrCapExceeded}}
	svc := NewAttendanceService(store, &fakeResolver{id: 1}, nil, nil)

	_, err := svc.Upsert(context.Background(), models.UpsertAttendanceRequest{
		Date:   "2025-09-17",
		Status: models.StatusPresent,
		Topic:  topicPtr("Algebra"),
	})
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrMonthlyCapExceeded.Code, appErr.Code)
	assert.Equal(t, 400, appErr.Status)
}

func TestUpsertRetriesAfterStaleStudentID(t *testing.T) {
	fkErr := fmt.Errorf("upsert attendance: %w", &pq.Error{Code: "23503"})
	store := &fakeAttendanceStore{
		upsertErrs:   []error{fkErr, nil},
		upsertResult: &models.AttendanceRecord{ID: 1, Date: "2025-08-03", Status: models.StatusPresent},
	}
	resolver := &fakeResolver{id: 1}
	svc := NewAttendanceService(store, resolver, nil, nil)

	record, err := svc.Upsert(context.Background(), models.UpsertAttendanceRequest{
		Date:   "2025-08-03",
		Status: models.StatusPresent,
	})
	require.NoError(t, err)
	assert.True(t, resolver.invalidated)
	assert.Equal(t, 2, store.upsertCalls)
	assert.Equal(t, "2025-08-03", record.Date)
}

func TestBulkUpsertAppliesAllRecords(t *testing.T) {
	store := &fakeAttendanceStore{upsertResult: &models.AttendanceRecord{ID: 1}}
	svc := NewAttendanceService(store, &fakeResolver{id: 1}, nil, nil)

	applied, err := svc.BulkUpsert(context.Background(), []models.UpsertAttendanceRequest{
		{Date: "2025-08-03", Status: models.StatusPresent, Topic: topicPtr("Economic Problem")},
		{Date: "2025-08-04", Status: models.StatusPresent},
		{Date: "2025-08-06", Status: models.StatusAbsent},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, applied)
	assert.Equal(t, 3, store.upsertCalls)
}

func TestBulkUpsertStopsAtFirstFailure(t *testing.T) {
	store := &fakeAttendanceStore{
		upsertErrs:   []error{nil, repository.ErrCapExceeded},
		upsertResult: &models.AttendanceRecord{ID: 1},
	}
	svc := NewAttendanceService(store, &fakeResolver{id: 1}, nil, nil)

	applied, err := svc.BulkUpsert(context.Background(), []models.UpsertAttendanceRequest{
		{Date: "2025-08-03", Status: models.StatusPresent},
		{Date: "2025-08-04", Status: models.StatusPresent},
		{Date: "2025-08-06", Status: models.StatusPresent},
	})
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrMonthlyCapExceeded.Code, appErr.Code)
	assert.Equal(t, 1, applied)
	assert.Equal(t, 2, store.upsertCalls)
}

func TestListFilteredCountsPresentInSet(t *testing.T) {
	store := &fakeAttendanceStore{
		records: []models.AttendanceRecord{
			{Date: "2025-08-10", Status: models.StatusPresent},
			{Date: "2025-08-05", Status: models.StatusAbsent},
			{Date: "2025-08-03", Status: models.StatusPresent},
		},
	}
	svc := NewAttendanceService(store, &fakeResolver{id: 1}, nil, nil)

	list, err := svc.List(context.Background(), &models.MonthFilter{Month: 8, Year: 2025})
	require.NoError(t, err)
	assert.Equal(t, 2, list.PresentCount)
	assert.Equal(t, 3, list.TotalRecords)
}

func TestListUnfilteredCountsCurrentMonth(t *testing.T) {
	store := &fakeAttendanceStore{presentCount: 4}
	svc := NewAttendanceService(store, &fakeResolver{id: 1}, nil, nil)
	svc.now = func() time.Time { return time.Date(2025, time.August, 20, 0, 0, 0, 0, time.UTC) }

	list, err := svc.List(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 4, list.PresentCount)
	assert.Equal(t, 8, store.countedMonth)
	assert.Equal(t, 2025, store.countedYear)
}

func TestListRejectsOutOfRangeMonth(t *testing.T) {
	svc := NewAttendanceService(&fakeAttendanceStore{}, &fakeResolver{id: 1}, nil, nil)

	_, err := svc.List(context.Background(), &models.MonthFilter{Month: 13, Year: 2025})
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestUpdateMapsNotFound(t *testing.T) {
	store := &fakeAttendanceStore{updateErr: sql.ErrNoRows}
	svc := NewAttendanceService(store, &fakeResolver{id: 1}, nil, nil)

	_, err := svc.Update(context.Background(), models.UpdateAttendanceRequest{ID: 42, Status: models.StatusAbsent})
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestUpdateMapsCapError(t *testing.T) {
	store := &fakeAttendanceStore{updateErr: repository.ErrCapExceeded}
	svc := NewAttendanceService(store, &fakeResolver{id: 1}, nil, nil)

	_, err := svc.Update(context.Background(), models.UpdateAttendanceRequest{ID: 7, Status: models.StatusPresent})
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrMonthlyCapExceeded.Code, appErr.Code)
}

func TestDeleteMapsNotFound(t *testing.T) {
	store := &fakeAttendanceStore{deleteErr: sql.ErrNoRows}
	svc := NewAttendanceService(store, &fakeResolver{id: 1}, nil, nil)

	err := svc.Delete(context.Background(), 99)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestDeleteRejectsMissingID(t *testing.T) {
	svc := NewAttendanceService(&fakeAttendanceStore{}, &fakeResolver{id: 1}, nil, nil)

	err := svc.Delete(context.Background(), 0)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}
