package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rehmanpranto/TutorTrack/internal/models"
)

type fakeStudentStore struct {
	student     *models.Student
	firstErr    error
	firstCalls  int
	createCalls int
	createdName string
}

func (f *fakeStudentStore) First(ctx context.Context) (*models.Student, error) {
	f.firstCalls++
	if f.firstErr != nil {
		return nil, f.firstErr
	}
	return f.student, nil
}

func (f *fakeStudentStore) Create(ctx context.Context, name, email string) (*models.Student, error) {
	f.createCalls++
	f.createdName = name
	return &models.Student{ID: 7, Name: name}, nil
}

func TestResolveMemoizesID(t *testing.T) {
	store := &fakeStudentStore{student: &models.Student{ID: 3, Name: "Pranto"}}
	resolver := NewStudentResolver(store, nil, "Pranto", "")

	first, err := resolver.Resolve(context.Background())
	require.NoError(t, err)
	second, err := resolver.Resolve(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(3), first)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, store.firstCalls)
}

func TestResolveCreatesDefaultStudent(t *testing.T) {
	store := &fakeStudentStore{firstErr: sql.ErrNoRows}
	resolver := NewStudentResolver(store, nil, "Pranto", "pranto@example.com")

	id, err := resolver.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
	assert.Equal(t, 1, store.createCalls)
	assert.Equal(t, "Pranto", store.createdName)
}

func TestInvalidateForcesReResolution(t *testing.T) {
	store := &fakeStudentStore{student: &models.Student{ID: 3}}
	resolver := NewStudentResolver(store, nil, "Pranto", "")

	_, err := resolver.Resolve(context.Background())
	require.NoError(t, err)

	resolver.Invalidate()
	store.student = &models.Student{ID: 9}

	id, err := resolver.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(9), id)
	assert.Equal(t, 2, store.firstCalls)
}
