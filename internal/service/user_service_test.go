package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/rehmanpranto/TutorTrack/internal/models"
	appErrors "github.com/rehmanpranto/TutorTrack/pkg/errors"
)

type fakeProvisionStore struct {
	existing    *models.User
	findErr     error
	createCalls int
	createdHash string
	createdRole string
}

func (f *fakeProvisionStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.existing, nil
}

func (f *fakeProvisionStore) Create(ctx context.Context, email, passwordHash, name, role string) (*models.User, error) {
	f.createCalls++
	f.createdHash = passwordHash
	f.createdRole = role
	return &models.User{ID: 1, Email: email, Name: name, Role: role, PasswordHash: passwordHash}, nil
}

func TestProvisionCreatesUserWithHashedPassword(t *testing.T) {
	store := &fakeProvisionStore{findErr: sql.ErrNoRows}
	svc := NewUserService(store, nil, nil)

	user, already, err := svc.Provision(context.Background(), ProvisionRequest{
		Email:    "tutor@tutortrack.com",
		Password: "tutor123",
		Name:     "Tutor",
	})
	require.NoError(t, err)
	assert.False(t, already)
	assert.Equal(t, 1, store.createCalls)
	assert.Equal(t, "tutor", store.createdRole)
	assert.NotEqual(t, "tutor123", store.createdHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(store.createdHash), []byte("tutor123")))
	assert.Equal(t, "tutor@tutortrack.com", user.Email)
}

func TestProvisionReportsExistingUser(t *testing.T) {
	store := &fakeProvisionStore{existing: &models.User{ID: 5, Email: "tutor@tutortrack.com"}}
	svc := NewUserService(store, nil, nil)

	user, already, err := svc.Provision(context.Background(), ProvisionRequest{
		Email:    "tutor@tutortrack.com",
		Password: "tutor123",
		Name:     "Tutor",
	})
	require.NoError(t, err)
	assert.True(t, already)
	assert.Equal(t, int64(5), user.ID)
	assert.Zero(t, store.createCalls)
}

func TestProvisionRejectsMalformedEmail(t *testing.T) {
	svc := NewUserService(&fakeProvisionStore{findErr: sql.ErrNoRows}, nil, nil)

	_, _, err := svc.Provision(context.Background(), ProvisionRequest{
		Email:    "not-an-email",
		Password: "tutor123",
		Name:     "Tutor",
	})
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestProvisionRejectsShortPassword(t *testing.T) {
	svc := NewUserService(&fakeProvisionStore{findErr: sql.ErrNoRows}, nil, nil)

	_, _, err := svc.Provision(context.Background(), ProvisionRequest{
		Email:    "tutor@tutortrack.com",
		Password: "short",
		Name:     "Tutor",
	})
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}
