package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindUserByEmail(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	rows := sqlmock.NewRows([]string{"id", "email", "password_hash", "name", "role", "created_at"}).
		AddRow(int64(1), "tutor@example.com", "hash", "Tutor", "tutor", time.Now())
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, email, password_hash, name, role, created_at FROM users WHERE email = $1 LIMIT 1`)).
		WithArgs("tutor@example.com").
		WillReturnRows(rows)

	user, err := repo.FindByEmail(context.Background(), "tutor@example.com")
	require.NoError(t, err)
	assert.Equal(t, "tutor@example.com", user.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindUserByEmailMissing(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectQuery(`FROM users`).WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByEmail(context.Background(), "nobody@example.com")
	require.True(t, errors.Is(err, sql.ErrNoRows))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUser(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	rows := sqlmock.NewRows([]string{"id", "email", "password_hash", "name", "role", "created_at"}).
		AddRow(int64(2), "new@example.com", "hash", "New Tutor", "tutor", time.Now())
	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("new@example.com", "hash", "New Tutor", "tutor").
		WillReturnRows(rows)

	user, err := repo.Create(context.Background(), "new@example.com", "hash", "New Tutor", "tutor")
	require.NoError(t, err)
	assert.Equal(t, int64(2), user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
