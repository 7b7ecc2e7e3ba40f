package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/rehmanpranto/TutorTrack/internal/models"
)

// StudentRepository provides access to the single tenant's student row.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository creates a new instance of StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// First returns the first student row. Returns sql.ErrNoRows when the
// table is empty.
func (r *StudentRepository) First(ctx context.Context) (*models.Student, error) {
	const query = `SELECT id, name, email, created_at FROM students ORDER BY id LIMIT 1`
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("first student: %w", err)
	}
	return &student, nil
}

// Create inserts a student row and returns it.
func (r *StudentRepository) Create(ctx context.Context, name, email string) (*models.Student, error) {
	const query = `INSERT INTO students (name, email) VALUES ($1, $2) RETURNING id, name, email, created_at`
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, name, email); err != nil {
		return nil, fmt.Errorf("create student: %w", err)
	}
	return &student, nil
}

// Name returns the display name for a student id, used by report headers.
func (r *StudentRepository) Name(ctx context.Context, id int64) (string, error) {
	const query = `SELECT name FROM students WHERE id = $1`
	var name string
	if err := r.db.GetContext(ctx, &name, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", err
		}
		return "", fmt.Errorf("student name: %w", err)
	}
	return name, nil
}
