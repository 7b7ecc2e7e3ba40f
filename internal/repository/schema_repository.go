package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// SchemaRepository owns the idempotent DDL for the three tables and the
// month/year view.
type SchemaRepository struct {
	db *sqlx.DB
}

// NewSchemaRepository constructs the repository.
func NewSchemaRepository(db *sqlx.DB) *SchemaRepository {
	return &SchemaRepository{db: db}
}

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS students (
		id SERIAL PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		email VARCHAR(100),
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS attendance (
		id SERIAL PRIMARY KEY,
		student_id INT NOT NULL,
		attendance_date DATE NOT NULL,
		status VARCHAR(10) CHECK (status IN ('Present', 'Absent')),
		topic VARCHAR(255),
		start_time TIME,
		end_time TIME,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (student_id) REFERENCES students(id) ON DELETE CASCADE,
		UNIQUE (student_id, attendance_date)
	)`,
	`CREATE OR REPLACE VIEW attendance_with_month_year AS
	SELECT
		id,
		student_id,
		attendance_date,
		status,
		topic,
		start_time,
		end_time,
		EXTRACT(MONTH FROM attendance_date) AS month,
		EXTRACT(YEAR FROM attendance_date) AS year,
		created_at
	FROM attendance`,
	`CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		email VARCHAR(100) UNIQUE NOT NULL,
		password_hash VARCHAR(255),
		name VARCHAR(100) NOT NULL,
		role VARCHAR(20) DEFAULT 'tutor',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
}

// Init creates the tables and view inside one transaction and seeds the
// default student row when the students table is empty.
func (r *SchemaRepository) Init(ctx context.Context, studentName, studentEmail string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema init: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	for _, stmt := range schemaStatements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema init: %w", err)
		}
	}

	var count int
	if err := tx.GetContext(ctx, &count, `SELECT COUNT(*) FROM students`); err != nil {
		return fmt.Errorf("count students: %w", err)
	}
	if count == 0 {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO students (name, email) VALUES ($1, $2)`, studentName, studentEmail); err != nil {
			return fmt.Errorf("seed default student: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema init: %w", err)
	}
	committed = true
	return nil
}

// Ping verifies database connectivity for the health probe.
func (r *SchemaRepository) Ping(ctx context.Context) error {
	var one int
	if err := r.db.GetContext(ctx, &one, `SELECT 1`); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	return nil
}
