package service

import (
	"context"
	"database/sql"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/rehmanpranto/TutorTrack/internal/models"
	appErrors "github.com/rehmanpranto/TutorTrack/pkg/errors"
)

type studentStore interface {
	First(ctx context.Context) (*models.Student, error)
	Create(ctx context.Context, name, email string) (*models.Student, error)
}

// StudentResolver resolves the single tenant's student id. The first call
// queries the store, creating the row with the configured display name when
// absent; later calls return the memoized id. Invalidate resets the cache
// so a store-detected mismatch (or a test) can force re-resolution.
type StudentResolver struct {
	repo         studentStore
	logger       *zap.Logger
	defaultName  string
	defaultEmail string

	mu       sync.Mutex
	cachedID int64
}

// NewStudentResolver constructs the resolver.
func NewStudentResolver(repo studentStore, logger *zap.Logger, defaultName, defaultEmail string) *StudentResolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	if defaultName == "" {
		defaultName = "Default Student"
	}
	return &StudentResolver{repo: repo, logger: logger, defaultName: defaultName, defaultEmail: defaultEmail}
}

// Resolve returns the student id, consulting the store only on the first
// call after startup or invalidation.
func (r *StudentResolver) Resolve(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cachedID != 0 {
		return r.cachedID, nil
	}

	student, err := r.repo.First(ctx)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve student")
		}
		student, err = r.repo.Create(ctx, r.defaultName, r.defaultEmail)
		if err != nil {
			return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create student")
		}
		r.logger.Info("created default student", zap.Int64("student_id", student.ID))
	}

	r.cachedID = student.ID
	return r.cachedID, nil
}

// Invalidate drops the memoized id.
func (r *StudentResolver) Invalidate() {
	r.mu.Lock()
	r.cachedID = 0
	r.mu.Unlock()
}
