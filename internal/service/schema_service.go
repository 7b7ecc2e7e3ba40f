package service

import (
	"context"
	"sync"

	"go.uber.org/zap"

	appErrors "github.com/rehmanpranto/TutorTrack/pkg/errors"
)

type schemaStore interface {
	Init(ctx context.Context, studentName, studentEmail string) error
	Ping(ctx context.Context) error
}

// SchemaService runs the idempotent schema initialization, guarded by a
// resettable once-flag so repeat /init-db calls are no-ops for the process
// lifetime.
type SchemaService struct {
	repo         schemaStore
	logger       *zap.Logger
	studentName  string
	studentEmail string

	mu          sync.Mutex
	initialized bool
}

// NewSchemaService constructs the service.
func NewSchemaService(repo schemaStore, logger *zap.Logger, studentName, studentEmail string) *SchemaService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SchemaService{repo: repo, logger: logger, studentName: studentName, studentEmail: studentEmail}
}

// Init creates the tables, view, and default student. Returns true when
// initialization had already run in this process.
func (s *SchemaService) Init(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return true, nil
	}

	if err := s.repo.Init(ctx, s.studentName, s.studentEmail); err != nil {
		s.logger.Error("database initialization failed", zap.Error(err))
		return false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to initialize database")
	}

	s.initialized = true
	s.logger.Info("database initialized")
	return false, nil
}

// Reset clears the once-flag, for tests.
func (s *SchemaService) Reset() {
	s.mu.Lock()
	s.initialized = false
	s.mu.Unlock()
}

// Ping verifies database connectivity for the health probe.
func (s *SchemaService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}
