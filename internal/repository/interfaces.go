package repository

import (
	"context"
	"errors"

	"github.com/alexanderramin/devsynth/internal/domain"
)

// ErrNotFound is wrapped by lookups that match no row.
var ErrNotFound = errors.New("not found")

// ErrAmbiguousID is wrapped when an id prefix matches more than one run.
var ErrAmbiguousID = errors.New("ambiguous id")

// RunRepo stores the manifest of generate runs.
type RunRepo interface {
	Create(ctx context.Context, r *domain.DatasetRun) error
	// GetByID accepts a full id or a unique prefix of one.
	GetByID(ctx context.Context, id string) (*domain.DatasetRun, error)
	// List returns the newest runs first; limit <= 0 means no limit.
	List(ctx context.Context, limit int) ([]*domain.DatasetRun, error)
	Delete(ctx context.Context, id string) error
}
