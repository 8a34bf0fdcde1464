package ports

import (
	"context"

	"studydesk/internal/core/domain/model/executor"
	"studydesk/internal/core/domain/model/kernel"
)

// ExecutorRepository persists the executor registry.
type ExecutorRepository interface {
	// Add registers an executor. A duplicate id is a validation error.
	Add(ctx context.Context, e *executor.Executor) error

	// Delete removes the entry or returns errs.ObjectNotFoundError.
	Delete(ctx context.Context, id kernel.ActorID) error

	// List returns the registry in insertion order.
	List(ctx context.Context) ([]*executor.Executor, error)
}
