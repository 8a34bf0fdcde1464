package jsonstore

import (
	"context"
	"fmt"
	"slices"

	"studydesk/internal/core/domain/model/executor"
	"studydesk/internal/core/domain/model/kernel"
	"studydesk/internal/pkg/errs"
)

// ExecutorRepository reads and writes the registry loaded by its unit of work.
type ExecutorRepository struct {
	uow *UnitOfWork
}

func (r *ExecutorRepository) Add(_ context.Context, e *executor.Executor) error {
	if err := e.Validate(); err != nil {
		return err
	}
	if err := r.uow.ensureActive(); err != nil {
		return err
	}
	if r.index(e.ID()) >= 0 {
		return errs.NewValueIsInvalidErrorWithCause("executor id", fmt.Errorf("executor %s is already registered", e.ID()))
	}

	r.uow.executors = append(r.uow.executors, fromExecutor(e))
	r.uow.executorsDirty = true
	return nil
}

func (r *ExecutorRepository) Delete(_ context.Context, id kernel.ActorID) error {
	if err := r.uow.ensureActive(); err != nil {
		return err
	}

	i := r.index(id)
	if i < 0 {
		return errs.NewObjectNotFoundError("executor", id.Int64())
	}
	r.uow.executors = slices.Delete(r.uow.executors, i, i+1)
	r.uow.executorsDirty = true
	return nil
}

func (r *ExecutorRepository) List(_ context.Context) ([]*executor.Executor, error) {
	if err := r.uow.ensureActive(); err != nil {
		return nil, err
	}

	executors := make([]*executor.Executor, 0, len(r.uow.executors))
	for _, rec := range r.uow.executors {
		e, err := rec.toExecutor()
		if err != nil {
			return nil, fmt.Errorf("executor %d: %w", rec.ID, err)
		}
		executors = append(executors, e)
	}
	return executors, nil
}

func (r *ExecutorRepository) index(id kernel.ActorID) int {
	return slices.IndexFunc(r.uow.executors, func(rec ExecutorRecord) bool {
		return rec.ID == id.Int64()
	})
}
