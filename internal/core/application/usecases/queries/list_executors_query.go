package queries

import (
	"errors"

	"studydesk/internal/core/domain/model/kernel"
	"studydesk/internal/pkg/guard"
)

var ErrListExecutorsQueryIsNotConstructed = errors.New(
	"ListExecutorsQuery must be created via NewListExecutorsQuery constructor",
)

// ListExecutorsQuery returns the executor registry.
type ListExecutorsQuery struct {
	guard guard.ConstructorGuard
}

func NewListExecutorsQuery() ListExecutorsQuery {
	return ListExecutorsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q ListExecutorsQuery) Validate() error {
	return q.guard.Validate(ErrListExecutorsQueryIsNotConstructed)
}

// ExecutorView is one registry entry.
type ExecutorView struct {
	ID    kernel.ActorID
	Name  string
	Label string
}
