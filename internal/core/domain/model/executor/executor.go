package executor

import (
	"errors"
	"strings"

	"studydesk/internal/core/domain/model/kernel"
	"studydesk/internal/pkg/errs"
)

// NoName is shown for executors registered without a full name.
const NoName = "Без ФИО"

var (
	ErrExecutorIsNotConstructed = errors.New("Executor must be created via NewExecutor constructor")
	ErrNameIsTooLong            = errs.NewValueIsOutOfRangeError("executor name", "too long", 0, maxNameLength)
)

const maxNameLength = 128

// Executor is one registry entry: a chat user id and an optional full name.
type Executor struct {
	id            kernel.ActorID
	name          string
	isConstructed bool
}

// NewExecutor builds a registry entry. The name may be empty.
//
// Example:
//
//	e, err := executor.NewExecutor(123456789, "Иванов Иван")
func NewExecutor(id kernel.ActorID, name string) (*Executor, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if len([]rune(name)) > maxNameLength {
		return nil, ErrNameIsTooLong
	}

	return &Executor{
		id:            id,
		name:          name,
		isConstructed: true,
	}, nil
}

func (e *Executor) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrExecutorIsNotConstructed
	}
	return nil
}

func (e *Executor) ID() kernel.ActorID {
	return e.id
}

func (e *Executor) Name() string {
	return e.name
}

// DisplayName returns the name, or NoName when it was skipped.
func (e *Executor) DisplayName() string {
	if e.name == "" {
		return NoName
	}
	return e.name
}

// Label renders the entry for listings, e.g. "Иванов Иван | ID: 42".
func (e *Executor) Label() string {
	return e.DisplayName() + " | ID: " + e.id.String()
}
