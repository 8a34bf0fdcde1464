package queries

import (
	"errors"
	"fmt"
	"slices"

	"studydesk/internal/core/domain/model/kernel"
	"studydesk/internal/core/domain/model/order"
	"studydesk/internal/pkg/errs"
	"studydesk/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersQuery is the administrator's view of every confirmed order,
// optionally narrowed to some statuses.
type ListOrdersQuery struct {
	actor    kernel.Actor
	statuses []order.Status
	guard    guard.ConstructorGuard
}

func NewListOrdersQuery(actor kernel.Actor, statuses ...order.Status) (ListOrdersQuery, error) {
	if err := actor.ID.Validate(); err != nil {
		return ListOrdersQuery{}, err
	}

	for _, s := range statuses {
		if err := s.Validate(); err != nil {
			return ListOrdersQuery{}, err
		}
		if s.IsDraft() {
			return ListOrdersQuery{}, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%s orders are never listed", s))
		}
	}

	return ListOrdersQuery{
		actor:    actor,
		statuses: slices.Clone(statuses),
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) Actor() kernel.Actor {
	return q.actor
}

// Statuses returns the filter; empty means every status.
func (q ListOrdersQuery) Statuses() []order.Status {
	return slices.Clone(q.statuses)
}
