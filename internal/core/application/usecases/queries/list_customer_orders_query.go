package queries

import (
	"errors"

	"studydesk/internal/core/domain/model/kernel"
	"studydesk/internal/pkg/guard"
)

var ErrListCustomerOrdersQueryIsNotConstructed = errors.New(
	"ListCustomerOrdersQuery must be created via NewListCustomerOrdersQuery constructor",
)

// ListCustomerOrdersQuery backs the customer's "my orders" menu entry.
type ListCustomerOrdersQuery struct {
	customer kernel.ActorID
	guard    guard.ConstructorGuard
}

func NewListCustomerOrdersQuery(customer kernel.ActorID) (ListCustomerOrdersQuery, error) {
	if err := customer.Validate(); err != nil {
		return ListCustomerOrdersQuery{}, err
	}
	return ListCustomerOrdersQuery{customer: customer, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListCustomerOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListCustomerOrdersQueryIsNotConstructed)
}

func (q ListCustomerOrdersQuery) Customer() kernel.ActorID {
	return q.customer
}
