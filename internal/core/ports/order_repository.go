// Package ports defines the contracts between the application core and the
// infrastructure: persistence, the chat transport and external services.
package ports

import (
	"context"

	"studydesk/internal/core/domain/model/kernel"
	"studydesk/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order. The id must not be taken.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists an existing order if its stored version still equals
	// aggregate.Version(), then increments the version.
	// Returns errs.VersionIsInvalidError when the order changed meanwhile and
	// errs.ObjectNotFoundError when it is gone.
	Update(ctx context.Context, aggregate *order.Order) error

	// Delete removes the order outright. Removed ids are never reused.
	Delete(ctx context.Context, id int64) error

	// Get returns the order or errs.ObjectNotFoundError.
	Get(ctx context.Context, id int64) (*order.Order, error)

	// List returns every confirmed order (drafts excluded) by ascending id.
	List(ctx context.Context) ([]*order.Order, error)

	// ListByCustomer returns the confirmed orders of one customer by ascending id.
	ListByCustomer(ctx context.Context, customer kernel.ActorID) ([]*order.Order, error)

	// ListByStatus returns the orders in status by ascending id.
	ListByStatus(ctx context.Context, status order.Status) ([]*order.Order, error)

	// NextID returns 1 + the highest id stored or ever added, or 1 for an
	// empty store that never held an order.
	NextID(ctx context.Context) (int64, error)

	// PurgeDrafts deletes the customer's drafts except keep.
	PurgeDrafts(ctx context.Context, customer kernel.ActorID, keep int64) error
}
