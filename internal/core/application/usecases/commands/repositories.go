// Package commands contains the business operations that change state.
// Every handler follows the same shape: validate the command, open a unit of
// work, load, apply one domain operation, persist, commit, and only then
// publish the notices the operation recorded.
package commands

import (
	"context"

	"studydesk/internal/core/domain/model/order"
	"studydesk/internal/core/ports"
)

type (
	// TxManager handles the transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides the order repository bound to the transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// ExecutorRepoFactory provides the executor registry bound to the transaction.
	ExecutorRepoFactory interface {
		ExecutorRepository() ports.ExecutorRepository
	}

	// UoW manages transactions across orders and the executor registry.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   o, err := uow.OrderRepository().Get(ctx, id)
	//   // ... apply a transition
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepoFactory
		ExecutorRepoFactory
	}

	// UoWFactory creates a unit of work per command.
	UoWFactory interface {
		Create() UoW
	}

	// NoticePublisher delivers the notices recorded by a transition. It is
	// called after commit and cannot fail the command.
	NoticePublisher interface {
		Publish(ctx context.Context, o *order.Order, notices []order.Notice)
	}
)
