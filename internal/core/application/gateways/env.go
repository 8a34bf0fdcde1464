// Package gateways turns inbound chat events into lifecycle commands.
//
// A gateway is a fixed pipeline of steps, one input per step. The in-flight
// values live in a ports.Session keyed by the actor. Each pipeline declares
// its forward order and, separately, a static "back" map naming the
// predecessor of every step; both must be edited together when the order of
// fields changes. The last step hands everything collected to exactly one
// command handler.
//
// Events outside a session are menu commands or one-shot buttons and are
// handled by the Router directly.
package gateways

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"studydesk/internal/core/application/usecases/commands"
	"studydesk/internal/core/application/usecases/queries"
	"studydesk/internal/core/domain/model/chat"
	"studydesk/internal/core/domain/model/kernel"
	"studydesk/internal/core/domain/services"
	"studydesk/internal/core/ports"
)

// Identifier resolves who sent an event.
type Identifier interface {
	Identify(ctx context.Context, origin chat.Origin) (kernel.Actor, services.Roster, error)
}

// Replier delivers replies to the acting user. Failures are its own concern.
type Replier interface {
	Notify(ctx context.Context, msg chat.Message)
}

// Handlers are the command handlers the gateways may call.
type Handlers struct {
	SaveDraft           commands.SaveDraftCommandHandler
	ConfirmOrder        commands.ConfirmOrderCommandHandler
	DiscardDraft        commands.DiscardDraftCommandHandler
	AssignExecutor      commands.AssignExecutorCommandHandler
	SelfTake            commands.SelfTakeCommandHandler
	AcceptAssignment    commands.AcceptAssignmentCommandHandler
	DeclineAssignment   commands.DeclineAssignmentCommandHandler
	SubmitOffer         commands.SubmitOfferCommandHandler
	ChangeOfferPrice    commands.ChangeOfferPriceCommandHandler
	ResolveOffer        commands.ResolveOfferCommandHandler
	StartPayment        commands.StartPaymentCommandHandler
	SubmitPayment       commands.SubmitPaymentCommandHandler
	ReviewPayment       commands.ReviewPaymentCommandHandler
	SubmitWork          commands.SubmitWorkCommandHandler
	ApproveWork         commands.ApproveWorkCommandHandler
	AcceptWork          commands.AcceptWorkCommandHandler
	RequestRevision     commands.RequestRevisionCommandHandler
	RequestCancellation commands.RequestCancellationCommandHandler
	ResolveCancellation commands.ResolveCancellationCommandHandler
	Withdraw            commands.WithdrawCommandHandler
	DeleteOrder         commands.DeleteOrderCommandHandler
	ExportOrder         commands.ExportOrderCommandHandler
	AddExecutor         commands.AddExecutorCommandHandler
	RemoveExecutor      commands.RemoveExecutorCommandHandler
}

// Queries are the read handlers the gateways may call.
type Queries struct {
	GetOrder           queries.GetOrderQueryHandler
	ListOrders         queries.ListOrdersQueryHandler
	ListCustomerOrders queries.ListCustomerOrdersQueryHandler
	ListExecutors      queries.ListExecutorsQueryHandler
}

// Env is everything a gateway step may touch. It is passed explicitly; there
// is no package state.
type Env struct {
	Sessions  ports.SessionStore
	Directory Identifier
	Replies   Replier
	Commands  Handlers
	Queries   Queries
	Uploads   kernel.UploadPolicy
	Clock     func() time.Time
	Logger    *slog.Logger
}

func (e Env) validate() error {
	var missing []error
	if e.Sessions == nil {
		missing = append(missing, errors.New("session store is required"))
	}
	if e.Directory == nil {
		missing = append(missing, errors.New("directory is required"))
	}
	if e.Replies == nil {
		missing = append(missing, errors.New("replier is required"))
	}
	return errors.Join(missing...)
}

func (e Env) now() time.Time {
	if e.Clock == nil {
		return time.Now()
	}
	return e.Clock()
}
