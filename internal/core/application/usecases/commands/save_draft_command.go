package commands

import (
	"errors"
	"time"

	"studydesk/internal/core/domain/model/kernel"
	"studydesk/internal/core/domain/model/order"
	"studydesk/internal/pkg/errs"
	"studydesk/internal/pkg/guard"
)

var ErrSaveDraftCommandIsNotConstructed = errors.New(
	"SaveDraftCommand must be created via NewSaveDraftCommand constructor",
)

// SaveDraftCommand stores the intake values collected so far. An orderID of 0
// starts a new draft; otherwise the existing draft is superseded.
//
// Example:
//
//	cmd, err := NewSaveDraftCommand(customer, 0, details, time.Now())
//	id, err := handler.Handle(ctx, cmd)
//	// later edits reuse id
type SaveDraftCommand struct { //nolint:recvcheck //using for validation
	actor   kernel.Actor
	orderID int64
	details order.Details
	at      time.Time

	guard guard.ConstructorGuard
}

func NewSaveDraftCommand(actor kernel.Actor, orderID int64, details order.Details, at time.Time) (SaveDraftCommand, error) {
	command := SaveDraftCommand{
		details: details,
		at:      at,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setActor(actor),
		command.setOrderID(orderID),
	); err != nil {
		return SaveDraftCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c SaveDraftCommand) Validate() error {
	return c.guard.Validate(ErrSaveDraftCommandIsNotConstructed)
}

func (c SaveDraftCommand) Actor() kernel.Actor {
	return c.actor
}

// OrderID returns the draft to supersede, or 0 for a new draft.
func (c SaveDraftCommand) OrderID() int64 {
	return c.orderID
}

func (c SaveDraftCommand) Details() order.Details {
	return c.details
}

func (c SaveDraftCommand) At() time.Time {
	return c.at
}

func (c *SaveDraftCommand) setActor(actor kernel.Actor) error {
	if err := actor.ID.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}

func (c *SaveDraftCommand) setOrderID(orderID int64) error {
	if orderID < 0 {
		return errs.NewValueIsOutOfRangeError("order id", orderID, 0, "unbounded")
	}
	c.orderID = orderID
	return nil
}
