package commands

import (
	"errors"
	"strings"

	"studydesk/internal/core/domain/model/kernel"
	"studydesk/internal/pkg/errs"
)

var ErrRequestRevisionCommandIsNotConstructed = errors.New(
	"RequestRevisionCommand must be created via NewRequestRevisionCommand constructor",
)

// RequestRevisionCommand sends approved work back with the customer's comment.
type RequestRevisionCommand struct {
	orderAction
	comment string
}

// NewRequestRevisionCommand rejects an empty comment.
//
// Example:
//
//	cmd, err := NewRequestRevisionCommand(customer, orderID, "поправьте оформление списка литературы")
//	if errs.IsValidation(err) {
//	    // ask the customer to describe what to fix
//	}
func NewRequestRevisionCommand(actor kernel.Actor, orderID int64, comment string) (RequestRevisionCommand, error) {
	action, err := newOrderAction(actor, orderID)
	if err != nil {
		return RequestRevisionCommand{}, err
	}

	comment = strings.TrimSpace(comment)
	if comment == "" {
		return RequestRevisionCommand{}, errs.NewValueIsRequiredError("revision comment")
	}

	return RequestRevisionCommand{orderAction: action, comment: comment}, nil
}

// Validate ensures the command was created through the constructor.
func (c RequestRevisionCommand) Validate() error {
	return c.guard.Validate(ErrRequestRevisionCommandIsNotConstructed)
}

func (c RequestRevisionCommand) Comment() string {
	return c.comment
}
