package commands

import (
	"errors"
	"time"

	"studydesk/internal/core/domain/model/kernel"
	"studydesk/internal/pkg/errs"
)

var ErrSubmitPaymentCommandIsNotConstructed = errors.New(
	"SubmitPaymentCommand must be created via NewSubmitPaymentCommand constructor",
)

// SubmitPaymentCommand attaches the customer's payment proof (a screenshot
// or a document). It is rejected once the payment session has expired.
type SubmitPaymentCommand struct {
	orderAction
	file kernel.FileRef
	at   time.Time
}

// NewSubmitPaymentCommand requires a file. The session is checked against
// at by the order itself.
func NewSubmitPaymentCommand(actor kernel.Actor, orderID int64, file kernel.FileRef, at time.Time) (SubmitPaymentCommand, error) {
	action, err := newOrderAction(actor, orderID)
	if err != nil {
		return SubmitPaymentCommand{}, err
	}
	if file.IsZero() {
		return SubmitPaymentCommand{}, errs.NewValueIsRequiredError("payment proof")
	}
	return SubmitPaymentCommand{orderAction: action, file: file, at: at}, nil
}

// Validate ensures the command was created through the constructor.
func (c SubmitPaymentCommand) Validate() error {
	return c.guard.Validate(ErrSubmitPaymentCommandIsNotConstructed)
}

func (c SubmitPaymentCommand) File() kernel.FileRef {
	return c.file
}

func (c SubmitPaymentCommand) At() time.Time {
	return c.at
}
