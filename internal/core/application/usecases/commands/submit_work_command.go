package commands

import (
	"errors"
	"time"

	"studydesk/internal/core/domain/model/kernel"
	"studydesk/internal/pkg/errs"
)

var ErrSubmitWorkCommandIsNotConstructed = errors.New(
	"SubmitWorkCommand must be created via NewSubmitWorkCommand constructor",
)

// SubmitWorkCommand delivers the executor's work file for administrator review.
type SubmitWorkCommand struct {
	orderAction
	file kernel.FileRef
	at   time.Time
}

// NewSubmitWorkCommand requires a file.
//
// Example:
//
//	file, _ := kernel.NewFileRef(msg.FileID, kernel.FileKindDocument)
//	cmd, err := NewSubmitWorkCommand(executor, orderID, file, time.Now())
func NewSubmitWorkCommand(actor kernel.Actor, orderID int64, file kernel.FileRef, at time.Time) (SubmitWorkCommand, error) {
	action, err := newOrderAction(actor, orderID)
	if err != nil {
		return SubmitWorkCommand{}, err
	}
	if file.IsZero() {
		return SubmitWorkCommand{}, errs.NewValueIsRequiredError("submitted work")
	}
	return SubmitWorkCommand{orderAction: action, file: file, at: at}, nil
}

// Validate ensures the command was created through the constructor.
func (c SubmitWorkCommand) Validate() error {
	return c.guard.Validate(ErrSubmitWorkCommandIsNotConstructed)
}

func (c SubmitWorkCommand) File() kernel.FileRef {
	return c.file
}

func (c SubmitWorkCommand) At() time.Time {
	return c.at
}
