package commands

import (
	"errors"

	"studydesk/internal/core/domain/model/kernel"
)

var ErrExportOrderCommandIsNotConstructed = errors.New(
	"ExportOrderCommand must be created via NewExportOrderCommand constructor",
)

// ExportOrderCommand appends one order to the operators' spreadsheet.
type ExportOrderCommand struct {
	orderAction
}

// NewExportOrderCommand creates the command. Drafts are not exported.
func NewExportOrderCommand(actor kernel.Actor, orderID int64) (ExportOrderCommand, error) {
	action, err := newOrderAction(actor, orderID)
	if err != nil {
		return ExportOrderCommand{}, err
	}
	return ExportOrderCommand{orderAction: action}, nil
}

// Validate ensures the command was created through the constructor.
func (c ExportOrderCommand) Validate() error {
	return c.guard.Validate(ErrExportOrderCommandIsNotConstructed)
}
