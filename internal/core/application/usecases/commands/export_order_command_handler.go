package commands

import (
	"context"
	"fmt"
	"strconv"

	"studydesk/internal/core/ports"
	"studydesk/internal/pkg/errs"
)

// ExportOrderCommandHandler writes the spreadsheet row of an order. The order
// itself is not changed, so an export failure never affects its state.
type ExportOrderCommandHandler struct {
	uowFactory UoWFactory
	exporter   ports.SheetExporter
}

// NewExportOrderCommandHandler creates a handler that writes rows through
// exporter. Requires a UoWFactory to read the order.
func NewExportOrderCommandHandler(uowFactory UoWFactory, exporter ports.SheetExporter) ExportOrderCommandHandler {
	return ExportOrderCommandHandler{
		uowFactory: uowFactory,
		exporter:   exporter,
	}
}

func (h ExportOrderCommandHandler) Handle(ctx context.Context, command ExportOrderCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	if err := requireAdmin(command.Actor()); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, command.OrderID())
	if err != nil {
		return err
	}

	if o.Status().IsDraft() {
		return errs.NewObjectNotFoundError("order", strconv.FormatInt(o.ID(), 10))
	}

	if err = h.exporter.Append(ctx, o.SheetRow()); err != nil {
		return fmt.Errorf("export order %d: %w", o.ID(), err)
	}

	return nil
}
