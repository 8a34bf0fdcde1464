package ports

import "context"

// PaymentLinker produces the payment reference shown to a customer.
type PaymentLinker interface {
	Link(ctx context.Context, orderID int64, price int) (string, error)
}

// SheetExporter appends one row to the operators' spreadsheet.
type SheetExporter interface {
	Append(ctx context.Context, row []string) error
}
