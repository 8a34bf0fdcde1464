package commands

import (
	"context"
	"time"

	"studydesk/internal/core/domain/model/kernel"
	"studydesk/internal/core/domain/model/order"
	"studydesk/internal/core/ports"
	"studydesk/internal/pkg/errs"
)

// DefaultPaymentSessionTTL is the advertised payment window.
const DefaultPaymentSessionTTL = 15 * time.Minute

// StartPaymentCommandHandler asks the PaymentLinker for a payment reference
// and records the session on the order. A session already open is replaced.
type StartPaymentCommandHandler struct {
	transition
	linker ports.PaymentLinker
	ttl    time.Duration
}

func NewStartPaymentCommandHandler(
	uowFactory UoWFactory,
	publisher NoticePublisher,
	linker ports.PaymentLinker,
	ttl time.Duration,
) StartPaymentCommandHandler {
	if ttl <= 0 {
		ttl = DefaultPaymentSessionTTL
	}
	return StartPaymentCommandHandler{
		transition: transition{uowFactory: uowFactory, publisher: publisher},
		linker:     linker,
		ttl:        ttl,
	}
}

// Handle returns the opened session together with the price to pay.
func (h StartPaymentCommandHandler) Handle(ctx context.Context, command StartPaymentCommand) (order.PaymentSession, int, error) {
	if err := command.Validate(); err != nil {
		return order.PaymentSession{}, 0, err
	}

	var (
		session order.PaymentSession
		price   int
	)
	_, err := h.apply(ctx, command.OrderID(), func(o *order.Order) error {
		var ok bool
		if price, ok = o.FinalPrice(); !ok {
			return errs.NewValueIsRequiredError("final price")
		}

		link, err := h.linker.Link(ctx, o.ID(), price)
		if err != nil {
			return err
		}

		session, err = order.NewPaymentSession(kernel.NewUUID(), link, command.At(), h.ttl)
		if err != nil {
			return err
		}

		return o.StartPayment(command.Actor(), session)
	})
	if err != nil {
		return order.PaymentSession{}, 0, err
	}

	return session, price, nil
}
