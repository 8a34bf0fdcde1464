package commands

import (
	"context"

	"studydesk/internal/core/domain/model/order"
)

// ExpirePaymentSessionsCommandHandler updates all expired orders in one
// transaction and tells each customer afterwards.
type ExpirePaymentSessionsCommandHandler struct {
	uowFactory UoWFactory
	publisher  NoticePublisher
}

// NewExpirePaymentSessionsCommandHandler creates the handler run by the
// payment sweep job.
func NewExpirePaymentSessionsCommandHandler(
	uowFactory UoWFactory,
	publisher NoticePublisher,
) ExpirePaymentSessionsCommandHandler {
	return ExpirePaymentSessionsCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle returns the number of sessions closed.
func (h ExpirePaymentSessionsCommandHandler) Handle(ctx context.Context, command ExpirePaymentSessionsCommand) (int, error) {
	if err := command.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()

	awaiting, err := repo.ListByStatus(ctx, order.AwaitingPayment)
	if err != nil {
		return 0, err
	}

	expired := make([]*order.Order, 0)
	for _, o := range awaiting {
		changed, expireErr := o.ExpirePayment(command.At())
		if expireErr != nil {
			return 0, expireErr
		}
		if !changed {
			continue
		}

		if err = repo.Update(ctx, o); err != nil {
			return 0, err
		}
		expired = append(expired, o)
	}

	if len(expired) == 0 {
		return 0, nil
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	for _, o := range expired {
		h.publisher.Publish(ctx, o, o.PullNotices())
	}

	return len(expired), nil
}
