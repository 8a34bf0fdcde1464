// Package dispatch turns the notices recorded by lifecycle transitions into
// chat messages and delivers them. Delivery is best effort: a failure is
// logged and reported to the administrator, and committed state is never
// rolled back.
package dispatch

import (
	"context"
	"fmt"
	"html"
	"log/slog"

	"studydesk/internal/core/domain/model/chat"
	"studydesk/internal/core/domain/model/kernel"
	"studydesk/internal/core/domain/model/order"
	"studydesk/internal/core/domain/services"
	"studydesk/internal/core/ports"
)

// RosterSource provides the administrator and executor pool for fan-out.
type RosterSource interface {
	Roster(ctx context.Context) (services.Roster, error)
}

// DeliveryFailure is a notice that did not reach its recipient.
type DeliveryFailure struct {
	OrderID   int64
	Recipient kernel.ActorID
	Kind      order.NoticeKind
	Err       error
}

func (f *DeliveryFailure) Error() string {
	return fmt.Sprintf("deliver %s for order %d to %s: %v", f.Kind, f.OrderID, f.Recipient, f.Err)
}

func (f *DeliveryFailure) Unwrap() error {
	return f.Err
}

// Dispatcher implements the commands' NoticePublisher.
type Dispatcher struct {
	notifier ports.Notifier
	roster   RosterSource
	logger   *slog.Logger
}

func NewDispatcher(notifier ports.Notifier, roster RosterSource, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		notifier: notifier,
		roster:   roster,
		logger:   logger.With("component", "Dispatcher"),
	}
}

// Publish delivers every notice. Failures are logged and reported.
func (d *Dispatcher) Publish(ctx context.Context, o *order.Order, notices []order.Notice) {
	d.Deliver(ctx, o, notices)
}

// Deliver is Publish returning the failures.
func (d *Dispatcher) Deliver(ctx context.Context, o *order.Order, notices []order.Notice) []*DeliveryFailure {
	if len(notices) == 0 {
		return nil
	}

	roster, err := d.roster.Roster(ctx)
	if err != nil {
		d.logger.ErrorContext(ctx, "executor registry unavailable, notifying configured parties only",
			"order_id", o.ID(), "error", err)
	}

	var failures []*DeliveryFailure
	for _, n := range notices {
		for _, to := range recipients(roster, o, n) {
			sendErr := d.notifier.Send(ctx, Compose(o, n, to))
			if sendErr == nil {
				continue
			}

			failure := &DeliveryFailure{OrderID: o.ID(), Recipient: to, Kind: n.Kind, Err: sendErr}
			failures = append(failures, failure)
			d.report(ctx, roster.Admin(), failure)
		}
	}
	return failures
}

// Notify sends a message outside of any transition, e.g. a reply to the
// acting party. Failures are logged only.
func (d *Dispatcher) Notify(ctx context.Context, msg chat.Message) {
	if err := d.notifier.Send(ctx, msg); err != nil {
		d.logger.WarnContext(ctx, "reply not delivered", "recipient", msg.To.String(), "error", err)
	}
}

func (d *Dispatcher) report(ctx context.Context, admin kernel.ActorID, failure *DeliveryFailure) {
	d.logger.WarnContext(ctx, "notification not delivered",
		"order_id", failure.OrderID,
		"recipient", failure.Recipient.String(),
		"notice", failure.Kind.String(),
		"error", failure.Err,
	)

	if failure.Recipient == admin || admin.Validate() != nil {
		return
	}

	text := fmt.Sprintf("⚠️ Не удалось отправить уведомление пользователю (ID: %s) по заказу №%d.\nОшибка: %s",
		failure.Recipient, failure.OrderID, html.EscapeString(failure.Err.Error()))
	if err := d.notifier.Send(ctx, chat.Reply(admin, text)); err != nil {
		d.logger.ErrorContext(ctx, "delivery failure report not delivered", "order_id", failure.OrderID, "error", err)
	}
}

func recipients(roster services.Roster, o *order.Order, n order.Notice) []kernel.ActorID {
	var ids []kernel.ActorID

	switch n.To {
	case order.AudienceCustomer:
		ids = []kernel.ActorID{o.Customer().ID}
	case order.AudienceExecutor:
		ids = []kernel.ActorID{n.Executor}
	case order.AudienceAdmin:
		ids = []kernel.ActorID{roster.Admin()}
	case order.AudienceExecutorPool:
		ids = roster.Pool()
	}

	valid := ids[:0]
	for _, id := range ids {
		if id.Validate() == nil {
			valid = append(valid, id)
		}
	}
	return valid
}
