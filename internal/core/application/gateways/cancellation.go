package gateways

import (
	"context"
	"fmt"

	"studydesk/internal/core/application/usecases/commands"
	"studydesk/internal/core/domain/model/chat"
	"studydesk/internal/core/domain/model/order"
)

const flowCancellation = "cancellation"

const (
	stepReason      = "reason"
	stepReasonOther = "reason_other"
)

const keyParty = "party"

// Parties of a structured cancellation.
const (
	partyCustomer = "customer"
	partyExecutor = "executor"
)

// newCancellationFlow asks for a catalogue reason, or "other" with a
// mandatory comment. A customer cancellation and an executor withdrawal share
// it; the party is kept in the session.
func newCancellationFlow() *flow {
	return &flow{
		name:  flowCancellation,
		order: []string{stepReason, stepReasonOther},
		back: map[string]string{
			stepReasonOther: stepReason,
		},
		steps: map[string]step{
			stepReason: {
				prompt: func(r *request) (string, [][]chat.Button) {
					return fmt.Sprintf("Заказ №%d. Укажите причину отказа:", r.session.OrderID), choices(r, reasons(r))
				},
				accept: func(ctx context.Context, r *request, in Input) (string, error) {
					reason, ok, err := chosen(r, in, reasons(r))
					if err != nil {
						return "", err
					}
					if !ok {
						comment, textErr := text(in, "reason")
						if textErr != nil {
							return "", textErr
						}
						return stepDone, cancel(ctx, r, order.OtherOption, comment)
					}
					if reason == order.OtherOption {
						return stepReasonOther, nil
					}
					return stepDone, cancel(ctx, r, reason, "")
				},
				hint: "Выберите причину из списка или опишите её текстом.",
			},
			stepReasonOther: {
				prompt: func(*request) (string, [][]chat.Button) {
					return "Опишите причину отказа:", nil
				},
				accept: func(ctx context.Context, r *request, in Input) (string, error) {
					comment, err := text(in, "reason")
					if err != nil {
						return "", err
					}
					return stepDone, cancel(ctx, r, order.OtherOption, comment)
				},
				hint: "Причина обязательна, опишите её текстом.",
			},
		},
	}
}

func cancellationValues(party string) map[string]string {
	return map[string]string{keyParty: party}
}

func reasons(r *request) []string {
	catalogue := order.CustomerCancelReasons
	if r.value(keyParty) == partyExecutor {
		catalogue = order.ExecutorCancelReasons
	}
	return append(append([]string(nil), catalogue...), order.OtherOption)
}

func cancel(ctx context.Context, r *request, reason, comment string) error {
	id := r.session.OrderID

	if r.value(keyParty) == partyExecutor {
		cmd, err := commands.NewWithdrawCommand(r.actor, id, reason, comment)
		if err != nil {
			return err
		}
		if err = r.env.Commands.Withdraw.Handle(ctx, cmd); err != nil {
			return err
		}
		r.reply(ctx, fmt.Sprintf("✅ Вы отказались от заказа №%d. Администратор уведомлён.", id))
		return nil
	}

	cmd, err := commands.NewRequestCancellationCommand(r.actor, id, reason, comment)
	if err != nil {
		return err
	}
	removed, err := r.env.Commands.RequestCancellation.Handle(ctx, cmd)
	if err != nil {
		return err
	}
	if removed {
		r.reply(ctx, fmt.Sprintf("🗑 Заявка №%d отменена.", id))
	} else {
		r.reply(ctx, fmt.Sprintf("⏳ Запрос на отмену заказа №%d отправлен администратору.", id))
	}
	return nil
}
