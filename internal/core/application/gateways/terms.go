package gateways

import (
	"context"
	"fmt"
	"strconv"

	"studydesk/internal/core/application/usecases/commands"
	"studydesk/internal/core/domain/model/chat"
	"studydesk/internal/core/domain/model/kernel"
	"studydesk/internal/core/domain/model/order"
	"studydesk/internal/pkg/errs"
	"studydesk/internal/pkg/ru"
)

const (
	flowOffer       = "offer"
	flowSelfTake    = "self_take"
	flowChangePrice = "change_price"
)

const (
	stepPrice         = "price"
	stepOfferDeadline = "offer_deadline"
	stepOfferComment  = "offer_comment"
)

const (
	keyPrice         = "price"
	keyOfferDeadline = "offer_deadline"
	keyOfferComment  = "offer_comment"
)

// terms is what a terms flow does with the collected price, deadline and comment.
type terms func(ctx context.Context, r *request, price int, deadline, comment string) error

// newTermsFlow collects price, deadline and an optional comment.
func newTermsFlow(name string, roles []kernel.Role, submit terms) *flow {
	return &flow{
		name:  name,
		roles: roles,
		order: []string{stepPrice, stepOfferDeadline, stepOfferComment},
		back: map[string]string{
			stepOfferDeadline: stepPrice,
			stepOfferComment:  stepOfferDeadline,
		},
		steps: map[string]step{
			stepPrice: priceStep(func(_ context.Context, r *request, price int) (string, error) {
				r.set(keyPrice, strconv.Itoa(price))
				return stepOfferDeadline, nil
			}),
			stepOfferDeadline: {
				prompt: func(r *request) (string, [][]chat.Button) {
					return fmt.Sprintf("Заказ №%d. Выберите срок выполнения или введите количество дней:", r.session.OrderID),
						choices(r, deadlineLabels())
				},
				accept: acceptOfferDeadline,
				hint:   "Введите количество дней или дату в формате ДД.ММ.ГГГГ.",
			},
			stepOfferComment: {
				prompt: func(r *request) (string, [][]chat.Button) {
					return "Добавьте комментарий для клиента или нажмите «Пропустить»:", nil
				},
				accept: func(ctx context.Context, r *request, in Input) (string, error) {
					comment := ""
					if !in.Skipped {
						value, err := text(in, "comment")
						if err != nil {
							return "", err
						}
						comment = value
					}
					price, err := kernel.ParseAmount(r.value(keyPrice))
					if err != nil {
						return "", err
					}
					if err = submit(ctx, r, price, r.value(keyOfferDeadline), comment); err != nil {
						return "", err
					}
					return stepDone, nil
				},
				skippable: true,
			},
		},
	}
}

func newOfferFlow() *flow {
	return newTermsFlow(flowOffer, []kernel.Role{kernel.RoleExecutor, kernel.RoleAdmin},
		func(ctx context.Context, r *request, price int, deadline, comment string) error {
			cmd, err := commands.NewSubmitOfferCommand(r.actor, r.session.OrderID, price, deadline, comment)
			if err != nil {
				return err
			}
			if err = r.env.Commands.SubmitOffer.Handle(ctx, cmd); err != nil {
				return err
			}
			r.reply(ctx, fmt.Sprintf("✅ Предложение по заказу №%d отправлено администратору: %d ₽, срок %s.",
				r.session.OrderID, price, ru.DaysText(deadline)))
			return nil
		})
}

func newSelfTakeFlow() *flow {
	return newTermsFlow(flowSelfTake, []kernel.Role{kernel.RoleAdmin},
		func(ctx context.Context, r *request, price int, deadline, comment string) error {
			cmd, err := commands.NewSelfTakeCommand(r.actor, r.session.OrderID, price, deadline, comment)
			if err != nil {
				return err
			}
			if err = r.env.Commands.SelfTake.Handle(ctx, cmd); err != nil {
				return err
			}
			r.reply(ctx, fmt.Sprintf("✅ Вы взяли заказ №%d. Клиенту отправлен запрос на оплату %d ₽.",
				r.session.OrderID, price))
			return nil
		})
}

// newChangePriceFlow lets the administrator replace the price of a pending offer.
func newChangePriceFlow() *flow {
	return &flow{
		name:  flowChangePrice,
		roles: []kernel.Role{kernel.RoleAdmin},
		order: []string{stepPrice},
		steps: map[string]step{
			stepPrice: priceStep(func(ctx context.Context, r *request, price int) (string, error) {
				cmd, err := commands.NewChangeOfferPriceCommand(r.actor, r.session.OrderID, price)
				if err != nil {
					return "", err
				}
				if _, err = r.env.Commands.ChangeOfferPrice.Handle(ctx, cmd); err != nil {
					return "", err
				}
				return stepDone, nil
			}),
		},
	}
}

// priceStep accepts a preset button or a typed non-negative amount.
func priceStep(next func(ctx context.Context, r *request, price int) (string, error)) step {
	labels := make([]string, len(order.PricePresets))
	for i, p := range order.PricePresets {
		labels[i] = fmt.Sprintf("%d ₽", p)
	}

	return step{
		prompt: func(r *request) (string, [][]chat.Button) {
			return fmt.Sprintf("Заказ №%d. Выберите цену или введите сумму в рублях:", r.session.OrderID), choices(r, labels)
		},
		accept: func(ctx context.Context, r *request, in Input) (string, error) {
			price, err := priceInput(r, in, labels)
			if err != nil {
				return "", err
			}
			return next(ctx, r, price)
		},
		hint: "Цена должна быть целым неотрицательным числом, например 1500.",
	}
}

func priceInput(r *request, in Input, labels []string) (int, error) {
	label, ok, err := chosen(r, in, labels)
	if err != nil {
		return 0, err
	}
	if ok {
		for i, l := range labels {
			if l == label {
				return order.PricePresets[i], nil
			}
		}
	}
	raw, err := text(in, "price")
	if err != nil {
		return 0, err
	}
	return kernel.ParseAmount(raw)
}

func deadlineLabels() []string {
	labels := make([]string, len(order.DeadlinePresets))
	for i, d := range order.DeadlinePresets {
		labels[i] = ru.DaysText(d)
	}
	return labels
}

// acceptOfferDeadline stores a preset, a number of days or a calendar date.
func acceptOfferDeadline(_ context.Context, r *request, in Input) (string, error) {
	labels := deadlineLabels()
	label, ok, err := chosen(r, in, labels)
	if err != nil {
		return "", err
	}
	if ok {
		for i, l := range labels {
			if l == label {
				r.set(keyOfferDeadline, order.DeadlinePresets[i])
				return stepOfferComment, nil
			}
		}
	}

	raw, err := text(in, "deadline")
	if err != nil {
		return "", err
	}
	if days, dayErr := kernel.ParseAmount(raw); dayErr == nil {
		if days == 0 {
			return "", errs.NewValueIsOutOfRangeError("deadline", days, 1, "unbounded")
		}
		r.set(keyOfferDeadline, strconv.Itoa(days))
		return stepOfferComment, nil
	}

	date, err := kernel.NormalizeDate(raw)
	if err != nil {
		return "", err
	}
	r.set(keyOfferDeadline, date)
	return stepOfferComment, nil
}
