package gateways

import (
	"context"
	"fmt"

	"studydesk/internal/core/application/usecases/commands"
	"studydesk/internal/core/domain/model/chat"
	"studydesk/internal/core/domain/model/kernel"
)

const (
	flowSubmitWork = "submit_work"
	flowRevision   = "revision"
	flowPayment    = "payment_proof"
)

const (
	stepWorkFile        = "work_file"
	stepRevisionComment = "revision_comment"
	stepProof           = "proof"
)

func newSubmitWorkFlow() *flow {
	return &flow{
		name:  flowSubmitWork,
		roles: []kernel.Role{kernel.RoleExecutor, kernel.RoleAdmin},
		order: []string{stepWorkFile},
		steps: map[string]step{
			stepWorkFile: {
				prompt: func(r *request) (string, [][]chat.Button) {
					return fmt.Sprintf("Заказ №%d. Прикрепите файл с выполненной работой:", r.session.OrderID), nil
				},
				accept: func(ctx context.Context, r *request, in Input) (string, error) {
					f, err := upload(r, in, "work")
					if err != nil {
						return "", err
					}
					cmd, err := commands.NewSubmitWorkCommand(r.actor, r.session.OrderID, f, r.env.now())
					if err != nil {
						return "", err
					}
					if err = r.env.Commands.SubmitWork.Handle(ctx, cmd); err != nil {
						return "", err
					}
					r.reply(ctx, fmt.Sprintf("✅ Работа по заказу №%d отправлена на проверку.", r.session.OrderID))
					return stepDone, nil
				},
				hint: "Пришлите файл pdf, docx, png или jpg размером до 15 МБ.",
			},
		},
	}
}

func newRevisionFlow() *flow {
	return &flow{
		name:  flowRevision,
		order: []string{stepRevisionComment},
		steps: map[string]step{
			stepRevisionComment: {
				prompt: func(r *request) (string, [][]chat.Button) {
					return fmt.Sprintf("Заказ №%d. Опишите, что нужно доработать:", r.session.OrderID), nil
				},
				accept: func(ctx context.Context, r *request, in Input) (string, error) {
					comment, err := text(in, "revision comment")
					if err != nil {
						return "", err
					}
					cmd, err := commands.NewRequestRevisionCommand(r.actor, r.session.OrderID, comment)
					if err != nil {
						return "", err
					}
					if err = r.env.Commands.RequestRevision.Handle(ctx, cmd); err != nil {
						return "", err
					}
					r.reply(ctx, fmt.Sprintf("🔁 Заказ №%d отправлен на доработку.", r.session.OrderID))
					return stepDone, nil
				},
				hint: "Комментарий обязателен.",
			},
		},
	}
}

// newPaymentProofFlow takes the screenshot or receipt of a payment.
func newPaymentProofFlow() *flow {
	return &flow{
		name:  flowPayment,
		order: []string{stepProof},
		steps: map[string]step{
			stepProof: {
				prompt: func(r *request) (string, [][]chat.Button) {
					return fmt.Sprintf("Заказ №%d. Пришлите скриншот или чек об оплате:", r.session.OrderID), nil
				},
				accept: func(ctx context.Context, r *request, in Input) (string, error) {
					f, err := upload(r, in, "payment proof")
					if err != nil {
						return "", err
					}
					cmd, err := commands.NewSubmitPaymentCommand(r.actor, r.session.OrderID, f, r.env.now())
					if err != nil {
						return "", err
					}
					if err = r.env.Commands.SubmitPayment.Handle(ctx, cmd); err != nil {
						return "", err
					}
					r.reply(ctx, fmt.Sprintf("⏳ Оплата заказа №%d отправлена на проверку.", r.session.OrderID))
					return stepDone, nil
				},
				hint: "Пришлите фото или файл pdf, png, jpg размером до 15 МБ.",
			},
		},
	}
}
