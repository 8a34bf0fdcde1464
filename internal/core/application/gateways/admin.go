package gateways

import (
	"context"
	"fmt"
	"html"
	"strings"

	"studydesk/internal/core/application/usecases/commands"
	"studydesk/internal/core/application/usecases/queries"
	"studydesk/internal/core/domain/model/chat"
	"studydesk/internal/core/domain/model/kernel"
	"studydesk/internal/pkg/errs"
)

const (
	flowAssign      = "assign"
	flowAddExecutor = "add_executor"
)

const (
	stepExecutorID   = "executor_id"
	stepExecutorName = "executor_name"
)

const keyExecutorID = "executor_id"

// newAssignFlow takes an executor id typed by the administrator.
func newAssignFlow() *flow {
	return &flow{
		name:  flowAssign,
		roles: []kernel.Role{kernel.RoleAdmin},
		order: []string{stepExecutorID},
		steps: map[string]step{
			stepExecutorID: {
				prompt: func(r *request) (string, [][]chat.Button) {
					return fmt.Sprintf("Заказ №%d. Введите Telegram ID исполнителя:", r.session.OrderID), nil
				},
				accept: func(ctx context.Context, r *request, in Input) (string, error) {
					raw, err := text(in, "executor id")
					if err != nil {
						return "", err
					}
					id, err := kernel.ParseActorID(raw)
					if err != nil {
						return "", err
					}
					if err = assign(ctx, r, r.session.OrderID, id); err != nil {
						return "", err
					}
					return stepDone, nil
				},
				hint: "ID должен быть числом и принадлежать зарегистрированному исполнителю.",
			},
		},
	}
}

// assign links a registered executor to the order.
func assign(ctx context.Context, r *request, orderID int64, executorID kernel.ActorID) error {
	if !r.roster.IsExecutor(executorID) {
		return errs.NewValueIsInvalidErrorWithCause("executor id",
			fmt.Errorf("%s is not a registered executor", executorID))
	}

	cmd, err := commands.NewAssignExecutorCommand(r.actor, orderID, executorID)
	if err != nil {
		return err
	}
	if err = r.env.Commands.AssignExecutor.Handle(ctx, cmd); err != nil {
		return err
	}

	r.reply(ctx, fmt.Sprintf("✅ Заказ №%d назначен исполнителю (ID: %s). Ждём подтверждения.", orderID, executorID))
	return nil
}

func newAddExecutorFlow() *flow {
	return &flow{
		name:  flowAddExecutor,
		roles: []kernel.Role{kernel.RoleAdmin},
		order: []string{stepExecutorID, stepExecutorName},
		back: map[string]string{
			stepExecutorName: stepExecutorID,
		},
		steps: map[string]step{
			stepExecutorID: {
				prompt: func(*request) (string, [][]chat.Button) {
					return "Введите Telegram ID нового исполнителя:", nil
				},
				accept: func(_ context.Context, r *request, in Input) (string, error) {
					raw, err := text(in, "executor id")
					if err != nil {
						return "", err
					}
					id, err := kernel.ParseActorID(raw)
					if err != nil {
						return "", err
					}
					r.set(keyExecutorID, id.String())
					return stepExecutorName, nil
				},
				hint: "ID должен состоять только из цифр.",
			},
			stepExecutorName: {
				prompt: func(*request) (string, [][]chat.Button) {
					return "Введите имя исполнителя или нажмите «Пропустить»:", nil
				},
				accept: func(ctx context.Context, r *request, in Input) (string, error) {
					name := ""
					if !in.Skipped {
						value, err := text(in, "executor name")
						if err != nil {
							return "", err
						}
						name = value
					}

					id, err := kernel.ParseActorID(r.value(keyExecutorID))
					if err != nil {
						return "", err
					}
					cmd, err := commands.NewAddExecutorCommand(r.actor, id, name)
					if err != nil {
						return "", err
					}
					if err = r.env.Commands.AddExecutor.Handle(ctx, cmd); err != nil {
						return "", err
					}
					r.reply(ctx, fmt.Sprintf("✅ Исполнитель %s добавлен.", id))
					return stepDone, nil
				},
				skippable: true,
			},
		},
	}
}

// pickExecutor offers the registered executors as assignment buttons.
func (rt *Router) pickExecutor(ctx context.Context, r *request, orderID int64) error {
	if !r.actor.IsAdmin() {
		return notAdmin(r)
	}

	names := make(map[kernel.ActorID]string)
	registry, err := rt.env.Queries.ListExecutors.Handle(ctx, queries.NewListExecutorsQuery())
	if err != nil {
		return err
	}
	for _, e := range registry {
		names[e.ID] = e.Label
	}

	var rows [][]chat.Button
	for _, id := range r.roster.Pool() {
		label, ok := names[id]
		if !ok {
			label = "ID " + id.String()
		}
		rows = append(rows, chat.Row(chat.NewButton("👤 "+label, chat.ActionAssignTo, orderID, id.String())))
	}
	rows = append(rows, chat.Row(chat.NewButton("⌨️ Ввести ID вручную", chat.ActionAssignManual, orderID, "")))

	text := fmt.Sprintf("Заказ №%d. Выберите исполнителя:", orderID)
	if len(rows) == 1 {
		text = fmt.Sprintf("Заказ №%d. Зарегистрированных исполнителей нет, введите ID вручную:", orderID)
	}
	r.reply(ctx, text, rows...)
	return nil
}

func (rt *Router) listExecutors(ctx context.Context, r *request) error {
	if !r.actor.IsAdmin() {
		return notAdmin(r)
	}

	registry, err := rt.env.Queries.ListExecutors.Handle(ctx, queries.NewListExecutorsQuery())
	if err != nil {
		return err
	}

	var b strings.Builder
	b.WriteString("👥 <b>Исполнители</b>\n")
	if len(registry) == 0 {
		b.WriteString("Список пуст.")
	}

	rows := make([][]chat.Button, 0, len(registry)+1)
	for _, e := range registry {
		fmt.Fprintf(&b, "• %s\n", html.EscapeString(e.Label))
		rows = append(rows, chat.Row(chat.NewButton("🗑 Удалить "+e.Label, chat.ActionRemoveExec, 0, e.ID.String())))
	}
	rows = append(rows, chat.Row(chat.NewButton("➕ Добавить исполнителя", chat.ActionAddExecutor, 0, "")))

	r.reply(ctx, b.String(), rows...)
	return nil
}

func (rt *Router) removeExecutor(ctx context.Context, r *request, raw string) error {
	id, err := kernel.ParseActorID(raw)
	if err != nil {
		return err
	}
	cmd, err := commands.NewRemoveExecutorCommand(r.actor, id)
	if err != nil {
		return err
	}
	if err = rt.env.Commands.RemoveExecutor.Handle(ctx, cmd); err != nil {
		return err
	}
	r.reply(ctx, fmt.Sprintf("🗑 Исполнитель %s удалён.", id))
	return nil
}

func (rt *Router) exportOrder(ctx context.Context, r *request, orderID int64) error {
	cmd, err := commands.NewExportOrderCommand(r.actor, orderID)
	if err != nil {
		return err
	}
	if err = rt.env.Commands.ExportOrder.Handle(ctx, cmd); err != nil {
		return err
	}
	r.reply(ctx, fmt.Sprintf("📊 Заказ №%d сохранён в таблицу.", orderID))
	return nil
}
