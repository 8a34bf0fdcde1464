package gateways

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"strings"

	"studydesk/internal/core/application/usecases/commands"
	"studydesk/internal/core/application/usecases/queries"
	"studydesk/internal/core/domain/model/chat"
	"studydesk/internal/core/domain/model/kernel"
	"studydesk/internal/core/domain/model/order"
	"studydesk/internal/pkg/errs"
)

// listButtonLimit caps the number of "view" buttons under a listing.
const listButtonLimit = 20

// Menu commands and their keyboard labels.
var menu = map[string]string{
	"/start":            "/start",
	"/help":             "/start",
	"/new":              "/new",
	"📝 Новая заявка":    "/new",
	"/orders":           "/orders",
	"📋 Мои заявки":      "/orders",
	"📋 Все заявки":      "/orders",
	"/executors":        "/executors",
	"👥 Исполнители":     "/executors",
	"/add_executor":     "/add_executor",
	"/cancel":           "/cancel",
}

// Router is the single entry point for inbound chat events.
//
// Example:
//
//	router, err := gateways.NewRouter(env)
//	err = router.Handle(ctx, chat.Text{Origin: origin, Body: "/new"})
type Router struct {
	env    *Env
	engine *engine
	flows  map[string]*flow
}

func NewRouter(env Env) (*Router, error) {
	if err := env.validate(); err != nil {
		return nil, err
	}
	if env.Logger == nil {
		env.Logger = slog.Default()
	}
	env.Logger = env.Logger.With("component", "Router")
	if len(env.Uploads.Extensions) == 0 {
		env.Uploads = kernel.DefaultUploadPolicy()
	}

	flows := make(map[string]*flow)
	for _, f := range []*flow{
		newIntakeFlow(),
		newOfferFlow(),
		newSelfTakeFlow(),
		newChangePriceFlow(),
		newAssignFlow(),
		newAddExecutorFlow(),
		newCancellationFlow(),
		newSubmitWorkFlow(),
		newRevisionFlow(),
		newPaymentProofFlow(),
	} {
		if err := f.check(); err != nil {
			return nil, err
		}
		flows[f.name] = f
	}

	rt := &Router{env: &env, flows: flows}
	rt.engine = &engine{env: rt.env, flows: flows}
	return rt, nil
}

// Handle processes one event to completion. Refusals and invalid input are
// answered in the chat and are not returned; the returned error means the
// event could not be processed at all.
func (rt *Router) Handle(ctx context.Context, ev chat.Event) error {
	origin := ev.From()

	actor, roster, err := rt.env.Directory.Identify(ctx, origin)
	if err != nil {
		rt.env.Logger.WarnContext(ctx, "executor registry unavailable, using configured roles",
			"actor_id", origin.ActorID.String(), "error", err)
	}
	if err = actor.ID.Validate(); err != nil {
		return err
	}

	r := &request{env: rt.env, actor: actor, roster: roster}
	return rt.report(ctx, r, rt.route(ctx, r, ev))
}

func (rt *Router) route(ctx context.Context, r *request, ev chat.Event) error {
	switch e := ev.(type) {
	case chat.Text:
		return rt.onText(ctx, r, e)
	case chat.FileUpload:
		return rt.onFile(ctx, r, e)
	case chat.ButtonPress:
		return rt.onButton(ctx, r, e.Payload)
	default:
		return fmt.Errorf("unsupported event %T", ev)
	}
}

func (rt *Router) onText(ctx context.Context, r *request, e chat.Text) error {
	body := strings.TrimSpace(e.Body)
	if command, ok := menu[body]; ok {
		return rt.onMenu(ctx, r, command)
	}

	f, ok, err := rt.engine.resume(ctx, r)
	if err != nil {
		return err
	}
	if !ok {
		r.reply(ctx, "Не понимаю сообщение. Отправьте /start, чтобы увидеть список команд.")
		return nil
	}
	return rt.engine.advance(ctx, r, f, Input{Text: e.Body})
}

func (rt *Router) onFile(ctx context.Context, r *request, e chat.FileUpload) error {
	f, ok, err := rt.engine.resume(ctx, r)
	if err != nil {
		return err
	}
	if !ok {
		r.reply(ctx, "Файл получен, но сейчас он не требуется.")
		return nil
	}
	return rt.engine.advance(ctx, r, f, Input{
		Text:     e.Caption,
		File:     e.File,
		FileName: e.Name,
		FileSize: e.Size,
	})
}

func (rt *Router) onMenu(ctx context.Context, r *request, command string) error {
	switch command {
	case "/start":
		r.reply(ctx, greeting(r.actor))
		return nil
	case "/new":
		return rt.engine.start(ctx, r, rt.flows[flowIntake], 0, nil)
	case "/orders":
		return rt.listOrders(ctx, r)
	case "/executors":
		return rt.listExecutors(ctx, r)
	case "/add_executor":
		return rt.engine.start(ctx, r, rt.flows[flowAddExecutor], 0, nil)
	case "/cancel":
		return rt.engine.abandon(ctx, r, true)
	}
	return nil
}

//nolint:gocyclo,cyclop // one case per button action
func (rt *Router) onButton(ctx context.Context, r *request, p chat.Payload) error {
	id := p.OrderID

	switch p.Action {
	case chat.ActionAbort:
		return rt.engine.abandon(ctx, r, true)
	case chat.ActionBack, chat.ActionSkip, chat.ActionChoose, chat.ActionConfirmDraft:
		return rt.control(ctx, r, p)

	case chat.ActionAssignPick:
		return rt.pickExecutor(ctx, r, id)
	case chat.ActionAssignTo:
		executorID, err := kernel.ParseActorID(p.Value)
		if err != nil {
			return err
		}
		return assign(ctx, r, id, executorID)
	case chat.ActionAssignManual:
		return rt.engine.start(ctx, r, rt.flows[flowAssign], id, nil)
	case chat.ActionSelfTake:
		return rt.engine.start(ctx, r, rt.flows[flowSelfTake], id, nil)
	case chat.ActionChangePrice:
		return rt.engine.start(ctx, r, rt.flows[flowChangePrice], id, nil)
	case chat.ActionApproveOffer, chat.ActionRejectOffer:
		return rt.resolveOffer(ctx, r, id, p.Action == chat.ActionApproveOffer)
	case chat.ActionAcceptPayment, chat.ActionRejectPayment:
		return rt.reviewPayment(ctx, r, id, p.Action == chat.ActionAcceptPayment)
	case chat.ActionApproveWork:
		return rt.approveWork(ctx, r, id)
	case chat.ActionAcceptCancel, chat.ActionDeclineCancel:
		return rt.resolveCancellation(ctx, r, id, p.Action == chat.ActionAcceptCancel)
	case chat.ActionDeleteOrder:
		return rt.deleteOrder(ctx, r, id)
	case chat.ActionExportOrder:
		return rt.exportOrder(ctx, r, id)
	case chat.ActionViewOrder:
		return rt.viewOrder(ctx, r, id)
	case chat.ActionAddExecutor:
		return rt.engine.start(ctx, r, rt.flows[flowAddExecutor], 0, nil)
	case chat.ActionRemoveExec:
		return rt.removeExecutor(ctx, r, p.Value)

	case chat.ActionAcceptAssignment:
		return rt.acceptAssignment(ctx, r, id)
	case chat.ActionDeclineAssignment:
		return rt.declineAssignment(ctx, r, id)
	case chat.ActionSubmitWork:
		return rt.engine.start(ctx, r, rt.flows[flowSubmitWork], id, nil)
	case chat.ActionWithdraw:
		return rt.engine.start(ctx, r, rt.flows[flowCancellation], id, cancellationValues(partyExecutor))

	case chat.ActionPay:
		return rt.pay(ctx, r, id)
	case chat.ActionPaid:
		return rt.engine.start(ctx, r, rt.flows[flowPayment], id, nil)
	case chat.ActionAcceptWork:
		return rt.acceptWork(ctx, r, id)
	case chat.ActionRequestRevision:
		return rt.engine.start(ctx, r, rt.flows[flowRevision], id, nil)
	case chat.ActionCancelOrder:
		return rt.engine.start(ctx, r, rt.flows[flowCancellation], id, cancellationValues(partyCustomer))
	}

	rt.env.Logger.DebugContext(ctx, "unknown button", "actor_id", r.actor.ID.String(), "action", string(p.Action))
	r.reply(ctx, "⌛ Эта кнопка больше не работает.")
	return nil
}

// control handles the navigation buttons of the active session.
func (rt *Router) control(ctx context.Context, r *request, p chat.Payload) error {
	f, ok, err := rt.engine.resume(ctx, r)
	if err != nil {
		return err
	}
	if !ok {
		r.reply(ctx, "⌛ Эта кнопка устарела. Начните действие заново.")
		return nil
	}

	stale := p.OrderID != r.session.OrderID
	switch p.Action {
	case chat.ActionBack, chat.ActionSkip:
		stale = stale || p.Value != r.session.Step
	}
	if stale {
		r.reply(ctx, "⌛ Эта кнопка устарела.")
		return rt.engine.prompt(ctx, r, f)
	}

	replaced, err := rt.engine.orderReplaced(ctx, r)
	if err != nil {
		return err
	}
	if replaced {
		rt.env.Logger.InfoContext(ctx, "session order replaced",
			"actor_id", r.actor.ID.String(), "flow", f.name, "order_id", r.session.OrderID)
		r.reply(ctx, fmt.Sprintf("⌛ Эта кнопка устарела: заказ №%d удалён или изменён.", r.session.OrderID))
		return rt.env.Sessions.Delete(ctx, r.actor.ID)
	}

	switch p.Action {
	case chat.ActionBack:
		return rt.engine.back(ctx, r, f)
	case chat.ActionSkip:
		return rt.engine.advance(ctx, r, f, Input{Skipped: true})
	case chat.ActionConfirmDraft:
		return rt.engine.advance(ctx, r, f, Input{Confirm: true})
	default:
		return rt.engine.advance(ctx, r, f, Input{Chosen: true, Choice: p.Value})
	}
}

func (rt *Router) resolveOffer(ctx context.Context, r *request, id int64, approve bool) error {
	cmd, err := commands.NewResolveOfferCommand(r.actor, id, approve)
	if err != nil {
		return err
	}
	if err = rt.env.Commands.ResolveOffer.Handle(ctx, cmd); err != nil {
		return err
	}
	if approve {
		r.reply(ctx, fmt.Sprintf("✅ Предложение по заказу №%d утверждено, клиенту отправлен запрос на оплату.", id))
	} else {
		r.reply(ctx, fmt.Sprintf("❌ Предложение по заказу №%d отклонено, заказ возвращён в пул.", id))
	}
	return nil
}

func (rt *Router) reviewPayment(ctx context.Context, r *request, id int64, accept bool) error {
	cmd, err := commands.NewReviewPaymentCommand(r.actor, id, accept)
	if err != nil {
		return err
	}
	if err = rt.env.Commands.ReviewPayment.Handle(ctx, cmd); err != nil {
		return err
	}
	if accept {
		r.reply(ctx, fmt.Sprintf("✅ Оплата заказа №%d подтверждена, исполнитель приступает к работе.", id))
	} else {
		r.reply(ctx, fmt.Sprintf("❌ Оплата заказа №%d отклонена, клиент уведомлён.", id))
	}
	return nil
}

func (rt *Router) approveWork(ctx context.Context, r *request, id int64) error {
	cmd, err := commands.NewApproveWorkCommand(r.actor, id)
	if err != nil {
		return err
	}
	if err = rt.env.Commands.ApproveWork.Handle(ctx, cmd); err != nil {
		return err
	}
	r.reply(ctx, fmt.Sprintf("✅ Работа по заказу №%d отправлена клиенту.", id))
	return nil
}

func (rt *Router) resolveCancellation(ctx context.Context, r *request, id int64, accept bool) error {
	cmd, err := commands.NewResolveCancellationCommand(r.actor, id, accept)
	if err != nil {
		return err
	}
	if err = rt.env.Commands.ResolveCancellation.Handle(ctx, cmd); err != nil {
		return err
	}
	if accept {
		r.reply(ctx, fmt.Sprintf("🗑 Заказ №%d отменён и удалён.", id))
	} else {
		r.reply(ctx, fmt.Sprintf("↩️ Отмена заказа №%d отклонена, работа продолжается.", id))
	}
	return nil
}

func (rt *Router) deleteOrder(ctx context.Context, r *request, id int64) error {
	cmd, err := commands.NewDeleteOrderCommand(r.actor, id)
	if err != nil {
		return err
	}
	if err = rt.env.Commands.DeleteOrder.Handle(ctx, cmd); err != nil {
		return err
	}
	r.reply(ctx, fmt.Sprintf("🗑 Заявка №%d удалена.", id))
	return nil
}

// acceptAssignment confirms the assignment and opens the offer flow. Pressing
// the button again after an abandoned offer reopens the flow.
func (rt *Router) acceptAssignment(ctx context.Context, r *request, id int64) error {
	cmd, err := commands.NewAcceptAssignmentCommand(r.actor, id)
	if err != nil {
		return err
	}

	err = rt.env.Commands.AcceptAssignment.Handle(ctx, cmd)
	if errors.Is(err, order.ErrTransitionNotAllowed) && rt.awaitsOffer(ctx, r, id) {
		err = nil
	}
	if err != nil {
		return err
	}

	r.reply(ctx, fmt.Sprintf("✅ Вы приняли заказ №%d. Предложите свои условия.", id))
	return rt.engine.start(ctx, r, rt.flows[flowOffer], id, nil)
}

func (rt *Router) awaitsOffer(ctx context.Context, r *request, id int64) bool {
	query, err := queries.NewGetOrderQuery(r.actor, id)
	if err != nil {
		return false
	}
	view, err := rt.env.Queries.GetOrder.Handle(ctx, query)
	return err == nil && view.Status == order.ExecutorConfirmed && view.ExecutorID == r.actor.ID
}

func (rt *Router) declineAssignment(ctx context.Context, r *request, id int64) error {
	cmd, err := commands.NewDeclineAssignmentCommand(r.actor, id)
	if err != nil {
		return err
	}
	if err = rt.env.Commands.DeclineAssignment.Handle(ctx, cmd); err != nil {
		return err
	}
	r.reply(ctx, fmt.Sprintf("Вы отказались от заказа №%d.", id))
	return nil
}

// pay opens a payment session and hands the customer the link.
func (rt *Router) pay(ctx context.Context, r *request, id int64) error {
	cmd, err := commands.NewStartPaymentCommand(r.actor, id, rt.env.now())
	if err != nil {
		return err
	}
	session, price, err := rt.env.Commands.StartPayment.Handle(ctx, cmd)
	if err != nil {
		return err
	}

	minutes := int(session.ExpiresAt.Sub(session.StartedAt).Minutes())
	r.reply(ctx,
		fmt.Sprintf("💳 <b>Оплата заказа №%d</b>\nСумма: %d ₽\nСсылка для оплаты по СБП: %s\n\n"+
			"Ссылка действительна %d мин. После оплаты нажмите «Я оплатил» и пришлите скриншот.",
			id, price, html.EscapeString(session.URL), minutes),
		chat.Row(chat.NewButton("✅ Я оплатил", chat.ActionPaid, id, "")),
	)
	return nil
}

func (rt *Router) acceptWork(ctx context.Context, r *request, id int64) error {
	cmd, err := commands.NewAcceptWorkCommand(r.actor, id)
	if err != nil {
		return err
	}
	if err = rt.env.Commands.AcceptWork.Handle(ctx, cmd); err != nil {
		return err
	}
	r.reply(ctx, fmt.Sprintf("🎉 Спасибо! Заказ №%d завершён.", id))
	return nil
}

func (rt *Router) viewOrder(ctx context.Context, r *request, id int64) error {
	query, err := queries.NewGetOrderQuery(r.actor, id)
	if err != nil {
		return err
	}
	view, err := rt.env.Queries.GetOrder.Handle(ctx, query)
	if err != nil {
		return err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📄 <b>Заказ №%d</b>\n<b>Статус:</b> %s\n", view.ID, html.EscapeString(view.StatusLabel))
	if r.actor.IsAdmin() {
		fmt.Fprintf(&b, "<b>Клиент:</b> %s (ID: %s)\n", html.EscapeString(view.Customer), view.CustomerID)
	}
	if view.HasPrice {
		fmt.Fprintf(&b, "<b>Стоимость:</b> %d ₽\n", view.Price)
	}
	b.WriteString("\n")
	b.WriteString(view.Summary)

	var rows [][]chat.Button
	if r.actor.IsAdmin() && view.Status == order.UnderReview {
		rows = append(rows,
			chat.Row(chat.NewButton("👤 Выбрать исполнителя", chat.ActionAssignPick, id, "")),
			chat.Row(chat.NewButton("❇️ Взять заказ", chat.ActionSelfTake, id, "")),
		)
	}
	if r.actor.IsAdmin() {
		rows = append(rows,
			chat.Row(chat.NewButton("📊 Сохранить в таблицу", chat.ActionExportOrder, id, "")),
			chat.Row(chat.NewButton("🗑 Удалить", chat.ActionDeleteOrder, id, "")),
		)
	}
	if view.CustomerID == r.actor.ID {
		rows = append(rows, ownerButtons(view)...)
	}
	r.reply(ctx, b.String(), rows...)
	return nil
}

// ownerButtons are the actions a customer can take from their own order card.
func ownerButtons(view queries.OrderView) [][]chat.Button {
	var rows [][]chat.Button
	if view.Status == order.AwaitingPayment {
		rows = append(rows, chat.Row(chat.NewButton("💳 Оплатить", chat.ActionPay, view.ID, "")))
	}
	if view.Status.Can(order.TriggerCancel) {
		rows = append(rows, chat.Row(chat.NewButton("❌ Отказаться", chat.ActionCancelOrder, view.ID, "")))
	}
	return rows
}

func (rt *Router) listOrders(ctx context.Context, r *request) error {
	var (
		views []queries.OrderView
		title string
	)

	if r.actor.IsAdmin() {
		query, err := queries.NewListOrdersQuery(r.actor)
		if err != nil {
			return err
		}
		if views, err = rt.env.Queries.ListOrders.Handle(ctx, query); err != nil {
			return err
		}
		title = "📋 <b>Все заявки</b>"
	} else {
		query, err := queries.NewListCustomerOrdersQuery(r.actor.ID)
		if err != nil {
			return err
		}
		if views, err = rt.env.Queries.ListCustomerOrders.Handle(ctx, query); err != nil {
			return err
		}
		title = "📋 <b>Мои заявки</b>"
	}

	if len(views) == 0 {
		r.reply(ctx, title+"\nЗаявок пока нет.")
		return nil
	}

	var b strings.Builder
	b.WriteString(title)
	var rows [][]chat.Button
	for i, v := range views {
		fmt.Fprintf(&b, "\n\n<b>№%d</b> · %s\n%s", v.ID, html.EscapeString(v.StatusLabel), v.ShortSummary)
		if i < listButtonLimit {
			rows = append(rows, chat.Row(chat.NewButton(fmt.Sprintf("Заказ №%d", v.ID), chat.ActionViewOrder, v.ID, "")))
		}
	}
	r.reply(ctx, b.String(), rows...)
	return nil
}

// report answers refusals in the chat. Only unexpected failures are returned.
func (rt *Router) report(ctx context.Context, r *request, err error) error {
	if err == nil {
		return nil
	}

	var text string
	switch {
	case errors.Is(err, order.ErrTransitionNotAllowed):
		text = "⛔ Это действие недоступно для заказа в текущем статусе."
	case errors.Is(err, order.ErrNotAuthorized):
		text = "⛔ У вас нет прав на это действие."
	case errors.Is(err, order.ErrPaymentSessionExpired):
		text = "⌛ Время на оплату истекло. Нажмите «Оплатить», чтобы получить новую ссылку."
	case errors.Is(err, order.ErrPaymentSessionMissing):
		text = "💳 Сначала нажмите «Оплатить», чтобы получить ссылку для оплаты."
	case errors.Is(err, errs.ErrObjectNotFound):
		text = "❗ Критическая ошибка: заказ не найден. Возможно, он уже удалён."
	case errors.Is(err, errs.ErrVersionIsInvalid):
		text = "🔄 Заказ только что изменился. Повторите действие."
	case errs.IsValidation(err):
		text = "⚠️ Некорректные данные, попробуйте ещё раз."
	default:
		rt.env.Logger.ErrorContext(ctx, "event not processed", "actor_id", r.actor.ID.String(), "error", err)
		r.reply(ctx, "❗ Произошла ошибка. Попробуйте позже.")
		return err
	}

	rt.env.Logger.InfoContext(ctx, "request refused", "actor_id", r.actor.ID.String(), "error", err)
	r.reply(ctx, text)
	return nil
}

func notAdmin(r *request) error {
	return fmt.Errorf("%w: %s is not an administrator", order.ErrNotAuthorized, r.actor.ID)
}

func greeting(actor kernel.Actor) string {
	switch actor.Role {
	case kernel.RoleAdmin:
		return "👋 Панель администратора.\n\n" +
			"/orders или «📋 Все заявки» — список заявок\n" +
			"/executors — исполнители\n" +
			"/add_executor — добавить исполнителя\n" +
			"/cancel — прервать текущее действие"
	case kernel.RoleExecutor:
		return "👋 Здравствуйте! Новые заказы будут приходить сюда.\n\n" +
			"/orders — мои заявки\n" +
			"/cancel — прервать текущее действие"
	default:
		return fmt.Sprintf("👋 Здравствуйте, %s! Здесь можно заказать помощь с учебной работой.\n\n"+
			"/new или «📝 Новая заявка» — оформить заявку\n"+
			"/orders или «📋 Мои заявки» — мои заявки\n"+
			"/cancel — прервать текущее действие", html.EscapeString(actor.FullName()))
	}
}
