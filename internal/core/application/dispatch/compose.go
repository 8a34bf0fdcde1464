package dispatch

import (
	"fmt"
	"html"
	"strings"

	"studydesk/internal/core/domain/model/chat"
	"studydesk/internal/core/domain/model/kernel"
	"studydesk/internal/core/domain/model/order"
	"studydesk/internal/pkg/ru"
)

// Compose renders one notice for one recipient. The order is read in the
// state the transition left it, which for removed orders is their last state.
func Compose(o *order.Order, n order.Notice, to kernel.ActorID) chat.Message {
	id := o.ID()
	msg := chat.Message{To: to}

	switch n.Kind {
	case order.NoticeOrderSubmitted:
		msg.Text = "🆕 <b>Новая заявка</b>\n\n" + o.Summary()
		msg.Attachments = materials(o)
		msg.Buttons = poolButtons(id)

	case order.NoticeOrderBroadcast:
		msg.Text = fmt.Sprintf("📢 Новая заявка №%d: %s", id, o.Details().ShortSummary())

	case order.NoticeExecutorAssigned:
		msg.Text = "📬 <b>Вам предложен заказ</b>\n\n" + o.Summary()
		msg.Attachments = materials(o)
		msg.Buttons = [][]chat.Button{chat.Row(
			chat.NewButton("✅ Готов взяться", chat.ActionAcceptAssignment, id, ""),
			chat.NewButton("❌ Отказаться", chat.ActionDeclineAssignment, id, ""),
		)}

	case order.NoticeExecutorReleased:
		msg.Text = fmt.Sprintf("ℹ️ Заказ №%d больше не актуален: администратор взял его в работу.", id)

	case order.NoticeAssignmentDeclined:
		msg.Text = fmt.Sprintf("❌ Исполнитель (ID: %s) отказался от заказа №%d. Заявка вернулась в пул.", n.Executor, id)
		msg.Buttons = poolButtons(id)

	case order.NoticeOfferSubmitted, order.NoticeOfferPriceChanged:
		msg.Text, msg.Buttons = offerCard(o, n.Kind == order.NoticeOfferPriceChanged)

	case order.NoticeOfferApproved:
		if n.To == order.AudienceCustomer {
			msg.Text = fmt.Sprintf("✅ Заявка №%d принята в работу.\n%s", id, priceLine(o))
			msg.Buttons = payButtons(id)
			break
		}
		msg.Text = fmt.Sprintf(
			"✅ Администратор утвердил ваши условия по заказу №%d.\nПредмет: %s\nОжидаем оплату от клиента.",
			id, html.EscapeString(o.Details().Subject),
		)

	case order.NoticeOfferRejected:
		msg.Text = fmt.Sprintf("❌ Администратор отклонил ваши условия по заказу №%d.", id)

	case order.NoticeSelfTaken:
		msg.Text = fmt.Sprintf("✅ Вашу заявку №%d выполнит администратор.\n%s", id, priceLine(o))
		msg.Buttons = payButtons(id)

	case order.NoticePaymentSubmitted:
		msg.Text = fmt.Sprintf("🧾 Клиент %s отправил подтверждение оплаты по заказу №%d.\n%s",
			html.EscapeString(o.Customer().Mention()), id, priceLine(o))
		if proof := o.PaymentProof(); !proof.IsZero() {
			msg.Attachments = []kernel.FileRef{proof}
		}
		msg.Buttons = [][]chat.Button{chat.Row(
			chat.NewButton("✅ Подтвердить оплату", chat.ActionAcceptPayment, id, ""),
			chat.NewButton("❌ Отклонить", chat.ActionRejectPayment, id, ""),
		)}

	case order.NoticePaymentAccepted:
		deadline := html.EscapeString(ru.DaysText(offerDeadline(o)))
		if n.To == order.AudienceCustomer {
			msg.Text = fmt.Sprintf("✅ Оплата по заказу №%d подтверждена. Работа началась, срок: %s.", id, deadline)
			break
		}
		msg.Text = fmt.Sprintf("💼 Оплата по заказу №%d получена. Можно приступать, срок: %s.", id, deadline)
		msg.Attachments = materials(o)
		msg.Buttons = workButtons(id)

	case order.NoticePaymentRejected:
		msg.Text = fmt.Sprintf("❌ Оплата по заказу №%d не подтверждена. Попробуйте оплатить ещё раз.", id)
		msg.Buttons = payButtons(id)

	case order.NoticePaymentExpired:
		msg.Text = fmt.Sprintf("⌛ Время на оплату заказа №%d истекло. Нажмите «Оплатить», чтобы получить новую ссылку.", id)
		msg.Buttons = payButtons(id)

	case order.NoticeWorkSubmitted:
		msg.Text = fmt.Sprintf("📤 Исполнитель сдал работу по заказу №%d.", id)
		msg.Attachments = submitted(o)
		msg.Buttons = [][]chat.Button{chat.Row(
			chat.NewButton("✅ Утвердить работу", chat.ActionApproveWork, id, ""),
		)}

	case order.NoticeWorkApproved:
		msg.Text = fmt.Sprintf("📦 Работа по заказу №%d готова. Проверьте её и примите или отправьте на доработку.", id)
		msg.Attachments = submitted(o)
		msg.Buttons = [][]chat.Button{chat.Row(
			chat.NewButton("✅ Принять работу", chat.ActionAcceptWork, id, ""),
			chat.NewButton("🔁 На доработку", chat.ActionRequestRevision, id, ""),
		)}

	case order.NoticeWorkAccepted:
		if n.To == order.AudienceAdmin {
			msg.Text = fmt.Sprintf("🎉 Заказ №%d выполнен, клиент принял работу.", id)
			break
		}
		msg.Text = fmt.Sprintf("🎉 Клиент принял работу по заказу №%d. Спасибо!", id)

	case order.NoticeRevisionRequested:
		msg.Text = fmt.Sprintf("🔁 Заказ №%d отправлен на доработку.\n<b>Комментарий клиента:</b> %s",
			id, html.EscapeString(o.RevisionComment()))
		if n.To == order.AudienceExecutor {
			msg.Buttons = workButtons(id)
		}

	case order.NoticeCancelRequested:
		msg.Text = fmt.Sprintf("⚠️ Клиент просит отменить заказ №%d (%s).\n<b>Причина:</b> %s",
			id, o.Status().Label(), cancelText(o.Cancellation()))
		msg.Buttons = [][]chat.Button{chat.Row(
			chat.NewButton("✅ Подтвердить отмену", chat.ActionAcceptCancel, id, ""),
			chat.NewButton("↩️ Отклонить", chat.ActionDeclineCancel, id, ""),
		)}

	case order.NoticeCancelledBeforeAssignment:
		msg.Text = fmt.Sprintf("🗑 Клиент отменил заявку №%d до назначения исполнителя.\n<b>Причина:</b> %s",
			id, cancelText(o.Cancellation()))

	case order.NoticeCancelAccepted:
		if n.To == order.AudienceExecutor {
			msg.Text = fmt.Sprintf("🗑 Заказ №%d отменён клиентом.", id)
			break
		}
		msg.Text = fmt.Sprintf("🗑 Заказ №%d отменён.", id)

	case order.NoticeCancelDeclined:
		msg.Text = fmt.Sprintf("↩️ Администратор отклонил отмену заказа №%d. Текущий статус: %s.", id, o.Status().Label())

	case order.NoticeExecutorWithdrew:
		msg.Text = fmt.Sprintf("🚪 Исполнитель (ID: %s) отказался от заказа №%d.\n<b>Причина:</b> %s\nЗаявка вернулась в пул.",
			n.Executor, id, cancelText(o.ExecutorCancellation()))
		msg.Buttons = poolButtons(id)

	case order.NoticeOrderDeleted:
		msg.Text = fmt.Sprintf("🗑 Заявка №%d удалена администратором.", id)

	default:
		msg.Text = fmt.Sprintf("ℹ️ Заказ №%d: %s", id, o.Status().Label())
	}

	return msg
}

// offerCard is the administrator's view of a pending offer.
func offerCard(o *order.Order, changed bool) (string, [][]chat.Button) {
	id := o.ID()
	offer := o.Offer()
	if offer == nil {
		return fmt.Sprintf("ℹ️ По заказу №%d нет активного предложения.", id), nil
	}

	var b strings.Builder
	if changed {
		fmt.Fprintf(&b, "✏️ <b>Цена по заказу №%d изменена</b>\n", id)
	} else {
		fmt.Fprintf(&b, "💼 <b>Предложение по заказу №%d</b>\n", id)
	}
	fmt.Fprintf(&b, "<b>Исполнитель:</b> %s (%s, ID: %s)\n",
		html.EscapeString(offer.ExecutorFullName), html.EscapeString(mention(offer.ExecutorUsername)), offer.ExecutorID)
	fmt.Fprintf(&b, "<b>Цена:</b> %d ₽\n", offer.Price)
	fmt.Fprintf(&b, "<b>Срок:</b> %s", html.EscapeString(ru.DaysText(offer.Deadline)))
	if offer.Comment != "" {
		fmt.Fprintf(&b, "\n<b>Комментарий:</b> %s", html.EscapeString(offer.Comment))
	}

	return b.String(), [][]chat.Button{
		chat.Row(chat.NewButton(fmt.Sprintf("✅ Утвердить и отправить (%d ₽)", offer.Price), chat.ActionApproveOffer, id, "")),
		chat.Row(chat.NewButton("✏️ Изменить цену", chat.ActionChangePrice, id, "")),
		chat.Row(chat.NewButton("❌ Отклонить предложение", chat.ActionRejectOffer, id, "")),
	}
}

func poolButtons(id int64) [][]chat.Button {
	return [][]chat.Button{
		chat.Row(chat.NewButton("👤 Выбрать исполнителя", chat.ActionAssignPick, id, "")),
		chat.Row(chat.NewButton("❇️ Взять заказ", chat.ActionSelfTake, id, "")),
		chat.Row(chat.NewButton("📊 Сохранить в таблицу", chat.ActionExportOrder, id, "")),
		chat.Row(chat.NewButton("❌ Отказаться от заявки", chat.ActionDeleteOrder, id, "")),
	}
}

func payButtons(id int64) [][]chat.Button {
	return [][]chat.Button{
		chat.Row(chat.NewButton("💳 Оплатить", chat.ActionPay, id, "")),
		chat.Row(chat.NewButton("❌ Отказаться", chat.ActionCancelOrder, id, "")),
	}
}

func workButtons(id int64) [][]chat.Button {
	return [][]chat.Button{
		chat.Row(chat.NewButton("📤 Сдать работу", chat.ActionSubmitWork, id, "")),
		chat.Row(chat.NewButton("🚪 Отказаться от заказа", chat.ActionWithdraw, id, "")),
	}
}

func priceLine(o *order.Order) string {
	price, ok := o.FinalPrice()
	if !ok {
		return ""
	}
	return fmt.Sprintf("<b>Стоимость:</b> %d ₽, <b>срок:</b> %s", price, html.EscapeString(ru.DaysText(offerDeadline(o))))
}

func offerDeadline(o *order.Order) string {
	if offer := o.Offer(); offer != nil {
		return offer.Deadline
	}
	return o.Details().Deadline
}

// materials lists the files attached during intake.
func materials(o *order.Order) []kernel.FileRef {
	d := o.Details()
	var files []kernel.FileRef
	for _, f := range []kernel.FileRef{d.Guidelines, d.TaskFile, d.Example} {
		if !f.IsZero() {
			files = append(files, f)
		}
	}
	return files
}

func submitted(o *order.Order) []kernel.FileRef {
	if s := o.Submission(); s != nil && !s.File.IsZero() {
		return []kernel.FileRef{s.File}
	}
	return nil
}

func cancelText(c *order.Cancellation) string {
	if c == nil {
		return "не указана"
	}
	return html.EscapeString(c.Text())
}

func mention(username string) string {
	return kernel.Actor{Username: username}.Mention()
}
