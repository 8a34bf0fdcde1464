package order

import (
	"fmt"
	"html"
	"strings"

	"studydesk/internal/pkg/ru"
)

// Summary renders every descriptive field for chat display (HTML markup).
// Optional artifacts are shown with ✅ / ❌ presence markers.
func (d Details) Summary() string {
	var b strings.Builder

	line := func(label, value string) {
		if strings.TrimSpace(value) == "" {
			value = "—"
		}
		fmt.Fprintf(&b, "<b>%s:</b> %s\n", label, html.EscapeString(value))
	}

	line("Группа", d.Group)
	line("ВУЗ", d.University)
	line("Преподаватель", d.Teacher)
	line("Номер зачётки", d.Gradebook)
	line("Предмет", d.Subject)
	line("Тип работы", d.WorkType)
	fmt.Fprintf(&b, "<b>Методичка:</b> %s\n", mark(d.HasGuidelines()))

	switch {
	case !d.TaskFile.IsZero():
		fmt.Fprintf(&b, "<b>Задание:</b> %s файл\n", mark(true))
	case strings.TrimSpace(d.TaskText) != "":
		fmt.Fprintf(&b, "<b>Задание:</b> %s %s\n", mark(true), html.EscapeString(d.TaskText))
	default:
		fmt.Fprintf(&b, "<b>Задание:</b> %s\n", mark(false))
	}

	fmt.Fprintf(&b, "<b>Пример работы:</b> %s\n", mark(d.HasExample()))
	line("Срок сдачи", d.Deadline)
	line("Комментарий", d.Comments)

	return strings.TrimRight(b.String(), "\n")
}

// ShortSummary renders work type, subject and deadline for bulk listings,
// e.g. "Курсовая · Философия · до 12.06.2026".
func (d Details) ShortSummary() string {
	workType := d.WorkType
	if workType == "" {
		workType = "Заявка"
	}

	parts := []string{workType}
	if d.Subject != "" {
		parts = append(parts, d.Subject)
	}
	if d.Deadline != "" {
		parts = append(parts, "до "+d.Deadline)
	}
	return html.EscapeString(strings.Join(parts, " · "))
}

// Summary renders the order header, status and details.
func (o *Order) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "<b>Заявка №%d</b>\n", o.id)
	fmt.Fprintf(&b, "<b>Статус:</b> %s\n", o.status.Label())
	fmt.Fprintf(&b, "<b>Создана:</b> %s\n", o.createdAt.Format("02.01.2006 15:04"))
	b.WriteString(o.details.Summary())

	if o.offer != nil {
		fmt.Fprintf(&b, "\n\n<b>Предложение:</b> %d ₽, срок %s", o.offer.Price, html.EscapeString(ru.DaysText(o.offer.Deadline)))
		if o.offer.Comment != "" {
			fmt.Fprintf(&b, "\n<b>Комментарий исполнителя:</b> %s", html.EscapeString(o.offer.Comment))
		}
	}
	if price, ok := o.FinalPrice(); ok {
		fmt.Fprintf(&b, "\n<b>Итоговая цена:</b> %d ₽", price)
	}
	return b.String()
}

// ShortSummary renders a one line listing entry with the status emoji.
func (o *Order) ShortSummary() string {
	return fmt.Sprintf("№%d %s · %s", o.id, o.details.ShortSummary(), o.status.Label())
}

func mark(present bool) string {
	if present {
		return "✅"
	}
	return "❌"
}
