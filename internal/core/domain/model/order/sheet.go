package order

import "strconv"

// SheetHeaders is the column order of the exported spreadsheet. The first
// eight columns keep the layout operators already use; the rest were appended.
var SheetHeaders = []string{
	"Группа", "Университет", "Тип работы", "Методичка", "Задание", "Пример работы", "Дата сдачи", "Комментарий",
	"Номер заявки", "Предмет", "Статус", "Создана",
}

// SheetRow renders the order as one spreadsheet row in SheetHeaders order.
func (o *Order) SheetRow() []string {
	d := o.details
	return []string{
		d.Group,
		d.University,
		d.WorkType,
		yesNo(d.HasGuidelines(), "Да", "Нет"),
		yesNo(d.HasTask(), "Есть", "Нет"),
		yesNo(d.HasExample(), "Есть", "Нет"),
		d.Deadline,
		d.Comments,
		strconv.FormatInt(o.id, 10),
		d.Subject,
		o.status.String(),
		o.createdAt.Format("02.01.2006 15:04"),
	}
}

func yesNo(ok bool, yes, no string) string {
	if ok {
		return yes
	}
	return no
}
