package order

// OtherOption is the catalogue entry that asks for a free-text follow-up.
const OtherOption = "Другое"

// NoComment is stored when the customer skips the comments step.
const NoComment = "Нет"

// Subjects are the preset subjects offered during intake.
var Subjects = []string{
	"Математический анализ",
	"Алгебра и геометрия",
	"Программирование",
	"История России",
	"Философия",
	"Английский язык",
	"Экономическая теория",
	"Русский язык и культура речи",
}

// WorkTypes are the preset kinds of academic work.
var WorkTypes = []string{
	"Контрольная",
	"Расчётно-графическая",
	"Курсовая",
	"Тест",
	"Отчёт",
	"Диплом",
}

// CustomerCancelReasons are offered to a customer withdrawing an order.
var CustomerCancelReasons = []string{
	"Решил(а) сделать сам(а)",
	"Нашёл(ла) исполнителя вне сервиса",
	"Слишком дорого",
}

// ExecutorCancelReasons are offered to an executor dropping paid work.
var ExecutorCancelReasons = []string{
	"Не успею до дедлайна",
	"Передумал",
	"Сложная тема",
}

// PricePresets are the quick-pick prices for offers, in roubles.
var PricePresets = []int{500, 1000, 1500, 2000, 2500, 3000, 4000, 5000}

// DeadlinePresets are the quick-pick offer deadlines; numeric values are days.
var DeadlinePresets = []string{"1", "3", "До дедлайна"}
