package gateways_test

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"studydesk/internal/adapters/out/jsonstore"
	"studydesk/internal/adapters/out/payments"
	"studydesk/internal/adapters/out/sessions"
	"studydesk/internal/adapters/out/sheets"
	"studydesk/internal/core/application/directory"
	"studydesk/internal/core/application/dispatch"
	"studydesk/internal/core/application/gateways"
	"studydesk/internal/core/application/usecases/commands"
	"studydesk/internal/core/application/usecases/queries"
	"studydesk/internal/core/domain/model/chat"
	"studydesk/internal/core/domain/model/kernel"
	"studydesk/internal/core/domain/model/order"
	"studydesk/internal/core/domain/model/order/ordertest"
	"studydesk/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

const (
	adminID    kernel.ActorID = 1
	executorID kernel.ActorID = 200
	customerID kernel.ActorID = 300
	strangerID kernel.ActorID = 400
)

type outbox struct {
	mu       sync.Mutex
	messages []chat.Message
}

func (o *outbox) Send(_ context.Context, msg chat.Message) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.messages = append(o.messages, msg)
	return nil
}

func (o *outbox) to(id kernel.ActorID) []chat.Message {
	o.mu.Lock()
	defer o.mu.Unlock()
	var out []chat.Message
	for _, m := range o.messages {
		if m.To == id {
			out = append(out, m)
		}
	}
	return out
}

type uowFactory func() commands.UoW

func (f uowFactory) Create() commands.UoW {
	return f()
}

type RouterTestSuite struct {
	suite.Suite
	store    *jsonstore.Store
	sessions *sessions.MemoryStore
	outbox   *outbox
	router   *gateways.Router
	now      time.Time
	export   string
}

func TestRouterTestSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}

func (s *RouterTestSuite) SetupTest() {
	logger := slog.New(slog.DiscardHandler)
	dir := s.T().TempDir()

	s.store = jsonstore.NewDirStore(dir, logger)
	s.sessions = sessions.NewMemoryStore()
	s.outbox = &outbox{}
	s.now = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	s.export = filepath.Join(dir, "export.csv")

	roles, err := directory.New(adminID, []kernel.ActorID{executorID}, s.store)
	s.Require().NoError(err)

	dispatcher := dispatch.NewDispatcher(s.outbox, roles, logger)
	uow := uowFactory(func() commands.UoW { return s.store.Create() })
	linker, err := payments.NewSBPLinker(payments.DefaultBase)
	s.Require().NoError(err)

	s.router, err = gateways.NewRouter(gateways.Env{
		Sessions:  s.sessions,
		Directory: roles,
		Replies:   dispatcher,
		Commands: gateways.Handlers{
			SaveDraft:           commands.NewSaveDraftCommandHandler(uow),
			ConfirmOrder:        commands.NewConfirmOrderCommandHandler(uow, dispatcher),
			DiscardDraft:        commands.NewDiscardDraftCommandHandler(uow, dispatcher),
			AssignExecutor:      commands.NewAssignExecutorCommandHandler(uow, dispatcher),
			SelfTake:            commands.NewSelfTakeCommandHandler(uow, dispatcher),
			AcceptAssignment:    commands.NewAcceptAssignmentCommandHandler(uow, dispatcher),
			DeclineAssignment:   commands.NewDeclineAssignmentCommandHandler(uow, dispatcher),
			SubmitOffer:         commands.NewSubmitOfferCommandHandler(uow, dispatcher),
			ChangeOfferPrice:    commands.NewChangeOfferPriceCommandHandler(uow, dispatcher),
			ResolveOffer:        commands.NewResolveOfferCommandHandler(uow, dispatcher),
			StartPayment:        commands.NewStartPaymentCommandHandler(uow, dispatcher, linker, 15*time.Minute),
			SubmitPayment:       commands.NewSubmitPaymentCommandHandler(uow, dispatcher),
			ReviewPayment:       commands.NewReviewPaymentCommandHandler(uow, dispatcher),
			SubmitWork:          commands.NewSubmitWorkCommandHandler(uow, dispatcher),
			ApproveWork:         commands.NewApproveWorkCommandHandler(uow, dispatcher),
			AcceptWork:          commands.NewAcceptWorkCommandHandler(uow, dispatcher),
			RequestRevision:     commands.NewRequestRevisionCommandHandler(uow, dispatcher),
			RequestCancellation: commands.NewRequestCancellationCommandHandler(uow, dispatcher),
			ResolveCancellation: commands.NewResolveCancellationCommandHandler(uow, dispatcher),
			Withdraw:            commands.NewWithdrawCommandHandler(uow, dispatcher),
			DeleteOrder:         commands.NewDeleteOrderCommandHandler(uow, dispatcher),
			ExportOrder:         commands.NewExportOrderCommandHandler(uow, sheets.NewCSVExporter(s.export, order.SheetHeaders)),
			AddExecutor:         commands.NewAddExecutorCommandHandler(uow),
			RemoveExecutor:      commands.NewRemoveExecutorCommandHandler(uow),
		},
		Queries: gateways.Queries{
			GetOrder:           queries.NewGetOrderQueryHandler(s.store),
			ListOrders:         queries.NewListOrdersQueryHandler(s.store),
			ListCustomerOrders: queries.NewListCustomerOrdersQueryHandler(s.store),
			ListExecutors:      queries.NewListExecutorsQueryHandler(s.store),
		},
		Clock:  func() time.Time { return s.now },
		Logger: logger,
	})
	s.Require().NoError(err)
}

func origin(id kernel.ActorID) chat.Origin {
	return chat.Origin{
		ActorID:   id,
		ChatRef:   id.Int64(),
		Username:  fmt.Sprintf("user%d", id),
		FirstName: "Пользователь",
		LastName:  id.String(),
	}
}

func (s *RouterTestSuite) text(id kernel.ActorID, body string) {
	s.Require().NoError(s.router.Handle(s.T().Context(), chat.Text{Origin: origin(id), Body: body}))
}

func (s *RouterTestSuite) press(id kernel.ActorID, action chat.Action, orderID int64, value string) {
	payload := chat.Payload{Action: action, OrderID: orderID, Value: value}
	s.Require().NoError(s.router.Handle(s.T().Context(), chat.ButtonPress{Origin: origin(id), Payload: payload}))
}

func (s *RouterTestSuite) upload(id kernel.ActorID, fileID, name string, kind kernel.FileKind) {
	file, err := kernel.NewFileRef(fileID, kind)
	s.Require().NoError(err)
	s.Require().NoError(s.router.Handle(s.T().Context(), chat.FileUpload{
		Origin: origin(id),
		File:   file,
		Name:   name,
		Size:   1024,
	}))
}

// tap presses the button labelled label in the latest message sent to id.
func (s *RouterTestSuite) tap(id kernel.ActorID, label string) {
	p := s.button(id, label)
	s.press(id, p.Action, p.OrderID, p.Value)
}

// button finds the payload of the button labelled label in the latest message sent to id.
func (s *RouterTestSuite) button(id kernel.ActorID, label string) chat.Payload {
	msg := s.last(id)
	for _, row := range msg.Buttons {
		for _, b := range row {
			if b.Label == label {
				return b.Payload
			}
		}
	}
	s.FailNow("button not found", "%q in %q", label, msg.Text)
	return chat.Payload{}
}

func (s *RouterTestSuite) last(id kernel.ActorID) chat.Message {
	messages := s.outbox.to(id)
	s.Require().NotEmpty(messages)
	return messages[len(messages)-1]
}

// replied reports whether any message to id contains fragment.
func (s *RouterTestSuite) replied(id kernel.ActorID, fragment string) bool {
	for _, m := range s.outbox.to(id) {
		if strings.Contains(m.Text, fragment) {
			return true
		}
	}
	return false
}

func (s *RouterTestSuite) step(id kernel.ActorID) string {
	session, err := s.sessions.Get(s.T().Context(), id)
	s.Require().NoError(err)
	return session.Step
}

func (s *RouterTestSuite) noSession(id kernel.ActorID) {
	_, err := s.sessions.Get(s.T().Context(), id)
	s.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (s *RouterTestSuite) order(id int64) *order.Order {
	ctx := s.T().Context()
	uow := s.store.Create()
	s.Require().NoError(uow.Begin(ctx))
	defer func() { _ = uow.Rollback(ctx) }()

	o, err := uow.OrderRepository().Get(ctx, id)
	s.Require().NoError(err)
	return o
}

func (s *RouterTestSuite) drafts(customer kernel.ActorID) []*order.Order {
	ctx := s.T().Context()
	uow := s.store.Create()
	s.Require().NoError(uow.Begin(ctx))
	defer func() { _ = uow.Rollback(ctx) }()

	editing, err := uow.OrderRepository().ListByStatus(ctx, order.Editing)
	s.Require().NoError(err)

	var own []*order.Order
	for _, o := range editing {
		if o.Customer().ID == customer {
			own = append(own, o)
		}
	}
	return own
}

func (s *RouterTestSuite) confirmed(customer kernel.ActorID) []*order.Order {
	ctx := s.T().Context()
	uow := s.store.Create()
	s.Require().NoError(uow.Begin(ctx))
	defer func() { _ = uow.Rollback(ctx) }()

	orders, err := uow.OrderRepository().ListByCustomer(ctx, customer)
	s.Require().NoError(err)
	return orders
}

// toDeadline walks the intake up to the deadline step.
func (s *RouterTestSuite) toDeadline(customer kernel.ActorID) {
	s.text(customer, "/new")
	s.text(customer, "ИВТ-21")
	s.text(customer, "МГТУ")
	s.text(customer, "Иванов И. И.")
	s.text(customer, "2104512")
	s.tap(customer, "Программирование")
	s.tap(customer, "Контрольная")
	s.tap(customer, "Нет")
	s.text(customer, "Решить пять задач на сортировку")
	s.tap(customer, "Нет")
	s.Require().Equal("deadline", s.step(customer))
}

// submitOrder completes the intake and returns the confirmed order id.
func (s *RouterTestSuite) submitOrder(customer kernel.ActorID) int64 {
	s.toDeadline(customer)
	s.text(customer, "5.6.2026")
	s.tap(customer, "⏭ Пропустить")
	s.Require().Equal("confirmation", s.step(customer))
	s.tap(customer, "✅ Подтвердить")

	orders := s.confirmed(customer)
	s.Require().NotEmpty(orders)
	return orders[len(orders)-1].ID()
}

// toOffer brings a new order to awaiting admin approval with price 1000.
func (s *RouterTestSuite) toOffer() int64 {
	id := s.submitOrder(customerID)
	s.press(adminID, chat.ActionAssignTo, id, executorID.String())
	s.tap(executorID, "✅ Готов взяться")
	s.tap(executorID, "1000 ₽")
	s.tap(executorID, "3 дня")
	s.text(executorID, "Сделаю с пояснениями")
	s.Require().Equal(order.AwaitingAdminApproval, s.order(id).Status())
	return id
}

func (s *RouterTestSuite) Test_IntakeCreatesExactlyOneOrder() {
	id := s.submitOrder(customerID)

	o := s.order(id)
	s.Equal(order.UnderReview, o.Status())
	s.Equal("Программирование", o.Details().Subject)
	s.Equal("Контрольная", o.Details().WorkType)
	s.Equal("05.06.2026", o.Details().Deadline)
	s.Equal(order.NoComment, o.Details().Comments)
	s.Equal("Решить пять задач на сортировку", o.Details().TaskText)
	s.False(o.Details().HasGuidelines())

	s.Len(s.confirmed(customerID), 1)
	s.Empty(s.drafts(customerID))
	s.noSession(customerID)

	s.True(s.replied(customerID, fmt.Sprintf("Заявка №%d отправлена", id)))
	s.True(s.replied(adminID, "Новая заявка"))
	s.True(s.replied(executorID, fmt.Sprintf("📢 Новая заявка №%d", id)))
}

func (s *RouterTestSuite) Test_InvalidDeadlineKeepsStep() {
	s.toDeadline(customerID)

	s.text(customerID, "32.13.2026")
	s.Equal("deadline", s.step(customerID))
	s.True(s.replied(customerID, "ДД.ММ.ГГГГ, например"))

	s.text(customerID, "01.09.2026")
	s.Equal("comments", s.step(customerID))
}

func (s *RouterTestSuite) Test_BackFollowsStaticMap() {
	s.text(customerID, "/new")
	s.tap(customerID, "✖️ Отмена")
	s.noSession(customerID)

	s.toDeadline(customerID)

	s.tap(customerID, "⬅️ Назад")
	s.Equal("example_choice", s.step(customerID))
	s.tap(customerID, "⬅️ Назад")
	s.Equal("task", s.step(customerID))
	s.tap(customerID, "⬅️ Назад")
	s.Equal("guidelines_choice", s.step(customerID))
	s.tap(customerID, "⬅️ Назад")
	s.Equal("work_type", s.step(customerID))
	s.tap(customerID, "⬅️ Назад")
	s.Equal("subject", s.step(customerID))
}

func (s *RouterTestSuite) Test_OtherSubjectNeedsFollowUp() {
	s.text(customerID, "/new")
	s.text(customerID, "ИВТ-21")
	s.text(customerID, "МГТУ")
	s.text(customerID, "Иванов И. И.")
	s.text(customerID, "2104512")

	s.tap(customerID, order.OtherOption)
	s.Equal("subject_other", s.step(customerID))

	s.text(customerID, "Теория графов")
	s.Equal("work_type", s.step(customerID))

	session, err := s.sessions.Get(s.T().Context(), customerID)
	s.Require().NoError(err)
	s.Equal("Теория графов", session.Values["subject"])
}

func (s *RouterTestSuite) Test_UploadPolicyIsEnforced() {
	s.text(customerID, "/new")
	s.text(customerID, "ИВТ-21")
	s.text(customerID, "МГТУ")
	s.text(customerID, "Иванов И. И.")
	s.text(customerID, "2104512")
	s.tap(customerID, "Программирование")
	s.tap(customerID, "Контрольная")
	s.tap(customerID, "Да")
	s.Equal("guidelines_upload", s.step(customerID))

	s.upload(customerID, "file-1", "guide.exe", kernel.FileKindDocument)
	s.Equal("guidelines_upload", s.step(customerID))

	s.upload(customerID, "file-2", "guide.PDF", kernel.FileKindDocument)
	s.Equal("task", s.step(customerID))

	s.upload(customerID, "file-3", "", kernel.FileKindPhoto)
	s.Equal("example_choice", s.step(customerID))

	session, err := s.sessions.Get(s.T().Context(), customerID)
	s.Require().NoError(err)
	s.Equal("file-2", session.Files["guidelines"].ID)
	s.Equal("photo", session.Files["task"].Kind)
}

func (s *RouterTestSuite) Test_AbortDiscardsSavedDraft() {
	s.toDeadline(customerID)
	s.text(customerID, "05.06.2026")
	s.text(customerID, "Срочно")
	s.Require().Len(s.drafts(customerID), 1)

	s.tap(customerID, "⬅️ Назад")
	s.text(customerID, "Не срочно")
	s.Require().Len(s.drafts(customerID), 1, "drafts are superseded, not accumulated")
	s.Equal("Не срочно", s.drafts(customerID)[0].Details().Comments)

	s.tap(customerID, "✖️ Отмена")
	s.Empty(s.drafts(customerID))
	s.Empty(s.confirmed(customerID))
	s.noSession(customerID)
}

func (s *RouterTestSuite) Test_StaleChoiceIsIgnored() {
	s.text(customerID, "/new")
	s.text(customerID, "ИВТ-21")

	s.Require().Equal("university", s.step(customerID))

	s.press(customerID, chat.ActionChoose, 0, "subject.0")
	s.Equal("university", s.step(customerID))
	s.True(s.replied(customerID, "Введите значение текстом"))

	s.press(customerID, chat.ActionBack, 0, "group")
	s.Equal("university", s.step(customerID))
	s.True(s.replied(customerID, "устарела"))
}

func (s *RouterTestSuite) Test_FullLifecycle() {
	id := s.toOffer()

	offer := s.order(id).Offer()
	s.Require().NotNil(offer)
	s.Equal(1000, offer.Price)
	s.Equal("3", offer.Deadline)
	s.Equal("Сделаю с пояснениями", offer.Comment)
	s.noSession(executorID)

	s.tap(adminID, "✅ Утвердить и отправить (1000 ₽)")
	s.Equal(order.AwaitingPayment, s.order(id).Status())

	s.tap(customerID, "💳 Оплатить")
	s.True(s.replied(customerID, fmt.Sprintf("%s/FAKE-SBP-ORDER-%d-1000", payments.DefaultBase, id)))
	s.tap(customerID, "✅ Я оплатил")
	s.upload(customerID, "proof-1", "", kernel.FileKindPhoto)
	s.Equal(order.PaymentUnderReview, s.order(id).Status())

	s.tap(adminID, "✅ Подтвердить оплату")
	s.Equal(order.InProgress, s.order(id).Status())

	s.tap(executorID, "📤 Сдать работу")
	s.upload(executorID, "work-1", "solution.docx", kernel.FileKindDocument)
	s.Equal(order.SubmittedForReview, s.order(id).Status())

	s.tap(adminID, "✅ Утвердить работу")
	s.Equal(order.ApprovedByAdmin, s.order(id).Status())

	s.tap(customerID, "🔁 На доработку")
	s.text(customerID, "Добавьте блок-схемы")
	s.Equal(order.RevisionRequested, s.order(id).Status())
	s.Equal("Добавьте блок-схемы", s.order(id).RevisionComment())

	s.tap(executorID, "📤 Сдать работу")
	s.upload(executorID, "work-2", "solution-v2.pdf", kernel.FileKindDocument)
	s.tap(adminID, "✅ Утвердить работу")
	s.tap(customerID, "✅ Принять работу")

	s.Equal(order.Completed, s.order(id).Status())
	s.True(s.replied(executorID, "Клиент принял работу"))
}

func (s *RouterTestSuite) Test_OnlyLinkedExecutorMayAccept() {
	id := s.submitOrder(customerID)
	s.press(adminID, chat.ActionAssignTo, id, executorID.String())

	s.press(strangerID, chat.ActionAcceptAssignment, id, "")
	s.True(s.replied(strangerID, "нет прав"))
	s.Equal(order.ExecutorAssigned, s.order(id).Status())
	s.noSession(strangerID)
}

func (s *RouterTestSuite) Test_AbandonedOfferCanBeResumed() {
	id := s.submitOrder(customerID)
	s.press(adminID, chat.ActionAssignTo, id, executorID.String())
	s.tap(executorID, "✅ Готов взяться")
	s.tap(executorID, "✖️ Отмена")
	s.Equal(order.ExecutorConfirmed, s.order(id).Status())

	s.press(executorID, chat.ActionAcceptAssignment, id, "")
	s.Equal("price", s.step(executorID))
}

func (s *RouterTestSuite) Test_ChangePriceKeepsStatus() {
	id := s.toOffer()

	s.tap(adminID, "✏️ Изменить цену")
	s.text(adminID, "полторы тысячи")
	s.Equal("price", s.step(adminID))

	s.text(adminID, "1500")
	o := s.order(id)
	s.Equal(order.AwaitingAdminApproval, o.Status())
	s.Equal(1500, o.Offer().Price)
	s.noSession(adminID)
}

func (s *RouterTestSuite) Test_RejectOfferReturnsToPool() {
	id := s.toOffer()

	s.tap(adminID, "❌ Отклонить предложение")

	o := s.order(id)
	s.Equal(order.UnderReview, o.Status())
	s.Nil(o.Offer())
	s.False(o.HasExecutor())
	s.True(s.replied(executorID, "отклонил ваши условия"))
}

func (s *RouterTestSuite) Test_SelfTake() {
	id := s.submitOrder(customerID)

	s.press(adminID, chat.ActionSelfTake, id, "")
	s.text(adminID, "2000")
	s.tap(adminID, "До дедлайна")
	s.tap(adminID, "⏭ Пропустить")

	o := s.order(id)
	s.Equal(order.AwaitingPayment, o.Status())
	price, ok := o.FinalPrice()
	s.True(ok)
	s.Equal(2000, price)
	s.Equal(adminID, o.ExecutorID())
	s.True(s.replied(customerID, "выполнит администратор"))
}

func (s *RouterTestSuite) Test_CancelBeforeAssignmentDeletesOrder() {
	id := s.submitOrder(customerID)

	s.text(customerID, "📋 Мои заявки")
	s.tap(customerID, fmt.Sprintf("Заказ №%d", id))
	s.tap(customerID, "❌ Отказаться")
	s.tap(customerID, order.CustomerCancelReasons[2])

	uow := s.store.Create()
	s.Require().NoError(uow.Begin(s.T().Context()))
	defer func() { _ = uow.Rollback(s.T().Context()) }()
	_, err := uow.OrderRepository().Get(s.T().Context(), id)
	s.Require().ErrorIs(err, errs.ErrObjectNotFound)
	s.True(s.replied(adminID, "до назначения исполнителя"))
}

func (s *RouterTestSuite) Test_CancelAfterAssignmentWaitsForAdmin() {
	id := s.submitOrder(customerID)
	s.press(adminID, chat.ActionAssignTo, id, executorID.String())

	s.press(customerID, chat.ActionViewOrder, id, "")
	s.tap(customerID, "❌ Отказаться")
	s.text(customerID, "Передумал")
	s.Equal(order.CancelPending, s.order(id).Status())

	s.tap(adminID, "↩️ Отклонить")
	s.Equal(order.ExecutorAssigned, s.order(id).Status())
}

// labels lists the button labels of the latest message sent to id.
func (s *RouterTestSuite) labels(id kernel.ActorID) []string {
	var out []string
	for _, row := range s.last(id).Buttons {
		for _, b := range row {
			out = append(out, b.Label)
		}
	}
	return out
}

func (s *RouterTestSuite) Test_CustomerOrderCardActions() {
	id := s.submitOrder(customerID)

	s.press(customerID, chat.ActionViewOrder, id, "")
	s.Equal([]string{"❌ Отказаться"}, s.labels(customerID))

	s.press(adminID, chat.ActionAssignTo, id, executorID.String())
	s.press(customerID, chat.ActionViewOrder, id, "")
	s.Equal([]string{"❌ Отказаться"}, s.labels(customerID))

	s.press(executorID, chat.ActionViewOrder, id, "")
	s.Empty(s.labels(executorID))
}

func (s *RouterTestSuite) Test_CustomerOrderCardOffersPayment() {
	id := s.toOffer()
	s.tap(adminID, "✅ Утвердить и отправить (1000 ₽)")

	s.press(customerID, chat.ActionViewOrder, id, "")
	s.Equal([]string{"💳 Оплатить", "❌ Отказаться"}, s.labels(customerID))

	s.tap(customerID, "💳 Оплатить")
	s.tap(customerID, "✅ Я оплатил")
	s.upload(customerID, "proof-1", "", kernel.FileKindPhoto)

	s.press(customerID, chat.ActionViewOrder, id, "")
	s.Empty(s.labels(customerID))
}

func (s *RouterTestSuite) Test_ReasonButtonsOfReplacedOrderAreStale() {
	ctx := s.T().Context()
	id := s.submitOrder(customerID)
	s.press(customerID, chat.ActionViewOrder, id, "")
	s.tap(customerID, "❌ Отказаться")
	s.Equal("reason", s.step(customerID))
	reason := s.button(customerID, order.CustomerCancelReasons[2])

	s.press(adminID, chat.ActionDeleteOrder, id, "")

	// Another order of the same customer shows up under the old id.
	customer := kernel.Actor{ID: customerID, Role: kernel.RoleCustomer, FirstName: "Пользователь"}
	replacement, err := order.NewDraft(id, customer, s.now.Add(time.Hour))
	s.Require().NoError(err)
	s.Require().NoError(replacement.EditDraft(customer, ordertest.Details()))
	s.Require().NoError(replacement.Confirm(customer))
	uow := s.store.Create()
	s.Require().NoError(uow.Begin(ctx))
	s.Require().NoError(uow.OrderRepository().Add(ctx, replacement))
	s.Require().NoError(uow.Commit(ctx))

	s.press(customerID, reason.Action, reason.OrderID, reason.Value)

	s.Equal(order.UnderReview, s.order(id).Status())
	s.Contains(s.last(customerID).Text, "устарела")
	s.noSession(customerID)
}

func (s *RouterTestSuite) Test_ExecutorWithdrawOtherNeedsComment() {
	id := s.toOffer()
	s.tap(adminID, "✅ Утвердить и отправить (1000 ₽)")
	s.tap(customerID, "💳 Оплатить")
	s.tap(customerID, "✅ Я оплатил")
	s.upload(customerID, "proof-1", "", kernel.FileKindPhoto)
	s.tap(adminID, "✅ Подтвердить оплату")

	s.tap(executorID, "🚪 Отказаться от заказа")
	s.tap(executorID, order.OtherOption)
	s.Equal("reason_other", s.step(executorID))

	s.tap(executorID, "⬅️ Назад")
	s.Equal("reason", s.step(executorID))
	s.tap(executorID, order.OtherOption)
	s.text(executorID, "Заболел")

	o := s.order(id)
	s.Equal(order.UnderReview, o.Status())
	s.False(o.HasExecutor())
	s.Nil(o.Offer())
	s.True(s.replied(adminID, "Заболел"))
}

func (s *RouterTestSuite) Test_ExpiredPaymentSessionIsRefused() {
	id := s.toOffer()
	s.tap(adminID, "✅ Утвердить и отправить (1000 ₽)")
	s.tap(customerID, "💳 Оплатить")
	s.tap(customerID, "✅ Я оплатил")

	s.now = s.now.Add(16 * time.Minute)
	s.upload(customerID, "proof-1", "", kernel.FileKindPhoto)

	s.Equal(order.AwaitingPayment, s.order(id).Status())
	s.True(s.replied(customerID, "Время на оплату истекло"))
	s.noSession(customerID)
}

func (s *RouterTestSuite) Test_ExecutorRegistry() {
	s.text(adminID, "/add_executor")
	s.text(adminID, "12ab")
	s.Equal("executor_id", s.step(adminID))
	s.text(adminID, "555")
	s.text(adminID, "Пётр Смирнов")
	s.noSession(adminID)

	s.text(adminID, "/executors")
	s.Contains(s.last(adminID).Text, "Пётр Смирнов")

	id := s.submitOrder(customerID)
	s.press(adminID, chat.ActionAssignPick, id, "")
	s.tap(adminID, "👤 Пётр Смирнов | ID: 555")
	s.Equal(order.ExecutorAssigned, s.order(id).Status())
	s.Equal(kernel.ActorID(555), s.order(id).ExecutorID())

	s.text(adminID, "/executors")
	s.tap(adminID, "🗑 Удалить Пётр Смирнов | ID: 555")
	s.True(s.replied(adminID, "Исполнитель 555 удалён"))
}

func (s *RouterTestSuite) Test_ManualAssignRequiresRegisteredExecutor() {
	id := s.submitOrder(customerID)

	s.press(adminID, chat.ActionAssignManual, id, "")
	s.text(adminID, "999")
	s.Equal("executor_id", s.step(adminID))
	s.Equal(order.UnderReview, s.order(id).Status())

	s.text(adminID, executorID.String())
	s.Equal(order.ExecutorAssigned, s.order(id).Status())
}

func (s *RouterTestSuite) Test_CustomerMayNotUseAdminButtons() {
	id := s.submitOrder(customerID)

	s.press(customerID, chat.ActionSelfTake, id, "")
	s.noSession(customerID)
	s.press(customerID, chat.ActionDeleteOrder, id, "")

	s.Equal(order.UnderReview, s.order(id).Status())
	s.True(s.replied(customerID, "нет прав"))
}

func (s *RouterTestSuite) Test_ExportAndListings() {
	id := s.submitOrder(customerID)

	s.press(adminID, chat.ActionExportOrder, id, "")
	data, err := os.ReadFile(s.export)
	s.Require().NoError(err)
	s.Contains(string(data), "ИВТ-21")

	s.text(customerID, "📋 Мои заявки")
	s.Contains(s.last(customerID).Text, fmt.Sprintf("№%d", id))

	s.text(adminID, "/orders")
	s.Contains(s.last(adminID).Text, fmt.Sprintf("№%d", id))
	s.tap(adminID, fmt.Sprintf("Заказ №%d", id))
	s.Contains(s.last(adminID).Text, "Программирование")
}

func (s *RouterTestSuite) Test_MissingOrderIsReported() {
	s.press(adminID, chat.ActionApproveOffer, 77, "")
	s.True(s.replied(adminID, "заказ не найден"))
}
