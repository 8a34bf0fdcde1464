// Package ordertest builds orders in any lifecycle state for tests.
package ordertest

import (
	"testing"
	"time"

	"studydesk/internal/core/domain/model/kernel"
	"studydesk/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

var (
	Customer = kernel.Actor{ID: 100, Role: kernel.RoleCustomer, Username: "student", FirstName: "Анна", LastName: "Смирнова"}
	Admin    = kernel.Actor{ID: 1, Role: kernel.RoleAdmin, Username: "boss", FirstName: "Админ"}
	Executor = kernel.Actor{ID: 200, Role: kernel.RoleExecutor, Username: "solver", FirstName: "Олег"}
	Stranger = kernel.Actor{ID: 300, Role: kernel.RoleExecutor, Username: "other", FirstName: "Пётр"}

	Created = time.Date(2026, 5, 4, 10, 30, 0, 0, time.UTC)
)

// Details returns a complete set of intake fields.
func Details() order.Details {
	task, _ := kernel.NewFileRef("task-file", kernel.FileKindDocument)
	return order.Details{
		Group:      "ИВТ-21",
		University: "МГТУ",
		Teacher:    "Иванов И.И.",
		Gradebook:  "210455",
		Subject:    "Философия",
		WorkType:   "Курсовая",
		TaskFile:   task,
		Deadline:   "12.06.2026",
		Comments:   order.NoComment,
	}
}

// File returns a document reference with the given id.
func File(id string) kernel.FileRef {
	ref, _ := kernel.NewFileRef(id, kernel.FileKindDocument)
	return ref
}

// Terms returns offer terms with the given price.
func Terms(price int) order.Terms {
	terms, _ := order.NewTerms(price, "3", "Сделаю аккуратно")
	return terms
}

// Session returns a payment session opened at Created with a 15 minute window.
func Session() order.PaymentSession {
	session, _ := order.NewPaymentSession(kernel.NewUUID(), "https://pay.example/1", Created, 15*time.Minute)
	return session
}

// Draft builds a draft with complete details.
func Draft(t *testing.T, id int64) *order.Order {
	t.Helper()
	o, err := order.NewDraft(id, Customer, Created)
	require.NoError(t, err)
	require.NoError(t, o.EditDraft(Customer, Details()))
	return o
}

// At builds an order with id in the requested status by replaying the happy
// path. Notices recorded on the way are discarded.
func At(t *testing.T, id int64, status order.Status) *order.Order {
	t.Helper()
	o := Draft(t, id)

	steps := []struct {
		reached order.Status
		apply   func() error
	}{
		{order.UnderReview, func() error { return o.Confirm(Customer) }},
		{order.ExecutorAssigned, func() error { return o.AssignExecutor(Admin, Executor.ID) }},
		{order.ExecutorConfirmed, func() error { return o.AcceptAssignment(Executor) }},
		{order.AwaitingAdminApproval, func() error { return o.SubmitOffer(Executor, Terms(1000)) }},
		{order.AwaitingPayment, func() error { return o.ApproveOffer(Admin) }},
		{order.PaymentUnderReview, func() error {
			if err := o.StartPayment(Customer, Session()); err != nil {
				return err
			}
			return o.SubmitPayment(Customer, File("receipt"), Created.Add(time.Minute))
		}},
		{order.InProgress, func() error { return o.AcceptPayment(Admin) }},
		{order.SubmittedForReview, func() error { return o.SubmitWork(Executor, File("work"), Created.Add(time.Hour)) }},
		{order.ApprovedByAdmin, func() error { return o.ApproveWork(Admin) }},
	}

	switch status {
	case order.Editing:
		o.PullNotices()
		return o
	case order.Completed:
		o = At(t, id, order.ApprovedByAdmin)
		require.NoError(t, o.AcceptWork(Customer))
		o.PullNotices()
		return o
	case order.RevisionRequested:
		o = At(t, id, order.ApprovedByAdmin)
		require.NoError(t, o.RequestRevision(Customer, "Добавьте выводы"))
		o.PullNotices()
		return o
	case order.CancelPending:
		o = At(t, id, order.ExecutorConfirmed)
		reason, err := order.NewCancellation(order.CustomerCancelReasons[2], "")
		require.NoError(t, err)
		require.NoError(t, o.RequestCancellation(Customer, reason))
		o.PullNotices()
		return o
	}

	for _, step := range steps {
		require.NoError(t, step.apply())
		if step.reached == status {
			o.PullNotices()
			return o
		}
	}

	t.Fatalf("ordertest: status %s is not reachable", status)
	return nil
}
