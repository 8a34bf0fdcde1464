package order_test

import (
	"testing"
	"time"

	"studydesk/internal/core/domain/model/kernel"
	"studydesk/internal/core/domain/model/order"
	"studydesk/internal/core/domain/model/order/ordertest"
	"studydesk/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDraft(t *testing.T) {
	t.Run("should create a draft owned by the customer", func(t *testing.T) {
		o, err := order.NewDraft(8, ordertest.Customer, ordertest.Created)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.Equal(t, int64(8), o.ID())
		assert.Equal(t, order.Editing, o.Status())
		assert.Equal(t, ordertest.Customer.ID, o.Customer().ID)
		assert.Equal(t, kernel.RoleCustomer, o.Customer().Role)
		assert.False(t, o.HasExecutor())
		assert.Nil(t, o.Offer())
	})

	t.Run("should fail with non positive id and missing customer", func(t *testing.T) {
		o, err := order.NewDraft(0, kernel.Actor{}, ordertest.Created)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "order id")
		assert.Contains(t, err.Error(), "actor id")
	})

	t.Run("zero value order is not constructed", func(t *testing.T) {
		var o *order.Order

		assert.Equal(t, order.ErrOrderIsNotConstructed, o.Validate())
	})
}

func TestOrder_Confirm(t *testing.T) {
	t.Run("should move a complete draft to the pool", func(t *testing.T) {
		o := ordertest.Draft(t, 1)

		require.NoError(t, o.Confirm(ordertest.Customer))

		assert.Equal(t, order.UnderReview, o.Status())
		assert.Equal(t, []order.Notice{
			{Kind: order.NoticeOrderSubmitted, To: order.AudienceAdmin},
			{Kind: order.NoticeOrderBroadcast, To: order.AudienceExecutorPool},
		}, o.PullNotices())
		assert.Empty(t, o.PullNotices())
	})

	t.Run("should reject incomplete details without advancing", func(t *testing.T) {
		o, err := order.NewDraft(1, ordertest.Customer, ordertest.Created)
		require.NoError(t, err)
		details := ordertest.Details()
		details.Deadline = ""
		details.TaskFile = kernel.FileRef{}
		require.NoError(t, o.EditDraft(ordertest.Customer, details))

		err = o.Confirm(ordertest.Customer)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "deadline")
		assert.Contains(t, err.Error(), "task")
		assert.Equal(t, order.Editing, o.Status())
		assert.Empty(t, o.PullNotices())
	})

	t.Run("task may be inline text", func(t *testing.T) {
		o, err := order.NewDraft(1, ordertest.Customer, ordertest.Created)
		require.NoError(t, err)
		details := ordertest.Details()
		details.TaskFile = kernel.FileRef{}
		details.TaskText = "Решить 5 задач"
		require.NoError(t, o.EditDraft(ordertest.Customer, details))

		require.NoError(t, o.Confirm(ordertest.Customer))
	})

	t.Run("only the owner may confirm", func(t *testing.T) {
		o := ordertest.Draft(t, 1)

		err := o.Confirm(ordertest.Stranger)

		require.ErrorIs(t, err, order.ErrNotAuthorized)
		assert.Equal(t, order.Editing, o.Status())
	})

	t.Run("edits supersede the draft", func(t *testing.T) {
		o := ordertest.Draft(t, 1)
		details := ordertest.Details()
		details.Group = "ПМИ-22"

		require.NoError(t, o.EditDraft(ordertest.Customer, details))

		assert.Equal(t, "ПМИ-22", o.Details().Group)
	})

	t.Run("confirmed orders can no longer be edited", func(t *testing.T) {
		o := ordertest.At(t, 1, order.UnderReview)

		err := o.EditDraft(ordertest.Customer, ordertest.Details())

		require.ErrorIs(t, err, order.ErrTransitionNotAllowed)
	})
}

func TestOrder_DiscardDraft(t *testing.T) {
	o := ordertest.Draft(t, 3)

	require.NoError(t, o.DiscardDraft(ordertest.Customer))

	assert.True(t, o.IsRemoved())
	err := o.Confirm(ordertest.Customer)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestOrder_Assignment(t *testing.T) {
	t.Run("admin assigns an executor", func(t *testing.T) {
		o := ordertest.At(t, 2, order.UnderReview)

		require.NoError(t, o.AssignExecutor(ordertest.Admin, ordertest.Executor.ID))

		assert.Equal(t, order.ExecutorAssigned, o.Status())
		assert.Equal(t, ordertest.Executor.ID, o.ExecutorID())
		assert.Equal(t, []order.Notice{
			{Kind: order.NoticeExecutorAssigned, To: order.AudienceExecutor, Executor: ordertest.Executor.ID},
		}, o.PullNotices())
	})

	t.Run("non admin cannot assign", func(t *testing.T) {
		o := ordertest.At(t, 2, order.UnderReview)

		err := o.AssignExecutor(ordertest.Executor, ordertest.Executor.ID)

		require.ErrorIs(t, err, order.ErrNotAuthorized)
		assert.False(t, o.HasExecutor())
	})

	t.Run("executor id must be valid", func(t *testing.T) {
		o := ordertest.At(t, 2, order.UnderReview)

		err := o.AssignExecutor(ordertest.Admin, 0)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Equal(t, order.UnderReview, o.Status())
	})

	t.Run("only the linked executor may accept", func(t *testing.T) {
		o := ordertest.At(t, 2, order.ExecutorAssigned)

		for _, actor := range []kernel.Actor{ordertest.Stranger, ordertest.Customer, ordertest.Admin} {
			err := o.AcceptAssignment(actor)
			require.ErrorIs(t, err, order.ErrNotAuthorized)
			assert.Equal(t, order.ExecutorAssigned, o.Status())
		}

		require.NoError(t, o.AcceptAssignment(ordertest.Executor))
		assert.Equal(t, order.ExecutorConfirmed, o.Status())
	})

	t.Run("only the linked executor may decline", func(t *testing.T) {
		o := ordertest.At(t, 2, order.ExecutorAssigned)

		err := o.DeclineAssignment(ordertest.Stranger)
		require.ErrorIs(t, err, order.ErrNotAuthorized)
		assert.Equal(t, ordertest.Executor.ID, o.ExecutorID())

		require.NoError(t, o.DeclineAssignment(ordertest.Executor))
		assert.Equal(t, order.UnderReview, o.Status())
		assert.False(t, o.HasExecutor())
		assert.Equal(t, []order.Notice{
			{Kind: order.NoticeAssignmentDeclined, To: order.AudienceAdmin, Executor: ordertest.Executor.ID},
		}, o.PullNotices())
	})

	t.Run("declining after accepting returns to the pool", func(t *testing.T) {
		o := ordertest.At(t, 2, order.ExecutorConfirmed)

		require.NoError(t, o.DeclineAssignment(ordertest.Executor))

		assert.Equal(t, order.UnderReview, o.Status())
		assert.False(t, o.HasExecutor())
	})
}

func TestOrder_TakeByAdmin(t *testing.T) {
	t.Run("from the pool", func(t *testing.T) {
		o := ordertest.At(t, 4, order.UnderReview)

		require.NoError(t, o.TakeByAdmin(ordertest.Admin, ordertest.Terms(2500)))

		assert.Equal(t, order.AwaitingPayment, o.Status())
		assert.Equal(t, ordertest.Admin.ID, o.ExecutorID())
		price, ok := o.FinalPrice()
		assert.True(t, ok)
		assert.Equal(t, 2500, price)
		require.NotNil(t, o.Offer())
		assert.Equal(t, ordertest.Admin.ID, o.Offer().ExecutorID)
		assert.Equal(t, []order.Notice{
			{Kind: order.NoticeSelfTaken, To: order.AudienceCustomer},
		}, o.PullNotices())
	})

	t.Run("releases a pending executor first", func(t *testing.T) {
		o := ordertest.At(t, 4, order.ExecutorAssigned)

		require.NoError(t, o.TakeByAdmin(ordertest.Admin, ordertest.Terms(2500)))

		assert.Equal(t, ordertest.Admin.ID, o.ExecutorID())
		assert.Equal(t, []order.Notice{
			{Kind: order.NoticeExecutorReleased, To: order.AudienceExecutor, Executor: ordertest.Executor.ID},
			{Kind: order.NoticeSelfTaken, To: order.AudienceCustomer},
		}, o.PullNotices())
	})
}

func TestOrder_Offer(t *testing.T) {
	t.Run("executor submits an offer", func(t *testing.T) {
		o := ordertest.At(t, 5, order.ExecutorConfirmed)

		require.NoError(t, o.SubmitOffer(ordertest.Executor, ordertest.Terms(1000)))

		assert.Equal(t, order.AwaitingAdminApproval, o.Status())
		offer := o.Offer()
		require.NotNil(t, offer)
		assert.Equal(t, 1000, offer.Price)
		assert.Equal(t, "3", offer.Deadline)
		assert.Equal(t, "solver", offer.ExecutorUsername)
		assert.Equal(t, "Олег", offer.ExecutorFullName)
	})

	t.Run("admin changes the price and the status stays", func(t *testing.T) {
		o := ordertest.At(t, 5, order.AwaitingAdminApproval)
		require.Equal(t, 1000, o.Offer().Price)

		require.NoError(t, o.ChangeOfferPrice(ordertest.Admin, 1500))

		assert.Equal(t, 1500, o.Offer().Price)
		assert.Equal(t, order.AwaitingAdminApproval, o.Status())
		assert.Equal(t, []order.Notice{
			{Kind: order.NoticeOfferPriceChanged, To: order.AudienceAdmin},
		}, o.PullNotices())
	})

	t.Run("negative price is rejected", func(t *testing.T) {
		o := ordertest.At(t, 5, order.AwaitingAdminApproval)

		err := o.ChangeOfferPrice(ordertest.Admin, -1)

		require.True(t, errs.IsValidation(err))
		assert.Equal(t, 1000, o.Offer().Price)
	})

	t.Run("approval fixes the final price", func(t *testing.T) {
		o := ordertest.At(t, 5, order.AwaitingAdminApproval)
		require.NoError(t, o.ChangeOfferPrice(ordertest.Admin, 1500))
		o.PullNotices()

		require.NoError(t, o.ApproveOffer(ordertest.Admin))

		assert.Equal(t, order.AwaitingPayment, o.Status())
		price, ok := o.FinalPrice()
		assert.True(t, ok)
		assert.Equal(t, 1500, price)
		assert.Equal(t, []order.Notice{
			{Kind: order.NoticeOfferApproved, To: order.AudienceCustomer},
			{Kind: order.NoticeOfferApproved, To: order.AudienceExecutor, Executor: ordertest.Executor.ID},
		}, o.PullNotices())
	})

	t.Run("rejection drops the offer and returns to the pool", func(t *testing.T) {
		o := ordertest.At(t, 5, order.AwaitingAdminApproval)

		require.NoError(t, o.RejectOffer(ordertest.Admin))

		assert.Equal(t, order.UnderReview, o.Status())
		assert.Nil(t, o.Offer())
		assert.False(t, o.HasExecutor())
		require.NoError(t, o.Status().ValidateCanHaveOffer(o.Offer() != nil))
		assert.Equal(t, []order.Notice{
			{Kind: order.NoticeOfferRejected, To: order.AudienceExecutor, Executor: ordertest.Executor.ID},
		}, o.PullNotices())
	})
}

func TestOrder_Payment(t *testing.T) {
	t.Run("proof within the window goes to review", func(t *testing.T) {
		o := ordertest.At(t, 6, order.AwaitingPayment)
		require.NoError(t, o.StartPayment(ordertest.Customer, ordertest.Session()))

		require.NoError(t, o.SubmitPayment(ordertest.Customer, ordertest.File("receipt"), ordertest.Created.Add(14*time.Minute)))

		assert.Equal(t, order.PaymentUnderReview, o.Status())
		assert.Equal(t, "receipt", o.PaymentProof().ID())
		assert.Nil(t, o.Payment())
		assert.Equal(t, []order.Notice{
			{Kind: order.NoticePaymentSubmitted, To: order.AudienceAdmin},
		}, o.PullNotices())
	})

	t.Run("proof after the window is rejected", func(t *testing.T) {
		o := ordertest.At(t, 6, order.AwaitingPayment)
		require.NoError(t, o.StartPayment(ordertest.Customer, ordertest.Session()))

		err := o.SubmitPayment(ordertest.Customer, ordertest.File("receipt"), ordertest.Created.Add(15*time.Minute))

		require.ErrorIs(t, err, order.ErrPaymentSessionExpired)
		assert.Equal(t, order.AwaitingPayment, o.Status())
	})

	t.Run("proof without a session is rejected", func(t *testing.T) {
		o := ordertest.At(t, 6, order.AwaitingPayment)

		err := o.SubmitPayment(ordertest.Customer, ordertest.File("receipt"), ordertest.Created)

		require.ErrorIs(t, err, order.ErrPaymentSessionMissing)
	})

	t.Run("proof is required", func(t *testing.T) {
		o := ordertest.At(t, 6, order.AwaitingPayment)
		require.NoError(t, o.StartPayment(ordertest.Customer, ordertest.Session()))

		err := o.SubmitPayment(ordertest.Customer, kernel.FileRef{}, ordertest.Created)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("expired sessions are closed by the sweep", func(t *testing.T) {
		o := ordertest.At(t, 6, order.AwaitingPayment)
		require.NoError(t, o.StartPayment(ordertest.Customer, ordertest.Session()))

		changed, err := o.ExpirePayment(ordertest.Created.Add(5 * time.Minute))
		require.NoError(t, err)
		assert.False(t, changed)

		changed, err = o.ExpirePayment(ordertest.Created.Add(20 * time.Minute))
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Nil(t, o.Payment())
		assert.Equal(t, []order.Notice{
			{Kind: order.NoticePaymentExpired, To: order.AudienceCustomer},
		}, o.PullNotices())
	})

	t.Run("admin accepts the payment", func(t *testing.T) {
		o := ordertest.At(t, 6, order.PaymentUnderReview)

		require.NoError(t, o.AcceptPayment(ordertest.Admin))

		assert.Equal(t, order.InProgress, o.Status())
		assert.Len(t, o.PullNotices(), 2)
	})

	t.Run("admin rejects the payment", func(t *testing.T) {
		o := ordertest.At(t, 6, order.PaymentUnderReview)

		require.NoError(t, o.RejectPayment(ordertest.Admin))

		assert.Equal(t, order.AwaitingPayment, o.Status())
		assert.True(t, o.PaymentProof().IsZero())
	})
}

func TestOrder_Delivery(t *testing.T) {
	t.Run("executor submits, admin approves, customer accepts", func(t *testing.T) {
		o := ordertest.At(t, 7, order.InProgress)

		require.NoError(t, o.SubmitWork(ordertest.Executor, ordertest.File("work"), ordertest.Created))
		require.NoError(t, o.ApproveWork(ordertest.Admin))
		require.NoError(t, o.AcceptWork(ordertest.Customer))

		assert.Equal(t, order.Completed, o.Status())
		assert.Equal(t, "work", o.Submission().File.ID())
	})

	t.Run("another executor cannot submit work", func(t *testing.T) {
		o := ordertest.At(t, 7, order.InProgress)

		err := o.SubmitWork(ordertest.Stranger, ordertest.File("work"), ordertest.Created)

		require.ErrorIs(t, err, order.ErrNotAuthorized)
	})

	t.Run("revision needs a comment", func(t *testing.T) {
		o := ordertest.At(t, 7, order.ApprovedByAdmin)

		err := o.RequestRevision(ordertest.Customer, "   ")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Equal(t, order.ApprovedByAdmin, o.Status())
	})

	t.Run("revision loops back to submission", func(t *testing.T) {
		o := ordertest.At(t, 7, order.ApprovedByAdmin)

		require.NoError(t, o.RequestRevision(ordertest.Customer, "Добавьте выводы"))
		assert.Equal(t, order.RevisionRequested, o.Status())
		assert.Equal(t, "Добавьте выводы", o.RevisionComment())
		assert.Equal(t, []order.Notice{
			{Kind: order.NoticeRevisionRequested, To: order.AudienceExecutor, Executor: ordertest.Executor.ID},
			{Kind: order.NoticeRevisionRequested, To: order.AudienceAdmin},
		}, o.PullNotices())

		require.NoError(t, o.SubmitWork(ordertest.Executor, ordertest.File("work-v2"), ordertest.Created))
		assert.Equal(t, order.SubmittedForReview, o.Status())
	})
}

func TestOrder_Cancellation(t *testing.T) {
	reason, err := order.NewCancellation(order.CustomerCancelReasons[0], "")
	require.NoError(t, err)

	t.Run("before assignment the order is removed at once", func(t *testing.T) {
		o := ordertest.At(t, 9, order.UnderReview)

		require.NoError(t, o.RequestCancellation(ordertest.Customer, reason))

		assert.True(t, o.IsRemoved())
		assert.Equal(t, []order.Notice{
			{Kind: order.NoticeCancelledBeforeAssignment, To: order.AudienceAdmin},
		}, o.PullNotices())
	})

	t.Run("after assignment the admin decides", func(t *testing.T) {
		o := ordertest.At(t, 9, order.ExecutorAssigned)

		require.NoError(t, o.RequestCancellation(ordertest.Customer, reason))

		assert.False(t, o.IsRemoved())
		assert.Equal(t, order.CancelPending, o.Status())
		assert.Equal(t, reason, *o.Cancellation())
	})

	t.Run("accepted cancellation removes the order and tells the executor", func(t *testing.T) {
		o := ordertest.At(t, 9, order.CancelPending)

		require.NoError(t, o.AcceptCancellation(ordertest.Admin))

		assert.True(t, o.IsRemoved())
		assert.Equal(t, []order.Notice{
			{Kind: order.NoticeCancelAccepted, To: order.AudienceCustomer},
			{Kind: order.NoticeCancelAccepted, To: order.AudienceExecutor, Executor: ordertest.Executor.ID},
		}, o.PullNotices())
	})

	t.Run("declined cancellation restores the prior status", func(t *testing.T) {
		o := ordertest.At(t, 9, order.CancelPending)

		require.NoError(t, o.DeclineCancellation(ordertest.Admin))

		assert.Equal(t, order.ExecutorConfirmed, o.Status())
		assert.Nil(t, o.Cancellation())
	})

	t.Run("paid work cannot be cancelled by the customer", func(t *testing.T) {
		o := ordertest.At(t, 9, order.InProgress)

		err := o.RequestCancellation(ordertest.Customer, reason)

		require.ErrorIs(t, err, order.ErrTransitionNotAllowed)
	})

	t.Run("other reason needs a comment", func(t *testing.T) {
		_, err := order.NewCancellation(order.OtherOption, "")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)

		c, err := order.NewCancellation(order.OtherOption, "Сменился преподаватель")
		require.NoError(t, err)
		assert.Equal(t, "Сменился преподаватель", c.Text())
	})
}

func TestOrder_Withdraw(t *testing.T) {
	reason, err := order.NewCancellation(order.ExecutorCancelReasons[0], "")
	require.NoError(t, err)

	t.Run("clears offer and executor", func(t *testing.T) {
		o := ordertest.At(t, 10, order.InProgress)

		require.NoError(t, o.Withdraw(ordertest.Executor, reason))

		assert.Equal(t, order.UnderReview, o.Status())
		assert.Nil(t, o.Offer())
		assert.False(t, o.HasExecutor())
		assert.Equal(t, reason, *o.ExecutorCancellation())
		assert.Equal(t, []order.Notice{
			{Kind: order.NoticeExecutorWithdrew, To: order.AudienceAdmin, Executor: ordertest.Executor.ID},
		}, o.PullNotices())
	})

	t.Run("reason is required", func(t *testing.T) {
		o := ordertest.At(t, 10, order.InProgress)

		err := o.Withdraw(ordertest.Executor, order.Cancellation{})

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Equal(t, order.InProgress, o.Status())
	})
}

func TestOrder_Delete(t *testing.T) {
	o := ordertest.At(t, 11, order.InProgress)

	err := o.Delete(ordertest.Customer)
	require.ErrorIs(t, err, order.ErrNotAuthorized)

	require.NoError(t, o.Delete(ordertest.Admin))
	assert.True(t, o.IsRemoved())
	assert.Len(t, o.PullNotices(), 2)
}

func TestRestore(t *testing.T) {
	t.Run("snapshot round trip keeps every field", func(t *testing.T) {
		o := ordertest.At(t, 12, order.RevisionRequested)

		restored, err := order.Restore(o.Snapshot())

		require.NoError(t, err)
		assert.Equal(t, o.Snapshot(), restored.Snapshot())
	})

	t.Run("rejects an offer in the pool", func(t *testing.T) {
		s := ordertest.At(t, 12, order.AwaitingAdminApproval).Snapshot()
		s.Status = order.UnderReview
		s.ExecutorID = 0

		_, err := order.Restore(s)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "offer")
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		s := ordertest.At(t, 12, order.UnderReview).Snapshot()
		s.Status = order.Unknown

		_, err := order.Restore(s)

		require.Error(t, err)
	})

	t.Run("cancel pending must know where it came from", func(t *testing.T) {
		s := ordertest.At(t, 12, order.CancelPending).Snapshot()
		s.StatusBeforeCancel = order.InProgress

		_, err := order.Restore(s)

		require.Error(t, err)
	})
}

func TestSummary(t *testing.T) {
	o := ordertest.At(t, 13, order.AwaitingAdminApproval)

	summary := o.Summary()

	assert.Contains(t, summary, "Заявка №13")
	assert.Contains(t, summary, "⚖️ Согласование цены")
	assert.Contains(t, summary, "<b>Методичка:</b> ❌")
	assert.Contains(t, summary, "<b>Задание:</b> ✅ файл")
	assert.Contains(t, summary, "<b>Пример работы:</b> ❌")
	assert.Contains(t, summary, "1000 ₽, срок 3 дня")
	assert.Equal(t, "Курсовая · Философия · до 12.06.2026", o.Details().ShortSummary())
	assert.Contains(t, o.ShortSummary(), "№13")
}

func TestSummary_EscapesInput(t *testing.T) {
	details := ordertest.Details()
	details.Group = "<script>"

	assert.Contains(t, details.Summary(), "&lt;script&gt;")
}

func TestSheetRow(t *testing.T) {
	o := ordertest.At(t, 14, order.InProgress)

	row := o.SheetRow()

	require.Len(t, row, len(order.SheetHeaders))
	assert.Equal(t, []string{
		"ИВТ-21", "МГТУ", "Курсовая", "Нет", "Есть", "Нет", "12.06.2026", "Нет",
		"14", "Философия", "in_progress", "04.05.2026 10:30",
	}, row)
}
