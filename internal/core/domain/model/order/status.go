package order

import (
	"errors"
	"fmt"

	"studydesk/internal/pkg/errs"
)

// ErrTransitionNotAllowed is the cause attached to status errors raised when a
// trigger is fired from a status that does not accept it.
var ErrTransitionNotAllowed = errors.New("transition is not allowed")

// Status represents the lifecycle state of an order. Exactly one holds at a time.
// Removal (customer cancellation before assignment, accepted cancellation,
// administrator delete) is not a status: the record leaves the store.
type Status int

const (
	// Unknown (0) catches uninitialized values.
	Unknown Status = iota

	// Editing is a draft visible only to its owner.
	Editing

	// UnderReview orders wait in the pool for the administrator.
	UnderReview

	// ExecutorAssigned waits for the linked executor to accept or decline.
	ExecutorAssigned

	// ExecutorConfirmed means the executor accepted and is preparing an offer.
	ExecutorConfirmed

	// AwaitingAdminApproval holds a submitted offer until the administrator resolves it.
	AwaitingAdminApproval

	// AwaitingPayment orders have a final price and wait for the customer.
	AwaitingPayment

	// PaymentUnderReview carries a payment proof the administrator has to check.
	PaymentUnderReview

	// InProgress is paid work being done by the executor.
	InProgress

	// SubmittedForReview carries delivered work the administrator has to check.
	SubmittedForReview

	// ApprovedByAdmin work has been forwarded to the customer.
	ApprovedByAdmin

	// RevisionRequested is the "on revision" equivalent of InProgress.
	RevisionRequested

	// Completed is final.
	Completed

	// CancelPending waits for the administrator to resolve a customer cancellation.
	CancelPending
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:               "unknown",
		Editing:               "editing",
		UnderReview:           "under_review",
		ExecutorAssigned:      "executor_assigned",
		ExecutorConfirmed:     "executor_confirmed",
		AwaitingAdminApproval: "awaiting_admin_approval",
		AwaitingPayment:       "awaiting_payment",
		PaymentUnderReview:    "payment_under_review",
		InProgress:            "in_progress",
		SubmittedForReview:    "submitted_for_review",
		ApprovedByAdmin:       "approved_by_admin",
		RevisionRequested:     "revision_requested",
		Completed:             "completed",
		CancelPending:         "cancel_pending",
	}
}

func getStatusLabels() map[Status]string {
	//nolint:exhaustive // Unknown has no label
	return map[Status]string{
		Editing:               "📝 Редактируется",
		UnderReview:           "🆕 Рассматривается",
		ExecutorAssigned:      "🤔 Ожидает подтверждения",
		ExecutorConfirmed:     "🙋‍♂️ Исполнитель найден",
		AwaitingAdminApproval: "⚖️ Согласование цены",
		AwaitingPayment:       "💳 Ожидает оплаты",
		PaymentUnderReview:    "🧾 Оплата на проверке",
		InProgress:            "⏳ В работе",
		SubmittedForReview:    "🔎 Работа на проверке",
		ApprovedByAdmin:       "✅ Утверждено администратором",
		RevisionRequested:     "🔁 На доработке",
		Completed:             "🎉 Выполнена",
		CancelPending:         "❌ Ожидает удаления",
	}
}

// ParseStatus maps a persisted state tag back to a Status.
func ParseStatus(tag string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == tag && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a known status", tag))
}

// Validate checks that s is one of the defined statuses.
func (s Status) Validate() error {
	if s <= Unknown || s > CancelPending {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the stable state tag used for persistence, e.g. "under_review".
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Label returns the emoji-prefixed Russian label shown in listings.
func (s Status) Label() string {
	if label, ok := getStatusLabels()[s]; ok {
		return label
	}
	return "📄 Неизвестно"
}

// IsDraft reports whether orders in s are hidden from everyone but the owner.
func (s Status) IsDraft() bool {
	return s == Editing
}

// ValidateCanHaveExecutor checks the consistency between the status and the
// executor linkage.
//
// Business rules:
//   - editing and under_review orders have no executor
//   - every status from executor_assigned to completed has one
//   - cancel_pending may or may not have one, depending on where it came from
func (s Status) ValidateCanHaveExecutor(linked bool) error {
	switch s {
	case Editing, UnderReview:
		if linked {
			return errs.NewValueIsInvalidErrorWithCause(
				"status is invalid",
				fmt.Errorf("%s is not a valid status to have an executor", s),
			)
		}
	case CancelPending, Unknown:
	default:
		if !linked {
			return errs.NewValueIsInvalidErrorWithCause(
				"status is invalid",
				fmt.Errorf("%s is not a valid status to have no executor", s),
			)
		}
	}
	return nil
}

// ValidateCanHaveOffer checks the consistency between the status and the
// presence of an executor offer. Offers exist from submission onwards and are
// dropped whenever the order returns to the pool.
func (s Status) ValidateCanHaveOffer(present bool) error {
	switch s {
	case Editing, UnderReview, ExecutorAssigned, ExecutorConfirmed:
		if present {
			return errs.NewValueIsInvalidErrorWithCause(
				"status is invalid",
				fmt.Errorf("%s is not a valid status to have an offer", s),
			)
		}
	case CancelPending, Unknown:
	default:
		if !present {
			return errs.NewValueIsInvalidErrorWithCause(
				"status is invalid",
				fmt.Errorf("%s is not a valid status to have no offer", s),
			)
		}
	}
	return nil
}

// Fire checks that trigger t is accepted from s and returns the status the
// transition table leads to. Triggers whose effect depends on more than the
// status (cancellation, removal) are finished by the Order methods.
//
// Example:
//
//	next, err := order.UnderReview.Fire(order.TriggerAssign)
//	// next == order.ExecutorAssigned
func (s Status) Fire(t Trigger) (Status, error) {
	r, ok := getTransitions()[t]
	if !ok {
		return Unknown, errs.NewValueIsInvalidErrorWithCause("trigger is invalid", fmt.Errorf("%d is not a known trigger", t))
	}

	if !r.accepts(s) {
		return Unknown, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%w: cannot %s from %s", ErrTransitionNotAllowed, t, s),
		)
	}

	if r.to == Unknown {
		return s, nil
	}
	return r.to, nil
}

// Can reports whether t may be fired from s.
func (s Status) Can(t Trigger) bool {
	r, ok := getTransitions()[t]
	return ok && r.accepts(s)
}
