package order

import "studydesk/internal/core/domain/model/kernel"

// Audience is the party a notice is addressed to.
type Audience int

const (
	AudienceCustomer Audience = iota + 1
	AudienceExecutor
	AudienceAdmin
	AudienceExecutorPool
)

// NoticeKind names what happened, so the dispatcher can render the message.
type NoticeKind int

const (
	NoticeOrderSubmitted NoticeKind = iota + 1
	NoticeOrderBroadcast
	NoticeExecutorAssigned
	NoticeExecutorReleased
	NoticeAssignmentDeclined
	NoticeOfferSubmitted
	NoticeOfferPriceChanged
	NoticeOfferApproved
	NoticeOfferRejected
	NoticeSelfTaken
	NoticePaymentSubmitted
	NoticePaymentAccepted
	NoticePaymentRejected
	NoticePaymentExpired
	NoticeWorkSubmitted
	NoticeWorkApproved
	NoticeWorkAccepted
	NoticeRevisionRequested
	NoticeCancelRequested
	NoticeCancelledBeforeAssignment
	NoticeCancelAccepted
	NoticeCancelDeclined
	NoticeExecutorWithdrew
	NoticeOrderDeleted
)

// Notice is a notification intent recorded by a transition. Executor carries
// the addressed executor for AudienceExecutor, because the transition may
// already have cleared the linkage.
type Notice struct {
	Kind     NoticeKind
	To       Audience
	Executor kernel.ActorID
}

func (k NoticeKind) String() string {
	names := map[NoticeKind]string{
		NoticeOrderSubmitted:            "order_submitted",
		NoticeOrderBroadcast:            "order_broadcast",
		NoticeExecutorAssigned:          "executor_assigned",
		NoticeExecutorReleased:          "executor_released",
		NoticeAssignmentDeclined:        "assignment_declined",
		NoticeOfferSubmitted:            "offer_submitted",
		NoticeOfferPriceChanged:         "offer_price_changed",
		NoticeOfferApproved:             "offer_approved",
		NoticeOfferRejected:             "offer_rejected",
		NoticeSelfTaken:                 "self_taken",
		NoticePaymentSubmitted:          "payment_submitted",
		NoticePaymentAccepted:           "payment_accepted",
		NoticePaymentRejected:           "payment_rejected",
		NoticePaymentExpired:            "payment_expired",
		NoticeWorkSubmitted:             "work_submitted",
		NoticeWorkApproved:              "work_approved",
		NoticeWorkAccepted:              "work_accepted",
		NoticeRevisionRequested:         "revision_requested",
		NoticeCancelRequested:           "cancel_requested",
		NoticeCancelledBeforeAssignment: "cancelled_before_assignment",
		NoticeCancelAccepted:            "cancel_accepted",
		NoticeCancelDeclined:            "cancel_declined",
		NoticeExecutorWithdrew:          "executor_withdrew",
		NoticeOrderDeleted:              "order_deleted",
	}
	if name, ok := names[k]; ok {
		return name
	}
	return "unknown"
}

func (a Audience) String() string {
	switch a {
	case AudienceCustomer:
		return "customer"
	case AudienceExecutor:
		return "executor"
	case AudienceAdmin:
		return "admin"
	case AudienceExecutorPool:
		return "executor_pool"
	default:
		return "unknown"
	}
}
