package order

import "slices"

// Trigger is a lifecycle event requested by an actor (or by the system clock).
type Trigger int

const (
	TriggerEditDraft Trigger = iota + 1
	TriggerDiscardDraft
	TriggerConfirm
	TriggerAssign
	TriggerSelfTake
	TriggerAccept
	TriggerDecline
	TriggerSubmitOffer
	TriggerChangePrice
	TriggerApproveOffer
	TriggerRejectOffer
	TriggerStartPayment
	TriggerSubmitPayment
	TriggerExpirePayment
	TriggerAcceptPayment
	TriggerRejectPayment
	TriggerSubmitWork
	TriggerApproveWork
	TriggerAcceptWork
	TriggerRequestRevision
	TriggerCancel
	TriggerAcceptCancel
	TriggerDeclineCancel
	TriggerWithdraw
	TriggerDelete
)

// performer says who may fire a trigger.
type performer int

const (
	byOwner performer = iota + 1
	byLinkedExecutor
	byAdmin
	bySystem
)

// rule is one row of the transition table. A zero to keeps the current status.
type rule struct {
	name string
	from []Status
	by   performer
	to   Status
}

func (r rule) accepts(s Status) bool {
	return slices.Contains(r.from, s)
}

// getTransitions returns the transition table. It is the single authority on
// which trigger is legal from which status and who may fire it.
func getTransitions() map[Trigger]rule {
	preAssignment := []Status{UnderReview, ExecutorAssigned, ExecutorConfirmed, AwaitingAdminApproval, AwaitingPayment}
	working := []Status{InProgress, RevisionRequested}
	live := []Status{
		UnderReview, ExecutorAssigned, ExecutorConfirmed, AwaitingAdminApproval, AwaitingPayment,
		PaymentUnderReview, InProgress, SubmittedForReview, ApprovedByAdmin, RevisionRequested,
		Completed, CancelPending,
	}

	return map[Trigger]rule{
		TriggerEditDraft:       {name: "edit draft", from: []Status{Editing}, by: byOwner},
		TriggerDiscardDraft:    {name: "discard draft", from: []Status{Editing}, by: byOwner},
		TriggerConfirm:         {name: "confirm", from: []Status{Editing}, by: byOwner, to: UnderReview},
		TriggerAssign:          {name: "assign executor", from: []Status{UnderReview}, by: byAdmin, to: ExecutorAssigned},
		TriggerSelfTake:        {name: "self-take", from: []Status{UnderReview, ExecutorAssigned}, by: byAdmin, to: AwaitingPayment},
		TriggerAccept:          {name: "accept assignment", from: []Status{ExecutorAssigned}, by: byLinkedExecutor, to: ExecutorConfirmed},
		TriggerDecline:         {name: "decline assignment", from: []Status{ExecutorAssigned, ExecutorConfirmed}, by: byLinkedExecutor, to: UnderReview},
		TriggerSubmitOffer:     {name: "submit offer", from: []Status{ExecutorConfirmed}, by: byLinkedExecutor, to: AwaitingAdminApproval},
		TriggerChangePrice:     {name: "change offer price", from: []Status{AwaitingAdminApproval}, by: byAdmin},
		TriggerApproveOffer:    {name: "approve offer", from: []Status{AwaitingAdminApproval}, by: byAdmin, to: AwaitingPayment},
		TriggerRejectOffer:     {name: "reject offer", from: []Status{AwaitingAdminApproval}, by: byAdmin, to: UnderReview},
		TriggerStartPayment:    {name: "start payment", from: []Status{AwaitingPayment}, by: byOwner},
		TriggerSubmitPayment:   {name: "submit payment", from: []Status{AwaitingPayment}, by: byOwner, to: PaymentUnderReview},
		TriggerExpirePayment:   {name: "expire payment", from: []Status{AwaitingPayment}, by: bySystem},
		TriggerAcceptPayment:   {name: "accept payment", from: []Status{PaymentUnderReview}, by: byAdmin, to: InProgress},
		TriggerRejectPayment:   {name: "reject payment", from: []Status{PaymentUnderReview}, by: byAdmin, to: AwaitingPayment},
		TriggerSubmitWork:      {name: "submit work", from: working, by: byLinkedExecutor, to: SubmittedForReview},
		TriggerApproveWork:     {name: "approve work", from: []Status{SubmittedForReview}, by: byAdmin, to: ApprovedByAdmin},
		TriggerAcceptWork:      {name: "accept work", from: []Status{ApprovedByAdmin}, by: byOwner, to: Completed},
		TriggerRequestRevision: {name: "request revision", from: []Status{ApprovedByAdmin}, by: byOwner, to: RevisionRequested},
		TriggerCancel:          {name: "cancel", from: preAssignment, by: byOwner, to: CancelPending},
		TriggerAcceptCancel:    {name: "accept cancellation", from: []Status{CancelPending}, by: byAdmin},
		TriggerDeclineCancel:   {name: "decline cancellation", from: []Status{CancelPending}, by: byAdmin},
		TriggerWithdraw:        {name: "withdraw", from: working, by: byLinkedExecutor, to: UnderReview},
		TriggerDelete:          {name: "delete", from: live, by: byAdmin},
	}
}

// String returns a human readable trigger name for logs and errors.
func (t Trigger) String() string {
	if r, ok := getTransitions()[t]; ok {
		return r.name
	}
	return "unknown trigger"
}

func (t Trigger) performer() performer {
	return getTransitions()[t].by
}
