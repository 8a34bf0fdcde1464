package order

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"studydesk/internal/core/domain/model/kernel"
	"studydesk/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not built by NewDraft or Restore.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewDraft or Restore")

	// ErrNotAuthorized is returned when the acting party may not fire a trigger on this order.
	ErrNotAuthorized = errors.New("actor is not allowed to perform this action")

	// ErrPaymentSessionMissing is returned when a proof arrives without an open payment session.
	ErrPaymentSessionMissing = errors.New("payment session has not been started")

	// ErrPaymentSessionExpired is returned when a proof arrives after the session window closed.
	ErrPaymentSessionExpired = errors.New("payment session has expired")
)

// Order is the aggregate root tracking one customer's work request from the
// first intake step to completion.
//
// Invariants:
//   - id is assigned once by the store and never changes
//   - the customer never changes
//   - at most one executor is linked; returning to the pool clears it
//   - an offer exists only from submission onwards (see Status.ValidateCanHaveOffer)
//   - drafts (Editing) are visible to their owner only
//
// Every transition method records the notices it produces; the application
// pulls them with PullNotices after the order has been persisted.
type Order struct {
	id        int64
	customer  kernel.Actor
	createdAt time.Time
	details   Details
	status    Status

	executorID kernel.ActorID
	offer      *Offer
	finalPrice *int

	payment      *PaymentSession
	paymentProof kernel.FileRef
	submission   *Submission

	revisionComment      string
	cancellation         *Cancellation
	executorCancellation *Cancellation
	statusBeforeCancel   Status

	version int
	removed bool
	notices []Notice

	isConstructed bool
}

// NewDraft starts a draft owned by customer. The id comes from the store.
//
// Example:
//
//	draft, err := order.NewDraft(8, customer, time.Now())
//	err = draft.EditDraft(customer, details)
//	err = draft.Confirm(customer)
func NewDraft(id int64, customer kernel.Actor, createdAt time.Time) (*Order, error) {
	o := &Order{
		status:        Editing,
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomer(customer),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the order was built through NewDraft or Restore.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) ID() int64 {
	return o.id
}

func (o *Order) Customer() kernel.Actor {
	return o.customer
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) Details() Details {
	return o.details
}

func (o *Order) Status() Status {
	return o.status
}

// ExecutorID returns the linked executor, or 0 when none is linked.
func (o *Order) ExecutorID() kernel.ActorID {
	return o.executorID
}

func (o *Order) HasExecutor() bool {
	return o.executorID != 0
}

// Offer returns a copy of the executor offer, or nil.
func (o *Order) Offer() *Offer {
	if o.offer == nil {
		return nil
	}
	offer := *o.offer
	return &offer
}

// FinalPrice returns the approved price and whether one was set.
func (o *Order) FinalPrice() (int, bool) {
	if o.finalPrice == nil {
		return 0, false
	}
	return *o.finalPrice, true
}

// Payment returns a copy of the open payment session, or nil.
func (o *Order) Payment() *PaymentSession {
	if o.payment == nil {
		return nil
	}
	session := *o.payment
	return &session
}

func (o *Order) PaymentProof() kernel.FileRef {
	return o.paymentProof
}

// Submission returns a copy of the delivered work, or nil.
func (o *Order) Submission() *Submission {
	if o.submission == nil {
		return nil
	}
	submission := *o.submission
	return &submission
}

func (o *Order) RevisionComment() string {
	return o.revisionComment
}

// Cancellation returns the customer's cancellation reason, or nil.
func (o *Order) Cancellation() *Cancellation {
	if o.cancellation == nil {
		return nil
	}
	c := *o.cancellation
	return &c
}

// ExecutorCancellation returns the last executor withdrawal reason, or nil.
func (o *Order) ExecutorCancellation() *Cancellation {
	if o.executorCancellation == nil {
		return nil
	}
	c := *o.executorCancellation
	return &c
}

func (o *Order) Version() int {
	return o.version
}

// IncrementVersion is called by repositories once a write succeeded.
func (o *Order) IncrementVersion() {
	o.version++
}

// IsRemoved reports whether the last transition removed the order. Removed
// orders must be deleted from the store instead of updated.
func (o *Order) IsRemoved() bool {
	return o.removed
}

// PullNotices returns the notices recorded since the last call and forgets them.
func (o *Order) PullNotices() []Notice {
	notices := o.notices
	o.notices = nil
	return notices
}

// EditDraft replaces the draft details. Drafts are superseded, never accumulated.
func (o *Order) EditDraft(actor kernel.Actor, details Details) error {
	if _, err := o.fire(actor, TriggerEditDraft); err != nil {
		return err
	}

	o.details = details
	return nil
}

// DiscardDraft removes an unconfirmed draft.
func (o *Order) DiscardDraft(actor kernel.Actor) error {
	if _, err := o.fire(actor, TriggerDiscardDraft); err != nil {
		return err
	}

	o.removed = true
	return nil
}

// Confirm promotes a complete draft to the pool and announces it to the
// administrator and the executor pool.
func (o *Order) Confirm(actor kernel.Actor) error {
	next, err := o.fire(actor, TriggerConfirm)
	if err != nil {
		return err
	}

	if err = o.details.ValidateComplete(); err != nil {
		return err
	}

	o.status = next
	o.record(Notice{Kind: NoticeOrderSubmitted, To: AudienceAdmin})
	o.record(Notice{Kind: NoticeOrderBroadcast, To: AudienceExecutorPool})
	return nil
}

// AssignExecutor links executorID and asks them to accept or decline.
func (o *Order) AssignExecutor(actor kernel.Actor, executorID kernel.ActorID) error {
	next, err := o.fire(actor, TriggerAssign)
	if err != nil {
		return err
	}

	if err = executorID.Validate(); err != nil {
		return err
	}

	o.status = next
	o.executorID = executorID
	o.record(Notice{Kind: NoticeExecutorAssigned, To: AudienceExecutor, Executor: executorID})
	return nil
}

// TakeByAdmin lets the administrator do the work personally. The terms become
// both the offer and the final price and the customer is asked to pay.
// A pending executor, if any, is released first.
func (o *Order) TakeByAdmin(actor kernel.Actor, terms Terms) error {
	next, err := o.fire(actor, TriggerSelfTake)
	if err != nil {
		return err
	}

	if released := o.executorID; released != 0 && released != actor.ID {
		o.record(Notice{Kind: NoticeExecutorReleased, To: AudienceExecutor, Executor: released})
	}

	price := terms.Price
	o.status = next
	o.executorID = actor.ID
	o.offer = newOffer(actor, terms)
	o.finalPrice = &price
	o.record(Notice{Kind: NoticeSelfTaken, To: AudienceCustomer})
	return nil
}

// AcceptAssignment confirms the linked executor will prepare an offer.
func (o *Order) AcceptAssignment(actor kernel.Actor) error {
	next, err := o.fire(actor, TriggerAccept)
	if err != nil {
		return err
	}

	o.status = next
	return nil
}

// DeclineAssignment returns the order to the pool.
func (o *Order) DeclineAssignment(actor kernel.Actor) error {
	next, err := o.fire(actor, TriggerDecline)
	if err != nil {
		return err
	}

	declined := o.executorID
	o.status = next
	o.executorID = 0
	o.record(Notice{Kind: NoticeAssignmentDeclined, To: AudienceAdmin, Executor: declined})
	return nil
}

// SubmitOffer records the linked executor's terms for administrator approval.
func (o *Order) SubmitOffer(actor kernel.Actor, terms Terms) error {
	next, err := o.fire(actor, TriggerSubmitOffer)
	if err != nil {
		return err
	}

	o.status = next
	o.offer = newOffer(actor, terms)
	o.record(Notice{Kind: NoticeOfferSubmitted, To: AudienceAdmin})
	return nil
}

// ChangeOfferPrice overrides the offered price. The status does not change.
func (o *Order) ChangeOfferPrice(actor kernel.Actor, price int) error {
	if _, err := o.fire(actor, TriggerChangePrice); err != nil {
		return err
	}

	if price < 0 {
		return errs.NewValueIsOutOfRangeError("price", price, 0, "unbounded")
	}
	if o.offer == nil {
		return errs.NewValueIsRequiredError("offer")
	}

	o.offer.Price = price
	o.record(Notice{Kind: NoticeOfferPriceChanged, To: AudienceAdmin})
	return nil
}

// ApproveOffer fixes the final price and asks the customer to pay.
func (o *Order) ApproveOffer(actor kernel.Actor) error {
	next, err := o.fire(actor, TriggerApproveOffer)
	if err != nil {
		return err
	}
	if o.offer == nil {
		return errs.NewValueIsRequiredError("offer")
	}

	price := o.offer.Price
	o.status = next
	o.finalPrice = &price
	o.record(Notice{Kind: NoticeOfferApproved, To: AudienceCustomer})
	o.record(Notice{Kind: NoticeOfferApproved, To: AudienceExecutor, Executor: o.executorID})
	return nil
}

// RejectOffer drops the offer and the executor linkage, returning the order to the pool.
func (o *Order) RejectOffer(actor kernel.Actor) error {
	next, err := o.fire(actor, TriggerRejectOffer)
	if err != nil {
		return err
	}

	rejected := o.executorID
	o.status = next
	o.offer = nil
	o.executorID = 0
	o.record(Notice{Kind: NoticeOfferRejected, To: AudienceExecutor, Executor: rejected})
	return nil
}

// StartPayment opens (or reopens) a payment session.
func (o *Order) StartPayment(actor kernel.Actor, session PaymentSession) error {
	if _, err := o.fire(actor, TriggerStartPayment); err != nil {
		return err
	}

	if err := session.ID.Validate(); err != nil {
		return err
	}

	o.payment = &session
	return nil
}

// SubmitPayment attaches the customer's payment proof and hands it to the
// administrator. The session must still be open at now.
func (o *Order) SubmitPayment(actor kernel.Actor, proof kernel.FileRef, now time.Time) error {
	next, err := o.fire(actor, TriggerSubmitPayment)
	if err != nil {
		return err
	}

	if proof.IsZero() {
		return errs.NewValueIsRequiredError("payment proof")
	}
	if err = o.ValidatePaymentSession(now); err != nil {
		return err
	}

	o.status = next
	o.paymentProof = proof
	o.payment = nil
	o.record(Notice{Kind: NoticePaymentSubmitted, To: AudienceAdmin})
	return nil
}

// ValidatePaymentSession checks that a payment session is open at now.
func (o *Order) ValidatePaymentSession(now time.Time) error {
	if o.payment == nil {
		return fmt.Errorf("order %d: %w", o.id, ErrPaymentSessionMissing)
	}
	if o.payment.ExpiredAt(now) {
		return fmt.Errorf("order %d: %w", o.id, ErrPaymentSessionExpired)
	}
	return nil
}

// ExpirePayment closes a payment session whose window is over and tells the
// customer. It reports whether anything changed.
func (o *Order) ExpirePayment(now time.Time) (bool, error) {
	if _, err := o.fire(kernel.Actor{}, TriggerExpirePayment); err != nil {
		return false, err
	}

	if o.payment == nil || !o.payment.ExpiredAt(now) {
		return false, nil
	}

	o.payment = nil
	o.record(Notice{Kind: NoticePaymentExpired, To: AudienceCustomer})
	return true, nil
}

// AcceptPayment starts the work.
func (o *Order) AcceptPayment(actor kernel.Actor) error {
	next, err := o.fire(actor, TriggerAcceptPayment)
	if err != nil {
		return err
	}

	o.status = next
	o.record(Notice{Kind: NoticePaymentAccepted, To: AudienceCustomer})
	o.record(Notice{Kind: NoticePaymentAccepted, To: AudienceExecutor, Executor: o.executorID})
	return nil
}

// RejectPayment discards the proof and asks the customer to pay again.
func (o *Order) RejectPayment(actor kernel.Actor) error {
	next, err := o.fire(actor, TriggerRejectPayment)
	if err != nil {
		return err
	}

	o.status = next
	o.paymentProof = kernel.FileRef{}
	o.record(Notice{Kind: NoticePaymentRejected, To: AudienceCustomer})
	return nil
}

// SubmitWork attaches the delivered file for administrator review.
func (o *Order) SubmitWork(actor kernel.Actor, file kernel.FileRef, now time.Time) error {
	next, err := o.fire(actor, TriggerSubmitWork)
	if err != nil {
		return err
	}

	if file.IsZero() {
		return errs.NewValueIsRequiredError("submitted work")
	}

	o.status = next
	o.submission = &Submission{File: file, SubmittedAt: now}
	o.record(Notice{Kind: NoticeWorkSubmitted, To: AudienceAdmin})
	return nil
}

// ApproveWork forwards the delivered work to the customer.
func (o *Order) ApproveWork(actor kernel.Actor) error {
	next, err := o.fire(actor, TriggerApproveWork)
	if err != nil {
		return err
	}
	if o.submission == nil {
		return errs.NewValueIsRequiredError("submitted work")
	}

	o.status = next
	o.record(Notice{Kind: NoticeWorkApproved, To: AudienceCustomer})
	return nil
}

// AcceptWork completes the order.
func (o *Order) AcceptWork(actor kernel.Actor) error {
	next, err := o.fire(actor, TriggerAcceptWork)
	if err != nil {
		return err
	}

	o.status = next
	o.record(Notice{Kind: NoticeWorkAccepted, To: AudienceExecutor, Executor: o.executorID})
	o.record(Notice{Kind: NoticeWorkAccepted, To: AudienceAdmin})
	return nil
}

// RequestRevision sends the work back to the executor with a mandatory comment.
func (o *Order) RequestRevision(actor kernel.Actor, comment string) error {
	next, err := o.fire(actor, TriggerRequestRevision)
	if err != nil {
		return err
	}

	comment = strings.TrimSpace(comment)
	if comment == "" {
		return errs.NewValueIsRequiredError("revision comment")
	}

	o.status = next
	o.revisionComment = comment
	o.record(Notice{Kind: NoticeRevisionRequested, To: AudienceExecutor, Executor: o.executorID})
	o.record(Notice{Kind: NoticeRevisionRequested, To: AudienceAdmin})
	return nil
}

// RequestCancellation handles a customer cancellation. Before any executor is
// involved (under_review) the order is removed at once; otherwise it waits in
// cancel_pending for the administrator.
func (o *Order) RequestCancellation(actor kernel.Actor, reason Cancellation) error {
	next, err := o.fire(actor, TriggerCancel)
	if err != nil {
		return err
	}

	if strings.TrimSpace(reason.Reason) == "" {
		return errs.NewValueIsRequiredError("cancellation reason")
	}

	o.cancellation = &reason
	if o.status == UnderReview {
		o.removed = true
		o.record(Notice{Kind: NoticeCancelledBeforeAssignment, To: AudienceAdmin})
		return nil
	}

	o.statusBeforeCancel = o.status
	o.status = next
	o.record(Notice{Kind: NoticeCancelRequested, To: AudienceAdmin})
	return nil
}

// AcceptCancellation removes a cancel_pending order.
func (o *Order) AcceptCancellation(actor kernel.Actor) error {
	if _, err := o.fire(actor, TriggerAcceptCancel); err != nil {
		return err
	}

	o.removed = true
	o.record(Notice{Kind: NoticeCancelAccepted, To: AudienceCustomer})
	if o.executorID != 0 {
		o.record(Notice{Kind: NoticeCancelAccepted, To: AudienceExecutor, Executor: o.executorID})
	}
	return nil
}

// DeclineCancellation restores the status the order had before the request.
func (o *Order) DeclineCancellation(actor kernel.Actor) error {
	if _, err := o.fire(actor, TriggerDeclineCancel); err != nil {
		return err
	}

	if err := o.statusBeforeCancel.Validate(); err != nil {
		return err
	}

	o.status = o.statusBeforeCancel
	o.statusBeforeCancel = Unknown
	o.cancellation = nil
	o.record(Notice{Kind: NoticeCancelDeclined, To: AudienceCustomer})
	return nil
}

// Withdraw lets the linked executor drop paid work. The offer and linkage are
// cleared and the order returns to the pool.
func (o *Order) Withdraw(actor kernel.Actor, reason Cancellation) error {
	next, err := o.fire(actor, TriggerWithdraw)
	if err != nil {
		return err
	}

	if strings.TrimSpace(reason.Reason) == "" {
		return errs.NewValueIsRequiredError("withdrawal reason")
	}

	withdrawn := o.executorID
	o.status = next
	o.executorCancellation = &reason
	o.offer = nil
	o.executorID = 0
	o.submission = nil
	o.record(Notice{Kind: NoticeExecutorWithdrew, To: AudienceAdmin, Executor: withdrawn})
	return nil
}

// Delete removes any confirmed order on the administrator's request.
func (o *Order) Delete(actor kernel.Actor) error {
	if _, err := o.fire(actor, TriggerDelete); err != nil {
		return err
	}

	o.removed = true
	o.record(Notice{Kind: NoticeOrderDeleted, To: AudienceCustomer})
	if o.executorID != 0 {
		o.record(Notice{Kind: NoticeOrderDeleted, To: AudienceExecutor, Executor: o.executorID})
	}
	return nil
}

// fire authorizes actor and asks the status whether t is legal. Nothing is mutated.
func (o *Order) fire(actor kernel.Actor, t Trigger) (Status, error) {
	if err := o.Validate(); err != nil {
		return Unknown, err
	}
	if o.removed {
		return Unknown, errs.NewObjectNotFoundError("order", strconv.FormatInt(o.id, 10))
	}
	if err := o.authorize(actor, t); err != nil {
		return Unknown, err
	}
	return o.status.Fire(t)
}

func (o *Order) authorize(actor kernel.Actor, t Trigger) error {
	switch t.performer() {
	case byOwner:
		if actor.ID != o.customer.ID {
			return fmt.Errorf("%w: %s is not the owner of order %d", ErrNotAuthorized, actor.ID, o.id)
		}
	case byLinkedExecutor:
		if o.executorID == 0 || actor.ID != o.executorID {
			return fmt.Errorf("%w: %s is not the executor of order %d", ErrNotAuthorized, actor.ID, o.id)
		}
	case byAdmin:
		if !actor.IsAdmin() {
			return fmt.Errorf("%w: %s is not an administrator", ErrNotAuthorized, actor.ID)
		}
	case bySystem:
	default:
		return fmt.Errorf("%w: %s has no performer", ErrNotAuthorized, t)
	}
	return nil
}

func (o *Order) record(n Notice) {
	o.notices = append(o.notices, n)
}

func (o *Order) setID(id int64) error {
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("order id", fmt.Errorf("%d is not greater than 0", id))
	}
	o.id = id
	return nil
}

func (o *Order) setCustomer(customer kernel.Actor) error {
	if err := customer.ID.Validate(); err != nil {
		return err
	}
	customer.Role = kernel.RoleCustomer
	o.customer = customer
	return nil
}
