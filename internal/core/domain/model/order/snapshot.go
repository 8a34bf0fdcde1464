package order

import (
	"errors"
	"fmt"
	"time"

	"studydesk/internal/core/domain/model/kernel"
	"studydesk/internal/pkg/errs"
)

// Snapshot is the complete persisted state of an order. Repositories map it to
// their own record format; nothing else should build one by hand.
type Snapshot struct {
	ID                   int64
	Customer             kernel.Actor
	CreatedAt            time.Time
	Details              Details
	Status               Status
	ExecutorID           kernel.ActorID
	Offer                *Offer
	FinalPrice           *int
	Payment              *PaymentSession
	PaymentProof         kernel.FileRef
	Submission           *Submission
	RevisionComment      string
	Cancellation         *Cancellation
	ExecutorCancellation *Cancellation
	StatusBeforeCancel   Status
	Version              int
}

// Snapshot copies the current state out of the aggregate.
func (o *Order) Snapshot() Snapshot {
	s := Snapshot{
		ID:                 o.id,
		Customer:           o.customer,
		CreatedAt:          o.createdAt,
		Details:            o.details,
		Status:             o.status,
		ExecutorID:         o.executorID,
		Offer:              o.Offer(),
		Payment:            o.Payment(),
		PaymentProof:       o.paymentProof,
		Submission:         o.Submission(),
		RevisionComment:    o.revisionComment,
		Cancellation:       o.Cancellation(),
		StatusBeforeCancel: o.statusBeforeCancel,
		Version:            o.version,
	}
	if price, ok := o.FinalPrice(); ok {
		s.FinalPrice = &price
	}
	s.ExecutorCancellation = o.ExecutorCancellation()
	return s
}

// Restore rebuilds an order from persisted state, checking the status and the
// executor and offer invariants.
func Restore(s Snapshot) (*Order, error) {
	o := &Order{
		createdAt:          s.CreatedAt,
		details:            s.Details,
		status:             s.Status,
		executorID:         s.ExecutorID,
		paymentProof:       s.PaymentProof,
		revisionComment:    s.RevisionComment,
		statusBeforeCancel: s.StatusBeforeCancel,
		version:            s.Version,
		isConstructed:      true,
	}

	if s.Offer != nil {
		offer := *s.Offer
		o.offer = &offer
	}
	if s.FinalPrice != nil {
		price := *s.FinalPrice
		o.finalPrice = &price
	}
	if s.Payment != nil {
		payment := *s.Payment
		o.payment = &payment
	}
	if s.Submission != nil {
		submission := *s.Submission
		o.submission = &submission
	}
	if s.Cancellation != nil {
		c := *s.Cancellation
		o.cancellation = &c
	}
	if s.ExecutorCancellation != nil {
		c := *s.ExecutorCancellation
		o.executorCancellation = &c
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setCustomer(s.Customer),
		s.Status.Validate(),
		s.Status.ValidateCanHaveExecutor(s.ExecutorID != 0),
		s.Status.ValidateCanHaveOffer(s.Offer != nil),
		validateStatusBeforeCancel(s.Status, s.StatusBeforeCancel),
	); err != nil {
		return nil, err
	}

	return o, nil
}

func validateStatusBeforeCancel(status, before Status) error {
	if status != CancelPending {
		return nil
	}
	// under_review only precedes cancel_pending in records kept by the older
	// bot, which parked pool cancellations for the administrator too.
	if !before.Can(TriggerCancel) {
		return errs.NewValueIsInvalidErrorWithCause(
			"status before cancel",
			fmt.Errorf("%s cannot precede %s", before, CancelPending),
		)
	}
	return nil
}
