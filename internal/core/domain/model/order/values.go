package order

import (
	"fmt"
	"strings"
	"time"

	"studydesk/internal/core/domain/model/kernel"
	"studydesk/internal/pkg/errs"
)

// Details are the descriptive fields collected during intake.
// Optional artifacts are zero kernel.FileRef values when absent.
type Details struct {
	Group      string
	University string
	Teacher    string
	Gradebook  string
	Subject    string
	WorkType   string
	Guidelines kernel.FileRef
	TaskFile   kernel.FileRef
	TaskText   string
	Example    kernel.FileRef
	Deadline   string
	Comments   string
}

func (d Details) HasGuidelines() bool {
	return !d.Guidelines.IsZero()
}

func (d Details) HasTask() bool {
	return !d.TaskFile.IsZero() || strings.TrimSpace(d.TaskText) != ""
}

func (d Details) HasExample() bool {
	return !d.Example.IsZero()
}

// Missing lists the required fields that are still empty.
func (d Details) Missing() []string {
	var missing []string
	required := []struct {
		name  string
		value string
	}{
		{"group", d.Group},
		{"university", d.University},
		{"teacher", d.Teacher},
		{"gradebook", d.Gradebook},
		{"subject", d.Subject},
		{"work type", d.WorkType},
		{"deadline", d.Deadline},
	}
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			missing = append(missing, field.name)
		}
	}
	if !d.HasTask() {
		missing = append(missing, "task")
	}
	return missing
}

// ValidateComplete returns a ValueIsRequiredError naming every missing field.
func (d Details) ValidateComplete() error {
	if missing := d.Missing(); len(missing) > 0 {
		return errs.NewValueIsRequiredErrorWithCause(
			"order details",
			fmt.Errorf("missing %s", strings.Join(missing, ", ")),
		)
	}
	return nil
}

// Terms are the price, deadline and comment proposed for doing the work.
type Terms struct {
	Price    int
	Deadline string
	Comment  string
}

func NewTerms(price int, deadline, comment string) (Terms, error) {
	if price < 0 {
		return Terms{}, errs.NewValueIsOutOfRangeError("price", price, 0, "unbounded")
	}
	if strings.TrimSpace(deadline) == "" {
		return Terms{}, errs.NewValueIsRequiredError("deadline")
	}
	return Terms{
		Price:    price,
		Deadline: strings.TrimSpace(deadline),
		Comment:  strings.TrimSpace(comment),
	}, nil
}

// Offer is an executor's proposal waiting for or accepted by the administrator.
type Offer struct {
	Terms
	ExecutorID       kernel.ActorID
	ExecutorUsername string
	ExecutorFullName string
}

func newOffer(executor kernel.Actor, terms Terms) *Offer {
	return &Offer{
		Terms:            terms,
		ExecutorID:       executor.ID,
		ExecutorUsername: executor.Username,
		ExecutorFullName: executor.FullName(),
	}
}

// PaymentSession is a time-boxed payment reference handed to the customer.
type PaymentSession struct {
	ID        kernel.UUID
	URL       string
	StartedAt time.Time
	ExpiresAt time.Time
}

func NewPaymentSession(id kernel.UUID, url string, startedAt time.Time, ttl time.Duration) (PaymentSession, error) {
	if err := id.Validate(); err != nil {
		return PaymentSession{}, err
	}
	if strings.TrimSpace(url) == "" {
		return PaymentSession{}, errs.NewValueIsRequiredError("payment url")
	}
	if ttl <= 0 {
		return PaymentSession{}, errs.NewValueIsOutOfRangeError("payment ttl", ttl, "0s", "unbounded")
	}
	return PaymentSession{
		ID:        id,
		URL:       url,
		StartedAt: startedAt,
		ExpiresAt: startedAt.Add(ttl),
	}, nil
}

// ExpiredAt reports whether the session is over at the given moment.
func (p PaymentSession) ExpiredAt(now time.Time) bool {
	return !now.Before(p.ExpiresAt)
}

// Submission is the work delivered by the executor.
type Submission struct {
	File        kernel.FileRef
	SubmittedAt time.Time
}

// Cancellation is a structured reason for a customer cancellation or an
// executor withdrawal: an entry from the catalogue, or OtherOption with a
// mandatory comment.
type Cancellation struct {
	Reason  string
	Comment string
}

func NewCancellation(reason, comment string) (Cancellation, error) {
	reason = strings.TrimSpace(reason)
	comment = strings.TrimSpace(comment)

	if reason == "" {
		return Cancellation{}, errs.NewValueIsRequiredError("cancellation reason")
	}
	if reason == OtherOption && comment == "" {
		return Cancellation{}, errs.NewValueIsRequiredErrorWithCause(
			"cancellation comment",
			fmt.Errorf("reason %q needs a comment", OtherOption),
		)
	}
	return Cancellation{Reason: reason, Comment: comment}, nil
}

// Text renders the reason for messages: the comment when the reason is "other".
func (c Cancellation) Text() string {
	switch {
	case c.Reason == OtherOption && c.Comment != "":
		return c.Comment
	case c.Comment != "":
		return c.Reason + " (" + c.Comment + ")"
	default:
		return c.Reason
	}
}
