package jsonstore

import (
	"bytes"
	"cmp"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"studydesk/internal/core/domain/model/order"
)

// LegacyDateLayout is how the older bot wrote creation_date, in local time.
const LegacyDateLayout = "02.01.2006 15:04"

// legacyNoUsername is what the older bot stored for customers without a username.
const legacyNoUsername = "N/A"

// CreationDate is written as RFC 3339 and read in either RFC 3339 or
// LegacyDateLayout.
type CreationDate struct {
	time.Time
}

func (d CreationDate) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Time)
}

func (d *CreationDate) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("creation_date: %w", err)
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		d.Time = t
		return nil
	}
	t, err := time.ParseInLocation(LegacyDateLayout, raw, time.Local)
	if err != nil {
		return fmt.Errorf("creation_date %q: %w", raw, err)
	}
	d.Time = t
	return nil
}

// Amount is a price in roubles. The older bot stored prices typed by hand as
// strings, so a quoted number is accepted too.
type Amount int

func (a *Amount) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*a = Amount(n)
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("amount: %w", err)
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("amount %q: %w", raw, err)
	}
	*a = Amount(n)
	return nil
}

func amountPtr(p *int) *Amount {
	if p == nil {
		return nil
	}
	a := Amount(*p)
	return &a
}

func intPtr(a *Amount) *int {
	if a == nil {
		return nil
	}
	n := int(*a)
	return &n
}

// parseStatus accepts a state tag or, for older records, the status label
// without its emoji, e.g. "Ожидает оплаты".
func parseStatus(value string) (order.Status, error) {
	status, err := order.ParseStatus(value)
	if err == nil {
		return status, nil
	}

	for s := order.Editing; s <= order.CancelPending; s++ {
		if _, text, ok := strings.Cut(s.Label(), " "); ok && text == strings.TrimSpace(value) {
			return s, nil
		}
	}
	return order.Unknown, err
}

// reasonText renders a cancellation the way a person would write it.
func reasonText(c *order.Cancellation) string {
	switch {
	case c.Comment == "":
		return c.Reason
	case c.Reason == order.OtherOption:
		return c.Comment
	default:
		return c.Reason + ": " + c.Comment
	}
}

// toCancellation prefers the structured details. Free text that is not a
// catalogue entry becomes an OtherOption comment.
func toCancellation(text string, details *ReasonRecord, catalogue []string) *order.Cancellation {
	if details != nil {
		return &order.Cancellation{Reason: details.Reason, Comment: details.Comment}
	}

	text = strings.TrimSpace(text)
	switch {
	case text == "":
		return nil
	case slices.Contains(catalogue, text):
		return &order.Cancellation{Reason: text}
	default:
		return &order.Cancellation{Reason: order.OtherOption, Comment: text}
	}
}

// upgrade rewrites fields kept by the older bot into the current layout in
// place. Records already in the current layout are left as they are.
func (r *OrderRecord) upgrade() {
	if status, err := parseStatus(r.Status); err == nil {
		// The older bot used one label for both waiting on the executor and
		// waiting on the administrator to approve the offer.
		if status == order.ExecutorAssigned && r.ExecutorOffer != nil {
			status = order.AwaitingAdminApproval
		}
		r.Status = status.String()
	}
	if r.Status == order.CancelPending.String() && r.StatusBeforeCancel == "" {
		r.StatusBeforeCancel = legacyStatusBeforeCancel(*r).String()
	}

	r.Group = cmp.Or(r.Group, r.LegacyGroup)
	r.University = cmp.Or(r.University, r.LegacyUniversity)
	r.Teacher = cmp.Or(r.Teacher, r.LegacyTeacher)
	r.Guidelines = cmp.Or(r.Guidelines, r.LegacyGuidelines)
	r.Task = cmp.Or(r.Task, r.LegacyTask)
	r.Example = cmp.Or(r.Example, r.LegacyExample)
	r.LegacyGroup, r.LegacyUniversity, r.LegacyTeacher = "", "", ""
	r.LegacyGuidelines, r.LegacyTask, r.LegacyExample = nil, nil, nil

	if r.Username == legacyNoUsername {
		r.Username = ""
	}
}

// legacyStatusBeforeCancel guesses where a cancel_pending record without
// status_before_cancel came from, using what is linked to it.
func legacyStatusBeforeCancel(r OrderRecord) order.Status {
	switch {
	case r.FinalPrice != nil:
		return order.AwaitingPayment
	case r.ExecutorOffer != nil:
		return order.AwaitingAdminApproval
	case r.ExecutorID != 0:
		return order.ExecutorAssigned
	default:
		return order.UnderReview
	}
}
