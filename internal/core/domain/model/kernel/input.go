package kernel

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"studydesk/internal/pkg/errs"
)

const (
	// DateLayout is the canonical rendering of calendar dates, e.g. 05.06.2026.
	DateLayout = "02.01.2006"

	// dateInputLayout also accepts single digit day and month.
	dateInputLayout = "2.1.2006"
)

// ParseActorID parses a numeric chat user id typed by an administrator.
// Only digits are accepted; signs, spaces inside the number and letters are rejected.
func ParseActorID(raw string) (ActorID, error) {
	value := strings.TrimSpace(raw)
	if !isDigits(value) {
		return 0, errs.NewValueIsInvalidErrorWithCause("actor id", fmt.Errorf("%q is not a number", raw))
	}

	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause("actor id", err)
	}

	actorID := ActorID(id)
	if err = actorID.Validate(); err != nil {
		return 0, err
	}
	return actorID, nil
}

// ParseAmount parses a non-negative amount of roubles.
func ParseAmount(raw string) (int, error) {
	value := strings.TrimSpace(raw)
	if !isDigits(value) {
		return 0, errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%q is not a number", raw))
	}

	amount, err := strconv.Atoi(value)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause("amount", err)
	}
	return amount, nil
}

// ParseDate parses a calendar date written as DD.MM.YYYY.
func ParseDate(raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, errs.NewValueIsRequiredError("date")
	}

	date, err := time.Parse(dateInputLayout, value)
	if err != nil {
		return time.Time{}, errs.NewValueIsInvalidErrorWithCause(
			"date",
			fmt.Errorf("%q does not match %s", raw, DateLayout),
		)
	}
	return date, nil
}

// NormalizeDate parses raw and renders it in DateLayout.
func NormalizeDate(raw string) (string, error) {
	date, err := ParseDate(raw)
	if err != nil {
		return "", err
	}
	return date.Format(DateLayout), nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
