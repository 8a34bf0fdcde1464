package commands

import (
	"errors"
	"time"

	"studydesk/internal/pkg/guard"
)

var ErrExpirePaymentSessionsCommandIsNotConstructed = errors.New(
	"ExpirePaymentSessionsCommand must be created via NewExpirePaymentSessionsCommand constructor",
)

// ExpirePaymentSessionsCommand closes every payment session whose window is
// over at the given moment. It is fired by the sweep job.
type ExpirePaymentSessionsCommand struct {
	at    time.Time
	guard guard.ConstructorGuard
}

// NewExpirePaymentSessionsCommand never fails: any moment is a valid
// sweep time.
func NewExpirePaymentSessionsCommand(at time.Time) ExpirePaymentSessionsCommand {
	return ExpirePaymentSessionsCommand{
		at:    at,
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c ExpirePaymentSessionsCommand) Validate() error {
	return c.guard.Validate(ErrExpirePaymentSessionsCommandIsNotConstructed)
}

func (c ExpirePaymentSessionsCommand) At() time.Time {
	return c.at
}
