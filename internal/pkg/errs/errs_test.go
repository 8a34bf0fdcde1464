package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"studydesk/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMessages(t *testing.T) {
	errDisk := errors.New("disk full")

	tests := []struct {
		name     string
		err      error
		sentinel error
		message  string
	}{
		{
			name:     "order not found",
			err:      errs.NewObjectNotFoundError("order", "17"),
			sentinel: errs.ErrObjectNotFound,
			message:  "object not found: 17",
		},
		{
			name:     "order not found with cause",
			err:      errs.NewObjectNotFoundErrorWithCause("order", "17", errDisk),
			sentinel: errs.ErrObjectNotFound,
			message:  "object not found: param is: order, ID is: 17 (cause: disk full)",
		},
		{
			name:     "numeric id",
			err:      errs.NewObjectNotFoundError("order", 17),
			sentinel: errs.ErrObjectNotFound,
			message:  "object not found: 17",
		},
		{
			name:     "order id",
			err:      errs.NewObjectNotFoundErrorWithCause("order", int64(5), errors.New("deleted")),
			sentinel: errs.ErrObjectNotFound,
			message:  "object not found: param is: order, ID is: 5 (cause: deleted)",
		},
		{
			name:     "invalid deadline",
			err:      errs.NewValueIsInvalidError("deadline"),
			sentinel: errs.ErrValueIsInvalid,
			message:  "value is invalid: deadline",
		},
		{
			name:     "invalid deadline with cause",
			err:      errs.NewValueIsInvalidErrorWithCause("deadline", errors.New("want DD.MM.YYYY")),
			sentinel: errs.ErrValueIsInvalid,
			message:  "value is invalid: deadline (cause: want DD.MM.YYYY)",
		},
		{
			name:     "file too large",
			err:      errs.NewValueIsOutOfRangeError("file size", 20, 0, 15),
			sentinel: errs.ErrValueIsOutOfRange,
			message:  "value is invalid: 20 is file size, min value is 0, max value is 15",
		},
		{
			name:     "negative price with cause",
			err:      errs.NewValueIsOutOfRangeErrorWithCause("price", -5, 0, "unbounded", errors.New("typed by admin")),
			sentinel: errs.ErrValueIsOutOfRange,
			message:  "value is invalid: -5 is price, min value is 0, max value is unbounded (cause: typed by admin)",
		},
		{
			name:     "missing comment",
			err:      errs.NewValueIsRequiredError("comment"),
			sentinel: errs.ErrValueIsRequired,
			message:  "value is required: comment",
		},
		{
			name:     "missing comment with cause",
			err:      errs.NewValueIsRequiredErrorWithCause("comment", errors.New("reason is other")),
			sentinel: errs.ErrValueIsRequired,
			message:  "value is required: comment (cause: reason is other)",
		},
		{
			name:     "stale version",
			err:      errs.NewVersionIsInvalidError("order"),
			sentinel: errs.ErrVersionIsInvalid,
			message:  "version is invalid: order",
		},
		{
			name:     "stale version with cause",
			err:      errs.NewVersionIsInvalidErrorWithCause("order", errors.New("expected version 3")),
			sentinel: errs.ErrVersionIsInvalid,
			message:  "version is invalid: order (cause: expected version 3)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.message, tt.err.Error())
			require.ErrorIs(t, tt.err, tt.sentinel)
			assert.Equal(t, tt.sentinel, errors.Unwrap(tt.err))
		})
	}
}

func TestOutOfRangeFields(t *testing.T) {
	err := errs.NewValueIsOutOfRangeError("days", 0, 1, 365)

	assert.Equal(t, "days", err.ParamName)
	assert.Equal(t, 0, err.Value)
	assert.Equal(t, 1, err.Min)
	assert.Equal(t, 365, err.Max)
	assert.NoError(t, err.Cause)
}

func TestOutOfRangeKeepsMessageOnOneLine(t *testing.T) {
	err := errs.NewValueIsOutOfRangeError("comment", "first\nsecond", 0, 10)

	assert.Contains(t, err.Error(), "first second")
	assert.NotContains(t, err.Error(), "\n")
}

func TestSentinelMessages(t *testing.T) {
	assert.EqualError(t, errs.ErrObjectNotFound, "object not found")
	assert.EqualError(t, errs.ErrValueIsInvalid, "value is invalid")
	assert.EqualError(t, errs.ErrValueIsOutOfRange, "value is out of range")
	assert.EqualError(t, errs.ErrValueIsRequired, "value is required")
	assert.EqualError(t, errs.ErrVersionIsInvalid, "version is invalid")
}

func TestCauseMatching(t *testing.T) {
	errRefused := errors.New("transition is not allowed")

	t.Run("invalid value matches its cause", func(t *testing.T) {
		err := errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("under_review: %w", errRefused))

		require.ErrorIs(t, err, errRefused)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("not found matches its cause", func(t *testing.T) {
		err := errs.NewObjectNotFoundErrorWithCause("order", 3, errRefused)

		require.ErrorIs(t, err, errRefused)
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("without cause only the sentinel matches", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("status")

		assert.NotErrorIs(t, err, errRefused)
	})
}

func TestIsValidation(t *testing.T) {
	assert.True(t, errs.IsValidation(errs.NewValueIsInvalidError("price")))
	assert.True(t, errs.IsValidation(errs.NewValueIsRequiredError("comment")))
	assert.True(t, errs.IsValidation(errs.NewValueIsOutOfRangeError("size", 20, 0, 15)))
	assert.True(t, errs.IsValidation(fmt.Errorf("step: %w", errs.NewValueIsInvalidError("date"))))
	assert.False(t, errs.IsValidation(errs.NewObjectNotFoundError("order", 5)))
	assert.False(t, errs.IsValidation(errs.NewVersionIsInvalidError("order")))
	assert.False(t, errs.IsValidation(errors.New("disk full")))
	assert.False(t, errs.IsValidation(nil))
}
