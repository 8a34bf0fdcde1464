package kernel

import (
	"fmt"

	"studydesk/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed is returned when validating a zero UUID.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError("UUID must be created via NewUUID or UUIDFromString")

// UUID identifies payment sessions and inbound chat events.
// It wraps google/uuid so the rest of the domain never touches the library
// type directly.
//
// The zero value is invalid. Create one with NewUUID or UUIDFromString.
//
// Example usage:
//
//	session := kernel.NewUUID()
//	same, _ := kernel.UUIDFromString(session.String())
//	if session.IsEqual(same) {
//	    // round trip through text keeps the value
//	}
type UUID struct {
	id uuid.UUID
}

// NewUUID generates a random (version 4) UUID.
func NewUUID() UUID {
	return UUID{id: uuid.New()}
}

// UUIDFromString parses the canonical, braced or urn-prefixed form.
//
// Example:
//
//	id, err := kernel.UUIDFromString("550e8400-e29b-41d4-a716-446655440000")
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}

	parsed := UUID{id: id}
	if err = parsed.Validate(); err != nil {
		return UUID{}, err
	}
	return parsed, nil
}

// String returns the canonical lowercase form,
// e.g. "550e8400-e29b-41d4-a716-446655440000".
func (u UUID) String() string {
	return u.id.String()
}

// Bytes exposes the wrapped google/uuid value.
func (u UUID) Bytes() uuid.UUID {
	return u.id
}

// IsEqual reports whether both values hold the same id. Two zero values are
// equal.
func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

func (u UUID) IsZero() bool {
	return u.id == uuid.Nil
}

// Validate returns ErrUUIDIsNotConstructed for the zero value.
//
// Used by command constructors:
//
//	if err := sessionID.Validate(); err != nil {
//	    return Command{}, err
//	}
func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}
