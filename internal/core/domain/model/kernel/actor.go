package kernel

import (
	"strconv"
	"strings"

	"studydesk/internal/pkg/errs"
)

// ActorID is a chat-platform numeric user identifier.
type ActorID int64

// Validate checks that the identifier refers to a real chat user.
func (id ActorID) Validate() error {
	if id <= 0 {
		return errs.NewValueIsRequiredError("actor id")
	}
	return nil
}

// Int64 returns the raw identifier.
func (id ActorID) Int64() int64 {
	return int64(id)
}

func (id ActorID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// Role is the part an actor plays in the order lifecycle.
type Role int

const (
	RoleUnknown Role = iota
	RoleCustomer
	RoleExecutor
	RoleAdmin
)

func (r Role) String() string {
	switch r {
	case RoleCustomer:
		return "customer"
	case RoleExecutor:
		return "executor"
	case RoleAdmin:
		return "admin"
	default:
		return "unknown"
	}
}

// Actor is the person behind an inbound chat event together with the role
// resolved for them. Names are captured as the chat platform reported them.
type Actor struct {
	ID        ActorID
	Role      Role
	Username  string
	FirstName string
	LastName  string
}

// FullName joins first and last name, falling back to "Без имени".
func (a Actor) FullName() string {
	name := strings.TrimSpace(strings.TrimSpace(a.FirstName) + " " + strings.TrimSpace(a.LastName))
	if name == "" {
		return "Без имени"
	}
	return name
}

// Mention renders the username as an @-mention, or a dash when there is none.
func (a Actor) Mention() string {
	if a.Username == "" {
		return "—"
	}
	return "@" + strings.TrimPrefix(a.Username, "@")
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}
