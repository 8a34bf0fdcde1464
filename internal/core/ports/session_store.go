package ports

import (
	"context"
	"time"

	"studydesk/internal/core/domain/model/kernel"
)

// Session is the in-flight state of one actor's gateway pipeline.
type Session struct {
	Flow      string                 `json:"flow"`
	Step      string                 `json:"step"`
	OrderID   int64                  `json:"order_id,omitempty"`
	Values    map[string]string      `json:"values,omitempty"`
	Files     map[string]SessionFile `json:"files,omitempty"`
	UpdatedAt time.Time              `json:"updated_at"`

	// OrderCreatedAt tells the order apart from any later one under the same id.
	OrderCreatedAt time.Time `json:"order_created_at,omitzero"`
}

// SessionFile is a file reference kept in a session.
type SessionFile struct {
	ID   string `json:"id"`
	Kind string `json:"kind"`
}

// SessionStore keeps at most one Session per actor.
type SessionStore interface {
	// Get returns the actor's session or errs.ObjectNotFoundError.
	Get(ctx context.Context, actor kernel.ActorID) (Session, error)
	Save(ctx context.Context, actor kernel.ActorID, session Session) error
	// Delete is a no-op when there is no session.
	Delete(ctx context.Context, actor kernel.ActorID) error
}
