// Package sessions keeps the in-flight gateway state of each chat user.
// MemoryStore suits a single process; RedisStore survives restarts and is
// shared between replicas.
package sessions

import (
	"context"
	"maps"
	"sync"

	"studydesk/internal/core/domain/model/kernel"
	"studydesk/internal/core/ports"
	"studydesk/internal/pkg/errs"
)

// MemoryStore is a ports.SessionStore backed by a map.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[kernel.ActorID]ports.Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[kernel.ActorID]ports.Session)}
}

func (s *MemoryStore) Get(_ context.Context, actor kernel.ActorID) (ports.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[actor]
	if !ok {
		return ports.Session{}, errs.NewObjectNotFoundError("session", actor.Int64())
	}
	return clone(session), nil
}

func (s *MemoryStore) Save(_ context.Context, actor kernel.ActorID, session ports.Session) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[actor] = clone(session)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, actor kernel.ActorID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, actor)
	return nil
}

// clone copies the maps so callers never share them with the store.
func clone(s ports.Session) ports.Session {
	s.Values = maps.Clone(s.Values)
	s.Files = maps.Clone(s.Files)
	return s
}
