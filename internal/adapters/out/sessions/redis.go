package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"studydesk/internal/core/domain/model/kernel"
	"studydesk/internal/core/ports"
	"studydesk/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "studydesk:session:"

// RedisStore is a ports.SessionStore keeping one JSON value per actor.
// Every Save renews the TTL, so only abandoned sessions expire.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Get(ctx context.Context, actor kernel.ActorID) (ports.Session, error) {
	data, err := s.client.Get(ctx, key(actor)).Bytes()
	if errors.Is(err, redis.Nil) {
		return ports.Session{}, errs.NewObjectNotFoundError("session", actor.Int64())
	}
	if err != nil {
		return ports.Session{}, fmt.Errorf("get session %s: %w", actor, err)
	}

	var session ports.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return ports.Session{}, errs.NewObjectNotFoundErrorWithCause("session", actor.Int64(), err)
	}
	return session, nil
}

func (s *RedisStore) Save(ctx context.Context, actor kernel.ActorID, session ports.Session) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", actor, err)
	}
	if err := s.client.Set(ctx, key(actor), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("save session %s: %w", actor, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, actor kernel.ActorID) error {
	if err := s.client.Del(ctx, key(actor)).Err(); err != nil {
		return fmt.Errorf("delete session %s: %w", actor, err)
	}
	return nil
}

func key(actor kernel.ActorID) string {
	return keyPrefix + actor.String()
}
