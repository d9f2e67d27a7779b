package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix = "session:"
	userKeyPrefix    = "user_sessions:"
)

// RedisStore persists sessions in redis. Expiry is enforced by key TTL, so
// there is no janitor; a per-user set backs DeleteByUserID.
type RedisStore struct {
	client redis.UniversalClient
}

// NewRedisStore creates a redis-backed session store.
func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Create(ctx context.Context, session *Session) error {
	if session == nil || session.Token == "" {
		return ErrInvalidSession
	}

	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return ErrSessionExpired
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, sessionKeyPrefix+session.Token, payload, ttl)
	if session.UserID != nil {
		userKey := userKeyPrefix + session.UserID.String()
		pipe.SAdd(ctx, userKey, session.Token)
		pipe.ExpireAt(ctx, userKey, session.ExpiresAt)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}

	return nil
}

func (s *RedisStore) Get(ctx context.Context, token string) (*Session, error) {
	payload, err := s.client.Get(ctx, sessionKeyPrefix+token).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var session Session
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}

	if session.IsExpired() {
		_ = s.Delete(ctx, token)
		return nil, ErrSessionExpired
	}

	return &session, nil
}

func (s *RedisStore) UpdateActivity(ctx context.Context, token string, lastActivity time.Time) error {
	session, err := s.Get(ctx, token)
	if err != nil {
		return err
	}

	session.LastActivityAt = lastActivity

	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	// KeepTTL preserves the original expiry.
	if err := s.client.Set(ctx, sessionKeyPrefix+token, payload, redis.KeepTTL).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, token string) error {
	session, err := s.Get(ctx, token)
	if err == nil && session.UserID != nil {
		_ = s.client.SRem(ctx, userKeyPrefix+session.UserID.String(), token).Err()
	}

	if err := s.client.Del(ctx, sessionKeyPrefix+token).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (s *RedisStore) DeleteByUserID(ctx context.Context, userID string) error {
	userKey := userKeyPrefix + userID

	tokens, err := s.client.SMembers(ctx, userKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return fmt.Errorf("failed to list user sessions: %w", err)
	}

	keys := make([]string, 0, len(tokens)+1)
	for _, token := range tokens {
		keys = append(keys, sessionKeyPrefix+token)
	}
	keys = append(keys, userKey)

	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete user sessions: %w", err)
	}
	return nil
}
