package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionStore tracks issued tokens so logout and blocked-account
// revocation take effect before the JWT expires. Keys:
//
//	session:<token_id>        → user id
//	session_user:<user_id>    → set of the user's live token ids
type SessionStore struct {
	client *redis.Client
}

func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

func (s *SessionStore) Save(ctx context.Context, tokenID, userID string, ttl time.Duration) error {
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.key(tokenID), userID, ttl)
	pipe.SAdd(ctx, s.userKey(userID), tokenID)
	pipe.Expire(ctx, s.userKey(userID), ttl)
	_, err := pipe.Exec(ctx)
	return err
}

// UserID resolves the session owner. A missing session returns ("", nil).
func (s *SessionStore) UserID(ctx context.Context, tokenID string) (string, error) {
	val, err := s.client.Get(ctx, s.key(tokenID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("session lookup: %w", err)
	}
	return val, nil
}

func (s *SessionStore) Delete(ctx context.Context, tokenID string) error {
	userID, err := s.UserID(ctx, tokenID)
	if err != nil {
		return err
	}
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, s.key(tokenID))
	if userID != "" {
		pipe.SRem(ctx, s.userKey(userID), tokenID)
	}
	_, err = pipe.Exec(ctx)
	return err
}

// DeleteByUser drops every session in the user's index set, then the set
// itself.
func (s *SessionStore) DeleteByUser(ctx context.Context, userID string) error {
	tokenIDs, err := s.client.SMembers(ctx, s.userKey(userID)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("session index lookup: %w", err)
	}
	keys := make([]string, 0, len(tokenIDs)+1)
	for _, id := range tokenIDs {
		keys = append(keys, s.key(id))
	}
	keys = append(keys, s.userKey(userID))
	return s.client.Del(ctx, keys...).Err()
}

func (s *SessionStore) key(tokenID string) string {
	return "session:" + tokenID
}

func (s *SessionStore) userKey(userID string) string {
	return "session_user:" + userID
}
