// Package assistant exposes the tool-calling surface the external chat
// collaborator drives: a registry of invocable tools plus per-session
// conversation history. Session state is keyed by an explicit session
// identifier and held in Redis; there are no process-wide globals.
package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Message is one entry in a session's conversation history.
type Message struct {
	Role    string    `json:"role"` // "user", "model", or "tool"
	Content string    `json:"content"`
	At      time.Time `json:"at"`
}

// SessionStore records conversation history per session.
type SessionStore interface {
	Append(ctx context.Context, sessionID string, msg Message) error
	History(ctx context.Context, sessionID string) ([]Message, error)
}

// RedisSessionStore keeps session history in Redis lists with a TTL.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSessionStore constructs a RedisSessionStore.
func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{client: client, ttl: ttl}
}

func sessionKey(sessionID string) string {
	return "assistant:session:" + sessionID
}

// Append pushes a message onto the session's history and refreshes its
// TTL.
func (s *RedisSessionStore) Append(ctx context.Context, sessionID string, msg Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}
	key := sessionKey(sessionID)
	pipe := s.client.TxPipeline()
	pipe.RPush(ctx, key, payload)
	pipe.Expire(ctx, key, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("append session message: %w", err)
	}
	return nil
}

// History returns the session's messages in order.
func (s *RedisSessionStore) History(ctx context.Context, sessionID string) ([]Message, error) {
	raw, err := s.client.LRange(ctx, sessionKey(sessionID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("load session history: %w", err)
	}
	msgs := make([]Message, 0, len(raw))
	for _, item := range raw {
		var msg Message
		if err := json.Unmarshal([]byte(item), &msg); err != nil {
			return nil, fmt.Errorf("unmarshal session message: %w", err)
		}
		msgs = append(msgs, msg)
	}
	return msgs, nil
}
