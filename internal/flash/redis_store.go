package flash

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/rueidis"
)

// maxPending bounds how many messages a single pop drains.
const maxPending = 64

type RedisStore struct {
	client rueidis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisStore(client rueidis.Client, keyPrefix string, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: keyPrefix,
		ttl:    ttl,
	}
}

func (r *RedisStore) key(sessionID string) string {
	return r.prefix + sessionID
}

func (r *RedisStore) Push(ctx context.Context, sessionID string, msg Message) error {
	if sessionID == "" {
		return ErrEmptySession
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode flash message: %w", err)
	}

	key := r.key(sessionID)
	seconds := int64(r.ttl / time.Second)
	if seconds < 1 {
		seconds = 1
	}

	for _, resp := range r.client.DoMulti(ctx,
		r.client.B().Rpush().Key(key).Element(string(payload)).Build(),
		r.client.B().Expire().Key(key).Seconds(seconds).Build(),
	) {
		if err := resp.Error(); err != nil {
			return err
		}
	}

	return nil
}

func (r *RedisStore) Pop(ctx context.Context, sessionID string) ([]Message, error) {
	if sessionID == "" {
		return []Message{}, nil
	}

	cmd := r.client.B().Lpop().Key(r.key(sessionID)).Count(maxPending).Build()
	raw, err := r.client.Do(ctx, cmd).AsStrSlice()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return []Message{}, nil
		}
		return nil, err
	}

	messages := make([]Message, 0, len(raw))
	for _, item := range raw {
		var msg Message
		if err := json.Unmarshal([]byte(item), &msg); err != nil {
			continue
		}
		messages = append(messages, msg)
	}

	return messages, nil
}
