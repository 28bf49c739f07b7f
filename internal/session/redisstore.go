// ABOUTME: Redis-backed session store shared by every console on a workstation pool
// ABOUTME: Publishes change events so other processes can re-validate

package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// DefaultRedisPrefix namespaces the session keys
const DefaultRedisPrefix = "moto-admin:session"

// RedisStore keeps the token and profile in two keys and announces writes on a channel
type RedisStore struct {
	rdb      *redis.Client
	prefix   string
	instance string
}

// NewRedisStore connects using a redis:// URL
func NewRedisStore(ctx context.Context, url, prefix string) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return newRedisStore(rdb, prefix), nil
}

func newRedisStore(rdb *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisStore{rdb: rdb, prefix: prefix, instance: uuid.NewString()}
}

func (s *RedisStore) tokenKey() string { return s.prefix + ":token" }
func (s *RedisStore) userKey() string  { return s.prefix + ":user" }
func (s *RedisStore) channel() string  { return s.prefix + ":events" }

func (s *RedisStore) Load(ctx context.Context) (Snapshot, error) {
	vals, err := s.rdb.MGet(ctx, s.tokenKey(), s.userKey()).Result()
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to read session from redis: %w", err)
	}

	var snap Snapshot
	if token, ok := vals[0].(string); ok {
		snap.Token = token
	}
	if raw, ok := vals[1].(string); ok && raw != "" {
		var u User
		if err := json.Unmarshal([]byte(raw), &u); err == nil {
			snap.User = &u
		}
	}
	return snap, nil
}

func (s *RedisStore) Save(ctx context.Context, snap Snapshot) error {
	user := []byte{}
	if snap.User != nil {
		var err error
		if user, err = json.Marshal(snap.User); err != nil {
			return fmt.Errorf("unable to encode user: %w", err)
		}
	}

	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.tokenKey(), snap.Token, 0)
		pipe.Set(ctx, s.userKey(), string(user), 0)
		pipe.Publish(ctx, s.channel(), s.instance)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to write session to redis: %w", err)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, s.tokenKey(), s.userKey())
		pipe.Publish(ctx, s.channel(), s.instance)
		return nil
	})
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("failed to clear session in redis: %w", err)
	}
	return nil
}

// Watch subscribes to the events channel and ignores this instance's own writes
func (s *RedisStore) Watch(ctx context.Context) (<-chan struct{}, error) {
	sub := s.rdb.Subscribe(ctx, s.channel())
	if _, err := sub.Receive(ctx); err != nil {
		sub.Close()
		return nil, fmt.Errorf("failed to subscribe to session events: %w", err)
	}

	out := make(chan struct{}, 1)
	msgs := sub.Channel()
	go func() {
		defer close(out)
		defer sub.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				if msg.Payload == s.instance {
					continue
				}
				select {
				case out <- struct{}{}:
				default:
				}
			}
		}
	}()
	return out, nil
}

// Close releases the redis connection pool
func (s *RedisStore) Close() error {
	return s.rdb.Close()
}
