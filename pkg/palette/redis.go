package palette

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps the palette as one JSON array under a key.
type RedisStore struct {
	base
	client *redis.Client
	key    string
}

// NewRedisStore connects to the Redis server at addr and pings it.
func NewRedisStore(ctx context.Context, addr, key string, logger *log.Logger) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	err := retryWithBackoff(ctx, func() error {
		return retryable(client.Ping(ctx).Err())
	})
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("connect to redis at %s: %w", addr, err)
	}
	return newRedisStore(client, key, logger), nil
}

func newRedisStore(client *redis.Client, key string, logger *log.Logger) *RedisStore {
	if key == "" {
		key = DefaultKey
	}
	s := &RedisStore{client: client, key: key}
	s.init("redis", s, logger)
	return s
}

func (s *RedisStore) Close() error { return s.client.Close() }

func (s *RedisStore) read(ctx context.Context) ([]Entry, error) {
	raw, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, errNoPalette
	}
	if err != nil {
		return nil, err
	}

	var entries []Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.key, err)
	}
	return entries, nil
}

func (s *RedisStore) write(ctx context.Context, entries []Entry) error {
	if entries == nil {
		entries = []Entry{}
	}
	raw, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key, raw, 0).Err()
}

var _ Store = (*RedisStore)(nil)
