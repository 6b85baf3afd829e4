package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const DefaultKey = "notty:qtable"

type Redis struct {
	client *redis.Client
	key    string
}

// NewRedis connects to addr and checks the connection with a ping.
func NewRedis(ctx context.Context, addr, key string) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return NewRedisWithClient(client, key), nil
}

func NewRedisWithClient(client *redis.Client, key string) *Redis {
	if key == "" {
		key = DefaultKey
	}
	return &Redis{client: client, key: key}
}

func (r *Redis) Load(ctx context.Context) ([]byte, error) {
	data, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", r.key, err)
	}
	return data, nil
}

func (r *Redis) Save(ctx context.Context, data []byte) error {
	if err := r.client.Set(ctx, r.key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to set %s: %w", r.key, err)
	}
	return nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}
