package redis

import (
	"context"
	cacherepo "docserver/internal/repositories/cache"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const pkg = "redis/"

type Config struct {
	Addr     string
	Password string
	DB       int
}

type Client struct {
	rdb *redis.Client
}

func New(ctx context.Context, cfg Config) (*Client, error) {
	op := pkg + "New"

	client := &Client{
		rdb: redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
	}

	if err := client.rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%s: ping failed: %w", op, err)
	}

	return client, nil
}

func (c *Client) Close() error {
	return c.rdb.Close()
}

// result adapts a redis command to the cache repo contract: a missing key
// is an empty value, not an error.
type result[T any] struct {
	cmd redis.Cmder
	get func() (T, error)
}

func (r result[T]) Err() error {
	err := r.cmd.Err()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	return err
}

func (r result[T]) Result() (T, error) {
	res, err := r.get()
	if errors.Is(err, redis.Nil) {
		var zero T
		return zero, nil
	}

	return res, err
}

func (c *Client) Get(ctx context.Context, key string) cacherepo.CacheResponse[string] {
	cmd := c.rdb.Get(ctx, key)
	return result[string]{cmd: cmd, get: cmd.Result}
}

func (c *Client) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) cacherepo.CacheResponse[string] {
	cmd := c.rdb.Set(ctx, key, value, expiration)
	return result[string]{cmd: cmd, get: cmd.Result}
}

func (c *Client) Del(ctx context.Context, keys ...string) cacherepo.CacheResponse[int64] {
	cmd := c.rdb.Del(ctx, keys...)
	return result[int64]{cmd: cmd, get: cmd.Result}
}
