package storage

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const (
	DefaultRedisKeyPrefix = "feedbackform:session:"
	DefaultRedisTimeout   = 3 * time.Second

	resetScanCount = 100
)

var _ fiber.Storage = (*Redis)(nil)

type Redis struct {
	client    redis.UniversalClient
	keyPrefix string
	timeout   time.Duration
}

func NewRedis(client redis.UniversalClient, keyPrefix string) *Redis {
	return &Redis{
		client:    client,
		keyPrefix: keyPrefix,
		timeout:   DefaultRedisTimeout,
	}
}

func (r *Redis) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), r.timeout)
}

func (r *Redis) Get(key string) ([]byte, error) {
	if key == "" {
		return nil, nil
	}
	ctx, cancel := r.ctx()
	defer cancel()

	val, err := r.client.Get(ctx, r.keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to get session from redis")
	}
	return val, nil
}

func (r *Redis) Set(key string, val []byte, exp time.Duration) error {
	if key == "" || len(val) == 0 {
		return nil
	}
	ctx, cancel := r.ctx()
	defer cancel()

	if err := r.client.Set(ctx, r.keyPrefix+key, val, exp).Err(); err != nil {
		return errors.Wrap(err, "failed to set session in redis")
	}
	return nil
}

func (r *Redis) Delete(key string) error {
	if key == "" {
		return nil
	}
	ctx, cancel := r.ctx()
	defer cancel()

	if err := r.client.Del(ctx, r.keyPrefix+key).Err(); err != nil {
		return errors.Wrap(err, "failed to delete session from redis")
	}
	return nil
}

// Reset deletes every key under the prefix. Keys of other applications
// sharing the database are left alone.
func (r *Redis) Reset() error {
	ctx, cancel := r.ctx()
	defer cancel()

	iter := r.client.Scan(ctx, 0, r.keyPrefix+"*", resetScanCount).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return errors.Wrap(err, "failed to scan sessions in redis")
	}
	if len(keys) == 0 {
		return nil
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return errors.Wrap(err, "failed to delete sessions from redis")
	}
	return nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}
