package redisstore

import (
	"context"

	"github.com/go-redis/redis"
	"github.com/pkg/errors"
)

const keyPrefix = "snake:"

// RedisStore keeps high scores as plain integer keys in redis.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore will create a new instance of an underlying redis client, so it
// should not be re-created across goroutines.
//   - connectURL see: github.com/go-redis/redis/options.go for URL specifics
//
// The client is immediately tested for connectivity.
func NewRedisStore(connectURL string) (*RedisStore, error) {
	o, err := redis.ParseURL(connectURL)
	if err != nil {
		return nil, errors.Wrap(err, "unable to parse redis URL")
	}

	client := redis.NewClient(o)

	if err = client.Ping().Err(); err != nil {
		client.Close()
		return nil, errors.Wrap(err, "unable to connect")
	}

	return &RedisStore{client: client}, nil
}

// Get returns the value stored under key.
func (rs *RedisStore) Get(ctx context.Context, key string) (int, bool, error) {
	v, err := rs.client.WithContext(ctx).Get(keyPrefix + key).Int64()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, errors.Wrapf(err, "unable to get %s", key)
	}
	return int(v), true, nil
}

// Set stores value under key without expiry.
func (rs *RedisStore) Set(ctx context.Context, key string, value int) error {
	err := rs.client.WithContext(ctx).Set(keyPrefix+key, value, 0).Err()
	return errors.Wrapf(err, "unable to set %s", key)
}

// Close closes the underlying client.
func (rs *RedisStore) Close() error {
	return rs.client.Close()
}
