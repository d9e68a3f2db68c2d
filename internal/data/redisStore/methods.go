package redisStore

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

func (s *Store) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return s.client.Set(ctx, key, value, expiration).Err()
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	return s.client.Get(ctx, key).Result()
}

func (s *Store) Del(ctx context.Context, keys ...string) error {
	return s.client.Del(ctx, keys...).Err()
}

func (s *Store) IsNil(err error) bool {
	return errors.Is(err, redis.Nil)
}

func (s *Store) Exists(ctx context.Context, key string) (bool, error) {
	count, err := s.client.Exists(ctx, key).Result()
	return count > 0, err
}

// ScanKeys walks the keyspace for keys under the given match pattern.
func (s *Store) ScanKeys(ctx context.Context, match string) ([]string, error) {
	var keys []string
	var cursor uint64
	for {
		batch, next, err := s.client.Scan(ctx, cursor, match, 100).Result()
		if err != nil {
			return nil, err
		}
		keys = append(keys, batch...)
		cursor = next
		if cursor == 0 {
			return keys, nil
		}
	}
}

const watchUpdateRetries = 5

// WatchUpdate applies a read-modify-write to one key under an optimistic
// WATCH transaction. apply receives the current value ("" when the key is
// absent) and returns the replacement. The transaction is retried when a
// concurrent writer touched the key first.
func (s *Store) WatchUpdate(ctx context.Context, key string, expiration time.Duration, apply func(current string, exists bool) (string, error)) error {
	update := func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, key).Result()
		exists := true
		if errors.Is(err, redis.Nil) {
			current, exists = "", false
		} else if err != nil {
			return err
		}

		next, err := apply(current, exists)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, next, expiration)
			return nil
		})
		return err
	}

	var err error
	for i := 0; i < watchUpdateRetries; i++ {
		err = s.client.Watch(ctx, update, key)
		if !errors.Is(err, redis.TxFailedErr) {
			return err
		}
	}
	return err
}
