package replay

import (
	"context"
	"fmt"
	"strconv"

	"github.com/go-redis/redis/v8"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// RedisStore keeps a ring of JSON encoded values in Redis. Slot k lives at
// "<namespace>:<k>" and "<namespace>:head" counts every value ever pushed.
type RedisStore[T any] struct {
	client    redis.UniversalClient
	namespace string
	capacity  int
	logger    zerolog.Logger
}

// NewRedisStore creates a store of capacity values under namespace.
func NewRedisStore[T any](client redis.UniversalClient, namespace string, capacity int, logger zerolog.Logger) *RedisStore[T] {
	if capacity <= 0 {
		panic("replay: redis store capacity must be positive")
	}
	return &RedisStore[T]{
		client:    client,
		namespace: namespace,
		capacity:  capacity,
		logger:    logger.With().Str("namespace", namespace).Logger(),
	}
}

// DialRedis connects to a single Redis server and checks it answers.
func DialRedis(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, errors.Wrapf(err, "Could not reach redis at %s", addr)
	}
	return client, nil
}

func (s *RedisStore[T]) key(slot int) string {
	return s.namespace + ":" + strconv.Itoa(slot)
}

func (s *RedisStore[T]) headKey() string {
	return s.namespace + ":head"
}

func (s *RedisStore[T]) head(ctx context.Context) (int, error) {
	n, err := s.client.Get(ctx, s.headKey()).Int()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, errors.Wrap(err, "Could not read ring head")
	}
	return n, nil
}

func (s *RedisStore[T]) Push(ctx context.Context, values ...T) error {
	for _, v := range values {
		data, err := json.Marshal(v)
		if err != nil {
			return errors.Wrap(err, "Could not encode sample")
		}
		n, err := s.client.Incr(ctx, s.headKey()).Result()
		if err != nil {
			return errors.Wrap(err, "Could not advance ring head")
		}
		slot := int((n - 1) % int64(s.capacity))
		if err := s.client.Set(ctx, s.key(slot), data, 0).Err(); err != nil {
			return errors.Wrap(err, fmt.Sprintf("Could not store sample in slot %d", slot))
		}
		s.logger.Debug().Int64("count", n).Int("slot", slot).Msg("sample stored")
	}
	return nil
}

func (s *RedisStore[T]) Len(ctx context.Context) (int, error) {
	n, err := s.head(ctx)
	if err != nil {
		return 0, err
	}
	return min(n, s.capacity), nil
}

func (s *RedisStore[T]) Get(ctx context.Context, i int) (T, error) {
	var v T
	n, err := s.head(ctx)
	if err != nil {
		return v, err
	}
	size := min(n, s.capacity)
	if i < 0 || i >= size {
		return v, fmt.Errorf("index %d out of range [0, %d)", i, size)
	}
	slot := (n - size + i) % s.capacity
	data, err := s.client.Get(ctx, s.key(slot)).Bytes()
	if err == redis.Nil {
		return v, fmt.Errorf("Sample for key: %s is not found", s.key(slot))
	} else if err != nil {
		return v, errors.Wrap(err, "Could not load sample")
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return v, errors.Wrap(err, "Could not decode sample")
	}
	return v, nil
}

func (s *RedisStore[T]) Clear(ctx context.Context) error {
	keys := make([]string, 0, s.capacity+1)
	keys = append(keys, s.headKey())
	for slot := range s.capacity {
		keys = append(keys, s.key(slot))
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return errors.Wrap(err, "Could not clear ring")
	}
	s.logger.Info().Msg("ring cleared")
	return nil
}
