package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/framewright/framewright/pkg/errors"
	"github.com/framewright/framewright/pkg/frame"
)

// redisKeyPrefix namespaces assembly keys in a shared Redis.
const redisKeyPrefix = "framewright:assembly:"

// RedisConfig configures a Redis-backed store.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int

	// TTL expires stored assemblies after the given duration.
	// Zero means no expiry.
	TTL time.Duration
}

// RedisStore persists assemblies in Redis as JSON values.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis %s: %w", cfg.Addr, err)
	}
	return &RedisStore{client: client, ttl: cfg.TTL}, nil
}

func redisKey(id string) string {
	return redisKeyPrefix + id
}

func (s *RedisStore) Save(ctx context.Context, a *frame.Assembly) error {
	data, err := frame.Marshal(a)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStoreWrite, err, "marshal assembly %s", a.ID)
	}
	if err := s.client.Set(ctx, redisKey(a.ID), data, s.ttl).Err(); err != nil {
		return errors.Wrap(errors.ErrCodeStoreWrite, err, "save assembly %s", a.ID)
	}
	return nil
}

func (s *RedisStore) Load(ctx context.Context, id string) (*frame.Assembly, error) {
	data, err := s.client.Get(ctx, redisKey(id)).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStoreRead, err, "load assembly %s", id)
	}
	a, err := frame.Unmarshal(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStoreRead, err, "parse assembly %s", id)
	}
	return a, nil
}

func (s *RedisStore) List(ctx context.Context) ([]string, error) {
	var ids []string
	iter := s.client.Scan(ctx, 0, redisKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		ids = append(ids, strings.TrimPrefix(iter.Val(), redisKeyPrefix))
	}
	if err := iter.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStoreRead, err, "scan assemblies")
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, redisKey(id)).Err(); err != nil {
		return errors.Wrap(errors.ErrCodeStoreWrite, err, "delete assembly %s", id)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

var _ Store = (*RedisStore)(nil)
