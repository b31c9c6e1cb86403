// internal/store/redis.go
package store

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps engine records in Redis. Keys are namespaced so an
// instance can share a Redis with other services.
type RedisStore struct {
	client    *redis.Client
	namespace string
}

func NewRedisStore(redisURL, namespace string) (*RedisStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log.Println("[Store] ✅ Connected to Redis")
	return &RedisStore{client: client, namespace: namespace}, nil
}

func (r *RedisStore) key(key string) string {
	return r.namespace + ":" + key
}

func (r *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, r.key(key)).Bytes()
	if err == redis.Nil {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (r *RedisStore) Put(ctx context.Context, key string, value []byte) error {
	return r.client.Set(ctx, r.key(key), value, 0).Err()
}

func (r *RedisStore) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.key(key)).Err()
}

func (r *RedisStore) ListKeysByPrefix(ctx context.Context, prefix string) ([]string, error) {
	full, err := r.client.Keys(ctx, r.key(prefix)+"*").Result()
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(full))
	for _, k := range full {
		keys = append(keys, k[len(r.namespace)+1:])
	}
	sort.Strings(keys)
	return keys, nil
}

func (r *RedisStore) Close() error {
	if r.client != nil {
		log.Println("[Store] Redis connection closed")
		return r.client.Close()
	}
	return nil
}
