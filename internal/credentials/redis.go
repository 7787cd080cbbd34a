package credentials

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps credentials as plain Redis strings under a namespaced prefix.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisStore returns a store that writes keys as "memberkit:{<namespace>}:<key>".
// The hash tag keeps a namespace in one cluster slot so MSET and multi-key DEL work.
func NewRedisStore(client redis.UniversalClient, namespace string) *RedisStore {
	if namespace == "" {
		namespace = "default"
	}
	return &RedisStore{client: client, prefix: keyPrefix(namespace)}
}

func keyPrefix(namespace string) string {
	return "memberkit:{" + namespace + "}:"
}

func (r *RedisStore) redisKey(k Key) string {
	return r.prefix + string(k)
}

func (r *RedisStore) redisKeys(keys []Key) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = r.redisKey(k)
	}
	return out
}

func (r *RedisStore) Get(ctx context.Context, key Key) (string, bool, error) {
	v, err := r.client.Get(ctx, r.redisKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return v, true, nil
}

func (r *RedisStore) Set(ctx context.Context, key Key, value string) error {
	if err := r.client.Set(ctx, r.redisKey(key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// SetMany uses MSET, which Redis applies atomically.
func (r *RedisStore) SetMany(ctx context.Context, values map[Key]string) error {
	if len(values) == 0 {
		return nil
	}
	pairs := make([]any, 0, len(values)*2)
	for k, v := range values {
		pairs = append(pairs, r.redisKey(k), v)
	}
	if err := r.client.MSet(ctx, pairs...).Err(); err != nil {
		return fmt.Errorf("redis mset: %w", err)
	}
	return nil
}

// Remove issues a single multi-key DEL.
func (r *RedisStore) Remove(ctx context.Context, keys ...Key) error {
	if len(keys) == 0 {
		return nil
	}
	if err := r.client.Del(ctx, r.redisKeys(keys)...).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

func (r *RedisStore) Clear(ctx context.Context) error {
	return r.Remove(ctx, SessionKeys...)
}
