package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pkordes/tripscout/internal/domain"
)

// NewRedisClient parses a redis:// URL and verifies the server answers.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("repo.NewRedisClient: parse url: %w", err)
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("repo.NewRedisClient: ping: %w", err)
	}
	return client, nil
}

// RedisRepo keeps each snapshot under a single string key.
type RedisRepo struct {
	client redis.Cmdable
	prefix string
}

// NewRedisRepo stores keys as prefix+namespace.
func NewRedisRepo(client redis.Cmdable, prefix string) *RedisRepo {
	return &RedisRepo{client: client, prefix: prefix}
}

// Load returns the payload stored for namespace.
func (r *RedisRepo) Load(ctx context.Context, namespace string) ([]byte, error) {
	b, err := r.client.Get(ctx, r.prefix+namespace).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("repo.RedisRepo.Load: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("repo.RedisRepo.Load: %w", err)
	}
	return b, nil
}

// Save replaces the payload for namespace. Snapshots never expire.
func (r *RedisRepo) Save(ctx context.Context, namespace string, data []byte) error {
	if err := r.client.Set(ctx, r.prefix+namespace, data, 0).Err(); err != nil {
		return fmt.Errorf("repo.RedisRepo.Save: %w", err)
	}
	return nil
}
