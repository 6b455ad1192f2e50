package testutil

import (
	"context"
	"testing"

	"github.com/redis/go-redis/v9"
)

// NewRedis connects to TEST_REDIS_URL and flushes the selected database when
// the test finishes. Point it at a scratch database.
func NewRedis(t *testing.T) *redis.Client {
	t.Helper()

	url := requireEnv(t, "TEST_REDIS_URL")

	opts, err := redis.ParseURL(url)
	if err != nil {
		t.Fatalf("testutil.NewRedis: parse url: %v", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		client.Close()
		t.Fatalf("testutil.NewRedis: ping: %v", err)
	}

	t.Cleanup(func() {
		_ = client.FlushDB(context.Background()).Err()
		client.Close()
	})
	return client
}
