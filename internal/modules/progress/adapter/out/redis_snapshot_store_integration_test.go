package out_test

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	progressout "studyquest/internal/modules/progress/adapter/out"
)

// Set STUDYQUEST_TEST_REDIS_ADDR (host:port) to run this test.
func TestRedisSnapshotStoreRoundTrip(t *testing.T) {
	addr := os.Getenv("STUDYQUEST_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("STUDYQUEST_TEST_REDIS_ADDR not set")
	}
	ctx := context.Background()
	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })
	if err := client.Ping(ctx).Err(); err != nil {
		t.Fatalf("ping: %v", err)
	}

	userID, otherID := "it-"+uuid.NewString(), "it-"+uuid.NewString()
	t.Cleanup(func() {
		_ = client.Del(context.Background(), "studyquest:progress:"+userID, "studyquest:progress:"+otherID).Err()
	})
	checkSnapshotStore(t, progressout.NewRedisSnapshotStore(client), userID, otherID)

	ttl, err := client.TTL(ctx, "studyquest:progress:"+userID).Result()
	if err != nil {
		t.Fatalf("ttl: %v", err)
	}
	if ttl != -1 {
		t.Fatalf("snapshots must not expire, ttl=%v", ttl)
	}
}
