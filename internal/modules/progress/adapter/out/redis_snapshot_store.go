package out

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"studyquest/internal/modules/progress/domain"
	progressout "studyquest/internal/modules/progress/port/out"
)

const redisKeyPrefix = "studyquest:progress:"

// RedisSnapshotStore keeps each user's snapshot as a JSON string with no TTL.
type RedisSnapshotStore struct {
	client redis.UniversalClient
}

func NewRedisSnapshotStore(client redis.UniversalClient) progressout.SnapshotStore {
	return &RedisSnapshotStore{client: client}
}

func redisKey(userID string) string {
	return redisKeyPrefix + userID
}

func (s *RedisSnapshotStore) Load(ctx context.Context, userID string) (domain.Snapshot, bool, error) {
	raw, err := s.client.Get(ctx, redisKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Snapshot{}, false, nil
	}
	if err != nil {
		return domain.Snapshot{}, false, fmt.Errorf("load progress: %w", err)
	}
	var snap domain.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return domain.Snapshot{}, false, fmt.Errorf("decode progress: %w", err)
	}
	return snap, true, nil
}

func (s *RedisSnapshotStore) Save(ctx context.Context, userID string, snap domain.Snapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode progress: %w", err)
	}
	if err := s.client.Set(ctx, redisKey(userID), raw, 0).Err(); err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}
