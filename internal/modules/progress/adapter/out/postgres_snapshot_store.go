package out

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"studyquest/internal/modules/progress/domain"
	progressout "studyquest/internal/modules/progress/port/out"
)

// PostgresSnapshotStore keeps one jsonb row per user.
type PostgresSnapshotStore struct {
	pool *pgxpool.Pool
}

func NewPostgresSnapshotStore(ctx context.Context, pool *pgxpool.Pool) (progressout.SnapshotStore, error) {
	store := &PostgresSnapshotStore{pool: pool}
	const ddl = `
CREATE TABLE IF NOT EXISTS user_progress (
  user_id TEXT PRIMARY KEY,
  schema_version INTEGER NOT NULL,
  total_xp INTEGER NOT NULL,
  total_sessions INTEGER NOT NULL,
  snapshot JSONB NOT NULL,
  updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`
	if _, err := pool.Exec(ctx, ddl); err != nil {
		return nil, fmt.Errorf("create user_progress table: %w", err)
	}
	return store, nil
}

func (s *PostgresSnapshotStore) Load(ctx context.Context, userID string) (domain.Snapshot, bool, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx, `SELECT snapshot FROM user_progress WHERE user_id = $1`, userID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
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

func (s *PostgresSnapshotStore) Save(ctx context.Context, userID string, snap domain.Snapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode progress: %w", err)
	}
	const stmt = `
INSERT INTO user_progress (user_id, schema_version, total_xp, total_sessions, snapshot, updated_at)
VALUES ($1, $2, $3, $4, $5, now())
ON CONFLICT (user_id) DO UPDATE SET
  schema_version = EXCLUDED.schema_version,
  total_xp = EXCLUDED.total_xp,
  total_sessions = EXCLUDED.total_sessions,
  snapshot = EXCLUDED.snapshot,
  updated_at = now()`
	if _, err := s.pool.Exec(ctx, stmt, userID, snap.SchemaVersion, snap.TotalXP, snap.TotalSessions, raw); err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}
