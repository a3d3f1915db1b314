package out

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"studyquest/internal/modules/progress/domain"
	progressout "studyquest/internal/modules/progress/port/out"
)

type SQLiteSnapshotStore struct {
	db *sql.DB
}

func NewSQLiteSnapshotStore(db *sql.DB) (progressout.SnapshotStore, error) {
	store := &SQLiteSnapshotStore{db: db}
	if err := store.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *SQLiteSnapshotStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS user_progress (
  user_id TEXT PRIMARY KEY,
  schema_version INTEGER NOT NULL,
  total_xp INTEGER NOT NULL,
  total_sessions INTEGER NOT NULL,
  snapshot TEXT NOT NULL,
  updated_at TEXT NOT NULL
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create user_progress table: %w", err)
	}
	return nil
}

func (s *SQLiteSnapshotStore) Load(ctx context.Context, userID string) (domain.Snapshot, bool, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT snapshot FROM user_progress WHERE user_id = ?`, userID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Snapshot{}, false, nil
	}
	if err != nil {
		return domain.Snapshot{}, false, fmt.Errorf("load progress: %w", err)
	}
	var snap domain.Snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		return domain.Snapshot{}, false, fmt.Errorf("decode progress: %w", err)
	}
	return snap, true, nil
}

func (s *SQLiteSnapshotStore) Save(ctx context.Context, userID string, snap domain.Snapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode progress: %w", err)
	}
	const stmt = `
INSERT INTO user_progress (user_id, schema_version, total_xp, total_sessions, snapshot, updated_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(user_id) DO UPDATE SET
  schema_version=excluded.schema_version,
  total_xp=excluded.total_xp,
  total_sessions=excluded.total_sessions,
  snapshot=excluded.snapshot,
  updated_at=excluded.updated_at;
`
	_, err = s.db.ExecContext(ctx, stmt,
		userID,
		snap.SchemaVersion,
		snap.TotalXP,
		snap.TotalSessions,
		string(raw),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}
