package out_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	progressout "studyquest/internal/modules/progress/adapter/out"
	"studyquest/internal/modules/progress/domain"
	"studyquest/internal/platform/sqlitedb"
)

func TestSQLiteSnapshotStoreUpsert(t *testing.T) {
	t.Parallel()
	db, err := sqlitedb.Open(filepath.Join(t.TempDir(), "data", "studyquest.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	store, err := progressout.NewSQLiteSnapshotStore(db)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	ctx := context.Background()

	if _, found, err := store.Load(ctx, "user-1"); err != nil || found {
		t.Fatalf("expected empty load, found=%v err=%v", found, err)
	}

	today := domain.Date{Year: 2026, Month: 3, Day: 4}
	state, _, err := domain.NewState(false).CompleteSession("s1", "math", nil, today, 10)
	if err != nil {
		t.Fatalf("complete session: %v", err)
	}
	if err := store.Save(ctx, "user-1", state.Snapshot()); err != nil {
		t.Fatalf("save: %v", err)
	}
	state, _, err = state.CompleteSession("s2", "german", nil, today, 10)
	if err != nil {
		t.Fatalf("complete session: %v", err)
	}
	want := state.Snapshot()
	if err := store.Save(ctx, "user-1", want); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	got, found, err := store.Load(ctx, "user-1")
	if err != nil || !found {
		t.Fatalf("load: found=%v err=%v", found, err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("snapshot mismatch (-want +got):\n%s", diff)
	}
	if _, found, _ := store.Load(ctx, "user-2"); found {
		t.Fatalf("rows must be keyed per user")
	}
}
