package out_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"studyquest/internal/modules/progress/domain"
	progressport "studyquest/internal/modules/progress/port/out"
)

// checkSnapshotStore runs the load/save round trip every backend must honour
// for the two given user ids, which must not exist yet.
func checkSnapshotStore(t *testing.T, store progressport.SnapshotStore, userID, otherID string) {
	t.Helper()
	ctx := context.Background()

	if _, found, err := store.Load(ctx, userID); err != nil || found {
		t.Fatalf("expected empty load, found=%v err=%v", found, err)
	}

	today := domain.Date{Year: 2026, Month: 3, Day: 4}
	state, _, err := domain.NewState(false).CompleteSession("s1", "math", nil, today, 10)
	if err != nil {
		t.Fatalf("complete session: %v", err)
	}
	if err := store.Save(ctx, userID, state.Snapshot()); err != nil {
		t.Fatalf("save: %v", err)
	}
	rating := domain.Rating(4)
	state, _, err = state.CompleteSession("s2", "german", &rating, today, 10)
	if err != nil {
		t.Fatalf("complete session: %v", err)
	}
	want := state.Snapshot()
	if err := store.Save(ctx, userID, want); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	got, found, err := store.Load(ctx, userID)
	if err != nil || !found {
		t.Fatalf("load: found=%v err=%v", found, err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("snapshot mismatch (-want +got):\n%s", diff)
	}
	if _, found, err := store.Load(ctx, otherID); err != nil || found {
		t.Fatalf("snapshots must be keyed per user, found=%v err=%v", found, err)
	}
}
