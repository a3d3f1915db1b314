package out

import (
	"context"

	"studyquest/internal/modules/progress/domain"
)

// SnapshotStore persists whole-aggregate snapshots keyed by user. Save is an
// upsert that overwrites; there is no merge or version check.
type SnapshotStore interface {
	Load(ctx context.Context, userID string) (domain.Snapshot, bool, error)
	Save(ctx context.Context, userID string, snapshot domain.Snapshot) error
}

// IdentitySource reports the durable identity, if one is signed in.
type IdentitySource interface {
	CurrentUserID() (string, bool)
}

type NoteExporter interface {
	Export(ctx context.Context, dir string, books []domain.Book, notes []domain.BookNote) ([]string, error)
}

type BookMetadataReader interface {
	ReadTitle(ctx context.Context, path string) (string, error)
}
