package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"studyquest/internal/modules/identity/domain"
	identityout "studyquest/internal/modules/identity/port/out"
	apperrors "studyquest/internal/platform/errors"
)

type FileIdentityStore struct {
	path string
}

func NewFileIdentityStore(path string) identityout.CurrentIdentityStore {
	return &FileIdentityStore{path: path}
}

func (s *FileIdentityStore) SaveCurrent(_ context.Context, identity domain.Identity) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create identity dir: %w", err)
	}
	payload, err := json.MarshalIndent(identity, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal identity: %w", err)
	}
	if err := os.WriteFile(s.path, payload, 0o600); err != nil {
		return fmt.Errorf("write identity: %w", err)
	}
	return nil
}

func (s *FileIdentityStore) LoadCurrent(_ context.Context) (domain.Identity, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Identity{}, apperrors.ErrNoIdentity
		}
		return domain.Identity{}, fmt.Errorf("read identity: %w", err)
	}
	identity := domain.Identity{}
	if err := json.Unmarshal(payload, &identity); err != nil {
		return domain.Identity{}, fmt.Errorf("decode identity: %w", err)
	}
	if identity.UserID == "" {
		return domain.Identity{}, apperrors.ErrNoIdentity
	}
	return identity, nil
}

func (s *FileIdentityStore) ClearCurrent(_ context.Context) error {
	if err := os.Remove(s.path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("clear identity: %w", err)
	}
	return nil
}
