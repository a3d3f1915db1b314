package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studyquest/internal/platform/config"
	apperrors "studyquest/internal/platform/errors"
)

func TestNewUsesDefaultsWithoutFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	cfg, err := config.New(dir, "")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "studyquest.db"), cfg.DBPath)
	assert.Equal(t, config.BackendSQLite, cfg.Persistence.Backend)
	assert.Equal(t, 750*time.Millisecond, cfg.Persistence.FlushDebounce)
	assert.Equal(t, 1800, cfg.Session.FocusSeconds)
	assert.Equal(t, 2, cfg.Entitlement.GuestQuota)
	assert.Equal(t, filepath.Join(dir, "identity.json"), cfg.IdentityPath())
}

func TestNewOverlaysYAML(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	yml := `
persistence:
  backend: redis
  redis_addr: cache:6379
  flush_debounce: 2s
session:
  focus_seconds: 60
entitlement:
  guest_quota: 3
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yml), 0o644))

	cfg, err := config.New(dir, "")
	require.NoError(t, err)
	assert.Equal(t, config.BackendRedis, cfg.Persistence.Backend)
	assert.Equal(t, "cache:6379", cfg.Persistence.RedisAddr)
	assert.Equal(t, 2*time.Second, cfg.Persistence.FlushDebounce)
	assert.Equal(t, 60, cfg.Session.FocusSeconds)
	assert.Equal(t, 3, cfg.Entitlement.GuestQuota)
	assert.Equal(t, "dev", cfg.Log.Mode)
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("persistence:\n  backend: postgres\n"), 0o644))

	_, err := config.New(dir, path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))

	_, err = config.New(dir, filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)

	_, err = config.New("", "")
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)
}
