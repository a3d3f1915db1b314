package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	apperrors "studyquest/internal/platform/errors"
)

const (
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

type Config struct {
	DataDir     string            `yaml:"data_dir"`
	DBPath      string            `yaml:"db_path"`
	Log         LogConfig         `yaml:"log"`
	Persistence PersistenceConfig `yaml:"persistence"`
	Session     SessionConfig     `yaml:"session"`
	Entitlement EntitlementConfig `yaml:"entitlement"`
}

type LogConfig struct {
	Mode string `yaml:"mode"`
	File string `yaml:"file"`
}

type PersistenceConfig struct {
	Backend       string        `yaml:"backend"`
	PostgresDSN   string        `yaml:"postgres_dsn"`
	RedisAddr     string        `yaml:"redis_addr"`
	FlushDebounce time.Duration `yaml:"flush_debounce"`
}

type SessionConfig struct {
	FocusSeconds int `yaml:"focus_seconds"`
}

type EntitlementConfig struct {
	GuestQuota int    `yaml:"guest_quota"`
	Plugin     string `yaml:"plugin"`
}

// Default returns the built-in configuration rooted at dataDir.
func Default(dataDir string) Config {
	return Config{
		DataDir: dataDir,
		DBPath:  filepath.Join(dataDir, "studyquest.db"),
		Log: LogConfig{
			Mode: "dev",
			File: filepath.Join(dataDir, "logs", "studyquest.log"),
		},
		Persistence: PersistenceConfig{
			Backend:       BackendSQLite,
			RedisAddr:     "localhost:6379",
			FlushDebounce: 750 * time.Millisecond,
		},
		Session:     SessionConfig{FocusSeconds: 30 * 60},
		Entitlement: EntitlementConfig{GuestQuota: 2},
	}
}

// New loads <dataDir>/config.yaml, or configPath when given, over the
// defaults. A missing default file is not an error.
func New(dataDir, configPath string) (Config, error) {
	if dataDir == "" {
		return Config{}, fmt.Errorf("%w: data dir is required", apperrors.ErrInvalidInput)
	}
	cfg := Default(dataDir)

	explicit := configPath != ""
	if !explicit {
		configPath = filepath.Join(dataDir, "config.yaml")
	}
	raw, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("decode config %s: %w", configPath, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	if cfg.DataDir == "" {
		cfg.DataDir = dataDir
	}
	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(cfg.DataDir, "studyquest.db")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Persistence.Backend {
	case BackendSQLite:
	case BackendPostgres:
		if c.Persistence.PostgresDSN == "" {
			return fmt.Errorf("%w: persistence.postgres_dsn is required for the postgres backend", apperrors.ErrInvalidInput)
		}
	case BackendRedis:
		if c.Persistence.RedisAddr == "" {
			return fmt.Errorf("%w: persistence.redis_addr is required for the redis backend", apperrors.ErrInvalidInput)
		}
	default:
		return fmt.Errorf("%w: unknown persistence backend %q", apperrors.ErrInvalidInput, c.Persistence.Backend)
	}
	if c.Persistence.FlushDebounce < 0 {
		return fmt.Errorf("%w: persistence.flush_debounce must not be negative", apperrors.ErrInvalidInput)
	}
	if c.Session.FocusSeconds <= 0 {
		return fmt.Errorf("%w: session.focus_seconds must be positive", apperrors.ErrInvalidInput)
	}
	if c.Entitlement.GuestQuota < 1 {
		return fmt.Errorf("%w: entitlement.guest_quota must be at least 1", apperrors.ErrInvalidInput)
	}
	return nil
}

// IdentityPath is where the signed-in identity is remembered between runs.
func (c Config) IdentityPath() string {
	return filepath.Join(c.DataDir, "identity.json")
}
