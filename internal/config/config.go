// Package config loads process configuration from the environment
package config

import (
	"io"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/KirkDiggler/rpg-battle/internal/errors"
)

// Snapshot stores
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
	StoreSQLite = "sqlite"
)

// Log formats
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Config controls logging and where battle snapshots live
type Config struct {
	LogLevel  string `env:"BATTLE_LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"BATTLE_LOG_FORMAT" envDefault:"text"`

	Store       string        `env:"BATTLE_STORE"        envDefault:"memory"`
	SQLitePath  string        `env:"BATTLE_SQLITE_PATH"  envDefault:"battles.db"`
	SnapshotTTL time.Duration `env:"BATTLE_SNAPSHOT_TTL" envDefault:"24h"`

	// RedisAddr is host:port or a redis:// URL; a URL carries its own
	// password and database
	RedisAddr     string `env:"BATTLE_REDIS_ADDR"     envDefault:"localhost:6379"`
	RedisPassword string `env:"BATTLE_REDIS_PASSWORD"`
	RedisDB       int    `env:"BATTLE_REDIS_DB"`

	// ArchivePath is a SQLite file for finished battles; empty disables the archive
	ArchivePath string `env:"BATTLE_ARCHIVE_PATH"`
	// CatalogPath is a YAML catalog; empty uses the bundled tables
	CatalogPath string `env:"BATTLE_CATALOG_PATH"`
}

// Load parses the process environment
func Load() (*Config, error) {
	return parse(env.Options{})
}

// LoadFrom parses the given variables instead of the process environment
func LoadFrom(vars map[string]string) (*Config, error) {
	return parse(env.Options{Environment: vars})
}

func parse(opts env.Options) (*Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse environment")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks enumerated settings and the fields the chosen store needs
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateEnum("LogFormat", c.LogFormat, []string{LogFormatText, LogFormatJSON}, vb)
	if _, err := c.Level(); err != nil {
		vb.InvalidField("LogLevel", err.Error())
	}
	errors.ValidateEnum("Store", c.Store, []string{StoreMemory, StoreRedis, StoreSQLite}, vb)

	switch c.Store {
	case StoreRedis:
		errors.ValidateRequired("RedisAddr", c.RedisAddr, vb)
		errors.ValidateRange("RedisDB", c.RedisDB, 0, 15, vb)
	case StoreSQLite:
		errors.ValidateRequired("SQLitePath", c.SQLitePath, vb)
	}
	if c.SnapshotTTL < 0 {
		vb.InvalidField("SnapshotTTL", "cannot be negative")
	}

	return vb.Build()
}

// Level parses LogLevel
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, err
	}
	return level, nil
}

// Logger builds a logger writing to w in the configured format
func (c *Config) Logger(w io.Writer) *slog.Logger {
	level, err := c.Level()
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	if c.LogFormat == LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
