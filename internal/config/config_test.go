package config_test

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-battle/internal/config"
	"github.com/KirkDiggler/rpg-battle/internal/errors"
)

type ConfigTestSuite struct {
	suite.Suite
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (s *ConfigTestSuite) TestDefaults() {
	cfg, err := config.LoadFrom(map[string]string{})
	s.Require().NoError(err)

	s.Equal("info", cfg.LogLevel)
	s.Equal(config.LogFormatText, cfg.LogFormat)
	s.Equal(config.StoreMemory, cfg.Store)
	s.Equal(24*time.Hour, cfg.SnapshotTTL)
	s.Empty(cfg.ArchivePath)
	s.Empty(cfg.CatalogPath)
}

func (s *ConfigTestSuite) TestOverrides() {
	cfg, err := config.LoadFrom(map[string]string{
		"BATTLE_LOG_LEVEL":    "debug",
		"BATTLE_LOG_FORMAT":   "json",
		"BATTLE_STORE":        "redis",
		"BATTLE_REDIS_ADDR":   "cache:6380",
		"BATTLE_REDIS_DB":     "3",
		"BATTLE_SNAPSHOT_TTL": "90m",
		"BATTLE_ARCHIVE_PATH": "/tmp/archive.db",
	})
	s.Require().NoError(err)

	s.Equal(config.StoreRedis, cfg.Store)
	s.Equal("cache:6380", cfg.RedisAddr)
	s.Equal(3, cfg.RedisDB)
	s.Equal(90*time.Minute, cfg.SnapshotTTL)
	s.Equal("/tmp/archive.db", cfg.ArchivePath)
}

func (s *ConfigTestSuite) TestInvalid() {
	testCases := []struct {
		name string
		vars map[string]string
	}{
		{name: "unknown store", vars: map[string]string{"BATTLE_STORE": "postgres"}},
		{name: "unknown format", vars: map[string]string{"BATTLE_LOG_FORMAT": "xml"}},
		{name: "unknown level", vars: map[string]string{"BATTLE_LOG_LEVEL": "loud"}},
		{name: "unparsable ttl", vars: map[string]string{"BATTLE_SNAPSHOT_TTL": "soon"}},
		{name: "negative ttl", vars: map[string]string{"BATTLE_SNAPSHOT_TTL": "-1m"}},
		{name: "redis db out of range", vars: map[string]string{"BATTLE_STORE": "redis", "BATTLE_REDIS_DB": "16"}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := config.LoadFrom(tc.vars)
			s.True(errors.IsInvalidArgument(err), "got %v", err)
		})
	}
}

func (s *ConfigTestSuite) TestStoreNeedsItsSettings() {
	cfg := &config.Config{LogLevel: "info", LogFormat: config.LogFormatText, Store: config.StoreRedis}
	s.True(errors.IsInvalidArgument(cfg.Validate()))

	cfg.Store = config.StoreSQLite
	s.True(errors.IsInvalidArgument(cfg.Validate()))

	cfg.SQLitePath = "battles.db"
	s.NoError(cfg.Validate())
}

func (s *ConfigTestSuite) TestLogger() {
	cfg := &config.Config{LogLevel: "warn", LogFormat: config.LogFormatJSON}
	var buf bytes.Buffer
	logger := cfg.Logger(&buf)

	logger.Info("dropped")
	logger.Warn("kept", "battle_id", "battle_1")

	var line map[string]any
	s.Require().NoError(json.Unmarshal(buf.Bytes(), &line))
	s.Equal("kept", line["msg"])
	s.Equal("battle_1", line["battle_id"])
}
