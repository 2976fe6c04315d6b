// Package config loads the MicroDecide configuration from
// ~/.microdecide/config.json with environment overrides.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/example/microdecide/internal/core/entitlement"
)

// Storage backends
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendMemory = "memory"
)

const (
	DefaultEntitlementTimeout = "5s"
	DefaultNudgeAfter         = "12h"
	DefaultLogMode            = "dev"
)

// Config represents the MicroDecide configuration
type Config struct {
	UserID             string              `json:"user_id,omitempty"` // stub identity, set by login
	Storage            StorageConfig       `json:"storage"`
	Limits             LimitsConfig        `json:"limits"`
	EntitlementTimeout string              `json:"entitlement_timeout"`
	LogMode            string              `json:"log_mode"` // "dev" or "prod"
	Notifications      NotificationsConfig `json:"notifications"`
}

type StorageConfig struct {
	Backend string `json:"backend"` // "sqlite", "file" or "memory"
	DBPath  string `json:"db_path,omitempty"`
	DataDir string `json:"data_dir,omitempty"`
}

type LimitsConfig struct {
	FreeMaxPerDay    int `json:"free_max_per_day"`
	PremiumMaxPerDay int `json:"premium_max_per_day"`
}

type NotificationsConfig struct {
	Enabled    bool   `json:"enabled"`
	NudgeAfter string `json:"nudge_after"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	dir := ConfigDir()
	return &Config{
		Storage: StorageConfig{
			Backend: BackendSQLite,
			DBPath:  filepath.Join(dir, "microdecide.db"),
			DataDir: filepath.Join(dir, "data"),
		},
		Limits: LimitsConfig{
			FreeMaxPerDay:    entitlement.DefaultFreeMaxPerDay,
			PremiumMaxPerDay: entitlement.DefaultPremiumMaxPerDay,
		},
		EntitlementTimeout: DefaultEntitlementTimeout,
		LogMode:            DefaultLogMode,
		Notifications: NotificationsConfig{
			Enabled:    true,
			NudgeAfter: DefaultNudgeAfter,
		},
	}
}

// ConfigDir returns $MICRODECIDE_HOME, or ~/.microdecide.
func ConfigDir() string {
	if dir := os.Getenv("MICRODECIDE_HOME"); dir != "" {
		return dir
	}
	home := os.Getenv("HOME")
	if home == "" {
		home, _ = os.UserHomeDir()
	}
	return filepath.Join(home, ".microdecide")
}

func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.json")
}

// LoadConfig reads the config file, applies environment overrides and
// fills unset fields with defaults. A missing file is not an error.
func LoadConfig() (*Config, error) {
	cfg, err := loadFile()
	if err != nil {
		return nil, err
	}

	applyEnv(cfg)
	fillDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadFile reads config.json over the defaults without environment overrides.
func loadFile() (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		return cfg, nil
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if userID, ok := os.LookupEnv("MICRODECIDE_USER_ID"); ok {
		cfg.UserID = userID
	}
	if backend := os.Getenv("MICRODECIDE_STORAGE"); backend != "" {
		cfg.Storage.Backend = backend
	}
	if dbPath := os.Getenv("MICRODECIDE_DB_PATH"); dbPath != "" {
		cfg.Storage.DBPath = dbPath
	}
	if dataDir := os.Getenv("MICRODECIDE_DATA_DIR"); dataDir != "" {
		cfg.Storage.DataDir = dataDir
	}
	if mode := os.Getenv("MICRODECIDE_LOG_MODE"); mode != "" {
		cfg.LogMode = mode
	}
	if v := os.Getenv("MICRODECIDE_FREE_MAX_PER_DAY"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Limits.FreeMaxPerDay = parsed
		}
	}
	if v := os.Getenv("MICRODECIDE_PREMIUM_MAX_PER_DAY"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Limits.PremiumMaxPerDay = parsed
		}
	}
	if v := os.Getenv("MICRODECIDE_NOTIFICATIONS"); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			cfg.Notifications.Enabled = parsed
		}
	}
}

func fillDefaults(cfg *Config) {
	defaults := DefaultConfig()
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = defaults.Storage.Backend
	}
	if cfg.Storage.DBPath == "" {
		cfg.Storage.DBPath = defaults.Storage.DBPath
	}
	if cfg.Storage.DataDir == "" {
		cfg.Storage.DataDir = defaults.Storage.DataDir
	}
	if cfg.EntitlementTimeout == "" {
		cfg.EntitlementTimeout = DefaultEntitlementTimeout
	}
	if cfg.LogMode == "" {
		cfg.LogMode = DefaultLogMode
	}
	if cfg.Notifications.NudgeAfter == "" {
		cfg.Notifications.NudgeAfter = DefaultNudgeAfter
	}
}

// Validate rejects settings the application cannot start with.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Storage.Backend) {
	case BackendSQLite, BackendFile, BackendMemory:
	default:
		return fmt.Errorf("unknown storage backend %q (want sqlite, file or memory)", c.Storage.Backend)
	}
	if c.Limits.FreeMaxPerDay < 0 || c.Limits.PremiumMaxPerDay < 0 {
		return fmt.Errorf("daily limits must not be negative")
	}
	if _, err := time.ParseDuration(c.EntitlementTimeout); err != nil {
		return fmt.Errorf("invalid entitlement_timeout %q: %w", c.EntitlementTimeout, err)
	}
	if _, err := time.ParseDuration(c.Notifications.NudgeAfter); err != nil {
		return fmt.Errorf("invalid notifications.nudge_after %q: %w", c.Notifications.NudgeAfter, err)
	}
	return nil
}

// EntitlementLimits returns the configured daily caps.
func (c *Config) EntitlementLimits() entitlement.Limits {
	return entitlement.Limits{
		FreeMaxPerDay:    c.Limits.FreeMaxPerDay,
		PremiumMaxPerDay: c.Limits.PremiumMaxPerDay,
	}
}

// EntitlementTimeoutDuration returns the entitlement lookup timeout.
func (c *Config) EntitlementTimeoutDuration() time.Duration {
	return parseDurationOr(c.EntitlementTimeout, DefaultEntitlementTimeout)
}

// NudgeAfterDuration returns the delay of the next-decision reminder.
func (c *Config) NudgeAfterDuration() time.Duration {
	return parseDurationOr(c.Notifications.NudgeAfter, DefaultNudgeAfter)
}

func parseDurationOr(value, fallback string) time.Duration {
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	d, _ := time.ParseDuration(fallback)
	return d
}

// SetUserID stores userID in config.json. Environment overrides of the
// current process are not written back.
func SetUserID(userID string) error {
	cfg, err := loadFile()
	if err != nil {
		return err
	}
	fillDefaults(cfg)
	cfg.UserID = userID
	return SaveConfig(cfg)
}

// SaveConfig writes config.json to ConfigDir.
func SaveConfig(cfg *Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(ConfigPath(), data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
