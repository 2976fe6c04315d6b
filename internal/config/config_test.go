package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func useTempHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("MICRODECIDE_HOME", dir)
	for _, key := range []string{
		"MICRODECIDE_USER_ID", "MICRODECIDE_STORAGE", "MICRODECIDE_DB_PATH",
		"MICRODECIDE_DATA_DIR", "MICRODECIDE_LOG_MODE", "MICRODECIDE_FREE_MAX_PER_DAY",
		"MICRODECIDE_PREMIUM_MAX_PER_DAY", "MICRODECIDE_NOTIFICATIONS",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	return dir
}

func TestLoadConfig_Defaults(t *testing.T) {
	dir := useTempHome(t)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Storage.Backend != BackendSQLite {
		t.Errorf("expected sqlite backend, got %s", cfg.Storage.Backend)
	}
	if cfg.Storage.DBPath != filepath.Join(dir, "microdecide.db") {
		t.Errorf("unexpected db path %s", cfg.Storage.DBPath)
	}
	if cfg.Limits.FreeMaxPerDay != 1 || cfg.Limits.PremiumMaxPerDay != 20 {
		t.Errorf("unexpected limits %+v", cfg.Limits)
	}
	if cfg.EntitlementTimeoutDuration() != 5*time.Second {
		t.Errorf("expected 5s timeout, got %s", cfg.EntitlementTimeoutDuration())
	}
	if !cfg.Notifications.Enabled || cfg.NudgeAfterDuration() != 12*time.Hour {
		t.Errorf("unexpected notifications %+v", cfg.Notifications)
	}
	if cfg.UserID != "" {
		t.Errorf("expected anonymous user, got %s", cfg.UserID)
	}
}

func TestSaveAndLoadConfig(t *testing.T) {
	useTempHome(t)

	cfg := DefaultConfig()
	cfg.UserID = "user-a@example.com"
	cfg.Storage.Backend = BackendFile
	cfg.Notifications.NudgeAfter = "30m"
	if err := SaveConfig(cfg); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	loaded, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if loaded.UserID != "user-a@example.com" || loaded.Storage.Backend != BackendFile {
		t.Errorf("config did not round trip: %+v", loaded)
	}
	if loaded.NudgeAfterDuration() != 30*time.Minute {
		t.Errorf("expected 30m, got %s", loaded.NudgeAfterDuration())
	}
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	dir := useTempHome(t)
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(`{"limits":{"free_max_per_day":3}}`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Limits.FreeMaxPerDay != 3 {
		t.Errorf("expected free cap 3, got %d", cfg.Limits.FreeMaxPerDay)
	}
	if cfg.Limits.PremiumMaxPerDay != 20 {
		t.Errorf("expected premium default kept, got %d", cfg.Limits.PremiumMaxPerDay)
	}
	if cfg.EntitlementLimits().FreeMaxPerDay != 3 {
		t.Error("EntitlementLimits should mirror config")
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	useTempHome(t)
	t.Setenv("MICRODECIDE_USER_ID", "user-b@example.com")
	t.Setenv("MICRODECIDE_STORAGE", "memory")
	t.Setenv("MICRODECIDE_PREMIUM_MAX_PER_DAY", "50")
	t.Setenv("MICRODECIDE_FREE_MAX_PER_DAY", "not-a-number")
	t.Setenv("MICRODECIDE_NOTIFICATIONS", "false")
	t.Setenv("MICRODECIDE_LOG_MODE", "prod")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.UserID != "user-b@example.com" {
		t.Errorf("expected env user, got %s", cfg.UserID)
	}
	if cfg.Storage.Backend != BackendMemory {
		t.Errorf("expected memory backend, got %s", cfg.Storage.Backend)
	}
	if cfg.Limits.PremiumMaxPerDay != 50 || cfg.Limits.FreeMaxPerDay != 1 {
		t.Errorf("unexpected limits %+v", cfg.Limits)
	}
	if cfg.Notifications.Enabled {
		t.Error("expected notifications disabled")
	}
	if cfg.LogMode != "prod" {
		t.Errorf("expected prod log mode, got %s", cfg.LogMode)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		file string
	}{
		{"malformed json", `{"storage":`},
		{"unknown backend", `{"storage":{"backend":"redis"}}`},
		{"bad timeout", `{"entitlement_timeout":"soon"}`},
		{"negative limit", `{"limits":{"free_max_per_day":-1,"premium_max_per_day":20}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := useTempHome(t)
			if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(tt.file), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadConfig(); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestSetUserID_DoesNotPersistEnvOverrides(t *testing.T) {
	useTempHome(t)
	t.Setenv("MICRODECIDE_STORAGE", BackendMemory)
	t.Setenv("MICRODECIDE_FREE_MAX_PER_DAY", "7")

	if err := SetUserID("user-a@example.com"); err != nil {
		t.Fatalf("SetUserID failed: %v", err)
	}

	os.Unsetenv("MICRODECIDE_STORAGE")
	os.Unsetenv("MICRODECIDE_FREE_MAX_PER_DAY")
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.UserID != "user-a@example.com" {
		t.Errorf("expected stored user id, got %q", cfg.UserID)
	}
	if cfg.Storage.Backend != BackendSQLite {
		t.Errorf("env backend leaked into config.json: %s", cfg.Storage.Backend)
	}
	if cfg.Limits.FreeMaxPerDay != 1 {
		t.Errorf("env limit leaked into config.json: %d", cfg.Limits.FreeMaxPerDay)
	}

	if err := SetUserID(""); err != nil {
		t.Fatalf("SetUserID clear failed: %v", err)
	}
	cfg, err = LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.UserID != "" {
		t.Errorf("expected signed-out config, got %q", cfg.UserID)
	}
}
