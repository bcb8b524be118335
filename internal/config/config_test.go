// Copyright (c) 2025 Clubdesk Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if cfg.API.BaseURL == "" {
		t.Error("default API base URL should be set")
	}
	if cfg.Notifications.PollIntervalSecs < 5 {
		t.Error("default poll interval should be at least 5s")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"empty base url", func(c *Config) { c.API.BaseURL = "" }, "api.base_url"},
		{"bad base url", func(c *Config) { c.API.BaseURL = "not a url" }, "api.base_url"},
		{"zero timeout", func(c *Config) { c.API.TimeoutSecs = 0 }, "api.timeout_secs"},
		{"bad theme", func(c *Config) { c.UI.Theme = "neon" }, "ui.theme"},
		{"tight poll", func(c *Config) { c.Notifications.PollIntervalSecs = 1 }, "notifications.poll_interval_secs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			errs, ok := err.(ValidateErrors)
			if !ok {
				t.Fatalf("expected ValidateErrors, got %T", err)
			}
			found := false
			for _, e := range errs {
				if e.Field == tt.field {
					found = true
				}
			}
			if !found {
				t.Errorf("no error for field %s in %v", tt.field, errs)
			}
		})
	}
}

func TestSaveAndLoadFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := Default()
	cfg.API.BaseURL = "https://club.example/api"
	cfg.UI.Theme = "dark"
	cfg.UI.CompactMode = true

	if err := SaveTOML(cfg, path); err != nil {
		t.Fatalf("SaveTOML: %v", err)
	}

	// Saved file is private.
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("config file mode = %o, want 0600", info.Mode().Perm())
	}

	loaded, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if loaded.API.BaseURL != "https://club.example/api" {
		t.Errorf("BaseURL = %q", loaded.API.BaseURL)
	}
	if loaded.UI.Theme != "dark" || !loaded.UI.CompactMode {
		t.Errorf("UI = %+v", loaded.UI)
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("CLUBDESK_API_URL", "https://env.example/api")
	t.Setenv("CLUBDESK_THEME", "light")
	t.Setenv("CLUBDESK_COMPACT", "true")
	t.Setenv("CLUBDESK_POLL_SECS", "60")
	t.Setenv("CLUBDESK_NO_POLL", "1")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	if cfg.API.BaseURL != "https://env.example/api" {
		t.Errorf("env should override base URL, got %q", cfg.API.BaseURL)
	}
	if cfg.UI.Theme != "light" {
		t.Errorf("env should override theme, got %q", cfg.UI.Theme)
	}
	if !cfg.UI.CompactMode {
		t.Error("env should enable compact mode")
	}
	if cfg.Notifications.PollIntervalSecs != 60 {
		t.Errorf("poll interval = %d, want 60", cfg.Notifications.PollIntervalSecs)
	}
	if cfg.Notifications.Enabled {
		t.Error("CLUBDESK_NO_POLL should disable polling")
	}
}

func TestEnvOverridesBeatFileValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := Default()
	cfg.UI.Theme = "dark"
	if err := SaveTOML(cfg, path); err != nil {
		t.Fatalf("SaveTOML: %v", err)
	}

	t.Setenv("CLUBDESK_THEME", "light")

	loaded, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if loaded.UI.Theme != "light" {
		t.Errorf("Theme = %q, want env value light", loaded.UI.Theme)
	}
}

func TestSetDefaultsFillsZeroValues(t *testing.T) {
	cfg := &Config{}
	cfg.SetDefaults()

	if cfg.API.TimeoutSecs == 0 {
		t.Error("SetDefaults should fill timeout")
	}
	if cfg.UI.Accent == "" {
		t.Error("SetDefaults should fill accent")
	}
}

func TestGlobalSingleton(t *testing.T) {
	ResetGlobalForTesting()
	defer ResetGlobalForTesting()

	custom := Default()
	custom.UI.Theme = "dark"
	SetGlobal(custom)

	if Global().UI.Theme != "dark" {
		t.Error("Global should return the injected config")
	}
}
