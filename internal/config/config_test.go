package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"minutes/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("MINUTES_LOCALE", "")
	t.Setenv("MINUTES_TRANSCRIPTION_API_KEY", "env-key")

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantData := filepath.Join(tempHome, ".local", "share", "minutes")
	if cfg.Paths.DataDir != wantData {
		t.Fatalf("unexpected data dir: got %q want %q", cfg.Paths.DataDir, wantData)
	}
	if cfg.FormatStorePath() != filepath.Join(wantData, "formats.db") {
		t.Fatalf("unexpected store path: %q", cfg.FormatStorePath())
	}
	if cfg.Locale.Language != "en" {
		t.Fatalf("expected default language en, got %q", cfg.Locale.Language)
	}
	if cfg.Transcription.APIKey != "env-key" {
		t.Fatalf("expected transcription key from env, got %q", cfg.Transcription.APIKey)
	}
	if cfg.Transcription.TimeoutSeconds != config.Default().Transcription.TimeoutSeconds {
		t.Fatalf("unexpected timeout: %d", cfg.Transcription.TimeoutSeconds)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{cfg.Paths.DataDir, cfg.Paths.LogDir} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("expected directory %q to exist: %v", dir, err)
		}
		if !info.IsDir() {
			t.Fatalf("expected %q to be directory", dir)
		}
	}
}

func TestLoadCustomPath(t *testing.T) {
	t.Setenv("MINUTES_LOCALE", "")
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "minutes.toml")

	type payload struct {
		Paths struct {
			DataDir string `toml:"data_dir"`
		} `toml:"paths"`
		Locale struct {
			Language string `toml:"language"`
		} `toml:"locale"`
		Transcription struct {
			APIKey         string `toml:"api_key"`
			TimeoutSeconds int    `toml:"timeout_seconds"`
		} `toml:"transcription"`
	}
	custom := payload{}
	custom.Paths.DataDir = filepath.Join(tempDir, "data")
	custom.Locale.Language = "ja"
	custom.Transcription.APIKey = "file-key"
	custom.Transcription.TimeoutSeconds = 15
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}
	if cfg.Paths.DataDir != filepath.Join(tempDir, "data") {
		t.Fatalf("unexpected data dir %q", cfg.Paths.DataDir)
	}
	if cfg.Locale.Language != "ja" {
		t.Fatalf("expected language ja, got %q", cfg.Locale.Language)
	}
	if cfg.Transcription.APIKey != "file-key" {
		t.Fatalf("expected key from file, got %q", cfg.Transcription.APIKey)
	}
	if cfg.Transcription.TimeoutSeconds != 15 {
		t.Fatalf("expected timeout 15, got %d", cfg.Transcription.TimeoutSeconds)
	}
}

func TestLocaleEnvOverridesFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "minutes.toml")
	if err := os.WriteFile(configPath, []byte("[locale]\nlanguage = \"en\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("MINUTES_LOCALE", "ja-JP")

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Locale.Language != "ja-JP" {
		t.Fatalf("expected env locale, got %q", cfg.Locale.Language)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"locale", func(c *config.Config) { c.Locale.Language = "not a tag!" }, "locale.language"},
		{"scheme", func(c *config.Config) { c.Transcription.BaseURL = "ftp://example.com" }, "http or https"},
		{"timeout", func(c *config.Config) { c.Transcription.TimeoutSeconds = 0 }, "timeout_seconds"},
		{"log format", func(c *config.Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"log level", func(c *config.Config) { c.Logging.Level = "trace" }, "logging.level"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error mentioning %q, got %v", tc.want, err)
			}
		})
	}
}

func TestCreateSample(t *testing.T) {
	t.Setenv("MINUTES_LOCALE", "")
	path := filepath.Join(t.TempDir(), "nested", "sample.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(contents), "[transcription]") {
		t.Fatalf("expected sample to contain transcription section, got:\n%s", contents)
	}
	if _, _, _, err := config.Load(path); err != nil {
		t.Fatalf("sample config should load cleanly: %v", err)
	}
}
