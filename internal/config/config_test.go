package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load("")

	if cfg.Season.Year != 2025 {
		t.Fatalf("season year = %d", cfg.Season.Year)
	}
	if cfg.Storage.TmpDir != "tmp" || cfg.Storage.DocsDir != "docs" {
		t.Fatalf("storage = %+v", cfg.Storage)
	}
	if cfg.AI.ActiveProvider != "anthropic" {
		t.Fatalf("active provider = %q", cfg.AI.ActiveProvider)
	}
	if cfg.Logging.Level != "info" {
		t.Fatalf("log level = %q", cfg.Logging.Level)
	}
}

func TestLoadMergesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
season:
  year: 2026
  startDate: "2026-09-10"
ai:
  activeProvider: openai
  openai:
    model: gpt-5
newsletter:
  name: Test Digest
logging:
  level: debug
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg := Load(path)

	if cfg.Season.Year != 2026 || cfg.Season.StartDate != "2026-09-10" {
		t.Fatalf("season = %+v", cfg.Season)
	}
	if cfg.AI.ActiveProvider != "openai" || cfg.AI.OpenAI.Model != "gpt-5" {
		t.Fatalf("ai = %+v", cfg.AI)
	}
	// Unset fields keep their defaults.
	if cfg.AI.OpenAI.MaxTokens != 8000 {
		t.Fatalf("max tokens = %d", cfg.AI.OpenAI.MaxTokens)
	}
	if cfg.Newsletter.Name != "Test Digest" || cfg.Newsletter.Tagline == "" {
		t.Fatalf("newsletter = %+v", cfg.Newsletter)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("log level = %q", cfg.Logging.Level)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "env-key")
	t.Setenv("DATABASE_DSN", "postgres://localhost/digest")
	t.Setenv("TELEGRAM_BOT_TOKEN", "bot-token")

	cfg := Load("")

	if cfg.AI.Anthropic.APIKey != "env-key" {
		t.Fatalf("anthropic key = %q", cfg.AI.Anthropic.APIKey)
	}
	if cfg.Database.DSN != "postgres://localhost/digest" {
		t.Fatalf("dsn = %q", cfg.Database.DSN)
	}
	if cfg.Notifications.Telegram.BotToken != "bot-token" {
		t.Fatalf("bot token = %q", cfg.Notifications.Telegram.BotToken)
	}
}

func TestSeasonStart(t *testing.T) {
	start, err := SeasonConfig{StartDate: "2025-09-04"}.Start()
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if start.Year() != 2025 || start.Day() != 4 {
		t.Fatalf("start = %v", start)
	}

	if _, err := (SeasonConfig{StartDate: "September 4"}).Start(); err == nil {
		t.Fatal("bad start date should fail")
	}
}
