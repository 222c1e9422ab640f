package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv     = "GRIDIRON_CONFIG"
	databaseDSNEnv    = "DATABASE_DSN"
	anthropicKeyEnv   = "ANTHROPIC_API_KEY"
	openaiKeyEnv      = "OPENAI_API_KEY"
	geminiKeyEnv      = "GEMINI_API_KEY"
	telegramTokenEnv  = "TELEGRAM_BOT_TOKEN"
	telegramChatIDEnv = "TELEGRAM_CHAT_ID"
)

// Config holds settings required across the pipeline. It is constructed once
// at process start and threaded into each stage; stages never re-read it.
type Config struct {
	Season        SeasonConfig       `yaml:"season"`
	Storage       StorageConfig      `yaml:"storage"`
	ESPN          ESPNConfig         `yaml:"espn"`
	AI            AIConfig           `yaml:"ai"`
	Newsletter    NewsletterConfig   `yaml:"newsletter"`
	Notifications NotificationConfig `yaml:"notifications"`
	Database      DatabaseConfig     `yaml:"database"`
	Logging       LoggingConfig      `yaml:"logging"`
}

// SeasonConfig anchors the week cycle.
type SeasonConfig struct {
	Year      int    `yaml:"year"`
	StartDate string `yaml:"startDate"`
}

// Start parses the season start date.
func (s SeasonConfig) Start() (time.Time, error) {
	start, err := time.Parse("2006-01-02", s.StartDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid season start date %q: %w", s.StartDate, err)
	}
	return start, nil
}

// StorageConfig locates the artifact and publication directories.
type StorageConfig struct {
	TmpDir  string `yaml:"tmpDir"`
	DocsDir string `yaml:"docsDir"`
}

// ESPNConfig carries the API endpoints.
type ESPNConfig struct {
	ScoreboardURL string `yaml:"scoreboardUrl"`
	SummaryURL    string `yaml:"summaryUrl"`
}

// ProviderSettings configures one AI provider.
type ProviderSettings struct {
	Endpoint  string `yaml:"endpoint"`
	Model     string `yaml:"model"`
	MaxTokens int    `yaml:"maxTokens"`
	APIKey    string `yaml:"apiKey"`
}

// AIConfig selects and configures the generation backends.
type AIConfig struct {
	ActiveProvider string           `yaml:"activeProvider"`
	Anthropic      ProviderSettings `yaml:"anthropic"`
	OpenAI         ProviderSettings `yaml:"openai"`
	Gemini         ProviderSettings `yaml:"gemini"`
}

// NewsletterConfig carries branding and the prompt location.
type NewsletterConfig struct {
	Name       string `yaml:"name"`
	Tagline    string `yaml:"tagline"`
	PromptFile string `yaml:"promptFile"`
	PublicURL  string `yaml:"publicUrl"`
}

// NotificationConfig encapsulates outbound channels.
type NotificationConfig struct {
	Telegram TelegramConfig `yaml:"telegram"`
}

// TelegramConfig wires the announcement bot.
type TelegramConfig struct {
	BotToken string `yaml:"botToken"`
	ChatID   string `yaml:"chatId"`
}

// DatabaseConfig enables the optional Postgres publication log.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// LoggingConfig controls slog verbosity.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load(path string) Config {
	cfg := defaultConfig()

	if path == "" {
		path = os.Getenv(configPathEnv)
	}
	if path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(databaseDSNEnv); v != "" {
		c.Database.DSN = v
	}
	if v := os.Getenv(anthropicKeyEnv); v != "" {
		c.AI.Anthropic.APIKey = v
	}
	if v := os.Getenv(openaiKeyEnv); v != "" {
		c.AI.OpenAI.APIKey = v
	}
	if v := os.Getenv(geminiKeyEnv); v != "" {
		c.AI.Gemini.APIKey = v
	}
	if v := os.Getenv(telegramTokenEnv); v != "" {
		c.Notifications.Telegram.BotToken = v
	}
	if v := os.Getenv(telegramChatIDEnv); v != "" {
		c.Notifications.Telegram.ChatID = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Season.Year != 0 {
		base.Season.Year = override.Season.Year
	}
	if override.Season.StartDate != "" {
		base.Season.StartDate = override.Season.StartDate
	}

	if override.Storage.TmpDir != "" {
		base.Storage.TmpDir = override.Storage.TmpDir
	}
	if override.Storage.DocsDir != "" {
		base.Storage.DocsDir = override.Storage.DocsDir
	}

	if override.ESPN.ScoreboardURL != "" {
		base.ESPN.ScoreboardURL = override.ESPN.ScoreboardURL
	}
	if override.ESPN.SummaryURL != "" {
		base.ESPN.SummaryURL = override.ESPN.SummaryURL
	}

	if override.AI.ActiveProvider != "" {
		base.AI.ActiveProvider = override.AI.ActiveProvider
	}
	base.AI.Anthropic = mergeProvider(base.AI.Anthropic, override.AI.Anthropic)
	base.AI.OpenAI = mergeProvider(base.AI.OpenAI, override.AI.OpenAI)
	base.AI.Gemini = mergeProvider(base.AI.Gemini, override.AI.Gemini)

	if override.Newsletter.Name != "" {
		base.Newsletter.Name = override.Newsletter.Name
	}
	if override.Newsletter.Tagline != "" {
		base.Newsletter.Tagline = override.Newsletter.Tagline
	}
	if override.Newsletter.PromptFile != "" {
		base.Newsletter.PromptFile = override.Newsletter.PromptFile
	}
	if override.Newsletter.PublicURL != "" {
		base.Newsletter.PublicURL = override.Newsletter.PublicURL
	}

	if override.Notifications.Telegram.BotToken != "" {
		base.Notifications.Telegram.BotToken = override.Notifications.Telegram.BotToken
	}
	if override.Notifications.Telegram.ChatID != "" {
		base.Notifications.Telegram.ChatID = override.Notifications.Telegram.ChatID
	}

	if override.Database.DSN != "" {
		base.Database.DSN = override.Database.DSN
	}

	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}

	return base
}

func mergeProvider(base, override ProviderSettings) ProviderSettings {
	if override.Endpoint != "" {
		base.Endpoint = override.Endpoint
	}
	if override.Model != "" {
		base.Model = override.Model
	}
	if override.MaxTokens != 0 {
		base.MaxTokens = override.MaxTokens
	}
	if override.APIKey != "" {
		base.APIKey = override.APIKey
	}
	return base
}

func defaultConfig() Config {
	return Config{
		Season: SeasonConfig{
			Year:      2025,
			StartDate: "2025-09-04",
		},
		Storage: StorageConfig{
			TmpDir:  "tmp",
			DocsDir: "docs",
		},
		ESPN: ESPNConfig{
			ScoreboardURL: "https://site.api.espn.com/apis/site/v2/sports/football/nfl/scoreboard",
			SummaryURL:    "https://site.api.espn.com/apis/site/v2/sports/football/nfl/summary",
		},
		AI: AIConfig{
			ActiveProvider: "anthropic",
			Anthropic:      ProviderSettings{Model: "claude-sonnet-4-20250514", MaxTokens: 8000},
			OpenAI:         ProviderSettings{Model: "gpt-4o", MaxTokens: 8000},
			Gemini:         ProviderSettings{Model: "gemini-1.5-pro", MaxTokens: 8000},
		},
		Newsletter: NewsletterConfig{
			Name:       "ReplAI Review",
			Tagline:    "AI-Powered NFL Recaps",
			PromptFile: "newsletter_prompt.txt",
		},
		Logging: LoggingConfig{Level: "info"},
	}
}
