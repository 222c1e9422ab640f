package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"GridironDigest/internal/archive"
	"GridironDigest/internal/config"
	"GridironDigest/internal/domain"
	"GridironDigest/internal/infrastructure/espn"
	"GridironDigest/internal/infrastructure/llm"
	"GridironDigest/internal/infrastructure/render"
	"GridironDigest/internal/infrastructure/storage"
	"GridironDigest/internal/infrastructure/telegram"
	"GridironDigest/internal/logging"
	"GridironDigest/internal/pipeline"
	"GridironDigest/internal/ports"
	"GridironDigest/internal/provider"
	"GridironDigest/internal/season"
)

// Application wires configuration to collaborators and pipeline stages.
type Application struct {
	cfg         config.Config
	logger      *slog.Logger
	seasonStart time.Time
	espn        *espn.Client
	providers   *provider.Registry
	renderer    *render.HTMLRenderer
	archive     *archive.Store
	pubLog      ports.PublicationLog
	notifier    ports.Notifier
}

// New builds a runnable application instance from configuration.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	seasonStart, err := cfg.Season.Start()
	if err != nil {
		return nil, err
	}

	renderer, err := render.NewHTMLRenderer()
	if err != nil {
		return nil, err
	}

	registry := provider.NewRegistry()
	registry.Register(llm.NewAnthropicProvider(
		cfg.AI.Anthropic.Endpoint, cfg.AI.Anthropic.Model, cfg.AI.Anthropic.APIKey, cfg.AI.Anthropic.MaxTokens))
	registry.Register(llm.NewOpenAIProvider(
		cfg.AI.OpenAI.Endpoint, cfg.AI.OpenAI.Model, cfg.AI.OpenAI.APIKey, cfg.AI.OpenAI.MaxTokens))
	registry.Register(llm.NewGeminiProvider(
		cfg.AI.Gemini.Endpoint, cfg.AI.Gemini.Model, cfg.AI.Gemini.APIKey, cfg.AI.Gemini.MaxTokens))

	app := &Application{
		cfg:         cfg,
		logger:      baseLogger,
		seasonStart: seasonStart,
		espn:        espn.NewClient(cfg.ESPN.ScoreboardURL, cfg.ESPN.SummaryURL, nil),
		providers:   registry,
		renderer:    renderer,
		archive: &archive.Store{
			Path:     filepath.Join(cfg.Storage.DocsDir, "archive.json"),
			DocsDir:  cfg.Storage.DocsDir,
			Renderer: renderer,
			Branding: archive.IndexBranding{
				Name:    cfg.Newsletter.Name,
				Tagline: cfg.Newsletter.Tagline,
			},
		},
	}

	if cfg.Database.DSN != "" {
		pubLog, err := storage.Open(cfg.Database.DSN)
		if err != nil {
			return nil, fmt.Errorf("publication log: %w", err)
		}
		app.pubLog = pubLog
	}

	if tg := cfg.Notifications.Telegram; tg.BotToken != "" && tg.ChatID != "" {
		app.notifier = telegram.NewNotifier(tg.BotToken, tg.ChatID)
	}

	return app, nil
}

// resolver builds the week resolver, honoring a manual override when given.
func (a *Application) resolver(manualWeek int) season.Resolver {
	return season.NewResolver(a.seasonStart, season.PolicyMondayCutoff, manualWeek)
}

// Week resolves the season week the pipeline would operate on for a date.
func (a *Application) Week(date string, manualWeek int) (int, error) {
	target, err := domain.ParseDate(date)
	if err != nil {
		return 0, err
	}
	return a.resolver(manualWeek).Week(target), nil
}

// Fetch runs the fetch stage and returns the games artifact path.
func (a *Application) Fetch(ctx context.Context, date string, granularity domain.Granularity, manualWeek int) (string, error) {
	stage := &pipeline.FetchStage{
		Scoreboard: a.espn,
		Recaps:     a.espn,
		Resolver:   a.resolver(manualWeek),
		Year:       a.cfg.Season.Year,
		BaseDir:    a.cfg.Storage.TmpDir,
		Logger:     a.logger.With("component", "fetch"),
	}
	return stage.Run(ctx, date, granularity)
}

// Enrich runs the enrich stage with the named provider (empty selects the
// configured active one) and returns the newsletter artifact path.
func (a *Application) Enrich(ctx context.Context, date string, granularity domain.Granularity, manualWeek int, providerName string) (string, error) {
	if providerName == "" {
		providerName = a.cfg.AI.ActiveProvider
	}
	generator, err := a.providers.Resolve(providerName)
	if err != nil {
		return "", err
	}

	prompt, err := a.loadPrompt()
	if err != nil {
		return "", err
	}

	week, err := a.Week(date, manualWeek)
	if err != nil {
		return "", err
	}

	stage := &pipeline.EnrichStage{
		Generator: generator,
		Prompt:    prompt,
		Year:      a.cfg.Season.Year,
		BaseDir:   a.cfg.Storage.TmpDir,
		Logger:    a.logger.With("component", "enrich"),
	}
	return stage.Run(ctx, week, date, granularity)
}

// Publish runs the publish stage and returns the published HTML path.
func (a *Application) Publish(ctx context.Context, date string, granularity domain.Granularity, manualWeek int) (string, error) {
	week, err := a.Week(date, manualWeek)
	if err != nil {
		return "", err
	}

	stage := &pipeline.PublishStage{
		Renderer: a.renderer,
		Archive:  a.archive,
		Log:      a.pubLog,
		Notifier: a.notifier,
		Year:     a.cfg.Season.Year,
		BaseDir:  a.cfg.Storage.TmpDir,
		DocsDir:  a.cfg.Storage.DocsDir,
		Branding: pipeline.Branding{
			Name:      a.cfg.Newsletter.Name,
			Tagline:   a.cfg.Newsletter.Tagline,
			PublicURL: a.cfg.Newsletter.PublicURL,
		},
		Logger: a.logger.With("component", "publish"),
	}
	return stage.Run(ctx, week, date, granularity)
}

// Run executes fetch, enrich, and publish in order for one date.
func (a *Application) Run(ctx context.Context, date string, granularity domain.Granularity, manualWeek int, providerName string) (string, error) {
	if _, err := a.Fetch(ctx, date, granularity, manualWeek); err != nil {
		return "", err
	}
	if _, err := a.Enrich(ctx, date, granularity, manualWeek, providerName); err != nil {
		return "", err
	}
	return a.Publish(ctx, date, granularity, manualWeek)
}

// RebuildIndex regenerates the archive index document.
func (a *Application) RebuildIndex() error {
	return a.archive.RebuildIndex()
}

func (a *Application) loadPrompt() (string, error) {
	raw, err := os.ReadFile(a.cfg.Newsletter.PromptFile)
	if err != nil {
		return "", fmt.Errorf("read prompt file: %w", err)
	}
	return strings.TrimSpace(string(raw)), nil
}
