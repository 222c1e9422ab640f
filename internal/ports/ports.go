package ports

import (
	"context"

	"GridironDigest/internal/domain"
)

// Scoreboard pulls every game scheduled for one season week.
type Scoreboard interface {
	FetchWeek(ctx context.Context, week, year int) ([]domain.FetchedGame, error)
}

// RecapSource fetches the recap article text for one game, markup stripped.
type RecapSource interface {
	FetchRecap(ctx context.Context, gameID string) (string, error)
}

// Generator produces raw text from a system prompt and user message. The
// response may or may not be valid JSON and may be fenced in Markdown.
type Generator interface {
	Name() string
	Generate(ctx context.Context, systemPrompt, userMessage string) (string, error)
}

// Renderer turns a named template plus bindings into a complete HTML document.
type Renderer interface {
	Render(name string, data any) (string, error)
}

// PublicationLog persists a record of each published edition for audit/history.
type PublicationLog interface {
	RecordPublication(ctx context.Context, record domain.Publication) error
}

// Notifier announces a freshly published edition to an outbound channel.
type Notifier interface {
	AnnounceEdition(ctx context.Context, message string) error
}
