package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"GridironDigest/internal/domain"
	"GridironDigest/internal/ports"
)

// aiGame is the per-game shape expected back from the model.
type aiGame struct {
	GameID  string   `json:"game_id"`
	Summary string   `json:"summary"`
	Badges  []string `json:"badges"`
}

type aiResponse struct {
	Games []aiGame `json:"games"`
}

// EnrichStage reads the games artifact, asks the model for summaries and
// badges in a single batch call, merges the response back by game id,
// validates the result, and writes the newsletter artifact.
type EnrichStage struct {
	Generator ports.Generator
	Prompt    string
	Year      int
	BaseDir   string
	Logger    *slog.Logger
}

// Run executes the enrich stage against the fetch artifact for the given
// week/date and returns the written newsletter artifact path.
func (s *EnrichStage) Run(ctx context.Context, week int, date string, granularity domain.Granularity) (string, error) {
	workDir := WorkDirectory(s.BaseDir, s.Year, week, granularity, date)
	inputPath := GamesFile(s.BaseDir, s.Year, week, granularity, date)

	var fetched domain.FetchArtifact
	if err := readJSONArtifact("enrich", inputPath, &fetched); err != nil {
		return "", err
	}

	logger := s.logger().With("week", week, "date", date, "games", len(fetched.Games))
	logger.Info("generating summaries and badges", "provider", s.Generator.Name())

	userMessage := buildEnrichMessage(week, fetched.Games)

	raw, err := s.Generator.Generate(ctx, s.Prompt, userMessage)
	if err != nil {
		return "", &ExternalCallError{Stage: "enrich", Op: "generate", Err: err}
	}
	logger.Info("model responded", "chars", len(raw))

	payload, err := ExtractJSON(raw)
	if err != nil {
		debugPath := writeDebugFile(workDir, "newsletter_debug_extraction_failed.txt", raw)
		logger.Error("no JSON payload in response", "debug_file", debugPath)
		return "", err
	}

	var parsed aiResponse
	if err := json.Unmarshal([]byte(payload), &parsed); err != nil {
		debugPath := writeDebugFile(workDir, "newsletter_debug_invalid.json", payload)
		logger.Error("response payload is not valid JSON", "debug_file", debugPath)
		return "", &MalformedArtifactError{Stage: "enrich", Path: debugPath, Err: err}
	}

	merged := mergeGames(fetched.Games, parsed.Games, logger)

	if violations := domain.ValidateGames(merged); len(violations) > 0 {
		pre, _ := json.MarshalIndent(map[string]any{"games": merged}, "", "  ")
		debugPath := writeDebugFile(workDir, "newsletter_debug_validation_failed.json", string(pre))
		logger.Error("merged games failed validation",
			"violations", len(violations), "debug_file", debugPath)
		return "", &SchemaValidationError{Violations: violations}
	}

	artifact := domain.NewsletterArtifact{
		Metadata: domain.Metadata{
			Date:        fetched.Metadata.Date,
			Type:        fetched.Metadata.Type,
			Week:        fetched.Metadata.Week,
			Year:        fetched.Metadata.Year,
			FetchedAt:   fetched.Metadata.FetchedAt,
			GeneratedAt: time.Now().UTC().Format(time.RFC3339),
			AIProvider:  s.Generator.Name(),
		},
		Games: merged,
	}

	outputPath := NewsletterFile(s.BaseDir, s.Year, week, granularity, date)
	if err := writeJSONArtifact(outputPath, artifact); err != nil {
		return "", fmt.Errorf("enrich: %w", err)
	}

	logger.Info("newsletter artifact written", "path", outputPath, "upsets", artifact.UpsetCount())
	return outputPath, nil
}

// mergeGames pairs every fetched game with its model output by game id. A
// game the model skipped keeps an empty summary and badge set; the batch is
// never aborted for one missing entry.
func mergeGames(fetched []domain.FetchedGame, generated []aiGame, logger *slog.Logger) []domain.EnrichedGame {
	byID := make(map[string]aiGame, len(generated))
	for _, game := range generated {
		if game.GameID != "" {
			byID[game.GameID] = game
		}
	}

	merged := make([]domain.EnrichedGame, 0, len(fetched))
	for _, game := range fetched {
		entry, ok := byID[game.GameID]
		if !ok {
			logger.Warn("model response omitted game, defaulting to empty summary",
				"game_id", game.GameID)
		}
		merged = append(merged, game.Enrich(entry.Summary, entry.Badges))
	}
	return merged
}

// buildEnrichMessage embeds every game's metadata and recap text into one
// user message. The whole batch goes to the model in a single call so it can
// reason across games for cross-game badges.
func buildEnrichMessage(week int, games []domain.FetchedGame) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Here are %d games from Week %d. ", len(games), week)
	b.WriteString("The metadata (scores, records, teams) is already final; ")
	b.WriteString("generate ONLY the summary and badges for each game.\n")

	for i, game := range games {
		fmt.Fprintf(&b, "\n%s\n", strings.Repeat("-", 70))
		fmt.Fprintf(&b, "GAME %d: %s\n", i+1, game.GameID)
		fmt.Fprintf(&b, "Away: %s (%s) - %d - Record: %s\n",
			game.AwayTeam, game.AwayAbbr, game.AwayScore, game.AwayRecord)
		fmt.Fprintf(&b, "Home: %s (%s) - %d - Record: %s\n",
			game.HomeTeam, game.HomeAbbr, game.HomeScore, game.HomeRecord)
		fmt.Fprintf(&b, "Kickoff: %s\n", game.KickoffDisplay)
		fmt.Fprintf(&b, "Stadium: %s\n", game.Stadium)
		fmt.Fprintf(&b, "TV: %s\n", game.TVNetwork)
		fmt.Fprintf(&b, "\nRECAP ARTICLE:\n%s\n", game.RecapText)
	}

	return b.String()
}

func (s *EnrichStage) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}
