package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"testing"

	"GridironDigest/internal/domain"
	"GridironDigest/internal/season"
)

type fakeScoreboard struct {
	games []domain.FetchedGame
	err   error
}

func (f *fakeScoreboard) FetchWeek(ctx context.Context, week, year int) ([]domain.FetchedGame, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]domain.FetchedGame, len(f.games))
	copy(out, f.games)
	return out, nil
}

type fakeRecaps struct {
	recaps map[string]string
	errs   map[string]error
}

func (f *fakeRecaps) FetchRecap(ctx context.Context, gameID string) (string, error) {
	if err, ok := f.errs[gameID]; ok {
		return "", err
	}
	return f.recaps[gameID], nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func scheduledGame(id, kickoffISO string) domain.FetchedGame {
	return domain.FetchedGame{
		GameID:     id,
		AwayTeam:   "Buffalo Bills",
		AwayAbbr:   "BUF",
		HomeTeam:   "Miami Dolphins",
		HomeAbbr:   "MIA",
		KickoffISO: kickoffISO,
	}
}

func TestFetchStageFiltersToTargetDay(t *testing.T) {
	t.Parallel()

	// Thursday night, Sunday afternoon, and Monday night of the same week.
	scoreboard := &fakeScoreboard{games: []domain.FetchedGame{
		scheduledGame("thu", "2025-10-31T00:15Z"),
		scheduledGame("sun", "2025-10-26T17:00Z"),
		scheduledGame("mon", "2025-10-28T00:15Z"),
	}}
	recaps := &fakeRecaps{recaps: map[string]string{"sun": "recap body"}}

	stage := &FetchStage{
		Scoreboard: scoreboard,
		Recaps:     recaps,
		Resolver:   season.FixedResolver(8),
		Year:       2025,
		BaseDir:    t.TempDir(),
		Logger:     discardLogger(),
	}

	path, err := stage.Run(context.Background(), "20251026", domain.GranularityDay)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	artifact := readFetchArtifact(t, path)
	if len(artifact.Games) != 1 {
		t.Fatalf("expected 1 game after day filtering, got %d", len(artifact.Games))
	}
	if artifact.Games[0].GameID != "sun" {
		t.Fatalf("wrong game survived the filter: %s", artifact.Games[0].GameID)
	}
	if artifact.Games[0].RecapText != "recap body" {
		t.Fatalf("recap not attached: %q", artifact.Games[0].RecapText)
	}
	if artifact.Metadata.Week != 8 || artifact.Metadata.Type != domain.GranularityDay {
		t.Fatalf("unexpected metadata: %+v", artifact.Metadata)
	}
	if artifact.Metadata.FetchedAt == "" {
		t.Fatal("fetched_at not recorded")
	}
}

func TestFetchStageWeekKeepsEveryGame(t *testing.T) {
	t.Parallel()

	scoreboard := &fakeScoreboard{games: []domain.FetchedGame{
		scheduledGame("thu", "2025-10-31T00:15Z"),
		scheduledGame("sun", "2025-10-26T17:00Z"),
	}}
	recaps := &fakeRecaps{recaps: map[string]string{
		"thu": "thursday recap",
		"sun": "sunday recap",
	}}

	stage := &FetchStage{
		Scoreboard: scoreboard,
		Recaps:     recaps,
		Resolver:   season.FixedResolver(8),
		Year:       2025,
		BaseDir:    t.TempDir(),
		Logger:     discardLogger(),
	}

	path, err := stage.Run(context.Background(), "20251028", domain.GranularityWeek)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	artifact := readFetchArtifact(t, path)
	if len(artifact.Games) != 2 {
		t.Fatalf("expected both games at week granularity, got %d", len(artifact.Games))
	}
	// Artifact order follows the scoreboard order regardless of which recap
	// fetch finished first.
	if artifact.Games[0].GameID != "thu" || artifact.Games[1].GameID != "sun" {
		t.Fatalf("game order changed: %s, %s", artifact.Games[0].GameID, artifact.Games[1].GameID)
	}
}

func TestFetchStageNoGames(t *testing.T) {
	t.Parallel()

	stage := &FetchStage{
		Scoreboard: &fakeScoreboard{games: []domain.FetchedGame{
			scheduledGame("sun", "2025-10-26T17:00Z"),
		}},
		Recaps:   &fakeRecaps{},
		Resolver: season.FixedResolver(8),
		Year:     2025,
		BaseDir:  t.TempDir(),
		Logger:   discardLogger(),
	}

	// A Tuesday with no scheduled games.
	_, err := stage.Run(context.Background(), "20251021", domain.GranularityDay)
	if !errors.Is(err, ErrNoGames) {
		t.Fatalf("expected ErrNoGames, got %v", err)
	}
}

func TestFetchStageRecapFailureDegrades(t *testing.T) {
	t.Parallel()

	stage := &FetchStage{
		Scoreboard: &fakeScoreboard{games: []domain.FetchedGame{
			scheduledGame("sun", "2025-10-26T17:00Z"),
		}},
		Recaps: &fakeRecaps{errs: map[string]error{
			"sun": fmt.Errorf("summary endpoint returned 503"),
		}},
		Resolver: season.FixedResolver(8),
		Year:     2025,
		BaseDir:  t.TempDir(),
		Logger:   discardLogger(),
	}

	path, err := stage.Run(context.Background(), "20251026", domain.GranularityDay)
	if err != nil {
		t.Fatalf("a recap failure must not abort the run: %v", err)
	}

	artifact := readFetchArtifact(t, path)
	if artifact.Games[0].RecapText != "" {
		t.Fatalf("failed recap should leave an empty recap, got %q", artifact.Games[0].RecapText)
	}
}

func TestFetchStageScoreboardFailure(t *testing.T) {
	t.Parallel()

	stage := &FetchStage{
		Scoreboard: &fakeScoreboard{err: fmt.Errorf("connection refused")},
		Recaps:     &fakeRecaps{},
		Resolver:   season.FixedResolver(8),
		Year:       2025,
		BaseDir:    t.TempDir(),
		Logger:     discardLogger(),
	}

	_, err := stage.Run(context.Background(), "20251026", domain.GranularityDay)
	var external *ExternalCallError
	if !errors.As(err, &external) {
		t.Fatalf("expected *ExternalCallError, got %v", err)
	}
}

func readFetchArtifact(t *testing.T, path string) domain.FetchArtifact {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}
	var artifact domain.FetchArtifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		t.Fatalf("parse artifact: %v", err)
	}
	return artifact
}
