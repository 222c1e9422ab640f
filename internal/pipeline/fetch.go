package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"GridironDigest/internal/domain"
	"GridironDigest/internal/ports"
	"GridironDigest/internal/season"
)

const defaultRecapWorkers = 5

// FetchStage pulls the week's scoreboard, filters to the requested day when
// running at day granularity, attaches recap text per game, and writes the
// games artifact.
type FetchStage struct {
	Scoreboard   ports.Scoreboard
	Recaps       ports.RecapSource
	Resolver     season.Resolver
	Year         int
	BaseDir      string
	RecapWorkers int
	Logger       *slog.Logger
}

// Run executes the fetch stage for one date. Returns the written artifact
// path, or ErrNoGames when the filtered game list is empty.
func (s *FetchStage) Run(ctx context.Context, date string, granularity domain.Granularity) (string, error) {
	target, err := domain.ParseDate(date)
	if err != nil {
		return "", err
	}

	week := s.Resolver.Week(target)
	logger := s.logger().With("week", week, "date", date, "type", string(granularity))
	logger.Info("fetching scoreboard")

	games, err := s.Scoreboard.FetchWeek(ctx, week, s.Year)
	if err != nil {
		return "", &ExternalCallError{Stage: "fetch", Op: "fetch week scoreboard", Err: err}
	}
	logger.Info("scoreboard fetched", "games", len(games))

	if granularity == domain.GranularityDay {
		games = filterGamesByDate(games, target)
		logger.Info("filtered to target day", "games", len(games))
	}

	if len(games) == 0 {
		return "", fmt.Errorf("%w for %s (%s)", ErrNoGames, date, granularity)
	}

	s.attachRecaps(ctx, games, logger)

	artifact := domain.FetchArtifact{
		Metadata: domain.Metadata{
			Date:      date,
			Type:      granularity,
			Week:      week,
			Year:      s.Year,
			FetchedAt: time.Now().UTC().Format(time.RFC3339),
		},
		Games: games,
	}

	path := GamesFile(s.BaseDir, s.Year, week, granularity, date)
	if err := writeJSONArtifact(path, artifact); err != nil {
		return "", fmt.Errorf("fetch: %w", err)
	}

	logger.Info("games artifact written", "path", path)
	return path, nil
}

// attachRecaps fans out recap fetches across a bounded worker pool. Results
// land by index, so output ordering follows the filtered game list no matter
// which fetch completes first. A failed recap degrades that one game to an
// empty recap with a warning rather than aborting the batch.
func (s *FetchStage) attachRecaps(ctx context.Context, games []domain.FetchedGame, logger *slog.Logger) {
	workers := s.RecapWorkers
	if workers <= 0 {
		workers = defaultRecapWorkers
	}

	var wg sync.WaitGroup
	sem := make(chan struct{}, workers)

	for i := range games {
		wg.Add(1)
		sem <- struct{}{}
		go func(idx int) {
			defer wg.Done()
			defer func() { <-sem }()

			game := &games[idx]
			recap, err := s.Recaps.FetchRecap(ctx, game.GameID)
			if err != nil {
				logger.Warn("recap fetch failed, continuing with empty recap",
					"game_id", game.GameID, "error", err)
				game.RecapText = ""
				return
			}
			game.RecapText = recap
		}(i)
	}

	wg.Wait()
}

// filterGamesByDate keeps games whose kickoff, viewed in Eastern time, falls
// on the target calendar date. Comparison is date-only, never time-of-day.
func filterGamesByDate(games []domain.FetchedGame, target time.Time) []domain.FetchedGame {
	filtered := make([]domain.FetchedGame, 0, len(games))
	for _, game := range games {
		kickoff, err := domain.ParseKickoff(game.KickoffISO)
		if err != nil {
			continue
		}
		local := kickoff.In(domain.Eastern())
		if local.Year() == target.Year() && local.Month() == target.Month() && local.Day() == target.Day() {
			filtered = append(filtered, game)
		}
	}
	return filtered
}

func (s *FetchStage) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}
