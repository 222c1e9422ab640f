package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"GridironDigest/internal/archive"
	"GridironDigest/internal/domain"
	"GridironDigest/internal/ports"
)

// Branding carries the newsletter identity threaded into templates.
type Branding struct {
	Name      string
	Tagline   string
	PublicURL string
}

// PublishStage reads the newsletter artifact, renders the HTML edition,
// writes it under the docs directory, and records the publication in the
// archive (plus the optional publication log and notifier).
type PublishStage struct {
	Renderer ports.Renderer
	Archive  *archive.Store
	Log      ports.PublicationLog
	Notifier ports.Notifier
	Year     int
	BaseDir  string
	DocsDir  string
	Branding Branding
	Logger   *slog.Logger
}

// Run executes the publish stage and returns the published HTML path.
func (s *PublishStage) Run(ctx context.Context, week int, date string, granularity domain.Granularity) (string, error) {
	inputPath := NewsletterFile(s.BaseDir, s.Year, week, granularity, date)

	var newsletter domain.NewsletterArtifact
	if err := readJSONArtifact("publish", inputPath, &newsletter); err != nil {
		return "", err
	}

	meta := newsletter.Metadata
	logger := s.logger().With("week", meta.Week, "date", meta.Date, "games", newsletter.GameCount())

	filename, err := PublishedFilename(meta)
	if err != nil {
		return "", fmt.Errorf("publish: %w", err)
	}

	sortGamesForDisplay(newsletter.Games)

	html, err := s.Renderer.Render("newsletter", newsletterView(newsletter, s.Branding))
	if err != nil {
		return "", &ExternalCallError{Stage: "publish", Op: "render newsletter", Err: err}
	}

	if err := os.MkdirAll(s.DocsDir, 0o755); err != nil {
		return "", fmt.Errorf("publish: create docs directory: %w", err)
	}
	outputPath := filepath.Join(s.DocsDir, filename)
	if err := os.WriteFile(outputPath, []byte(html), 0o644); err != nil {
		return "", fmt.Errorf("publish: write edition: %w", err)
	}
	logger.Info("edition written", "path", outputPath)

	if err := s.Archive.RecordPublication(meta, filename, newsletter.GameCount()); err != nil {
		return "", fmt.Errorf("publish: update archive: %w", err)
	}
	if err := s.Archive.RebuildIndex(); err != nil {
		return "", fmt.Errorf("publish: rebuild index: %w", err)
	}
	logger.Info("archive updated")

	if s.Log != nil {
		record := domain.Publication{
			Year:        meta.Year,
			Week:        meta.Week,
			Type:        meta.Type,
			Day:         dayName(meta),
			Filename:    filename,
			GameCount:   newsletter.GameCount(),
			AIProvider:  meta.AIProvider,
			PublishedAt: time.Now().UTC(),
		}
		if err := s.Log.RecordPublication(ctx, record); err != nil {
			logger.Warn("publication log update failed", "error", err)
		}
	}

	if s.Notifier != nil {
		message := fmt.Sprintf("%s: %s is out (%d games)",
			s.Branding.Name, editionTitle(meta), newsletter.GameCount())
		if s.Branding.PublicURL != "" {
			message += "\n" + s.Branding.PublicURL + "/" + filename
		}
		if err := s.Notifier.AnnounceEdition(ctx, message); err != nil {
			logger.Warn("edition announcement failed", "error", err)
		}
	}

	return outputPath, nil
}

// dayOrder ranks weekdays in season-cycle order, Thursday first.
var dayOrder = map[time.Weekday]int{
	time.Thursday:  0,
	time.Friday:    1,
	time.Saturday:  2,
	time.Sunday:    3,
	time.Monday:    4,
	time.Tuesday:   5,
	time.Wednesday: 6,
}

// sortGamesForDisplay orders games chronologically within the season cycle:
// day of week Thursday-first, then kickoff time. Games whose kickoff fails to
// parse sort before everything else; the sort is stable so ties keep their
// artifact order.
func sortGamesForDisplay(games []domain.EnrichedGame) {
	type keyed struct {
		game    domain.EnrichedGame
		ok      bool
		day     int
		kickoff time.Time
	}
	entries := make([]keyed, len(games))
	for i, game := range games {
		entries[i] = keyed{game: game}
		kickoff, err := domain.ParseKickoff(game.KickoffISO)
		if err != nil {
			continue
		}
		local := kickoff.In(domain.Eastern())
		entries[i] = keyed{game: game, ok: true, day: dayOrder[local.Weekday()], kickoff: local}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.ok != b.ok {
			return !a.ok
		}
		if !a.ok {
			return false
		}
		if a.day != b.day {
			return a.day < b.day
		}
		return a.kickoff.Before(b.kickoff)
	})

	for i := range entries {
		games[i] = entries[i].game
	}
}

func (s *PublishStage) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}
