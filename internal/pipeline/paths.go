package pipeline

import (
	"fmt"
	"path/filepath"
	"strings"

	"GridironDigest/internal/domain"
)

// Fixed artifact filenames inside a resolved work directory. Stages hand off
// purely through these files.
const (
	GamesFilename      = "games.json"
	NewsletterFilename = "newsletter.json"
)

// WeekDirectory returns the week-level work directory, e.g. tmp/2025-week09.
func WeekDirectory(baseDir string, year, week int) string {
	return filepath.Join(baseDir, fmt.Sprintf("%d-week%02d", year, week))
}

// WorkDirectory resolves the directory a pipeline run reads and writes. Day
// granularity nests a YYYYMMDD subdirectory under the week directory; week
// granularity uses the week directory itself. Pure path arithmetic: identical
// inputs always yield the identical path.
func WorkDirectory(baseDir string, year, week int, granularity domain.Granularity, date string) string {
	weekDir := WeekDirectory(baseDir, year, week)
	if granularity == domain.GranularityDay {
		return filepath.Join(weekDir, date)
	}
	return weekDir
}

// GamesFile resolves the fetch stage's output artifact path.
func GamesFile(baseDir string, year, week int, granularity domain.Granularity, date string) string {
	return filepath.Join(WorkDirectory(baseDir, year, week, granularity, date), GamesFilename)
}

// NewsletterFile resolves the enrich stage's output artifact path.
func NewsletterFile(baseDir string, year, week int, granularity domain.Granularity, date string) string {
	return filepath.Join(WorkDirectory(baseDir, year, week, granularity, date), NewsletterFilename)
}

// PublishedFilename derives the public HTML filename from artifact metadata.
// Week granularity: 2025-week09.html. Day granularity:
// 2025-week09-sun-251109.html, where the weekday abbreviation comes from the
// date itself.
func PublishedFilename(meta domain.Metadata) (string, error) {
	if meta.Year == 0 {
		return "", fmt.Errorf("metadata missing year")
	}
	if meta.Week == 0 {
		return "", fmt.Errorf("metadata missing week")
	}
	switch meta.Type {
	case domain.GranularityWeek:
		return fmt.Sprintf("%d-week%02d.html", meta.Year, meta.Week), nil
	case domain.GranularityDay:
		if meta.Date == "" {
			return "", fmt.Errorf("metadata missing date for day granularity")
		}
		parsed, err := domain.ParseDate(meta.Date)
		if err != nil {
			return "", err
		}
		weekday := strings.ToLower(parsed.Format("Mon"))
		return fmt.Sprintf("%d-week%02d-%s-%s.html", meta.Year, meta.Week, weekday, meta.Date[2:]), nil
	default:
		return "", fmt.Errorf("metadata missing type")
	}
}
