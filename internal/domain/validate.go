package domain

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	minSummaryLength = 50
	maxSummaryLength = 1500
	minSentences     = 2
	maxSentences     = 15
	maxScore         = 100
	maxBadges        = 5
)

var recordExpr = regexp.MustCompile(`^\d+-\d+(-\d+)?$`)

// ValidateGame checks one enriched game against the schema and returns every
// violation found, not just the first. An empty summary is allowed: it is the
// sanctioned degraded state when the AI response omitted the game.
func ValidateGame(game EnrichedGame) []string {
	var violations []string

	report := func(field, format string, args ...any) {
		violations = append(violations, fmt.Sprintf("%s.%s: %s", game.GameID, field, fmt.Sprintf(format, args...)))
	}

	if strings.TrimSpace(game.GameID) == "" {
		violations = append(violations, "game_id: must not be empty")
	}

	checkTeam := func(field, name string) {
		trimmed := strings.TrimSpace(name)
		if len(trimmed) < 2 {
			report(field, "team name too short: %q", name)
			return
		}
		switch strings.ToLower(trimmed) {
		case "unknown", "tbd", "n/a":
			report(field, "invalid team name: %q", name)
		}
	}
	checkTeam("away_team", game.AwayTeam)
	checkTeam("home_team", game.HomeTeam)

	if strings.EqualFold(strings.TrimSpace(game.AwayTeam), strings.TrimSpace(game.HomeTeam)) {
		report("home_team", "away and home team must differ: %q", game.HomeTeam)
	}

	checkScore := func(field string, score int) {
		if score < 0 || score > maxScore {
			report(field, "score %d out of range 0-%d", score, maxScore)
		}
	}
	checkScore("away_score", game.AwayScore)
	checkScore("home_score", game.HomeScore)

	checkRecord := func(field, record string) {
		if record == "" || record == "N/A" {
			return
		}
		if !recordExpr.MatchString(record) {
			report(field, "record %q does not match W-L or W-L-T", record)
		}
	}
	checkRecord("away_record", game.AwayRecord)
	checkRecord("home_record", game.HomeRecord)

	if summary := strings.TrimSpace(game.Summary); summary != "" {
		if len(summary) < minSummaryLength {
			report("summary", "too short: %d characters (minimum %d)", len(summary), minSummaryLength)
		}
		if len(summary) > maxSummaryLength {
			report("summary", "too long: %d characters (maximum %d)", len(summary), maxSummaryLength)
		}
		sentences := strings.Count(summary, ".") + strings.Count(summary, "!") + strings.Count(summary, "?")
		if sentences < minSentences {
			report("summary", "too few sentences: %d (minimum %d)", sentences, minSentences)
		}
		if sentences > maxSentences {
			report("summary", "too many sentences: %d (maximum %d)", sentences, maxSentences)
		}
	}

	if len(game.Badges) > maxBadges {
		report("badges", "too many badges: %d (maximum %d)", len(game.Badges), maxBadges)
	}
	for _, badge := range game.Badges {
		if !ValidBadges[badge] {
			report("badges", "unknown badge %q", badge)
		}
	}

	return violations
}

// ValidateGames validates every game in the list and aggregates violations.
func ValidateGames(games []EnrichedGame) []string {
	var violations []string
	for _, game := range games {
		violations = append(violations, ValidateGame(game)...)
	}
	return violations
}
