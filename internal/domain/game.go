package domain

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// Granularity says whether a pipeline run covers one calendar day or a whole week.
type Granularity string

const (
	GranularityDay  Granularity = "day"
	GranularityWeek Granularity = "week"
)

// ParseGranularity normalizes user input to a Granularity value.
func ParseGranularity(value string) (Granularity, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "day":
		return GranularityDay, nil
	case "week":
		return GranularityWeek, nil
	default:
		return "", fmt.Errorf("invalid type %q (expected day or week)", value)
	}
}

// Badge values form the closed vocabulary the enrichment step may attach.
const (
	BadgeUpset      = "upset"
	BadgeNailBiter  = "nail-biter"
	BadgeComeback   = "comeback"
	BadgeBlowout    = "blowout"
	BadgeGameOfWeek = "game-of-week"
)

// ValidBadges maps every allowed badge value for validation lookups.
var ValidBadges = map[string]bool{
	BadgeUpset:      true,
	BadgeNailBiter:  true,
	BadgeComeback:   true,
	BadgeBlowout:    true,
	BadgeGameOfWeek: true,
}

// FetchedGame is one game as fetched from the scoreboard, including the recap
// article text that feeds the enrichment step.
type FetchedGame struct {
	GameID         string `json:"game_id"`
	AwayTeam       string `json:"away_team"`
	AwayAbbr       string `json:"away_abbr"`
	AwayScore      int    `json:"away_score"`
	AwayRecord     string `json:"away_record"`
	HomeTeam       string `json:"home_team"`
	HomeAbbr       string `json:"home_abbr"`
	HomeScore      int    `json:"home_score"`
	HomeRecord     string `json:"home_record"`
	KickoffISO     string `json:"game_date_iso"`
	KickoffDisplay string `json:"game_date_display"`
	Stadium        string `json:"stadium"`
	TVNetwork      string `json:"tv_network"`
	RecapURL       string `json:"recap_url"`
	RecapText      string `json:"recap_text"`
}

// EnrichedGame is a FetchedGame after enrichment: the recap blob is dropped
// and an AI-written summary plus badges are attached.
type EnrichedGame struct {
	GameID         string   `json:"game_id"`
	AwayTeam       string   `json:"away_team"`
	AwayAbbr       string   `json:"away_abbr"`
	AwayScore      int      `json:"away_score"`
	AwayRecord     string   `json:"away_record"`
	HomeTeam       string   `json:"home_team"`
	HomeAbbr       string   `json:"home_abbr"`
	HomeScore      int      `json:"home_score"`
	HomeRecord     string   `json:"home_record"`
	KickoffISO     string   `json:"game_date_iso"`
	KickoffDisplay string   `json:"game_date_display"`
	Stadium        string   `json:"stadium"`
	TVNetwork      string   `json:"tv_network"`
	RecapURL       string   `json:"recap_url"`
	Summary        string   `json:"summary"`
	Badges         []string `json:"badges"`
}

// Enrich converts a fetched game into its enriched form, attaching the given
// summary and badges and dropping the recap text.
func (g FetchedGame) Enrich(summary string, badges []string) EnrichedGame {
	if badges == nil {
		badges = []string{}
	}
	return EnrichedGame{
		GameID:         g.GameID,
		AwayTeam:       g.AwayTeam,
		AwayAbbr:       g.AwayAbbr,
		AwayScore:      g.AwayScore,
		AwayRecord:     g.AwayRecord,
		HomeTeam:       g.HomeTeam,
		HomeAbbr:       g.HomeAbbr,
		HomeScore:      g.HomeScore,
		HomeRecord:     g.HomeRecord,
		KickoffISO:     g.KickoffISO,
		KickoffDisplay: g.KickoffDisplay,
		Stadium:        g.Stadium,
		TVNetwork:      g.TVNetwork,
		RecapURL:       g.RecapURL,
		Summary:        summary,
		Badges:         badges,
	}
}

// Metadata describes one pipeline artifact: which date/week it covers plus
// per-stage bookkeeping timestamps.
type Metadata struct {
	Date        string      `json:"date"`
	Type        Granularity `json:"type"`
	Week        int         `json:"week"`
	Year        int         `json:"year"`
	FetchedAt   string      `json:"fetched_at,omitempty"`
	GeneratedAt string      `json:"generated_at,omitempty"`
	AIProvider  string      `json:"ai_provider,omitempty"`
}

// FetchArtifact is the fetch stage's output file shape.
type FetchArtifact struct {
	Metadata Metadata      `json:"metadata"`
	Games    []FetchedGame `json:"games"`
}

// NewsletterArtifact is the enrich stage's output file shape and the publish
// stage's input.
type NewsletterArtifact struct {
	Metadata Metadata       `json:"metadata"`
	Games    []EnrichedGame `json:"games"`
}

// GameCount returns the number of games in the artifact.
func (n NewsletterArtifact) GameCount() int {
	return len(n.Games)
}

// UpsetCount returns how many games carry the upset badge.
func (n NewsletterArtifact) UpsetCount() int {
	count := 0
	for _, game := range n.Games {
		for _, badge := range game.Badges {
			if badge == BadgeUpset {
				count++
				break
			}
		}
	}
	return count
}

var gameIDExpr = regexp.MustCompile(`gameId[=/](\d+)`)

// DeriveGameID recovers a stable identifier for a game missing one: first
// from the recap URL's gameId segment, else from the team names.
func DeriveGameID(recapURL, awayTeam, homeTeam string) string {
	if recapURL != "" {
		if match := gameIDExpr.FindStringSubmatch(recapURL); match != nil {
			return match[1]
		}
		if parsed, err := url.Parse(recapURL); err == nil {
			if id := parsed.Query().Get("gameId"); id != "" {
				return id
			}
		}
	}
	slug := func(name string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
	}
	return fmt.Sprintf("%s_at_%s", slug(awayTeam), slug(homeTeam))
}
