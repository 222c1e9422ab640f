package pipeline

import (
	"fmt"

	"GridironDigest/internal/domain"
)

// badgePresentation maps the closed badge vocabulary to CSS classes and labels.
var badgePresentation = map[string]struct {
	CSSClass string
	Label    string
}{
	domain.BadgeUpset:      {"badge-upset", "⬆️ Upset"},
	domain.BadgeNailBiter:  {"badge-nailbiter", "🎯 Nail-Biter"},
	domain.BadgeComeback:   {"badge-comeback", "🔥 Comeback"},
	domain.BadgeBlowout:    {"badge-blowout", "💥 Blowout"},
	domain.BadgeGameOfWeek: {"badge-game-of-week", "🏆 Game of the Week"},
}

// BadgeView is one badge prepared for templating.
type BadgeView struct {
	CSSClass string
	Label    string
}

// GameView is one game prepared for the newsletter template.
type GameView struct {
	AwayTeam   string
	AwayAbbr   string
	AwayScore  int
	AwayRecord string
	AwayIcon   string
	AwayClass  string
	HomeTeam   string
	HomeAbbr   string
	HomeScore  int
	HomeRecord string
	HomeIcon   string
	HomeClass  string
	Summary    string
	RecapURL   string
	Badges     []BadgeView
	Meta       []string
}

// NewsletterView is the full binding set for the newsletter template.
type NewsletterView struct {
	Title      string
	Week       int
	GameCount  int
	UpsetCount int
	Games      []GameView
	Name       string
	Tagline    string
}

func newsletterView(newsletter domain.NewsletterArtifact, branding Branding) NewsletterView {
	games := make([]GameView, 0, len(newsletter.Games))
	for _, game := range newsletter.Games {
		games = append(games, gameView(game))
	}
	return NewsletterView{
		Title:      editionTitle(newsletter.Metadata),
		Week:       newsletter.Metadata.Week,
		GameCount:  newsletter.GameCount(),
		UpsetCount: newsletter.UpsetCount(),
		Games:      games,
		Name:       branding.Name,
		Tagline:    branding.Tagline,
	}
}

func gameView(game domain.EnrichedGame) GameView {
	awayClass, homeClass := "tie", "tie"
	switch {
	case game.AwayScore > game.HomeScore:
		awayClass, homeClass = "winner", "loser"
	case game.HomeScore > game.AwayScore:
		awayClass, homeClass = "loser", "winner"
	}

	badges := make([]BadgeView, 0, len(game.Badges))
	for _, badge := range game.Badges {
		if view, ok := badgePresentation[badge]; ok {
			badges = append(badges, BadgeView{CSSClass: view.CSSClass, Label: view.Label})
		}
	}

	var meta []string
	if game.KickoffDisplay != "" {
		meta = append(meta, "📅 "+game.KickoffDisplay)
	}
	if game.Stadium != "" && game.Stadium != "N/A" {
		meta = append(meta, "📍 "+game.Stadium)
	}
	if game.TVNetwork != "" && game.TVNetwork != "N/A" {
		meta = append(meta, "📺 "+game.TVNetwork)
	}

	return GameView{
		AwayTeam:   game.AwayTeam,
		AwayAbbr:   game.AwayAbbr,
		AwayScore:  game.AwayScore,
		AwayRecord: game.AwayRecord,
		AwayIcon:   "images/" + game.AwayAbbr + ".png",
		AwayClass:  awayClass,
		HomeTeam:   game.HomeTeam,
		HomeAbbr:   game.HomeAbbr,
		HomeScore:  game.HomeScore,
		HomeRecord: game.HomeRecord,
		HomeIcon:   "images/" + game.HomeAbbr + ".png",
		HomeClass:  homeClass,
		Summary:    game.Summary,
		RecapURL:   game.RecapURL,
		Badges:     badges,
		Meta:       meta,
	}
}

// editionTitle labels the edition: "Week 9" or "Week 9 Sunday".
func editionTitle(meta domain.Metadata) string {
	if meta.Type == domain.GranularityDay {
		if name := dayName(meta); name != "" {
			return fmt.Sprintf("Week %d %s", meta.Week, name)
		}
	}
	return fmt.Sprintf("Week %d", meta.Week)
}

// dayName returns the full weekday name for day-granularity metadata, else "".
func dayName(meta domain.Metadata) string {
	if meta.Type != domain.GranularityDay {
		return ""
	}
	parsed, err := domain.ParseDate(meta.Date)
	if err != nil {
		return ""
	}
	return parsed.Format("Monday")
}
