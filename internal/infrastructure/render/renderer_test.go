package render

import (
	"strings"
	"testing"

	"GridironDigest/internal/archive"
	"GridironDigest/internal/pipeline"
)

func TestRenderNewsletter(t *testing.T) {
	t.Parallel()

	renderer, err := NewHTMLRenderer()
	if err != nil {
		t.Fatalf("NewHTMLRenderer: %v", err)
	}

	view := pipeline.NewsletterView{
		Title:      "Week 8 Sunday",
		Week:       8,
		GameCount:  1,
		UpsetCount: 1,
		Name:       "ReplAI Review",
		Tagline:    "AI-Powered NFL Recaps",
		Games: []pipeline.GameView{
			{
				AwayTeam: "Buffalo Bills", AwayAbbr: "BUF", AwayScore: 31,
				AwayRecord: "7-2", AwayIcon: "images/BUF.png", AwayClass: "winner",
				HomeTeam: "Miami Dolphins", HomeAbbr: "MIA", HomeScore: 24,
				HomeRecord: "4-5", HomeIcon: "images/MIA.png", HomeClass: "loser",
				Summary:  "The Bills pulled away late.",
				RecapURL: "https://www.espn.com/nfl/recap?gameId=401671789",
				Badges:   []pipeline.BadgeView{{CSSClass: "badge-upset", Label: "⬆️ Upset"}},
				Meta:     []string{"📅 Sun 10/26 1:00PM ET", "📺 CBS"},
			},
		},
	}

	html, err := renderer.Render("newsletter", view)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	for _, want := range []string{
		"ReplAI Review - Week 8 Sunday",
		"Buffalo Bills",
		"badge-upset",
		"Read full recap",
		"images/BUF.png",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("rendered newsletter missing %q", want)
		}
	}
}

func TestRenderIndex(t *testing.T) {
	t.Parallel()

	renderer, err := NewHTMLRenderer()
	if err != nil {
		t.Fatalf("NewHTMLRenderer: %v", err)
	}

	view := archive.IndexView{
		Name:    "ReplAI Review",
		Tagline: "AI-Powered NFL Recaps",
		Weeks: []archive.IndexWeekView{
			{
				Title: "Week 8 - 2025",
				Entries: []archive.IndexEntryView{
					{Filename: "2025-week08-sun-251026.html", Label: "Sunday, 2025-10-26", Count: "13 games"},
					{Filename: "2025-week08.html", Label: "Full Week", Count: "16 games"},
				},
			},
		},
	}

	html, err := renderer.Render("index", view)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	for _, want := range []string{
		"ReplAI Review",
		"Week 8 - 2025",
		"2025-week08-sun-251026.html",
		"Full Week",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("rendered index missing %q", want)
		}
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	t.Parallel()

	renderer, err := NewHTMLRenderer()
	if err != nil {
		t.Fatalf("NewHTMLRenderer: %v", err)
	}

	if _, err := renderer.Render("missing", nil); err == nil {
		t.Fatal("unknown template name should fail")
	}
}
