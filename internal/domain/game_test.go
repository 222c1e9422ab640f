package domain

import "testing"

func TestParseGranularity(t *testing.T) {
	t.Parallel()

	for input, want := range map[string]Granularity{
		"day":   GranularityDay,
		"week":  GranularityWeek,
		" Day ": GranularityDay,
		"WEEK":  GranularityWeek,
	} {
		got, err := ParseGranularity(input)
		if err != nil {
			t.Fatalf("ParseGranularity(%q): %v", input, err)
		}
		if got != want {
			t.Fatalf("ParseGranularity(%q) = %q, want %q", input, got, want)
		}
	}

	if _, err := ParseGranularity("month"); err == nil {
		t.Fatal("ParseGranularity should reject unknown values")
	}
}

func TestDeriveGameID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		recapURL string
		away     string
		home     string
		want     string
	}{
		{
			name:     "query parameter",
			recapURL: "https://www.espn.com/nfl/recap?gameId=401671789",
			want:     "401671789",
		},
		{
			name:     "path segment",
			recapURL: "https://www.espn.com/nfl/recap/_/gameId/401671789",
			want:     "401671789",
		},
		{
			name: "team slug fallback",
			away: "Buffalo Bills",
			home: "Miami Dolphins",
			want: "buffalo_bills_at_miami_dolphins",
		},
		{
			name:     "unusable url falls back to slug",
			recapURL: "https://example.com/recap/abc",
			away:     "Green Bay Packers",
			home:     "Chicago Bears",
			want:     "green_bay_packers_at_chicago_bears",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := DeriveGameID(tc.recapURL, tc.away, tc.home); got != tc.want {
				t.Fatalf("DeriveGameID = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestEnrichDropsRecapAndDefaultsBadges(t *testing.T) {
	t.Parallel()

	fetched := FetchedGame{
		GameID:    "401671789",
		AwayTeam:  "Buffalo Bills",
		HomeTeam:  "Miami Dolphins",
		RecapText: "long recap body",
	}

	enriched := fetched.Enrich("", nil)
	if enriched.Badges == nil || len(enriched.Badges) != 0 {
		t.Fatalf("nil badges should become an empty slice, got %#v", enriched.Badges)
	}
	if enriched.GameID != fetched.GameID || enriched.HomeTeam != fetched.HomeTeam {
		t.Fatalf("metadata not carried over: %#v", enriched)
	}
}

func TestUpsetCount(t *testing.T) {
	t.Parallel()

	artifact := NewsletterArtifact{Games: []EnrichedGame{
		{GameID: "a", Badges: []string{BadgeUpset, BadgeBlowout}},
		{GameID: "b", Badges: []string{BadgeNailBiter}},
		{GameID: "c", Badges: []string{BadgeUpset}},
	}}

	if got := artifact.UpsetCount(); got != 2 {
		t.Fatalf("UpsetCount = %d, want 2", got)
	}
	if got := artifact.GameCount(); got != 3 {
		t.Fatalf("GameCount = %d, want 3", got)
	}
}
