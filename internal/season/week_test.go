package season

import (
	"testing"
	"time"
)

var seasonStart = time.Date(2024, time.September, 5, 0, 0, 0, 0, time.UTC) // Thursday

func day(year int, month time.Month, dayOfMonth int) time.Time {
	return time.Date(year, month, dayOfMonth, 0, 0, 0, 0, time.UTC)
}

func TestResolveNaiveSeasonStartIsWeekOne(t *testing.T) {
	t.Parallel()

	if got := Resolve(seasonStart, seasonStart, PolicyNaive); got != 1 {
		t.Fatalf("expected week 1 at season start, got %d", got)
	}
}

func TestResolveNaiveWeeklyIncrement(t *testing.T) {
	t.Parallel()

	reference := day(2024, time.September, 12)
	for week := 2; week <= 20; week++ {
		if got := Resolve(seasonStart, reference, PolicyNaive); got != week {
			t.Fatalf("expected week %d at %s, got %d", week, reference.Format("2006-01-02"), got)
		}
		reference = reference.AddDate(0, 0, 7)
	}
}

func TestResolveNeverBelowOne(t *testing.T) {
	t.Parallel()

	references := []time.Time{
		day(2024, time.September, 4),
		day(2024, time.August, 1),
		day(2023, time.January, 1),
	}

	for _, reference := range references {
		for _, policy := range []Policy{PolicyNaive, PolicyMondayCutoff} {
			if got := Resolve(seasonStart, reference, policy); got < 1 {
				t.Fatalf("week %d below 1 for reference %s policy %d", got, reference.Format("2006-01-02"), policy)
			}
		}
	}
}

func TestResolveMondayCutoff(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		reference time.Time
		want      int
	}{
		// Week 8 runs Thu 2024-10-24 through Wed 2024-10-30.
		{"tuesday resolves completed week", day(2024, time.October, 29), 8},
		{"wednesday resolves completed week", day(2024, time.October, 30), 8},
		{"thursday still in progress", day(2024, time.October, 24), 7},
		{"sunday still in progress", day(2024, time.October, 27), 7},
		{"monday still in progress", day(2024, time.October, 28), 7},
		{"season start clamps to one", seasonStart, 1},
	}

	for _, tc := range cases {
		if got := Resolve(seasonStart, tc.reference, PolicyMondayCutoff); got != tc.want {
			t.Fatalf("%s: expected week %d, got %d", tc.name, tc.want, got)
		}
	}
}

func TestResolveIgnoresTimeOfDay(t *testing.T) {
	t.Parallel()

	late := time.Date(2024, time.October, 29, 23, 55, 0, 0, time.UTC)
	if got := Resolve(seasonStart, late, PolicyMondayCutoff); got != 8 {
		t.Fatalf("expected week 8 regardless of clock time, got %d", got)
	}
}

func TestFixedResolver(t *testing.T) {
	t.Parallel()

	resolver := NewResolver(seasonStart, PolicyMondayCutoff, 11)
	if got := resolver.Week(day(2024, time.September, 5)); got != 11 {
		t.Fatalf("expected pinned week 11, got %d", got)
	}
}

func TestNewResolverDateBased(t *testing.T) {
	t.Parallel()

	resolver := NewResolver(seasonStart, PolicyNaive, 0)
	if got := resolver.Week(day(2024, time.October, 29)); got != 8 {
		t.Fatalf("expected computed week 8, got %d", got)
	}
}
