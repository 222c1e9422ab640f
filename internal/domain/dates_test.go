package domain

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	t.Parallel()

	parsed, err := ParseDate("20251109")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if parsed.Year() != 2025 || parsed.Month() != time.November || parsed.Day() != 9 {
		t.Fatalf("unexpected date: %v", parsed)
	}
}

func TestParseDateRejects(t *testing.T) {
	t.Parallel()

	for _, value := range []string{
		"",
		"2025-11-09",
		"202511",
		"20251190",
		"20191109",
		"20361109",
		"abcd1109",
	} {
		if _, err := ParseDate(value); err == nil {
			t.Errorf("ParseDate(%q) should fail", value)
		}
	}
}

func TestParseKickoffLayouts(t *testing.T) {
	t.Parallel()

	for _, iso := range []string{"2025-10-31T00:15Z", "2025-10-31T00:15:00Z"} {
		parsed, err := ParseKickoff(iso)
		if err != nil {
			t.Fatalf("ParseKickoff(%q): %v", iso, err)
		}
		if parsed.UTC().Hour() != 0 || parsed.UTC().Minute() != 15 {
			t.Fatalf("ParseKickoff(%q) = %v", iso, parsed)
		}
	}

	if _, err := ParseKickoff("not-a-time"); err == nil {
		t.Fatal("ParseKickoff should fail on garbage input")
	}
}

func TestFormatKickoff(t *testing.T) {
	t.Parallel()

	// 00:15 UTC on Friday is 8:15PM Thursday in the Eastern zone.
	display, err := FormatKickoff("2025-10-31T00:15Z")
	if err != nil {
		t.Fatalf("FormatKickoff: %v", err)
	}
	if display != "Thu 10/30 8:15PM ET" {
		t.Fatalf("FormatKickoff = %q", display)
	}

	display, err = FormatKickoff("2025-10-26T17:00Z")
	if err != nil {
		t.Fatalf("FormatKickoff: %v", err)
	}
	if display != "Sun 10/26 1:00PM ET" {
		t.Fatalf("FormatKickoff = %q", display)
	}
}
