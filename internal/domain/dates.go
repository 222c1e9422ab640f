package domain

import (
	"fmt"
	"time"
)

const (
	// CompactDateLayout is the YYYYMMDD form used in paths and CLI flags.
	CompactDateLayout = "20060102"

	minSeasonYear = 2020
	maxSeasonYear = 2035
)

// eastern resolves the display timezone once. Game schedules are published in
// US Eastern time; when the tz database is unavailable the fixed EDT offset
// used during the season is close enough for date bucketing.
var eastern = func() *time.Location {
	if loc, err := time.LoadLocation("America/New_York"); err == nil {
		return loc
	}
	return time.FixedZone("EDT", -4*60*60)
}()

// Eastern returns the timezone used for display formatting and day filtering.
func Eastern() *time.Location {
	return eastern
}

// ParseDate parses a YYYYMMDD string and rejects out-of-range values.
func ParseDate(value string) (time.Time, error) {
	if len(value) != 8 {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYYMMDD)", value)
	}
	parsed, err := time.Parse(CompactDateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", value, err)
	}
	if year := parsed.Year(); year < minSeasonYear || year > maxSeasonYear {
		return time.Time{}, fmt.Errorf("invalid year %d (expected %d-%d)", year, minSeasonYear, maxSeasonYear)
	}
	return parsed, nil
}

// ParseKickoff parses an ISO 8601 kickoff timestamp such as "2025-10-30T20:15Z".
func ParseKickoff(iso string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04Z07:00"} {
		if parsed, err := time.Parse(layout, iso); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid kickoff timestamp %q", iso)
}

// FormatKickoff renders a kickoff timestamp for display, e.g. "Thu 10/30 8:15PM ET".
func FormatKickoff(iso string) (string, error) {
	kickoff, err := ParseKickoff(iso)
	if err != nil {
		return "", err
	}
	local := kickoff.In(eastern)
	hour := local.Hour() % 12
	if hour == 0 {
		hour = 12
	}
	meridiem := "AM"
	if local.Hour() >= 12 {
		meridiem = "PM"
	}
	return fmt.Sprintf("%s %d/%d %d:%02d%s ET",
		local.Format("Mon"), int(local.Month()), local.Day(), hour, local.Minute(), meridiem), nil
}
