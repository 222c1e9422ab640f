// Package season maps calendar dates onto 1-based season week numbers.
//
// A season week is a Thursday-through-Wednesday cycle anchored at the season
// start date (itself conventionally a Thursday). The resolver never returns a
// value below 1 and enforces no upper bound; season-length validation belongs
// to callers.
package season

import "time"

// Policy selects how a reference date inside an in-progress cycle is treated.
type Policy int

const (
	// PolicyNaive counts cycles with no completeness adjustment.
	PolicyNaive Policy = iota

	// PolicyMondayCutoff treats a week as still in progress through Monday:
	// a reference on the Thursday-to-Monday span of its cycle resolves to the
	// previous, completed week. Tuesday and Wednesday resolve to the current
	// cycle, whose games have all been played.
	PolicyMondayCutoff
)

// mondayCutoffDays is how many days of a cycle count as "in progress"
// (Thursday, Friday, Saturday, Sunday, Monday).
const mondayCutoffDays = 5

// Resolve maps a reference date to its season week number under the given
// policy. The result is clamped to a minimum of 1, so references before the
// season start are safe. Only the calendar dates matter; time of day and
// timezone offsets on the inputs are ignored.
func Resolve(seasonStart, reference time.Time, policy Policy) int {
	daysElapsed := wholeDaysBetween(seasonStart, reference)
	week := floorDiv(daysElapsed, 7) + 1

	if policy == PolicyMondayCutoff && positiveMod(daysElapsed, 7) < mondayCutoffDays {
		week--
	}

	if week < 1 {
		return 1
	}
	return week
}

// Resolver yields the week to operate on, whether computed or pinned.
type Resolver interface {
	Week(reference time.Time) int
}

// DateResolver computes the week from a season start date and a policy.
type DateResolver struct {
	SeasonStart time.Time
	Policy      Policy
}

// Week implements Resolver.
func (r DateResolver) Week(reference time.Time) int {
	return Resolve(r.SeasonStart, reference, r.Policy)
}

// FixedResolver always returns a manually pinned week number.
type FixedResolver int

// Week implements Resolver, ignoring the reference date.
func (r FixedResolver) Week(time.Time) int {
	return int(r)
}

// NewResolver picks the fixed resolver when a manual week override is given
// (greater than zero), else the date-based resolver.
func NewResolver(seasonStart time.Time, policy Policy, manualWeek int) Resolver {
	if manualWeek > 0 {
		return FixedResolver(manualWeek)
	}
	return DateResolver{SeasonStart: seasonStart, Policy: policy}
}

func wholeDaysBetween(start, end time.Time) int {
	startDay := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	endDay := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	return int(endDay.Sub(startDay).Hours() / 24)
}

func floorDiv(a, b int) int {
	quotient := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		quotient--
	}
	return quotient
}

func positiveMod(a, b int) int {
	remainder := a % b
	if remainder < 0 {
		remainder += b
	}
	return remainder
}
