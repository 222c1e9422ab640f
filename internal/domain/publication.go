package domain

import "time"

// Publication is one published edition, recorded in the publication log.
type Publication struct {
	Year        int
	Week        int
	Type        Granularity
	Day         string
	Filename    string
	GameCount   int
	AIProvider  string
	PublishedAt time.Time
}
