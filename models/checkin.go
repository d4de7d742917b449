package models

import "time"

// DayLayout is the canonical calendar-date format for all per-day records.
// Dates formatted this way order lexicographically, which the per-day tables
// rely on for range scans.
const DayLayout = "2006-01-02"

// Stream identifies one per-day boolean record series used for streak
// derivation.
type Stream string

const (
	StreamCheckIn       Stream = "check_in"
	StreamReading       Stream = "reading"
	StreamGratitude     Stream = "gratitude"
	StreamNightlyReview Stream = "nightly_review"
)

// Streams lists every known stream in a stable order.
var Streams = []Stream{StreamCheckIn, StreamReading, StreamGratitude, StreamNightlyReview}

// CheckIn is the daily check-in record, at most one per calendar day.
// Feeling and Craving are plaintext 1-10 ratings; Note is encrypted.
type CheckIn struct {
	ID        string    `json:"id"`
	Day       string    `json:"day"`
	Feeling   int       `json:"feeling"`
	Craving   int       `json:"craving"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DayMark is one day of one stream: "did this happen on that day".
// Marks are append-only and unique per (stream, day).
type DayMark struct {
	Stream Stream `json:"stream"`
	Day    string `json:"day"`
	Done   bool   `json:"done"`
}

// Day formats t as a calendar date in the canonical layout.
func Day(t time.Time) string {
	return t.Format(DayLayout)
}
