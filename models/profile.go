package models

import "time"

// Profile is the singleton user profile row. DisplayName is encrypted;
// CleanDate stays plaintext because days-clean arithmetic and milestone
// checks run against it constantly.
type Profile struct {
	DisplayName string    `json:"display_name,omitempty"`
	CleanDate   string    `json:"clean_date,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DaysClean computes whole days from the clean date up to today (local
// calendar days, not 24h periods). Returns 0 when no clean date is set or
// it does not parse.
func (p Profile) DaysClean(today time.Time) int {
	if p.CleanDate == "" {
		return 0
	}
	start, err := time.ParseInLocation(DayLayout, p.CleanDate, today.Location())
	if err != nil {
		return 0
	}
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	if start.After(day) {
		return 0
	}
	return int(day.Sub(start).Hours() / 24)
}
