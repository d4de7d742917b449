package models

import "time"

// Meeting is a recurring fellowship meeting. All columns are plaintext:
// meeting schedules are not sensitive content and must remain searchable.
// IsHomeGroup is a singleton role: at most one meeting holds it at any time.
type Meeting struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Weekday     int       `json:"weekday"`
	StartTime   string    `json:"start_time,omitempty"`
	Location    string    `json:"location,omitempty"`
	IsHomeGroup bool      `json:"is_home_group"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// MeetingLog records one attended meeting. MeetingID is optional: deleting
// a meeting leaves its logs with a dangling reference, so readers must treat
// the field as possibly unresolvable. Note is encrypted.
type MeetingLog struct {
	ID         string    `json:"id"`
	MeetingID  string    `json:"meeting_id,omitempty"`
	AttendedAt time.Time `json:"attended_at"`
	Note       string    `json:"note,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
