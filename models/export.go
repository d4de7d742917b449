package models

import "time"

// ExportDocument is the fully decrypted portable snapshot of all user data.
// The store hands this struct to the export boundary; serializing it to a
// document format is the consumer's concern.
type ExportDocument struct {
	ExportedAt     time.Time          `json:"exported_at"`
	Profile        Profile            `json:"profile"`
	JournalEntries []JournalEntry     `json:"journal_entries"`
	CheckIns       []CheckIn          `json:"check_ins"`
	DayMarks       []DayMark          `json:"day_marks"`
	Contacts       []Contact          `json:"contacts"`
	Meetings       []Meeting          `json:"meetings"`
	MeetingLogs    []MeetingLog       `json:"meeting_logs"`
	StepAnswers    []StepAnswer       `json:"step_answers"`
	Achievements   []AchievementState `json:"achievements"`
}
