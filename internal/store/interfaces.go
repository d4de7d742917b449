package store

import (
	"context"

	"github.com/daybreak-app/daybreak-store/models"
)

// JournalStorage is typed CRUD over journal entries. Title and body pass
// through the field codec on every write and read; mood, tags and
// timestamps stay plaintext and are the only filterable attributes.
type JournalStorage interface {
	Create(ctx context.Context, entry *models.JournalEntry) error
	Get(ctx context.Context, id string) (models.JournalEntry, error)
	List(ctx context.Context, filter models.JournalFilter) ([]models.JournalEntry, error)
	Update(ctx context.Context, entry *models.JournalEntry) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// CheckInStorage owns the daily check-in table (at most one row per
// calendar day). The note passes through the field codec.
type CheckInStorage interface {
	// Upsert creates or replaces the check-in for entry.Day.
	Upsert(ctx context.Context, entry *models.CheckIn) error
	GetByDay(ctx context.Context, day string) (models.CheckIn, error)
	List(ctx context.Context, limit uint64) ([]models.CheckIn, error)
	// Marks returns the check-in stream as per-day marks, descending by day.
	Marks(ctx context.Context) ([]models.DayMark, error)
	Count(ctx context.Context) (int, error)
}

// DailyMarkStorage owns the reading/gratitude/nightly-review streams:
// append-only per-day booleans, unique per (stream, day).
type DailyMarkStorage interface {
	Mark(ctx context.Context, stream models.Stream, day string, done bool) error
	// Marks returns one stream's marks, descending by day.
	Marks(ctx context.Context, stream models.Stream) ([]models.DayMark, error)
	All(ctx context.Context) ([]models.DayMark, error)
}

// ContactStorage is typed CRUD over support-network contacts plus the
// sponsor singleton role. Name, phone and notes pass through the codec.
type ContactStorage interface {
	Create(ctx context.Context, contact *models.Contact) error
	Get(ctx context.Context, id string) (models.Contact, error)
	List(ctx context.Context) ([]models.Contact, error)
	Update(ctx context.Context, contact *models.Contact) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)

	// SetSponsor makes the given contact the sole sponsor: all existing
	// holders are cleared and the new one set inside one transaction.
	SetSponsor(ctx context.Context, id string) error
	ClearSponsor(ctx context.Context) error
	HasSponsor(ctx context.Context) (bool, error)
}

// MeetingStorage owns meetings (plaintext, searchable), the home-group
// singleton role, and attendance logs (note encrypted). Deleting a meeting
// leaves its logs' meeting_id dangling; readers treat it as optional.
type MeetingStorage interface {
	Create(ctx context.Context, meeting *models.Meeting) error
	Get(ctx context.Context, id string) (models.Meeting, error)
	List(ctx context.Context) ([]models.Meeting, error)
	Update(ctx context.Context, meeting *models.Meeting) error
	Delete(ctx context.Context, id string) error

	SetHomeGroup(ctx context.Context, id string) error
	HasHomeGroup(ctx context.Context) (bool, error)

	LogAttendance(ctx context.Context, log *models.MeetingLog) error
	Logs(ctx context.Context, limit uint64) ([]models.MeetingLog, error)
	LogCount(ctx context.Context) (int, error)
}

// StepWorkStorage owns step-work answers, keyed by catalog question id.
// Answers pass through the codec; counts never require decryption.
type StepWorkStorage interface {
	// SaveAnswer creates or replaces the answer for answer.QuestionID.
	SaveAnswer(ctx context.Context, answer *models.StepAnswer) error
	Answer(ctx context.Context, questionID string) (models.StepAnswer, error)
	AnswersForStep(ctx context.Context, step int) ([]models.StepAnswer, error)
	// AnsweredCounts returns answered-question counts keyed by step.
	AnsweredCounts(ctx context.Context) (map[int]int, error)
	All(ctx context.Context) ([]models.StepAnswer, error)
}

// AchievementStorage persists one state row per achievement definition.
// Rows are created as locked, mutated by the rule engine or the self-check
// path, and never deleted except on full data reset.
type AchievementStorage interface {
	// EnsureStates inserts a locked state for every definition that has
	// none yet. Called once at startup after definitions load.
	EnsureStates(ctx context.Context, defs []models.AchievementDefinition) error
	States(ctx context.Context) (map[string]models.AchievementState, error)
	List(ctx context.Context) ([]models.AchievementState, error)
	Save(ctx context.Context, states ...models.AchievementState) error
}

// ProfileStorage owns the singleton profile row.
type ProfileStorage interface {
	Get(ctx context.Context) (models.Profile, error)
	Save(ctx context.Context, profile models.Profile) error
}
