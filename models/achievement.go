package models

import "time"

// UnlockType selects how the rule engine evaluates an achievement.
type UnlockType string

const (
	// UnlockAutomatic unlocks when a named predicate over the progress
	// context becomes true (e.g. "has a sponsor").
	UnlockAutomatic UnlockType = "automatic"

	// UnlockCount unlocks when a named context counter reaches Target.
	UnlockCount UnlockType = "count"

	// UnlockStreak unlocks when a named stream's streak reaches Target.
	UnlockStreak UnlockType = "streak"

	// UnlockProgressive unlocks from step-work completion percentage. The
	// achievement id encodes the step number and phase (started/completed).
	UnlockProgressive UnlockType = "progressive"

	// UnlockSelfCheck is never unlocked by the engine; only an explicit
	// user action unlocks it.
	UnlockSelfCheck UnlockType = "self_check"
)

// AchievementCategory groups achievements for display.
type AchievementCategory string

const (
	CategoryMilestone  AchievementCategory = "milestone"
	CategoryEngagement AchievementCategory = "engagement"
	CategoryConnection AchievementCategory = "connection"
	CategoryMeetings   AchievementCategory = "meetings"
	CategorySteps      AchievementCategory = "steps"
	CategoryResilience AchievementCategory = "resilience"
)

// AchievementStatus is the lifecycle state of one achievement.
type AchievementStatus string

const (
	// StatusLocked means prerequisites are unmet.
	StatusLocked AchievementStatus = "locked"

	// StatusAvailable means prerequisites are met but no progress exists yet.
	StatusAvailable AchievementStatus = "available"

	// StatusInProgress means partial progress has been recorded.
	StatusInProgress AchievementStatus = "in_progress"

	// StatusUnlocked is terminal: the engine never re-locks an achievement.
	StatusUnlocked AchievementStatus = "unlocked"
)

// AchievementDefinition is one static achievement rule. Definitions are
// compiled in, never persisted, and never user-editable. Metric names a key
// in the engine's counter or predicate registry; for streak achievements it
// names a stream.
type AchievementDefinition struct {
	ID               string              `json:"id"`
	Category         AchievementCategory `json:"category"`
	Title            string              `json:"title"`
	Description      string              `json:"description"`
	Icon             string              `json:"icon"`
	Unlock           UnlockType          `json:"unlock_type"`
	Metric           string              `json:"metric,omitempty"`
	Target           int                 `json:"target,omitempty"`
	RequiresDaysClean int                `json:"requires_days_clean,omitempty"`
	Requires         []string            `json:"requires,omitempty"`
}

// AchievementState is the persisted, mutable side of one definition.
// Invariant: Status == unlocked implies UnlockedAt is set and, for
// count/streak/progressive types, Current >= Target.
type AchievementState struct {
	ID         string            `json:"id"`
	Status     AchievementStatus `json:"status"`
	Current    int               `json:"current"`
	UnlockedAt *time.Time        `json:"unlocked_at,omitempty"`
	Reflection string            `json:"reflection,omitempty"`
}

// Unlocked reports whether the state has reached its terminal status.
func (s AchievementState) Unlocked() bool {
	return s.Status == StatusUnlocked
}
