// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Daybreak Authors

package achieve

import (
	"fmt"

	"github.com/daybreak-app/daybreak-store/models"
)

// Definitions returns the full static achievement catalog. The catalog is
// compiled in and never persisted; adding an achievement is a data change
// here plus, at most, a new registry entry.
func Definitions() []models.AchievementDefinition {
	defs := []models.AchievementDefinition{
		// Clean-time milestones form a chain: each requires the previous
		// one so the celebration order can never invert.
		{
			ID:          "clean_1",
			Category:    models.CategoryMilestone,
			Title:       "Day One",
			Description: "One full day clean.",
			Icon:        "sunrise",
			Unlock:      models.UnlockCount,
			Metric:      MetricDaysClean,
			Target:      1,
		},
		{
			ID:          "clean_7",
			Category:    models.CategoryMilestone,
			Title:       "One Week",
			Description: "Seven days clean.",
			Icon:        "calendar-week",
			Unlock:      models.UnlockCount,
			Metric:      MetricDaysClean,
			Target:      7,
			Requires:    []string{"clean_1"},
		},
		{
			ID:          "clean_30",
			Category:    models.CategoryMilestone,
			Title:       "One Month",
			Description: "Thirty days clean.",
			Icon:        "calendar-month",
			Unlock:      models.UnlockCount,
			Metric:      MetricDaysClean,
			Target:      30,
			Requires:    []string{"clean_7"},
		},
		{
			ID:          "clean_90",
			Category:    models.CategoryMilestone,
			Title:       "Ninety Days",
			Description: "Ninety days clean.",
			Icon:        "medal",
			Unlock:      models.UnlockCount,
			Metric:      MetricDaysClean,
			Target:      90,
			Requires:    []string{"clean_30"},
		},
		{
			ID:          "clean_180",
			Category:    models.CategoryMilestone,
			Title:       "Six Months",
			Description: "Half a year clean.",
			Icon:        "star-half",
			Unlock:      models.UnlockCount,
			Metric:      MetricDaysClean,
			Target:      180,
			Requires:    []string{"clean_90"},
		},
		{
			ID:          "clean_365",
			Category:    models.CategoryMilestone,
			Title:       "One Year",
			Description: "A full year clean.",
			Icon:        "star",
			Unlock:      models.UnlockCount,
			Metric:      MetricDaysClean,
			Target:      365,
			Requires:    []string{"clean_180"},
		},

		// Connection.
		{
			ID:          "contacts_3",
			Category:    models.CategoryConnection,
			Title:       "Building a Network",
			Description: "Add three support contacts.",
			Icon:        "users",
			Unlock:      models.UnlockCount,
			Metric:      MetricContactCount,
			Target:      3,
		},
		{
			ID:          "contacts_10",
			Category:    models.CategoryConnection,
			Title:       "Strong Network",
			Description: "Add ten support contacts.",
			Icon:        "users-round",
			Unlock:      models.UnlockCount,
			Metric:      MetricContactCount,
			Target:      10,
		},
		{
			ID:          "sponsor",
			Category:    models.CategoryConnection,
			Title:       "Found a Sponsor",
			Description: "Mark one of your contacts as your sponsor.",
			Icon:        "handshake",
			Unlock:      models.UnlockAutomatic,
			Metric:      PredicateHasSponsor,
		},
		{
			ID:          "home_group",
			Category:    models.CategoryMeetings,
			Title:       "Home Group",
			Description: "Choose a home group meeting.",
			Icon:        "home",
			Unlock:      models.UnlockAutomatic,
			Metric:      PredicateHasHomeGroup,
		},

		// Meetings.
		{
			ID:          "meetings_1",
			Category:    models.CategoryMeetings,
			Title:       "First Meeting",
			Description: "Log your first meeting.",
			Icon:        "door-open",
			Unlock:      models.UnlockCount,
			Metric:      MetricMeetingLogCount,
			Target:      1,
		},
		{
			ID:          "meetings_10",
			Category:    models.CategoryMeetings,
			Title:       "Regular",
			Description: "Log ten meetings.",
			Icon:        "armchair",
			Unlock:      models.UnlockCount,
			Metric:      MetricMeetingLogCount,
			Target:      10,
			Requires:    []string{"meetings_1"},
		},
		{
			ID:          "meetings_90",
			Category:    models.CategoryMeetings,
			Title:       "90 in 90",
			Description: "Log ninety meetings.",
			Icon:        "trophy",
			Unlock:      models.UnlockCount,
			Metric:      MetricMeetingLogCount,
			Target:      90,
			Requires:    []string{"meetings_10"},
		},

		// Engagement.
		{
			ID:          "journal_1",
			Category:    models.CategoryEngagement,
			Title:       "First Entry",
			Description: "Write your first journal entry.",
			Icon:        "pen",
			Unlock:      models.UnlockCount,
			Metric:      MetricJournalCount,
			Target:      1,
		},
		{
			ID:          "journal_10",
			Category:    models.CategoryEngagement,
			Title:       "Keeping a Journal",
			Description: "Write ten journal entries.",
			Icon:        "notebook",
			Unlock:      models.UnlockCount,
			Metric:      MetricJournalCount,
			Target:      10,
			Requires:    []string{"journal_1"},
		},
		{
			ID:          "streak_checkin_7",
			Category:    models.CategoryEngagement,
			Title:       "Week of Check-ins",
			Description: "Check in seven days in a row.",
			Icon:        "flame",
			Unlock:      models.UnlockStreak,
			Metric:      string(models.StreamCheckIn),
			Target:      7,
		},
		{
			ID:          "streak_checkin_30",
			Category:    models.CategoryEngagement,
			Title:       "Month of Check-ins",
			Description: "Check in thirty days in a row.",
			Icon:        "flame-kindling",
			Unlock:      models.UnlockStreak,
			Metric:      string(models.StreamCheckIn),
			Target:      30,
			Requires:    []string{"streak_checkin_7"},
		},
		{
			ID:          "streak_reading_7",
			Category:    models.CategoryEngagement,
			Title:       "Daily Reader",
			Description: "Do your daily reading seven days in a row.",
			Icon:        "book-open",
			Unlock:      models.UnlockStreak,
			Metric:      string(models.StreamReading),
			Target:      7,
		},
		{
			ID:          "streak_gratitude_7",
			Category:    models.CategoryResilience,
			Title:       "Grateful Week",
			Description: "Record gratitude seven days in a row.",
			Icon:        "heart",
			Unlock:      models.UnlockStreak,
			Metric:      string(models.StreamGratitude),
			Target:      7,
		},
		{
			ID:          "streak_nightly_review_7",
			Category:    models.CategoryResilience,
			Title:       "Nightly Review",
			Description: "Complete your nightly review seven days in a row.",
			Icon:        "moon",
			Unlock:      models.UnlockStreak,
			Metric:      string(models.StreamNightlyReview),
			Target:      7,
		},

		// Self-check achievements are unlocked only by an explicit user
		// action, never by the engine.
		{
			ID:          "told_my_story",
			Category:    models.CategoryResilience,
			Title:       "Told My Story",
			Description: "Shared your story at a meeting.",
			Icon:        "mic",
			Unlock:      models.UnlockSelfCheck,
		},
		{
			ID:          "asked_for_help",
			Category:    models.CategoryResilience,
			Title:       "Asked for Help",
			Description: "Reached out when you needed to.",
			Icon:        "phone",
			Unlock:      models.UnlockSelfCheck,
		},
		{
			ID:                "made_amends",
			Category:          models.CategoryResilience,
			Title:             "Made an Amends",
			Description:       "Made a direct amends to someone you harmed.",
			Icon:              "scale",
			Unlock:            models.UnlockSelfCheck,
			RequiresDaysClean: 30,
		},
	}

	// Two progressive achievements per step: started at half the questions
	// answered, completed at all of them.
	for step := 1; step <= 12; step++ {
		defs = append(defs,
			models.AchievementDefinition{
				ID:          fmt.Sprintf("step_%d_started", step),
				Category:    models.CategorySteps,
				Title:       fmt.Sprintf("Working Step %d", step),
				Description: fmt.Sprintf("Answer half of the step %d questions.", step),
				Icon:        "footprints",
				Unlock:      models.UnlockProgressive,
				Target:      progressTarget,
			},
			models.AchievementDefinition{
				ID:          fmt.Sprintf("step_%d_completed", step),
				Category:    models.CategorySteps,
				Title:       fmt.Sprintf("Completed Step %d", step),
				Description: fmt.Sprintf("Answer every step %d question.", step),
				Icon:        "flag",
				Unlock:      models.UnlockProgressive,
				Target:      progressTarget,
				Requires:    []string{fmt.Sprintf("step_%d_started", step)},
			},
		)
	}

	return defs
}
