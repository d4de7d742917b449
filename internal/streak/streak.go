// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Daybreak Authors

// Package streak derives consecutive-day counts from per-day marks. The
// calculator is pure: it never touches the store and always recomputes from
// the full mark history, so there is no cached streak to drift out of sync.
package streak

import (
	"time"

	"github.com/daybreak-app/daybreak-store/models"
)

// Count returns the current consecutive-day streak ending today or
// yesterday. A missing mark for today does not break the streak (the day is
// not over yet); a missing mark for yesterday does. Marks with Done == false
// break the chain the same way absent days do.
func Count(marks []models.DayMark, today time.Time) int {
	done := make(map[string]bool, len(marks))
	for _, m := range marks {
		if m.Done {
			done[m.Day] = true
		}
	}
	if len(done) == 0 {
		return 0
	}

	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	if !done[models.Day(day)] {
		// Grace for an unfinished today: start counting from yesterday.
		day = day.AddDate(0, 0, -1)
		if !done[models.Day(day)] {
			return 0
		}
	}

	streak := 0
	for done[models.Day(day)] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// ByStream computes the streak for every known stream from a mixed mark
// slice, keyed by stream. Streams with no marks report zero.
func ByStream(marks []models.DayMark, today time.Time) map[models.Stream]int {
	byStream := make(map[models.Stream][]models.DayMark, len(models.Streams))
	for _, m := range marks {
		byStream[m.Stream] = append(byStream[m.Stream], m)
	}

	streaks := make(map[models.Stream]int, len(models.Streams))
	for _, stream := range models.Streams {
		streaks[stream] = Count(byStream[stream], today)
	}
	return streaks
}
