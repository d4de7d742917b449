// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Daybreak Authors

package achieve

import "github.com/daybreak-app/daybreak-store/models"

// Registry keys referenced by achievement definitions. A definition names a
// metric or predicate; the registries below map the name to a pure function
// over the progress context. Dispatch is data, not a switch.
const (
	MetricDaysClean       = "days_clean"
	MetricContactCount    = "contact_count"
	MetricJournalCount    = "journal_count"
	MetricCheckInCount    = "check_in_count"
	MetricMeetingLogCount = "meeting_log_count"

	PredicateHasSponsor   = "has_sponsor"
	PredicateHasHomeGroup = "has_home_group"
)

// CounterFunc reads one numeric metric from the context.
type CounterFunc func(models.ProgressContext) int

// PredicateFunc reads one boolean condition from the context.
type PredicateFunc func(models.ProgressContext) bool

func counterRegistry() map[string]CounterFunc {
	return map[string]CounterFunc{
		MetricDaysClean:       func(c models.ProgressContext) int { return c.DaysClean },
		MetricContactCount:    func(c models.ProgressContext) int { return c.ContactCount },
		MetricJournalCount:    func(c models.ProgressContext) int { return c.JournalCount },
		MetricCheckInCount:    func(c models.ProgressContext) int { return c.CheckInCount },
		MetricMeetingLogCount: func(c models.ProgressContext) int { return c.MeetingLogCount },
	}
}

func predicateRegistry() map[string]PredicateFunc {
	return map[string]PredicateFunc{
		PredicateHasSponsor:   func(c models.ProgressContext) bool { return c.HasSponsor },
		PredicateHasHomeGroup: func(c models.ProgressContext) bool { return c.HasHomeGroup },
	}
}
