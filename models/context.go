package models

// ProgressContext is the immutable aggregate snapshot the achievement rule
// engine evaluates against. It is built once per evaluation pass from record
// store counts and streak calculator output; the engine never pulls live
// state mid-evaluation.
type ProgressContext struct {
	DaysClean       int
	ContactCount    int
	HasSponsor      bool
	HasHomeGroup    bool
	JournalCount    int
	CheckInCount    int
	MeetingLogCount int

	// Streaks holds the consecutive-day count per stream.
	Streaks map[Stream]int

	// StepCounts holds answered/total per step number.
	StepCounts map[int]StepCount
}

// StreakFor returns the streak length for a stream, zero when unknown.
func (c ProgressContext) StreakFor(stream Stream) int {
	return c.Streaks[stream]
}

// StepCountFor returns the answered/total pair for a step, zero when unknown.
func (c ProgressContext) StepCountFor(step int) StepCount {
	return c.StepCounts[step]
}
