package store

import (
	"context"
	"crypto/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daybreak-app/daybreak-store/internal/crypto"
	"github.com/daybreak-app/daybreak-store/internal/logger"
	"github.com/daybreak-app/daybreak-store/models"
)

func newTestStorages(t *testing.T) *Storages {
	t.Helper()

	db, err := OpenInMemory(context.Background(), logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	dek := make([]byte, 32)
	_, err = rand.Read(dek)
	require.NoError(t, err)

	codec, err := crypto.NewFieldCodec(dek, logger.Nop())
	require.NoError(t, err)

	return NewStorages(db, codec, logger.Nop())
}

func testTime() time.Time {
	return time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
}

func TestJournalRepository_CRUD(t *testing.T) {
	s := newTestStorages(t)
	ctx := context.Background()

	entry := &models.JournalEntry{
		ID:        uuid.NewString(),
		Title:     "rough morning",
		Body:      "almost called, journaled instead",
		Mood:      4,
		Tags:      []string{"cravings", "gratitude"},
		CreatedAt: testTime(),
		UpdatedAt: testTime(),
	}
	require.NoError(t, s.Journal.Create(ctx, entry))

	got, err := s.Journal.Get(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, entry.Title, got.Title)
	assert.Equal(t, entry.Body, got.Body)
	assert.Equal(t, entry.Mood, got.Mood)
	assert.Equal(t, entry.Tags, got.Tags)
	assert.True(t, got.CreatedAt.Equal(entry.CreatedAt))

	got.Title = "better afternoon"
	got.Mood = 7
	require.NoError(t, s.Journal.Update(ctx, &got))

	updated, err := s.Journal.Get(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, "better afternoon", updated.Title)
	assert.Equal(t, 7, updated.Mood)

	require.NoError(t, s.Journal.Delete(ctx, entry.ID))
	_, err = s.Journal.Get(ctx, entry.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, s.Journal.Delete(ctx, entry.ID), ErrNotFound)
	assert.ErrorIs(t, s.Journal.Update(ctx, entry), ErrNotFound)
}

// TestJournalRepository_ContentEncryptedAtRest reads the raw column and
// verifies plaintext never hits the database file.
func TestJournalRepository_ContentEncryptedAtRest(t *testing.T) {
	s := newTestStorages(t)
	ctx := context.Background()

	entry := &models.JournalEntry{
		ID:        uuid.NewString(),
		Title:     "very private title",
		Body:      "very private body",
		Mood:      5,
		CreatedAt: testTime(),
		UpdatedAt: testTime(),
	}
	require.NoError(t, s.Journal.Create(ctx, entry))

	var rawTitle, rawBody string
	err := s.db.QueryRowContext(ctx,
		`SELECT title, body FROM journal_entries WHERE id = ?`, entry.ID).
		Scan(&rawTitle, &rawBody)
	require.NoError(t, err)

	assert.NotEqual(t, entry.Title, rawTitle)
	assert.NotEqual(t, entry.Body, rawBody)
	assert.NotContains(t, rawTitle, "private")
	assert.NotContains(t, rawBody, "private")
}

func TestJournalRepository_ListFilters(t *testing.T) {
	s := newTestStorages(t)
	ctx := context.Background()

	days := []struct {
		mood int
		tags []string
		at   time.Time
	}{
		{3, []string{"cravings"}, time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)},
		{6, []string{"meetings"}, time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)},
		{9, []string{"gratitude", "meetings"}, time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)},
	}
	for _, d := range days {
		require.NoError(t, s.Journal.Create(ctx, &models.JournalEntry{
			ID:        uuid.NewString(),
			Title:     "t",
			Body:      "b",
			Mood:      d.mood,
			Tags:      d.tags,
			CreatedAt: d.at,
			UpdatedAt: d.at,
		}))
	}

	all, err := s.Journal.List(ctx, models.JournalFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	// Newest first.
	assert.Equal(t, 9, all[0].Mood)

	byMood, err := s.Journal.List(ctx, models.JournalFilter{MinMood: 6})
	require.NoError(t, err)
	assert.Len(t, byMood, 2)

	byTag, err := s.Journal.List(ctx, models.JournalFilter{Tag: "meetings"})
	require.NoError(t, err)
	assert.Len(t, byTag, 2)

	byRange, err := s.Journal.List(ctx, models.JournalFilter{
		From: time.Date(2026, 8, 5, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Len(t, byRange, 1)
	assert.Equal(t, 6, byRange[0].Mood)

	limited, err := s.Journal.List(ctx, models.JournalFilter{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	count, err := s.Journal.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

// TestCheckInRepository_UpsertReplacesSameDay verifies the one-row-per-day
// invariant: a second check-in on the same day replaces, never duplicates.
func TestCheckInRepository_UpsertReplacesSameDay(t *testing.T) {
	s := newTestStorages(t)
	ctx := context.Background()

	day := "2026-08-20"
	first := &models.CheckIn{
		ID:        uuid.NewString(),
		Day:       day,
		Feeling:   3,
		Craving:   8,
		Note:      "rough start",
		CreatedAt: testTime(),
		UpdatedAt: testTime(),
	}
	require.NoError(t, s.CheckIns.Upsert(ctx, first))

	second := &models.CheckIn{
		ID:        uuid.NewString(),
		Day:       day,
		Feeling:   7,
		Craving:   2,
		Note:      "much better tonight",
		CreatedAt: testTime().Add(10 * time.Hour),
		UpdatedAt: testTime().Add(10 * time.Hour),
	}
	require.NoError(t, s.CheckIns.Upsert(ctx, second))

	got, err := s.CheckIns.GetByDay(ctx, day)
	require.NoError(t, err)
	assert.Equal(t, 7, got.Feeling)
	assert.Equal(t, 2, got.Craving)
	assert.Equal(t, "much better tonight", got.Note)
	// The original row survives the conflict, so the first id stays.
	assert.Equal(t, first.ID, got.ID)

	count, err := s.CheckIns.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	marks, err := s.CheckIns.Marks(ctx)
	require.NoError(t, err)
	require.Len(t, marks, 1)
	assert.Equal(t, models.StreamCheckIn, marks[0].Stream)
	assert.Equal(t, day, marks[0].Day)
	assert.True(t, marks[0].Done)
}

func TestCheckInRepository_GetByDayNotFound(t *testing.T) {
	s := newTestStorages(t)

	_, err := s.CheckIns.GetByDay(context.Background(), "2026-01-01")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDailyMarkRepository_MarkAndList(t *testing.T) {
	s := newTestStorages(t)
	ctx := context.Background()

	require.NoError(t, s.DailyMarks.Mark(ctx, models.StreamReading, "2026-08-18", true))
	require.NoError(t, s.DailyMarks.Mark(ctx, models.StreamReading, "2026-08-19", true))
	require.NoError(t, s.DailyMarks.Mark(ctx, models.StreamGratitude, "2026-08-19", true))

	// Re-marking the same day is an update, not a duplicate.
	require.NoError(t, s.DailyMarks.Mark(ctx, models.StreamReading, "2026-08-19", false))

	reading, err := s.DailyMarks.Marks(ctx, models.StreamReading)
	require.NoError(t, err)
	require.Len(t, reading, 2)
	assert.Equal(t, "2026-08-19", reading[0].Day)
	assert.False(t, reading[0].Done)
	assert.Equal(t, "2026-08-18", reading[1].Day)
	assert.True(t, reading[1].Done)

	all, err := s.DailyMarks.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestDailyMarkRepository_RejectsUnknownStreamAndBadDay(t *testing.T) {
	s := newTestStorages(t)
	ctx := context.Background()

	err := s.DailyMarks.Mark(ctx, models.Stream("weather"), "2026-08-19", true)
	assert.ErrorIs(t, err, ErrUnknownStream)

	_, err = s.DailyMarks.Marks(ctx, models.Stream("weather"))
	assert.ErrorIs(t, err, ErrUnknownStream)

	err = s.DailyMarks.Mark(ctx, models.StreamReading, "19-08-2026", true)
	assert.Error(t, err)
}

// TestContactRepository_SponsorSingleton verifies at most one contact holds
// the sponsor role and that transfer is atomic.
func TestContactRepository_SponsorSingleton(t *testing.T) {
	s := newTestStorages(t)
	ctx := context.Background()

	alice := &models.Contact{ID: uuid.NewString(), Name: "Alice", Role: models.RoleFellowship, CreatedAt: testTime(), UpdatedAt: testTime()}
	bob := &models.Contact{ID: uuid.NewString(), Name: "Bob", Role: models.RoleFellowship, CreatedAt: testTime().Add(time.Second), UpdatedAt: testTime()}
	require.NoError(t, s.Contacts.Create(ctx, alice))
	require.NoError(t, s.Contacts.Create(ctx, bob))

	has, err := s.Contacts.HasSponsor(ctx)
	require.NoError(t, err)
	assert.False(t, has)

	require.NoError(t, s.Contacts.SetSponsor(ctx, alice.ID))
	require.NoError(t, s.Contacts.SetSponsor(ctx, bob.ID))

	contacts, err := s.Contacts.List(ctx)
	require.NoError(t, err)

	var sponsors []models.Contact
	for _, c := range contacts {
		if c.IsSponsor {
			sponsors = append(sponsors, c)
		}
	}
	require.Len(t, sponsors, 1)
	assert.Equal(t, "Bob", sponsors[0].Name)
	assert.Equal(t, models.RoleSponsor, sponsors[0].Role)

	// Transfer to a missing contact rolls back: Bob stays sponsor.
	assert.ErrorIs(t, s.Contacts.SetSponsor(ctx, "no-such-id"), ErrNotFound)
	has, err = s.Contacts.HasSponsor(ctx)
	require.NoError(t, err)
	assert.True(t, has)

	require.NoError(t, s.Contacts.ClearSponsor(ctx))
	has, err = s.Contacts.HasSponsor(ctx)
	require.NoError(t, err)
	assert.False(t, has)
}

func TestContactRepository_FieldsEncryptedAtRest(t *testing.T) {
	s := newTestStorages(t)
	ctx := context.Background()

	contact := &models.Contact{
		ID:        uuid.NewString(),
		Name:      "Charlie Sponsorson",
		Phone:     "+1 555 0100",
		Notes:     "call before 9pm",
		Role:      models.RoleSponsor,
		CreatedAt: testTime(),
		UpdatedAt: testTime(),
	}
	require.NoError(t, s.Contacts.Create(ctx, contact))

	var rawName, rawPhone, rawRole string
	err := s.db.QueryRowContext(ctx,
		`SELECT name, phone, role FROM contacts WHERE id = ?`, contact.ID).
		Scan(&rawName, &rawPhone, &rawRole)
	require.NoError(t, err)

	assert.NotContains(t, rawName, "Charlie")
	assert.NotContains(t, rawPhone, "555")
	// Role stays plaintext for grouping.
	assert.Equal(t, "sponsor", rawRole)

	got, err := s.Contacts.Get(ctx, contact.ID)
	require.NoError(t, err)
	assert.Equal(t, contact.Name, got.Name)
	assert.Equal(t, contact.Phone, got.Phone)
	assert.Equal(t, contact.Notes, got.Notes)
}

// TestMeetingRepository_HomeGroupSingleton mirrors the sponsor invariant for
// meetings.
func TestMeetingRepository_HomeGroupSingleton(t *testing.T) {
	s := newTestStorages(t)
	ctx := context.Background()

	tuesday := &models.Meeting{ID: uuid.NewString(), Name: "Tuesday Night Group", Weekday: 2, StartTime: "19:30", CreatedAt: testTime(), UpdatedAt: testTime()}
	sunday := &models.Meeting{ID: uuid.NewString(), Name: "Sunday Serenity", Weekday: 0, StartTime: "10:00", CreatedAt: testTime(), UpdatedAt: testTime()}
	require.NoError(t, s.Meetings.Create(ctx, tuesday))
	require.NoError(t, s.Meetings.Create(ctx, sunday))

	require.NoError(t, s.Meetings.SetHomeGroup(ctx, tuesday.ID))
	require.NoError(t, s.Meetings.SetHomeGroup(ctx, sunday.ID))

	meetings, err := s.Meetings.List(ctx)
	require.NoError(t, err)

	var homeGroups []models.Meeting
	for _, m := range meetings {
		if m.IsHomeGroup {
			homeGroups = append(homeGroups, m)
		}
	}
	require.Len(t, homeGroups, 1)
	assert.Equal(t, "Sunday Serenity", homeGroups[0].Name)

	has, err := s.Meetings.HasHomeGroup(ctx)
	require.NoError(t, err)
	assert.True(t, has)
}

// TestMeetingRepository_DeleteLeavesDanglingLogs verifies attendance history
// survives meeting deletion with an unresolvable meeting id.
func TestMeetingRepository_DeleteLeavesDanglingLogs(t *testing.T) {
	s := newTestStorages(t)
	ctx := context.Background()

	meeting := &models.Meeting{ID: uuid.NewString(), Name: "Closed Group", Weekday: 4, CreatedAt: testTime(), UpdatedAt: testTime()}
	require.NoError(t, s.Meetings.Create(ctx, meeting))

	require.NoError(t, s.Meetings.LogAttendance(ctx, &models.MeetingLog{
		ID:         uuid.NewString(),
		MeetingID:  meeting.ID,
		AttendedAt: testTime(),
		Note:       "shared for the first time",
		CreatedAt:  testTime(),
	}))
	require.NoError(t, s.Meetings.LogAttendance(ctx, &models.MeetingLog{
		ID:         uuid.NewString(),
		AttendedAt: testTime().Add(24 * time.Hour),
		CreatedAt:  testTime().Add(24 * time.Hour),
	}))

	require.NoError(t, s.Meetings.Delete(ctx, meeting.ID))

	logs, err := s.Meetings.Logs(ctx, 0)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	// Newest first; the dangling reference is still present on the older one.
	assert.Empty(t, logs[0].MeetingID)
	assert.Equal(t, meeting.ID, logs[1].MeetingID)
	assert.Equal(t, "shared for the first time", logs[1].Note)

	count, err := s.Meetings.LogCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestStepWorkRepository_SaveAndCount(t *testing.T) {
	s := newTestStorages(t)
	ctx := context.Background()

	answer := &models.StepAnswer{
		ID:         uuid.NewString(),
		Step:       1,
		QuestionID: "s1_q1",
		Answer:     "I kept using even when I had decided not to.",
		CreatedAt:  testTime(),
		UpdatedAt:  testTime(),
	}
	require.NoError(t, s.StepWork.SaveAnswer(ctx, answer))

	// Rewriting the same question replaces it.
	answer.Answer = "revised after sharing with my sponsor"
	answer.UpdatedAt = testTime().Add(time.Hour)
	require.NoError(t, s.StepWork.SaveAnswer(ctx, answer))

	require.NoError(t, s.StepWork.SaveAnswer(ctx, &models.StepAnswer{
		ID:         uuid.NewString(),
		Step:       2,
		QuestionID: "s2_q1",
		Answer:     "the group itself",
		CreatedAt:  testTime(),
		UpdatedAt:  testTime(),
	}))

	got, err := s.StepWork.Answer(ctx, "s1_q1")
	require.NoError(t, err)
	assert.Equal(t, "revised after sharing with my sponsor", got.Answer)

	counts, err := s.StepWork.AnsweredCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[int]int{1: 1, 2: 1}, counts)

	stepOne, err := s.StepWork.AnswersForStep(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, stepOne, 1)

	_, err = s.StepWork.Answer(ctx, "s1_q2")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStepWorkRepository_RejectsUnknownQuestion(t *testing.T) {
	s := newTestStorages(t)

	err := s.StepWork.SaveAnswer(context.Background(), &models.StepAnswer{
		ID:         uuid.NewString(),
		Step:       13,
		QuestionID: "s13_q1",
		Answer:     "x",
	})
	assert.ErrorIs(t, err, ErrUnknownQuestion)
}

func TestAchievementRepository_EnsureAndSave(t *testing.T) {
	s := newTestStorages(t)
	ctx := context.Background()

	defs := []models.AchievementDefinition{
		{ID: "clean_7"},
		{ID: "contacts_3"},
	}
	require.NoError(t, s.Achievements.EnsureStates(ctx, defs))
	// Second ensure is a no-op.
	require.NoError(t, s.Achievements.EnsureStates(ctx, defs))

	states, err := s.Achievements.States(ctx)
	require.NoError(t, err)
	require.Len(t, states, 2)
	assert.Equal(t, models.StatusLocked, states["clean_7"].Status)

	at := testTime()
	unlocked := states["clean_7"]
	unlocked.Status = models.StatusUnlocked
	unlocked.Current = 7
	unlocked.UnlockedAt = &at
	unlocked.Reflection = "one week, one day at a time"
	require.NoError(t, s.Achievements.Save(ctx, unlocked))

	states, err = s.Achievements.States(ctx)
	require.NoError(t, err)
	got := states["clean_7"]
	assert.True(t, got.Unlocked())
	assert.Equal(t, 7, got.Current)
	require.NotNil(t, got.UnlockedAt)
	assert.True(t, got.UnlockedAt.Equal(at))
	assert.Equal(t, "one week, one day at a time", got.Reflection)

	err = s.Achievements.Save(ctx, models.AchievementState{ID: "no-such", Status: models.StatusUnlocked})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProfileRepository_EmptyThenSave(t *testing.T) {
	s := newTestStorages(t)
	ctx := context.Background()

	empty, err := s.Profile.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty.CleanDate)

	profile := models.Profile{
		DisplayName: "J.",
		CleanDate:   "2026-05-01",
		CreatedAt:   testTime(),
		UpdatedAt:   testTime(),
	}
	require.NoError(t, s.Profile.Save(ctx, profile))

	// Saving again updates in place.
	profile.CleanDate = "2026-06-01"
	require.NoError(t, s.Profile.Save(ctx, profile))

	got, err := s.Profile.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "J.", got.DisplayName)
	assert.Equal(t, "2026-06-01", got.CleanDate)
}

// TestStorages_Reset verifies every entity table empties and achievement
// states come back locked with zero progress.
func TestStorages_Reset(t *testing.T) {
	s := newTestStorages(t)
	ctx := context.Background()

	defs := []models.AchievementDefinition{{ID: "clean_7"}}
	require.NoError(t, s.Achievements.EnsureStates(ctx, defs))

	require.NoError(t, s.Journal.Create(ctx, &models.JournalEntry{
		ID: uuid.NewString(), Title: "t", Body: "b", CreatedAt: testTime(), UpdatedAt: testTime(),
	}))
	require.NoError(t, s.CheckIns.Upsert(ctx, &models.CheckIn{
		ID: uuid.NewString(), Day: "2026-08-20", Feeling: 5, CreatedAt: testTime(), UpdatedAt: testTime(),
	}))
	require.NoError(t, s.Profile.Save(ctx, models.Profile{CleanDate: "2026-05-01", CreatedAt: testTime(), UpdatedAt: testTime()}))

	at := testTime()
	require.NoError(t, s.Achievements.Save(ctx, models.AchievementState{
		ID: "clean_7", Status: models.StatusUnlocked, Current: 7, UnlockedAt: &at,
	}))

	require.NoError(t, s.Reset(ctx, defs))

	journalCount, err := s.Journal.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, journalCount)

	checkInCount, err := s.CheckIns.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, checkInCount)

	profile, err := s.Profile.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, profile.CleanDate)

	states, err := s.Achievements.States(ctx)
	require.NoError(t, err)
	require.Len(t, states, 1)
	assert.Equal(t, models.StatusLocked, states["clean_7"].Status)
	assert.Zero(t, states["clean_7"].Current)
	assert.Nil(t, states["clean_7"].UnlockedAt)
}
