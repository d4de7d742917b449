package service

import (
	"context"
	"crypto/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daybreak-app/daybreak-store/internal/achieve"
	"github.com/daybreak-app/daybreak-store/internal/crypto"
	"github.com/daybreak-app/daybreak-store/internal/logger"
	"github.com/daybreak-app/daybreak-store/internal/store"
	"github.com/daybreak-app/daybreak-store/models"
)

var testNow = time.Date(2026, 8, 20, 18, 0, 0, 0, time.UTC)

type fixture struct {
	storages *store.Storages
	engine   *achieve.Engine
	progress *progressService
	export   *exportService
	reset    ResetService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	db, err := store.OpenInMemory(ctx, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	dek := make([]byte, 32)
	_, err = rand.Read(dek)
	require.NoError(t, err)
	codec, err := crypto.NewFieldCodec(dek, logger.Nop())
	require.NoError(t, err)

	storages := store.NewStorages(db, codec, logger.Nop())
	engine := achieve.NewEngine(logger.Nop())
	require.NoError(t, storages.Achievements.EnsureStates(ctx, engine.Definitions()))

	services := NewServices(storages, engine, logger.Nop())
	progress := services.Progress.(*progressService)
	progress.now = func() time.Time { return testNow }
	export := services.Export.(*exportService)
	export.now = func() time.Time { return testNow }

	return &fixture{
		storages: storages,
		engine:   engine,
		progress: progress,
		export:   export,
		reset:    services.Reset,
	}
}

func day(offset int) string {
	return models.Day(testNow.AddDate(0, 0, offset))
}

// TestEvaluate_SevenDayCheckInStreak runs the full pipeline: seven daily
// check-ins ending today, one evaluation pass, streak achievement unlocked
// and persisted.
func TestEvaluate_SevenDayCheckInStreak(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i := 0; i > -7; i-- {
		require.NoError(t, f.storages.CheckIns.Upsert(ctx, &models.CheckIn{
			ID:        uuid.NewString(),
			Day:       day(i),
			Feeling:   6,
			CreatedAt: testNow.AddDate(0, 0, i),
			UpdatedAt: testNow.AddDate(0, 0, i),
		}))
	}

	result, err := f.progress.Evaluate(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, result.Unlocked)

	states, err := f.storages.Achievements.States(ctx)
	require.NoError(t, err)

	unlocked := states["streak_checkin_7"]
	assert.True(t, unlocked.Unlocked())
	assert.Equal(t, 7, unlocked.Current)
	require.NotNil(t, unlocked.UnlockedAt)

	thirty := states["streak_checkin_30"]
	assert.Equal(t, models.StatusInProgress, thirty.Status)
	assert.Equal(t, 7, thirty.Current)
}

// TestEvaluate_ThreeContacts mirrors the second end-to-end scenario: three
// fellowship contacts unlock contacts_3 while contacts_10 shows partial
// progress.
func TestEvaluate_ThreeContacts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, name := range []string{"Ana", "Ben", "Cal"} {
		require.NoError(t, f.storages.Contacts.Create(ctx, &models.Contact{
			ID:        uuid.NewString(),
			Name:      name,
			Role:      models.RoleFellowship,
			CreatedAt: testNow,
			UpdatedAt: testNow,
		}))
	}

	_, err := f.progress.Evaluate(ctx)
	require.NoError(t, err)

	states, err := f.storages.Achievements.States(ctx)
	require.NoError(t, err)

	assert.True(t, states["contacts_3"].Unlocked())
	assert.Equal(t, models.StatusInProgress, states["contacts_10"].Status)
	assert.Equal(t, 3, states["contacts_10"].Current)
}

func TestBuildContext_Aggregates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.storages.Profile.Save(ctx, models.Profile{
		CleanDate: day(-10),
		CreatedAt: testNow,
		UpdatedAt: testNow,
	}))

	contact := &models.Contact{ID: uuid.NewString(), Name: "Ana", Role: models.RoleFellowship, CreatedAt: testNow, UpdatedAt: testNow}
	require.NoError(t, f.storages.Contacts.Create(ctx, contact))
	require.NoError(t, f.storages.Contacts.SetSponsor(ctx, contact.ID))

	require.NoError(t, f.storages.DailyMarks.Mark(ctx, models.StreamGratitude, day(0), true))
	require.NoError(t, f.storages.DailyMarks.Mark(ctx, models.StreamGratitude, day(-1), true))

	require.NoError(t, f.storages.StepWork.SaveAnswer(ctx, &models.StepAnswer{
		ID:         uuid.NewString(),
		Step:       1,
		QuestionID: "s1_q1",
		Answer:     "a",
		CreatedAt:  testNow,
		UpdatedAt:  testNow,
	}))

	pctx, err := f.progress.BuildContext(ctx)
	require.NoError(t, err)

	assert.Equal(t, 10, pctx.DaysClean)
	assert.Equal(t, 1, pctx.ContactCount)
	assert.True(t, pctx.HasSponsor)
	assert.False(t, pctx.HasHomeGroup)
	assert.Equal(t, 2, pctx.StreakFor(models.StreamGratitude))
	assert.Zero(t, pctx.StreakFor(models.StreamCheckIn))
	assert.Equal(t, models.StepCount{Answered: 1, Total: 4}, pctx.StepCountFor(1))
}

// TestEvaluate_Idempotent runs two passes over unchanged data; the second
// persists nothing.
func TestEvaluate_Idempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.storages.Journal.Create(ctx, &models.JournalEntry{
		ID: uuid.NewString(), Title: "t", Body: "b", CreatedAt: testNow, UpdatedAt: testNow,
	}))

	first, err := f.progress.Evaluate(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, first.Changed)

	second, err := f.progress.Evaluate(ctx)
	require.NoError(t, err)
	assert.Empty(t, second.Changed)
	assert.Nil(t, second.Newest)
}

func TestUnlockSelfCheck_Persists(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	state, err := f.progress.UnlockSelfCheck(ctx, "told_my_story", "spoke at the sunday meeting")
	require.NoError(t, err)
	assert.True(t, state.Unlocked())

	states, err := f.storages.Achievements.States(ctx)
	require.NoError(t, err)
	persisted := states["told_my_story"]
	assert.True(t, persisted.Unlocked())
	assert.Equal(t, "spoke at the sunday meeting", persisted.Reflection)

	_, err = f.progress.UnlockSelfCheck(ctx, "clean_7", "")
	assert.ErrorIs(t, err, achieve.ErrNotSelfCheck)
}

func TestExportAll_DecryptedSnapshot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.storages.Profile.Save(ctx, models.Profile{
		DisplayName: "J.", CleanDate: day(-30), CreatedAt: testNow, UpdatedAt: testNow,
	}))
	require.NoError(t, f.storages.Journal.Create(ctx, &models.JournalEntry{
		ID: uuid.NewString(), Title: "secret title", Body: "secret body", Mood: 6,
		CreatedAt: testNow, UpdatedAt: testNow,
	}))
	require.NoError(t, f.storages.Contacts.Create(ctx, &models.Contact{
		ID: uuid.NewString(), Name: "Ana", Phone: "+1 555 0100",
		Role: models.RoleFellowship, CreatedAt: testNow, UpdatedAt: testNow,
	}))
	require.NoError(t, f.storages.Meetings.LogAttendance(ctx, &models.MeetingLog{
		ID: uuid.NewString(), AttendedAt: testNow, Note: "good meeting", CreatedAt: testNow,
	}))

	doc, err := f.export.ExportAll(ctx)
	require.NoError(t, err)

	assert.True(t, doc.ExportedAt.Equal(testNow))
	assert.Equal(t, "J.", doc.Profile.DisplayName)
	require.Len(t, doc.JournalEntries, 1)
	assert.Equal(t, "secret title", doc.JournalEntries[0].Title)
	assert.Equal(t, "secret body", doc.JournalEntries[0].Body)
	require.Len(t, doc.Contacts, 1)
	assert.Equal(t, "Ana", doc.Contacts[0].Name)
	require.Len(t, doc.MeetingLogs, 1)
	assert.Equal(t, "good meeting", doc.MeetingLogs[0].Note)
	assert.Len(t, doc.Achievements, len(f.engine.Definitions()))
}

// TestReset_ClearsDataAndRelocksAchievements covers the reset boundary end
// to end: records gone, achievements locked again, schema still usable.
func TestReset_ClearsDataAndRelocksAchievements(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, name := range []string{"Ana", "Ben", "Cal"} {
		require.NoError(t, f.storages.Contacts.Create(ctx, &models.Contact{
			ID: uuid.NewString(), Name: name, Role: models.RoleFellowship,
			CreatedAt: testNow, UpdatedAt: testNow,
		}))
	}
	_, err := f.progress.Evaluate(ctx)
	require.NoError(t, err)

	require.NoError(t, f.reset.Reset(ctx))

	count, err := f.storages.Contacts.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	states, err := f.storages.Achievements.States(ctx)
	require.NoError(t, err)
	require.Len(t, states, len(f.engine.Definitions()))
	for id, state := range states {
		assert.Equal(t, models.StatusLocked, state.Status, id)
	}

	// Store still works after reset.
	require.NoError(t, f.storages.Contacts.Create(ctx, &models.Contact{
		ID: uuid.NewString(), Name: "Dee", Role: models.RoleFamily,
		CreatedAt: testNow, UpdatedAt: testNow,
	}))
}
