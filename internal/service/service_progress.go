// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Daybreak Authors

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/daybreak-app/daybreak-store/internal/achieve"
	"github.com/daybreak-app/daybreak-store/internal/logger"
	"github.com/daybreak-app/daybreak-store/internal/store"
	"github.com/daybreak-app/daybreak-store/internal/streak"
	"github.com/daybreak-app/daybreak-store/models"
)

type progressService struct {
	storages *store.Storages
	engine   *achieve.Engine
	logger   *logger.Logger
	now      func() time.Time
}

func NewProgressService(storages *store.Storages, engine *achieve.Engine, logger *logger.Logger) ProgressService {
	return &progressService{
		storages: storages,
		engine:   engine,
		logger:   logger,
		now:      time.Now,
	}
}

// BuildContext reads every aggregate in one pass. The returned snapshot is
// detached from the store: the engine evaluates against it without touching
// live state mid-pass.
func (p *progressService) BuildContext(ctx context.Context) (models.ProgressContext, error) {
	log := logger.FromContext(ctx)
	now := p.now()

	profile, err := p.storages.Profile.Get(ctx)
	if err != nil {
		return models.ProgressContext{}, fmt.Errorf("failed to load profile: %w", err)
	}

	contactCount, err := p.storages.Contacts.Count(ctx)
	if err != nil {
		return models.ProgressContext{}, fmt.Errorf("failed to count contacts: %w", err)
	}
	hasSponsor, err := p.storages.Contacts.HasSponsor(ctx)
	if err != nil {
		return models.ProgressContext{}, fmt.Errorf("failed to check sponsor: %w", err)
	}
	hasHomeGroup, err := p.storages.Meetings.HasHomeGroup(ctx)
	if err != nil {
		return models.ProgressContext{}, fmt.Errorf("failed to check home group: %w", err)
	}
	journalCount, err := p.storages.Journal.Count(ctx)
	if err != nil {
		return models.ProgressContext{}, fmt.Errorf("failed to count journal entries: %w", err)
	}
	checkInCount, err := p.storages.CheckIns.Count(ctx)
	if err != nil {
		return models.ProgressContext{}, fmt.Errorf("failed to count check-ins: %w", err)
	}
	meetingLogCount, err := p.storages.Meetings.LogCount(ctx)
	if err != nil {
		return models.ProgressContext{}, fmt.Errorf("failed to count meeting logs: %w", err)
	}

	// Check-ins project onto the check_in stream; the remaining streams
	// live in the daily mark table. One merged slice feeds the calculator.
	checkInMarks, err := p.storages.CheckIns.Marks(ctx)
	if err != nil {
		return models.ProgressContext{}, fmt.Errorf("failed to load check-in marks: %w", err)
	}
	dailyMarks, err := p.storages.DailyMarks.All(ctx)
	if err != nil {
		return models.ProgressContext{}, fmt.Errorf("failed to load daily marks: %w", err)
	}
	streaks := streak.ByStream(append(checkInMarks, dailyMarks...), now)

	answered, err := p.storages.StepWork.AnsweredCounts(ctx)
	if err != nil {
		return models.ProgressContext{}, fmt.Errorf("failed to count step answers: %w", err)
	}
	stepCounts := make(map[int]models.StepCount, 12)
	for step, total := range models.StepTotals() {
		stepCounts[step] = models.StepCount{Answered: answered[step], Total: total}
	}

	pctx := models.ProgressContext{
		DaysClean:       profile.DaysClean(now),
		ContactCount:    contactCount,
		HasSponsor:      hasSponsor,
		HasHomeGroup:    hasHomeGroup,
		JournalCount:    journalCount,
		CheckInCount:    checkInCount,
		MeetingLogCount: meetingLogCount,
		Streaks:         streaks,
		StepCounts:      stepCounts,
	}

	log.Debug().
		Str("func", "progressService.BuildContext").
		Int("days_clean", pctx.DaysClean).
		Int("contacts", pctx.ContactCount).
		Int("check_ins", pctx.CheckInCount).
		Msg("built progress context")

	return pctx, nil
}

func (p *progressService) Evaluate(ctx context.Context) (achieve.EvaluationResult, error) {
	log := logger.FromContext(ctx)

	pctx, err := p.BuildContext(ctx)
	if err != nil {
		return achieve.EvaluationResult{}, err
	}

	states, err := p.storages.Achievements.States(ctx)
	if err != nil {
		return achieve.EvaluationResult{}, fmt.Errorf("failed to load achievement states: %w", err)
	}

	result := p.engine.Evaluate(pctx, states)
	if len(result.Changed) == 0 {
		return result, nil
	}

	if err = p.storages.Achievements.Save(ctx, result.Changed...); err != nil {
		return achieve.EvaluationResult{}, fmt.Errorf("failed to persist achievement states: %w", err)
	}

	log.Info().
		Str("func", "progressService.Evaluate").
		Int("changed", len(result.Changed)).
		Int("unlocked", len(result.Unlocked)).
		Msg("evaluation pass persisted")

	return result, nil
}

func (p *progressService) UnlockSelfCheck(ctx context.Context, id, reflection string) (models.AchievementState, error) {
	states, err := p.storages.Achievements.States(ctx)
	if err != nil {
		return models.AchievementState{}, fmt.Errorf("failed to load achievement states: %w", err)
	}

	state, err := p.engine.UnlockSelfCheck(id, reflection, states)
	if err != nil {
		return models.AchievementState{}, err
	}

	if prev, ok := states[id]; ok && prev.Unlocked() {
		// Already unlocked; nothing to persist.
		return state, nil
	}

	if err = p.storages.Achievements.Save(ctx, state); err != nil {
		return models.AchievementState{}, fmt.Errorf("failed to persist self-check unlock: %w", err)
	}
	return state, nil
}
