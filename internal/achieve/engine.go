// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Daybreak Authors

// Package achieve evaluates the static achievement catalog against an
// aggregated progress snapshot and transitions persisted achievement state.
// The engine never does I/O: it consumes a context the caller built and
// returns the states that changed; persisting them is the caller's job.
package achieve

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/daybreak-app/daybreak-store/internal/logger"
	"github.com/daybreak-app/daybreak-store/models"
)

// progressTarget is the unlock threshold for progressive achievements.
// Completion percentages are scaled so the unlock point always lands on 100
// progress points regardless of how many questions a step has.
const progressTarget = 100

var (
	// ErrUnknownAchievement is returned when an id is absent from the catalog.
	ErrUnknownAchievement = errors.New("unknown achievement")

	// ErrNotSelfCheck is returned when the self-check unlock path is called
	// for an achievement the engine owns.
	ErrNotSelfCheck = errors.New("achievement is not self-check")

	// ErrUnknownMetric is returned when a definition references a metric or
	// predicate missing from the registries.
	ErrUnknownMetric = errors.New("unknown metric")
)

// EvaluationResult is the outcome of one evaluation pass.
type EvaluationResult struct {
	// Changed holds every state whose status or progress moved, in catalog
	// order, ready to be persisted.
	Changed []models.AchievementState

	// Unlocked holds the subset of Changed that reached unlocked this pass.
	Unlocked []models.AchievementState

	// Newest is the most recently unlocked achievement of this pass, nil
	// when nothing unlocked.
	Newest *models.AchievementState
}

// Engine evaluates definitions against progress snapshots.
type Engine struct {
	defs       []models.AchievementDefinition
	counters   map[string]CounterFunc
	predicates map[string]PredicateFunc
	logger     *logger.Logger
	now        func() time.Time
}

// NewEngine builds an engine over the full static catalog.
func NewEngine(log *logger.Logger) *Engine {
	return &Engine{
		defs:       Definitions(),
		counters:   counterRegistry(),
		predicates: predicateRegistry(),
		logger:     log,
		now:        time.Now,
	}
}

// Definitions returns the catalog the engine evaluates.
func (e *Engine) Definitions() []models.AchievementDefinition {
	return e.defs
}

// Evaluate runs one pass over every definition. Unlocked achievements are
// never revisited; everything else gets its prerequisites checked, its
// progress recomputed, and, when the rule is satisfied, its unlock recorded.
// Achievements unlocked earlier in the same pass satisfy prerequisites of
// later ones, so a single pass can cascade a chain.
func (e *Engine) Evaluate(pctx models.ProgressContext, states map[string]models.AchievementState) EvaluationResult {
	unlockedNow := make(map[string]bool, len(states))
	for id, s := range states {
		unlockedNow[id] = s.Unlocked()
	}

	var result EvaluationResult
	for _, def := range e.defs {
		prev, ok := states[def.ID]
		if !ok {
			prev = models.AchievementState{ID: def.ID, Status: models.StatusLocked}
		}
		if prev.Unlocked() {
			// Monotonic: never re-locked, never re-evaluated.
			continue
		}

		next := e.evaluateOne(def, pctx, prev, unlockedNow)
		if next.Status == prev.Status && next.Current == prev.Current {
			continue
		}

		result.Changed = append(result.Changed, next)
		if next.Unlocked() {
			unlockedNow[def.ID] = true
			result.Unlocked = append(result.Unlocked, next)

			e.logger.Info().
				Str("func", "Engine.Evaluate").
				Str("id", def.ID).
				Int("current", next.Current).
				Msg("achievement unlocked")
		}
	}

	if n := len(result.Unlocked); n > 0 {
		result.Newest = &result.Unlocked[n-1]
	}
	return result
}

func (e *Engine) evaluateOne(def models.AchievementDefinition, pctx models.ProgressContext, prev models.AchievementState, unlocked map[string]bool) models.AchievementState {
	next := prev

	if !e.prerequisitesMet(def, pctx, unlocked) {
		// Unmet prerequisites are the normal locked outcome, not an error.
		// Progress is not shown for achievements the user cannot yet see.
		next.Status = models.StatusLocked
		return next
	}

	var current int
	var satisfied bool

	switch def.Unlock {
	case models.UnlockAutomatic:
		predicate, ok := e.predicates[def.Metric]
		if !ok {
			e.logger.Warn().
				Str("func", "Engine.evaluateOne").
				Str("id", def.ID).
				Str("metric", def.Metric).
				Msg("definition references unknown predicate")
			return next
		}
		if predicate(pctx) {
			current, satisfied = 1, true
		}

	case models.UnlockCount:
		counter, ok := e.counters[def.Metric]
		if !ok {
			e.logger.Warn().
				Str("func", "Engine.evaluateOne").
				Str("id", def.ID).
				Str("metric", def.Metric).
				Msg("definition references unknown counter")
			return next
		}
		current = counter(pctx)
		satisfied = current >= def.Target

	case models.UnlockStreak:
		current = pctx.StreakFor(models.Stream(def.Metric))
		satisfied = current >= def.Target

	case models.UnlockProgressive:
		step, completed, ok := parseProgressiveID(def.ID)
		if !ok {
			e.logger.Warn().
				Str("func", "Engine.evaluateOne").
				Str("id", def.ID).
				Msg("progressive id does not encode step and phase")
			return next
		}
		current = progressPoints(pctx.StepCountFor(step), completed)
		satisfied = current >= progressTarget

	case models.UnlockSelfCheck:
		// Visible but never unlocked here.
		next.Status = models.StatusAvailable
		return next
	}

	next.Current = current
	switch {
	case satisfied:
		at := e.now()
		next.Status = models.StatusUnlocked
		next.UnlockedAt = &at
	case current > 0:
		next.Status = models.StatusInProgress
	default:
		next.Status = models.StatusAvailable
	}
	return next
}

func (e *Engine) prerequisitesMet(def models.AchievementDefinition, pctx models.ProgressContext, unlocked map[string]bool) bool {
	if def.RequiresDaysClean > 0 && pctx.DaysClean < def.RequiresDaysClean {
		return false
	}
	for _, id := range def.Requires {
		if !unlocked[id] {
			return false
		}
	}
	return true
}

// UnlockSelfCheck records an explicit user self-check. Idempotent: a second
// call for an already-unlocked achievement returns the existing state.
func (e *Engine) UnlockSelfCheck(id, reflection string, states map[string]models.AchievementState) (models.AchievementState, error) {
	var def *models.AchievementDefinition
	for i := range e.defs {
		if e.defs[i].ID == id {
			def = &e.defs[i]
			break
		}
	}
	if def == nil {
		return models.AchievementState{}, fmt.Errorf("%w: %q", ErrUnknownAchievement, id)
	}
	if def.Unlock != models.UnlockSelfCheck {
		return models.AchievementState{}, fmt.Errorf("%w: %q", ErrNotSelfCheck, id)
	}

	state, ok := states[id]
	if !ok {
		state = models.AchievementState{ID: id, Status: models.StatusLocked}
	}
	if state.Unlocked() {
		return state, nil
	}

	at := e.now()
	state.Status = models.StatusUnlocked
	state.UnlockedAt = &at
	state.Reflection = reflection
	return state, nil
}

// parseProgressiveID extracts the step number and phase from ids shaped
// like step_4_started and step_4_completed.
func parseProgressiveID(id string) (step int, completed bool, ok bool) {
	rest, found := strings.CutPrefix(id, "step_")
	if !found {
		return 0, false, false
	}

	num, phase, found := strings.Cut(rest, "_")
	if !found {
		return 0, false, false
	}

	step, err := strconv.Atoi(num)
	if err != nil || step < 1 {
		return 0, false, false
	}

	switch phase {
	case "started":
		return step, false, true
	case "completed":
		return step, true, true
	default:
		return 0, false, false
	}
}

// progressPoints scales a step's completion onto the fixed 0..100 range.
// The started phase reaches 100 at half the questions answered, the
// completed phase at all of them.
func progressPoints(count models.StepCount, completed bool) int {
	if count.Total == 0 || count.Answered == 0 {
		return 0
	}

	scale := 2 * progressTarget // started: 50% maps to 100
	if completed {
		scale = progressTarget
	}

	points := count.Answered * scale / count.Total
	if points > progressTarget {
		points = progressTarget
	}
	return points
}
