// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Daybreak Authors

package service

import (
	"context"

	"github.com/daybreak-app/daybreak-store/internal/achieve"
	"github.com/daybreak-app/daybreak-store/models"
)

// ProgressService aggregates stored records into a progress snapshot and
// runs the achievement engine over it.
type ProgressService interface {
	// BuildContext assembles the immutable snapshot one evaluation pass
	// consumes: days clean, record counts, per-stream streaks, per-step
	// answer counts.
	BuildContext(ctx context.Context) (models.ProgressContext, error)

	// Evaluate builds a context, runs the engine, persists every changed
	// state and returns the evaluation result.
	Evaluate(ctx context.Context) (achieve.EvaluationResult, error)

	// UnlockSelfCheck records an explicit user self-check unlock.
	UnlockSelfCheck(ctx context.Context, id, reflection string) (models.AchievementState, error)
}

// ExportService produces the fully decrypted portable snapshot.
type ExportService interface {
	ExportAll(ctx context.Context) (models.ExportDocument, error)
}

// ResetService is the clear-all-data boundary.
type ResetService interface {
	Reset(ctx context.Context) error
}
