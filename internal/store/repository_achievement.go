// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Daybreak Authors

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/daybreak-app/daybreak-store/internal/crypto"
	"github.com/daybreak-app/daybreak-store/internal/logger"
	"github.com/daybreak-app/daybreak-store/models"
)

type achievementRepository struct {
	*DB
	codec  crypto.FieldCodec
	logger *logger.Logger
}

func NewAchievementRepository(db *DB, codec crypto.FieldCodec, logger *logger.Logger) AchievementStorage {
	return &achievementRepository{
		DB:     db,
		codec:  codec,
		logger: logger,
	}
}

// EnsureStates seeds a locked state row for every definition missing one.
// Existing rows are left untouched, so re-running after adding definitions
// in a new release only fills the gaps.
func (a *achievementRepository) EnsureStates(ctx context.Context, defs []models.AchievementDefinition) error {
	log := logger.FromContext(ctx)

	tx, err := a.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "achievementRepository.EnsureStates").
			Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	for _, def := range defs {
		if _, err = tx.ExecContext(ctx, insertLockedAchievementState, def.ID); err != nil {
			log.Err(err).
				Str("func", "achievementRepository.EnsureStates").
				Str("id", def.ID).
				Msg("failed to seed achievement state")
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

func (a *achievementRepository) States(ctx context.Context) (map[string]models.AchievementState, error) {
	list, err := a.List(ctx)
	if err != nil {
		return nil, err
	}

	states := make(map[string]models.AchievementState, len(list))
	for _, state := range list {
		states[state.ID] = state
	}
	return states, nil
}

func (a *achievementRepository) List(ctx context.Context) ([]models.AchievementState, error) {
	log := logger.FromContext(ctx)

	rows, err := a.DB.QueryContext(ctx, listAchievementStates)
	if err != nil {
		log.Err(err).
			Str("func", "achievementRepository.List").
			Msg("failed to execute query for achievement states")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var states []models.AchievementState
	for rows.Next() {
		var (
			state      models.AchievementState
			unlockedAt sql.NullString
			reflection string
		)
		if scanErr := rows.Scan(&state.ID, &state.Status, &state.Current, &unlockedAt, &reflection); scanErr != nil {
			log.Err(scanErr).
				Str("func", "achievementRepository.List").
				Msg("failed to scan achievement state row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}

		if unlockedAt.Valid {
			at, timeErr := decodeTime(unlockedAt.String)
			if timeErr != nil {
				return nil, timeErr
			}
			state.UnlockedAt = &at
		}
		state.Reflection = a.codec.DecryptOrPlaceholder(reflection)

		states = append(states, state)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return states, nil
}

// Save persists the given states in one transaction: an evaluation pass
// either lands entirely or not at all.
func (a *achievementRepository) Save(ctx context.Context, states ...models.AchievementState) error {
	log := logger.FromContext(ctx)

	if len(states) == 0 {
		return nil
	}

	tx, err := a.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "achievementRepository.Save").
			Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	for _, state := range states {
		var unlockedAt any
		if state.UnlockedAt != nil {
			unlockedAt = encodeTime(*state.UnlockedAt)
		}

		reflection, encErr := a.codec.Encrypt(state.Reflection)
		if encErr != nil {
			return fmt.Errorf("failed to encrypt reflection: %w", encErr)
		}

		result, execErr := tx.ExecContext(ctx, saveAchievementState,
			string(state.Status),
			state.Current,
			unlockedAt,
			reflection,
			state.ID,
		)
		if execErr != nil {
			log.Err(execErr).
				Str("func", "achievementRepository.Save").
				Str("id", state.ID).
				Msg("failed to execute update for achievement state")
			return fmt.Errorf("%w: %w", ErrExecutingQuery, execErr)
		}

		affected, raErr := result.RowsAffected()
		if raErr != nil {
			return fmt.Errorf("failed to get rows affected: %w", raErr)
		}
		if affected == 0 {
			return fmt.Errorf("%w: achievement state %q", ErrNotFound, state.ID)
		}
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).
			Str("func", "achievementRepository.Save").
			Msg("failed to commit achievement states")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}
