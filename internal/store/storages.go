// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Daybreak Authors

package store

import (
	"context"
	"fmt"

	"github.com/daybreak-app/daybreak-store/internal/crypto"
	"github.com/daybreak-app/daybreak-store/internal/logger"
	"github.com/daybreak-app/daybreak-store/internal/migrate"
	"github.com/daybreak-app/daybreak-store/models"
)

// Storages groups all repositories into a single value that can be passed
// around the service layer. Every repository shares the one database handle
// and the one field codec.
type Storages struct {
	Journal      JournalStorage
	CheckIns     CheckInStorage
	DailyMarks   DailyMarkStorage
	Contacts     ContactStorage
	Meetings     MeetingStorage
	StepWork     StepWorkStorage
	Achievements AchievementStorage
	Profile      ProfileStorage

	db     *DB
	logger *logger.Logger
}

// NewStorages wires every repository to the already-opened (and migrated)
// database handle.
func NewStorages(db *DB, codec crypto.FieldCodec, logger *logger.Logger) *Storages {
	logger.Info().Msg("creating new storages...")

	return &Storages{
		Journal:      NewJournalRepository(db, codec, logger),
		CheckIns:     NewCheckInRepository(db, codec, logger),
		DailyMarks:   NewDailyMarkRepository(db, logger),
		Contacts:     NewContactRepository(db, codec, logger),
		Meetings:     NewMeetingRepository(db, codec, logger),
		StepWork:     NewStepWorkRepository(db, codec, logger),
		Achievements: NewAchievementRepository(db, codec, logger),
		Profile:      NewProfileRepository(db, codec, logger),

		db:     db,
		logger: logger,
	}
}

// Reset deletes every user-data row in one transaction and re-seeds a locked
// achievement state per definition. The schema version row is untouched, so
// the next startup does not replay migrations.
func (s *Storages) Reset(ctx context.Context, defs []models.AchievementDefinition) error {
	log := logger.FromContext(ctx)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "Storages.Reset").
			Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	for _, table := range migrate.EntityTables() {
		if _, err = tx.ExecContext(ctx, "DELETE FROM "+table+";"); err != nil {
			log.Err(err).
				Str("func", "Storages.Reset").
				Str("table", table).
				Msg("failed to delete table rows")
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
	}

	for _, def := range defs {
		if _, err = tx.ExecContext(ctx, insertLockedAchievementState, def.ID); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).
			Str("func", "Storages.Reset").
			Msg("failed to commit reset")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	log.Info().Str("func", "Storages.Reset").Msg("all user data deleted")
	return nil
}

// Close closes the underlying database handle.
func (s *Storages) Close() error {
	return s.db.Close()
}
