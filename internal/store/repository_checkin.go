// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Daybreak Authors

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/daybreak-app/daybreak-store/internal/crypto"
	"github.com/daybreak-app/daybreak-store/internal/logger"
	"github.com/daybreak-app/daybreak-store/models"
)

type checkInRepository struct {
	*DB
	codec  crypto.FieldCodec
	logger *logger.Logger
}

func NewCheckInRepository(db *DB, codec crypto.FieldCodec, logger *logger.Logger) CheckInStorage {
	return &checkInRepository{
		DB:     db,
		codec:  codec,
		logger: logger,
	}
}

func (c *checkInRepository) Upsert(ctx context.Context, entry *models.CheckIn) error {
	log := logger.FromContext(ctx)

	note, err := c.codec.Encrypt(entry.Note)
	if err != nil {
		return fmt.Errorf("failed to encrypt check-in note: %w", err)
	}

	_, err = c.DB.ExecContext(ctx, upsertCheckIn,
		entry.ID,
		entry.Day,
		entry.Feeling,
		entry.Craving,
		note,
		encodeTime(entry.CreatedAt),
		encodeTime(entry.UpdatedAt),
	)
	if err != nil {
		log.Err(err).
			Str("func", "checkInRepository.Upsert").
			Str("day", entry.Day).
			Msg("failed to execute upsert for check-in")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

func (c *checkInRepository) GetByDay(ctx context.Context, day string) (models.CheckIn, error) {
	log := logger.FromContext(ctx)

	row := c.DB.QueryRowContext(ctx, getCheckInByDay, day)
	entry, err := c.scanCheckIn(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.CheckIn{}, ErrNotFound
		}
		log.Err(err).
			Str("func", "checkInRepository.GetByDay").
			Str("day", day).
			Msg("failed to scan check-in row")
		return models.CheckIn{}, err
	}

	return entry, nil
}

func (c *checkInRepository) List(ctx context.Context, limit uint64) ([]models.CheckIn, error) {
	log := logger.FromContext(ctx)

	if limit == 0 {
		limit = ^uint64(0) >> 1
	}

	rows, err := c.DB.QueryContext(ctx, listCheckIns, limit)
	if err != nil {
		log.Err(err).
			Str("func", "checkInRepository.List").
			Msg("failed to execute query for check-ins")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var entries []models.CheckIn
	for rows.Next() {
		entry, scanErr := c.scanCheckIn(rows.Scan)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "checkInRepository.List").
				Msg("failed to scan check-in row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}
		entries = append(entries, entry)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "checkInRepository.List").
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return entries, nil
}

// Marks projects the check-in table onto the per-day mark shape so the
// streak calculator can treat all four streams uniformly. Every stored
// check-in counts as done; no decryption happens on this path.
func (c *checkInRepository) Marks(ctx context.Context) ([]models.DayMark, error) {
	log := logger.FromContext(ctx)

	rows, err := c.DB.QueryContext(ctx, listCheckInDays)
	if err != nil {
		log.Err(err).
			Str("func", "checkInRepository.Marks").
			Msg("failed to execute query for check-in days")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var marks []models.DayMark
	for rows.Next() {
		var day string
		if scanErr := rows.Scan(&day); scanErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}
		marks = append(marks, models.DayMark{Stream: models.StreamCheckIn, Day: day, Done: true})
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return marks, nil
}

func (c *checkInRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := c.DB.QueryRowContext(ctx, countCheckIns).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return count, nil
}

func (c *checkInRepository) scanCheckIn(scan func(dest ...any) error) (models.CheckIn, error) {
	var (
		entry              models.CheckIn
		note               string
		createdAt, updated string
	)
	if err := scan(&entry.ID, &entry.Day, &entry.Feeling, &entry.Craving, &note, &createdAt, &updated); err != nil {
		return models.CheckIn{}, err
	}

	entry.Note = c.codec.DecryptOrPlaceholder(note)

	var err error
	if entry.CreatedAt, err = decodeTime(createdAt); err != nil {
		return models.CheckIn{}, err
	}
	if entry.UpdatedAt, err = decodeTime(updated); err != nil {
		return models.CheckIn{}, err
	}

	return entry, nil
}
