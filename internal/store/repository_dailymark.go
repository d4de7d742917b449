// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Daybreak Authors

package store

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/daybreak-app/daybreak-store/internal/logger"
	"github.com/daybreak-app/daybreak-store/models"
)

type dailyMarkRepository struct {
	*DB
	logger *logger.Logger
}

func NewDailyMarkRepository(db *DB, logger *logger.Logger) DailyMarkStorage {
	return &dailyMarkRepository{
		DB:     db,
		logger: logger,
	}
}

func (d *dailyMarkRepository) Mark(ctx context.Context, stream models.Stream, day string, done bool) error {
	log := logger.FromContext(ctx)

	if !slices.Contains(models.Streams, stream) {
		return fmt.Errorf("%w: %q", ErrUnknownStream, stream)
	}
	if _, err := time.Parse(models.DayLayout, day); err != nil {
		return fmt.Errorf("invalid day %q: %w", day, err)
	}

	_, err := d.DB.ExecContext(ctx, upsertDailyMark, string(stream), day, done, encodeTime(time.Now()))
	if err != nil {
		log.Err(err).
			Str("func", "dailyMarkRepository.Mark").
			Str("stream", string(stream)).
			Str("day", day).
			Msg("failed to execute upsert for daily mark")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

func (d *dailyMarkRepository) Marks(ctx context.Context, stream models.Stream) ([]models.DayMark, error) {
	if !slices.Contains(models.Streams, stream) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStream, stream)
	}
	return d.queryMarks(ctx, listDailyMarksByStream, string(stream))
}

func (d *dailyMarkRepository) All(ctx context.Context) ([]models.DayMark, error) {
	return d.queryMarks(ctx, listAllDailyMarks)
}

func (d *dailyMarkRepository) queryMarks(ctx context.Context, query string, args ...any) ([]models.DayMark, error) {
	log := logger.FromContext(ctx)

	rows, err := d.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "dailyMarkRepository.queryMarks").
			Msg("failed to execute query for daily marks")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var marks []models.DayMark
	for rows.Next() {
		var mark models.DayMark
		if scanErr := rows.Scan(&mark.Stream, &mark.Day, &mark.Done); scanErr != nil {
			log.Err(scanErr).
				Str("func", "dailyMarkRepository.queryMarks").
				Msg("failed to scan daily mark row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}
		marks = append(marks, mark)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return marks, nil
}
