// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Daybreak Authors

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/daybreak-app/daybreak-store/internal/crypto"
	"github.com/daybreak-app/daybreak-store/internal/logger"
	"github.com/daybreak-app/daybreak-store/models"
)

type journalRepository struct {
	*DB
	codec  crypto.FieldCodec
	logger *logger.Logger
}

func NewJournalRepository(db *DB, codec crypto.FieldCodec, logger *logger.Logger) JournalStorage {
	return &journalRepository{
		DB:     db,
		codec:  codec,
		logger: logger,
	}
}

func (j *journalRepository) Create(ctx context.Context, entry *models.JournalEntry) error {
	log := logger.FromContext(ctx)

	title, err := j.codec.Encrypt(entry.Title)
	if err != nil {
		return fmt.Errorf("failed to encrypt journal title: %w", err)
	}
	body, err := j.codec.Encrypt(entry.Body)
	if err != nil {
		return fmt.Errorf("failed to encrypt journal body: %w", err)
	}
	tags, err := encodeTags(entry.Tags)
	if err != nil {
		return err
	}

	_, err = j.DB.ExecContext(ctx, createJournalEntry,
		entry.ID,
		title,
		body,
		entry.Mood,
		tags,
		encodeTime(entry.CreatedAt),
		encodeTime(entry.UpdatedAt),
	)
	if err != nil {
		log.Err(err).
			Str("func", "journalRepository.Create").
			Str("id", entry.ID).
			Msg("failed to execute insert for journal entry")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

func (j *journalRepository) Get(ctx context.Context, id string) (models.JournalEntry, error) {
	log := logger.FromContext(ctx)

	row := j.DB.QueryRowContext(ctx, getJournalEntry, id)
	entry, err := j.scanEntry(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.JournalEntry{}, ErrNotFound
		}
		log.Err(err).
			Str("func", "journalRepository.Get").
			Str("id", id).
			Msg("failed to scan journal entry row")
		return models.JournalEntry{}, err
	}

	return entry, nil
}

func (j *journalRepository) List(ctx context.Context, filter models.JournalFilter) ([]models.JournalEntry, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildJournalListQuery(filter)
	if err != nil {
		log.Err(err).
			Str("func", "journalRepository.List").
			Msg("failed to build journal list query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := j.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "journalRepository.List").
			Msg("failed to execute query for journal entries")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var (
		entries    []models.JournalEntry
		rawTitles  []string
		rawBodies  []string
	)
	for rows.Next() {
		var (
			entry              models.JournalEntry
			title, body, tags  string
			createdAt, updated string
		)
		if scanErr := rows.Scan(&entry.ID, &title, &body, &entry.Mood, &tags, &createdAt, &updated); scanErr != nil {
			log.Err(scanErr).
				Str("func", "journalRepository.List").
				Msg("failed to scan journal entry row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}

		if entry.Tags, err = decodeTags(tags); err != nil {
			return nil, err
		}
		if entry.CreatedAt, err = decodeTime(createdAt); err != nil {
			return nil, err
		}
		if entry.UpdatedAt, err = decodeTime(updated); err != nil {
			return nil, err
		}

		entries = append(entries, entry)
		rawTitles = append(rawTitles, title)
		rawBodies = append(rawBodies, body)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "journalRepository.List").
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	// Content decryption is the expensive part of a listing, so it runs as
	// a bounded-parallel batch instead of per row.
	titles := crypto.DecryptBatch(j.codec, rawTitles)
	bodies := crypto.DecryptBatch(j.codec, rawBodies)
	for i := range entries {
		entries[i].Title = titles[i]
		entries[i].Body = bodies[i]
	}

	return entries, nil
}

func (j *journalRepository) Update(ctx context.Context, entry *models.JournalEntry) error {
	log := logger.FromContext(ctx)

	title, err := j.codec.Encrypt(entry.Title)
	if err != nil {
		return fmt.Errorf("failed to encrypt journal title: %w", err)
	}
	body, err := j.codec.Encrypt(entry.Body)
	if err != nil {
		return fmt.Errorf("failed to encrypt journal body: %w", err)
	}
	tags, err := encodeTags(entry.Tags)
	if err != nil {
		return err
	}

	result, err := j.DB.ExecContext(ctx, updateJournalEntry,
		title,
		body,
		entry.Mood,
		tags,
		encodeTime(entry.UpdatedAt),
		entry.ID,
	)
	if err != nil {
		log.Err(err).
			Str("func", "journalRepository.Update").
			Str("id", entry.ID).
			Msg("failed to execute update for journal entry")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

func (j *journalRepository) Delete(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	result, err := j.DB.ExecContext(ctx, deleteJournalEntry, id)
	if err != nil {
		log.Err(err).
			Str("func", "journalRepository.Delete").
			Str("id", id).
			Msg("failed to execute delete for journal entry")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

func (j *journalRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := j.DB.QueryRowContext(ctx, countJournalEntries).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return count, nil
}

// scanEntry scans one journal row and decrypts its content fields. Corrupt
// ciphertexts degrade to the placeholder instead of failing the whole read.
func (j *journalRepository) scanEntry(scan func(dest ...any) error) (models.JournalEntry, error) {
	var (
		entry              models.JournalEntry
		title, body, tags  string
		createdAt, updated string
	)
	if err := scan(&entry.ID, &title, &body, &entry.Mood, &tags, &createdAt, &updated); err != nil {
		return models.JournalEntry{}, err
	}

	entry.Title = j.codec.DecryptOrPlaceholder(title)
	entry.Body = j.codec.DecryptOrPlaceholder(body)

	var err error
	if entry.Tags, err = decodeTags(tags); err != nil {
		return models.JournalEntry{}, err
	}
	if entry.CreatedAt, err = decodeTime(createdAt); err != nil {
		return models.JournalEntry{}, err
	}
	if entry.UpdatedAt, err = decodeTime(updated); err != nil {
		return models.JournalEntry{}, err
	}

	return entry, nil
}

// buildJournalListQuery assembles the filtered listing dynamically: every
// filter field is optional and only plaintext columns participate.
func buildJournalListQuery(filter models.JournalFilter) (string, []any, error) {
	builder := sq.Select("id", "title", "body", "mood", "tags", "created_at", "updated_at").
		From("journal_entries").
		OrderBy("created_at DESC")

	if !filter.From.IsZero() {
		builder = builder.Where(sq.GtOrEq{"created_at": encodeTime(filter.From)})
	}
	if !filter.To.IsZero() {
		builder = builder.Where(sq.Lt{"created_at": encodeTime(filter.To)})
	}
	if filter.MinMood > 0 {
		builder = builder.Where(sq.GtOrEq{"mood": filter.MinMood})
	}
	if filter.Tag != "" {
		// Tags are stored as a JSON array of strings, so an exact tag match
		// is a quoted-substring match on the column.
		builder = builder.Where(sq.Like{"tags": fmt.Sprintf(`%%%q%%`, filter.Tag)})
	}
	if filter.Limit > 0 {
		builder = builder.Limit(filter.Limit)
	}

	return builder.ToSql()
}
