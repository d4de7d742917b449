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

type meetingRepository struct {
	*DB
	codec  crypto.FieldCodec
	logger *logger.Logger
}

func NewMeetingRepository(db *DB, codec crypto.FieldCodec, logger *logger.Logger) MeetingStorage {
	return &meetingRepository{
		DB:     db,
		codec:  codec,
		logger: logger,
	}
}

func (m *meetingRepository) Create(ctx context.Context, meeting *models.Meeting) error {
	log := logger.FromContext(ctx)

	_, err := m.DB.ExecContext(ctx, createMeeting,
		meeting.ID,
		meeting.Name,
		meeting.Weekday,
		meeting.StartTime,
		meeting.Location,
		meeting.IsHomeGroup,
		encodeTime(meeting.CreatedAt),
		encodeTime(meeting.UpdatedAt),
	)
	if err != nil {
		log.Err(err).
			Str("func", "meetingRepository.Create").
			Str("id", meeting.ID).
			Msg("failed to execute insert for meeting")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

func (m *meetingRepository) Get(ctx context.Context, id string) (models.Meeting, error) {
	log := logger.FromContext(ctx)

	row := m.DB.QueryRowContext(ctx, getMeeting, id)
	meeting, err := scanMeeting(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Meeting{}, ErrNotFound
		}
		log.Err(err).
			Str("func", "meetingRepository.Get").
			Str("id", id).
			Msg("failed to scan meeting row")
		return models.Meeting{}, err
	}

	return meeting, nil
}

func (m *meetingRepository) List(ctx context.Context) ([]models.Meeting, error) {
	log := logger.FromContext(ctx)

	rows, err := m.DB.QueryContext(ctx, listMeetings)
	if err != nil {
		log.Err(err).
			Str("func", "meetingRepository.List").
			Msg("failed to execute query for meetings")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var meetings []models.Meeting
	for rows.Next() {
		meeting, scanErr := scanMeeting(rows.Scan)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "meetingRepository.List").
				Msg("failed to scan meeting row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}
		meetings = append(meetings, meeting)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return meetings, nil
}

func (m *meetingRepository) Update(ctx context.Context, meeting *models.Meeting) error {
	log := logger.FromContext(ctx)

	result, err := m.DB.ExecContext(ctx, updateMeeting,
		meeting.Name,
		meeting.Weekday,
		meeting.StartTime,
		meeting.Location,
		encodeTime(meeting.UpdatedAt),
		meeting.ID,
	)
	if err != nil {
		log.Err(err).
			Str("func", "meetingRepository.Update").
			Str("id", meeting.ID).
			Msg("failed to execute update for meeting")
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

// Delete removes the meeting only. Attendance logs referencing it keep their
// meeting_id and become dangling, which log readers tolerate.
func (m *meetingRepository) Delete(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	result, err := m.DB.ExecContext(ctx, deleteMeeting, id)
	if err != nil {
		log.Err(err).
			Str("func", "meetingRepository.Delete").
			Str("id", id).
			Msg("failed to execute delete for meeting")
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

// SetHomeGroup moves the home-group role to the given meeting. Clear and set
// run in one transaction so no observer ever sees two home groups.
func (m *meetingRepository) SetHomeGroup(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	tx, err := m.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "meetingRepository.SetHomeGroup").
			Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, clearHomeGroupFlag); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	result, err := tx.ExecContext(ctx, setHomeGroupFlag, id)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).
			Str("func", "meetingRepository.SetHomeGroup").
			Str("id", id).
			Msg("failed to commit home-group transfer")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

func (m *meetingRepository) HasHomeGroup(ctx context.Context) (bool, error) {
	var count int
	if err := m.DB.QueryRowContext(ctx, hasHomeGroupFlag).Scan(&count); err != nil {
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return count > 0, nil
}

func (m *meetingRepository) LogAttendance(ctx context.Context, logEntry *models.MeetingLog) error {
	log := logger.FromContext(ctx)

	note, err := m.codec.Encrypt(logEntry.Note)
	if err != nil {
		return fmt.Errorf("failed to encrypt attendance note: %w", err)
	}

	var meetingID any
	if logEntry.MeetingID != "" {
		meetingID = logEntry.MeetingID
	}

	_, err = m.DB.ExecContext(ctx, createMeetingLog,
		logEntry.ID,
		meetingID,
		encodeTime(logEntry.AttendedAt),
		note,
		encodeTime(logEntry.CreatedAt),
	)
	if err != nil {
		log.Err(err).
			Str("func", "meetingRepository.LogAttendance").
			Str("id", logEntry.ID).
			Msg("failed to execute insert for meeting log")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

func (m *meetingRepository) Logs(ctx context.Context, limit uint64) ([]models.MeetingLog, error) {
	log := logger.FromContext(ctx)

	if limit == 0 {
		limit = ^uint64(0) >> 1
	}

	rows, err := m.DB.QueryContext(ctx, listMeetingLogs, limit)
	if err != nil {
		log.Err(err).
			Str("func", "meetingRepository.Logs").
			Msg("failed to execute query for meeting logs")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var logs []models.MeetingLog
	for rows.Next() {
		var (
			entry              models.MeetingLog
			meetingID          sql.NullString
			note               string
			attendedAt, create string
		)
		if scanErr := rows.Scan(&entry.ID, &meetingID, &attendedAt, &note, &create); scanErr != nil {
			log.Err(scanErr).
				Str("func", "meetingRepository.Logs").
				Msg("failed to scan meeting log row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}

		entry.MeetingID = meetingID.String
		entry.Note = m.codec.DecryptOrPlaceholder(note)
		if entry.AttendedAt, err = decodeTime(attendedAt); err != nil {
			return nil, err
		}
		if entry.CreatedAt, err = decodeTime(create); err != nil {
			return nil, err
		}

		logs = append(logs, entry)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return logs, nil
}

func (m *meetingRepository) LogCount(ctx context.Context) (int, error) {
	var count int
	if err := m.DB.QueryRowContext(ctx, countMeetingLogs).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return count, nil
}

func scanMeeting(scan func(dest ...any) error) (models.Meeting, error) {
	var (
		meeting            models.Meeting
		createdAt, updated string
	)
	if err := scan(
		&meeting.ID,
		&meeting.Name,
		&meeting.Weekday,
		&meeting.StartTime,
		&meeting.Location,
		&meeting.IsHomeGroup,
		&createdAt,
		&updated,
	); err != nil {
		return models.Meeting{}, err
	}

	var err error
	if meeting.CreatedAt, err = decodeTime(createdAt); err != nil {
		return models.Meeting{}, err
	}
	if meeting.UpdatedAt, err = decodeTime(updated); err != nil {
		return models.Meeting{}, err
	}

	return meeting, nil
}
