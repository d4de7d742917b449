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

type stepWorkRepository struct {
	*DB
	codec  crypto.FieldCodec
	logger *logger.Logger
}

func NewStepWorkRepository(db *DB, codec crypto.FieldCodec, logger *logger.Logger) StepWorkStorage {
	return &stepWorkRepository{
		DB:     db,
		codec:  codec,
		logger: logger,
	}
}

func (s *stepWorkRepository) SaveAnswer(ctx context.Context, answer *models.StepAnswer) error {
	log := logger.FromContext(ctx)

	if !questionExists(answer.QuestionID) {
		return fmt.Errorf("%w: %q", ErrUnknownQuestion, answer.QuestionID)
	}

	encrypted, err := s.codec.Encrypt(answer.Answer)
	if err != nil {
		return fmt.Errorf("failed to encrypt step answer: %w", err)
	}

	_, err = s.DB.ExecContext(ctx, upsertStepAnswer,
		answer.ID,
		answer.Step,
		answer.QuestionID,
		encrypted,
		encodeTime(answer.CreatedAt),
		encodeTime(answer.UpdatedAt),
	)
	if err != nil {
		log.Err(err).
			Str("func", "stepWorkRepository.SaveAnswer").
			Str("question_id", answer.QuestionID).
			Msg("failed to execute upsert for step answer")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

func (s *stepWorkRepository) Answer(ctx context.Context, questionID string) (models.StepAnswer, error) {
	log := logger.FromContext(ctx)

	row := s.DB.QueryRowContext(ctx, getStepAnswer, questionID)
	answer, err := s.scanAnswer(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.StepAnswer{}, ErrNotFound
		}
		log.Err(err).
			Str("func", "stepWorkRepository.Answer").
			Str("question_id", questionID).
			Msg("failed to scan step answer row")
		return models.StepAnswer{}, err
	}

	return answer, nil
}

func (s *stepWorkRepository) AnswersForStep(ctx context.Context, step int) ([]models.StepAnswer, error) {
	return s.queryAnswers(ctx, listStepAnswersForStep, step)
}

func (s *stepWorkRepository) All(ctx context.Context) ([]models.StepAnswer, error) {
	return s.queryAnswers(ctx, listAllStepAnswers)
}

// AnsweredCounts aggregates in SQL; answers stay encrypted at rest and are
// never decrypted to produce completion numbers.
func (s *stepWorkRepository) AnsweredCounts(ctx context.Context) (map[int]int, error) {
	log := logger.FromContext(ctx)

	rows, err := s.DB.QueryContext(ctx, countAnswersByStep)
	if err != nil {
		log.Err(err).
			Str("func", "stepWorkRepository.AnsweredCounts").
			Msg("failed to execute query for answer counts")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	counts := make(map[int]int)
	for rows.Next() {
		var step, count int
		if scanErr := rows.Scan(&step, &count); scanErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}
		counts[step] = count
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return counts, nil
}

func (s *stepWorkRepository) queryAnswers(ctx context.Context, query string, args ...any) ([]models.StepAnswer, error) {
	log := logger.FromContext(ctx)

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "stepWorkRepository.queryAnswers").
			Msg("failed to execute query for step answers")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var answers []models.StepAnswer
	for rows.Next() {
		answer, scanErr := s.scanAnswer(rows.Scan)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "stepWorkRepository.queryAnswers").
				Msg("failed to scan step answer row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}
		answers = append(answers, answer)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return answers, nil
}

func (s *stepWorkRepository) scanAnswer(scan func(dest ...any) error) (models.StepAnswer, error) {
	var (
		answer             models.StepAnswer
		encrypted          string
		createdAt, updated string
	)
	if err := scan(&answer.ID, &answer.Step, &answer.QuestionID, &encrypted, &createdAt, &updated); err != nil {
		return models.StepAnswer{}, err
	}

	answer.Answer = s.codec.DecryptOrPlaceholder(encrypted)

	var err error
	if answer.CreatedAt, err = decodeTime(createdAt); err != nil {
		return models.StepAnswer{}, err
	}
	if answer.UpdatedAt, err = decodeTime(updated); err != nil {
		return models.StepAnswer{}, err
	}

	return answer, nil
}

func questionExists(questionID string) bool {
	for _, q := range models.StepCatalog {
		if q.ID == questionID {
			return true
		}
	}
	return false
}
