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

type profileRepository struct {
	*DB
	codec  crypto.FieldCodec
	logger *logger.Logger
}

func NewProfileRepository(db *DB, codec crypto.FieldCodec, logger *logger.Logger) ProfileStorage {
	return &profileRepository{
		DB:     db,
		codec:  codec,
		logger: logger,
	}
}

// Get returns the singleton profile. A store with no profile row yet returns
// the zero profile, not an error: days-clean derivation treats it as "no
// clean date set".
func (p *profileRepository) Get(ctx context.Context) (models.Profile, error) {
	log := logger.FromContext(ctx)

	var (
		profile            models.Profile
		displayName        string
		createdAt, updated string
	)
	err := p.DB.QueryRowContext(ctx, getProfile).Scan(&displayName, &profile.CleanDate, &createdAt, &updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Profile{}, nil
		}
		log.Err(err).
			Str("func", "profileRepository.Get").
			Msg("failed to scan profile row")
		return models.Profile{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	profile.DisplayName = p.codec.DecryptOrPlaceholder(displayName)
	if profile.CreatedAt, err = decodeTime(createdAt); err != nil {
		return models.Profile{}, err
	}
	if profile.UpdatedAt, err = decodeTime(updated); err != nil {
		return models.Profile{}, err
	}

	return profile, nil
}

func (p *profileRepository) Save(ctx context.Context, profile models.Profile) error {
	log := logger.FromContext(ctx)

	displayName, err := p.codec.Encrypt(profile.DisplayName)
	if err != nil {
		return fmt.Errorf("failed to encrypt display name: %w", err)
	}

	_, err = p.DB.ExecContext(ctx, saveProfile,
		displayName,
		profile.CleanDate,
		encodeTime(profile.CreatedAt),
		encodeTime(profile.UpdatedAt),
	)
	if err != nil {
		log.Err(err).
			Str("func", "profileRepository.Save").
			Msg("failed to execute upsert for profile")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}
