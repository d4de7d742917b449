// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Daybreak Authors

package service

import (
	"context"
	"fmt"

	"github.com/daybreak-app/daybreak-store/internal/achieve"
	"github.com/daybreak-app/daybreak-store/internal/logger"
	"github.com/daybreak-app/daybreak-store/internal/store"
)

type resetService struct {
	storages *store.Storages
	engine   *achieve.Engine
	logger   *logger.Logger
}

func NewResetService(storages *store.Storages, engine *achieve.Engine, logger *logger.Logger) ResetService {
	return &resetService{
		storages: storages,
		engine:   engine,
		logger:   logger,
	}
}

// Reset deletes every user record and re-seeds achievement states as locked.
// The database file, schema and version row survive; only data goes.
func (r *resetService) Reset(ctx context.Context) error {
	log := logger.FromContext(ctx)

	if err := r.storages.Reset(ctx, r.engine.Definitions()); err != nil {
		return fmt.Errorf("reset failed: %w", err)
	}

	log.Info().Str("func", "resetService.Reset").Msg("account reset complete")
	return nil
}
