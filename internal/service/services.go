// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Daybreak Authors

package service

import (
	"github.com/daybreak-app/daybreak-store/internal/achieve"
	"github.com/daybreak-app/daybreak-store/internal/logger"
	"github.com/daybreak-app/daybreak-store/internal/store"
)

// Services groups the derived-state and boundary services over one store.
type Services struct {
	Progress ProgressService
	Export   ExportService
	Reset    ResetService
}

func NewServices(storages *store.Storages, engine *achieve.Engine, logger *logger.Logger) *Services {
	return &Services{
		Progress: NewProgressService(storages, engine, logger),
		Export:   NewExportService(storages, logger),
		Reset:    NewResetService(storages, engine, logger),
	}
}
