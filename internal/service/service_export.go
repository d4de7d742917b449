// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Daybreak Authors

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/daybreak-app/daybreak-store/internal/logger"
	"github.com/daybreak-app/daybreak-store/internal/store"
	"github.com/daybreak-app/daybreak-store/models"
)

type exportService struct {
	storages *store.Storages
	logger   *logger.Logger
	now      func() time.Time
}

func NewExportService(storages *store.Storages, logger *logger.Logger) ExportService {
	return &exportService{
		storages: storages,
		logger:   logger,
		now:      time.Now,
	}
}

// ExportAll assembles the portable snapshot. Repositories decrypt on read
// (batched where the listing is large), substituting the placeholder for
// any field that no longer decrypts, so a single corrupt record never
// aborts an export.
func (e *exportService) ExportAll(ctx context.Context) (models.ExportDocument, error) {
	log := logger.FromContext(ctx)

	doc := models.ExportDocument{ExportedAt: e.now()}

	var err error
	if doc.Profile, err = e.storages.Profile.Get(ctx); err != nil {
		return models.ExportDocument{}, fmt.Errorf("failed to export profile: %w", err)
	}
	if doc.JournalEntries, err = e.storages.Journal.List(ctx, models.JournalFilter{}); err != nil {
		return models.ExportDocument{}, fmt.Errorf("failed to export journal entries: %w", err)
	}
	if doc.CheckIns, err = e.storages.CheckIns.List(ctx, 0); err != nil {
		return models.ExportDocument{}, fmt.Errorf("failed to export check-ins: %w", err)
	}
	if doc.DayMarks, err = e.storages.DailyMarks.All(ctx); err != nil {
		return models.ExportDocument{}, fmt.Errorf("failed to export daily marks: %w", err)
	}
	if doc.Contacts, err = e.storages.Contacts.List(ctx); err != nil {
		return models.ExportDocument{}, fmt.Errorf("failed to export contacts: %w", err)
	}
	if doc.Meetings, err = e.storages.Meetings.List(ctx); err != nil {
		return models.ExportDocument{}, fmt.Errorf("failed to export meetings: %w", err)
	}
	if doc.MeetingLogs, err = e.storages.Meetings.Logs(ctx, 0); err != nil {
		return models.ExportDocument{}, fmt.Errorf("failed to export meeting logs: %w", err)
	}
	if doc.StepAnswers, err = e.storages.StepWork.All(ctx); err != nil {
		return models.ExportDocument{}, fmt.Errorf("failed to export step answers: %w", err)
	}
	if doc.Achievements, err = e.storages.Achievements.List(ctx); err != nil {
		return models.ExportDocument{}, fmt.Errorf("failed to export achievement states: %w", err)
	}

	log.Info().
		Str("func", "exportService.ExportAll").
		Int("journal_entries", len(doc.JournalEntries)).
		Int("check_ins", len(doc.CheckIns)).
		Int("contacts", len(doc.Contacts)).
		Msg("export document assembled")

	return doc, nil
}
