// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Daybreak Authors

package migrate

import (
	"context"
	"database/sql"
)

// Migration is one versioned schema change. Versions are unique, fixed at
// build time, and applied in ascending order. Each migration must tolerate
// being re-run against a database where its effect already exists: the
// runner classifies and skips those failures.
type Migration struct {
	Version     int
	Description string
	Apply       func(ctx context.Context, db *sql.DB) error
}

func execMigration(stmts ...string) func(ctx context.Context, db *sql.DB) error {
	return func(ctx context.Context, db *sql.DB) error {
		for _, stmt := range stmts {
			if _, err := db.ExecContext(ctx, stmt); err != nil {
				return err
			}
		}
		return nil
	}
}

// List returns the fixed, ascending migration list. The bootstrap schema
// already contains every effect below, so fresh installs never run them;
// they exist to carry older installs forward.
func List() []Migration {
	return []Migration{
		{
			Version:     1,
			Description: "add craving rating to check_ins",
			Apply: execMigration(
				`ALTER TABLE check_ins ADD COLUMN craving INTEGER NOT NULL DEFAULT 0;`,
			),
		},
		{
			Version:     2,
			Description: "add tags to journal_entries",
			Apply: execMigration(
				`ALTER TABLE journal_entries ADD COLUMN tags TEXT NOT NULL DEFAULT '';`,
			),
		},
		{
			Version:     3,
			Description: "add home group flag to meetings",
			Apply: execMigration(
				`ALTER TABLE meetings ADD COLUMN is_home_group INTEGER NOT NULL DEFAULT 0;`,
			),
		},
		{
			Version:     4,
			Description: "create daily_marks for reading/gratitude/nightly streams",
			Apply: execMigration(
				`CREATE TABLE IF NOT EXISTS daily_marks (
					stream TEXT NOT NULL,
					day TEXT NOT NULL,
					done INTEGER NOT NULL DEFAULT 1,
					created_at TEXT NOT NULL,
					UNIQUE (stream, day)
				);`,
				`CREATE INDEX IF NOT EXISTS idx_daily_marks_stream_day ON daily_marks(stream, day);`,
			),
		},
		{
			Version:     5,
			Description: "add reflection to achievement_states",
			Apply: execMigration(
				`ALTER TABLE achievement_states ADD COLUMN reflection TEXT NOT NULL DEFAULT '';`,
			),
		},
		{
			Version:     6,
			Description: "index meeting_logs by attendance time",
			Apply: execMigration(
				`CREATE INDEX IF NOT EXISTS idx_meeting_logs_attended_at ON meeting_logs(attended_at);`,
			),
		},
	}
}

// LatestVersion returns the highest version in [List].
func LatestVersion() int {
	list := List()
	return list[len(list)-1].Version
}
