// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Daybreak Authors

package migrate

// bootstrapSchema creates the full current table layout. Every statement is
// idempotent ("create if not exists"), independent of the versioned
// migration list, so a fresh install and an upgraded install converge to
// the same schema.
const bootstrapSchema = `
CREATE TABLE IF NOT EXISTS schema_version (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	version INTEGER NOT NULL,
	updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS profile (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	display_name TEXT NOT NULL DEFAULT '',
	clean_date TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS journal_entries (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL DEFAULT '',
	body TEXT NOT NULL DEFAULT '',
	mood INTEGER NOT NULL DEFAULT 0,
	tags TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS check_ins (
	id TEXT PRIMARY KEY,
	day TEXT NOT NULL UNIQUE,
	feeling INTEGER NOT NULL DEFAULT 0,
	craving INTEGER NOT NULL DEFAULT 0,
	note TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS daily_marks (
	stream TEXT NOT NULL,
	day TEXT NOT NULL,
	done INTEGER NOT NULL DEFAULT 1,
	created_at TEXT NOT NULL,
	UNIQUE (stream, day)
);

CREATE TABLE IF NOT EXISTS contacts (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL DEFAULT '',
	phone TEXT NOT NULL DEFAULT '',
	notes TEXT NOT NULL DEFAULT '',
	role TEXT NOT NULL DEFAULT 'fellowship',
	is_sponsor INTEGER NOT NULL DEFAULT 0,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS meetings (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL DEFAULT '',
	weekday INTEGER NOT NULL DEFAULT 0,
	start_time TEXT NOT NULL DEFAULT '',
	location TEXT NOT NULL DEFAULT '',
	is_home_group INTEGER NOT NULL DEFAULT 0,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS meeting_logs (
	id TEXT PRIMARY KEY,
	meeting_id TEXT,
	attended_at TEXT NOT NULL,
	note TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS step_answers (
	id TEXT PRIMARY KEY,
	step INTEGER NOT NULL,
	question_id TEXT NOT NULL UNIQUE,
	answer TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS achievement_states (
	id TEXT PRIMARY KEY,
	status TEXT NOT NULL DEFAULT 'locked',
	current INTEGER NOT NULL DEFAULT 0,
	unlocked_at TEXT,
	reflection TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_journal_entries_created_at ON journal_entries(created_at);
CREATE INDEX IF NOT EXISTS idx_daily_marks_stream_day ON daily_marks(stream, day);
CREATE INDEX IF NOT EXISTS idx_meeting_logs_attended_at ON meeting_logs(attended_at);
`

// entityTables lists every user-data table, used by the reset boundary.
// schema_version is deliberately absent: reset never touches the version.
var entityTables = []string{
	"profile",
	"journal_entries",
	"check_ins",
	"daily_marks",
	"contacts",
	"meetings",
	"meeting_logs",
	"step_answers",
	"achievement_states",
}

// EntityTables returns the user-data table names in deletion order.
func EntityTables() []string {
	out := make([]string, len(entityTables))
	copy(out, entityTables)
	return out
}
