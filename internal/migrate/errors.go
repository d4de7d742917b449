// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Daybreak Authors

package migrate

import (
	"errors"
	"strings"

	"github.com/mattn/go-sqlite3"
)

// Classification is the result type returned by [SQLiteErrorClassifier.Classify].
// It separates migration-step failures that are expected artifacts of a
// partially-applied prior run from genuinely unexpected ones.
type Classification int

const (
	// Unexpected indicates a failure that is not explained by re-running an
	// already-applied migration. The runner still continues (best effort)
	// but logs it at error level and records it in the [Report].
	Unexpected Classification = iota

	// Ignorable indicates the migration's effect already exists (duplicate
	// column, table or index already present). Logged at debug and skipped.
	Ignorable
)

// Fatal errors of the runner itself. Step failures are never fatal; these are.
var (
	// ErrBootstrap is returned when the idempotent bootstrap DDL cannot be
	// applied at all.
	ErrBootstrap = errors.New("schema bootstrap failed")

	// ErrVersionUnreadable is returned when the schema_version row cannot be
	// read or written after bootstrap. The store cannot operate without it.
	ErrVersionUnreadable = errors.New("schema version row unreadable")
)

// SQLiteErrorClassifier classifies SQLite errors returned during schema
// alterations. It inspects the driver error and the message text, since
// SQLite reports "duplicate column" through the generic SQLITE_ERROR code.
type SQLiteErrorClassifier struct{}

// NewSQLiteErrorClassifier constructs a [SQLiteErrorClassifier] ready for use.
func NewSQLiteErrorClassifier() *SQLiteErrorClassifier {
	return &SQLiteErrorClassifier{}
}

// Classify maps err to a [Classification]. Nil and unrecognised errors are
// [Unexpected].
//
// Ignorable messages (all mean "the effect already exists"):
//   - "duplicate column name: ..."   (re-run ALTER TABLE ADD COLUMN)
//   - "table ... already exists"     (re-run CREATE TABLE)
//   - "index ... already exists"     (re-run CREATE INDEX)
func (c *SQLiteErrorClassifier) Classify(err error) Classification {
	if err == nil {
		return Unexpected
	}

	msg := err.Error()

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		// Constraint and I/O failures are never artifacts of a re-run.
		switch sqliteErr.Code {
		case sqlite3.ErrConstraint, sqlite3.ErrIoErr, sqlite3.ErrCorrupt:
			return Unexpected
		}
		msg = sqliteErr.Error()
	}

	lower := strings.ToLower(msg)
	if strings.Contains(lower, "duplicate column name") ||
		strings.Contains(lower, "already exists") {
		return Ignorable
	}

	return Unexpected
}
