// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Daybreak Authors

// Package migrate owns the versioned table layout of the daybreak store.
//
// Startup sequence (Runner.Run): idempotent bootstrap of the full current
// schema, version-row bootstrap (0 for pre-existing installs, latest for
// brand-new databases), best-effort application of pending migrations in
// ascending order, then forcing the version to the latest known value.
// The runner must complete before any repository issues a query.
package migrate

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/daybreak-app/daybreak-store/internal/logger"
)

// baselineTable marks a pre-existing install: if it exists before bootstrap,
// the database was created by an app version that predates version tracking
// and must replay the whole migration list.
const baselineTable = "check_ins"

// StepFailure records one migration step that did not apply cleanly. The
// runner continues past it either way.
type StepFailure struct {
	Version     int
	Description string
	Err         error
	Ignorable   bool
}

// Report summarises one runner pass.
type Report struct {
	StartVersion int
	FinalVersion int
	Applied      []int
	Failures     []StepFailure
}

// Unexpected returns the failures that were not classified as artifacts of
// a partially-applied prior run. A non-empty result usually means a genuine
// migration bug worth investigating, even though startup proceeded.
func (r Report) Unexpected() []StepFailure {
	var out []StepFailure
	for _, f := range r.Failures {
		if !f.Ignorable {
			out = append(out, f)
		}
	}
	return out
}

// Runner applies the fixed migration list to one database.
type Runner struct {
	db         *sql.DB
	migrations []Migration
	classifier *SQLiteErrorClassifier
	logger     *logger.Logger
}

// NewRunner constructs a [Runner] over db using the build-time migration
// list from [List].
func NewRunner(db *sql.DB, log *logger.Logger) *Runner {
	return &Runner{
		db:         db,
		migrations: List(),
		classifier: NewSQLiteErrorClassifier(),
		logger:     log,
	}
}

// Run executes the full startup sequence described in the package comment.
//
// Individual migration failures never abort the sequence: they are
// classified, logged, recorded in the [Report], and skipped. Only bootstrap
// failure or an unreadable version row is fatal.
func (r *Runner) Run(ctx context.Context) (Report, error) {
	hadBaseline, err := r.tableExists(ctx, baselineTable)
	if err != nil {
		return Report{}, fmt.Errorf("%w: %w", ErrBootstrap, err)
	}

	if _, err = r.db.ExecContext(ctx, bootstrapSchema); err != nil {
		r.logger.Err(err).
			Str("func", "Runner.Run").
			Msg("schema bootstrap failed")
		return Report{}, fmt.Errorf("%w: %w", ErrBootstrap, err)
	}

	current, err := r.ensureVersionRow(ctx, hadBaseline)
	if err != nil {
		return Report{}, err
	}

	report := Report{StartVersion: current}
	latest := LatestVersion()

	for _, m := range r.migrations {
		if m.Version <= current {
			continue
		}

		if applyErr := m.Apply(ctx, r.db); applyErr != nil {
			ignorable := r.classifier.Classify(applyErr) == Ignorable
			report.Failures = append(report.Failures, StepFailure{
				Version:     m.Version,
				Description: m.Description,
				Err:         applyErr,
				Ignorable:   ignorable,
			})

			if ignorable {
				r.logger.Debug().
					Str("func", "Runner.Run").
					Int("version", m.Version).
					Str("description", m.Description).
					Msg("migration effect already present, skipping")
			} else {
				r.logger.Err(applyErr).
					Str("func", "Runner.Run").
					Int("version", m.Version).
					Str("description", m.Description).
					Msg("migration step failed, continuing")
			}
		} else {
			report.Applied = append(report.Applied, m.Version)
			r.logger.Info().
				Str("func", "Runner.Run").
				Int("version", m.Version).
				Str("description", m.Description).
				Msg("applied migration")
		}

		// Persist progress after every step, failed or not, so a crash
		// mid-sequence resumes from the right place.
		if err = r.setVersion(ctx, m.Version); err != nil {
			return report, err
		}
		current = m.Version
	}

	// The version ends at the latest known value regardless of individual
	// step outcomes.
	if err = r.setVersion(ctx, latest); err != nil {
		return report, err
	}
	report.FinalVersion = latest

	r.logger.Info().
		Str("func", "Runner.Run").
		Int("start_version", report.StartVersion).
		Int("final_version", report.FinalVersion).
		Int("applied", len(report.Applied)).
		Int("failures", len(report.Failures)).
		Msg("migration run complete")

	return report, nil
}

// Version reads the current schema version.
func (r *Runner) Version(ctx context.Context) (int, error) {
	var version int
	err := r.db.QueryRowContext(ctx,
		`SELECT version FROM schema_version WHERE id = 1;`).Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrVersionUnreadable, err)
	}
	return version, nil
}

// ensureVersionRow makes the singleton version row exist and returns the
// current version. Brand-new databases (no baseline tables before
// bootstrap) start at the latest version: the bootstrap just created the
// full current schema, so no migration has anything left to do. Databases
// that predate version tracking start at 0 and replay everything.
func (r *Runner) ensureVersionRow(ctx context.Context, hadBaseline bool) (int, error) {
	version, err := r.Version(ctx)
	if err == nil {
		return version, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		// The table exists (bootstrap succeeded) but the row cannot be
		// read: unrecoverable.
		return 0, err
	}

	initial := LatestVersion()
	if hadBaseline {
		initial = 0
	}

	_, insErr := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO schema_version (id, version, updated_at) VALUES (1, ?, ?);`,
		initial, time.Now().UTC().Format(time.RFC3339))
	if insErr != nil {
		return 0, fmt.Errorf("%w: %w", ErrVersionUnreadable, insErr)
	}

	version, err = r.Version(ctx)
	if err != nil {
		return 0, err
	}

	r.logger.Info().
		Str("func", "Runner.ensureVersionRow").
		Bool("had_baseline", hadBaseline).
		Int("version", version).
		Msg("bootstrapped schema version row")

	return version, nil
}

func (r *Runner) setVersion(ctx context.Context, version int) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE schema_version SET version = ?, updated_at = ? WHERE id = 1;`,
		version, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrVersionUnreadable, err)
	}
	return nil
}

func (r *Runner) tableExists(ctx context.Context, name string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = ?;`,
		name).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
