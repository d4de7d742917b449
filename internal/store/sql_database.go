package store

import (
	"context"
	"database/sql"

	"github.com/daybreak-app/daybreak-store/internal/logger"
	"github.com/daybreak-app/daybreak-store/internal/migrate"
)

// DB wraps the single process-wide database handle. It is opened once at
// startup and closed explicitly on shutdown or account reset; repositories
// embed it rather than holding their own connections.
type DB struct {
	*sql.DB
	logger *logger.Logger
}

// Migrate runs the versioned schema migration sequence. No repository may
// issue a query before this completes.
func (db *DB) Migrate(ctx context.Context) (migrate.Report, error) {
	return migrate.NewRunner(db.DB, db.logger).Run(ctx)
}
