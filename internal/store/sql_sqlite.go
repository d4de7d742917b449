package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"

	"github.com/daybreak-app/daybreak-store/internal/config"
	"github.com/daybreak-app/daybreak-store/internal/logger"
)

// Open opens (creating if absent) the single local database file and runs
// the schema migration sequence before returning. Failure to open or ping
// the file is unrecoverable and propagates to the caller.
func Open(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	if err := createLocalDBFileIfNotExists(cfg.Path); err != nil {
		log.Err(err).Str("func", "Open").Msg("error creating database file")
		return nil, fmt.Errorf("error creating database file: %w", err)
	}

	conn, err := sql.Open("sqlite3", cfg.Path)
	if err != nil {
		log.Err(err).Str("func", "Open").Msg("error opening database")
		return nil, fmt.Errorf("error opening connection to DB: %w", err)
	}

	if err = conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "Open").Msg("error connecting to database (ping)")
		return nil, err
	}
	log.Debug().Str("func", "Open").Msg("connected to database successfully")

	db := &DB{
		DB:     conn,
		logger: log,
	}

	if _, err = db.Migrate(ctx); err != nil {
		conn.Close()
		return nil, err
	}

	return db, nil
}

// OpenInMemory opens a private in-memory database and runs migrations.
// Intended for tests.
func OpenInMemory(ctx context.Context, log *logger.Logger) (*DB, error) {
	return Open(ctx, config.DB{Path: ":memory:"}, log)
}

func createLocalDBFileIfNotExists(dbFile string) error {
	if dbFile == ":memory:" {
		return nil
	}

	if _, err := os.Stat(dbFile); os.IsNotExist(err) {
		// if not found - create
		f, err := os.Create(dbFile)
		if err != nil {
			return fmt.Errorf("error creating DB file: %w", err)
		}
		f.Close()
	}

	// file already exists
	return nil
}
