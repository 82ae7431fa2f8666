package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/msomdec/crag-log/internal/domain"
	"github.com/msomdec/crag-log/internal/repository/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database handle and exposes the repositories built
// on it. It is opened once at process start, passed by handle to the
// services, and closed once at shutdown.
type DB struct {
	SqlDB *sql.DB
}

// New opens a SQLite database at the given path and configures it for use.
// It enables WAL mode and foreign keys.
func New(dbPath string) (*DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	// Enable foreign key enforcement.
	if _, err := db.ExecContext(context.Background(), "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	// Set a reasonable connection pool for SQLite.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &DB{SqlDB: db}, nil
}

// Migrate applies all unapplied schema migrations. Safe to invoke on
// every process start.
func (db *DB) Migrate(ctx context.Context) error {
	return migrations.Run(ctx, db.SqlDB)
}

// Close closes the underlying database handle.
func (db *DB) Close() error {
	return db.SqlDB.Close()
}

// Users returns the user repository backed by this database.
func (db *DB) Users() domain.UserRepository {
	return NewUserRepository(db)
}

// Sessions returns the session repository backed by this database.
func (db *DB) Sessions() domain.SessionRepository {
	return NewSessionRepository(db)
}

// Climbs returns the climb repository backed by this database.
func (db *DB) Climbs() domain.ClimbRepository {
	return NewClimbRepository(db)
}
