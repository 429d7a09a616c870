package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/chris/grafik/internal/db/migrations"
	"github.com/chris/grafik/internal/schedule"
)

const defaultDBPath = "~/.local/share/grafik/schedule.db"

// ErrNotInitialized is returned by New when init-db has not been run
var ErrNotInitialized = errors.New("database not initialized, run: grafik init-db")

// DB wraps the SQLite database connection
type DB struct {
	conn *sql.DB
	path string
}

// Options configures database connection behavior
type Options struct {
	// SkipSchemaCheck opens the database without verifying schema exists.
	// Use this for init-db command which creates the schema.
	SkipSchemaCheck bool
}

// New opens an initialized database
func New(dbPath string) (*DB, error) {
	return NewWithOptions(dbPath, Options{})
}

// ResolvePath expands a leading tilde and substitutes the XDG default for
// an empty path
func ResolvePath(dbPath string) (string, error) {
	if dbPath == "" || dbPath == defaultDBPath {
		// Use XDG_DATA_HOME if set, otherwise fallback to ~/.local/share
		dataDir := os.Getenv("XDG_DATA_HOME")
		if dataDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get user home directory: %w", err)
			}
			dataDir = filepath.Join(home, ".local/share")
		}
		return filepath.Join(dataDir, "grafik/schedule.db"), nil
	}
	if dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory: %w", err)
		}
		return filepath.Join(home, dbPath[1:]), nil
	}
	return dbPath, nil
}

// NewWithOptions creates a new database connection with configurable options
func NewWithOptions(dbPath string, opts Options) (*DB, error) {
	dbPath, err := ResolvePath(dbPath)
	if err != nil {
		return nil, err
	}

	// Create directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Set busy timeout first, before any other operations that might need write locks
	if _, err := conn.Exec("PRAGMA busy_timeout=5000"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	if !opts.SkipSchemaCheck {
		version, err := migrations.Version(context.Background(), conn)
		if err != nil {
			conn.Close()
			return nil, err
		}
		if version == 0 {
			conn.Close()
			return nil, ErrNotInitialized
		}
		// Older schemas are brought forward on open
		if version < migrations.Latest() {
			if err := migrations.Migrate(context.Background(), conn); err != nil {
				conn.Close()
				return nil, err
			}
		}
	}

	// The tick runner and user commands write concurrently
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	return &DB{conn: conn, path: dbPath}, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// Path returns the database file path
func (db *DB) Path() string {
	return db.path
}

// NewForTesting creates a new database with schema initialized.
// This is a convenience function for tests.
func NewForTesting(dbPath string) (*DB, error) {
	db, err := NewWithOptions(dbPath, Options{SkipSchemaCheck: true})
	if err != nil {
		return nil, err
	}

	if _, err := db.InitSchema(); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// InitSchema runs the embedded migrations.
// Returns true if schema was created, false if it already existed.
func (db *DB) InitSchema() (bool, error) {
	ctx := context.Background()
	version, err := migrations.Version(ctx, db.conn)
	if err != nil {
		return false, err
	}
	if err := migrations.Migrate(ctx, db.conn); err != nil {
		return false, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return version == 0, nil
}

// SchemaVersion returns the applied migration version
func (db *DB) SchemaVersion() (int, error) {
	return migrations.Version(context.Background(), db.conn)
}

// TableColumns returns the column names of table in declaration order
func (db *DB) TableColumns(table string) ([]string, error) {
	rows, err := db.conn.Query("SELECT name FROM pragma_table_info(?)", table)
	if err != nil {
		return nil, fmt.Errorf("failed to get table schema: %w", err)
	}
	defer rows.Close()

	var columns []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan schema row: %w", err)
		}
		columns = append(columns, name)
	}
	return columns, rows.Err()
}

// persistErr marks err as a storage failure
func persistErr(op string, err error) error {
	return fmt.Errorf("%w: failed to %s: %w", schedule.ErrPersistenceFailure, op, err)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
