package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/schoolhub/registrar/internal/config"
	"github.com/schoolhub/registrar/internal/pkg/logger"
)

// SQLiteDB database connection structure
type SQLiteDB struct {
	DB   *sql.DB
	Path string
}

// schema creates the four entity tables. The FOREIGN KEY clauses are
// declarative only: the foreign_keys pragma stays at the engine default
// (off), so registrations referencing missing rows remain insertable at
// the SQL level. Integrity of the validated paths lives in the service
// layer.
const schema = `
CREATE TABLE IF NOT EXISTS students (
	student_id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	age INTEGER CHECK (age >= 0),
	email TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS instructors (
	instructor_id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	age INTEGER CHECK (age >= 0),
	email TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS courses (
	course_id TEXT PRIMARY KEY,
	course_name TEXT NOT NULL,
	instructor_id TEXT,
	FOREIGN KEY (instructor_id) REFERENCES instructors (instructor_id)
);

CREATE TABLE IF NOT EXISTS registrations (
	registration_id INTEGER PRIMARY KEY AUTOINCREMENT,
	student_id TEXT,
	course_id TEXT,
	FOREIGN KEY (student_id) REFERENCES students (student_id),
	FOREIGN KEY (course_id) REFERENCES courses (course_id)
);
`

// NewSQLiteDB opens the configured database file, creating it if missing
func NewSQLiteDB(cfg *config.Config) (*SQLiteDB, error) {
	return Open(cfg.Database.Path)
}

// Open opens the database file at path, creating it if missing
func Open(path string) (*SQLiteDB, error) {
	// Create a context with timeout for the connection check
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", path)

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}

	// Test connection with context
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to establish database connection: %w", err)
	}

	logger.Debug().Str("path", path).Msg("Database opened")

	return &SQLiteDB{DB: db, Path: path}, nil
}

// InitSchema creates the entity tables if they do not exist. Called once
// by the process entry point before any store operation; never an import
// side effect.
func (db *SQLiteDB) InitSchema(ctx context.Context) error {
	if _, err := db.DB.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}

// Close closing method
func (db *SQLiteDB) Close() {
	if db.DB != nil {
		_ = db.DB.Close()
	}
}

// TransactionFn is a function that executes within a transaction
type TransactionFn func(ctx context.Context, tx *sql.Tx) error

// WithTransaction runs a function within a transaction
func (db *SQLiteDB) WithTransaction(ctx context.Context, fn TransactionFn) error {
	// Add timeout to context if not already present
	_, hasDeadline := ctx.Deadline()
	if !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
	}

	// Begin transaction
	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	// Rollback on panic
	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback()
			panic(r) // Re-throw panic after rollback
		}
	}()

	// Execute function within transaction
	if err := fn(ctx, tx); err != nil {
		// Rollback on error
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.Error().Err(rbErr).Msg("Failed to rollback transaction")
			return fmt.Errorf("error: %v, rollback error: %w", err, rbErr)
		}
		return err
	}

	// Commit transaction
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
