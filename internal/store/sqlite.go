package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
)

// SQLiteBackend persists key/value blobs in a single SQLite table. It is safe
// for concurrent use because the underlying *sql.DB is concurrency-safe.
type SQLiteBackend struct {
	conn   *sql.DB
	logger *logrus.Logger

	// Prepared statements for better performance
	getStmt    *sql.Stmt
	setStmt    *sql.Stmt
	deleteStmt *sql.Stmt
}

// NewSQLiteBackend opens (or creates) a SQLite database at the provided path
// and ensures the kv table exists. It also applies lightweight
// performance-oriented pragmas (WAL, cache sizing). Caller should Close() it
// when finished.
func NewSQLiteBackend(dbPath string) (*SQLiteBackend, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	conn, err := sql.Open("sqlite3", dbPath+"?cache=shared&mode=rwc")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool - adjusted for SQLite
	conn.SetMaxOpenConns(5) // SQLite works better with fewer connections
	conn.SetMaxIdleConns(2)
	conn.SetConnMaxLifetime(15 * time.Minute)

	// Enable WAL mode for better concurrency
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA temp_store=memory;",
	}

	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			logger.WithError(err).WithField("pragma", pragma).Warn("Failed to set pragma")
		}
	}

	b := &SQLiteBackend{
		conn:   conn,
		logger: logger,
	}

	if err := b.createTable(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create kv table: %w", err)
	}

	if err := b.prepareStatements(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to prepare statements: %w", err)
	}

	logger.WithField("db_path", dbPath).Info("Key-value store initialized successfully")
	return b, nil
}

// createTable creates the kv table if it does not already exist. Idempotent
// and safe to call multiple times.
func (b *SQLiteBackend) createTable() error {
	_, err := b.conn.Exec(`
	CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`)
	return err
}

// prepareStatements prepares the three statements used on every operation.
func (b *SQLiteBackend) prepareStatements() error {
	var err error

	b.getStmt, err = b.conn.Prepare(`SELECT value FROM kv WHERE key = ?`)
	if err != nil {
		return fmt.Errorf("failed to prepare get statement: %w", err)
	}

	b.setStmt, err = b.conn.Prepare(`
		INSERT INTO kv (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			value=excluded.value,
			updated_at=excluded.updated_at`)
	if err != nil {
		return fmt.Errorf("failed to prepare set statement: %w", err)
	}

	b.deleteStmt, err = b.conn.Prepare(`DELETE FROM kv WHERE key = ?`)
	if err != nil {
		return fmt.Errorf("failed to prepare delete statement: %w", err)
	}

	return nil
}

// Get returns the value stored under key, reporting absence without error.
func (b *SQLiteBackend) Get(key string) (string, bool, error) {
	var value string
	err := b.getStmt.QueryRow(key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		b.logger.WithError(err).WithField("key", key).Error("Failed to read key")
		return "", false, err
	}
	return value, true, nil
}

// Set stores or replaces the value under key.
func (b *SQLiteBackend) Set(key, value string) error {
	_, err := b.setStmt.Exec(key, value)
	if err != nil {
		b.logger.WithError(err).WithField("key", key).Error("Failed to write key")
	}
	return err
}

// Delete removes a key. Deleting an absent key is a no-op.
func (b *SQLiteBackend) Delete(key string) error {
	_, err := b.deleteStmt.Exec(key)
	if err != nil {
		b.logger.WithError(err).WithField("key", key).Error("Failed to delete key")
	}
	return err
}

// Close closes the prepared statements and the underlying connection.
func (b *SQLiteBackend) Close() error {
	statements := []*sql.Stmt{b.getStmt, b.setStmt, b.deleteStmt}
	for _, stmt := range statements {
		if stmt != nil {
			if err := stmt.Close(); err != nil {
				b.logger.WithError(err).Error("Failed to close prepared statement")
			}
		}
	}

	if b.conn != nil {
		return b.conn.Close()
	}
	return nil
}
