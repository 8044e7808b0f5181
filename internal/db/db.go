package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/visa/internal/apperror"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// Open opens the SQLite database at path, creating its directory if needed.
// Every failure is a STORAGE_ERROR.
//
// The pool is pinned to a single connection: the ledger has one user, and
// per-connection settings (case-sensitive LIKE) and in-memory databases
// both depend on every query reaching the same connection.
func Open(path string) (*sql.DB, error) {
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, apperror.Storage(err, "failed to create database directory")
		}
	}

	database, err := sql.Open("sqlite3", DSN(path))
	if err != nil {
		return nil, apperror.Storage(err, "failed to open database")
	}
	database.SetMaxOpenConns(1)

	if err := database.Ping(); err != nil {
		database.Close()
		return nil, apperror.Storage(err, "failed to connect to database")
	}

	return database, nil
}

// DSN builds the go-sqlite3 connection string for path.
func DSN(path string) string {
	return fmt.Sprintf("file:%s?_case_sensitive_like=true&_busy_timeout=5000", path)
}

// DefaultPath returns the default database location, ~/.visa/visa_bd.db.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".visa", "visa_bd.db"), nil
}

// TableExists reports whether the establishments table is present.
func TableExists(database *sql.DB) (bool, error) {
	var n int
	err := database.QueryRow(
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'estabelecimentos'",
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to inspect schema: %w", err)
	}
	return n > 0, nil
}
