// Package badger implements the snapshot stores and audit sink on top of an
// embedded Badger database, accessed through badgerhold for typed queries.
package badger

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/timshannon/badgerhold/v4"
)

// DB manages the Badger database connection shared by the typed stores.
type DB struct {
	store  *badgerhold.Store
	logger *slog.Logger
}

// Open creates the data directory if needed and opens the database.
func Open(path string, logger *slog.Logger) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	logger.Debug("Opening Badger database.", "path", path)

	options := badgerhold.DefaultOptions
	options.Dir = path
	options.ValueDir = path
	options.Logger = nil // the badger default logger bypasses slog

	store, err := badgerhold.Open(options)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger database: %w", err)
	}

	return &DB{store: store, logger: logger}, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.store != nil {
		return db.store.Close()
	}
	return nil
}
