// Package storage implements the persistence layer on SQLite.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"database/sql"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteStorage implements the service.Storage interface. Writes to an
// owner's records go through a per-owner mutex so concurrent reports
// for the same owner cannot interleave acquire-modify-persist cycles;
// unrelated owners are not serialized against each other.
type SQLiteStorage struct {
	db         *sql.DB
	dbPath     string
	ownerLocks map[string]*sync.Mutex
	locksMu    sync.Mutex
}

// NewSQLiteStorage creates a new SQLite storage instance.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	if err := validateString(dbPath, "dbPath"); err != nil {
		return nil, err
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteStorage{
		db:         db,
		dbPath:     dbPath,
		ownerLocks: make(map[string]*sync.Mutex),
	}, nil
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// ownerLock returns the mutex serializing writes for one owner.
func (s *SQLiteStorage) ownerLock(owner string) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()

	mu, ok := s.ownerLocks[owner]
	if !ok {
		mu = &sync.Mutex{}
		s.ownerLocks[owner] = mu
	}
	return mu
}
