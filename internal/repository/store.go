package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	appErrors "github.com/noah-isme/term-tracker/pkg/errors"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS terms (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		start_date DATETIME NOT NULL,
		end_date DATETIME NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS courses (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		status INTEGER NOT NULL,
		start_date DATETIME NOT NULL,
		end_date DATETIME NOT NULL,
		notes TEXT NOT NULL DEFAULT '',
		enable_notifications BOOLEAN NOT NULL DEFAULT 0,
		instructor_name TEXT NOT NULL DEFAULT '',
		instructor_phone TEXT NOT NULL DEFAULT '',
		instructor_email TEXT NOT NULL DEFAULT '',
		term_id INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_courses_term_id ON courses (term_id)`,
	`CREATE TABLE IF NOT EXISTS assessments (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		type INTEGER NOT NULL,
		start_date DATETIME NOT NULL,
		end_date DATETIME NOT NULL,
		enable_notifications BOOLEAN NOT NULL DEFAULT 0,
		course_id INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_assessments_course_id ON assessments (course_id)`,
}

// Store persists the term → course → assessment hierarchy in a single SQLite database.
//
// Tables are created lazily by the first operation. Writes are serialised by a store-wide
// mutex so a cascade never interleaves with another write between enumerating children
// and deleting them.
type Store struct {
	db     *sqlx.DB
	logger *zap.Logger

	writeMu sync.Mutex

	stateMu     sync.Mutex
	initialized bool
	seeded      bool
}

// NewStore wires a store over an open connection.
func NewStore(db *sqlx.DB, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{db: db, logger: logger}
}

// Initialize ensures the three tables exist. Only the first successful call does any work.
func (s *Store) Initialize(ctx context.Context) error {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	if s.initialized {
		return nil
	}

	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return appErrors.Unavailable(err, "failed to initialize store")
		}
	}

	s.initialized = true
	s.logger.Debug("store initialized")
	return nil
}

// ResetOnceFlags forgets that the store was initialized and seeded. Test support only.
func (s *Store) ResetOnceFlags() {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	s.initialized = false
	s.seeded = false
}

// ClearAll deletes every row from all three tables. The once-flags are left as they are.
func (s *Store) ClearAll(ctx context.Context) error {
	if err := s.Initialize(ctx); err != nil {
		return err
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		for _, table := range []string{"terms", "courses", "assessments"} {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
				return fmt.Errorf("clear %s: %w", table, err)
			}
		}
		return nil
	})
	if err != nil {
		return appErrors.Unavailable(err, "failed to clear tables")
	}
	s.logger.Info("store cleared")
	return nil
}

func (s *Store) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) (err error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
