package store

import (
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	_ "modernc.org/sqlite"
)

const currentVersion = 1

// Store owns the four persisted collections: habits, habit_logs,
// pomodoro_sessions and user_preferences. It is the sole writer; all
// mutations funnel through its methods.
type Store struct {
	db  *sql.DB
	log *log.Logger
}

// New opens (or creates) the SQLite database at dbPath and runs migrations.
// Swallowed read errors are reported through lg.
func New(dbPath string, lg *log.Logger) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(1)

	// Configure pragmas.
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	if lg == nil {
		lg = log.New(io.Discard)
	}

	s := &Store{db: db, log: lg}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// NewMemory creates an in-memory store for testing.
func NewMemory() (*Store, error) {
	return New(":memory:", log.New(io.Discard))
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	var version int
	err := s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}

	if version >= currentVersion {
		return nil
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	_, err = s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentVersion))
	return err
}

func (s *Store) migrateV1() error {
	const ddl = `
	CREATE TABLE IF NOT EXISTS habits (
		id             TEXT PRIMARY KEY,
		name           TEXT NOT NULL,
		icon           TEXT NOT NULL DEFAULT 'circle',
		color          TEXT NOT NULL DEFAULT '#6366F1',
		category       TEXT NOT NULL DEFAULT 'other',
		description    TEXT NOT NULL DEFAULT '',
		schedule       TEXT NOT NULL DEFAULT 'daily',
		custom_days    TEXT NOT NULL DEFAULT '',
		interval_days  INTEGER NOT NULL DEFAULT 0,
		target         INTEGER NOT NULL DEFAULT 1,
		target_type    TEXT NOT NULL DEFAULT 'daily',
		reminder_times TEXT NOT NULL DEFAULT '',
		is_active      INTEGER NOT NULL DEFAULT 1,
		created_at     TEXT NOT NULL,
		updated_at     TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS habit_logs (
		id           TEXT PRIMARY KEY,
		habit_id     TEXT NOT NULL,
		date         TEXT NOT NULL,
		completed    INTEGER NOT NULL DEFAULT 0,
		completed_at TEXT,
		notes        TEXT NOT NULL DEFAULT '',
		skipped      INTEGER NOT NULL DEFAULT 0,
		skip_reason  TEXT NOT NULL DEFAULT '',
		UNIQUE(habit_id, date)
	);

	CREATE INDEX IF NOT EXISTS idx_logs_habit ON habit_logs(habit_id);
	CREATE INDEX IF NOT EXISTS idx_logs_date  ON habit_logs(date);

	CREATE TABLE IF NOT EXISTS pomodoro_sessions (
		id              TEXT PRIMARY KEY,
		habit_id        TEXT NOT NULL DEFAULT '',
		mode            TEXT NOT NULL DEFAULT 'focus',
		planned_minutes INTEGER NOT NULL DEFAULT 25,
		actual_minutes  INTEGER NOT NULL DEFAULT 0,
		completed       INTEGER NOT NULL DEFAULT 0,
		notes           TEXT NOT NULL DEFAULT '',
		started_at      TEXT NOT NULL,
		completed_at    TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_sessions_started ON pomodoro_sessions(started_at);

	CREATE TABLE IF NOT EXISTS user_preferences (
		id                    INTEGER PRIMARY KEY CHECK (id = 1),
		name                  TEXT NOT NULL DEFAULT 'User',
		theme                 TEXT NOT NULL DEFAULT 'system',
		language              TEXT NOT NULL DEFAULT 'en',
		notifications_enabled INTEGER NOT NULL DEFAULT 1,
		sound_enabled         INTEGER NOT NULL DEFAULT 1,
		focus_minutes         INTEGER NOT NULL DEFAULT 25,
		short_break_minutes   INTEGER NOT NULL DEFAULT 5,
		long_break_minutes    INTEGER NOT NULL DEFAULT 15,
		long_break_interval   INTEGER NOT NULL DEFAULT 4
	);
	`
	_, err := s.db.Exec(ddl)
	return err
}

// ResetAllData unconditionally clears all four collections.
func (s *Store) ResetAllData() error {
	tx, err := s.db.Begin()
	if err != nil {
		return &StorageError{Op: "reset", Err: err}
	}
	defer tx.Rollback()

	for _, table := range []string{"habits", "habit_logs", "pomodoro_sessions", "user_preferences"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return &StorageError{Op: "reset " + table, Err: err}
		}
	}
	if err := tx.Commit(); err != nil {
		return &StorageError{Op: "reset", Err: err}
	}
	return nil
}

// ReplaceAll swaps the full contents of every collection in one
// transaction. It backs bulk import; callers validate first.
func (s *Store) ReplaceAll(habits []Habit, logs []HabitLog, sessions []PomodoroSession, prefs UserPreferences) error {
	tx, err := s.db.Begin()
	if err != nil {
		return &StorageError{Op: "replace all", Err: err}
	}
	defer tx.Rollback()

	for _, table := range []string{"habits", "habit_logs", "pomodoro_sessions", "user_preferences"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return &StorageError{Op: "clear " + table, Err: err}
		}
	}
	for _, h := range habits {
		if err := insertHabit(tx, h); err != nil {
			return &StorageError{Op: "replace habits", Err: err}
		}
	}
	for _, l := range logs {
		if err := insertLog(tx, l); err != nil {
			return &StorageError{Op: "replace habit logs", Err: err}
		}
	}
	for _, p := range sessions {
		if err := insertSession(tx, p); err != nil {
			return &StorageError{Op: "replace pomodoro sessions", Err: err}
		}
	}
	if err := insertPreferences(tx, prefs); err != nil {
		return &StorageError{Op: "replace preferences", Err: err}
	}

	if err := tx.Commit(); err != nil {
		return &StorageError{Op: "replace all", Err: err}
	}
	return nil
}

// DefaultDBPath returns ~/.config/habitual/habitual.db
func DefaultDBPath() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "habitual", "habitual.db"), nil
}
