package store

import (
	"database/sql"
	"time"
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

const habitColumns = `id, name, icon, color, category, description, schedule,
	custom_days, interval_days, target, target_type, reminder_times,
	is_active, created_at, updated_at`

// GetHabits returns all habits in creation order. Read errors are logged
// and degrade to an empty list; they never reach the caller.
func (s *Store) GetHabits() []Habit {
	rows, err := s.db.Query(`SELECT ` + habitColumns + ` FROM habits ORDER BY created_at, id`)
	if err != nil {
		s.log.Error("read habits", "err", err)
		return nil
	}
	defer rows.Close()

	var habits []Habit
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			s.log.Error("scan habit", "err", err)
			return nil
		}
		habits = append(habits, h)
	}
	if err := rows.Err(); err != nil {
		s.log.Error("read habits", "err", err)
		return nil
	}
	return habits
}

// GetHabit returns the habit with the given id, or nil if absent.
func (s *Store) GetHabit(id string) *Habit {
	row := s.db.QueryRow(`SELECT `+habitColumns+` FROM habits WHERE id = ?`, id)
	h, err := scanHabit(row)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		s.log.Error("read habit", "id", id, "err", err)
		return nil
	}
	return &h
}

// SaveHabit upserts by id. Replacing an existing habit refreshes
// updated_at; inserting keeps the timestamps given.
func (s *Store) SaveHabit(h Habit) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(`
		INSERT INTO habits (`+habitColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			icon = excluded.icon,
			color = excluded.color,
			category = excluded.category,
			description = excluded.description,
			schedule = excluded.schedule,
			custom_days = excluded.custom_days,
			interval_days = excluded.interval_days,
			target = excluded.target,
			target_type = excluded.target_type,
			reminder_times = excluded.reminder_times,
			is_active = excluded.is_active,
			updated_at = ?`,
		h.ID, h.Name, h.Icon, h.Color, h.Category, h.Description, h.Schedule,
		joinInts(h.CustomDays), h.IntervalDays, h.Target, h.TargetType,
		joinStrings(h.ReminderTimes), boolInt(h.IsActive),
		h.CreatedAt.UTC().Format(time.RFC3339), h.UpdatedAt.UTC().Format(time.RFC3339),
		now,
	)
	if err != nil {
		return &StorageError{Op: "save habit", Err: err}
	}
	return nil
}

// DeleteHabit removes the habit and every log referencing it in one
// transaction. A missing id is a no-op, not an error.
func (s *Store) DeleteHabit(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return &StorageError{Op: "delete habit", Err: err}
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM habits WHERE id = ?`, id); err != nil {
		return &StorageError{Op: "delete habit", Err: err}
	}
	if _, err := tx.Exec(`DELETE FROM habit_logs WHERE habit_id = ?`, id); err != nil {
		return &StorageError{Op: "delete habit logs", Err: err}
	}
	if err := tx.Commit(); err != nil {
		return &StorageError{Op: "delete habit", Err: err}
	}
	return nil
}

// CountHabits reports how many habits are stored.
func (s *Store) CountHabits() int {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM habits`).Scan(&n); err != nil {
		s.log.Error("count habits", "err", err)
		return 0
	}
	return n
}

func insertHabit(q querier, h Habit) error {
	_, err := q.Exec(`
		INSERT INTO habits (`+habitColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		h.ID, h.Name, h.Icon, h.Color, h.Category, h.Description, h.Schedule,
		joinInts(h.CustomDays), h.IntervalDays, h.Target, h.TargetType,
		joinStrings(h.ReminderTimes), boolInt(h.IsActive),
		h.CreatedAt.UTC().Format(time.RFC3339), h.UpdatedAt.UTC().Format(time.RFC3339),
	)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHabit(r rowScanner) (Habit, error) {
	var h Habit
	var customDays, reminderTimes, createdAt, updatedAt string
	var isActive int
	err := r.Scan(&h.ID, &h.Name, &h.Icon, &h.Color, &h.Category, &h.Description,
		&h.Schedule, &customDays, &h.IntervalDays, &h.Target, &h.TargetType,
		&reminderTimes, &isActive, &createdAt, &updatedAt)
	if err != nil {
		return Habit{}, err
	}
	h.CustomDays = splitInts(customDays)
	h.ReminderTimes = splitStrings(reminderTimes)
	h.IsActive = isActive == 1
	h.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	h.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return h, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
