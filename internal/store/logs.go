package store

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

const logColumns = `id, habit_id, date, completed, completed_at, notes, skipped, skip_reason`

// GetHabitLogs returns all logs, or only those for habitID when non-empty.
// Read errors degrade to an empty list.
func (s *Store) GetHabitLogs(habitID string) []HabitLog {
	query := `SELECT ` + logColumns + ` FROM habit_logs`
	var args []any
	if habitID != "" {
		query += ` WHERE habit_id = ?`
		args = append(args, habitID)
	}
	query += ` ORDER BY date, habit_id`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		s.log.Error("read habit logs", "err", err)
		return nil
	}
	defer rows.Close()

	var logs []HabitLog
	for rows.Next() {
		l, err := scanLog(rows)
		if err != nil {
			s.log.Error("scan habit log", "err", err)
			return nil
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		s.log.Error("read habit logs", "err", err)
		return nil
	}
	return logs
}

// SaveHabitLog upserts by id.
func (s *Store) SaveHabitLog(l HabitLog) error {
	var completedAt sql.NullString
	if l.CompletedAt != nil {
		completedAt = sql.NullString{String: l.CompletedAt.UTC().Format(time.RFC3339), Valid: true}
	}
	_, err := s.db.Exec(`
		INSERT INTO habit_logs (`+logColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			habit_id = excluded.habit_id,
			date = excluded.date,
			completed = excluded.completed,
			completed_at = excluded.completed_at,
			notes = excluded.notes,
			skipped = excluded.skipped,
			skip_reason = excluded.skip_reason`,
		l.ID, l.HabitID, l.Date, boolInt(l.Completed), completedAt,
		l.Notes, boolInt(l.Skipped), l.SkipReason,
	)
	if err != nil {
		return &StorageError{Op: "save habit log", Err: err}
	}
	return nil
}

// ToggleHabitCompletion flips the completion state of (habitID, date).
// The first toggle creates the day's log with completed=true; every
// later toggle mutates that same row, so the natural key never gains a
// duplicate. completed_at is set exactly while completed is true.
func (s *Store) ToggleHabitCompletion(habitID, date string) (*HabitLog, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, &StorageError{Op: "toggle completion", Err: err}
	}
	defer tx.Rollback()

	row := tx.QueryRow(`SELECT `+logColumns+` FROM habit_logs WHERE habit_id = ? AND date = ?`,
		habitID, date)
	l, err := scanLog(row)

	now := time.Now().UTC()
	switch err {
	case sql.ErrNoRows:
		l = HabitLog{
			ID:          uuid.NewString(),
			HabitID:     habitID,
			Date:        date,
			Completed:   true,
			CompletedAt: &now,
		}
		if err := insertLog(tx, l); err != nil {
			return nil, &StorageError{Op: "toggle completion", Err: err}
		}
	case nil:
		l.Completed = !l.Completed
		if l.Completed {
			l.CompletedAt = &now
		} else {
			l.CompletedAt = nil
		}
		l.Skipped = false
		l.SkipReason = ""

		var completedAt sql.NullString
		if l.CompletedAt != nil {
			completedAt = sql.NullString{String: l.CompletedAt.UTC().Format(time.RFC3339), Valid: true}
		}
		_, err := tx.Exec(`
			UPDATE habit_logs
			SET completed = ?, completed_at = ?, skipped = 0, skip_reason = ''
			WHERE id = ?`,
			boolInt(l.Completed), completedAt, l.ID,
		)
		if err != nil {
			return nil, &StorageError{Op: "toggle completion", Err: err}
		}
	default:
		return nil, &StorageError{Op: "toggle completion", Err: err}
	}

	if err := tx.Commit(); err != nil {
		return nil, &StorageError{Op: "toggle completion", Err: err}
	}
	return &l, nil
}

func insertLog(q querier, l HabitLog) error {
	var completedAt sql.NullString
	if l.CompletedAt != nil {
		completedAt = sql.NullString{String: l.CompletedAt.UTC().Format(time.RFC3339), Valid: true}
	}
	_, err := q.Exec(`
		INSERT INTO habit_logs (`+logColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		l.ID, l.HabitID, l.Date, boolInt(l.Completed), completedAt,
		l.Notes, boolInt(l.Skipped), l.SkipReason,
	)
	return err
}

func scanLog(r rowScanner) (HabitLog, error) {
	var l HabitLog
	var completed, skipped int
	var completedAt sql.NullString
	err := r.Scan(&l.ID, &l.HabitID, &l.Date, &completed, &completedAt,
		&l.Notes, &skipped, &l.SkipReason)
	if err != nil {
		return HabitLog{}, err
	}
	l.Completed = completed == 1
	l.Skipped = skipped == 1
	if completedAt.Valid {
		t, _ := time.Parse(time.RFC3339, completedAt.String)
		l.CompletedAt = &t
	}
	return l, nil
}
