package store

import (
	"database/sql"
	"time"
)

const sessionColumns = `id, habit_id, mode, planned_minutes, actual_minutes, completed, notes, started_at, completed_at`

// GetPomodoroSessions returns all recorded sessions, oldest first.
// Read errors degrade to an empty list.
func (s *Store) GetPomodoroSessions() []PomodoroSession {
	rows, err := s.db.Query(`SELECT ` + sessionColumns + ` FROM pomodoro_sessions ORDER BY started_at, id`)
	if err != nil {
		s.log.Error("read pomodoro sessions", "err", err)
		return nil
	}
	defer rows.Close()

	var sessions []PomodoroSession
	for rows.Next() {
		p, err := scanSession(rows)
		if err != nil {
			s.log.Error("scan pomodoro session", "err", err)
			return nil
		}
		sessions = append(sessions, p)
	}
	if err := rows.Err(); err != nil {
		s.log.Error("read pomodoro sessions", "err", err)
		return nil
	}
	return sessions
}

// SavePomodoroSession upserts by id. Sessions are written once at
// interval end; there are no cascade rules.
func (s *Store) SavePomodoroSession(p PomodoroSession) error {
	var completedAt sql.NullString
	if p.CompletedAt != nil {
		completedAt = sql.NullString{String: p.CompletedAt.UTC().Format(time.RFC3339), Valid: true}
	}
	_, err := s.db.Exec(`
		INSERT INTO pomodoro_sessions (`+sessionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			habit_id = excluded.habit_id,
			mode = excluded.mode,
			planned_minutes = excluded.planned_minutes,
			actual_minutes = excluded.actual_minutes,
			completed = excluded.completed,
			notes = excluded.notes,
			completed_at = excluded.completed_at`,
		p.ID, p.HabitID, p.Mode, p.PlannedMinutes, p.ActualMinutes,
		boolInt(p.Completed), p.Notes, p.StartedAt.UTC().Format(time.RFC3339), completedAt,
	)
	if err != nil {
		return &StorageError{Op: "save pomodoro session", Err: err}
	}
	return nil
}

// FocusMinutesSince sums actual minutes of completed focus sessions
// started at or after from.
func (s *Store) FocusMinutesSince(from time.Time) int {
	var total sql.NullInt64
	err := s.db.QueryRow(`
		SELECT COALESCE(SUM(actual_minutes), 0)
		FROM pomodoro_sessions
		WHERE mode = ? AND completed = 1 AND started_at >= ?`,
		ModeFocus, from.UTC().Format(time.RFC3339),
	).Scan(&total)
	if err != nil {
		s.log.Error("sum focus minutes", "err", err)
		return 0
	}
	return int(total.Int64)
}

func insertSession(q querier, p PomodoroSession) error {
	var completedAt sql.NullString
	if p.CompletedAt != nil {
		completedAt = sql.NullString{String: p.CompletedAt.UTC().Format(time.RFC3339), Valid: true}
	}
	_, err := q.Exec(`
		INSERT INTO pomodoro_sessions (`+sessionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.HabitID, p.Mode, p.PlannedMinutes, p.ActualMinutes,
		boolInt(p.Completed), p.Notes, p.StartedAt.UTC().Format(time.RFC3339), completedAt,
	)
	return err
}

func scanSession(r rowScanner) (PomodoroSession, error) {
	var p PomodoroSession
	var completed int
	var startedAt string
	var completedAt sql.NullString
	err := r.Scan(&p.ID, &p.HabitID, &p.Mode, &p.PlannedMinutes, &p.ActualMinutes,
		&completed, &p.Notes, &startedAt, &completedAt)
	if err != nil {
		return PomodoroSession{}, err
	}
	p.Completed = completed == 1
	p.StartedAt, _ = time.Parse(time.RFC3339, startedAt)
	if completedAt.Valid {
		t, _ := time.Parse(time.RFC3339, completedAt.String)
		p.CompletedAt = &t
	}
	return p, nil
}
