package store

import "database/sql"

// GetUserPreferences returns the stored preferences, or defaults when
// none exist yet. It never fails with a missing-value error.
func (s *Store) GetUserPreferences() UserPreferences {
	p := DefaultPreferences()
	var notifications, sound int
	err := s.db.QueryRow(`
		SELECT name, theme, language, notifications_enabled, sound_enabled,
		       focus_minutes, short_break_minutes, long_break_minutes, long_break_interval
		FROM user_preferences WHERE id = 1`,
	).Scan(&p.Name, &p.Theme, &p.Language, &notifications, &sound,
		&p.Pomodoro.FocusMinutes, &p.Pomodoro.ShortBreakMinutes,
		&p.Pomodoro.LongBreakMinutes, &p.Pomodoro.LongBreakInterval)
	if err == sql.ErrNoRows {
		return DefaultPreferences()
	}
	if err != nil {
		s.log.Error("read user preferences", "err", err)
		return DefaultPreferences()
	}
	p.NotificationsEnabled = notifications == 1
	p.SoundEnabled = sound == 1
	return p
}

// SaveUserPreferences writes the singleton row.
func (s *Store) SaveUserPreferences(p UserPreferences) error {
	if err := insertPreferences(s.db, p); err != nil {
		return &StorageError{Op: "save user preferences", Err: err}
	}
	return nil
}

func insertPreferences(q querier, p UserPreferences) error {
	_, err := q.Exec(`
		INSERT INTO user_preferences (id, name, theme, language,
			notifications_enabled, sound_enabled,
			focus_minutes, short_break_minutes, long_break_minutes, long_break_interval)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			theme = excluded.theme,
			language = excluded.language,
			notifications_enabled = excluded.notifications_enabled,
			sound_enabled = excluded.sound_enabled,
			focus_minutes = excluded.focus_minutes,
			short_break_minutes = excluded.short_break_minutes,
			long_break_minutes = excluded.long_break_minutes,
			long_break_interval = excluded.long_break_interval`,
		p.Name, p.Theme, p.Language, boolInt(p.NotificationsEnabled), boolInt(p.SoundEnabled),
		p.Pomodoro.FocusMinutes, p.Pomodoro.ShortBreakMinutes,
		p.Pomodoro.LongBreakMinutes, p.Pomodoro.LongBreakInterval,
	)
	return err
}
