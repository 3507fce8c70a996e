package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/habitual/internal/store"
	"github.com/sadopc/habitual/internal/validate"
)

// Document is the full-backup format: an export timestamp plus the
// complete contents of the four collections.
type Document struct {
	ExportedAt       string                  `json:"exported_at"`
	Habits           []store.Habit           `json:"habits"`
	HabitLogs        []store.HabitLog        `json:"habit_logs"`
	PomodoroSessions []store.PomodoroSession `json:"pomodoro_sessions"`
	UserPreferences  store.UserPreferences   `json:"user_preferences"`
}

// ToJSON writes a full backup of the store to path.
func ToJSON(s *store.Store, path string) error {
	doc := Document{
		ExportedAt:       time.Now().UTC().Format(time.RFC3339),
		Habits:           s.GetHabits(),
		HabitLogs:        s.GetHabitLogs(""),
		PomodoroSessions: s.GetPomodoroSessions(),
		UserPreferences:  s.GetUserPreferences(),
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}

// FromJSON replaces the store's full contents with the backup at path.
// Every habit and log is validated first; any failure aborts the import
// with the store untouched.
func FromJSON(s *store.Store, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read json file: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse json: %w", err)
	}

	for _, h := range doc.Habits {
		if errs := validate.Habit(h); errs != nil {
			return fmt.Errorf("invalid habit %q: %w", h.Name, errs)
		}
	}
	for _, l := range doc.HabitLogs {
		if errs := validate.HabitLog(l); errs != nil {
			return fmt.Errorf("invalid log for habit %s on %s: %w", l.HabitID, l.Date, errs)
		}
	}

	return s.ReplaceAll(doc.Habits, doc.HabitLogs, doc.PomodoroSessions, doc.UserPreferences)
}
