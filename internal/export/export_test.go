package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/sadopc/habitual/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// seedStore fills a store with one of everything.
func seedStore(t *testing.T, s *store.Store) (store.Habit, store.HabitLog) {
	t.Helper()
	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

	h := store.Habit{
		ID:         uuid.NewString(),
		Name:       "Read",
		Icon:       "book-open",
		Color:      "#8B5CF6",
		Category:   store.CategoryLearning,
		Schedule:   store.ScheduleDaily,
		Target:     1,
		TargetType: "daily",
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.SaveHabit(h); err != nil {
		t.Fatal(err)
	}

	at := now.Add(12 * time.Hour)
	l := store.HabitLog{
		ID: uuid.NewString(), HabitID: h.ID, Date: "2026-03-01",
		Completed: true, CompletedAt: &at, Notes: "chapter 4",
	}
	if err := s.SaveHabitLog(l); err != nil {
		t.Fatal(err)
	}

	done := now.Add(25 * time.Minute)
	session := store.PomodoroSession{
		ID: uuid.NewString(), Mode: store.ModeFocus,
		PlannedMinutes: 25, ActualMinutes: 25, Completed: true,
		StartedAt: now, CompletedAt: &done,
	}
	if err := s.SavePomodoroSession(session); err != nil {
		t.Fatal(err)
	}

	prefs := store.DefaultPreferences()
	prefs.Name = "Rina"
	if err := s.SaveUserPreferences(prefs); err != nil {
		t.Fatal(err)
	}
	return h, l
}

// ============================================================
// JSON backup
// ============================================================

func TestJSONRoundtrip(t *testing.T) {
	src := newTestStore(t)
	h, l := seedStore(t, src)

	path := filepath.Join(t.TempDir(), "backup.json")
	if err := ToJSON(src, path); err != nil {
		t.Fatal(err)
	}

	dst := newTestStore(t)
	if err := FromJSON(dst, path); err != nil {
		t.Fatal(err)
	}

	habits := dst.GetHabits()
	if len(habits) != 1 || habits[0].ID != h.ID || habits[0].Name != "Read" {
		t.Fatalf("habits did not survive the roundtrip: %+v", habits)
	}
	logs := dst.GetHabitLogs("")
	if len(logs) != 1 || logs[0].ID != l.ID || !logs[0].Completed {
		t.Fatalf("logs did not survive the roundtrip: %+v", logs)
	}
	if sessions := dst.GetPomodoroSessions(); len(sessions) != 1 {
		t.Fatalf("expected 1 session, got %d", len(sessions))
	}
	if prefs := dst.GetUserPreferences(); prefs.Name != "Rina" {
		t.Fatalf("preferences did not survive, got %q", prefs.Name)
	}
}

func TestJSONDocumentShape(t *testing.T) {
	s := newTestStore(t)
	seedStore(t, s)

	path := filepath.Join(t.TempDir(), "backup.json")
	if err := ToJSON(s, path); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"exported_at", "habits", "habit_logs", "pomodoro_sessions", "user_preferences"} {
		if _, ok := raw[key]; !ok {
			t.Fatalf("document missing %q", key)
		}
	}
}

func TestFromJSONImportReplaces(t *testing.T) {
	src := newTestStore(t)
	seedStore(t, src)
	path := filepath.Join(t.TempDir(), "backup.json")
	ToJSON(src, path)

	dst := newTestStore(t)
	stale := store.Habit{
		ID: uuid.NewString(), Name: "Stale", Category: store.CategoryOther,
		Schedule: store.ScheduleDaily, Target: 1, TargetType: "daily",
		CreatedAt: time.Now().UTC(), UpdatedAt: time.Now().UTC(),
	}
	dst.SaveHabit(stale)

	if err := FromJSON(dst, path); err != nil {
		t.Fatal(err)
	}
	habits := dst.GetHabits()
	if len(habits) != 1 || habits[0].Name == "Stale" {
		t.Fatalf("import should replace existing data: %+v", habits)
	}
}

func TestFromJSONInvalidHabitAborts(t *testing.T) {
	dst := newTestStore(t)
	existing, _ := seedStore(t, dst)

	doc := Document{
		Habits: []store.Habit{{
			ID: "bad", Name: "", Category: "gardening",
			Schedule: store.ScheduleDaily, Target: 1, TargetType: "daily",
		}},
	}
	path := filepath.Join(t.TempDir(), "bad.json")
	data, _ := json.Marshal(doc)
	os.WriteFile(path, data, 0o644)

	err := FromJSON(dst, path)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "invalid habit") {
		t.Fatalf("unexpected error: %v", err)
	}

	// Store untouched
	habits := dst.GetHabits()
	if len(habits) != 1 || habits[0].ID != existing.ID {
		t.Fatalf("failed import must leave the store untouched: %+v", habits)
	}
}

func TestFromJSONInvalidLogAborts(t *testing.T) {
	dst := newTestStore(t)
	seedStore(t, dst)

	doc := Document{
		HabitLogs: []store.HabitLog{{
			ID: "bad", HabitID: "h", Date: "2026-03-01", Completed: true,
			// Completed without CompletedAt
		}},
	}
	path := filepath.Join(t.TempDir(), "bad.json")
	data, _ := json.Marshal(doc)
	os.WriteFile(path, data, 0o644)

	err := FromJSON(dst, path)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "invalid log") {
		t.Fatalf("unexpected error: %v", err)
	}
	if logs := dst.GetHabitLogs(""); len(logs) != 1 {
		t.Fatalf("failed import must leave the store untouched, got %d logs", len(logs))
	}
}

func TestFromJSONMissingFile(t *testing.T) {
	s := newTestStore(t)
	if err := FromJSON(s, filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestFromJSONMalformed(t *testing.T) {
	s := newTestStore(t)
	path := filepath.Join(t.TempDir(), "garbage.json")
	os.WriteFile(path, []byte("{not json"), 0o644)
	if err := FromJSON(s, path); err == nil {
		t.Fatal("expected parse error")
	}
}

// ============================================================
// CSV history
// ============================================================

func TestToCSV(t *testing.T) {
	now := time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)
	h := store.Habit{ID: "h1", Name: "Read"}
	logs := []store.HabitLog{
		{ID: "l1", HabitID: "h1", Date: "2026-03-01", Completed: true, CompletedAt: &now, Notes: "chapter 4"},
		{ID: "l2", HabitID: "gone", Date: "2026-03-02", Skipped: true},
	}

	path := filepath.Join(t.TempDir(), "logs.csv")
	err := ToCSV(logs, map[string]*store.Habit{"h1": &h}, path)
	if err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}

	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "Date" || rows[0][1] != "Habit" {
		t.Fatalf("unexpected header: %v", rows[0])
	}
	if rows[1][1] != "Read" || rows[1][2] != "yes" || rows[1][5] != "chapter 4" {
		t.Fatalf("unexpected first row: %v", rows[1])
	}
	if rows[1][3] == "" {
		t.Fatal("completed row should carry a timestamp")
	}
	// Logs for a deleted habit still export, with a placeholder name
	if rows[2][1] != "Unknown" || rows[2][2] != "no" || rows[2][4] != "yes" {
		t.Fatalf("unexpected second row: %v", rows[2])
	}
}

func TestToCSVEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := ToCSV(nil, nil, path); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	if !strings.HasPrefix(string(data), "Date,Habit,Completed") {
		t.Fatalf("header should still be written: %q", string(data))
	}
}
