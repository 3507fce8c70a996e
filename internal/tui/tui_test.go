package tui

import (
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

func saveHabit(t *testing.T, s *store.Store, name string) store.Habit {
	t.Helper()
	now := time.Now().UTC()
	h := store.Habit{
		ID:         uuid.NewString(),
		Name:       name,
		Category:   store.CategoryHealth,
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
	return h
}

// ============================================================
// Focus model
// ============================================================

func TestFocusInit(t *testing.T) {
	s := newTestStore(t)
	f := newFocusModel(s)

	if f.phase != focusIdle {
		t.Fatalf("expected idle phase, got %d", f.phase)
	}
	if f.prefs.FocusMinutes != 25 || f.prefs.ShortBreakMinutes != 5 {
		t.Fatalf("expected default durations, got %+v", f.prefs)
	}
	if f.completedCount != 0 {
		t.Fatal("completed count should start at 0")
	}
}

func TestFocusLoadsPreferences(t *testing.T) {
	s := newTestStore(t)
	p := store.DefaultPreferences()
	p.Pomodoro.FocusMinutes = 50
	p.Pomodoro.LongBreakInterval = 2
	s.SaveUserPreferences(p)

	f := newFocusModel(s)
	if f.prefs.FocusMinutes != 50 || f.prefs.LongBreakInterval != 2 {
		t.Fatalf("preferences not loaded: %+v", f.prefs)
	}
}

func TestFocusStartPhase(t *testing.T) {
	s := newTestStore(t)
	f := newFocusModel(s)

	f, _ = f.startPhase(focusWork)
	if f.phase != focusWork {
		t.Fatal("should be in work phase")
	}
	if f.remaining != 25*time.Minute {
		t.Fatalf("expected 25min remaining, got %v", f.remaining)
	}
	if f.phaseStart.IsZero() {
		t.Fatal("phase start should be set")
	}
}

func TestFocusAdvanceWorkToBreak(t *testing.T) {
	s := newTestStore(t)
	f := newFocusModel(s)
	f, _ = f.startPhase(focusWork)

	f, _ = f.advancePhase()
	if f.completedCount != 1 {
		t.Fatalf("expected 1 completed interval, got %d", f.completedCount)
	}
	if f.phase != focusShortBreak {
		t.Fatalf("expected short break, got %d", f.phase)
	}

	// The finished interval is persisted as a completed focus session
	sessions := s.GetPomodoroSessions()
	if len(sessions) != 1 {
		t.Fatalf("expected 1 recorded session, got %d", len(sessions))
	}
	got := sessions[0]
	if got.Mode != store.ModeFocus || !got.Completed {
		t.Fatalf("unexpected session: %+v", got)
	}
	if got.ActualMinutes != got.PlannedMinutes {
		t.Fatal("completed interval records its full planned time")
	}
	if got.CompletedAt == nil {
		t.Fatal("recorded session should have CompletedAt")
	}
}

func TestFocusAdvanceBreakToWork(t *testing.T) {
	s := newTestStore(t)
	f := newFocusModel(s)
	f, _ = f.startPhase(focusWork)
	f, _ = f.advancePhase() // -> short break

	f, _ = f.advancePhase() // -> work
	if f.phase != focusWork {
		t.Fatalf("expected work after break, got %d", f.phase)
	}
	if f.completedCount != 1 {
		t.Fatal("break completion must not bump the focus count")
	}
}

func TestFocusLongBreakEveryNth(t *testing.T) {
	s := newTestStore(t)
	p := store.DefaultPreferences()
	p.Pomodoro.LongBreakInterval = 2
	s.SaveUserPreferences(p)

	f := newFocusModel(s)
	f, _ = f.startPhase(focusWork)
	f, _ = f.advancePhase() // count=1 -> short break
	if f.phase != focusShortBreak {
		t.Fatalf("first break should be short, got %d", f.phase)
	}
	f, _ = f.advancePhase() // -> work
	f, _ = f.advancePhase() // count=2 -> long break
	if f.phase != focusLongBreak {
		t.Fatalf("second break should be long, got %d", f.phase)
	}
}

func TestFocusCancel(t *testing.T) {
	s := newTestStore(t)
	f := newFocusModel(s)
	f, _ = f.startPhase(focusWork)

	f, _ = f.cancelPhase()
	if f.phase != focusIdle {
		t.Fatal("cancel should return to idle")
	}
	if f.remaining != 0 {
		t.Fatal("cancel should clear the countdown")
	}

	// The aborted interval is still recorded, marked incomplete
	sessions := s.GetPomodoroSessions()
	if len(sessions) != 1 {
		t.Fatalf("expected 1 recorded session, got %d", len(sessions))
	}
	if sessions[0].Completed {
		t.Fatal("cancelled interval must record completed=false")
	}
}

func TestFocusTickCountsDown(t *testing.T) {
	s := newTestStore(t)
	f := newFocusModel(s)
	f, _ = f.startPhase(focusWork)

	f, _ = f.update(tickMsg(time.Now()))
	if f.remaining > 25*time.Minute {
		t.Fatalf("remaining should shrink, got %v", f.remaining)
	}
	if f.phase != focusWork {
		t.Fatal("tick mid-interval must not change phase")
	}
}

func TestFocusTickWhenIdle(t *testing.T) {
	s := newTestStore(t)
	f := newFocusModel(s)

	f, _ = f.update(tickMsg(time.Now()))
	if f.phase != focusIdle || f.remaining != 0 {
		t.Fatal("tick while idle should be a no-op")
	}
	if len(s.GetPomodoroSessions()) != 0 {
		t.Fatal("idle ticks must not record sessions")
	}
}

func TestFocusPhaseDurations(t *testing.T) {
	s := newTestStore(t)
	f := newFocusModel(s)

	if f.phaseDuration(focusWork) != 25*time.Minute {
		t.Fatal("work duration mismatch")
	}
	if f.phaseDuration(focusShortBreak) != 5*time.Minute {
		t.Fatal("short break duration mismatch")
	}
	if f.phaseDuration(focusLongBreak) != 15*time.Minute {
		t.Fatal("long break duration mismatch")
	}
}

func TestFocusPhaseModes(t *testing.T) {
	s := newTestStore(t)
	f := newFocusModel(s)

	f.phase = focusWork
	if f.phaseMode() != store.ModeFocus {
		t.Fatal("work maps to focus mode")
	}
	f.phase = focusShortBreak
	if f.phaseMode() != store.ModeShortBreak {
		t.Fatal("short break mode mismatch")
	}
	f.phase = focusLongBreak
	if f.phaseMode() != store.ModeLongBreak {
		t.Fatal("long break mode mismatch")
	}
}

func TestFocusTodayMinutes(t *testing.T) {
	s := newTestStore(t)
	now := time.Now().UTC()
	done := now
	s.SavePomodoroSession(store.PomodoroSession{
		ID: uuid.NewString(), Mode: store.ModeFocus,
		PlannedMinutes: 25, ActualMinutes: 25, Completed: true,
		StartedAt: now.Add(-time.Hour), CompletedAt: &done,
	})

	f := newFocusModel(s)
	if f.todayFocus != 25 {
		t.Fatalf("expected 25 focus minutes today, got %d", f.todayFocus)
	}
}

// ============================================================
// Today model
// ============================================================

func TestTodayLoadData(t *testing.T) {
	s := newTestStore(t)
	h := saveHabit(t, s, "Read")
	paused := saveHabit(t, s, "Paused")
	paused.IsActive = false
	s.SaveHabit(paused)
	s.ToggleHabitCompletion(h.ID, today())

	m := newTodayModel(s)
	msg := m.loadData()()
	data, ok := msg.(todayDataMsg)
	if !ok {
		t.Fatalf("expected todayDataMsg, got %T", msg)
	}
	if len(data.habits) != 1 {
		t.Fatalf("only active habits should list, got %d", len(data.habits))
	}
	if data.done != 1 || data.total != 1 {
		t.Fatalf("expected 1/1 done, got %d/%d", data.done, data.total)
	}
	if !data.habits[0].TodayCompleted {
		t.Fatal("toggled habit should show as done")
	}
}

func TestTodayCursorClamped(t *testing.T) {
	s := newTestStore(t)
	m := newTodayModel(s)
	m.cursor = 5

	m, _ = m.update(todayDataMsg{})
	if m.cursor != 0 {
		t.Fatalf("cursor should clamp to 0 on empty list, got %d", m.cursor)
	}
}

func TestTodayToggle(t *testing.T) {
	s := newTestStore(t)
	h := saveHabit(t, s, "Read")

	m := newTodayModel(s)
	_, cmd := m.toggle(h.ID)
	msg := cmd()

	toggled, ok := msg.(habitToggledMsg)
	if !ok {
		t.Fatalf("expected habitToggledMsg, got %T", msg)
	}
	if !toggled.log.Completed {
		t.Fatal("first toggle should complete")
	}
	if logs := s.GetHabitLogs(h.ID); len(logs) != 1 {
		t.Fatalf("toggle should persist a log, got %d", len(logs))
	}
}

// ============================================================
// Helper functions
// ============================================================

func TestFormatCountdown(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00"},
		{time.Second, "00:01"},
		{time.Minute, "01:00"},
		{25 * time.Minute, "25:00"},
		{5*time.Minute + 30*time.Second, "05:30"},
		{-time.Second, "00:00"}, // negative clamps to 0
	}
	for _, tt := range tests {
		got := formatCountdown(tt.d)
		if got != tt.want {
			t.Errorf("formatCountdown(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestFormatRate(t *testing.T) {
	tests := []struct {
		rate float64
		want string
	}{
		{0, "0%"},
		{50, "50%"},
		{66.6, "67%"},
		{100, "100%"},
	}
	for _, tt := range tests {
		got := formatRate(tt.rate)
		if got != tt.want {
			t.Errorf("formatRate(%v) = %q, want %q", tt.rate, got, tt.want)
		}
	}
}

func TestGreeting(t *testing.T) {
	tests := []struct {
		hour int
		want string
	}{
		{6, "Good morning"},
		{11, "Good morning"},
		{12, "Good afternoon"},
		{16, "Good afternoon"},
		{17, "Good evening"},
		{23, "Good evening"},
	}
	for _, tt := range tests {
		now := time.Date(2026, 3, 10, tt.hour, 0, 0, 0, time.UTC)
		if got := greeting(now); got != tt.want {
			t.Errorf("greeting(%d:00) = %q, want %q", tt.hour, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Fatalf("short strings pass through, got %q", got)
	}
	got := truncate("a very long habit name", 10)
	if len([]rune(got)) > 10 {
		t.Fatalf("truncated string too long: %q", got)
	}
	if !strings.HasSuffix(got, "…") {
		t.Fatalf("truncated string should end with ellipsis: %q", got)
	}
}

func TestScheduleLabel(t *testing.T) {
	tests := []struct {
		h    store.Habit
		want string
	}{
		{store.Habit{Schedule: store.ScheduleDaily}, "daily"},
		{store.Habit{Schedule: store.ScheduleCustom, CustomDays: []int{1, 3, 5}}, "3 days/wk"},
		{store.Habit{Schedule: store.ScheduleInterval, IntervalDays: 2}, "every 2d"},
	}
	for _, tt := range tests {
		if got := scheduleLabel(tt.h); got != tt.want {
			t.Errorf("scheduleLabel(%s) = %q, want %q", tt.h.Schedule, got, tt.want)
		}
	}
}

func TestParsePositive(t *testing.T) {
	tests := []struct {
		in       string
		fallback int
		want     int
	}{
		{"25", 10, 25},
		{" 5 ", 10, 5},
		{"0", 10, 10},
		{"-3", 10, 10},
		{"abc", 10, 10},
		{"", 10, 10},
	}
	for _, tt := range tests {
		if got := parsePositive(tt.in, tt.fallback); got != tt.want {
			t.Errorf("parsePositive(%q, %d) = %d, want %d", tt.in, tt.fallback, got, tt.want)
		}
	}
}

func TestMinMax(t *testing.T) {
	if min(3, 5) != 3 || min(5, 3) != 3 {
		t.Fatal("min broken")
	}
	if max(3, 5) != 5 || max(5, 3) != 5 {
		t.Fatal("max broken")
	}
}

// ============================================================
// View state
// ============================================================

func TestViewNames(t *testing.T) {
	if len(viewNames) != 5 {
		t.Fatalf("expected 5 view names, got %d", len(viewNames))
	}
	expected := []string{"Today", "Habits", "Progress", "Focus", "Settings"}
	for i, name := range expected {
		if viewNames[i] != name {
			t.Fatalf("viewNames[%d] = %q, want %q", i, viewNames[i], name)
		}
	}
}

func TestViewStateConstants(t *testing.T) {
	if viewToday != 0 || viewHabits != 1 || viewProgress != 2 || viewFocus != 3 || viewSettings != 4 {
		t.Fatal("view state constants out of order")
	}
}

// ============================================================
// App model
// ============================================================

func TestNewApp(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)

	if app.activeView != viewToday {
		t.Fatal("default view should be Today")
	}
	if app.showHelp {
		t.Fatal("help should be hidden by default")
	}
	if app.exportPicking {
		t.Fatal("export picker should be hidden by default")
	}
}

func TestAppIsFormActiveDefault(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)

	if app.isFormActive() {
		t.Fatal("no forms should be active initially")
	}
}

func TestAppLoadingState(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)
	// Width 0 means not yet sized
	if output := app.View(); output != "Loading..." {
		t.Fatalf("expected 'Loading...', got %q", output)
	}
}

func TestAppViewStates(t *testing.T) {
	s := newTestStore(t)
	saveHabit(t, s, "Read")
	app := NewApp(s)
	app.width = 120
	app.height = 40

	// All views render without panic
	for _, v := range []viewState{viewToday, viewHabits, viewProgress, viewFocus, viewSettings} {
		app.activeView = v
		if output := app.View(); output == "" {
			t.Fatalf("view %d rendered empty", v)
		}
	}
}

func TestAppRenderHeaderContainsAllTabs(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)
	app.width = 120
	app.height = 40

	header := app.renderHeader()
	for _, name := range viewNames {
		if !strings.Contains(header, name) {
			t.Fatalf("header missing tab %q", name)
		}
	}
}

func TestAppStatusMessage(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)
	app.width = 120
	app.height = 40
	app.status = "test status"

	if footer := app.renderFooter(); !strings.Contains(footer, "test status") {
		t.Fatal("footer should contain status message")
	}
}

func TestAppExportPickerRenders(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)
	app.width = 120
	app.height = 40
	app.exportPicking = true

	picker := app.renderExportPicker()
	if !strings.Contains(picker, "JSON") || !strings.Contains(picker, "CSV") {
		t.Fatal("picker should offer both formats")
	}
}

// ============================================================
// Key bindings
// ============================================================

func TestKeyMapShortHelp(t *testing.T) {
	if len(keys.ShortHelp()) == 0 {
		t.Fatal("short help should have bindings")
	}
}

func TestKeyMapFullHelp(t *testing.T) {
	groups := keys.FullHelp()
	if len(groups) == 0 {
		t.Fatal("full help should have groups")
	}
	for i, g := range groups {
		if len(g) == 0 {
			t.Fatalf("full help group %d is empty", i)
		}
	}
}
