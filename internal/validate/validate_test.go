package validate

import (
	"strings"
	"testing"
	"time"

	"github.com/sadopc/habitual/internal/store"
)

func validHabit() store.Habit {
	return store.Habit{
		ID:         "h1",
		Name:       "Read",
		Category:   store.CategoryLearning,
		Schedule:   store.ScheduleDaily,
		Target:     1,
		TargetType: "daily",
	}
}

func hasField(t *testing.T, errs Errors, field string) FieldError {
	t.Helper()
	for _, e := range errs {
		if e.Field == field {
			return e
		}
	}
	t.Fatalf("expected an error on %q, got %v", field, errs)
	return FieldError{}
}

// ============================================================
// Habit
// ============================================================

func TestHabitValid(t *testing.T) {
	if errs := Habit(validHabit()); errs != nil {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestHabitNameRequired(t *testing.T) {
	h := validHabit()
	h.Name = ""
	errs := Habit(h)
	fe := hasField(t, errs, "name")
	if fe.Message != "must not be empty" {
		t.Fatalf("unexpected message: %q", fe.Message)
	}
}

func TestHabitCategoryClosedSet(t *testing.T) {
	h := validHabit()
	h.Category = "gardening"
	errs := Habit(h)
	fe := hasField(t, errs, "category")
	if !strings.Contains(fe.Message, "must be one of") {
		t.Fatalf("unexpected message: %q", fe.Message)
	}
}

func TestHabitScheduleClosedSet(t *testing.T) {
	h := validHabit()
	h.Schedule = "hourly"
	errs := Habit(h)
	hasField(t, errs, "schedule")
}

func TestHabitTargetMinimum(t *testing.T) {
	h := validHabit()
	h.Target = 0
	errs := Habit(h)
	fe := hasField(t, errs, "target")
	if !strings.Contains(fe.Message, "at least 1") {
		t.Fatalf("unexpected message: %q", fe.Message)
	}
}

func TestHabitTargetTypeClosedSet(t *testing.T) {
	h := validHabit()
	h.TargetType = "monthly"
	errs := Habit(h)
	hasField(t, errs, "targetType")
}

func TestHabitCustomScheduleNeedsDays(t *testing.T) {
	h := validHabit()
	h.Schedule = store.ScheduleCustom
	h.CustomDays = nil
	errs := Habit(h)
	fe := hasField(t, errs, "customDays")
	if !strings.Contains(fe.Message, "at least one weekday") {
		t.Fatalf("unexpected message: %q", fe.Message)
	}

	h.CustomDays = []int{1, 3, 5}
	if errs := Habit(h); errs != nil {
		t.Fatalf("valid custom schedule should pass, got %v", errs)
	}
}

func TestHabitCustomScheduleWeekdayRange(t *testing.T) {
	h := validHabit()
	h.Schedule = store.ScheduleCustom
	h.CustomDays = []int{1, 7}
	errs := Habit(h)
	fe := hasField(t, errs, "customDays")
	if !strings.Contains(fe.Message, "between 0 and 6") {
		t.Fatalf("unexpected message: %q", fe.Message)
	}
}

func TestHabitIntervalScheduleNeedsDays(t *testing.T) {
	h := validHabit()
	h.Schedule = store.ScheduleInterval
	h.IntervalDays = 0
	errs := Habit(h)
	hasField(t, errs, "intervalDays")

	h.IntervalDays = 3
	if errs := Habit(h); errs != nil {
		t.Fatalf("valid interval schedule should pass, got %v", errs)
	}
}

func TestHabitDailyIgnoresScheduleExtras(t *testing.T) {
	// A daily habit carries no cross-field requirements.
	h := validHabit()
	h.CustomDays = nil
	h.IntervalDays = 0
	if errs := Habit(h); errs != nil {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestHabitMultipleErrors(t *testing.T) {
	h := store.Habit{}
	errs := Habit(h)
	if len(errs) < 3 {
		t.Fatalf("zero-value habit should fail several checks, got %v", errs)
	}
	if errs.Error() == "" {
		t.Fatal("Errors should render a combined message")
	}
}

// ============================================================
// HabitLog
// ============================================================

func TestHabitLogValid(t *testing.T) {
	at := time.Now().UTC()
	l := store.HabitLog{
		ID: "l1", HabitID: "h1", Date: "2026-03-01",
		Completed: true, CompletedAt: &at,
	}
	if errs := HabitLog(l); len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestHabitLogRequiresHabitID(t *testing.T) {
	l := store.HabitLog{ID: "l1", Date: "2026-03-01"}
	errs := HabitLog(l)
	hasField(t, errs, "habitId")
}

func TestHabitLogRequiresParseableDate(t *testing.T) {
	l := store.HabitLog{ID: "l1", HabitID: "h1", Date: "03/01/2026"}
	errs := HabitLog(l)
	hasField(t, errs, "date")
}

func TestHabitLogCompletedAtPairing(t *testing.T) {
	// completed without a timestamp
	l := store.HabitLog{ID: "l1", HabitID: "h1", Date: "2026-03-01", Completed: true}
	hasField(t, HabitLog(l), "completedAt")

	// timestamp without completed
	at := time.Now().UTC()
	l = store.HabitLog{ID: "l1", HabitID: "h1", Date: "2026-03-01", CompletedAt: &at}
	hasField(t, HabitLog(l), "completedAt")
}
