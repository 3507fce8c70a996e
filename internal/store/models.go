package store

import (
	"strconv"
	"strings"
	"time"
)

// Habit categories (closed set).
const (
	CategoryHealth       = "health"
	CategoryProductivity = "productivity"
	CategoryMindfulness  = "mindfulness"
	CategoryLearning     = "learning"
	CategorySocial       = "social"
	CategoryCreativity   = "creativity"
	CategoryOther        = "other"
)

// Habit schedule kinds.
const (
	ScheduleDaily    = "daily"
	ScheduleCustom   = "custom"
	ScheduleInterval = "interval"
)

// Pomodoro session modes.
const (
	ModeFocus      = "focus"
	ModeShortBreak = "short_break"
	ModeLongBreak  = "long_break"
)

// Habit is a recurring activity definition.
type Habit struct {
	ID            string    `json:"id"`
	Name          string    `json:"name" validate:"required"`
	Icon          string    `json:"icon"`
	Color         string    `json:"color"`
	Category      string    `json:"category" validate:"oneof=health productivity mindfulness learning social creativity other"`
	Description   string    `json:"description,omitempty"`
	Schedule      string    `json:"schedule" validate:"oneof=daily custom interval"`
	CustomDays    []int     `json:"customDays,omitempty"` // weekday numbers 0-6, Sunday-Saturday
	IntervalDays  int       `json:"intervalDays,omitempty"`
	Target        int       `json:"target" validate:"min=1"`
	TargetType    string    `json:"targetType" validate:"oneof=daily weekly"`
	ReminderTimes []string  `json:"reminderTimes"` // ["07:00", "18:00"]
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// HabitLog is one day's completion record for one habit.
// Natural key: (HabitID, Date), at most one log per habit per calendar day.
type HabitLog struct {
	ID          string     `json:"id"`
	HabitID     string     `json:"habitId"`
	Date        string     `json:"date"` // YYYY-MM-DD
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt,omitempty"` // set iff Completed
	Notes       string     `json:"notes,omitempty"`
	Skipped     bool       `json:"skipped"`
	SkipReason  string     `json:"skipReason,omitempty"`
}

// PomodoroSession records one completed or aborted focus/break interval.
// Sessions are append-only: written once at interval end, never mutated.
type PomodoroSession struct {
	ID             string     `json:"id"`
	HabitID        string     `json:"habitId,omitempty"`
	Mode           string     `json:"mode"` // focus, short_break, long_break
	PlannedMinutes int        `json:"plannedMinutes"`
	ActualMinutes  int        `json:"actualMinutes"`
	Completed      bool       `json:"completed"`
	Notes          string     `json:"notes,omitempty"`
	StartedAt      time.Time  `json:"startedAt"`
	CompletedAt    *time.Time `json:"completedAt,omitempty"`
}

// PomodoroSettings holds the focus timer durations.
type PomodoroSettings struct {
	FocusMinutes      int `json:"focusMinutes"`
	ShortBreakMinutes int `json:"shortBreakMinutes"`
	LongBreakMinutes  int `json:"longBreakMinutes"`
	LongBreakInterval int `json:"longBreakInterval"` // long break after N focus intervals
}

// UserPreferences is a per-installation singleton.
type UserPreferences struct {
	Name                 string           `json:"name"`
	Theme                string           `json:"theme"`    // light, dark, system
	Language             string           `json:"language"` // en, id
	NotificationsEnabled bool             `json:"notificationsEnabled"`
	SoundEnabled         bool             `json:"soundEnabled"`
	Pomodoro             PomodoroSettings `json:"pomodoroSettings"`
}

// DefaultPreferences returns the preferences used when none are stored yet.
func DefaultPreferences() UserPreferences {
	return UserPreferences{
		Name:                 "User",
		Theme:                "system",
		Language:             "en",
		NotificationsEnabled: true,
		SoundEnabled:         true,
		Pomodoro: PomodoroSettings{
			FocusMinutes:      25,
			ShortBreakMinutes: 5,
			LongBreakMinutes:  15,
			LongBreakInterval: 4,
		},
	}
}

// DateFormat is the calendar-day format used for HabitLog.Date.
const DateFormat = "2006-01-02"

// joinInts / splitInts map CustomDays to its comma-joined column form.

func joinInts(ns []int) string {
	if len(ns) == 0 {
		return ""
	}
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ",")
}

func splitInts(s string) []int {
	if s == "" {
		return nil
	}
	var ns []int
	for _, p := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			continue
		}
		ns = append(ns, n)
	}
	return ns
}

func joinStrings(ss []string) string {
	return strings.Join(ss, ",")
}

func splitStrings(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
