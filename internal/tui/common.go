package tui

import (
	"fmt"
	"time"

	"github.com/sadopc/habitual/internal/store"
)

// viewState represents the currently active view.
type viewState int

const (
	viewToday viewState = iota
	viewHabits
	viewProgress
	viewFocus
	viewSettings
)

var viewNames = []string{"Today", "Habits", "Progress", "Focus", "Settings"}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

type tickMsg time.Time

type habitToggledMsg struct {
	log *store.HabitLog
}

type habitSavedMsg struct{}
type habitDeletedMsg struct{}
type preferencesSavedMsg struct{}

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

func formatCountdown(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", m, s)
}

func formatRate(rate float64) string {
	return fmt.Sprintf("%.0f%%", rate)
}

func greeting(now time.Time) string {
	switch h := now.Hour(); {
	case h < 12:
		return "Good morning"
	case h < 17:
		return "Good afternoon"
	default:
		return "Good evening"
	}
}

func today() string {
	return time.Now().UTC().Format(store.DateFormat)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
