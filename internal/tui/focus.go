package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/sadopc/habitual/internal/store"
)

type focusPhase int

const (
	focusIdle focusPhase = iota
	focusWork
	focusShortBreak
	focusLongBreak
)

type focusModel struct {
	store  *store.Store
	width  int
	height int

	phase          focusPhase
	completedCount int
	prefs          store.PomodoroSettings

	remaining  time.Duration
	phaseStart time.Time
	phaseEnd   time.Time

	todayFocus int // minutes
}

func newFocusModel(s *store.Store) focusModel {
	m := focusModel{store: s, phase: focusIdle}
	m.loadPrefs()
	return m
}

func (f *focusModel) loadPrefs() {
	f.prefs = f.store.GetUserPreferences().Pomodoro
	now := time.Now().UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	f.todayFocus = f.store.FocusMinutesSince(dayStart)
}

func (f *focusModel) setSize(w, h int) {
	f.width = w
	f.height = h
}

func (f focusModel) update(msg tea.Msg) (focusModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if f.phase != focusIdle {
			f.remaining = time.Until(f.phaseEnd)
			if f.remaining <= 0 {
				return f.advancePhase()
			}
		}
		return f, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Start):
			if f.phase == focusIdle {
				f.completedCount = 0
				f.loadPrefs()
				return f.startPhase(focusWork)
			}
		case key.Matches(msg, keys.Stop):
			if f.phase != focusIdle {
				return f.cancelPhase()
			}
		case key.Matches(msg, keys.Skip):
			if f.phase == focusShortBreak || f.phase == focusLongBreak {
				f.recordSession(false)
				return f.startPhase(focusWork)
			}
		}
	}
	return f, nil
}

func (f focusModel) startPhase(phase focusPhase) (focusModel, tea.Cmd) {
	f.phase = phase
	d := f.phaseDuration(phase)
	f.remaining = d
	f.phaseStart = time.Now().UTC()
	f.phaseEnd = time.Now().Add(d)
	return f, nil
}

// advancePhase records the interval that just elapsed and moves on:
// focus intervals alternate with breaks, with a long break after every
// LongBreakInterval-th focus interval.
func (f focusModel) advancePhase() (focusModel, tea.Cmd) {
	session := f.recordSession(true)

	switch f.phase {
	case focusWork:
		f.completedCount++
		f.todayFocus += session.ActualMinutes

		next := focusShortBreak
		if f.prefs.LongBreakInterval > 0 && f.completedCount%f.prefs.LongBreakInterval == 0 {
			next = focusLongBreak
		}
		m, cmd := f.startPhase(next)
		return m, tea.Batch(cmd, func() tea.Msg {
			return statusMsg{text: "Focus interval done, break time! \a"}
		})

	case focusShortBreak, focusLongBreak:
		m, cmd := f.startPhase(focusWork)
		return m, tea.Batch(cmd, func() tea.Msg {
			return statusMsg{text: "Back to focus \a"}
		})
	}
	return f, nil
}

func (f focusModel) cancelPhase() (focusModel, tea.Cmd) {
	f.recordSession(false)
	f.phase = focusIdle
	f.remaining = 0
	return f, func() tea.Msg {
		return statusMsg{text: "Focus session stopped"}
	}
}

// recordSession appends the just-elapsed interval as a PomodoroSession.
// Sessions are written once, fully populated, and never mutated after.
func (f focusModel) recordSession(completed bool) store.PomodoroSession {
	now := time.Now().UTC()
	elapsed := int(now.Sub(f.phaseStart).Minutes())
	planned := int(f.phaseDuration(f.phase).Minutes())
	if completed {
		elapsed = planned
	}

	session := store.PomodoroSession{
		ID:             uuid.NewString(),
		Mode:           f.phaseMode(),
		PlannedMinutes: planned,
		ActualMinutes:  elapsed,
		Completed:      completed,
		StartedAt:      f.phaseStart,
		CompletedAt:    &now,
	}
	if err := f.store.SavePomodoroSession(session); err != nil {
		// Losing one session record is not worth interrupting the timer.
		return session
	}
	return session
}

func (f focusModel) phaseDuration(phase focusPhase) time.Duration {
	switch phase {
	case focusShortBreak:
		return time.Duration(f.prefs.ShortBreakMinutes) * time.Minute
	case focusLongBreak:
		return time.Duration(f.prefs.LongBreakMinutes) * time.Minute
	default:
		return time.Duration(f.prefs.FocusMinutes) * time.Minute
	}
}

func (f focusModel) phaseMode() string {
	switch f.phase {
	case focusShortBreak:
		return store.ModeShortBreak
	case focusLongBreak:
		return store.ModeLongBreak
	default:
		return store.ModeFocus
	}
}

func (f focusModel) view() string {
	w := f.width - 4

	title := titleStyle.Render("Focus Timer")

	var timeDisplay, phaseLabel string
	switch f.phase {
	case focusIdle:
		timeDisplay = timerStyle.Width(w - 6).Render(formatCountdown(time.Duration(f.prefs.FocusMinutes) * time.Minute))
		phaseLabel = mutedStyle.Render("Ready to focus")
	case focusWork:
		timeDisplay = errorStyle.Bold(true).Width(w - 6).Align(lipgloss.Center).Render(formatCountdown(f.remaining))
		phaseLabel = errorStyle.Bold(true).Render("FOCUS")
	case focusShortBreak:
		timeDisplay = successStyle.Bold(true).Width(w - 6).Align(lipgloss.Center).Render(formatCountdown(f.remaining))
		phaseLabel = successStyle.Bold(true).Render("SHORT BREAK")
	case focusLongBreak:
		timeDisplay = highlightStyle.Bold(true).Width(w - 6).Align(lipgloss.Center).Render(formatCountdown(f.remaining))
		phaseLabel = highlightStyle.Bold(true).Render("LONG BREAK")
	}

	indicator := f.renderProgress()
	total := mutedStyle.Render(fmt.Sprintf("%d focus minutes today", f.todayFocus))

	content := lipgloss.JoinVertical(lipgloss.Center,
		title,
		"",
		timeDisplay,
		phaseLabel,
		"",
		indicator,
		total,
	)

	var controls string
	switch f.phase {
	case focusIdle:
		controls = mutedStyle.Render("s: start  q: quit")
	case focusWork:
		controls = mutedStyle.Render("x: stop")
	default:
		controls = mutedStyle.Render("b: skip break  x: stop")
	}

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Center, content, "", controls),
	)
}

func (f focusModel) renderProgress() string {
	interval := f.prefs.LongBreakInterval
	if interval <= 0 {
		interval = 4
	}
	done := f.completedCount % interval
	if f.completedCount > 0 && done == 0 {
		done = interval
	}
	var parts []string
	for i := 0; i < interval; i++ {
		switch {
		case i < done:
			parts = append(parts, successStyle.Render("●"))
		case i == done && f.phase == focusWork:
			parts = append(parts, errorStyle.Render("◐"))
		default:
			parts = append(parts, mutedStyle.Render("○"))
		}
	}
	counter := mutedStyle.Render(fmt.Sprintf("  %d done", f.completedCount))
	return strings.Join(parts, " ") + counter
}
