package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/habitual/internal/stats"
	"github.com/sadopc/habitual/internal/store"
)

type todayModel struct {
	store  *store.Store
	width  int
	height int

	habits []stats.HabitWithStats
	done   int
	total  int
	cursor int
}

func newTodayModel(s *store.Store) todayModel {
	return todayModel{store: s}
}

func (t todayModel) Init() tea.Cmd {
	return t.loadData()
}

func (t *todayModel) setSize(w, h int) {
	t.width = w
	t.height = h
}

type todayDataMsg struct {
	habits []stats.HabitWithStats
	done   int
	total  int
}

func (t todayModel) loadData() tea.Cmd {
	return func() tea.Msg {
		habits := t.store.GetHabits()
		logs := t.store.GetHabitLogs("")
		now := time.Now().UTC()

		active := habits[:0:0]
		for _, h := range habits {
			if h.IsActive {
				active = append(active, h)
			}
		}
		done, total := stats.TodayProgress(habits, logs, now)

		return todayDataMsg{
			habits: stats.Compute(active, logs, now),
			done:   done,
			total:  total,
		}
	}
}

func (t todayModel) update(msg tea.Msg) (todayModel, tea.Cmd) {
	switch msg := msg.(type) {
	case todayDataMsg:
		t.habits = msg.habits
		t.done = msg.done
		t.total = msg.total
		if t.cursor >= len(t.habits) {
			t.cursor = max(0, len(t.habits)-1)
		}
		return t, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if t.cursor > 0 {
				t.cursor--
			}
		case key.Matches(msg, keys.Down):
			if t.cursor < len(t.habits)-1 {
				t.cursor++
			}
		case key.Matches(msg, keys.Toggle), key.Matches(msg, keys.Enter):
			if len(t.habits) > 0 {
				return t.toggle(t.habits[t.cursor].ID)
			}
		}
	}
	return t, nil
}

func (t todayModel) toggle(habitID string) (todayModel, tea.Cmd) {
	return t, func() tea.Msg {
		l, err := t.store.ToggleHabitCompletion(habitID, today())
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		return habitToggledMsg{log: l}
	}
}

func (t todayModel) view() string {
	w := t.width - 4

	header := t.renderHeader()

	if len(t.habits) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			header,
			"",
			mutedStyle.Render("No active habits. Press 2 to go to Habits and create one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, header)
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-3s %-28s %8s %8s %6s", "", "Habit", "Streak", "Total", "Rate")))

	for i, h := range t.habits {
		mark := mutedStyle.Render("○")
		if h.TodayCompleted {
			mark = successStyle.Render("●")
		}
		cursor := "  "
		style := normalItemStyle
		if i == t.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		streak := ""
		if h.CurrentStreak > 0 {
			streak = streakStyle.Render(fmt.Sprintf("%d🔥", h.CurrentStreak))
		}
		row := style.Render(fmt.Sprintf("%s%s %-28s", cursor, mark, truncate(h.Name, 28))) +
			fmt.Sprintf(" %8s %8d %6s", streak, h.TotalCompletions, formatRate(h.CompletionRate))
		rows = append(rows, row)
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  space: toggle done  ↑/↓: move"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (t todayModel) renderHeader() string {
	now := time.Now()
	hello := titleStyle.Render(greeting(now))
	date := mutedStyle.Render(now.Format("Monday, Jan 2"))

	progress := ""
	if t.total > 0 {
		style := warningStyle
		if t.done == t.total {
			style = successStyle
		}
		progress = style.Render(fmt.Sprintf("%d/%d done today", t.done, t.total))
	}

	return lipgloss.JoinHorizontal(lipgloss.Bottom, hello, "  ", date, "  ", progress)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
