package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/habitual/internal/stats"
	"github.com/sadopc/habitual/internal/store"
)

type progressModel struct {
	store  *store.Store
	width  int
	height int

	days   []stats.DayCount
	habits []stats.HabitWithStats
	offset int // 7-day blocks back from today (0 = current week)

	chart barchart.Model
}

func newProgressModel(s *store.Store) progressModel {
	return progressModel{
		store: s,
		chart: barchart.New(60, 12),
	}
}

func (p *progressModel) setSize(w, h int) {
	p.width = w
	p.height = h
}

type progressDataMsg struct {
	days   []stats.DayCount
	habits []stats.HabitWithStats
}

func (p progressModel) refresh() tea.Cmd {
	return func() tea.Msg {
		habits := p.store.GetHabits()
		logs := p.store.GetHabitLogs("")
		now := time.Now().UTC()
		ref := now.AddDate(0, 0, -7*p.offset)

		return progressDataMsg{
			days:   stats.CompletionsByDay(logs, ref, 7),
			habits: stats.Compute(habits, logs, now),
		}
	}
}

func (p progressModel) update(msg tea.Msg) (progressModel, tea.Cmd) {
	switch msg := msg.(type) {
	case progressDataMsg:
		p.days = msg.days
		p.habits = msg.habits
		p.buildChart()
		return p, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			p.offset++
			return p, p.refresh()
		case key.Matches(msg, keys.Right):
			if p.offset > 0 {
				p.offset--
			}
			return p, p.refresh()
		}
	}
	return p, nil
}

func (p *progressModel) buildChart() {
	chartWidth := p.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 10
	if p.height > 30 {
		chartHeight = 14
	}

	p.chart = barchart.New(chartWidth, chartHeight)

	var bars []barchart.BarData
	for _, d := range p.days {
		style := lipgloss.NewStyle().Foreground(colorPrimary)
		if d.Completed == 0 {
			style = lipgloss.NewStyle().Foreground(colorSubtle)
		}
		bars = append(bars, barchart.BarData{
			Label: d.Label,
			Values: []barchart.BarValue{
				{Name: d.Date, Value: float64(d.Completed), Style: style},
			},
		})
	}

	p.chart.PushAll(bars)
	p.chart.Draw()
}

func (p progressModel) view() string {
	w := p.width - 4

	rangeLabel := ""
	if len(p.days) > 0 {
		rangeLabel = mutedStyle.Render(fmt.Sprintf("%s to %s", p.days[0].Date, p.days[len(p.days)-1].Date))
	}
	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Progress"), "  ",
		mutedStyle.Render("completions per day"), "  ",
		rangeLabel,
	)

	chartView := p.chart.View()
	tableView := p.renderHabitTable(w)
	nav := mutedStyle.Render("  ←/→: previous/next week")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left, header, "", chartView, "", tableView, "", nav),
	)
}

func (p progressModel) renderHabitTable(w int) string {
	if len(p.habits) == 0 {
		return mutedStyle.Render("  No habits yet")
	}

	var rows []string
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-28s %8s %8s %6s", "Habit", "Streak", "Total", "Rate")))
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", min(w-6, 52))))

	for _, h := range p.habits {
		colorDot := lipgloss.NewStyle().Foreground(lipgloss.Color(h.Color)).Render("●")
		rows = append(rows, fmt.Sprintf("  %s %-26s %8d %8d %6s",
			colorDot, truncate(h.Name, 26), h.CurrentStreak, h.TotalCompletions, formatRate(h.CompletionRate),
		))
	}

	return strings.Join(rows, "\n")
}
