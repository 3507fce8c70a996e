package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/sadopc/habitual/internal/stats"
	"github.com/sadopc/habitual/internal/store"
	"github.com/sadopc/habitual/internal/validate"
)

var habitCategories = []string{
	store.CategoryHealth,
	store.CategoryProductivity,
	store.CategoryMindfulness,
	store.CategoryLearning,
	store.CategorySocial,
	store.CategoryCreativity,
	store.CategoryOther,
}

var weekdayNames = []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

type habitsModel struct {
	store  *store.Store
	width  int
	height int

	habits []stats.HabitWithStats
	cursor int

	formActive bool
	form       *huh.Form

	// Form field pointers (survive value copies)
	formName        *string
	formDescription *string
	formCategory    *string
	formColor       *string
	formSchedule    *string
	formCustomDays  *[]int
	formInterval    *string
	formTarget      *string
	formTargetType  *string

	editingID string // habit being edited, "" when creating
	editing   *store.Habit
}

func newHabitsModel(s *store.Store) habitsModel {
	name, desc, cat, color := "", "", store.CategoryOther, store.HabitColors[0]
	schedule, interval, target, targetType := store.ScheduleDaily, "", "1", "daily"
	days := []int{}
	return habitsModel{
		store:           s,
		formName:        &name,
		formDescription: &desc,
		formCategory:    &cat,
		formColor:       &color,
		formSchedule:    &schedule,
		formCustomDays:  &days,
		formInterval:    &interval,
		formTarget:      &target,
		formTargetType:  &targetType,
	}
}

func (m *habitsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

type habitsDataMsg struct {
	habits []stats.HabitWithStats
}

func (m habitsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		habits := m.store.GetHabits()
		logs := m.store.GetHabitLogs("")
		return habitsDataMsg{habits: stats.Compute(habits, logs, time.Now().UTC())}
	}
}

func (m habitsModel) update(msg tea.Msg) (habitsModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case habitsDataMsg:
		m.habits = msg.habits
		if m.cursor >= len(m.habits) {
			m.cursor = max(0, len(m.habits)-1)
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.habits)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.New):
			return m.showForm(nil)
		case key.Matches(msg, keys.Edit):
			if len(m.habits) > 0 {
				h := m.habits[m.cursor].Habit
				return m.showForm(&h)
			}
		case key.Matches(msg, keys.Delete):
			if len(m.habits) > 0 {
				return m.deleteHabit(m.habits[m.cursor].ID)
			}
		}
	}
	return m, nil
}

func (m habitsModel) deleteHabit(id string) (habitsModel, tea.Cmd) {
	return m, func() tea.Msg {
		if err := m.store.DeleteHabit(id); err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		return habitDeletedMsg{}
	}
}

// showForm opens the create form, or the edit form when h is non-nil.
func (m habitsModel) showForm(h *store.Habit) (habitsModel, tea.Cmd) {
	if h != nil {
		m.editingID = h.ID
		m.editing = h
		*m.formName = h.Name
		*m.formDescription = h.Description
		*m.formCategory = h.Category
		*m.formColor = h.Color
		*m.formSchedule = h.Schedule
		*m.formCustomDays = append([]int(nil), h.CustomDays...)
		*m.formInterval = ""
		if h.IntervalDays > 0 {
			*m.formInterval = strconv.Itoa(h.IntervalDays)
		}
		*m.formTarget = strconv.Itoa(h.Target)
		*m.formTargetType = h.TargetType
	} else {
		m.editingID = ""
		m.editing = nil
		*m.formName = ""
		*m.formDescription = ""
		*m.formCategory = store.CategoryOther
		*m.formColor = store.HabitColors[0]
		*m.formSchedule = store.ScheduleDaily
		*m.formCustomDays = nil
		*m.formInterval = ""
		*m.formTarget = "1"
		*m.formTargetType = "daily"
	}

	catOptions := make([]huh.Option[string], len(habitCategories))
	for i, c := range habitCategories {
		catOptions[i] = huh.NewOption(c, c)
	}
	colorOptions := make([]huh.Option[string], len(store.HabitColors))
	for i, c := range store.HabitColors {
		colorOptions[i] = huh.NewOption(fmt.Sprintf("● %s", c), c)
	}
	dayOptions := make([]huh.Option[int], len(weekdayNames))
	for i, d := range weekdayNames {
		dayOptions[i] = huh.NewOption(d, i)
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Name").Value(m.formName),
			huh.NewInput().Title("Description").Value(m.formDescription),
			huh.NewSelect[string]().Title("Category").Options(catOptions...).Value(m.formCategory),
			huh.NewSelect[string]().Title("Color").Options(colorOptions...).Value(m.formColor),
		),
		huh.NewGroup(
			huh.NewSelect[string]().Title("Schedule").
				Options(
					huh.NewOption("Every day", store.ScheduleDaily),
					huh.NewOption("Specific weekdays", store.ScheduleCustom),
					huh.NewOption("Every N days", store.ScheduleInterval),
				).Value(m.formSchedule),
			huh.NewMultiSelect[int]().Title("Weekdays (custom schedule)").
				Options(dayOptions...).Value(m.formCustomDays),
			huh.NewInput().Title("Interval days (interval schedule)").Value(m.formInterval),
			huh.NewInput().Title("Target").Value(m.formTarget),
			huh.NewSelect[string]().Title("Target period").
				Options(
					huh.NewOption("Per day", "daily"),
					huh.NewOption("Per week", "weekly"),
				).Value(m.formTargetType),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m habitsModel) updateForm(msg tea.Msg) (habitsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			m.formActive = false
			m.form = nil
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formActive = false
		return m.submitForm()
	}

	return m, cmd
}

// submitForm validates the payload and saves it. Validation failures keep
// the habit unsaved and surface the offending fields.
func (m habitsModel) submitForm() (habitsModel, tea.Cmd) {
	now := time.Now().UTC()
	h := store.Habit{
		ID:          m.editingID,
		Name:        strings.TrimSpace(*m.formName),
		Icon:        "circle",
		Color:       *m.formColor,
		Category:    *m.formCategory,
		Description: strings.TrimSpace(*m.formDescription),
		Schedule:    *m.formSchedule,
		TargetType:  *m.formTargetType,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if m.editing != nil {
		h.Icon = m.editing.Icon
		h.ReminderTimes = m.editing.ReminderTimes
		h.IsActive = m.editing.IsActive
		h.CreatedAt = m.editing.CreatedAt
	}
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	if h.Schedule == store.ScheduleCustom {
		h.CustomDays = append([]int(nil), *m.formCustomDays...)
	}
	if h.Schedule == store.ScheduleInterval {
		h.IntervalDays, _ = strconv.Atoi(strings.TrimSpace(*m.formInterval))
	}
	h.Target, _ = strconv.Atoi(strings.TrimSpace(*m.formTarget))

	if errs := validate.Habit(h); errs != nil {
		fields := make([]string, len(errs))
		for i, e := range errs {
			fields[i] = e.Error()
		}
		return m, func() tea.Msg {
			return statusMsg{text: "Invalid habit: " + strings.Join(fields, "; "), isError: true}
		}
	}

	return m, func() tea.Msg {
		if err := m.store.SaveHabit(h); err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		return habitSavedMsg{}
	}
}

func (m habitsModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		title := titleStyle.Render("New Habit")
		if m.editingID != "" {
			title = titleStyle.Render("Edit Habit")
		}
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View())
		return panelStyle.Width(w).Render(content)
	}

	title := titleStyle.Render("Habits")

	if len(m.habits) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No habits yet. Press n to create one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-3s %-26s %-14s %-10s %7s %6s", "", "Name", "Category", "Schedule", "Streak", "Rate")))

	for i, h := range m.habits {
		colorDot := lipgloss.NewStyle().Foreground(lipgloss.Color(h.Color)).Render("●")
		cursor := "  "
		style := normalItemStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		name := truncate(h.Name, 26)
		if !h.IsActive {
			name += " (paused)"
		}
		row := style.Render(fmt.Sprintf("%s%s %-26s", cursor, colorDot, name)) +
			fmt.Sprintf(" %-14s %-10s %7d %6s", h.Category, scheduleLabel(h.Habit), h.CurrentStreak, formatRate(h.CompletionRate))
		rows = append(rows, row)
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  e: edit  d: delete"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func scheduleLabel(h store.Habit) string {
	switch h.Schedule {
	case store.ScheduleCustom:
		return fmt.Sprintf("%d days/wk", len(h.CustomDays))
	case store.ScheduleInterval:
		return fmt.Sprintf("every %dd", h.IntervalDays)
	default:
		return "daily"
	}
}
