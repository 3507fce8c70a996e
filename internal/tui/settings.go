package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/habitual/internal/store"
)

type settingsModel struct {
	store  *store.Store
	width  int
	height int

	prefs      store.UserPreferences
	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	name          *string
	theme         *string
	language      *string
	notifications *bool
	sound         *bool
	focusMin      *string
	shortBreakMin *string
	longBreakMin  *string
	longBreakIvl  *string
}

func newSettingsModel(s *store.Store) settingsModel {
	name, theme, lang := "", "", ""
	notif, sound := true, true
	fm, sb, lb, li := "", "", "", ""
	return settingsModel{
		store:         s,
		name:          &name,
		theme:         &theme,
		language:      &lang,
		notifications: &notif,
		sound:         &sound,
		focusMin:      &fm,
		shortBreakMin: &sb,
		longBreakMin:  &lb,
		longBreakIvl:  &li,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

type settingsDataMsg struct {
	prefs store.UserPreferences
}

func (s settingsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		return settingsDataMsg{prefs: s.store.GetUserPreferences()}
	}
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	switch msg := msg.(type) {
	case settingsDataMsg:
		s.prefs = msg.prefs
		return s, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.Edit):
			return s.showForm()
		}
	}
	return s, nil
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	p := s.store.GetUserPreferences()
	*s.name = p.Name
	*s.theme = p.Theme
	*s.language = p.Language
	*s.notifications = p.NotificationsEnabled
	*s.sound = p.SoundEnabled
	*s.focusMin = strconv.Itoa(p.Pomodoro.FocusMinutes)
	*s.shortBreakMin = strconv.Itoa(p.Pomodoro.ShortBreakMinutes)
	*s.longBreakMin = strconv.Itoa(p.Pomodoro.LongBreakMinutes)
	*s.longBreakIvl = strconv.Itoa(p.Pomodoro.LongBreakInterval)

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Display name").Value(s.name),
			huh.NewSelect[string]().Title("Theme").
				Options(
					huh.NewOption("System", "system"),
					huh.NewOption("Light", "light"),
					huh.NewOption("Dark", "dark"),
				).Value(s.theme),
			huh.NewSelect[string]().Title("Language").
				Options(
					huh.NewOption("English", "en"),
					huh.NewOption("Bahasa Indonesia", "id"),
				).Value(s.language),
			huh.NewConfirm().Title("Notifications").Value(s.notifications),
			huh.NewConfirm().Title("Sound").Value(s.sound),
		).Title("General"),
		huh.NewGroup(
			huh.NewInput().Title("Focus (min)").Value(s.focusMin),
			huh.NewInput().Title("Short break (min)").Value(s.shortBreakMin),
			huh.NewInput().Title("Long break (min)").Value(s.longBreakMin),
			huh.NewInput().Title("Focus intervals before long break").Value(s.longBreakIvl),
		).Title("Focus timer"),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		return s.save()
	}

	return s, cmd
}

func (s settingsModel) save() (settingsModel, tea.Cmd) {
	p := s.store.GetUserPreferences()
	p.Name = strings.TrimSpace(*s.name)
	p.Theme = *s.theme
	p.Language = *s.language
	p.NotificationsEnabled = *s.notifications
	p.SoundEnabled = *s.sound
	p.Pomodoro.FocusMinutes = parsePositive(*s.focusMin, p.Pomodoro.FocusMinutes)
	p.Pomodoro.ShortBreakMinutes = parsePositive(*s.shortBreakMin, p.Pomodoro.ShortBreakMinutes)
	p.Pomodoro.LongBreakMinutes = parsePositive(*s.longBreakMin, p.Pomodoro.LongBreakMinutes)
	p.Pomodoro.LongBreakInterval = parsePositive(*s.longBreakIvl, p.Pomodoro.LongBreakInterval)

	return s, func() tea.Msg {
		if err := s.store.SaveUserPreferences(p); err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		return preferencesSavedMsg{}
	}
}

func parsePositive(v string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

func (s settingsModel) view() string {
	w := s.width - 4

	if s.formActive && s.form != nil {
		content := lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render("Settings"), "", s.form.View())
		return panelStyle.Width(w).Render(content)
	}

	p := s.prefs
	onOff := func(b bool) string {
		if b {
			return successStyle.Render("on")
		}
		return mutedStyle.Render("off")
	}

	rows := []string{
		titleStyle.Render("Settings"),
		"",
		fmt.Sprintf("  %-34s %s", "Display name", highlightStyle.Render(p.Name)),
		fmt.Sprintf("  %-34s %s", "Theme", p.Theme),
		fmt.Sprintf("  %-34s %s", "Language", p.Language),
		fmt.Sprintf("  %-34s %s", "Notifications", onOff(p.NotificationsEnabled)),
		fmt.Sprintf("  %-34s %s", "Sound", onOff(p.SoundEnabled)),
		"",
		fmt.Sprintf("  %-34s %d min", "Focus interval", p.Pomodoro.FocusMinutes),
		fmt.Sprintf("  %-34s %d min", "Short break", p.Pomodoro.ShortBreakMinutes),
		fmt.Sprintf("  %-34s %d min", "Long break", p.Pomodoro.LongBreakMinutes),
		fmt.Sprintf("  %-34s every %d intervals", "Long break", p.Pomodoro.LongBreakInterval),
		"",
		mutedStyle.Render("  enter: edit  E: export"),
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
