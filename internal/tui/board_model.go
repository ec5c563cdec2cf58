package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/truant/internal/parser"
	"github.com/balkashynov/truant/internal/tracker"
)

// SprintLoader fetches the sprints shown on the board with days and events
// expanded
type SprintLoader func() ([]tracker.SprintView, error)

// Focus represents which board panel has focus
type Focus int

const (
	FocusSprints Focus = iota
	FocusDays
)

// sprintsLoadedMsg carries the result of a SprintLoader run
type sprintsLoadedMsg struct {
	sprints []tracker.SprintView
	err     error
}

// BoardModel shows sprints on the left and the selected sprint's days with
// their events on the right
type BoardModel struct {
	width  int
	height int

	load    SprintLoader
	loading bool
	spinner spinner.Model
	err     error

	sprints        []tracker.SprintView
	selectedSprint int
	selectedDay    int
	focus          Focus

	now func() time.Time
}

func NewBoardModel(load SprintLoader) BoardModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright))

	return BoardModel{
		load:    load,
		loading: true,
		spinner: s,
		focus:   FocusSprints,
		now:     time.Now,
	}
}

func (m BoardModel) fetch() tea.Msg {
	sprints, err := m.load()
	return sprintsLoadedMsg{sprints: sprints, err: err}
}

// Init starts the spinner and the first load
func (m BoardModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetch)
}

func (m BoardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case sprintsLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.sprints = msg.sprints
			m.selectedSprint = min(m.selectedSprint, max(len(m.sprints)-1, 0))
			m.selectedDay = 0
		}
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit

		case "r":
			if m.loading {
				return m, nil
			}
			m.loading = true
			m.err = nil
			return m, tea.Batch(m.spinner.Tick, m.fetch)

		case "tab", "left", "right", "h", "l":
			if m.focus == FocusSprints && len(m.currentDays()) > 0 {
				m.focus = FocusDays
			} else {
				m.focus = FocusSprints
			}
			return m, nil

		case "up", "k":
			return m.moveSelection(-1), nil

		case "down", "j":
			return m.moveSelection(1), nil
		}
	}

	return m, nil
}

func (m BoardModel) moveSelection(delta int) BoardModel {
	if m.focus == FocusDays {
		days := m.currentDays()
		m.selectedDay = clamp(m.selectedDay+delta, 0, len(days)-1)
		return m
	}

	next := clamp(m.selectedSprint+delta, 0, len(m.sprints)-1)
	if next != m.selectedSprint {
		m.selectedSprint = next
		m.selectedDay = 0
	}
	return m
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return max(lo, min(v, hi))
}

func (m BoardModel) currentDays() []tracker.DayView {
	if m.selectedSprint >= len(m.sprints) {
		return nil
	}
	return m.sprints[m.selectedSprint].Days
}

func (m BoardModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	if m.loading {
		text := fmt.Sprintf("%s Loading sprints from Notion...", m.spinner.View())
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, text)
	}

	if m.err != nil {
		errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError)).Bold(true)
		text := errStyle.Render("Error: "+m.err.Error()) + "\n\n" + m.renderHelpBar()
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, text)
	}

	leftWidth := m.width * 40 / 100
	rightWidth := m.width - leftWidth - 1

	content := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.renderSprintList(leftWidth),
		" ",
		m.renderSprintDetails(rightWidth),
	)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		"",
		content,
		"",
		m.renderHelpBar(),
	)
}

func (m BoardModel) renderSprintList(width int) string {
	var b strings.Builder

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccentBright))
	b.WriteString(headerStyle.Render("Sprints"))
	b.WriteString("\n\n")

	if len(m.sprints) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSecondaryText)).
			Italic(true)
		b.WriteString(emptyStyle.Render("No sprints found"))
		return panelStyle(width, m.focus == FocusSprints).Render(b.String())
	}

	titleWidth := max(width-6, 10)
	for i, sprint := range m.sprints {
		title := truncate(sprint.Title, titleWidth)
		dates := fmt.Sprintf("%s → %s", orDash(sprint.StartDate), orDash(sprint.EndDate))

		if i == m.selectedSprint {
			selected := lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color(ColorAccentMain)).
				Bold(true).
				Padding(0, 1)
			b.WriteString(selected.Render(title + "\n" + mutedStyle().Render(dates)))
		} else {
			b.WriteString(" " + title + "\n " + mutedStyle().Render(dates))
		}
		b.WriteString("\n")
	}

	return panelStyle(width, m.focus == FocusSprints).Render(b.String())
}

func (m BoardModel) renderSprintDetails(width int) string {
	var b strings.Builder

	if len(m.sprints) == 0 {
		logoStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorAccentMain)).
			Bold(true).
			Align(lipgloss.Center).
			Width(width)
		b.WriteString(logoStyle.Render("truant"))
		return panelStyle(width, false).Render(b.String())
	}

	sprint := m.sprints[m.selectedSprint]

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorPrimaryText))
	b.WriteString(titleStyle.Render(sprint.Title))
	b.WriteString("\n")
	b.WriteString(mutedStyle().Render(fmt.Sprintf("Goal %s · Total %s",
		parser.FormatHours(sprint.GoalTime), parser.FormatHours(sprint.TotalTime))))
	b.WriteString("\n")
	if sprint.Description != "" {
		descStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSecondaryText)).
			Italic(true).
			Width(width - 2)
		b.WriteString(descStyle.Render(sprint.Description))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if len(sprint.Days) == 0 {
		b.WriteString(mutedStyle().Italic(true).Render("No days in this sprint"))
		return panelStyle(width, m.focus == FocusDays).Render(b.String())
	}

	now := m.now()
	for i, day := range sprint.Days {
		marker := "  "
		if m.focus == FocusDays && i == m.selectedDay {
			marker = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentMain)).Render("▶ ")
		}

		status, color := "-", ColorDisabledText
		if day.Status != nil {
			status, color = day.Status.Value, StatusColor(day.Status.Value)
		}

		b.WriteString(fmt.Sprintf("%s%s  %s  %s\n",
			marker,
			lipgloss.NewStyle().Bold(true).Render(day.Title),
			mutedStyle().Render(parser.FormatDate(day.Date, now)),
			lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(status)))
		b.WriteString(mutedStyle().Render(fmt.Sprintf("    %s / %s",
			parser.FormatHours(day.TotalTime), parser.FormatHours(day.GoalTime))))
		b.WriteString("\n")

		for _, event := range day.Events {
			b.WriteString("    • " + renderEvent(event) + "\n")
		}
	}

	return panelStyle(width, m.focus == FocusDays).Render(b.String())
}

func renderEvent(event tracker.EventView) string {
	var parts []string
	if event.StartTime != "" || event.EndTime != "" {
		parts = append(parts, mutedStyle().Render(orDash(event.StartTime)+"-"+orDash(event.EndTime)))
	}
	parts = append(parts, event.Title)
	if event.Truant != nil {
		parts = append(parts, lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorAccentBright)).
			Render("["+event.Truant.Title+"]"))
	}
	if event.Status != nil {
		parts = append(parts, lipgloss.NewStyle().
			Foreground(lipgloss.Color(StatusColor(event.Status.Value))).
			Render(event.Status.Value))
	}
	return strings.Join(parts, " ")
}

func (m BoardModel) renderHelpBar() string {
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Italic(true).
		Align(lipgloss.Center).
		Width(m.width)

	return helpStyle.Render("↑/↓ nav · tab switch panel · r reload · q/esc quit")
}

func panelStyle(width int, focused bool) lipgloss.Style {
	border := ColorBorder
	if focused {
		border = ColorAccentMain
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(border)).
		Width(width)
}

func mutedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
