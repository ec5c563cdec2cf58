package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/truant/internal/parser"
	"github.com/balkashynov/truant/internal/tracker"
)

// DayTimerModel tracks time spent on a day and shows progress toward its
// goal
type DayTimerModel struct {
	width  int
	height int
	day    tracker.DayView

	startedAt time.Time
	elapsed   time.Duration
	now       func() time.Time

	progress       progress.Model
	timerAnimation int

	stopping bool // s: stop and add the tracked time to the day
	exiting  bool // esc/q: leave without saving
}

// timerTickMsg is sent every second to update the timer
type timerTickMsg struct{}

// animationTickMsg is sent for the header animation
type animationTickMsg struct{}

func NewDayTimerModel(day tracker.DayView) DayTimerModel {
	return DayTimerModel{
		day:       day,
		startedAt: time.Now(),
		now:       time.Now,
		progress:  progress.New(progress.WithGradient(ColorAccentMain, ColorAccentBright)),
	}
}

func (m DayTimerModel) Init() tea.Cmd {
	return tea.Batch(timerTick(), animationTick())
}

func timerTick() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return timerTickMsg{} })
}

func animationTick() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(time.Time) tea.Msg { return animationTickMsg{} })
}

func (m DayTimerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case timerTickMsg:
		m.elapsed = m.now().Sub(m.startedAt)
		if m.done() {
			return m, nil
		}
		return m, timerTick()

	case animationTickMsg:
		m.timerAnimation = (m.timerAnimation + 1) % 4
		if m.done() {
			return m, nil
		}
		return m, animationTick()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = max(min(msg.Width-10, 60), 10)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "s", "S":
			m.elapsed = m.now().Sub(m.startedAt)
			m.stopping = true
			return m, tea.Quit
		case "ctrl+c", "esc", "q":
			m.exiting = true
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m DayTimerModel) done() bool {
	return m.stopping || m.exiting
}

// Saved reports whether the user stopped the timer to keep the time
func (m DayTimerModel) Saved() bool {
	return m.stopping
}

// TrackedHours is the elapsed time in hours
func (m DayTimerModel) TrackedHours() float64 {
	return m.elapsed.Hours()
}

// Ratio is the day's total (including the running timer) over its goal,
// capped at 1. Days without a goal report 0.
func (m DayTimerModel) Ratio() float64 {
	if m.day.GoalTime == nil || *m.day.GoalTime <= 0 {
		return 0
	}
	total := m.elapsed.Hours()
	if m.day.TotalTime != nil {
		total += *m.day.TotalTime
	}
	return min(total / *m.day.GoalTime, 1)
}

func (m DayTimerModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var components []string
	center := lipgloss.NewStyle().Align(lipgloss.Center).Width(m.width)

	animChars := []string{"⏱", "⏲", "⏱", "⏲"}
	animChar := animChars[m.timerAnimation]
	header := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentBright)).
		Bold(true).
		Render(fmt.Sprintf("%s  TRACKING %s  %s", animChar, strings.ToUpper(m.day.Title), animChar))
	components = append(components, center.Render(header))

	for _, line := range strings.Split(renderBigClock(m.elapsed), "\n") {
		components = append(components, center.Render(line))
	}

	goal := parser.FormatHours(m.day.GoalTime)
	total := parser.FormatHours(m.day.TotalTime)
	summary := fmt.Sprintf("Total %s + %s tracked · Goal %s", total, formatElapsed(m.elapsed), goal)
	components = append(components, center.Render(mutedStyle().Render(summary)))

	if m.day.GoalTime != nil && *m.day.GoalTime > 0 {
		components = append(components, center.Render(m.progress.ViewAs(m.Ratio())))
	}

	started := fmt.Sprintf("Started at %s", m.startedAt.Format("15:04:05"))
	components = append(components, center.Render(mutedStyle().Italic(true).Render(started)))

	content := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height-2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(strings.Join(components, "\n"))

	return lipgloss.JoinVertical(lipgloss.Left, content, m.renderHelpBar())
}

func (m DayTimerModel) renderHelpBar() string {
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Italic(true).
		Align(lipgloss.Center).
		Width(m.width)

	return helpStyle.Render("s stop & save · esc/q discard · ctrl+c quit")
}

// 5-line glyphs for the clock face
var clockDigits = map[rune][5]string{
	'0': {" ███ ", "█   █", "█   █", "█   █", " ███ "},
	'1': {"  █  ", " ██  ", "  █  ", "  █  ", "█████"},
	'2': {" ███ ", "█   █", "   █ ", "  █  ", "█████"},
	'3': {" ███ ", "█   █", "  ██ ", "█   █", " ███ "},
	'4': {"█   █", "█   █", "█████", "    █", "    █"},
	'5': {"█████", "█    ", "████ ", "    █", "████ "},
	'6': {" ███ ", "█    ", "████ ", "█   █", " ███ "},
	'7': {"█████", "    █", "   █ ", "  █  ", " █   "},
	'8': {" ███ ", "█   █", " ███ ", "█   █", " ███ "},
	'9': {" ███ ", "█   █", " ████", "    █", " ███ "},
	':': {"     ", "  █  ", "     ", "  █  ", "     "},
}

func renderBigClock(d time.Duration) string {
	var lines [5]strings.Builder
	for _, char := range clockText(d) {
		glyph := clockDigits[char]
		for i := range lines {
			lines[i].WriteString(glyph[i])
			lines[i].WriteString(" ")
		}
	}

	clockStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentBright)).
		Bold(true)

	rendered := make([]string, len(lines))
	for i := range lines {
		rendered[i] = clockStyle.Render(lines[i].String())
	}
	return strings.Join(rendered, "\n")
}

// clockText is MM:SS, or HH:MM:SS once an hour has passed
func clockText(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

func formatElapsed(d time.Duration) string {
	switch {
	case d.Hours() >= 1:
		return fmt.Sprintf("%.1fh", d.Hours())
	case d.Minutes() >= 1:
		return fmt.Sprintf("%.0fm", d.Minutes())
	default:
		return fmt.Sprintf("%.0fs", d.Seconds())
	}
}
