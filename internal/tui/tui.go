package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/balkashynov/truant/internal/tracker"
)

// RunBoard starts the interactive sprint board
func RunBoard(load SprintLoader) error {
	p := tea.NewProgram(NewBoardModel(load), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// RunDayTimer runs the day timer. It returns the tracked hours and whether
// the user chose to save them.
func RunDayTimer(day tracker.DayView) (float64, bool, error) {
	p := tea.NewProgram(NewDayTimerModel(day), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return 0, false, err
	}

	m, ok := finalModel.(DayTimerModel)
	if !ok {
		return 0, false, fmt.Errorf("unexpected timer state %T", finalModel)
	}
	return m.TrackedHours(), m.Saved(), nil
}
