package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balkashynov/truant/internal/models"
	"github.com/balkashynov/truant/internal/notion"
	"github.com/balkashynov/truant/internal/tracker"
)

func sampleSprints() []tracker.SprintView {
	return []tracker.SprintView{
		{
			Sprint: notion.Sprint{ID: "s1", Title: "Q1 Planning", StartDate: "2024-01-01"},
			Days: []tracker.DayView{
				{
					Day:    notion.Day{ID: "d1", Title: "Monday", Date: "2024-01-01"},
					Status: &models.Status{ID: 1, Value: "done"},
					Events: []tracker.EventView{
						{Event: notion.Event{ID: "e1", Title: "Kickoff"}},
					},
				},
				{Day: notion.Day{ID: "d2", Title: "Tuesday"}},
			},
		},
		{Sprint: notion.Sprint{ID: "s2", Title: "Q2 Planning"}},
	}
}

func update(t *testing.T, m BoardModel, msg tea.Msg) BoardModel {
	t.Helper()
	next, _ := m.Update(msg)
	board, ok := next.(BoardModel)
	require.True(t, ok)
	return board
}

func key(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestBoardLoads(t *testing.T) {
	calls := 0
	m := NewBoardModel(func() ([]tracker.SprintView, error) {
		calls++
		return sampleSprints(), nil
	})
	assert.True(t, m.loading)

	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Contains(t, m.View(), "Loading sprints")

	m = update(t, m, m.fetch())
	assert.Equal(t, 1, calls)
	assert.False(t, m.loading)
	require.Len(t, m.sprints, 2)

	view := m.View()
	assert.Contains(t, view, "Q1 Planning")
	assert.Contains(t, view, "Monday")
	assert.Contains(t, view, "Kickoff")
}

func TestBoardShowsLoadError(t *testing.T) {
	m := NewBoardModel(func() ([]tracker.SprintView, error) {
		return nil, errors.New("missing Notion secret or database ID")
	})
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	m = update(t, m, m.fetch())

	assert.Contains(t, m.View(), "missing Notion secret or database ID")
}

func TestBoardNavigation(t *testing.T) {
	m := NewBoardModel(nil)
	m = update(t, m, sprintsLoadedMsg{sprints: sampleSprints()})

	// Days panel of the first sprint
	m = update(t, m, key("tab"))
	assert.Equal(t, FocusDays, m.focus)
	m = update(t, m, key("down"))
	m = update(t, m, key("down"))
	assert.Equal(t, 1, m.selectedDay)

	// Back to sprints; moving resets the day selection
	m = update(t, m, key("tab"))
	m = update(t, m, key("j"))
	assert.Equal(t, 1, m.selectedSprint)
	assert.Equal(t, 0, m.selectedDay)
	m = update(t, m, key("j"))
	assert.Equal(t, 1, m.selectedSprint)

	// The second sprint has no days, so focus stays on the list
	m = update(t, m, key("tab"))
	assert.Equal(t, FocusSprints, m.focus)

	m = update(t, m, key("up"))
	assert.Equal(t, 0, m.selectedSprint)
}

func TestBoardReloadKeepsSelectionInRange(t *testing.T) {
	m := NewBoardModel(nil)
	m = update(t, m, sprintsLoadedMsg{sprints: sampleSprints()})
	m = update(t, m, key("j"))
	require.Equal(t, 1, m.selectedSprint)

	m = update(t, m, sprintsLoadedMsg{sprints: sampleSprints()[:1]})
	assert.Equal(t, 0, m.selectedSprint)

	m = update(t, m, sprintsLoadedMsg{sprints: nil})
	assert.Equal(t, 0, m.selectedSprint)
	m = update(t, m, key("j"))
	assert.Equal(t, 0, m.selectedSprint)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "Quart...", truncate("Quarterly planning", 8))
	assert.Equal(t, "Qu", truncate("Quarterly", 2))
}
