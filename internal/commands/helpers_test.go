package commands

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balkashynov/truant/internal/db"
	"github.com/balkashynov/truant/internal/notion"
)

func setupDB(t *testing.T) {
	t.Helper()
	require.NoError(t, db.Initialize(filepath.Join(t.TempDir(), "truant.db")))
	require.NoError(t, db.Seed())
	t.Cleanup(func() { _ = db.Close() })
}

func fixedNow(t *testing.T) {
	t.Helper()
	prev := now
	now = func() time.Time { return time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { now = prev })
}

// flagged returns a throwaway command with the given flags parsed
func flagged(t *testing.T, register func(*cobra.Command), args ...string) *cobra.Command {
	t.Helper()
	c := &cobra.Command{Use: "test"}
	register(c)
	require.NoError(t, c.ParseFlags(args))
	return c
}

func padID(id uint) string {
	return fmt.Sprintf("%-4d ", id)
}

func TestParseID(t *testing.T) {
	id, err := parseID("42")
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)

	id, err = parseID("#7")
	require.NoError(t, err)
	assert.Equal(t, uint(7), id)

	for _, bad := range []string{"", "0", "-1", "abc", "1.5"} {
		_, err := parseID(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseFilter(t *testing.T) {
	f, err := parseFilter("")
	require.NoError(t, err)
	assert.Nil(t, f)

	f, err = parseFilter(" report = all good ")
	require.NoError(t, err)
	assert.Equal(t, &notion.Filter{Property: "report", Value: "all good"}, f)

	f, err = parseFilter("title=a=b")
	require.NoError(t, err)
	assert.Equal(t, "a=b", f.Value)

	_, err = parseFilter("report")
	assert.Error(t, err)
	_, err = parseFilter("=x")
	assert.Error(t, err)
}

func TestApplySprintFlagsOnlyTouchesChanged(t *testing.T) {
	fixedNow(t)
	cmd := flagged(t, addSprintFlags, "--goal", "1h30m", "--end", "+6d")

	in := notion.SprintInput{
		Title:       "Q1 Planning",
		GoalTime:    120,
		TotalTime:   12.5,
		StartDate:   "2024-01-01",
		EndDate:     "2024-03-31",
		Description: "keep me",
		DayIDs:      []string{"d1"},
	}
	require.NoError(t, applySprintFlags(cmd, &in))

	assert.Equal(t, "Q1 Planning", in.Title)
	assert.Equal(t, 1.5, in.GoalTime)
	assert.Equal(t, 12.5, in.TotalTime)
	assert.Equal(t, "2024-01-01", in.StartDate)
	assert.Equal(t, "2024-01-21", in.EndDate)
	assert.Equal(t, "keep me", in.Description)
	assert.Equal(t, []string{"d1"}, in.DayIDs)
}

func TestApplySprintFlagsRejectsBadInput(t *testing.T) {
	fixedNow(t)

	in := notion.SprintInput{}
	assert.Error(t, applySprintFlags(flagged(t, addSprintFlags, "--goal", "lots"), &in))
	assert.Error(t, applySprintFlags(flagged(t, addSprintFlags, "--start", "32/01/2024"), &in))
	assert.Error(t, applySprintFlags(flagged(t, addSprintFlags, "--total", "-2"), &in))
}

func TestApplyDayFlagsResolvesStatus(t *testing.T) {
	setupDB(t)
	fixedNow(t)

	in := dayInput(&notion.Day{Title: "Monday", Date: "2024-01-15", EventIDs: []string{"e1"}})
	require.NoError(t, applyDayFlags(flagged(t, addDayFlags, "--status", "wip", "--date", "today", "--total", "2"), &in))

	status, err := resolveStatus("in-progress")
	require.NoError(t, err)
	require.NotNil(t, in.StatusID)
	assert.Equal(t, status.ID, *in.StatusID)
	assert.Equal(t, "2024-01-15", in.Date)
	assert.Equal(t, 2.0, in.TotalTime)
	assert.Equal(t, []string{"e1"}, in.EventIDs)

	assert.Error(t, applyDayFlags(flagged(t, addDayFlags, "--status", "blocked"), &in))
}

func TestApplyEventFlags(t *testing.T) {
	truantID := uint(3)
	in := notion.EventInput{Title: "Standup", TruantID: &truantID, Weight: 1}

	require.NoError(t, applyEventFlags(flagged(t, addEventFlags, "--start", "9:05", "--time-taken", "45m", "--weight", "2.5"), &in))
	assert.Equal(t, "09:05", in.StartTime)
	assert.Equal(t, 2.5, in.Weight)
	require.NotNil(t, in.TimeTaken)
	assert.Equal(t, 0.75, *in.TimeTaken)
	assert.Equal(t, &truantID, in.TruantID)

	// --truant 0 drops the link
	require.NoError(t, applyEventFlags(flagged(t, addEventFlags, "--truant", "0"), &in))
	assert.Nil(t, in.TruantID)

	assert.Error(t, applyEventFlags(flagged(t, addEventFlags, "--end", "25:00"), &in))
	assert.Error(t, applyEventFlags(flagged(t, addEventFlags, "--weight", "heavy"), &in))
}

func TestTruantFromQuickSyntax(t *testing.T) {
	setupDB(t)

	req, err := truantFromQuickSyntax("Renew passport @personal +hi ~wip https://gov.example/renew")
	require.NoError(t, err)
	assert.Equal(t, "Renew passport", req.Title)
	assert.Equal(t, "https://gov.example/renew", req.Link)

	created, err := db.CreateTruant(*req)
	require.NoError(t, err)
	assert.Equal(t, "Personal", created.Category.Title)
	assert.Equal(t, "high", created.Priority.Value)
	assert.Equal(t, "in-progress", created.Status.Value)

	// Defaults
	req, err = truantFromQuickSyntax("Call mum @Family")
	require.NoError(t, err)
	created, err = db.CreateTruant(*req)
	require.NoError(t, err)
	assert.Equal(t, "medium", created.Priority.Value)
	assert.Equal(t, "new", created.Status.Value)

	tests := []struct {
		name  string
		input string
	}{
		{"missing category", "Call mum"},
		{"unknown category", "Call mum @Nowhere"},
		{"bad priority", "Call mum @Family +whenever"},
		{"missing title", "@Family +high"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := truantFromQuickSyntax(tt.input)
			assert.Error(t, err)
		})
	}
}

func TestSetTruantStatus(t *testing.T) {
	setupDB(t)

	truants, err := db.ListTruants(db.TruantFilter{})
	require.NoError(t, err)
	require.NotEmpty(t, truants)

	done, err := setTruantStatus(truants[0].ID, "done")
	require.NoError(t, err)
	assert.Equal(t, "done", done.Status.Value)
	assert.Equal(t, truants[0].Title, done.Title)
	assert.Equal(t, truants[0].CategoryID, done.CategoryID)

	_, err = setTruantStatus(9999, "done")
	assert.ErrorIs(t, err, db.ErrNotFound)
}

func TestResolveLookupsByValueOrID(t *testing.T) {
	setupDB(t)

	byValue, err := resolvePriority("urgent")
	require.NoError(t, err)
	assert.Equal(t, "very-high", byValue.Value)

	// Shorthands win over IDs
	byShorthand, err := resolvePriority("1")
	require.NoError(t, err)
	assert.Equal(t, "low", byShorthand.Value)

	byID, err := resolvePriority(fmt.Sprintf("#%d", byValue.ID))
	require.NoError(t, err)
	assert.Equal(t, byValue.ID, byID.ID)

	category, err := resolveCategory("  work ")
	require.NoError(t, err)
	assert.Equal(t, "Work", category.Title)

	_, err = resolveCategory("Holidays")
	assert.ErrorIs(t, err, errNoResolve)

	_, err = resolveStatus("9999")
	assert.ErrorIs(t, err, db.ErrNotFound)
}

func TestFormOptionsIndentsCategories(t *testing.T) {
	setupDB(t)

	opts, err := formOptions("New truant")
	require.NoError(t, err)
	assert.Equal(t, "New truant", opts.Heading)
	require.Len(t, opts.Categories, 6)
	assert.Equal(t, "Work", opts.Categories[0].Label)
	assert.Equal(t, "  Projects", opts.Categories[1].Label)
	assert.Len(t, opts.Priorities, 4)
	assert.Len(t, opts.Statuses, 3)
}

func TestCategoryLines(t *testing.T) {
	setupDB(t)

	root, err := db.CreateCategory("Side projects", nil)
	require.NoError(t, err)
	child, err := db.CreateCategory("Games", &root.ID)
	require.NoError(t, err)
	leaf, err := db.CreateCategory("Roguelike", &child.ID)
	require.NoError(t, err)

	nodes, err := db.CategoryTree()
	require.NoError(t, err)
	lines := categoryLines(nodes)

	assert.Contains(t, lines, padID(root.ID)+"Side projects")
	assert.Contains(t, lines, padID(child.ID)+"└─ Games")
	assert.Contains(t, lines, padID(leaf.ID)+"   └─ Roguelike")
}

func TestAnyChangedIgnoresOtherFlags(t *testing.T) {
	cmd := flagged(t, func(c *cobra.Command) {
		c.Flags().String("title", "", "")
		c.Flags().Bool("debug", false, "")
	}, "--debug")
	assert.False(t, anyChanged(cmd, "title", "status"))

	cmd = flagged(t, func(c *cobra.Command) {
		c.Flags().String("title", "", "")
	}, "--title", "x")
	assert.True(t, anyChanged(cmd, "title", "status"))
}
