package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/balkashynov/truant/internal/db"
	"github.com/balkashynov/truant/internal/models"
	"github.com/balkashynov/truant/internal/notion"
	"github.com/balkashynov/truant/internal/parser"
)

var errNoResolve = errors.New("no match")

var now = time.Now

// parseID parses a local row ID given on the command line
func parseID(arg string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimPrefix(arg, "#"), 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id '%s'", arg)
	}
	return uint(id), nil
}

// parseFilter reads "property=value"
func parseFilter(raw string) (*notion.Filter, error) {
	if raw == "" {
		return nil, nil
	}
	prop, value, ok := strings.Cut(raw, "=")
	prop = strings.TrimSpace(prop)
	if !ok || prop == "" {
		return nil, fmt.Errorf("invalid filter '%s' (use property=value)", raw)
	}
	return &notion.Filter{Property: prop, Value: strings.TrimSpace(value)}, nil
}

// resolveStatus accepts a status value (or alias) or its ID
func resolveStatus(input string) (*models.Status, error) {
	value, ok := parser.NormalizeStatus(input)
	if !ok {
		if id, err := parseID(input); err == nil {
			return db.GetStatus(id)
		}
		return nil, fmt.Errorf("invalid status '%s'. Use: %s", input, strings.Join(models.StatusValues, ", "))
	}
	statuses, err := db.ListStatuses()
	if err != nil {
		return nil, err
	}
	for _, s := range statuses {
		if s.Value == value {
			return &s, nil
		}
	}
	return nil, fmt.Errorf("status '%s': %w (try 'truant seed')", value, errNoResolve)
}

// resolvePriority accepts a priority value (or alias) or its ID. The
// shorthands 1-4 are priorities, not IDs.
func resolvePriority(input string) (*models.Priority, error) {
	value, ok := parser.NormalizePriority(input)
	if !ok {
		if id, err := parseID(input); err == nil {
			return db.GetPriority(id)
		}
		return nil, fmt.Errorf("invalid priority '%s'. Use: %s", input, strings.Join(models.PriorityValues, ", "))
	}
	priorities, err := db.ListPriorities()
	if err != nil {
		return nil, err
	}
	for _, p := range priorities {
		if p.Value == value {
			return &p, nil
		}
	}
	return nil, fmt.Errorf("priority '%s': %w (try 'truant seed')", value, errNoResolve)
}

// resolveCategory accepts a category title (case-insensitive) or its ID
func resolveCategory(input string) (*models.Category, error) {
	if id, err := parseID(input); err == nil {
		return db.GetCategory(id)
	}
	categories, err := db.ListCategories()
	if err != nil {
		return nil, err
	}
	for _, c := range categories {
		if strings.EqualFold(c.Title, strings.TrimSpace(input)) {
			return &c, nil
		}
	}
	return nil, fmt.Errorf("category '%s': %w", input, errNoResolve)
}

// statusRef resolves an optional --status flag into a reference
func statusRef(cmd *cobra.Command) (*uint, error) {
	raw, _ := cmd.Flags().GetString("status")
	if raw == "" {
		return nil, nil
	}
	status, err := resolveStatus(raw)
	if err != nil {
		return nil, err
	}
	return &status.ID, nil
}

// hoursFlag parses a flag holding hours ("1.5", "90m")
func hoursFlag(cmd *cobra.Command, name string) (float64, error) {
	raw, _ := cmd.Flags().GetString(name)
	if raw == "" {
		return 0, nil
	}
	hours, err := parser.ParseHours(raw)
	if err != nil {
		return 0, fmt.Errorf("--%s: %w", name, err)
	}
	return hours, nil
}

// dateFlag parses a flag holding a date in any accepted form
func dateFlag(cmd *cobra.Command, name string) (string, error) {
	raw, _ := cmd.Flags().GetString(name)
	date, err := parser.ParseDate(raw, now())
	if err != nil {
		return "", fmt.Errorf("--%s: %w", name, err)
	}
	return date, nil
}

func valueOrZero(n *float64) float64 {
	if n == nil {
		return 0
	}
	return *n
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-3]) + "..."
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func statusValue(s *models.Status) string {
	if s == nil {
		return "-"
	}
	return s.Value
}
