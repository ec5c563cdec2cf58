package commands

import (
	"cmp"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/balkashynov/truant/internal/db"
	"github.com/balkashynov/truant/internal/models"
	"github.com/balkashynov/truant/internal/parser"
	"github.com/balkashynov/truant/internal/tui"
)

var truantCmd = &cobra.Command{
	Use:     "truant",
	Aliases: []string{"truants", "t"},
	Short:   "Manage truants",
}

var truantListCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List truants",
	Long:    "List truants, optionally narrowed by category, priority or status",
	Run: withDB(func(cmd *cobra.Command, args []string) {
		filter, err := truantFilter(cmd)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		truants, err := db.ListTruants(filter)
		if err != nil {
			fmt.Printf("Error fetching truants: %v\n", err)
			return
		}
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			_ = printJSON(truants)
			return
		}

		if len(truants) == 0 {
			fmt.Println("No truants found. Use 'truant truant add \"title @category\"' to create your first one.")
			return
		}

		fmt.Printf("%-4s %-40s %-18s %-10s %s\n", "ID", "TITLE", "CATEGORY", "PRIORITY", "STATUS")
		fmt.Println(strings.Repeat("-", 90))
		for _, t := range truants {
			fmt.Printf("%-4d %-40s %-18s %s %s\n",
				t.ID,
				truncate(t.Title, 40),
				truncate(t.Category.Title, 18),
				colored(fmt.Sprintf("%-10s", t.Priority.Value), tui.PriorityColor(t.Priority.Value)),
				colored(t.Status.Value, tui.StatusColor(t.Status.Value)))
		}
	}),
}

var truantShowCmd = &cobra.Command{
	Use:   "show [truant-id]",
	Short: "Show a truant and the events linked to it",
	Args:  cobra.ExactArgs(1),
	Run: withDB(func(cmd *cobra.Command, args []string) {
		id, err := parseID(args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		t, err := db.GetTruantByID(id)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		fmt.Printf("📌 #%d %s\n", t.ID, t.Title)
		fmt.Printf("Category: %s\n", t.Category.Title)
		fmt.Printf("Priority: %s\n", colored(t.Priority.Value, tui.PriorityColor(t.Priority.Value)))
		fmt.Printf("Status:   %s\n", colored(t.Status.Value, tui.StatusColor(t.Status.Value)))
		if t.Link != "" {
			fmt.Printf("Link:     %s\n", t.Link)
		}
		if t.Description != "" {
			fmt.Printf("Description:\n  %s\n", t.Description)
		}

		events, err := newService().TruantEvents(cmd.Context(), t.ID)
		if err != nil {
			fmt.Printf("Could not load events: %v\n", err)
			return
		}
		if len(events) == 0 {
			fmt.Println("No linked events")
			return
		}
		fmt.Println("Events:")
		for _, e := range events {
			printEventLine("  ", e)
		}
	}),
}

var truantAddCmd = &cobra.Command{
	Use:   "add [title with metadata]",
	Short: "Create a truant",
	Long: `Create a truant. Without arguments an interactive form opens.

Quick syntax:
  @category           category title (quote multi-word titles: @"Side projects")
  +priority           very-high, high, medium, low (also 4-1, urgent, hi, med, lo)
  ~status             new, in-progress, done (also todo, wip, finished)
  https://...         link

Examples:
  truant truant add "Renew passport @Personal +high ~new https://gov.example"
  truant truant add "Quarterly report @Work"
  truant truant add`,
	Run: withDB(func(cmd *cobra.Command, args []string) {
		var req *db.TruantRequest
		var err error
		if len(args) == 0 {
			req, err = truantFromForm("New truant", tui.TruantFormValues{})
		} else {
			req, err = truantFromQuickSyntax(strings.Join(args, " "))
		}
		if errors.Is(err, tui.ErrFormCancelled) {
			fmt.Println("Cancelled")
			return
		}
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		if description, _ := cmd.Flags().GetString("description"); description != "" {
			req.Description = description
		}

		t, err := db.CreateTruant(*req)
		if err != nil {
			fmt.Printf("Error creating truant: %v\n", err)
			return
		}
		fmt.Printf("✅ Created truant #%d: %s\n", t.ID, t.Title)
		fmt.Printf("Category: %s | Priority: %s | Status: %s\n", t.Category.Title, t.Priority.Value, t.Status.Value)
	}),
}

var truantEditCmd = &cobra.Command{
	Use:   "edit [truant-id]",
	Short: "Edit a truant",
	Long:  "Edit a truant. Without flags an interactive form opens with the current values.",
	Args:  cobra.ExactArgs(1),
	Run: withDB(func(cmd *cobra.Command, args []string) {
		id, err := parseID(args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		current, err := db.GetTruantByID(id)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		req := &db.TruantRequest{
			Title:       current.Title,
			Description: current.Description,
			CategoryID:  current.CategoryID,
			PriorityID:  current.PriorityID,
			StatusID:    current.StatusID,
			Link:        current.Link,
		}
		if !anyChanged(cmd, "title", "description", "link", "category", "priority", "status") {
			req, err = truantFromForm(fmt.Sprintf("Edit truant #%d", id), tui.TruantFormValues(*req))
		} else {
			err = applyTruantFlags(cmd, req)
		}
		if errors.Is(err, tui.ErrFormCancelled) {
			fmt.Println("Cancelled")
			return
		}
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		t, err := db.UpdateTruant(id, *req)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("✅ Updated truant #%d: %s\n", t.ID, t.Title)
	}),
}

var truantDoneCmd = &cobra.Command{
	Use:   "done [truant-id]",
	Short: "Mark a truant as done",
	Args:  cobra.ExactArgs(1),
	Run: withDB(func(cmd *cobra.Command, args []string) {
		id, err := parseID(args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		t, err := setTruantStatus(id, "done")
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("✅ Marked truant #%d as done: %s\n", t.ID, t.Title)
	}),
}

var truantRemoveCmd = &cobra.Command{
	Use:     "rm [truant-id]",
	Aliases: []string{"remove", "delete"},
	Short:   "Delete a truant and its event links",
	Long:    "Delete a truant. Its local event links go with it; the events stay in Notion.",
	Args:    cobra.ExactArgs(1),
	Run: withDB(func(cmd *cobra.Command, args []string) {
		id, err := parseID(args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if err := db.DeleteTruant(id); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("🗑️  Deleted truant #%d\n", id)
	}),
}

// truantFromQuickSyntax builds a request from "Title @category +priority ~status link".
// Priority defaults to medium and status to new; the category is required.
func truantFromQuickSyntax(input string) (*db.TruantRequest, error) {
	parsed := parser.ParseTruant(input)
	if len(parsed.Errors) > 0 {
		return nil, errors.New(strings.Join(parsed.Errors, "; "))
	}
	if parsed.Title == "" {
		return nil, errors.New("title is required")
	}
	if parsed.Category == "" {
		return nil, errors.New("category is required (add @category, see 'truant category ls')")
	}

	category, err := resolveCategory(parsed.Category)
	if err != nil {
		return nil, err
	}
	priority, err := resolvePriority(cmp.Or(parsed.Priority, "medium"))
	if err != nil {
		return nil, err
	}
	status, err := resolveStatus(cmp.Or(parsed.Status, "new"))
	if err != nil {
		return nil, err
	}

	return &db.TruantRequest{
		Title:      parsed.Title,
		CategoryID: category.ID,
		PriorityID: priority.ID,
		StatusID:   status.ID,
		Link:       parsed.Link,
	}, nil
}

func truantFromForm(heading string, values tui.TruantFormValues) (*db.TruantRequest, error) {
	opts, err := formOptions(heading)
	if err != nil {
		return nil, err
	}
	result, err := tui.RunTruantForm(opts, values)
	if err != nil {
		return nil, err
	}
	req := db.TruantRequest(*result)
	return &req, nil
}

// formOptions loads the lookup tables for the truant form; categories are
// indented by depth
func formOptions(heading string) (tui.TruantFormOptions, error) {
	opts := tui.TruantFormOptions{Heading: heading}

	nodes, err := db.CategoryTree()
	if err != nil {
		return opts, err
	}
	for _, n := range nodes {
		opts.Categories = append(opts.Categories, tui.Choice{
			Label: strings.Repeat("  ", n.Depth) + n.Title,
			ID:    n.ID,
		})
	}

	priorities, err := db.ListPriorities()
	if err != nil {
		return opts, err
	}
	for _, p := range priorities {
		opts.Priorities = append(opts.Priorities, tui.Choice{Label: p.Value, ID: p.ID})
	}

	statuses, err := db.ListStatuses()
	if err != nil {
		return opts, err
	}
	for _, s := range statuses {
		opts.Statuses = append(opts.Statuses, tui.Choice{Label: s.Value, ID: s.ID})
	}
	return opts, nil
}

// applyTruantFlags overwrites the fields whose flags were set
func applyTruantFlags(cmd *cobra.Command, req *db.TruantRequest) error {
	flags := cmd.Flags()
	if flags.Changed("title") {
		req.Title, _ = flags.GetString("title")
	}
	if flags.Changed("description") {
		req.Description, _ = flags.GetString("description")
	}
	if flags.Changed("link") {
		raw, _ := flags.GetString("link")
		link, err := parser.NormalizeLink(raw)
		if err != nil {
			return err
		}
		req.Link = link
	}
	if flags.Changed("category") {
		raw, _ := flags.GetString("category")
		category, err := resolveCategory(raw)
		if err != nil {
			return err
		}
		req.CategoryID = category.ID
	}
	if flags.Changed("priority") {
		raw, _ := flags.GetString("priority")
		priority, err := resolvePriority(raw)
		if err != nil {
			return err
		}
		req.PriorityID = priority.ID
	}
	if flags.Changed("status") {
		raw, _ := flags.GetString("status")
		status, err := resolveStatus(raw)
		if err != nil {
			return err
		}
		req.StatusID = status.ID
	}
	return nil
}

// truantFilter turns the ls flags into a store filter
func truantFilter(cmd *cobra.Command) (db.TruantFilter, error) {
	var filter db.TruantFilter
	if raw, _ := cmd.Flags().GetString("category"); raw != "" {
		category, err := resolveCategory(raw)
		if err != nil {
			return filter, err
		}
		filter.CategoryID = &category.ID
	}
	if raw, _ := cmd.Flags().GetString("priority"); raw != "" {
		priority, err := resolvePriority(raw)
		if err != nil {
			return filter, err
		}
		filter.PriorityID = &priority.ID
	}
	if raw, _ := cmd.Flags().GetString("status"); raw != "" {
		status, err := resolveStatus(raw)
		if err != nil {
			return filter, err
		}
		filter.StatusID = &status.ID
	}
	return filter, nil
}

func setTruantStatus(id uint, value string) (*models.Truant, error) {
	t, err := db.GetTruantByID(id)
	if err != nil {
		return nil, err
	}
	status, err := resolveStatus(value)
	if err != nil {
		return nil, err
	}
	return db.UpdateTruant(id, db.TruantRequest{
		Title:       t.Title,
		Description: t.Description,
		CategoryID:  t.CategoryID,
		PriorityID:  t.PriorityID,
		StatusID:    status.ID,
		Link:        t.Link,
	})
}

func anyChanged(cmd *cobra.Command, names ...string) bool {
	for _, name := range names {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

func colored(s, color string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(s)
}

func init() {
	truantListCmd.Flags().StringP("category", "c", "", "filter by category title or ID")
	truantListCmd.Flags().StringP("priority", "p", "", "filter by priority")
	truantListCmd.Flags().StringP("status", "s", "", "filter by status")
	truantListCmd.Flags().Bool("json", false, "print JSON")

	truantAddCmd.Flags().StringP("description", "d", "", "truant description")

	truantEditCmd.Flags().String("title", "", "new title")
	truantEditCmd.Flags().StringP("description", "d", "", "new description")
	truantEditCmd.Flags().String("link", "", "new link (empty to clear)")
	truantEditCmd.Flags().StringP("category", "c", "", "category title or ID")
	truantEditCmd.Flags().StringP("priority", "p", "", "priority")
	truantEditCmd.Flags().StringP("status", "s", "", "status")

	truantCmd.AddCommand(truantListCmd, truantShowCmd, truantAddCmd, truantEditCmd, truantDoneCmd, truantRemoveCmd)
}
