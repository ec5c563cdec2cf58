package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/truant/internal/db"
	"github.com/balkashynov/truant/internal/models"
	"github.com/balkashynov/truant/internal/tui"
)

var categoryCmd = &cobra.Command{
	Use:     "category",
	Aliases: []string{"categories", "cat"},
	Short:   "Manage truant categories",
}

var categoryListCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "Show the category tree",
	Run: withDB(func(cmd *cobra.Command, args []string) {
		nodes, err := db.CategoryTree()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if len(nodes) == 0 {
			fmt.Println("No categories yet. Use 'truant category add \"title\"' or 'truant seed'.")
			return
		}
		for _, line := range categoryLines(nodes) {
			fmt.Println(line)
		}
	}),
}

var categoryAddCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Create a category",
	Long: `Create a category, optionally under a parent.

Examples:
  truant category add "Work"
  truant category add "Side projects" --parent Work`,
	Args: cobra.MinimumNArgs(1),
	Run: withDB(func(cmd *cobra.Command, args []string) {
		parentID, err := parentFlag(cmd)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		c, err := db.CreateCategory(strings.Join(args, " "), parentID)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("✅ Created category #%d: %s\n", c.ID, c.Title)
	}),
}

var categoryEditCmd = &cobra.Command{
	Use:   "edit [category-id]",
	Short: "Rename or move a category",
	Long: `Rename or move a category. --parent "" moves it to the top level.
A category cannot be moved under itself or one of its descendants.`,
	Args: cobra.ExactArgs(1),
	Run: withDB(func(cmd *cobra.Command, args []string) {
		id, err := parseID(args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		current, err := db.GetCategory(id)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		title := current.Title
		if cmd.Flags().Changed("title") {
			title, _ = cmd.Flags().GetString("title")
		}
		parentID := current.ParentID
		if cmd.Flags().Changed("parent") {
			if parentID, err = parentFlag(cmd); err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
		}

		c, err := db.UpdateCategory(id, title, parentID)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("✅ Updated category #%d: %s\n", c.ID, c.Title)
	}),
}

var categoryRemoveCmd = &cobra.Command{
	Use:     "rm [category-id]",
	Aliases: []string{"remove", "delete"},
	Short:   "Delete a category that no truant uses",
	Args:    cobra.ExactArgs(1),
	Run: withDB(func(cmd *cobra.Command, args []string) {
		id, err := parseID(args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if err := db.DeleteCategory(id); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("🗑️  Deleted category #%d\n", id)
	}),
}

var priorityCmd = &cobra.Command{
	Use:     "priority",
	Aliases: []string{"priorities"},
	Short:   "Manage priorities (" + strings.Join(models.PriorityValues, ", ") + ")",
}

var priorityListCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List priorities",
	Run: withDB(func(cmd *cobra.Command, args []string) {
		priorities, err := db.ListPriorities()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if len(priorities) == 0 {
			fmt.Println("No priorities yet. Try 'truant seed'.")
			return
		}
		for _, p := range priorities {
			fmt.Printf("%-4d %s\n", p.ID, colored(p.Value, tui.PriorityColor(p.Value)))
		}
	}),
}

var priorityAddCmd = &cobra.Command{
	Use:   "add [value]",
	Short: "Create a priority",
	Args:  cobra.ExactArgs(1),
	Run: withDB(func(cmd *cobra.Command, args []string) {
		p, err := db.CreatePriority(args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("✅ Created priority #%d: %s\n", p.ID, p.Value)
	}),
}

var priorityEditCmd = &cobra.Command{
	Use:   "edit [priority-id] [value]",
	Short: "Change a priority value",
	Args:  cobra.ExactArgs(2),
	Run: withDB(func(cmd *cobra.Command, args []string) {
		id, err := parseID(args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		p, err := db.UpdatePriority(id, args[1])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("✅ Updated priority #%d: %s\n", p.ID, p.Value)
	}),
}

var priorityRemoveCmd = &cobra.Command{
	Use:     "rm [priority-id]",
	Aliases: []string{"remove", "delete"},
	Short:   "Delete a priority that no truant uses",
	Args:    cobra.ExactArgs(1),
	Run: withDB(func(cmd *cobra.Command, args []string) {
		id, err := parseID(args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if err := db.DeletePriority(id); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("🗑️  Deleted priority #%d\n", id)
	}),
}

var statusCmd = &cobra.Command{
	Use:     "status",
	Aliases: []string{"statuses"},
	Short:   "Manage statuses (" + strings.Join(models.StatusValues, ", ") + ")",
}

var statusListCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List statuses",
	Run: withDB(func(cmd *cobra.Command, args []string) {
		statuses, err := db.ListStatuses()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if len(statuses) == 0 {
			fmt.Println("No statuses yet. Try 'truant seed'.")
			return
		}
		for _, s := range statuses {
			fmt.Printf("%-4d %s\n", s.ID, colored(s.Value, tui.StatusColor(s.Value)))
		}
	}),
}

var statusAddCmd = &cobra.Command{
	Use:   "add [value]",
	Short: "Create a status",
	Args:  cobra.ExactArgs(1),
	Run: withDB(func(cmd *cobra.Command, args []string) {
		s, err := db.CreateStatus(args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("✅ Created status #%d: %s\n", s.ID, s.Value)
	}),
}

var statusEditCmd = &cobra.Command{
	Use:   "edit [status-id] [value]",
	Short: "Change a status value",
	Args:  cobra.ExactArgs(2),
	Run: withDB(func(cmd *cobra.Command, args []string) {
		id, err := parseID(args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		s, err := db.UpdateStatus(id, args[1])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("✅ Updated status #%d: %s\n", s.ID, s.Value)
	}),
}

var statusRemoveCmd = &cobra.Command{
	Use:     "rm [status-id]",
	Aliases: []string{"remove", "delete"},
	Short:   "Delete a status that no truant uses",
	Args:    cobra.ExactArgs(1),
	Run: withDB(func(cmd *cobra.Command, args []string) {
		id, err := parseID(args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if err := db.DeleteStatus(id); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("🗑️  Deleted status #%d\n", id)
	}),
}

// parentFlag resolves --parent; empty means top level
func parentFlag(cmd *cobra.Command) (*uint, error) {
	raw, _ := cmd.Flags().GetString("parent")
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	parent, err := resolveCategory(raw)
	if err != nil {
		return nil, err
	}
	return &parent.ID, nil
}

// categoryLines renders the tree with one indent step per level
func categoryLines(nodes []db.CategoryNode) []string {
	lines := make([]string, 0, len(nodes))
	for _, n := range nodes {
		prefix := ""
		if n.Depth > 0 {
			prefix = strings.Repeat("   ", n.Depth-1) + "└─ "
		}
		lines = append(lines, fmt.Sprintf("%-4d %s%s", n.ID, prefix, n.Title))
	}
	return lines
}

func init() {
	categoryAddCmd.Flags().String("parent", "", "parent category title or ID")
	categoryEditCmd.Flags().String("title", "", "new title")
	categoryEditCmd.Flags().String("parent", "", "new parent title or ID (empty for top level)")

	categoryCmd.AddCommand(categoryListCmd, categoryAddCmd, categoryEditCmd, categoryRemoveCmd)
	priorityCmd.AddCommand(priorityListCmd, priorityAddCmd, priorityEditCmd, priorityRemoveCmd)
	statusCmd.AddCommand(statusListCmd, statusAddCmd, statusEditCmd, statusRemoveCmd)
}
