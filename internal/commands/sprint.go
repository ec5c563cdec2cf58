package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/truant/internal/notion"
	"github.com/balkashynov/truant/internal/parser"
	"github.com/balkashynov/truant/internal/tracker"
)

var sprintCmd = &cobra.Command{
	Use:     "sprint",
	Aliases: []string{"sprints", "s"},
	Short:   "Manage sprints",
}

var sprintListCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List sprints",
	Long:    "List every sprint. With --details each sprint is expanded with its days and their events.",
	Run: func(cmd *cobra.Command, args []string) {
		details, _ := cmd.Flags().GetBool("details")
		asJSON, _ := cmd.Flags().GetBool("json")

		if !details {
			sprints, err := newMapper().ListSprints(cmd.Context())
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			if asJSON {
				_ = printJSON(sprints)
				return
			}
			printSprints(sprints)
			return
		}

		if err := initDB(); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		views, err := newService().Sprints(cmd.Context())
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if asJSON {
			_ = printJSON(views)
			return
		}
		for _, v := range views {
			printSprintView(v)
		}
	},
}

var sprintShowCmd = &cobra.Command{
	Use:   "show [sprint-id]",
	Short: "Show a sprint with its days and events",
	Args:  cobra.ExactArgs(1),
	Run: withDB(func(cmd *cobra.Command, args []string) {
		view, err := newService().Sprint(cmd.Context(), args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			_ = printJSON(view)
			return
		}
		printSprintView(*view)
	}),
}

var sprintAddCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Create a sprint",
	Long: `Create a sprint.

Examples:
  truant sprint add "Q1 Planning" --start 2024-01-01 --end 2024-03-31 --goal 120
  truant sprint add "Week 12" --start today --end +6d`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		in := notion.SprintInput{Title: strings.Join(args, " ")}
		if err := applySprintFlags(cmd, &in); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		sprint, err := newMapper().CreateSprint(cmd.Context(), in)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("✅ Created sprint: %s\n", sprint.Title)
		fmt.Printf("ID: %s\n", sprint.ID)
	},
}

var sprintEditCmd = &cobra.Command{
	Use:   "edit [sprint-id]",
	Short: "Edit a sprint",
	Long:  "Edit a sprint. Only the flags you pass change; everything else keeps its current value.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		mapper := newMapper()
		current, err := mapper.GetSprintRecord(cmd.Context(), args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		in := notion.SprintInput{
			Title:       current.Title,
			GoalTime:    valueOrZero(current.GoalTime),
			TotalTime:   valueOrZero(current.TotalTime),
			StartDate:   current.StartDate,
			EndDate:     current.EndDate,
			Description: current.Description,
			DayIDs:      current.DayIDs,
		}
		if err := applySprintFlags(cmd, &in); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		sprint, err := mapper.UpdateSprint(cmd.Context(), args[0], in)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("✅ Updated sprint: %s\n", sprint.Title)
	},
}

var sprintRemoveCmd = &cobra.Command{
	Use:     "rm [sprint-id]",
	Aliases: []string{"remove", "archive"},
	Short:   "Archive a sprint in Notion",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := newMapper().ArchiveSprint(cmd.Context(), args[0]); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("🗑️  Archived sprint %s\n", args[0])
	},
}

// applySprintFlags overwrites the fields whose flags were set
func applySprintFlags(cmd *cobra.Command, in *notion.SprintInput) error {
	flags := cmd.Flags()
	if flags.Changed("title") {
		in.Title, _ = flags.GetString("title")
	}
	if flags.Changed("description") {
		in.Description, _ = flags.GetString("description")
	}
	if flags.Changed("goal") {
		hours, err := hoursFlag(cmd, "goal")
		if err != nil {
			return err
		}
		in.GoalTime = hours
	}
	if flags.Changed("total") {
		hours, err := hoursFlag(cmd, "total")
		if err != nil {
			return err
		}
		in.TotalTime = hours
	}
	if flags.Changed("start") {
		date, err := dateFlag(cmd, "start")
		if err != nil {
			return err
		}
		in.StartDate = date
	}
	if flags.Changed("end") {
		date, err := dateFlag(cmd, "end")
		if err != nil {
			return err
		}
		in.EndDate = date
	}
	if flags.Changed("days") {
		in.DayIDs, _ = flags.GetStringSlice("days")
	}
	return nil
}

func printSprints(sprints []notion.Sprint) {
	if len(sprints) == 0 {
		fmt.Println("No sprints found. Use 'truant sprint add \"title\"' to create one.")
		return
	}

	fmt.Printf("%-36s %-28s %-12s %-12s %8s %8s %s\n", "ID", "TITLE", "START", "END", "GOAL", "TOTAL", "DAYS")
	fmt.Println(strings.Repeat("-", 116))
	for _, s := range sprints {
		fmt.Printf("%-36s %-28s %-12s %-12s %8s %8s %d\n",
			s.ID,
			truncate(s.Title, 28),
			orDash(s.StartDate),
			orDash(s.EndDate),
			parser.FormatHours(s.GoalTime),
			parser.FormatHours(s.TotalTime),
			len(s.DayIDs))
	}
}

func printSprintView(v tracker.SprintView) {
	fmt.Printf("🏁 %s  (%s)\n", v.Title, v.ID)
	fmt.Printf("   %s → %s   goal %s, tracked %s\n",
		parser.FormatDate(v.StartDate, now()),
		parser.FormatDate(v.EndDate, now()),
		parser.FormatHours(v.GoalTime),
		parser.FormatHours(v.TotalTime))
	if v.Description != "" {
		fmt.Printf("   %s\n", v.Description)
	}
	if len(v.Days) == 0 {
		fmt.Println("   No days")
	}
	for _, d := range v.Days {
		printDayLine("   ", d)
		for _, e := range d.Events {
			printEventLine("      ", e)
		}
	}
	fmt.Println()
}

func addSprintFlags(c *cobra.Command) {
	c.Flags().String("description", "", "sprint description")
	c.Flags().String("goal", "", "goal time in hours (e.g. 40, 1h30m)")
	c.Flags().String("total", "", "tracked time in hours")
	c.Flags().String("start", "", "start date (YYYY-MM-DD, dd/mm/yyyy, today, +3d, next monday)")
	c.Flags().String("end", "", "end date")
	c.Flags().StringSlice("days", nil, "day page IDs")
}

func init() {
	sprintListCmd.Flags().Bool("details", false, "include days and events")
	sprintListCmd.Flags().Bool("json", false, "print JSON")
	sprintShowCmd.Flags().Bool("json", false, "print JSON")

	addSprintFlags(sprintAddCmd)
	addSprintFlags(sprintEditCmd)
	sprintEditCmd.Flags().String("title", "", "new title")

	sprintCmd.AddCommand(sprintListCmd, sprintShowCmd, sprintAddCmd, sprintEditCmd, sprintRemoveCmd)
}
