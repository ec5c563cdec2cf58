package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/balkashynov/truant/internal/logger"
	"github.com/balkashynov/truant/internal/notion"
	"github.com/balkashynov/truant/internal/parser"
	"github.com/balkashynov/truant/internal/tracker"
	"github.com/balkashynov/truant/internal/tui"
)

var dayCmd = &cobra.Command{
	Use:     "day",
	Aliases: []string{"days", "d"},
	Short:   "Manage days",
}

var dayListCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List days, one page at a time",
	Long: `List days one page at a time. The cursor printed after the list fetches
the next page.

Examples:
  truant day ls --limit 20
  truant day ls --filter report=done --events
  truant day ls --cursor <next-cursor>`,
	Run: withDB(func(cmd *cobra.Command, args []string) {
		limit, _ := cmd.Flags().GetInt("limit")
		cursor, _ := cmd.Flags().GetString("cursor")
		rawFilter, _ := cmd.Flags().GetString("filter")
		withEvents, _ := cmd.Flags().GetBool("events")

		filter, err := parseFilter(rawFilter)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		days, next, err := newService().Days(cmd.Context(), notion.DayQuery{
			PageSize:   limit,
			Cursor:     cursor,
			Filter:     filter,
			WithEvents: withEvents,
		})
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			_ = printJSON(map[string]any{"days": days, "next_cursor": next})
			return
		}

		if len(days) == 0 {
			fmt.Println("No days found. Use 'truant day add \"title\"' to create one.")
			return
		}
		for _, d := range days {
			printDayLine("", d)
			for _, e := range d.Events {
				printEventLine("   ", e)
			}
		}
		if next != "" {
			fmt.Printf("\nMore days: truant day ls --cursor %s\n", next)
		}
	}),
}

var dayShowCmd = &cobra.Command{
	Use:   "show [day-id]",
	Short: "Show a day with its events",
	Args:  cobra.ExactArgs(1),
	Run: withDB(func(cmd *cobra.Command, args []string) {
		day, err := newService().Day(cmd.Context(), args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			_ = printJSON(day)
			return
		}

		fmt.Printf("📅 %s  (%s)\n", day.Title, day.ID)
		fmt.Printf("Date:    %s\n", parser.FormatDate(day.Date, now()))
		fmt.Printf("Status:  %s\n", statusValue(day.Status))
		fmt.Printf("Goal:    %s\n", parser.FormatHours(day.GoalTime))
		fmt.Printf("Tracked: %s\n", parser.FormatHours(day.TotalTime))
		if day.Report != "" {
			fmt.Printf("Report:  %s\n", day.Report)
		}
		if len(day.Events) == 0 {
			fmt.Println("No events")
			return
		}
		fmt.Println("Events:")
		for _, e := range day.Events {
			printEventLine("  ", e)
		}
	}),
}

var dayAddCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Create a day",
	Long: `Create a day.

Examples:
  truant day add "Monday" --date today --goal 6
  truant day add "Deep work" --date 15/01/2024 --status wip`,
	Args: cobra.MinimumNArgs(1),
	Run: withDB(func(cmd *cobra.Command, args []string) {
		in := notion.DayInput{Title: strings.Join(args, " ")}
		if err := applyDayFlags(cmd, &in); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		day, err := newMapper().CreateDay(cmd.Context(), in)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("✅ Created day: %s\n", day.Title)
		fmt.Printf("ID: %s\n", day.ID)
	}),
}

var dayEditCmd = &cobra.Command{
	Use:   "edit [day-id]",
	Short: "Edit a day",
	Long:  "Edit a day. Only the flags you pass change; everything else keeps its current value.",
	Args:  cobra.ExactArgs(1),
	Run: withDB(func(cmd *cobra.Command, args []string) {
		mapper := newMapper()
		current, err := mapper.GetDay(cmd.Context(), args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		in := dayInput(current)
		if err := applyDayFlags(cmd, &in); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		day, err := mapper.UpdateDay(cmd.Context(), args[0], in)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("✅ Updated day: %s\n", day.Title)
	}),
}

var dayRemoveCmd = &cobra.Command{
	Use:     "rm [day-id]",
	Aliases: []string{"remove", "archive"},
	Short:   "Archive a day in Notion",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := newMapper().ArchiveDay(cmd.Context(), args[0]); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("🗑️  Archived day %s\n", args[0])
	},
}

var dayTrackCmd = &cobra.Command{
	Use:   "track [day-id]",
	Short: "Start a timer for a day",
	Long: `Start a full-screen timer for a day. Saving adds the tracked time to the
day's total time in Notion.`,
	Args: cobra.ExactArgs(1),
	Run: withDB(func(cmd *cobra.Command, args []string) {
		day, err := newService().Day(cmd.Context(), args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		hours, saved, err := tui.RunDayTimer(*day)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if !saved {
			fmt.Println("Timer discarded")
			return
		}

		in := dayInput(&day.Day)
		in.TotalTime += hours
		if _, err := newMapper().UpdateDay(cmd.Context(), day.ID, in); err != nil {
			logger.Error("Failed to save tracked time", err, zap.String("day_id", day.ID), zap.Float64("hours", hours))
			fmt.Printf("Error: %v\n", err)
			fmt.Printf("Tracked %s was not saved\n", parser.FormatHours(&hours))
			return
		}
		fmt.Printf("⏱️  Added %s to %s (total %s)\n",
			parser.FormatHours(&hours), day.Title, parser.FormatHours(&in.TotalTime))
	}),
}

// dayInput carries every current value of a day into a write
func dayInput(d *notion.Day) notion.DayInput {
	return notion.DayInput{
		Title:     d.Title,
		Report:    d.Report,
		GoalTime:  valueOrZero(d.GoalTime),
		TotalTime: valueOrZero(d.TotalTime),
		Date:      d.Date,
		StatusID:  d.StatusID,
		EventIDs:  d.EventIDs,
	}
}

// applyDayFlags overwrites the fields whose flags were set
func applyDayFlags(cmd *cobra.Command, in *notion.DayInput) error {
	flags := cmd.Flags()
	if flags.Changed("title") {
		in.Title, _ = flags.GetString("title")
	}
	if flags.Changed("report") {
		in.Report, _ = flags.GetString("report")
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
	if flags.Changed("date") {
		date, err := dateFlag(cmd, "date")
		if err != nil {
			return err
		}
		in.Date = date
	}
	if flags.Changed("status") {
		ref, err := statusRef(cmd)
		if err != nil {
			return err
		}
		in.StatusID = ref
	}
	if flags.Changed("events") {
		in.EventIDs, _ = flags.GetStringSlice("events")
	}
	return nil
}

func printDayLine(indent string, d tracker.DayView) {
	fmt.Printf("%s📅 %-28s %-12s %-12s %s / %s  [%s]\n",
		indent,
		truncate(d.Title, 28),
		orDash(d.Date),
		statusValue(d.Status),
		parser.FormatHours(d.TotalTime),
		parser.FormatHours(d.GoalTime),
		d.ID)
}

func addDayFlags(c *cobra.Command) {
	c.Flags().String("report", "", "day report")
	c.Flags().String("goal", "", "goal time in hours")
	c.Flags().String("total", "", "tracked time in hours")
	c.Flags().String("date", "", "date (YYYY-MM-DD, dd/mm/yyyy, today, +1d, tomorrow)")
	c.Flags().String("status", "", "status value or ID")
	c.Flags().StringSlice("events", nil, "event page IDs")
}

func init() {
	dayListCmd.Flags().Int("limit", 10, "days per page (max 100)")
	dayListCmd.Flags().String("cursor", "", "cursor from a previous page")
	dayListCmd.Flags().String("filter", "", "exact match on a text property (property=value)")
	dayListCmd.Flags().Bool("events", false, "include each day's events")
	dayListCmd.Flags().Bool("json", false, "print JSON")
	dayShowCmd.Flags().Bool("json", false, "print JSON")

	addDayFlags(dayAddCmd)
	addDayFlags(dayEditCmd)
	dayEditCmd.Flags().String("title", "", "new title")

	dayCmd.AddCommand(dayListCmd, dayShowCmd, dayAddCmd, dayEditCmd, dayRemoveCmd, dayTrackCmd)
}
