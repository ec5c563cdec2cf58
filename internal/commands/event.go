package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/truant/internal/notion"
	"github.com/balkashynov/truant/internal/parser"
	"github.com/balkashynov/truant/internal/tracker"
)

var eventCmd = &cobra.Command{
	Use:     "event",
	Aliases: []string{"events", "e"},
	Short:   "Manage events",
}

var eventListCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List events",
	Long: `List events one page at a time, or every event of one day with --day.

Examples:
  truant event ls --limit 25
  truant event ls --day <day-id>
  truant event ls --filter report=ok`,
	Run: withDB(func(cmd *cobra.Command, args []string) {
		service := newService()
		asJSON, _ := cmd.Flags().GetBool("json")

		if dayID, _ := cmd.Flags().GetString("day"); dayID != "" {
			day, err := service.Day(cmd.Context(), dayID)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			if asJSON {
				_ = printJSON(day.Events)
				return
			}
			printEvents(day.Events)
			return
		}

		limit, _ := cmd.Flags().GetInt("limit")
		cursor, _ := cmd.Flags().GetString("cursor")
		rawFilter, _ := cmd.Flags().GetString("filter")
		filter, err := parseFilter(rawFilter)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		events, next, err := service.Events(cmd.Context(), notion.EventQuery{
			PageSize: limit,
			Cursor:   cursor,
			Filter:   filter,
		})
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if asJSON {
			_ = printJSON(map[string]any{"events": events, "next_cursor": next})
			return
		}
		printEvents(events)
		if next != "" {
			fmt.Printf("\nMore events: truant event ls --cursor %s\n", next)
		}
	}),
}

var eventShowCmd = &cobra.Command{
	Use:   "show [event-id]",
	Short: "Show an event",
	Args:  cobra.ExactArgs(1),
	Run: withDB(func(cmd *cobra.Command, args []string) {
		event, err := newService().Event(cmd.Context(), args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			_ = printJSON(event)
			return
		}

		fmt.Printf("🕑 %s  (%s)\n", event.Title, event.ID)
		fmt.Printf("Time:       %s - %s\n", orDash(event.StartTime), orDash(event.EndTime))
		fmt.Printf("Status:     %s\n", statusValue(event.Status))
		fmt.Printf("Weight:     %s\n", formatNumber(event.Weight))
		fmt.Printf("Time taken: %s\n", parser.FormatHours(event.TimeTaken))
		if event.Truant != nil {
			fmt.Printf("Truant:     #%d %s\n", event.Truant.ID, event.Truant.Title)
		}
		if len(event.DayIDs) > 0 {
			fmt.Printf("Days:       %s\n", strings.Join(event.DayIDs, ", "))
		}
		if event.Description != "" {
			fmt.Printf("Description:\n  %s\n", event.Description)
		}
		if event.Report != "" {
			fmt.Printf("Report:\n  %s\n", event.Report)
		}
	}),
}

var eventAddCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Create an event",
	Long: `Create an event. With --truant the event is also linked to a local truant;
if that link cannot be written the new Notion page is archived again.

Examples:
  truant event add "Standup" --day <day-id> --start 09:30 --end 09:45
  truant event add "Passport office" --truant 3 --weight 2 --status wip`,
	Args: cobra.MinimumNArgs(1),
	Run: withDB(func(cmd *cobra.Command, args []string) {
		in := notion.EventInput{Title: strings.Join(args, " ")}
		if err := applyEventFlags(cmd, &in); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		event, err := newService().CreateEvent(cmd.Context(), in)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("✅ Created event: %s\n", event.Title)
		fmt.Printf("ID: %s\n", event.ID)
		if event.Truant != nil {
			fmt.Printf("Linked to truant #%d: %s\n", event.Truant.ID, event.Truant.Title)
		}
	}),
}

var eventEditCmd = &cobra.Command{
	Use:   "edit [event-id]",
	Short: "Edit an event",
	Long:  "Edit an event. Only the flags you pass change; --truant 0 removes the truant link.",
	Args:  cobra.ExactArgs(1),
	Run: withDB(func(cmd *cobra.Command, args []string) {
		service := newService()
		current, err := service.Event(cmd.Context(), args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		in := notion.EventInput{
			Title:       current.Title,
			StartTime:   current.StartTime,
			EndTime:     current.EndTime,
			Description: current.Description,
			Report:      current.Report,
			Weight:      valueOrZero(current.Weight),
			TimeTaken:   current.TimeTaken,
			TruantID:    current.TruantID,
			StatusID:    current.StatusID,
			DayIDs:      current.DayIDs,
		}
		if err := applyEventFlags(cmd, &in); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		event, err := service.UpdateEvent(cmd.Context(), args[0], in)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("✅ Updated event: %s\n", event.Title)
	}),
}

var eventRemoveCmd = &cobra.Command{
	Use:     "rm [event-id]",
	Aliases: []string{"remove", "archive"},
	Short:   "Archive an event and drop its truant link",
	Args:    cobra.ExactArgs(1),
	Run: withDB(func(cmd *cobra.Command, args []string) {
		if err := newService().ArchiveEvent(cmd.Context(), args[0]); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("🗑️  Archived event %s\n", args[0])
	}),
}

// applyEventFlags overwrites the fields whose flags were set
func applyEventFlags(cmd *cobra.Command, in *notion.EventInput) error {
	flags := cmd.Flags()
	if flags.Changed("title") {
		in.Title, _ = flags.GetString("title")
	}
	if flags.Changed("description") {
		in.Description, _ = flags.GetString("description")
	}
	if flags.Changed("report") {
		in.Report, _ = flags.GetString("report")
	}
	for _, name := range []string{"start", "end"} {
		if !flags.Changed(name) {
			continue
		}
		raw, _ := flags.GetString(name)
		clock, err := parser.ParseClock(raw)
		if err != nil {
			return fmt.Errorf("--%s: %w", name, err)
		}
		if name == "start" {
			in.StartTime = clock
		} else {
			in.EndTime = clock
		}
	}
	if flags.Changed("weight") {
		raw, _ := flags.GetString("weight")
		weight, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return fmt.Errorf("--weight: invalid number '%s'", raw)
		}
		in.Weight = weight
	}
	if flags.Changed("time-taken") {
		hours, err := hoursFlag(cmd, "time-taken")
		if err != nil {
			return err
		}
		in.TimeTaken = &hours
	}
	if flags.Changed("truant") {
		truantID, _ := flags.GetUint("truant")
		in.TruantID = nil
		if truantID > 0 {
			in.TruantID = &truantID
		}
	}
	if flags.Changed("status") {
		ref, err := statusRef(cmd)
		if err != nil {
			return err
		}
		in.StatusID = ref
	}
	if flags.Changed("day") {
		in.DayIDs, _ = flags.GetStringSlice("day")
	}
	return nil
}

func printEvents(events []tracker.EventView) {
	if len(events) == 0 {
		fmt.Println("No events found. Use 'truant event add \"title\"' to create one.")
		return
	}
	for _, e := range events {
		printEventLine("", e)
	}
}

func printEventLine(indent string, e tracker.EventView) {
	truant := "-"
	if e.Truant != nil {
		truant = "#" + strconv.FormatUint(uint64(e.Truant.ID), 10)
	}
	fmt.Printf("%s🕑 %-5s-%-5s %-28s %-12s %-6s %s  [%s]\n",
		indent,
		orDash(e.StartTime),
		orDash(e.EndTime),
		truncate(e.Title, 28),
		statusValue(e.Status),
		truant,
		parser.FormatHours(e.TimeTaken),
		e.ID)
}

func formatNumber(n *float64) string {
	if n == nil {
		return "-"
	}
	return strconv.FormatFloat(*n, 'f', -1, 64)
}

func addEventFlags(c *cobra.Command) {
	c.Flags().String("description", "", "event description")
	c.Flags().String("report", "", "event report")
	c.Flags().String("start", "", "start time (HH:MM)")
	c.Flags().String("end", "", "end time (HH:MM)")
	c.Flags().String("weight", "", "weight")
	c.Flags().String("time-taken", "", "time taken in hours")
	c.Flags().Uint("truant", 0, "linked truant ID")
	c.Flags().String("status", "", "status value or ID")
	c.Flags().StringSlice("day", nil, "day page IDs")
}

func init() {
	eventListCmd.Flags().Int("limit", 10, "events per page (max 100)")
	eventListCmd.Flags().String("cursor", "", "cursor from a previous page")
	eventListCmd.Flags().String("filter", "", "exact match on a text property (property=value)")
	eventListCmd.Flags().String("day", "", "list every event of this day")
	eventListCmd.Flags().Bool("json", false, "print JSON")
	eventShowCmd.Flags().Bool("json", false, "print JSON")

	addEventFlags(eventAddCmd)
	addEventFlags(eventEditCmd)
	eventEditCmd.Flags().String("title", "", "new title")

	eventCmd.AddCommand(eventListCmd, eventShowCmd, eventAddCmd, eventEditCmd, eventRemoveCmd)
}
