package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var helpCmd = &cobra.Command{
	Use:   "help",
	Short: "Show comprehensive help for truant",
	Long:  `Display detailed help for all truant commands and flags.`,
	Run: func(cmd *cobra.Command, args []string) {
		showCustomHelp()
	},
}

func showCustomHelp() {
	fmt.Print(`
████████╗██████╗ ██╗   ██╗ █████╗ ███╗   ██╗████████╗
╚══██╔══╝██╔══██╗██║   ██║██╔══██╗████╗  ██║╚══██╔══╝
   ██║   ██████╔╝██║   ██║███████║██╔██╗ ██║   ██║
   ██║   ██╔══██╗██║   ██║██╔══██║██║╚██╗██║   ██║
   ██║   ██║  ██║╚██████╔╝██║  ██║██║ ╚████║   ██║
   ╚═╝   ╚═╝  ╚═╝ ╚═════╝ ╚═╝  ╚═╝╚═╝  ╚═══╝   ╚═╝

truant - Notion sprints + local truants

SETUP:

  NOTION_TOKEN                 Notion integration secret
  NOTION_SPRINTS_DATABASE_ID   Sprints database
  NOTION_DAYS_DATABASE_ID      Days database
  NOTION_EVENTS_DATABASE_ID    Events database
  (or the notion.* keys in ~/.truant/config.yaml)

  truant seed                  Default priorities, statuses and categories

COMMANDS:

  sprint ls                    List sprints
    --details                  Include days and events
    --json                     JSON output
  sprint show <id>             Sprint with days and events
  sprint add <title>           Create a sprint
    --start, --end             Dates (2024-01-31, 31/01/2024, today, +3d, next monday)
    --goal, --total            Hours (1.5, 90m, 1h30m)
    --description, --days
  sprint edit <id>             Change only the given fields
  sprint rm <id>               Archive in Notion

  day ls                       List days, one page at a time
    --limit                    Page size (default 10, max 100)
    --cursor                   Continue from a previous page
    --filter prop=value        Exact text match
    --events                   Include events
  day show <id>                Day with events
  day add <title>              Create a day
    --date, --goal, --total, --report, --status, --events
  day edit <id>                Change only the given fields
  day rm <id>                  Archive in Notion
  day track <id>               Timer; saving adds the time to the day

    Timer keys:
      s             Save and quit
      esc/q         Discard

  event ls                     List events
    --day <id>                 Every event of one day
    --limit, --cursor, --filter
  event show <id>              Event with status and truant
  event add <title>            Create an event
    --start, --end             Times (HH:MM)
    --truant <id>              Link to a local truant
    --weight, --time-taken, --status, --day, --description, --report
  event edit <id>              Change only the given fields (--truant 0 unlinks)
  event rm <id>                Archive in Notion and unlink

  truant ls                    List truants
    -c, -p, -s                 Filter by category, priority, status
  truant show <id>             Truant with its linked events
  truant add <text>            Create a truant (no text opens a form)

    Smart syntax:
      @category     Category title (@"Side projects" for several words)
      +priority     very-high/high/medium/low
      ~status       new/in-progress/done
      https://...   Link

    Example:
      truant truant add "Renew passport @Personal +high ~new gov.example/passport"

  truant edit <id>             Edit (no flags opens a form)
  truant done <id>             Mark as done
  truant rm <id>               Delete with its event links

  category ls|add|edit|rm      Category tree (--parent to nest)
  priority ls|add|edit|rm      Priorities
  status ls|add|edit|rm        Statuses

  board                        Interactive sprint board

    Keys:
      ↑/↓ j/k       Navigate
      tab           Switch panel
      r             Reload
      esc/q         Quit

  version                      Version information
  help                         Show this help

GLOBAL FLAGS:

  --config <file>              Config file (default ~/.truant/config.yaml)
  --debug                      Log to stderr as well as ~/.truant/truant.log

`)
}
