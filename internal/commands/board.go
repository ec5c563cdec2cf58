package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/balkashynov/truant/internal/tracker"
	"github.com/balkashynov/truant/internal/tui"
)

var boardCmd = &cobra.Command{
	Use:     "board",
	Aliases: []string{"ui"},
	Short:   "Browse sprints, days and events interactively",
	Run: withDB(func(cmd *cobra.Command, args []string) {
		service := newService()
		load := func() ([]tracker.SprintView, error) {
			return service.Sprints(cmd.Context())
		}
		if err := tui.RunBoard(load); err != nil {
			fmt.Printf("Error: %v\n", err)
		}
	}),
}
