package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/balkashynov/truant/internal/db"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Fill the local database with default lookups and sample truants",
	Long:  "Create the default priorities, statuses and categories plus two sample truants. Running it again changes nothing.",
	Run: withDB(func(cmd *cobra.Command, args []string) {
		if err := db.Seed(); err != nil {
			fmt.Printf("Error seeding database: %v\n", err)
			return
		}
		fmt.Println("🌱 Database seeded")
	}),
}
