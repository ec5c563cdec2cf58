package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/balkashynov/truant/internal/config"
	"github.com/balkashynov/truant/internal/db"
	"github.com/balkashynov/truant/internal/logger"
	"github.com/balkashynov/truant/internal/notion"
	"github.com/balkashynov/truant/internal/tracker"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	cfgFile string
	debug   bool
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "truant",
	Short: "Sprints, days and events in Notion, truants on disk",
	Long: `truant tracks sprints, days and events stored in Notion databases,
plus the truants (tasks you keep putting off) they point at, stored locally.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
}

// setup loads configuration and starts logging for every command
func setup(cmd *cobra.Command, args []string) error {
	v, err := config.New()
	if err != nil {
		return err
	}
	if err := v.BindPFlag("log.debug", cmd.Root().PersistentFlags().Lookup("debug")); err != nil {
		return err
	}

	if cfg, err = config.Load(v, cfgFile); err != nil {
		return err
	}

	if err := logger.Init(logger.Options{File: cfg.Log.File, Debug: cfg.Log.Debug}); err != nil {
		return err
	}
	logger.With(zap.String("op_id", uuid.NewString()), zap.String("command", cmd.CommandPath()))
	logger.Debug("Config loaded",
		zap.String("db", cfg.DB.Path),
		zap.Bool("notion_token", cfg.Notion.Token != ""),
		zap.Int("fanout", cfg.Notion.FanOut))
	return nil
}

// initDB opens the local store
func initDB() error {
	if db.DB != nil {
		return nil
	}
	if err := db.Initialize(cfg.DB.Path); err != nil {
		logger.Error("Failed to open database", err, zap.String("path", cfg.DB.Path))
		return err
	}
	return nil
}

// withDB wraps a command function to initialize the database first
func withDB(fn func(*cobra.Command, []string)) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		if err := initDB(); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fn(cmd, args)
	}
}

func newMapper() *notion.Mapper {
	n := cfg.Notion
	client := notion.NewClient(n.Token, n.Timeout)
	return notion.New(client, notion.Config{
		Token:     n.Token,
		SprintsDB: n.SprintsDB,
		DaysDB:    n.DaysDB,
		EventsDB:  n.EventsDB,
		FanOut:    n.FanOut,
	})
}

// newService joins the Notion mapper with the local store. The database
// must be initialized first.
func newService() *tracker.Service {
	return tracker.NewService(newMapper(), tracker.Store{}, cfg.Notion.FanOut)
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command; Ctrl+C cancels in-flight Notion requests
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	defer func() { _ = db.Close() }()
	return rootCmd.ExecuteContext(ctx)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("truant %s (commit %s, built %s)\n", version, commit, date)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.truant/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "log to stderr")

	rootCmd.AddCommand(sprintCmd)
	rootCmd.AddCommand(dayCmd)
	rootCmd.AddCommand(eventCmd)
	rootCmd.AddCommand(truantCmd)
	rootCmd.AddCommand(categoryCmd)
	rootCmd.AddCommand(priorityCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(boardCmd)
	rootCmd.SetHelpCommand(helpCmd)
	rootCmd.AddCommand(versionCmd)
}
