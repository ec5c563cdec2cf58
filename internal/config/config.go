package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds everything the commands need to reach both stores
type Config struct {
	Notion NotionConfig
	DB     DBConfig
	Log    LogConfig
}

type NotionConfig struct {
	Token     string
	SprintsDB string
	DaysDB    string
	EventsDB  string
	FanOut    int
	Timeout   time.Duration
}

type DBConfig struct {
	Path string
}

type LogConfig struct {
	File  string
	Debug bool
}

// env names are shared with the mobile app, so they carry no prefix
var envBindings = map[string]string{
	"notion.token":      "NOTION_TOKEN",
	"notion.sprints_db": "NOTION_SPRINTS_DATABASE_ID",
	"notion.days_db":    "NOTION_DAYS_DATABASE_ID",
	"notion.events_db":  "NOTION_EVENTS_DATABASE_ID",
	"notion.fanout":     "TRUANT_FANOUT",
	"notion.timeout":    "TRUANT_NOTION_TIMEOUT",
	"db.path":           "TRUANT_DB_PATH",
	"log.file":          "TRUANT_LOG_FILE",
	"log.debug":         "TRUANT_DEBUG",
}

// HomeDir returns ~/.truant, where the database, log and config live
func HomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".truant"), nil
}

// New returns a viper instance with defaults and env bindings applied
func New() (*viper.Viper, error) {
	dir, err := HomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve home directory: %w", err)
	}

	v := viper.New()
	v.SetDefault("notion.fanout", 4)
	v.SetDefault("notion.timeout", 30*time.Second)
	v.SetDefault("db.path", filepath.Join(dir, "truant.db"))
	v.SetDefault("log.file", filepath.Join(dir, "truant.log"))
	v.SetDefault("log.debug", false)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	return v, nil
}

// Load reads the optional config file (explicit path wins) and returns the
// merged configuration. A missing config file is not an error.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	return &Config{
		Notion: NotionConfig{
			Token:     v.GetString("notion.token"),
			SprintsDB: v.GetString("notion.sprints_db"),
			DaysDB:    v.GetString("notion.days_db"),
			EventsDB:  v.GetString("notion.events_db"),
			FanOut:    v.GetInt("notion.fanout"),
			Timeout:   v.GetDuration("notion.timeout"),
		},
		DB: DBConfig{
			Path: v.GetString("db.path"),
		},
		Log: LogConfig{
			File:  v.GetString("log.file"),
			Debug: v.GetBool("log.debug"),
		},
	}, nil
}
