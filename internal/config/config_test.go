package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	for _, env := range envBindings {
		t.Setenv(env, "")
	}

	v, err := New()
	require.NoError(t, err)
	cfg, err := Load(v, "")
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Notion.FanOut)
	assert.Equal(t, 30*time.Second, cfg.Notion.Timeout)
	assert.Empty(t, cfg.Notion.Token)
	assert.Equal(t, "truant.db", filepath.Base(cfg.DB.Path))
	assert.False(t, cfg.Log.Debug)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
notion:
  token: from-file
  sprints_db: sprints-file
  fanout: 8
db:
  path: /tmp/file.db
`), 0o644))

	t.Setenv("NOTION_SPRINTS_DATABASE_ID", "")
	t.Setenv("TRUANT_FANOUT", "")
	t.Setenv("TRUANT_DB_PATH", "")
	t.Setenv("NOTION_TOKEN", "from-env")
	t.Setenv("NOTION_DAYS_DATABASE_ID", "days-env")

	v, err := New()
	require.NoError(t, err)
	cfg, err := Load(v, path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Notion.Token)
	assert.Equal(t, "sprints-file", cfg.Notion.SprintsDB)
	assert.Equal(t, "days-env", cfg.Notion.DaysDB)
	assert.Equal(t, 8, cfg.Notion.FanOut)
	assert.Equal(t, "/tmp/file.db", cfg.DB.Path)
}

func TestLoadExplicitMissingFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	v, err := New()
	require.NoError(t, err)

	_, err = Load(v, filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
