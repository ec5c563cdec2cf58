package logger

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInitWithoutSinksIsNop(t *testing.T) {
	require.NoError(t, Init(Options{}))
	assert.NotPanics(t, func() {
		Info("nothing to see")
		Error("still nothing", errors.New("boom"))
	})
}

func TestInitWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "truant.log")
	require.NoError(t, Init(Options{File: path}))
	t.Cleanup(func() { Logger = zap.NewNop() })

	With(zap.String("op_id", "abc"))
	Error("remote fetch failed", errors.New("timeout"), zap.String("kind", "sprint"))
	Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "remote fetch failed")
	assert.Contains(t, string(data), `"op_id":"abc"`)
	assert.Contains(t, string(data), `"error":"timeout"`)
}
