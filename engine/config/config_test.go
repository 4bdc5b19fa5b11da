package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Carmen-Shannon/breakout/common"
	"github.com/Carmen-Shannon/breakout/engine/renderer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 14, cfg.Game.Columns)
	assert.Equal(t, 8, cfg.Game.Rows)
	assert.Equal(t, renderer.BackendTypeGL, cfg.BackendType())
	assert.Equal(t, time.Second, cfg.ProfilerInterval())
}

func TestDecodeMergesOverDefault(t *testing.T) {
	doc := `
[window]
width = 1280

[renderer]
backend = "headless"
clear_color = [0.1, 0.2, 0.3]

[game]
columns = 9
`
	cfg, err := Decode(strings.NewReader(doc))
	require.NoError(t, err)

	assert.Equal(t, 1280, cfg.Window.Width)
	assert.Equal(t, 600, cfg.Window.Height)
	assert.Equal(t, "Breakout", cfg.Window.Title)
	assert.Equal(t, renderer.BackendTypeHeadless, cfg.BackendType())
	assert.Equal(t, common.Color{R: 0.1, G: 0.2, B: 0.3}, cfg.ClearColor())
	assert.Equal(t, 9, cfg.Game.Columns)
	assert.Equal(t, 8, cfg.Game.Rows)
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	_, err := Decode(strings.NewReader("[window]\ncolour = \"blue\"\n"))
	assert.Error(t, err)
}

func TestDecodeSyntaxError(t *testing.T) {
	_, err := Decode(strings.NewReader("[window\nwidth = 1"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 1")
}

func TestValidateReportsEveryProblem(t *testing.T) {
	cfg := Default()
	cfg.Window.Width = 0
	cfg.Renderer.Backend = "vulkan"
	cfg.Log.Level = "loud"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 3)
}

func TestLoadAndEncodeRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Game.Rows = 4
	cfg.Renderer.Backend = "wgpu"

	var buf bytes.Buffer
	require.NoError(t, cfg.Encode(&buf))

	path := filepath.Join(t.TempDir(), "breakout.toml")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
