package config

import (
	"bytes"
	"flag"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlagSet() (*flag.FlagSet, *Flags) {
	fs := flag.NewFlagSet("sandbox", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs, RegisterFlags(fs)
}

func TestFlagsDefaults(t *testing.T) {
	fs, f := newFlagSet()
	require.NoError(t, fs.Parse(nil))

	cfg, err := f.Resolve()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestFlagsOverrideFile(t *testing.T) {
	path := writeFile(t, "sandbox.toml", "[renderer]\nmax_vertices = 50\nmax_indices = 60\n")
	fs, f := newFlagSet()
	require.NoError(t, fs.Parse([]string{"-config", path, "-max-indices", "90", "-vsync", "-profile", "-frames", "10"}))

	cfg, err := f.Resolve()
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.Renderer.MaxVertices)
	assert.Equal(t, 90, cfg.Renderer.MaxIndices)
	assert.Equal(t, "vsync", cfg.Renderer.PresentMode)
	assert.True(t, cfg.Engine.Profile)
	assert.Equal(t, 10, cfg.Engine.MaxFrames)
}

func TestFlagsRejectInvalid(t *testing.T) {
	fs, f := newFlagSet()
	require.NoError(t, fs.Parse([]string{"-max-vertices", "0"}))

	_, err := f.Resolve()
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestNewLogger(t *testing.T) {
	cfg := Default()
	cfg.Log.Level = "warn"

	var buf bytes.Buffer
	l := NewLogger(cfg, &buf)
	l.Info("hidden")
	l.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}
