package main

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-sandbox/engine/config"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/renderer"
	"github.com/stretchr/testify/assert"
)

func TestRun(t *testing.T) {
	cfg := config.Default()
	cfg.Engine.MaxFrames = 60

	assert.NoError(t, run(cfg))
}

func TestRunCapacityExceededIsFatal(t *testing.T) {
	cfg := config.Default()
	cfg.Engine.MaxFrames = 60
	cfg.Renderer.MaxVertices = 3

	err := run(cfg)
	assert.ErrorIs(t, err, renderer.ErrCapacityExceeded)
	assert.ErrorContains(t, err, "load mesh")
}
