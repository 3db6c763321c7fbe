package config

import (
	"flag"
	"io"
	"log/slog"
)

// Flags are the command line overrides shared by the sandbox binaries.
// Only flags given on the command line override the file or the defaults.
type Flags struct {
	fs *flag.FlagSet

	path        string
	logLevel    string
	profile     bool
	maxVertices int
	maxIndices  int
	vsync       bool
	maxFrames   int
}

// RegisterFlags defines the sandbox flags on fs.
//
// Parameters:
//   - fs: the flag set to register on, usually flag.CommandLine
//
// Returns:
//   - *Flags: the parsed values, read with Resolve after fs.Parse
func RegisterFlags(fs *flag.FlagSet) *Flags {
	d := Default()
	f := &Flags{fs: fs}
	fs.StringVar(&f.path, "config", "", "path to a .toml, .yaml or .yml config file")
	fs.StringVar(&f.logLevel, "log-level", d.Log.Level, "log level: debug, info, warn or error")
	fs.BoolVar(&f.profile, "profile", d.Engine.Profile, "log frame and memory statistics every second")
	fs.IntVar(&f.maxVertices, "max-vertices", d.Renderer.MaxVertices, "vertex buffer capacity")
	fs.IntVar(&f.maxIndices, "max-indices", d.Renderer.MaxIndices, "index buffer capacity")
	fs.BoolVar(&f.vsync, "vsync", false, "present with vsync instead of the first supported mode")
	fs.IntVar(&f.maxFrames, "frames", d.Engine.MaxFrames, "stop after this many frames, 0 runs until closed")
	return f
}

// Resolve loads the config file if one was given, applies the flags that were set and validates the result.
//
// Returns:
//   - Config: the effective configuration
//   - error: an error if the file cannot be loaded or the result is invalid
func (f *Flags) Resolve() (Config, error) {
	cfg := Default()
	if f.path != "" {
		loaded, err := Load(f.path)
		if err != nil {
			return Config{}, err
		}
		cfg = loaded
	}

	f.fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "log-level":
			cfg.Log.Level = f.logLevel
		case "profile":
			cfg.Engine.Profile = f.profile
		case "max-vertices":
			cfg.Renderer.MaxVertices = f.maxVertices
		case "max-indices":
			cfg.Renderer.MaxIndices = f.maxIndices
		case "vsync":
			if f.vsync {
				cfg.Renderer.PresentMode = "vsync"
			}
		case "frames":
			cfg.Engine.MaxFrames = f.maxFrames
		}
	})

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// NewLogger builds the text logger the binaries install with common.SetLogger. Call Validate first.
//
// Parameters:
//   - cfg: the configuration naming the level
//   - w: the destination, usually os.Stderr
//
// Returns:
//   - *slog.Logger: the logger
func NewLogger(cfg Config, w io.Writer) *slog.Logger {
	level, _ := ParseLevel(cfg.Log.Level)
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
