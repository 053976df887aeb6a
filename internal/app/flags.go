package app

import (
	"flag"
	"strconv"
)

// Config represents the command-line parameters for the viewers.
type Config struct {
	Sim        string
	Scale      int
	TPS        int
	Seed       int64
	HUDWidth   int
	ConfigPath string
	LogLevel   string

	// SnapshotPath is where the viewers save the board; LoadPath, when set,
	// replaces the generated board with a saved one.
	SnapshotPath string
	LoadPath     string

	// Board overrides; zero values keep the board defaults.
	Width   int
	Height  int
	Workers int
	NoMaze  bool
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Sim: "board", Scale: 3, TPS: 10, Seed: 42, HUDWidth: 240, LogLevel: "info", SnapshotPath: "board.snap"}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation to run")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "simulation ticks per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for board fill and reset")
	fs.IntVar(&c.HUDWidth, "hud", c.HUDWidth, "HUD panel width in pixels, 0 hides it")
	fs.StringVar(&c.ConfigPath, "config", c.ConfigPath, "yaml file with a board section")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level")
	fs.StringVar(&c.SnapshotPath, "snapshot", c.SnapshotPath, "file written by the save key")
	fs.StringVar(&c.LoadPath, "load", c.LoadPath, "start from a saved board")
	fs.IntVar(&c.Width, "w", c.Width, "board width override")
	fs.IntVar(&c.Height, "h", c.Height, "board height override")
	fs.IntVar(&c.Workers, "workers", c.Workers, "worker goroutines per tick, 0 uses GOMAXPROCS")
	fs.BoolVar(&c.NoMaze, "no-maze", c.NoMaze, "skip maze generation")
}

// Options converts the overrides to the key/value form simulation factories
// accept. Only set values are included.
func (c *Config) Options() map[string]string {
	opts := map[string]string{"seed": strconv.FormatInt(c.Seed, 10)}
	if c.Width > 0 {
		opts["w"] = strconv.Itoa(c.Width)
	}
	if c.Height > 0 {
		opts["h"] = strconv.Itoa(c.Height)
	}
	if c.Workers > 0 {
		opts["workers"] = strconv.Itoa(c.Workers)
	}
	if c.NoMaze {
		opts["maze"] = "false"
	}
	return opts
}
