package board

import (
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// DefaultMazeSeed is the seed boards use for maze generation unless
// configured otherwise. Every board built with it gets the same maze.
const DefaultMazeSeed int64 = 69

// FillRanges bounds the uniform random fill applied at board creation.
type FillRanges struct {
	ConnexMin     uint32  `yaml:"connex_min"`
	ConnexMax     uint32  `yaml:"connex_max"`
	StabilityMin  float32 `yaml:"stability_min"`
	StabilityMax  float32 `yaml:"stability_max"`
	ReactivityMin float32 `yaml:"reactivity_min"`
	ReactivityMax float32 `yaml:"reactivity_max"`
	EnergyMin     float32 `yaml:"energy_min"`
	EnergyMax     float32 `yaml:"energy_max"`
}

// Ordered raises each maximum to at least its minimum.
func (r FillRanges) Ordered() FillRanges {
	r.EnergyMax = max(r.EnergyMax, r.EnergyMin)
	r.StabilityMax = max(r.StabilityMax, r.StabilityMin)
	r.ReactivityMax = max(r.ReactivityMax, r.ReactivityMin)
	r.ConnexMax = max(r.ConnexMax, r.ConnexMin)
	return r
}

// Config controls board dimensions, seeding and the tick pool.
type Config struct {
	Width  int `yaml:"w"`
	Height int `yaml:"h"`

	PosX float32 `yaml:"pos_x"`
	PosY float32 `yaml:"pos_y"`

	Seed     int64 `yaml:"seed"`
	MazeSeed int64 `yaml:"maze_seed"`

	// Workers bounds the goroutines used per tick and per extraction.
	// Zero means GOMAXPROCS.
	Workers int `yaml:"workers"`

	// TickSeconds is the dt applied by Step.
	TickSeconds float64 `yaml:"tick_dt"`

	Maze bool       `yaml:"maze"`
	Fill FillRanges `yaml:"fill"`

	MazeParams MazeParams `yaml:"maze_params"`
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:       256,
		Height:      256,
		Seed:        0,
		MazeSeed:    DefaultMazeSeed,
		TickSeconds: 0.1,
		Maze:        true,
		Fill: FillRanges{
			ConnexMin:     0,
			ConnexMax:     ConnexMax,
			StabilityMin:  0,
			StabilityMax:  1,
			ReactivityMin: 0,
			ReactivityMax: 1,
			EnergyMin:     0,
			EnergyMax:     100,
		},
		MazeParams: DefaultMazeParams(),
	}
}

// TickDt returns TickSeconds as a duration.
func (c Config) TickDt() time.Duration {
	return time.Duration(c.TickSeconds * float64(time.Second))
}

// FromMap populates the config from a string map (flag-style key/value
// pairs). Keys match the yaml names, with fill ranges flattened
// (energy_min, connex_max, ...). Unparsable or out-of-range values keep the
// defaults, and an inverted range has its max raised to its min.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["maze_seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.MazeSeed = parsed
		}
	}
	if v, ok := cfg["workers"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Workers = parsed
		}
	}
	if v, ok := cfg["tick_dt"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.TickSeconds = parsed
		}
	}
	if v, ok := cfg["maze"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.Maze = parsed
		}
	}

	floats := []struct {
		key    string
		dst    *float32
		nonNeg bool
	}{
		{"pos_x", &c.PosX, false},
		{"pos_y", &c.PosY, false},
		{"energy_min", &c.Fill.EnergyMin, true},
		{"energy_max", &c.Fill.EnergyMax, true},
		{"stability_min", &c.Fill.StabilityMin, true},
		{"stability_max", &c.Fill.StabilityMax, true},
		{"reactivity_min", &c.Fill.ReactivityMin, false},
		{"reactivity_max", &c.Fill.ReactivityMax, false},
	}
	for _, f := range floats {
		if v, ok := cfg[f.key]; ok {
			if parsed, err := strconv.ParseFloat(v, 32); err == nil && (!f.nonNeg || parsed >= 0) {
				*f.dst = float32(parsed)
			}
		}
	}
	for key, dst := range map[string]*uint32{"connex_min": &c.Fill.ConnexMin, "connex_max": &c.Fill.ConnexMax} {
		if v, ok := cfg[key]; ok {
			if parsed, err := strconv.ParseUint(v, 10, 32); err == nil && parsed <= ConnexMax {
				*dst = uint32(parsed)
			}
		}
	}

	c.Fill = c.Fill.Ordered()
	c.MazeParams = c.MazeParams.fromMap(cfg)
	return c
}

type outerConfig struct {
	Board map[string]interface{} `mapstructure:"board"`
}

// FromYaml loads the "board" section of a yaml file on top of DefaultConfig.
func FromYaml(path string) (Config, error) {
	vp := viper.New()
	vp.SetConfigFile(path)
	vp.SetConfigType("yaml")
	vp.AddConfigPath(filepath.Dir(path))
	if err := vp.ReadInConfig(); err != nil {
		return Config{}, err
	}

	outer := &outerConfig{}
	if err := vp.Unmarshal(outer); err != nil {
		return Config{}, err
	}

	section, err := yaml.Marshal(outer.Board)
	if err != nil {
		return Config{}, err
	}

	c := DefaultConfig()
	if err := yaml.Unmarshal(section, &c); err != nil {
		return Config{}, err
	}
	c.Fill = c.Fill.Ordered()
	return c, nil
}
