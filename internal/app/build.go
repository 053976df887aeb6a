package app

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"connex/internal/board"
	"connex/internal/core"
	"connex/pkg/logger"
)

// BoardConfig resolves the board configuration: the yaml file when one is
// given, otherwise the defaults, with command-line overrides on top. The
// command-line seed only replaces a yaml seed of zero.
func (c *Config) BoardConfig() (board.Config, error) {
	if c.ConfigPath == "" {
		return board.FromMap(c.Options()), nil
	}
	bc, err := board.FromYaml(c.ConfigPath)
	if err != nil {
		return board.Config{}, fmt.Errorf("load %s: %w", c.ConfigPath, err)
	}
	if bc.Seed == 0 {
		bc.Seed = c.Seed
	}
	if c.Width > 0 {
		bc.Width = c.Width
	}
	if c.Height > 0 {
		bc.Height = c.Height
	}
	if c.Workers > 0 {
		bc.Workers = c.Workers
	}
	if c.NoMaze {
		bc.Maze = false
	}
	return bc, nil
}

// BuildBoard creates the board described by c. A maze that does not fit the
// board is dropped with a warning.
func BuildBoard(c *Config, log logrus.FieldLogger) (*board.Board, error) {
	if log == nil {
		log = logger.Discard()
	}
	bc, err := c.BoardConfig()
	if err != nil {
		return nil, err
	}
	if c.LoadPath != "" {
		return loadBoard(c.LoadPath, bc, log)
	}
	b, err := board.NewWithLogger(bc, log)
	if errors.Is(err, board.ErrRegionTooSmall) || errors.Is(err, board.ErrRegionOutOfBounds) {
		log.WithError(err).Warn("maze does not fit, continuing without it")
		bc.Maze = false
		b, err = board.NewWithLogger(bc, log)
	}
	return b, err
}

func loadBoard(path string, bc board.Config, log logrus.FieldLogger) (*board.Board, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	b, err := board.Load(f, bc)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	log.WithField("path", path).Info("board loaded")
	return b, nil
}

// SaveBoard writes b to path, replacing any existing file.
func SaveBoard(b interface{ Save(io.Writer) error }, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := b.Save(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// NewSim builds the configured simulation. The board is built directly so it
// picks up the yaml file and logger; other names go through the registry.
func NewSim(c *Config, log logrus.FieldLogger) (core.Sim, error) {
	if c.Sim == "board" {
		b, err := BuildBoard(c, log)
		if err != nil {
			return nil, err
		}
		return b, nil
	}
	factory, ok := core.Sims()[c.Sim]
	if !ok {
		return nil, fmt.Errorf("unknown sim %q (have %v)", c.Sim, core.SimNames())
	}
	return factory(c.Options()), nil
}
