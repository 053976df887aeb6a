package board

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"connex/internal/core"
	pcore "connex/pkg/core"
	"connex/pkg/logger"
)

// Board is a double-buffered grid of cell attributes simulated by Tick.
//
// Board is not safe for concurrent use: ticks, cell edits and view extraction
// must be serialized by the caller. Tick and extraction parallelize internally.
type Board struct {
	cfg Config

	w, h int
	pos  core.Vec2

	attrs Attrs

	totalEnergy float32
	lastTick    time.Duration
	timer       *core.Timer
	partials    []float32

	maze    MazeResult
	hasMaze bool

	display []uint8

	log logrus.FieldLogger
}

// New returns a board with the provided dimensions using defaults.
func New(w, h int) (*Board, error) {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	return NewWithConfig(cfg)
}

// NewWithConfig allocates a board, fills it from cfg.Seed and, when enabled,
// carves the maze.
func NewWithConfig(cfg Config) (*Board, error) {
	return NewWithLogger(cfg, nil)
}

// NewWithLogger is NewWithConfig with an explicit logger. A nil logger
// discards output.
func NewWithLogger(cfg Config, log logrus.FieldLogger) (*Board, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%dx%d: %w", cfg.Width, cfg.Height, ErrInvalidSize)
	}
	if log == nil {
		log = logger.Discard()
	}
	b := &Board{
		cfg:     cfg,
		w:       cfg.Width,
		h:       cfg.Height,
		pos:     core.Vec2{X: cfg.PosX, Y: cfg.PosY},
		attrs:   newAttrs(cfg.Width, cfg.Height),
		timer:   core.NewTimer(30),
		display: make([]uint8, cfg.Width*cfg.Height),
		log:     log.WithField("board", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height)),
	}
	if err := b.reset(cfg.Seed); err != nil {
		return nil, err
	}
	b.log.WithFields(logrus.Fields{
		"seed": cfg.Seed,
		"maze": b.hasMaze,
	}).Info("board created")
	return b, nil
}

// Name returns the simulation identifier.
func (b *Board) Name() string { return "board" }

// Size reports the grid dimensions.
func (b *Board) Size() core.Size { return core.Size{W: b.w, H: b.h} }

// Width returns the number of columns.
func (b *Board) Width() int { return b.w }

// Height returns the number of rows.
func (b *Board) Height() int { return b.h }

// Pos returns the world-space anchor of cell (0, 0).
func (b *Board) Pos() core.Vec2 { return b.pos }

// Config returns the configuration the board was built with.
func (b *Board) Config() Config { return b.cfg }

// Attrs exposes the attribute buffers. Direct edits go to the read halves.
func (b *Board) Attrs() *Attrs { return &b.attrs }

// TotalEnergy returns the sum of energies computed by the last tick, or of the
// initial fill before the first tick.
func (b *Board) TotalEnergy() float32 { return b.totalEnergy }

// LastTick returns the wall time of the last tick.
func (b *Board) LastTick() time.Duration { return b.lastTick }

// AvgTick returns the rolling average tick time.
func (b *Board) AvgTick() time.Duration { return b.timer.Avg() }

// Maze returns the result of the last maze generation, if any.
func (b *Board) Maze() (MazeResult, bool) { return b.maze, b.hasMaze }

// Cells exposes the display buffer rebuilt after every step.
func (b *Board) Cells() []uint8 { return b.display }

// Reset refills the board. A zero seed uses the configured one.
func (b *Board) Reset(seed int64) {
	if err := b.reset(seed); err != nil {
		b.log.WithError(err).Warn("reset left board without maze")
	}
}

func (b *Board) reset(seed int64) error {
	effective := seed
	if effective == 0 {
		effective = b.cfg.Seed
	}
	b.fill(effective)
	b.hasMaze = false
	b.maze = MazeResult{}
	b.totalEnergy = sum32(b.attrs.Energy.Read())
	b.rebuildDisplay()
	if !b.cfg.Maze {
		return nil
	}
	_, err := b.GenerateMaze(b.cfg.MazeParams, b.cfg.MazeSeed)
	return err
}

// fill draws every filled attribute uniformly from the configured ranges.
func (b *Board) fill(seed int64) {
	rng := pcore.NewRNG(seed)
	r := b.cfg.Fill
	cn := b.attrs.ConnexNumbers.Read()
	for i := range cn {
		cn[i] = rng.Uint32Range(r.ConnexMin, min(r.ConnexMax, ConnexMax))
	}
	pcore.FillUniform32(rng, b.attrs.Stability.Read(), r.StabilityMin, r.StabilityMax)
	pcore.FillUniform32(rng, b.attrs.Reactivity.Read(), r.ReactivityMin, r.ReactivityMax)
	pcore.FillUniform32(rng, b.attrs.Energy.Read(), r.EnergyMin, r.EnergyMax)
	clear(b.attrs.Alpha.Read())
	clear(b.attrs.Beta.Read())
	clear(b.attrs.Gamma.Read())
	clear(b.attrs.Delta.Read())
	clear(b.attrs.Omega.Read())
	b.syncWrite()
}

// syncWrite makes every write half equal to its read half.
func (b *Board) syncWrite() {
	n := b.w * b.h
	b.attrs.carryStatic(0, n)
	b.attrs.Energy.Carry(0, n)
}

// Step advances the board by the configured tick dt.
func (b *Board) Step() {
	b.Tick(b.cfg.TickDt())
	b.rebuildDisplay()
}

// FullSlice returns a slice covering the whole board.
func (b *Board) FullSlice() Slice {
	s, _ := NewSlice(b.pos, core.Point{}, core.Point{X: b.w, Y: b.h})
	return s
}

func (b *Board) checkSlice(s Slice) error {
	if s.Start.X < 0 || s.Start.Y < 0 || s.End.X > b.w || s.End.Y > b.h ||
		s.Start.X > s.End.X || s.Start.Y > s.End.Y ||
		s.Width != s.End.X-s.Start.X || s.Height != s.End.Y-s.Start.Y || s.Size != s.Width*s.Height {
		return fmt.Errorf("slice %v..%v on %dx%d: %w", s.Start, s.End, b.w, b.h, ErrSliceOutOfBounds)
	}
	return nil
}

// ExtractView returns an independent snapshot of s.
func (b *Board) ExtractView(s Slice) (*View, error) {
	v := &View{}
	if err := b.ExtractInto(v, s); err != nil {
		return nil, err
	}
	return v, nil
}

// ExtractInto fills v with a snapshot of s, reusing v's storage when its
// arrays already have the right length.
func (b *Board) ExtractInto(v *View, s Slice) error {
	if err := b.checkSlice(s); err != nil {
		return err
	}
	start := time.Now()
	b.attrs.CopyToView(v, s, b.cfg.Workers)
	v.BoardPos = b.pos
	v.Slice = s
	v.TotalEnergy = b.totalEnergy
	v.TimeTaken = time.Since(start)
	return nil
}

// SwapCells exchanges two cells across every attribute.
func (b *Board) SwapCells(p1, p2 core.Point) error {
	if !p1.In(b.w, b.h) || !p2.In(b.w, b.h) {
		return fmt.Errorf("swap %v <-> %v: %w", p1, p2, ErrCellOutOfBounds)
	}
	b.attrs.SwapCells(p1.Index(b.w), p2.Index(b.w))
	return nil
}

func sum32(vals []float32) float32 {
	var s float32
	for _, v := range vals {
		s += v
	}
	return s
}

func init() {
	core.Register("board", func(cfg map[string]string) core.Sim {
		b, err := NewWithConfig(FromMap(cfg))
		if err != nil {
			c := FromMap(cfg)
			c.Maze = false
			if b, err = NewWithConfig(c); err != nil {
				return nil
			}
		}
		return b
	})
}
