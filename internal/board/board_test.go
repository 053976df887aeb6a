package board

import (
	"errors"
	"slices"
	"testing"

	"connex/internal/core"
)

func testBoard(t *testing.T, w, h, workers int) *Board {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	cfg.Maze = false
	cfg.Workers = workers
	cfg.Seed = 11
	b, err := NewWithConfig(cfg)
	if err != nil {
		t.Fatalf("NewWithConfig: %v", err)
	}
	return b
}

func sameAttrs(a, b *View) bool {
	return slices.Equal(a.ConnexNumbers, b.ConnexNumbers) &&
		slices.Equal(a.Stability, b.Stability) &&
		slices.Equal(a.Reactivity, b.Reactivity) &&
		slices.Equal(a.Energy, b.Energy) &&
		slices.Equal(a.Alpha, b.Alpha) &&
		slices.Equal(a.Beta, b.Beta) &&
		slices.Equal(a.Gamma, b.Gamma) &&
		slices.Equal(a.Delta, b.Delta) &&
		slices.Equal(a.Omega, b.Omega)
}

func fullView(t *testing.T, b *Board) *View {
	t.Helper()
	v, err := b.ExtractView(b.FullSlice())
	if err != nil {
		t.Fatalf("ExtractView: %v", err)
	}
	return v
}

func TestNewRejectsEmptyBoard(t *testing.T) {
	if _, err := New(0, 10); !errors.Is(err, ErrInvalidSize) {
		t.Fatalf("expected ErrInvalidSize, got %v", err)
	}
}

func TestNewFillsWithinRanges(t *testing.T) {
	b := testBoard(t, 24, 16, 0)
	r := b.Config().Fill
	for i, e := range b.Attrs().Energy.Read() {
		if e < r.EnergyMin || e >= r.EnergyMax {
			t.Fatalf("energy[%d] = %v outside fill range", i, e)
		}
	}
	for i, c := range b.Attrs().ConnexNumbers.Read() {
		if c > ConnexMax {
			t.Fatalf("connex[%d] = %d above max", i, c)
		}
	}
	if b.TotalEnergy() <= 0 {
		t.Fatal("initial total energy must reflect the fill")
	}
}

func TestResetDeterministic(t *testing.T) {
	b := testBoard(t, 20, 20, 0)
	first := fullView(t, b)

	b.Attrs().Energy.Read()[3] = -1
	b.Reset(0)
	if !sameAttrs(first, fullView(t, b)) {
		t.Fatal("Reset with config seed not deterministic")
	}

	b.Reset(777)
	seeded := fullView(t, b)
	b.Reset(777)
	if !sameAttrs(seeded, fullView(t, b)) {
		t.Fatal("Reset with explicit seed not deterministic")
	}
	if sameAttrs(first, seeded) {
		t.Fatal("different seeds should produce different fills")
	}
}

func TestSwapCellsInvolution(t *testing.T) {
	b := testBoard(t, 9, 7, 0)
	a := b.Attrs()
	for i := range a.Gamma.Read() {
		a.Gamma.Read()[i] = float32(i)
		a.Omega.Read()[i] = float32(-i)
		a.Beta.Read()[i] = uint64(i * 3)
		a.Delta.Read()[i] = uint64(i) << 5
		a.Alpha.Read()[i] = EncodeAlpha(uint16(i), 1, 2, 3, 4)
	}
	before := fullView(t, b)

	p1, p2 := core.Point{X: 1, Y: 2}, core.Point{X: 8, Y: 6}
	if err := b.SwapCells(p1, p2); err != nil {
		t.Fatalf("SwapCells: %v", err)
	}
	mid := fullView(t, b)
	i, j := p1.Index(9), p2.Index(9)
	if mid.Gamma[i] != before.Gamma[j] || mid.Delta[j] != before.Delta[i] || mid.Energy[i] != before.Energy[j] {
		t.Fatal("SwapCells did not exchange every attribute")
	}
	if err := b.SwapCells(p1, p2); err != nil {
		t.Fatalf("SwapCells: %v", err)
	}
	if !sameAttrs(before, fullView(t, b)) {
		t.Fatal("swapping twice must restore the board")
	}
}

func TestSwapCellsBounds(t *testing.T) {
	b := testBoard(t, 4, 4, 0)
	before := fullView(t, b)
	err := b.SwapCells(core.Point{X: 0, Y: 0}, core.Point{X: 4, Y: 0})
	if !errors.Is(err, ErrCellOutOfBounds) {
		t.Fatalf("expected ErrCellOutOfBounds, got %v", err)
	}
	if !sameAttrs(before, fullView(t, b)) {
		t.Fatal("rejected swap must not touch the board")
	}
}

func TestTileAt(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 10, 5
	cfg.Maze = false
	cfg.PosX, cfg.PosY = 100, 50
	b, err := NewWithConfig(cfg)
	if err != nil {
		t.Fatal(err)
	}
	cases := []struct {
		pos  core.Vec2
		want core.Point
		ok   bool
	}{
		{core.Vec2{X: 100, Y: 50}, core.Point{}, true},
		{core.Vec2{X: 99.6, Y: 49.6}, core.Point{}, true},
		{core.Vec2{X: 99.4, Y: 50}, core.Point{}, false},
		{core.Vec2{X: 109.4, Y: 54.4}, core.Point{X: 9, Y: 4}, true},
		{core.Vec2{X: 109.5, Y: 50}, core.Point{}, false},
	}
	for _, c := range cases {
		got, ok := b.TileAt(c.pos)
		if ok != c.ok || (ok && got != c.want) {
			t.Fatalf("TileAt(%v) = %v, %v; want %v, %v", c.pos, got, ok, c.want, c.ok)
		}
	}
}

func TestTileInfo(t *testing.T) {
	b := testBoard(t, 6, 6, 0)
	p := core.Point{X: 2, Y: 3}
	i := p.Index(6)
	b.Attrs().Alpha.Read()[i] = EncodeAlpha(9, 2, 1, 2, 3)
	b.Attrs().Delta.Read()[i] = uint64(Flags(0).With(FlagForge))
	info, err := b.TileInfo(p)
	if err != nil {
		t.Fatal(err)
	}
	if info.Alpha.ID != 9 || info.Alpha.Sub != 2 || !info.Delta.Has(FlagForge) {
		t.Fatalf("unexpected tile info %+v", info)
	}
	if info.Energy != b.Attrs().Energy.Read()[i] {
		t.Fatal("tile energy mismatch")
	}
	if info.Class() != ConnexOf(info.ConnexNumber) {
		t.Fatal("tile class mismatch")
	}
	if _, err := b.TileInfo(core.Point{X: -1}); !errors.Is(err, ErrCellOutOfBounds) {
		t.Fatalf("expected ErrCellOutOfBounds, got %v", err)
	}
}

func TestRegisteredFactory(t *testing.T) {
	f, ok := core.Sims()["board"]
	if !ok {
		t.Fatal("board factory not registered")
	}
	sim := f(map[string]string{"w": "12", "h": "8", "maze": "false"})
	if sim.Size() != (core.Size{W: 12, H: 8}) {
		t.Fatalf("factory size %v", sim.Size())
	}
	if len(sim.Cells()) != 96 {
		t.Fatalf("display buffer length %d", len(sim.Cells()))
	}

	// A maze that does not fit falls back to a plain board.
	small := f(map[string]string{"w": "12", "h": "8"})
	if small == nil || small.Size().W != 12 {
		t.Fatal("factory must fall back when the maze does not fit")
	}
}

func TestDisplayValues(t *testing.T) {
	if DisplayValue(0, 0, 0) != 0 {
		t.Fatal("empty open cell must map to level 0")
	}
	if DisplayValue(0, 1e6, 0) != displayEnergyLevels-1 {
		t.Fatal("energy above full must clamp to the top level")
	}
	if DisplayValue(1, 0, 0) != displayWall {
		t.Fatal("wall must map to the wall entry")
	}
	if DisplayValue(1, 5, 0) != displayChargedWall {
		t.Fatal("charged wall must map to its entry")
	}
	if DisplayValue(0, 0, uint64(Flags(0).With(FlagForge))) != displayForge {
		t.Fatal("forge flag must win")
	}
	b := testBoard(t, 4, 4, 0)
	palette := b.Palette()
	for i, v := range b.Cells() {
		if int(v) >= len(palette) {
			t.Fatalf("cell %d display value %d outside palette", i, v)
		}
	}
}

func TestParameterControls(t *testing.T) {
	b := testBoard(t, 4, 4, 0)
	if !b.SetParameter("tick_dt", 0.25) || b.Config().TickSeconds != 0.25 {
		t.Fatal("tick_dt must be adjustable")
	}
	if b.SetParameter("tick_dt", 2) {
		t.Fatal("tick_dt above 1 must be rejected")
	}
	if !b.SetParameter("workers", 3) || b.Config().Workers != 3 {
		t.Fatal("workers must be adjustable")
	}
	if b.SetParameter("nope", 1) {
		t.Fatal("unknown keys must be rejected")
	}
	p, ok := b.Parameters().Lookup("tick_dt")
	if !ok || p.Value != "0.25" {
		t.Fatalf("snapshot tick_dt = %+v", p)
	}
}
