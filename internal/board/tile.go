package board

import (
	"fmt"

	"connex/internal/core"
)

// TileInfo is a copy of every attribute of one cell.
type TileInfo struct {
	Pos          core.Point
	ConnexNumber uint32
	Stability    float32
	Reactivity   float32
	Energy       float32
	Alpha        Alpha
	Beta         Alpha
	Gamma        float32
	Delta        Flags
	Omega        float32
}

// Class returns the connex categories of the tile.
func (t TileInfo) Class() ConnexClass { return ConnexOf(t.ConnexNumber) }

// TileAt converts a world position to the cell under it. Cell centers sit on
// integer offsets from the board anchor.
func (b *Board) TileAt(pos core.Vec2) (core.Point, bool) {
	x := pos.X - b.pos.X + 0.5
	y := pos.Y - b.pos.Y + 0.5
	if x < 0 || y < 0 || x >= float32(b.w) || y >= float32(b.h) {
		return core.Point{}, false
	}
	return core.Point{X: int(x), Y: int(y)}, true
}

// TileInfo reads every attribute of the cell at p.
func (b *Board) TileInfo(p core.Point) (TileInfo, error) {
	if !p.In(b.w, b.h) {
		return TileInfo{}, fmt.Errorf("tile %v: %w", p, ErrCellOutOfBounds)
	}
	i := p.Index(b.w)
	a := &b.attrs
	return TileInfo{
		Pos:          p,
		ConnexNumber: a.ConnexNumbers.Read()[i],
		Stability:    a.Stability.Read()[i],
		Reactivity:   a.Reactivity.Read()[i],
		Energy:       a.Energy.Read()[i],
		Alpha:        DecodeAlpha(a.Alpha.Read()[i]),
		Beta:         DecodeAlpha(a.Beta.Read()[i]),
		Gamma:        a.Gamma.Read()[i],
		Delta:        Flags(a.Delta.Read()[i]),
		Omega:        a.Omega.Read()[i],
	}, nil
}
