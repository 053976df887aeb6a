package board

import (
	"fmt"
	"time"

	"connex/internal/core"
)

// Slice is a half-open window [Start, End) of board cells anchored at a
// world-space position.
type Slice struct {
	WorldPos core.Vec2
	Start    core.Point
	End      core.Point
	Width    int
	Height   int
	Size     int
}

// NewSlice builds a slice and derives its dimensions. End must not precede
// Start on either axis.
func NewSlice(worldPos core.Vec2, start, end core.Point) (Slice, error) {
	if end.X < start.X || end.Y < start.Y || start.X < 0 || start.Y < 0 {
		return Slice{}, fmt.Errorf("slice %v..%v: %w", start, end, ErrSliceOutOfBounds)
	}
	w, h := end.X-start.X, end.Y-start.Y
	return Slice{
		WorldPos: worldPos,
		Start:    start,
		End:      end,
		Width:    w,
		Height:   h,
		Size:     w * h,
	}, nil
}

// Rect returns the cell rectangle covered by the slice.
func (s Slice) Rect() core.Rect { return core.Rect{Min: s.Start, Max: s.End} }

// View is an independent snapshot of a board slice. Each attribute holds
// Slice.Size values in row-major order.
type View struct {
	BoardPos core.Vec2
	Slice    Slice

	ConnexNumbers []uint32
	Stability     []float32
	Reactivity    []float32
	Energy        []float32
	Alpha         []uint64
	Beta          []uint64
	Gamma         []float32
	Delta         []uint64
	Omega         []float32

	TotalEnergy float32
	TimeTaken   time.Duration
}

// Index returns the offset of slice-local coordinates within the view arrays.
func (v *View) Index(x, y int) int { return y*v.Slice.Width + x }
