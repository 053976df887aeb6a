package board

// Attrs is the full set of per-cell attributes of a board, one SwapBuffer
// each. All buffers share the same length and are swapped together.
type Attrs struct {
	ConnexNumbers *SwapBuffer[uint32]
	Stability     *SwapBuffer[float32]
	Reactivity    *SwapBuffer[float32]
	Energy        *SwapBuffer[float32]
	Alpha         *SwapBuffer[uint64]
	Beta          *SwapBuffer[uint64]
	Gamma         *SwapBuffer[float32]
	Delta         *SwapBuffer[uint64]
	Omega         *SwapBuffer[float32]
}

func newAttrs(width, height int) Attrs {
	n := width * height
	return Attrs{
		ConnexNumbers: NewSwapBuffer(make([]uint32, n), width),
		Stability:     NewSwapBuffer(make([]float32, n), width),
		Reactivity:    NewSwapBuffer(make([]float32, n), width),
		Energy:        NewSwapBuffer(make([]float32, n), width),
		Alpha:         NewSwapBuffer(make([]uint64, n), width),
		Beta:          NewSwapBuffer(make([]uint64, n), width),
		Gamma:         NewSwapBuffer(make([]float32, n), width),
		Delta:         NewSwapBuffer(make([]uint64, n), width),
		Omega:         NewSwapBuffer(make([]float32, n), width),
	}
}

// SwapCells exchanges two cells across every attribute.
func (a *Attrs) SwapCells(pos1, pos2 int) {
	a.ConnexNumbers.SwapCells(pos1, pos2)
	a.Stability.SwapCells(pos1, pos2)
	a.Reactivity.SwapCells(pos1, pos2)
	a.Energy.SwapCells(pos1, pos2)
	a.Alpha.SwapCells(pos1, pos2)
	a.Beta.SwapCells(pos1, pos2)
	a.Gamma.SwapCells(pos1, pos2)
	a.Delta.SwapCells(pos1, pos2)
	a.Omega.SwapCells(pos1, pos2)
}

// SwapAll advances every attribute to its write half.
func (a *Attrs) SwapAll() {
	a.ConnexNumbers.Swap()
	a.Stability.Swap()
	a.Reactivity.Swap()
	a.Energy.Swap()
	a.Alpha.Swap()
	a.Beta.Swap()
	a.Gamma.Swap()
	a.Delta.Swap()
	a.Omega.Swap()
}

// carryStatic copies [from, to) of every attribute the update kernel does not
// compute from its read half into its write half.
func (a *Attrs) carryStatic(from, to int) {
	a.ConnexNumbers.Carry(from, to)
	a.Stability.Carry(from, to)
	a.Reactivity.Carry(from, to)
	a.Alpha.Carry(from, to)
	a.Beta.Carry(from, to)
	a.Gamma.Carry(from, to)
	a.Delta.Carry(from, to)
	a.Omega.Carry(from, to)
}

// CopyToView copies the slice of every attribute into view. Destination
// arrays are reallocated when their length differs from s.Size.
func (a *Attrs) CopyToView(view *View, s Slice, workers int) {
	copySwapBuf(&view.ConnexNumbers, a.ConnexNumbers, s, workers)
	copySwapBuf(&view.Stability, a.Stability, s, workers)
	copySwapBuf(&view.Reactivity, a.Reactivity, s, workers)
	copySwapBuf(&view.Energy, a.Energy, s, workers)
	copySwapBuf(&view.Alpha, a.Alpha, s, workers)
	copySwapBuf(&view.Beta, a.Beta, s, workers)
	copySwapBuf(&view.Gamma, a.Gamma, s, workers)
	copySwapBuf(&view.Delta, a.Delta, s, workers)
	copySwapBuf(&view.Omega, a.Omega, s, workers)
}

func copySwapBuf[T Cell](dst *[]T, sb *SwapBuffer[T], s Slice, workers int) {
	if len(*dst) != s.Size {
		*dst = make([]T, s.Size)
	}
	if s.Size == 0 {
		return
	}
	out := *dst
	rows := sb.Rows(s.Start.Y, s.End.Y)
	parallelRanges(rows.Len(), workers, func(_, from, to int) {
		for y := from; y < to; y++ {
			copy(out[y*s.Width:(y+1)*s.Width], rows.Row(y)[s.Start.X:s.End.X])
		}
	})
}
