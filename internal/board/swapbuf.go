package board

// Cell constrains the element types a SwapBuffer may hold.
type Cell interface {
	~uint32 | ~uint64 | ~float32
}

// SwapBuffer holds the read and write halves of one cell attribute. Readers
// only ever see R; a tick writes W and then swaps the roles.
type SwapBuffer[T Cell] struct {
	width int
	r     []T
	w     []T
}

// NewSwapBuffer clones base into both halves. width is the row length used by
// Rows.
func NewSwapBuffer[T Cell](base []T, width int) *SwapBuffer[T] {
	r := make([]T, len(base))
	copy(r, base)
	return &SwapBuffer[T]{width: width, r: r, w: base}
}

// Read returns the current generation.
func (b *SwapBuffer[T]) Read() []T { return b.r }

// Write returns the buffer the next generation is written into.
func (b *SwapBuffer[T]) Write() []T { return b.w }

// Len reports the number of cells.
func (b *SwapBuffer[T]) Len() int { return len(b.r) }

// Swap exchanges the read and write roles without copying.
func (b *SwapBuffer[T]) Swap() { b.r, b.w = b.w, b.r }

// SwapCells exchanges two elements of the read half.
func (b *SwapBuffer[T]) SwapCells(pos1, pos2 int) {
	b.r[pos1], b.r[pos2] = b.r[pos2], b.r[pos1]
}

// Carry copies the read half into the write half over [from, to).
func (b *SwapBuffer[T]) Carry(from, to int) {
	copy(b.w[from:to], b.r[from:to])
}

// Rows returns the read half rows [from, to) as width-sized chunks.
func (b *SwapBuffer[T]) Rows(from, to int) RowChunks[T] {
	return RowChunks[T]{data: b.r[from*b.width : to*b.width], width: b.width}
}

// RowChunks is a read-only row view over a SwapBuffer. Distinct rows may be
// read from different goroutines.
type RowChunks[T Cell] struct {
	data  []T
	width int
}

// Len reports the number of rows.
func (c RowChunks[T]) Len() int {
	if c.width == 0 {
		return 0
	}
	return len(c.data) / c.width
}

// Row returns row i of the chunk, exactly width elements long.
func (c RowChunks[T]) Row(i int) []T {
	return c.data[i*c.width : (i+1)*c.width : (i+1)*c.width]
}
