package board

import "time"

// kernel holds the stencil weights indexed [dy+1][dx+1]. The center entry is
// never applied.
var kernel = [3][3]float32{
	{0.5, 1.0, 0.5},
	{1.0, 0.0, 1.0},
	{0.5, 1.0, 0.5},
}

// Tick advances the board by dt. Each cell relaxes its energy toward the
// coupling-weighted mean of its in-bounds neighbors:
//
//	e' = e + (mean - e) * dt
//
// where every neighbor weight is the kernel entry times the neighbor's
// stability. A cell whose weights sum to zero keeps its energy. Cells are
// split into contiguous ranges across the worker pool; once every range is
// done all attributes swap together.
//
// The new total energy is summed per range and then across ranges in range
// order, so it depends on the worker count. Per-cell values do not.
func (b *Board) Tick(dt time.Duration) {
	start := time.Now()
	d := float32(dt.Seconds())
	n := b.w * b.h

	parts := partsFor(n, b.cfg.Workers)
	if cap(b.partials) < parts {
		b.partials = make([]float32, parts)
	}
	partials := b.partials[:parts]

	parallelRanges(n, b.cfg.Workers, func(part, from, to int) {
		partials[part] = b.relaxRange(from, to, d)
		b.attrs.carryStatic(from, to)
	})

	var total float32
	for _, p := range partials {
		total += p
	}
	b.totalEnergy = total
	b.attrs.SwapAll()

	b.lastTick = time.Since(start)
	b.timer.Push(b.lastTick)
	if b.lastTick > 250*time.Millisecond {
		b.log.WithField("took", b.lastTick).Debug("slow tick")
	}
}

// relaxRange computes the next energy for cells [from, to) and returns their
// sum. It reads only the read halves and writes only its own range of the
// energy write half.
func (b *Board) relaxRange(from, to int, d float32) float32 {
	er := b.attrs.Energy.Read()
	ew := b.attrs.Energy.Write()
	cr := b.attrs.Stability.Read()
	w, h := b.w, b.h

	var sum float32
	for i := from; i < to; i++ {
		x := i % w
		y := i / w
		var acc, weights float32
		for dy := -1; dy <= 1; dy++ {
			ny := y + dy
			if ny < 0 || ny >= h {
				continue
			}
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				nx := x + dx
				if nx < 0 || nx >= w {
					continue
				}
				j := ny*w + nx
				a := kernel[dy+1][dx+1] * cr[j]
				acc += a * er[j]
				weights += a
			}
		}
		cur := er[i]
		next := cur
		if weights != 0 {
			next = cur + (acc/weights-cur)*d
		}
		ew[i] = next
		sum += next
	}
	return sum
}
