package board

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// defaultWorkers is used when a board is configured with zero workers.
func defaultWorkers() int { return runtime.GOMAXPROCS(0) }

// parallelRanges splits [0, n) into at most workers contiguous parts and runs
// fn for each part concurrently. Parts are numbered in index order and never
// overlap. It returns after every part has finished.
func parallelRanges(n, workers int, fn func(part, from, to int)) {
	if n <= 0 {
		return
	}
	if workers <= 0 {
		workers = defaultWorkers()
	}
	if workers > n {
		workers = n
	}
	if workers == 1 {
		fn(0, 0, n)
		return
	}
	chunk := (n + workers - 1) / workers

	var g errgroup.Group
	g.SetLimit(workers)
	for part := 0; part*chunk < n; part++ {
		from := part * chunk
		to := min(from+chunk, n)
		g.Go(func() error {
			fn(part, from, to)
			return nil
		})
	}
	_ = g.Wait()
}

// partsFor reports how many parts parallelRanges will use for n items.
func partsFor(n, workers int) int {
	if n <= 0 {
		return 0
	}
	if workers <= 0 {
		workers = defaultWorkers()
	}
	if workers > n {
		workers = n
	}
	chunk := (n + workers - 1) / workers
	return (n + chunk - 1) / chunk
}
