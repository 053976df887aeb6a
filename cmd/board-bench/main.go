package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"connex/internal/board"
	"connex/pkg/logger"
)

type scenario struct {
	size    int
	workers int
}

func (s scenario) String() string {
	return fmt.Sprintf("%dx%d workers=%d", s.size, s.size, s.workers)
}

type scenarioResult struct {
	scenario
	avgTick     time.Duration
	cellsPerSec float64
	energyStart float32
	energyEnd   float32
	err         error
}

type intList []int

func (l *intList) String() string {
	parts := make([]string, len(*l))
	for i, v := range *l {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

func (l *intList) Set(value string) error {
	for _, f := range strings.Split(value, ",") {
		v, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return err
		}
		*l = append(*l, v)
	}
	return nil
}

func main() {
	steps := flag.Int("steps", 50, "ticks to time per scenario")
	parallel := flag.Int("parallel", 1, "scenarios run at once; keep 1 for clean timings")
	seed := flag.Int64("seed", 1, "fill seed")
	maze := flag.Bool("maze", true, "generate the maze on each board")
	var sizes, workers intList
	flag.Var(&sizes, "sizes", "comma separated board sizes (default 256,512)")
	flag.Var(&workers, "workers", "comma separated worker counts (default 1,2,4,GOMAXPROCS)")
	flag.Parse()

	log := logger.FromEnv()
	if len(sizes) == 0 {
		sizes = intList{256, 512}
	}
	if len(workers) == 0 {
		workers = intList{1, 2, 4, runtime.GOMAXPROCS(0)}
	}

	var sets []scenario
	for _, s := range sizes {
		for _, w := range workers {
			sets = append(sets, scenario{size: s, workers: w})
		}
	}
	log.WithFields(logrus.Fields{
		"scenarios": len(sets),
		"steps":     *steps,
		"parallel":  *parallel,
	}).Info("benchmark starting")

	jobs := make(chan scenario)
	results := make(chan scenarioResult)
	var wg sync.WaitGroup
	for i := 0; i < max(*parallel, 1); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for sc := range jobs {
				results <- runScenario(sc, *steps, *seed, *maze)
			}
		}()
	}
	go func() {
		wg.Wait()
		close(results)
	}()
	go func() {
		for _, sc := range sets {
			jobs <- sc
		}
		close(jobs)
	}()

	start := time.Now()
	var all []scenarioResult
	for res := range results {
		if res.err != nil {
			log.WithError(res.err).WithField("scenario", res.scenario.String()).Warn("scenario failed")
			continue
		}
		all = append(all, res)
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].size != all[j].size {
			return all[i].size < all[j].size
		}
		return all[i].workers < all[j].workers
	})
	fmt.Fprintf(os.Stdout, "%-24s %12s %14s %14s\n", "scenario", "avg tick", "Mcells/s", "energy drift")
	for _, r := range all {
		drift := r.energyEnd - r.energyStart
		fmt.Fprintf(os.Stdout, "%-24s %12s %14.2f %14.3f\n", r.scenario, r.avgTick.Round(time.Microsecond), r.cellsPerSec/1e6, drift)
	}
	log.WithField("elapsed", time.Since(start).Round(time.Millisecond)).Info("benchmark finished")
}

func runScenario(sc scenario, steps int, seed int64, maze bool) scenarioResult {
	cfg := board.DefaultConfig()
	cfg.Width, cfg.Height = sc.size, sc.size
	cfg.Workers = sc.workers
	cfg.Seed = seed
	cfg.Maze = maze
	b, err := board.NewWithConfig(cfg)
	if err != nil {
		return scenarioResult{scenario: sc, err: err}
	}

	res := scenarioResult{scenario: sc, energyStart: b.TotalEnergy()}
	dt := cfg.TickDt()
	var total time.Duration
	for i := 0; i < steps; i++ {
		b.Tick(dt)
		total += b.LastTick()
	}
	if steps > 0 {
		res.avgTick = total / time.Duration(steps)
	}
	if res.avgTick > 0 {
		res.cellsPerSec = float64(sc.size*sc.size) / res.avgTick.Seconds()
	}
	res.energyEnd = b.TotalEnergy()
	return res
}
