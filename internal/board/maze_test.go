package board

import (
	"errors"
	"reflect"
	"testing"

	"connex/internal/core"
)

func mazeBoard(t *testing.T, seed int64) *Board {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 112, 112
	cfg.Seed = 3
	cfg.MazeSeed = seed
	cfg.Workers = 4
	b, err := NewWithConfig(cfg)
	if err != nil {
		t.Fatalf("NewWithConfig: %v", err)
	}
	return b
}

// reachable floods passage cells of region from start.
func reachable(b *Board, start core.Point, region core.Rect) map[core.Point]bool {
	st := b.Attrs().Stability.Read()
	seen := map[core.Point]bool{start: true}
	queue := []core.Point{start}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		for _, n := range []core.Point{{X: p.X - 1, Y: p.Y}, {X: p.X + 1, Y: p.Y}, {X: p.X, Y: p.Y - 1}, {X: p.X, Y: p.Y + 1}} {
			if !region.Contains(n) || seen[n] || st[n.Index(b.Width())] != 0 {
				continue
			}
			seen[n] = true
			queue = append(queue, n)
		}
	}
	return seen
}

func TestMazeDeterministic(t *testing.T) {
	a, b := mazeBoard(t, 69), mazeBoard(t, 69)
	if !sameAttrs(fullView(t, a), fullView(t, b)) {
		t.Fatal("same maze seed produced different boards")
	}
	ra, _ := a.Maze()
	rb, _ := b.Maze()
	if !reflect.DeepEqual(ra, rb) {
		t.Fatal("same maze seed produced different results")
	}

	c := mazeBoard(t, 70)
	if sameAttrs(fullView(t, a), fullView(t, c)) {
		t.Fatal("different maze seeds produced identical boards")
	}
}

func TestCarveSpansLattice(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		b := testBoard(t, 112, 112, 2)
		m, err := b.newMazeBuilder(DefaultMazeParams(), seed)
		if err != nil {
			t.Fatal(err)
		}
		m.fillRegion()
		m.carve()

		cols := (m.region.Dx() - 1) / 2
		rows := (m.region.Dy() - 1) / 2
		if len(m.res.Visited) != cols*rows {
			t.Fatalf("seed %d: visited %d of %d lattice nodes", seed, len(m.res.Visited), cols*rows)
		}
		seen := reachable(b, m.res.Start, m.region)
		for _, p := range m.res.Visited {
			if !seen[p] {
				t.Fatalf("seed %d: node %v unreachable from start", seed, p)
			}
		}
	}
}

func TestMazeStructure(t *testing.T) {
	connected := 0
	for seed := int64(1); seed <= 20; seed++ {
		b := mazeBoard(t, seed)
		res, ok := b.Maze()
		if !ok {
			t.Fatal("maze not recorded")
		}
		a := b.Attrs()
		st, de, cn := a.Stability.Read(), a.Delta.Read(), a.ConnexNumbers.Read()
		w := b.Width()

		f := Flags(de[res.Forge])
		for _, flag := range []Flag{FlagForge, FlagRegion, FlagForgeOutput, FlagForgeIntake} {
			if !f.Has(flag) {
				t.Fatalf("seed %d: forge missing flag %d", seed, flag)
			}
		}
		if res.Forge != res.Region.Center().Index(w) || cn[res.Forge] != 200 || st[res.Forge] != 0 || a.Reactivity.Read()[res.Forge] != 1 {
			t.Fatalf("seed %d: forge cell not set up", seed)
		}

		doors := make(map[int]bool)
		for _, d := range res.RoomDoors {
			doors[d] = true
		}
		room := res.Room
		for y := room.Min.Y; y < room.Max.Y; y++ {
			for x := room.Min.X; x < room.Max.X; x++ {
				i := y*w + x
				switch {
				case doors[i]:
					if st[i] != 0 || Flags(de[i]).Has(FlagSolid) {
						t.Fatalf("seed %d: room door %d not open", seed, i)
					}
				case onBorder(room, x, y):
					if st[i] != 1 || !Flags(de[i]).Has(FlagSolid) {
						t.Fatalf("seed %d: room wall (%d,%d) not solid", seed, x, y)
					}
				case i != res.Forge:
					if st[i] != 0 || de[i] != 0 || a.Energy.Read()[i] != 0 {
						t.Fatalf("seed %d: room interior (%d,%d) not cleared", seed, x, y)
					}
				}
			}
		}

		if len(res.OutsideDoors) == 0 || len(res.OutsideDoors) > 4 {
			t.Fatalf("seed %d: %d outside doors", seed, len(res.OutsideDoors))
		}
		outside := make(map[int]bool)
		for _, d := range res.OutsideDoors {
			p := core.PointOf(d, w)
			if !onBorder(res.Region, p.X, p.Y) || onCorner(res.Region, p.X, p.Y) || st[d] != 0 {
				t.Fatalf("seed %d: bad outside door %v", seed, p)
			}
			outside[d] = true
		}

		if !res.RoomConnected {
			if len(res.RoomDoors) != 0 {
				t.Fatalf("seed %d: unconnected room has doors", seed)
			}
			continue
		}
		connected++
		if len(res.RoomDoors) != 2 {
			t.Fatalf("seed %d: %d room doors", seed, len(res.RoomDoors))
		}
		for _, d := range res.RoomDoors {
			path, ok := b.pathToDoor(d, outside, res.Region)
			if !ok || path[0] != d || !outside[path[len(path)-1]] {
				t.Fatalf("seed %d: room door %d has no path out", seed, d)
			}
		}
	}
	if connected == 0 {
		t.Fatal("no seed produced a connected room")
	}
}

func TestMazeLeavesOutsideCellsAlone(t *testing.T) {
	plain := testBoard(t, 112, 112, 4)
	plain.Reset(3)
	b := mazeBoard(t, 69)
	res, _ := b.Maze()

	pv, mv := fullView(t, plain), fullView(t, b)
	for i := range pv.Energy {
		if res.Region.Contains(core.PointOf(i, 112)) {
			continue
		}
		if pv.Energy[i] != mv.Energy[i] || pv.Stability[i] != mv.Stability[i] || pv.Delta[i] != mv.Delta[i] {
			t.Fatalf("cell %d outside the region changed", i)
		}
	}
}

func TestMazeFillTagsWalls(t *testing.T) {
	b := mazeBoard(t, 69)
	res, _ := b.Maze()
	a := b.Attrs()
	st, de := a.Stability.Read(), a.Delta.Read()
	inRoom := func(p core.Point) bool { return res.Room.Contains(p) }
	for y := res.Region.Min.Y; y < res.Region.Max.Y; y++ {
		for x := res.Region.Min.X; x < res.Region.Max.X; x++ {
			p := core.Point{X: x, Y: y}
			i := p.Index(b.Width())
			if inRoom(p) || st[i] == 0 {
				continue
			}
			f := Flags(de[i])
			if !f.Has(FlagSolid) || !f.Has(FlagRegion) || !f.Has(FlagMazeFill) {
				t.Fatalf("wall %v missing fill flags", p)
			}
			if a.ConnexNumbers.Read()[i] != 100 {
				t.Fatalf("wall %v connex %d", p, a.ConnexNumbers.Read()[i])
			}
			if r := a.Reactivity.Read()[i]; r < -0.1 || r > 0.1 {
				t.Fatalf("wall %v reactivity %v", p, r)
			}
			if a.Energy.Read()[i] == 0 && DecodeAlpha(a.Alpha.Read()[i]).F2 < 99 {
				t.Fatalf("uncharged wall %v missing alpha tag", p)
			}
		}
	}
}

func TestUnconnectedRoomStaysClosed(t *testing.T) {
	b := testBoard(t, 112, 112, 2)
	m, err := b.newMazeBuilder(DefaultMazeParams(), 4)
	if err != nil {
		t.Fatal(err)
	}
	m.fillRegion()
	m.carve()
	m.carveRoom()
	m.placeForge()
	// No outside doors, so nothing can reach one.
	m.connectRoom(m.roomDoorCandidates())
	if m.res.RoomConnected || len(m.res.RoomDoors) != 0 {
		t.Fatal("room must stay closed without outside doors")
	}
}

func TestMazeRegionErrors(t *testing.T) {
	b := testBoard(t, 40, 40, 0)
	if _, err := b.GenerateMaze(DefaultMazeParams(), 1); !errors.Is(err, ErrRegionTooSmall) {
		t.Fatalf("expected ErrRegionTooSmall, got %v", err)
	}
	if _, ok := b.Maze(); ok {
		t.Fatal("failed generation must not record a maze")
	}

	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 40, 40
	if _, err := NewWithConfig(cfg); !errors.Is(err, ErrRegionTooSmall) {
		t.Fatalf("NewWithConfig: expected ErrRegionTooSmall, got %v", err)
	}

	big := testBoard(t, 112, 112, 0)
	p := DefaultMazeParams()
	p.Width, p.Height = 16, 16
	p.Offset = &core.Point{X: 100, Y: 0}
	if _, err := big.GenerateMaze(p, 1); !errors.Is(err, ErrRegionOutOfBounds) {
		t.Fatalf("expected ErrRegionOutOfBounds, got %v", err)
	}
	p.Width = 200
	p.Offset = nil
	if _, err := big.GenerateMaze(p, 1); !errors.Is(err, ErrRegionOutOfBounds) {
		t.Fatalf("oversized region: got %v", err)
	}

	p = DefaultMazeParams()
	p.Offset = &core.Point{X: 3, Y: 4}
	res, err := big.GenerateMaze(p, 1)
	if err != nil {
		t.Fatal(err)
	}
	if res.Region.Min != (core.Point{X: 3, Y: 4}) || res.Region.Dx() != 16 {
		t.Fatalf("explicit offset ignored: %v", res.Region)
	}
}

func TestPathToDoor(t *testing.T) {
	b := testBoard(t, 5, 5, 0)
	st := b.Attrs().Stability.Read()
	for i := range st {
		st[i] = 1
	}
	region := core.Rect{Max: core.Point{X: 5, Y: 5}}
	if _, ok := b.pathToDoor(0, map[int]bool{24: true}, region); ok {
		t.Fatal("walled door must be unreachable")
	}
	for x := 1; x < 5; x++ {
		st[x] = 0
	}
	path, ok := b.pathToDoor(0, map[int]bool{4: true}, region)
	if !ok || !reflect.DeepEqual(path, []int{0, 1, 2, 3, 4}) {
		t.Fatalf("path = %v, %v", path, ok)
	}
	// The region bounds the search.
	if _, ok := b.pathToDoor(0, map[int]bool{4: true}, core.Rect{Max: core.Point{X: 3, Y: 5}}); ok {
		t.Fatal("search escaped the region")
	}
}

func TestGenerateMazeRefreshesTotals(t *testing.T) {
	b := testBoard(t, 112, 112, 3)
	before := b.TotalEnergy()
	res, err := b.GenerateMaze(DefaultMazeParams(), 69)
	if err != nil {
		t.Fatal(err)
	}
	a := b.Attrs()
	if got := sum32(a.Energy.Read()); b.TotalEnergy() != got || got == before {
		t.Fatalf("total energy %v after maze, buffers sum to %v (before %v)", b.TotalEnergy(), got, before)
	}
	st, en, de := a.Stability.Read(), a.Energy.Read(), a.Delta.Read()
	for i, d := range b.Cells() {
		if d != DisplayValue(st[i], en[i], de[i]) {
			t.Fatalf("display stale at %d", i)
		}
	}
	if b.Cells()[res.Forge] != displayForge {
		t.Fatal("forge not shown after direct generation")
	}
}
