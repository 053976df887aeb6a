package board

import (
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"

	"connex/internal/core"
	pcore "connex/pkg/core"
)

// MazeParams controls the size and content of a generated maze region.
type MazeParams struct {
	// Divisor sizes the region as board/Divisor when Width or Height is zero.
	Divisor int `yaml:"divisor"`
	Width   int `yaml:"w"`
	Height  int `yaml:"h"`

	// Offset places the region explicitly; nil picks a random offset.
	Offset *core.Point `yaml:"offset"`

	RoomWidth  int `yaml:"room_w"`
	RoomHeight int `yaml:"room_h"`

	// EnergyPercent is the chance in percent that a wall starts charged.
	EnergyPercent int     `yaml:"energy_percent"`
	EnergyMin     float32 `yaml:"energy_min"`
	EnergyMax     float32 `yaml:"energy_max"`

	ReactivitySpread float32 `yaml:"reactivity_spread"`

	DefaultConnex uint32 `yaml:"default_connex"`
	ForgeConnex   uint32 `yaml:"forge_connex"`
}

// DefaultMazeParams returns the standard maze layout.
func DefaultMazeParams() MazeParams {
	return MazeParams{
		Divisor:          7,
		RoomWidth:        11,
		RoomHeight:       5,
		EnergyPercent:    5,
		EnergyMin:        100,
		EnergyMax:        250,
		ReactivitySpread: 0.1,
		DefaultConnex:    100,
		ForgeConnex:      200,
	}
}

func (p MazeParams) fromMap(cfg map[string]string) MazeParams {
	ints := map[string]*int{
		"maze_divisor":        &p.Divisor,
		"maze_w":              &p.Width,
		"maze_h":              &p.Height,
		"maze_room_w":         &p.RoomWidth,
		"maze_room_h":         &p.RoomHeight,
		"maze_energy_percent": &p.EnergyPercent,
	}
	for key, dst := range ints {
		if v, ok := cfg[key]; ok {
			if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
				*dst = parsed
			}
		}
	}
	return p
}

// MazeResult describes what GenerateMaze carved.
type MazeResult struct {
	Region core.Rect
	Start  core.Point
	// Visited lists the carve lattice nodes in visit order.
	Visited []core.Point
	// Room includes the wall ring around the room interior.
	Room  core.Rect
	Forge int

	OutsideDoors []int
	RoomDoors    []int
	// RoomConnected is false when fewer than two room doors could reach an
	// outside door; the room is then left closed.
	RoomConnected bool
}

// mazeBuilder carries the state of one generation run.
type mazeBuilder struct {
	b      *Board
	p      MazeParams
	rng    *pcore.RNG
	region core.Rect
	res    MazeResult
}

// GenerateMaze carves a maze with a central room and forge into a region of
// the board. The same params, seed and board size always produce the same
// maze. Only the read halves are edited; write halves, the total energy and
// the display are refreshed afterwards.
func (b *Board) GenerateMaze(p MazeParams, seed int64) (MazeResult, error) {
	m, err := b.newMazeBuilder(p, seed)
	if err != nil {
		return MazeResult{}, err
	}
	m.fillRegion()
	m.carve()
	m.carveRoom()
	m.placeForge()
	m.openOutsideDoors()
	m.connectRoom(m.roomDoorCandidates())

	b.syncWrite()
	b.totalEnergy = sum32(b.attrs.Energy.Read())
	b.rebuildDisplay()
	b.maze = m.res
	b.hasMaze = true
	b.log.WithFields(logrus.Fields{
		"region":    fmt.Sprintf("%v..%v", m.region.Min, m.region.Max),
		"seed":      seed,
		"doors":     len(m.res.OutsideDoors),
		"connected": m.res.RoomConnected,
	}).Debug("maze generated")
	return m.res, nil
}

func (b *Board) newMazeBuilder(p MazeParams, seed int64) (*mazeBuilder, error) {
	if p.Divisor <= 0 {
		p.Divisor = 1
	}
	mw, mh := p.Width, p.Height
	if mw == 0 {
		mw = b.w / p.Divisor
	}
	if mh == 0 {
		mh = b.h / p.Divisor
	}
	hw, hh := p.RoomWidth/2, p.RoomHeight/2
	// The room ring needs one more cell of maze on every side.
	if mw/2 < hw+2 || mw-1-mw/2 < hw+2 || mh/2 < hh+2 || mh-1-mh/2 < hh+2 {
		return nil, fmt.Errorf("%dx%d for room %dx%d: %w", mw, mh, p.RoomWidth, p.RoomHeight, ErrRegionTooSmall)
	}
	if mw > b.w || mh > b.h {
		return nil, fmt.Errorf("%dx%d on %dx%d: %w", mw, mh, b.w, b.h, ErrRegionOutOfBounds)
	}

	rng := pcore.NewRNG(seed)
	var off core.Point
	if p.Offset != nil {
		off = *p.Offset
		if off.X < 0 || off.Y < 0 || off.X+mw > b.w || off.Y+mh > b.h {
			return nil, fmt.Errorf("offset %v size %dx%d: %w", off, mw, mh, ErrRegionOutOfBounds)
		}
	} else {
		off.X = rng.IntRange(0, b.w-mw)
		off.Y = rng.IntRange(0, b.h-mh)
	}
	region := core.Rect{Min: off, Max: core.Point{X: off.X + mw, Y: off.Y + mh}}
	return &mazeBuilder{b: b, p: p, rng: rng, region: region, res: MazeResult{Region: region}}, nil
}

// fillRegion turns the whole region into charged or tagged walls.
func (m *mazeBuilder) fillRegion() {
	a := &m.b.attrs
	st, re, en := a.Stability.Read(), a.Reactivity.Read(), a.Energy.Read()
	al, de, cn := a.Alpha.Read(), a.Delta.Read(), a.ConnexNumbers.Read()
	for y := m.region.Min.Y; y < m.region.Max.Y; y++ {
		for x := m.region.Min.X; x < m.region.Max.X; x++ {
			i := y*m.b.w + x
			st[i] = 1
			re[i] = m.rng.Float32Range(-m.p.ReactivitySpread, m.p.ReactivitySpread)
			de[i] = uint64(Flags(0).With(FlagSolid).With(FlagRegion).With(FlagMazeFill))
			al[i] = 0
			if m.rng.Percent(m.p.EnergyPercent) {
				en[i] = m.rng.Float32Range(m.p.EnergyMin, m.p.EnergyMax)
			} else {
				en[i] = 0
				ex, ey := x-m.region.Min.X, y-m.region.Min.Y
				al[i] = EncodeAlpha(uint16(ex+ey), 0, 0, 100, 0)
			}
			cn[i] = m.p.DefaultConnex
		}
	}
}

// open clears a wall so it becomes a passage.
func (m *mazeBuilder) open(i int) {
	a := &m.b.attrs
	a.Stability.Read()[i] = 0
	setFlag(&a.Delta.Read()[i], FlagSolid, false)
	a.Energy.Read()[i] = 0
	a.Alpha.Read()[i] = 0
}

// carve runs a randomized depth-first search over the odd-coordinate lattice
// of the region, opening every visited node and the wall between it and the
// node it was reached from.
func (m *mazeBuilder) carve() {
	w := m.b.w
	cols := (m.region.Dx() - 1) / 2
	rows := (m.region.Dy() - 1) / 2
	node := func(lx, ly int) core.Point {
		return core.Point{X: m.region.Min.X + 1 + 2*lx, Y: m.region.Min.Y + 1 + 2*ly}
	}

	visited := make([]bool, cols*rows)
	type lat struct{ x, y int }
	start := lat{m.rng.IntN(cols), m.rng.IntN(rows)}
	visited[start.y*cols+start.x] = true
	sp := node(start.x, start.y)
	m.open(sp.Index(w))
	m.res.Start = sp
	m.res.Visited = append(m.res.Visited, sp)

	stack := []lat{start}
	dirs := [4]lat{{0, 1}, {1, 0}, {0, -1}, {-1, 0}}
	neighbors := make([]lat, 0, 4)
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		neighbors = neighbors[:0]
		for _, d := range dirs {
			n := lat{cur.x + d.x, cur.y + d.y}
			if n.x >= 0 && n.x < cols && n.y >= 0 && n.y < rows && !visited[n.y*cols+n.x] {
				neighbors = append(neighbors, n)
			}
		}
		if len(neighbors) == 0 {
			continue
		}
		next := neighbors[m.rng.Choose(len(neighbors))]
		visited[next.y*cols+next.x] = true
		stack = append(stack, cur, next)

		cp, np := node(cur.x, cur.y), node(next.x, next.y)
		wall := core.Point{X: (cp.X + np.X) / 2, Y: (cp.Y + np.Y) / 2}
		m.open(wall.Index(w))
		m.open(np.Index(w))
		m.res.Visited = append(m.res.Visited, np)
	}
}

// roomRect returns the room including its wall ring.
func (m *mazeBuilder) roomRect() core.Rect {
	c := m.region.Center()
	hw, hh := m.p.RoomWidth/2, m.p.RoomHeight/2
	return core.Rect{
		Min: core.Point{X: c.X - hw - 1, Y: c.Y - hh - 1},
		Max: core.Point{X: c.X + hw + 2, Y: c.Y + hh + 2},
	}
}

func onBorder(r core.Rect, x, y int) bool {
	return x == r.Min.X || x == r.Max.X-1 || y == r.Min.Y || y == r.Max.Y-1
}

func onCorner(r core.Rect, x, y int) bool {
	return (x == r.Min.X || x == r.Max.X-1) && (y == r.Min.Y || y == r.Max.Y-1)
}

// carveRoom walls in the room and clears its interior.
func (m *mazeBuilder) carveRoom() {
	a := &m.b.attrs
	room := m.roomRect()
	m.res.Room = room
	for y := room.Min.Y; y < room.Max.Y; y++ {
		for x := room.Min.X; x < room.Max.X; x++ {
			i := y*m.b.w + x
			if onBorder(room, x, y) {
				a.Stability.Read()[i] = 1
				setFlag(&a.Delta.Read()[i], FlagSolid, true)
				continue
			}
			a.Stability.Read()[i] = 0
			a.ConnexNumbers.Read()[i] = 0
			a.Energy.Read()[i] = 0
			a.Delta.Read()[i] = 0
			a.Alpha.Read()[i] = 0
		}
	}
}

// placeForge marks the room center as the forge cell.
func (m *mazeBuilder) placeForge() {
	a := &m.b.attrs
	i := m.region.Center().Index(m.b.w)
	a.Stability.Read()[i] = 0
	a.Reactivity.Read()[i] = 1
	a.ConnexNumbers.Read()[i] = m.p.ForgeConnex
	d := &a.Delta.Read()[i]
	setFlag(d, FlagForge, true)
	setFlag(d, FlagRegion, true)
	setFlag(d, FlagForgeOutput, true)
	setFlag(d, FlagForgeIntake, true)
	m.res.Forge = i
}

// openOutsideDoors opens at most one cell on each outer edge whose inward
// neighbor is a passage.
func (m *mazeBuilder) openOutsideDoors() {
	st := m.b.attrs.Stability.Read()
	w := m.b.w
	r := m.region
	var top, bottom, left, right []int
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if onCorner(r, x, y) {
				continue
			}
			i := y*w + x
			switch {
			case y == r.Min.Y && st[i+w] == 0:
				top = append(top, i)
			case y == r.Max.Y-1 && st[i-w] == 0:
				bottom = append(bottom, i)
			case x == r.Min.X && st[i+1] == 0:
				left = append(left, i)
			case x == r.Max.X-1 && st[i-1] == 0:
				right = append(right, i)
			}
		}
	}
	for _, edge := range [][]int{top, bottom, left, right} {
		if k := m.rng.Choose(len(edge)); k >= 0 {
			m.open(edge[k])
			m.res.OutsideDoors = append(m.res.OutsideDoors, edge[k])
		}
	}
}

// roomDoorCandidates lists room wall cells, corners excluded, whose outward
// neighbor is a passage.
func (m *mazeBuilder) roomDoorCandidates() []int {
	st := m.b.attrs.Stability.Read()
	w := m.b.w
	room := m.res.Room
	var out []int
	for y := room.Min.Y; y < room.Max.Y; y++ {
		for x := room.Min.X; x < room.Max.X; x++ {
			if !onBorder(room, x, y) || onCorner(room, x, y) {
				continue
			}
			i := y*w + x
			switch {
			case y == room.Min.Y && st[i-w] == 0,
				y == room.Max.Y-1 && st[i+w] == 0,
				x == room.Min.X && st[i-1] == 0,
				x == room.Max.X-1 && st[i+1] == 0:
				out = append(out, i)
			}
		}
	}
	return out
}

// connectRoom opens two random candidates that can reach an outside door.
func (m *mazeBuilder) connectRoom(candidates []int) {
	doors := make(map[int]bool, len(m.res.OutsideDoors))
	for _, d := range m.res.OutsideDoors {
		doors[d] = true
	}
	var valid []int
	for _, c := range candidates {
		if _, ok := m.b.pathToDoor(c, doors, m.region); ok {
			valid = append(valid, c)
		}
	}
	if len(valid) < 2 {
		return
	}
	for _, k := range m.rng.ChooseMultiple(len(valid), 2) {
		m.open(valid[k])
		m.res.RoomDoors = append(m.res.RoomDoors, valid[k])
	}
	m.res.RoomConnected = true
}

// pathToDoor runs a breadth-first search from start over passage cells inside
// region and returns the path to the first door reached. ok is false when no
// door is reachable.
func (b *Board) pathToDoor(start int, doors map[int]bool, region core.Rect) (path []int, ok bool) {
	st := b.attrs.Stability.Read()
	w := b.w
	prev := map[int]int{start: -1}
	queue := []int{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if doors[cur] {
			for i := cur; i != -1; i = prev[i] {
				path = append(path, i)
			}
			for l, r := 0, len(path)-1; l < r; l, r = l+1, r-1 {
				path[l], path[r] = path[r], path[l]
			}
			return path, true
		}
		p := core.PointOf(cur, w)
		for _, n := range [4]core.Point{{X: p.X - 1, Y: p.Y}, {X: p.X + 1, Y: p.Y}, {X: p.X, Y: p.Y - 1}, {X: p.X, Y: p.Y + 1}} {
			if !region.Contains(n) {
				continue
			}
			j := n.Index(w)
			if _, seen := prev[j]; seen || st[j] != 0 {
				continue
			}
			prev[j] = cur
			queue = append(queue, j)
		}
	}
	return nil, false
}
