//go:build ebiten

package app

import (
	"image/color"
	"io"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/sirupsen/logrus"

	"connex/internal/board"
	"connex/internal/core"
	"connex/internal/render"
	"connex/internal/ui"
	"connex/pkg/logger"
)

type paletteProvider interface {
	Palette() []color.RGBA
}

type tileInspector interface {
	Pos() core.Vec2
	TileAt(pos core.Vec2) (core.Point, bool)
	TileInfo(p core.Point) (board.TileInfo, error)
}

type cellSwapper interface {
	SwapCells(p1, p2 core.Point) error
}

type saver interface {
	Save(w io.Writer) error
}

// Game adapts a core simulation to the ebiten.Game interface.
type Game struct {
	sim     core.Sim
	cfg     *Config
	painter *render.GridPainter
	palette []color.RGBA
	hud     *ui.HUD
	overlay *ui.Overlay
	step    *core.FixedStep
	log     logrus.FieldLogger

	scale    int
	paused   bool
	tickOnce bool
	seed     int64
	selected *core.Point
}

// New constructs a Game for the provided simulation.
func New(sim core.Sim, cfg *Config, log logrus.FieldLogger) *Game {
	if log == nil {
		log = logger.Discard()
	}
	size := sim.Size()
	g := &Game{
		sim:     sim,
		cfg:     cfg,
		painter: render.NewGridPainter(size.W, size.H),
		palette: render.Grayscale(256),
		hud:     ui.NewHUD(sim, cfg.HUDWidth),
		overlay: ui.NewOverlay(sim, cfg.Scale),
		step:    core.NewFixedStep(cfg.TPS),
		log:     log,
		scale:   max(cfg.Scale, 1),
		seed:    cfg.Seed,
	}
	if p, ok := sim.(paletteProvider); ok {
		g.palette = p.Palette()
	}
	return g
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.sim.Reset(seed)
	g.tickOnce = false
	g.log.WithField("seed", seed).Info("reset")
}

// Update handles per-frame input and advances the simulation at the
// configured tick rate.
func (g *Game) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyQ), inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.paused = !g.paused
	case inpututil.IsKeyJustPressed(ebiten.KeyN):
		g.tickOnce = true
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.Reset(g.seed)
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		g.Reset(time.Now().UnixNano())
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		g.save()
	}

	g.overlay.Update()
	g.handleMouse()
	g.hud.Update(g.gridWidth())

	if (!g.paused && g.step.ShouldStep()) || g.tickOnce {
		g.sim.Step()
		g.tickOnce = false
	}
	return nil
}

func (g *Game) save() {
	s, ok := g.sim.(saver)
	if !ok {
		return
	}
	if err := SaveBoard(s, g.cfg.SnapshotPath); err != nil {
		g.log.WithError(err).Error("save failed")
		return
	}
	g.log.WithField("path", g.cfg.SnapshotPath).Info("board saved")
}

// cursorCell maps the mouse to a board cell through the board's world
// anchor, where cell centers sit on integer offsets.
func (g *Game) cursorCell(insp tileInspector) (core.Point, bool) {
	mx, my := ebiten.CursorPosition()
	pos := insp.Pos()
	world := core.Vec2{
		X: pos.X + float32(mx)/float32(g.scale) - 0.5,
		Y: pos.Y + float32(my)/float32(g.scale) - 0.5,
	}
	return insp.TileAt(world)
}

func (g *Game) handleMouse() {
	insp, ok := g.sim.(tileInspector)
	if !ok {
		return
	}
	p, inside := g.cursorCell(insp)
	if inside {
		if info, err := insp.TileInfo(p); err == nil {
			g.hud.SetInfo(append(ui.TileLines(info), g.statusLine()))
		}
	} else {
		g.hud.SetInfo([]string{g.statusLine()})
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		g.setSelection(nil)
		return
	}
	if !inside || !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	swapper, ok := g.sim.(cellSwapper)
	if !ok {
		return
	}
	if g.selected == nil {
		g.setSelection(&p)
		return
	}
	if err := swapper.SwapCells(*g.selected, p); err != nil {
		g.log.WithError(err).Warn("swap rejected")
	}
	g.setSelection(nil)
}

func (g *Game) setSelection(p *core.Point) {
	g.selected = p
	g.overlay.Select(p)
}

func (g *Game) statusLine() string {
	state := "running"
	if g.paused {
		state = "paused"
	}
	if masks := g.overlay.Shown(); len(masks) > 0 {
		return state + " | " + strings.Join(masks, ", ")
	}
	return state
}

func (g *Game) gridWidth() int { return g.sim.Size().W * g.scale }

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.sim.Cells(), g.palette, g.scale)
	g.overlay.Draw(screen)
	g.hud.Draw(screen, g.gridWidth(), g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.sim.Size()
	return g.gridWidth() + max(g.cfg.HUDWidth, 0), s.H * g.scale
}
