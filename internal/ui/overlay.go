//go:build ebiten

package ui

import (
	"image/color"

	"connex/internal/board"
	"connex/internal/core"
	"connex/internal/render"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type maskSource interface {
	Mask(kind board.Mask, dst []float32) []float32
}

var maskKeys = [board.MaskCount]ebiten.Key{
	board.MaskSolid:     ebiten.KeyDigit1,
	board.MaskForge:     ebiten.KeyDigit2,
	board.MaskRegion:    ebiten.KeyDigit3,
	board.MaskStability: ebiten.KeyDigit4,
	board.MaskClassE:    ebiten.KeyDigit5,
}

var maskTints = [board.MaskCount]color.RGBA{
	board.MaskSolid:     {R: 120, G: 140, B: 255},
	board.MaskForge:     {R: 255, G: 120, B: 40},
	board.MaskRegion:    {R: 90, G: 220, B: 120},
	board.MaskStability: {R: 64, G: 164, B: 223},
	board.MaskClassE:    {R: 230, G: 80, B: 200},
}

// Overlay draws toggleable cell masks and the selected cell on top of the
// board view. Keys 1 to 5 toggle the masks.
type Overlay struct {
	sim     core.Sim
	source  maskSource
	scale   int
	painter *render.GridPainter
	shown   [board.MaskCount]bool
	buf     []float32

	pixel    *ebiten.Image
	selected *core.Point
}

// NewOverlay constructs an overlay for sim drawn at the given scale.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	o := &Overlay{sim: sim, scale: scale}
	if src, ok := sim.(maskSource); ok {
		o.source = src
		size := sim.Size()
		o.painter = render.NewGridPainter(size.W, size.H)
	}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Select marks a cell; nil clears the selection.
func (o *Overlay) Select(p *core.Point) { o.selected = p }

// Update toggles masks from the keyboard.
func (o *Overlay) Update() {
	for kind, key := range maskKeys {
		if inpututil.IsKeyJustPressed(key) {
			o.shown[kind] = !o.shown[kind]
		}
	}
}

// Shown lists the labels of the active masks.
func (o *Overlay) Shown() []string {
	var out []string
	for kind, on := range o.shown {
		if on {
			out = append(out, board.Mask(kind).String())
		}
	}
	return out
}

// Draw renders the active masks and the selection onto screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if o.source != nil {
		for kind, on := range o.shown {
			if !on {
				continue
			}
			o.buf = o.source.Mask(board.Mask(kind), o.buf)
			o.painter.BlitMask(screen, o.buf, maskTints[kind], o.scale)
		}
	}
	if o.selected != nil {
		o.drawOutline(screen, *o.selected, color.RGBA{R: 255, G: 255, B: 255, A: 220})
	}
}

func (o *Overlay) drawOutline(screen *ebiten.Image, p core.Point, col color.RGBA) {
	s := float64(max(o.scale, 1))
	x, y := float64(p.X)*s, float64(p.Y)*s
	edges := [4][4]float64{
		{x, y, s, 1},
		{x, y + s - 1, s, 1},
		{x, y, 1, s},
		{x + s - 1, y, 1, s},
	}
	for _, e := range edges {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(e[2], e[3])
		op.GeoM.Translate(e[0], e[1])
		op.ColorScale.ScaleWithColor(col)
		screen.DrawImage(o.pixel, op)
	}
}
