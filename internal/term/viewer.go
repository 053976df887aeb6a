// Package term renders a board in a terminal with tcell.
package term

import (
	"context"
	"fmt"
	"image/color"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"connex/internal/board"
	"connex/internal/core"
)

const frameInterval = 16 * time.Millisecond

type action int

const (
	actionNone action = iota
	actionQuit
	actionPause
	actionStep
	actionReset
	actionSave
	actionMask
	actionLeft
	actionRight
	actionUp
	actionDown
)

// Viewer draws the part of a board that fits the screen and drives ticks at
// a fixed rate. The last screen row holds the status line.
type Viewer struct {
	screen tcell.Screen
	board  *board.Board
	step   *core.FixedStep
	log    logrus.FieldLogger

	view    board.View
	maskBuf []float32
	styles  []tcell.Style
	origin  core.Point

	paused   bool
	mask     board.Mask
	showMask bool
	seed     int64

	// SnapshotPath is written by the save key when Save is set.
	SnapshotPath string
	Save         func(b *board.Board, path string) error
}

// New creates a viewer for b drawing onto an initialized screen.
func New(screen tcell.Screen, b *board.Board, tps int, log logrus.FieldLogger) *Viewer {
	v := &Viewer{
		screen: screen,
		board:  b,
		step:   core.NewFixedStep(tps),
		log:    log,
		seed:   b.Config().Seed,
	}
	for _, c := range b.Palette() {
		v.styles = append(v.styles, tcell.StyleDefault.Foreground(rgb(c)))
	}
	return v
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// Origin returns the board cell drawn in the top-left corner.
func (v *Viewer) Origin() core.Point { return v.origin }

// Paused reports whether automatic ticking is suspended.
func (v *Viewer) Paused() bool { return v.paused }

func actionFor(ev *tcell.EventKey) action {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return actionQuit
	case tcell.KeyLeft:
		return actionLeft
	case tcell.KeyRight:
		return actionRight
	case tcell.KeyUp:
		return actionUp
	case tcell.KeyDown:
		return actionDown
	case tcell.KeyRune:
	default:
		return actionNone
	}
	switch ev.Rune() {
	case 'q':
		return actionQuit
	case ' ':
		return actionPause
	case 'n':
		return actionStep
	case 'r':
		return actionReset
	case 'p':
		return actionSave
	case 'm':
		return actionMask
	case 'h':
		return actionLeft
	case 'l':
		return actionRight
	case 'k':
		return actionUp
	case 'j':
		return actionDown
	}
	return actionNone
}

// HandleEvent applies one input event. It returns false when the viewer
// should quit.
func (v *Viewer) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return v.apply(actionFor(ev))
	case *tcell.EventResize:
		v.screen.Sync()
		v.clampOrigin()
	}
	return true
}

func (v *Viewer) apply(a action) bool {
	switch a {
	case actionQuit:
		return false
	case actionPause:
		v.paused = !v.paused
	case actionStep:
		v.board.Step()
	case actionReset:
		v.board.Reset(v.seed)
		v.log.WithField("seed", v.seed).Info("reset")
	case actionSave:
		v.save()
	case actionMask:
		v.cycleMask()
	case actionLeft:
		v.origin.X--
	case actionRight:
		v.origin.X++
	case actionUp:
		v.origin.Y--
	case actionDown:
		v.origin.Y++
	}
	v.clampOrigin()
	return true
}

// cycleMask steps through off and every mask in order.
func (v *Viewer) cycleMask() {
	switch {
	case !v.showMask:
		v.showMask, v.mask = true, 0
	case v.mask+1 >= board.MaskCount:
		v.showMask = false
	default:
		v.mask++
	}
}

func (v *Viewer) save() {
	if v.Save == nil || v.SnapshotPath == "" {
		return
	}
	if err := v.Save(v.board, v.SnapshotPath); err != nil {
		v.log.WithError(err).Error("save failed")
		return
	}
	v.log.WithField("path", v.SnapshotPath).Info("board saved")
}

// viewport returns the visible cell window size.
func (v *Viewer) viewport() (int, int) {
	sw, sh := v.screen.Size()
	return min(sw, v.board.Width()), min(max(sh-1, 0), v.board.Height())
}

func (v *Viewer) clampOrigin() {
	w, h := v.viewport()
	v.origin.X = min(max(v.origin.X, 0), v.board.Width()-w)
	v.origin.Y = min(max(v.origin.Y, 0), v.board.Height()-h)
}

// Tick advances the board when the fixed step is due.
func (v *Viewer) Tick() bool {
	if v.paused || !v.step.ShouldStep() {
		return false
	}
	v.board.Step()
	return true
}

// Draw renders the visible slice and the status line.
func (v *Viewer) Draw() error {
	w, h := v.viewport()
	end := core.Point{X: v.origin.X + w, Y: v.origin.Y + h}
	s, err := board.NewSlice(v.board.Pos(), v.origin, end)
	if err != nil {
		return err
	}
	if err := v.board.ExtractInto(&v.view, s); err != nil {
		return err
	}
	if v.showMask {
		v.maskBuf = v.board.Mask(v.mask, v.maskBuf)
	}

	v.screen.Clear()
	bw := v.board.Width()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := v.view.Index(x, y)
			d := board.DisplayValue(v.view.Stability[i], v.view.Energy[i], v.view.Delta[i])
			ch := '█'
			style := v.styles[min(int(d), len(v.styles)-1)]
			if v.showMask && v.maskBuf[(y+v.origin.Y)*bw+x+v.origin.X] > 0 {
				ch = '▒'
			}
			v.screen.SetContent(x, y, ch, nil, style)
		}
	}
	v.drawStatus(h)
	v.screen.Show()
	return nil
}

// StatusLine formats the bottom row.
func (v *Viewer) StatusLine() string {
	state := "run"
	if v.paused {
		state = "pause"
	}
	mask := "off"
	if v.showMask {
		mask = v.mask.String()
	}
	return fmt.Sprintf("%s @%d,%d energy %.1f tick %.2fms mask %s",
		state, v.origin.X, v.origin.Y, v.board.TotalEnergy(),
		float64(v.board.AvgTick().Microseconds())/1000, mask)
}

func (v *Viewer) drawStatus(row int) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Reverse(true)
	sw, _ := v.screen.Size()
	x := 0
	for _, r := range v.StatusLine() {
		if x >= sw {
			break
		}
		v.screen.SetContent(x, row, r, nil, style)
		x++
	}
}

// Run polls input and redraws until quit or ctx is done.
func (v *Viewer) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if !v.HandleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			v.Tick()
			if err := v.Draw(); err != nil {
				return err
			}
		}
	}
}
