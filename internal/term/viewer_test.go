package term

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"connex/internal/board"
	"connex/internal/core"
	"connex/pkg/logger"
)

func newTestViewer(t *testing.T, w, h int) (*Viewer, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(w, h)

	cfg := board.DefaultConfig()
	cfg.Width, cfg.Height = 30, 20
	cfg.Maze = false
	cfg.Workers = 2
	cfg.Seed = 5
	b, err := board.NewWithConfig(cfg)
	if err != nil {
		t.Fatal(err)
	}
	return New(screen, b, 30, logger.Discard()), screen
}

func rowText(s tcell.Screen, y, n int) string {
	var sb strings.Builder
	for x := 0; x < n; x++ {
		r, _, _, _ := s.GetContent(x, y)
		sb.WriteRune(r)
	}
	return sb.String()
}

func TestDrawFillsViewport(t *testing.T) {
	v, screen := newTestViewer(t, 12, 6)
	if err := v.Draw(); err != nil {
		t.Fatal(err)
	}
	for y := 0; y < 5; y++ {
		for x := 0; x < 12; x++ {
			if r, _, _, _ := screen.GetContent(x, y); r != '█' {
				t.Fatalf("cell (%d,%d) = %q", x, y, r)
			}
		}
	}
	if status := rowText(screen, 5, 3); status != "run" {
		t.Fatalf("status row starts with %q", status)
	}
	if v.view.Slice.Width != 12 || v.view.Slice.Height != 5 {
		t.Fatalf("extracted %dx%d", v.view.Slice.Width, v.view.Slice.Height)
	}
}

func TestPanClampsToBoard(t *testing.T) {
	v, _ := newTestViewer(t, 12, 6)
	v.apply(actionLeft)
	if v.Origin() != (core.Point{}) {
		t.Fatalf("origin moved past the left edge: %v", v.Origin())
	}
	for i := 0; i < 100; i++ {
		v.apply(actionRight)
		v.apply(actionDown)
	}
	if v.Origin() != (core.Point{X: 18, Y: 15}) {
		t.Fatalf("origin = %v, want 18,15", v.Origin())
	}
	if err := v.Draw(); err != nil {
		t.Fatal(err)
	}
}

func TestKeyEvents(t *testing.T) {
	v, _ := newTestViewer(t, 12, 6)
	if !v.HandleEvent(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone)) || !v.Paused() {
		t.Fatal("space must pause")
	}
	if v.Tick() {
		t.Fatal("paused viewer must not tick")
	}

	before := v.board.Attrs().Energy.Read()[0]
	v.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'n', tcell.ModNone))
	v.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone))
	if v.board.Attrs().Energy.Read()[0] != before {
		t.Fatal("reset must restore the seeded fill")
	}

	v.HandleEvent(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone))
	if v.Origin().X != 1 {
		t.Fatal("arrow key must pan")
	}
	if v.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)) {
		t.Fatal("q must quit")
	}
	if v.HandleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)) {
		t.Fatal("escape must quit")
	}
}

func TestMaskCycle(t *testing.T) {
	v, _ := newTestViewer(t, 12, 6)
	seen := 0
	for i := 0; i < int(board.MaskCount); i++ {
		v.apply(actionMask)
		if !v.showMask || v.mask != board.Mask(i) {
			t.Fatalf("press %d: mask %v shown %v", i, v.mask, v.showMask)
		}
		if err := v.Draw(); err != nil {
			t.Fatal(err)
		}
		seen++
	}
	v.apply(actionMask)
	if v.showMask || seen != int(board.MaskCount) {
		t.Fatal("cycling past the last mask must turn masks off")
	}
	if !strings.Contains(v.StatusLine(), "mask off") {
		t.Fatalf("status %q", v.StatusLine())
	}
}

func TestSaveKey(t *testing.T) {
	v, _ := newTestViewer(t, 12, 6)
	var saved string
	v.SnapshotPath = "x.snap"
	v.Save = func(_ *board.Board, path string) error {
		saved = path
		return nil
	}
	v.apply(actionSave)
	if saved != "x.snap" {
		t.Fatal("save key must call Save with the snapshot path")
	}
}

func TestRunStopsOnContext(t *testing.T) {
	v, _ := newTestViewer(t, 12, 6)
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()
	if err := v.Run(ctx); err != context.DeadlineExceeded {
		t.Fatalf("Run returned %v", err)
	}
}

func TestRunQuitsOnKey(t *testing.T) {
	v, screen := newTestViewer(t, 12, 6)
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	done := make(chan error, 1)
	go func() { done <- v.Run(context.Background()) }()
	select {
	case err := <-done:
		if err != nil {
			t.Fatal(err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("viewer did not quit")
	}
}
