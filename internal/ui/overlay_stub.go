//go:build !ebiten

package ui

import "connex/internal/core"

// Overlay is a no-op placeholder used when the ebiten build tag is absent.
type Overlay struct{}

// NewOverlay constructs a stub overlay.
func NewOverlay(core.Sim, int) *Overlay { return &Overlay{} }

// Select is a no-op in headless builds.
func (o *Overlay) Select(*core.Point) {}

// Update is a no-op in headless builds.
func (o *Overlay) Update() {}

// Shown reports no masks in headless builds.
func (o *Overlay) Shown() []string { return nil }

// Draw is a no-op placeholder.
func (o *Overlay) Draw(any) {}
