package board

import "image/color"

const (
	displayEnergyLevels = 32
	displayWall         = displayEnergyLevels
	displayChargedWall  = displayEnergyLevels + 1
	displayForge        = displayEnergyLevels + 2
	displayPaletteSize  = displayEnergyLevels + 3

	// displayEnergyFull is the energy shown at the brightest level.
	displayEnergyFull = 250
)

var boardPalette = buildBoardPalette()

// Palette exposes the color palette used for rendering the board.
func (b *Board) Palette() []color.RGBA {
	return boardPalette
}

func buildBoardPalette() []color.RGBA {
	palette := make([]color.RGBA, displayPaletteSize)
	cold := color.RGBA{R: 12, G: 14, B: 28, A: 255}
	hot := color.RGBA{R: 255, G: 196, B: 64, A: 255}
	for i := 0; i < displayEnergyLevels; i++ {
		palette[i] = lerpRGBA(cold, hot, float64(i)/float64(displayEnergyLevels-1))
	}
	palette[displayWall] = color.RGBA{R: 90, G: 92, B: 104, A: 255}
	palette[displayChargedWall] = color.RGBA{R: 150, G: 110, B: 190, A: 255}
	palette[displayForge] = color.RGBA{R: 255, G: 70, B: 40, A: 255}
	return palette
}

func lerpRGBA(a, b color.RGBA, t float64) color.RGBA {
	mix := func(x, y uint8) uint8 { return uint8(float64(x)*(1-t) + float64(y)*t + 0.5) }
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: 255}
}

// DisplayValue maps one cell to its palette index.
func DisplayValue(stability, energy float32, delta uint64) uint8 {
	switch {
	case Flags(delta).Has(FlagForge):
		return displayForge
	case stability != 0 && energy > 0:
		return displayChargedWall
	case stability != 0:
		return displayWall
	}
	level := int(energy / displayEnergyFull * (displayEnergyLevels - 1))
	if level < 0 {
		level = 0
	}
	if level > displayEnergyLevels-1 {
		level = displayEnergyLevels - 1
	}
	return uint8(level)
}

func (b *Board) rebuildDisplay() {
	st := b.attrs.Stability.Read()
	en := b.attrs.Energy.Read()
	de := b.attrs.Delta.Read()
	parallelRanges(len(b.display), b.cfg.Workers, func(_, from, to int) {
		for i := from; i < to; i++ {
			b.display[i] = DisplayValue(st[i], en[i], de[i])
		}
	})
}
