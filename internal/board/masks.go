package board

// Mask selects a per-cell overlay channel.
type Mask int

const (
	MaskSolid Mask = iota
	MaskForge
	MaskRegion
	MaskStability
	MaskClassE
	MaskCount
)

// String returns the overlay label.
func (m Mask) String() string {
	switch m {
	case MaskSolid:
		return "solid"
	case MaskForge:
		return "forge"
	case MaskRegion:
		return "region"
	case MaskStability:
		return "stability"
	case MaskClassE:
		return "connex E"
	}
	return "unknown"
}

// Mask writes an intensity in [0, 1] per cell into dst, reallocating it when
// the length differs from the board size.
func (b *Board) Mask(kind Mask, dst []float32) []float32 {
	n := b.w * b.h
	if len(dst) != n {
		dst = make([]float32, n)
	}
	a := &b.attrs
	flag := func(f Flag) {
		de := a.Delta.Read()
		for i := range dst {
			dst[i] = 0
			if Flags(de[i]).Has(f) {
				dst[i] = 1
			}
		}
	}
	switch kind {
	case MaskSolid:
		flag(FlagSolid)
	case MaskForge:
		flag(FlagForge)
	case MaskRegion:
		flag(FlagRegion)
	case MaskStability:
		st := a.Stability.Read()
		for i := range dst {
			dst[i] = min(max(st[i], 0), 1)
		}
	case MaskClassE:
		table := Connex()
		cn := a.ConnexNumbers.Read()
		for i := range dst {
			dst[i] = 0
			if table[min(cn[i], ConnexMax)].E {
				dst[i] = 1
			}
		}
	default:
		clear(dst)
	}
	return dst
}
