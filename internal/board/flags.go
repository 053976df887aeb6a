package board

// Flag names a bit position in a cell's delta word. Positions are part of the
// saved-board format and must not be renumbered.
type Flag uint

const (
	FlagSolid       Flag = 0
	FlagForgeIntake Flag = 3
	FlagForgeOutput Flag = 4
	FlagRegion      Flag = 10
	FlagMazeFill    Flag = 11
	FlagForge       Flag = 63
)

// GetBit reports whether bit n of word is set.
func GetBit(word uint64, n uint) bool {
	return word&(1<<n) != 0
}

// SetBit sets or clears bit n of *word, leaving the other bits untouched.
func SetBit(word *uint64, value bool, n uint) {
	if value {
		*word |= 1 << n
	} else {
		*word &^= 1 << n
	}
}

// Flags is a delta word with named-flag helpers.
type Flags uint64

// Has reports whether f is set.
func (d Flags) Has(f Flag) bool { return GetBit(uint64(d), uint(f)) }

// With returns d with f set.
func (d Flags) With(f Flag) Flags {
	w := uint64(d)
	SetBit(&w, true, uint(f))
	return Flags(w)
}

// Without returns d with f cleared.
func (d Flags) Without(f Flag) Flags {
	w := uint64(d)
	SetBit(&w, false, uint(f))
	return Flags(w)
}

func setFlag(word *uint64, f Flag, value bool) { SetBit(word, value, uint(f)) }
