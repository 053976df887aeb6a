package board

import (
	"encoding/gob"
	"fmt"
	"io"
)

const snapshotVersion = 1

// snapshot is the persisted form of a board. Delta flag positions and the
// alpha/beta layout are stored as-is.
type snapshot struct {
	Version int
	Width   int
	Height  int
	PosX    float32
	PosY    float32

	ConnexNumbers []uint32
	Stability     []float32
	Reactivity    []float32
	Energy        []float32
	Alpha         []uint64
	Beta          []uint64
	Gamma         []float32
	Delta         []uint64
	Omega         []float32
}

// Save writes the current generation of every attribute to w.
func (b *Board) Save(w io.Writer) error {
	a := &b.attrs
	snap := snapshot{
		Version:       snapshotVersion,
		Width:         b.w,
		Height:        b.h,
		PosX:          b.pos.X,
		PosY:          b.pos.Y,
		ConnexNumbers: a.ConnexNumbers.Read(),
		Stability:     a.Stability.Read(),
		Reactivity:    a.Reactivity.Read(),
		Energy:        a.Energy.Read(),
		Alpha:         a.Alpha.Read(),
		Beta:          a.Beta.Read(),
		Gamma:         a.Gamma.Read(),
		Delta:         a.Delta.Read(),
		Omega:         a.Omega.Read(),
	}
	if err := gob.NewEncoder(w).Encode(&snap); err != nil {
		return fmt.Errorf("save board: %w", err)
	}
	return nil
}

// Load reads a board written by Save. cfg supplies the runtime settings
// (workers, tick dt); its size, position and maze settings are replaced by
// the snapshot.
func Load(r io.Reader, cfg Config) (*Board, error) {
	var snap snapshot
	if err := gob.NewDecoder(r).Decode(&snap); err != nil {
		return nil, fmt.Errorf("load board: %w", err)
	}
	if snap.Version != snapshotVersion {
		return nil, fmt.Errorf("version %d: %w", snap.Version, ErrBadSnapshot)
	}
	n := snap.Width * snap.Height
	for _, l := range []int{
		len(snap.ConnexNumbers), len(snap.Stability), len(snap.Reactivity),
		len(snap.Energy), len(snap.Alpha), len(snap.Beta),
		len(snap.Gamma), len(snap.Delta), len(snap.Omega),
	} {
		if l != n {
			return nil, fmt.Errorf("attribute length %d, want %d: %w", l, n, ErrBadSnapshot)
		}
	}

	cfg.Width, cfg.Height = snap.Width, snap.Height
	cfg.PosX, cfg.PosY = snap.PosX, snap.PosY
	cfg.Maze = false
	b, err := NewWithConfig(cfg)
	if err != nil {
		return nil, err
	}
	a := &b.attrs
	copy(a.ConnexNumbers.Read(), snap.ConnexNumbers)
	copy(a.Stability.Read(), snap.Stability)
	copy(a.Reactivity.Read(), snap.Reactivity)
	copy(a.Energy.Read(), snap.Energy)
	copy(a.Alpha.Read(), snap.Alpha)
	copy(a.Beta.Read(), snap.Beta)
	copy(a.Gamma.Read(), snap.Gamma)
	copy(a.Delta.Read(), snap.Delta)
	copy(a.Omega.Read(), snap.Omega)
	b.syncWrite()
	b.totalEnergy = sum32(a.Energy.Read())
	b.rebuildDisplay()
	return b, nil
}
