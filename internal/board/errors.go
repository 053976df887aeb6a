package board

import "errors"

var (
	ErrInvalidSize       = errors.New("board: invalid size")
	ErrSliceOutOfBounds  = errors.New("board: slice out of bounds")
	ErrCellOutOfBounds   = errors.New("board: cell out of bounds")
	ErrRegionTooSmall    = errors.New("board: maze region too small")
	ErrRegionOutOfBounds = errors.New("board: maze region out of bounds")
	ErrBadSnapshot       = errors.New("board: bad snapshot")
)
