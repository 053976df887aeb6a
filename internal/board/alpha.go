package board

import "math"

// Alpha word layout, least significant bit first:
//
//	bits  0-15  id
//	bits 16-23  sub
//	bits 24-36  f1
//	bits 37-49  f2
//	bits 50-62  f3
//	bit  63     reserved, always 0
//
// The layout is stored in saved boards.
const (
	alphaIDBits    = 16
	alphaSubBits   = 8
	alphaFloatBits = 13

	alphaSubShift = alphaIDBits
	alphaF1Shift  = alphaSubShift + alphaSubBits
	alphaF2Shift  = alphaF1Shift + alphaFloatBits
	alphaF3Shift  = alphaF2Shift + alphaFloatBits

	alphaFloatLevels = 1<<alphaFloatBits - 1
	alphaFloatMask   = uint64(alphaFloatLevels)

	// AlphaFloatMin and AlphaFloatMax bound the packed float components.
	// Values outside are clamped.
	AlphaFloatMin = 0.0
	AlphaFloatMax = 512.0

	// AlphaTolerance is the largest round-trip error of an in-range float.
	AlphaTolerance = (AlphaFloatMax - AlphaFloatMin) / alphaFloatLevels / 2
)

// Alpha is the decoded form of an alpha or beta word.
type Alpha struct {
	ID         uint16
	Sub        uint8
	F1, F2, F3 float32
}

// EncodeAlpha packs an id, a subtype and three bounded floats into one word.
func EncodeAlpha(id uint16, sub uint8, f1, f2, f3 float32) uint64 {
	return uint64(id) |
		uint64(sub)<<alphaSubShift |
		quantize(f1)<<alphaF1Shift |
		quantize(f2)<<alphaF2Shift |
		quantize(f3)<<alphaF3Shift
}

// DecodeAlpha unpacks a word produced by EncodeAlpha.
func DecodeAlpha(word uint64) Alpha {
	return Alpha{
		ID:  uint16(word),
		Sub: uint8(word >> alphaSubShift),
		F1:  dequantize(word >> alphaF1Shift & alphaFloatMask),
		F2:  dequantize(word >> alphaF2Shift & alphaFloatMask),
		F3:  dequantize(word >> alphaF3Shift & alphaFloatMask),
	}
}

// Encode packs a back into a word.
func (a Alpha) Encode() uint64 { return EncodeAlpha(a.ID, a.Sub, a.F1, a.F2, a.F3) }

func quantize(f float32) uint64 {
	v := float64(f)
	if math.IsNaN(v) || v <= AlphaFloatMin {
		return 0
	}
	if v >= AlphaFloatMax {
		return alphaFloatMask
	}
	return uint64(math.Round((v - AlphaFloatMin) / (AlphaFloatMax - AlphaFloatMin) * alphaFloatLevels))
}

func dequantize(q uint64) float32 {
	return float32(AlphaFloatMin + float64(q)*(AlphaFloatMax-AlphaFloatMin)/alphaFloatLevels)
}
