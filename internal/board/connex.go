package board

import (
	"math"
	"sync"
)

const (
	// ConnexMax is the largest valid connex number.
	ConnexMax = 200
	// ConnexLen is the number of entries in the classifier tables.
	ConnexLen = ConnexMax + 1
)

// connexPowExp is single precision; the stored curve was generated with it.
const connexPowExp float32 = 2.305865

// ConnexClass is the five-way category membership of one connex number.
type ConnexClass struct {
	A, B, C, D, E bool
}

// ConnexTable maps a connex number to its categories.
type ConnexTable [ConnexLen]ConnexClass

// ConnexPowTable maps a connex number to its power-curve weight.
type ConnexPowTable [ConnexLen]float32

var (
	connexTable    = sync.OnceValue(GenerateConnexTable)
	connexPowTable = sync.OnceValue(GenerateConnexPowTable)
)

// Connex returns the shared classifier table. It is computed on first use and
// must be treated as read-only.
func Connex() *ConnexTable { return connexTable() }

// ConnexPow returns the shared power-curve table.
func ConnexPow() *ConnexPowTable { return connexPowTable() }

// ConnexOf looks up the categories of n, clamping n to ConnexMax.
func ConnexOf(n uint32) ConnexClass {
	if n > ConnexMax {
		n = ConnexMax
	}
	return Connex()[n]
}

// ConnexPowerOf looks up the power weight of n, clamping n to ConnexMax.
func ConnexPowerOf(n uint32) float32 {
	if n > ConnexMax {
		n = ConnexMax
	}
	return ConnexPow()[n]
}

func mix1(seed uint64) uint64 { return seed*17624813 + 7069067389 }
func mix2(seed uint64) uint64 { return seed*9737333 + 326851121 }
func mix3(seed uint64) uint64 { return seed*648391 + 174440041 }

// GenerateConnexTable builds the classifier table. The output is a fixed
// constant of the game; every call returns the same table.
func GenerateConnexTable() *ConnexTable {
	var t ConnexTable
	for i := uint64(0); i < ConnexLen; i++ {
		j := i
		if j > 0 {
			j--
		}
		g2 := (j / 5) % 5
		m1, m2, m3 := uint64(5), uint64(5), uint64(5)
		if i >= 21 {
			m1, m2, m3 = mix1(j)%5, mix2(j)%5, mix3(j)%5
		}
		hit := func(v uint64) bool { return g2 == v || m1 == v || m2 == v || m3 == v }
		hundred := i%100 == 0

		t[i] = ConnexClass{
			A: hit(0) && !hundred,
			B: hit(1),
			C: hit(2) && !hundred,
			D: hit(3) && !hundred,
			E: (g2 == 4 && (m1 == 1 || m2 == 2 || m3 == 3) && i%2 == 0 && i%10 != 0) || i == 20,
		}
	}
	return &t
}

// GenerateConnexPowTable builds the power-curve table.
func GenerateConnexPowTable() *ConnexPowTable {
	var t ConnexPowTable
	for i := 0; i < ConnexLen; i++ {
		g := 1
		if i != 0 {
			g = (i-1)/25 + 1
		}
		// Conversions round each step to float32 and keep the compiler
		// from fusing the multiply-adds.
		gm := float32(g - 1)
		gf := gm + float32(1-float32(0.04*gm))
		base := float32(float32(i) * gf)
		t[i] = float32(math.Pow(float64(base), float64(connexPowExp)))
	}
	return &t
}
