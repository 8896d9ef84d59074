// Package conv provides checked integer conversions for node identifiers.
//
// Node ids are 32-bit; a graph that outgrows that range is a programming
// error, so the helpers panic instead of silently wrapping.
package conv

import (
	"fmt"
	"math"
)

// IntToUint32 converts a slice index or length to a node id.
// Panics if n is negative or exceeds math.MaxUint32.
//
//go:inline
func IntToUint32(n int) uint32 {
	// uint comparison, since int may be 32-bit
	if n < 0 || uint(n) > math.MaxUint32 {
		panic(fmt.Sprintf("conv: node index %d out of uint32 range", n))
	}
	return uint32(n)
}
