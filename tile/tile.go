// Package tile holds a single tile's connectivity state and the voxelizers
// that turn a camera's frustum, fog distance, world height, and viewing
// angle into per-section visibility masks ahead of flood-fill traversal.
package tile

import (
	"github.com/burgerindividual/hypercull/bitset"
	"github.com/burgerindividual/hypercull/direction"
)

// Tile holds one 8x8x8 tile's static connectivity (which sections connect
// to which faces) and the per-search scratch state used while traversing
// it.
type Tile struct {
	// ConnectionSectionSets only changes when the host calls SetSection; it
	// records, for each of the 15 unordered face pairs, which sections
	// connect those two faces.
	ConnectionSectionSets [direction.UniqueConnectionCount]bitset.Section512

	// OutgoingDirSectionSets is rebuilt on every search: the sections
	// currently known to be visible and reachable out through each face.
	OutgoingDirSectionSets [direction.Count]bitset.Section512
}

// SetEmpty clears the per-search scratch state, leaving the static
// connectivity untouched.
func (t *Tile) SetEmpty() {
	for i := range t.OutgoingDirSectionSets {
		t.OutgoingDirSectionSets[i] = bitset.Empty
	}
}

// SectionIndex computes the dense bit index for a section at local
// coordinates (x, y, z), each expected in 0..8. It is an alias of
// bitset.Index kept here for readability at call sites working with tiles.
func SectionIndex(x, y, z uint8) uint16 {
	return bitset.Index(x, y, z)
}

// rasterizeRows is the row-bounds-to-bitmask helper shared by the fog
// cylinder and angle-visibility voxelizers. Given, for each of 8 rows, a
// lower and upper bound (in section units), it returns the ceiling of each
// lower bound clamped to 0..8, the floor of each upper bound (not clamped),
// and the masks selecting bits ceil(lowerBound) through floor(upperBound)
// inclusive.
func rasterizeRows(lowerBound, upperBound [8]float32) (lowerCeil [8]float32, upperFloor [8]float32, lowerMask, upperMask [8]uint8) {
	for i := 0; i < 8; i++ {
		lc := clampF(ceilF(lowerBound[i]), 0.0, 8.0)
		uf := floorF(upperBound[i])

		lowerCeil[i] = lc
		upperFloor[i] = uf

		lowerShift := clampInt(int32(lc), 0, 8)
		upperShift := clampInt(int32(uf)+1, 0, 9)

		lowerMask[i] = shiftLeft8(^uint8(0), lowerShift)
		upperMask[i] = ^shiftLeft8(^uint8(0), upperShift)
	}
	return
}

// shiftLeft8 shifts v left by n bits, treating any n >= 8 as a full
// shift-out (result 0), matching the saturating behavior the original's
// fixed-width SIMD shifts rely on.
func shiftLeft8(v uint8, n int32) uint8 {
	if n >= 8 {
		return 0
	}
	return v << uint(n)
}

func clampInt(v, lo, hi int32) int32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
