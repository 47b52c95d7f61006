// Package direction encodes the six section faces as a dense bitset and
// provides the closed-form mapping between unordered face pairs and the
// 15-entry connectivity table used by a tile's connection masks.
//
// Expected usage:
//
//	dirs := direction.PosX | direction.PosY
//	for dirs != 0 {
//	    d := direction.TakeOne(&dirs)
//	    // ... handle d
//	}
package direction

import "math/bits"

// Count is the number of distinct faces a section has.
const Count = 6

// UniqueConnectionCount is the number of unordered pairs of distinct faces,
// C(6,2) = 15.
const UniqueConnectionCount = 15

// The six faces, encoded as single-bit flags of a 6-bit set.
const (
	NegX uint8 = 1 << 0
	NegY uint8 = 1 << 1
	NegZ uint8 = 1 << 2
	PosX uint8 = 1 << 3
	PosY uint8 = 1 << 4
	PosZ uint8 = 1 << 5
)

// All is the bitset containing every face.
const All uint8 = NegX | NegY | NegZ | PosX | PosY | PosZ

// ToIndex returns the bit position of a single-direction flag. The result
// is undefined if d has more than one bit set.
func ToIndex(d uint8) uint8 {
	return uint8(bits.TrailingZeros8(d))
}

// Opposite flips every direction in the set to its opposite face, by
// swapping the low and high triples of the 6-bit word.
func Opposite(set uint8) uint8 {
	return ((set << 3) | (set >> 3)) & All
}

// AllExcept returns every direction not present in set.
func AllExcept(set uint8) uint8 {
	return All &^ set
}

// TakeOne clears and returns the lowest set direction in *set. It must not
// be called with an empty set.
func TakeOne(set *uint8) uint8 {
	d := *set & -*set
	*set &^= d
	return d
}

// Contains reports whether set holds every direction in other.
func Contains(set, other uint8) bool {
	return set&other == other
}

// IndexToAxis maps a direction index (as returned by ToIndex) to the axis
// it lies on: 0 = X, 1 = Y, 2 = Z. The low triple (-X,-Y,-Z) and high triple
// (+X,+Y,+Z) share axis assignment by construction of the bit layout.
func IndexToAxis(dirIndex uint8) uint8 {
	return dirIndex % 3
}

// axis ordinals, matching the X/Y/Z indices used throughout coords and tile.
const (
	AxisX = 0
	AxisY = 1
	AxisZ = 2
)

// connectionIndexTable maps a connection_index() result (0..15) to the bit
// position within the 64-bit visibility word a host passes to SetSection.
// The ordering must match the host's serialization exactly; see
// ConnectionIndex for how a (dirA, dirB) pair resolves to a table slot.
var connectionIndexTable = [UniqueConnectionCount]uint8{
	4,  // NEG_Y <-> NEG_X
	20, // NEG_Z <-> NEG_X
	2,  // NEG_Z <-> NEG_Y
	37, // POS_X <-> NEG_X
	5,  // POS_X <-> NEG_Y
	21, // POS_X <-> NEG_Z
	12, // POS_Y <-> NEG_X
	1,  // POS_Y <-> NEG_Y
	10, // POS_Y <-> NEG_Z
	13, // POS_Y <-> POS_X
	28, // POS_Z <-> NEG_X
	3,  // POS_Z <-> NEG_Y
	19, // POS_Z <-> NEG_Z
	29, // POS_Z <-> POS_X
	11, // POS_Z <-> POS_Y
}

// ConnectionIndex returns the dense array index (0..15) for the mutual
// connection between dirA and dirB. Undefined if dirA == dirB.
func ConnectionIndex(dirA, dirB uint8) int {
	idxA := int(ToIndex(dirA))
	idxB := int(ToIndex(dirB))

	large, small := idxA, idxB
	if dirB > dirA {
		large, small = idxB, idxA
	}

	return (large * 4) + small + (0b1100 >> uint(large)) - 10
}

// VisibilityBitIndex returns the bit position within a SetSection visibility
// word for the pair (dirA, dirB).
func VisibilityBitIndex(dirA, dirB uint8) uint8 {
	return connectionIndexTable[ConnectionIndex(dirA, dirB)]
}

// BitIndexForConnection returns the bit position within a SetSection
// visibility word for the connection at connIdx (0..UniqueConnectionCount),
// the same dense index ConnectionIndex produces. Used when a caller wants
// to walk every connection slot rather than look one up by direction pair.
func BitIndexForConnection(connIdx int) uint8 {
	return connectionIndexTable[connIdx]
}
