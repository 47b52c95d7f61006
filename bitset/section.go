// Package bitset implements the 512-bit section vector used to track which
// of a tile's 8x8x8 render sections are visible, connected, or reachable
// from a given face.
//
// A Section512 packs one bit per section using the YZX index
// (y<<6)|(z<<3)|x, which makes each of the vector's 64 byte lanes hold one
// complete row of sections along the X axis — a property the lane shifts
// and edge extractors below depend on.
package bitset

// Section512 holds one bit per section of an 8x8x8 tile, 512 bits total
// packed as 64 byte lanes. Lane i holds the 8 sections at (x=0..7, y, z)
// where i == y*8+z.
type Section512 [64]byte

// Empty is the zero-value section vector: no sections set.
var Empty = Section512{}

// Filled is the section vector with every bit set.
var Filled = Section512{
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
}

// Index returns the bit position of the section at local coordinates
// (x, y, z), each expected in 0..8.
func Index(x, y, z uint8) uint16 {
	return (uint16(y) << 6) | (uint16(z) << 3) | uint16(x)
}

func (s *Section512) lane(idx uint16) *byte {
	return &s[idx>>3]
}

// GetBit reports whether the section at idx is set.
func (s Section512) GetBit(idx uint16) bool {
	return (s[idx>>3]>>(idx&7))&1 != 0
}

// SetBit sets the section at idx.
func (s *Section512) SetBit(idx uint16) {
	*s.lane(idx) |= 1 << (idx & 7)
}

// ClearBit clears the section at idx.
func (s *Section512) ClearBit(idx uint16) {
	*s.lane(idx) &^= 1 << (idx & 7)
}

// ModifyBit sets or clears the section at idx according to value.
func (s *Section512) ModifyBit(idx uint16, value bool) {
	l := s.lane(idx)
	bit := byte(1) << (idx & 7)
	if value {
		*l |= bit
	} else {
		*l &^= bit
	}
}

// OrBit sets the section at idx when value is true; it never clears.
func (s *Section512) OrBit(idx uint16, value bool) {
	if value {
		s.SetBit(idx)
	}
}

// And returns the lane-wise AND of a and b.
func And(a, b Section512) Section512 {
	var out Section512
	for i := range out {
		out[i] = a[i] & b[i]
	}
	return out
}

// Or returns the lane-wise OR of a and b.
func Or(a, b Section512) Section512 {
	var out Section512
	for i := range out {
		out[i] = a[i] | b[i]
	}
	return out
}

// AndInto ANDs other into s in place.
func (s *Section512) AndInto(other Section512) {
	for i := range s {
		s[i] &= other[i]
	}
}

// OrInto ORs other into s in place.
func (s *Section512) OrInto(other Section512) {
	for i := range s {
		s[i] |= other[i]
	}
}

// IsEmpty reports whether every bit in s is clear.
func (s Section512) IsEmpty() bool {
	return s == Empty
}

// swizzle rebuilds a section vector by copying byte lanes of src according
// to indices, where an index of 64 means "write zero". It is the Go
// equivalent of the fixed swizzle tables the lane shifts below are built
// from.
func swizzle(src Section512, indices [64]uint8) Section512 {
	var out Section512
	for i, idx := range indices {
		if idx == 64 {
			out[i] = 0
		} else {
			out[i] = src[idx]
		}
	}
	return out
}

// ShiftNegX shifts every section one step in the -X direction, discarding
// sections that fall off the x=0 face.
func ShiftNegX(sections Section512) Section512 {
	var out Section512
	for i, lane := range sections {
		out[i] = lane >> 1
	}
	return out
}

// ShiftPosX shifts every section one step in the +X direction, discarding
// sections that fall off the x=7 face.
func ShiftPosX(sections Section512) Section512 {
	var out Section512
	for i, lane := range sections {
		out[i] = lane << 1
	}
	return out
}

var shiftNegZIndices = [64]uint8{
	1, 2, 3, 4, 5, 6, 7, 64,
	9, 10, 11, 12, 13, 14, 15, 64,
	17, 18, 19, 20, 21, 22, 23, 64,
	25, 26, 27, 28, 29, 30, 31, 64,
	33, 34, 35, 36, 37, 38, 39, 64,
	41, 42, 43, 44, 45, 46, 47, 64,
	49, 50, 51, 52, 53, 54, 55, 64,
	57, 58, 59, 60, 61, 62, 63, 64,
}

// ShiftNegZ shifts every section one step in the -Z direction.
func ShiftNegZ(sections Section512) Section512 {
	return swizzle(sections, shiftNegZIndices)
}

var shiftPosZIndices = [64]uint8{
	64, 0, 1, 2, 3, 4, 5, 6,
	64, 8, 9, 10, 11, 12, 13, 14,
	64, 16, 17, 18, 19, 20, 21, 22,
	64, 24, 25, 26, 27, 28, 29, 30,
	64, 32, 33, 34, 35, 36, 37, 38,
	64, 40, 41, 42, 43, 44, 45, 46,
	64, 48, 49, 50, 51, 52, 53, 54,
	64, 56, 57, 58, 59, 60, 61, 62,
}

// ShiftPosZ shifts every section one step in the +Z direction.
func ShiftPosZ(sections Section512) Section512 {
	return swizzle(sections, shiftPosZIndices)
}

var shiftNegYIndices = [64]uint8{
	8, 9, 10, 11, 12, 13, 14, 15,
	16, 17, 18, 19, 20, 21, 22, 23,
	24, 25, 26, 27, 28, 29, 30, 31,
	32, 33, 34, 35, 36, 37, 38, 39,
	40, 41, 42, 43, 44, 45, 46, 47,
	48, 49, 50, 51, 52, 53, 54, 55,
	56, 57, 58, 59, 60, 61, 62, 63,
	64, 64, 64, 64, 64, 64, 64, 64,
}

// ShiftNegY shifts every section one step in the -Y direction.
func ShiftNegY(sections Section512) Section512 {
	return swizzle(sections, shiftNegYIndices)
}

var shiftPosYIndices = [64]uint8{
	64, 64, 64, 64, 64, 64, 64, 64,
	0, 1, 2, 3, 4, 5, 6, 7,
	8, 9, 10, 11, 12, 13, 14, 15,
	16, 17, 18, 19, 20, 21, 22, 23,
	24, 25, 26, 27, 28, 29, 30, 31,
	32, 33, 34, 35, 36, 37, 38, 39,
	40, 41, 42, 43, 44, 45, 46, 47,
	48, 49, 50, 51, 52, 53, 54, 55,
}

// ShiftPosY shifts every section one step in the +Y direction.
func ShiftPosY(sections Section512) Section512 {
	return swizzle(sections, shiftPosYIndices)
}

// EdgeNegToPosX extracts the x=0 face and places it at the x=7 face of an
// otherwise empty vector — the slab a neighbor tile on our +X side
// contributes through its -X face.
func EdgeNegToPosX(sections Section512) Section512 {
	var out Section512
	for i, lane := range sections {
		out[i] = lane << 7
	}
	return out
}

// EdgePosToNegX extracts the x=7 face and places it at the x=0 face.
func EdgePosToNegX(sections Section512) Section512 {
	var out Section512
	for i, lane := range sections {
		out[i] = lane >> 7
	}
	return out
}

var edgeNegToPosZIndices = [64]uint8{
	64, 64, 64, 64, 64, 64, 64, 0,
	64, 64, 64, 64, 64, 64, 64, 8,
	64, 64, 64, 64, 64, 64, 64, 16,
	64, 64, 64, 64, 64, 64, 64, 24,
	64, 64, 64, 64, 64, 64, 64, 32,
	64, 64, 64, 64, 64, 64, 64, 40,
	64, 64, 64, 64, 64, 64, 64, 48,
	64, 64, 64, 64, 64, 64, 64, 56,
}

// EdgeNegToPosZ extracts the z=0 face and places it at the z=7 face.
func EdgeNegToPosZ(sections Section512) Section512 {
	return swizzle(sections, edgeNegToPosZIndices)
}

var edgePosToNegZIndices = [64]uint8{
	7, 64, 64, 64, 64, 64, 64, 64,
	15, 64, 64, 64, 64, 64, 64, 64,
	23, 64, 64, 64, 64, 64, 64, 64,
	31, 64, 64, 64, 64, 64, 64, 64,
	39, 64, 64, 64, 64, 64, 64, 64,
	47, 64, 64, 64, 64, 64, 64, 64,
	55, 64, 64, 64, 64, 64, 64, 64,
	63, 64, 64, 64, 64, 64, 64, 64,
}

// EdgePosToNegZ extracts the z=7 face and places it at the z=0 face.
func EdgePosToNegZ(sections Section512) Section512 {
	return swizzle(sections, edgePosToNegZIndices)
}

var edgeNegToPosYIndices = [64]uint8{
	64, 65, 66, 67, 68, 69, 70, 71,
	72, 73, 74, 75, 76, 77, 78, 79,
	80, 81, 82, 83, 84, 85, 86, 87,
	88, 89, 90, 91, 92, 93, 94, 95,
	96, 97, 98, 99, 100, 101, 102, 103,
	104, 105, 106, 107, 108, 109, 110, 111,
	112, 113, 114, 115, 116, 117, 118, 119,
	0, 1, 2, 3, 4, 5, 6, 7,
}

// EdgeNegToPosY extracts the y=0 face and places it at the y=7 face. The
// swizzle table indexes past lane 63 on most rows; those reads always fall
// on the zero-filled operand, so they resolve to 0 the same as the sentinel
// index 64 does elsewhere.
func EdgeNegToPosY(sections Section512) Section512 {
	var out Section512
	for i, idx := range edgeNegToPosYIndices {
		if int(idx) >= len(sections) {
			out[i] = 0
		} else {
			out[i] = sections[idx]
		}
	}
	return out
}

var edgePosToNegYIndices = [64]uint8{
	56, 57, 58, 59, 60, 61, 62, 63,
	64, 65, 66, 67, 68, 69, 70, 71,
	72, 73, 74, 75, 76, 77, 78, 79,
	80, 81, 82, 83, 84, 85, 86, 87,
	88, 89, 90, 91, 92, 93, 94, 95,
	96, 97, 98, 99, 100, 101, 102, 103,
	104, 105, 106, 107, 108, 109, 110, 111,
	112, 113, 114, 115, 116, 117, 118, 119,
}

// EdgePosToNegY extracts the y=7 face and places it at the y=0 face. See
// EdgeNegToPosY for why out-of-range indices here read as zero.
func EdgePosToNegY(sections Section512) Section512 {
	var out Section512
	for i, idx := range edgePosToNegYIndices {
		if int(idx) >= len(sections) {
			out[i] = 0
		} else {
			out[i] = sections[idx]
		}
	}
	return out
}

// GenOutwardDirectionMasks builds, for each of the 6 directions, a mask of
// every section lying on or beyond the camera's own section along that
// direction's axis. These bias flood-fill traversal away from
// re-entering sections already behind the camera when both a direction
// and its opposite are being traversed simultaneously.
func GenOutwardDirectionMasks(cameraSectionInTile [3]uint8) [6]Section512 {
	cx, cy, cz := cameraSectionInTile[0], cameraSectionInTile[1], cameraSectionInTile[2]

	// X is the bit position within a lane byte, so these masks select x
	// values directly.
	negXLane := byte((uint16(0b10) << cx) - 1)
	posXLane := byte(0xff << cx)

	// Y and Z select whole lanes (whole rows of 8 sections on X), so their
	// masks decide, per row, whether to fill the lane with 0xff or 0.
	negYRows := byte((uint16(0b10) << cy) - 1)
	posYRows := byte(0xff << cy)

	var negX, posX, negY, posY, negZ, posZ Section512
	for y := uint8(0); y < 8; y++ {
		rowIncludedNeg := (negYRows>>y)&1 != 0
		rowIncludedPos := (posYRows>>y)&1 != 0
		for z := uint8(0); z < 8; z++ {
			lane := int(y)*8 + int(z)
			negX[lane] = negXLane
			posX[lane] = posXLane
			if rowIncludedNeg {
				negY[lane] = 0xff
			}
			if rowIncludedPos {
				posY[lane] = 0xff
			}
			if z <= cz {
				negZ[lane] = 0xff
			}
			if z >= cz {
				posZ[lane] = 0xff
			}
		}
	}

	return [6]Section512{negX, negY, negZ, posX, posY, posZ}
}
