package hypercull

import "encoding/binary"

// FFITile is one visible tile's result, in the wire format a host consumes:
// the global section coordinates of the tile's (0,0,0) corner, and its
// 512-bit visible-sections mask packed as eight little-endian 64-bit
// words. Word 0, bit 0 corresponds to section (x=0,y=0,z=0); bit index
// within the 512 bits is (y<<6)|(z<<3)|x, matching bitset.Index.
type FFITile struct {
	OriginSectionCoords [3]int32
	VisibleSections      [8]uint64
}

// NewFFITile packs a tile's global origin and a Section512 mask into the
// host-facing wire representation.
func NewFFITile(originSectionCoords [3]int32, visibleSections [64]byte) FFITile {
	var words [8]uint64
	for i := range words {
		words[i] = binary.LittleEndian.Uint64(visibleSections[i*8 : i*8+8])
	}

	return FFITile{
		OriginSectionCoords: originSectionCoords,
		VisibleSections:     words,
	}
}
