package tile

import (
	"github.com/burgerindividual/hypercull/bitset"
	"github.com/burgerindividual/hypercull/coords"
)

// HeightTestCoords checks a tile's Y coordinate against the graph's world
// height. A tile above the top of the graph is entirely outside; the
// topmost in-bounds tile is partial, since the world may not fill every
// section of it.
func HeightTestCoords(space coords.GraphCoordSpace, tileCoords coords.LocalTileCoords, results *CombinedTestResults) {
	worldMaxY := int8(space.YLengthTiles) - 1

	if tileCoords.Y > worldMaxY {
		*results = Outside
		return
	}

	results.SetHeightPartial(tileCoords.Y == worldMaxY)
}

// GenTopTileVisibilityMask returns a mask selecting the Y rows of the
// topmost tile that still lie within the world, given how many sections
// of that tile's height are in bounds.
func GenTopTileVisibilityMask(sectionHeightInTopTile uint16) bitset.Section512 {
	heightMaskSmall := (uint8(1) << uint(sectionHeightInTopTile)) - 1

	var out bitset.Section512
	for y := 0; y < 8; y++ {
		if (heightMaskSmall>>uint(y))&1 != 0 {
			for z := 0; z < 8; z++ {
				out[y*8+z] = 0xff
			}
		}
	}
	return out
}

// OutOfBoundsBelowIncomingSections is the synthetic incoming-section set
// used in place of a -Y neighbor tile when the graph has no tile below:
// the world is assumed to be fully visible below its bottom section, so
// every section in the bottom Y-row of the tile above it is treated as lit
// from below. Unlike the top of the graph, the bottom is never partial —
// a world's bottom section is always a full tile boundary.
var OutOfBoundsBelowIncomingSections = func() bitset.Section512 {
	var out bitset.Section512
	for z := 0; z < 8; z++ {
		out[z] = 0xff
	}
	return out
}()

// GenOOBAboveIncomingSections returns the mask of sections a tile directly
// above the world top would contribute as "incoming" if it existed: since
// there is no tile there, any space above the real world top is always
// treated as visible so traversal doesn't falsely stop at the world
// ceiling.
func GenOOBAboveIncomingSections(sectionHeightInTopTile uint16) bitset.Section512 {
	shiftAmount := (sectionHeightInTopTile + 7) & 0b111
	heightMaskSmall := ^((uint8(1) << shiftAmount) - 1)

	var out bitset.Section512
	for y := 0; y < 8; y++ {
		if (heightMaskSmall>>uint(y))&1 != 0 {
			for z := 0; z < 8; z++ {
				out[y*8+z] = 0xff
			}
		}
	}
	return out
}
