// Package hypercull implements a hierarchical visibility-culling engine for
// a voxel-world renderer: given a camera frustum, fog distance, and a
// per-section visibility graph supplied by the host, it determines which
// 16-block sections of the world are potentially visible this frame.
package hypercull

import (
	"fmt"
	"log/slog"

	"github.com/burgerindividual/hypercull/bitset"
	"github.com/burgerindividual/hypercull/coords"
	"github.com/burgerindividual/hypercull/direction"
	"github.com/burgerindividual/hypercull/searchctx"
	"github.com/burgerindividual/hypercull/tile"
)

// maxAxisLengthTiles and maxTotalTiles bound a graph so its coordinates fit
// in an int8 without wrapping and its dense index fits in a uint16.
const (
	maxAxisLengthTiles = 64
	maxTotalTiles      = 1 << 16
)

// Graph owns a graph's tile array, coordinate space, and the scratch output
// buffer a cull fills in. The tile array is allocated once at creation and
// reused by every subsequent cull.
type Graph struct {
	tiles []tile.Tile

	coordSpace coords.GraphCoordSpace

	doHeightChecks           bool
	topTileVisibilityMask    bitset.Section512
	oobAboveIncomingSections bitset.Section512

	// processed tracks, per tile index, whether the current cull has
	// already visited it. Only consulted in debug builds; see
	// graph_debug.go / graph_release.go.
	processed []bool

	VisibleTiles []FFITile
}

// NewGraph derives a graph's tile dimensions from a render distance and
// world vertical extents, the same way Minecraft's client chunk cache
// derives its storage radius, and allocates the tile array. It panics if
// the resulting dimensions can't be represented in the graph's coordinate
// types — a render distance and world height a host would never plausibly
// pass together.
func NewGraph(renderDistance uint8, worldBottomSectionY, worldTopSectionY int8) *Graph {
	storageDistance := renderDistance
	if storageDistance < 2 {
		storageDistance = 2
	}
	storageDistance += 3

	ySectionSpan := int32(worldTopSectionY) - int32(worldBottomSectionY) + 1
	xzSectionSpan := int32(storageDistance)*2 + 1

	if ySectionSpan <= 0 || xzSectionSpan <= 0 {
		panic(fmt.Errorf(
			"invalid graph size - render distance: %d, bottom section: %d, top section: %d",
			renderDistance, worldBottomSectionY, worldTopSectionY,
		))
	}

	yLengthTiles := clampTileAxis(nextMultipleOf8(ySectionSpan) >> 3)
	xzLengthTiles := clampTileAxis(nextMultipleOf8(xzSectionSpan) >> 3)

	totalTiles := int(yLengthTiles) * int(xzLengthTiles) * int(xzLengthTiles)

	if yLengthTiles > maxAxisLengthTiles || xzLengthTiles > maxAxisLengthTiles || totalTiles > maxTotalTiles {
		panic(fmt.Errorf(
			"graph size is too large - y length (tiles): %d, xz length (tiles): %d",
			yLengthTiles, xzLengthTiles,
		))
	}

	sectionHeightInTopTile := uint16(ySectionSpan) % coords.LengthInSections
	doHeightChecks := sectionHeightInTopTile != 0

	topTileVisibilityMask := bitset.Filled
	if doHeightChecks {
		topTileVisibilityMask = tile.GenTopTileVisibilityMask(sectionHeightInTopTile)
	}

	g := &Graph{
		tiles: make([]tile.Tile, totalTiles),
		coordSpace: coords.NewGraphCoordSpace(
			uint8(yLengthTiles), uint8(xzLengthTiles), worldBottomSectionY, worldTopSectionY,
		),
		doHeightChecks:           doHeightChecks,
		topTileVisibilityMask:    topTileVisibilityMask,
		oobAboveIncomingSections: tile.GenOOBAboveIncomingSections(sectionHeightInTopTile),
		processed:                make([]bool, totalTiles),
		VisibleTiles:             make([]FFITile, 0, 128),
	}

	slog.Info("created hypercull graph",
		"y_length_tiles", yLengthTiles,
		"xz_length_tiles", xzLengthTiles,
		"total_tiles", totalTiles,
		"do_height_checks", doHeightChecks,
	)

	return g
}

func nextMultipleOf8(v int32) int32 {
	return (v + 7) &^ 7
}

func clampTileAxis(v int32) uint16 {
	if v < 2 {
		return 2
	}
	return uint16(v)
}

// CoordSpace returns the graph's coordinate space, for hosts that need to
// convert world coordinates themselves (e.g. to call SetSection).
func (g *Graph) CoordSpace() coords.GraphCoordSpace {
	return g.coordSpace
}

// SetSection updates one section's connectivity graph: visibility is a
// 64-bit word whose 15 meaningful bits, at the positions given by
// direction.BitIndexForConnection, say whether sight passes between each
// pair of the section's faces. It panics if sectionCoords falls outside the
// graph's world height.
func (g *Graph) SetSection(sectionCoords [3]int32, visibility uint64) {
	tileCoords, sectionInTile := g.coordSpace.SectionToTileCoords(sectionCoords)

	if !g.coordSpace.TileCoordsInBounds(tileCoords) {
		panic(fmt.Errorf(
			"tile Y coordinate out of bounds - y: %d, graph height: %d",
			tileCoords.Y, g.coordSpace.YLengthTiles,
		))
	}

	tileIndex := g.coordSpace.PackIndex(tileCoords)
	sectionIndex := tile.SectionIndex(sectionInTile[0], sectionInTile[1], sectionInTile[2])

	t := &g.tiles[tileIndex]
	for connIdx := range t.ConnectionSectionSets {
		bitIdx := direction.BitIndexForConnection(connIdx)
		bit := (visibility>>bitIdx)&1 != 0
		t.ConnectionSectionSets[connIdx].ModifyBit(sectionIndex, bit)
	}
}

// Cull runs one full visibility search, clearing the previous result and
// repopulating VisibleTiles. The contents of VisibleTiles are only valid
// until the next call to Cull or until the graph is discarded.
func (g *Graph) Cull(ctx *searchctx.GraphSearchContext) {
	g.clear()
	g.iterateTiles(ctx)
}

func (g *Graph) clear() {
	g.VisibleTiles = g.VisibleTiles[:0]
	resetProcessedFlags(g.processed)
}
