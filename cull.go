package hypercull

import (
	"github.com/burgerindividual/hypercull/bitset"
	"github.com/burgerindividual/hypercull/coords"
	"github.com/burgerindividual/hypercull/direction"
	"github.com/burgerindividual/hypercull/searchctx"
	"github.com/burgerindividual/hypercull/tile"
)

// axisIterations, planeIterations, and octantIterations give the fixed
// tile visitation order a cull follows after the center tile: six axial
// rays, twelve planar quadrants, then eight octants. Each entry lists the
// directions stepped, outermost first. This order guarantees every tile is
// visited only after the neighbor(s) its incoming edges depend on have
// already been processed — reordering it breaks flood-fill correctness.
var axisIterations = [][]uint8{
	{direction.PosX},
	{direction.PosZ},
	{direction.PosY},
	{direction.NegX},
	{direction.NegZ},
	{direction.NegY},
}

var planeIterations = [][]uint8{
	{direction.NegY, direction.PosX},
	{direction.NegZ, direction.PosX},
	{direction.PosZ, direction.PosX},
	{direction.PosY, direction.PosX},
	{direction.NegY, direction.PosZ},
	{direction.PosY, direction.PosZ},
	{direction.PosY, direction.NegX},
	{direction.PosZ, direction.NegX},
	{direction.NegZ, direction.NegX},
	{direction.NegY, direction.NegX},
	{direction.PosY, direction.NegZ},
	{direction.NegY, direction.NegZ},
}

var octantIterations = [][]uint8{
	{direction.NegY, direction.NegZ, direction.PosX},
	{direction.NegY, direction.PosZ, direction.PosX},
	{direction.PosY, direction.NegZ, direction.PosX},
	{direction.PosY, direction.PosZ, direction.PosX},
	{direction.PosY, direction.PosZ, direction.NegX},
	{direction.PosY, direction.NegZ, direction.NegX},
	{direction.NegY, direction.PosZ, direction.NegX},
	{direction.NegY, direction.NegZ, direction.NegX},
}

func (g *Graph) iterateTiles(ctx *searchctx.GraphSearchContext) {
	if shouldProcess(0, ctx.CameraArea) {
		idx := g.coordSpace.PackIndex(ctx.IterStartTileCoords)
		g.processTile(ctx, idx, ctx.IterStartTileCoords, 0, direction.All)
	}

	for _, dirs := range axisIterations {
		g.maybeIterateDirs(ctx, dirs)
	}
	for _, dirs := range planeIterations {
		g.maybeIterateDirs(ctx, dirs)
	}
	for _, dirs := range octantIterations {
		g.maybeIterateDirs(ctx, dirs)
	}
}

// maybeIterateDirs derives the incoming/traversal direction sets for one
// ray, plane, or octant sweep and walks it, unless the camera being above
// or below the world makes the whole sweep unreachable.
func (g *Graph) maybeIterateDirs(ctx *searchctx.GraphSearchContext, dirs []uint8) {
	var dirsSet uint8
	for _, d := range dirs {
		dirsSet |= d
	}

	incomingDirs := direction.Opposite(dirsSet)
	if !shouldProcess(incomingDirs, ctx.CameraArea) {
		return
	}

	traversalDirs := direction.AllExcept(incomingDirs)
	g.iterateDirs(ctx, ctx.IterStartTileCoords, dirs, incomingDirs, traversalDirs)
}

// iterateDirs walks every tile reachable from startCoords by stepping
// dirs[0] some number of times and, for every intermediate point, stepping
// the remaining directions in turn. dirs must not be empty.
func (g *Graph) iterateDirs(
	ctx *searchctx.GraphSearchContext,
	startCoords coords.LocalTileCoords,
	dirs []uint8,
	incomingDirs, traversalDirs uint8,
) {
	lastDirection := len(dirs) == 1
	dir := dirs[0]
	steps := ctx.DirectionStepCounts[direction.ToIndex(dir)]

	c := startCoords
	for i := uint8(0); i < steps; i++ {
		c = c.Step(dir)

		if lastDirection {
			idx := g.coordSpace.PackIndex(c)
			g.processTile(ctx, idx, c, incomingDirs, traversalDirs)
		} else {
			g.iterateDirs(ctx, c, dirs[1:], incomingDirs, traversalDirs)
		}
	}
}

// shouldProcess reports whether a tile whose computed incoming directions
// are incomingDirs is reachable at all. A camera above the world can only
// be approached from +Y; below, only from -Y.
func shouldProcess(incomingDirs uint8, area searchctx.CameraArea) bool {
	switch area {
	case searchctx.Above:
		return direction.Contains(incomingDirs, direction.PosY)
	case searchctx.Below:
		return direction.Contains(incomingDirs, direction.NegY)
	default:
		return true
	}
}

func (g *Graph) processTile(
	ctx *searchctx.GraphSearchContext,
	index coords.LocalTileIndex,
	tileCoords coords.LocalTileCoords,
	incomingDirs, traversalDirs uint8,
) {
	relativeTilePos := ctx.RelativeTilePos(tileCoords)
	testResult := ctx.TestTile(g.coordSpace, tileCoords, relativeTilePos, g.doHeightChecks)

	t := &g.tiles[index]
	markProcessed(g.processed, index)

	if testResult.IsOutside() {
		t.SetEmpty()
		return
	}

	visibleSections := bitset.Filled

	if planes := testResult.IntersectingPlanes(); planes != 0 {
		ctx.Frustum.VoxelizePlanes(planes, relativeTilePos, &visibleSections)
	}

	if testResult.NeedsFogVoxelization() {
		ctx.VoxelizeFogCylinder(relativeTilePos, &visibleSections)
	}

	if testResult.NeedsHeightVoxelization() {
		visibleSections.AndInto(g.topTileVisibilityMask)
	}

	if ctx.UseOcclusionCulling {
		t.SetEmpty()

		var traverseStart bitset.Section512
		var incomingSets [direction.Count]bitset.Section512

		if incomingDirs == 0 {
			sectionIndex := tile.SectionIndex(
				ctx.CameraSectionInTile[0], ctx.CameraSectionInTile[1], ctx.CameraSectionInTile[2],
			)
			traverseStart.SetBit(sectionIndex)
			t.SetupCenterTile(sectionIndex)
		} else {
			g.getIncomingEdges(tileCoords, ctx.CameraArea, visibleSections, incomingDirs, &traverseStart, &incomingSets)

			if traverseStart.IsEmpty() {
				// fast path: starting the traversal from nothing visible can
				// only ever end with nothing visible.
				t.SetEmpty()
				return
			}
		}

		angleMasks := tile.VisibilityMasks(relativeTilePos)

		t.Traverse(traversalDirs, traverseStart, &incomingSets, &ctx.OutwardDirectionMasks, &angleMasks, &visibleSections)
	}

	if !visibleSections.IsEmpty() {
		localSectionCoords := [3]int32{
			int32(tileCoords.X) << 3,
			int32(tileCoords.Y) << 3,
			int32(tileCoords.Z) << 3,
		}

		globalSectionCoords := [3]int32{
			ctx.GlobalSectionOffset[0] + localSectionCoords[0],
			ctx.GlobalSectionOffset[1] + localSectionCoords[1],
			ctx.GlobalSectionOffset[2] + localSectionCoords[2],
		}

		g.VisibleTiles = append(g.VisibleTiles, NewFFITile(globalSectionCoords, visibleSections))
	}
}

// getIncomingEdges fetches every incoming-direction edge this tile needs
// given its position in the fixed iteration order, ANDs each against the
// tile's own visibility mask (a section can only receive traversal if it
// was already visible), and folds them into traverseStart.
func (g *Graph) getIncomingEdges(
	tileCoords coords.LocalTileCoords,
	area searchctx.CameraArea,
	visibilityMask bitset.Section512,
	incomingDirs uint8,
	traverseStart *bitset.Section512,
	incomingSets *[direction.Count]bitset.Section512,
) {
	dirs := incomingDirs
	for dirs != 0 {
		d := direction.TakeOne(&dirs)

		edge := bitset.And(g.getIncomingEdge(tileCoords, area, d), visibilityMask)
		traverseStart.OrInto(edge)
		incomingSets[direction.ToIndex(d)] = edge
	}
}

// getIncomingEdge fetches the sections a single neighbor tile would
// contribute as "incoming" through dir, special-casing the graph's
// vertical edges (where there is no neighbor tile to fetch) according to
// where the camera sits relative to the world.
func (g *Graph) getIncomingEdge(tileCoords coords.LocalTileCoords, area searchctx.CameraArea, dir uint8) bitset.Section512 {
	topTileY := int8(g.coordSpace.YLengthTiles) - 1

	if dir == direction.PosY && tileCoords.Y == topTileY {
		if area == searchctx.Above {
			return g.oobAboveIncomingSections
		}
		return bitset.Empty
	}
	if dir == direction.NegY && tileCoords.Y == 0 {
		if area == searchctx.Below {
			return tile.OutOfBoundsBelowIncomingSections
		}
		return bitset.Empty
	}

	neighborCoords := tileCoords.Step(dir)
	neighborIndex := g.coordSpace.PackIndex(neighborCoords)
	neighborTile := &g.tiles[neighborIndex]

	neighborOutgoing := neighborTile.OutgoingDirSectionSets[direction.ToIndex(direction.Opposite(dir))]

	switch dir {
	case direction.NegX:
		return bitset.EdgePosToNegX(neighborOutgoing)
	case direction.NegY:
		return bitset.EdgePosToNegY(neighborOutgoing)
	case direction.NegZ:
		return bitset.EdgePosToNegZ(neighborOutgoing)
	case direction.PosX:
		return bitset.EdgeNegToPosX(neighborOutgoing)
	case direction.PosY:
		return bitset.EdgeNegToPosY(neighborOutgoing)
	case direction.PosZ:
		return bitset.EdgeNegToPosZ(neighborOutgoing)
	default:
		panic("unreachable direction in getIncomingEdge")
	}
}
