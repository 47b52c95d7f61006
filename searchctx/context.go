// Package searchctx derives the per-frame state a cull needs from a raw
// camera pose: the frustum evaluator, the camera's position split into a
// graph-local integer part and a small fractional remainder, which tile to
// start iterating from, and how far to step in each direction before the
// search distance is exhausted.
package searchctx

import (
	"fmt"
	"math"

	"github.com/burgerindividual/hypercull/bitset"
	"github.com/burgerindividual/hypercull/coords"
	"github.com/burgerindividual/hypercull/direction"
	"github.com/burgerindividual/hypercull/tile"
)

// CameraArea classifies the camera's position relative to the graph's
// vertical world bounds. A camera above or below the world still needs to
// search toward it, just starting from a tile coordinate one past the
// graph's edge.
type CameraArea uint8

const (
	Inside CameraArea = iota
	Above
	Below
)

// GraphSearchContext holds everything about a camera's pose and search
// distance that stays constant across the whole cull built from it.
type GraphSearchContext struct {
	Frustum tile.Frustum

	GlobalSectionOffset [3]int32

	FogDistance float32

	// CameraPosInt and CameraPosFrac are the camera position, in graph-local
	// block coordinates, split into an integer part and a fractional
	// remainder. CameraPosFrac is never negative; see NewGraphSearchContext.
	CameraPosInt  [3]int32
	CameraPosFrac [3]float32
	CameraArea    CameraArea

	CameraSectionInTile [3]uint8

	IterStartTileCoords coords.LocalTileCoords
	DirectionStepCounts [direction.Count]uint8

	UseOcclusionCulling bool

	OutwardDirectionMasks [direction.Count]bitset.Section512
}

// precisionModifier is subtracted back out after being added, which rounds
// off the low-order bits a double's fractional part has that a float32
// can't represent anyway. Without this step, positions far from the world
// origin produce a fractional part whose float32 rounding varies with the
// integer part, which shows up as jittering geometry.
const precisionModifier = 128.0

// NewGraphSearchContext derives a search context from a camera pose. It
// panics if searchDistance is negative, exceeds the graph's maximum
// searchable distance, or globalCameraPos cannot be represented losslessly
// as block integers after flooring — all three indicate the host passed a
// position hypercull was never designed to search from.
func NewGraphSearchContext(
	coordSpace coords.GraphCoordSpace,
	frustumPlanes [6]tile.Plane,
	globalCameraPos [3]float64,
	searchDistance float32,
	useOcclusionCulling bool,
) GraphSearchContext {
	if searchDistance < 0 {
		panic(fmt.Errorf("search distance must not be negative: %v", searchDistance))
	}

	maxSearchDistance := float32(coordSpace.XZLengthTiles) * coords.LengthInBlocks
	if searchDistance > maxSearchDistance {
		panic(fmt.Errorf("search distance exceeds maximum for graph - search distance: %v, maximum: %v", searchDistance, maxSearchDistance))
	}

	frustum := tile.NewFrustum(frustumPlanes)

	var globalCameraPosFloor [3]float64
	for i := range globalCameraPosFloor {
		globalCameraPosFloor[i] = math.Floor(globalCameraPos[i])
	}

	var cameraPosFrac [3]float32
	for i := range cameraPosFrac {
		frac := float32(globalCameraPos[i] - globalCameraPosFloor[i])
		cameraPosFrac[i] = (frac + precisionModifier) - precisionModifier
	}

	var globalCameraPosInt [3]int32
	for i := range globalCameraPosInt {
		globalCameraPosInt[i] = int32(globalCameraPosFloor[i])
		if float64(globalCameraPosInt[i]) != globalCameraPosFloor[i] {
			panic(fmt.Errorf("camera position out of bounds: %v", globalCameraPos))
		}
	}

	localCameraPosInt := coordSpace.BlockToLocalCoords(globalCameraPosInt)

	var globalSectionOffset [3]int32
	for i := range globalSectionOffset {
		globalSectionOffset[i] = (globalCameraPosInt[i] - localCameraPosInt[i]) >> 4
	}

	var localCameraPos [3]float64
	for i := range localCameraPos {
		localCameraPos[i] = float64(localCameraPosInt[i]) + float64(cameraPosFrac[i])
	}

	iterStartTileCoords := coords.LocalTileCoords{
		X: int8(localCameraPosInt[0] >> 7),
		Y: int8(localCameraPosInt[1] >> 7),
		Z: int8(localCameraPosInt[2] >> 7),
	}

	globalTopBlockY := ((int32(coordSpace.WorldTopSectionY) + 1) << 4) - 1
	globalBottomBlockY := int32(coordSpace.WorldBottomSectionY) << 4

	var area CameraArea
	switch {
	case globalCameraPosInt[1] > globalTopBlockY:
		iterStartTileCoords.Y = int8(coordSpace.YLengthTiles)
		area = Above
	case globalCameraPosInt[1] < globalBottomBlockY:
		iterStartTileCoords.Y = -1
		area = Below
	default:
		area = Inside
	}

	localTopBlockY := uint16(globalTopBlockY - globalBottomBlockY)

	positiveStepCounts := positiveDirectionStepCounts(localCameraPos, searchDistance, localTopBlockY, iterStartTileCoords)
	negativeStepCounts := negativeDirectionStepCounts(localCameraPos, searchDistance, localTopBlockY, iterStartTileCoords)

	directionStepCounts := [direction.Count]uint8{
		negativeStepCounts[0], negativeStepCounts[1], negativeStepCounts[2],
		positiveStepCounts[0], positiveStepCounts[1], positiveStepCounts[2],
	}

	cameraSectionInTile := [3]uint8{
		uint8(localCameraPosInt[0]>>4) & 0b111,
		uint8(localCameraPosInt[1]>>4) & 0b111,
		uint8(localCameraPosInt[2]>>4) & 0b111,
	}

	return GraphSearchContext{
		Frustum:               frustum,
		GlobalSectionOffset:   globalSectionOffset,
		FogDistance:           searchDistance,
		CameraPosInt:          localCameraPosInt,
		CameraPosFrac:         cameraPosFrac,
		CameraArea:            area,
		CameraSectionInTile:   cameraSectionInTile,
		IterStartTileCoords:   iterStartTileCoords,
		DirectionStepCounts:   directionStepCounts,
		UseOcclusionCulling:   useOcclusionCulling,
		OutwardDirectionMasks: bitset.GenOutwardDirectionMasks(cameraSectionInTile),
	}
}

func positiveDirectionStepCounts(localCameraPos [3]float64, searchDistance float32, localTopBlockY uint16, iterStart coords.LocalTileCoords) [3]uint8 {
	var iterEndBlock [3]uint16
	for i := range iterEndBlock {
		v := math.Floor(localCameraPos[i] + float64(searchDistance))
		iterEndBlock[i] = clampToUint16(v)
	}
	iterEndBlock[1] = clampUint16(iterEndBlock[1], 0, localTopBlockY)

	iterEndTile := [3]int16{
		int16(iterEndBlock[0] >> 7),
		int16(iterEndBlock[1] >> 7),
		int16(iterEndBlock[2] >> 7),
	}

	start := [3]int16{int16(iterStart.X), int16(iterStart.Y), int16(iterStart.Z)}

	var out [3]uint8
	for i := range out {
		d := iterEndTile[i] - start[i]
		if d < 0 {
			d = 0
		}
		out[i] = uint8(d)
	}
	return out
}

func negativeDirectionStepCounts(localCameraPos [3]float64, searchDistance float32, localTopBlockY uint16, iterStart coords.LocalTileCoords) [3]uint8 {
	var iterEndBlock [3]int16
	for i := range iterEndBlock {
		v := math.Floor(localCameraPos[i] - float64(searchDistance))
		iterEndBlock[i] = clampToInt16(v)
	}
	iterEndBlock[1] = clampInt16(iterEndBlock[1], 0, int16(localTopBlockY))

	iterEndTile := [3]int16{
		iterEndBlock[0] >> 7,
		iterEndBlock[1] >> 7,
		iterEndBlock[2] >> 7,
	}

	start := [3]int16{int16(iterStart.X), int16(iterStart.Y), int16(iterStart.Z)}

	var out [3]uint8
	for i := range out {
		d := start[i] - iterEndTile[i]
		if d < 0 {
			d = 0
		}
		out[i] = uint8(d)
	}
	return out
}

func clampToUint16(v float64) uint16 {
	if v < 0 {
		return 0
	}
	if v > math.MaxUint16 {
		return math.MaxUint16
	}
	return uint16(v)
}

func clampToInt16(v float64) int16 {
	if v < math.MinInt16 {
		return math.MinInt16
	}
	if v > math.MaxInt16 {
		return math.MaxInt16
	}
	return int16(v)
}

func clampUint16(v, lo, hi uint16) uint16 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt16(v, lo, hi int16) int16 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// RelativeTilePos returns a tile's origin position relative to the camera,
// in blocks, for use by the voxelizers.
func (c GraphSearchContext) RelativeTilePos(tileCoords coords.LocalTileCoords) [3]float32 {
	blockCoords := tileCoords.ToLocalBlockCoords()

	var out [3]float32
	for i := 0; i < 3; i++ {
		diff := blockCoords[i] - c.CameraPosInt[i]
		out[i] = float32(diff) - c.CameraPosFrac[i]
	}
	return out
}

// VoxelizeFogCylinder ANDs visibleSections with the fog cylinder's
// per-section voxelization at relativeTilePos.
func (c GraphSearchContext) VoxelizeFogCylinder(relativeTilePos [3]float32, visibleSections *bitset.Section512) {
	visibleSections.AndInto(tile.VoxelizeCylinder(relativeTilePos, c.FogDistance))
}

// TestTile runs the frustum, fog, and (optionally) height outside-tests for
// one tile, short-circuiting as soon as the tile is known fully outside.
func (c GraphSearchContext) TestTile(
	coordSpace coords.GraphCoordSpace,
	tileCoords coords.LocalTileCoords,
	relativePos [3]float32,
	doHeightChecks bool,
) tile.CombinedTestResults {
	results := tile.AllInside

	far := [3]float32{
		relativePos[0] + coords.LengthInBlocks,
		relativePos[1] + coords.LengthInBlocks,
		relativePos[2] + coords.LengthInBlocks,
	}
	bb := coords.NewExtendedRelativeBoundingBox(relativePos, far)

	c.Frustum.TestBox(bb, &results)
	if results.IsOutside() {
		return results
	}

	tile.FogTestBox(bb, c.FogDistance, &results)
	if results.IsOutside() {
		return results
	}

	if doHeightChecks {
		tile.HeightTestCoords(coordSpace, tileCoords, &results)
	}

	return results
}
