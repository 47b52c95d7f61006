// Package coords implements the coordinate-space conversions between
// global section/block coordinates and the graph's local, wrapped tile and
// section coordinates.
package coords

import "github.com/burgerindividual/hypercull/direction"

// LengthInBlocks is the side length of a tile in blocks.
const LengthInBlocks = 128

// LengthInSections is the side length of a tile in sections.
const LengthInSections = 8

// GraphCoordSpace describes the dimensions of a graph's tile storage and
// the vertical bounds of the world it covers. X and Z wrap around the
// storage dimensions (the graph is a torus on those axes); Y never wraps.
type GraphCoordSpace struct {
	YLengthTiles  uint8
	XZLengthTiles uint8

	WorldBottomSectionY int8
	WorldTopSectionY    int8
}

// NewGraphCoordSpace builds a coordinate space. yLengthTiles and
// xzLengthTiles must each be >= 2 and < 128, and their product (times
// xzLengthTiles again) must be <= 65536 — callers deriving these from a
// render distance are expected to have already enforced that.
func NewGraphCoordSpace(yLengthTiles, xzLengthTiles uint8, worldBottomSectionY, worldTopSectionY int8) GraphCoordSpace {
	return GraphCoordSpace{
		YLengthTiles:        yLengthTiles,
		XZLengthTiles:       xzLengthTiles,
		WorldBottomSectionY: worldBottomSectionY,
		WorldTopSectionY:    worldTopSectionY,
	}
}

func euclidModInt32(a, m int32) int32 {
	r := a % m
	if r < 0 {
		r += m
	}
	return r
}

// TileCoordsInBounds reports whether coords' Y component lies within the
// graph's tile height. X and Z are wrapped and therefore always in bounds.
func (g GraphCoordSpace) TileCoordsInBounds(coords LocalTileCoords) bool {
	y := coords.Y
	return y >= 0 && int(y) < int(g.YLengthTiles)
}

// PackIndex packs tile coordinates into a dense YZX-ordered index for
// graph array storage. coords.Y must be in bounds; X and Z are
// Euclid-wrapped to the graph's storage width first.
func (g GraphCoordSpace) PackIndex(coords LocalTileCoords) LocalTileIndex {
	xzLen := int32(g.XZLengthTiles)
	xWrapped := uint16(euclidModInt32(int32(coords.X), xzLen))
	zWrapped := uint16(euclidModInt32(int32(coords.Z), xzLen))

	return LocalTileIndex((((uint16(coords.Y) * uint16(g.XZLengthTiles)) + zWrapped) * uint16(g.XZLengthTiles)) + xWrapped)
}

// SectionToTileCoords locates the tile a global section coordinate falls
// in, and that section's coordinates within the tile (each 0..7).
func (g GraphCoordSpace) SectionToTileCoords(sectionCoords [3]int32) (LocalTileCoords, [3]uint8) {
	shiftedY := sectionCoords[1] - int32(g.WorldBottomSectionY)

	scaledX := sectionCoords[0] >> 3
	scaledY := shiftedY >> 3
	scaledZ := sectionCoords[2] >> 3

	xzLen := int32(g.XZLengthTiles)
	wrappedX := int8(euclidModInt32(scaledX, xzLen))
	wrappedZ := int8(euclidModInt32(scaledZ, xzLen))

	tileCoords := LocalTileCoords{X: wrappedX, Y: int8(scaledY), Z: wrappedZ}

	sectionInTile := [3]uint8{
		uint8(sectionCoords[0]) & 0b111,
		uint8(shiftedY) & 0b111,
		uint8(sectionCoords[2]) & 0b111,
	}

	return tileCoords, sectionInTile
}

// BlockToLocalCoords converts global block coordinates into the graph's
// local block space: X and Z wrapped to the storage width in blocks, Y
// shifted down by the world's bottom section.
func (g GraphCoordSpace) BlockToLocalCoords(blockCoords [3]int32) [3]int32 {
	wrapWidth := int32(g.XZLengthTiles) * LengthInBlocks

	worldBottomBlockY := int32(g.WorldBottomSectionY) << 4

	return [3]int32{
		euclidModInt32(blockCoords[0], wrapWidth),
		blockCoords[1] - worldBottomBlockY,
		euclidModInt32(blockCoords[2], wrapWidth),
	}
}

// LocalTileCoords are tile coordinates in the graph's local, wrapped space.
// Y is never wrapped; X and Z are wrapped lazily by whoever consumes them
// (PackIndex, SectionToTileCoords).
type LocalTileCoords struct {
	X, Y, Z int8
}

// stepOffsets gives the unit step for each of the six directions, indexed
// by direction.ToIndex.
var stepOffsets = [direction.Count][3]int8{
	{-1, 0, 0}, // -X
	{0, -1, 0}, // -Y
	{0, 0, -1}, // -Z
	{1, 0, 0},  // +X
	{0, 1, 0},  // +Y
	{0, 0, 1},  // +Z
}

// Step returns the tile coordinates one step away in the given direction.
// dir must have exactly one bit set.
func (c LocalTileCoords) Step(dir uint8) LocalTileCoords {
	off := stepOffsets[direction.ToIndex(dir)]
	return LocalTileCoords{
		X: c.X + off[direction.AxisX],
		Y: c.Y + off[direction.AxisY],
		Z: c.Z + off[direction.AxisZ],
	}
}

// ToLocalBlockCoords converts tile coordinates to the local block coordinates
// of the tile's origin (its minimum corner).
func (c LocalTileCoords) ToLocalBlockCoords() [3]int32 {
	return [3]int32{
		int32(c.X) << 7,
		int32(c.Y) << 7,
		int32(c.Z) << 7,
	}
}

// LocalTileIndex is a dense index into a graph's tile storage array.
type LocalTileIndex uint16

// RelativeBoundingBox is an axis-aligned bounding box expressed relative to
// the camera, extended on every side to tolerate large block models and
// floating point imprecision in the host's culling input.
type RelativeBoundingBox struct {
	Min, Max [3]float32
}

const (
	// BoundingBoxExtensionMin accounts for block models that extend beyond
	// their owning block's unit cube.
	BoundingBoxExtensionMin = 1.0
	// BoundingBoxExtension is the extension actually applied by
	// NewExtendedRelativeBoundingBox: the minimum plus headroom for float
	// imprecision.
	BoundingBoxExtension = BoundingBoxExtensionMin + 0.125
	// BoundingBoxExtensionMax bounds how much floating point imprecision
	// this scheme is allowed to paper over.
	BoundingBoxExtensionMax = BoundingBoxExtensionMin + 0.25
)

// NewRelativeBoundingBox builds a bounding box with no extension applied.
func NewRelativeBoundingBox(min, max [3]float32) RelativeBoundingBox {
	return RelativeBoundingBox{Min: min, Max: max}
}

// NewExtendedRelativeBoundingBox builds a bounding box extended by
// BoundingBoxExtension on every side.
func NewExtendedRelativeBoundingBox(min, max [3]float32) RelativeBoundingBox {
	var out RelativeBoundingBox
	for i := 0; i < 3; i++ {
		out.Min[i] = min[i] - BoundingBoxExtension
		out.Max[i] = max[i] + BoundingBoxExtension
	}
	return out
}
