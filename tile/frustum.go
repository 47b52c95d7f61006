package tile

import (
	"math"

	"golang.org/x/sys/cpu"

	"github.com/burgerindividual/hypercull/bitset"
	"github.com/burgerindividual/hypercull/coords"
	"github.com/burgerindividual/hypercull/direction"
)

// Plane is a frustum plane in ax+by+cz+d=0 form, with (a,b,c) expected to
// be a unit normal pointing into the frustum.
type Plane [4]float32

// Frustum is the six planes of a camera's view volume, expressed relative
// to the camera position so that tile and section positions fed into it
// are camera-relative too.
type Frustum struct {
	planes        [direction.Count]Plane
	axisBBOffsets [direction.Count][3]float32
}

// NewFrustum precomputes the per-plane bounding-box offsets used by TestBox
// and VoxelizePlanes to decide, per axis, which side of a box to test
// against each plane. planes must be ordered by direction.ToIndex (left,
// bottom, near, right, top, far, i.e. -X,-Y,-Z,+X,+Y,+Z), since
// VoxelizePlanes indexes into it by a direction's index.
func NewFrustum(planes [6]Plane) Frustum {
	f := Frustum{planes: planes}
	for i, p := range planes {
		f.axisBBOffsets[i] = genAxisBBOffsets(p, coords.BoundingBoxExtension)
	}
	return f
}

func genAxisBBOffsets(plane Plane, boundsExtension float32) [3]float32 {
	var out [3]float32
	for axis := 0; axis < 3; axis++ {
		if math.Signbit(float64(plane[axis])) {
			out[axis] = -boundsExtension
		} else {
			out[axis] = 16.0 + boundsExtension
		}
	}
	return out
}

// TestBox tests a camera-relative bounding box against every frustum
// plane, recording either Outside (the box misses the frustum entirely) or
// the subset of planes the box straddles.
func (f Frustum) TestBox(bb coords.RelativeBoundingBox, results *CombinedTestResults) {
	var intersecting uint8

	for i, p := range f.planes {
		neg := math.Signbit(float64(p[0]))
		negY := math.Signbit(float64(p[1]))
		negZ := math.Signbit(float64(p[2]))

		outsideX := bb.Max[0]
		if neg {
			outsideX = bb.Min[0]
		}
		outsideY := bb.Max[1]
		if negY {
			outsideY = bb.Min[1]
		}
		outsideZ := bb.Max[2]
		if negZ {
			outsideZ = bb.Min[2]
		}

		outsideLen := p[0]*outsideX + p[1]*outsideY + p[2]*outsideZ
		if outsideLen+p[3] < 0 {
			*results = Outside
			return
		}

		insideX := bb.Min[0]
		if neg {
			insideX = bb.Max[0]
		}
		insideY := bb.Min[1]
		if negY {
			insideY = bb.Max[1]
		}
		insideZ := bb.Min[2]
		if negZ {
			insideZ = bb.Max[2]
		}

		insideLen := p[0]*insideX + p[1]*insideY + p[2]*insideZ
		if insideLen+p[3] < 0 {
			intersecting |= 1 << uint(i)
		}
	}

	results.SetIntersectingPlanes(intersecting)
}

// VoxelizePlanes ANDs visibleSections with the per-section voxelization of
// every plane flagged in planes.
func (f Frustum) VoxelizePlanes(planes uint8, relativeTilePos [3]float32, visibleSections *bitset.Section512) {
	for planes != 0 {
		d := direction.TakeOne(&planes)
		idx := direction.ToIndex(d)

		sectionsInPlane := voxelizePlane(relativeTilePos, f.planes[idx], f.axisBBOffsets[idx])
		visibleSections.AndInto(sectionsInPlane)
	}
}

var sectionIncrements = [8]float32{0, 16, 32, 48, 64, 80, 96, 112}

// voxelizePlane produces a 1 bit for every section whose extended bounding
// box is on the inside of plane, by solving the plane equation for the X
// intercept of each X-axis row of 8 sections and turning that intercept
// into a row bitmask — no per-section evaluation needed.
func voxelizePlane(relativeTilePos [3]float32, plane Plane, axisBBOffsets [3]float32) bitset.Section512 {
	tileBBOrigin := [3]float32{
		relativeTilePos[0] + axisBBOffsets[0],
		relativeTilePos[1] + axisBBOffsets[1],
		relativeTilePos[2] + axisBBOffsets[2],
	}

	var sectionBBZs [8]float32
	for i := range sectionBBZs {
		sectionBBZs[i] = sectionIncrements[i] + tileBBOrigin[2]
	}

	partialBase := tileBBOrigin[0]*plane[0] + plane[3]

	planeXScaled := plane[0] * -16.0

	var out bitset.Section512
	yOffset := tileBBOrigin[1]
	for y := 0; y < 8; y++ {
		for z := 0; z < 8; z++ {
			numerator := yOffset*plane[1] + sectionBBZs[z]*plane[2] + partialBase
			intercept := numerator / planeXScaled

			row := rowMaskFromIntercept(intercept)

			if math.Signbit(float64(plane[0])) {
				// plane points toward -X: mask already reads correctly
			} else {
				row = ^row
			}

			out[y*8+z] = row
		}
		yOffset += 16.0
	}

	return out
}

// rowMaskFromIntercept turns an X-axis intercept (in section units) into a
// bitmask with bits [0, intercept] set, or 0 if the intercept is negative.
// An intercept of 7 or more yields 0xff.
func rowMaskFromIntercept(intercept float32) uint8 {
	clamped := minF(intercept, 7.0)
	if math.Signbit(float64(clamped)) {
		return 0
	}

	idx := uint8(clamped)
	return rowMaskLookup(idx)
}

// rowMaskLookup resolves a clamped, non-negative intercept index (0..7) to
// its row bitmask. On AVX2-capable hosts this is a plain table lookup,
// mirroring the original's _mm256_shuffle_epi8-based table; elsewhere it
// falls back to the equivalent shift-and-subtract formula. Both forms are
// cross-checked against each other in tests.
var rowMaskLookup func(idx uint8) uint8

func rowMaskFallback(idx uint8) uint8 {
	if idx >= 8 {
		return 0
	}
	return (uint8(0b10) << idx) - 1
}

var rowMaskTable [8]uint8

func init() {
	for i := range rowMaskTable {
		rowMaskTable[i] = rowMaskFallback(uint8(i))
	}

	if cpu.X86.HasAVX2 {
		rowMaskLookup = func(idx uint8) uint8 {
			if idx >= 8 {
				return 0
			}
			return rowMaskTable[idx]
		}
	} else {
		rowMaskLookup = rowMaskFallback
	}
}
