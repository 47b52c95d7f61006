package tile

import (
	"math"

	"github.com/burgerindividual/hypercull/bitset"
	"github.com/burgerindividual/hypercull/coords"
)

// FogTestBox tests a camera-relative bounding box against a spherical-ish
// fog cylinder (infinite on Y is not assumed — both XZ distance and Y
// distance are bounded by fogDistance), following the same closest/
// furthest-point approach sodium's OcclusionCuller uses.
func FogTestBox(bb coords.RelativeBoundingBox, fogDistance float32, results *CombinedTestResults) {
	var closest, furthest [3]float32
	for i := 0; i < 3; i++ {
		closest[i] = clampF(0, bb.Min[i], bb.Max[i])
		if absF(bb.Min[i]) > absF(bb.Max[i]) {
			furthest[i] = bb.Min[i]
		} else {
			furthest[i] = bb.Max[i]
		}
	}

	closestXZSq := closest[0]*closest[0] + closest[2]*closest[2]
	furthestXZSq := furthest[0]*furthest[0] + furthest[2]*furthest[2]

	closestOutsideXZ := closestXZSq >= fogDistance*fogDistance
	furthestOutsideXZ := furthestXZSq >= fogDistance*fogDistance

	closestOutsideY := absF(closest[1]) >= fogDistance
	furthestOutsideY := absF(furthest[1]) >= fogDistance

	closestOutside := closestOutsideXZ || closestOutsideY
	furthestOutside := furthestOutsideXZ || furthestOutsideY

	if closestOutside {
		*results = Outside
		return
	}

	results.SetFogPartial(furthestOutside)
}

// VoxelizeCylinder produces a 1 bit for every section whose extended
// bounding box lies within fogDistance of the camera, solving the cylinder
// equation analytically per X-axis row instead of testing each section.
func VoxelizeCylinder(relativeTilePos [3]float32, fogDistance float32) bitset.Section512 {
	const bbExtension = coords.BoundingBoxExtension
	const bbExtensionScaled = bbExtension / 16.0

	var sectionZs [8]float32
	for i := range sectionZs {
		sectionZs[i] = (sectionIncrements[i] - bbExtension) + relativeTilePos[2]
	}

	var distanceZs [8]float32
	for i := range distanceZs {
		distanceZs[i] = minF(maxF(0, sectionZs[i]), sectionZs[i]+16.0+bbExtension*2.0)
	}

	var lowerBound, upperBound [8]float32
	var cSquaredNeg [8]bool
	for i := range distanceZs {
		cSquared := fogDistance*fogDistance - distanceZs[i]*distanceZs[i]
		cSquaredNeg[i] = cSquared < 0
		c := float32(0)
		if !cSquaredNeg[i] {
			c = float32(math.Sqrt(float64(cSquared)))
		}

		upperBound[i] = (c-relativeTilePos[0])*(1.0/16.0) + bbExtensionScaled
		lowerBound[i] = (c+relativeTilePos[0])*(-1.0/16.0) + (-1.0 - bbExtensionScaled)
	}

	_, _, lowerMask, upperMask := rasterizeRows(lowerBound, upperBound)

	var zxMask [8]uint8
	for i := range zxMask {
		m := lowerMask[i] & upperMask[i]
		if cSquaredNeg[i] {
			m = 0
		}
		zxMask[i] = m
	}

	yLowerShift := clampInt(int32(floorF((-fogDistance-relativeTilePos[1])*(1.0/16.0)-bbExtensionScaled)), 0, 8)
	yUpperShift := clampInt(8-int32(ceilF((fogDistance-relativeTilePos[1])*(1.0/16.0)+bbExtensionScaled)), 0, 8)

	yLowerMask := shiftLeft8(0xff, yLowerShift)
	yUpperMask := shiftRight8(0xff, yUpperShift)
	yMask := yLowerMask & yUpperMask

	var out bitset.Section512
	for y := 0; y < 8; y++ {
		included := (yMask>>uint(y))&1 != 0
		for z := 0; z < 8; z++ {
			if included {
				out[y*8+z] = zxMask[z]
			}
		}
	}
	return out
}

func shiftRight8(v uint8, n int32) uint8 {
	if n >= 8 {
		return 0
	}
	return v >> uint(n)
}
