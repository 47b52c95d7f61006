package tile

import (
	"math"
	"math/rand"
	"testing"

	"github.com/burgerindividual/hypercull/coords"
)

// voxelizePlaneSlow is the brute-force per-section reference: true
// per-section distance tests bounded by a configurable extension, used to
// bracket the fast closed-form voxelizePlane's output.
func voxelizePlaneSlow(relativeTilePos [3]float32, plane Plane, boundsExtension float32) sections512 {
	var out sections512
	for y := uint8(0); y < 8; y++ {
		for z := uint8(0); z < 8; z++ {
			for x := uint8(0); x < 8; x++ {
				sx := float32(x)*16.0 + relativeTilePos[0]
				sy := float32(y)*16.0 + relativeTilePos[1]
				sz := float32(z)*16.0 + relativeTilePos[2]

				bbMin := [3]float32{sx - boundsExtension, sy - boundsExtension, sz - boundsExtension}
				bbMax := [3]float32{sx + 16.0 + boundsExtension, sy + 16.0 + boundsExtension, sz + 16.0 + boundsExtension}

				pick := func(axis int) float32 {
					if plane[axis] < 0 {
						return bbMin[axis]
					}
					return bbMax[axis]
				}

				notOutside := plane[0]*pick(0)+plane[1]*pick(1)+plane[2]*pick(2) >= -plane[3]
				idx := SectionIndex(x, y, z)
				if notOutside {
					out.set(idx)
				}
			}
		}
	}
	return out
}

// sections512 is a thin test-local wrapper so voxelizePlaneSlow can build
// up a mask with plain bit ops without importing the bitset package's full
// API surface into the test.
type sections512 [64]byte

func (s *sections512) set(idx uint16) {
	s[idx>>3] |= 1 << (idx & 7)
}

// fitsBetween reports whether test lies between min (every bit in min must
// be set in test) and max (test must not set any bit max doesn't have),
// matching the original's test_minimum_maximum.
func fitsBetween(min, max, test sections512) bool {
	for i := range test {
		if test[i]&min[i] != min[i] {
			return false
		}
		if test[i]|max[i] != max[i] {
			return false
		}
	}
	return true
}

// scenarioSeed is the fixed seed the randomized tests in this package use,
// the same value bitset's tests use, so failures reproduce deterministically.
const scenarioSeed = 0x1c41cf821df0e3a9

func TestPlaneVoxelization(t *testing.T) {
	r := rand.New(rand.NewSource(scenarioSeed))
	const iterations = 2000

	for iter := 0; iter < iterations; iter++ {
		theta := r.Float64() * 2 * math.Pi
		z := r.Float64()*2 - 1
		w := r.Float64()*1010 - 10

		zModified := math.Sqrt(1 - z*z)
		x := zModified * math.Cos(theta)
		y := zModified * math.Sin(theta)

		plane := Plane{float32(x), float32(y), float32(z), float32(w)}

		relativeTilePos := [3]float32{
			r.Float32()*6000 - 3000,
			r.Float32()*6000 - 3000,
			r.Float32()*6000 - 3000,
		}

		saneMin := voxelizePlaneSlow(relativeTilePos, plane, coords.BoundingBoxExtensionMin)
		saneMax := voxelizePlaneSlow(relativeTilePos, plane, coords.BoundingBoxExtensionMax)

		testOut := voxelizePlane(relativeTilePos, plane, genAxisBBOffsets(plane, coords.BoundingBoxExtension))
		test := sections512(testOut)

		if !fitsBetween(saneMin, saneMax, test) {
			t.Fatalf("iteration %d: fast voxelizePlane result outside sane bounds; relative tile pos %v, plane %v", iter, relativeTilePos, plane)
		}
	}
}

func TestRowMaskLookupMatchesFallback(t *testing.T) {
	for i := 0; i < 9; i++ {
		idx := uint8(i)
		if got, want := rowMaskLookup(idx), rowMaskFallback(idx); got != want {
			t.Errorf("rowMaskLookup(%d) = %#b, want %#b (fallback)", idx, got, want)
		}
	}
}
