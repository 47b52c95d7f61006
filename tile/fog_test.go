package tile

import (
	"math/rand"
	"testing"

	"github.com/burgerindividual/hypercull/coords"
)

func voxelizeCylinderSlow(relativeTilePos [3]float32, fogDistance, boundsExtension float32) sections512 {
	var out sections512
	for y := uint8(0); y < 8; y++ {
		for z := uint8(0); z < 8; z++ {
			for x := uint8(0); x < 8; x++ {
				sx := float32(x)*16.0 + relativeTilePos[0]
				sy := float32(y)*16.0 + relativeTilePos[1]
				sz := float32(z)*16.0 + relativeTilePos[2]

				bbMin := [3]float32{sx - boundsExtension, sy - boundsExtension, sz - boundsExtension}
				bbMax := [3]float32{sx + 16.0 + boundsExtension, sy + 16.0 + boundsExtension, sz + 16.0 + boundsExtension}

				closest := [3]float32{
					clampF(0, bbMin[0], bbMax[0]),
					clampF(0, bbMin[1], bbMax[1]),
					clampF(0, bbMin[2], bbMax[2]),
				}

				distSq := closest[0]*closest[0] + closest[2]*closest[2]
				insideFog := distSq < fogDistance*fogDistance && absF(closest[1]) < fogDistance

				idx := SectionIndex(x, y, z)
				if insideFog {
					out.set(idx)
				}
			}
		}
	}
	return out
}

func TestFogVoxelization(t *testing.T) {
	r := rand.New(rand.NewSource(scenarioSeed))
	const iterations = 2000

	for iter := 0; iter < iterations; iter++ {
		relativeTilePos := [3]float32{
			r.Float32()*6000 - 3000,
			r.Float32()*6000 - 3000,
			r.Float32()*6000 - 3000,
		}
		fogDistance := r.Float32() * 900.0

		saneMin := voxelizeCylinderSlow(relativeTilePos, fogDistance, coords.BoundingBoxExtensionMin)
		saneMax := voxelizeCylinderSlow(relativeTilePos, fogDistance, coords.BoundingBoxExtensionMax)

		test := sections512(VoxelizeCylinder(relativeTilePos, fogDistance))

		if !fitsBetween(saneMin, saneMax, test) {
			t.Fatalf("iteration %d: VoxelizeCylinder result outside sane bounds; pos %v, fog %f", iter, relativeTilePos, fogDistance)
		}
	}
}
