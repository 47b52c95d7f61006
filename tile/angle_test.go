package tile

import (
	"math/rand"
	"testing"
)

func genVisibilityMasksSlow(relativeTilePos [3]float32) [3]sections512 {
	var xMask, yMask, zMask sections512
	for i := range xMask {
		xMask[i] = 0xff
		yMask[i] = 0xff
		zMask[i] = 0xff
	}

	for y := uint8(0); y < 8; y++ {
		for z := uint8(0); z < 8; z++ {
			for x := uint8(0); x < 8; x++ {
				center := [3]float32{
					relativeTilePos[0] + 8.0 + float32(x)*16.0,
					relativeTilePos[1] + 8.0 + float32(y)*16.0,
					relativeTilePos[2] + 8.0 + float32(z)*16.0,
				}
				dist := [3]float32{absF(center[0]), absF(center[1]), absF(center[2])}

				idx := SectionIndex(x, y, z)
				if dist[0] > dist[1] || dist[2] > dist[1] {
					yMask.clear(idx)
				}
				if dist[0] > dist[2] || dist[1] > dist[2] {
					zMask.clear(idx)
				}
				if dist[1] > dist[0] || dist[2] > dist[0] {
					xMask.clear(idx)
				}
			}
		}
	}

	return [3]sections512{xMask, yMask, zMask}
}

func (s *sections512) clear(idx uint16) {
	s[idx>>3] &^= 1 << (idx & 7)
}

func TestAngleVisibilityMasks(t *testing.T) {
	r := rand.New(rand.NewSource(scenarioSeed))
	const iterations = 2000

	for iter := 0; iter < iterations; iter++ {
		relativeTilePos := [3]float32{
			r.Float32()*600 - 300,
			r.Float32()*600 - 300,
			r.Float32()*600 - 300,
		}

		// Every so often snap a component to an exact multiple of 16, a
		// section-aligned tile position (its offset in VisibilityMasks is
		// then a half-integer), alongside the general fuzz coverage.
		if iter%7 == 0 {
			axis := iter % 3
			relativeTilePos[axis] = float32(r.Intn(41)-20) * 16.0
		}

		want := genVisibilityMasksSlow(relativeTilePos)
		gotArr := VisibilityMasks(relativeTilePos)

		for i := range gotArr {
			got := sections512(gotArr[i])
			if got != want[i] {
				t.Fatalf("iteration %d axis %d: mismatch; relative tile pos %v", iter, i, relativeTilePos)
			}
		}
	}
}

// TestAngleVisibilityMasksIntegerBoundary places the camera exactly at the
// tile origin (relativeTilePos 0.0 on every axis). That drives
// genCompressedMaskPair's upperBound[row] to land exactly on row for every
// row, including row 7 where upperMask[row] == 0xff and the highestBit
// computation must not overflow.
func TestAngleVisibilityMasksIntegerBoundary(t *testing.T) {
	relativeTilePos := [3]float32{0.0, 0.0, 0.0}

	want := genVisibilityMasksSlow(relativeTilePos)
	gotArr := VisibilityMasks(relativeTilePos)

	for i := range gotArr {
		got := sections512(gotArr[i])
		if got != want[i] {
			t.Fatalf("axis %d: mismatch at integer boundary; relative tile pos %v", i, relativeTilePos)
		}
	}
}
