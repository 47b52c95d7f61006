package coords

import (
	"testing"

	"github.com/burgerindividual/hypercull/direction"
)

// TestPackIndexIsInjective mirrors the original crate's pack_index_test:
// every in-bounds tile coordinate must map to a distinct, in-range index.
func TestPackIndexIsInjective(t *testing.T) {
	const storageDistance = 20
	const yLengthSections = 24

	xzLengthSections := storageDistance*2 + 1

	yLengthTiles := nextMultipleOf8(yLengthSections) >> 3
	if yLengthTiles < 2 {
		yLengthTiles = 2
	}
	xzLengthTiles := nextMultipleOf8(xzLengthSections) >> 3
	if xzLengthTiles < 2 {
		xzLengthTiles = 2
	}

	totalTiles := uint32(yLengthTiles) * uint32(xzLengthTiles) * uint32(xzLengthTiles)

	space := NewGraphCoordSpace(uint8(yLengthTiles), uint8(xzLengthTiles), -4, 19)

	seen := make(map[LocalTileIndex]LocalTileCoords)

	for y := 0; y < yLengthTiles; y++ {
		for z := 0; z < xzLengthTiles; z++ {
			for x := 0; x < xzLengthTiles; x++ {
				coords := LocalTileCoords{X: int8(x), Y: int8(y), Z: int8(z)}
				idx := space.PackIndex(coords)

				if uint32(idx) >= totalTiles {
					t.Fatalf("index %d out of range (max %d) for coords %+v", idx, totalTiles, coords)
				}

				if existing, ok := seen[idx]; ok {
					t.Fatalf("duplicate index %d for coords %+v and %+v", idx, existing, coords)
				}
				seen[idx] = coords
			}
		}
	}

	// a stray out-of-bounds X/Z pair must still wrap into range
	coords := LocalTileCoords{X: -1, Y: 0, Z: -1}
	idx := space.PackIndex(coords)
	if uint32(idx) >= totalTiles {
		t.Fatalf("wrapped index %d out of range (max %d)", idx, totalTiles)
	}
}

func nextMultipleOf8(n int) int {
	return (n + 7) &^ 7
}

// TestStepIsSingleHop mirrors the original crate's step_test: stepping in a
// direction must move exactly one unit along that direction's axis and
// leave the other two axes untouched.
func TestStepIsSingleHop(t *testing.T) {
	coords := LocalTileCoords{X: 10, Y: 15, Z: 31}

	cases := []struct {
		dir  uint8
		want LocalTileCoords
	}{
		{direction.NegX, LocalTileCoords{X: 9, Y: 15, Z: 31}},
		{direction.PosX, LocalTileCoords{X: 11, Y: 15, Z: 31}},
		{direction.NegY, LocalTileCoords{X: 10, Y: 14, Z: 31}},
		{direction.PosY, LocalTileCoords{X: 10, Y: 16, Z: 31}},
		{direction.NegZ, LocalTileCoords{X: 10, Y: 15, Z: 30}},
		{direction.PosZ, LocalTileCoords{X: 10, Y: 15, Z: 32}},
	}

	for _, c := range cases {
		if got := coords.Step(c.dir); got != c.want {
			t.Errorf("Step(%#b) = %+v, want %+v", c.dir, got, c.want)
		}
	}
}

func TestStepNeverWrapsY(t *testing.T) {
	coords := LocalTileCoords{X: 0, Y: 0, Z: 0}
	stepped := coords.Step(direction.NegY)
	if stepped.Y != -1 {
		t.Fatalf("Y must not wrap on step: got %d, want -1", stepped.Y)
	}
}
