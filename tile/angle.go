package tile

import "github.com/burgerindividual/hypercull/bitset"

// VisibilityMasks rasterizes two ±1-slope lines through the camera's
// position on each of the three axis-pair planes (XY, XZ, ZY), producing
// one mask per axis (X, Y, Z). A section is set in an axis's mask when its
// centre is at least as far from the camera along that axis as along
// either other axis; Traverse applies the mask to straight-through
// connections along that axis.
func VisibilityMasks(relativeTilePos [3]float32) [3]bitset.Section512 {
	offsets := [3]float32{
		relativeTilePos[0]/16.0 + 0.5,
		relativeTilePos[1]/16.0 + 0.5,
		relativeTilePos[2]/16.0 + 0.5,
	}

	xyCompressed, yxCompressed := genCompressedMaskPair(offsets[0], offsets[1])
	xyMask := expandXYMask(xyCompressed)
	yxMask := expandXYMask(yxCompressed)

	xzCompressed, zxCompressed := genCompressedMaskPair(offsets[0], offsets[2])
	xzMask := expandXZMask(xzCompressed)
	zxMask := expandXZMask(zxCompressed)

	zyCompressed, yzCompressed := genCompressedMaskPair(offsets[2], offsets[1])
	zyMask := expandZYMask(zyCompressed)
	yzMask := expandZYMask(yzCompressed)

	xMask := bitset.And(yxMask, zxMask)
	yMask := bitset.And(xyMask, zyMask)
	zMask := bitset.And(xzMask, yzMask)

	return [3]bitset.Section512{xMask, yMask, zMask}
}

// genCompressedMaskPair rasterizes the two lines
// x = -offset1 + offset2 + row and x = -offset1 - offset2 - row (row =
// 0..7) into one 8-bit row-bound mask per row, plus a companion "reverse"
// mask used when the two offset arguments are swapped by the caller.
func genCompressedMaskPair(offset1, offset2 float32) (combined, reverse [8]uint8) {
	negOffset1 := -offset1

	var line1, line2 [8]float32
	for row := 0; row < 8; row++ {
		r := float32(row)
		line1[row] = negOffset1 + offset2 + r
		line2[row] = negOffset1 - offset2 - r
	}

	var lowerBound, upperBound [8]float32
	for row := 0; row < 8; row++ {
		lowerBound[row] = minF(line1[row], line2[row])
		upperBound[row] = maxF(line1[row], line2[row])
	}

	lowerCeil, upperFloor, lowerMask, upperMask := rasterizeRows(lowerBound, upperBound)

	for row := 0; row < 8; row++ {
		combined[row] = lowerMask[row] & upperMask[row]

		var lowestBit uint8
		if lowerBound[row] == lowerCeil[row] {
			m := lowerMask[row]
			lowestBit = m & (-m)
		}

		var highestBit uint8
		if upperBound[row] == upperFloor[row] {
			highestBit = uint8((uint16(upperMask[row]) + 1) >> 1)
		}

		reverse[row] = lowestBit | highestBit | ^combined[row]
	}

	return combined, reverse
}

func expandXYMask(compressed [8]uint8) bitset.Section512 {
	var out bitset.Section512
	for y := 0; y < 8; y++ {
		for z := 0; z < 8; z++ {
			out[y*8+z] = compressed[y]
		}
	}
	return out
}

func expandXZMask(compressed [8]uint8) bitset.Section512 {
	var out bitset.Section512
	for y := 0; y < 8; y++ {
		for z := 0; z < 8; z++ {
			out[y*8+z] = compressed[z]
		}
	}
	return out
}

func expandZYMask(compressed [8]uint8) bitset.Section512 {
	var out bitset.Section512
	for y := 0; y < 8; y++ {
		for z := 0; z < 8; z++ {
			if (compressed[y]>>uint(z))&1 != 0 {
				out[y*8+z] = 0xff
			}
		}
	}
	return out
}
