//go:build debug

package hypercull

import (
	"fmt"

	"github.com/burgerindividual/hypercull/coords"
)

func init() {
	markProcessed = func(processed []bool, index coords.LocalTileIndex) {
		if processed[index] {
			panic(fmt.Errorf("tile %d processed twice in one cull", index))
		}
		processed[index] = true
	}

	resetProcessedFlags = func(processed []bool) {
		for i := range processed {
			processed[i] = false
		}
	}
}
