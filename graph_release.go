//go:build !debug

package hypercull

import "github.com/burgerindividual/hypercull/coords"

func init() {
	markProcessed = func(processed []bool, index coords.LocalTileIndex) {}
	resetProcessedFlags = func(processed []bool) {}
}
