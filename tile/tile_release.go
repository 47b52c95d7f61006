//go:build !debug

package tile

import "github.com/burgerindividual/hypercull/bitset"

func init() {
	assertTraversalMonotonic = func(before, after bitset.Section512, dirIndex int) {}
}
