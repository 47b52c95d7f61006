//go:build debug

package tile

import (
	"log/slog"

	"github.com/burgerindividual/hypercull/bitset"
)

func init() {
	assertTraversalMonotonic = func(before, after bitset.Section512, dirIndex int) {
		if bitset.Or(before, after) != after {
			slog.Error("traversal visibility shrank", "dir_index", dirIndex)
			panic("traversal invariant violated: a section became invisible during flood fill")
		}
	}
}
