package tile

import "github.com/burgerindividual/hypercull/bitset"

// assertTraversalMonotonic is installed by tile_debug.go or
// tile_release.go depending on the debug build tag. It checks that a
// traversal pass never removes a section from an incoming set — flood
// fill only ever adds visibility, never takes it away.
var assertTraversalMonotonic func(before, after bitset.Section512, dirIndex int)
