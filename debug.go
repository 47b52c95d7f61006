package hypercull

import "github.com/burgerindividual/hypercull/coords"

// markProcessed and resetProcessedFlags are installed by graph_debug.go or
// graph_release.go. In debug builds they enforce that a cull visits each
// tile at most once; in release builds they're no-ops, since the fixed
// iteration order already guarantees it.
var (
	markProcessed       func(processed []bool, index coords.LocalTileIndex)
	resetProcessedFlags func(processed []bool)
)
