// Package ffi is the boundary between a Go-native hypercull.Graph and a
// host that only speaks a C ABI: an opaque handle per graph, a panic
// channel the host can install once at startup, and the C-exported entry
// points in exports.go.
package ffi

import (
	"fmt"
	"runtime/cgo"
	"sync"
	"sync/atomic"

	"github.com/burgerindividual/hypercull"
	"github.com/burgerindividual/hypercull/searchctx"
	"github.com/burgerindividual/hypercull/tile"
)

// session pairs a graph with the mutex its two host-facing operations,
// SetSection and Search, must hold exclusively — mirroring spec.md's
// "set_section and cull both require exclusive access".
type session struct {
	mu    sync.Mutex
	graph *hypercull.Graph
}

// Create allocates a new graph and returns an opaque handle for it. The
// handle stays valid until passed to Delete.
func Create(renderDistance uint8, worldBottomSectionY, worldTopSectionY int8) cgo.Handle {
	s := &session{graph: hypercull.NewGraph(renderDistance, worldBottomSectionY, worldTopSectionY)}
	return cgo.NewHandle(s)
}

// SetSection updates one section's connectivity graph on the graph behind
// handle.
func SetSection(handle cgo.Handle, sectionCoords [3]int32, visibility uint64) {
	s := handle.Value().(*session)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.graph.SetSection(sectionCoords, visibility)
}

// Search runs one cull and returns the resulting visible tiles. The
// returned slice is only valid until the next call to Search on the same
// handle.
func Search(
	handle cgo.Handle,
	frustumPlanes [6]tile.Plane,
	cameraPos [3]float64,
	searchDistance float32,
	useOcclusionCulling bool,
) []hypercull.FFITile {
	s := handle.Value().(*session)
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx := searchctx.NewGraphSearchContext(
		s.graph.CoordSpace(), frustumPlanes, cameraPos, searchDistance, useOcclusionCulling,
	)
	s.graph.Cull(&ctx)

	return s.graph.VisibleTiles
}

// Delete releases handle. The handle and the graph it refers to must not
// be used again afterward.
func Delete(handle cgo.Handle) {
	handle.Delete()
}

// panicHandler is the process-wide, one-time-installable panic channel.
// Nil means no handler has been installed; Guard then re-raises the panic,
// which is Go's native abort-the-process behavior.
var panicHandler atomic.Pointer[func(string)]

// SetPanicHandler installs the function called with a formatted message
// whenever a call across the FFI boundary panics. Installing a new handler
// replaces any previous one; passing nil clears it, reverting to the
// default abort-the-process behavior.
func SetPanicHandler(handler func(string)) {
	if handler == nil {
		panicHandler.Store(nil)
		return
	}
	panicHandler.Store(&handler)
}

// Guard runs fn, recovering any panic and routing it to the installed
// panic handler instead of letting it unwind into the host's C stack. If
// no handler is installed, the panic is re-raised, aborting the process —
// the same "no recoverable errors" contract the spec calls for.
func Guard(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			if h := panicHandler.Load(); h != nil {
				(*h)(fmt.Sprint(r))
				return
			}
			panic(r)
		}
	}()
	fn()
}
