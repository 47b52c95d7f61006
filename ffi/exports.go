package ffi

/*
#include <stdint.h>
#include <stdlib.h>

// panic_callback_t matches the signature a host passes to
// HyperCullSetPanicHandler: a function taking a NUL-terminated message.
typedef void (*panic_callback_t)(const char *message);

static void call_panic_callback(panic_callback_t cb, const char *message) {
    cb(message);
}
*/
import "C"

import (
	"encoding/binary"
	"runtime/cgo"
	"unsafe"

	"github.com/burgerindividual/hypercull/tile"
)

// tileWireSize is the byte size of one FFITile on the wire: three int32
// origin coordinates plus eight uint64 visibility words.
const tileWireSize = 3*4 + 8*8

// HyperCullGraphCreate allocates a new graph and returns an opaque handle,
// the same lifecycle token SetSection, Search, and Delete take.
//
//export HyperCullGraphCreate
func HyperCullGraphCreate(renderDistance C.uint8_t, worldBottomSectionY, worldTopSectionY C.int8_t) C.uintptr_t {
	var handle cgo.Handle
	Guard(func() {
		handle = Create(uint8(renderDistance), int8(worldBottomSectionY), int8(worldTopSectionY))
	})
	return C.uintptr_t(handle)
}

// HyperCullGraphSetSection updates one section's visibility graph. visibility
// packs the section's 15 directional connections the same way the graph's
// SetSection expects.
//
//export HyperCullGraphSetSection
func HyperCullGraphSetSection(handle C.uintptr_t, x, y, z C.int32_t, visibility C.uint64_t) {
	Guard(func() {
		SetSection(cgo.Handle(handle), [3]int32{int32(x), int32(y), int32(z)}, uint64(visibility))
	})
}

// HyperCullGraphSearch runs one cull and writes the visible tiles to a
// malloc'd buffer, returning it and the tile count via outCount. The caller
// owns the returned buffer and must free it with HyperCullFreeResult.
//
// planes holds the frustum's six planes as 24 consecutive floats
// (a,b,c,d per plane, ordered -X,-Y,-Z,+X,+Y,+Z); cameraPos holds the
// camera's world position as 3 doubles.
//
//export HyperCullGraphSearch
func HyperCullGraphSearch(
	handle C.uintptr_t,
	planes *C.float,
	cameraPos *C.double,
	searchDistance C.float,
	useOcclusionCulling C.uint8_t,
	outCount *C.int32_t,
) *C.uint8_t {
	var result *C.uint8_t
	Guard(func() {
		planeFloats := unsafe.Slice(planes, 24)
		var frustumPlanes [6]tile.Plane
		for i := range frustumPlanes {
			for j := 0; j < 4; j++ {
				frustumPlanes[i][j] = float32(planeFloats[i*4+j])
			}
		}

		posFloats := unsafe.Slice(cameraPos, 3)
		pos := [3]float64{float64(posFloats[0]), float64(posFloats[1]), float64(posFloats[2])}

		tiles := Search(cgo.Handle(handle), frustumPlanes, pos, float32(searchDistance), useOcclusionCulling != 0)

		*outCount = C.int32_t(len(tiles))
		if len(tiles) == 0 {
			return
		}

		buf := C.malloc(C.size_t(len(tiles) * tileWireSize))
		out := unsafe.Slice((*byte)(buf), len(tiles)*tileWireSize)
		for i, t := range tiles {
			off := i * tileWireSize
			binary.LittleEndian.PutUint32(out[off:], uint32(t.OriginSectionCoords[0]))
			binary.LittleEndian.PutUint32(out[off+4:], uint32(t.OriginSectionCoords[1]))
			binary.LittleEndian.PutUint32(out[off+8:], uint32(t.OriginSectionCoords[2]))
			for w, word := range t.VisibleSections {
				binary.LittleEndian.PutUint64(out[off+12+w*8:], word)
			}
		}
		result = (*C.uint8_t)(buf)
	})
	return result
}

// HyperCullFreeResult releases a buffer previously returned by
// HyperCullGraphSearch.
//
//export HyperCullFreeResult
func HyperCullFreeResult(buf *C.uint8_t) {
	C.free(unsafe.Pointer(buf))
}

// HyperCullGraphDelete releases a graph. handle must not be used again
// afterward.
//
//export HyperCullGraphDelete
func HyperCullGraphDelete(handle C.uintptr_t) {
	Guard(func() {
		Delete(cgo.Handle(handle))
	})
}

// HyperCullSetPanicHandler installs the callback invoked with a formatted
// message whenever a call across this boundary panics, instead of aborting
// the process. callback must remain valid for the lifetime of the process.
//
//export HyperCullSetPanicHandler
func HyperCullSetPanicHandler(callback C.panic_callback_t) {
	SetPanicHandler(func(msg string) {
		cmsg := C.CString(msg)
		defer C.free(unsafe.Pointer(cmsg))
		C.call_panic_callback(callback, cmsg)
	})
}
