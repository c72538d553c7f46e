// Command udgeruacabi builds a C shared/static library exposing
// udgerua's Engine/Context/Parse surface across a C ABI.
// Build with: go build -buildmode=c-shared -tags udger_cabi
//
// Engines and contexts are tracked in handle tables (map[int]*T guarded by
// sync.RWMutex) rather than passed as pointers, since cgo callers only ever
// see opaque C.int handles.
//
//go:build udger_cabi

package main

/*
#include <stdlib.h>
*/
import "C"

import (
	"encoding/json"
	"sync"
	"unsafe"

	udgerua "github.com/praetorian-inc/udgerua"
)

var (
	engines      = make(map[int]*udgerua.Engine)
	enginesMu    sync.RWMutex
	nextEngineID int

	contexts      = make(map[int]*udgerua.Context)
	contextsMu    sync.RWMutex
	nextContextID int
)

// UdgeruaNewEngine opens the catalogue at catalogueDBPath (a NUL-terminated
// C string) and returns a non-negative engine handle, or -1 on error.
//
//export UdgeruaNewEngine
func UdgeruaNewEngine(catalogueDBPath *C.char, lruCapacity C.int) C.int {
	path := C.GoString(catalogueDBPath)
	engine, err := udgerua.New(path, int(lruCapacity))
	if err != nil {
		return -1
	}

	enginesMu.Lock()
	id := nextEngineID
	nextEngineID++
	engines[id] = engine
	enginesMu.Unlock()
	return C.int(id)
}

// UdgeruaNewContext allocates a Context bound to engineHandle and returns a
// non-negative context handle, or -1 on error.
//
//export UdgeruaNewContext
func UdgeruaNewContext(engineHandle C.int) C.int {
	enginesMu.RLock()
	engine, ok := engines[int(engineHandle)]
	enginesMu.RUnlock()
	if !ok {
		return -1
	}

	ctx, err := engine.NewContext()
	if err != nil {
		return -1
	}

	contextsMu.Lock()
	id := nextContextID
	nextContextID++
	contexts[id] = ctx
	contextsMu.Unlock()
	return C.int(id)
}

// UdgeruaParse classifies ua (a NUL-terminated C string) using engineHandle
// and contextHandle, returning a malloc'd JSON C string the caller must
// free with UdgeruaFreeString, or NULL on error. class_id/client_id are
// internal routing fields and are never serialized into this JSON.
//
//export UdgeruaParse
func UdgeruaParse(engineHandle, contextHandle C.int, ua *C.char) *C.char {
	enginesMu.RLock()
	engine, ok := engines[int(engineHandle)]
	enginesMu.RUnlock()
	if !ok {
		return nil
	}

	contextsMu.RLock()
	ctx, ok := contexts[int(contextHandle)]
	contextsMu.RUnlock()
	if !ok {
		return nil
	}

	info, err := engine.Parse(C.GoString(ua), ctx)
	if err != nil {
		return nil
	}

	jsonBytes, err := json.Marshal(info)
	if err != nil {
		return nil
	}
	return C.CString(string(jsonBytes))
}

// UdgeruaFreeString releases a string returned by UdgeruaParse.
//
//export UdgeruaFreeString
func UdgeruaFreeString(s *C.char) {
	C.free(unsafe.Pointer(s))
}

// UdgeruaCloseContext releases a context handle's scratch state and
// RowStore handle.
//
//export UdgeruaCloseContext
func UdgeruaCloseContext(contextHandle C.int) {
	contextsMu.Lock()
	ctx, ok := contexts[int(contextHandle)]
	if ok {
		delete(contexts, int(contextHandle))
	}
	contextsMu.Unlock()
	if ok {
		ctx.Close()
	}
}

// UdgeruaCloseEngine releases an engine handle's compiled catalogue.
//
//export UdgeruaCloseEngine
func UdgeruaCloseEngine(engineHandle C.int) {
	enginesMu.Lock()
	engine, ok := engines[int(engineHandle)]
	if ok {
		delete(engines, int(engineHandle))
	}
	enginesMu.Unlock()
	if ok {
		engine.Close()
	}
}

func main() {}
