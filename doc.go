// Package texcache provides a budgeted GPU texture cache for 2D rendering.
//
// # Overview
//
// texcache loads, deduplicates, and evicts GPU textures shared between
// sprite and tilemap renderers in the GoGPU ecosystem. A single Manager
// owns every resident texture, tracks the bytes it has allocated on the
// device, and frees least-recently-used textures when usage crosses a
// configurable fraction of the memory budget.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/texcache"
//	    "github.com/gogpu/texcache/backend/native"
//	)
//
//	dev, _ := native.New(halDevice, halQueue)
//	mgr, _ := texcache.New(dev)
//
//	desc := texcache.DefaultDescriptor()
//	desc.ID = "sprites/player"
//	if err := mgr.LoadFromBytes(desc, pngData); err != nil {
//	    // handle decode/allocation failure
//	}
//
//	if ref, ok := mgr.Get("sprites/player"); ok {
//	    defer ref.Release()
//	    bind(ref.BindingSet())
//	}
//
// # Eviction
//
// Every load and every Get refreshes the texture's position in an
// access-ordered ledger. After each insert (and on demand via
// GarbageCollect) the Manager walks the ledger from least to most
// recently used and unloads candidates until usage falls back under
// budget * threshold. Two kinds of texture are never evicted by
// pressure: high-priority textures (MemoryPriority >= 200, with 255
// meaning permanently pinned) and textures some caller still references
// through an unreleased Ref.
//
// # Concurrency
//
// The Manager performs no internal locking. It is designed to be driven
// from a single render/update thread; wrap it in a mutex if you must
// share it. Ref tokens are the one exception: Release is safe to call
// from any goroutine.
//
// # Backends
//
// Device allocation and pixel uploads sit behind the Device interface.
// backend/native implements it on gogpu/wgpu's HAL; tests use in-memory
// mock devices.
package texcache
