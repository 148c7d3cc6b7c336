package texcache

import (
	"sync/atomic"
	"time"
)

// handle is the cache's record of one resident texture: the backend
// resources, the descriptor that produced them, the accounted
// footprint, and the access bookkeeping the eviction ledger orders by.
type handle struct {
	desc      Descriptor
	texture   Texture
	sampler   Sampler
	bindings  BindingSet
	footprint uint64

	// lastAccess is informational; eviction order lives in the ledger,
	// which keeps a strict total order across same-tick accesses.
	lastAccess time.Time

	// refs counts outstanding Refs. Atomic so a renderer may release
	// from another goroutine without racing the eviction walk.
	refs atomic.Int32
}

// touch records an access time.
func (h *handle) touch(now time.Time) {
	h.lastAccess = now
}

// isReferenced reports whether any Ref is still outstanding.
func (h *handle) isReferenced() bool {
	return h.refs.Load() > 0
}

// acquire hands out a weak reference to the handle's resources.
func (h *handle) acquire() *Ref {
	h.refs.Add(1)
	return &Ref{h: h}
}

// destroy releases the backend resources in reverse creation order.
func (h *handle) destroy() {
	if h.bindings != nil {
		h.bindings.Destroy()
		h.bindings = nil
	}
	if h.sampler != nil {
		h.sampler.Destroy()
		h.sampler = nil
	}
	if h.texture != nil {
		h.texture.Destroy()
		h.texture = nil
	}
}

// Ref is a weak reference to a resident texture. While at least one Ref
// on a texture is unreleased, the eviction walk will not remove it.
// Release every Ref when the frame no longer needs it; Unload and Close
// remove resources regardless of outstanding Refs, after which the
// Ref's resources must not be used.
type Ref struct {
	h        *handle
	released atomic.Bool
}

// ID returns the texture's cache key.
func (r *Ref) ID() string { return r.h.desc.ID }

// Texture returns the backend texture.
func (r *Ref) Texture() Texture { return r.h.texture }

// Sampler returns the backend sampler.
func (r *Ref) Sampler() Sampler { return r.h.sampler }

// BindingSet returns the texture+sampler binding for draw encoding.
func (r *Ref) BindingSet() BindingSet { return r.h.bindings }

// Descriptor returns a copy of the descriptor the texture was loaded
// with, after normalization.
func (r *Ref) Descriptor() Descriptor { return r.h.desc }

// Release drops the reference. Safe to call from any goroutine;
// redundant calls are ignored.
func (r *Ref) Release() {
	if r.released.CompareAndSwap(false, true) {
		r.h.refs.Add(-1)
	}
}
