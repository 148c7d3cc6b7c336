package texcache

import "errors"

// Errors returned by Manager operations. Wrapped errors carry detail;
// match with errors.Is.
var (
	// ErrDecodeFailed is returned when a pixel source is malformed or
	// unreadable. Nothing is registered; the caller may retry with
	// different data.
	ErrDecodeFailed = errors.New("texcache: image decode failed")

	// ErrAllocationFailed is returned when the backend refuses to
	// realize device memory. Nothing is registered. Callers are
	// expected to GarbageCollect and retry once.
	ErrAllocationFailed = errors.New("texcache: texture allocation failed")

	// ErrNotLoaded is returned by operations referencing an identifier
	// that was never successfully loaded. Load the texture first.
	ErrNotLoaded = errors.New("texcache: texture not loaded")

	// ErrInvalidDescriptor is returned for descriptors the cache cannot
	// normalize: empty identifier or zero pixel dimensions.
	ErrInvalidDescriptor = errors.New("texcache: invalid descriptor")

	// ErrBudgetExceeded signals that eviction could not bring memory
	// usage back under the threshold because every candidate was pinned
	// or still referenced. It is logged at warn level, never returned
	// from a load: an over-budget cache that keeps serving textures is
	// preferable to one that refuses a needed resource.
	ErrBudgetExceeded = errors.New("texcache: memory budget exceeded after eviction")

	// ErrClosed is returned when operating on a closed Manager.
	ErrClosed = errors.New("texcache: manager is closed")

	// ErrNilDevice is returned when constructing a Manager without a device.
	ErrNilDevice = errors.New("texcache: nil device")
)
