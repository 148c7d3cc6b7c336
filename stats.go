package texcache

import "time"

// Statistics accumulates cache activity over the Manager's lifetime.
// Every counter is monotonic; current usage lives on the Manager
// (MemoryUsage). Read a snapshot with Manager.Stats.
type Statistics struct {
	// TexturesLoaded counts successful loads (misses that allocated).
	TexturesLoaded uint64

	// MemoryAllocated is the total bytes allocated over the lifetime.
	// Eviction and unload do not decrease it.
	MemoryAllocated uint64

	// CacheHits counts loads and gets that found a resident texture.
	CacheHits uint64

	// CacheMisses counts gets and loads that found nothing resident.
	CacheMisses uint64

	// TexturesEvicted counts removals by memory or count pressure.
	TexturesEvicted uint64

	// FailedAllocations counts loads that failed after the decode step.
	FailedAllocations uint64

	// LoadTime is the total wall time spent in load operations.
	LoadTime time.Duration

	// EvictTime is the total wall time spent evicting.
	EvictTime time.Duration
}

// HitRate returns hits / (hits + misses), or 1 when nothing has been
// requested yet.
func (s Statistics) HitRate() float64 {
	total := s.CacheHits + s.CacheMisses
	if total == 0 {
		return 1
	}
	return float64(s.CacheHits) / float64(total)
}

// MemoryEfficiency returns lifetime allocated bytes as a fraction of
// the budget, clamped to [0, 1]. A zero budget reports full efficiency.
func (s Statistics) MemoryEfficiency(budget uint64) float64 {
	if budget == 0 {
		return 1
	}
	eff := float64(s.MemoryAllocated) / float64(budget)
	if eff > 1 {
		return 1
	}
	return eff
}
