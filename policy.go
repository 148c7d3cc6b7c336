package texcache

// BudgetPolicy controls how much GPU memory the cache may hold and how
// aggressively it evicts.
type BudgetPolicy struct {
	// MaxMemoryBudget is the memory ceiling in bytes. Zero disables
	// byte-pressure eviction.
	MaxMemoryBudget uint64

	// EvictionThreshold is the usage fraction eviction drives down to.
	// Eviction triggers once usage exceeds MaxMemoryBudget*threshold
	// and stops when it no longer does.
	EvictionThreshold float64

	// MaxTextureCount caps the number of resident textures. Zero
	// disables count-pressure eviction.
	MaxTextureCount int

	// EnableCompression permits block-compressed formats. When false,
	// BC descriptors are rejected before allocation.
	EnableCompression bool

	// EnableMipmaps permits mip chain generation. When false,
	// GenerateMipmaps is ignored and textures load single-level.
	EnableMipmaps bool

	// QualityLevel scales texture dimensions at load time, in (0, 1].
	// Values below 1 downscale decoded images before upload, trading
	// sharpness for memory.
	QualityLevel float64
}

// DefaultBudgetPolicy returns the policy used when none is supplied:
// 512 MiB ceiling, eviction at 80% usage, 1000 textures, compression
// and mipmaps on, full quality.
func DefaultBudgetPolicy() BudgetPolicy {
	return BudgetPolicy{
		MaxMemoryBudget:   512 << 20,
		EvictionThreshold: 0.8,
		MaxTextureCount:   1000,
		EnableCompression: true,
		EnableMipmaps:     true,
		QualityLevel:      1.0,
	}
}

// normalize clamps out-of-range fields to sane values.
func (p *BudgetPolicy) normalize() {
	if p.EvictionThreshold <= 0 || p.EvictionThreshold > 1 {
		p.EvictionThreshold = 0.8
	}
	if p.QualityLevel <= 0 || p.QualityLevel > 1 {
		p.QualityLevel = 1.0
	}
	if p.MaxTextureCount < 0 {
		p.MaxTextureCount = 0
	}
}

// evictionFloor is the byte usage eviction drives down to.
func (p BudgetPolicy) evictionFloor() uint64 {
	return uint64(float64(p.MaxMemoryBudget) * p.EvictionThreshold)
}
