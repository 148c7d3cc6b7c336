package texcache

import "fmt"

// PriorityPinned marks a texture as permanently resident. Neither
// memory pressure nor GarbageCollect removes it; only Unload and Close
// do. Default placeholder textures are registered at this priority.
const PriorityPinned uint8 = 255

// priorityPinThreshold is the lowest priority the eviction walk skips.
const priorityPinThreshold uint8 = 200

// Descriptor describes a texture to load or create. The ID is the
// cache key: loading the same ID twice is a hit, not a reallocation.
//
// The zero value is not usable; start from DefaultDescriptor and
// override fields.
type Descriptor struct {
	// ID is the cache key. Required, unique per texture.
	ID string

	// Width and Height are the base mip level dimensions in pixels.
	Width  uint32
	Height uint32

	// Format is the pixel layout.
	Format Format

	// Usage declares the content's update pattern.
	Usage UsagePattern

	// MipLevels is the number of mip levels, at least 1.
	MipLevels uint32

	// ArrayLayers is the number of array layers. Values above 1 create
	// a texture array.
	ArrayLayers uint32

	// GenerateMipmaps requests a full mip chain built from the base
	// level at load time.
	GenerateMipmaps bool

	// Filter selects the sampling behavior.
	Filter FilterConfig

	// AddressMode controls coordinate wrapping.
	AddressMode AddressMode

	// MemoryPriority orders textures under memory pressure. Higher
	// values survive longer; 200 and above are never evicted by
	// pressure, and 255 marks a permanently resident texture.
	MemoryPriority uint8

	// Label names the backend resources for debugging tools. When
	// empty, the ID is used.
	Label string
}

// DefaultDescriptor returns a 1x1 sRGB static texture descriptor with
// linear filtering, edge clamping and middle priority. The ID must be
// filled in by the caller.
func DefaultDescriptor() Descriptor {
	return Descriptor{
		Width:          1,
		Height:         1,
		Format:         FormatRGBA8UnormSRGB,
		Usage:          UsageStatic,
		MipLevels:      1,
		ArrayLayers:    1,
		Filter:         FilterConfig{Mode: FilterLinear},
		AddressMode:    AddressClampToEdge,
		MemoryPriority: 128,
	}
}

// fullMipCount returns the number of levels in a complete mip chain for
// the given base dimensions.
func fullMipCount(width, height uint32) uint32 {
	n := uint32(1)
	for width > 1 || height > 1 {
		width = max(width/2, 1)
		height = max(height/2, 1)
		n++
	}
	return n
}

// normalize resolves defaulted fields in place: zero layer and mip
// counts become 1, and GenerateMipmaps expands a single-level
// descriptor to a full chain.
func (d *Descriptor) normalize() {
	if d.ArrayLayers == 0 {
		d.ArrayLayers = 1
	}
	if d.MipLevels == 0 {
		d.MipLevels = 1
	}
	if d.GenerateMipmaps && d.MipLevels == 1 {
		d.MipLevels = fullMipCount(d.Width, d.Height)
	}
}

// Validate checks the descriptor for contradictions. Callers get a
// wrapped ErrInvalidDescriptor naming the offending field.
func (d Descriptor) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("%w: empty ID", ErrInvalidDescriptor)
	}
	if d.Width == 0 || d.Height == 0 {
		return fmt.Errorf("%w: %q has zero dimension %dx%d",
			ErrInvalidDescriptor, d.ID, d.Width, d.Height)
	}
	if d.Format.BytesPerPixel() == 0 {
		return fmt.Errorf("%w: %q has unknown format %v", ErrInvalidDescriptor, d.ID, d.Format)
	}
	if d.Usage < UsageStatic || d.Usage > UsageArray {
		return fmt.Errorf("%w: %q has unknown usage pattern %v",
			ErrInvalidDescriptor, d.ID, d.Usage)
	}
	if d.MipLevels > fullMipCount(d.Width, d.Height) {
		return fmt.Errorf("%w: %q requests %d mip levels, chain for %dx%d has %d",
			ErrInvalidDescriptor, d.ID, d.MipLevels, d.Width, d.Height,
			fullMipCount(d.Width, d.Height))
	}
	if d.ArrayLayers > 1 && d.Usage != UsageArray {
		return fmt.Errorf("%w: %q has %d array layers without the Array usage pattern",
			ErrInvalidDescriptor, d.ID, d.ArrayLayers)
	}
	return nil
}

// mipOverhead is the footprint multiplier applied when a texture
// carries a mip chain. A full pyramid adds one third of the base level.
const mipOverhead = 1.33

// MemoryFootprint estimates the GPU memory cost of the described
// texture in bytes. The estimate is what the budget accounts, not the
// driver's true allocation.
func (d Descriptor) MemoryFootprint() uint64 {
	base := uint64(d.Width) * uint64(d.Height) * uint64(d.Format.BytesPerPixel())
	layers := uint64(d.ArrayLayers)
	if layers == 0 {
		layers = 1
	}
	base *= layers
	if d.MipLevels > 1 {
		return uint64(float64(base) * mipOverhead)
	}
	return base
}
