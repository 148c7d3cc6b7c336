package texcache

import "fmt"

// Format specifies the pixel layout of a cached texture.
//
// Each format has a fixed cost in bytes per pixel and a filterability
// flag. The cache records the format for footprint accounting and hands
// it to the backend unchanged; it implements no codecs itself.
type Format uint32

// Texture formats.
const (
	// FormatRGBA8UnormSRGB is 8-bit RGBA with sRGB gamma encoding.
	// The standard choice for sprites and UI.
	FormatRGBA8UnormSRGB Format = iota + 1

	// FormatRGBA8Unorm is 8-bit RGBA in linear space, for normal maps
	// and data textures.
	FormatRGBA8Unorm

	// FormatR8Unorm is a single 8-bit channel, for masks and alpha.
	FormatR8Unorm

	// FormatRGBA16Float is 16-bit floating point RGBA, for high
	// precision content.
	FormatRGBA16Float

	// FormatBC1RGBAUnormSRGB is block-compressed RGBA (8 bytes per
	// 4x4 block) with sRGB encoding.
	FormatBC1RGBAUnormSRGB

	// FormatBC3RGBAUnormSRGB is block-compressed RGBA (16 bytes per
	// 4x4 block) with sRGB encoding.
	FormatBC3RGBAUnormSRGB
)

// BytesPerPixel returns the storage cost of one pixel in this format.
// Block-compressed formats amortize the block cost over its pixels:
// BC1 packs a 4x4 block into 8 bytes, BC3 into 16, so both round to a
// per-pixel figure of 1.
func (f Format) BytesPerPixel() uint32 {
	switch f {
	case FormatRGBA8UnormSRGB, FormatRGBA8Unorm:
		return 4
	case FormatR8Unorm:
		return 1
	case FormatRGBA16Float:
		return 8
	case FormatBC1RGBAUnormSRGB, FormatBC3RGBAUnormSRGB:
		return 1
	default:
		return 0
	}
}

// blockBytes returns the size of one 4x4 compression block, or 0 for
// uncompressed formats.
func (f Format) blockBytes() uint32 {
	switch f {
	case FormatBC1RGBAUnormSRGB:
		return 8
	case FormatBC3RGBAUnormSRGB:
		return 16
	default:
		return 0
	}
}

// Filterable reports whether the format supports linear filtering.
func (f Format) Filterable() bool {
	switch f {
	case FormatRGBA8UnormSRGB, FormatRGBA8Unorm, FormatR8Unorm,
		FormatRGBA16Float, FormatBC1RGBAUnormSRGB, FormatBC3RGBAUnormSRGB:
		return true
	default:
		return false
	}
}

// Compressed reports whether the format is block-compressed.
func (f Format) Compressed() bool {
	return f == FormatBC1RGBAUnormSRGB || f == FormatBC3RGBAUnormSRGB
}

// String returns the format name for debug labels and logs.
func (f Format) String() string {
	switch f {
	case FormatRGBA8UnormSRGB:
		return "RGBA8UnormSRGB"
	case FormatRGBA8Unorm:
		return "RGBA8Unorm"
	case FormatR8Unorm:
		return "R8Unorm"
	case FormatRGBA16Float:
		return "RGBA16Float"
	case FormatBC1RGBAUnormSRGB:
		return "BC1RGBAUnormSRGB"
	case FormatBC3RGBAUnormSRGB:
		return "BC3RGBAUnormSRGB"
	default:
		return fmt.Sprintf("Format(%d)", uint32(f))
	}
}

// UsagePattern declares how a texture's content will change over its
// lifetime. The backend derives low-level access flags from it.
type UsagePattern uint32

// Usage patterns.
const (
	// UsageStatic is loaded once and rarely touched (sprites, UI).
	UsageStatic UsagePattern = iota + 1

	// UsageDynamic is rewritten frequently (animated or procedural
	// content).
	UsageDynamic

	// UsageStreaming is uploaded incrementally in chunks.
	UsageStreaming

	// UsageRenderTarget is written by the GPU itself.
	UsageRenderTarget

	// UsageArray is an atlas or tilemap layer collection.
	UsageArray
)

// String returns the usage pattern name.
func (u UsagePattern) String() string {
	switch u {
	case UsageStatic:
		return "Static"
	case UsageDynamic:
		return "Dynamic"
	case UsageStreaming:
		return "Streaming"
	case UsageRenderTarget:
		return "RenderTarget"
	case UsageArray:
		return "Array"
	default:
		return fmt.Sprintf("UsagePattern(%d)", uint32(u))
	}
}

// FilterMode selects the sampling behavior for a texture.
type FilterMode uint32

// Filter modes.
const (
	// FilterNearest samples the nearest texel (pixel perfect).
	FilterNearest FilterMode = iota + 1

	// FilterLinear interpolates between texels (smooth).
	FilterLinear

	// FilterAnisotropic interpolates with anisotropic sampling.
	// The level comes from FilterConfig.Anisotropy.
	FilterAnisotropic
)

// FilterConfig pairs a filter mode with its anisotropy clamp.
type FilterConfig struct {
	// Mode is the sampling behavior.
	Mode FilterMode

	// Anisotropy is the maximum anisotropy level. Only meaningful for
	// FilterAnisotropic; other modes sample with a level of 1.
	Anisotropy uint16
}

// AnisotropyLevel returns the effective anisotropy clamp: the configured
// level for FilterAnisotropic, 1 otherwise.
func (c FilterConfig) AnisotropyLevel() uint16 {
	if c.Mode == FilterAnisotropic && c.Anisotropy > 1 {
		return c.Anisotropy
	}
	return 1
}

// Smooth reports whether sampling interpolates between texels.
// FilterAnisotropic implies linear interpolation.
func (c FilterConfig) Smooth() bool {
	return c.Mode == FilterLinear || c.Mode == FilterAnisotropic
}

// AddressMode controls texture coordinate wrapping outside [0, 1].
type AddressMode uint32

// Address modes.
const (
	// AddressClampToEdge clamps coordinates to the edge texel.
	AddressClampToEdge AddressMode = iota + 1

	// AddressRepeat tiles the texture.
	AddressRepeat

	// AddressMirrorRepeat tiles the texture, mirroring every other tile.
	AddressMirrorRepeat
)
