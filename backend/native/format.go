package native

import (
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/texcache"
)

// convertFormat maps a cache format onto the HAL formats this backend
// supports. Half-float and block-compressed formats are not exposed by
// the HAL's 8-bit upload path and are rejected.
func convertFormat(f texcache.Format) (gputypes.TextureFormat, error) {
	switch f {
	case texcache.FormatRGBA8UnormSRGB:
		return gputypes.TextureFormatRGBA8UnormSrgb, nil
	case texcache.FormatRGBA8Unorm:
		return gputypes.TextureFormatRGBA8Unorm, nil
	case texcache.FormatR8Unorm:
		return gputypes.TextureFormatR8Unorm, nil
	default:
		return gputypes.TextureFormatUndefined, fmt.Errorf("%w: %v", ErrUnsupportedFormat, f)
	}
}

// convertUsage derives HAL usage flags from the content's update
// pattern. Everything is sampled and upload-writable; frequently
// rewritten content is also readable for staging copies, and render
// targets are attachable.
func convertUsage(u texcache.UsagePattern) gputypes.TextureUsage {
	usage := gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst
	switch u {
	case texcache.UsageDynamic, texcache.UsageStreaming:
		usage |= gputypes.TextureUsageCopySrc
	case texcache.UsageRenderTarget:
		usage |= gputypes.TextureUsageRenderAttachment
	}
	return usage
}

// convertAddressMode maps coordinate wrapping onto the HAL.
func convertAddressMode(m texcache.AddressMode) gputypes.AddressMode {
	switch m {
	case texcache.AddressRepeat:
		return gputypes.AddressModeRepeat
	case texcache.AddressMirrorRepeat:
		return gputypes.AddressModeMirrorRepeat
	default:
		return gputypes.AddressModeClampToEdge
	}
}
