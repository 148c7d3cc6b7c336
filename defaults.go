package texcache

import (
	"fmt"
	"image/color"
)

// DefaultKind names one of the built-in 1x1 placeholder textures.
// Defaults are created lazily, pinned at priority 255, and survive
// every eviction; only Unload and Close remove them.
type DefaultKind uint32

// Placeholder kinds.
const (
	// DefaultWhite is opaque white, the neutral multiply texture.
	DefaultWhite DefaultKind = iota + 1

	// DefaultBlack is opaque black.
	DefaultBlack

	// DefaultNormal is the flat normal-map color (128, 128, 255).
	DefaultNormal

	// DefaultTransparent is fully transparent.
	DefaultTransparent

	// DefaultMissing is magenta, the fallback for unresolved ids.
	DefaultMissing
)

// String returns the placeholder name.
func (k DefaultKind) String() string {
	switch k {
	case DefaultWhite:
		return "white"
	case DefaultBlack:
		return "black"
	case DefaultNormal:
		return "normal"
	case DefaultTransparent:
		return "transparent"
	case DefaultMissing:
		return "missing"
	default:
		return fmt.Sprintf("DefaultKind(%d)", uint32(k))
	}
}

func (k DefaultKind) color() (color.RGBA, bool) {
	switch k {
	case DefaultWhite:
		return color.RGBA{255, 255, 255, 255}, true
	case DefaultBlack:
		return color.RGBA{0, 0, 0, 255}, true
	case DefaultNormal:
		return color.RGBA{128, 128, 255, 255}, true
	case DefaultTransparent:
		return color.RGBA{0, 0, 0, 0}, true
	case DefaultMissing:
		return color.RGBA{255, 0, 255, 255}, true
	default:
		return color.RGBA{}, false
	}
}

// DefaultTextureID returns the cache key EnsureDefault registers the
// placeholder under.
func DefaultTextureID(kind DefaultKind) string {
	return "__default_" + kind.String()
}

// EnsureDefault lazily creates a 1x1 pinned placeholder texture and
// returns its cache key. Requesting an already-created default is a
// no-op.
func (m *Manager) EnsureDefault(kind DefaultKind) (string, error) {
	if m.closed {
		return "", ErrClosed
	}
	if id, ok := m.defaults[kind]; ok && m.Contains(id) {
		return id, nil
	}
	c, ok := kind.color()
	if !ok {
		return "", fmt.Errorf("%w: unknown default kind %v", ErrInvalidDescriptor, kind)
	}

	desc := DefaultDescriptor()
	desc.ID = DefaultTextureID(kind)
	desc.Label = "default " + kind.String()
	desc.MemoryPriority = PriorityPinned
	if kind == DefaultNormal {
		desc.Format = FormatRGBA8Unorm
	}

	if err := m.loadPixels(desc, []*PixelBuffer{SolidPixels(1, 1, c)}); err != nil {
		return "", err
	}
	m.defaults[kind] = desc.ID
	Logger().Info("texcache: created default texture", "kind", kind, "id", desc.ID)
	return desc.ID, nil
}
