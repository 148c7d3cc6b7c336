package native

import (
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/texcache"
)

// Texture wraps a hal.Texture together with its default view.
type Texture struct {
	device     hal.Device
	halTexture hal.Texture
	view       *TextureView

	width     uint32
	height    uint32
	layers    uint32
	mipLevels uint32

	destroyed bool
}

var _ texcache.Texture = (*Texture)(nil)

// Width returns the base mip level width in pixels.
func (t *Texture) Width() uint32 { return t.width }

// Height returns the base mip level height in pixels.
func (t *Texture) Height() uint32 { return t.height }

// Layers returns the array layer count.
func (t *Texture) Layers() uint32 { return t.layers }

// View returns the default full-resource view.
func (t *Texture) View() texcache.TextureView { return t.view }

// Raw returns the underlying texture handle, or nil once destroyed.
func (t *Texture) Raw() hal.Texture {
	if t.destroyed {
		return nil
	}
	return t.halTexture
}

// Destroy releases the texture and its default view. Idempotent.
func (t *Texture) Destroy() {
	if t.destroyed {
		return
	}
	t.destroyed = true
	t.view.Destroy()
	t.device.DestroyTexture(t.halTexture)
	t.halTexture = nil
}

// TextureView wraps a hal.TextureView.
type TextureView struct {
	device    hal.Device
	halView   hal.TextureView
	destroyed bool
}

var _ texcache.TextureView = (*TextureView)(nil)

// Raw returns the underlying view handle, or nil once destroyed.
func (v *TextureView) Raw() hal.TextureView {
	if v.destroyed {
		return nil
	}
	return v.halView
}

// Destroy releases the view. Idempotent; also called by the owning
// texture's Destroy.
func (v *TextureView) Destroy() {
	if v.destroyed {
		return
	}
	v.destroyed = true
	v.device.DestroyTextureView(v.halView)
	v.halView = nil
}

// Sampler wraps a hal.Sampler.
type Sampler struct {
	device     hal.Device
	halSampler hal.Sampler
	destroyed  bool
}

var _ texcache.Sampler = (*Sampler)(nil)

// Raw returns the underlying sampler handle, or nil once destroyed.
func (s *Sampler) Raw() hal.Sampler {
	if s.destroyed {
		return nil
	}
	return s.halSampler
}

// Destroy releases the sampler. Idempotent.
func (s *Sampler) Destroy() {
	if s.destroyed {
		return
	}
	s.destroyed = true
	s.device.DestroySampler(s.halSampler)
	s.halSampler = nil
}

// BindingSet wraps a hal.BindGroup pairing a texture view and sampler.
type BindingSet struct {
	device       hal.Device
	halBindGroup hal.BindGroup
	destroyed    bool
}

var _ texcache.BindingSet = (*BindingSet)(nil)

// Raw returns the underlying bind group handle for draw encoding, or
// nil once destroyed.
func (b *BindingSet) Raw() hal.BindGroup {
	if b.destroyed {
		return nil
	}
	return b.halBindGroup
}

// Destroy releases the bind group. Idempotent.
func (b *BindingSet) Destroy() {
	if b.destroyed {
		return
	}
	b.destroyed = true
	b.device.DestroyBindGroup(b.halBindGroup)
	b.halBindGroup = nil
}
