// Package native implements the texcache device interface on the
// gogpu/wgpu HAL.
package native

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/texcache"
)

// Backend errors.
var (
	// ErrNilHALDevice is returned when constructing without a device.
	ErrNilHALDevice = errors.New("native: device is nil")

	// ErrNilHALQueue is returned when constructing without a queue.
	ErrNilHALQueue = errors.New("native: queue is nil")

	// ErrUnsupportedFormat is returned for formats the HAL backend does
	// not map.
	ErrUnsupportedFormat = errors.New("native: unsupported texture format")

	// ErrForeignResource is returned when a resource from a different
	// backend is passed in.
	ErrForeignResource = errors.New("native: resource from a different backend")

	// ErrTextureDestroyed is returned when uploading into a destroyed
	// texture.
	ErrTextureDestroyed = errors.New("native: texture has been destroyed")
)

// Device realizes cache textures on a hal.Device and uploads through a
// hal.Queue. All binding sets share one lazily created texture+sampler
// bind group layout.
//
// Device is not safe for concurrent use; the cache serializes access.
type Device struct {
	device hal.Device
	queue  hal.Queue

	// layout is the shared bind group layout: binding 0 the sampled
	// texture, binding 1 the filtering sampler. Created on first
	// binding set.
	layout hal.BindGroupLayout
}

var _ texcache.Device = (*Device)(nil)

// New creates a Device on an existing HAL device and queue. The caller
// retains ownership of both.
func New(device hal.Device, queue hal.Queue) (*Device, error) {
	if device == nil {
		return nil, ErrNilHALDevice
	}
	if queue == nil {
		return nil, ErrNilHALQueue
	}
	return &Device{device: device, queue: queue}, nil
}

// CreateTexture allocates a 2D texture (or 2D array) and its default
// view.
func (d *Device) CreateTexture(desc *texcache.TextureDesc) (texcache.Texture, error) {
	format, err := convertFormat(desc.Format)
	if err != nil {
		return nil, err
	}

	halTex, err := d.device.CreateTexture(&hal.TextureDescriptor{
		Label: desc.Label,
		Size: hal.Extent3D{
			Width:              desc.Width,
			Height:             desc.Height,
			DepthOrArrayLayers: desc.ArrayLayers,
		},
		MipLevelCount: desc.MipLevels,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        format,
		Usage:         convertUsage(desc.Usage),
	})
	if err != nil {
		return nil, fmt.Errorf("create texture %q: %w", desc.Label, err)
	}

	// Default view over all levels and layers; zero values inherit
	// from the texture.
	halView, err := d.device.CreateTextureView(halTex, &hal.TextureViewDescriptor{
		Label:  desc.Label + " (view)",
		Format: gputypes.TextureFormatUndefined,
		Aspect: gputypes.TextureAspectAll,
	})
	if err != nil {
		d.device.DestroyTexture(halTex)
		return nil, fmt.Errorf("create texture view %q: %w", desc.Label, err)
	}

	return &Texture{
		device:     d.device,
		halTexture: halTex,
		view:       &TextureView{device: d.device, halView: halView},
		width:      desc.Width,
		height:     desc.Height,
		layers:     desc.ArrayLayers,
		mipLevels:  desc.MipLevels,
	}, nil
}

// CreateSampler allocates a sampler. Anisotropic filtering degrades to
// linear; the HAL samples with the device default anisotropy.
func (d *Device) CreateSampler(desc *texcache.SamplerDesc) (texcache.Sampler, error) {
	filter := gputypes.FilterModeNearest
	if desc.Filter.Smooth() {
		filter = gputypes.FilterModeLinear
	}
	address := convertAddressMode(desc.AddressMode)

	halSampler, err := d.device.CreateSampler(&hal.SamplerDescriptor{
		Label:        desc.Label + " (sampler)",
		AddressModeU: address,
		AddressModeV: address,
		AddressModeW: address,
		MagFilter:    filter,
		MinFilter:    filter,
		MipmapFilter: filter,
	})
	if err != nil {
		return nil, fmt.Errorf("create sampler %q: %w", desc.Label, err)
	}
	return &Sampler{device: d.device, halSampler: halSampler}, nil
}

// CreateBindingSet builds a bind group pairing a texture view with a
// sampler on the shared layout.
func (d *Device) CreateBindingSet(view texcache.TextureView, sampler texcache.Sampler) (texcache.BindingSet, error) {
	v, ok := view.(*TextureView)
	if !ok {
		return nil, fmt.Errorf("%w: texture view %T", ErrForeignResource, view)
	}
	s, ok := sampler.(*Sampler)
	if !ok {
		return nil, fmt.Errorf("%w: sampler %T", ErrForeignResource, sampler)
	}
	if err := d.ensureLayout(); err != nil {
		return nil, err
	}

	bindGroup, err := d.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "texcache_bind",
		Layout: d.layout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.TextureViewBinding{
				TextureView: v.halView.NativeHandle(),
			}},
			{Binding: 1, Resource: gputypes.SamplerBinding{
				Sampler: s.halSampler.NativeHandle(),
			}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create bind group: %w", err)
	}
	return &BindingSet{device: d.device, halBindGroup: bindGroup}, nil
}

// ensureLayout lazily creates the shared texture+sampler layout.
func (d *Device) ensureLayout() error {
	if d.layout != nil {
		return nil
	}
	layout, err := d.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "texcache_bind_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeFloat,
					ViewDimension: gputypes.TextureViewDimension2D,
				},
			},
			{
				Binding:    1,
				Visibility: gputypes.ShaderStageFragment,
				Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create bind group layout: %w", err)
	}
	d.layout = layout
	return nil
}

// BindGroupLayout returns the shared texture+sampler layout so render
// pipelines can include it in their pipeline layout. Created on first
// use.
func (d *Device) BindGroupLayout() (hal.BindGroupLayout, error) {
	if err := d.ensureLayout(); err != nil {
		return nil, err
	}
	return d.layout, nil
}

// WriteTexture uploads tightly packed pixel data into one mip level of
// one array layer.
func (d *Device) WriteTexture(tex texcache.Texture, layer, mip uint32, data []byte, bytesPerRow, rows uint32) error {
	t, ok := tex.(*Texture)
	if !ok {
		return fmt.Errorf("%w: texture %T", ErrForeignResource, tex)
	}
	if t.destroyed {
		return ErrTextureDestroyed
	}
	if layer >= t.layers || mip >= t.mipLevels {
		return fmt.Errorf("native: layer %d mip %d out of range for %dx%d x%d (%d mips)",
			layer, mip, t.width, t.height, t.layers, t.mipLevels)
	}

	d.queue.WriteTexture(
		&hal.ImageCopyTexture{
			Texture:  t.halTexture,
			MipLevel: mip,
			Origin:   hal.Origin3D{X: 0, Y: 0, Z: layer},
			Aspect:   gputypes.TextureAspectAll,
		},
		data,
		&hal.ImageDataLayout{
			Offset:       0,
			BytesPerRow:  bytesPerRow,
			RowsPerImage: rows,
		},
		&hal.Extent3D{
			Width:              mipDim(t.width, mip),
			Height:             mipDim(t.height, mip),
			DepthOrArrayLayers: 1,
		},
	)
	return nil
}

// mipDim returns a base dimension scaled down to a mip level.
func mipDim(base, mip uint32) uint32 {
	return max(base>>mip, 1)
}

// Close releases the shared bind group layout. Textures, samplers and
// binding sets handed out earlier are owned by their holders.
func (d *Device) Close() {
	if d.layout != nil {
		d.device.DestroyBindGroupLayout(d.layout)
		d.layout = nil
	}
}
