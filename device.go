package texcache

// Device abstracts the GPU backend the cache allocates through. The
// cache owns lifecycle and accounting; the device owns the actual
// resources. backend/native provides a gogpu/wgpu HAL implementation,
// and tests substitute an in-memory mock.
type Device interface {
	// CreateTexture allocates a texture and its default view.
	CreateTexture(desc *TextureDesc) (Texture, error)

	// CreateSampler allocates a sampler.
	CreateSampler(desc *SamplerDesc) (Sampler, error)

	// CreateBindingSet binds a texture view and sampler together for
	// shader access.
	CreateBindingSet(view TextureView, sampler Sampler) (BindingSet, error)

	// WriteTexture uploads tightly packed pixel data into one mip
	// level of one array layer.
	WriteTexture(tex Texture, layer, mip uint32, data []byte, bytesPerRow, rows uint32) error
}

// TextureDesc describes a device texture allocation.
type TextureDesc struct {
	Label       string
	Width       uint32
	Height      uint32
	ArrayLayers uint32
	MipLevels   uint32
	Format      Format
	Usage       UsagePattern
}

// SamplerDesc describes a device sampler allocation.
type SamplerDesc struct {
	Label       string
	Filter      FilterConfig
	AddressMode AddressMode
}

// Texture is a device texture allocation.
type Texture interface {
	// Width and Height report the base mip level dimensions.
	Width() uint32
	Height() uint32

	// Layers reports the array layer count.
	Layers() uint32

	// View returns the default full-resource view.
	View() TextureView

	// Destroy releases the texture and its view.
	Destroy()
}

// TextureView is an opaque shader-visible view over a texture.
type TextureView interface {
	Destroy()
}

// Sampler is an opaque device sampler.
type Sampler interface {
	Destroy()
}

// BindingSet is an opaque texture+sampler binding for draw encoding.
type BindingSet interface {
	Destroy()
}
