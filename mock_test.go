package texcache

import (
	"errors"
	"fmt"
	"image/color"
)

var whiteRGBA = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// mockDevice is a test double for Device that tracks allocations,
// uploads and destructions, with per-call failure injection.
type mockDevice struct {
	createTextureErr    error
	createSamplerErr    error
	createBindingSetErr error
	writeErr            error

	texturesCreated int
	samplersCreated int
	bindingsCreated int
	writes          []writeCall

	live map[*mockTexture]bool
}

type writeCall struct {
	layer, mip  uint32
	bytes       int
	bytesPerRow uint32
	rows        uint32
}

func newMockDevice() *mockDevice {
	return &mockDevice{live: make(map[*mockTexture]bool)}
}

func (d *mockDevice) CreateTexture(desc *TextureDesc) (Texture, error) {
	if d.createTextureErr != nil {
		return nil, d.createTextureErr
	}
	d.texturesCreated++
	t := &mockTexture{device: d, desc: *desc, view: &mockView{}}
	d.live[t] = true
	return t, nil
}

func (d *mockDevice) CreateSampler(desc *SamplerDesc) (Sampler, error) {
	if d.createSamplerErr != nil {
		return nil, d.createSamplerErr
	}
	d.samplersCreated++
	return &mockSampler{}, nil
}

func (d *mockDevice) CreateBindingSet(view TextureView, sampler Sampler) (BindingSet, error) {
	if d.createBindingSetErr != nil {
		return nil, d.createBindingSetErr
	}
	d.bindingsCreated++
	return &mockBindingSet{}, nil
}

func (d *mockDevice) WriteTexture(tex Texture, layer, mip uint32, data []byte, bytesPerRow, rows uint32) error {
	if d.writeErr != nil {
		return d.writeErr
	}
	d.writes = append(d.writes, writeCall{layer: layer, mip: mip, bytes: len(data), bytesPerRow: bytesPerRow, rows: rows})
	return nil
}

// liveTextures reports how many created textures are not yet destroyed.
func (d *mockDevice) liveTextures() int {
	n := 0
	for _, alive := range d.live {
		if alive {
			n++
		}
	}
	return n
}

type mockTexture struct {
	device    *mockDevice
	desc      TextureDesc
	view      *mockView
	destroyed bool
}

func (t *mockTexture) Width() uint32     { return t.desc.Width }
func (t *mockTexture) Height() uint32    { return t.desc.Height }
func (t *mockTexture) Layers() uint32    { return t.desc.ArrayLayers }
func (t *mockTexture) View() TextureView { return t.view }
func (t *mockTexture) Destroy() {
	t.destroyed = true
	t.device.live[t] = false
}

type mockView struct{ destroyed bool }

func (v *mockView) Destroy() { v.destroyed = true }

type mockSampler struct{ destroyed bool }

func (s *mockSampler) Destroy() { s.destroyed = true }

type mockBindingSet struct{ destroyed bool }

func (b *mockBindingSet) Destroy() { b.destroyed = true }

// sizedDecoder ignores the input bytes and always yields a w x h white
// buffer, so load tests control footprints without encoding images.
func sizedDecoder(w, h uint32) func([]byte) (*PixelBuffer, error) {
	return func(data []byte) (*PixelBuffer, error) {
		if len(data) == 0 {
			return nil, fmt.Errorf("%w: empty input", ErrDecodeFailed)
		}
		return SolidPixels(w, h, whiteRGBA), nil
	}
}

// countingDecoder wraps sizedDecoder and counts invocations.
type countingDecoder struct {
	calls int
	w, h  uint32
}

func (c *countingDecoder) decode(data []byte) (*PixelBuffer, error) {
	c.calls++
	return sizedDecoder(c.w, c.h)(data)
}

var errMockDevice = errors.New("mock device failure")
