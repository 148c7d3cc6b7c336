package texcache

import (
	"sync"
	"testing"
)

func TestHandleRefCounting(t *testing.T) {
	h := &handle{desc: Descriptor{ID: "x"}}
	if h.isReferenced() {
		t.Error("fresh handle reports referenced")
	}

	r1 := h.acquire()
	r2 := h.acquire()
	if !h.isReferenced() {
		t.Error("handle with two refs reports unreferenced")
	}

	r1.Release()
	if !h.isReferenced() {
		t.Error("handle with one ref reports unreferenced")
	}

	r2.Release()
	if h.isReferenced() {
		t.Error("handle with released refs reports referenced")
	}
}

func TestRefReleaseIdempotent(t *testing.T) {
	h := &handle{desc: Descriptor{ID: "x"}}
	r := h.acquire()
	r.Release()
	r.Release()
	r.Release()
	if got := h.refs.Load(); got != 0 {
		t.Errorf("refs = %d after redundant releases, want 0", got)
	}
}

// Refs may be released from other goroutines.
func TestRefReleaseConcurrent(t *testing.T) {
	h := &handle{desc: Descriptor{ID: "x"}}
	const n = 64
	refs := make([]*Ref, n)
	for i := range refs {
		refs[i] = h.acquire()
	}

	var wg sync.WaitGroup
	for _, r := range refs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Release()
			r.Release()
		}()
	}
	wg.Wait()

	if got := h.refs.Load(); got != 0 {
		t.Errorf("refs = %d after concurrent releases, want 0", got)
	}
}

func TestHandleDestroyReleasesResources(t *testing.T) {
	dev := newMockDevice()
	tex, _ := dev.CreateTexture(&TextureDesc{Width: 1, Height: 1, ArrayLayers: 1, MipLevels: 1})
	sampler, _ := dev.CreateSampler(&SamplerDesc{})
	bindings, _ := dev.CreateBindingSet(tex.View(), sampler)

	h := &handle{texture: tex, sampler: sampler, bindings: bindings}
	h.destroy()

	if dev.liveTextures() != 0 {
		t.Error("texture not destroyed")
	}
	if !sampler.(*mockSampler).destroyed {
		t.Error("sampler not destroyed")
	}
	if !bindings.(*mockBindingSet).destroyed {
		t.Error("binding set not destroyed")
	}

	// Second destroy is a no-op.
	h.destroy()
}
