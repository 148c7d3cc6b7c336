package texcache

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"math"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	xdraw "golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// PixelBuffer holds tightly packed 8-bit RGBA pixels ready for upload.
type PixelBuffer struct {
	Width  uint32
	Height uint32

	// Data is Width*Height*4 bytes, row-major, no row padding.
	Data []byte
}

// DecodePixels decodes an encoded image (png, jpeg, gif, bmp, tiff,
// webp) into an RGBA pixel buffer.
func DecodePixels(data []byte) (*PixelBuffer, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrDecodeFailed)
	}
	img, kind, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecodeFailed, err)
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("%w: %s image has no pixels", ErrDecodeFailed, kind)
	}
	return fromImage(img), nil
}

// fromImage converts any image.Image into a tightly packed RGBA buffer.
// The common *image.RGBA case avoids per-pixel conversion when the
// stride is already tight.
func fromImage(img image.Image) *PixelBuffer {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	if rgba, ok := img.(*image.RGBA); ok && rgba.Stride == w*4 && b.Min == image.Pt(0, 0) {
		return &PixelBuffer{Width: uint32(w), Height: uint32(h), Data: rgba.Pix}
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.Draw(dst, dst.Bounds(), img, b.Min, xdraw.Src)
	return &PixelBuffer{Width: uint32(w), Height: uint32(h), Data: dst.Pix}
}

// SolidPixels returns a w x h buffer filled with a single color.
func SolidPixels(w, h uint32, c color.RGBA) *PixelBuffer {
	data := make([]byte, int(w)*int(h)*4)
	for i := 0; i < len(data); i += 4 {
		data[i+0] = c.R
		data[i+1] = c.G
		data[i+2] = c.B
		data[i+3] = c.A
	}
	return &PixelBuffer{Width: w, Height: h, Data: data}
}

// encode converts the RGBA buffer into upload bytes for a format.
// RGBA 8-bit formats pass through without copying; R8 keeps the red
// channel; RGBA16Float widens each 8-bit channel to a half float.
func (p *PixelBuffer) encode(f Format) []byte {
	switch f {
	case FormatR8Unorm:
		out := make([]byte, len(p.Data)/4)
		for i := range out {
			out[i] = p.Data[i*4]
		}
		return out
	case FormatRGBA16Float:
		out := make([]byte, len(p.Data)*2)
		for i, v := range p.Data {
			bits := float16bits(float32(v) / 255)
			out[i*2] = byte(bits)
			out[i*2+1] = byte(bits >> 8)
		}
		return out
	default:
		return p.Data
	}
}

// float16bits packs a float32 into IEEE 754 half precision. Inputs here
// are normalized channel values in [0, 1]; out-of-range exponents clamp
// to zero and infinity.
func float16bits(f float32) uint16 {
	b := math.Float32bits(f)
	sign := uint16(b>>16) & 0x8000
	exp := int32(b>>23&0xff) - 127 + 15
	mant := b & 0x7fffff
	switch {
	case exp <= 0:
		return sign
	case exp >= 31:
		return sign | 0x7c00
	default:
		return sign | uint16(exp)<<10 | uint16(mant>>13)
	}
}

// rgba wraps the buffer as an *image.RGBA without copying.
func (p *PixelBuffer) rgba() *image.RGBA {
	return &image.RGBA{
		Pix:    p.Data,
		Stride: int(p.Width) * 4,
		Rect:   image.Rect(0, 0, int(p.Width), int(p.Height)),
	}
}

// Scale resamples the buffer to w x h with a Catmull-Rom kernel.
// Returns the receiver when the size already matches.
func (p *PixelBuffer) Scale(w, h uint32) *PixelBuffer {
	if w == 0 || h == 0 || (w == p.Width && h == p.Height) {
		return p
	}
	dst := image.NewRGBA(image.Rect(0, 0, int(w), int(h)))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), p.rgba(), p.rgba().Bounds(), xdraw.Src, nil)
	return &PixelBuffer{Width: w, Height: h, Data: dst.Pix}
}

// HalfSize returns the next mip level: each dimension halved, floored
// at 1, resampled bilinearly.
func (p *PixelBuffer) HalfSize() *PixelBuffer {
	w := max(p.Width/2, 1)
	h := max(p.Height/2, 1)
	dst := image.NewRGBA(image.Rect(0, 0, int(w), int(h)))
	xdraw.BiLinear.Scale(dst, dst.Bounds(), p.rgba(), p.rgba().Bounds(), xdraw.Src, nil)
	return &PixelBuffer{Width: w, Height: h, Data: dst.Pix}
}
