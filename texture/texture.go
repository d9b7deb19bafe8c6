// Package texture holds decoded images for pixel-stage sampling.
//
// Textures are stored as non-premultiplied 8-bit RGBA. Sample follows the
// texture's gputypes.SamplerDescriptor; the default is clamped
// nearest-texel lookup (gputypes.DefaultSamplerDescriptor).
package texture

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/gogpu/gputypes"
)

// Texture is an immutable RGBA8 image.
type Texture struct {
	img     *image.NRGBA
	sampler gputypes.SamplerDescriptor
}

// FromImage copies img into a new texture. The copy is rebased so the
// top-left texel is (0, 0). Images without pixels yield ErrEmptyData.
func FromImage(img image.Image) (*Texture, error) {
	b := img.Bounds()
	if b.Empty() {
		return nil, ErrEmptyData
	}

	var dst *image.NRGBA
	if src, ok := img.(*image.NRGBA); ok && b.Min == (image.Point{}) {
		dst = &image.NRGBA{
			Pix:    append([]uint8(nil), src.Pix...),
			Stride: src.Stride,
			Rect:   src.Rect,
		}
	} else {
		dst = image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(dst, dst.Rect, img, b.Min, draw.Src)
	}

	return &Texture{
		img:     dst,
		sampler: gputypes.DefaultSamplerDescriptor(),
	}, nil
}

// Width returns the texture width in texels.
func (t *Texture) Width() int { return t.img.Rect.Dx() }

// Height returns the texture height in texels.
func (t *Texture) Height() int { return t.img.Rect.Dy() }

// Sampler returns the descriptor Sample follows.
func (t *Texture) Sampler() gputypes.SamplerDescriptor {
	return t.sampler
}

// WithSampler returns a texture sharing t's texels that samples with d.
// Only the U and V address modes and the magnification filter are used;
// undefined values fall back to clamp-to-edge and nearest.
func (t *Texture) WithSampler(d gputypes.SamplerDescriptor) *Texture {
	c := *t
	c.sampler = d
	return &c
}

// At returns the texel at (x, y). Coordinates outside the texture return
// transparent black.
func (t *Texture) At(x, y int) color.NRGBA {
	return t.img.NRGBAAt(x, y)
}

// Image returns the underlying image. Callers must not modify it.
func (t *Texture) Image() *image.NRGBA {
	return t.img
}

// Sample returns the filtered color at normalized coordinates (u, v),
// where (0, 0) is the top-left corner and (1, 1) the bottom-right.
//
// With nearest filtering the coordinates are scaled by the texture size,
// offset by half a texel and truncated before the address mode maps them
// onto the texture. Clamp-to-edge therefore sends (1, 1) to the
// bottom-right texel.
func (t *Texture) Sample(u, v float64) color.NRGBA {
	if t.sampler.MagFilter == gputypes.FilterModeLinear {
		return t.sampleLinear(u, v)
	}
	x := t.address(u*float64(t.Width())+0.5, t.Width(), t.sampler.AddressModeU)
	y := t.address(v*float64(t.Height())+0.5, t.Height(), t.sampler.AddressModeV)
	return t.img.NRGBAAt(x, y)
}

// sampleLinear blends the four texels around (u, v).
func (t *Texture) sampleLinear(u, v float64) color.NRGBA {
	fx := u*float64(t.Width()) - 0.5
	fy := v*float64(t.Height()) - 0.5
	if math.IsNaN(fx) || math.IsNaN(fy) {
		return t.img.NRGBAAt(0, 0)
	}
	x0, y0 := math.Floor(fx), math.Floor(fy)
	ax, ay := fx-x0, fy-y0

	mu, mv := t.sampler.AddressModeU, t.sampler.AddressModeV
	xa := t.address(x0, t.Width(), mu)
	xb := t.address(x0+1, t.Width(), mu)
	ya := t.address(y0, t.Height(), mv)
	yb := t.address(y0+1, t.Height(), mv)

	c00, c10 := t.img.NRGBAAt(xa, ya), t.img.NRGBAAt(xb, ya)
	c01, c11 := t.img.NRGBAAt(xa, yb), t.img.NRGBAAt(xb, yb)
	mix := func(a, b, c, d uint8) uint8 {
		top := float64(a) + (float64(b)-float64(a))*ax
		bot := float64(c) + (float64(d)-float64(c))*ax
		return uint8(math.Round(top + (bot-top)*ay))
	}
	return color.NRGBA{
		R: mix(c00.R, c10.R, c01.R, c11.R),
		G: mix(c00.G, c10.G, c01.G, c11.G),
		B: mix(c00.B, c10.B, c01.B, c11.B),
		A: mix(c00.A, c10.A, c01.A, c11.A),
	}
}

// address maps the texel coordinate c (truncated toward -Inf for the
// wrapping modes) into [0, n) under mode.
func (t *Texture) address(c float64, n int, mode gputypes.AddressMode) int {
	switch mode {
	case gputypes.AddressModeRepeat:
		if !isFinite(c) {
			return 0
		}
		i := int(math.Floor(c)) % n
		if i < 0 {
			i += n
		}
		return i
	case gputypes.AddressModeMirrorRepeat:
		if !isFinite(c) {
			return 0
		}
		i := int(math.Floor(c)) % (2 * n)
		if i < 0 {
			i += 2 * n
		}
		if i >= n {
			i = 2*n - 1 - i
		}
		return i
	default:
		return int(clamp(c, float64(n-1)))
	}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// clamp limits v to [0, hi]. NaN maps to 0.
func clamp(v, hi float64) float64 {
	if !(v > 0) {
		return 0
	}
	if v > hi {
		return hi
	}
	return v
}
