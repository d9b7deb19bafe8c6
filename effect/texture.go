package effect

import "github.com/gogpu/softpipe"

// Texture maps a bound texture onto the mesh.
type Texture struct{}

// NewTexture creates the texture effect.
func NewTexture() *Texture { return &Texture{} }

// ShadePixel returns the clamped nearest texel at the interpolated UV.
func (*Texture) ShadePixel(b *softpipe.Bindings, in TexVertex) softpipe.RGBA {
	return b.Sample(in.UV)
}

// SamplesTexture reports that drawing needs a bound texture.
func (*Texture) SamplesTexture() bool { return true }

// Effect returns the stages: default vertex transform, pass-through
// geometry and texture lookup.
func (t *Texture) Effect() softpipe.Effect[TexVertex, TexVertex, TexVertex] {
	return softpipe.NewEffect[TexVertex, TexVertex](softpipe.DefaultVertexShader[TexVertex]{}, t)
}
