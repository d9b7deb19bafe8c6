package effect

import "github.com/gogpu/softpipe"

// Solid draws every pixel in the color carried by the triangle's vertices.
type Solid struct{}

// NewSolid creates the solid effect.
func NewSolid() *Solid { return &Solid{} }

// ShadePixel implements softpipe.PixelShader.
func (*Solid) ShadePixel(_ *softpipe.Bindings, in SolidVertex) softpipe.RGBA {
	return in.Color
}

// Effect returns the stages.
func (s *Solid) Effect() softpipe.Effect[SolidVertex, SolidVertex, SolidVertex] {
	return softpipe.NewEffect[SolidVertex, SolidVertex](softpipe.DefaultVertexShader[SolidVertex]{}, s)
}

// VertexColor blends per-vertex colors across each face.
type VertexColor struct{}

// NewVertexColor creates the vertex color effect.
func NewVertexColor() *VertexColor { return &VertexColor{} }

// ShadePixel implements softpipe.PixelShader.
func (*VertexColor) ShadePixel(_ *softpipe.Bindings, in ColorVertex) softpipe.RGBA {
	return in.Color
}

// Effect returns the stages.
func (c *VertexColor) Effect() softpipe.Effect[ColorVertex, ColorVertex, ColorVertex] {
	return softpipe.NewEffect[ColorVertex, ColorVertex](softpipe.DefaultVertexShader[ColorVertex]{}, c)
}
