package softpipe

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/gogpu/softpipe/texture"
)

// Bindings is the per-pipeline resource state visible to every shader stage.
// It is replaced by the Pipeline bind calls and is read-only during Draw.
type Bindings struct {
	// Rotation is applied to positions (and normals) before Translation.
	Rotation mgl64.Mat3
	// Translation is added after rotation.
	Translation mgl64.Vec3
	// Texture is nil until a texture has been bound successfully.
	Texture *texture.Texture
}

// Transform rotates then translates a position.
func (b *Bindings) Transform(pos mgl64.Vec3) mgl64.Vec3 {
	return b.Rotation.Mul3x1(pos).Add(b.Translation)
}

// Rotate applies only the rotation, for directions such as normals.
func (b *Bindings) Rotate(dir mgl64.Vec3) mgl64.Vec3 {
	return b.Rotation.Mul3x1(dir)
}

// Sample returns the bound texture's clamped nearest texel at uv.
// The texture must be bound; Pipeline.Draw guarantees this for pixel
// stages that implement TextureSampler.
func (b *Bindings) Sample(uv mgl64.Vec2) RGBA {
	return FromNRGBA(b.Texture.Sample(uv.X(), uv.Y()))
}

// VertexShader transforms one input vertex into pipeline output space.
type VertexShader[V, O any] interface {
	ShadeVertex(b *Bindings, in V) O
}

// GeometryShader assembles three vertex-stage outputs into the triangle that
// is rasterized. primitive is the triangle's position in the index stream.
type GeometryShader[O, P any] interface {
	ShadeGeometry(b *Bindings, v0, v1, v2 O, primitive int) Triangle[P]
}

// PixelShader resolves interpolated attributes to a final color.
type PixelShader[P any] interface {
	ShadePixel(b *Bindings, in P) RGBA
}

// VertexShaderFunc adapts a function to VertexShader.
type VertexShaderFunc[V, O any] func(b *Bindings, in V) O

// ShadeVertex calls f(b, in).
func (f VertexShaderFunc[V, O]) ShadeVertex(b *Bindings, in V) O { return f(b, in) }

// GeometryShaderFunc adapts a function to GeometryShader.
type GeometryShaderFunc[O, P any] func(b *Bindings, v0, v1, v2 O, primitive int) Triangle[P]

// ShadeGeometry calls f(b, v0, v1, v2, primitive).
func (f GeometryShaderFunc[O, P]) ShadeGeometry(b *Bindings, v0, v1, v2 O, primitive int) Triangle[P] {
	return f(b, v0, v1, v2, primitive)
}

// PixelShaderFunc adapts a function to PixelShader.
type PixelShaderFunc[P any] func(b *Bindings, in P) RGBA

// ShadePixel calls f(b, in).
func (f PixelShaderFunc[P]) ShadePixel(b *Bindings, in P) RGBA { return f(b, in) }

// TextureSampler is implemented by pixel stages that read Bindings.Texture.
// Draw fails with ErrNoTexture when such a stage has no texture bound.
type TextureSampler interface {
	SamplesTexture() bool
}

// PrimitiveChecker is implemented by geometry stages whose output depends on
// tables sized by primitive count. Draw calls CheckPrimitives before shading.
type PrimitiveChecker interface {
	CheckPrimitives(count int) error
}

// DefaultVertexShader rotates and translates the position and leaves every
// other channel untouched.
type DefaultVertexShader[V Attribute[V]] struct{}

// ShadeVertex implements VertexShader.
func (DefaultVertexShader[V]) ShadeVertex(b *Bindings, in V) V {
	return in.WithPos(b.Transform(in.Pos()))
}

// PassThrough is the default geometry stage: one triangle out per triangle in.
type PassThrough[O any] struct{}

// ShadeGeometry implements GeometryShader.
func (PassThrough[O]) ShadeGeometry(_ *Bindings, v0, v1, v2 O, _ int) Triangle[O] {
	return Triangle[O]{V0: v0, V1: v1, V2: v2}
}

// Effect bundles the three shading stages used by one Pipeline.
//
// V is the input vertex type, O the vertex-stage output and P the
// geometry-stage output that the rasterizer interpolates.
type Effect[V, O, P any] struct {
	Vertex   VertexShader[V, O]
	Geometry GeometryShader[O, P]
	Pixel    PixelShader[P]
}

// NewEffect builds an effect with the pass-through geometry stage.
func NewEffect[V, O any](vs VertexShader[V, O], ps PixelShader[O]) Effect[V, O, O] {
	return Effect[V, O, O]{Vertex: vs, Geometry: PassThrough[O]{}, Pixel: ps}
}

// NewGeometryEffect builds an effect with an explicit geometry stage.
func NewGeometryEffect[V, O, P any](vs VertexShader[V, O], gs GeometryShader[O, P], ps PixelShader[P]) Effect[V, O, P] {
	return Effect[V, O, P]{Vertex: vs, Geometry: gs, Pixel: ps}
}
