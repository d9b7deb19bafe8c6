package softpipe

import (
	"fmt"
	"image"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/softpipe/texture"
)

// Stats counts the work done by a Pipeline since the last ResetStats.
type Stats struct {
	Draws      int // completed Draw calls
	Vertices   int // vertex-stage invocations
	Triangles  int // index triples assembled
	Culled     int // triangles discarded by face culling
	Clipped    int // triangles removed entirely by the near plane
	Rasterized int // triangles handed to the rasterizer
	Pixels     int // pixel-stage invocations
}

// Pipeline drives indexed triangle lists through an Effect onto a Target.
//
// The stages run in order: vertex stage for every vertex, primitive
// assembly from index triples, face culling, geometry stage, optional near
// clipping, screen transform, rasterization and the pixel stage.
//
// A Pipeline is not safe for concurrent use. Several pipelines may share a
// target; their draws must then be issued in the order they should appear.
type Pipeline[V any, O Positioner, P Attribute[P]] struct {
	target   Target
	effect   Effect[V, O, P]
	opts     options
	bindings Bindings
	raster   *Rasterizer[P]
	plot     PixelFunc[P]

	// vertex-stage output, reused across draws
	out   []O
	stats Stats
}

// NewPipeline creates a pipeline that renders effect onto target.
//
// The rotation binding starts as the identity and the translation as zero.
// No texture is bound.
func NewPipeline[V any, O Positioner, P Attribute[P]](target Target, effect Effect[V, O, P], opts ...Option) (*Pipeline[V, O, P], error) {
	if target == nil {
		return nil, ErrNilTarget
	}
	if effect.Vertex == nil || effect.Geometry == nil || effect.Pixel == nil {
		return nil, fmt.Errorf("softpipe: effect is missing a shader stage")
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.primitive.Topology != gputypes.PrimitiveTopologyTriangleList {
		return nil, fmt.Errorf("%w: %v", ErrTopology, o.primitive.Topology)
	}
	if o.screen == nil {
		o.screen = NewPerspectiveScreen(target.Width(), target.Height())
	}

	p := &Pipeline[V, O, P]{
		target: target,
		effect: effect,
		opts:   o,
		bindings: Bindings{
			Rotation: mgl64.Ident3(),
		},
		raster: NewRasterizer[P](rectOf(target)),
	}
	p.plot = func(x, y int, in P) {
		p.target.SetPixel(x, y, p.effect.Pixel.ShadePixel(&p.bindings, in))
	}
	return p, nil
}

// BindRotation replaces the rotation used by the vertex stage.
func (p *Pipeline[V, O, P]) BindRotation(m mgl64.Mat3) {
	p.bindings.Rotation = m
}

// BindTranslation replaces the translation used by the vertex stage.
func (p *Pipeline[V, O, P]) BindTranslation(t mgl64.Vec3) {
	p.bindings.Translation = t
}

// BindTexture loads the image at path and binds it for sampling.
// On failure the pipeline holds no texture and the load error is returned.
func (p *Pipeline[V, O, P]) BindTexture(path string) error {
	tex, err := texture.Load(path)
	if err != nil {
		p.bindings.Texture = nil
		Logger().Warn("texture bind failed", "path", path, "err", err)
		return err
	}
	p.bindings.Texture = tex
	Logger().Info("texture bound", "path", path, "width", tex.Width(), "height", tex.Height())
	return nil
}

// BindTextureImage binds an already decoded texture. nil unbinds.
func (p *Pipeline[V, O, P]) BindTextureImage(tex *texture.Texture) {
	p.bindings.Texture = tex
}

// Bindings returns a copy of the current bindings.
func (p *Pipeline[V, O, P]) Bindings() Bindings {
	return p.bindings
}

// Target returns the pipeline's output target.
func (p *Pipeline[V, O, P]) Target() Target {
	return p.target
}

// Stats returns the counters accumulated since the last ResetStats.
func (p *Pipeline[V, O, P]) Stats() Stats {
	return p.stats
}

// ResetStats zeroes the counters.
func (p *Pipeline[V, O, P]) ResetStats() {
	p.stats = Stats{}
}

// DrawList draws an indexed triangle list.
func (p *Pipeline[V, O, P]) DrawList(l IndexedTriangleList[V]) error {
	return p.Draw(l.Vertices, l.Indices)
}

// Draw renders the triangles named by indices.
//
// Contract violations (bad index count, out-of-range index, missing
// texture, undersized geometry table) are returned before any vertex is
// shaded, so a failed Draw writes no pixels.
func (p *Pipeline[V, O, P]) Draw(vertices []V, indices []int) error {
	if err := validateIndices(len(vertices), indices); err != nil {
		return err
	}
	if s, ok := p.effect.Pixel.(TextureSampler); ok && s.SamplesTexture() && p.bindings.Texture == nil {
		return ErrNoTexture
	}
	if c, ok := p.effect.Geometry.(PrimitiveChecker); ok {
		if err := c.CheckPrimitives(len(indices) / 3); err != nil {
			return err
		}
	}

	before := p.stats
	p.processVertices(vertices)
	p.assembleTriangles(indices)
	p.stats.Draws++

	Logger().Debug("draw complete",
		"vertices", p.stats.Vertices-before.Vertices,
		"triangles", p.stats.Triangles-before.Triangles,
		"culled", p.stats.Culled-before.Culled,
		"clipped", p.stats.Clipped-before.Clipped,
		"pixels", p.stats.Pixels-before.Pixels)
	return nil
}

// processVertices runs the vertex stage over every input vertex.
func (p *Pipeline[V, O, P]) processVertices(vertices []V) {
	p.out = p.out[:0]
	for _, v := range vertices {
		p.out = append(p.out, p.effect.Vertex.ShadeVertex(&p.bindings, v))
	}
	p.stats.Vertices += len(vertices)
}

// assembleTriangles groups the transformed vertices by index triple and
// culls faces before handing survivors to the geometry stage.
func (p *Pipeline[V, O, P]) assembleTriangles(indices []int) {
	for i, end := 0, len(indices)/3; i < end; i++ {
		v0 := p.out[indices[i*3]]
		v1 := p.out[indices[i*3+1]]
		v2 := p.out[indices[i*3+2]]
		p.stats.Triangles++

		if p.culled(v0.Pos(), v1.Pos(), v2.Pos()) {
			p.stats.Culled++
			continue
		}
		p.processTriangle(v0, v1, v2, i)
	}
}

// culled reports whether the face is discarded under the current cull mode.
func (p *Pipeline[V, O, P]) culled(p0, p1, p2 mgl64.Vec3) bool {
	ps := p.opts.primitive
	if ps.CullMode == gputypes.CullModeNone {
		return false
	}
	facing := p1.Sub(p0).Cross(p2.Sub(p0)).Dot(p0)
	if ps.FrontFace == gputypes.FrontFaceCW {
		facing = -facing
	}
	front := facing > 0
	if ps.CullMode == gputypes.CullModeFront {
		return front
	}
	return !front
}

// processTriangle runs the geometry stage and post-processes the result.
func (p *Pipeline[V, O, P]) processTriangle(v0, v1, v2 O, primitive int) {
	tri := p.effect.Geometry.ShadeGeometry(&p.bindings, v0, v1, v2, primitive)
	if !p.opts.clipNear {
		p.postProcess(tri, primitive)
		return
	}
	parts, n := clipNear(tri, p.opts.near)
	if n == 0 {
		p.stats.Clipped++
		return
	}
	for _, part := range parts[:n] {
		p.postProcess(part, primitive)
	}
}

// postProcess applies the screen transform and rasterizes. Triangles that
// land on non-finite screen coordinates are skipped.
func (p *Pipeline[V, O, P]) postProcess(tri Triangle[P], primitive int) {
	s := p.opts.screen
	tri.V0 = tri.V0.WithPos(s.Transform(tri.V0.Pos()))
	tri.V1 = tri.V1.WithPos(s.Transform(tri.V1.Pos()))
	tri.V2 = tri.V2.WithPos(s.Transform(tri.V2.Pos()))
	if !finiteXY(tri.V0) || !finiteXY(tri.V1) || !finiteXY(tri.V2) {
		Logger().Warn("triangle skipped", "primitive", primitive, "reason", "non-finite screen position")
		return
	}

	p.stats.Rasterized++
	p.stats.Pixels += p.raster.DrawTriangle(tri, p.plot)
}

func rectOf(t Target) image.Rectangle {
	return image.Rect(0, 0, t.Width(), t.Height())
}
