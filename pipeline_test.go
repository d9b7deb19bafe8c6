package softpipe

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gogpu/gputypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/softpipe/texture"
)

// solidScreenEffect fills every covered pixel with c.
func solidScreenEffect(c RGBA) Effect[Position, Position, Position] {
	return NewEffect[Position, Position](
		DefaultVertexShader[Position]{},
		PixelShaderFunc[Position](func(*Bindings, Position) RGBA { return c }),
	)
}

// texturedPixel samples the bound texture at the origin.
type texturedPixel struct{}

func (texturedPixel) ShadePixel(b *Bindings, _ Position) RGBA {
	return b.Sample(mgl64.Vec2{0, 0})
}

func (texturedPixel) SamplesTexture() bool { return true }

// tableGeometry rejects draws with more primitives than it has entries for.
type tableGeometry struct {
	PassThrough[Position]
	size int
}

func (g tableGeometry) CheckPrimitives(n int) error {
	if n > g.size {
		return ErrColorTable
	}
	return nil
}

// screenQuad covers an 8x8 target with two front-facing triangles.
var screenQuad = IndexedTriangleList[Position]{
	Vertices: []Position{{0, 0, 1}, {8, 0, 1}, {0, 8, 1}, {8, 8, 1}},
	Indices:  []int{0, 1, 2, 1, 3, 2},
}

func screenPipeline(t *testing.T, target Target, eff Effect[Position, Position, Position], opts ...Option) *Pipeline[Position, Position, Position] {
	t.Helper()
	opts = append([]Option{WithScreenTransform(ScreenSpace{})}, opts...)
	p, err := NewPipeline(target, eff, opts...)
	require.NoError(t, err)
	return p
}

func countPixels(pm *Pixmap, c RGBA) int {
	n := 0
	for y := range pm.Height() {
		for x := range pm.Width() {
			if pm.GetPixel(x, y) == c {
				n++
			}
		}
	}
	return n
}

func TestNewPipelineErrors(t *testing.T) {
	pm := NewPixmap(4, 4)

	_, err := NewPipeline(nil, solidScreenEffect(Red))
	assert.ErrorIs(t, err, ErrNilTarget)

	_, err = NewPipeline(pm, Effect[Position, Position, Position]{Vertex: DefaultVertexShader[Position]{}})
	assert.Error(t, err)

	_, err = NewPipeline(pm, solidScreenEffect(Red), WithPrimitiveState(gputypes.PrimitiveState{
		Topology: gputypes.PrimitiveTopologyLineList,
	}))
	assert.ErrorIs(t, err, ErrTopology)
}

func TestNewPipelineDefaults(t *testing.T) {
	pm := NewPixmap(4, 4)
	p, err := NewPipeline(pm, solidScreenEffect(Red))
	require.NoError(t, err)

	b := p.Bindings()
	assert.Equal(t, mgl64.Ident3(), b.Rotation)
	assert.Equal(t, mgl64.Vec3{}, b.Translation)
	assert.Nil(t, b.Texture)
	assert.Same(t, pm, p.Target())
	assert.Equal(t, Stats{}, p.Stats())
}

func TestPipelineFillsScreenQuad(t *testing.T) {
	pm := NewPixmap(8, 8)
	p := screenPipeline(t, pm, solidScreenEffect(Red))

	require.NoError(t, p.DrawList(screenQuad))
	assert.Equal(t, 64, countPixels(pm, Red))
	assert.Equal(t, Stats{Draws: 1, Vertices: 4, Triangles: 2, Rasterized: 2, Pixels: 64}, p.Stats())
}

func TestPipelineCulling(t *testing.T) {
	ccw := []int{0, 1, 2}
	cw := []int{0, 2, 1}
	verts := []Position{{0, 0, 1}, {8, 0, 1}, {0, 8, 1}}

	tests := []struct {
		name      string
		state     gputypes.PrimitiveState
		indices   []int
		wantDrawn bool
	}{
		{"back culls cw", gputypes.PrimitiveState{CullMode: gputypes.CullModeBack}, cw, false},
		{"back keeps ccw", gputypes.PrimitiveState{CullMode: gputypes.CullModeBack}, ccw, true},
		{"front culls ccw", gputypes.PrimitiveState{CullMode: gputypes.CullModeFront}, ccw, false},
		{"front keeps cw", gputypes.PrimitiveState{CullMode: gputypes.CullModeFront}, cw, true},
		{"none keeps cw", gputypes.PrimitiveState{CullMode: gputypes.CullModeNone}, cw, true},
		{"cw front face keeps cw", gputypes.PrimitiveState{CullMode: gputypes.CullModeBack, FrontFace: gputypes.FrontFaceCW}, cw, true},
		{"cw front face culls ccw", gputypes.PrimitiveState{CullMode: gputypes.CullModeBack, FrontFace: gputypes.FrontFaceCW}, ccw, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pm := NewPixmap(8, 8)
			p := screenPipeline(t, pm, solidScreenEffect(Red), WithPrimitiveState(tt.state))

			require.NoError(t, p.Draw(verts, tt.indices))
			s := p.Stats()
			if tt.wantDrawn {
				assert.Zero(t, s.Culled)
				assert.Equal(t, 28, countPixels(pm, Red))
			} else {
				assert.Equal(t, 1, s.Culled)
				assert.Zero(t, s.Rasterized)
				assert.Zero(t, countPixels(pm, Red))
			}
		})
	}
}

func TestPipelineCullsDegenerate(t *testing.T) {
	pm := NewPixmap(8, 8)
	p := screenPipeline(t, pm, solidScreenEffect(Red))

	require.NoError(t, p.Draw([]Position{{0, 0, 1}, {4, 4, 1}, {8, 8, 1}}, []int{0, 1, 2}))
	assert.Equal(t, 1, p.Stats().Culled)
}

func TestPipelineCube(t *testing.T) {
	s := 0.5
	cube := IndexedTriangleList[Position]{
		Vertices: []Position{
			{-s, -s, -s}, {s, -s, -s}, {-s, s, -s}, {s, s, -s},
			{-s, -s, s}, {s, -s, s}, {-s, s, s}, {s, s, s},
		},
		Indices: []int{
			0, 1, 2, 2, 1, 3,
			1, 5, 3, 3, 5, 7,
			2, 3, 6, 3, 7, 6,
			4, 7, 5, 4, 6, 7,
			0, 2, 4, 2, 6, 4,
			0, 4, 1, 1, 4, 5,
		},
	}

	pm := NewPixmap(16, 16)
	p, err := NewPipeline(pm, solidScreenEffect(Red))
	require.NoError(t, err)
	p.BindTranslation(mgl64.Vec3{0, 0, 2})

	require.NoError(t, p.DrawList(cube))
	st := p.Stats()
	assert.Equal(t, 8, st.Vertices)
	assert.Equal(t, 12, st.Triangles)
	assert.Equal(t, 10, st.Culled)
	assert.Equal(t, 2, st.Rasterized)

	// only the face towards the viewer is visible: x and y in (16/3, 32/3)
	assert.Equal(t, Red, pm.GetPixel(8, 8))
	assert.Equal(t, Transparent, pm.GetPixel(4, 8))
	assert.Equal(t, Transparent, pm.GetPixel(8, 11))
	assert.InDelta(t, 36, countPixels(pm, Red), 6)
}

func TestPipelineDrawValidation(t *testing.T) {
	verts := []Position{{0, 0, 1}, {8, 0, 1}, {0, 8, 1}}
	tests := []struct {
		name    string
		indices []int
		want    error
	}{
		{"count", []int{0, 1}, ErrIndexCount},
		{"too large", []int{0, 1, 3}, ErrIndexOutOfRange},
		{"negative", []int{0, -1, 2}, ErrIndexOutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pm := NewPixmap(8, 8)
			p := screenPipeline(t, pm, solidScreenEffect(Red))

			err := p.Draw(verts, tt.indices)
			assert.ErrorIs(t, err, tt.want)
			assert.Zero(t, countPixels(pm, Red))
			assert.Equal(t, Stats{}, p.Stats())
		})
	}
}

func TestPipelineEmptyDraw(t *testing.T) {
	pm := NewPixmap(8, 8)
	p := screenPipeline(t, pm, solidScreenEffect(Red))

	require.NoError(t, p.Draw(nil, nil))
	assert.Equal(t, Stats{Draws: 1}, p.Stats())
}

func TestPipelineRequiresTexture(t *testing.T) {
	pm := NewPixmap(8, 8)
	eff := NewEffect[Position, Position](DefaultVertexShader[Position]{}, texturedPixel{})
	p := screenPipeline(t, pm, eff)

	assert.ErrorIs(t, p.DrawList(screenQuad), ErrNoTexture)
	assert.Zero(t, p.Stats().Vertices)

	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	img.Pix = []uint8{0, 0, 255, 255}
	tex, err := texture.FromImage(img)
	require.NoError(t, err)

	p.BindTextureImage(tex)
	require.NoError(t, p.DrawList(screenQuad))
	assert.Equal(t, 64, countPixels(pm, Blue))

	p.BindTextureImage(nil)
	assert.ErrorIs(t, p.DrawList(screenQuad), ErrNoTexture)
}

func TestPipelineBindTexture(t *testing.T) {
	path := filepath.Join(t.TempDir(), "green.png")
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for i := 0; i < len(img.Pix); i += 4 {
		copy(img.Pix[i:], []uint8{0, 255, 0, 255})
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())

	pm := NewPixmap(8, 8)
	eff := NewEffect[Position, Position](DefaultVertexShader[Position]{}, texturedPixel{})
	p := screenPipeline(t, pm, eff)

	require.NoError(t, p.BindTexture(path))
	require.NotNil(t, p.Bindings().Texture)
	assert.Equal(t, 2, p.Bindings().Texture.Width())

	require.NoError(t, p.DrawList(screenQuad))
	assert.Equal(t, 64, countPixels(pm, Green))

	// a failed bind leaves no texture bound
	err = p.BindTexture(filepath.Join(t.TempDir(), "missing.png"))
	var le *texture.LoadError
	require.ErrorAs(t, err, &le)
	assert.Nil(t, p.Bindings().Texture)
	assert.ErrorIs(t, p.DrawList(screenQuad), ErrNoTexture)
}

func TestPipelinePrimitiveChecker(t *testing.T) {
	pm := NewPixmap(8, 8)
	eff := NewGeometryEffect[Position, Position, Position](
		DefaultVertexShader[Position]{},
		tableGeometry{size: 1},
		PixelShaderFunc[Position](func(*Bindings, Position) RGBA { return Red }),
	)
	p := screenPipeline(t, pm, eff)

	assert.ErrorIs(t, p.DrawList(screenQuad), ErrColorTable)
	assert.Zero(t, countPixels(pm, Red))

	require.NoError(t, p.Draw(screenQuad.Vertices, screenQuad.Indices[:3]))
	assert.Equal(t, 28, countPixels(pm, Red))
}

func TestPipelinePrimitiveIndex(t *testing.T) {
	var seen []int
	gs := GeometryShaderFunc[Position, Position](func(_ *Bindings, v0, v1, v2 Position, primitive int) Triangle[Position] {
		seen = append(seen, primitive)
		return Triangle[Position]{V0: v0, V1: v1, V2: v2}
	})
	eff := NewGeometryEffect[Position, Position, Position](
		DefaultVertexShader[Position]{}, gs,
		PixelShaderFunc[Position](func(*Bindings, Position) RGBA { return Red }),
	)
	p := screenPipeline(t, NewPixmap(8, 8), eff)

	// the first triangle is back-facing and never reaches the geometry stage
	verts := []Position{{0, 0, 1}, {8, 0, 1}, {0, 8, 1}, {8, 8, 1}}
	require.NoError(t, p.Draw(verts, []int{0, 2, 1, 1, 3, 2, 0, 1, 2}))
	assert.Equal(t, []int{1, 2}, seen)
}

func TestPipelineTranslation(t *testing.T) {
	pm := NewPixmap(8, 8)
	p := screenPipeline(t, pm, solidScreenEffect(Red))
	p.BindTranslation(mgl64.Vec3{4, 4, 0})

	require.NoError(t, p.Draw([]Position{{0, 0, 1}, {4, 0, 1}, {0, 4, 1}}, []int{0, 1, 2}))
	assert.Equal(t, Red, pm.GetPixel(4, 4))
	assert.Equal(t, Transparent, pm.GetPixel(0, 0))
	assert.Equal(t, 6, countPixels(pm, Red))
}

func TestPipelineRotation(t *testing.T) {
	pm := NewPixmap(16, 16)
	p, err := NewPipeline(pm, solidScreenEffect(Red), WithCullMode(gputypes.CullModeNone))
	require.NoError(t, err)

	// a quad in the upper-right quadrant, turned a half turn about z
	quad := IndexedTriangleList[Position]{
		Vertices: []Position{{0.1, 0.1, 1}, {0.9, 0.1, 1}, {0.1, 0.9, 1}, {0.9, 0.9, 1}},
		Indices:  []int{0, 1, 2, 1, 3, 2},
	}
	require.NoError(t, p.DrawList(quad))
	assert.Equal(t, Red, pm.GetPixel(12, 3))
	assert.Equal(t, Transparent, pm.GetPixel(3, 12))

	pm.Clear(Transparent)
	p.BindRotation(mgl64.Rotate3DZ(mgl64.DegToRad(180)))
	require.NoError(t, p.DrawList(quad))
	assert.Equal(t, Transparent, pm.GetPixel(12, 3))
	assert.Equal(t, Red, pm.GetPixel(3, 12))
}

func TestPipelineNearClip(t *testing.T) {
	pm := NewPixmap(8, 8)
	p := screenPipeline(t, pm, solidScreenEffect(Red), WithCullMode(gputypes.CullModeNone), WithNearClip(0.5))

	// entirely behind the plane
	require.NoError(t, p.Draw([]Position{{0, 0, 0}, {8, 0, 0}, {0, 8, 0}}, []int{0, 1, 2}))
	assert.Equal(t, 1, p.Stats().Clipped)
	assert.Zero(t, p.Stats().Rasterized)
	assert.Zero(t, countPixels(pm, Red))

	// one vertex behind: the visible part is split into two triangles
	p.ResetStats()
	require.NoError(t, p.Draw([]Position{{0, 0, 1}, {8, 0, 1}, {0, 8, 0}}, []int{0, 1, 2}))
	assert.Zero(t, p.Stats().Clipped)
	assert.Equal(t, 2, p.Stats().Rasterized)
	assert.Equal(t, Red, pm.GetPixel(1, 1))
	assert.Equal(t, Transparent, pm.GetPixel(1, 6))

	// two vertices behind: a single smaller triangle survives
	p.ResetStats()
	require.NoError(t, p.Draw([]Position{{0, 0, 1}, {8, 0, 0}, {0, 8, 0}}, []int{0, 1, 2}))
	assert.Equal(t, 1, p.Stats().Rasterized)
}

func TestPipelineLayeredPasses(t *testing.T) {
	pm := NewPixmap(8, 8)
	under := screenPipeline(t, pm, solidScreenEffect(Red))
	over := screenPipeline(t, pm, solidScreenEffect(Blue))

	require.NoError(t, under.DrawList(screenQuad))
	require.NoError(t, over.Draw(screenQuad.Vertices, screenQuad.Indices[:3]))

	// no depth test: the later pass wins wherever it draws
	assert.Equal(t, 28, countPixels(pm, Blue))
	assert.Equal(t, 36, countPixels(pm, Red))
}

func TestPipelineStatsAccumulate(t *testing.T) {
	p := screenPipeline(t, NewPixmap(8, 8), solidScreenEffect(Red))

	require.NoError(t, p.DrawList(screenQuad))
	require.NoError(t, p.DrawList(screenQuad))
	assert.Equal(t, 2, p.Stats().Draws)
	assert.Equal(t, 128, p.Stats().Pixels)

	p.ResetStats()
	assert.Equal(t, Stats{}, p.Stats())
}

func BenchmarkPipelineDraw(b *testing.B) {
	pm := NewPixmap(256, 256)
	p, err := NewPipeline(pm, solidScreenEffect(Red), WithScreenTransform(ScreenSpace{}))
	if err != nil {
		b.Fatal(err)
	}
	quad := IndexedTriangleList[Position]{
		Vertices: []Position{{0, 0, 1}, {256, 0, 1}, {0, 256, 1}, {256, 256, 1}},
		Indices:  []int{0, 1, 2, 1, 3, 2},
	}

	b.ReportAllocs()
	for b.Loop() {
		_ = p.DrawList(quad)
	}
}
