package effect

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gogpu/gputypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/softpipe"
	"github.com/gogpu/softpipe/mesh"
	"github.com/gogpu/softpipe/texture"
)

// quadrants returns a 2x2 texture: red, green on top; blue, white below.
func quadrants(t *testing.T) *texture.Texture {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{G: 255, A: 255})
	img.SetNRGBA(0, 1, color.NRGBA{B: 255, A: 255})
	img.SetNRGBA(1, 1, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	tex, err := texture.FromImage(img)
	require.NoError(t, err)
	return tex
}

// screenQuad covers an 8x8 target in pixel coordinates with UVs spanning
// the texture.
func screenQuad() ([]TexVertex, []int) {
	return []TexVertex{
		{Position: mgl64.Vec3{0, 0, 1}, UV: mgl64.Vec2{0, 0}},
		{Position: mgl64.Vec3{8, 0, 1}, UV: mgl64.Vec2{1, 0}},
		{Position: mgl64.Vec3{0, 8, 1}, UV: mgl64.Vec2{0, 1}},
		{Position: mgl64.Vec3{8, 8, 1}, UV: mgl64.Vec2{1, 1}},
	}, []int{0, 1, 2, 2, 1, 3}
}

func pixel(pm *softpipe.Pixmap, x, y int) color.NRGBA {
	return pm.ToImage().NRGBAAt(x, y)
}

func TestTextureEffect(t *testing.T) {
	pm := softpipe.NewPixmap(8, 8)
	p, err := softpipe.NewPipeline(pm, NewTexture().Effect(),
		softpipe.WithScreenTransform(softpipe.ScreenSpace{}),
		softpipe.WithCullMode(gputypes.CullModeNone))
	require.NoError(t, err)

	verts, idx := screenQuad()
	assert.ErrorIs(t, p.Draw(verts, idx), softpipe.ErrNoTexture)
	assert.Equal(t, color.NRGBA{}, pixel(pm, 4, 4))

	p.BindTextureImage(quadrants(t))
	require.NoError(t, p.Draw(verts, idx))

	// u*2+0.5 truncated: pixel centres below u=0.25 pick texel 0, the rest texel 1
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, pixel(pm, 0, 0))
	assert.Equal(t, color.NRGBA{G: 255, A: 255}, pixel(pm, 7, 0))
	assert.Equal(t, color.NRGBA{B: 255, A: 255}, pixel(pm, 0, 7))
	assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, pixel(pm, 7, 7))
	assert.Equal(t, 64, p.Stats().Pixels)
}

func TestTextureEffectBindFailure(t *testing.T) {
	pm := softpipe.NewPixmap(8, 8)
	p, err := softpipe.NewPipeline(pm, NewTexture().Effect())
	require.NoError(t, err)

	p.BindTextureImage(quadrants(t))
	err = p.BindTexture("testdata/does-not-exist.png")

	var le *texture.LoadError
	require.ErrorAs(t, err, &le)
	assert.Nil(t, p.Bindings().Texture)

	verts, idx := screenQuad()
	assert.ErrorIs(t, p.Draw(verts, idx), softpipe.ErrNoTexture)
}

func TestSolidEffect(t *testing.T) {
	pm := softpipe.NewPixmap(8, 8)
	p, err := softpipe.NewPipeline(pm, NewSolid().Effect(),
		softpipe.WithScreenTransform(softpipe.ScreenSpace{}))
	require.NoError(t, err)

	c := softpipe.RGB(0.2, 0.4, 0.6)
	verts := []SolidVertex{
		{Position: mgl64.Vec3{0, 0, 1}, Color: c},
		{Position: mgl64.Vec3{8, 0, 1}, Color: c},
		{Position: mgl64.Vec3{0, 8, 1}, Color: c},
	}
	require.NoError(t, p.Draw(verts, []int{0, 1, 2}))
	assert.Equal(t, c.NRGBA(), pixel(pm, 1, 1))
	assert.Equal(t, color.NRGBA{}, pixel(pm, 7, 7))
}

func TestVertexColorEffect(t *testing.T) {
	pm := softpipe.NewPixmap(16, 1)
	p, err := softpipe.NewPipeline(pm, NewVertexColor().Effect(),
		softpipe.WithScreenTransform(softpipe.ScreenSpace{}),
		softpipe.WithCullMode(gputypes.CullModeNone))
	require.NoError(t, err)

	// a tall triangle whose only row crosses a black-to-white ramp
	verts := []ColorVertex{
		{Position: mgl64.Vec3{0, -16, 1}, Color: softpipe.Black},
		{Position: mgl64.Vec3{0, 16, 1}, Color: softpipe.Black},
		{Position: mgl64.Vec3{32, 0, 1}, Color: softpipe.White},
	}
	require.NoError(t, p.Draw(verts, []int{0, 1, 2}))

	prev := -1
	for x := range 16 {
		r := int(pixel(pm, x, 0).R)
		assert.Greater(t, r, prev, "x=%d", x)
		prev = r
	}
}

func TestSolidGeometryColorTable(t *testing.T) {
	g := NewSolidGeometry()
	colors := []softpipe.RGBA{softpipe.Red, softpipe.Green, softpipe.Blue}

	err := g.BindColors(colors, 12)
	assert.ErrorIs(t, err, softpipe.ErrColorTable)
	assert.Empty(t, g.Colors())

	require.NoError(t, g.BindColors(colors, 6))
	require.NoError(t, g.BindColors(colors, 5))
	assert.Len(t, g.Colors(), 3)

	// the table is copied
	colors[0] = softpipe.White
	assert.Equal(t, softpipe.Red, g.Colors()[0])
}

func TestSolidGeometryDrawValidatesTable(t *testing.T) {
	g := NewSolidGeometry()
	require.NoError(t, g.BindColors([]softpipe.RGBA{softpipe.Red}, 2))

	pm := softpipe.NewPixmap(32, 32)
	p, err := softpipe.NewPipeline(pm, g.Effect())
	require.NoError(t, err)
	p.BindTranslation(mgl64.Vec3{0, 0, 2})

	cube := mesh.Positions(mesh.Cube(1))
	err = p.DrawList(cube)
	assert.ErrorIs(t, err, softpipe.ErrColorTable)
	assert.Zero(t, p.Stats().Vertices)
	assert.Equal(t, color.NRGBA{}, pixel(pm, 16, 16))
}

func TestSolidGeometryCube(t *testing.T) {
	g := NewSolidGeometry()
	colors := []softpipe.RGBA{
		softpipe.Red, softpipe.Green, softpipe.Blue,
		softpipe.Yellow, softpipe.Cyan, softpipe.Magenta,
	}
	cube := mesh.Positions(mesh.Cube(1))
	require.NoError(t, g.BindColors(colors, cube.PrimitiveCount()))

	pm := softpipe.NewPixmap(64, 64)
	p, err := softpipe.NewPipeline(pm, g.Effect())
	require.NoError(t, err)
	p.BindTranslation(mgl64.Vec3{0, 0, 2})
	require.NoError(t, p.DrawList(cube))

	// the near face is the first index pair and the only one visible
	assert.Equal(t, softpipe.Red.NRGBA(), pixel(pm, 32, 32))
	assert.Equal(t, color.NRGBA{}, pixel(pm, 2, 2))

	st := p.Stats()
	assert.Equal(t, 12, st.Triangles)
	assert.Equal(t, 10, st.Culled)
	assert.Equal(t, 2, st.Rasterized)
}

func TestVertexFlatLighting(t *testing.T) {
	f := NewVertexFlat()
	b := &softpipe.Bindings{Rotation: mgl64.Ident3()}

	lit := f.ShadeVertex(b, NormalVertex{Position: mgl64.Vec3{0, 0, 2}, Normal: mgl64.Vec3{0, 0, -1}})
	assert.InDelta(t, 0.88, lit.Color.R, 1e-9)
	assert.InDelta(t, 0.935, lit.Color.G, 1e-9)
	assert.InDelta(t, 1.0, lit.Color.B, 1e-9)
	assert.Equal(t, mgl64.Vec3{0, 0, 2}, lit.Position)

	dark := f.ShadeVertex(b, NormalVertex{Normal: mgl64.Vec3{0, 0, 1}})
	assert.InDelta(t, 0.08, dark.Color.R, 1e-9)
	assert.InDelta(t, 0.085, dark.Color.G, 1e-9)
	assert.InDelta(t, 0.1, dark.Color.B, 1e-9)

	// rotating the model turns the back face toward the light
	b.Rotation = mgl64.Rotate3DY(math.Pi)
	turned := f.ShadeVertex(b, NormalVertex{Normal: mgl64.Vec3{0, 0, 1}})
	assert.InDelta(t, lit.Color.R, turned.Color.R, 1e-9)
}

func TestVertexFlatLightDirection(t *testing.T) {
	f := NewVertexFlat()
	assert.ErrorIs(t, f.SetLightDirection(mgl64.Vec3{}), ErrLightDirection)
	assert.Equal(t, mgl64.Vec3{0, 0, 1}, f.LightDirection())

	require.NoError(t, f.SetLightDirection(mgl64.Vec3{0, 3, 4}))
	assert.InDelta(t, 1.0, f.LightDirection().Len(), 1e-12)
	assert.InDelta(t, 0.6, f.LightDirection().Y(), 1e-12)
}

func TestSpecularPhongPoint(t *testing.T) {
	s := NewSpecularPhongPoint()
	b := &softpipe.Bindings{Rotation: mgl64.Ident3()}

	out := s.ShadeVertex(b, NormalVertex{Position: mgl64.Vec3{0, 0, 2}, Normal: mgl64.Vec3{0, 0, -1}})
	assert.Equal(t, out.Position, out.World)

	// light 1.5 units straight in front of a surface facing the viewer:
	// full diffuse after attenuation and a head-on specular highlight
	att := 1 / (0.382 + 1.5 + 2.619*1.5*1.5)
	total := att + 0.1 + 0.6
	c := s.ShadePixel(b, out)
	assert.InDelta(t, 0.8*total, c.R, 1e-9)
	assert.InDelta(t, 0.85*total, c.G, 1e-9)
	assert.InDelta(t, 1.0*total, c.B, 1e-9)
	assert.InDelta(t, 1.0, c.A, 1e-12)
}

func TestSpecularPhongPointDegenerateInputs(t *testing.T) {
	s := NewSpecularPhongPoint()
	c := s.ShadePixel(nil, PhongVertex{World: s.Light.Position})
	for _, v := range []float64{c.R, c.G, c.B, c.A} {
		assert.False(t, math.IsNaN(v))
	}
}

func TestWaveDisplacement(t *testing.T) {
	w := NewWave()
	b := &softpipe.Bindings{Rotation: mgl64.Ident3()}

	at := func(x float64) float64 {
		return w.ShadeVertex(b, TexVertex{Position: mgl64.Vec3{x, 0, 1}}).Position.Y()
	}
	assert.InDelta(t, 0.0, at(0), 1e-12)
	assert.InDelta(t, 0.06, at(math.Pi/20), 1e-12)

	w.SetTime(math.Pi / 20)
	assert.Equal(t, math.Pi/20, w.Time())
	assert.InDelta(t, 0.06, at(0), 1e-12)

	out := w.ShadeVertex(b, TexVertex{Position: mgl64.Vec3{0, 0, 1}, UV: mgl64.Vec2{0.3, 0.4}})
	assert.Equal(t, mgl64.Vec2{0.3, 0.4}, out.UV)
	assert.True(t, w.SamplesTexture())
}
