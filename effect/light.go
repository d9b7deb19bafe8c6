package effect

import (
	"errors"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/gogpu/softpipe"
)

// ErrLightDirection is returned for light directions too short to normalize.
var ErrLightDirection = errors.New("effect: light direction has near-zero length")

// Default lighting, shared by the lighting effects.
var (
	DefaultDiffuse  = softpipe.RGB(1, 1, 1)
	DefaultAmbient  = softpipe.RGB(0.1, 0.1, 0.1)
	DefaultMaterial = softpipe.RGB(0.8, 0.85, 1)
)

// VertexFlat lights each vertex with a directional light and an ambient
// term. The resulting color is carried to the pixels without
// interpolation.
type VertexFlat struct {
	dir mgl64.Vec3

	Diffuse  softpipe.RGBA
	Ambient  softpipe.RGBA
	Material softpipe.RGBA
}

// NewVertexFlat creates the effect with the light shining along +z.
func NewVertexFlat() *VertexFlat {
	return &VertexFlat{
		dir:      mgl64.Vec3{0, 0, 1},
		Diffuse:  DefaultDiffuse,
		Ambient:  DefaultAmbient,
		Material: DefaultMaterial,
	}
}

// SetLightDirection sets the direction the light travels in.
func (f *VertexFlat) SetLightDirection(dir mgl64.Vec3) error {
	if dir.LenSqr() < 0.001 {
		return ErrLightDirection
	}
	f.dir = dir.Normalize()
	return nil
}

// LightDirection returns the normalized light direction.
func (f *VertexFlat) LightDirection() mgl64.Vec3 { return f.dir }

// ShadeVertex implements softpipe.VertexShader.
func (f *VertexFlat) ShadeVertex(b *softpipe.Bindings, in NormalVertex) SolidVertex {
	intensity := math.Max(0, -b.Rotate(in.Normal).Dot(f.dir))
	c := f.Material.Hadamard(f.Diffuse.Mul(intensity).Add(f.Ambient)).Saturate()
	return SolidVertex{Position: b.Transform(in.Position), Color: c}
}

// ShadePixel implements softpipe.PixelShader.
func (*VertexFlat) ShadePixel(_ *softpipe.Bindings, in SolidVertex) softpipe.RGBA {
	return in.Color
}

// Effect returns the stages.
func (f *VertexFlat) Effect() softpipe.Effect[NormalVertex, SolidVertex, SolidVertex] {
	return softpipe.NewEffect[NormalVertex, SolidVertex](f, f)
}

// PointLight is a positioned light whose strength falls off with distance
// as 1 / (Constant + Linear*d + Quadratic*d*d).
type PointLight struct {
	Position  mgl64.Vec3
	Diffuse   softpipe.RGBA
	Ambient   softpipe.RGBA
	Constant  float64
	Linear    float64
	Quadratic float64
}

// SpecularPhongPoint lights every pixel from a point light with diffuse,
// ambient and specular terms. The viewer sits at the origin.
type SpecularPhongPoint struct {
	Light    PointLight
	Material softpipe.RGBA

	// SpecularPower sharpens the highlight; SpecularIntensity scales it.
	SpecularPower     float64
	SpecularIntensity float64
}

// NewSpecularPhongPoint creates the effect with the light just in front
// of the viewer.
func NewSpecularPhongPoint() *SpecularPhongPoint {
	return &SpecularPhongPoint{
		Light: PointLight{
			Position:  mgl64.Vec3{0, 0, 0.5},
			Diffuse:   DefaultDiffuse,
			Ambient:   DefaultAmbient,
			Constant:  0.382,
			Linear:    1,
			Quadratic: 2.619,
		},
		Material:          DefaultMaterial,
		SpecularPower:     200,
		SpecularIntensity: 0.6,
	}
}

// ShadeVertex implements softpipe.VertexShader.
func (*SpecularPhongPoint) ShadeVertex(b *softpipe.Bindings, in NormalVertex) PhongVertex {
	pos := b.Transform(in.Position)
	return PhongVertex{Position: pos, Normal: b.Rotate(in.Normal), World: pos}
}

// ShadePixel implements softpipe.PixelShader.
func (s *SpecularPhongPoint) ShadePixel(_ *softpipe.Bindings, in PhongVertex) softpipe.RGBA {
	l := &s.Light
	n := normalize(in.Normal)

	toLight := l.Position.Sub(in.World)
	dist := toLight.Len()
	attenuation := 1 / (l.Constant + l.Linear*dist + l.Quadratic*dist*dist)
	diffuse := l.Diffuse.Mul(attenuation * math.Max(0, n.Dot(normalize(toLight))))

	// reflect the light vector about the normal
	w := n.Mul(toLight.Dot(n))
	r := w.Mul(2).Sub(toLight)
	highlight := math.Max(0, -normalize(r).Dot(normalize(in.World)))
	specular := l.Diffuse.Mul(s.SpecularIntensity * math.Pow(highlight, s.SpecularPower))

	return s.Material.Hadamard(diffuse.Add(l.Ambient).Add(specular)).Saturate()
}

// Effect returns the stages.
func (s *SpecularPhongPoint) Effect() softpipe.Effect[NormalVertex, PhongVertex, PhongVertex] {
	return softpipe.NewEffect[NormalVertex, PhongVertex](s, s)
}

// normalize returns v scaled to unit length, or v itself when it is zero.
func normalize(v mgl64.Vec3) mgl64.Vec3 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return v.Mul(1 / l)
}
