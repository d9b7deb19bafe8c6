package softpipe

import "github.com/go-gl/mathgl/mgl64"

// Positioner is implemented by every vertex type that carries a 3D position.
// The pipeline reads the position of vertex-stage output for culling.
type Positioner interface {
	Pos() mgl64.Vec3
}

// Attribute is the algebra a vertex type must provide to be interpolated
// by the rasterizer.
//
// All four arithmetic operations must be linear and act on every channel
// independently: the rasterizer walks edges and scanlines by repeatedly
// adding a constant delta, so a channel that depends nonlinearly on
// another produces shading that changes with the step count.
//
// WithPos returns a copy of the receiver with only the position replaced.
// Channels that follow the vertex (texture coordinates, colors, normals)
// keep their values.
type Attribute[A any] interface {
	Positioner
	Add(A) A
	Sub(A) A
	Mul(float64) A
	Div(float64) A
	WithPos(mgl64.Vec3) A
}

// Lerp interpolates the whole attribute bundle: a + (b-a)*t.
// t=0 returns a, t=1 returns b.
func Lerp[A Attribute[A]](a, b A, t float64) A {
	return a.Add(b.Sub(a).Mul(t))
}

// Position is the minimal vertex: a position and nothing else.
type Position mgl64.Vec3

// Pos returns the position as a vector.
func (p Position) Pos() mgl64.Vec3 { return mgl64.Vec3(p) }

// WithPos returns pos.
func (p Position) WithPos(pos mgl64.Vec3) Position { return Position(pos) }

// Add returns p + o.
func (p Position) Add(o Position) Position {
	return Position(mgl64.Vec3(p).Add(mgl64.Vec3(o)))
}

// Sub returns p - o.
func (p Position) Sub(o Position) Position {
	return Position(mgl64.Vec3(p).Sub(mgl64.Vec3(o)))
}

// Mul returns p * s.
func (p Position) Mul(s float64) Position {
	return Position(mgl64.Vec3(p).Mul(s))
}

// Div returns p / s.
func (p Position) Div(s float64) Position {
	return Position{p[0] / s, p[1] / s, p[2] / s}
}
