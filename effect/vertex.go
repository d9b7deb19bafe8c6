package effect

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/gogpu/softpipe"
	"github.com/gogpu/softpipe/mesh"
)

// TexVertex is a position with a texture coordinate.
type TexVertex struct {
	Position mgl64.Vec3
	UV       mgl64.Vec2
}

// TexVertexFrom takes the position and texture coordinate of a mesh vertex.
func TexVertexFrom(v mesh.Vertex) TexVertex {
	return TexVertex{Position: v.Pos, UV: v.TexCoord}
}

// Pos returns the position.
func (v TexVertex) Pos() mgl64.Vec3 { return v.Position }

// WithPos returns a copy of v at position p.
func (v TexVertex) WithPos(p mgl64.Vec3) TexVertex { v.Position = p; return v }

// Add returns the componentwise sum of v and o.
func (v TexVertex) Add(o TexVertex) TexVertex {
	return TexVertex{Position: v.Position.Add(o.Position), UV: v.UV.Add(o.UV)}
}

// Sub returns the componentwise difference v - o.
func (v TexVertex) Sub(o TexVertex) TexVertex {
	return TexVertex{Position: v.Position.Sub(o.Position), UV: v.UV.Sub(o.UV)}
}

// Mul returns v scaled by s.
func (v TexVertex) Mul(s float64) TexVertex {
	return TexVertex{Position: v.Position.Mul(s), UV: v.UV.Mul(s)}
}

// Div returns v divided by s.
func (v TexVertex) Div(s float64) TexVertex {
	return TexVertex{Position: div3(v.Position, s), UV: mgl64.Vec2{v.UV[0] / s, v.UV[1] / s}}
}

// ColorVertex is a position with a color that is blended across faces.
type ColorVertex struct {
	Position mgl64.Vec3
	Color    softpipe.RGBA
}

// Pos returns the position.
func (v ColorVertex) Pos() mgl64.Vec3 { return v.Position }

// WithPos returns a copy of v at position p.
func (v ColorVertex) WithPos(p mgl64.Vec3) ColorVertex { v.Position = p; return v }

// Add returns the componentwise sum of v and o.
func (v ColorVertex) Add(o ColorVertex) ColorVertex {
	return ColorVertex{Position: v.Position.Add(o.Position), Color: v.Color.Add(o.Color)}
}

// Sub returns the componentwise difference v - o.
func (v ColorVertex) Sub(o ColorVertex) ColorVertex {
	return ColorVertex{Position: v.Position.Sub(o.Position), Color: v.Color.Sub(o.Color)}
}

// Mul returns v scaled by s.
func (v ColorVertex) Mul(s float64) ColorVertex {
	return ColorVertex{Position: v.Position.Mul(s), Color: v.Color.Mul(s)}
}

// Div returns v divided by s.
func (v ColorVertex) Div(s float64) ColorVertex {
	return ColorVertex{Position: div3(v.Position, s), Color: v.Color.Div(s)}
}

// SolidVertex is a position with a color that is not interpolated.
//
// Only the position takes part in the arithmetic; every result keeps the
// receiver's color. A triangle whose three vertices share one color is
// therefore filled with exactly that color, with no rounding drift.
type SolidVertex struct {
	Position mgl64.Vec3
	Color    softpipe.RGBA
}

// Pos returns the position.
func (v SolidVertex) Pos() mgl64.Vec3 { return v.Position }

// WithPos returns a copy of v at position p.
func (v SolidVertex) WithPos(p mgl64.Vec3) SolidVertex { v.Position = p; return v }

// Add returns the sum of the positions with v's color.
func (v SolidVertex) Add(o SolidVertex) SolidVertex {
	return SolidVertex{Position: v.Position.Add(o.Position), Color: v.Color}
}

// Sub returns the difference of the positions with v's color.
func (v SolidVertex) Sub(o SolidVertex) SolidVertex {
	return SolidVertex{Position: v.Position.Sub(o.Position), Color: v.Color}
}

// Mul returns v with its position scaled by s.
func (v SolidVertex) Mul(s float64) SolidVertex {
	return SolidVertex{Position: v.Position.Mul(s), Color: v.Color}
}

// Div returns v with its position divided by s.
func (v SolidVertex) Div(s float64) SolidVertex {
	return SolidVertex{Position: div3(v.Position, s), Color: v.Color}
}

// NormalVertex is the input of the lighting effects.
type NormalVertex struct {
	Position mgl64.Vec3
	Normal   mgl64.Vec3
}

// NormalVertexFrom takes the position and normal of a mesh vertex.
func NormalVertexFrom(v mesh.Vertex) NormalVertex {
	return NormalVertex{Position: v.Pos, Normal: v.Normal}
}

// Pos returns the position.
func (v NormalVertex) Pos() mgl64.Vec3 { return v.Position }

// PhongVertex carries what the per-pixel lighting needs: the surface
// normal and the view-space position, both interpolated.
type PhongVertex struct {
	Position mgl64.Vec3
	Normal   mgl64.Vec3
	World    mgl64.Vec3
}

// Pos returns the position.
func (v PhongVertex) Pos() mgl64.Vec3 { return v.Position }

// WithPos returns a copy of v at position p.
func (v PhongVertex) WithPos(p mgl64.Vec3) PhongVertex { v.Position = p; return v }

// Add returns the componentwise sum of v and o.
func (v PhongVertex) Add(o PhongVertex) PhongVertex {
	return PhongVertex{v.Position.Add(o.Position), v.Normal.Add(o.Normal), v.World.Add(o.World)}
}

// Sub returns the componentwise difference v - o.
func (v PhongVertex) Sub(o PhongVertex) PhongVertex {
	return PhongVertex{v.Position.Sub(o.Position), v.Normal.Sub(o.Normal), v.World.Sub(o.World)}
}

// Mul returns v scaled by s.
func (v PhongVertex) Mul(s float64) PhongVertex {
	return PhongVertex{v.Position.Mul(s), v.Normal.Mul(s), v.World.Mul(s)}
}

// Div returns v divided by s.
func (v PhongVertex) Div(s float64) PhongVertex {
	return PhongVertex{div3(v.Position, s), div3(v.Normal, s), div3(v.World, s)}
}

func div3(v mgl64.Vec3, s float64) mgl64.Vec3 {
	return mgl64.Vec3{v[0] / s, v[1] / s, v[2] / s}
}
