package mesh

import "github.com/go-gl/mathgl/mgl64"

// Cube returns an axis-aligned cube of the given edge length centred on
// the origin: 8 shared corners and 12 triangles.
func Cube(size float64) List {
	s := size / 2
	return List{
		Vertices: []Vertex{
			{Pos: mgl64.Vec3{-s, -s, -s}}, // 0
			{Pos: mgl64.Vec3{s, -s, -s}},  // 1
			{Pos: mgl64.Vec3{-s, s, -s}},  // 2
			{Pos: mgl64.Vec3{s, s, -s}},   // 3
			{Pos: mgl64.Vec3{-s, -s, s}},  // 4
			{Pos: mgl64.Vec3{s, -s, s}},   // 5
			{Pos: mgl64.Vec3{-s, s, s}},   // 6
			{Pos: mgl64.Vec3{s, s, s}},    // 7
		},
		Indices: []int{
			0, 1, 2, 2, 1, 3, // near (-z)
			1, 5, 3, 3, 5, 7, // right (+x)
			2, 3, 6, 3, 7, 6, // top (+y)
			4, 7, 5, 4, 6, 7, // far (+z)
			0, 2, 4, 2, 6, 4, // left (-x)
			0, 4, 1, 1, 4, 5, // bottom (-y)
		},
	}
}

// SkinnedCube returns a cube whose texture coordinates map a cross-shaped
// atlas: a 3x4 grid of squares with the four side faces stacked in the
// middle column and the remaining two faces on either side of the second
// row. Seams need duplicated corners, giving 14 vertices.
func SkinnedCube(size float64) List {
	s := size / 2
	tc := func(u, v float64) mgl64.Vec2 {
		return mgl64.Vec2{(u + 1) / 3, v / 4}
	}
	return List{
		Vertices: []Vertex{
			{Pos: mgl64.Vec3{-s, -s, -s}, TexCoord: tc(1, 0)},  // 0
			{Pos: mgl64.Vec3{s, -s, -s}, TexCoord: tc(0, 0)},   // 1
			{Pos: mgl64.Vec3{-s, s, -s}, TexCoord: tc(1, 1)},   // 2
			{Pos: mgl64.Vec3{s, s, -s}, TexCoord: tc(0, 1)},    // 3
			{Pos: mgl64.Vec3{-s, -s, s}, TexCoord: tc(1, 3)},   // 4
			{Pos: mgl64.Vec3{s, -s, s}, TexCoord: tc(0, 3)},    // 5
			{Pos: mgl64.Vec3{-s, s, s}, TexCoord: tc(1, 2)},    // 6
			{Pos: mgl64.Vec3{s, s, s}, TexCoord: tc(0, 2)},     // 7
			{Pos: mgl64.Vec3{-s, -s, -s}, TexCoord: tc(1, 4)},  // 8
			{Pos: mgl64.Vec3{s, -s, -s}, TexCoord: tc(0, 4)},   // 9
			{Pos: mgl64.Vec3{-s, -s, -s}, TexCoord: tc(2, 1)},  // 10
			{Pos: mgl64.Vec3{-s, -s, s}, TexCoord: tc(2, 2)},   // 11
			{Pos: mgl64.Vec3{s, -s, -s}, TexCoord: tc(-1, 1)},  // 12
			{Pos: mgl64.Vec3{s, -s, s}, TexCoord: tc(-1, 2)},   // 13
		},
		Indices: []int{
			0, 1, 2, 2, 1, 3,
			4, 5, 8, 5, 9, 8,
			2, 3, 6, 3, 7, 6,
			4, 7, 5, 4, 6, 7,
			2, 11, 10, 2, 6, 11,
			12, 7, 3, 12, 13, 7,
		},
	}
}

// cubeFaces lists each face's outward normal and two in-plane axes with
// u x v = -normal, which gives the quad corners the pipeline's winding.
var cubeFaces = [6]struct{ n, u, v mgl64.Vec3 }{
	{n: mgl64.Vec3{0, 0, -1}, u: mgl64.Vec3{1, 0, 0}, v: mgl64.Vec3{0, 1, 0}},
	{n: mgl64.Vec3{0, 0, 1}, u: mgl64.Vec3{0, 1, 0}, v: mgl64.Vec3{1, 0, 0}},
	{n: mgl64.Vec3{-1, 0, 0}, u: mgl64.Vec3{0, 1, 0}, v: mgl64.Vec3{0, 0, 1}},
	{n: mgl64.Vec3{1, 0, 0}, u: mgl64.Vec3{0, 0, 1}, v: mgl64.Vec3{0, 1, 0}},
	{n: mgl64.Vec3{0, -1, 0}, u: mgl64.Vec3{0, 0, 1}, v: mgl64.Vec3{1, 0, 0}},
	{n: mgl64.Vec3{0, 1, 0}, u: mgl64.Vec3{1, 0, 0}, v: mgl64.Vec3{0, 0, 1}},
}

// CubeIndependentFaces returns a cube with four vertices per face, so
// every face carries its own normal and a full [0,1] texture square.
func CubeIndependentFaces(size float64) List {
	s := size / 2
	l := List{
		Vertices: make([]Vertex, 0, 24),
		Indices:  make([]int, 0, 36),
	}
	for _, f := range cubeFaces {
		base := len(l.Vertices)
		c := f.n.Mul(s)
		for _, corner := range [4]struct{ du, dv float64 }{{-1, -1}, {1, -1}, {-1, 1}, {1, 1}} {
			l.Vertices = append(l.Vertices, Vertex{
				Pos:      c.Add(f.u.Mul(corner.du * s)).Add(f.v.Mul(corner.dv * s)),
				TexCoord: mgl64.Vec2{(corner.du + 1) / 2, (1 - corner.dv) / 2},
				Normal:   f.n,
			})
		}
		l.Indices = append(l.Indices,
			base, base+1, base+2,
			base+2, base+1, base+3,
		)
	}
	return l
}
