package mesh

import "github.com/go-gl/mathgl/mgl64"

// Plane returns a square in the z=0 plane, size units across, tessellated
// into divisions x divisions cells of two triangles each. Vertices run row
// by row from the bottom-left corner. The front face looks toward -z.
//
// divisions below 1 is treated as 1.
func Plane(divisions int, size float64) List {
	divisions = max(divisions, 1)
	side := size / 2
	step := size / float64(divisions)
	n := divisions + 1

	l := List{
		Vertices: make([]Vertex, 0, n*n),
		Indices:  make([]int, 0, divisions*divisions*6),
	}
	for y := range n {
		for x := range n {
			l.Vertices = append(l.Vertices, Vertex{
				Pos:    mgl64.Vec3{-side + float64(x)*step, -side + float64(y)*step, 0},
				Normal: mgl64.Vec3{0, 0, -1},
			})
		}
	}

	at := func(x, y int) int { return y*n + x }
	for y := range divisions {
		for x := range divisions {
			bl, br := at(x, y), at(x+1, y)
			tl, tr := at(x, y+1), at(x+1, y+1)
			l.Indices = append(l.Indices, bl, br, tl, br, tr, tl)
		}
	}
	return l
}

// SkinnedPlane is Plane with texture coordinates stretched over the whole
// square. The texture's top-left corner lands on the plane's top-left
// corner, so v decreases as y grows.
func SkinnedPlane(divisions int, size float64) List {
	l := Plane(divisions, size)
	divisions = max(divisions, 1)
	step := 1 / float64(divisions)
	n := divisions + 1

	for y, i := 0, 0; y < n; y++ {
		for x := 0; x < n; x, i = x+1, i+1 {
			l.Vertices[i].TexCoord = mgl64.Vec2{float64(x) * step, 1 - float64(y)*step}
		}
	}
	return l
}
