package mesh

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Sphere returns a UV sphere around the z axis.
//
// latDiv splits pole-to-pole into rings and longDiv splits each ring. The
// poles are stored once and joined to the outermost rings by triangle
// fans; each ring closes on itself across the seam at longitude 0.
// latDiv below 2 is treated as 2 and longDiv below 3 as 3.
func Sphere(radius float64, latDiv, longDiv int) List {
	latDiv = max(latDiv, 2)
	longDiv = max(longDiv, 3)

	base := mgl64.Vec3{0, 0, radius}
	latAngle := math.Pi / float64(latDiv)
	longAngle := 2 * math.Pi / float64(longDiv)

	rings := latDiv - 1
	l := List{
		Vertices: make([]Vertex, 0, rings*longDiv+2),
		Indices:  make([]int, 0, (rings-1)*longDiv*6+longDiv*6),
	}
	for iLat := 1; iLat < latDiv; iLat++ {
		latBase := mgl64.Rotate3DX(latAngle * float64(iLat)).Mul3x1(base)
		for iLong := range longDiv {
			pos := mgl64.Rotate3DZ(longAngle * float64(iLong)).Mul3x1(latBase)
			l.Vertices = append(l.Vertices, Vertex{Pos: pos})
		}
	}
	north := len(l.Vertices)
	l.Vertices = append(l.Vertices, Vertex{Pos: base})
	south := len(l.Vertices)
	l.Vertices = append(l.Vertices, Vertex{Pos: base.Mul(-1)})

	// ring index wraps at the seam
	at := func(iLat, iLong int) int { return iLat*longDiv + iLong%longDiv }

	for iLat := 0; iLat < rings-1; iLat++ {
		for iLong := range longDiv {
			l.Indices = append(l.Indices,
				at(iLat, iLong), at(iLat, iLong+1), at(iLat+1, iLong),
				at(iLat, iLong+1), at(iLat+1, iLong+1), at(iLat+1, iLong),
			)
		}
	}
	last := rings - 1
	for iLong := range longDiv {
		l.Indices = append(l.Indices,
			north, at(0, iLong+1), at(0, iLong),
			at(last, iLong+1), south, at(last, iLong),
		)
	}
	return l
}

// SphereNormals is Sphere with each vertex normal set to its direction
// from the centre.
func SphereNormals(radius float64, latDiv, longDiv int) List {
	l := Sphere(radius, latDiv, longDiv)
	for i := range l.Vertices {
		l.Vertices[i].Normal = l.Vertices[i].Pos.Normalize()
	}
	return l
}
