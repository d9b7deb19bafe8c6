// Package mesh produces indexed triangle lists for the pipeline: cubes,
// planes and UV spheres generated in code, and Wavefront OBJ models read
// from disk.
//
// Every mesh uses the pipeline's winding: for a face turned toward a viewer
// at the origin, ((v1-v0) x (v2-v0)) . v0 is positive, so the default
// back-face culling keeps it. Normals always point outward.
package mesh

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/gogpu/softpipe"
)

// Vertex is the generic vertex produced by every generator and loader.
// Channels a source does not provide are zero.
type Vertex struct {
	Pos      mgl64.Vec3
	TexCoord mgl64.Vec2
	Normal   mgl64.Vec3
}

// List is an indexed triangle list of generic vertices.
type List = softpipe.IndexedTriangleList[Vertex]

// Convert maps every vertex of l through fn, keeping the index buffer.
// It is how generic meshes become effect-specific vertex types.
func Convert[V any](l List, fn func(Vertex) V) softpipe.IndexedTriangleList[V] {
	out := softpipe.IndexedTriangleList[V]{
		Vertices: make([]V, len(l.Vertices)),
		Indices:  append([]int(nil), l.Indices...),
	}
	for i, v := range l.Vertices {
		out.Vertices[i] = fn(v)
	}
	return out
}

// Positions extracts a position-only list, the smallest input type the
// pipeline accepts.
func Positions(l List) softpipe.IndexedTriangleList[softpipe.Position] {
	return Convert(l, func(v Vertex) softpipe.Position { return softpipe.Position(v.Pos) })
}

// LoadError records a failed model load.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	if e.Path == "" {
		return "mesh: " + e.Err.Error()
	}
	return fmt.Sprintf("mesh: %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }
