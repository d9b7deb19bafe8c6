package softpipe

import "fmt"

// Triangle is three vertices of one primitive.
type Triangle[A any] struct {
	V0, V1, V2 A
}

// IndexedTriangleList is a vertex buffer plus a triple-grouped index buffer.
// Each consecutive index triple names one triangle.
type IndexedTriangleList[V any] struct {
	Vertices []V
	Indices  []int
}

// PrimitiveCount returns the number of triangles named by the indices.
func (l IndexedTriangleList[V]) PrimitiveCount() int {
	return len(l.Indices) / 3
}

// Validate checks the index buffer against the vertex buffer.
func (l IndexedTriangleList[V]) Validate() error {
	return validateIndices(len(l.Vertices), l.Indices)
}

func validateIndices(vertexCount int, indices []int) error {
	if len(indices)%3 != 0 {
		return fmt.Errorf("%w: got %d indices", ErrIndexCount, len(indices))
	}
	for i, idx := range indices {
		if idx < 0 || idx >= vertexCount {
			return fmt.Errorf("%w: indices[%d] = %d, vertex count %d", ErrIndexOutOfRange, i, idx, vertexCount)
		}
	}
	return nil
}
