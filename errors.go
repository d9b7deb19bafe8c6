package softpipe

import "errors"

// Contract violations reported by Pipeline.Draw and the bind calls.
// Draw checks these before any vertex is shaded, so a failed Draw leaves
// the target untouched.
var (
	// ErrIndexCount is returned when the index count is not a multiple of 3.
	ErrIndexCount = errors.New("softpipe: index count is not a multiple of 3")

	// ErrIndexOutOfRange is returned when an index does not name a vertex.
	ErrIndexOutOfRange = errors.New("softpipe: index out of range")

	// ErrNoTexture is returned when a texture-sampling pixel stage is drawn
	// without a bound texture.
	ErrNoTexture = errors.New("softpipe: no texture bound")

	// ErrColorTable is returned when a geometry stage color table cannot
	// cover every primitive of a draw.
	ErrColorTable = errors.New("softpipe: color table smaller than primitive count")

	// ErrTopology is returned for primitive topologies other than triangle lists.
	ErrTopology = errors.New("softpipe: unsupported primitive topology")

	// ErrNilTarget is returned when a pipeline is created without a target.
	ErrNilTarget = errors.New("softpipe: nil target")
)
