// Package softpipe provides a CPU triangle rasterization pipeline with
// pluggable shading stages.
//
// # Overview
//
// A Pipeline takes an indexed triangle list and runs it through three
// user-supplied stages bundled in an Effect:
//
//   - a vertex stage, once per input vertex
//   - a geometry stage, once per triangle that survives face culling
//   - a pixel stage, once per covered pixel
//
// Between them the pipeline assembles triangles from index triples, culls
// faces, optionally clips against a near plane, maps positions to pixel
// coordinates and scan-converts with the center-sampling rule.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/softpipe"
//	    "github.com/gogpu/softpipe/effect"
//	    "github.com/gogpu/softpipe/mesh"
//	)
//
//	pm := softpipe.NewPixmap(640, 480)
//	flat := effect.NewVertexFlat()
//	p, err := softpipe.NewPipeline(pm, flat.Effect())
//	if err != nil {
//	    return err
//	}
//	p.BindTranslation(mgl64.Vec3{0, 0, 2})
//	cube := mesh.Convert(mesh.CubeIndependentFaces(1), effect.NormalVertexFrom)
//	if err := p.DrawList(cube); err != nil {
//	    return err
//	}
//	pm.SavePNG("cube.png")
//
// # Attributes
//
// Everything the rasterizer interpolates is an Attribute: a position plus
// any number of linear channels. The pipeline is generic over three vertex
// types: V (input), O (vertex-stage output) and P (geometry-stage output).
// Only P needs the Attribute algebra.
//
// # Coordinate System
//
// Vertex-stage positions are in a view space with the viewer at the origin
// looking down +z. The default screen transform divides by z and maps the
// [-1, 1] square onto the target:
//   - Origin (0,0) at top-left of the target
//   - X increases right
//   - Y increases down
//
// # Limitations
//
// There is no depth buffer and no blending. Passes that share a target
// overwrite each other in draw order. Texture coordinates are interpolated
// in screen space, so texturing is affine.
package softpipe

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
