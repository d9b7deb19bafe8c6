// Package effect provides ready-made shading policies for softpipe.
//
// Each effect type implements the stages it customizes and returns a
// complete [softpipe.Effect] from its Effect method:
//
//	tex := effect.NewTexture()
//	p, err := softpipe.NewPipeline(pm, tex.Effect())
//	if err != nil {
//	    return err
//	}
//	if err := p.BindTexture("cube.png"); err != nil {
//	    return err
//	}
//	cube := mesh.Convert(mesh.SkinnedCube(1), effect.TexVertexFrom)
//	err = p.DrawList(cube)
//
// # Effects
//
//   - Texture: rotate, translate and look up a bound texture
//   - Solid: one color per vertex, carried without interpolation
//   - VertexColor: per-vertex colors blended across the face
//   - SolidGeometry: colors assigned per pair of triangles by the geometry stage
//   - VertexFlat: directional light evaluated per vertex
//   - SpecularPhongPoint: point light with attenuation and specular highlight per pixel
//   - Wave: textured surface displaced by a travelling sine wave
//
// # Vertex types
//
// Effects that interpolate share the vertex types declared here
// (TexVertex, ColorVertex, SolidVertex, PhongVertex). Each converts from
// [mesh.Vertex] with a From function suitable for [mesh.Convert].
package effect
