package softpipe

import "github.com/go-gl/mathgl/mgl64"

// ScreenTransform maps geometry-stage positions to pixel coordinates.
type ScreenTransform interface {
	Transform(pos mgl64.Vec3) mgl64.Vec3
}

// ScreenSpace is the identity transform, for vertex stages that already
// produce pixel coordinates.
type ScreenSpace struct{}

// Transform returns pos unchanged.
func (ScreenSpace) Transform(pos mgl64.Vec3) mgl64.Vec3 { return pos }

// PerspectiveScreen divides x and y by z and maps the [-1, 1] square onto
// the target, with y pointing down. z is kept for later stages.
//
// Only the position is divided; other attributes stay linear in screen
// space, so texture mapping is affine rather than perspective-correct.
type PerspectiveScreen struct {
	xFactor, yFactor float64
}

// NewPerspectiveScreen creates the transform for a width x height target.
func NewPerspectiveScreen(width, height int) PerspectiveScreen {
	return PerspectiveScreen{
		xFactor: float64(width) / 2,
		yFactor: float64(height) / 2,
	}
}

// Transform implements ScreenTransform.
func (s PerspectiveScreen) Transform(pos mgl64.Vec3) mgl64.Vec3 {
	zInv := 1 / pos.Z()
	return mgl64.Vec3{
		(pos.X()*zInv + 1) * s.xFactor,
		(-pos.Y()*zInv + 1) * s.yFactor,
		pos.Z(),
	}
}
