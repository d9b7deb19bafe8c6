package softpipe

import (
	"image"
	"math"
)

// PixelFunc receives every pixel covered by a triangle together with the
// attribute bundle interpolated at the pixel center.
type PixelFunc[P any] func(x, y int, in P)

// Rasterizer is a scanline triangle rasterizer over an attribute type.
//
// Triangles are split into flat-top and flat-bottom halves and filled with
// the center-sampling rule: a pixel is drawn when its center lies inside
// the triangle or on a top or left edge. Two triangles sharing an edge
// therefore neither overlap nor leave a gap along it.
//
// Scanlines and pixel spans are intersected with the clip rectangle, so the
// PixelFunc only ever sees coordinates inside it.
type Rasterizer[P Attribute[P]] struct {
	clip image.Rectangle
}

// NewRasterizer creates a rasterizer that clips to the given rectangle.
func NewRasterizer[P Attribute[P]](clip image.Rectangle) *Rasterizer[P] {
	return &Rasterizer[P]{clip: clip.Canon()}
}

// Clip returns the clip rectangle.
func (r *Rasterizer[P]) Clip() image.Rectangle {
	return r.clip
}

// DrawTriangle rasterizes one screen-space triangle and returns the number
// of pixels passed to plot. Degenerate triangles and triangles with
// non-finite coordinates produce no pixels.
func (r *Rasterizer[P]) DrawTriangle(tri Triangle[P], plot PixelFunc[P]) int {
	v0, v1, v2 := tri.V0, tri.V1, tri.V2
	if !finiteXY(v0) || !finiteXY(v1) || !finiteXY(v2) {
		return 0
	}

	// sort by y
	if v1.Pos().Y() < v0.Pos().Y() {
		v0, v1 = v1, v0
	}
	if v2.Pos().Y() < v1.Pos().Y() {
		v1, v2 = v2, v1
	}
	if v1.Pos().Y() < v0.Pos().Y() {
		v0, v1 = v1, v0
	}

	if v0.Pos().Y() == v1.Pos().Y() { // natural flat top
		if v1.Pos().X() < v0.Pos().X() {
			v0, v1 = v1, v0
		}
		return r.flatTop(v0, v1, v2, plot)
	}
	if v1.Pos().Y() == v2.Pos().Y() { // natural flat bottom
		if v2.Pos().X() < v1.Pos().X() {
			v1, v2 = v2, v1
		}
		return r.flatBottom(v0, v1, v2, plot)
	}

	vi := splitVertex(v0, v1, v2)
	if v1.Pos().X() < vi.Pos().X() { // major right
		return r.flatBottom(v0, v1, vi, plot) + r.flatTop(v1, vi, v2, plot)
	}
	// major left
	return r.flatBottom(v0, vi, v1, plot) + r.flatTop(vi, v1, v2, plot)
}

// splitVertex returns the point on the long edge v0->v2 at the height of v1.
// v0, v1, v2 must be sorted by y with v0.y < v2.y.
func splitVertex[P Attribute[P]](v0, v1, v2 P) P {
	alpha := (v1.Pos().Y() - v0.Pos().Y()) / (v2.Pos().Y() - v0.Pos().Y())
	return Lerp(v0, v2, alpha)
}

// flatTop fills a triangle whose top edge it0-it1 is horizontal (it0 left).
func (r *Rasterizer[P]) flatTop(it0, it1, it2 P, plot PixelFunc[P]) int {
	dy := it2.Pos().Y() - it0.Pos().Y()
	if dy == 0 {
		return 0
	}
	d0 := it2.Sub(it0).Div(dy)
	d1 := it2.Sub(it1).Div(dy)
	return r.flat(it0, it2, d0, d1, it1, plot)
}

// flatBottom fills a triangle whose bottom edge it1-it2 is horizontal (it1 left).
func (r *Rasterizer[P]) flatBottom(it0, it1, it2 P, plot PixelFunc[P]) int {
	dy := it2.Pos().Y() - it0.Pos().Y()
	if dy == 0 {
		return 0
	}
	d0 := it1.Sub(it0).Div(dy)
	d1 := it2.Sub(it0).Div(dy)
	return r.flat(it0, it2, d0, d1, it0, plot)
}

// flat walks the two edges of a flat triangle from the scanline of it0 down
// to the scanline of it2. The left edge starts at it0, the right at edge1.
func (r *Rasterizer[P]) flat(it0, it2, d0, d1, edge1 P, plot PixelFunc[P]) int {
	y0 := it0.Pos().Y()

	// first scanline drawn, and the scanline after the last one drawn
	yStart := math.Max(math.Ceil(y0-0.5), float64(r.clip.Min.Y))
	yEnd := math.Min(math.Ceil(it2.Pos().Y()-0.5), float64(r.clip.Max.Y))
	if yStart >= yEnd {
		return 0
	}

	// prestep to the center of the first scanline
	step := yStart + 0.5 - y0
	edge0 := it0.Add(d0.Mul(step))
	edge1 = edge1.Add(d1.Mul(step))

	n := 0
	for y := int(yStart); y < int(yEnd); y, edge0, edge1 = y+1, edge0.Add(d0), edge1.Add(d1) {
		n += r.scanline(y, edge0, edge1, plot)
	}
	return n
}

// scanline interpolates from left to right across one row.
func (r *Rasterizer[P]) scanline(y int, left, right P, plot PixelFunc[P]) int {
	lx := left.Pos().X()
	rx := right.Pos().X()

	xStart := math.Max(math.Ceil(lx-0.5), float64(r.clip.Min.X))
	xEnd := math.Min(math.Ceil(rx-0.5), float64(r.clip.Max.X))
	dx := rx - lx
	if xStart >= xEnd || dx <= 0 {
		return 0
	}

	dLine := right.Sub(left).Div(dx)
	it := left.Add(dLine.Mul(xStart + 0.5 - lx))

	for x := int(xStart); x < int(xEnd); x, it = x+1, it.Add(dLine) {
		plot(x, y, it)
	}
	return int(xEnd) - int(xStart)
}

func finiteXY(p Positioner) bool {
	pos := p.Pos()
	return !math.IsNaN(pos.X()) && !math.IsInf(pos.X(), 0) &&
		!math.IsNaN(pos.Y()) && !math.IsInf(pos.Y(), 0)
}
