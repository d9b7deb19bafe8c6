package softpipe

import "github.com/gogpu/gputypes"

// Option configures a Pipeline during creation.
// Use functional options to customize Pipeline behavior.
//
// Example:
//
//	// Default perspective screen transform and back-face culling
//	p, err := softpipe.NewPipeline(pm, eff)
//
//	// Vertex stage already emits pixel coordinates, draw both faces
//	p, err := softpipe.NewPipeline(pm, eff,
//	    softpipe.WithScreenTransform(softpipe.ScreenSpace{}),
//	    softpipe.WithCullMode(gputypes.CullModeNone))
type Option func(*options)

// options holds optional configuration for Pipeline creation.
type options struct {
	screen    ScreenTransform
	primitive gputypes.PrimitiveState
	clipNear  bool
	near      float64
}

// defaultOptions returns the default pipeline options.
func defaultOptions() options {
	return options{
		screen: nil, // Will be a PerspectiveScreen sized to the target if nil
		primitive: gputypes.PrimitiveState{
			Topology:  gputypes.PrimitiveTopologyTriangleList,
			FrontFace: gputypes.FrontFaceCCW,
			CullMode:  gputypes.CullModeBack,
		},
	}
}

// WithScreenTransform replaces the default perspective screen transform.
func WithScreenTransform(s ScreenTransform) Option {
	return func(o *options) {
		o.screen = s
	}
}

// WithCullMode selects which faces are discarded.
//
// A triangle is front-facing when ((v1-v0) x (v2-v0)) . v0 is positive,
// which is counter-clockwise winding as seen from a viewer at the origin.
// With gputypes.CullModeBack (the default) every other triangle, including
// degenerate ones, is discarded.
func WithCullMode(mode gputypes.CullMode) Option {
	return func(o *options) {
		o.primitive.CullMode = mode
	}
}

// WithPrimitiveState sets topology, winding and cull mode at once.
// Only gputypes.PrimitiveTopologyTriangleList is supported.
func WithPrimitiveState(ps gputypes.PrimitiveState) Option {
	return func(o *options) {
		o.primitive = ps
	}
}

// WithNearClip enables clipping against the plane z = near on geometry-stage
// output, before the screen transform.
func WithNearClip(near float64) Option {
	return func(o *options) {
		o.clipNear = true
		o.near = near
	}
}
