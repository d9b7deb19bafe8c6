package scene

import (
	"context"
	"fmt"
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/gogpu/softpipe"
)

// FrameFunc receives each rendered frame. It may be called from several
// goroutines at once, in any frame order.
type FrameFunc func(frame int, pm *softpipe.Pixmap) error

// RenderFrames renders n frames of an animation, advancing every object's
// Time by dt per frame. Frames are independent and render on up to workers
// goroutines (GOMAXPROCS when workers <= 0) and share one set of decoded
// assets. The first error cancels the frames not yet started and is
// returned.
func (s *Scene) RenderFrames(ctx context.Context, n int, dt float64, workers int, fn FrameFunc) error {
	if n <= 0 {
		return nil
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	s.normalize()
	if err := s.Validate(); err != nil {
		return err
	}

	assets := NewAssets(0)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range n {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			pm, err := s.frame(i, dt).RenderWith(assets)
			if err != nil {
				return fmt.Errorf("frame %d: %w", i, err)
			}
			return fn(i, pm)
		})
	}
	return g.Wait()
}

// frame returns a copy of the scene at time step i.
func (s *Scene) frame(i int, dt float64) *Scene {
	f := *s
	f.Objects = slices.Clone(s.Objects)
	for j := range f.Objects {
		f.Objects[j].Time += float64(i) * dt
	}
	return &f
}
