// Command softpipe renders a scene description to a PNG file.
//
// Usage:
//
//	softpipe [-scene scene.yaml] [-output frame.png] [-width w] [-height h] [-v]
//	softpipe -frames 24 -dt 0.04 -output anim.png
//
// Without -scene the built-in scene is rendered. With -frames above one the
// frames are written as anim_000.png, anim_001.png and so on.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogpu/softpipe"
	"github.com/gogpu/softpipe/internal/scene"
)

func main() {
	var (
		scenePath = flag.String("scene", "", "scene file (YAML); built-in scene if empty")
		output    = flag.String("output", "frame.png", "output file")
		width     = flag.Int("width", 0, "image width, overrides the scene")
		height    = flag.Int("height", 0, "image height, overrides the scene")
		verbose   = flag.Bool("v", false, "log pipeline diagnostics to stderr")
		dump      = flag.Bool("dump", false, "print the resolved scene as YAML and exit")
		frames    = flag.Int("frames", 1, "number of animation frames")
		dt        = flag.Float64("dt", 0.04, "time step between frames in seconds")
		workers   = flag.Int("workers", 0, "frames rendered in parallel (0 = GOMAXPROCS)")
	)
	flag.Parse()

	if *verbose {
		softpipe.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	s, err := loadScene(*scenePath)
	if err != nil {
		log.Fatalf("Failed to load scene: %v", err)
	}
	if *width > 0 {
		s.Width = *width
	}
	if *height > 0 {
		s.Height = *height
	}

	if *dump {
		if err := s.Encode(os.Stdout); err != nil {
			log.Fatalf("Failed to print scene: %v", err)
		}
		return
	}

	if *frames > 1 {
		err := s.RenderFrames(context.Background(), *frames, *dt, *workers, func(i int, pm *softpipe.Pixmap) error {
			return pm.SavePNG(framePath(*output, i))
		})
		if err != nil {
			log.Fatalf("Failed to render: %v", err)
		}
		log.Printf("%d frames saved to %s (%dx%d)\n", *frames, framePath(*output, 0), s.Width, s.Height)
		return
	}

	pm, err := s.Render()
	if err != nil {
		log.Fatalf("Failed to render: %v", err)
	}
	if err := pm.SavePNG(*output); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}

	log.Printf("Frame saved to %s (%dx%d)\n", *output, pm.Width(), pm.Height())
}

func loadScene(path string) (*scene.Scene, error) {
	if path == "" {
		return scene.Default()
	}
	return scene.Load(path)
}

// framePath inserts the frame number before the extension.
func framePath(output string, i int) string {
	ext := filepath.Ext(output)
	return fmt.Sprintf("%s_%03d%s", strings.TrimSuffix(output, ext), i, ext)
}
