package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // register JPEG
	_ "image/png"  // register PNG
	"io"
	"os"
	"path/filepath"

	_ "golang.org/x/image/bmp"  // register BMP
	_ "golang.org/x/image/tiff" // register TIFF
	_ "golang.org/x/image/webp" // register WebP
)

// I/O errors.
var (
	// ErrUnsupportedFormat is returned when the image format is not supported.
	ErrUnsupportedFormat = errors.New("texture: unsupported format")

	// ErrEmptyData is returned when image data is empty.
	ErrEmptyData = errors.New("texture: empty data")
)

// LoadError records a failed texture load and the file it came from.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	if e.Path == "" {
		return "texture: load: " + e.Err.Error()
	}
	return fmt.Sprintf("texture: load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Load reads and decodes the image file at path.
// Supported formats: PNG, JPEG, BMP, TIFF, WebP.
func Load(path string) (*Texture, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	tex, err := DecodeBytes(data)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.Path = path
		}
		return nil, err
	}
	return tex, nil
}

// DecodeBytes decodes an image held in memory.
func DecodeBytes(data []byte) (*Texture, error) {
	if len(data) == 0 {
		return nil, &LoadError{Err: ErrEmptyData}
	}
	return Decode(bytes.NewReader(data))
}

// Decode decodes an image from r, detecting the format from its header.
func Decode(r io.Reader) (*Texture, error) {
	img, _, err := image.Decode(r)
	switch {
	case errors.Is(err, image.ErrFormat):
		return nil, &LoadError{Err: ErrUnsupportedFormat}
	case err != nil:
		return nil, &LoadError{Err: fmt.Errorf("decode: %w", err)}
	}

	tex, err := FromImage(img)
	if err != nil {
		return nil, &LoadError{Err: err}
	}
	return tex, nil
}
