// Package scene describes frames as ordered lists of objects in YAML and
// renders them with softpipe, one pipeline pass per object.
package scene

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gogpu/gputypes"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/softpipe"
)

// Default frame size when a scene does not set one.
const (
	DefaultWidth  = 640
	DefaultHeight = 480
)

//go:embed default.yaml
var defaultScene []byte

// ErrEmpty is returned when a scene document has no content.
var ErrEmpty = errors.New("scene: empty document")

// Scene is a frame description.
type Scene struct {
	Width      int     `yaml:"width,omitempty"`
	Height     int     `yaml:"height,omitempty"`
	Background Color   `yaml:"background,omitempty"`
	Near       float64 `yaml:"near,omitempty"`
	Light      Light   `yaml:"light,omitempty"`

	// Objects are drawn in order; later objects paint over earlier ones.
	Objects []Object `yaml:"objects"`

	// dir resolves relative texture and model paths.
	dir string
}

// Light configures the lighting effects.
type Light struct {
	Direction *mgl64.Vec3 `yaml:"direction,omitempty"`
	Position  *mgl64.Vec3 `yaml:"position,omitempty"`
}

// Object is one pass: a mesh drawn with an effect.
type Object struct {
	Name string `yaml:"name,omitempty"`

	Mesh      string  `yaml:"mesh"`
	Path      string  `yaml:"path,omitempty"`
	Size      float64 `yaml:"size,omitempty"`
	Divisions int     `yaml:"divisions,omitempty"`
	Lat       int     `yaml:"lat,omitempty"`
	Long      int     `yaml:"long,omitempty"`

	Effect  string  `yaml:"effect"`
	Texture string  `yaml:"texture,omitempty"`
	Wrap    string  `yaml:"wrap,omitempty"`   // clamp, repeat or mirror
	Filter  string  `yaml:"filter,omitempty"` // nearest or linear
	Colors  []Color `yaml:"colors,omitempty"`
	Time    float64 `yaml:"time,omitempty"`
	Cull    string  `yaml:"cull,omitempty"`

	// Rotation is in degrees about x, then y, then z.
	Rotation    mgl64.Vec3 `yaml:"rotation,omitempty"`
	Translation mgl64.Vec3 `yaml:"translation,omitempty"`
}

// Color is a hex color string in YAML ("#rgb", "#rrggbb", "#rrggbbaa").
type Color struct {
	c   softpipe.RGBA
	set bool
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	h := strings.TrimPrefix(s, "#")
	switch len(h) {
	case 3, 4, 6, 8:
	default:
		return fmt.Errorf("line %d: invalid color %q", value.Line, s)
	}
	if _, err := strconv.ParseUint(h, 16, 32); err != nil {
		return fmt.Errorf("line %d: invalid color %q", value.Line, s)
	}
	*c = Hex(h)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (c Color) MarshalYAML() (any, error) {
	n := c.c.NRGBA()
	return fmt.Sprintf("#%02x%02x%02x%02x", n.R, n.G, n.B, n.A), nil
}

// Value returns the color.
func (c Color) Value() softpipe.RGBA { return c.c }

// IsZero reports whether the color was left unset.
func (c Color) IsZero() bool { return !c.set }

// Hex makes a Color from a hex string, for scenes built in code.
func Hex(s string) Color {
	return Color{c: softpipe.Hex(s), set: true}
}

// Default returns the built-in scene.
func Default() (*Scene, error) {
	return Parse(defaultScene)
}

// Load reads a scene file. Relative paths inside it are resolved against
// the file's directory.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scene: read %s: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s.dir = filepath.Dir(path)
	return s, nil
}

// Parse decodes and validates a scene document.
func Parse(data []byte) (*Scene, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var s Scene
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmpty
		}
		return nil, fmt.Errorf("scene: parse: %w", err)
	}
	s.normalize()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Encode writes the scene as YAML.
func (s *Scene) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("scene: encode: %w", err)
	}
	return enc.Close()
}

func (s *Scene) normalize() {
	if s.Width == 0 {
		s.Width = DefaultWidth
	}
	if s.Height == 0 {
		s.Height = DefaultHeight
	}
	if !s.Background.set {
		s.Background = Hex("#000000")
	}
	for i := range s.Objects {
		o := &s.Objects[i]
		if o.Size == 0 {
			o.Size = 1
		}
		if o.Divisions == 0 {
			o.Divisions = 8
		}
		if o.Lat == 0 {
			o.Lat = 12
		}
		if o.Long == 0 {
			o.Long = 24
		}
		if o.Cull == "" {
			o.Cull = "back"
		}
	}
}

// Validate checks sizes and names before anything is drawn.
func (s *Scene) Validate() error {
	if s.Width < 0 || s.Height < 0 {
		return fmt.Errorf("scene: invalid size %dx%d", s.Width, s.Height)
	}
	if s.Near < 0 {
		return fmt.Errorf("scene: near plane %v is negative", s.Near)
	}
	for i := range s.Objects {
		o := &s.Objects[i]
		if _, ok := meshes[o.Mesh]; !ok {
			return fmt.Errorf("scene: object %s: unknown mesh %q", o.label(i), o.Mesh)
		}
		if o.Mesh == "obj" && o.Path == "" {
			return fmt.Errorf("scene: object %s: obj mesh needs a path", o.label(i))
		}
		if _, ok := effects[o.Effect]; !ok {
			return fmt.Errorf("scene: object %s: unknown effect %q", o.label(i), o.Effect)
		}
		if _, err := cullMode(o.Cull); err != nil {
			return fmt.Errorf("scene: object %s: %w", o.label(i), err)
		}
		if _, err := o.sampler(); err != nil {
			return fmt.Errorf("scene: object %s: %w", o.label(i), err)
		}
	}
	return nil
}

func (o *Object) label(i int) string {
	if o.Name != "" {
		return fmt.Sprintf("%d (%s)", i, o.Name)
	}
	return strconv.Itoa(i)
}

// rotation composes the object's rotations about x, y and z in that order.
func (o *Object) rotation() mgl64.Mat3 {
	rx := mgl64.Rotate3DX(mgl64.DegToRad(o.Rotation.X()))
	ry := mgl64.Rotate3DY(mgl64.DegToRad(o.Rotation.Y()))
	rz := mgl64.Rotate3DZ(mgl64.DegToRad(o.Rotation.Z()))
	return rz.Mul3(ry).Mul3(rx)
}

func cullMode(name string) (gputypes.CullMode, error) {
	switch name {
	case "back":
		return gputypes.CullModeBack, nil
	case "front":
		return gputypes.CullModeFront, nil
	case "none":
		return gputypes.CullModeNone, nil
	}
	return 0, fmt.Errorf("unknown cull mode %q", name)
}

// sampler builds the texture sampler named by Wrap and Filter.
func (o *Object) sampler() (gputypes.SamplerDescriptor, error) {
	d := gputypes.DefaultSamplerDescriptor()
	switch o.Wrap {
	case "", "clamp":
	case "repeat":
		d.AddressModeU, d.AddressModeV = gputypes.AddressModeRepeat, gputypes.AddressModeRepeat
	case "mirror":
		d.AddressModeU, d.AddressModeV = gputypes.AddressModeMirrorRepeat, gputypes.AddressModeMirrorRepeat
	default:
		return d, fmt.Errorf("unknown wrap mode %q", o.Wrap)
	}
	switch o.Filter {
	case "", "nearest":
	case "linear":
		d.MagFilter, d.MinFilter = gputypes.FilterModeLinear, gputypes.FilterModeLinear
	default:
		return d, fmt.Errorf("unknown filter %q", o.Filter)
	}
	return d, nil
}

// resolve makes p relative to the scene file.
func (s *Scene) resolve(p string) string {
	if p == "" || filepath.IsAbs(p) || s.dir == "" {
		return p
	}
	return filepath.Join(s.dir, p)
}
