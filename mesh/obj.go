package mesh

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/udhos/gwob"

	"github.com/gogpu/softpipe"
)

// OBJ load errors.
var (
	// ErrNoFaces is returned when a model contains no faces.
	ErrNoFaces = errors.New("mesh: model has no faces")

	// ErrBadIndex is returned when the parsed model refers to missing
	// vertex data.
	ErrBadIndex = errors.New("mesh: face index out of range")
)

// LoadOBJ reads a Wavefront OBJ model from path.
func LoadOBJ(path string) (List, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return List{}, &LoadError{Path: path, Err: err}
	}
	defer func() { _ = f.Close() }()

	return decodeOBJ(path, f)
}

// DecodeOBJ parses a Wavefront OBJ stream. Face corners may be written as
// v, v/vt, v//vn or v/vt/vn; polygons are split into triangles. Materials,
// groups and smoothing are ignored.
//
// OBJ faces wind counter-clockwise around their outward normal, the
// opposite of the pipeline's front-face rule, so every triangle is emitted
// with its last two corners swapped. Texture v is flipped so that v=0 is
// the top of the image.
func DecodeOBJ(r io.Reader) (List, error) {
	return decodeOBJ("", r)
}

func decodeOBJ(name string, r io.Reader) (List, error) {
	opts := &gwob.ObjParserOptions{
		LogStats: true,
		Logger: func(msg string) {
			softpipe.Logger().Debug("obj parser", "model", name, "msg", strings.TrimSpace(msg))
		},
	}
	o, err := gwob.NewObjFromStringReader(name, objLines{bufio.NewReader(r)}, opts)
	if err != nil {
		return List{}, &LoadError{Path: name, Err: err}
	}
	l, err := fromObj(o)
	if err != nil {
		return List{}, &LoadError{Path: name, Err: err}
	}
	return l, nil
}

// fromObj converts gwob's interleaved float32 vertex stream.
func fromObj(o *gwob.Obj) (List, error) {
	if len(o.Indices) == 0 {
		return List{}, ErrNoFaces
	}
	if len(o.Indices)%3 != 0 {
		return List{}, fmt.Errorf("%w: %d indices", softpipe.ErrIndexCount, len(o.Indices))
	}

	// strides and offsets are in bytes
	stride := o.StrideSize / 4
	if stride == 0 {
		return List{}, ErrNoFaces
	}
	pos := o.StrideOffsetPosition / 4
	tex := o.StrideOffsetTexture / 4
	nrm := o.StrideOffsetNormal / 4
	at := func(i int) float64 { return float64(o.Coord[i]) }

	n := len(o.Coord) / stride
	l := List{
		Vertices: make([]Vertex, n),
		Indices:  make([]int, len(o.Indices)),
	}
	for i := range l.Vertices {
		base := i * stride
		v := Vertex{Pos: mgl64.Vec3{at(base + pos), at(base + pos + 1), at(base + pos + 2)}}
		if o.TextCoordFound {
			v.TexCoord = mgl64.Vec2{at(base + tex), 1 - at(base+tex+1)}
		}
		if o.NormCoordFound {
			v.Normal = mgl64.Vec3{at(base + nrm), at(base + nrm + 1), at(base + nrm + 2)}
		}
		l.Vertices[i] = v
	}

	for i := 0; i < len(o.Indices); i += 3 {
		a, b, c := o.Indices[i], o.Indices[i+1], o.Indices[i+2]
		for _, x := range [3]int{a, b, c} {
			if x < 0 || x >= n {
				return List{}, fmt.Errorf("%w: %d of %d", ErrBadIndex, x, n)
			}
		}
		l.Indices[i], l.Indices[i+1], l.Indices[i+2] = a, c, b
	}
	return l, nil
}

// objLines feeds gwob one line at a time. A vt statement holding only u
// is given the default v of 0 before gwob sees it.
type objLines struct {
	r *bufio.Reader
}

func (l objLines) ReadString(delim byte) (string, error) {
	s, err := l.r.ReadString(delim)
	if f := strings.Fields(s); len(f) == 2 && f[0] == "vt" {
		s = "vt " + f[1] + " 0" + s[len(strings.TrimRight(s, "\r\n")):]
	}
	return s, err
}
