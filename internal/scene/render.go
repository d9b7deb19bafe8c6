package scene

import (
	"fmt"
	"image"

	"github.com/gogpu/softpipe"
	"github.com/gogpu/softpipe/effect"
	"github.com/gogpu/softpipe/internal/cache"
	"github.com/gogpu/softpipe/mesh"
	"github.com/gogpu/softpipe/texture"
)

// meshes builds the geometry named by Object.Mesh. Size is the cube edge,
// the plane side and the sphere diameter.
var meshes = map[string]func(r *renderer, o *Object) (mesh.List, error){
	"cube":         func(_ *renderer, o *Object) (mesh.List, error) { return mesh.Cube(o.Size), nil },
	"skinned-cube": func(_ *renderer, o *Object) (mesh.List, error) { return mesh.SkinnedCube(o.Size), nil },
	"cube-faces":   func(_ *renderer, o *Object) (mesh.List, error) { return mesh.CubeIndependentFaces(o.Size), nil },
	"plane":        func(_ *renderer, o *Object) (mesh.List, error) { return mesh.Plane(o.Divisions, o.Size), nil },
	"skinned-plane": func(_ *renderer, o *Object) (mesh.List, error) {
		return mesh.SkinnedPlane(o.Divisions, o.Size), nil
	},
	"sphere": func(_ *renderer, o *Object) (mesh.List, error) {
		return mesh.SphereNormals(o.Size/2, o.Lat, o.Long), nil
	},
	"obj": func(r *renderer, o *Object) (mesh.List, error) {
		path := r.s.resolve(o.Path)
		return r.assets.models.GetOrLoad(path, func() (mesh.List, error) { return mesh.LoadOBJ(path) })
	},
}

// effects draws one object with the effect named by Object.Effect.
var effects = map[string]func(r *renderer, o *Object, l mesh.List) (softpipe.Stats, error){
	"texture":        drawTexture,
	"wave":           drawWave,
	"solid":          drawSolid,
	"vertex-color":   drawVertexColor,
	"solid-geometry": drawSolidGeometry,
	"flat":           drawFlat,
	"phong":          drawPhong,
}

var palette = []softpipe.RGBA{
	softpipe.Red, softpipe.Green, softpipe.Blue,
	softpipe.Yellow, softpipe.Cyan, softpipe.Magenta,
}

// Assets caches decoded textures and models across renders. The zero
// value is not usable; call NewAssets.
type Assets struct {
	textures *cache.Cache[*texture.Texture]
	models   *cache.Cache[mesh.List]
}

// NewAssets creates caches holding about limit entries each.
func NewAssets(limit int) *Assets {
	return &Assets{
		textures: cache.New[*texture.Texture](limit),
		models:   cache.New[mesh.List](limit),
	}
}

// Stats returns the texture and model cache counters.
func (a *Assets) Stats() (textures, models cache.Stats) {
	return a.textures.Stats(), a.models.Stats()
}

// Render draws every object in order onto a new pixmap cleared to the
// background color. There is no depth buffer: each pass overwrites the
// pixels it covers.
func (s *Scene) Render() (*softpipe.Pixmap, error) {
	return s.RenderWith(NewAssets(0))
}

// RenderWith is Render with files loaded through a, which may be shared
// between concurrent renders.
func (s *Scene) RenderWith(a *Assets) (*softpipe.Pixmap, error) {
	s.normalize()
	if err := s.Validate(); err != nil {
		return nil, err
	}

	pm := softpipe.NewPixmap(s.Width, s.Height)
	pm.Clear(s.Background.Value())
	r := &renderer{s: s, pm: pm, assets: a}

	total := 0
	for i := range s.Objects {
		o := &s.Objects[i]
		l, err := meshes[o.Mesh](r, o)
		if err != nil {
			return nil, fmt.Errorf("scene: object %s: %w", o.label(i), err)
		}
		st, err := effects[o.Effect](r, o, l)
		if err != nil {
			return nil, fmt.Errorf("scene: object %s: %w", o.label(i), err)
		}
		total += st.Pixels
		softpipe.Logger().Debug("pass drawn",
			"object", o.label(i),
			"mesh", o.Mesh,
			"effect", o.Effect,
			"triangles", st.Triangles,
			"culled", st.Culled,
			"pixels", st.Pixels)
	}

	softpipe.Logger().Info("scene rendered",
		"width", s.Width, "height", s.Height,
		"passes", len(s.Objects), "pixels", total)
	return pm, nil
}

type renderer struct {
	s      *Scene
	pm     *softpipe.Pixmap
	assets *Assets
}

// pass runs one pipeline over l with the object's transform and cull mode.
func pass[V any, O softpipe.Positioner, P softpipe.Attribute[P]](r *renderer, o *Object, eff softpipe.Effect[V, O, P], l softpipe.IndexedTriangleList[V], setup func(*softpipe.Pipeline[V, O, P]) error) (softpipe.Stats, error) {
	cull, err := cullMode(o.Cull)
	if err != nil {
		return softpipe.Stats{}, err
	}
	opts := []softpipe.Option{softpipe.WithCullMode(cull)}
	if r.s.Near > 0 {
		opts = append(opts, softpipe.WithNearClip(r.s.Near))
	}

	p, err := softpipe.NewPipeline(r.pm, eff, opts...)
	if err != nil {
		return softpipe.Stats{}, err
	}
	p.BindRotation(o.rotation())
	p.BindTranslation(o.Translation)
	if setup != nil {
		if err := setup(p); err != nil {
			return softpipe.Stats{}, err
		}
	}
	if err := p.DrawList(l); err != nil {
		return softpipe.Stats{}, err
	}
	return p.Stats(), nil
}

type textureBinder interface {
	BindTextureImage(tex *texture.Texture)
}

// bindTexture loads the object's texture, or a checkerboard of its first
// two colors when none is named, and applies the object's sampler.
func (r *renderer) bindTexture(p textureBinder, o *Object) error {
	d, err := o.sampler()
	if err != nil {
		return err
	}
	if o.Texture != "" {
		path := r.s.resolve(o.Texture)
		tex, err := r.assets.textures.GetOrLoad(path, func() (*texture.Texture, error) {
			return texture.Load(path)
		})
		if err != nil {
			return err
		}
		p.BindTextureImage(tex.WithSampler(d))
		return nil
	}
	cs := o.colors(softpipe.White, softpipe.Black)
	tex, err := checker(8, cs[0], cs[len(cs)-1])
	if err != nil {
		return err
	}
	p.BindTextureImage(tex.WithSampler(d))
	return nil
}

func checker(n int, a, b softpipe.RGBA) (*texture.Texture, error) {
	img := image.NewNRGBA(image.Rect(0, 0, n, n))
	ca, cb := a.NRGBA(), b.NRGBA()
	for y := range n {
		for x := range n {
			c := ca
			if (x+y)%2 == 1 {
				c = cb
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return texture.FromImage(img)
}

// colors returns the object's colors, or def when it lists none.
func (o *Object) colors(def ...softpipe.RGBA) []softpipe.RGBA {
	if len(o.Colors) == 0 {
		return def
	}
	out := make([]softpipe.RGBA, len(o.Colors))
	for i, c := range o.Colors {
		out[i] = c.Value()
	}
	return out
}

func drawTexture(r *renderer, o *Object, l mesh.List) (softpipe.Stats, error) {
	eff := effect.NewTexture()
	return pass(r, o, eff.Effect(), mesh.Convert(l, effect.TexVertexFrom),
		func(p *softpipe.Pipeline[effect.TexVertex, effect.TexVertex, effect.TexVertex]) error {
			return r.bindTexture(p, o)
		})
}

func drawWave(r *renderer, o *Object, l mesh.List) (softpipe.Stats, error) {
	eff := effect.NewWave()
	eff.SetTime(o.Time)
	return pass(r, o, eff.Effect(), mesh.Convert(l, effect.TexVertexFrom),
		func(p *softpipe.Pipeline[effect.TexVertex, effect.TexVertex, effect.TexVertex]) error {
			return r.bindTexture(p, o)
		})
}

// drawSolid cycles the object's colors over its vertices.
func drawSolid(r *renderer, o *Object, l mesh.List) (softpipe.Stats, error) {
	cs := o.colors(softpipe.White)
	sl := mesh.Convert(l, func(v mesh.Vertex) effect.SolidVertex {
		return effect.SolidVertex{Position: v.Pos}
	})
	for i := range sl.Vertices {
		sl.Vertices[i].Color = cs[i%len(cs)]
	}
	return pass(r, o, effect.NewSolid().Effect(), sl, nil)
}

// drawVertexColor cycles the object's colors over its vertices.
func drawVertexColor(r *renderer, o *Object, l mesh.List) (softpipe.Stats, error) {
	cs := o.colors(palette...)
	cl := mesh.Convert(l, func(v mesh.Vertex) effect.ColorVertex {
		return effect.ColorVertex{Position: v.Pos}
	})
	for i := range cl.Vertices {
		cl.Vertices[i].Color = cs[i%len(cs)]
	}
	return pass(r, o, effect.NewVertexColor().Effect(), cl, nil)
}

// drawSolidGeometry binds the object's colors as the per-pair table. Without
// colors the palette is repeated to cover the mesh.
func drawSolidGeometry(r *renderer, o *Object, l mesh.List) (softpipe.Stats, error) {
	pl := mesh.Positions(l)
	n := pl.PrimitiveCount()

	cs := o.colors()
	if cs == nil {
		cs = make([]softpipe.RGBA, (n+1)/2)
		for i := range cs {
			cs[i] = palette[i%len(palette)]
		}
	}

	g := effect.NewSolidGeometry()
	if err := g.BindColors(cs, n); err != nil {
		return softpipe.Stats{}, err
	}
	return pass(r, o, g.Effect(), pl, nil)
}

func drawFlat(r *renderer, o *Object, l mesh.List) (softpipe.Stats, error) {
	f := effect.NewVertexFlat()
	if d := r.s.Light.Direction; d != nil {
		if err := f.SetLightDirection(*d); err != nil {
			return softpipe.Stats{}, err
		}
	}
	if len(o.Colors) > 0 {
		f.Material = o.Colors[0].Value()
	}
	return pass(r, o, f.Effect(), mesh.Convert(l, effect.NormalVertexFrom), nil)
}

func drawPhong(r *renderer, o *Object, l mesh.List) (softpipe.Stats, error) {
	ph := effect.NewSpecularPhongPoint()
	if pos := r.s.Light.Position; pos != nil {
		ph.Light.Position = *pos
	}
	if len(o.Colors) > 0 {
		ph.Material = o.Colors[0].Value()
	}
	return pass(r, o, ph.Effect(), mesh.Convert(l, effect.NormalVertexFrom), nil)
}
