package effect

import (
	"fmt"

	"github.com/gogpu/softpipe"
)

// SolidGeometry colors triangles in the geometry stage. Each consecutive
// pair of triangles in the index stream shares one table entry, which
// paints the quads of meshes like the cube in single colors.
type SolidGeometry struct {
	colors []softpipe.RGBA
}

// NewSolidGeometry creates the effect with an empty color table.
func NewSolidGeometry() *SolidGeometry { return &SolidGeometry{} }

// BindColors replaces the color table. primitiveCount is the number of
// triangles the table will be drawn with; a table that cannot cover them
// is rejected and the previous table kept.
func (g *SolidGeometry) BindColors(colors []softpipe.RGBA, primitiveCount int) error {
	if err := checkTable(len(colors), primitiveCount); err != nil {
		return err
	}
	g.colors = append(g.colors[:0], colors...)
	return nil
}

// Colors returns the bound table.
func (g *SolidGeometry) Colors() []softpipe.RGBA { return g.colors }

// CheckPrimitives implements softpipe.PrimitiveChecker.
func (g *SolidGeometry) CheckPrimitives(count int) error {
	return checkTable(len(g.colors), count)
}

func checkTable(have, primitives int) error {
	need := (primitives + 1) / 2
	if have < need {
		return fmt.Errorf("%w: %d colors for %d primitives, need %d", softpipe.ErrColorTable, have, primitives, need)
	}
	return nil
}

// ShadeGeometry implements softpipe.GeometryShader.
func (g *SolidGeometry) ShadeGeometry(_ *softpipe.Bindings, v0, v1, v2 softpipe.Position, primitive int) softpipe.Triangle[SolidVertex] {
	c := g.colors[primitive/2]
	return softpipe.Triangle[SolidVertex]{
		V0: SolidVertex{Position: v0.Pos(), Color: c},
		V1: SolidVertex{Position: v1.Pos(), Color: c},
		V2: SolidVertex{Position: v2.Pos(), Color: c},
	}
}

// ShadePixel implements softpipe.PixelShader.
func (*SolidGeometry) ShadePixel(_ *softpipe.Bindings, in SolidVertex) softpipe.RGBA {
	return in.Color
}

// Effect returns the stages.
func (g *SolidGeometry) Effect() softpipe.Effect[softpipe.Position, softpipe.Position, SolidVertex] {
	return softpipe.NewGeometryEffect[softpipe.Position, softpipe.Position, SolidVertex](
		softpipe.DefaultVertexShader[softpipe.Position]{}, g, g)
}
