package effect

import (
	"math"

	"github.com/gogpu/softpipe"
)

// Wave displaces a textured surface along y with a sine wave travelling
// in x: y += Amplitude * sin(time*ScrollFreq + x*WaveFreq), evaluated
// after rotation and translation.
type Wave struct {
	time float64

	WaveFreq   float64
	ScrollFreq float64
	Amplitude  float64
}

// NewWave creates the effect at time zero.
func NewWave() *Wave {
	return &Wave{
		WaveFreq:   10,
		ScrollFreq: 10,
		Amplitude:  0.06,
	}
}

// SetTime sets the animation time in seconds.
func (w *Wave) SetTime(t float64) { w.time = t }

// Time returns the animation time.
func (w *Wave) Time() float64 { return w.time }

// ShadeVertex implements softpipe.VertexShader.
func (w *Wave) ShadeVertex(b *softpipe.Bindings, in TexVertex) TexVertex {
	pos := b.Transform(in.Position)
	pos[1] += w.Amplitude * math.Sin(w.time*w.ScrollFreq+pos.X()*w.WaveFreq)
	return TexVertex{Position: pos, UV: in.UV}
}

// ShadePixel implements softpipe.PixelShader.
func (*Wave) ShadePixel(b *softpipe.Bindings, in TexVertex) softpipe.RGBA {
	return b.Sample(in.UV)
}

// SamplesTexture reports that drawing needs a bound texture.
func (*Wave) SamplesTexture() bool { return true }

// Effect returns the stages.
func (w *Wave) Effect() softpipe.Effect[TexVertex, TexVertex, TexVertex] {
	return softpipe.NewEffect[TexVertex, TexVertex](w, w)
}
