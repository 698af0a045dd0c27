package render

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"github.com/cwbudde/algo-interference/sweep"
)

// Heatmap draws m with one pixel per estimate. Green carries
// round(Intensity·255); the source pixels in row 0 get a full blue
// channel. NaN estimates stay black.
func Heatmap(m *sweep.Map) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, m.Width, m.Height))

	for r := range m.Height {
		for c := range m.Width {
			g := uint8(0)
			if v := sweep.Intensity(m.At(r, c)); !math.IsNaN(v) {
				g = uint8(math.Round(v * 255))
			}
			img.SetRGBA(c, r, color.RGBA{G: g, A: 0xff})
		}
	}

	for _, px := range m.Spec.SourcePixels() {
		if px.Row >= m.Height {
			continue
		}
		c := img.RGBAAt(px.Col, px.Row)
		c.B = 0xff
		img.SetRGBA(px.Col, px.Row, c)
	}

	return img
}

// WriteHeatmap encodes the heatmap of m to w as PNG.
func WriteHeatmap(w io.Writer, m *sweep.Map) error {
	return png.Encode(w, Heatmap(m))
}
