// Package render rasterizes simulation state into paletted frames and
// assembles them into the animated GIF artifact.
package render

import (
	"image"
	"image/color"

	"github.com/wormlab/nematode/components"
)

// View is the read-only agent state handed to the renderer each tick.
type View struct {
	ID            int                  `json:"id"`
	X             int                  `json:"x"`
	Y             int                  `json:"y"`
	Dir           components.Direction `json:"-"`
	Concentration float64              `json:"c"`
}

// FrameRenderer draws one tick of simulation state. Implementations must be
// deterministic given their inputs.
type FrameRenderer interface {
	RenderFrame(f FieldView, agents []View, danger []components.Position, tick int) (*image.Paletted, error)
}

// FieldView is the read-only grid surface the renderer needs.
type FieldView interface {
	Width() int
	Height() int
	At(x, y int) float64
}

// Palette layout: rampLevels field shades, then danger and agent colors.
const (
	rampLevels  = 64
	dangerIndex = rampLevels
	agentIndex  = rampLevels + 1
	headIndex   = rampLevels + 2
)

// Renderer is a CPU rasterizer drawing the field as a green intensity ramp
// with the agent marker and optional danger overlay on top.
type Renderer struct {
	cellSize int
	palette  color.Palette
}

// NewRenderer creates a renderer with the given cell size in pixels.
func NewRenderer(cellSize int) *Renderer {
	if cellSize < 1 {
		cellSize = 1
	}

	palette := make(color.Palette, 0, rampLevels+3)
	for i := 0; i < rampLevels; i++ {
		// Dark blue-green floor up to bright green at full concentration.
		t := float64(i) / float64(rampLevels-1)
		palette = append(palette, color.RGBA{
			R: uint8(10 + 30*t),
			G: uint8(30 + 210*t),
			B: uint8(40 + 40*t),
			A: 255,
		})
	}
	palette = append(palette,
		color.RGBA{R: 200, G: 40, B: 40, A: 255},   // danger
		color.RGBA{R: 245, G: 245, B: 245, A: 255}, // agent body
		color.RGBA{R: 255, G: 200, B: 60, A: 255},  // agent head
	)

	return &Renderer{cellSize: cellSize, palette: palette}
}

// RenderFrame rasterizes the field, danger overlay, and agent markers.
func (r *Renderer) RenderFrame(f FieldView, agents []View, danger []components.Position, tick int) (*image.Paletted, error) {
	w := f.Width() * r.cellSize
	h := f.Height() * r.cellSize
	img := image.NewPaletted(image.Rect(0, 0, w, h), r.palette)

	for cy := 0; cy < f.Height(); cy++ {
		for cx := 0; cx < f.Width(); cx++ {
			r.fillCell(img, cx, cy, rampIndex(f.At(cx, cy)))
		}
	}

	for _, d := range danger {
		r.fillCell(img, d.X, d.Y, dangerIndex)
	}

	for _, a := range agents {
		r.fillCell(img, a.X, a.Y, agentIndex)
		r.drawHead(img, a)
	}

	return img, nil
}

// fillCell paints one grid cell as a solid block.
func (r *Renderer) fillCell(img *image.Paletted, cx, cy int, idx int) {
	x0 := cx * r.cellSize
	y0 := cy * r.cellSize
	for y := y0; y < y0+r.cellSize; y++ {
		for x := x0; x < x0+r.cellSize; x++ {
			img.SetColorIndex(x, y, uint8(idx))
		}
	}
}

// drawHead marks the heading edge of the agent's cell.
func (r *Renderer) drawHead(img *image.Paletted, a View) {
	if r.cellSize < 3 {
		return
	}
	x0 := a.X * r.cellSize
	y0 := a.Y * r.cellSize
	last := r.cellSize - 1

	switch a.Dir {
	case components.Up:
		for x := x0; x <= x0+last; x++ {
			img.SetColorIndex(x, y0, headIndex)
		}
	case components.Down:
		for x := x0; x <= x0+last; x++ {
			img.SetColorIndex(x, y0+last, headIndex)
		}
	case components.Left:
		for y := y0; y <= y0+last; y++ {
			img.SetColorIndex(x0, y, headIndex)
		}
	case components.Right:
		for y := y0; y <= y0+last; y++ {
			img.SetColorIndex(x0+last, y, headIndex)
		}
	}
}

// rampIndex maps a concentration in [0,1] to a palette ramp index.
func rampIndex(v float64) int {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	i := int(v * float64(rampLevels-1))
	return i
}

// Stub is a test renderer returning a fixed-size blank frame keyed by tick.
type Stub struct {
	Calls int
}

// RenderFrame returns a 1x1 frame whose sole pixel index is tick%2.
func (s *Stub) RenderFrame(_ FieldView, _ []View, _ []components.Position, tick int) (*image.Paletted, error) {
	s.Calls++
	img := image.NewPaletted(image.Rect(0, 0, 1, 1), color.Palette{
		color.RGBA{A: 255},
		color.RGBA{R: 255, G: 255, B: 255, A: 255},
	})
	img.SetColorIndex(0, 0, uint8(tick%2))
	return img, nil
}
