// Package field builds the immutable 2D concentration grids the simulation
// reads during stepping.
package field

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidDimension is returned when a field is constructed with a
// non-positive width or height.
var ErrInvalidDimension = errors.New("field: width and height must be positive")

// Kind selects which concentration grid an agent samples.
type Kind uint8

const (
	Nutrient Kind = iota
	Repellent
	Zero
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case Nutrient:
		return "nutrient"
	case Repellent:
		return "repellent"
	case Zero:
		return "zero"
	}
	return "unknown"
}

// ParseKind maps a config variant name to a Kind.
func ParseKind(name string) (Kind, error) {
	switch name {
	case "nutrient", "gradient":
		return Nutrient, nil
	case "repellent":
		return Repellent, nil
	case "zero":
		return Zero, nil
	}
	return Zero, fmt.Errorf("field: unknown variant %q", name)
}

// Field is a fixed-size concentration grid with values in [0,1].
// Dimensions and values are immutable after construction; stepping only reads.
type Field struct {
	w, h  int
	cells []float64
}

// NewZero creates an all-zero w x h field.
func NewZero(w, h int) (*Field, error) {
	if w <= 0 || h <= 0 {
		return nil, ErrInvalidDimension
	}
	return &Field{w: w, h: h, cells: make([]float64, w*h)}, nil
}

// NewGradientPair creates the nutrient field and its repellent complement.
// Nutrient decays exponentially with Euclidean distance from the grid
// midpoint: nutrient = exp(-distance/decayLength), repellent = 1 - nutrient.
func NewGradientPair(w, h int, decayLength float64) (nutrient, repellent *Field, err error) {
	if w <= 0 || h <= 0 {
		return nil, nil, ErrInvalidDimension
	}
	if decayLength <= 0 {
		return nil, nil, fmt.Errorf("field: decay length must be positive, got %f", decayLength)
	}

	nutrient = &Field{w: w, h: h, cells: make([]float64, w*h)}
	repellent = &Field{w: w, h: h, cells: make([]float64, w*h)}

	cx := float64(w / 2)
	cy := float64(h / 2)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dx := float64(x) - cx
			dy := float64(y) - cy
			dist := math.Sqrt(dx*dx + dy*dy)

			n := math.Exp(-dist / decayLength)
			i := y*w + x
			nutrient.cells[i] = n
			repellent.cells[i] = 1 - n
		}
	}

	return nutrient, repellent, nil
}

// Width returns the grid width in cells.
func (f *Field) Width() int { return f.w }

// Height returns the grid height in cells.
func (f *Field) Height() int { return f.h }

// At returns the concentration at cell (x, y). Coordinates must be in bounds.
func (f *Field) At(x, y int) float64 {
	return f.cells[y*f.w+x]
}

// Cells returns the backing grid for visualization, indexed y*Width()+x.
// Callers must treat the slice as read-only.
func (f *Field) Cells() []float64 {
	return f.cells
}
