// Package components defines ECS components for the simulation.
package components

// Direction is a cardinal facing on the grid.
type Direction uint8

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Delta returns the cell offset one step along the direction.
// Up decreases y, matching the renderer's top-left origin.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case Up:
		return 0, -1
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	}
	return 0, 0
}

// String returns the lowercase name of the direction.
func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return "unknown"
}

// Position is an entity's cell coordinate, always within grid bounds.
type Position struct {
	X, Y int
}

// Heading is an entity's facing, updated to the direction of its last step.
type Heading struct {
	Dir Direction
}

// Chemo caches the concentration sampled at the entity's position on its
// last step. Informational only; never fed back into movement.
type Chemo struct {
	Prev float64
}
