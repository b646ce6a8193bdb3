package circuit

import "errors"

// ErrInvalidEnvironment is returned when the 1D environment is empty.
var ErrInvalidEnvironment = errors.New("circuit: environment size must be positive")

// Avoidance is a 1D worm walk driven by ASH activity: the worm creeps
// forward until it hits the noxious stimulus, which charges ASH past its
// firing threshold and triggers a one-cell reversal.
type Avoidance struct {
	Threshold   float64 // ASH firing threshold
	EnvSize     int     // 1D environment length in cells
	StimulusPos int     // Noxious stimulus position

	pos      int
	activity float64
}

// NewAvoidance creates the avoidance walk with the worm at cell 0.
func NewAvoidance(envSize, stimulusPos int) (*Avoidance, error) {
	if envSize <= 0 {
		return nil, ErrInvalidEnvironment
	}
	return &Avoidance{
		Threshold:   1.0,
		EnvSize:     envSize,
		StimulusPos: stimulusPos,
	}, nil
}

// Position returns the worm's current cell.
func (a *Avoidance) Position() int { return a.pos }

// Activity returns the current ASH activity level.
func (a *Avoidance) Activity() float64 { return a.activity }

// Step advances one tick: stimulus contact charges ASH, firing reverses the
// worm one cell, otherwise it moves forward. Position clamps to the
// environment bounds.
func (a *Avoidance) Step() {
	if a.pos == a.StimulusPos {
		a.activity += 2.0
	}

	if a.activity >= a.Threshold {
		a.activity = 0
		a.pos--
	} else {
		a.pos++
	}

	if a.pos < 0 {
		a.pos = 0
	}
	if a.pos > a.EnvSize-1 {
		a.pos = a.EnvSize - 1
	}
}

// Run records the position at each of the given ticks, sampling before the
// step like the position trace the plot shows.
func (a *Avoidance) Run(steps int) []int {
	positions := make([]int, 0, steps)
	for t := 0; t < steps; t++ {
		positions = append(positions, a.pos)
		a.Step()
	}
	return positions
}
