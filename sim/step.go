package sim

import (
	"github.com/wormlab/nematode/components"
	"github.com/wormlab/nematode/field"
	"github.com/wormlab/nematode/render"
)

// stepDirs is the candidate order: west, east, north, south.
var stepDirs = [4]components.Direction{
	components.Left,
	components.Right,
	components.Up,
	components.Down,
}

// WeightFunc scores the four neighbor candidates of an agent. A nil
// WeightFunc means uniform choice. Weights must be non-negative; an all-zero
// result falls back to uniform.
type WeightFunc func(f *field.Field, from components.Position, candidates [4]components.Position) [4]float64

// Uniform is the default weighting: every candidate equally likely.
func Uniform(_ *field.Field, _ components.Position, _ [4]components.Position) [4]float64 {
	return [4]float64{1, 1, 1, 1}
}

// Candidates returns the four axis-aligned neighbors of p in candidate order.
// Out-of-bounds cells are not filtered; the step clamps after choosing.
func Candidates(p components.Position) [4]components.Position {
	var out [4]components.Position
	for i, d := range stepDirs {
		dx, dy := d.Delta()
		out[i] = components.Position{X: p.X + dx, Y: p.Y + dy}
	}
	return out
}

// stepAgents advances every agent by one biased-random step, clamped to the
// grid, and refreshes its sampled concentration.
func (s *Simulation) stepAgents() {
	w := s.sample.Width()
	h := s.sample.Height()

	query := s.agentFilter.Query()
	for query.Next() {
		pos, head, chemo := query.Get()

		candidates := Candidates(*pos)
		i := s.choose(*pos, candidates)

		// Clamp per axis: an out-of-bounds neighbor collapses onto the
		// boundary cell rather than being excluded from the choice set.
		pos.X = clamp(candidates[i].X, 0, w-1)
		pos.Y = clamp(candidates[i].Y, 0, h-1)
		head.Dir = stepDirs[i]
		chemo.Prev = s.sample.At(pos.X, pos.Y)
	}
}

// choose picks a candidate index. The uniform path consumes exactly one
// Intn(4) per agent per tick, which is the contract replayed by tests.
func (s *Simulation) choose(from components.Position, candidates [4]components.Position) int {
	if s.weight == nil {
		return s.rng.Intn(4)
	}

	weights := s.weight(s.sample, from, candidates)
	var total float64
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return s.rng.Intn(4)
	}

	r := s.rng.Float64() * total
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		r -= w
		if r < 0 {
			return i
		}
	}
	return 3
}

// InFront returns the cell one step ahead of the agent's heading, unclamped.
// Purely informational; stepping never consults it.
func InFront(v render.View) components.Position {
	dx, dy := v.Dir.Delta()
	return components.Position{X: v.X + dx, Y: v.Y + dy}
}

// Collides reports whether the cell in front of views[i] coincides with
// another agent's position. Computed for inspection only; it does not affect
// movement.
func Collides(views []render.View, i int) bool {
	front := InFront(views[i])
	for j, other := range views {
		if j == i {
			continue
		}
		if other.X == front.X && other.Y == front.Y {
			return true
		}
	}
	return false
}
