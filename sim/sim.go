// Package sim owns the simulation driver: it holds the concentration fields
// and the agent population, advances every agent once per tick, and hands
// each tick's state to the renderer and telemetry.
package sim

import (
	"context"
	"errors"
	"fmt"
	"image"
	"math/rand"
	"os"

	"github.com/mlange-42/ark/ecs"

	"github.com/wormlab/nematode/components"
	"github.com/wormlab/nematode/config"
	"github.com/wormlab/nematode/field"
	"github.com/wormlab/nematode/render"
	"github.com/wormlab/nematode/telemetry"
)

// Driver error taxonomy. Render and encode failures are fatal and abort the
// run without retry.
var (
	ErrAlreadyRun = errors.New("sim: run already started")
	ErrRender     = errors.New("sim: render failed")
	ErrEncode     = errors.New("sim: encode failed")
)

// State is the driver lifecycle state.
type State uint8

const (
	Idle State = iota
	Running
	Done
)

// String returns the lowercase name of the state.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Done:
		return "done"
	}
	return "unknown"
}

// TickState is the per-tick snapshot handed to hooks and the live view.
type TickState struct {
	Tick   int           `json:"tick"`
	Agents []render.View `json:"agents"`
}

// Options configures a simulation run beyond what the config file carries.
type Options struct {
	Seed     int64                 // RNG seed; caller resolves 0 to a time-based seed
	Starts   []components.Position // Explicit agent starts (default: uniform random)
	Weight   WeightFunc            // Neighbor weighting (default: uniform)
	Renderer render.FrameRenderer  // nil = headless, no frames collected
	Output   string                // GIF path written on completion ("" = skip)
	FPS      int                   // Animation frame rate (used when Output is set)

	Collector *telemetry.Collector // Optional per-tick position tracking
	OnTick    func(TickState)      // Optional per-tick hook (live view)
}

// Simulation drives one run: Idle until Run is called, Running while ticking,
// Done once the configured tick count is exhausted.
type Simulation struct {
	world *ecs.World
	rng   *rand.Rand

	agentMapper *ecs.Map3[components.Position, components.Heading, components.Chemo]
	agentFilter *ecs.Filter3[components.Position, components.Heading, components.Chemo]

	// sample is the grid agents read; resolved from the config variant at
	// construction time.
	sample *field.Field
	kind   field.Kind

	// Decorative danger cells; never consulted by stepping.
	danger []components.Position

	weight    WeightFunc
	renderer  render.FrameRenderer
	collector *telemetry.Collector
	onTick    func(TickState)

	timeSteps int
	output    string
	fps       int

	state  State
	tick   int
	frames []*image.Paletted
}

// New builds a simulation from config: fields, agents, and danger markers.
// Agent starts are uniform random unless opts.Starts pins them.
func New(cfg *config.Config, opts Options) (*Simulation, error) {
	kind, err := field.ParseKind(cfg.Field.Variant)
	if err != nil {
		return nil, err
	}

	var sample *field.Field
	switch kind {
	case field.Zero:
		sample, err = field.NewZero(cfg.Grid.Width, cfg.Grid.Height)
	default:
		var nutrient, repellent *field.Field
		nutrient, repellent, err = field.NewGradientPair(cfg.Grid.Width, cfg.Grid.Height, cfg.Field.DecayLength)
		if kind == field.Repellent {
			sample = repellent
		} else {
			sample = nutrient
		}
	}
	if err != nil {
		return nil, err
	}

	world := ecs.NewWorld()
	s := &Simulation{
		world:       world,
		rng:         rand.New(rand.NewSource(opts.Seed)),
		sample:      sample,
		kind:        kind,
		weight:      opts.Weight,
		renderer:    opts.Renderer,
		collector:   opts.Collector,
		onTick:      opts.OnTick,
		timeSteps:   cfg.Run.TimeSteps,
		output:      opts.Output,
		fps:         opts.FPS,
		state:       Idle,
	}
	s.agentMapper = ecs.NewMap3[components.Position, components.Heading, components.Chemo](world)
	s.agentFilter = ecs.NewFilter3[components.Position, components.Heading, components.Chemo](world)

	count := cfg.Agents.Count
	if count < 1 {
		count = 1
	}
	for i := 0; i < count; i++ {
		var pos components.Position
		if i < len(opts.Starts) {
			pos = opts.Starts[i]
			pos.X = clamp(pos.X, 0, sample.Width()-1)
			pos.Y = clamp(pos.Y, 0, sample.Height()-1)
		} else {
			pos = components.Position{X: s.rng.Intn(sample.Width()), Y: s.rng.Intn(sample.Height())}
		}
		head := components.Heading{Dir: components.Up}
		chemo := components.Chemo{Prev: sample.At(pos.X, pos.Y)}
		s.agentMapper.NewEntity(&pos, &head, &chemo)
	}

	// Danger markers draw from a derived stream so enabling them does not
	// perturb the walk for a given seed.
	dangerRng := rand.New(rand.NewSource(opts.Seed + 1))
	for i := 0; i < cfg.Danger.Count; i++ {
		s.danger = append(s.danger, components.Position{
			X: dangerRng.Intn(sample.Width()),
			Y: dangerRng.Intn(sample.Height()),
		})
	}

	return s, nil
}

// Run executes the configured number of ticks. Renderer and encoder failures
// propagate immediately; ctx cancellation is checked once per tick.
func (s *Simulation) Run(ctx context.Context) error {
	if s.state != Idle {
		return ErrAlreadyRun
	}
	s.state = Running

	for t := 0; t < s.timeSteps; t++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		s.tick = t + 1
		s.stepAgents()

		views := s.Views()
		if s.renderer != nil {
			frame, err := s.renderer.RenderFrame(s.sample, views, s.danger, s.tick)
			if err != nil {
				return fmt.Errorf("%w: tick %d: %w", ErrRender, s.tick, err)
			}
			s.frames = append(s.frames, frame)
		}
		if s.collector != nil {
			s.collector.Record(s.tick, views)
		}
		if s.onTick != nil {
			s.onTick(TickState{Tick: s.tick, Agents: views})
		}
	}

	s.state = Done
	return s.finalize()
}

// finalize encodes the accumulated frames once the run is done.
func (s *Simulation) finalize() error {
	if s.output == "" || len(s.frames) == 0 {
		return nil
	}
	f, err := os.Create(s.output)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncode, err)
	}
	defer f.Close()
	if err := render.EncodeGIF(f, s.frames, s.fps); err != nil {
		return fmt.Errorf("%w: %w", ErrEncode, err)
	}
	return nil
}

// Views returns the current agent states in spawn order.
func (s *Simulation) Views() []render.View {
	var views []render.View
	query := s.agentFilter.Query()
	for query.Next() {
		pos, head, chemo := query.Get()
		views = append(views, render.View{
			ID:            len(views),
			X:             pos.X,
			Y:             pos.Y,
			Dir:           head.Dir,
			Concentration: chemo.Prev,
		})
	}
	return views
}

// State returns the driver lifecycle state.
func (s *Simulation) State() State { return s.state }

// Tick returns the number of completed ticks.
func (s *Simulation) Tick() int { return s.tick }

// Frames returns the rendered frame sequence accumulated so far.
func (s *Simulation) Frames() []*image.Paletted { return s.frames }

// Field returns the grid agents sample.
func (s *Simulation) Field() *field.Field { return s.sample }

// Kind returns which concentration variant agents sample.
func (s *Simulation) Kind() field.Kind { return s.kind }

// Danger returns the decorative danger cells.
func (s *Simulation) Danger() []components.Position { return s.danger }

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
