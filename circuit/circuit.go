// Package circuit models a minimal sensory circuit: named neurons with
// scalar activity and explicit downstream connections. Circuits are built
// explicitly by callers; there is no package-level state.
package circuit

import "fmt"

// Neuron holds a named scalar activity level.
type Neuron struct {
	Name  string
	State float64
}

// Circuit is a directed graph of neurons.
type Circuit struct {
	name        string
	neurons     map[string]*Neuron
	connections map[string][]*Neuron
}

// New creates an empty named circuit.
func New(name string) *Circuit {
	return &Circuit{
		name:        name,
		neurons:     make(map[string]*Neuron),
		connections: make(map[string][]*Neuron),
	}
}

// Name returns the circuit name.
func (c *Circuit) Name() string { return c.name }

// AddNeuron registers a neuron. Re-adding a name replaces the reference.
func (c *Circuit) AddNeuron(n *Neuron) {
	c.neurons[n.Name] = n
}

// Neuron returns the registered neuron by name, or nil.
func (c *Circuit) Neuron(name string) *Neuron {
	return c.neurons[name]
}

// Connect wires a downstream edge. Both neurons must be registered.
func (c *Circuit) Connect(from, to string) error {
	src, ok := c.neurons[from]
	if !ok {
		return fmt.Errorf("circuit: unknown neuron %q", from)
	}
	dst, ok := c.neurons[to]
	if !ok {
		return fmt.Errorf("circuit: unknown neuron %q", to)
	}
	c.connections[src.Name] = append(c.connections[src.Name], dst)
	return nil
}

// Downstream returns the neurons wired downstream of the given one.
func (c *Circuit) Downstream(name string) []*Neuron {
	return c.connections[name]
}

// Activate adds input to a neuron's state.
func (c *Circuit) Activate(name string, input float64) error {
	n, ok := c.neurons[name]
	if !ok {
		return fmt.Errorf("circuit: unknown neuron %q", name)
	}
	n.State += input
	return nil
}

// Propagate adds the source neuron's state to every downstream neuron.
func (c *Circuit) Propagate(name string) error {
	n, ok := c.neurons[name]
	if !ok {
		return fmt.Errorf("circuit: unknown neuron %q", name)
	}
	for _, dst := range c.connections[name] {
		dst.State += n.State
	}
	return nil
}

// Step activates the source by one unit and propagates downstream, the basic
// tick of the avoidance circuit.
func (c *Circuit) Step(source string) error {
	if err := c.Activate(source, 1); err != nil {
		return err
	}
	return c.Propagate(source)
}

// NewASH builds the ASH avoidance circuit: the ASH sensory neuron wired to
// the AVB, AVA, AVD and AVE command interneurons.
func NewASH() *Circuit {
	c := New("ash-avoidance")
	for _, name := range []string{"ASH", "AVB", "AVA", "AVD", "AVE"} {
		c.AddNeuron(&Neuron{Name: name})
	}
	for _, dst := range []string{"AVB", "AVA", "AVD", "AVE"} {
		// Connections between registered neurons cannot fail.
		_ = c.Connect("ASH", dst)
	}
	return c
}
