// Package telemetry records per-tick agent tracks and run summaries.
package telemetry

import (
	"github.com/wormlab/nematode/render"
)

// TickRecord is one agent's state at one tick, as written to track.csv.
type TickRecord struct {
	Tick          int     `csv:"tick"`
	AgentID       int     `csv:"agent"`
	X             int     `csv:"x"`
	Y             int     `csv:"y"`
	Heading       string  `csv:"heading"`
	Concentration float64 `csv:"concentration"`
}

// Collector accumulates per-tick agent records over a run.
type Collector struct {
	records []TickRecord
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Record appends one record per agent for the given tick.
func (c *Collector) Record(tick int, views []render.View) {
	for _, v := range views {
		c.records = append(c.records, TickRecord{
			Tick:          tick,
			AgentID:       v.ID,
			X:             v.X,
			Y:             v.Y,
			Heading:       v.Dir.String(),
			Concentration: v.Concentration,
		})
	}
}

// Records returns everything recorded so far.
func (c *Collector) Records() []TickRecord {
	return c.records
}

// Positions returns the recorded position sequence for one agent.
func (c *Collector) Positions(agentID int) [][2]int {
	var out [][2]int
	for _, r := range c.records {
		if r.AgentID == agentID {
			out = append(out, [2]int{r.X, r.Y})
		}
	}
	return out
}
