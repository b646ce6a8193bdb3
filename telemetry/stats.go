package telemetry

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// RunStats summarizes one agent's track over a whole run.
type RunStats struct {
	Ticks             int     `csv:"ticks"`
	MeanConcentration float64 `csv:"mean_concentration"`
	StdConcentration  float64 `csv:"std_concentration"`
	NetDisplacement   float64 `csv:"net_displacement"`
	FinalX            int     `csv:"final_x"`
	FinalY            int     `csv:"final_y"`
}

// Summary computes run statistics for one agent's track. Returns zeros when
// nothing was recorded for the agent.
func (c *Collector) Summary(agentID int) RunStats {
	var concentrations []float64
	var first, last TickRecord
	found := false

	for _, r := range c.records {
		if r.AgentID != agentID {
			continue
		}
		if !found {
			first = r
			found = true
		}
		last = r
		concentrations = append(concentrations, r.Concentration)
	}
	if !found {
		return RunStats{}
	}

	dx := float64(last.X - first.X)
	dy := float64(last.Y - first.Y)

	s := RunStats{
		Ticks:             len(concentrations),
		MeanConcentration: stat.Mean(concentrations, nil),
		NetDisplacement:   math.Sqrt(dx*dx + dy*dy),
		FinalX:            last.X,
		FinalY:            last.Y,
	}
	if len(concentrations) > 1 {
		s.StdConcentration = stat.StdDev(concentrations, nil)
	}
	return s
}
