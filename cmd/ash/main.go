// Command ash runs the 1D ASH avoidance walk: the worm creeps toward a
// noxious stimulus and the ASH circuit drives reversals once it arrives.
// Writes the position trace to positions.csv.
package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/wormlab/nematode/circuit"
)

// positionRecord is one row of positions.csv.
type positionRecord struct {
	Tick     int `csv:"tick"`
	Position int `csv:"position"`
}

func main() {
	timeSteps := flag.Int("time_steps", 100, "Number of simulation ticks")
	envSize := flag.Int("env_size", 100, "1D environment length in cells")
	stimulus := flag.Int("stimulus", 50, "Noxious stimulus position")
	out := flag.String("out", "positions.csv", "CSV output path")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	walk, err := circuit.NewAvoidance(*envSize, *stimulus)
	if err != nil {
		slog.Error("failed to build avoidance walk", "error", err)
		os.Exit(1)
	}

	// Drive the circuit alongside the walk so interneuron state reflects
	// accumulated ASH input over the run.
	ash := circuit.NewASH()

	positions := make([]positionRecord, 0, *timeSteps)
	for t := 0; t < *timeSteps; t++ {
		positions = append(positions, positionRecord{Tick: t, Position: walk.Position()})
		if walk.Position() == *stimulus {
			if err := ash.Step("ASH"); err != nil {
				slog.Error("circuit step failed", "error", err)
				os.Exit(1)
			}
		}
		walk.Step()
	}

	f, err := os.Create(*out)
	if err != nil {
		slog.Error("failed to create output file", "error", err)
		os.Exit(1)
	}
	defer f.Close()

	if err := gocsv.Marshal(positions, f); err != nil {
		slog.Error("failed to write positions", "error", err)
		os.Exit(1)
	}

	slog.Info("avoidance run complete",
		"ticks", *timeSteps,
		"final_position", walk.Position(),
		"ash_state", ash.Neuron("ASH").State,
		"avb_state", ash.Neuron("AVB").State,
		"output", *out,
	)
}
