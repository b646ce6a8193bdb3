package telemetry

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wormlab/nematode/components"
	"github.com/wormlab/nematode/render"
)

func TestCollectorRecord(t *testing.T) {
	c := NewCollector()
	c.Record(1, []render.View{
		{ID: 0, X: 2, Y: 3, Dir: components.Left, Concentration: 0.5},
		{ID: 1, X: 4, Y: 4, Dir: components.Up, Concentration: 0.25},
	})
	c.Record(2, []render.View{
		{ID: 0, X: 1, Y: 3, Dir: components.Left, Concentration: 0.4},
		{ID: 1, X: 4, Y: 3, Dir: components.Up, Concentration: 0.3},
	})

	records := c.Records()
	if len(records) != 4 {
		t.Fatalf("expected 4 records, got %d", len(records))
	}
	if records[0].Heading != "left" {
		t.Errorf("expected heading left, got %q", records[0].Heading)
	}

	pos := c.Positions(0)
	if len(pos) != 2 || pos[0] != [2]int{2, 3} || pos[1] != [2]int{1, 3} {
		t.Errorf("unexpected agent 0 positions: %v", pos)
	}
}

func TestSummary(t *testing.T) {
	c := NewCollector()
	c.Record(1, []render.View{{ID: 0, X: 0, Y: 0, Concentration: 0.2}})
	c.Record(2, []render.View{{ID: 0, X: 3, Y: 4, Concentration: 0.4}})

	s := c.Summary(0)
	if s.Ticks != 2 {
		t.Errorf("expected 2 ticks, got %d", s.Ticks)
	}
	if math.Abs(s.MeanConcentration-0.3) > 1e-12 {
		t.Errorf("expected mean 0.3, got %f", s.MeanConcentration)
	}
	if math.Abs(s.NetDisplacement-5.0) > 1e-12 {
		t.Errorf("expected displacement 5, got %f", s.NetDisplacement)
	}
	if s.FinalX != 3 || s.FinalY != 4 {
		t.Errorf("expected final (3,4), got (%d,%d)", s.FinalX, s.FinalY)
	}
}

func TestSummaryUnknownAgent(t *testing.T) {
	c := NewCollector()
	c.Record(1, []render.View{{ID: 0, X: 1, Y: 1, Concentration: 0.5}})

	s := c.Summary(7)
	if s.Ticks != 0 || s.MeanConcentration != 0 {
		t.Errorf("expected zero stats for unknown agent, got %+v", s)
	}
}

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if om != nil {
		t.Fatal("expected nil manager for empty dir")
	}

	// All methods must be safe on a nil manager.
	if err := om.WriteTrack([]TickRecord{{Tick: 1}}); err != nil {
		t.Errorf("nil manager WriteTrack: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Errorf("nil manager Close: %v", err)
	}
}

func TestOutputManagerWritesTrack(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("creating output manager: %v", err)
	}

	records := []TickRecord{
		{Tick: 1, AgentID: 0, X: 2, Y: 3, Heading: "up", Concentration: 0.5},
		{Tick: 2, AgentID: 0, X: 2, Y: 2, Heading: "up", Concentration: 0.6},
	}
	if err := om.WriteTrack(records[:1]); err != nil {
		t.Fatalf("first write: %v", err)
	}
	if err := om.WriteTrack(records[1:]); err != nil {
		t.Fatalf("second write: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Fatalf("closing: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "track.csv"))
	if err != nil {
		t.Fatalf("reading track.csv: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines:\n%s", len(lines), data)
	}
	if !strings.Contains(lines[0], "tick") || !strings.Contains(lines[0], "concentration") {
		t.Errorf("missing header fields: %q", lines[0])
	}
	if strings.Contains(lines[2], "tick") {
		t.Errorf("header repeated on second write: %q", lines[2])
	}
}
