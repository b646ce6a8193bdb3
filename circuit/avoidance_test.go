package circuit

import (
	"errors"
	"testing"
)

func TestAvoidanceWalksForward(t *testing.T) {
	a, err := NewAvoidance(100, 50)
	if err != nil {
		t.Fatal(err)
	}

	positions := a.Run(50)
	for i, p := range positions {
		if p != i {
			t.Fatalf("expected position %d at tick %d before the stimulus, got %d", i, i, p)
		}
	}
}

func TestAvoidanceOscillatesAtStimulus(t *testing.T) {
	a, err := NewAvoidance(100, 50)
	if err != nil {
		t.Fatal(err)
	}

	positions := a.Run(100)

	// The worm reaches the stimulus at tick 50, reverses, then bounces
	// between 49 and 50 for the rest of the run.
	if positions[50] != 50 {
		t.Fatalf("expected stimulus contact at tick 50, got %d", positions[50])
	}
	for i := 51; i < 100; i++ {
		want := 49
		if i%2 == 0 {
			want = 50
		}
		if positions[i] != want {
			t.Fatalf("expected oscillation value %d at tick %d, got %d", want, i, positions[i])
		}
	}

	// The worm never passes the stimulus.
	for i, p := range positions {
		if p > 50 {
			t.Fatalf("worm passed the stimulus at tick %d: %d", i, p)
		}
		if p < 0 {
			t.Fatalf("worm left the environment at tick %d: %d", i, p)
		}
	}
}

func TestAvoidanceClampsAtOrigin(t *testing.T) {
	// Stimulus at the origin: the worm fires immediately and stays pinned
	// near cell 0 without ever going negative.
	a, err := NewAvoidance(10, 0)
	if err != nil {
		t.Fatal(err)
	}
	positions := a.Run(20)
	for i, p := range positions {
		if p < 0 || p > 9 {
			t.Fatalf("position out of bounds at tick %d: %d", i, p)
		}
	}
}

func TestAvoidanceInvalidEnvironment(t *testing.T) {
	if _, err := NewAvoidance(0, 0); !errors.Is(err, ErrInvalidEnvironment) {
		t.Errorf("expected ErrInvalidEnvironment, got %v", err)
	}
}
