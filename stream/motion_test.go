package stream

import (
	"math"
	"testing"
)

func defaultMotion() Motion {
	return NewMotion(DefaultConfig().Scene)
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestMotionReachesExtentAtDuration(t *testing.T) {
	m := defaultMotion()
	var s State

	for i := 0; i < 4; i++ {
		m.Advance(&s, 1)
	}

	if !almostEqual(s.Elapsed, 4) || !almostEqual(s.X, 600) || !almostEqual(s.Y, 300) {
		t.Fatalf("after 4s state = %+v, want {4 600 300}", s)
	}

	m.Advance(&s, 1.5)
	if s != (State{}) {
		t.Fatalf("after 5.5s state = %+v, want reset to zero", s)
	}
}

func TestMotionDriftsPastExtentBeforeReset(t *testing.T) {
	m := defaultMotion()
	s := State{Elapsed: 4.5}

	m.Advance(&s, 0.5)

	if !almostEqual(s.Elapsed, 5) {
		t.Fatalf("Elapsed = %v, want 5 (not past the period yet)", s.Elapsed)
	}
	if !almostEqual(s.X, 750) || !almostEqual(s.Y, 375) {
		t.Fatalf("position = (%v, %v), want (750, 375)", s.X, s.Y)
	}
}

func TestMotionElapsedIsSumOfDeltasUntilReset(t *testing.T) {
	m := defaultMotion()
	var s State
	deltas := []float64{0.016, 0.1, 0.05, 0, 0.033, 0.1, 0.1, 0.017}

	sum := 0.0
	for i := 0; i < 200; i++ {
		d := deltas[i%len(deltas)]
		sum += d
		m.Advance(&s, d)

		if sum > m.Period {
			if s != (State{}) {
				t.Fatalf("step %d: sum %v exceeded period but state = %+v", i, sum, s)
			}
			sum = 0
			continue
		}
		if !almostEqual(s.Elapsed, sum) {
			t.Fatalf("step %d: Elapsed = %v, want %v", i, s.Elapsed, sum)
		}
		if s.Elapsed > m.Period {
			t.Fatalf("step %d: Elapsed %v left past period", i, s.Elapsed)
		}
	}
}

func TestMotionResetsToConfiguredStart(t *testing.T) {
	m := Motion{StartX: 20, StartY: 10, MaxX: 100, MaxY: 50, Duration: 2, Period: 3}
	var s State

	m.Advance(&s, 1)
	if !almostEqual(s.X, 70) || !almostEqual(s.Y, 35) {
		t.Fatalf("position = (%v, %v), want (70, 35)", s.X, s.Y)
	}

	m.Advance(&s, 2.5)
	want := State{Elapsed: 0, X: 20, Y: 10}
	if s != want {
		t.Fatalf("state = %+v, want %+v", s, want)
	}
}
