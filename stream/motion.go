package stream

import (
	"github.com/matt-g-everett/rectx/util"
)

// Motion is an Animation that moves the rectangle in a straight line from
// (StartX, StartY) by (MaxX, MaxY) over Duration seconds, keeps drifting past
// the end point and snaps back to the start once Period has been exceeded.
type Motion struct {
	StartX   float64
	StartY   float64
	MaxX     float64
	MaxY     float64
	Duration float64
	Period   float64
}

// NewMotion creates a Motion from the scene settings.
func NewMotion(scene SceneConfig) Motion {
	return Motion{
		StartX:   scene.StartX,
		StartY:   scene.StartY,
		MaxX:     scene.MaxX,
		MaxY:     scene.MaxY,
		Duration: scene.Duration,
		Period:   scene.Period,
	}
}

// Advance accumulates elapsed into the state and recomputes the position.
func (m Motion) Advance(state *State, elapsed float64) {
	state.Elapsed += elapsed
	state.X = util.Lerp(state.Elapsed, m.StartX, m.MaxX, m.Duration)
	state.Y = util.Lerp(state.Elapsed, m.StartY, m.MaxY, m.Duration)

	if state.Elapsed > m.Period {
		m.Reset(state)
	}
}

// Reset puts the state back at the start of a cycle.
func (m Motion) Reset(state *State) {
	state.Elapsed = 0
	state.X = m.StartX
	state.Y = m.StartY
}
