package stream

// State is the position of the scene's rectangle and the time spent in the
// current cycle.
type State struct {
	Elapsed float64 `json:"elapsed"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
}

// An Animation advances a State by the seconds elapsed in one tick.
type Animation interface {
	Advance(state *State, elapsed float64)
}
