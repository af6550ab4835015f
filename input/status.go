package input

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/matt-g-everett/rectx/stream"
)

const statusInterval = 250 * time.Millisecond

// Scene is the read side of the controller the status line reports on.
type Scene interface {
	State() stream.State
	Running() bool
}

// StatusLine formats the one-line summary shown in the terminal.
func StatusLine(s Scene, pauseKey string) string {
	state := s.State()
	mode := "running"
	if !s.Running() {
		mode = "paused "
	}
	return fmt.Sprintf("rectx %s  t=%.2fs  X: %d Y: %d   [%s] pause/resume  [esc] quit",
		mode, state.Elapsed, int(math.Round(state.X)), int(math.Round(state.Y)), pauseKey)
}

// ShowStatus redraws the status line on screen until ctx is done.
func ShowStatus(ctx context.Context, screen tcell.Screen, s Scene, pauseKey string) {
	ticker := time.NewTicker(statusInterval)
	defer ticker.Stop()

	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	for {
		screen.Clear()
		for x, r := range []rune(StatusLine(s, pauseKey)) {
			screen.SetContent(x, 0, r, nil, style)
		}
		screen.Show()

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
