// Package display hosts the scene in a desktop window.
package display

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/matt-g-everett/rectx/stream"
)

// Window is an ebiten.Game that flushes a FrameQueue once per update and
// shows the frame the controller painted.
type Window struct {
	ctx        context.Context
	queue      *stream.FrameQueue
	controller *stream.Controller
	frame      *stream.Frame
	pauseKey   ebiten.Key
	start      time.Time
}

// ParseKey maps a configured key name onto an ebiten key.
func ParseKey(name string) (ebiten.Key, error) {
	if name == " " {
		name = "space"
	}
	var k ebiten.Key
	if err := k.UnmarshalText([]byte(strings.ToLower(name))); err != nil {
		return 0, fmt.Errorf("unknown key %q: %w", name, err)
	}
	return k, nil
}

// NewWindow creates a Window. frame must be the one controller paints into.
func NewWindow(ctx context.Context, queue *stream.FrameQueue, controller *stream.Controller, frame *stream.Frame, pauseKey ebiten.Key) *Window {
	w := new(Window)
	w.ctx = ctx
	w.queue = queue
	w.controller = controller
	w.frame = frame
	w.pauseKey = pauseKey
	w.start = time.Now()
	return w
}

// Update polls the pause key and runs the queued frame callbacks.
func (w *Window) Update() error {
	if w.ctx.Err() != nil {
		return ebiten.Termination
	}

	if inpututil.IsKeyJustPressed(w.pauseKey) {
		if w.controller.Toggle() {
			log.Println("Resumed")
		} else {
			log.Println("Paused")
		}
	}

	w.queue.Flush(time.Since(w.start))
	return nil
}

// Draw copies the painted frame onto the screen.
func (w *Window) Draw(screen *ebiten.Image) {
	screen.WritePixels(w.frame.Image().Pix)
}

// Layout keeps the logical screen at the frame's size.
func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	b := w.frame.Bounds()
	return b.Dx(), b.Dy()
}

// Run opens the window and blocks until it is closed or ctx is done.
func (w *Window) Run(title string) error {
	b := w.frame.Bounds()
	ebiten.SetWindowSize(b.Dx(), b.Dy())
	ebiten.SetWindowTitle(title)
	ebiten.SetTPS(ebiten.SyncWithFPS)

	if err := ebiten.RunGame(w); err != nil {
		return err
	}
	return nil
}
