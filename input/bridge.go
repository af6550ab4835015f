// Package input turns terminal key presses into pause/resume of the scene.
package input

import (
	"context"
	"fmt"
	"log"
	"strings"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
)

// Toggler flips a run flag and returns its new value.
type Toggler interface {
	Toggle() bool
}

// Key is a single designated key.
type Key struct {
	Code tcell.Key
	Rune rune
}

// ParseKey reads "space", a single character or a tcell key name such as
// "Enter" or "F5".
func ParseKey(name string) (Key, error) {
	if strings.EqualFold(name, "space") {
		return Key{Code: tcell.KeyRune, Rune: ' '}, nil
	}
	if utf8.RuneCountInString(name) == 1 {
		r, _ := utf8.DecodeRuneInString(name)
		return Key{Code: tcell.KeyRune, Rune: r}, nil
	}
	for k, n := range tcell.KeyNames {
		if strings.EqualFold(n, name) {
			return Key{Code: k}, nil
		}
	}
	return Key{}, fmt.Errorf("unknown key %q", name)
}

func (k Key) matches(ev *tcell.EventKey) bool {
	if ev.Key() != k.Code {
		return false
	}
	return k.Code != tcell.KeyRune || ev.Rune() == k.Rune
}

// Bridge toggles a run flag when its key is pressed.
type Bridge struct {
	key     Key
	toggler Toggler
}

// NewBridge creates a Bridge that toggles t on key.
func NewBridge(key Key, t Toggler) *Bridge {
	b := new(Bridge)
	b.key = key
	b.toggler = t
	return b
}

// OnKeyEvent toggles on the designated key and ignores every other key.
// It reports whether the event was consumed.
func (b *Bridge) OnKeyEvent(ev *tcell.EventKey) bool {
	if !b.key.matches(ev) {
		return false
	}

	if b.toggler.Toggle() {
		log.Println("Resumed")
	} else {
		log.Println("Paused")
	}
	return true
}

// Listen delivers key events from screen to the bridge until ctx is done or
// the screen is finalised. Esc and Ctrl-C call quit.
func (b *Bridge) Listen(ctx context.Context, screen tcell.Screen, quit func()) {
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			screen.PostEvent(tcell.NewEventInterrupt(nil))
		case <-stop:
		}
	}()

	for {
		ev := screen.PollEvent()
		switch ev := ev.(type) {
		case nil:
			return
		case *tcell.EventInterrupt:
			if ctx.Err() != nil {
				return
			}
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
				quit()
				continue
			}
			b.OnKeyEvent(ev)
		}
	}
}
