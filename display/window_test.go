package display

import (
	"context"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/matt-g-everett/rectx/stream"
)

func TestParseKey(t *testing.T) {
	tests := []struct {
		name string
		want ebiten.Key
	}{
		{"space", ebiten.KeySpace},
		{"Space", ebiten.KeySpace},
		{" ", ebiten.KeySpace},
		{"p", ebiten.KeyP},
		{"Enter", ebiten.KeyEnter},
	}

	for _, tt := range tests {
		got, err := ParseKey(tt.name)
		if err != nil {
			t.Errorf("ParseKey(%q): %v", tt.name, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseKey(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}

	if _, err := ParseKey("not-a-key"); err == nil {
		t.Error("ParseKey accepted an unknown name")
	}
}

func TestWindowLayoutFollowsFrame(t *testing.T) {
	frame := stream.NewFrame(750, 400)
	w := NewWindow(context.Background(), stream.NewFrameQueue(), nil, frame, ebiten.KeySpace)

	gotW, gotH := w.Layout(1920, 1080)
	if gotW != 750 || gotH != 400 {
		t.Fatalf("Layout = %dx%d, want 750x400", gotW, gotH)
	}
}
