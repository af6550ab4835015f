package stream

import (
	"fmt"
	"image"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/matt-g-everett/rectx/util"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

var (
	panelColour = colorful.Color{R: 1, G: 1, B: 1}
	textColour  = colorful.Color{R: 0, G: 0, B: 0}
)

// Renderer paints the scene for one State onto a Frame.
type Renderer struct {
	colours   [2]colorful.Color
	rect      image.Point
	panel     image.Point
	textX     int
	baselines [2]int
	face      font.Face
	rnd       util.RandomSource
}

// NewRenderer creates a Renderer for the scene. rnd picks the rectangle's
// colour each frame.
func NewRenderer(scene SceneConfig, rnd util.RandomSource) (*Renderer, error) {
	if len(scene.Colors) != 2 || len(scene.Baselines) != 2 {
		return nil, fmt.Errorf("scene needs 2 colors and 2 baselines")
	}

	r := new(Renderer)
	for i, hex := range scene.Colors {
		c, err := colorful.Hex(hex)
		if err != nil {
			return nil, fmt.Errorf("scene color %q: %w", hex, err)
		}
		r.colours[i] = c
	}

	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	r.face, err = opentype.NewFace(f, &opentype.FaceOptions{
		Size:    scene.FontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("font face: %w", err)
	}

	r.rect = image.Pt(scene.RectWidth, scene.RectHeight)
	r.panel = image.Pt(scene.PanelWidth, scene.PanelHeight)
	r.textX = scene.TextX
	r.baselines = [2]int{scene.Baselines[0], scene.Baselines[1]}
	r.rnd = rnd

	return r, nil
}

// Paint clears f and draws the rectangle at the state's position with the
// frame rate and position overlay. A nil frame is ignored.
func (r *Renderer) Paint(f *Frame, state State, elapsed float64) {
	if f == nil {
		return
	}

	f.Clear()

	colour := r.colours[1]
	if r.rnd.Float64() > 0.5 {
		colour = r.colours[0]
	}
	origin := image.Pt(int(math.Round(state.X)), int(math.Round(state.Y)))
	f.FillRect(image.Rectangle{Min: origin, Max: origin.Add(r.rect)}, colour)

	f.FillRect(image.Rectangle{Max: r.panel}, panelColour)
	r.drawText(f, r.baselines[0], fmt.Sprintf("FPS: %d", FrameRate(elapsed)))
	r.drawText(f, r.baselines[1], fmt.Sprintf("X: %d Y: %d", int(math.Round(state.X)), int(math.Round(state.Y))))
}

func (r *Renderer) drawText(f *Frame, baseline int, s string) {
	d := font.Drawer{
		Dst:  f.img,
		Src:  image.NewUniform(toRGBA(textColour)),
		Face: r.face,
		Dot:  fixed.P(r.textX, baseline),
	}
	d.DrawString(s)
}

// FrameRate estimates frames per second from one tick's elapsed seconds.
// It returns 0 when elapsed is not positive, as on the first tick.
func FrameRate(elapsed float64) int {
	if elapsed <= 0 {
		return 0
	}
	return int(math.Round(1 / elapsed))
}
