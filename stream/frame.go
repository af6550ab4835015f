package stream

import (
	"encoding/binary"
	"image"
	"image/color"
	"image/draw"

	"github.com/lucasb-eyer/go-colorful"
)

// Frame is the raster surface the scene is painted on.
type Frame struct {
	img *image.RGBA
}

// NewFrame creates a new transparent Frame of width x height pixels.
func NewFrame(width, height int) *Frame {
	f := new(Frame)
	f.img = image.NewRGBA(image.Rect(0, 0, width, height))
	return f
}

// Bounds returns the pixel rectangle of the frame.
func (f *Frame) Bounds() image.Rectangle {
	return f.img.Bounds()
}

// Image exposes the frame's pixels. Callers must not hold on to it across ticks.
func (f *Frame) Image() *image.RGBA {
	return f.img
}

// Clear sets every pixel to transparent black.
func (f *Frame) Clear() {
	clear(f.img.Pix)
}

// FillRect paints r in colour c. Parts of r outside the frame are dropped.
func (f *Frame) FillRect(r image.Rectangle, c colorful.Color) {
	draw.Draw(f.img, r, image.NewUniform(toRGBA(c)), image.Point{}, draw.Src)
}

// CopyTo copies the frame's pixels into dst, resizing dst if needed.
func (f *Frame) CopyTo(dst *Frame) {
	if dst.img.Bounds() != f.img.Bounds() {
		dst.img = image.NewRGBA(f.img.Bounds())
	}
	copy(dst.img.Pix, f.img.Pix)
}

// MarshalBinary converts a Frame into binary data: little endian uint16 width
// and height followed by the RGB bytes of each pixel in row order.
func (f *Frame) MarshalBinary() (data []byte, err error) {
	b := f.img.Bounds()
	numPixels := b.Dx() * b.Dy()

	data = make([]byte, 4, (numPixels*3)+4)
	binary.LittleEndian.PutUint16(data, uint16(b.Dx()))
	binary.LittleEndian.PutUint16(data[2:], uint16(b.Dy()))
	for i := 0; i < len(f.img.Pix); i += 4 {
		data = append(data, f.img.Pix[i], f.img.Pix[i+1], f.img.Pix[i+2])
	}

	return data, nil
}

func toRGBA(c colorful.Color) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}
