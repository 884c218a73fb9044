package renderer

import (
	"image"
	"image/color"

	"github.com/chewxy/math32"

	"github.com/Supremolink81/gotracer/types"
)

// A Framebuffer holds per-pixel linear color values for a frame. Cells are
// written by exactly one render worker each, so access needs no locking
// during a render.
type Framebuffer struct {
	width  int
	height int
	pix    []types.Vec3
}

// Create a framebuffer with all cells set to black.
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		width:  width,
		height: height,
		pix:    make([]types.Vec3, width*height),
	}
}

// Width returns the frame width in pixels.
func (fb *Framebuffer) Width() int {
	return fb.width
}

// Height returns the frame height in pixels.
func (fb *Framebuffer) Height() int {
	return fb.height
}

// Pix exposes the row-major backing storage for the tile scheduler.
func (fb *Framebuffer) Pix() []types.Vec3 {
	return fb.pix
}

// At returns the stored color for a pixel.
func (fb *Framebuffer) At(x, y int) types.Vec3 {
	return fb.pix[y*fb.width+x]
}

// Set stores the color for a pixel.
func (fb *Framebuffer) Set(x, y int, c types.Vec3) {
	fb.pix[y*fb.width+x] = c
}

// Tonemap scales each cell by the exposure and applies gamma correction in
// place. Called once per frame after the pixel averages are in.
func (fb *Framebuffer) Tonemap(exposure, gamma float32) {
	invGamma := 1.0 / gamma
	for i, c := range fb.pix {
		fb.pix[i] = types.XYZ(
			math32.Pow(c[0]*exposure, invGamma),
			math32.Pow(c[1]*exposure, invGamma),
			math32.Pow(c[2]*exposure, invGamma),
		)
	}
}

// RGBA converts the framebuffer to an 8-bit image, clamping each channel to
// [0, 0.999] so out-of-range radiance cannot wrap.
func (fb *Framebuffer) RGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.width, fb.height))
	for y := 0; y < fb.height; y++ {
		for x := 0; x < fb.width; x++ {
			c := fb.pix[y*fb.width+x]
			img.SetRGBA(x, y, color.RGBA{
				R: channelByte(c[0]),
				G: channelByte(c[1]),
				B: channelByte(c[2]),
				A: 0xff,
			})
		}
	}
	return img
}

func channelByte(v float32) uint8 {
	if !(v > 0) { // catches NaN as well
		return 0
	}
	if v > 0.999 {
		v = 0.999
	}
	return uint8(256 * v)
}
