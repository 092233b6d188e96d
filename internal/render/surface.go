// Package render holds the drawing surfaces the particle field paints on.
package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// ImageSurface is an offscreen ebiten image covering the viewport. The host
// composites it onto the screen before any page content.
type ImageSurface struct {
	img           *ebiten.Image
	width, height int
}

// NewImageSurface allocates a surface. Non-positive sizes give a surface with
// no backing image that silently ignores draw calls.
func NewImageSurface(width, height int) *ImageSurface {
	s := &ImageSurface{}
	s.SetSize(width, height)
	return s
}

// Image is the backing image, nil when the surface is empty or released.
func (s *ImageSurface) Image() *ebiten.Image { return s.img }

func (s *ImageSurface) Size() (int, int) { return s.width, s.height }

// SetSize reallocates the backing image when the size changes.
func (s *ImageSurface) SetSize(width, height int) {
	if s.img != nil && width == s.width && height == s.height {
		return
	}
	s.Release()
	s.width, s.height = width, height
	if width <= 0 || height <= 0 {
		return
	}
	s.img = ebiten.NewImage(width, height)
}

func (s *ImageSurface) Clear() {
	if s.img == nil {
		return
	}
	s.img.Clear()
}

func (s *ImageSurface) FillCircle(x, y, radius float64, clr color.Color) {
	if s.img == nil {
		return
	}
	vector.DrawFilledCircle(s.img, float32(x), float32(y), float32(radius), clr, true)
}

func (s *ImageSurface) StrokeLine(x0, y0, x1, y1, width float64, clr color.Color) {
	if s.img == nil {
		return
	}
	vector.StrokeLine(s.img, float32(x0), float32(y0), float32(x1), float32(y1), float32(width), clr, true)
}

// Release frees the GPU image. The surface stays usable after a SetSize.
func (s *ImageSurface) Release() {
	if s.img == nil {
		return
	}
	s.img.Deallocate()
	s.img = nil
}
