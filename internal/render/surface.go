// SPDX-License-Identifier: MIT
package render

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
)

// Surface is a fixed-size pixel canvas the visualizer draws on. The host
// owns it; the visualizer only clears it and fills rectangles.
type Surface interface {
	Size() (width, height int)
	Clear(c color.Color)
	FillRect(x, y, w, h int, c color.Color)
}

// ImageSurface draws into an in-memory RGBA image.
type ImageSurface struct {
	Image *image.RGBA
}

var _ Surface = (*ImageSurface)(nil)

func NewImageSurface(width, height int) *ImageSurface {
	return &ImageSurface{Image: image.NewRGBA(image.Rect(0, 0, width, height))}
}

func (s *ImageSurface) Size() (int, int) {
	b := s.Image.Bounds()
	return b.Dx(), b.Dy()
}

func (s *ImageSurface) Clear(c color.Color) {
	draw.Draw(s.Image, s.Image.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

func (s *ImageSurface) FillRect(x, y, w, h int, c color.Color) {
	r := image.Rect(x, y, x+w, y+h).Intersect(s.Image.Bounds())
	draw.Draw(s.Image, r, image.NewUniform(c), image.Point{}, draw.Src)
}

// WritePNG encodes the current image.
func (s *ImageSurface) WritePNG(w io.Writer) error {
	return png.Encode(w, s.Image)
}
