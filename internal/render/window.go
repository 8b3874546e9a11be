// SPDX-License-Identifier: MIT
package render

import (
	"context"
	"errors"
	"fmt"
	"image/color"

	"spectrum/internal/audio"
	"spectrum/internal/config"
	"spectrum/internal/log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// ebitenSurface adapts the screen image handed to Draw.
type ebitenSurface struct {
	screen *ebiten.Image
}

var _ Surface = ebitenSurface{}

func (s ebitenSurface) Size() (int, int) {
	b := s.screen.Bounds()
	return b.Dx(), b.Dy()
}

func (s ebitenSurface) Clear(c color.Color) { s.screen.Fill(c) }

func (s ebitenSurface) FillRect(x, y, w, h int, c color.Color) {
	vector.DrawFilledRect(s.screen, float32(x), float32(y), float32(w), float32(h), c, false)
}

// windowHost runs the visualizer inside the ebiten game loop.
type windowHost struct {
	ctx    context.Context
	vis    *Visualizer
	width  int
	height int
}

func (h *windowHost) Update() error {
	if h.ctx.Err() != nil {
		return ebiten.Termination
	}
	return nil
}

func (h *windowHost) Draw(screen *ebiten.Image) {
	h.vis.Frame(ebitenSurface{screen: screen})
}

func (h *windowHost) Layout(int, int) (int, int) {
	return h.width, h.height
}

// RunWindow opens a desktop window of the configured size and draws the
// spectrum at the display refresh rate until the window is closed or ctx
// is cancelled. It must be called from the main goroutine.
func RunWindow(ctx context.Context, cfg *config.Config, source audio.Source) error {
	d := cfg.Display
	if d.Width <= 0 || d.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", d.Width, d.Height)
	}

	vis, err := New(cfg, source)
	if err != nil {
		return err
	}

	ebiten.SetWindowTitle(d.Title)
	ebiten.SetWindowSize(d.Width, d.Height)
	ebiten.SetWindowDecorated(d.Decorated)
	ebiten.SetWindowFloating(d.Floating)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
	if d.X != 0 || d.Y != 0 {
		ebiten.SetWindowPosition(d.X, d.Y)
	}
	ebiten.SetTPS(d.TargetFPS)

	log.Infof("Render: Opening %dx%d window (%d bars)", d.Width, d.Height, vis.Geometry().NumBins())

	host := &windowHost{ctx: ctx, vis: vis, width: d.Width, height: d.Height}
	err = ebiten.RunGameWithOptions(host, &ebiten.RunGameOptions{
		ScreenTransparent: d.Transparent,
	})
	if err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("window loop failed: %w", err)
	}
	log.Debugf("Render: %d frames drawn", vis.Rendered())
	return nil
}
