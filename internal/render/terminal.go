// SPDX-License-Identifier: MIT
package render

import (
	"bufio"
	"context"
	"fmt"
	"image/color"
	"io"
	"os"
	"strconv"
	"sync"
	"time"

	"spectrum/internal/audio"
	"spectrum/internal/config"
	"spectrum/internal/log"

	"github.com/charmbracelet/lipgloss"
	"github.com/eiannone/keyboard"
	"golang.org/x/term"
)

const (
	upperHalfBlock = "▀"
	resetANSI      = "\x1b[0m"
	// resizeInterval is how often the terminal size is polled.
	resizeInterval = 500 * time.Millisecond
)

var statusStyle = lipgloss.NewStyle().Faint(true)

// TerminalSurface is a pixel grid shown as half-block characters: each
// character cell carries two vertically stacked pixels, the top one as
// foreground and the bottom one as background, in 24-bit color.
type TerminalSurface struct {
	width, height int
	pixels        []color.RGBA
}

var _ Surface = (*TerminalSurface)(nil)

// NewTerminalSurface creates a surface of cols x rows character cells.
func NewTerminalSurface(cols, rows int) *TerminalSurface {
	s := &TerminalSurface{}
	s.resize(cols, rows)
	return s
}

func (s *TerminalSurface) resize(cols, rows int) {
	s.width, s.height = max(cols, 0), max(rows, 0)*2
	s.pixels = make([]color.RGBA, s.width*s.height)
}

func (s *TerminalSurface) Size() (int, int) { return s.width, s.height }

func (s *TerminalSurface) Clear(c color.Color) {
	rgba := toRGBA(c)
	for i := range s.pixels {
		s.pixels[i] = rgba
	}
}

func (s *TerminalSurface) FillRect(x, y, w, h int, c color.Color) {
	rgba := toRGBA(c)
	x0, y0 := max(x, 0), max(y, 0)
	x1, y1 := min(x+w, s.width), min(y+h, s.height)
	for py := y0; py < y1; py++ {
		row := s.pixels[py*s.width : (py+1)*s.width]
		for px := x0; px < x1; px++ {
			row[px] = rgba
		}
	}
}

// At returns the pixel at (x, y).
func (s *TerminalSurface) At(x, y int) color.RGBA { return s.pixels[y*s.width+x] }

// WriteTo writes the grid as ANSI rows starting at the cursor home
// position. Escape sequences are emitted only when a color changes.
func (s *TerminalSurface) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriterSize(w, s.width*s.height*8+64)
	bw.WriteString("\x1b[H")

	var fg, bg color.RGBA
	first := true
	for y := 0; y+1 < s.height; y += 2 {
		if y > 0 {
			bw.WriteString(resetANSI + "\r\n")
			first = true
		}
		for x := 0; x < s.width; x++ {
			top, bottom := s.At(x, y), s.At(x, y+1)
			if first || top != fg {
				writeColor(bw, "38", top)
				fg = top
			}
			if first || bottom != bg {
				writeColor(bw, "48", bottom)
				bg = bottom
			}
			first = false
			bw.WriteString(upperHalfBlock)
		}
	}
	bw.WriteString(resetANSI)

	n := int64(bw.Buffered())
	return n, bw.Flush()
}

func writeColor(w *bufio.Writer, layer string, c color.RGBA) {
	w.WriteString("\x1b[" + layer + ";2;")
	w.WriteString(strconv.Itoa(int(c.R)))
	w.WriteByte(';')
	w.WriteString(strconv.Itoa(int(c.G)))
	w.WriteByte(';')
	w.WriteString(strconv.Itoa(int(c.B)))
	w.WriteByte('m')
}

func toRGBA(c color.Color) color.RGBA {
	return color.RGBAModel.Convert(c).(color.RGBA)
}

// terminalSize returns the usable cell grid, keeping one row for the
// status line.
func terminalSize() (int, int, error) {
	cols, rows, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read terminal size: %w", err)
	}
	return cols, max(rows-1, 1), nil
}

// RunTerminal draws the spectrum in the current terminal until ctx is
// cancelled or a quit key (q, Esc, Ctrl-C) is pressed. The configured
// window size is replaced by the terminal size.
func RunTerminal(ctx context.Context, cfg *config.Config, source audio.Source) error {
	cols, rows, err := terminalSize()
	if err != nil {
		return err
	}

	sized := *cfg
	sized.Display.Width = cols
	sized.Display.Height = rows * 2
	vis, err := New(&sized, source)
	if err != nil {
		return err
	}
	surface := NewTerminalSurface(cols, rows)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	listenForQuit(ctx, cancel)

	out := os.Stdout
	fmt.Fprint(out, "\x1b[?1049h\x1b[?25l\x1b[2J")
	defer fmt.Fprint(out, "\x1b[?25h\x1b[?1049l"+resetANSI)

	ticker := time.NewTicker(time.Second / time.Duration(cfg.Display.TargetFPS))
	defer ticker.Stop()
	resize := time.NewTicker(resizeInterval)
	defer resize.Stop()

	status := fmt.Sprintf(" %s  %d bars  %.0f-%.0f Hz  q to quit",
		cfg.Display.Title, vis.Geometry().NumBins(), cfg.Spectrum.MinPlottedFreq, cfg.Spectrum.MaxPlottedFreq)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-resize.C:
			c, r, err := terminalSize()
			if err != nil || (c == cols && r == rows) {
				continue
			}
			cols, rows = c, r
			if err := vis.Resize(cols); err != nil {
				return err
			}
			surface.resize(cols, rows)
			fmt.Fprint(out, "\x1b[2J")
		case <-ticker.C:
			vis.Frame(surface)
			if _, err := surface.WriteTo(out); err != nil {
				return fmt.Errorf("failed to write frame: %w", err)
			}
			fmt.Fprint(out, "\r\n"+statusStyle.Render(truncate(status, cols)))
		}
	}
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) > width {
		return string(r[:width])
	}
	return s
}

// listenForQuit cancels when a quit key is read. Keyboard input is
// optional; without a TTY the loop runs until ctx is done.
func listenForQuit(ctx context.Context, cancel context.CancelFunc) {
	if err := keyboard.Open(); err != nil {
		log.Debugf("Render: keyboard input disabled: %v", err)
		return
	}

	var closeOnce sync.Once
	closeKeyboard := func() { closeOnce.Do(func() { _ = keyboard.Close() }) }
	go func() {
		<-ctx.Done()
		closeKeyboard()
	}()

	go func() {
		defer closeKeyboard()
		for {
			char, key, err := keyboard.GetKey()
			if err != nil {
				return
			}
			if key == keyboard.KeyEsc || key == keyboard.KeyCtrlC || char == 'q' || char == 'Q' {
				cancel()
				return
			}
		}
	}()
}
