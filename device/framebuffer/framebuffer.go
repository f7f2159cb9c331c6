// Package framebuffer renders console text onto an in-memory framebuffer
// using gg, the way a board without a serial line would show output on a
// display. The rendered frame can be saved as PNG.
package framebuffer

import (
	"image"
	"io"
	"strings"

	"github.com/fogleman/gg"

	"github.com/katalvlaran/hartmatrix/device"
)

const (
	margin      = 4.0
	lineSpacing = 2.0
)

// Framebuffer is a scrolling text console. It is not safe for concurrent
// use; the console serializes access.
type Framebuffer struct {
	dc           *gg.Context
	cols, rows   int
	cellW, cellH float64
	lines        []string
	cur          strings.Builder
	ready        bool
}

var _ device.Device = (*Framebuffer)(nil)

// New allocates a width×height framebuffer. The text grid is derived from
// the default gg face (7×13 basic font).
func New(width, height int) *Framebuffer {
	dc := gg.NewContext(width, height)
	cw, _ := dc.MeasureString("M")
	ch := dc.FontHeight() + lineSpacing
	fb := &Framebuffer{
		dc:    dc,
		cellW: cw,
		cellH: ch,
		cols:  max(1, int((float64(width)-2*margin)/cw)),
		rows:  max(1, int((float64(height)-2*margin)/ch)),
	}

	return fb
}

// Init clears the frame to black.
func (f *Framebuffer) Init() error {
	f.dc.SetRGB(0, 0, 0)
	f.dc.Clear()
	f.ready = true

	return nil
}

// Grid returns the text grid size in characters.
func (f *Framebuffer) Grid() (cols, rows int) { return f.cols, f.rows }

// Write appends text, handling '\n' as a line break and dropping '\r'.
// Long lines wrap at the grid width; the oldest lines scroll off the top.
func (f *Framebuffer) Write(p []byte) (int, error) {
	if !f.ready {
		return 0, device.ErrNotInitialized
	}
	for _, c := range p {
		switch c {
		case '\r':
		case '\n':
			f.newline()
		default:
			if f.cur.Len() == f.cols {
				f.newline()
			}
			f.cur.WriteByte(c)
		}
	}
	f.redraw()

	return len(p), nil
}

func (f *Framebuffer) newline() {
	f.lines = append(f.lines, f.cur.String())
	f.cur.Reset()
	if over := len(f.lines) - (f.rows - 1); over > 0 {
		f.lines = f.lines[over:]
	}
}

func (f *Framebuffer) redraw() {
	f.dc.SetRGB(0, 0, 0)
	f.dc.Clear()
	f.dc.SetRGB(0.8, 0.9, 0.8)
	y := margin + f.cellH
	for _, l := range f.Lines() {
		f.dc.DrawString(l, margin, y)
		y += f.cellH
	}
}

// Lines returns the visible text, the unfinished line last.
func (f *Framebuffer) Lines() []string {
	out := make([]string, 0, len(f.lines)+1)
	out = append(out, f.lines...)

	return append(out, f.cur.String())
}

// Image returns the rendered frame.
func (f *Framebuffer) Image() image.Image { return f.dc.Image() }

// EncodePNG writes the frame as PNG.
func (f *Framebuffer) EncodePNG(w io.Writer) error { return f.dc.EncodePNG(w) }

// SavePNG writes the frame to a PNG file.
func (f *Framebuffer) SavePNG(path string) error { return f.dc.SavePNG(path) }
