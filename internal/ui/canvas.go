package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// cell is one terminal column of the desktop area. Wide glyphs occupy their
// own cell plus a continuation cell that renders nothing.
type cell struct {
	ch    string
	style *lipgloss.Style
	cont  bool
}

// canvas composites windows and dropdowns back to front. Later writes win.
type canvas struct {
	width  int
	height int
	cells  [][]cell
}

func newCanvas(width, height int, fill string, style *lipgloss.Style) *canvas {
	width = max(width, 0)
	height = max(height, 0)
	c := &canvas{width: width, height: height, cells: make([][]cell, height)}
	for y := range c.cells {
		row := make([]cell, width)
		for x := range row {
			row[x] = cell{ch: fill, style: style}
		}
		c.cells[y] = row
	}
	return c
}

// put writes s at (x, y) clipping at the canvas edges. It returns the column
// after the last cell written.
func (c *canvas) put(x, y int, s string, style *lipgloss.Style) int {
	if y < 0 || y >= c.height {
		return x
	}
	row := c.cells[y]
	for _, r := range s {
		ch := string(r)
		w := ansi.StringWidth(ch)
		if w == 0 {
			if x > 0 && x-1 < c.width && x-1 >= 0 && !row[x-1].cont {
				row[x-1].ch += ch
			}
			continue
		}
		if x >= c.width {
			break
		}
		if x+w > c.width {
			// a wide glyph that would straddle the edge is dropped
			if x >= 0 {
				row[x] = cell{ch: " ", style: style}
			}
			x += w
			continue
		}
		if x >= 0 {
			c.clearWide(row, x)
			row[x] = cell{ch: ch, style: style}
			for i := 1; i < w; i++ {
				c.clearWide(row, x+i)
				row[x+i] = cell{style: style, cont: true}
			}
		}
		x += w
	}
	return x
}

// clearWide blanks the halves of a wide glyph about to be partly overwritten.
func (c *canvas) clearWide(row []cell, x int) {
	if row[x].cont {
		for i := x - 1; i >= 0; i-- {
			if !row[i].cont {
				row[i].ch = " "
				break
			}
			row[i] = cell{ch: " ", style: row[i].style}
		}
	}
	for i := x + 1; i < len(row) && row[i].cont; i++ {
		row[i] = cell{ch: " ", style: row[i].style}
	}
}

// fill paints a rectangle with ch.
func (c *canvas) fill(x, y, w, h int, ch string, style *lipgloss.Style) {
	line := strings.Repeat(ch, max(w, 0))
	for row := y; row < y+h; row++ {
		c.put(x, row, line, style)
	}
}

// box draws a frame using border glyphs. The interior is left untouched.
func (c *canvas) box(x, y, w, h int, border lipgloss.Border, style *lipgloss.Style) {
	if w < 2 || h < 2 {
		return
	}
	inner := w - 2
	c.put(x, y, border.TopLeft+strings.Repeat(border.Top, inner)+border.TopRight, style)
	for row := y + 1; row < y+h-1; row++ {
		c.put(x, row, border.Left, style)
		c.put(x+w-1, row, border.Right, style)
	}
	c.put(x, y+h-1, border.BottomLeft+strings.Repeat(border.Bottom, inner)+border.BottomRight, style)
}

// lines renders every row, grouping runs that share a style.
func (c *canvas) lines() []string {
	out := make([]string, c.height)
	for y, row := range c.cells {
		var b strings.Builder
		var run strings.Builder
		var current *lipgloss.Style
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if current != nil {
				b.WriteString(current.Render(run.String()))
			} else {
				b.WriteString(run.String())
			}
			run.Reset()
		}
		for _, cl := range row {
			if cl.cont {
				continue
			}
			if cl.style != current {
				flush()
				current = cl.style
			}
			run.WriteString(cl.ch)
		}
		flush()
		out[y] = b.String()
	}
	return out
}

// String renders the canvas without styling, for tests and logs.
func (c *canvas) String() string {
	rows := make([]string, c.height)
	for y, row := range c.cells {
		var b strings.Builder
		for _, cl := range row {
			if !cl.cont {
				b.WriteString(cl.ch)
			}
		}
		rows[y] = b.String()
	}
	return strings.Join(rows, "\n")
}
