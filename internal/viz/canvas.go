package viz

import (
	"math"
	"strings"

	"github.com/san-kum/starfield/internal/render"
)

const brailleBlank = 0x2800

// Braille cells are 2x4 dots:
//
//	1 4
//	2 5
//	3 6
//	7 8
var dotBits = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// Canvas is a grid of braille cells addressed in dots, so its drawable
// area is (Width*2) x (Height*4).
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{Width: w, Height: h, Grid: make([][]rune, h)}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// Viewport is the canvas size in dots.
func (c *Canvas) Viewport() render.Viewport {
	return render.Viewport{Width: float64(c.Width * 2), Height: float64(c.Height * 4)}
}

func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= dotBits[y%4][x%2]
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
		}
	}
}

// DrawLine uses Bresenham's algorithm.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx, dy := absInt(x1-x0), absInt(y1-y0)
	sx, sy := -1, -1
	if x0 < x1 {
		sx = 1
	}
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// Plot draws every star line of a projected frame. Lines entirely off the
// canvas are skipped before rasterising.
func (c *Canvas) Plot(m render.Model) {
	vp := c.Viewport()
	for _, l := range m.Stars {
		if offscreen(l, vp) {
			continue
		}
		c.DrawLine(int(math.Round(l.X1)), int(math.Round(l.Y1)), int(math.Round(l.X2)), int(math.Round(l.Y2)))
	}
}

func offscreen(l render.Line, vp render.Viewport) bool {
	return (l.X1 < 0 && l.X2 < 0) || (l.Y1 < 0 && l.Y2 < 0) ||
		(l.X1 >= vp.Width && l.X2 >= vp.Width) || (l.Y1 >= vp.Height && l.Y2 >= vp.Height)
}

func (c *Canvas) String() string {
	var b strings.Builder
	for i, row := range c.Grid {
		b.WriteString(string(row))
		if i < len(c.Grid)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Label writes text centred on dot position (x, y), with gap blank cells
// between letters. Cells outside the canvas are dropped.
func (c *Canvas) Label(x, y float64, text string, gap int) {
	if gap < 0 {
		gap = 0
	}
	runes := []rune(text)
	span := len(runes) + gap*(len(runes)-1)
	if len(runes) == 0 {
		return
	}
	row := int(y) / 4
	col := int(x)/2 - span/2
	if row < 0 || row >= c.Height {
		return
	}
	for i, r := range runes {
		at := col + i*(gap+1)
		if at < 0 || at >= c.Width {
			continue
		}
		c.Grid[row][at] = r
	}
}
