package viz

import (
	"math"
	"strings"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
const brailleOffset = 0x2800

var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleOffset // Empty braille char
		}
	}
	return c
}

// Set lights the dot at (x, y) in sub-pixel coordinates.
// The canvas size in sub-pixels is (Width*2) x (Height*4).
func (c *Canvas) Set(x, y int) {
	// Early bounds check for negative coordinates
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	subX := x % 2
	subY := y % 4

	c.Grid[row][col] |= rune(pixelMap[subY][subX])
}

// Dots is the canvas size in sub-pixels.
func (c *Canvas) Dots() (int, int) { return c.Width * 2, c.Height * 4 }

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
		}
	}
}

// DrawLine uses Bresenham's algorithm.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
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

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Viewport maps a world-space window onto the canvas. Screen y grows
// downward, so world up is flipped.
type Viewport struct {
	MinX, MinY, MaxX, MaxY float64
}

// FitViewport covers every point with margin on each side, keeping one
// world unit the same size on both axes of a w x h dot canvas.
func FitViewport(xs, ys []float64, w, h int, margin float64) Viewport {
	v := Viewport{MinX: math.Inf(1), MinY: math.Inf(1), MaxX: math.Inf(-1), MaxY: math.Inf(-1)}
	for i := range xs {
		v.MinX = math.Min(v.MinX, xs[i])
		v.MaxX = math.Max(v.MaxX, xs[i])
		v.MinY = math.Min(v.MinY, ys[i])
		v.MaxY = math.Max(v.MaxY, ys[i])
	}
	if len(xs) == 0 {
		v = Viewport{}
	}
	v.MinX -= margin
	v.MaxX += margin
	v.MinY -= margin
	v.MaxY += margin

	// square the aspect ratio around the center
	spanX, spanY := v.MaxX-v.MinX, v.MaxY-v.MinY
	perDotX, perDotY := spanX/float64(w), spanY/float64(h)
	perDot := math.Max(perDotX, perDotY)
	cx, cy := (v.MinX+v.MaxX)/2, (v.MinY+v.MaxY)/2
	v.MinX, v.MaxX = cx-perDot*float64(w)/2, cx+perDot*float64(w)/2
	v.MinY, v.MaxY = cy-perDot*float64(h)/2, cy+perDot*float64(h)/2
	return v
}

// ToDots converts a world point to sub-pixel coordinates on a w x h canvas.
func (v Viewport) ToDots(x, y float64, w, h int) (int, int) {
	sx := (x - v.MinX) / (v.MaxX - v.MinX) * float64(w-1)
	sy := (v.MaxY - y) / (v.MaxY - v.MinY) * float64(h-1)
	return int(math.Round(sx)), int(math.Round(sy))
}

// Line draws a world-space segment through the viewport.
func (c *Canvas) Line(v Viewport, x0, y0, x1, y1 float64) {
	w, h := c.Dots()
	ax, ay := v.ToDots(x0, y0, w, h)
	bx, by := v.ToDots(x1, y1, w, h)
	c.DrawLine(ax, ay, bx, by)
}

// Point lights a world-space point through the viewport.
func (c *Canvas) Point(v Viewport, x, y float64) {
	w, h := c.Dots()
	c.Set(v.ToDots(x, y, w, h))
}
