package viz

import (
	"fmt"
	"strings"

	"github.com/san-kum/subsim/internal/sim"
)

const svgBackground = "#0a0a0a"

// CanvasSVG converts a braille canvas to SVG, one circle per lit dot.
func CanvasSVG(c *Canvas, scale float64, theme Theme) string {
	if c == nil {
		return ""
	}

	w, h := c.Dots()
	width, height := float64(w)*scale, float64(h)*scale

	var sb strings.Builder
	writeSVGHeader(&sb, width, height)
	fmt.Fprintf(&sb, "<g fill=\"%s\">\n", theme.Primary)

	r := scale * 0.4
	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			cell := c.Grid[row][col]
			if cell <= brailleOffset {
				continue
			}
			pattern := int(cell - brailleOffset)
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] == 0 {
						continue
					}
					cx := float64(col*2+dx)*scale + scale/2
					cy := float64(row*4+dy)*scale + scale/2
					fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n", cx, cy, r)
				}
			}
		}
	}

	sb.WriteString("</g>\n</svg>\n")
	return sb.String()
}

// TrackSVG draws the hull path as an SVG polyline, with a marker at the
// final position.
func TrackSVG(samples []sim.Sample, view TrackView, width, height int, theme Theme) string {
	if len(samples) < 2 {
		return ""
	}

	xs := make([]float64, len(samples))
	ys := make([]float64, len(samples))
	for i, s := range samples {
		xs[i], ys[i] = view.project(s.Position)
	}
	vp := FitViewport(xs, ys, width, height, 0.5)

	var sb strings.Builder
	writeSVGHeader(&sb, float64(width), float64(height))
	fmt.Fprintf(&sb, "<path fill=\"none\" stroke=\"%s\" stroke-width=\"1.5\" d=\"", theme.Primary)
	for i := range xs {
		x, y := vp.ToDots(xs[i], ys[i], width, height)
		if i == 0 {
			fmt.Fprintf(&sb, "M%d,%d", x, y)
		} else {
			fmt.Fprintf(&sb, " L%d,%d", x, y)
		}
	}
	sb.WriteString("\"/>\n")

	x, y := vp.ToDots(xs[len(xs)-1], ys[len(ys)-1], width, height)
	fmt.Fprintf(&sb, "<circle cx=\"%d\" cy=\"%d\" r=\"3\" fill=\"%s\"/>\n", x, y, theme.Accent)
	fmt.Fprintf(&sb, "<text x=\"8\" y=\"16\" fill=\"%s\" font-family=\"monospace\" font-size=\"12\">%s view, t=%.2fs</text>\n",
		theme.Muted, view, samples[len(samples)-1].Time)

	sb.WriteString("</svg>\n")
	return sb.String()
}

func writeSVGHeader(sb *strings.Builder, width, height float64) {
	fmt.Fprintf(sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, svgBackground)
}
