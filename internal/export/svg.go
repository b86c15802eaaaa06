package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/bookloader/internal/scene"
	"github.com/san-kum/bookloader/internal/viz"
)

// SceneToSVG draws sc as round-capped SVG polylines. The square of half-size
// scene.Extent around the origin fills the shorter side.
func SceneToSVG(sc scene.Scene, width, height int, strokeColor, background string) string {
	s := float64(min(width, height)) / (2 * scene.Extent)
	ox, oy := float64(width)/2, float64(height)/2

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<g fill="none" stroke="%s" stroke-linecap="round" stroke-linejoin="round">
`, width, height, width, height, background, strokeColor))

	for _, st := range sc.Strokes {
		if len(st.Points) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf(`<polyline id="%s" stroke-width="%.2f" points="`, st.Name, st.Width*s))
		for i, p := range st.Points {
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(fmt.Sprintf("%.2f,%.2f", ox+p.X*s, oy+p.Y*s))
		}
		sb.WriteString("\"/>\n")
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// CanvasToSVG converts a Braille canvas to SVG format
func CanvasToSVG(canvas *viz.Canvas, scale float64, dotColor, background string) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2   // 2 sub-pixels per char
	height := float64(canvas.Height) * scale * 4 // 4 sub-pixels per char

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
<g fill="%s">
`, width, height, width, height, background, dotColor))

	dotRadius := scale * 0.4

	for y := 0; y < canvas.Height*4; y++ {
		for x := 0; x < canvas.Width*2; x++ {
			if !canvas.IsSet(x, y) {
				continue
			}
			cx := float64(x)*scale + scale/2
			cy := float64(y)*scale + scale/2
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f"/>
`, cx, cy, dotRadius))
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}
