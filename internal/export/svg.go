package export

import (
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/san-kum/starfield/internal/render"
)

type Style struct {
	Background string
	Stroke     string
	TextFill   string
	FontFamily string
}

func DefaultStyle() Style {
	return Style{
		Background: "#000000",
		Stroke:     "white",
		TextFill:   "white",
		FontFamily: "Impact",
	}
}

// ModelToSVG draws a projected frame: one line per star and one centred
// caption per visible slide, farthest first so nearer captions sit on top.
func ModelToSVG(m render.Model, vp render.Viewport, style Style) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
<g stroke="%s" stroke-width="1">
`, vp.Width, vp.Height, vp.Width, vp.Height, style.Background, style.Stroke))

	for _, l := range m.Stars {
		sb.WriteString(fmt.Sprintf(`<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f"/>
`, l.X1, l.Y1, l.X2, l.Y2))
	}
	sb.WriteString("</g>\n")

	for _, t := range m.FarthestFirst() {
		sb.WriteString(fmt.Sprintf(`<text x="%.2f" y="%.2f" fill="%s" font-family="%s" font-size="%.3f" letter-spacing="%.3f" text-anchor="middle">%s</text>
`, t.X, t.Y, style.TextFill, style.FontFamily, t.FontSize, t.LetterSpacing, html.EscapeString(t.Text)))
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

func WriteSVG(w io.Writer, m render.Model, vp render.Viewport, style Style) error {
	_, err := io.WriteString(w, ModelToSVG(m, vp, style))
	return err
}
