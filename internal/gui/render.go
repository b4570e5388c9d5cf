package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/starfield/internal/render"
)

// captions above this size cover the whole window and are skipped
const maxFontScale = 8

func (a *App) viewport() render.Viewport {
	return render.Viewport{Width: float64(rl.GetScreenWidth()), Height: float64(rl.GetScreenHeight())}
}

func (a *App) drawScene() {
	vp := a.viewport()
	frame := render.Project(a.State, vp)
	a.RenderStars(frame)
	a.RenderCaptions(frame, vp)
}

func (a *App) RenderStars(frame render.Model) {
	for _, l := range frame.Stars {
		rl.DrawLineV(rl.NewVector2(float32(l.X1), float32(l.Y1)), rl.NewVector2(float32(l.X2), float32(l.Y2)), ColStar)
	}
}

// RenderCaptions draws each visible slide centred on its anchor.
func (a *App) RenderCaptions(frame render.Model, vp render.Viewport) {
	for _, t := range frame.FarthestFirst() {
		if t.FontSize < 1 || t.FontSize > vp.Height*maxFontScale {
			continue
		}
		size, spacing := float32(t.FontSize), float32(t.LetterSpacing)
		extent := rl.MeasureTextEx(a.Font, t.Text, size, spacing)
		pos := rl.NewVector2(float32(t.X)-extent.X/2, float32(t.Y)-extent.Y/2)
		rl.DrawTextEx(a.Font, t.Text, pos, size, spacing, ColCaption)
	}
}
