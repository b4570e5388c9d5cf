package gui

import (
	"fmt"
	"math"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/starfield/internal/sim"
)

var (
	ColBg      = rl.NewColor(0, 0, 0, 255)
	ColStar    = rl.NewColor(255, 255, 255, 255)
	ColCaption = rl.NewColor(255, 255, 255, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
	ColAccent  = rl.NewColor(180, 180, 180, 255)
)

const (
	maxCatchUp = 4
	fontPath   = "/usr/share/fonts/liberation/LiberationSans-Bold.ttf"
)

type Options struct {
	Title         string
	Mode          string
	Width, Height int
	FPS           int
	FrameMs       float64
}

// App is the windowed front end. It feeds raylib input into the simulator
// and draws every projected snapshot.
type App struct {
	Sim        *sim.Simulator
	State      sim.State
	Opts       Options
	Running    bool
	ShowHUD    bool
	Telemetry  []float64
	MaxHistory int
	Font       rl.Font

	lastMouseX int32
	quit       bool
}

func initWindow(o Options) {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(o.Width), int32(o.Height), o.Title)
	rl.SetTargetFPS(int32(o.FPS))
	rl.SetExitKey(0)
}

// loadFont prefers a bold system face for captions and falls back to the
// raylib default font.
func loadFont() rl.Font {
	if _, err := os.Stat(fontPath); err != nil {
		return rl.GetFontDefault()
	}
	font := rl.LoadFontEx(fontPath, 96, nil, 0)
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

func NewApp(s *sim.Simulator, o Options) *App {
	return &App{
		Sim:        s,
		State:      s.State(),
		Opts:       o,
		Running:    true,
		ShowHUD:    true,
		MaxHistory: 300,
		Telemetry:  make([]float64, 0, 300),
		Font:       loadFont(),
		lastMouseX: -1,
	}
}

// Run opens the window and blocks until it is closed.
func Run(s *sim.Simulator, o Options) {
	if o.Width <= 0 || o.Height <= 0 {
		o.Width, o.Height = 1280, 720
	}
	if o.FPS <= 0 {
		o.FPS = 60
	}
	if o.FrameMs <= 0 {
		o.FrameMs = 1000 / float64(o.FPS)
	}
	if o.Title == "" {
		o.Title = "starfield"
	}
	initWindow(o)
	defer rl.CloseWindow()
	app := NewApp(s, o)
	app.RunLoop()
}

func (a *App) RunLoop() {
	for !a.quit && !rl.WindowShouldClose() {
		a.Update()
		a.Draw()
	}
}

func (a *App) apply(ev sim.Event) {
	a.State = a.Sim.Apply(ev)
	if _, ok := ev.(sim.Tick); !ok {
		return
	}
	a.Telemetry = append(a.Telemetry, a.State.Speed)
	if len(a.Telemetry) > a.MaxHistory {
		a.Telemetry = a.Telemetry[1:]
	}
}

func (a *App) Update() {
	if rl.IsKeyPressed(rl.KeyQ) {
		a.quit = true
		return
	}
	if rl.IsKeyPressed(rl.KeySpace) || rl.IsKeyPressed(rl.KeyRight) || rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		a.apply(sim.AdvancePressed{})
	}
	if rl.IsKeyPressed(rl.KeyP) {
		a.Running = !a.Running
	}
	if rl.IsKeyPressed(rl.KeyH) {
		a.ShowHUD = !a.ShowHUD
	}

	if x := rl.GetMouseX(); x != a.lastMouseX {
		a.lastMouseX = x
		a.apply(sim.PointerMoved{X: float64(x), ViewportWidth: float64(rl.GetScreenWidth())})
	}

	if !a.Running {
		return
	}
	delta := math.Min(float64(rl.GetFrameTime())*1000, a.Opts.FrameMs*maxCatchUp)
	a.apply(sim.Tick{DeltaMs: delta})
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	a.drawScene()
	if a.ShowHUD {
		a.DrawHUD()
	}

	rl.EndDrawing()
}

func (a *App) DrawHUD() {
	w, h := rl.GetScreenWidth(), rl.GetScreenHeight()
	a.drawText(a.Opts.Title, 30, 30, 24, ColAccent)
	a.drawText(fmt.Sprintf(":: %s", a.Opts.Mode), 30, 58, 16, ColText)

	a.DrawTelemetry(30, h-110)

	status := "RUNNING"
	col := ColAccent
	if !a.Running {
		status = "PAUSED"
		col = ColTextDim
	}
	a.drawText(status, w-150, 30, 16, col)

	s := a.State
	if len(s.Slides) > 0 {
		a.drawText(fmt.Sprintf("SLIDE %d/%d", s.CurrentSlide+1, len(s.Slides)), w-150, 52, 16, ColText)
	}
	a.drawText(fmt.Sprintf("POS %.2f  STARS %d", s.CurrentPosition, len(s.Stars)), 30, h-40, 14, ColTextDim)
	a.drawText("[SPACE] NEXT  [P] PAUSE  [H] HUD  [Q] QUIT", w-400, h-40, 14, ColTextDim)
	a.drawText(fmt.Sprintf("%d FPS", int32(rl.GetFPS())), w-150, 74, 14, ColTextDim)
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawTextEx(a.Font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}

// DrawTelemetry plots recent speed as a line strip.
func (a *App) DrawTelemetry(rectX, rectY int) {
	if len(a.Telemetry) < 2 {
		return
	}
	width, height := 400, 60

	minVal, maxVal := a.Telemetry[0], a.Telemetry[0]
	for _, v := range a.Telemetry {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	points := make([]rl.Vector2, len(a.Telemetry))
	for i, val := range a.Telemetry {
		px := float32(rectX) + (float32(i)/float32(len(a.Telemetry)))*float32(width)
		norm := (val - minVal) / (maxVal - minVal)
		py := float32(rectY+height) - float32(norm)*float32(height)
		points[i] = rl.NewVector2(px, py)
	}

	rl.DrawLineStrip(points, ColAccent)
	a.drawText(fmt.Sprintf("v: %.4f", a.Telemetry[len(a.Telemetry)-1]), rectX+width+10, rectY+height-10, 14, ColText)
}
