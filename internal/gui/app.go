package gui

import (
	"fmt"

	"github.com/charmbracelet/log"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/binstar/internal/config"
	"github.com/san-kum/binstar/internal/driver"
)

// Window colors.
var (
	ColBg      = rl.NewColor(0, 0, 0, 255)
	ColGrid    = rl.NewColor(130, 130, 130, 255)
	ColText    = rl.NewColor(200, 200, 200, 255)
	ColTextDim = rl.NewColor(90, 90, 90, 255)
	ColWarn    = rl.NewColor(230, 41, 55, 255)
)

const fovy = 45.0

type App struct {
	Driver *driver.Driver
	Frame  driver.Frame
	Camera rl.Camera3D

	cfg     *config.Config
	log     *log.Logger
	grabbed bool
}

func initWindow(w config.WindowConfig) {
	if w.HighDPI {
		rl.SetConfigFlags(rl.FlagWindowHighdpi)
	}
	rl.InitWindow(int32(w.Width), int32(w.Height), w.Title)
	rl.SetTargetFPS(int32(w.FPS))
	rl.SetExitKey(0)
}

func NewApp(cfg *config.Config, l *log.Logger) *App {
	d := driver.New(cfg.DriverOptions(l))
	f := d.Frame()
	return &App{
		Driver: d,
		Frame:  f,
		Camera: toCamera(f.Camera, fovy),
		cfg:    cfg,
		log:    l,
	}
}

// Run opens the window and blocks until it is closed or the driver quits.
func Run(cfg *config.Config, l *log.Logger) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	initWindow(cfg.Window)
	defer rl.CloseWindow()

	app := NewApp(cfg, l)
	l.Info("window open", "scenario", cfg.Name, "width", cfg.Window.Width, "height", cfg.Window.Height)
	app.RunLoop()
	l.Info("window closed", "ticks", app.Frame.Tick)
	return nil
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		if !a.Update() {
			return
		}
		a.Draw()
	}
}

// Update advances one frame and reports whether the loop should continue.
func (a *App) Update() bool {
	a.Frame = a.Driver.Tick(pollInput())
	if a.Frame.Quit {
		return false
	}
	a.syncCursor()
	a.Camera = toCamera(a.Frame.Camera, fovy)
	return true
}

func (a *App) syncCursor() {
	if a.Frame.Grabbed == a.grabbed {
		return
	}
	a.grabbed = a.Frame.Grabbed
	if a.grabbed {
		rl.DisableCursor()
	} else {
		rl.EnableCursor()
	}
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	a.drawScene()
	a.DrawHUD()

	rl.EndDrawing()
}

func (a *App) DrawHUD() {
	f := a.Frame
	rl.DrawText("binstar", 20, 20, 24, ColText)
	rl.DrawText(fmt.Sprintf(":: %s", a.cfg.Name), 130, 24, 16, ColTextDim)

	status, col := "RUNNING", ColText
	switch {
	case f.Degenerate:
		status, col = "DEGENERATE", ColWarn
	case f.Paused:
		status, col = "PAUSED", ColTextDim
	}
	w := int32(a.cfg.Window.Width)
	h := int32(a.cfg.Window.Height)
	rl.DrawText(status, w-160, 20, 16, col)

	rl.DrawText(fmt.Sprintf("tick %d  sep %.3f", f.Tick, f.Separation), 20, 52, 14, ColText)
	p := f.Camera.Position
	rl.DrawText(fmt.Sprintf("cam %.1f %.1f %.1f  yaw %.2f pitch %.2f",
		p[0], p[1], p[2], f.Camera.Yaw, f.Camera.Pitch), 20, 72, 14, ColTextDim)

	rl.DrawText("[WASD] MOVE  [SPACE/CTRL] UP/DOWN  [TAB] MOUSE  [P] PAUSE  [R] RESET  [Q] QUIT", 20, h-30, 14, ColTextDim)
	rl.DrawFPS(w-100, h-30)
}
