// Package renderer draws the simulation in a raylib window and serves as its substrate.
package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/samber/oops"

	"github.com/pthm-cable/dinos/config"
	"github.com/pthm-cable/dinos/game"
	"github.com/pthm-cable/dinos/sprites"
	"github.com/pthm-cable/dinos/ui"
)

// Window is the raylib frontend. It implements game.Substrate once Load has run.
type Window struct {
	cfg        *config.Config
	sheets     map[string]rl.Texture2D
	background *Background
	animator   *sprites.Animator
	hud        *ui.HUD
	panel      *ui.ActorPanel
}

// NewWindow creates the frontend. Call Load after rl.InitWindow.
func NewWindow(cfg *config.Config) *Window {
	return &Window{
		cfg:      cfg,
		sheets:   make(map[string]rl.Texture2D, len(cfg.Roster.Names)),
		animator: sprites.NewAnimator(cfg),
		hud:      ui.NewHUD(),
		panel:    ui.NewActorPanel(10, 10, 200),
	}
}

// Load reads one sprite sheet per identity.
func (w *Window) Load() error {
	for _, name := range w.cfg.Roster.Names {
		path := sprites.SheetPath(w.cfg.Sprites.Dir, name)
		tex := rl.LoadTexture(path)
		if tex.ID == 0 {
			w.Unload()
			return oops.Code("ASSET_LOAD_FAILED").
				With("name", name).
				With("path", path).
				Errorf("load sprite sheet")
		}
		rl.SetTextureFilter(tex, rl.FilterPoint)
		w.sheets[name] = tex
	}

	w.background = NewBackground(int32(w.cfg.Screen.Width), w.playHeight(), 48)
	w.background.Init()
	return nil
}

// Unload frees textures.
func (w *Window) Unload() {
	for name, tex := range w.sheets {
		rl.UnloadTexture(tex)
		delete(w.sheets, name)
	}
	if w.background != nil {
		w.background.Unload()
	}
}

func (w *Window) playHeight() int32 {
	return int32(w.cfg.Screen.Height - w.cfg.Screen.HUDHeight)
}

// Viewport returns the play area above the HUD strip.
func (w *Window) Viewport() (float32, float32) {
	return float32(w.cfg.Screen.Width), float32(w.playHeight())
}

// Footprint returns the scaled frame size of an identity's sheet.
func (w *Window) Footprint(name string) (float32, float32) {
	scale := float32(w.cfg.Sprites.Scale)
	tex, ok := w.sheets[name]
	if !ok || w.cfg.Sprites.Frames <= 0 {
		return w.cfg.Derived.FootprintW, w.cfg.Derived.FootprintH
	}
	frameW := float32(tex.Width) / float32(w.cfg.Sprites.Frames)
	return frameW * scale, float32(tex.Height) * scale
}

// HandleInput applies keyboard and mouse input for this frame.
func (w *Window) HandleInput(g *game.Game) {
	if rl.IsKeyPressed(rl.KeySpace) {
		g.TogglePause()
	}
	if rl.IsKeyPressed(rl.KeyComma) {
		g.SetSpeed(g.Speed() - 1)
	}
	if rl.IsKeyPressed(rl.KeyPeriod) {
		g.SetSpeed(g.Speed() + 1)
	}
	if rl.IsMouseButtonPressed(rl.MouseButtonRight) {
		w.panel.Hide()
	}

	mouse := rl.GetMousePosition()
	if mouse.Y >= float32(w.playHeight()) {
		return
	}
	g.HoverAt(mouse.X, mouse.Y)
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		if slot, ok := g.ActorAt(mouse.X, mouse.Y); ok {
			g.CycleTarget(slot)
			w.panel.Select(slot)
		}
	}
}

// Draw renders one frame. dt is the wall-clock frame time used for sprite playback.
func (w *Window) Draw(g *game.Game, dt float64) {
	g.RecordFrame()

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)
	w.background.Draw()

	actors := g.Actors()
	w.drawActors(actors, dt)
	w.drawTooltips(g.Tooltips())
	w.panel.Draw(actors, g.Roster())

	actions := w.hud.Draw(ui.HUDData{
		Scores:   g.Scoreboard(),
		Tick:     g.Tick(),
		SimTime:  g.SimTime(),
		Speed:    g.Speed(),
		MaxSpeed: game.MaxSpeed,
		FPS:      rl.GetFPS(),
		Paused:   g.Paused(),
		Y:        w.playHeight(),
		Width:    int32(w.cfg.Screen.Width),
		Height:   int32(w.cfg.Screen.HUDHeight),
	})
	if actions.TogglePause {
		g.TogglePause()
	}
	if actions.Speed != g.Speed() {
		g.SetSpeed(actions.Speed)
	}

	rl.EndDrawing()
}

func (w *Window) drawActors(actors []game.ActorView, dt float64) {
	frameW := float32(w.cfg.Sprites.FrameWidth)
	frameH := float32(w.cfg.Sprites.FrameHeight)

	w.animator.Begin()
	for _, a := range actors {
		tex, ok := w.sheets[a.Name]
		if !ok {
			continue
		}
		frame := w.animator.Frame(a.ID, a.Anim, dt)

		src := rl.Rectangle{X: float32(frame) * frameW, Y: 0, Width: frameW, Height: frameH}
		if a.FlipX {
			src.Width = -src.Width
		}
		dst := rl.Rectangle{X: a.X, Y: a.Y, Width: a.W, Height: a.H}
		origin := rl.Vector2{X: a.W / 2, Y: a.H / 2}
		rl.DrawTexturePro(tex, src, dst, origin, a.Angle*180/math.Pi, rl.White)
	}
	w.animator.End()
}

func (w *Window) drawTooltips(tips []game.Tooltip) {
	size := int32(w.cfg.Tooltip.TextSize)
	for _, tip := range tips {
		rl.DrawRectangle(int32(tip.X), int32(tip.Y), int32(tip.W), int32(tip.H), rl.White)
		textW := rl.MeasureText(tip.Text, size)
		x := int32(tip.X+tip.W/2) - textW/2
		y := int32(tip.Y+tip.H/2) - size/2
		rl.DrawText(tip.Text, x, y, size, rl.Black)
	}
}
