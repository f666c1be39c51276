package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/dinos/game"
)

// HUDData holds all the data needed to render the HUD strip.
type HUDData struct {
	Scores   []game.ScoreEntry
	Tick     int32
	SimTime  float64
	Speed    int
	MaxSpeed int
	FPS      int32
	Paused   bool
	Y        int32 // top of the strip
	Width    int32
	Height   int32
}

// HUDActions reports what the user changed through the HUD controls this frame.
type HUDActions struct {
	TogglePause bool
	Speed       int
}

// HUD renders the strip below the play area: scoreboard, status and controls.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Draw renders the HUD and returns the control changes.
func (h *HUD) Draw(data HUDData) HUDActions {
	theme := h.renderer.Theme
	rl.DrawRectangle(0, data.Y, data.Width, data.Height, theme.PanelBg)
	rl.DrawLine(0, data.Y, data.Width, data.Y, theme.PanelBorder)

	textY := data.Y + (data.Height-theme.FontSize)/2
	x := int32(8)
	for _, entry := range data.Scores {
		color := theme.ValueColor
		label := fmt.Sprintf("%s %d", entry.Name, entry.Score)
		if !entry.Alive {
			color = theme.DeadColor
			label += " (respawning)"
		}
		rl.DrawText(label, x, textY, theme.FontSize, color)
		x += rl.MeasureText(label, theme.FontSize) + 16
	}

	status := fmt.Sprintf("t=%.1fs  tick %d  %d fps", data.SimTime, data.Tick, data.FPS)
	rl.DrawText(status, x, textY, theme.FontSize, theme.LabelColor)

	// Controls, right-aligned
	actions := HUDActions{Speed: data.Speed}
	ctrlY := float32(data.Y + 3)
	ctrlH := float32(data.Height - 6)

	sliderX := float32(data.Width) - 190
	value := gui.SliderBar(
		rl.Rectangle{X: sliderX, Y: ctrlY, Width: 110, Height: ctrlH},
		"1x", fmt.Sprintf("%dx", data.MaxSpeed),
		float32(data.Speed), 1, float32(data.MaxSpeed),
	)
	actions.Speed = int(value + 0.5)

	label := "Pause"
	if data.Paused {
		label = "Resume"
	}
	if gui.Button(rl.Rectangle{X: sliderX - 90, Y: ctrlY, Width: 60, Height: ctrlH}, label) {
		actions.TogglePause = true
	}

	return actions
}
