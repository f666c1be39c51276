package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/dinos/game"
)

// ActorPanel shows details of the most recently clicked actor.
type ActorPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	slot     int
	visible  bool
}

// NewActorPanel creates a panel anchored at the given corner.
func NewActorPanel(x, y, width int32) *ActorPanel {
	return &ActorPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// Select shows the panel for a slot.
func (p *ActorPanel) Select(slot int) {
	p.slot = slot
	p.visible = true
}

// Hide closes the panel.
func (p *ActorPanel) Hide() {
	p.visible = false
}

// Draw renders the panel. A vacant slot shows as respawning.
func (p *ActorPanel) Draw(actors []game.ActorView, roster *game.Roster) {
	if !p.visible {
		return
	}

	r := p.renderer
	pad := r.Theme.Padding
	height := r.Theme.LineHeight*6 + pad*2
	r.DrawPanel(p.x, p.y, p.width, height)

	x, y := p.x+pad, p.y+pad
	y = r.DrawSectionHeader(x, y, roster.Name(p.slot))

	var view *game.ActorView
	for i := range actors {
		if actors[i].Slot == p.slot {
			view = &actors[i]
			break
		}
	}
	if view == nil {
		rl.DrawText("respawning", x, y, r.Theme.FontSize, r.Theme.DeadColor)
		return
	}

	y = r.DrawLabelValue(x, y, "Score", fmt.Sprintf("%d", view.Score))
	y = r.DrawLabelValue(x, y, "Target", roster.Name(view.Target))
	y = r.DrawLabelValue(x, y, "Clip", view.Anim.String())
	y = r.DrawLabelValue(x, y, "Pos", fmt.Sprintf("%.0f, %.0f", view.X, view.Y))
	r.DrawLabelValue(x, y, "ID", view.ID.String()[20:])
}
