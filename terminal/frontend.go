// Package terminal runs the simulation in a text terminal using tcell.
//
// World coordinates map to cells through the configured cell size. The bottom row
// is reserved for the status line.
package terminal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/dinos/components"
	"github.com/pthm-cable/dinos/config"
	"github.com/pthm-cable/dinos/game"
)

// frameInterval is the redraw and update cadence (~60 FPS).
const frameInterval = 16 * time.Millisecond

var slotColors = []tcell.Color{
	tcell.ColorGreen,
	tcell.ColorBlue,
	tcell.ColorYellow,
	tcell.ColorRed,
	tcell.ColorPurple,
	tcell.ColorTeal,
}

// Frontend draws actors as blocks of cells and feeds keyboard and mouse input back
// into the game. It implements game.Substrate.
type Frontend struct {
	cfg        *config.Config
	screen     tcell.Screen
	cols, rows int
	cellW      float32
	cellH      float32
	buttons    tcell.ButtonMask
}

// New wraps an initialized screen. The viewport is fixed at the screen size seen here.
func New(cfg *config.Config, screen tcell.Screen) *Frontend {
	screen.EnableMouse()
	cols, rows := screen.Size()
	return &Frontend{
		cfg:    cfg,
		screen: screen,
		cols:   cols,
		rows:   rows,
		cellW:  float32(cfg.Terminal.CellWidth),
		cellH:  float32(cfg.Terminal.CellHeight),
	}
}

// Viewport returns the play area in world units, excluding the status row.
func (f *Frontend) Viewport() (float32, float32) {
	rows := f.rows - 1
	if rows < 0 {
		rows = 0
	}
	return float32(f.cols) * f.cellW, float32(rows) * f.cellH
}

// Footprint returns the configured sprite footprint for every identity.
func (f *Frontend) Footprint(string) (float32, float32) {
	return f.cfg.Derived.FootprintW, f.cfg.Derived.FootprintH
}

// Run updates and redraws the game until ctx is cancelled, the user quits, or
// maxTicks is reached (0 = unlimited). The screen must be finalized by the caller.
func (f *Frontend) Run(ctx context.Context, g *game.Game, maxTicks int) error {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	done := make(chan struct{})
	defer close(done)

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := f.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case eventChan <- ev:
			case <-done:
				return
			}
		}
	}()

	f.Draw(g)
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-eventChan:
			if f.HandleEvent(g, ev) {
				return nil
			}

		case <-ticker.C:
			g.Update()
			f.Draw(g)
			if maxTicks > 0 && int(g.Tick()) >= maxTicks {
				return nil
			}
		}
	}
}

// HandleEvent applies one input event. It returns true when the user asked to quit.
func (f *Frontend) HandleEvent(g *game.Game, ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return true
		}
		if ev.Key() != tcell.KeyRune {
			return false
		}
		switch ev.Rune() {
		case 'q', 'Q':
			return true
		case ' ':
			g.TogglePause()
		case ',', '<':
			g.SetSpeed(g.Speed() - 1)
		case '.', '>':
			g.SetSpeed(g.Speed() + 1)
		}

	case *tcell.EventMouse:
		col, row := ev.Position()
		pressed := ev.Buttons()&tcell.Button1 != 0 && f.buttons&tcell.Button1 == 0
		f.buttons = ev.Buttons()
		if row >= f.rows-1 {
			return false
		}
		x, y := f.toWorld(col, row)
		g.HoverAt(x, y)
		if pressed {
			g.ClickAt(x, y)
		}

	case *tcell.EventResize:
		f.screen.Sync()
	}
	return false
}

// toWorld returns the world point at the center of a cell.
func (f *Frontend) toWorld(col, row int) (float32, float32) {
	return (float32(col) + 0.5) * f.cellW, (float32(row) + 0.5) * f.cellH
}

// toCell returns the cell containing a world point.
func (f *Frontend) toCell(x, y float32) (int, int) {
	return int(x / f.cellW), int(y / f.cellH)
}

// Draw renders the current frame.
func (f *Frontend) Draw(g *game.Game) {
	g.RecordFrame()
	f.screen.Clear()

	for _, a := range g.Actors() {
		f.drawActor(a)
	}
	for _, tip := range g.Tooltips() {
		f.drawTooltip(tip)
	}
	f.drawStatus(g)

	f.screen.Show()
}

func (f *Frontend) drawActor(a game.ActorView) {
	color := slotColors[a.Slot%len(slotColors)]
	style := tcell.StyleDefault.Background(color).Foreground(tcell.ColorBlack)
	if a.Anim == components.AnimCharge {
		style = style.Bold(true)
	}

	c0, r0 := f.toCell(a.X-a.W/2, a.Y-a.H/2)
	c1, r1 := f.toCell(a.X+a.W/2-1, a.Y+a.H/2-1)
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			f.setCell(col, row, ' ', style)
		}
	}

	head := '>'
	if a.FlipX {
		head = '<'
	}
	label := string(head) + a.Name
	midRow := (r0 + r1) / 2
	start := (c0+c1+1)/2 - len(label)/2
	f.drawText(start, midRow, label, style)
}

func (f *Frontend) drawTooltip(tip game.Tooltip) {
	style := tcell.StyleDefault.Background(tcell.ColorWhite).Foreground(tcell.ColorBlack)
	c0, row := f.toCell(tip.X, tip.Y)
	c1, _ := f.toCell(tip.X+tip.W-1, tip.Y)
	for col := c0; col <= c1; col++ {
		f.setCell(col, row, ' ', style)
	}
	f.drawText((c0+c1+1)/2-len(tip.Text)/2, row, tip.Text, style)
}

func (f *Frontend) drawStatus(g *game.Game) {
	var b strings.Builder
	for _, entry := range g.Scoreboard() {
		if entry.Alive {
			fmt.Fprintf(&b, "%s %d  ", entry.Name, entry.Score)
		} else {
			fmt.Fprintf(&b, "%s %d (out)  ", entry.Name, entry.Score)
		}
	}
	fmt.Fprintf(&b, "| t=%.1fs %dx", g.SimTime(), g.Speed())
	if g.Paused() {
		b.WriteString(" PAUSED")
	}

	style := tcell.StyleDefault.Reverse(true)
	row := f.rows - 1
	for col := 0; col < f.cols; col++ {
		f.setCell(col, row, ' ', style)
	}
	f.drawText(0, row, b.String(), style)
}

func (f *Frontend) drawText(col, row int, text string, style tcell.Style) {
	for i, r := range []rune(text) {
		f.setCell(col+i, row, r, style)
	}
}

// setCell clips to the screen.
func (f *Frontend) setCell(col, row int, r rune, style tcell.Style) {
	if col < 0 || row < 0 || col >= f.cols || row >= f.rows {
		return
	}
	f.screen.SetContent(col, row, r, nil, style)
}
