package terminal

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/dinos/config"
	"github.com/pthm-cable/dinos/game"
)

func newTestFrontend(t *testing.T) (*Frontend, *game.Game, tcell.SimulationScreen) {
	t.Helper()
	scr := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, scr.Init())
	scr.SetSize(80, 24)
	t.Cleanup(scr.Fini)

	cfg := config.Default()
	f := New(cfg, scr)
	g, err := game.NewGame(cfg, f, game.Options{Seed: 7})
	require.NoError(t, err)
	return f, g, scr
}

func screenLines(scr tcell.SimulationScreen) []string {
	scr.Show()
	cells, width, _ := scr.GetContents()
	var lines []string
	var buf bytes.Buffer
	for i := range cells {
		if i > 0 && i%width == 0 {
			lines = append(lines, buf.String())
			buf.Reset()
		}
		buf.Write(cells[i].Bytes)
	}
	return append(lines, buf.String())
}

func actorCell(f *Frontend, a game.ActorView) (int, int) {
	return f.toCell(a.X, a.Y)
}

func TestViewportExcludesStatusRow(t *testing.T) {
	f, g, _ := newTestFrontend(t)

	w, h := f.Viewport()
	assert.Equal(t, float32(960), w)
	assert.Equal(t, float32(23*24), h)
	assert.Equal(t, float32(960), g.Area().W)
}

func TestDrawStatusLine(t *testing.T) {
	f, g, scr := newTestFrontend(t)

	g.TogglePause()
	f.Draw(g)

	lines := screenLines(scr)
	require.Len(t, lines, 24)
	status := lines[23]
	for _, name := range []string{"Doux 0", "Mort 0", "Tard 0", "Vita 0"} {
		assert.Contains(t, status, name)
	}
	assert.Contains(t, status, "PAUSED")
}

func TestDrawActorLabels(t *testing.T) {
	f, g, scr := newTestFrontend(t)
	f.Draw(g)

	screen := strings.Join(screenLines(scr)[:23], "\n")
	for _, a := range g.Actors() {
		assert.Contains(t, screen, a.Name)
	}
}

func TestKeys(t *testing.T) {
	f, g, _ := newTestFrontend(t)

	assert.False(t, f.HandleEvent(g, tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone)))
	assert.True(t, g.Paused())

	f.HandleEvent(g, tcell.NewEventKey(tcell.KeyRune, '.', tcell.ModNone))
	f.HandleEvent(g, tcell.NewEventKey(tcell.KeyRune, '.', tcell.ModNone))
	assert.Equal(t, 3, g.Speed())
	f.HandleEvent(g, tcell.NewEventKey(tcell.KeyRune, ',', tcell.ModNone))
	assert.Equal(t, 2, g.Speed())

	assert.True(t, f.HandleEvent(g, tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)))
	assert.True(t, f.HandleEvent(g, tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
	assert.True(t, f.HandleEvent(g, tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModNone)))
}

func TestMouseHoverOpensTooltip(t *testing.T) {
	f, g, _ := newTestFrontend(t)
	a := g.Actors()[0]
	col, row := actorCell(f, a)

	f.HandleEvent(g, tcell.NewEventMouse(col, row, tcell.ButtonNone, tcell.ModNone))

	tips := g.Tooltips()
	require.Len(t, tips, 1)
	assert.Equal(t, a.Slot, tips[0].Slot)
	assert.Equal(t, a.Name, tips[0].Text)
}

func TestMouseClickCyclesOncePerPress(t *testing.T) {
	f, g, _ := newTestFrontend(t)
	a := g.Actors()[1]
	col, row := actorCell(f, a)
	n := g.Roster().Len()

	targetOf := func() int {
		for _, v := range g.Actors() {
			if v.Slot == a.Slot {
				return v.Target
			}
		}
		t.Fatalf("slot %d vacant", a.Slot)
		return -1
	}

	// Held button reports repeatedly; only the press edge counts
	f.HandleEvent(g, tcell.NewEventMouse(col, row, tcell.Button1, tcell.ModNone))
	f.HandleEvent(g, tcell.NewEventMouse(col, row, tcell.Button1, tcell.ModNone))
	assert.Equal(t, (a.Target+1)%n, targetOf())

	f.HandleEvent(g, tcell.NewEventMouse(col, row, tcell.ButtonNone, tcell.ModNone))
	f.HandleEvent(g, tcell.NewEventMouse(col, row, tcell.Button1, tcell.ModNone))
	assert.Equal(t, (a.Target+2)%n, targetOf())
}

func TestRunStopsAtMaxTicks(t *testing.T) {
	f, g, _ := newTestFrontend(t)

	require.NoError(t, f.Run(context.Background(), g, 3))
	assert.GreaterOrEqual(t, int(g.Tick()), 3)
}

func TestRunStopsOnCancel(t *testing.T) {
	f, g, _ := newTestFrontend(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.NoError(t, f.Run(ctx, g, 0))
}
