package renderer

import rl "github.com/gen2brain/raylib-go/raylib"

// Background draws a checkered ground texture behind the play area.
type Background struct {
	tex         rl.Texture2D
	width       int32
	height      int32
	tile        int32
	initialized bool
}

// NewBackground creates a background covering width x height pixels.
func NewBackground(width, height, tile int32) *Background {
	return &Background{width: width, height: height, tile: tile}
}

// Init builds the texture. Must be called after the raylib window is created.
func (b *Background) Init() {
	if b.initialized {
		return
	}

	img := rl.GenImageChecked(
		int(b.width), int(b.height),
		int(b.tile), int(b.tile),
		rl.Color{R: 96, G: 140, B: 78, A: 255},
		rl.Color{R: 88, G: 130, B: 72, A: 255},
	)
	b.tex = rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)

	b.initialized = true
}

// Draw renders the ground.
func (b *Background) Draw() {
	if !b.initialized {
		b.Init()
	}
	rl.DrawTexture(b.tex, 0, 0, rl.White)
}

// Unload frees resources.
func (b *Background) Unload() {
	if b.initialized {
		rl.UnloadTexture(b.tex)
		b.initialized = false
	}
}
