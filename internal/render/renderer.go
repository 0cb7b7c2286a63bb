package render

import (
	"time"

	"git.lost.host/meutraa/sightread/internal/game"
	"git.lost.host/meutraa/sightread/internal/notation"
)

// Frame is one complete picture of the practice screen.
type Frame struct {
	Layout        notation.DrawList
	Feedback      []*game.Feedback
	Status        string
	Held          []uint8
	ShowNoteNames bool
	Now           time.Time
}

type Renderer interface {
	Init() error
	Deinit() error
	// Viewport is the area available to the staves in layout pixels.
	Viewport() notation.Rect
	Draw(f *Frame) error
}
