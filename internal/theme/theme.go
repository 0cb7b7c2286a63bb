package theme

import (
	"image/color"

	"git.lost.host/meutraa/sightread/internal/game"
	"git.lost.host/meutraa/sightread/internal/notation"
)

type Color struct {
	R, G, B uint8
}

func (c Color) RGBA() color.RGBA {
	return color.RGBA{c.R, c.G, c.B, 255}
}

type Theme interface {
	Background() Color
	StaffColor() Color
	CursorColor() Color
	NoteColor(j game.Judgement) Color
	FeedbackColor(s game.Severity) Color
	RenderNote(g notation.NoteGlyph, current bool) string
	RenderClef(c notation.Clef) string
	RenderFeedback(f *game.Feedback) string
}
