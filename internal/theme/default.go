package theme

import (
	"fmt"

	"git.lost.host/meutraa/sightread/internal/game"
	"git.lost.host/meutraa/sightread/internal/notation"
)

type DefaultTheme struct {
}

func (t *DefaultTheme) Background() Color {
	return Color{255, 255, 255}
}

func (t *DefaultTheme) StaffColor() Color {
	return Color{106, 106, 106}
}

func (t *DefaultTheme) CursorColor() Color {
	return Color{0, 118, 236}
}

func (t *DefaultTheme) NoteColor(j game.Judgement) Color {
	return getColor(judgementColors, int(j))
}

func (t *DefaultTheme) FeedbackColor(s game.Severity) Color {
	return getColor(severityColors, int(s))
}

func (t *DefaultTheme) RenderNote(g notation.NoteGlyph, current bool) string {
	c := t.NoteColor(g.Judgement)
	if current && g.Judgement == game.Unplayed {
		c = t.CursorColor()
	}
	return paint(c, noteSym(g.Value))
}

func (t *DefaultTheme) RenderClef(c notation.Clef) string {
	if c == notation.Bass {
		return paint(t.StaffColor(), bassSym)
	}
	return paint(t.StaffColor(), trebleSym)
}

func (t *DefaultTheme) RenderFeedback(f *game.Feedback) string {
	return paint(t.FeedbackColor(f.Severity), f.Message)
}

func paint(c Color, s string) string {
	return fmt.Sprintf("\033[38;2;%v;%v;%vm%v\033[0m", c.R, c.G, c.B, s)
}

const (
	trebleSym = "𝄞"
	bassSym   = "𝄢"
)

var (
	syms = map[game.ValueClass]string{
		game.Whole:   "◯",
		game.Half:    "◐",
		game.Quarter: "⬤",
		game.Eighth:  "♪",
	}
	judgementColors = map[int]Color{
		int(game.Unplayed):  {0, 0, 0},
		int(game.Correct):   {0, 150, 0},
		int(game.Incorrect): {200, 0, 0},
		-1:                  {106, 106, 106},
	}
	severityColors = map[int]Color{
		int(game.Info):    {0, 118, 236},
		int(game.Success): {0, 150, 0},
		int(game.Failure): {200, 0, 0},
		-1:                {106, 106, 106},
	}
)

func noteSym(v game.ValueClass) string {
	sym, ok := syms[v]
	if !ok {
		return syms[game.Quarter]
	}
	return sym
}

func getColor(colors map[int]Color, key int) Color {
	col, ok := colors[key]
	if !ok {
		return colors[-1]
	}
	return col
}
