package notation

import (
	"git.lost.host/meutraa/sightread/internal/game"
)

type Segment struct {
	From, To Point
}

type ClefGlyph struct {
	Clef Clef
	At   Point
}

// NoteGlyph is everything needed to paint one note head.
type NoteGlyph struct {
	Index     int
	Pitch     uint8
	Name      string
	Value     game.ValueClass
	Judgement game.Judgement
	Center    Point
	Radius    float64
	Filled    bool
	Stem      *Segment
	Flag      *Segment
	Ledgers   []Segment
}

type DrawList struct {
	StaffLines    []Segment
	Clefs         []ClefGlyph
	Notes         []NoteGlyph
	ContentHeight float64
	// Cursor is the index of the next note to play, -1 once all are correct.
	Cursor int
}

// Render lays out every note of a song in viewport coordinates.
func (l Layout) Render(viewport Rect, notes []*game.Note) DrawList {
	dl := DrawList{
		ContentHeight: l.ContentHeight(len(notes)),
		Cursor:        -1,
	}

	for i := 0; i < l.Systems(len(notes)); i++ {
		system := l.System(viewport, i)
		for _, staff := range []Staff{system.Treble, system.Bass} {
			for _, y := range staff.Lines() {
				dl.StaffLines = append(dl.StaffLines, Segment{
					From: Point{staff.Origin.X, y},
					To:   Point{staff.Origin.X + staff.Width, y},
				})
			}
			dl.Clefs = append(dl.Clefs, ClefGlyph{
				Clef: staff.Clef,
				At:   Point{staff.Origin.X + l.LineSpacing, staff.Middle()},
			})
		}
	}

	for i, n := range notes {
		if dl.Cursor < 0 && n.Judgement != game.Correct {
			dl.Cursor = i
		}
		dl.Notes = append(dl.Notes, l.glyph(viewport, i, n))
	}
	return dl
}

func (l Layout) glyph(viewport Rect, i int, n *game.Note) NoteGlyph {
	p := l.Place(viewport, i, n.Pitch)
	s := l.LineSpacing
	r := s / 2

	g := NoteGlyph{
		Index:     i,
		Pitch:     n.Pitch,
		Name:      n.Name(),
		Value:     n.Value,
		Judgement: n.Judgement,
		Center:    Point{p.X, p.Y},
		Radius:    r,
		Filled:    n.Value == game.Quarter || n.Value == game.Eighth,
	}

	for _, y := range p.Ledgers {
		g.Ledgers = append(g.Ledgers, Segment{
			From: Point{p.X - 1.5*r, y},
			To:   Point{p.X + 1.5*r, y},
		})
	}

	if n.Value == game.Whole {
		return g
	}

	// Stems go up from notes on or below the middle line
	up := p.Y >= p.Staff.Middle()
	if up {
		tip := Point{p.X + r, p.Y - 2*s}
		g.Stem = &Segment{From: Point{p.X + r, p.Y}, To: tip}
		if n.Value == game.Eighth {
			g.Flag = &Segment{From: tip, To: Point{tip.X + r, tip.Y + r}}
		}
	} else {
		tip := Point{p.X - r, p.Y + 2*s}
		g.Stem = &Segment{From: Point{p.X - r, p.Y}, To: tip}
		if n.Value == game.Eighth {
			g.Flag = &Segment{From: tip, To: Point{tip.X + r, tip.Y - r}}
		}
	}
	return g
}
