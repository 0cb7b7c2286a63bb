package render

import (
	"io"
	"strings"

	"git.lost.host/meutraa/sightread/internal/game"
	"git.lost.host/meutraa/sightread/internal/notation"
	"git.lost.host/meutraa/sightread/internal/theme"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/pkg/errors"
	"golang.org/x/image/font/gofont/goregular"
)

// ImageRenderer paints frames onto an in-memory canvas. The last frame can
// be written out as a PNG.
type ImageRenderer struct {
	Theme  theme.Theme
	Width  int
	Height int

	dc   *gg.Context
	font *truetype.Font
}

func NewImage(th theme.Theme, width, height int) *ImageRenderer {
	return &ImageRenderer{Theme: th, Width: width, Height: height}
}

func (r *ImageRenderer) Init() error {
	font, err := truetype.Parse(goregular.TTF)
	if nil != err {
		return errors.Wrap(err, "unable to load font")
	}
	r.font = font
	r.dc = gg.NewContext(r.Width, r.Height)
	return nil
}

func (r *ImageRenderer) Deinit() error {
	r.dc = nil
	return nil
}

func (r *ImageRenderer) Viewport() notation.Rect {
	return notation.Rect{
		Y:      40,
		Width:  float64(r.Width),
		Height: float64(r.Height - 80),
	}
}

func (r *ImageRenderer) setColor(c theme.Color) {
	r.dc.SetRGB255(int(c.R), int(c.G), int(c.B))
}

func (r *ImageRenderer) face(size float64) {
	r.dc.SetFontFace(truetype.NewFace(r.font, &truetype.Options{Size: size}))
}

func (r *ImageRenderer) segment(s notation.Segment, width float64) {
	r.dc.SetLineWidth(width)
	r.dc.DrawLine(s.From.X, s.From.Y, s.To.X, s.To.Y)
	r.dc.Stroke()
}

func (r *ImageRenderer) Draw(f *Frame) error {
	if nil == r.dc {
		return errors.New("image renderer not initialised")
	}
	dc := r.dc

	r.setColor(r.Theme.Background())
	dc.DrawRectangle(0, 0, float64(r.Width), float64(r.Height))
	dc.Fill()

	r.setColor(r.Theme.StaffColor())
	for _, line := range f.Layout.StaffLines {
		r.segment(line, 1)
	}

	r.face(24)
	for _, c := range f.Layout.Clefs {
		label := "G"
		if c.Clef == notation.Bass {
			label = "F"
		}
		dc.DrawStringAnchored(label, c.At.X, c.At.Y, 0.5, 0.5)
	}

	r.face(10)
	for _, g := range f.Layout.Notes {
		r.note(g, g.Index == f.Layout.Cursor, f.ShowNoteNames)
	}

	r.face(14)
	r.setColor(r.Theme.StaffColor())
	dc.DrawString(f.Status, 10, 20)
	if len(f.Held) > 0 {
		names := make([]string, 0, len(f.Held))
		for _, p := range f.Held {
			names = append(names, game.PitchName(p))
		}
		dc.DrawStringAnchored(strings.Join(names, " "), float64(r.Width)-10, 20, 1, 0)
	}
	for i, fb := range f.Feedback {
		c := r.Theme.FeedbackColor(fb.Severity)
		dc.SetRGBA255(int(c.R), int(c.G), int(c.B), int(255*fb.Remaining(f.Now)))
		dc.DrawString(fb.Message, 10, float64(r.Height-10-20*(len(f.Feedback)-1-i)))
	}
	return nil
}

func (r *ImageRenderer) note(g notation.NoteGlyph, current, names bool) {
	dc := r.dc

	r.setColor(r.Theme.StaffColor())
	for _, ledger := range g.Ledgers {
		r.segment(ledger, 1)
	}

	c := r.Theme.NoteColor(g.Judgement)
	if current && g.Judgement == game.Unplayed {
		c = r.Theme.CursorColor()
	}
	r.setColor(c)

	dc.DrawCircle(g.Center.X, g.Center.Y, g.Radius)
	if g.Filled {
		dc.Fill()
	} else {
		dc.SetLineWidth(2)
		dc.Stroke()
	}
	if nil != g.Stem {
		r.segment(*g.Stem, 1.5)
	}
	if nil != g.Flag {
		r.segment(*g.Flag, 2)
	}
	if names {
		dc.DrawStringAnchored(g.Name, g.Center.X, g.Center.Y+3*g.Radius, 0.5, 1)
	}
}

func (r *ImageRenderer) EncodePNG(w io.Writer) error {
	if nil == r.dc {
		return errors.New("image renderer not initialised")
	}
	return r.dc.EncodePNG(w)
}

func (r *ImageRenderer) SavePNG(path string) error {
	if nil == r.dc {
		return errors.New("image renderer not initialised")
	}
	return errors.Wrapf(r.dc.SavePNG(path), "unable to save %s", path)
}
