package render

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"git.lost.host/meutraa/sightread/internal/game"
	"git.lost.host/meutraa/sightread/internal/notation"
	"git.lost.host/meutraa/sightread/internal/theme"
	"golang.org/x/term"
)

const (
	// One terminal row is one semiline at the default line spacing.
	CellWidth  = 8
	CellHeight = 6

	headerRows = 2
)

type DefaultRenderer struct {
	Out   io.Writer
	Theme theme.Theme
	// Used when the size of Fd cannot be queried.
	Columns, Rows int

	fd           int
	buffer       strings.Builder
	restoreState *term.State
}

func NewTerminal(th theme.Theme) *DefaultRenderer {
	return &DefaultRenderer{
		Out:     os.Stdout,
		Theme:   th,
		Columns: 120,
		Rows:    40,
		fd:      int(os.Stdout.Fd()),
	}
}

func (r *DefaultRenderer) Init() error {
	state, err := term.MakeRaw(r.fd)
	if nil != err {
		return err
	}
	r.restoreState = state

	fmt.Fprintf(r.Out, "%s%s%s",
		"\033[?1049h", // Enable alternate buffer
		"\033[?25l",   // Make the cursor invisible
		"\033[J",      // Clear the screen
	)
	return nil
}

func (r *DefaultRenderer) Deinit() error {
	fmt.Fprintf(r.Out, "%s%s",
		"\033[?1049l", // Disable alternate buffer
		"\033[?25h",   // Make the cursor visible
	)
	if nil == r.restoreState {
		return nil
	}
	return term.Restore(r.fd, r.restoreState)
}

func (r *DefaultRenderer) size() (int, int) {
	if w, h, err := term.GetSize(r.fd); nil == err && w > 0 && h > 0 {
		return w, h
	}
	return r.Columns, r.Rows
}

func (r *DefaultRenderer) Viewport() notation.Rect {
	cols, rows := r.size()
	feedbackRows := 3
	return notation.Rect{
		Width:  float64(cols * CellWidth),
		Height: float64((rows - headerRows - feedbackRows) * CellHeight),
	}
}

func (r *DefaultRenderer) row(y float64, rows int) (uint16, bool) {
	row := int(math.Round(y/CellHeight)) + headerRows + 1
	if row <= headerRows || row > rows {
		return 0, false
	}
	return uint16(row), true
}

func (r *DefaultRenderer) col(x float64) uint16 {
	col := int(x/CellWidth) + 1
	if col < 1 {
		return 1
	}
	return uint16(col)
}

func (r *DefaultRenderer) Draw(f *Frame) error {
	cols, rows := r.size()
	staff := r.Theme.StaffColor().RGBA()

	r.buffer.WriteString("\033[2J")
	r.Fill(1, 1, f.Status)
	if len(f.Held) > 0 {
		names := make([]string, 0, len(f.Held))
		for _, p := range f.Held {
			names = append(names, game.PitchName(p))
		}
		r.Fill(2, 1, "held: "+strings.Join(names, " "))
	}

	for _, line := range f.Layout.StaffLines {
		row, ok := r.row(line.From.Y, rows)
		if !ok {
			continue
		}
		from, to := r.col(line.From.X), r.col(line.To.X)
		if int(to) > cols {
			to = uint16(cols)
		}
		if to < from {
			continue
		}
		r.FillColor(row, from, staff, strings.Repeat("─", int(to-from)+1))
	}

	for _, c := range f.Layout.Clefs {
		if row, ok := r.row(c.At.Y, rows); ok {
			r.Fill(row, r.col(c.At.X), r.Theme.RenderClef(c.Clef))
		}
	}

	for _, g := range f.Layout.Notes {
		row, ok := r.row(g.Center.Y, rows)
		if !ok {
			continue
		}
		col := r.col(g.Center.X)
		for _, ledger := range g.Ledgers {
			if lrow, ok := r.row(ledger.From.Y, rows); ok {
				r.FillColor(lrow, r.col(ledger.From.X), staff, "───")
			}
		}
		r.Fill(row, col, r.Theme.RenderNote(g, g.Index == f.Layout.Cursor))
		if f.ShowNoteNames {
			r.Fill(row, col+2, g.Name)
		}
	}

	for i, fb := range f.Feedback {
		row := rows - len(f.Feedback) + i + 1
		if row <= headerRows {
			continue
		}
		r.Fill(uint16(row), 1, r.Theme.RenderFeedback(fb))
	}

	return r.flush()
}

// RenderLoop calls render once per period until it returns false.
func RenderLoop(period time.Duration, render func(now time.Time) bool) {
	cont := true
	for cont {
		now := time.Now()
		deadline := now.Add(period)

		cont = render(now)

		time.Sleep(time.Until(deadline))
	}
}

func (r *DefaultRenderer) Fill(row, column uint16, message string) {
	r.buffer.WriteString("\033[")
	r.buffer.WriteString(strconv.FormatInt(int64(row), 10))
	r.buffer.WriteString(";")
	r.buffer.WriteString(strconv.FormatInt(int64(column), 10))
	r.buffer.WriteString("H")
	r.buffer.WriteString(message)
}

func (r *DefaultRenderer) FillColor(row, column uint16, c color.RGBA, message string) {
	r.buffer.WriteString("\033[")
	r.buffer.WriteString(strconv.FormatInt(int64(row), 10))
	r.buffer.WriteString(";")
	r.buffer.WriteString(strconv.FormatInt(int64(column), 10))
	r.buffer.WriteString("H\033[38;2;")
	r.buffer.WriteString(strconv.FormatInt(int64(c.R), 10))
	r.buffer.WriteString(";")
	r.buffer.WriteString(strconv.FormatInt(int64(c.G), 10))
	r.buffer.WriteString(";")
	r.buffer.WriteString(strconv.FormatInt(int64(c.B), 10))
	r.buffer.WriteString("m")
	r.buffer.WriteString(message)
	r.buffer.WriteString("\033[0m")
}

func (r *DefaultRenderer) flush() error {
	_, err := io.WriteString(r.Out, r.buffer.String())
	r.buffer.Reset()
	return err
}
