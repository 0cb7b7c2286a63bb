package notation

type Clef uint8

const (
	Treble Clef = iota
	Bass
)

func (c Clef) String() string {
	if c == Bass {
		return "Bass"
	}
	return "Treble"
}

// MiddleC is the pitch that sits between the two staves of a system.
const MiddleC = 60

type Point struct {
	X, Y float64
}

type Rect struct {
	X, Y, Width, Height float64
}

// Staff is one five line staff. Origin is the left end of the top line.
type Staff struct {
	Clef        Clef
	Origin      Point
	Width       float64
	LineSpacing float64
}

func (s Staff) Top() float64 {
	return s.Origin.Y
}

func (s Staff) Bottom() float64 {
	return s.Origin.Y + 4*s.LineSpacing
}

func (s Staff) Middle() float64 {
	return s.Origin.Y + 2*s.LineSpacing
}

func (s Staff) Lines() [5]float64 {
	var ys [5]float64
	for i := range ys {
		ys[i] = s.Origin.Y + float64(i)*s.LineSpacing
	}
	return ys
}

// Semilines is the distance of pitch below the top line in half line
// spacings. Every semitone moves one semiline. Middle C sits one semiline
// below a treble staff and one above a bass staff.
func (s Staff) Semilines(pitch uint8) int {
	anchor := 9
	if s.Clef == Bass {
		anchor = -1
	}
	return anchor - (int(pitch) - MiddleC)
}

func (s Staff) NoteY(pitch uint8) float64 {
	return s.Top() + float64(s.Semilines(pitch))*s.LineSpacing/2
}
