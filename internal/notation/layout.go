package notation

// Layout holds the fixed pixel metrics of the paginated grand staff.
type Layout struct {
	NotesPerSystem int
	SystemHeight   float64
	SystemSpacing  float64
	Margin         float64
	TrebleOffset   float64
	BassOffset     float64
	LineSpacing    float64
	ClefGutter     float64
	SidePadding    float64
}

func DefaultLayout(notesPerSystem int) Layout {
	if notesPerSystem < 1 {
		notesPerSystem = 8
	}
	return Layout{
		NotesPerSystem: notesPerSystem,
		SystemHeight:   200,
		SystemSpacing:  40,
		Margin:         40,
		TrebleOffset:   20,
		BassOffset:     120,
		LineSpacing:    12,
		ClefGutter:     80,
		SidePadding:    20,
	}
}

func (l Layout) perSystem() int {
	if l.NotesPerSystem < 1 {
		return 1
	}
	return l.NotesPerSystem
}

// Systems is how many treble and bass pairs n notes occupy. There is always
// at least one.
func (l Layout) Systems(n int) int {
	per := l.perSystem()
	systems := (n + per - 1) / per
	if systems < 1 {
		return 1
	}
	return systems
}

// ContentHeight is the total scrollable height for n notes.
func (l Layout) ContentHeight(n int) float64 {
	return float64(l.Systems(n))*(l.SystemHeight+l.SystemSpacing) + l.Margin
}

type System struct {
	Index  int
	Treble Staff
	Bass   Staff
}

func (l Layout) System(viewport Rect, i int) System {
	x := viewport.X + l.SidePadding
	y := viewport.Y + float64(i)*(l.SystemHeight+l.SystemSpacing)
	width := viewport.Width - 2*l.SidePadding
	return System{
		Index:  i,
		Treble: Staff{Clef: Treble, Origin: Point{x, y + l.TrebleOffset}, Width: width, LineSpacing: l.LineSpacing},
		Bass:   Staff{Clef: Bass, Origin: Point{x, y + l.BassOffset}, Width: width, LineSpacing: l.LineSpacing},
	}
}

// Staff picks the staff pitch is drawn on. The split is purely by pitch,
// so very low treble or very high bass notes pile up ledger lines.
func (s System) Staff(pitch uint8) Staff {
	if pitch >= MiddleC {
		return s.Treble
	}
	return s.Bass
}

type Placement struct {
	System  int
	Slot    int
	Staff   Staff
	X, Y    float64
	Ledgers []float64
}

// Place positions the i-th note of a song.
func (l Layout) Place(viewport Rect, i int, pitch uint8) Placement {
	per := l.perSystem()
	system := l.System(viewport, i/per)
	staff := system.Staff(pitch)
	slot := i % per

	step := (staff.Width - l.ClefGutter) / float64(per)
	y := staff.NoteY(pitch)
	return Placement{
		System:  system.Index,
		Slot:    slot,
		Staff:   staff,
		X:       staff.Origin.X + l.ClefGutter + float64(slot)*step,
		Y:       y,
		Ledgers: staff.LedgerLines(y),
	}
}
