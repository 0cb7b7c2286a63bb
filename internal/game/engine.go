package game

import (
	"sort"

	"git.lost.host/meutraa/sightread/internal/config"
	"git.lost.host/meutraa/sightread/internal/input"
	"github.com/charmbracelet/log"
)

type State uint8

const (
	Stopped State = iota
	Playing
	Paused
)

func (s State) String() string {
	switch s {
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	}
	return "stopped"
}

// Result is what a single event did to the practice run.
type Result uint8

const (
	Ignored  Result = iota // not playing
	Held                   // note on after the last note, nothing to judge
	Released               // note off
	Hit                    // the expected note was played, cursor advanced
	Miss                   // a different note was played, cursor unchanged
	Complete               // a hit that finished the song
)

// Engine walks a cursor through the song's notes as note-on events arrive.
// It is driven from the update loop only and is not safe for concurrent use.
type Engine struct {
	settings config.Settings

	state   State
	song    *Song
	cursor  int
	held    map[uint8]bool
	correct uint32
	misses  uint32
	total   uint32
}

func NewEngine(song *Song, settings config.Settings) *Engine {
	e := &Engine{settings: settings, held: map[uint8]bool{}}
	e.Load(song)
	return e
}

// Load swaps the song under practice and stops.
func (e *Engine) Load(song *Song) {
	if nil == song {
		song = &Song{}
	}
	e.song = song
	e.Reset()
}

func (e *Engine) Song() *Song {
	return e.song
}

func (e *Engine) StartPractice() {
	e.rewind()
	e.state = Playing
	log.Info("practice started", "song", e.song.ID, "notes", e.total)
}

// Pause toggles between playing and paused; stopped stays stopped.
func (e *Engine) Pause() {
	switch e.state {
	case Playing:
		e.state = Paused
	case Paused:
		e.state = Playing
	}
}

func (e *Engine) Reset() {
	e.rewind()
	e.state = Stopped
}

func (e *Engine) rewind() {
	e.cursor = 0
	e.correct = 0
	e.misses = 0
	e.total = uint32(len(e.song.Notes))
	e.held = map[uint8]bool{}
	e.song.Reset()
}

func (e *Engine) ProcessEvent(ev input.Event) Result {
	if e.state != Playing {
		return Ignored
	}

	switch ev.Kind {
	case input.NoteOn:
		e.held[ev.Pitch] = true
		return e.checkCurrentNote(ev)
	case input.NoteOff:
		delete(e.held, ev.Pitch)
	}
	return Released
}

func (e *Engine) checkCurrentNote(ev input.Event) Result {
	if e.cursor >= len(e.song.Notes) {
		return Held
	}

	note := e.song.Notes[e.cursor]
	if note.Pitch != ev.Pitch {
		note.Judgement = Incorrect
		e.misses++
		log.Debug("miss", "expected", note.Name(), "played", PitchName(ev.Pitch), "cursor", e.cursor)
		return Miss
	}

	note.Judgement = Correct
	note.HitTime = ev.Time.Add(-e.settings.LatencyCompensation)
	e.correct++
	e.cursor++
	log.Debug("hit", "note", note.Name(), "cursor", e.cursor)

	if e.cursor == len(e.song.Notes) {
		log.Info("song complete", "song", e.song.ID, "correct", e.correct, "total", e.total)
		return Complete
	}
	return Hit
}

func (e *Engine) Notes() []*Note {
	return e.song.Notes
}

func (e *Engine) State() State {
	return e.state
}

func (e *Engine) Cursor() int {
	return e.cursor
}

// Progress is the fraction of notes passed, 0 for an empty song.
func (e *Engine) Progress() float64 {
	if e.total == 0 {
		return 0
	}
	return float64(e.cursor) / float64(e.total)
}

func (e *Engine) Score() (uint32, uint32) {
	return e.correct, e.total
}

// Misses counts wrong pitches played since the last start or reset.
func (e *Engine) Misses() uint32 {
	return e.misses
}

// Finished reports whether every note has been played.
func (e *Engine) Finished() bool {
	return e.total > 0 && e.cursor >= len(e.song.Notes)
}

// Held lists the pitches currently down, lowest first.
func (e *Engine) Held() []uint8 {
	pitches := make([]uint8, 0, len(e.held))
	for p := range e.held {
		pitches = append(pitches, p)
	}
	sort.Slice(pitches, func(i, j int) bool { return pitches[i] < pitches[j] })
	return pitches
}

