package game

import (
	"time"
)

type Library struct {
	songs   []*Song
	current int // -1 when nothing is selected
}

// NewLibrary returns a library holding the built-in practice songs.
func NewLibrary() *Library {
	l := &Library{current: -1}
	l.Add(&Song{
		ID:         "c_scale",
		Title:      "C Major Scale",
		Artist:     "Practice",
		Difficulty: Beginner,
		Notes:      quarters(0, 60, 62, 64, 65, 67, 69, 71, 72),
		Duration:   8 * time.Second,
	})
	l.Add(&Song{
		ID:         "twinkle",
		Title:      "Twinkle Twinkle Little Star",
		Artist:     "Traditional",
		Difficulty: Beginner,
		Notes: []*Note{
			NewNote(60, Quarter, 0), NewNote(60, Quarter, 1),
			NewNote(67, Quarter, 2), NewNote(67, Quarter, 3),
			NewNote(69, Quarter, 4), NewNote(69, Quarter, 5),
			NewNote(67, Half, 6),
			NewNote(65, Quarter, 8), NewNote(65, Quarter, 9),
			NewNote(64, Quarter, 10), NewNote(64, Quarter, 11),
			NewNote(62, Quarter, 12), NewNote(62, Quarter, 13),
			NewNote(60, Half, 14),
		},
		Duration: 12 * time.Second,
	})
	l.Add(&Song{
		ID:         "mary_lamb",
		Title:      "Mary Had a Little Lamb",
		Artist:     "Traditional",
		Difficulty: Beginner,
		Notes: []*Note{
			NewNote(64, Quarter, 0), NewNote(62, Quarter, 1),
			NewNote(60, Quarter, 2), NewNote(62, Quarter, 3),
			NewNote(64, Quarter, 4), NewNote(64, Quarter, 5),
			NewNote(64, Half, 6),
			NewNote(62, Quarter, 8), NewNote(62, Quarter, 9),
			NewNote(62, Half, 10),
			NewNote(64, Quarter, 12), NewNote(67, Quarter, 13),
			NewNote(67, Half, 14),
		},
		Duration: 10 * time.Second,
	})
	// Three systems worth of notes reaching into both ledger regions
	l.Add(&Song{
		ID:         "grand_staff",
		Title:      "Grand Staff Run",
		Artist:     "Practice",
		Difficulty: Advanced,
		Notes: quarters(0,
			60, 62, 64, 65, 67, 69, 71, 72,
			74, 76, 77, 79, 48, 50, 52, 53,
			55, 57, 59, 60, 81, 83, 84, 36,
		),
		Duration: 24 * time.Second,
	})
	return l
}

func quarters(start float64, pitches ...uint8) []*Note {
	notes := make([]*Note, len(pitches))
	for i, p := range pitches {
		notes[i] = NewNote(p, Quarter, start+float64(i))
	}
	return notes
}

func (l *Library) Add(s *Song) {
	l.songs = append(l.songs, s)
}

func (l *Library) Songs() []*Song {
	return l.songs
}

func (l *Library) ByID(id string) *Song {
	for _, s := range l.songs {
		if s.ID == id {
			return s
		}
	}
	return nil
}

func (l *Library) ByDifficulty(d Difficulty) []*Song {
	songs := []*Song{}
	for _, s := range l.songs {
		if s.Difficulty == d {
			songs = append(songs, s)
		}
	}
	return songs
}

// Select makes song i current and returns it, or nil when i is out of range.
func (l *Library) Select(i int) *Song {
	if i < 0 || i >= len(l.songs) {
		return nil
	}
	l.current = i
	return l.songs[i]
}

func (l *Library) Current() *Song {
	if l.current < 0 {
		return nil
	}
	return l.songs[l.current]
}

// Next selects the song after the current one, wrapping around.
func (l *Library) Next() *Song {
	if len(l.songs) == 0 {
		return nil
	}
	return l.Select((l.current + 1) % len(l.songs))
}
