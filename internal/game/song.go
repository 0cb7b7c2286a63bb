package game

import "time"

type Song struct {
	ID         string
	Title      string
	Artist     string
	Difficulty Difficulty
	Notes      []*Note
	Duration   time.Duration
}

// Reset clears every judgement, the only state a practice run writes.
func (s *Song) Reset() {
	for _, n := range s.Notes {
		n.Judgement = Unplayed
		n.HitTime = time.Time{}
	}
}

// Sorted reports whether note positions never decrease.
func (s *Song) Sorted() bool {
	for i := 1; i < len(s.Notes); i++ {
		if s.Notes[i].Position < s.Notes[i-1].Position {
			return false
		}
	}
	return true
}

// Beats is the end of the last sounding note.
func (s *Song) Beats() float64 {
	end := 0.0
	for _, n := range s.Notes {
		if e := n.Position + n.Value.Beats(); e > end {
			end = e
		}
	}
	return end
}
