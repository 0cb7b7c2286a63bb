package notation

import "math"

// LedgerLines returns the y of every ledger line a note head at y needs,
// nearest the staff first. Notes within a quarter spacing of the outer
// lines need none. Otherwise lines are drawn at every full spacing out
// from the staff up to the slot on or just inside the note, and always at
// least the first one.
func (s Staff) LedgerLines(y float64) []float64 {
	sp := s.LineSpacing
	if sp <= 0 {
		return nil
	}

	var edge, dir float64
	switch {
	case y > s.Bottom()+sp/4:
		edge, dir = s.Bottom(), 1
	case y < s.Top()-sp/4:
		edge, dir = s.Top(), -1
	default:
		return nil
	}

	d := math.Abs(y - edge)
	count := int(math.Floor((d + sp/8) / sp))
	if count < 1 {
		count = 1
	}

	lines := make([]float64, 0, count)
	for k := 1; k <= count; k++ {
		lines = append(lines, edge+dir*float64(k)*sp)
	}
	return lines
}
