package game

type Difficulty uint8

const (
	Beginner Difficulty = iota
	Intermediate
	Advanced
	Expert
)

var difficultyNames = map[Difficulty]string{
	Beginner:     "Beginner",
	Intermediate: "Intermediate",
	Advanced:     "Advanced",
	Expert:       "Expert",
}

func (d Difficulty) String() string {
	name, ok := difficultyNames[d]
	if !ok {
		return "Unknown"
	}
	return name
}

// PracticeTime is a rough estimate shown next to the song title.
func (d Difficulty) PracticeTime() string {
	switch d {
	case Beginner:
		return "5-10 minutes"
	case Intermediate:
		return "10-20 minutes"
	case Advanced:
		return "20-45 minutes"
	}
	return "45+ minutes"
}

// Classify grades a note sequence by its length and how many distinct
// pitches it uses.
func Classify(notes []*Note) Difficulty {
	pitches := map[uint8]bool{}
	for _, n := range notes {
		pitches[n.Pitch] = true
	}
	count, span := len(notes), len(pitches)

	switch {
	case count <= 8 && span >= 1 && span <= 5:
		return Beginner
	case count >= 9 && count <= 16 && span >= 1 && span <= 8:
		return Intermediate
	case count >= 17 && count <= 32 && span >= 1 && span <= 12:
		return Advanced
	}
	return Expert
}
