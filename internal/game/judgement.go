package game

type Judgement uint8

const (
	Unplayed Judgement = iota
	Correct
	Incorrect
)

func (j Judgement) String() string {
	switch j {
	case Correct:
		return "correct"
	case Incorrect:
		return "incorrect"
	}
	return "unplayed"
}
