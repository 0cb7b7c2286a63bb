package game

import (
	"fmt"
	"time"
)

type ValueClass uint8

const (
	Whole ValueClass = iota
	Half
	Quarter
	Eighth
)

// Beats is the nominal length of the value class in quarter-note beats.
func (v ValueClass) Beats() float64 {
	switch v {
	case Whole:
		return 4
	case Half:
		return 2
	case Quarter:
		return 1
	}
	return 0.5
}

func (v ValueClass) String() string {
	switch v {
	case Whole:
		return "whole"
	case Half:
		return "half"
	case Quarter:
		return "quarter"
	case Eighth:
		return "eighth"
	}
	return fmt.Sprintf("ValueClass(%d)", uint8(v))
}

// ClassifyBeats buckets a duration in beats into a value class.
func ClassifyBeats(beats float64) ValueClass {
	switch {
	case beats >= 3.5:
		return Whole
	case beats >= 1.5:
		return Half
	case beats >= 0.75:
		return Quarter
	}
	return Eighth
}

type Note struct {
	Pitch    uint8      // MIDI pitch, 60 is middle C
	Value    ValueClass // The rhythmic class
	Position float64    // Onset in beats from the start of the song

	// This is state
	Judgement Judgement
	HitTime   time.Time // When the note was played correctly, latency adjusted
}

func NewNote(pitch uint8, value ValueClass, position float64) *Note {
	return &Note{Pitch: pitch, Value: value, Position: position}
}

var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// PitchName returns scientific pitch notation, C4 for 60.
func PitchName(pitch uint8) string {
	return fmt.Sprintf("%s%d", noteNames[pitch%12], int(pitch/12)-1)
}

func (n *Note) Name() string {
	return PitchName(n.Pitch)
}
