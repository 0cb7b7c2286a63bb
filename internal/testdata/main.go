package testdata

import (
	"bytes"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

const TicksPerBeat = 96

// Step is one channel message placed Delta ticks after the previous one.
type Step struct {
	Delta uint32
	Msg   midi.Message
}

func On(delta uint32, key uint8) Step {
	return Step{Delta: delta, Msg: midi.NoteOn(0, key, 100)}
}

func Off(delta uint32, key uint8) Step {
	return Step{Delta: delta, Msg: midi.NoteOff(0, key)}
}

// Silent is a note-on with zero velocity, which players treat as an off.
func Silent(delta uint32, key uint8) Step {
	return Step{Delta: delta, Msg: midi.NoteOn(0, key, 0)}
}

// GetMidi writes a multi track file with metric timing.
func GetMidi(tracks ...[]Step) ([]byte, error) {
	return write(smf.MetricTicks(TicksPerBeat), tracks...)
}

// GetTimecodeMidi writes the same content with SMPTE timing.
func GetTimecodeMidi(tracks ...[]Step) ([]byte, error) {
	return write(smf.TimeCode{FramesPerSecond: 25, SubFrames: 40}, tracks...)
}

func write(tf smf.TimeFormat, tracks ...[]Step) ([]byte, error) {
	s := smf.New()
	s.TimeFormat = tf
	for _, steps := range tracks {
		var tr smf.Track
		for _, step := range steps {
			tr.Add(step.Delta, step.Msg)
		}
		tr.Close(0)
		if err := s.Add(tr); nil != err {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if _, err := s.WriteTo(&buf); nil != err {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GetScale is a one track C major scale, one beat per note.
func GetScale() ([]byte, error) {
	steps := []Step{}
	for _, key := range []uint8{60, 62, 64, 65, 67, 69, 71, 72} {
		steps = append(steps, On(0, key), Off(TicksPerBeat, key))
	}
	return GetMidi(steps)
}
