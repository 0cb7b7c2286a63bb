package input

import (
	"time"

	"github.com/charmbracelet/log"
)

type Kind uint8

const (
	NoteOn Kind = iota
	NoteOff
)

func (k Kind) String() string {
	if k == NoteOn {
		return "on"
	}
	return "off"
}

type Event struct {
	Pitch    uint8
	Velocity uint8
	Kind     Kind
	Time     time.Time // Wall clock at decode, not the device timestamp
}

const (
	statusNoteOff = 0x80
	statusNoteOn  = 0x90
)

// Decoder turns raw channel messages into events. Now stamps each event and
// defaults to time.Now.
type Decoder struct {
	Now func() time.Time
}

// Decode reads a 3-byte status/data/data message. Anything that is not a
// note on or note off, or is too short, is dropped by returning false.
func (d Decoder) Decode(msg []byte) (Event, bool) {
	if len(msg) < 3 {
		log.Debug("input: short message dropped", "len", len(msg))
		return Event{}, false
	}
	status, pitch, velocity := msg[0], msg[1], msg[2]

	var kind Kind
	switch status & 0xF0 {
	case statusNoteOn:
		if velocity > 0 {
			kind = NoteOn
		} else {
			kind = NoteOff
		}
	case statusNoteOff:
		kind = NoteOff
	default:
		log.Debug("input: unhandled status dropped", "status", status)
		return Event{}, false
	}

	now := d.Now
	if nil == now {
		now = time.Now
	}
	return Event{
		Pitch:    pitch & 0x7F,
		Velocity: velocity & 0x7F,
		Kind:     kind,
		Time:     now(),
	}, true
}

// Decode uses the wall clock.
func Decode(msg []byte) (Event, bool) {
	return Decoder{}.Decode(msg)
}
