package input

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/eiannone/keyboard"
)

type Command uint8

const (
	CmdNone Command = iota
	CmdStart
	CmdPause
	CmdReset
	CmdNextSong
	CmdQuit
)

// One octave and a note, laid out like a piano on the home row.
const pianoRow = "awsedftgyhujk"

// Keyboard reads the computer keyboard. Transport keys become commands; when
// Play is set the piano row also produces note events, an on immediately
// followed by an off since terminals report no key release.
type Keyboard struct {
	Play     bool
	Base     uint8 // pitch of the 'a' key
	Commands chan Command

	sink    Sink
	decoder Decoder
}

func NewKeyboard(sink Sink, play bool) *Keyboard {
	return &Keyboard{
		Play:     play,
		Base:     60,
		Commands: make(chan Command, 16),
		sink:     sink,
	}
}

// Pitch maps a piano-row rune to its pitch.
func (k *Keyboard) Pitch(r rune) (uint8, bool) {
	for i, c := range pianoRow {
		if c == r {
			p := int(k.Base) + i
			if p > 127 {
				return 0, false
			}
			return uint8(p), true
		}
	}
	return 0, false
}

// Handle routes one key press. It reports false once the user asked to quit.
func (k *Keyboard) Handle(r rune, key keyboard.Key) bool {
	cmd := CmdNone
	switch {
	case key == keyboard.KeyEsc || key == keyboard.KeyCtrlC || r == 'q':
		cmd = CmdQuit
	case key == keyboard.KeyEnter:
		cmd = CmdStart
	case key == keyboard.KeySpace:
		cmd = CmdPause
	case r == 'r':
		cmd = CmdReset
	case r == 'n':
		cmd = CmdNextSong
	case r == 'z' && k.Base >= 12:
		k.Base -= 12
	case r == 'x' && k.Base <= 127-24:
		k.Base += 12
	default:
		if !k.Play {
			return true
		}
		if p, ok := k.Pitch(r); ok {
			k.press(p)
		}
	}
	if cmd != CmdNone {
		select {
		case k.Commands <- cmd:
		default:
			log.Warn("keyboard: command dropped, queue full", "cmd", cmd)
		}
	}
	return cmd != CmdQuit
}

func (k *Keyboard) press(pitch uint8) {
	for _, msg := range [][]byte{{statusNoteOn, pitch, 100}, {statusNoteOff, pitch, 0}} {
		if e, ok := k.decoder.Decode(msg); ok {
			k.sink.Push(e)
		}
	}
}

// Run reads keys until ctx is cancelled or quit is pressed.
func (k *Keyboard) Run(ctx context.Context) error {
	keys, err := keyboard.GetKeys(32)
	if nil != err {
		return fmt.Errorf("unable to open keyboard: %w", err)
	}
	defer func() {
		if err := keyboard.Close(); nil != err {
			log.Error("keyboard: unable to close", "err", err)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-keys:
			if nil != ev.Err {
				return fmt.Errorf("keyboard read: %w", ev.Err)
			}
			if !k.Handle(ev.Rune, ev.Key) {
				return nil
			}
		}
	}
}
