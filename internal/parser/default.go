package parser

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"git.lost.host/meutraa/sightread/internal/game"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2/smf"
)

// FallbackTicksPerBeat is used when the header carries timecode timing.
const FallbackTicksPerBeat = 96

type DefaultParser struct{}

func (p DefaultParser) Parse(r io.Reader) ([]*game.Note, error) {
	notes, _, err := p.decode(r)
	if nil != err {
		return nil, &ImportError{Err: err}
	}
	return notes, nil
}

// ParseBytes imports an in-memory file.
func (p DefaultParser) ParseBytes(data []byte) ([]*game.Note, error) {
	return p.Parse(bytes.NewReader(data))
}

func (p DefaultParser) ParseFile(path string) ([]*game.Note, error) {
	notes, _, err := p.decodeFile(path)
	return notes, err
}

// ImportSong reads path into a new library song with a fresh id.
func (p DefaultParser) ImportSong(path string) (*game.Song, error) {
	notes, duration, err := p.decodeFile(path)
	if nil != err {
		return nil, err
	}

	title := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	song := &game.Song{
		ID:         uuid.NewString(),
		Title:      title,
		Difficulty: game.Classify(notes),
		Notes:      notes,
		Duration:   duration,
	}
	log.Info("imported song", "path", path, "notes", len(notes), "difficulty", song.Difficulty)
	return song, nil
}

func (p DefaultParser) decodeFile(path string) ([]*game.Note, time.Duration, error) {
	f, err := os.Open(path)
	if nil != err {
		return nil, 0, &ImportError{Path: path, Err: err}
	}
	defer f.Close()

	notes, duration, err := p.decode(f)
	if nil != err {
		return nil, 0, &ImportError{Path: path, Err: err}
	}
	return notes, duration, nil
}

func (p DefaultParser) decode(r io.Reader) (notes []*game.Note, duration time.Duration, err error) {
	// smf can panic on some truncated inputs
	defer func() {
		if rec := recover(); rec != nil {
			notes, duration = nil, 0
			err = errors.Errorf("malformed file: %v", rec)
		}
	}()

	s, err := smf.ReadFrom(r)
	if nil != err {
		return nil, 0, errors.Wrap(err, "unable to read file")
	}

	ticksPerBeat := float64(FallbackTicksPerBeat)
	mt, metric := s.TimeFormat.(smf.MetricTicks)
	if metric && mt > 0 {
		ticksPerBeat = float64(mt)
	} else {
		log.Warn("timecode timing not supported, assuming fixed resolution",
			"format", fmt.Sprint(s.TimeFormat), "ticks", FallbackTicksPerBeat)
	}

	var end int64
	notes = []*game.Note{}
	for i, track := range s.Tracks {
		var now int64
		started := map[uint8]int64{}
		for _, ev := range track {
			now += int64(ev.Delta)

			var ch, key, vel uint8
			switch {
			case ev.Message.GetNoteStart(&ch, &key, &vel):
				started[key] = now
			case ev.Message.GetNoteEnd(&ch, &key):
				start, ok := started[key]
				if !ok {
					continue
				}
				delete(started, key)
				beats := float64(now-start) / ticksPerBeat
				notes = append(notes, game.NewNote(key, game.ClassifyBeats(beats), float64(start)/ticksPerBeat))
			}
		}
		if len(started) > 0 {
			log.Debug("dropping unterminated notes", "track", i, "count", len(started))
		}
		if now > end {
			end = now
		}
	}

	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].Position < notes[j].Position
	})

	if metric {
		duration = time.Duration(s.TimeAt(end)) * time.Microsecond
	}
	return notes, duration, nil
}
