package game

import (
	"testing"
	"time"

	"git.lost.host/meutraa/sightread/internal/config"
	"git.lost.host/meutraa/sightread/internal/input"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func on(pitch uint8) input.Event {
	return input.Event{Pitch: pitch, Velocity: 90, Kind: input.NoteOn, Time: t0}
}

func off(pitch uint8) input.Event {
	return input.Event{Pitch: pitch, Kind: input.NoteOff, Time: t0}
}

func scale() *Song {
	return &Song{ID: "scale", Notes: quarters(0, 60, 62, 64, 65, 67)}
}

func TestStateTransitions(t *testing.T) {
	e := NewEngine(scale(), config.Default())
	assert.Equal(t, Stopped, e.State())

	e.Pause()
	assert.Equal(t, Stopped, e.State(), "pause is a no-op when stopped")

	e.StartPractice()
	assert.Equal(t, Playing, e.State())
	e.Pause()
	assert.Equal(t, Paused, e.State())
	e.Pause()
	assert.Equal(t, Playing, e.State())

	e.Pause()
	e.Reset()
	assert.Equal(t, Stopped, e.State())
}

func TestOnlyPlayingAcceptsEvents(t *testing.T) {
	e := NewEngine(scale(), config.Default())
	assert.Equal(t, Ignored, e.ProcessEvent(on(60)))
	assert.Equal(t, 0, e.Cursor())

	e.StartPractice()
	e.Pause()
	assert.Equal(t, Ignored, e.ProcessEvent(on(60)))
	assert.Empty(t, e.Held())
	assert.Equal(t, Unplayed, e.Notes()[0].Judgement)

	e.Pause()
	assert.Equal(t, Hit, e.ProcessEvent(on(60)))
}

func TestExpectedSequenceCompletes(t *testing.T) {
	song := scale()
	e := NewEngine(song, config.Default())
	e.StartPractice()

	last := 0.0
	for i, n := range song.Notes {
		r := e.ProcessEvent(on(n.Pitch))
		e.ProcessEvent(off(n.Pitch))
		if i == len(song.Notes)-1 {
			assert.Equal(t, Complete, r)
		} else {
			assert.Equal(t, Hit, r)
		}
		assert.GreaterOrEqual(t, e.Progress(), last)
		last = e.Progress()
	}

	assert.Equal(t, len(song.Notes), e.Cursor())
	assert.True(t, e.Finished())
	assert.Equal(t, 1.0, e.Progress())
	correct, total := e.Score()
	assert.Equal(t, uint32(5), correct)
	assert.Equal(t, uint32(5), total)
	for _, n := range song.Notes {
		assert.Equal(t, Correct, n.Judgement)
	}

	// Further input is accepted but changes nothing
	assert.Equal(t, Held, e.ProcessEvent(on(72)))
	assert.Equal(t, len(song.Notes), e.Cursor())
}

func TestWrongNoteNeverAdvances(t *testing.T) {
	song := scale()
	e := NewEngine(song, config.Default())
	e.StartPractice()
	require.Equal(t, Hit, e.ProcessEvent(on(60)))

	for i := 0; i < 5; i++ {
		assert.Equal(t, Miss, e.ProcessEvent(on(61)))
		assert.Equal(t, 1, e.Cursor())
		assert.Equal(t, Incorrect, song.Notes[1].Judgement)
	}
	assert.Equal(t, Unplayed, song.Notes[2].Judgement)

	// No look-ahead: the note after the expected one is also wrong
	assert.Equal(t, Miss, e.ProcessEvent(on(64)))
	assert.Equal(t, 1, e.Cursor())

	assert.Equal(t, Hit, e.ProcessEvent(on(62)))
	assert.Equal(t, Correct, song.Notes[1].Judgement)
	assert.Equal(t, 2, e.Cursor())

	correct, total := e.Score()
	assert.Equal(t, uint32(2), correct)
	assert.Equal(t, uint32(5), total)
	assert.Equal(t, uint32(6), e.Misses())

	e.Reset()
	assert.Equal(t, uint32(0), e.Misses())
}

func TestHeldSet(t *testing.T) {
	e := NewEngine(scale(), config.Default())
	e.StartPractice()
	e.ProcessEvent(on(64))
	e.ProcessEvent(on(60))
	e.ProcessEvent(on(67))
	assert.Equal(t, []uint8{60, 64, 67}, e.Held())

	assert.Equal(t, Released, e.ProcessEvent(off(64)))
	assert.Equal(t, []uint8{60, 67}, e.Held())
	assert.Equal(t, 1, e.Cursor(), "note off never moves the cursor")

	e.Reset()
	assert.Empty(t, e.Held())
}

func TestStartAndResetClearRun(t *testing.T) {
	song := scale()
	e := NewEngine(song, config.Default())
	for _, restart := range []func(){e.StartPractice, e.Reset} {
		e.StartPractice()
		e.ProcessEvent(on(60))
		e.ProcessEvent(on(99))
		require.Equal(t, 1, e.Cursor())

		restart()
		assert.Equal(t, 0, e.Cursor())
		assert.Equal(t, 0.0, e.Progress())
		correct, total := e.Score()
		assert.Equal(t, uint32(0), correct)
		assert.Equal(t, uint32(5), total)
		for _, n := range song.Notes {
			assert.Equal(t, Unplayed, n.Judgement)
			assert.True(t, n.HitTime.IsZero())
		}
	}
}

func TestLatencyCompensationShiftsHitTime(t *testing.T) {
	settings := config.Default()
	settings.LatencyCompensation = 15 * time.Millisecond
	song := scale()
	e := NewEngine(song, settings)
	e.StartPractice()
	e.ProcessEvent(on(60))
	assert.Equal(t, t0.Add(-15*time.Millisecond), song.Notes[0].HitTime)
}

func TestEmptySong(t *testing.T) {
	e := NewEngine(nil, config.Default())
	e.StartPractice()
	assert.Equal(t, 0.0, e.Progress())
	assert.False(t, e.Finished())
	assert.Equal(t, Held, e.ProcessEvent(on(60)))
	_, total := e.Score()
	assert.Equal(t, uint32(0), total)
}

// Cursor stays within bounds and never moves backwards for any input.
func TestCursorInvariant(t *testing.T) {
	song := &Song{Notes: quarters(0, 60, 60, 62, 60, 64)}
	e := NewEngine(song, config.Default())
	e.StartPractice()

	played := []uint8{60, 61, 60, 59, 62, 62, 60, 64, 64, 64, 50, 60}
	prev := 0
	for _, p := range played {
		e.ProcessEvent(on(p))
		e.ProcessEvent(off(p))
		assert.GreaterOrEqual(t, e.Cursor(), prev)
		assert.LessOrEqual(t, e.Cursor(), len(song.Notes))
		prev = e.Cursor()
	}
	assert.True(t, e.Finished())
}

func TestLoadStops(t *testing.T) {
	e := NewEngine(scale(), config.Default())
	e.StartPractice()
	e.ProcessEvent(on(60))

	other := &Song{ID: "other", Notes: quarters(0, 70, 71)}
	e.Load(other)
	assert.Equal(t, Stopped, e.State())
	assert.Equal(t, other, e.Song())
	_, total := e.Score()
	assert.Equal(t, uint32(2), total)
}
