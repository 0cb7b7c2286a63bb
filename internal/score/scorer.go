package score

import (
	"time"

	"github.com/pkg/errors"
)

var ErrNoDatabase = errors.New("progress database not open")

type Scorer interface {
	Init() error
	Deinit()

	// Save one finished or abandoned attempt
	Save(r Result) error

	// Aggregate progress for a song, zero valued if never played
	Song(id string) (*SongProgress, error)
	Player() (*PlayerStats, error)

	// Attempts at a song, most recent first
	History(id string) ([]Result, error)
}

// Result is one practice attempt at a song.
type Result struct {
	Session  string
	SongID   string
	Correct  uint32
	Misses   uint32
	Total    uint32
	Practice time.Duration
	PlayedAt time.Time
}

// Accuracy is correct notes over every note pressed.
func (r Result) Accuracy() float64 {
	played := r.Correct + r.Misses
	if played == 0 {
		return 0
	}
	return float64(r.Correct) / float64(played)
}

// Completion is the percentage of the song played through.
func (r Result) Completion() float64 {
	if r.Total == 0 {
		return 0
	}
	return 100 * float64(r.Correct) / float64(r.Total)
}

func (r Result) Completed() bool {
	return r.Total > 0 && r.Correct >= r.Total
}

type SongProgress struct {
	SongID       string
	Completion   float64
	BestAccuracy float64
	Attempts     uint32
	LastPlayed   time.Time
}

type PlayerStats struct {
	NotesPlayed    uint64
	CorrectNotes   uint64
	SongsCompleted uint32
	PracticeTime   time.Duration
}

// Accuracy is correct notes over all notes of every attempted song.
func (p *PlayerStats) Accuracy() float64 {
	if p.NotesPlayed == 0 {
		return 0
	}
	return float64(p.CorrectNotes) / float64(p.NotesPlayed)
}
