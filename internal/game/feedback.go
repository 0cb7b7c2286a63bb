package game

import (
	"time"

	"git.lost.host/meutraa/sightread/internal/config"
)

type Severity uint8

const (
	Info Severity = iota
	Success
	Failure
)

type Feedback struct {
	Message   string
	Severity  Severity
	CreatedAt time.Time
	TTL       time.Duration
}

// Expired reports whether the entry has outlived its ttl at now.
func (f *Feedback) Expired(now time.Time) bool {
	return now.Sub(f.CreatedAt) >= f.TTL
}

// Remaining is the fraction of the ttl still left, for fading.
func (f *Feedback) Remaining(now time.Time) float64 {
	if f.TTL <= 0 {
		return 0
	}
	r := 1 - float64(now.Sub(f.CreatedAt))/float64(f.TTL)
	if r < 0 {
		return 0
	}
	if r > 1 {
		return 1
	}
	return r
}

// FeedbackTimer is a list of short lived messages swept once per frame.
// Entries keep insertion order; there is no cap or dedup.
type FeedbackTimer struct {
	ttl    time.Duration
	events []*Feedback
}

func NewFeedbackTimer(settings config.Settings) *FeedbackTimer {
	return &FeedbackTimer{ttl: settings.FeedbackDuration}
}

func (t *FeedbackTimer) Add(message string, severity Severity, now time.Time) {
	t.events = append(t.events, &Feedback{
		Message:   message,
		Severity:  severity,
		CreatedAt: now,
		TTL:       t.ttl,
	})
}

func (t *FeedbackTimer) Correct(now time.Time) {
	t.Add("Correct!", Success, now)
}

func (t *FeedbackTimer) Incorrect(now time.Time) {
	t.Add("Try again", Failure, now)
}

// Observe turns an engine result into feedback.
func (t *FeedbackTimer) Observe(r Result, now time.Time) {
	switch r {
	case Hit:
		t.Correct(now)
	case Miss:
		t.Incorrect(now)
	case Complete:
		t.Correct(now)
		t.Add("Song complete", Info, now)
	}
}

// Sweep drops every expired entry.
func (t *FeedbackTimer) Sweep(now time.Time) {
	kept := t.events[:0]
	for _, f := range t.events {
		if !f.Expired(now) {
			kept = append(kept, f)
		}
	}
	for i := len(kept); i < len(t.events); i++ {
		t.events[i] = nil
	}
	t.events = kept
}

func (t *FeedbackTimer) Active() []*Feedback {
	return t.events
}

func (t *FeedbackTimer) Clear() {
	t.events = nil
}
