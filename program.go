package main

import (
	"context"
	"fmt"
	"time"

	"git.lost.host/meutraa/sightread/internal/config"
	"git.lost.host/meutraa/sightread/internal/game"
	"git.lost.host/meutraa/sightread/internal/input"
	"git.lost.host/meutraa/sightread/internal/notation"
	"git.lost.host/meutraa/sightread/internal/parser"
	"git.lost.host/meutraa/sightread/internal/render"
	"git.lost.host/meutraa/sightread/internal/score"
	"git.lost.host/meutraa/sightread/internal/theme"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type Program struct {
	Options  *config.Options
	Library  *game.Library
	Parser   *parser.DefaultParser
	Scorer   score.Scorer
	Theme    theme.Theme
	Renderer render.Renderer
	Layout   notation.Layout
	Queue    *input.Queue
	Device   *input.Device
	Keyboard *input.Keyboard

	engine   *game.Engine
	feedback *game.FeedbackTimer
	advance  bool // next song is loaded on the following frame

	progress     *score.SongProgress
	progressSong string

	// Current attempt
	session   string
	startedAt time.Time
	recorded  bool
}

func NewProgram(opts *config.Options) *Program {
	p := &Program{
		Options:  opts,
		Library:  game.NewLibrary(),
		Parser:   &parser.DefaultParser{},
		Scorer:   score.NewScorer(opts.Database),
		Theme:    &theme.DefaultTheme{},
		Layout:   notation.DefaultLayout(opts.NotesPerSystem),
		Queue:    input.NewQueue(),
		feedback: game.NewFeedbackTimer(opts.Settings),
	}
	p.Keyboard = input.NewKeyboard(p.Queue, opts.Keyboard)
	p.engine = game.NewEngine(p.Library.Select(0), opts.Settings)
	return p
}

// LoadSong imports a file into the library and selects it.
func (p *Program) LoadSong(path string) error {
	song, err := p.Parser.ImportSong(path)
	if nil != err {
		return err
	}
	p.Library.Add(song)
	p.engine.Load(p.Library.Select(len(p.Library.Songs()) - 1))
	return nil
}

func (p *Program) Init() error {
	if err := p.Scorer.Init(); nil != err {
		log.Warn("progress will not be saved", "err", err)
	}

	if p.Options.Keyboard {
		log.Info("playing with the computer keyboard")
		return nil
	}

	device, err := input.NewDevice(p.Queue)
	if nil != err {
		return err
	}
	p.Device = device

	if p.Options.Device != "" {
		err = device.Connect(p.Options.Device)
	} else {
		err = device.AutoConnect()
	}
	if nil != err {
		// Keep running so the layout can still be read
		log.Warn("no midi input connected", "err", err)
	}
	return nil
}

func (p *Program) Deinit() {
	if nil != p.Device {
		p.Device.Close()
	}
	p.Scorer.Deinit()
}

func (p *Program) Engine() *game.Engine {
	return p.engine
}

func (p *Program) Feedback() *game.FeedbackTimer {
	return p.feedback
}

func (p *Program) start(now time.Time) {
	p.advance = false
	p.record(now)
	p.engine.StartPractice()
	p.session = uuid.NewString()
	p.startedAt = now
	p.recorded = false
}

// record saves the current attempt once, if anything was played.
func (p *Program) record(now time.Time) {
	if p.session == "" || p.recorded {
		return
	}
	correct, total := p.engine.Score()
	misses := p.engine.Misses()
	if correct+misses == 0 {
		return
	}
	p.recorded = true
	p.progressSong = ""

	r := score.Result{
		Session:  p.session,
		SongID:   p.engine.Song().ID,
		Correct:  correct,
		Misses:   misses,
		Total:    total,
		Practice: now.Sub(p.startedAt),
		PlayedAt: now,
	}
	if err := p.Scorer.Save(r); nil != err {
		if errors.Is(err, score.ErrNoDatabase) {
			log.Debug("attempt not saved", "err", err)
			return
		}
		log.Error("unable to save attempt", "err", err)
	}
}

// Command applies one transport command. It reports false on quit.
func (p *Program) Command(cmd input.Command, now time.Time) bool {
	switch cmd {
	case input.CmdStart:
		p.start(now)
	case input.CmdPause:
		p.engine.Pause()
	case input.CmdReset:
		p.advance = false
		p.record(now)
		p.engine.Reset()
		p.feedback.Clear()
	case input.CmdNextSong:
		p.advance = false
		p.record(now)
		p.engine.Load(p.Library.Next())
		p.feedback.Clear()
		p.feedback.Add(p.engine.Song().Title, game.Info, now)
	case input.CmdQuit:
		p.record(now)
		return false
	}
	return true
}

// Update runs one frame of input handling: a pending song change, commands,
// then every queued note event in arrival order, then the feedback sweep.
func (p *Program) Update(now time.Time) bool {
	if p.advance {
		p.next(now)
	}

	for i := len(p.Keyboard.Commands); i > 0; i-- {
		if !p.Command(<-p.Keyboard.Commands, now) {
			return false
		}
	}

	for _, ev := range p.Queue.Drain() {
		r := p.engine.ProcessEvent(ev)
		p.feedback.Observe(r, now)
		if r == game.Complete {
			p.complete(now)
		}
	}

	p.feedback.Sweep(now)
	return true
}

// complete saves the finished attempt. The finished song stays on screen
// for one frame before the next one is loaded.
func (p *Program) complete(now time.Time) {
	p.record(now)
	p.advance = p.Options.AutoAdvance
}

func (p *Program) next(now time.Time) {
	// Notes played before the next song was drawn are not judged against it
	if dropped := len(p.Queue.Drain()); dropped > 0 {
		log.Debug("dropped input between songs", "events", dropped)
	}
	next := p.Library.Next()
	p.engine.Load(next)
	p.start(now)
	p.feedback.Add(fmt.Sprintf("Next: %s", next.Title), game.Info, now)
}

// viewport scrolls so the system holding the cursor is at the top.
func (p *Program) viewport() notation.Rect {
	v := p.Renderer.Viewport()
	n := len(p.engine.Notes())
	if p.Layout.ContentHeight(n) <= v.Height {
		return v
	}
	cursor := p.engine.Cursor()
	if cursor >= n {
		cursor = n - 1
	}
	system := cursor / p.Layout.NotesPerSystem
	v.Y -= float64(system) * (p.Layout.SystemHeight + p.Layout.SystemSpacing)
	return v
}

func (p *Program) Status() string {
	song := p.engine.Song()
	correct, total := p.engine.Score()
	connected := "keyboard"
	if nil != p.Device {
		connected = p.Device.Connected()
		if connected == "" {
			connected = "none"
		}
	}
	best := ""
	if progress := p.songProgress(); nil != progress && progress.Attempts > 0 {
		best = fmt.Sprintf("  best %.0f%%", progress.Completion)
	}
	return fmt.Sprintf("%s (%s, %s)  %s  %d/%d  %.0f%%%s  input: %s",
		song.Title, song.Difficulty, song.Difficulty.PracticeTime(),
		p.engine.State(), correct, total, 100*p.engine.Progress(), best, connected)
}

// songProgress is reloaded when the song changes or an attempt is saved.
func (p *Program) songProgress() *score.SongProgress {
	id := p.engine.Song().ID
	if p.progressSong == id {
		return p.progress
	}
	p.progressSong = id
	progress, err := p.Scorer.Song(id)
	if nil != err {
		if !errors.Is(err, score.ErrNoDatabase) {
			log.Warn("unable to load song progress", "song", id, "err", err)
		}
		progress = nil
	}
	p.progress = progress
	return progress
}

// Summary describes the player's totals across every saved attempt.
func (p *Program) Summary() (string, error) {
	stats, err := p.Scorer.Player()
	if nil != err {
		return "", err
	}
	return fmt.Sprintf("%d of %d notes correct (%.0f%%), %d songs completed, %s practised",
		stats.CorrectNotes, stats.NotesPlayed, 100*stats.Accuracy(), stats.SongsCompleted,
		stats.PracticeTime.Round(time.Second)), nil
}

func (p *Program) Frame(now time.Time) *render.Frame {
	return &render.Frame{
		Layout:        p.Layout.Render(p.viewport(), p.engine.Notes()),
		Feedback:      p.feedback.Active(),
		Status:        p.Status(),
		Held:          p.engine.Held(),
		ShowNoteNames: p.Options.ShowNoteNames,
		Now:           now,
	}
}

// Snapshot draws the selected song into a PNG instead of the terminal.
func (p *Program) Snapshot(path string) error {
	img := render.NewImage(p.Theme, int(p.Options.Width), int(p.Options.Height))
	if err := img.Init(); nil != err {
		return err
	}
	defer img.Deinit()
	p.Renderer = img

	if err := img.Draw(p.Frame(time.Now())); nil != err {
		return err
	}
	if err := img.SavePNG(path); nil != err {
		return err
	}
	log.Info("wrote snapshot", "path", path, "song", p.engine.Song().ID)
	return nil
}

func (p *Program) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		defer cancel()
		if err := p.Keyboard.Run(ctx); nil != err {
			log.Error("keyboard stopped", "err", err)
		}
	}()

	if err := p.Renderer.Init(); nil != err {
		return errors.Wrap(err, "unable to initialise terminal")
	}
	defer p.Renderer.Deinit()

	var drawErr error
	render.RenderLoop(p.Options.FramePeriod, func(now time.Time) bool {
		cont := p.Update(now)
		if drawErr = p.Renderer.Draw(p.Frame(now)); nil != drawErr {
			return false
		}
		if nil != ctx.Err() {
			p.record(now)
			return false
		}
		return cont
	})

	if summary, err := p.Summary(); nil == err {
		log.Info(summary)
	}
	return drawErr
}
