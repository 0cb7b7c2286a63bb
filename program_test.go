package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"git.lost.host/meutraa/sightread/internal/config"
	"git.lost.host/meutraa/sightread/internal/game"
	"git.lost.host/meutraa/sightread/internal/input"
	"git.lost.host/meutraa/sightread/internal/notation"
	"git.lost.host/meutraa/sightread/internal/render"
	"git.lost.host/meutraa/sightread/internal/testdata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

type fakeRenderer struct {
	viewport notation.Rect
	frames   []*render.Frame
}

func (r *fakeRenderer) Init() error { return nil }

func (r *fakeRenderer) Deinit() error { return nil }

func (r *fakeRenderer) Viewport() notation.Rect { return r.viewport }

func (r *fakeRenderer) Draw(f *render.Frame) error {
	r.frames = append(r.frames, f)
	return nil
}

func program(t *testing.T, args ...string) *Program {
	t.Helper()
	args = append([]string{"--keyboard", "--database", filepath.Join(t.TempDir(), "progress.db")}, args...)
	opts, err := config.Parse(args)
	require.NoError(t, err)

	p := NewProgram(opts)
	p.Renderer = &fakeRenderer{viewport: notation.Rect{Width: 1000, Height: 800}}
	require.NoError(t, p.Init())
	t.Cleanup(p.Deinit)
	return p
}

func play(p *Program, now time.Time, pitches ...uint8) {
	for _, pitch := range pitches {
		p.Queue.Push(input.Event{Pitch: pitch, Velocity: 90, Kind: input.NoteOn, Time: now})
		p.Queue.Push(input.Event{Pitch: pitch, Kind: input.NoteOff, Time: now})
	}
}

func pitches(notes []*game.Note) []uint8 {
	ps := []uint8{}
	for _, n := range notes {
		ps = append(ps, n.Pitch)
	}
	return ps
}

func messages(p *Program) []string {
	var ms []string
	for _, f := range p.Feedback().Active() {
		ms = append(ms, f.Message)
	}
	return ms
}

func TestProgramIgnoresInputUntilStarted(t *testing.T) {
	p := program(t)
	play(p, t0, 60)
	assert.True(t, p.Update(t0))
	assert.Equal(t, 0, p.Engine().Cursor())
	assert.Empty(t, p.Feedback().Active())
}

func TestProgramPlaysAndAdvances(t *testing.T) {
	p := program(t)
	require.Equal(t, "c_scale", p.Engine().Song().ID)
	scale := pitches(p.Engine().Notes())

	p.Keyboard.Commands <- input.CmdStart
	play(p, t0, scale[0], 61)
	assert.True(t, p.Update(t0))
	assert.Equal(t, 1, p.Engine().Cursor())
	assert.Equal(t, []string{"Correct!", "Try again"}, messages(p))

	// A note after the last one in the same batch is not judged
	rest := append([]uint8{}, scale[1:]...)
	play(p, t0.Add(time.Second), append(rest, 60)...)
	assert.True(t, p.Update(t0.Add(time.Second)))

	// The finished song stays up for one frame
	assert.Equal(t, "c_scale", p.Engine().Song().ID)
	assert.True(t, p.Engine().Finished())
	for _, n := range p.Engine().Notes() {
		assert.Equal(t, game.Correct, n.Judgement)
	}
	assert.Contains(t, messages(p), "Song complete")

	history, err := p.Scorer.History("c_scale")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, uint32(len(scale)), history[0].Correct)
	assert.Equal(t, uint32(1), history[0].Misses)
	assert.Equal(t, time.Second, history[0].Practice)

	// Then moves on, dropping input played in between
	play(p, t0.Add(1500*time.Millisecond), 60)
	assert.True(t, p.Update(t0.Add(1500*time.Millisecond)))
	assert.Equal(t, "twinkle", p.Engine().Song().ID)
	assert.Equal(t, game.Playing, p.Engine().State())
	assert.Equal(t, 0, p.Engine().Cursor())
	assert.Equal(t, game.Unplayed, p.Engine().Notes()[0].Judgement)
	assert.Contains(t, messages(p), "Next: Twinkle Twinkle Little Star")

	p.Update(t0.Add(5 * time.Second))
	assert.Empty(t, p.Feedback().Active(), "feedback expires")
}

func TestProgramWithoutAutoAdvance(t *testing.T) {
	p := program(t, "--no-auto-advance")
	p.Command(input.CmdStart, t0)
	play(p, t0, pitches(p.Engine().Notes())...)
	p.Update(t0)
	p.Update(t0)

	assert.Equal(t, "c_scale", p.Engine().Song().ID)
	assert.True(t, p.Engine().Finished())

	p.Command(input.CmdReset, t0)
	assert.Equal(t, game.Stopped, p.Engine().State())
	assert.Equal(t, 0, p.Engine().Cursor())

	history, err := p.Scorer.History("c_scale")
	require.NoError(t, err)
	assert.Len(t, history, 1, "an attempt is saved once")
}

func TestProgramAbandonedAttemptSaved(t *testing.T) {
	p := program(t)
	p.Command(input.CmdStart, t0)
	play(p, t0, 60, 62)
	p.Update(t0)

	assert.True(t, p.Command(input.CmdNextSong, t0.Add(time.Minute)))
	assert.Equal(t, "twinkle", p.Engine().Song().ID)
	assert.Equal(t, game.Stopped, p.Engine().State())

	progress, err := p.Scorer.Song("c_scale")
	require.NoError(t, err)
	assert.Equal(t, uint32(1), progress.Attempts)
	assert.Equal(t, 25.0, progress.Completion)

	// Nothing played in this attempt, nothing saved
	p.Command(input.CmdStart, t0.Add(2*time.Minute))
	assert.False(t, p.Command(input.CmdQuit, t0.Add(3*time.Minute)))
	history, err := p.Scorer.History("twinkle")
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestProgramStatusShowsProgress(t *testing.T) {
	p := program(t)
	assert.Contains(t, p.Status(), "C Major Scale (Beginner, 5-10 minutes)")
	assert.NotContains(t, p.Status(), "best")

	p.Command(input.CmdStart, t0)
	play(p, t0, 60, 62)
	p.Update(t0)
	p.Command(input.CmdReset, t0.Add(30*time.Second))
	assert.Contains(t, p.Status(), "best 25%")

	summary, err := p.Summary()
	require.NoError(t, err)
	assert.Equal(t, "2 of 8 notes correct (25%), 0 songs completed, 30s practised", summary)
}

func TestProgramQuit(t *testing.T) {
	p := program(t)
	p.Keyboard.Commands <- input.CmdQuit
	assert.False(t, p.Update(t0))
}

func TestProgramPause(t *testing.T) {
	p := program(t)
	p.Command(input.CmdStart, t0)
	p.Command(input.CmdPause, t0)
	play(p, t0, 60)
	p.Update(t0)
	assert.Equal(t, 0, p.Engine().Cursor())
	assert.Equal(t, game.Paused, p.Engine().State())
}

func TestProgramFrameScrollsToCursor(t *testing.T) {
	p := program(t)
	p.Renderer = &fakeRenderer{viewport: notation.Rect{Width: 1000, Height: 300}}
	p.Library.Select(3)
	p.Command(input.CmdNextSong, t0)
	require.Equal(t, "c_scale", p.Engine().Song().ID)
	p.Library.Select(2)
	p.Command(input.CmdNextSong, t0)
	require.Equal(t, "grand_staff", p.Engine().Song().ID)

	f := p.Frame(t0)
	assert.Equal(t, 0, f.Layout.Cursor)
	assert.Equal(t, 20.0, f.Layout.StaffLines[0].From.Y)

	p.Command(input.CmdStart, t0)
	play(p, t0, pitches(p.Engine().Notes()[:8])...)
	p.Update(t0)
	f = p.Frame(t0)
	assert.Equal(t, 8, f.Layout.Cursor)
	assert.Equal(t, -220.0, f.Layout.StaffLines[0].From.Y, "second system at the top")
	assert.Contains(t, f.Status, "Grand Staff")
	assert.Contains(t, f.Status, "8/24")
	assert.Contains(t, f.Status, "input: keyboard")
}

func TestProgramLoadSong(t *testing.T) {
	data, err := testdata.GetScale()
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "scale.mid")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	p := program(t)
	require.NoError(t, p.LoadSong(path))
	assert.Equal(t, "scale", p.Engine().Song().Title)
	assert.Len(t, p.Engine().Notes(), 8)
	assert.Len(t, p.Library.Songs(), 5)

	assert.Error(t, p.LoadSong(filepath.Join(t.TempDir(), "missing.mid")))
}

func TestProgramSnapshot(t *testing.T) {
	p := program(t, "--width", "800", "--height", "600", "--note-names")
	path := filepath.Join(t.TempDir(), "layout.png")
	require.NoError(t, p.Snapshot(path))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
