package config

import (
	"time"

	"gopkg.in/alecthomas/kingpin.v2"
)

const Version = "0.3.0"

// Settings are the values the practice core reads. They are handed to the
// engine and feedback timer at construction, never looked up globally.
type Settings struct {
	LatencyCompensation time.Duration
	FeedbackDuration    time.Duration
	AutoAdvance         bool
	ShowNoteNames       bool
	NotesPerSystem      int
}

func Default() Settings {
	return Settings{
		LatencyCompensation: 10 * time.Millisecond,
		FeedbackDuration:    time.Second,
		AutoAdvance:         true,
		ShowNoteNames:       false,
		NotesPerSystem:      8,
	}
}

// Options is everything the command line can set.
type Options struct {
	Settings

	Song        string // .mid file to practice, empty for the built-in library
	Device      string // MIDI input name, empty to auto-connect
	Keyboard    bool   // use the computer keyboard as an input device
	LogLevel    string
	LogFile     string
	FramePeriod time.Duration
	Snapshot    string // write a PNG of the layout and exit
	Database    string
	Width       uint
	Height      uint
}

func Parse(args []string) (*Options, error) {
	app := kingpin.New("sightread", "Sight-reading trainer for MIDI keyboards")
	app.Version(Version)

	defaults := Default()
	o := &Options{}

	app.Arg("song", "Standard MIDI file to practice").ExistingFileVar(&o.Song)
	app.Flag("device", "MIDI input to connect to").Short('D').StringVar(&o.Device)
	app.Flag("keyboard", "Play with the computer keyboard").Short('k').BoolVar(&o.Keyboard)
	app.Flag("log-level", "Log level").Default("info").EnumVar(&o.LogLevel, "debug", "info", "warn", "error")
	app.Flag("log-file", "Write logs here instead of stderr").StringVar(&o.LogFile)
	app.Flag("frame-period", "Update/render frame period").Default("16ms").Short('p').DurationVar(&o.FramePeriod)
	app.Flag("snapshot", "Render the song layout to a PNG and exit").StringVar(&o.Snapshot)
	app.Flag("database", "Progress database").Default("./progress.db").StringVar(&o.Database)
	app.Flag("width", "Viewport width in pixels").Default("1200").UintVar(&o.Width)
	app.Flag("height", "Viewport height in pixels").Default("800").UintVar(&o.Height)

	app.Flag("latency", "MIDI latency compensation").Default(defaults.LatencyCompensation.String()).Short('o').DurationVar(&o.LatencyCompensation)
	app.Flag("feedback", "How long feedback messages stay visible").Default(defaults.FeedbackDuration.String()).DurationVar(&o.FeedbackDuration)
	app.Flag("auto-advance", "Start the next song when one is completed").Default("true").BoolVar(&o.AutoAdvance)
	app.Flag("note-names", "Label note heads with their names").BoolVar(&o.ShowNoteNames)
	app.Flag("notes-per-system", "Notes drawn on each treble/bass system").Default("8").IntVar(&o.NotesPerSystem)

	if _, err := app.Parse(args); nil != err {
		return nil, err
	}
	if o.NotesPerSystem < 1 {
		o.NotesPerSystem = defaults.NotesPerSystem
	}
	return o, nil
}
