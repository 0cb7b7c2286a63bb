package main

import (
	"context"
	"io"
	"os"
	"os/signal"

	"git.lost.host/meutraa/sightread/internal/config"
	"git.lost.host/meutraa/sightread/internal/logging"
	"git.lost.host/meutraa/sightread/internal/render"
	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
)

func main() {
	if err := run(os.Args[1:]); nil != err {
		log.Fatal(err)
	}
}

func run(args []string) error {
	opts, err := config.Parse(args)
	if nil != err {
		return err
	}

	var out io.Writer = os.Stderr
	if opts.LogFile != "" {
		f, err := os.OpenFile(opts.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if nil != err {
			return errors.Wrap(err, "unable to open log file")
		}
		defer f.Close()
		out = f
	}
	logging.Setup(opts.LogLevel, out)

	p := NewProgram(opts)
	if opts.Song != "" {
		if err := p.LoadSong(opts.Song); nil != err {
			return err
		}
	}

	if opts.Snapshot != "" {
		return p.Snapshot(opts.Snapshot)
	}

	if err := p.Init(); nil != err {
		return err
	}
	defer p.Deinit()

	p.Renderer = render.NewTerminal(p.Theme)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return p.Run(ctx)
}
